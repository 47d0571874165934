// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package arena

import "golang.org/x/sys/unix"

// osMemory reserves with a PROT_NONE anonymous mapping and commits by
// making pages readable and writable.
type osMemory struct{}

func (osMemory) reserve(size int) ([]byte, error) {
	return unix.Mmap(-1, 0, size, unix.PROT_NONE, unix.MAP_PRIVATE|unix.MAP_ANON)
}

func (osMemory) commit(b []byte) error {
	return unix.Mprotect(b, unix.PROT_READ|unix.PROT_WRITE)
}

func (osMemory) release(b []byte) error {
	return unix.Munmap(b)
}

func (osMemory) pageSize() int {
	return unix.Getpagesize()
}
