// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

//go:build !(linux || darwin || freebsd || netbsd || openbsd || dragonfly || windows)

package arena

import (
	"errors"
	"os"
)

var errNoVirtualMemory = errors.New("virtual memory arena is not supported on this platform")

type osMemory struct{}

func (osMemory) reserve(size int) ([]byte, error) {
	return nil, errNoVirtualMemory
}

func (osMemory) commit(b []byte) error {
	return errNoVirtualMemory
}

func (osMemory) release(b []byte) error {
	return nil
}

func (osMemory) pageSize() int {
	return os.Getpagesize()
}
