// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

//go:build windows

package arena

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

type osMemory struct{}

func (osMemory) reserve(size int) ([]byte, error) {
	addr, err := windows.VirtualAlloc(0, uintptr(size), windows.MEM_RESERVE, windows.PAGE_READWRITE)
	if err != nil {
		return nil, err
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), size), nil
}

func (osMemory) commit(b []byte) error {
	want := uintptr(unsafe.Pointer(unsafe.SliceData(b)))
	got, err := windows.VirtualAlloc(want, uintptr(len(b)), windows.MEM_COMMIT, windows.PAGE_READWRITE)
	if err != nil {
		return err
	}
	// VirtualAlloc rounds the address down to a page boundary.
	if got != want {
		return fmt.Errorf("committed at %#x, want %#x", got, want)
	}
	return nil
}

func (osMemory) release(b []byte) error {
	return windows.VirtualFree(uintptr(unsafe.Pointer(unsafe.SliceData(b))), 0, windows.MEM_RELEASE)
}

func (osMemory) pageSize() int {
	return windows.Getpagesize()
}
