// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package arena

import "unsafe"

// New returns a zeroed *T allocated in a.
func New[T any](a *Arena) *T {
	var zero T
	size := int(unsafe.Sizeof(zero))
	if size == 0 {
		return new(T)
	}
	b := a.AllocAligned(size, int(unsafe.Alignof(zero)))
	return (*T)(unsafe.Pointer(unsafe.SliceData(b)))
}

// MakeSlice returns a zeroed []T of length n and capacity c allocated in a.
// The slice must not be grown past c with append, since that would move it
// to the Go heap.
func MakeSlice[T any](a *Arena, n, c int) []T {
	if n > c {
		panic("arena: MakeSlice: len larger than cap")
	}
	if c == 0 {
		return nil
	}
	var zero T
	elemSize := int(unsafe.Sizeof(zero))
	if elemSize == 0 {
		return make([]T, n, c)
	}
	b := a.AllocAligned(elemSize*c, int(unsafe.Alignof(zero)))
	return unsafe.Slice((*T)(unsafe.Pointer(unsafe.SliceData(b))), c)[:n]
}
