// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package arena

// DefaultScratchSize is the capacity of a scratch arena created by NewScratch(0).
const DefaultScratchSize = 64 << 10

// Scratch is a small arena for short-lived buffers such as formatted
// messages. Begin and End bracket one use; brackets must not overlap.
type Scratch struct {
	a      *Arena
	active bool
}

// NewScratch creates a scratch arena of size bytes.
// If size <= 0, DefaultScratchSize is used.
func NewScratch(size int) *Scratch {
	if size <= 0 {
		size = DefaultScratchSize
	}
	return &Scratch{a: NewFixed(make([]byte, size))}
}

// Begin starts using the scratch arena. It panics if the previous Begin
// has not been ended.
func (s *Scratch) Begin() *Arena {
	if s.active {
		panic("arena: scratch arena is already in use")
	}
	s.active = true
	return s.a
}

// End frees everything allocated since Begin.
func (s *Scratch) End() {
	if !s.active {
		panic("arena: scratch End without Begin")
	}
	s.a.FreeAll()
	s.active = false
}
