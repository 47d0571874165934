// Copyright 2023 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package iometrics manages file read metrics.
package iometrics

import (
	"fmt"
	"sync"
)

// IOMetrics holds read metrics for a file source.
type IOMetrics struct {
	name string

	mu sync.Mutex

	rOps   int64
	rBytes int64
	rErrs  int64

	// bytes produced by decompression, counted in rBytes too.
	decoded int64
}

// New returns new iometrics for name.
func New(name string) *IOMetrics {
	return &IOMetrics{name: name}
}

// ReadDone counts when a read operation is done.
// n is the number of bytes, and err is a read error.
func (m *IOMetrics) ReadDone(n int, err error) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rOps++
	m.rBytes += int64(n)
	if err != nil {
		m.rErrs++
	}
}

// DecodeDone counts n bytes produced by decompressing a file.
func (m *IOMetrics) DecodeDone(n int) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.decoded += int64(n)
}

// Name returns the name of the iometrics.
func (m *IOMetrics) Name() string {
	if m == nil {
		return "<nil>"
	}
	return m.name
}

// Stats holds iometrics.
type Stats struct {
	// Number of read operations.
	ROps int64
	// Number of read bytes.
	RBytes int64
	// Number of read errors.
	RErrs int64
	// Number of bytes produced by decompression.
	Decoded int64
}

func (s Stats) String() string {
	return fmt.Sprintf("reads=%d bytes=%d errs=%d decoded=%d", s.ROps, s.RBytes, s.RErrs, s.Decoded)
}

// Stats returns the snapshot of the iometrics.
func (m *IOMetrics) Stats() Stats {
	if m == nil {
		return Stats{}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return Stats{
		ROps:    m.rOps,
		RBytes:  m.rBytes,
		RErrs:   m.rErrs,
		Decoded: m.decoded,
	}
}
