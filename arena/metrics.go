// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package arena

// Used returns the bump offset, including alignment padding.
func (a *Arena) Used() int {
	return a.used
}

// Committed returns the number of usable bytes.
// For a fixed arena, it is the buffer size.
func (a *Arena) Committed() int {
	return a.committed
}

// Reserved returns the reserved address space of a virtual arena,
// or the buffer size of a fixed arena.
func (a *Arena) Reserved() int {
	return len(a.mem)
}

// Peak returns the high-water mark of Used across FreeAll calls.
func (a *Arena) Peak() int {
	return a.peak
}

// Metrics returns a snapshot of arena statistics.
func (a *Arena) Metrics() Metrics {
	return Metrics{
		Used:      a.used,
		Committed: a.committed,
		Reserved:  len(a.mem),
		Peak:      a.peak,
		Commits:   a.commits,
		Virtual:   a.virtual,
	}
}

// Metrics contains statistical information about an arena.
type Metrics struct {
	Used      int  // Bytes currently allocated
	Committed int  // Usable bytes
	Reserved  int  // Reserved address space
	Peak      int  // High-water mark of Used
	Commits   int  // Number of commit calls
	Virtual   bool // Backed by virtual memory
}
