// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package arena provides a bump allocator over a fixed buffer or over a
// reserved range of virtual memory.
//
// Memory handed out by an Arena is never moved. A virtual arena reserves its
// whole address range at the first allocation and commits pages on demand, so
// slices returned earlier stay valid while the arena grows.
//
// Values placed in an arena must only reference memory of the same arena.
// The garbage collector does not scan arena memory.
package arena

import (
	"fmt"
	"math"
	"unsafe"

	"github.com/charmbracelet/log"
)

// DefaultAlignment is the alignment used by Alloc (two pointer widths).
const DefaultAlignment = 2 * int(unsafe.Sizeof(uintptr(0)))

// DefaultReserveSize is the address space reserved by a virtual arena.
const DefaultReserveSize int64 = 2 << 30

// DefaultMinBlockSize is the minimum commit size of a virtual arena.
const DefaultMinBlockSize = 1 << 20

// hostMemory is the interface to the OS virtual memory primitives.
type hostMemory interface {
	// reserve reserves size bytes of address space without committing it.
	reserve(size int) ([]byte, error)
	// commit makes b readable and writable. b is page aligned.
	commit(b []byte) error
	// release returns memory obtained by reserve.
	release(b []byte) error
	pageSize() int
}

// Arena is a bump allocator. It is not goroutine-safe.
type Arena struct {
	mem  []byte
	base uintptr

	used      int
	committed int
	peak      int
	commits   int
	// zeroed is the offset from which memory is known to be zero.
	zeroed int

	// virtual arena only.
	virtual     bool
	host        hostMemory
	reserveSize int
	minBlock    int
	page        int

	released bool
}

// Option configures a virtual arena.
type Option func(*Arena)

// WithReserveSize sets the address space reserved by a virtual arena.
func WithReserveSize(n int) Option {
	return func(a *Arena) {
		a.reserveSize = n
	}
}

// NewFixed creates an arena over buf. Its capacity is len(buf), and
// allocating beyond it panics.
func NewFixed(buf []byte) *Arena {
	return &Arena{
		mem:       buf,
		base:      uintptr(unsafe.Pointer(unsafe.SliceData(buf))),
		committed: len(buf),
		zeroed:    len(buf),
	}
}

// NewVirtual creates a growable arena backed by virtual memory.
// Nothing is reserved until the first allocation. Pages are committed in
// blocks of at least minBlockSize bytes, rounded up to the page size.
// If minBlockSize <= 0, DefaultMinBlockSize is used.
func NewVirtual(minBlockSize int, opts ...Option) *Arena {
	if minBlockSize <= 0 {
		minBlockSize = DefaultMinBlockSize
	}
	a := &Arena{
		virtual:     true,
		host:        osMemory{},
		reserveSize: int(min(DefaultReserveSize, math.MaxInt)),
		minBlock:    minBlockSize,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Alloc returns size zeroed bytes aligned to DefaultAlignment.
func (a *Arena) Alloc(size int) []byte {
	return a.AllocAligned(size, DefaultAlignment)
}

// AllocAligned rounds the current offset up to align and returns the next
// size bytes, zeroed. align must be a power of two.
// Pages fresh from the OS are not cleared again.
func (a *Arena) AllocAligned(size, align int) []byte {
	if a.released {
		panic("arena: use after Release")
	}
	if size < 0 {
		panic(fmt.Sprintf("arena: negative allocation size %d", size))
	}
	if align <= 0 || align&(align-1) != 0 {
		panic(fmt.Sprintf("arena: alignment %d is not a power of two", align))
	}
	if a.virtual && a.mem == nil {
		a.reserve()
	}
	off := int(alignUp(a.base+uintptr(a.used), uintptr(align)) - a.base)
	end := off + size
	if end > a.committed {
		if !a.virtual {
			panic(fmt.Sprintf("arena: out of capacity: allocating %d bytes at offset %d, capacity %d", size, off, a.committed))
		}
		a.grow(end)
	}
	b := a.mem[off:end:end]
	if dirty := min(end, a.zeroed) - off; dirty > 0 {
		clear(b[:dirty])
	}
	a.used = end
	a.peak = max(a.peak, end)
	if a.virtual {
		a.zeroed = max(a.zeroed, end)
	}
	return b
}

// Clone copies b into the arena.
func (a *Arena) Clone(b []byte) []byte {
	c := a.AllocAligned(len(b), 1)
	copy(c, b)
	return c
}

// reserve reserves the address space of a virtual arena.
func (a *Arena) reserve() {
	a.page = a.host.pageSize()
	size := roundUp(a.reserveSize, a.page)
	mem, err := a.host.reserve(size)
	if err != nil {
		panic(fmt.Sprintf("arena: failed to reserve %d MiB of virtual memory: %v", size>>20, err))
	}
	a.mem = mem
	a.base = uintptr(unsafe.Pointer(unsafe.SliceData(mem)))
	a.minBlock = roundUp(a.minBlock, a.page)
	log.Debugf("arena: reserved %d MiB of virtual address space", size>>20)
}

// grow commits pages so that offsets up to end are usable.
// The new block starts exactly at the committed end, which is always page
// aligned, and never extends past the reservation.
func (a *Arena) grow(end int) {
	if end > len(a.mem) {
		panic(fmt.Sprintf("arena: out of reserved address space: need %d bytes, reserved %d", end, len(a.mem)))
	}
	block := roundUp(max(end-a.committed, a.minBlock), a.page)
	block = min(block, len(a.mem)-a.committed)
	region := a.mem[a.committed : a.committed+block : a.committed+block]
	err := a.host.commit(region)
	if err != nil {
		panic(fmt.Sprintf("arena: failed to commit %d bytes at offset %d: %v", block, a.committed, err))
	}
	a.committed += block
	a.commits++
	log.Debugf("arena: committed %d KiB (total %d KiB)", block>>10, a.committed>>10)
}

// FreeAll rewinds the arena to empty. All memory returned earlier is
// invalidated; committed pages are kept for reuse.
func (a *Arena) FreeAll() {
	a.used = 0
}

// Mark returns the current offset, for use with Rewind.
func (a *Arena) Mark() int {
	return a.used
}

// Rewind frees everything allocated since mark was taken.
func (a *Arena) Rewind(mark int) {
	if mark < 0 || mark > a.used {
		panic(fmt.Sprintf("arena: bad mark %d (used %d)", mark, a.used))
	}
	a.used = mark
}

// Release makes the arena unusable. A virtual arena also returns its
// reserved address space to the OS.
func (a *Arena) Release() error {
	if a.released {
		return nil
	}
	a.released = true
	if !a.virtual || a.mem == nil {
		a.mem = nil
		return nil
	}
	mem := a.mem
	a.mem = nil
	a.used, a.committed = 0, 0
	return a.host.release(mem)
}

func alignUp(p, align uintptr) uintptr {
	return (p + align - 1) &^ (align - 1)
}

func roundUp(n, m int) int {
	if r := n % m; r != 0 {
		return n + m - r
	}
	return n
}
