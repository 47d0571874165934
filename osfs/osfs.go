// Copyright 2024 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package osfs provides OS Filesystem access.
package osfs

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"

	"go.chromium.org/infra/build/objmesh/arena"
	"go.chromium.org/infra/build/objmesh/o11y/iometrics"
)

// OSFS provides OS Filesystem access.
// It counts metrics by iometrics.
type OSFS struct {
	*iometrics.IOMetrics
}

// New creates new OSFS.
func New(name string) *OSFS {
	return &OSFS{IOMetrics: iometrics.New(name)}
}

// ReadFile reads the named file into memory allocated from a.
// Files ending in ".gz" or ".zst" are decompressed.
func (fs *OSFS) ReadFile(ctx context.Context, a *arena.Arena, fname string) ([]byte, error) {
	started := time.Now()
	buf, err := fs.readFile(a, fname)
	fs.ReadDone(len(buf), err)
	if dur := time.Since(started); dur > 1*time.Minute {
		log.FromContext(ctx).Warnf("slow read %s: %s %v", fname, dur, err)
	}
	return buf, err
}

func (fs *OSFS) readFile(a *arena.Arena, fname string) ([]byte, error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch filepath.Ext(fname) {
	case ".gz":
		r, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("gzip %s: %w", fname, err)
		}
		defer r.Close()
		return fs.decode(a, fname, r)
	case ".zst":
		r, err := zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("zstd %s: %w", fname, err)
		}
		defer r.Close()
		return fs.decode(a, fname, r)
	}

	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if !fi.Mode().IsRegular() {
		b, err := io.ReadAll(f)
		if err != nil {
			return nil, err
		}
		return a.Clone(b), nil
	}
	buf := a.AllocAligned(int(fi.Size()), 1)
	n, err := io.ReadFull(f, buf)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", fname, err)
	}
	return buf[:n], nil
}

// decode reads all decompressed bytes of r into a.
func (fs *OSFS) decode(a *arena.Arena, fname string, r io.Reader) ([]byte, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("decompress %s: %w", fname, err)
	}
	fs.DecodeDone(len(b))
	return a.Clone(b), nil
}
