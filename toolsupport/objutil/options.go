// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package objutil

import "flag"

// Default pool capacities.
const (
	DefaultMaxPositions    = 1 << 20
	DefaultMaxTexCoords    = 2 << 20
	DefaultMaxNormals      = 2 << 20
	DefaultMaxVertices     = 1 << 20
	DefaultMaxGroupIndices = 1 << 20
)

// Options holds capacities of the arrays the parser allocates up front.
// Zero values mean the defaults.
type Options struct {
	// MaxPositions, MaxTexCoords and MaxNormals are the pool sizes,
	// not counting the zero sentinel.
	MaxPositions int
	MaxTexCoords int
	MaxNormals   int

	// MaxVertices is the capacity of each object's vertex and index arrays.
	MaxVertices int
	// MaxGroupIndices is the capacity of each group's index array.
	MaxGroupIndices int
}

// RegisterFlags registers flags for the options.
func (o *Options) RegisterFlags(flagSet *flag.FlagSet) {
	flagSet.IntVar(&o.MaxPositions, "max_positions", DefaultMaxPositions, "capacity of the vertex position pool")
	flagSet.IntVar(&o.MaxTexCoords, "max_texcoords", DefaultMaxTexCoords, "capacity of the texture coordinate pool")
	flagSet.IntVar(&o.MaxNormals, "max_normals", DefaultMaxNormals, "capacity of the normal pool")
	flagSet.IntVar(&o.MaxVertices, "max_vertices", DefaultMaxVertices, "capacity of face vertices per object")
	flagSet.IntVar(&o.MaxGroupIndices, "max_group_indices", DefaultMaxGroupIndices, "capacity of face vertices per group")
}

func (o Options) withDefaults() Options {
	if o.MaxPositions <= 0 {
		o.MaxPositions = DefaultMaxPositions
	}
	if o.MaxTexCoords <= 0 {
		o.MaxTexCoords = DefaultMaxTexCoords
	}
	if o.MaxNormals <= 0 {
		o.MaxNormals = DefaultMaxNormals
	}
	if o.MaxVertices <= 0 {
		o.MaxVertices = DefaultMaxVertices
	}
	if o.MaxGroupIndices <= 0 {
		o.MaxGroupIndices = DefaultMaxGroupIndices
	}
	return o
}
