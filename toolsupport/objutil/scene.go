// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package objutil

import (
	"iter"

	"github.com/go-gl/mathgl/mgl32"

	"go.chromium.org/infra/build/objmesh/arena"
)

// DefaultObjectName is the name of the object created for geometry that
// appears before any "o" statement.
const DefaultObjectName = "default"

// Index is an index into an object's vertex array.
type Index uint32

// Vertex is a face corner with its position, texture coordinate and normal
// resolved from the pools.
type Vertex struct {
	Position mgl32.Vec4
	TexCoord mgl32.Vec3
	Normal   mgl32.Vec3
}

// Scene is the list of objects in an OBJ file, in order of first appearance.
// It lives in the arena passed to Parse.
type Scene struct {
	first, last *Object
	n           int
}

// Object is a named set of vertices. Every face corner appends a new vertex
// and its index.
type Object struct {
	Name     []byte
	Vertices []Vertex
	Indices  []Index

	groupsFirst, groupsLast *Group
	ngroups                 int

	prev, next *Object
}

// Group is a named subset of an object's faces, selected by "g".
// Indices refer to the owning object's Vertices.
type Group struct {
	Name    []byte
	Indices []Index

	prev, next *Group
}

func newScene(a *arena.Arena) *Scene {
	return arena.New[Scene](a)
}

func newObject(a *arena.Arena, name []byte, maxVertices int) *Object {
	o := arena.New[Object](a)
	o.Name = name
	o.Vertices = arena.MakeSlice[Vertex](a, 0, maxVertices)
	o.Indices = arena.MakeSlice[Index](a, 0, maxVertices)
	return o
}

func newGroup(a *arena.Arena, name []byte, maxIndices int) *Group {
	g := arena.New[Group](a)
	g.Name = name
	g.Indices = arena.MakeSlice[Index](a, 0, maxIndices)
	return g
}

// appendObject appends o at the end of the scene.
func (s *Scene) appendObject(o *Object) {
	if s.last == nil {
		s.first = o
		s.last = o
	} else {
		o.prev = s.last
		s.last.next = o
		s.last = o
	}
	s.n++
}

// Len returns the number of objects.
func (s *Scene) Len() int {
	return s.n
}

// First returns the first object, or nil.
func (s *Scene) First() *Object { return s.first }

// Last returns the most recently added object, or nil.
func (s *Scene) Last() *Object { return s.last }

// Objects iterates objects in insertion order.
func (s *Scene) Objects() iter.Seq[*Object] {
	return func(yield func(*Object) bool) {
		for o := s.first; o != nil; o = o.next {
			if !yield(o) {
				return
			}
		}
	}
}

// Lookup returns the object named name, searching from the most recently
// added one.
func (s *Scene) Lookup(name []byte) (*Object, bool) {
	for o := s.last; o != nil; o = o.prev {
		if Compare(o.Name, name) == 0 {
			return o, true
		}
	}
	return nil, false
}

// Next returns the object added after o, or nil.
func (o *Object) Next() *Object { return o.next }

// Prev returns the object added before o, or nil.
func (o *Object) Prev() *Object { return o.prev }

// NumGroups returns the number of groups in o.
func (o *Object) NumGroups() int { return o.ngroups }

// Groups iterates groups of o in insertion order.
func (o *Object) Groups() iter.Seq[*Group] {
	return func(yield func(*Group) bool) {
		for g := o.groupsFirst; g != nil; g = g.next {
			if !yield(g) {
				return
			}
		}
	}
}

// LookupGroup returns the group of o named name, searching from the most
// recently added one.
func (o *Object) LookupGroup(name []byte) (*Group, bool) {
	for g := o.groupsLast; g != nil; g = g.prev {
		if Compare(g.Name, name) == 0 {
			return g, true
		}
	}
	return nil, false
}

// appendGroup appends g at the end of o's groups.
func (o *Object) appendGroup(g *Group) {
	if o.groupsLast == nil {
		o.groupsFirst = g
		o.groupsLast = g
	} else {
		g.prev = o.groupsLast
		o.groupsLast.next = g
		o.groupsLast = g
	}
	o.ngroups++
}
