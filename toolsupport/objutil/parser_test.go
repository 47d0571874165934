// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package objutil

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/go-cmp/cmp"

	"go.chromium.org/infra/build/objmesh/arena"
	"go.chromium.org/infra/build/objmesh/osfs"
)

var testOptions = Options{
	MaxPositions:    16,
	MaxTexCoords:    16,
	MaxNormals:      16,
	MaxVertices:     16,
	MaxGroupIndices: 16,
}

func parseString(t *testing.T, input string, opts Options) (Result, error) {
	t.Helper()
	a := arena.NewFixed(make([]byte, 1<<16))
	return ParseBytes(context.Background(), a, "test.obj", []byte(input), opts)
}

type object struct {
	Name     string
	Vertices []Vertex
	Indices  []Index
}

func objects(s *Scene) []object {
	var objs []object
	for o := range s.Objects() {
		objs = append(objs, object{
			Name:     string(o.Name),
			Vertices: o.Vertices,
			Indices:  o.Indices,
		})
	}
	return objs
}

func pos(x, y, z float32) Vertex {
	return Vertex{Position: mgl32.Vec4{x, y, z, 1}}
}

func TestParse_ImplicitObject(t *testing.T) {
	res, err := parseString(t, "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n", testOptions)
	if err != nil || !res.Success {
		t.Fatalf("Parse=%v, %v; want success", res, err)
	}
	want := []object{
		{
			Name:     DefaultObjectName,
			Vertices: []Vertex{pos(0, 0, 0), pos(1, 0, 0), pos(0, 1, 0)},
			Indices:  []Index{0, 1, 2},
		},
	}
	if diff := cmp.Diff(want, objects(res.Scene)); diff != "" {
		t.Errorf("objects diff -want +got:\n%s", diff)
	}
	if res.LinesParsed != 4 {
		t.Errorf("LinesParsed=%d; want 4", res.LinesParsed)
	}
}

func TestParse_SentinelTexCoordAndNormal(t *testing.T) {
	res, err := parseString(t, "v 1.0 2.0 3.0\nf 1 1 1", testOptions)
	if err != nil {
		t.Fatalf("Parse=_, %v; want nil err", err)
	}
	want := []object{
		{
			Name:     DefaultObjectName,
			Vertices: []Vertex{pos(1, 2, 3), pos(1, 2, 3), pos(1, 2, 3)},
			Indices:  []Index{0, 1, 2},
		},
	}
	if diff := cmp.Diff(want, objects(res.Scene)); diff != "" {
		t.Errorf("objects diff -want +got:\n%s", diff)
	}
	for _, v := range want[0].Vertices {
		if v.TexCoord != (mgl32.Vec3{}) || v.Normal != (mgl32.Vec3{}) {
			t.Errorf("vertex %v; want zero texcoord and normal", v)
		}
	}
}

func TestParse_DefaultW(t *testing.T) {
	res, err := parseString(t, "v -1 0 0\nv 1 2 3 0.5\nf 1 2 -1\n", testOptions)
	if err != nil {
		t.Fatalf("Parse=_, %v; want nil err", err)
	}
	got := res.Scene.First().Vertices
	want := []Vertex{
		{Position: mgl32.Vec4{-1, 0, 0, 1}},
		{Position: mgl32.Vec4{1, 2, 3, 0.5}},
		{Position: mgl32.Vec4{1, 2, 3, 0.5}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("vertices diff -want +got:\n%s", diff)
	}
}

func TestParse_TexCoordsAndNormals(t *testing.T) {
	res, err := parseString(t, `o tri
v 1 2 3
vt 0.5 0.25
vt 0.1 0.2 0.3
vn 0 0 1
f 1/1/1 1/2 1//1
`, testOptions)
	if err != nil {
		t.Fatalf("Parse=_, %v; want nil err", err)
	}
	p := mgl32.Vec4{1, 2, 3, 1}
	want := []Vertex{
		{Position: p, TexCoord: mgl32.Vec3{0.5, 0.25, 0}, Normal: mgl32.Vec3{0, 0, 1}},
		{Position: p, TexCoord: mgl32.Vec3{0.1, 0.2, 0.3}},
		{Position: p, Normal: mgl32.Vec3{0, 0, 1}},
	}
	if diff := cmp.Diff(want, res.Scene.First().Vertices); diff != "" {
		t.Errorf("vertices diff -want +got:\n%s", diff)
	}
}

func TestParse_RelativeIndices(t *testing.T) {
	res, err := parseString(t, "v 0 0 0\nv 1 0 0\nv 0 1 0\nf -3 -2 -1\nv 5 5 5\nf -1 1 -4\n", testOptions)
	if err != nil {
		t.Fatalf("Parse=_, %v; want nil err", err)
	}
	want := []Vertex{
		pos(0, 0, 0), pos(1, 0, 0), pos(0, 1, 0),
		pos(5, 5, 5), pos(0, 0, 0), pos(0, 0, 0),
	}
	if diff := cmp.Diff(want, res.Scene.First().Vertices); diff != "" {
		t.Errorf("vertices diff -want +got:\n%s", diff)
	}
}

func TestParse_ReuseObject(t *testing.T) {
	res, err := parseString(t, `o A
v 0 0 0
f 1 1 1
o B
f 1 1 1
o A
f 1 1 1
`, testOptions)
	if err != nil {
		t.Fatalf("Parse=_, %v; want nil err", err)
	}
	if got := res.Scene.Len(); got != 2 {
		t.Fatalf("Scene.Len=%d; want 2", got)
	}
	a, ok := res.Scene.Lookup([]byte("A"))
	if !ok {
		t.Fatalf("Lookup(A)=_, false; want true")
	}
	if a != res.Scene.First() {
		t.Errorf("Lookup(A)=%p; want first object %p", a, res.Scene.First())
	}
	if got, want := a.Indices, []Index{0, 1, 2, 3, 4, 5}; !cmp.Equal(got, want) {
		t.Errorf("A.Indices=%v; want %v", got, want)
	}
	b := a.Next()
	if b == nil || string(b.Name) != "B" || b.Prev() != a || len(b.Vertices) != 3 {
		t.Errorf("A.Next()=%v; want B with 3 vertices", b)
	}
}

func TestParse_Groups(t *testing.T) {
	res, err := parseString(t, `o cube
v 0 0 0
v 1 0 0
v 0 1 0
f 1 2 3
g a
f 1 2 3
g b
f 3 2 1
g a
f 1 1 1
o cube
f 1 1 1
`, testOptions)
	if err != nil {
		t.Fatalf("Parse=_, %v; want nil err", err)
	}
	o := res.Scene.First()
	if got := o.NumGroups(); got != 2 {
		t.Fatalf("NumGroups=%d; want 2", got)
	}
	got := map[string][]Index{}
	for g := range o.Groups() {
		got[string(g.Name)] = g.Indices
	}
	want := map[string][]Index{
		"a": {3, 4, 5, 9, 10, 11},
		"b": {6, 7, 8},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("groups diff -want +got:\n%s", diff)
	}
	if len(o.Indices) != 15 {
		t.Errorf("len(Indices)=%d; want 15", len(o.Indices))
	}
	if _, ok := o.LookupGroup([]byte("c")); ok {
		t.Errorf("LookupGroup(c)=_, true; want false")
	}
}

func TestParse_GroupWithoutObject(t *testing.T) {
	res, err := parseString(t, "v 0 0 0\ng top\nf 1 1 1\n", testOptions)
	if err != nil {
		t.Fatalf("Parse=_, %v; want nil err", err)
	}
	o := res.Scene.First()
	if string(o.Name) != DefaultObjectName {
		t.Errorf("object name=%q; want %q", o.Name, DefaultObjectName)
	}
	g, ok := o.LookupGroup([]byte("top"))
	if !ok || len(g.Indices) != 3 {
		t.Errorf("LookupGroup(top)=%v, %t; want group with 3 indices", g, ok)
	}
}

func TestParse_Empty(t *testing.T) {
	for _, input := range []string{"", "\n", "# comment\n", "v 1 2 3"} {
		res, err := parseString(t, input, testOptions)
		if err != nil || !res.Success {
			t.Errorf("Parse(%q)=%v, %v; want success", input, res, err)
			continue
		}
		if res.Scene == nil || res.Scene.Len() != 0 {
			t.Errorf("Parse(%q) scene=%v; want empty scene", input, res.Scene)
		}
	}
}

func TestParse_LinesParsed(t *testing.T) {
	for _, tc := range []struct {
		input string
		want  int
	}{
		{"", 0},
		{"v 0 0 0", 1},
		{"v 0 0 0\n", 1},
		{"v 0 0 0\r\nv 0 0 0\r\nf 1 2 2\r\n", 3},
		{"v 0 0 0\rv 0 0 0\rf 1 2 2", 3},
		{"# header\n\nv 0 0 0\n", 3},
	} {
		res, err := parseString(t, tc.input, testOptions)
		if err != nil {
			t.Errorf("Parse(%q)=_, %v; want nil err", tc.input, err)
			continue
		}
		if res.LinesParsed != tc.want {
			t.Errorf("Parse(%q).LinesParsed=%d; want %d", tc.input, res.LinesParsed, tc.want)
		}
	}
}

func TestParse_Errors(t *testing.T) {
	for _, tc := range []struct {
		name       string
		input      string
		kind       ErrorKind
		line       int
		outOfRange bool
		msg        string
	}{
		{
			name:       "vertex index zero",
			input:      "v 0 0 0\nvt 0 0\nvn 0 0 1\nf 0/1/1 1/1/1 1/1/1\n",
			kind:       GrammarError,
			line:       4,
			outOfRange: true,
		},
		{
			name:  "unknown keyword",
			input: "vx 1 2 3\n",
			kind:  GrammarError,
			line:  1,
			msg:   "test.obj:1: grammar error: expected a keyword. got: name 'vx', did you mean 'v'?",
		},
		{
			name:  "name far from keywords",
			input: "\nmtllib cube.mtl\n",
			kind:  GrammarError,
			line:  2,
			msg:   "test.obj:2: grammar error: expected a keyword. got: name",
		},
		{
			name:  "number instead of keyword",
			input: "1 2 3",
			kind:  GrammarError,
			line:  1,
			msg:   "test.obj:1: grammar error: expected a keyword. got: integer",
		},
		{
			name:  "too few floats at eof",
			input: "v 1 2",
			kind:  GrammarError,
			line:  1,
			msg:   "test.obj:1: grammar error: expected a float. got: end of file",
		},
		{
			name:  "too few floats",
			input: "vt 1\nv 1 2 3\n",
			kind:  GrammarError,
			line:  2,
			msg:   "test.obj:2: grammar error: expected a float. got: v",
		},
		{
			name:  "too many floats",
			input: "v 1 2 3 4 5\n",
			kind:  GrammarError,
			line:  1,
			msg:   "test.obj:1: grammar error: too many arguments for 'v': expected at most 4",
		},
		{
			name:  "two names",
			input: "o a b\n",
			kind:  GrammarError,
			line:  1,
		},
		{
			name:  "integer object name",
			input: "o 12\n",
			kind:  GrammarError,
			line:  1,
			msg:   "test.obj:1: grammar error: expected a name. got: integer",
		},
		{
			name:  "two elements",
			input: "v 0 0 0\nf 1 1\nv 0 0 0\n",
			kind:  GrammarError,
			line:  3,
			msg:   "test.obj:3: grammar error: expected a primitive element. got: v",
		},
		{
			name:       "face before vertices",
			input:      "f 1 2 3\n",
			kind:       GrammarError,
			line:       1,
			outOfRange: true,
		},
		{
			name:       "index past defined vertices",
			input:      "v 0 0 0\nv 0 0 0\nf 1 2 3\n",
			kind:       GrammarError,
			line:       3,
			outOfRange: true,
			msg:        "test.obj:3: grammar error: vertex index 3 in '3': only 2 defined",
		},
		{
			name:       "relative index too far back",
			input:      "v 0 0 0\nf 1 1 -2\n",
			kind:       GrammarError,
			line:       2,
			outOfRange: true,
		},
		{
			name:       "undefined normal",
			input:      "v 0 0 0\nf 1//1 1 1\n",
			kind:       GrammarError,
			line:       2,
			outOfRange: true,
		},
		{
			name:  "lexical error",
			input: "v 1 2 3\nv 1 2 3.3.3\n",
			kind:  LexicalError,
			line:  2,
			msg:   "test.obj:2: syntax error: expected a float. got: 3.3.3",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			res, err := parseString(t, tc.input, testOptions)
			if res.Success {
				t.Errorf("Parse(%q).Success=true; want false", tc.input)
			}
			if res.Scene == nil {
				t.Errorf("Parse(%q).Scene=nil; want non-nil", tc.input)
			}
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("Parse(%q)=_, %v; want *ParseError", tc.input, err)
			}
			if perr.Kind != tc.kind || perr.Line != tc.line {
				t.Errorf("Parse(%q)=_, %v; want %s at line %d", tc.input, err, tc.kind, tc.line)
			}
			if got := errors.Is(err, ErrIndexOutOfRange); got != tc.outOfRange {
				t.Errorf("errors.Is(%v, ErrIndexOutOfRange)=%t; want %t", err, got, tc.outOfRange)
			}
			if tc.msg != "" && err.Error() != tc.msg {
				t.Errorf("err=%q; want %q", err, tc.msg)
			}
		})
	}
}

func TestParse_ResourceErrors(t *testing.T) {
	for _, tc := range []struct {
		name  string
		input string
		opts  Options
		line  int
	}{
		{
			name:  "positions",
			input: "v 0 0 0\nv 0 0 0\nv 0 0 0\n",
			opts:  Options{MaxPositions: 2},
			line:  3,
		},
		{
			name:  "texcoords",
			input: "vt 0 0\nvt 0 0\n",
			opts:  Options{MaxTexCoords: 1},
			line:  2,
		},
		{
			name:  "normals",
			input: "vn 0 0 1\nvn 0 0 1\n",
			opts:  Options{MaxNormals: 1},
			line:  2,
		},
		{
			name:  "vertices",
			input: "v 0 0 0\nf 1 1 1\nf 1 1 1\n",
			opts:  Options{MaxVertices: 4},
			line:  3,
		},
		{
			name:  "group indices",
			input: "v 0 0 0\ng a\nf 1 1 1\n",
			opts:  Options{MaxGroupIndices: 2},
			line:  3,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			opts := testOptions
			if tc.opts.MaxPositions > 0 {
				opts.MaxPositions = tc.opts.MaxPositions
			}
			if tc.opts.MaxTexCoords > 0 {
				opts.MaxTexCoords = tc.opts.MaxTexCoords
			}
			if tc.opts.MaxNormals > 0 {
				opts.MaxNormals = tc.opts.MaxNormals
			}
			if tc.opts.MaxVertices > 0 {
				opts.MaxVertices = tc.opts.MaxVertices
			}
			if tc.opts.MaxGroupIndices > 0 {
				opts.MaxGroupIndices = tc.opts.MaxGroupIndices
			}
			_, err := parseString(t, tc.input, opts)
			var perr *ParseError
			if !errors.As(err, &perr) || perr.Kind != ResourceError || perr.Line != tc.line {
				t.Errorf("Parse(%q)=_, %v; want resource error at line %d", tc.input, err, tc.line)
			}
		})
	}
}

func TestParseBytes_OwnsInput(t *testing.T) {
	buf := []byte("o cube\nv 0 0 0\nf 1 1 1\n")
	a := arena.NewFixed(make([]byte, 1<<16))
	res, err := ParseBytes(context.Background(), a, "test.obj", buf, testOptions)
	if err != nil {
		t.Fatalf("ParseBytes=_, %v; want nil err", err)
	}
	copy(buf, "o CUBE")
	if got := string(res.Scene.First().Name); got != "cube" {
		t.Errorf("Name=%q after modifying input; want %q", got, "cube")
	}
}

func TestParse_VirtualArena(t *testing.T) {
	a := arena.NewVirtual(4096, arena.WithReserveSize(64<<20))
	t.Cleanup(func() {
		err := a.Release()
		if err != nil {
			t.Errorf("Release()=%v", err)
		}
	})
	var sb strings.Builder
	sb.WriteString("o big\n")
	for range 100 {
		sb.WriteString("v 1 2 3\n")
	}
	for range 100 {
		sb.WriteString("f -1 -2 -3\n")
	}
	opts := Options{MaxPositions: 128, MaxTexCoords: 1, MaxNormals: 1, MaxVertices: 512, MaxGroupIndices: 1}
	res, err := ParseBytes(context.Background(), a, "big.obj", []byte(sb.String()), opts)
	if err != nil {
		t.Fatalf("ParseBytes=_, %v; want nil err", err)
	}
	o := res.Scene.First()
	if len(o.Vertices) != 300 {
		t.Errorf("len(Vertices)=%d; want 300", len(o.Vertices))
	}
	if res.LinesParsed != 201 {
		t.Errorf("LinesParsed=%d; want 201", res.LinesParsed)
	}
	if a.Metrics().Commits == 0 {
		t.Errorf("Metrics=%+v; want some commits", a.Metrics())
	}
}

func TestParse_File(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	fname := filepath.Join(dir, "tri.obj")
	err := os.WriteFile(fname, []byte("o tri\nv 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"), 0644)
	if err != nil {
		t.Fatal(err)
	}
	fsys := osfs.New("test")
	a := arena.NewFixed(make([]byte, 1<<16))
	res, err := Parse(ctx, a, fsys, fname, testOptions)
	if err != nil || !res.Success {
		t.Fatalf("Parse(%q)=%v, %v; want success", fname, res, err)
	}
	if got := string(res.Scene.First().Name); got != "tri" {
		t.Errorf("Name=%q; want tri", got)
	}
	if st := fsys.Stats(); st.ROps != 1 {
		t.Errorf("Stats=%v; want 1 read", st)
	}

	res, err = Parse(ctx, a, fsys, filepath.Join(dir, "missing.obj"), testOptions)
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Parse(missing)=_, %v; want %v", err, fs.ErrNotExist)
	}
	if res.Success || res.Scene == nil || res.Scene.Len() != 0 {
		t.Errorf("Parse(missing)=%v; want failure with empty scene", res)
	}
}
