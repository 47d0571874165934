// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package objutil

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"
	"unsafe"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl32"

	"go.chromium.org/infra/build/objmesh/arena"
	"go.chromium.org/infra/build/objmesh/osfs"
)

// Result is the outcome of parsing an OBJ file.
type Result struct {
	// Scene is never nil. On error it holds what was parsed before
	// the error.
	Scene       *Scene
	LinesParsed int
	Success     bool
}

// Parse reads fname with fsys and parses it.
// The file contents, the scene and every name in it are allocated in a, and
// are valid until a is reset.
func Parse(ctx context.Context, a *arena.Arena, fsys *osfs.OSFS, fname string, opts Options) (Result, error) {
	buf, err := fsys.ReadFile(ctx, a, fname)
	if err != nil {
		return Result{Scene: newScene(a)}, fmt.Errorf("failed to read %s: %w", fname, err)
	}
	return parse(ctx, a, fname, buf, opts)
}

// ParseBytes parses buf as the contents of fname.
// buf is copied into a first, so the result does not reference buf.
func ParseBytes(ctx context.Context, a *arena.Arena, fname string, buf []byte, opts Options) (Result, error) {
	return parse(ctx, a, fname, a.Clone(buf), opts)
}

func parse(ctx context.Context, a *arena.Arena, fname string, buf []byte, opts Options) (Result, error) {
	logger := log.FromContext(ctx)
	started := time.Now()
	p := newParser(a, fname, buf, opts.withDefaults())
	err := p.run()
	res := Result{
		Scene:       p.scene,
		LinesParsed: p.tok.LinesScanned(),
		Success:     err == nil,
	}
	if err != nil {
		logger.Debugf("parse %s failed after %d lines: %v", fname, res.LinesParsed, err)
		return res, err
	}
	logger.Debugf("parsed %s: %d lines, %d objects, %d positions in %s", fname, res.LinesParsed, res.Scene.Len(), p.npos-1, time.Since(started))
	return res, nil
}

// argSpec is the argument kind and count range of a statement.
type argSpec struct {
	kind      TokenKind
	low, high int
}

var statementArgs = map[TokenKind]argSpec{
	KindKeywordO:  {kind: KindName, low: 1, high: 1},
	KindKeywordV:  {kind: KindFloat, low: 3, high: 4},
	KindKeywordVT: {kind: KindFloat, low: 2, high: 3},
	KindKeywordVN: {kind: KindFloat, low: 3, high: 3},
	KindKeywordF:  {kind: KindPrimitiveElement, low: 3, high: 3},
	KindKeywordG:  {kind: KindName, low: 1, high: 1},
}

// expectation is the parser state. kind is KindKeyword between statements.
// Otherwise it is the argument kind of the statement started by keyword, and
// count arguments have been consumed.
type expectation struct {
	kind      TokenKind
	keyword   TokenKind
	low, high int
	count     int
}

type parser struct {
	a     *arena.Arena
	fname string
	tok   *Tokenizer
	opts  Options

	// pools are 1-based. Index 0 is the zero sentinel.
	positions []mgl32.Vec4
	texCoords []mgl32.Vec3
	normals   []mgl32.Vec3
	// next write index of each pool.
	npos, ntex, nnorm int

	exp expectation

	scene  *Scene
	object *Object
	group  *Group
}

func newParser(a *arena.Arena, fname string, buf []byte, opts Options) *parser {
	return &parser{
		a:         a,
		fname:     fname,
		tok:       NewTokenizer(fname, buf),
		opts:      opts,
		positions: arena.MakeSlice[mgl32.Vec4](a, opts.MaxPositions+1, opts.MaxPositions+1),
		texCoords: arena.MakeSlice[mgl32.Vec3](a, opts.MaxTexCoords+1, opts.MaxTexCoords+1),
		normals:   arena.MakeSlice[mgl32.Vec3](a, opts.MaxNormals+1, opts.MaxNormals+1),
		npos:      1,
		ntex:      1,
		nnorm:     1,
		exp:       expectation{kind: KindKeyword},
		scene:     newScene(a),
	}
}

func (p *parser) run() error {
	tok, err := p.tok.Next()
	for {
		if err != nil {
			return err
		}
		if p.exp.kind == KindKeyword {
			switch {
			case tok.Kind == KindEOF:
				return nil
			case tok.Kind.IsKeyword():
				err = p.startStatement(tok)
				if err != nil {
					return err
				}
			default:
				return p.unexpectedToken(tok)
			}
			tok, err = p.tok.Next()
			continue
		}

		if tok.Kind == p.exp.kind {
			if p.exp.count >= p.exp.high {
				return p.errorf(tok.Line, GrammarError, nil, "too many arguments for '%s': expected at most %d", p.exp.keyword, p.exp.high)
			}
			err = p.argument(tok)
			if err != nil {
				return err
			}
			p.exp.count++
			tok, err = p.tok.Next()
			continue
		}
		if p.exp.count < p.exp.low || p.exp.count > p.exp.high {
			return &ParseError{
				Fname:    p.fname,
				Line:     tok.Line,
				Kind:     GrammarError,
				Expected: p.exp.kind.String(),
				Got:      tok.Kind.String(),
			}
		}
		// tok starts the next statement; dispatch it again without
		// reading ahead.
		p.endStatement()
	}
}

// unexpectedToken reports a token that is not a keyword where a statement
// should start.
func (p *parser) unexpectedToken(tok Token) error {
	perr := &ParseError{
		Fname:    p.fname,
		Line:     tok.Line,
		Kind:     GrammarError,
		Expected: KindKeyword.String(),
		Got:      tok.Kind.String(),
	}
	if tok.Kind == KindName {
		if kw, ok := suggestKeyword(tok.Value); ok {
			perr.Msg = fmt.Sprintf("expected a keyword. got: name '%s', did you mean '%s'?", tok.Value, kw)
		}
	}
	return perr
}

func (p *parser) startStatement(tok Token) error {
	args := statementArgs[tok.Kind]
	p.exp = expectation{
		kind:    args.kind,
		keyword: tok.Kind,
		low:     args.low,
		high:    args.high,
	}
	switch tok.Kind {
	case KindKeywordV:
		if p.npos >= len(p.positions) {
			return p.errorf(tok.Line, ResourceError, nil, "too many vertex positions: max %d", p.opts.MaxPositions)
		}
	case KindKeywordVT:
		if p.ntex >= len(p.texCoords) {
			return p.errorf(tok.Line, ResourceError, nil, "too many texture coordinates: max %d", p.opts.MaxTexCoords)
		}
	case KindKeywordVN:
		if p.nnorm >= len(p.normals) {
			return p.errorf(tok.Line, ResourceError, nil, "too many normals: max %d", p.opts.MaxNormals)
		}
	case KindKeywordF, KindKeywordG:
		if p.object == nil {
			p.selectObject(p.a.Clone([]byte(DefaultObjectName)))
		}
	}
	return nil
}

// endStatement commits the statement whose arguments were all consumed.
func (p *parser) endStatement() {
	switch p.exp.keyword {
	case KindKeywordV:
		if p.exp.count < 4 {
			p.positions[p.npos][3] = 1
		}
		p.npos++
	case KindKeywordVT:
		p.ntex++
	case KindKeywordVN:
		p.nnorm++
	}
	p.exp = expectation{kind: KindKeyword}
}

func (p *parser) argument(tok Token) error {
	switch p.exp.keyword {
	case KindKeywordO:
		p.selectObject(tok.Value)
	case KindKeywordG:
		p.selectGroup(tok.Value)
	case KindKeywordV, KindKeywordVT, KindKeywordVN:
		f, err := p.parseFloat(tok)
		if err != nil {
			return err
		}
		switch p.exp.keyword {
		case KindKeywordV:
			p.positions[p.npos][p.exp.count] = f
		case KindKeywordVT:
			p.texCoords[p.ntex][p.exp.count] = f
		case KindKeywordVN:
			p.normals[p.nnorm][p.exp.count] = f
		}
	case KindKeywordF:
		return p.face(tok)
	}
	return nil
}

// selectObject makes the object named name current, creating it if needed.
func (p *parser) selectObject(name []byte) {
	p.group = nil
	if o, ok := p.scene.Lookup(name); ok {
		p.object = o
		return
	}
	o := newObject(p.a, name, p.opts.MaxVertices)
	p.scene.appendObject(o)
	p.object = o
}

// selectGroup makes the group named name of the current object current.
func (p *parser) selectGroup(name []byte) {
	if g, ok := p.object.LookupGroup(name); ok {
		p.group = g
		return
	}
	g := newGroup(p.a, name, p.opts.MaxGroupIndices)
	p.object.appendGroup(g)
	p.group = g
}

func (p *parser) parseFloat(tok Token) (float32, error) {
	f, err := strconv.ParseFloat(bytesToString(tok.Value), 32)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, &ParseError{
			Fname:    p.fname,
			Line:     tok.Line,
			Kind:     LexicalError,
			Expected: KindFloat.String(),
			Got:      string(tok.Value),
			Err:      err,
		}
	}
	return float32(f), nil
}

// face resolves a primitive element and appends its vertex.
func (p *parser) face(tok Token) error {
	_, v, vt, vn := splitElement(tok.Value)
	pi, err := p.resolve(tok, v, p.npos-1, "vertex")
	if err != nil {
		return err
	}
	if pi == 0 {
		return p.errorf(tok.Line, GrammarError, ErrIndexOutOfRange, "vertex index 0 in '%s': indices start at 1", tok.Value)
	}
	ti, err := p.resolve(tok, vt, p.ntex-1, "texture coordinate")
	if err != nil {
		return err
	}
	ni, err := p.resolve(tok, vn, p.nnorm-1, "normal")
	if err != nil {
		return err
	}

	o := p.object
	if len(o.Vertices) == cap(o.Vertices) {
		return p.errorf(tok.Line, ResourceError, nil, "too many face vertices in object '%s': max %d", o.Name, p.opts.MaxVertices)
	}
	if p.group != nil && len(p.group.Indices) == cap(p.group.Indices) {
		return p.errorf(tok.Line, ResourceError, nil, "too many face vertices in group '%s': max %d", p.group.Name, p.opts.MaxGroupIndices)
	}
	idx := Index(len(o.Vertices))
	o.Vertices = append(o.Vertices, Vertex{
		Position: p.positions[pi],
		TexCoord: p.texCoords[ti],
		Normal:   p.normals[ni],
	})
	o.Indices = append(o.Indices, idx)
	if p.group != nil {
		p.group.Indices = append(p.group.Indices, idx)
	}
	return nil
}

// resolve converts an index slot to a pool index. A missing slot is the
// sentinel 0, and a negative index counts back from the last of n defined
// entries.
func (p *parser) resolve(tok Token, slot []byte, n int, what string) (int, error) {
	if len(slot) == 0 {
		return 0, nil
	}
	i, err := strconv.Atoi(bytesToString(slot))
	if err != nil {
		return 0, p.errorf(tok.Line, GrammarError, ErrIndexOutOfRange, "%s index %s in '%s': %v", what, slot, tok.Value, err)
	}
	if i < 0 {
		i += n + 1
		if i < 1 {
			return 0, p.errorf(tok.Line, GrammarError, ErrIndexOutOfRange, "%s index %s in '%s': only %d defined", what, slot, tok.Value, n)
		}
	}
	if i > n {
		return 0, p.errorf(tok.Line, GrammarError, ErrIndexOutOfRange, "%s index %s in '%s': only %d defined", what, slot, tok.Value, n)
	}
	return i, nil
}

func (p *parser) errorf(line int, kind ErrorKind, err error, format string, args ...any) error {
	return &ParseError{
		Fname: p.fname,
		Line:  line,
		Kind:  kind,
		Msg:   fmt.Sprintf(format, args...),
		Err:   err,
	}
}

// bytesToString returns a string sharing memory with b.
// b must not be modified while the string is used.
func bytesToString(b []byte) string {
	return unsafe.String(unsafe.SliceData(b), len(b))
}
