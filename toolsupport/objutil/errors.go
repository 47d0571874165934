// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package objutil

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a ParseError.
type ErrorKind int

const (
	// LexicalError is a malformed number, name or primitive element.
	LexicalError ErrorKind = iota + 1
	// GrammarError is an unexpected token kind or a wrong argument count.
	GrammarError
	// ResourceError is a pool or vertex array running out of capacity.
	ResourceError
)

func (k ErrorKind) String() string {
	switch k {
	case LexicalError:
		return "syntax error"
	case GrammarError:
		return "grammar error"
	case ResourceError:
		return "resource error"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// ErrIndexOutOfRange is wrapped by a ParseError for face indices that are
// zero or refer past the defined entries of a pool.
var ErrIndexOutOfRange = errors.New("index out of range")

// ParseError is an error at a position in an OBJ file.
type ParseError struct {
	Fname string
	Line  int
	Kind  ErrorKind

	// Expected and Got describe token mismatches. Got is the offending
	// text for lexical errors, or a token kind for grammar errors.
	Expected string
	Got      string

	// Msg is used instead of Expected/Got when set.
	Msg string
	Err error
}

func (e *ParseError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("%s:%d: %s: %s", e.Fname, e.Line, e.Kind, e.Msg)
	}
	return fmt.Sprintf("%s:%d: %s: expected a %s. got: %s", e.Fname, e.Line, e.Kind, e.Expected, e.Got)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
