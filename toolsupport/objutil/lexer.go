// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package objutil

import (
	"fmt"
	"iter"
)

// Tokenizer splits OBJ source into tokens.
//
// Numeric words are classified by the last keyword seen: after "f" they are
// primitive elements, after "v", "vt" or "vn" they are floats even when they
// look like integers, and otherwise integers are preferred over floats.
type Tokenizer struct {
	fname string
	buf   []byte
	pos   int
	line  int

	lastKeyword TokenKind
}

// NewTokenizer creates a tokenizer for buf. fname is used in errors.
func NewTokenizer(fname string, buf []byte) *Tokenizer {
	return &Tokenizer{
		fname: fname,
		buf:   buf,
		line:  1,
	}
}

// Line returns the current 1-based line number.
func (t *Tokenizer) Line() int {
	return t.line
}

// LinesScanned returns the number of lines the tokenizer has entered.
// A line terminator at the very end of the input does not start a new line.
func (t *Tokenizer) LinesScanned() int {
	n := t.line
	if t.pos == len(t.buf) && (len(t.buf) == 0 || eolChar.contains(t.buf[len(t.buf)-1])) {
		n--
	}
	return n
}

// skipSpaces skips comments, spacing and line terminators.
// CRLF counts as a single line break.
func (t *Tokenizer) skipSpaces() {
	for t.pos < len(t.buf) {
		switch ch := t.buf[t.pos]; {
		case ch == '#':
			t.pos += indexBytesAny(t.buf[t.pos:], eolChar)
		case ch == '\r':
			t.pos++
			if t.pos < len(t.buf) && t.buf[t.pos] == '\n' {
				t.pos++
			}
			t.line++
		case ch == '\n':
			t.pos++
			t.line++
		case spacingChar.contains(ch):
			t.pos++
		default:
			return
		}
	}
}

// Next returns the next token.
// On a malformed word, it returns a KindNone token holding the word and a
// *ParseError. At the end of input, it returns a KindEOF token.
func (t *Tokenizer) Next() (Token, error) {
	t.skipSpaces()
	if t.pos >= len(t.buf) {
		return Token{Kind: KindEOF, Line: t.line}, nil
	}
	n := indexBytesAny(t.buf[t.pos:], separatorChar)
	word := t.buf[t.pos : t.pos+n : t.pos+n]
	t.pos += n
	tok := Token{Value: word, Line: t.line}

	switch ch := word[0]; {
	case letterChar.contains(ch) || ch == '_':
		if kind, ok := lookupKeyword(word); ok {
			tok.Kind = kind
			t.lastKeyword = kind
			return tok, nil
		}
		if !ValidName(word) {
			return t.fail(tok, "name")
		}
		tok.Kind = KindName

	case numberStartChar.contains(ch):
		switch t.lastKeyword {
		case KindKeywordF:
			if !ValidPrimitiveElement(word) {
				return t.fail(tok, "primitive element")
			}
			tok.Kind = KindPrimitiveElement
		case KindKeywordV, KindKeywordVT, KindKeywordVN:
			if !ValidFloat(word) {
				return t.fail(tok, "float")
			}
			tok.Kind = KindFloat
		default:
			switch {
			case ValidInt(word):
				tok.Kind = KindInteger
			case ValidFloat(word):
				tok.Kind = KindFloat
			default:
				return t.fail(tok, "number")
			}
		}

	default:
		tok.Kind = KindNone
		return tok, &ParseError{
			Fname: t.fname,
			Line:  tok.Line,
			Kind:  LexicalError,
			Msg:   fmt.Sprintf("unexpected character %q in %q", ch, word),
		}
	}
	return tok, nil
}

func (t *Tokenizer) fail(tok Token, expected string) (Token, error) {
	tok.Kind = KindNone
	return tok, &ParseError{
		Fname:    t.fname,
		Line:     tok.Line,
		Kind:     LexicalError,
		Expected: expected,
		Got:      string(tok.Value),
	}
}

// All returns an iterator over the remaining tokens.
// It stops after the end of file token or the first error.
func (t *Tokenizer) All() iter.Seq2[Token, error] {
	return func(yield func(Token, error) bool) {
		for {
			tok, err := t.Next()
			if !yield(tok, err) || err != nil || tok.Kind == KindEOF {
				return
			}
		}
	}
}

func lookupKeyword(word []byte) (TokenKind, bool) {
	for _, kw := range keywords {
		if CompareCString(kw.word, word) == 0 {
			return kw.kind, true
		}
	}
	return KindNone, false
}
