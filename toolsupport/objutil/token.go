// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package objutil

import "fmt"

// TokenKind is a kind of token.
type TokenKind int

// Token kinds. Keyword kinds are between KindKeywordO and KindKeywordG.
const (
	KindNone TokenKind = iota
	// KindKeyword is used by the parser as "any keyword".
	KindKeyword
	KindKeywordO
	KindKeywordV
	KindKeywordVT
	KindKeywordVN
	KindKeywordF
	KindKeywordG
	KindName
	KindFloat
	KindInteger
	KindPrimitiveElement
	KindEOF
)

var tokenKindNames = [...]string{
	KindNone:             "none",
	KindKeyword:          "keyword",
	KindKeywordO:         "o",
	KindKeywordV:         "v",
	KindKeywordVT:        "vt",
	KindKeywordVN:        "vn",
	KindKeywordF:         "f",
	KindKeywordG:         "g",
	KindName:             "name",
	KindFloat:            "float",
	KindInteger:          "integer",
	KindPrimitiveElement: "primitive element",
	KindEOF:              "end of file",
}

func (k TokenKind) String() string {
	if k < 0 || int(k) >= len(tokenKindNames) {
		return fmt.Sprintf("TokenKind(%d)", int(k))
	}
	return tokenKindNames[k]
}

// IsKeyword reports whether k is one of the reserved words.
func (k TokenKind) IsKeyword() bool {
	return KindKeywordO <= k && k <= KindKeywordG
}

// keywords are the reserved words, matched exactly.
var keywords = []struct {
	word string
	kind TokenKind
}{
	{"o", KindKeywordO},
	{"v", KindKeywordV},
	{"vt", KindKeywordVT},
	{"vn", KindKeywordVN},
	{"f", KindKeywordF},
	{"g", KindKeywordG},
}

// Token is a lexical token. Value is a view into the source buffer.
type Token struct {
	Kind  TokenKind
	Value []byte
	// Line is the 1-based line the token starts on.
	Line int
}

func (t Token) String() string {
	return fmt.Sprintf("[%s, '%s']", t.Kind, t.Value)
}
