// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package objutil

type charmap [8]uint32

func (m *charmap) set(ch byte) {
	(*m)[ch>>5] |= 1 << uint(ch&31)
}

func (m *charmap) setRange(lo, hi byte) {
	for ch := lo; ch <= hi; ch++ {
		m.set(ch)
	}
}

func (m *charmap) contains(ch byte) bool {
	return (*m)[ch>>5]&(1<<uint(ch&31)) != 0
}

var (
	// [a-zA-Z]
	letterChar charmap
	// [0-9]
	digitChar charmap
	// [a-zA-Z0-9_.-]
	nameChar charmap
	// [0-9.+-]
	numberStartChar charmap
	// space, tab, vertical tab, form feed.
	spacingChar charmap
	// \r\n
	eolChar charmap
	// word separators: spacing and eol.
	separatorChar charmap
)

func init() {
	letterChar.setRange('a', 'z')
	letterChar.setRange('A', 'Z')
	digitChar.setRange('0', '9')

	nameChar = letterChar
	nameChar.setRange('0', '9')
	nameChar.set('_')
	nameChar.set('.')
	nameChar.set('-')

	numberStartChar = digitChar
	numberStartChar.set('.')
	numberStartChar.set('+')
	numberStartChar.set('-')

	for _, ch := range []byte(" \t\v\f") {
		spacingChar.set(ch)
		separatorChar.set(ch)
	}
	for _, ch := range []byte("\r\n") {
		eolChar.set(ch)
		separatorChar.set(ch)
	}
}

func isDigit(ch byte) bool {
	return digitChar.contains(ch)
}

// indexBytesAny returns offset in buf where the byte is in charmap.
func indexBytesAny(buf []byte, cm charmap) int {
	for i := range buf {
		if cm.contains(buf[i]) {
			return i
		}
	}
	return len(buf)
}
