// Copyright 2023 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package ui provides console output for command results.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"golang.org/x/term"
)

// https://en.wikipedia.org/wiki/ANSI_escape_code#SGR_(Select_Graphic_Rendition)_parameters
type SGRCode int

const (
	Bold SGRCode = iota
	Red
	Green
	Yellow
	Reset
)

var sgrEscSeq = map[SGRCode]string{
	Bold:   "\033[1m",
	Red:    "\033[31;1m",
	Green:  "\033[32m",
	Yellow: "\033[33m",
	Reset:  "\033[0m",
}

func (s SGRCode) String() string {
	return sgrEscSeq[s]
}

// SGR formats s in SGR (select graphic rendition).
func SGR(n SGRCode, s string) string {
	return n.String() + s + Reset.String()
}

// StripANSIEscapeCodes strips CSI escape sequences.
func StripANSIEscapeCodes(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\033' {
			sb.WriteByte(s[i])
			continue
		}
		if i+1 >= len(s) {
			break
		}
		if s[i+1] != '[' {
			continue
		}
		i += 2
		// final byte of the sequence.
		for i < len(s) && !isLetter(s[i]) {
			i++
		}
	}
	return sb.String()
}

func isLetter(ch byte) bool {
	return ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z')
}

// Printer prints command results.
// Escape sequences are dropped unless the output is a terminal.
type Printer struct {
	w     io.Writer
	color bool
}

// NewPrinter returns a printer for f.
func NewPrinter(f *os.File) *Printer {
	return &Printer{
		w:     f,
		color: term.IsTerminal(int(f.Fd())),
	}
}

// NewPlainPrinter returns a printer that never emits escape sequences.
func NewPlainPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Printf prints a formatted message.
func (p *Printer) Printf(format string, args ...any) {
	s := fmt.Sprintf(format, args...)
	if !p.color {
		s = StripANSIEscapeCodes(s)
	}
	fmt.Fprint(p.w, s)
}

// Status prints the outcome of a parse.
func (p *Printer) Status(success bool) {
	if success {
		p.Printf("%s\n", SGR(Green, "Success!"))
		return
	}
	p.Printf("%s\n", SGR(Red, "Error!"))
}

// Summary prints the number of lines parsed and the elapsed time.
func (p *Printer) Summary(lines int, d time.Duration) {
	p.Printf("Parsed %s line(s) in %s ms\n", SGR(Bold, fmt.Sprint(lines)), FormatMillis(d))
}

// FormatMillis formats d in milliseconds with three decimals.
func FormatMillis(d time.Duration) string {
	return fmt.Sprintf("%.3f", float64(d)/float64(time.Millisecond))
}
