// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package tokens is tokens subcommand to print the tokens of an OBJ file.
package tokens

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/maruel/subcommands"

	"go.chromium.org/luci/common/cli"

	"go.chromium.org/infra/build/objmesh/arena"
	"go.chromium.org/infra/build/objmesh/o11y/clog"
	"go.chromium.org/infra/build/objmesh/osfs"
	"go.chromium.org/infra/build/objmesh/toolsupport/objutil"
)

const usage = `print tokens of a Wavefront OBJ file.

 $ objmesh tokens [-lines] <file.obj>

Prints one [kind, 'text'] line per token, up to the end of file or
the first syntax error.
`

// Cmd returns the Command for the `tokens` subcommand provided by this package.
func Cmd() *subcommands.Command {
	return &subcommands.Command{
		UsageLine: "tokens [-lines] <file.obj>",
		ShortDesc: "print tokens of a Wavefront OBJ file",
		LongDesc:  usage,
		Advanced:  true,
		CommandRun: func() subcommands.CommandRun {
			c := &run{}
			c.init()
			return c
		},
	}
}

type run struct {
	subcommands.CommandRunBase

	lines bool
}

func (c *run) init() {
	c.Flags.BoolVar(&c.lines, "lines", false, "prefix each token with its line number")
}

func (c *run) Run(a subcommands.Application, args []string, env subcommands.Env) int {
	ctx := cli.GetContext(a, c, env)
	if len(args) != 1 {
		fmt.Fprintf(a.GetErr(), "%s: want one file, got %d\n%s", a.GetName(), len(args), usage)
		return 1
	}
	err := c.run(ctx, a.GetOut(), args[0])
	if err != nil {
		fmt.Fprintf(a.GetErr(), "%v\n", err)
		return 1
	}
	return 0
}

func (c *run) run(ctx context.Context, w io.Writer, fname string) error {
	a := arena.NewVirtual(0)
	defer a.Release()
	buf, err := osfs.New(fname).ReadFile(ctx, a, fname)
	if err != nil {
		return err
	}
	scratch := arena.NewScratch(arena.DefaultScratchSize)
	n := 0
	for tok, err := range objutil.NewTokenizer(fname, buf).All() {
		if err != nil {
			return err
		}
		err = c.print(w, scratch, tok)
		if err != nil {
			return err
		}
		n++
	}
	clog.FromContext(ctx).Debugf("%s: %d tokens", fname, n)
	return nil
}

func (c *run) print(w io.Writer, scratch *arena.Scratch, tok objutil.Token) error {
	if formattedSize(tok) > arena.DefaultScratchSize {
		_, err := w.Write(formatToken(arena.NewFixed(make([]byte, formattedSize(tok))), tok, c.lines))
		return err
	}
	s := scratch.Begin()
	defer scratch.End()
	_, err := w.Write(formatToken(s, tok, c.lines))
	return err
}

// formatToken formats tok as "[kind, 'text']\n" in memory from a.
func formatToken(a *arena.Arena, tok objutil.Token, lines bool) []byte {
	kind := tok.Kind.String()
	b := arena.MakeSlice[byte](a, 0, formattedSize(tok))
	if lines {
		b = strconv.AppendInt(b, int64(tok.Line), 10)
		b = append(b, ": "...)
	}
	b = append(b, '[')
	b = append(b, kind...)
	b = append(b, ", '"...)
	b = append(b, tok.Value...)
	b = append(b, "']\n"...)
	return b
}

// formattedSize is an upper bound of the size of a formatted token.
func formattedSize(tok objutil.Token) int {
	// line number, ": ", brackets, quotes, ", " and newline.
	return len(tok.Kind.String()) + len(tok.Value) + 32
}
