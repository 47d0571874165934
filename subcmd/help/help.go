// Copyright 2023 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package help provides help subcommand.
package help

import (
	"fmt"
	"io"

	"github.com/maruel/subcommands"
)

const grammar = `Supported OBJ statements:
  o <name>                   select or create an object
  g <name>                   select or create a group in the current object
  v x y z [w]                vertex position (w defaults to 1)
  vt u v [w]                 texture coordinate
  vn x y z                   normal
  f v[/vt[/vn]] x3           triangle; negative indices count back
  # ...                      comment

Input files ending in .gz or .zst are decompressed.
`

// Cmd returns the Command for the `help` subcommand provided by this package.
func Cmd() *subcommands.Command {
	return &subcommands.Command{
		UsageLine: "help [<command>|-advanced]",
		ShortDesc: "prints help about a command",
		LongDesc:  "Prints commands and the supported OBJ statements, or help about a specific command.\nUse -advanced to display all commands.",
		CommandRun: func() subcommands.CommandRun {
			ret := &helpCmdRun{}
			ret.Flags.BoolVar(&ret.advanced, "advanced", false, "show advanced commands")
			return ret
		},
	}
}

type helpCmdRun struct {
	subcommands.CommandRunBase
	advanced bool
}

func (h *helpCmdRun) Run(a subcommands.Application, args []string, env subcommands.Env) int {
	// For top-level help, print subcommands.Usage. Then the grammar.
	if len(args) == 0 {
		subcommands.Usage(a.GetOut(), a, h.advanced)
		printGrammar(a.GetOut())
		return 0
	}

	// Use default subcommands.CmdHelp for all other cases.
	helpInit := subcommands.CmdHelp.CommandRun()
	return helpInit.Run(a, args, env)
}

func printGrammar(w io.Writer) {
	fmt.Fprint(w, grammar)
}
