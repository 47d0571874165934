// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package parse is parse subcommand to parse a Wavefront OBJ file.
package parse

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/maruel/subcommands"

	"go.chromium.org/luci/common/cli"

	"go.chromium.org/infra/build/objmesh/arena"
	"go.chromium.org/infra/build/objmesh/o11y/clog"
	"go.chromium.org/infra/build/objmesh/osfs"
	"go.chromium.org/infra/build/objmesh/subcmd/version"
	"go.chromium.org/infra/build/objmesh/toolsupport/objutil"
	"go.chromium.org/infra/build/objmesh/ui"
)

const usage = `parse a Wavefront OBJ file.

 $ objmesh parse [options] <file.obj>

Prints "Success!" or "Error!" and the number of lines parsed.
Exits with 1 on error.
`

// Cmd returns the Command for the `parse` subcommand provided by this package.
func Cmd() *subcommands.Command {
	return &subcommands.Command{
		UsageLine: "parse [options] <file.obj>",
		ShortDesc: "parse a Wavefront OBJ file",
		LongDesc:  usage,
		CommandRun: func() subcommands.CommandRun {
			c := &run{}
			c.init()
			return c
		},
	}
}

type run struct {
	subcommands.CommandRunBase

	opts      objutil.Options
	arenaOpts ArenaOptions
	logLevel  string
	runID     string
	cpuinfo   bool
	summary   bool
}

func (c *run) init() {
	c.opts.RegisterFlags(&c.Flags)
	c.arenaOpts.RegisterFlags(&c.Flags)
	c.Flags.StringVar(&c.logLevel, "log_level", "", "log level: debug, info, warn or error. overrides $"+clog.LevelEnv)
	c.Flags.StringVar(&c.runID, "run_id", "", "id of this run in logs. random uuid if empty")
	c.Flags.BoolVar(&c.cpuinfo, "cpuinfo", false, "log cpu info")
	c.Flags.BoolVar(&c.summary, "summary", false, "print the objects and groups of the scene")
}

func (c *run) Run(a subcommands.Application, args []string, env subcommands.Env) int {
	ctx := cli.GetContext(a, c, env)
	if len(args) != 1 {
		fmt.Fprintf(a.GetErr(), "%s: want one file, got %d\n%s", a.GetName(), len(args), usage)
		return 1
	}
	ctx, err := c.setupLog(ctx, a.GetErr(), env, args[0])
	if err != nil {
		fmt.Fprintf(a.GetErr(), "Error: %v\n", err)
		return 1
	}
	p := ui.NewPrinter(os.Stdout)
	res, dur, err := c.run(ctx, p, args[0])
	if err != nil {
		fmt.Fprintf(a.GetErr(), "%v\n", err)
	}
	p.Status(res.Success)
	p.Summary(res.LinesParsed, dur)
	if !res.Success {
		return 1
	}
	return 0
}

// setupLog sets the logger for fname to the context.
// The -log_level flag takes precedence over the environment variable.
func (c *run) setupLog(ctx context.Context, w io.Writer, env subcommands.Env, fname string) (context.Context, error) {
	level := env[clog.LevelEnv].Value
	if c.logLevel != "" {
		level = c.logLevel
	}
	lv, err := clog.ParseLevel(level)
	if err != nil {
		return ctx, err
	}
	if c.runID == "" {
		c.runID = uuid.New().String()
	}
	ctx = clog.NewContext(ctx, clog.New(w, lv))
	return clog.NewSpan(ctx, "run", c.runID, "file", fname), nil
}

func (c *run) run(ctx context.Context, p *ui.Printer, fname string) (objutil.Result, time.Duration, error) {
	logger := clog.FromContext(ctx)
	if c.cpuinfo {
		logger.Infof("%s", version.CPUInfo())
	}
	a := c.arenaOpts.New()
	defer func() {
		err := a.Release()
		if err != nil {
			logger.Warnf("release arena: %v", err)
		}
	}()
	fsys := osfs.New(fname)

	started := time.Now()
	res, err := objutil.Parse(ctx, a, fsys, fname, c.opts)
	dur := time.Since(started)
	logger.Debugf("io: %s", fsys.Stats())
	logger.Debugf("arena: %+v", a.Metrics())
	var perr *objutil.ParseError
	switch {
	case err == nil:
	case errors.As(err, &perr):
		logger.Debugf("%s at line %d", perr.Kind, perr.Line)
	case errors.Is(err, os.ErrNotExist):
		logger.Debugf("no such file %s", fname)
	}
	if c.summary && res.Scene != nil {
		printScene(p, res.Scene)
	}
	return res, dur, err
}

func printScene(p *ui.Printer, s *objutil.Scene) {
	for o := range s.Objects() {
		p.Printf("%s %s: %d vertices, %d groups\n", ui.SGR(ui.Bold, "o"), o.Name, len(o.Vertices), o.NumGroups())
		for g := range o.Groups() {
			p.Printf("  %s %s: %d indices\n", ui.SGR(ui.Yellow, "g"), g.Name, len(g.Indices))
		}
	}
}

// ArenaOptions configures the arena a command parses into.
type ArenaOptions struct {
	// FixedSize is the size of a fixed arena. If zero, a virtual arena
	// is used.
	FixedSize    int
	MinBlockSize int
	ReserveSize  int64
}

// RegisterFlags registers flags for the arena options.
func (o *ArenaOptions) RegisterFlags(flagSet *flag.FlagSet) {
	flagSet.IntVar(&o.FixedSize, "arena_fixed_size", 0, "size of a fixed arena in bytes. virtual memory is used if 0")
	flagSet.IntVar(&o.MinBlockSize, "arena_min_block", arena.DefaultMinBlockSize, "minimum commit size of the virtual arena")
	flagSet.Int64Var(&o.ReserveSize, "arena_reserve", arena.DefaultReserveSize, "address space reserved by the virtual arena")
}

// New creates an arena for the options.
func (o ArenaOptions) New() *arena.Arena {
	if o.FixedSize > 0 {
		return arena.NewFixed(make([]byte, o.FixedSize))
	}
	var opts []arena.Option
	if o.ReserveSize > 0 {
		opts = append(opts, arena.WithReserveSize(int(o.ReserveSize)))
	}
	return arena.NewVirtual(o.MinBlockSize, opts...)
}
