// Copyright 2023 The Chromium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// objmesh parses Wavefront OBJ meshes into a memory arena.
package main

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/maruel/subcommands"

	"go.chromium.org/luci/common/cli"
	"go.chromium.org/luci/common/system/signals"

	"go.chromium.org/infra/build/objmesh/o11y/clog"
	"go.chromium.org/infra/build/objmesh/subcmd/help"
	"go.chromium.org/infra/build/objmesh/subcmd/parse"
	"go.chromium.org/infra/build/objmesh/subcmd/tokens"
	"go.chromium.org/infra/build/objmesh/subcmd/version"
	"go.chromium.org/infra/build/objmesh/ui"
)

const versionID = "objmesh v0.1.0"

func getApplication(ctx context.Context) *cli.Application {
	return &cli.Application{
		Name:  "objmesh",
		Title: "Wavefront OBJ parser",
		Context: func(context.Context) context.Context {
			return ctx
		},
		Commands: []*subcommands.Command{
			parse.Cmd(),
			tokens.Cmd(),

			help.Cmd(),
			version.Cmd(versionID),
		},
		EnvVars: map[string]subcommands.EnvVarDefinition{
			clog.LevelEnv: {
				ShortDesc: "log level: debug, info, warn or error",
				Default:   "info",
			},
		},
	}
}

func main() {
	os.Exit(objmeshMain(os.Args[1:]))
}

func objmeshMain(args []string) (exitCode int) {
	ui.Init()
	defer ui.Restore()

	ctx, cancel := context.WithCancel(context.Background())
	defer signals.HandleInterrupt(cancel)()

	// Print a stack trace when a panic occurs, such as an arena
	// running out of reserved address space.
	defer func() {
		if r := recover(); r != nil {
			const size = 64 << 10
			buf := make([]byte, size)
			buf = buf[:runtime.Stack(buf, false)]
			fmt.Fprintf(os.Stderr, "panic: %v\n%s", r, buf)
			exitCode = 1
		}
	}()

	err := clog.SetDefaultLevel(os.Getenv(clog.LevelEnv))
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", clog.LevelEnv, err)
	}
	logBuildInfo()
	return subcommands.Run(getApplication(ctx), args)
}

func logBuildInfo() {
	buildinfo, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	log.Debugf("buildinfo: path=%q", buildinfo.Path)
	log.Debugf("main module: %s %s", version.ModuleInfo(&buildinfo.Main), vcsInfo(buildinfo))
}

func vcsInfo(buildinfo *debug.BuildInfo) string {
	m := make(map[string]string)
	for _, bs := range buildinfo.Settings {
		if strings.HasPrefix(bs.Key, "vcs.") {
			m[bs.Key] = bs.Value
		}
	}
	return fmt.Sprintf("vcs[revision=%s time=%s modified=%s]", m["vcs.revision"], m["vcs.time"], m["vcs.modified"])
}
