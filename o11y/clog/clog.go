// Copyright 2023 The Chromium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package clog provides context aware logging.
// A logger stored in a context carries labels, such as the run id and the
// input file, which are added to each log entry automatically.
package clog

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

// LevelEnv is the environment variable for the default log level.
const LevelEnv = "OBJMESH_LOG_LEVEL"

// ParseLevel parses a log level name. An empty name is the info level.
func ParseLevel(s string) (log.Level, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return log.InfoLevel, nil
	}
	lv, err := log.ParseLevel(s)
	if err != nil {
		return log.InfoLevel, fmt.Errorf("bad log level %q: %w", s, err)
	}
	return lv, nil
}

// SetDefaultLevel sets the level of the default logger.
func SetDefaultLevel(s string) error {
	lv, err := ParseLevel(s)
	if err != nil {
		return err
	}
	log.SetLevel(lv)
	return nil
}

// New creates a new logger writing to w at the given level.
func New(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		Prefix:          "objmesh",
	})
}

// NewContext sets the given logger to the context.
func NewContext(ctx context.Context, logger *log.Logger) context.Context {
	return log.WithContext(ctx, logger)
}

// NewSpan sets a logger with the given labels to the context.
// labels are key value pairs.
func NewSpan(ctx context.Context, labels ...any) context.Context {
	return NewContext(ctx, FromContext(ctx).With(labels...))
}

// FromContext returns a logger in the context, or the default logger
// if it's not set.
func FromContext(ctx context.Context) *log.Logger {
	return log.FromContext(ctx)
}
