// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package logging builds the zerolog loggers used by the xhrdemo
// binary.
package logging

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Formats lists the output formats New accepts.
var Formats = []string{"console", "json"}

// New returns a logger writing to w at the named level.
//
// The format is either "console", for human-readable colourless lines,
// or "json", for one JSON object per line. An empty level means info
// and an empty format means console.
func New(level, format string, w io.Writer) (zerolog.Logger, error) {
	if level == "" {
		level = "info"
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("logging: %w", err)
	}

	var out io.Writer
	switch strings.ToLower(format) {
	case "", "console":
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: true}
	case "json":
		out = w
	default:
		return zerolog.Nop(), fmt.Errorf("logging: unknown format %q (want one of %s)", format, strings.Join(Formats, ", "))
	}

	return zerolog.New(out).Level(lvl).With().Timestamp().Logger(), nil
}
