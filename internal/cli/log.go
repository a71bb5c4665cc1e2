// Package cli implements the agptools command-line interface.
//
// Every editing command reads an edit list and an AGP file (standard input
// when the path is omitted), applies one operation through the pipeline
// runner and writes AGP or JSON to -o or standard output. Status lines go to
// standard error so output can be piped.
//
// # Commands
//
//   - split, join, flip, remove, rename, compose: layout edits
//   - transform: translate BED intervals from components to objects
//   - assemble: build object sequences from component FASTA or Redis
//   - store: load component sequences into Redis
//   - render, view, stats: inspect a layout
//   - serve: answer layout queries over HTTP
//   - cache: manage the assembled-sequence cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging and --config
// to point at a TOML configuration file.
package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger writes to w at level, stamping lines as "15:04:05.00".
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress logs a completion line with the time spent since it was created,
// e.g. "flip: 3 objects in, 3 out (12ms)".
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}
