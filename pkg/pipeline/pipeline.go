// Package pipeline provides the load → edit → write pipeline shared by the
// CLI and the HTTP API.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: read an AGP (or JSON) layout from a file or reader
//  2. Edit: apply one [Operation] such as a flip, split or join
//  3. Write: emit the edited layout as AGP or JSON, atomically for files
//
// Each stage emits [observability.PipelineHooks] events and is timed in
// [Stats]. Assembly goes through [Runner.Assemble], which caches whole
// assembled objects keyed by the hash of the layout.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Input:     "scaffolds.agp",
//	    Output:    "flipped.agp",
//	    Operation: pipeline.FlipOp(ranges),
//	})
package pipeline

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	agpio "github.com/matzehuels/agptools/pkg/io"
)

// Format constants for layout files.
const (
	FormatAGP  = "agp"
	FormatJSON = "json"
)

// ValidFormats is the set of supported layout formats.
var ValidFormats = map[string]bool{
	FormatAGP:  true,
	FormatJSON: true,
}

// Options contains all configuration for one pipeline run.
type Options struct {
	// Input is the layout path. Empty or "-" reads In.
	Input string `json:"input,omitempty"`
	// Output is the destination path. Empty or "-" writes Out.
	Output string `json:"output,omitempty"`
	// InputFormat and OutputFormat default to the path extension, then AGP.
	InputFormat  string `json:"input_format,omitempty"`
	OutputFormat string `json:"output_format,omitempty"`

	// Runtime options (not serialized)
	Operation Operation   `json:"-"`
	In        io.Reader   `json:"-"`
	Out       io.Writer   `json:"-"`
	Logger    *log.Logger `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Document is the edited layout with the input's comment lines.
	Document *agpio.Document

	// Warnings lists non-fatal findings, such as names a removal did not find.
	Warnings []string

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	ObjectsIn     int
	ObjectsOut    int
	BytesWritten  int64
	LoadTime      time.Duration
	TransformTime time.Duration
	WriteTime     time.Duration
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: agp, json)", format)
	}
	return nil
}

// FormatFor infers the layout format from a path extension.
func FormatFor(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatAGP
}

// isStdio reports whether path names the standard stream.
func isStdio(path string) bool { return path == "" || path == "-" }

// ValidateAndSetDefaults checks the options and fills in defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.InputFormat == "" {
		o.InputFormat = FormatFor(o.Input)
	}
	if o.OutputFormat == "" {
		o.OutputFormat = FormatFor(o.Output)
	}
	if err := ValidateFormat(o.InputFormat); err != nil {
		return err
	}
	if err := ValidateFormat(o.OutputFormat); err != nil {
		return err
	}
	if isStdio(o.Input) && o.In == nil {
		return fmt.Errorf("no input: set a path or a reader")
	}
	if isStdio(o.Output) && o.Out == nil {
		return fmt.Errorf("no output: set a path or a writer")
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// source names the input for logs and hooks.
func (o *Options) source() string {
	if isStdio(o.Input) {
		return "<stdin>"
	}
	return o.Input
}

// dest names the output for logs and hooks.
func (o *Options) dest() string {
	if isStdio(o.Output) {
		return "<stdout>"
	}
	return o.Output
}
