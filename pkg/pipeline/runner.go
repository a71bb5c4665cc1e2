package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/agptools/pkg/agp"
	"github.com/matzehuels/agptools/pkg/assemble"
	"github.com/matzehuels/agptools/pkg/cache"
	agpio "github.com/matzehuels/agptools/pkg/io"
	"github.com/matzehuels/agptools/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating stage logic.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → edit → write pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	op := opts.Operation
	if op == nil {
		op = Identity()
	}
	result := &Result{}

	// Stage 1: Load
	loadStart := time.Now()
	doc, err := r.Load(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.ObjectsIn = doc.Layout.Len()

	r.Logger.Info("loaded layout",
		"source", opts.source(),
		"objects", doc.Layout.Len(),
		"duration", result.Stats.LoadTime)

	// Stage 2: Edit
	transformStart := time.Now()
	edited, warnings, err := r.Apply(ctx, doc.Layout, op)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op.Name(), err)
	}
	result.Document = doc.WithLayout(edited)
	result.Warnings = warnings
	result.Stats.TransformTime = time.Since(transformStart)
	result.Stats.ObjectsOut = edited.Len()

	for _, w := range warnings {
		r.Logger.Warn(w, "op", op.Name())
	}
	r.Logger.Info("applied edit",
		"op", op.Name(),
		"objects", edited.Len(),
		"duration", result.Stats.TransformTime)

	// Stage 3: Write
	writeStart := time.Now()
	n, err := r.Write(ctx, result.Document, opts)
	if err != nil {
		return nil, fmt.Errorf("write: %w", err)
	}
	result.Stats.BytesWritten = n
	result.Stats.WriteTime = time.Since(writeStart)

	r.Logger.Debug("wrote layout",
		"dest", opts.dest(),
		"bytes", n,
		"duration", result.Stats.WriteTime)

	return result, nil
}

// Load reads the input layout named by opts.
func (r *Runner) Load(ctx context.Context, opts Options) (*agpio.Document, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	hooks := observability.Pipeline()
	source := opts.source()
	hooks.OnLoadStart(ctx, source)
	start := time.Now()

	doc, err := load(opts)
	objects := 0
	if err == nil {
		objects = doc.Layout.Len()
	}
	hooks.OnLoadComplete(ctx, source, objects, time.Since(start), err)
	return doc, err
}

func load(opts Options) (*agpio.Document, error) {
	in := opts.In
	if !isStdio(opts.Input) {
		f, err := os.Open(opts.Input)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		in = f
	}
	if opts.InputFormat == FormatJSON {
		l, err := agpio.ReadJSON(in)
		if err != nil {
			return nil, err
		}
		return &agpio.Document{Layout: l}, nil
	}
	return agpio.ReadAGP(in)
}

// Apply runs op on layout.
func (r *Runner) Apply(ctx context.Context, layout *agp.Layout, op Operation) (*agp.Layout, []string, error) {
	hooks := observability.Pipeline()
	hooks.OnTransformStart(ctx, op.Name(), layout.Len())
	start := time.Now()

	out, warnings, err := op.Apply(layout)
	hooks.OnTransformComplete(ctx, op.Name(), time.Since(start), err)
	return out, warnings, err
}

// Write emits doc to the destination named by opts and returns the number
// of bytes written. Files are replaced atomically.
func (r *Runner) Write(ctx context.Context, doc *agpio.Document, opts Options) (int64, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return 0, err
	}
	hooks := observability.Pipeline()
	dest := opts.dest()
	hooks.OnWriteStart(ctx, dest)
	start := time.Now()

	var n int64
	emit := func(w io.Writer) error {
		cw := &countingWriter{w: w}
		err := writeDocument(cw, doc, opts.OutputFormat)
		n = cw.n
		return err
	}
	var err error
	if isStdio(opts.Output) {
		err = emit(opts.Out)
	} else {
		err = agpio.WriteFileAtomic(opts.Output, emit)
	}
	hooks.OnWriteComplete(ctx, dest, n, time.Since(start), err)
	return n, err
}

func writeDocument(w io.Writer, doc *agpio.Document, format string) error {
	if format == FormatJSON {
		return agpio.WriteJSON(w, doc.Layout)
	}
	return agpio.WriteAGP(w, doc)
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// LayoutHash returns the content hash of the layout's AGP text. It
// identifies a layout in cache keys and API responses.
func LayoutHash(layout *agp.Layout) string {
	var buf bytes.Buffer
	_ = agpio.WriteAGP(&buf, &agpio.Document{Layout: layout})
	return cache.Hash(buf.Bytes())
}

// AssembleResult is the output of [Runner.Assemble].
type AssembleResult struct {
	Sequences []assemble.Sequence
	// CacheHits counts objects served from the cache.
	CacheHits int
	Duration  time.Duration
}

// Assemble builds the sequence of every object in layout. Objects already
// assembled for an identical layout from the same sequence source are served
// from the cache; the rest are assembled in parallel and stored. Providers
// that do not implement [assemble.Sourced] bypass the cache.
func (r *Runner) Assemble(ctx context.Context, layout *agp.Layout, p assemble.SequenceProvider, opts assemble.Options) (*AssembleResult, error) {
	start := time.Now()
	hooks := observability.Cache()
	hash := LayoutHash(layout)

	src := assemble.SourceOf(p)
	if src == "" {
		r.Logger.Debug("sequence provider has no source, assembled objects are not cached")
	}
	keyer := cache.NewScopedKeyer(r.Keyer, src+":")

	objects := layout.Objects()
	out := make([]assemble.Sequence, len(objects))
	var (
		missing []*agp.Object
		slots   []int
	)
	for i, obj := range objects {
		if src == "" {
			missing = append(missing, obj)
			slots = append(slots, i)
			continue
		}
		key := keyer.ObjectKey(hash, obj.Name())
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil {
			hooks.OnCacheError(ctx, "get", key, err)
		}
		if hit && len(data) == obj.Len() {
			hooks.OnCacheHit(ctx, key)
			out[i] = assemble.Sequence{Name: obj.Name(), Seq: data}
			continue
		}
		hooks.OnCacheMiss(ctx, key)
		missing = append(missing, obj)
		slots = append(slots, i)
	}

	if len(missing) > 0 {
		sub, err := agp.NewLayout(missing...)
		if err != nil {
			return nil, err
		}
		if opts.Logger == nil {
			opts.Logger = r.Logger.Debugf
		}
		seqs, err := assemble.Assemble(ctx, sub, p, opts)
		if err != nil {
			return nil, err
		}
		for j, seq := range seqs {
			out[slots[j]] = seq
			if src == "" {
				continue
			}
			key := keyer.ObjectKey(hash, seq.Name)
			if err := r.Cache.Set(ctx, key, seq.Seq, cache.DefaultTTL); err != nil {
				hooks.OnCacheError(ctx, "set", key, err)
			}
		}
	}

	res := &AssembleResult{
		Sequences: out,
		CacheHits: len(objects) - len(missing),
		Duration:  time.Since(start),
	}
	r.Logger.Info("assembled objects",
		"objects", len(objects),
		"cached", res.CacheHits,
		"duration", res.Duration)
	return res, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
