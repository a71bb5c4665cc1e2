package assemble

import (
	"bytes"
	"context"
	"sync"

	"github.com/matzehuels/agptools/pkg/agp"
	errs "github.com/matzehuels/agptools/pkg/errors"
)

// DefaultWorkers is the number of objects assembled in parallel.
const DefaultWorkers = 8

// SequenceProvider fetches component sequence slices.
type SequenceProvider interface {
	// Fetch returns bases [start, end] (1-based, inclusive) of component id.
	// A component the provider does not know fails with
	// COMPONENT_NOT_FOUND.
	Fetch(ctx context.Context, id string, start, end int) ([]byte, error)
}

// Sourced is implemented by providers that can name where their bases
// come from. Two providers with the same Source serve identical sequences,
// so results assembled from one may be reused for the other.
type Sourced interface {
	Source() string
}

// SourceOf returns p's Source, or "" when p cannot identify its bases.
func SourceOf(p SequenceProvider) string {
	if s, ok := p.(Sourced); ok {
		return s.Source()
	}
	return ""
}

// ProviderFunc adapts a function to SequenceProvider.
type ProviderFunc func(ctx context.Context, id string, start, end int) ([]byte, error)

// Fetch calls f.
func (f ProviderFunc) Fetch(ctx context.Context, id string, start, end int) ([]byte, error) {
	return f(ctx, id, start, end)
}

// Options configures assembly.
type Options struct {
	Workers int                  // Objects assembled in parallel (default: 8)
	Logger  func(string, ...any) // Progress callback (optional)
}

// WithDefaults returns a copy of Options with zero values replaced by defaults.
func (o Options) WithDefaults() Options {
	opts := o
	if opts.Workers <= 0 {
		opts.Workers = DefaultWorkers
	}
	if opts.Logger == nil {
		opts.Logger = func(string, ...any) {}
	}
	return opts
}

// Sequence is an assembled object.
type Sequence struct {
	Name string
	Seq  []byte
}

// ByName indexes assembled sequences by object name.
func ByName(seqs []Sequence) map[string][]byte {
	m := make(map[string][]byte, len(seqs))
	for _, s := range seqs {
		m[s.Name] = s.Seq
	}
	return m
}

// AssembleObject builds the sequence of a single object.
func AssembleObject(ctx context.Context, obj *agp.Object, p SequenceProvider) (Sequence, error) {
	var buf bytes.Buffer
	buf.Grow(obj.Len())
	for _, r := range obj.Records() {
		if err := ctx.Err(); err != nil {
			return Sequence{}, err
		}
		switch rec := r.Payload.(type) {
		case agp.Gap:
			buf.Write(bytes.Repeat([]byte{'N'}, rec.Length))
		case agp.Component:
			seq, err := p.Fetch(ctx, rec.ID, rec.Start, rec.End)
			if err != nil {
				code := errs.GetCode(err)
				if code == "" {
					code = errs.ErrCodeInternal
				}
				return Sequence{}, errs.Wrap(code, err, "%s part %d", obj.Name(), r.Part)
			}
			if len(seq) != rec.Len() {
				return Sequence{}, errs.New(errs.ErrCodeOutOfRange,
					"%s part %d: component %s:%d-%d returned %d bases, want %d",
					obj.Name(), r.Part, rec.ID, rec.Start, rec.End, len(seq), rec.Len())
			}
			if rec.Orientation == agp.Minus {
				seq = ReverseComplement(seq)
			}
			buf.Write(seq)
		}
	}
	return Sequence{Name: obj.Name(), Seq: buf.Bytes()}, nil
}

// Assemble builds the sequence of every object in layout, in layout order.
func Assemble(ctx context.Context, layout *agp.Layout, p SequenceProvider, opts Options) ([]Sequence, error) {
	opts = opts.WithDefaults()
	objects := layout.Objects()
	out := make([]Sequence, len(objects))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobs := make(chan int)
	var (
		wg       sync.WaitGroup
		once     sync.Once
		firstErr error
	)
	for range min(opts.Workers, len(objects)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				seq, err := AssembleObject(ctx, objects[i], p)
				if err != nil {
					once.Do(func() {
						firstErr = err
						cancel()
					})
					continue
				}
				opts.Logger("assembled %s (%d bp)", seq.Name, len(seq.Seq))
				out[i] = seq
			}
		}()
	}

send:
	for i := range objects {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break send
		}
	}
	close(jobs)
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
