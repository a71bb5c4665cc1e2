package assemble

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/matzehuels/agptools/pkg/agp"
	errs "github.com/matzehuels/agptools/pkg/errors"
)

type mapProvider struct {
	mu    sync.Mutex
	seqs  map[string]string
	calls int
}

func (m *mapProvider) Fetch(_ context.Context, id string, start, end int) ([]byte, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	s, ok := m.seqs[id]
	if !ok {
		return nil, errs.New(errs.ErrCodeComponentNotFound, "no sequence %s", id)
	}
	if start < 1 || end > len(s) {
		return []byte(s[max(start-1, 0):min(end, len(s))]), nil
	}
	return []byte(s[start-1 : end]), nil
}

func mustObject(t *testing.T, name string, recs ...agp.Record) *agp.Object {
	t.Helper()
	obj, err := agp.NewObject(name, recs)
	if err != nil {
		t.Fatal(err)
	}
	return obj
}

func TestReverseComplement(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"ACGT", "ACGT"},
		{"AAGC", "GCTT"},
		{"acgtN", "Nacgt"},
		{"RYKMBVDHSWN", "NWSDHBVKMRY"},
		{"ryu", "ary"},
		{"AC-gt", "ac-GT"},
	}
	for _, tt := range tests {
		if got := string(ReverseComplement([]byte(tt.in))); got != tt.want {
			t.Errorf("ReverseComplement(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestReverseComplementInvolution(t *testing.T) {
	in := []byte("ACGTRYKMBVDHSWNacgtrykmbvdhswn")
	if got := ReverseComplement(ReverseComplement(in)); string(got) != string(in) {
		t.Errorf("ReverseComplement twice = %q, want %q", got, in)
	}
}

func TestAssembleObject(t *testing.T) {
	p := &mapProvider{seqs: map[string]string{
		"tig1": "AACCGGTT",
		"tig2": "ACGTTTGa",
	}}
	obj := mustObject(t, "s",
		agp.NewComponentRecord("tig1", 2, 5, agp.Plus),
		agp.NewGapRecord(3, "scaffold", true),
		agp.NewComponentRecord("tig2", 5, 8, agp.Minus),
	)
	got, err := AssembleObject(context.Background(), obj, p)
	if err != nil {
		t.Fatalf("AssembleObject() error: %v", err)
	}
	if want := "ACCGNNNtCAA"; string(got.Seq) != want {
		t.Errorf("AssembleObject() = %s, want %s", got.Seq, want)
	}
	if len(got.Seq) != obj.Len() {
		t.Errorf("len = %d, want %d", len(got.Seq), obj.Len())
	}
	if p.calls != 2 {
		t.Errorf("provider called %d times, want 2", p.calls)
	}
}

func TestAssembleObjectErrors(t *testing.T) {
	p := &mapProvider{seqs: map[string]string{"tig1": "ACGT"}}
	tests := []struct {
		name string
		obj  *agp.Object
		code errs.Code
	}{
		{"missing", mustObject(t, "s", agp.NewComponentRecord("tig9", 1, 4, agp.Plus)), errs.ErrCodeComponentNotFound},
		{"short slice", mustObject(t, "s", agp.NewComponentRecord("tig1", 1, 10, agp.Plus)), errs.ErrCodeOutOfRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := AssembleObject(context.Background(), tt.obj, p)
			if !errs.Is(err, tt.code) {
				t.Errorf("AssembleObject() error = %v, want %s", err, tt.code)
			}
		})
	}

	plain := ProviderFunc(func(context.Context, string, int, int) ([]byte, error) {
		return nil, errors.New("boom")
	})
	_, err := AssembleObject(context.Background(), mustObject(t, "s", agp.NewComponentRecord("x", 1, 1, agp.Plus)), plain)
	if !errs.Is(err, errs.ErrCodeInternal) {
		t.Errorf("AssembleObject(uncoded) error = %v, want INTERNAL_ERROR", err)
	}
}

func TestAssemble(t *testing.T) {
	p := &mapProvider{seqs: map[string]string{"a": "AAAA", "c": "CCCC", "g": "GGGG"}}
	var objs []*agp.Object
	for _, id := range []string{"a", "c", "g"} {
		objs = append(objs, mustObject(t, "chr_"+id,
			agp.NewComponentRecord(id, 1, 4, agp.Plus),
			agp.NewGapRecord(2, "contig", false),
			agp.NewComponentRecord(id, 1, 2, agp.Minus),
		))
	}
	layout, err := agp.NewLayout(objs...)
	if err != nil {
		t.Fatal(err)
	}

	seqs, err := Assemble(context.Background(), layout, p, Options{Workers: 2})
	if err != nil {
		t.Fatalf("Assemble() error: %v", err)
	}
	want := []Sequence{
		{"chr_a", []byte("AAAANNTT")},
		{"chr_c", []byte("CCCCNNGG")},
		{"chr_g", []byte("GGGGNNCC")},
	}
	for i, w := range want {
		if seqs[i].Name != w.Name || string(seqs[i].Seq) != string(w.Seq) {
			t.Errorf("Assemble()[%d] = %s %s, want %s %s", i, seqs[i].Name, seqs[i].Seq, w.Name, w.Seq)
		}
	}
	if m := ByName(seqs); string(m["chr_c"]) != "CCCCNNGG" {
		t.Errorf("ByName()[chr_c] = %s", m["chr_c"])
	}
	if p.calls != 6 {
		t.Errorf("provider called %d times, want 6", p.calls)
	}
}

func TestAssembleError(t *testing.T) {
	p := &mapProvider{seqs: map[string]string{"a": "AAAA"}}
	layout, _ := agp.NewLayout(
		mustObject(t, "ok", agp.NewComponentRecord("a", 1, 4, agp.Plus)),
		mustObject(t, "bad", agp.NewComponentRecord("zz", 1, 4, agp.Plus)),
	)
	if _, err := Assemble(context.Background(), layout, p, Options{}); !errs.Is(err, errs.ErrCodeComponentNotFound) {
		t.Errorf("Assemble() error = %v, want COMPONENT_NOT_FOUND", err)
	}
}

func TestAssembleCanceled(t *testing.T) {
	p := &mapProvider{seqs: map[string]string{"a": "AAAA"}}
	layout, _ := agp.NewLayout(mustObject(t, "ok", agp.NewComponentRecord("a", 1, 4, agp.Plus)))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Assemble(ctx, layout, p, Options{}); !errors.Is(err, context.Canceled) {
		t.Errorf("Assemble(canceled) error = %v, want context.Canceled", err)
	}
}
