package agp

import (
	"testing"

	errs "github.com/matzehuels/agptools/pkg/errors"
)

func sampleObject(t *testing.T) *Object {
	t.Helper()
	obj, err := NewObject("scaffold_1", []Record{
		NewComponentRecord("tig1", 1, 100, Plus),
		NewGapRecord(10, "scaffold", true),
		NewComponentRecord("tig2", 1, 50, Minus),
		NewGapRecord(10, "scaffold", true),
		NewComponentRecord("tig3", 21, 40, Unknown),
	})
	if err != nil {
		t.Fatalf("NewObject() error: %v", err)
	}
	return obj
}

func TestNewObject(t *testing.T) {
	obj := sampleObject(t)
	if err := obj.Validate(); err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	if got := obj.Len(); got != 190 {
		t.Errorf("Len() = %d, want 190", got)
	}
	if got := obj.Count(); got != 5 {
		t.Errorf("Count() = %d, want 5", got)
	}
	if got := obj.ComponentCount(); got != 3 {
		t.Errorf("ComponentCount() = %d, want 3", got)
	}
	if got := obj.GapLen(); got != 20 {
		t.Errorf("GapLen() = %d, want 20", got)
	}
}

func TestNewObjectErrors(t *testing.T) {
	tests := []struct {
		name    string
		objName string
		records []Record
		code    errs.Code
	}{
		{"empty", "s", nil, errs.ErrCodeEmptyObject},
		{"no name", "", []Record{NewComponentRecord("a", 1, 2, Plus)}, errs.ErrCodeInvalidName},
		{"bad span", "s", []Record{NewComponentRecord("a", 5, 2, Plus)}, errs.ErrCodeInvalidInput},
		{"zero gap", "s", []Record{NewGapRecord(0, "scaffold", true)}, errs.ErrCodeInvalidInput},
		{"no payload", "s", []Record{{}}, errs.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewObject(tt.objName, tt.records)
			if !errs.Is(err, tt.code) {
				t.Errorf("NewObject() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestObjectIndex(t *testing.T) {
	obj := sampleObject(t)
	tests := []struct {
		pos                  int
		at, starting, ending int
		okAt, okStart, okEnd bool
	}{
		{pos: 1, at: 0, okAt: true, starting: 0, okStart: true},
		{pos: 100, at: 0, okAt: true, ending: 0, okEnd: true},
		{pos: 101, at: 1, okAt: true, starting: 1, okStart: true},
		{pos: 105, at: 1, okAt: true},
		{pos: 190, at: 4, okAt: true, ending: 4, okEnd: true},
		{pos: 191},
		{pos: 0},
	}
	for _, tt := range tests {
		i, ok := obj.IndexAt(tt.pos)
		if ok != tt.okAt || (ok && i != tt.at) {
			t.Errorf("IndexAt(%d) = %d, %v, want %d, %v", tt.pos, i, ok, tt.at, tt.okAt)
		}
		i, ok = obj.IndexStartingAt(tt.pos)
		if ok != tt.okStart || (ok && i != tt.starting) {
			t.Errorf("IndexStartingAt(%d) = %d, %v, want %d, %v", tt.pos, i, ok, tt.starting, tt.okStart)
		}
		i, ok = obj.IndexEndingAt(tt.pos)
		if ok != tt.okEnd || (ok && i != tt.ending) {
			t.Errorf("IndexEndingAt(%d) = %d, %v, want %d, %v", tt.pos, i, ok, tt.ending, tt.okEnd)
		}
	}
}

func TestObjectReversed(t *testing.T) {
	obj := sampleObject(t)
	rev := obj.Reversed()
	if err := rev.Validate(); err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	if rev.Len() != obj.Len() {
		t.Errorf("Reversed().Len() = %d, want %d", rev.Len(), obj.Len())
	}
	first, _ := rev.Record(0).Component()
	if first.ID != "tig3" || first.Orientation != Unknown {
		t.Errorf("Reversed() first = %s %v, want tig3 ?", first.ID, first.Orientation)
	}
	mid, _ := rev.Record(2).Component()
	if mid.ID != "tig2" || mid.Orientation != Plus {
		t.Errorf("Reversed() middle = %s %v, want tig2 +", mid.ID, mid.Orientation)
	}
	if r := rev.Record(2); r.Start != 31 || r.End != 80 {
		t.Errorf("Reversed() middle span = [%d,%d], want [31,80]", r.Start, r.End)
	}
}

func TestObjectRecordsIsCopy(t *testing.T) {
	obj := sampleObject(t)
	recs := obj.Records()
	recs[0].Start = 99
	if obj.Record(0).Start != 1 {
		t.Error("Records() should return a copy")
	}
}

func TestNewLayout(t *testing.T) {
	a := sampleObject(t)
	b := a.WithName("scaffold_2")

	l, err := NewLayout(a, b)
	if err != nil {
		t.Fatalf("NewLayout() error: %v", err)
	}
	if l.Len() != 2 {
		t.Errorf("Len() = %d, want 2", l.Len())
	}
	if got := l.Names(); got[0] != "scaffold_1" || got[1] != "scaffold_2" {
		t.Errorf("Names() = %v", got)
	}
	if _, ok := l.Get("scaffold_2"); !ok {
		t.Error("Get(scaffold_2) not found")
	}
	if l.Has("missing") {
		t.Error("Has(missing) = true")
	}

	idx := l.ComponentIndex()
	if locs := idx["tig2"]; len(locs) != 2 || locs[0].Object != "scaffold_1" || locs[0].Index != 2 {
		t.Errorf("ComponentIndex()[tig2] = %v", locs)
	}

	s := l.Stats()
	if s.Objects != 2 || s.Components != 6 || s.Gaps != 4 || s.Length != 380 || s.GapLength != 40 {
		t.Errorf("Stats() = %+v", s)
	}

	if _, err := NewLayout(a, a); !errs.Is(err, errs.ErrCodeDuplicateName) {
		t.Errorf("NewLayout(dup) error = %v, want DUPLICATE_NAME", err)
	}
}
