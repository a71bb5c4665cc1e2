package transform

import (
	"fmt"
	"strings"
	"testing"

	"github.com/matzehuels/agptools/pkg/agp"
)

func comp(id string, start, end int, o agp.Orientation) agp.Record {
	return agp.NewComponentRecord(id, start, end, o)
}

func gap(n int) agp.Record {
	return agp.NewGapRecord(n, "scaffold", true, "paired-ends")
}

func mustObject(t *testing.T, name string, recs ...agp.Record) *agp.Object {
	t.Helper()
	obj, err := agp.NewObject(name, recs)
	if err != nil {
		t.Fatalf("NewObject(%s) error: %v", name, err)
	}
	return obj
}

func mustLayout(t *testing.T, objs ...*agp.Object) *agp.Layout {
	t.Helper()
	l, err := agp.NewLayout(objs...)
	if err != nil {
		t.Fatalf("NewLayout() error: %v", err)
	}
	return l
}

// describe renders an object compactly: components as id+orientation,
// gaps as their length in brackets.
func describe(obj *agp.Object) string {
	parts := make([]string, 0, obj.Count())
	for _, r := range obj.Records() {
		switch p := r.Payload.(type) {
		case agp.Component:
			parts = append(parts, p.ID+p.Orientation.String())
		case agp.Gap:
			parts = append(parts, fmt.Sprintf("[%d]", p.Length))
		}
	}
	return strings.Join(parts, " ")
}

func checkInvariants(t *testing.T, l *agp.Layout) {
	t.Helper()
	for _, obj := range l.Objects() {
		if err := obj.Validate(); err != nil {
			t.Errorf("object %s: %v", obj.Name(), err)
		}
	}
}

// sameRecords compares payloads and positions of two objects, ignoring names.
func sameRecords(a, b *agp.Object) bool {
	if a.Count() != b.Count() {
		return false
	}
	for i := 0; i < a.Count(); i++ {
		ra, rb := a.Record(i), b.Record(i)
		if ra.Part != rb.Part || ra.Start != rb.Start || ra.End != rb.End {
			return false
		}
		if ra.Kind() != rb.Kind() || ra.Len() != rb.Len() {
			return false
		}
		if ca, ok := ra.Component(); ok {
			cb, _ := rb.Component()
			if ca.ID != cb.ID || ca.Orientation != cb.Orientation || ca.Start != cb.Start || ca.End != cb.End {
				return false
			}
		}
	}
	return true
}
