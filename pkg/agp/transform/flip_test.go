package transform

import (
	"testing"

	"github.com/matzehuels/agptools/pkg/agp"
	errs "github.com/matzehuels/agptools/pkg/errors"
)

func readmeObject(t *testing.T) *agp.Object {
	t.Helper()
	return mustObject(t, "scaffold_18",
		comp("tig00005080", 1, 1096465, agp.Minus),
		gap(500),
		comp("tig00001012", 1, 876236, agp.Minus),
	)
}

func TestFlipWholeScaffold(t *testing.T) {
	obj := readmeObject(t)
	got, err := Flip(obj, 1, 1973201)
	if err != nil {
		t.Fatalf("Flip() error: %v", err)
	}
	want := []struct {
		id         string
		start, end int
		ori        agp.Orientation
	}{
		{"tig00001012", 1, 876236, agp.Plus},
		{"", 876237, 876736, agp.Unknown},
		{"tig00005080", 876737, 1973201, agp.Plus},
	}
	for i, w := range want {
		r := got.Record(i)
		if r.Start != w.start || r.End != w.end || r.Part != i+1 {
			t.Errorf("record %d = part %d [%d,%d], want part %d [%d,%d]", i, r.Part, r.Start, r.End, i+1, w.start, w.end)
		}
		if w.id == "" {
			if !r.IsGap() {
				t.Errorf("record %d should be a gap", i)
			}
			continue
		}
		c, _ := r.Component()
		if c.ID != w.id || c.Orientation != w.ori {
			t.Errorf("record %d = %s %v, want %s %v", i, c.ID, c.Orientation, w.id, w.ori)
		}
	}
	if !sameRecords(got, FlipObject(obj)) {
		t.Error("Flip() over the whole object should equal FlipObject()")
	}
}

func TestFlipSelfInverse(t *testing.T) {
	obj := mustObject(t, "s",
		comp("a", 1, 10, agp.Plus), gap(5), comp("b", 1, 20, agp.Minus),
		gap(7), comp("c", 3, 9, agp.Unknown), comp("d", 1, 4, agp.Plus),
	)
	ranges := []Range{{1, 10}, {11, 42}, {43, 49}, {16, 53}, {1, 53}}
	for _, r := range ranges {
		once, err := Flip(obj, r.Start, r.End)
		if err != nil {
			t.Fatalf("Flip(%d, %d) error: %v", r.Start, r.End, err)
		}
		if err := once.Validate(); err != nil {
			t.Errorf("Flip(%d, %d) broke invariants: %v", r.Start, r.End, err)
		}
		if once.Len() != obj.Len() {
			t.Errorf("Flip(%d, %d) changed length to %d", r.Start, r.End, once.Len())
		}
		// The flipped run keeps its outer boundaries, so the same range is valid again.
		twice, err := Flip(once, r.Start, r.End)
		if err != nil {
			t.Fatalf("second Flip(%d, %d) error: %v", r.Start, r.End, err)
		}
		if !sameRecords(twice, obj) {
			t.Errorf("Flip(%d, %d) twice = %s, want %s", r.Start, r.End, describe(twice), describe(obj))
		}
	}
}

func TestFlipAll(t *testing.T) {
	obj := mustObject(t, "s",
		comp("a", 1, 10, agp.Plus), gap(5), comp("b", 1, 20, agp.Plus),
		gap(5), comp("c", 1, 10, agp.Minus), comp("d", 1, 10, agp.Plus),
	)
	// a:1-10 gap:11-15 b:16-35 gap:36-40 c:41-50 d:51-60
	got, err := FlipAll(obj, []Range{{41, 60}, {1, 15}})
	if err != nil {
		t.Fatalf("FlipAll() error: %v", err)
	}
	if want := "[5] a- b+ [5] d- c+"; describe(got) != want {
		t.Errorf("FlipAll() = %s, want %s", describe(got), want)
	}

	same, err := FlipAll(obj, nil)
	if err != nil || same != obj {
		t.Errorf("FlipAll(nil) = %v, %v, want the input object", same, err)
	}
}

func TestFlipErrors(t *testing.T) {
	obj := mustObject(t, "s",
		comp("a", 1, 10, agp.Plus), gap(5), comp("b", 1, 20, agp.Plus),
	)
	tests := []struct {
		name   string
		ranges []Range
		code   errs.Code
	}{
		{"start inside component", []Range{{2, 15}}, errs.ErrCodeMisalignedBoundary},
		{"end inside component", []Range{{1, 20}}, errs.ErrCodeMisalignedBoundary},
		{"reversed", []Range{{16, 10}}, errs.ErrCodeMisalignedBoundary},
		{"past end", []Range{{16, 40}}, errs.ErrCodeMisalignedBoundary},
		{"overlap", []Range{{1, 15}, {11, 35}}, errs.ErrCodeOverlappingRanges},
		{"whole and part", []Range{{}, {16, 35}}, errs.ErrCodeOverlappingRanges},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FlipAll(obj, tt.ranges)
			if !errs.Is(err, tt.code) {
				t.Errorf("FlipAll(%v) error = %v, want %s", tt.ranges, err, tt.code)
			}
		})
	}
}

func TestFlipLayout(t *testing.T) {
	a := mustObject(t, "a", comp("x", 1, 10, agp.Plus), gap(5), comp("y", 1, 10, agp.Minus))
	b := mustObject(t, "b", comp("z", 1, 10, agp.Plus))
	l := mustLayout(t, a, b)

	got, err := FlipLayout(l, map[string][]Range{"a": {{}}})
	if err != nil {
		t.Fatalf("FlipLayout() error: %v", err)
	}
	checkInvariants(t, got)
	fa, _ := got.Get("a")
	if want := "y+ [5] x-"; describe(fa) != want {
		t.Errorf("FlipLayout() a = %s, want %s", describe(fa), want)
	}
	if fb, _ := got.Get("b"); fb != b {
		t.Error("FlipLayout() should keep unlisted objects")
	}
	if names := got.Names(); names[0] != "a" || names[1] != "b" {
		t.Errorf("FlipLayout() order = %v", names)
	}

	if _, err := FlipLayout(l, map[string][]Range{"missing": nil}); !errs.Is(err, errs.ErrCodeUnknownObject) {
		t.Errorf("FlipLayout(missing) error = %v, want UNKNOWN_OBJECT", err)
	}
}
