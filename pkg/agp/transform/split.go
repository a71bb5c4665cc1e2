package transform

import (
	"fmt"
	"slices"

	"github.com/matzehuels/agptools/pkg/agp"
	errs "github.com/matzehuels/agptools/pkg/errors"
)

// PieceName returns the name of the i-th (1-based) piece of a split object.
func PieceName(name string, i int) string {
	return fmt.Sprintf("%s.%d", name, i)
}

// Split severs obj at each breakpoint. A breakpoint must fall within a gap
// record (both gap ends included); the gap is dropped and the records on
// either side become separate objects named <name>.1 through <name>.k+1.
// A breakpoint in a component or outside the object fails with
// INVALID_BREAKPOINT. A piece left with no records fails with EMPTY_OBJECT.
//
// Without breakpoints the object is returned unchanged.
func Split(obj *agp.Object, breakpoints []int) ([]*agp.Object, error) {
	if len(breakpoints) == 0 {
		return []*agp.Object{obj}, nil
	}
	bps := slices.Clone(breakpoints)
	slices.Sort(bps)
	bps = slices.Compact(bps)

	cuts := make([]int, len(bps))
	for i, bp := range bps {
		idx, ok := obj.IndexAt(bp)
		if !ok {
			return nil, errs.New(errs.ErrCodeInvalidBreakpoint, "%s: breakpoint %d is outside the object (length %d)", obj.Name(), bp, obj.Len())
		}
		rec := obj.Record(idx)
		if !rec.IsGap() {
			c, _ := rec.Component()
			return nil, errs.New(errs.ErrCodeInvalidBreakpoint, "%s: breakpoint %d falls inside component %s [%d, %d], not a gap", obj.Name(), bp, c.ID, rec.Start, rec.End)
		}
		cuts[i] = idx
	}

	records := obj.Records()
	pieces := make([]*agp.Object, 0, len(cuts)+1)
	next := 0
	for i := 0; i <= len(cuts); i++ {
		end := len(records)
		if i < len(cuts) {
			end = cuts[i]
		}
		name := PieceName(obj.Name(), i+1)
		if end <= next {
			return nil, errs.New(errs.ErrCodeEmptyObject, "%s: splitting would leave %s with no records", obj.Name(), name)
		}
		piece, err := agp.NewObject(name, records[next:end])
		if err != nil {
			return nil, err
		}
		pieces = append(pieces, piece)
		next = end + 1
	}
	return pieces, nil
}

// SplitLayout splits every object named in breakpoints, putting the pieces
// where the original object was. A name absent from the layout fails with
// UNKNOWN_OBJECT; a piece name that collides with another object fails with
// DUPLICATE_NAME.
func SplitLayout(layout *agp.Layout, breakpoints map[string][]int) (*agp.Layout, error) {
	for name := range breakpoints {
		if !layout.Has(name) {
			return nil, errs.New(errs.ErrCodeUnknownObject, "object %s not found in layout", name)
		}
	}
	var out []*agp.Object
	for _, obj := range layout.Objects() {
		bps, ok := breakpoints[obj.Name()]
		if !ok {
			out = append(out, obj)
			continue
		}
		pieces, err := Split(obj, bps)
		if err != nil {
			return nil, err
		}
		out = append(out, pieces...)
	}
	return agp.NewLayout(out...)
}
