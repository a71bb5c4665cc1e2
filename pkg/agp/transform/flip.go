package transform

import (
	"slices"

	"github.com/matzehuels/agptools/pkg/agp"
	errs "github.com/matzehuels/agptools/pkg/errors"
)

// Range is a 1-based inclusive span of object coordinates. The zero Range
// stands for the whole object.
type Range struct {
	Start int
	End   int
}

// IsWhole reports whether r is the zero Range.
func (r Range) IsWhole() bool { return r.Start == 0 && r.End == 0 }

type span struct{ first, last int }

// resolve maps a range onto the indices of the records it covers. Both ends
// must land on record boundaries.
func resolve(obj *agp.Object, r Range) (span, error) {
	if r.IsWhole() {
		return span{0, obj.Count() - 1}, nil
	}
	if r.Start > r.End {
		return span{}, errs.New(errs.ErrCodeMisalignedBoundary, "%s:%d-%d: start is after end", obj.Name(), r.Start, r.End)
	}
	first, ok := obj.IndexStartingAt(r.Start)
	if !ok {
		return span{}, errs.New(errs.ErrCodeMisalignedBoundary, "%s:%d-%d: %d is not the start of a record", obj.Name(), r.Start, r.End, r.Start)
	}
	last, ok := obj.IndexEndingAt(r.End)
	if !ok {
		return span{}, errs.New(errs.ErrCodeMisalignedBoundary, "%s:%d-%d: %d is not the end of a record", obj.Name(), r.Start, r.End, r.End)
	}
	return span{first, last}, nil
}

// Flip reverses the records covering [begin, end] and flips their
// orientations. begin must be the start of a record and end the end of a
// record, otherwise it fails with MISALIGNED_BOUNDARY.
func Flip(obj *agp.Object, begin, end int) (*agp.Object, error) {
	return FlipAll(obj, []Range{{Start: begin, End: end}})
}

// FlipObject reverses every record of obj.
func FlipObject(obj *agp.Object) *agp.Object {
	return obj.Reversed()
}

// FlipAll flips several ranges of one object. Each range is resolved
// against the original object, so the result does not depend on the order
// of ranges. Ranges sharing a record fail with OVERLAPPING_RANGES.
func FlipAll(obj *agp.Object, ranges []Range) (*agp.Object, error) {
	if len(ranges) == 0 {
		return obj, nil
	}
	spans := make([]span, 0, len(ranges))
	for _, r := range ranges {
		s, err := resolve(obj, r)
		if err != nil {
			return nil, err
		}
		spans = append(spans, s)
	}
	slices.SortFunc(spans, func(a, b span) int { return a.first - b.first })
	for i := 1; i < len(spans); i++ {
		if spans[i].first <= spans[i-1].last {
			prev, cur := obj.Record(spans[i-1].first), obj.Record(spans[i].first)
			return nil, errs.New(errs.ErrCodeOverlappingRanges, "%s: ranges starting at %d and %d overlap", obj.Name(), prev.Start, cur.Start)
		}
	}

	records := obj.Records()
	out := make([]agp.Record, 0, len(records))
	next := 0
	for _, s := range spans {
		out = append(out, records[next:s.first]...)
		out = append(out, agp.ReverseSpan(records[s.first:s.last+1])...)
		next = s.last + 1
	}
	out = append(out, records[next:]...)
	return agp.NewObject(obj.Name(), out)
}

// FlipLayout applies FlipAll to every object named in ranges. Objects not
// named are kept as they are. A name absent from the layout fails with
// UNKNOWN_OBJECT.
func FlipLayout(layout *agp.Layout, ranges map[string][]Range) (*agp.Layout, error) {
	for name := range ranges {
		if !layout.Has(name) {
			return nil, errs.New(errs.ErrCodeUnknownObject, "object %s not found in layout", name)
		}
	}
	objects := layout.Objects()
	for i, obj := range objects {
		rs, ok := ranges[obj.Name()]
		if !ok {
			continue
		}
		flipped, err := FlipAll(obj, rs)
		if err != nil {
			return nil, err
		}
		objects[i] = flipped
	}
	return agp.NewLayout(objects...)
}
