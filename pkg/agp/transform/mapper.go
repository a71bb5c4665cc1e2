package transform

import (
	"github.com/matzehuels/agptools/pkg/agp"
	errs "github.com/matzehuels/agptools/pkg/errors"
)

// Position is a 1-based inclusive interval on an object. Orientation is the
// orientation of the component the interval was mapped through.
type Position struct {
	Object      string
	Start       int
	End         int
	Orientation agp.Orientation
}

type placement struct {
	object string
	record agp.Record
	comp   agp.Component
}

// Mapper translates component coordinates into object coordinates. It is
// built once from a layout and is safe for concurrent use.
type Mapper struct {
	index map[string][]placement
}

// NewMapper indexes every component record of layout.
func NewMapper(layout *agp.Layout) *Mapper {
	m := &Mapper{index: make(map[string][]placement)}
	for _, obj := range layout.Objects() {
		for _, r := range obj.Records() {
			if c, ok := r.Component(); ok {
				m.index[c.ID] = append(m.index[c.ID], placement{object: obj.Name(), record: r, comp: c})
			}
		}
	}
	return m
}

// Map translates [start, end] on component id into object coordinates.
//
// For Plus (and Unknown) components the offset from the component start is
// kept; for Minus components the interval is mirrored within the record.
// It fails with COMPONENT_NOT_FOUND when id is not placed exactly once in
// the layout and with OUT_OF_RANGE when [start, end] is not within the
// slice of the component the layout uses.
func (m *Mapper) Map(id string, start, end int) (Position, error) {
	ps := m.index[id]
	switch {
	case len(ps) == 0:
		return Position{}, errs.New(errs.ErrCodeComponentNotFound, "component %s not found in layout", id)
	case len(ps) > 1:
		return Position{}, errs.New(errs.ErrCodeComponentNotFound, "component %s is ambiguous: placed %d times in layout", id, len(ps))
	}
	p := ps[0]
	cs, ce := p.comp.Start, p.comp.End
	if start > end || start < cs || end > ce {
		return Position{}, errs.New(errs.ErrCodeOutOfRange, "%s:%d-%d is outside the placed range %d-%d", id, start, end, cs, ce)
	}
	s := p.record.Start
	pos := Position{Object: p.object, Orientation: p.comp.Orientation}
	if p.comp.Orientation == agp.Minus {
		pos.Start = s + (ce - end)
		pos.End = s + (ce - start)
	} else {
		pos.Start = s + (start - cs)
		pos.End = s + (end - cs)
	}
	return pos, nil
}

// MapToObject builds a mapper for layout and maps a single interval.
func MapToObject(layout *agp.Layout, id string, start, end int) (Position, error) {
	return NewMapper(layout).Map(id, start, end)
}

// BEDInterval is a BED-style interval: 0-based, half-open, with an optional
// strand ("+", "-" or "." / empty when unknown).
type BEDInterval struct {
	Chrom  string
	Start  int
	End    int
	Strand string
}

// MapInterval translates a BED interval on a component into a BED interval
// on its object. The strand is flipped when the component is placed in
// Minus orientation.
func (m *Mapper) MapInterval(iv BEDInterval) (BEDInterval, error) {
	if iv.End <= iv.Start || iv.Start < 0 {
		return BEDInterval{}, errs.New(errs.ErrCodeInvalidInput, "%s:%d-%d is not a valid BED interval", iv.Chrom, iv.Start, iv.End)
	}
	pos, err := m.Map(iv.Chrom, iv.Start+1, iv.End)
	if err != nil {
		return BEDInterval{}, err
	}
	out := BEDInterval{Chrom: pos.Object, Start: pos.Start - 1, End: pos.End, Strand: iv.Strand}
	if pos.Orientation == agp.Minus {
		switch iv.Strand {
		case "+":
			out.Strand = "-"
		case "-":
			out.Strand = "+"
		}
	}
	return out, nil
}
