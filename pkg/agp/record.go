package agp

import (
	"slices"
	"strings"

	errs "github.com/matzehuels/agptools/pkg/errors"
)

// Orientation is the strand a component is read from.
type Orientation int

const (
	// Unknown orientation ("?", and the deprecated "0" and "na" tokens).
	Unknown Orientation = iota
	// Plus is forward orientation ("+").
	Plus
	// Minus is reverse-complemented orientation ("-").
	Minus
)

// ParseOrientation parses an AGP orientation column.
func ParseOrientation(s string) (Orientation, error) {
	switch s {
	case "+":
		return Plus, nil
	case "-":
		return Minus, nil
	case "?", "0", "na":
		return Unknown, nil
	}
	return Unknown, errs.New(errs.ErrCodeInvalidFormat, "invalid orientation %q", s)
}

// String returns the AGP symbol for the orientation.
func (o Orientation) String() string {
	switch o {
	case Plus:
		return "+"
	case Minus:
		return "-"
	}
	return "?"
}

// Flip swaps Plus and Minus. Unknown is a fixed point.
func (o Orientation) Flip() Orientation {
	switch o {
	case Plus:
		return Minus
	case Minus:
		return Plus
	}
	return o
}

// Kind distinguishes the two record payloads.
type Kind int

const (
	// KindComponent marks a record referencing a component sequence.
	KindComponent Kind = iota
	// KindGap marks a gap record.
	KindGap
)

// String returns a lowercase name for the kind.
func (k Kind) String() string {
	if k == KindGap {
		return "gap"
	}
	return "component"
}

// Payload is the kind-specific content of a record. It is implemented only
// by [Component] and [Gap]; switch on the concrete type to handle both.
type Payload interface {
	// Kind reports which payload this is.
	Kind() Kind
	// Len returns the number of object bases the payload spans.
	Len() int

	payload()
}

// DefaultComponentType is the AGP component type written for components
// created without one (W: whole genome shotgun sequence).
const DefaultComponentType = "W"

// Component references the 1-based inclusive slice [Start, End] of the
// sequence named ID.
type Component struct {
	ID          string
	Start       int
	End         int
	Orientation Orientation
	// Type is the AGP component type letter (W, A, D, F, G, O, P).
	// Empty means DefaultComponentType.
	Type string

	// token preserves a non-canonical Unknown orientation ("0", "na")
	// read from a file so it is written back unchanged.
	token string
}

func (Component) payload() {}

// Kind returns KindComponent.
func (Component) Kind() Kind { return KindComponent }

// Len returns End - Start + 1.
func (c Component) Len() int { return c.End - c.Start + 1 }

// TypeLetter returns the component type, defaulting to DefaultComponentType.
func (c Component) TypeLetter() string {
	if c.Type == "" {
		return DefaultComponentType
	}
	return c.Type
}

// OrientationToken returns the orientation as it should be written to AGP.
func (c Component) OrientationToken() string {
	if c.Orientation == Unknown && c.token != "" {
		return c.token
	}
	return c.Orientation.String()
}

// Flipped returns a copy of c with its orientation flipped.
func (c Component) Flipped() Component {
	c.Orientation = c.Orientation.Flip()
	return c
}

func (c Component) validate() error {
	if c.ID == "" {
		return errs.New(errs.ErrCodeInvalidInput, "component id cannot be empty")
	}
	if c.Start < 1 || c.End < c.Start {
		return errs.New(errs.ErrCodeInvalidInput, "component %s has invalid span [%d, %d]", c.ID, c.Start, c.End)
	}
	return nil
}

// Gap is an unsequenced run of Length bases.
type Gap struct {
	Length int
	// Type is the AGP gap type (scaffold, contig, centromere, ...).
	Type    string
	Linkage bool
	// Evidence lists linkage evidence terms. Empty is written as "na".
	Evidence []string
	// Unknown marks a gap of unknown size (component type U).
	Unknown bool
}

func (Gap) payload() {}

// Kind returns KindGap.
func (Gap) Kind() Kind { return KindGap }

// Len returns the gap length.
func (g Gap) Len() int { return g.Length }

// TypeLetter returns "U" for gaps of unknown size and "N" otherwise.
func (g Gap) TypeLetter() string {
	if g.Unknown {
		return "U"
	}
	return "N"
}

// LinkageToken returns "yes" or "no".
func (g Gap) LinkageToken() string {
	if g.Linkage {
		return "yes"
	}
	return "no"
}

// EvidenceToken returns the evidence column: terms joined by ';', or "na".
func (g Gap) EvidenceToken() string {
	if len(g.Evidence) == 0 {
		return "na"
	}
	return strings.Join(g.Evidence, ";")
}

func (g Gap) validate() error {
	if g.Length < 1 {
		return errs.New(errs.ErrCodeInvalidInput, "gap length must be positive, got %d", g.Length)
	}
	return nil
}

// Record is a single AGP line positioned within its object.
//
// Part, Start and End are derived by [Renumber]. Records built by hand
// (for example to pass to [NewObject]) only need a Payload.
type Record struct {
	Part    int
	Start   int
	End     int
	Payload Payload
}

// NewComponentRecord returns an unpositioned component record.
func NewComponentRecord(id string, start, end int, o Orientation) Record {
	return Record{Payload: Component{ID: id, Start: start, End: end, Orientation: o}}
}

// NewGapRecord returns an unpositioned gap record.
func NewGapRecord(length int, gapType string, linkage bool, evidence ...string) Record {
	return Record{Payload: Gap{Length: length, Type: gapType, Linkage: linkage, Evidence: slices.Clone(evidence)}}
}

// Kind returns the payload kind.
func (r Record) Kind() Kind { return r.Payload.Kind() }

// Len returns the number of object bases the record spans.
func (r Record) Len() int { return r.Payload.Len() }

// IsGap reports whether the record is a gap.
func (r Record) IsGap() bool { return r.Payload.Kind() == KindGap }

// Component returns the component payload, if the record is a component.
func (r Record) Component() (Component, bool) {
	c, ok := r.Payload.(Component)
	return c, ok
}

// Gap returns the gap payload, if the record is a gap.
func (r Record) Gap() (Gap, bool) {
	g, ok := r.Payload.(Gap)
	return g, ok
}

// Contains reports whether the object position pos lies within the record.
func (r Record) Contains(pos int) bool { return r.Start <= pos && pos <= r.End }

func (r Record) validate() error {
	switch p := r.Payload.(type) {
	case Component:
		return p.validate()
	case Gap:
		return p.validate()
	case nil:
		return errs.New(errs.ErrCodeInvalidInput, "record has no payload")
	default:
		return errs.New(errs.ErrCodeInternal, "unknown record payload %T", p)
	}
}

// Renumber assigns positions to records in their final order: each record
// starts one past the end of the previous one, the first starts at 1, and
// part numbers run 1..N. It returns a new slice and leaves records alone.
//
// Renumber is the only place object coordinates are computed. It fails with
// EMPTY_OBJECT when records is empty.
func Renumber(records []Record) ([]Record, error) {
	if len(records) == 0 {
		return nil, errs.New(errs.ErrCodeEmptyObject, "an object must contain at least one record")
	}
	out := make([]Record, len(records))
	pos := 1
	for i, r := range records {
		n := r.Len()
		r.Part = i + 1
		r.Start = pos
		r.End = pos + n - 1
		out[i] = r
		pos += n
	}
	return out, nil
}

// ReverseSpan returns records in reverse order with every component's
// orientation flipped. Gap payloads are unchanged. Positions in the result
// are stale until the records are renumbered.
func ReverseSpan(records []Record) []Record {
	out := make([]Record, len(records))
	for i, r := range records {
		if c, ok := r.Payload.(Component); ok {
			r.Payload = c.Flipped()
		}
		out[len(records)-1-i] = r
	}
	return out
}
