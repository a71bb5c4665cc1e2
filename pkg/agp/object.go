package agp

import (
	"slices"
	"sort"

	errs "github.com/matzehuels/agptools/pkg/errors"
)

// Object is a named, ordered, renumbered run of records.
type Object struct {
	name    string
	records []Record
}

// NewObject validates the record payloads, renumbers them and returns the
// object. It fails with EMPTY_OBJECT when records is empty.
func NewObject(name string, records []Record) (*Object, error) {
	if name == "" {
		return nil, errs.New(errs.ErrCodeInvalidName, "object name cannot be empty")
	}
	if len(records) == 0 {
		return nil, errs.New(errs.ErrCodeEmptyObject, "object %s has no records", name)
	}
	for i, r := range records {
		if err := r.validate(); err != nil {
			return nil, errs.Wrap(errs.GetCode(err), err, "object %s record %d", name, i+1)
		}
	}
	numbered, err := Renumber(records)
	if err != nil {
		return nil, err
	}
	return &Object{name: name, records: numbered}, nil
}

// Name returns the object name.
func (o *Object) Name() string { return o.name }

// Len returns the object length in bases.
func (o *Object) Len() int { return o.records[len(o.records)-1].End }

// Count returns the number of records.
func (o *Object) Count() int { return len(o.records) }

// Record returns the i-th record (0-based).
func (o *Object) Record(i int) Record { return o.records[i] }

// Records returns a copy of the records.
func (o *Object) Records() []Record { return slices.Clone(o.records) }

// WithName returns a copy of the object under a new name. Records are shared.
func (o *Object) WithName(name string) *Object {
	return &Object{name: name, records: o.records}
}

// Reversed returns the object with its records reversed, components flipped
// and renumbered.
func (o *Object) Reversed() *Object {
	numbered, _ := Renumber(ReverseSpan(o.records))
	return &Object{name: o.name, records: numbered}
}

// ComponentCount returns the number of component records.
func (o *Object) ComponentCount() int {
	n := 0
	for _, r := range o.records {
		if !r.IsGap() {
			n++
		}
	}
	return n
}

// GapLen returns the number of bases covered by gaps.
func (o *Object) GapLen() int {
	n := 0
	for _, r := range o.records {
		if r.IsGap() {
			n += r.Len()
		}
	}
	return n
}

// IndexAt returns the index of the record containing pos.
func (o *Object) IndexAt(pos int) (int, bool) {
	i := sort.Search(len(o.records), func(i int) bool { return o.records[i].End >= pos })
	if i == len(o.records) || !o.records[i].Contains(pos) {
		return 0, false
	}
	return i, true
}

// IndexStartingAt returns the index of the record whose Start is pos.
func (o *Object) IndexStartingAt(pos int) (int, bool) {
	i, ok := o.IndexAt(pos)
	if !ok || o.records[i].Start != pos {
		return 0, false
	}
	return i, true
}

// IndexEndingAt returns the index of the record whose End is pos.
func (o *Object) IndexEndingAt(pos int) (int, bool) {
	i, ok := o.IndexAt(pos)
	if !ok || o.records[i].End != pos {
		return 0, false
	}
	return i, true
}

// Validate checks the coordinate invariants. Objects built by this package
// always satisfy them; Validate exists for tests and for callers that
// assemble objects from untrusted sources.
func (o *Object) Validate() error {
	if len(o.records) == 0 {
		return errs.New(errs.ErrCodeEmptyObject, "object %s has no records", o.name)
	}
	want := 1
	for i, r := range o.records {
		if r.Part != i+1 {
			return errs.New(errs.ErrCodeInvalidFormat, "object %s: record %d has part number %d", o.name, i+1, r.Part)
		}
		if r.Start != want {
			return errs.New(errs.ErrCodeInvalidFormat, "object %s part %d: start %d, want %d", o.name, r.Part, r.Start, want)
		}
		if r.End-r.Start+1 != r.Len() {
			return errs.New(errs.ErrCodeInvalidFormat, "object %s part %d: span [%d, %d] does not match length %d", o.name, r.Part, r.Start, r.End, r.Len())
		}
		want = r.End + 1
	}
	return nil
}
