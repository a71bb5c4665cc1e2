package agp

import (
	"slices"

	errs "github.com/matzehuels/agptools/pkg/errors"
)

// Layout is an ordered set of uniquely named objects.
type Layout struct {
	objects []*Object
	index   map[string]int
}

// NewLayout returns a layout of the given objects in order. It fails with
// DUPLICATE_NAME when two objects share a name.
func NewLayout(objects ...*Object) (*Layout, error) {
	l := &Layout{
		objects: make([]*Object, 0, len(objects)),
		index:   make(map[string]int, len(objects)),
	}
	for _, o := range objects {
		if _, ok := l.index[o.name]; ok {
			return nil, errs.New(errs.ErrCodeDuplicateName, "duplicate object name %s", o.name)
		}
		l.index[o.name] = len(l.objects)
		l.objects = append(l.objects, o)
	}
	return l, nil
}

// Len returns the number of objects.
func (l *Layout) Len() int { return len(l.objects) }

// Get returns the object with the given name.
func (l *Layout) Get(name string) (*Object, bool) {
	i, ok := l.index[name]
	if !ok {
		return nil, false
	}
	return l.objects[i], true
}

// Has reports whether an object with the given name exists.
func (l *Layout) Has(name string) bool {
	_, ok := l.index[name]
	return ok
}

// Objects returns the objects in order.
func (l *Layout) Objects() []*Object { return slices.Clone(l.objects) }

// Names returns the object names in order.
func (l *Layout) Names() []string {
	names := make([]string, len(l.objects))
	for i, o := range l.objects {
		names[i] = o.name
	}
	return names
}

// Location identifies one record of a layout.
type Location struct {
	Object string
	Index  int
}

// ComponentIndex maps every component id to the records that reference it,
// in layout order.
func (l *Layout) ComponentIndex() map[string][]Location {
	idx := make(map[string][]Location)
	for _, o := range l.objects {
		for i, r := range o.records {
			if c, ok := r.Component(); ok {
				idx[c.ID] = append(idx[c.ID], Location{Object: o.name, Index: i})
			}
		}
	}
	return idx
}

// Stats summarizes a layout.
type Stats struct {
	Objects    int `json:"objects"`
	Components int `json:"components"`
	Gaps       int `json:"gaps"`
	Length     int `json:"length"`
	GapLength  int `json:"gap_length"`
}

// Stats computes summary counts over every object.
func (l *Layout) Stats() Stats {
	var s Stats
	s.Objects = len(l.objects)
	for _, o := range l.objects {
		c := o.ComponentCount()
		s.Components += c
		s.Gaps += o.Count() - c
		s.Length += o.Len()
		s.GapLength += o.GapLen()
	}
	return s
}
