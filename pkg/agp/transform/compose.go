package transform

import (
	"github.com/matzehuels/agptools/pkg/agp"
	errs "github.com/matzehuels/agptools/pkg/errors"
)

// Compose substitutes the objects of inner into the components of outer.
//
// Every component record of outer names an object of inner and is replaced
// by that object's records, reversed when the component is Minus. Gaps of
// outer are kept. The component must use the whole inner object, otherwise
// Compose fails with OUT_OF_RANGE. A component with no inner definition
// fails with COMPONENT_NOT_FOUND, and an inner object used by two components
// fails with DUPLICATE_NAME.
//
// With keepUnused, inner objects no component referenced are appended to
// the result.
func Compose(outer, inner *agp.Layout, keepUnused bool) (*agp.Layout, error) {
	used := make(map[string]bool)
	var out []*agp.Object
	for _, obj := range outer.Objects() {
		var records []agp.Record
		for _, r := range obj.Records() {
			c, ok := r.Component()
			if !ok {
				records = append(records, r)
				continue
			}
			def, ok := inner.Get(c.ID)
			if !ok {
				return nil, errs.New(errs.ErrCodeComponentNotFound, "%s: component %s is not defined in the inner layout", obj.Name(), c.ID)
			}
			if used[c.ID] {
				return nil, errs.New(errs.ErrCodeDuplicateName, "%s: inner object %s is used more than once", obj.Name(), c.ID)
			}
			if c.Start != 1 || c.End != def.Len() {
				return nil, errs.New(errs.ErrCodeOutOfRange, "%s: component %s uses %d-%d but the inner object spans 1-%d", obj.Name(), c.ID, c.Start, c.End, def.Len())
			}
			used[c.ID] = true

			sub := def.Records()
			if c.Orientation == agp.Minus {
				sub = agp.ReverseSpan(sub)
			}
			records = append(records, sub...)
		}
		composed, err := agp.NewObject(obj.Name(), records)
		if err != nil {
			return nil, err
		}
		out = append(out, composed)
	}
	if keepUnused {
		for _, obj := range inner.Objects() {
			if !used[obj.Name()] {
				out = append(out, obj)
			}
		}
	}
	return agp.NewLayout(out...)
}
