package transform

import (
	"github.com/matzehuels/agptools/pkg/agp"
	errs "github.com/matzehuels/agptools/pkg/errors"
)

// RenameEdit renames object Old to New. With Orientation Minus the object
// is also reversed.
type RenameEdit struct {
	Old         string
	New         string
	Orientation agp.Orientation
}

// Rename applies edits to layout. Every edit resolves Old against the input
// layout, so edits do not see each other's results (swapping two names
// works). Renamed objects keep their position. New may be any name that
// fits in an AGP column.
//
// Every edit is resolved first: an absent Old fails with UNKNOWN_OBJECT and
// an empty or control-character New with INVALID_NAME. Only then are the
// names compared, failing with DUPLICATE_NAME when two edits share Old or
// New, or when New equals the name of an object that is not being renamed.
func Rename(layout *agp.Layout, edits []RenameEdit) (*agp.Layout, error) {
	for _, e := range edits {
		if !layout.Has(e.Old) {
			return nil, errs.New(errs.ErrCodeUnknownObject, "object %s not found in layout", e.Old)
		}
		if err := errs.ValidateFieldName(e.New); err != nil {
			return nil, err
		}
	}

	byOld := make(map[string]RenameEdit, len(edits))
	newNames := make(map[string]string, len(edits))
	for _, e := range edits {
		if _, ok := byOld[e.Old]; ok {
			return nil, errs.New(errs.ErrCodeDuplicateName, "object %s is renamed more than once", e.Old)
		}
		if prev, ok := newNames[e.New]; ok {
			return nil, errs.New(errs.ErrCodeDuplicateName, "objects %s and %s would both be named %s", prev, e.Old, e.New)
		}
		byOld[e.Old] = e
		newNames[e.New] = e.Old
	}
	for _, e := range edits {
		if _, renamed := byOld[e.New]; layout.Has(e.New) && !renamed {
			return nil, errs.New(errs.ErrCodeDuplicateName, "cannot rename %s to %s: an object with that name already exists", e.Old, e.New)
		}
	}

	objects := layout.Objects()
	for i, obj := range objects {
		e, ok := byOld[obj.Name()]
		if !ok {
			continue
		}
		if e.Orientation == agp.Minus {
			obj = obj.Reversed()
		}
		objects[i] = obj.WithName(e.New)
	}
	return agp.NewLayout(objects...)
}
