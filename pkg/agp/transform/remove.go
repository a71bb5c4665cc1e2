package transform

import (
	"slices"

	"github.com/matzehuels/agptools/pkg/agp"
)

// Remove drops the named objects from layout. Names not present are
// ignored and returned, in the order given, so callers can report them.
func Remove(layout *agp.Layout, names []string) (*agp.Layout, []string) {
	drop := make(map[string]bool, len(names))
	var missing []string
	for _, n := range names {
		if !layout.Has(n) {
			if !slices.Contains(missing, n) {
				missing = append(missing, n)
			}
			continue
		}
		drop[n] = true
	}
	kept := slices.DeleteFunc(layout.Objects(), func(o *agp.Object) bool { return drop[o.Name()] })
	// Names were unique before, so this cannot fail.
	out, _ := agp.NewLayout(kept...)
	return out, missing
}
