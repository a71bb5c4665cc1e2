package pipeline

import (
	"fmt"
	"strings"

	"github.com/matzehuels/agptools/pkg/agp"
	"github.com/matzehuels/agptools/pkg/agp/transform"
)

// Operation is one layout edit. Apply must not modify its input.
type Operation interface {
	// Name identifies the operation in logs and hooks.
	Name() string
	// Apply returns the edited layout and any non-fatal warnings.
	Apply(layout *agp.Layout) (*agp.Layout, []string, error)
}

// Op names.
const (
	OpIdentity = "identity"
	OpFlip     = "flip"
	OpSplit    = "split"
	OpJoin     = "join"
	OpRemove   = "remove"
	OpRename   = "rename"
	OpCompose  = "compose"
)

type opFunc struct {
	name string
	fn   func(*agp.Layout) (*agp.Layout, []string, error)
}

func (o opFunc) Name() string { return o.name }

func (o opFunc) Apply(l *agp.Layout) (*agp.Layout, []string, error) { return o.fn(l) }

func noWarnings(l *agp.Layout, err error) (*agp.Layout, []string, error) {
	return l, nil, err
}

// Identity returns the layout unchanged. It is used to convert between
// formats and to normalize coordinates.
func Identity() Operation {
	return opFunc{OpIdentity, func(l *agp.Layout) (*agp.Layout, []string, error) {
		return l, nil, nil
	}}
}

// FlipOp reverses the given ranges of each named object.
func FlipOp(ranges map[string][]transform.Range) Operation {
	return opFunc{OpFlip, func(l *agp.Layout) (*agp.Layout, []string, error) {
		return noWarnings(transform.FlipLayout(l, ranges))
	}}
}

// SplitOp splits each named object at its breakpoints.
func SplitOp(breakpoints map[string][]int) Operation {
	return opFunc{OpSplit, func(l *agp.Layout) (*agp.Layout, []string, error) {
		return noWarnings(transform.SplitLayout(l, breakpoints))
	}}
}

// JoinOp joins each group into one object separated by gap.
func JoinOp(groups []transform.JoinGroup, gap transform.GapSpec) Operation {
	return opFunc{OpJoin, func(l *agp.Layout) (*agp.Layout, []string, error) {
		return noWarnings(transform.JoinLayout(l, groups, gap))
	}}
}

// RemoveOp drops the named objects. Names not in the layout are reported
// as a warning.
func RemoveOp(names []string) Operation {
	return opFunc{OpRemove, func(l *agp.Layout) (*agp.Layout, []string, error) {
		out, missing := transform.Remove(l, names)
		if len(missing) == 0 {
			return out, nil, nil
		}
		return out, []string{fmt.Sprintf("not in layout: %s", strings.Join(missing, ", "))}, nil
	}}
}

// RenameOp renames and optionally reorients objects.
func RenameOp(edits []transform.RenameEdit) Operation {
	return opFunc{OpRename, func(l *agp.Layout) (*agp.Layout, []string, error) {
		return noWarnings(transform.Rename(l, edits))
	}}
}

// ComposeOp replaces components of the layout that name objects of inner
// with those objects' records.
func ComposeOp(inner *agp.Layout, keepUnused bool) Operation {
	return opFunc{OpCompose, func(l *agp.Layout) (*agp.Layout, []string, error) {
		return noWarnings(transform.Compose(l, inner, keepUnused))
	}}
}
