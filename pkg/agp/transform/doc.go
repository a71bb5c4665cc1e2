// Package transform implements the structural edits on AGP layouts.
//
// Every operation takes objects or layouts from package [agp], returns new
// values and leaves its inputs untouched. Results are renumbered through
// [agp.NewObject], so the coordinate invariants hold after every edit.
// Failures are [errors.Error] values with a code describing the caller
// error; a failed operation has no partial effect.
//
// # Operations
//
//   - [Flip], [FlipAll], [FlipObject], [FlipLayout]: reverse record runs
//   - [Split], [SplitLayout]: sever objects at gaps
//   - [Join], [JoinLayout]: concatenate objects with new gaps
//   - [Remove]: drop objects by name
//   - [Rename]: rename and optionally reverse objects
//   - [Compose]: substitute inner objects into outer components
//   - [Mapper]: translate component coordinates to object coordinates
//
// [errors.Error]: github.com/matzehuels/agptools/pkg/errors
package transform
