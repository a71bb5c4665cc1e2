// Package agp provides the record model for AGP assembly layouts.
//
// # Overview
//
// An AGP file describes how components (contigs) and gaps are concatenated,
// in order and orientation, into larger assembled objects such as scaffolds
// or chromosomes. This package models one line of such a file as a [Record]
// and the ordered records sharing an object name as an [Object]. A [Layout]
// is the ordered collection of objects found in one file.
//
// # Records
//
// A record's content is a closed union of two payloads:
//
//   - [Component]: a slice [Start, End] of a component sequence, with an
//     [Orientation]
//   - [Gap]: an unsequenced run of Length bases with type, linkage and
//     evidence
//
// Every record also carries its position within its object: a 1-based part
// number and an object-local [Start, End] span. These are derived values.
// They are assigned only by [Renumber], which every constructor and every
// transform calls after changing the record order. No code computes them
// by hand.
//
// # Invariants
//
// For every [Object]:
//
//  1. Records are contiguous: records[i].End + 1 == records[i+1].Start
//  2. The first record starts at 1
//  3. Part numbers are exactly 1..N in record order
//  4. Object length is the End of the last record
//
// Object names are unique within a [Layout].
//
// # Orientation
//
// [Orientation.Flip] swaps [Plus] and [Minus] and leaves [Unknown] alone.
// [ReverseSpan] reverses a run of records and flips each component, which
// is the single primitive behind flipping, reverse-renaming and joining in
// minus orientation.
//
// # Loading and Serialization
//
// [Row] is the flat tuple exchanged with the file layer. [Build] groups rows
// into objects (first-seen order) and checks that the coordinates stored in
// the file agree with renumbering. [Layout.Rows] flattens a layout back.
//
// # Concurrency
//
// Objects and layouts are immutable once built; accessors return copies.
// They can be shared freely between goroutines.
//
// The [transform] subpackage provides the structural edits (split, join,
// flip, remove, rename, compose) and the component-to-object coordinate
// mapper.
//
// [transform]: github.com/matzehuels/agptools/pkg/agp/transform
package agp
