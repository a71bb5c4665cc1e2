// Package seqstore provides component sequence sources for the assembler.
//
// Every store implements [assemble.SequenceProvider]:
//
//   - [Memory]: sequences held in memory, usually loaded from a FASTA file
//   - [Redis]: one Redis string per component, sliced server-side with
//     GETRANGE so only the requested bases cross the network
//   - [Cached]: a decorator that memoizes slices in a [cache.Cache]
//
// Coordinates are 1-based and inclusive. A component the store does not
// hold fails with COMPONENT_NOT_FOUND; a range past the end of the sequence
// fails with OUT_OF_RANGE.
//
// [assemble.SequenceProvider]: github.com/matzehuels/agptools/pkg/assemble.SequenceProvider
// [cache.Cache]: github.com/matzehuels/agptools/pkg/cache.Cache
package seqstore
