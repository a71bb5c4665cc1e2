// Package assemble materializes object sequences from an AGP layout.
//
// Each component record is fetched from a [SequenceProvider] as the
// 1-based inclusive slice [Start, End] of its component, reverse-complemented
// when the record is in Minus orientation. Each gap record contributes a
// run of 'N' of the gap length. The pieces are concatenated in record order.
//
// Objects are assembled concurrently by a small worker pool; the provider is
// called at most once per component record and must be safe for concurrent
// use. The first error cancels the remaining work.
package assemble
