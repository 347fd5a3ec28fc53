// Package lazy adapts optional sequences into sequences.
//
// Query methods that sometimes have no underlying iterator to offer still
// need to return one type: a sequence that is simply already exhausted. The
// adapters here erase the present/absent distinction with no buffering, no
// look-ahead and no error states of their own.
package lazy

import "iter"

// None returns the empty sequence: ranging over it terminates immediately.
func None[V any]() iter.Seq[V] {
	return func(func(V) bool) {}
}

// Seq narrows an optional sequence to a sequence. A nil seq behaves as
// None; a non-nil seq is returned unchanged, every element and the point of
// exhaustion forwarded as-is.
func Seq[V any](seq iter.Seq[V]) iter.Seq[V] {
	if seq == nil {
		return None[V]()
	}
	return seq
}

// Values returns a sequence over the elements of s, which the sequence
// takes ownership of at the point of first use. A nil slice yields the
// empty sequence.
func Values[S ~[]E, E any](s S) iter.Seq[E] {
	return func(yield func(E) bool) {
		for _, v := range s {
			if !yield(v) {
				return
			}
		}
	}
}
