package rollz

import (
	"fmt"
	"iter"
)

// indexedAggregator is the capability set an indexed-window operation
// implements. Elements carry an explicit index; eviction removes
// everything whose index has fallen behind the configured span rather
// than everything past a fixed count, so the window's length and the
// number of evictions per step are both data-dependent.
type indexedAggregator[I, T, V any] interface {
	// addNew incorporates value v arriving at index idx.
	addNew(idx I, v T)

	// evictBefore evicts every retained element whose index is <= cutoff.
	evictBefore(cutoff I)

	// current returns the reduction of the window in its present state.
	current() (V, error)

	// count returns the number of elements presently retained.
	count() int
}

// RollingIndexed drives a single indexed aggregator over a lazy (index,
// value) sequence. Unlike Rolling, there is no priming phase: every
// input immediately adds a value, evicts whatever has fallen outside the
// span, and emits. A span of Size means an element at index idx is
// retained alongside the most recently arrived index idxN as long as
// idxN - idx < Size; indices must arrive in non-decreasing order.
type RollingIndexed[I Numeric, T, V any] struct {
	op     string
	span   I
	agg    indexedAggregator[I, T, V]
	logger Logger

	next  func() (I, T, bool)
	stops []func()
	have  bool
	last  I
}

// newRollingIndexed constructs a driver for op over seq, evicting
// elements once their index falls span or more behind the latest.
func newRollingIndexed[I Numeric, T, V any](op string, seq iter.Seq2[I, T], span I, agg indexedAggregator[I, T, V]) *RollingIndexed[I, T, V] {
	next, stop := iter.Pull2(seq)
	return &RollingIndexed[I, T, V]{
		op:    op,
		span:  span,
		agg:   agg,
		next:  next,
		stops: []func(){stop},
	}
}

func chainNext2[I, T any](a, b func() (I, T, bool)) func() (I, T, bool) {
	aDone := false
	return func() (I, T, bool) {
		if !aDone {
			if idx, v, ok := a(); ok {
				return idx, v, true
			}
			aDone = true
		}
		return b()
	}
}

func (r *RollingIndexed[I, T, V]) stopAll() {
	for _, stop := range r.stops {
		stop()
	}
}

// SetLogger installs a diagnostic logger; nil (the default) disables
// logging.
func (r *RollingIndexed[I, T, V]) SetLogger(l Logger) {
	r.logger = l
}

// Count reports the number of elements presently retained in the window.
func (r *RollingIndexed[I, T, V]) Count() int {
	return r.agg.count()
}

// String renders the driver's operation name and span.
func (r *RollingIndexed[I, T, V]) String() string {
	return fmt.Sprintf("%s(span=%v, indexed)", r.op, r.span)
}

// Values returns the lazy sequence of (value, error) pairs produced by
// pulling from the underlying (index, value) input. If an index arrives
// out of order (less than the previous index), the sequence yields a
// single *Error wrapping ErrIndexOrder and ends.
func (r *RollingIndexed[I, T, V]) Values() iter.Seq2[V, error] {
	return func(yield func(V, error) bool) {
		for {
			idx, v, ok := r.next()
			if !ok {
				r.stopAll()
				return
			}
			if r.have && idx < r.last {
				yield(*new(V), newValueError(r.op, ErrIndexOrder, idx))
				return
			}
			r.have = true
			r.last = idx

			r.agg.addNew(idx, v)
			r.agg.evictBefore(idx - r.span)

			val, err := r.agg.current()
			if !yield(val, err) {
				return
			}
		}
	}
}

// Extend appends more onto the end of this driver's input and returns
// the continuation of Values.
func (r *RollingIndexed[I, T, V]) Extend(more iter.Seq2[I, T]) iter.Seq2[V, error] {
	moreNext, moreStop := iter.Pull2(more)
	r.next = chainNext2(r.next, moreNext)
	r.stops = append(r.stops, moreStop)
	logDebugf(r.logger, "%s: extended with new input", r.op)
	return r.Values()
}
