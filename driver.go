package rollz

import (
	"fmt"
	"iter"
)

// phase tracks where a Rolling driver sits in the prime/steady/drain cycle.
// Only Variable windows distinguish all three; Fixed windows derive their
// behavior from the aggregator's count instead, but the field still
// records "drained" so Extend and String can report it.
type phase int

const (
	phasePriming phase = iota
	phaseActive
	phaseDrained
)

func (p phase) String() string {
	switch p {
	case phasePriming:
		return "priming"
	case phaseActive:
		return "active"
	case phaseDrained:
		return "drained"
	default:
		return "unknown"
	}
}

// Rolling drives a single aggregator over a lazy input sequence under a
// Fixed or Variable WindowSpec, producing one (value, error) pair per
// window position. It is the engine every non-indexed aggregator
// constructor (NewSum, NewMin, NewMedian, ...) builds on; callers never
// construct a Rolling directly.
//
// A Rolling is single-consumer: Values must not be ranged over from more
// than one goroutine at a time, and it is stateful across calls, so a
// second call to Values resumes wherever the first left off rather than
// restarting.
type Rolling[T, V any] struct {
	op     string
	spec   WindowSpec
	agg    aggregator[T, V]
	logger Logger

	next  func() (T, bool)
	stops []func()
	phase phase
}

// newRolling constructs a driver for op over seq under spec, wrapping agg.
// spec.Kind() must be Fixed or Variable; Indexed specs are driven by
// newRollingIndexed instead.
func newRolling[T, V any](op string, seq iter.Seq[T], spec WindowSpec, agg aggregator[T, V]) *Rolling[T, V] {
	if spec.Kind() == Indexed {
		panic(fmt.Sprintf("rollz: %s: Indexed window spec requires an indexed constructor", op))
	}
	next, stop := iter.Pull(seq)
	return &Rolling[T, V]{
		op:    op,
		spec:  spec,
		agg:   agg,
		next:  next,
		stops: []func(){stop},
		phase: phasePriming,
	}
}

// chainNext composes two pull functions into one that exhausts a before
// ever calling b, letting Extend append a fresh sequence onto one already
// partially consumed without disturbing either's internal state.
func chainNext[T any](a, b func() (T, bool)) func() (T, bool) {
	aDone := false
	return func() (T, bool) {
		if !aDone {
			if v, ok := a(); ok {
				return v, true
			}
			aDone = true
		}
		return b()
	}
}

func (r *Rolling[T, V]) stopAll() {
	for _, stop := range r.stops {
		stop()
	}
}

// SetLogger installs a diagnostic logger; nil (the default) disables
// logging.
func (r *Rolling[T, V]) SetLogger(l Logger) {
	r.logger = l
}

// Count reports the number of elements presently retained in the window.
func (r *Rolling[T, V]) Count() int {
	return r.agg.count()
}

// String renders the driver's operation name, window spec, and phase.
func (r *Rolling[T, V]) String() string {
	return fmt.Sprintf("%s(%s, phase=%s)", r.op, r.spec, r.phase)
}

// Values returns the lazy, single-pass sequence of (value, error) pairs
// this driver produces by pulling from its input. Ranging over the
// returned sequence drives consumption: nothing is read from the
// underlying input until the consumer asks for the next value.
func (r *Rolling[T, V]) Values() iter.Seq2[V, error] {
	return func(yield func(V, error) bool) {
		switch r.spec.Kind() {
		case Fixed:
			r.runFixed(yield)
		case Variable:
			r.runVariable(yield)
		default:
			panic(fmt.Sprintf("rollz: %s: unsupported window kind %s", r.op, r.spec.Kind()))
		}
	}
}

// Extend appends more to the end of this driver's input and returns the
// continuation of Values: the sequence of (value, error) pairs produced
// by resuming consumption, now drawing from more once the original input
// is exhausted. Extend only has an effect once the driver has actually
// reached end of input; calling it earlier just queues more for later.
func (r *Rolling[T, V]) Extend(more iter.Seq[T]) iter.Seq2[V, error] {
	moreNext, moreStop := iter.Pull(more)
	r.next = chainNext(r.next, moreNext)
	r.stops = append(r.stops, moreStop)
	if r.phase == phaseDrained {
		if r.spec.Kind() == Variable && r.agg.count() == 0 {
			r.phase = phasePriming
		} else {
			r.phase = phaseActive
		}
	}
	logDebugf(r.logger, "%s: extended with new input, resuming from phase=%s", r.op, r.phase)
	return r.Values()
}

// runFixed drives a Fixed window: the first Size-1 inputs only grow the
// window, emitting nothing; every input afterward adds one element,
// evicts the oldest once the window holds more than Size, and emits. Because the loop bounds are expressed in terms
// of agg.count() rather than a persisted step counter, resuming mid-
// stream (a second Values call, or an Extend) falls directly into the
// correct branch regardless of where the previous call stopped.
func (r *Rolling[T, V]) runFixed(yield func(V, error) bool) {
	size := r.spec.Size()

	for r.agg.count() < size-1 {
		v, ok := r.next()
		if !ok {
			r.stopAll()
			r.phase = phaseDrained
			return
		}
		r.agg.addNew(v)
	}
	r.phase = phaseActive

	for {
		v, ok := r.next()
		if !ok {
			r.stopAll()
			r.phase = phaseDrained
			return
		}
		r.agg.addNew(v)
		if r.agg.count() > size {
			r.agg.removeOld()
		}
		val, err := r.agg.current()
		if !yield(val, err) {
			return
		}
	}
}

// runVariable drives a Variable window through its three phases: growing
// (emit after every input while count < Size), steady (full window,
// add-then-evict-then-emit per input), and drain (once input ends, shrink
// to a single element, emitting after each eviction). The drain phase is only
// reached if the window was ever filled; a stream shorter than Size ends
// with no drain, matching the reference implementation (a stream
// exhausted mid-prime simply stops, since nothing was ever evicted).
func (r *Rolling[T, V]) runVariable(yield func(V, error) bool) {
	size := r.spec.Size()

	for r.agg.count() < size {
		v, ok := r.next()
		if !ok {
			r.stopAll()
			r.phase = phaseDrained
			return
		}
		r.agg.addNew(v)
		val, err := r.agg.current()
		if !yield(val, err) {
			return
		}
	}
	r.phase = phaseActive

	for {
		v, ok := r.next()
		if !ok {
			r.stopAll()
			break
		}
		r.agg.addNew(v)
		r.agg.removeOld()
		val, err := r.agg.current()
		if !yield(val, err) {
			return
		}
	}

	for r.agg.count() > 1 {
		r.agg.removeOld()
		val, err := r.agg.current()
		if !yield(val, err) {
			return
		}
	}
	r.phase = phaseDrained
}
