package rollz

import (
	"fmt"
	"iter"
)

// applyAgg is an escape hatch: rather than implementing a dedicated
// aggregator, it hands the whole retained buffer to a caller-supplied
// reduction on every step. Convenient for one-off operations that don't
// justify an incremental implementation; O(k) per step instead of
// whatever an incremental version of the same operation could achieve.
type applyAgg[T, V any] struct {
	buf       ringBuffer[T]
	operation func([]T) V
}

func (a *applyAgg[T, V]) addNew(v T)    { a.buf.push(v) }
func (a *applyAgg[T, V]) removeOld()    { a.buf.pop() }
func (a *applyAgg[T, V]) count() int    { return a.buf.len() }
func (a *applyAgg[T, V]) current() (V, error) {
	return a.operation(a.buf.snapshot()), nil
}

// Apply reports, for each window position, operation applied to the
// retained elements (oldest first). Unlike the package's dedicated
// aggregators, the whole window is handed to operation on every step.
type Apply[T, V any] struct{ driver *Rolling[T, V] }

// NewApply constructs a rolling application of operation over seq under
// spec.
func NewApply[T, V any](seq iter.Seq[T], spec WindowSpec, operation func([]T) V) *Apply[T, V] {
	agg := &applyAgg[T, V]{operation: operation}
	return &Apply[T, V]{driver: newRolling[T, V]("Apply", seq, spec, agg)}
}

func (a *Apply[T, V]) Values() iter.Seq2[V, error]           { return a.driver.Values() }
func (a *Apply[T, V]) Extend(more iter.Seq[T]) iter.Seq2[V, error] { return a.driver.Extend(more) }
func (a *Apply[T, V]) SetLogger(l Logger)                    { a.driver.SetLogger(l) }
func (a *Apply[T, V]) Count() int                             { return a.driver.Count() }
func (a *Apply[T, V]) String() string                         { return a.driver.String() }

// applyIndexedAgg is ApplyIndexed's indexed-window counterpart to
// applyAgg: operation sees the retained values (oldest first) whenever
// the index-driven window changes.
type applyIndexedAgg[I Numeric, T, V any] struct {
	idxBuf    ringBuffer[I]
	valBuf    ringBuffer[T]
	operation func([]T) V
}

func (a *applyIndexedAgg[I, T, V]) addNew(idx I, v T) {
	a.idxBuf.push(idx)
	a.valBuf.push(v)
}

func (a *applyIndexedAgg[I, T, V]) evictBefore(cutoff I) {
	for a.idxBuf.len() > 0 && a.idxBuf.peek() <= cutoff {
		a.idxBuf.pop()
		a.valBuf.pop()
	}
}

func (a *applyIndexedAgg[I, T, V]) current() (V, error) {
	return a.operation(a.valBuf.snapshot()), nil
}
func (a *applyIndexedAgg[I, T, V]) count() int { return a.idxBuf.len() }

// ApplyIndexed reports, for each step of an indexed stream, operation
// applied to the values whose index lies within span of the most
// recently arrived index.
type ApplyIndexed[I Numeric, T, V any] struct {
	driver *RollingIndexed[I, T, V]
}

// NewApplyIndexed constructs an indexed rolling application of operation
// over seq, evicting elements once their index falls span or more behind
// the most recently arrived one.
func NewApplyIndexed[I Numeric, T, V any](seq iter.Seq2[I, T], span I, operation func([]T) V) *ApplyIndexed[I, T, V] {
	agg := &applyIndexedAgg[I, T, V]{operation: operation}
	return &ApplyIndexed[I, T, V]{driver: newRollingIndexed[I, T, V]("ApplyIndexed", seq, span, agg)}
}

func (a *ApplyIndexed[I, T, V]) Values() iter.Seq2[V, error] { return a.driver.Values() }
func (a *ApplyIndexed[I, T, V]) Extend(more iter.Seq2[I, T]) iter.Seq2[V, error] {
	return a.driver.Extend(more)
}
func (a *ApplyIndexed[I, T, V]) SetLogger(l Logger) { a.driver.SetLogger(l) }
func (a *ApplyIndexed[I, T, V]) Count() int         { return a.driver.Count() }
func (a *ApplyIndexed[I, T, V]) String() string     { return a.driver.String() }

// ApplyPairwise drives two input sequences in lockstep, applying a binary
// operation to the two parallel windows at each step. It is its own
// small driver rather than a wrapper around Rolling, since Rolling is
// built around a single input sequence.
type ApplyPairwise[A, B, V any] struct {
	spec      WindowSpec
	operation func([]A, []B) V
	logger    Logger

	bufA       []A
	bufB       []B
	next1      func() (A, bool)
	next2      func() (B, bool)
	stops      []func()
	phase      phase
}

// NewApplyPairwise constructs a rolling binary application over a and b
// under spec, in lockstep: step N of a is paired with step N of b.
func NewApplyPairwise[A, B, V any](a iter.Seq[A], b iter.Seq[B], spec WindowSpec, operation func([]A, []B) V) *ApplyPairwise[A, B, V] {
	next1, stop1 := iter.Pull(a)
	next2, stop2 := iter.Pull(b)
	return &ApplyPairwise[A, B, V]{
		spec:      spec,
		operation: operation,
		next1:     next1,
		next2:     next2,
		stops:     []func(){stop1, stop2},
		phase:     phasePriming,
	}
}

func (p *ApplyPairwise[A, B, V]) stopAll() {
	for _, stop := range p.stops {
		stop()
	}
}

func (p *ApplyPairwise[A, B, V]) SetLogger(l Logger) { p.logger = l }
func (p *ApplyPairwise[A, B, V]) Count() int         { return len(p.bufA) }
func (p *ApplyPairwise[A, B, V]) String() string {
	return fmt.Sprintf("ApplyPairwise(%s, phase=%s)", p.spec, p.phase)
}

func (p *ApplyPairwise[A, B, V]) step() (ok, mismatched bool) {
	v1, ok1 := p.next1()
	v2, ok2 := p.next2()
	if ok1 != ok2 {
		return false, true
	}
	if !ok1 {
		return false, false
	}
	p.bufA = append(p.bufA, v1)
	p.bufB = append(p.bufB, v2)
	if len(p.bufA) > p.spec.Size() {
		p.bufA = p.bufA[1:]
		p.bufB = p.bufB[1:]
	}
	return true, false
}

func (p *ApplyPairwise[A, B, V]) emit(yield func(V, error) bool) bool {
	return yield(p.operation(p.bufA, p.bufB), nil)
}

// Values returns the lazy sequence of (value, error) pairs produced by
// pulling a and b in lockstep. If one sequence ends before the other,
// the sequence yields a single *Error wrapping ErrStreamMismatch and
// ends.
func (p *ApplyPairwise[A, B, V]) Values() iter.Seq2[V, error] {
	return func(yield func(V, error) bool) {
		size := p.spec.Size()
		variable := p.spec.Kind() == Variable

		for len(p.bufA) < size-1 {
			ok, mismatched := p.step()
			if mismatched {
				p.stopAll()
				yield(*new(V), newError("ApplyPairwise", ErrStreamMismatch))
				return
			}
			if !ok {
				p.stopAll()
				p.phase = phaseDrained
				return
			}
			if variable && !p.emit(yield) {
				return
			}
		}
		p.phase = phaseActive

		for {
			ok, mismatched := p.step()
			if mismatched {
				p.stopAll()
				yield(*new(V), newError("ApplyPairwise", ErrStreamMismatch))
				return
			}
			if !ok {
				break
			}
			if !p.emit(yield) {
				return
			}
		}
		p.stopAll()

		if variable {
			for len(p.bufA) > 1 {
				p.bufA = p.bufA[1:]
				p.bufB = p.bufB[1:]
				if !p.emit(yield) {
					return
				}
			}
		}
		p.phase = phaseDrained
	}
}

// Extend appends moreA and moreB onto the end of this driver's two
// inputs and returns the continuation of Values.
func (p *ApplyPairwise[A, B, V]) Extend(moreA iter.Seq[A], moreB iter.Seq[B]) iter.Seq2[V, error] {
	nextA, stopA := iter.Pull(moreA)
	nextB, stopB := iter.Pull(moreB)
	p.next1 = chainNext(p.next1, nextA)
	p.next2 = chainNext(p.next2, nextB)
	p.stops = append(p.stops, stopA, stopB)
	if p.phase == phaseDrained {
		if p.spec.Kind() == Variable && len(p.bufA) == 0 {
			p.phase = phasePriming
		} else {
			p.phase = phaseActive
		}
	}
	logDebugf(p.logger, "ApplyPairwise: extended with new input, resuming from phase=%s", p.phase)
	return p.Values()
}
