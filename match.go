package rollz

import "iter"

// matchAgg keeps a polynomial hash of the window alongside the window's
// raw contents, bucketed by hash, for a precomputed set of target
// sequences. A hash match is cheap to check on every step; the raw
// contents are only compared element-by-element when a hash collision
// makes that necessary.
type matchAgg[T comparable] struct {
	hash       polyHashAgg[int64]
	buf        ringBuffer[T]
	numeric    func(T) int64
	byHash     map[int64][][]T
	windowSize int
}

func (a *matchAgg[T]) addNew(v T) {
	a.buf.push(v)
	a.hash.addNew(a.numeric(v))
}

func (a *matchAgg[T]) removeOld() {
	a.buf.pop()
	a.hash.removeOld()
}

func (a *matchAgg[T]) count() int { return a.buf.len() }

func (a *matchAgg[T]) current() (bool, error) {
	if a.buf.len() < a.windowSize {
		return false, nil
	}
	candidates, ok := a.byHash[a.hash.hash]
	if !ok {
		return false, nil
	}
	window := a.buf.snapshot()
	for _, target := range candidates {
		if equalSlices(window, target) {
			return true, nil
		}
	}
	return false, nil
}

func equalSlices[T comparable](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Match reports, for each window position, whether the window's contents
// exactly equal one of a fixed set of target sequences. All targets must
// share the same length, which becomes the window size.
type Match[T comparable] struct{ driver *Rolling[T, bool] }

// NewMatch constructs a rolling exact-match check over seq: Values
// reports true at every window position whose contents equal one of
// targets. toInt converts an element to the integer PolynomialHash
// hashes on; for ordinary integer element types, pass a direct
// conversion (e.g. func(v int) int64 { return int64(v) }).
//
// Panics if targets is empty or its members are not all the same length.
func NewMatch[T comparable](seq iter.Seq[T], targets [][]T, toInt func(T) int64, opts ...HashOption) *Match[T] {
	if len(targets) == 0 {
		panic(newError("Match", ErrEmptyTarget).Error())
	}
	size := len(targets[0])
	if size == 0 {
		panic(newError("Match", ErrEmptyTarget).Error())
	}
	for _, t := range targets {
		if len(t) != size {
			panic(newError("Match", ErrTargetLength).Error())
		}
	}
	cfg := resolveHashConfig(opts)
	byHash := make(map[int64][][]T)
	for _, t := range targets {
		ints := make([]int64, len(t))
		for i, v := range t {
			ints[i] = toInt(v)
		}
		h := polynomialHashSequence(ints, cfg.base, cfg.mod)
		byHash[h] = append(byHash[h], t)
	}
	agg := &matchAgg[T]{
		numeric:    toInt,
		byHash:     byHash,
		windowSize: size,
		hash:       polyHashAgg[int64]{base: cfg.base, mod: cfg.mod},
	}
	return &Match[T]{driver: newRolling[T, bool]("Match", seq, NewWindowSpec(size), agg)}
}

func (m *Match[T]) Values() iter.Seq2[bool, error]           { return m.driver.Values() }
func (m *Match[T]) Extend(more iter.Seq[T]) iter.Seq2[bool, error] { return m.driver.Extend(more) }
func (m *Match[T]) SetLogger(l Logger)                       { m.driver.SetLogger(l) }
func (m *Match[T]) Count() int                               { return m.driver.Count() }
func (m *Match[T]) String() string                            { return m.driver.String() }
