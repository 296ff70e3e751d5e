package rollz

import "iter"

// nuniqueAgg tracks how many distinct values are currently retained
// using a running per-value frequency map: a value's contribution to
// the distinct count only changes at the moment its own frequency
// crosses between zero and one.
type nuniqueAgg[T comparable] struct {
	buf    ringBuffer[T]
	counts map[T]int
}

func (a *nuniqueAgg[T]) addNew(v T) {
	a.buf.push(v)
	a.counts[v]++
}

func (a *nuniqueAgg[T]) removeOld() {
	old := a.buf.pop()
	a.counts[old]--
	if a.counts[old] == 0 {
		delete(a.counts, old)
	}
}

func (a *nuniqueAgg[T]) current() (int, error) { return len(a.counts), nil }
func (a *nuniqueAgg[T]) count() int            { return a.buf.len() }

// Nunique reports the number of distinct values in each window position.
type Nunique[T comparable] struct{ driver *Rolling[T, int] }

// NewNunique constructs a rolling distinct-count over seq under spec.
func NewNunique[T comparable](seq iter.Seq[T], spec WindowSpec) *Nunique[T] {
	agg := &nuniqueAgg[T]{counts: make(map[T]int)}
	return &Nunique[T]{driver: newRolling[T, int]("Nunique", seq, spec, agg)}
}

func (n *Nunique[T]) Values() iter.Seq2[int, error]           { return n.driver.Values() }
func (n *Nunique[T]) Extend(more iter.Seq[T]) iter.Seq2[int, error] { return n.driver.Extend(more) }
func (n *Nunique[T]) SetLogger(l Logger)                      { n.driver.SetLogger(l) }
func (n *Nunique[T]) Count() int                              { return n.driver.Count() }
func (n *Nunique[T]) String() string                          { return n.driver.String() }

// nuniqueIndexedAgg is Nunique's indexed-window counterpart: eviction is
// driven by index distance rather than a fixed count, so it retains
// both the index and value buffers to know what falls due for eviction.
type nuniqueIndexedAgg[I Numeric, T comparable] struct {
	idxBuf  ringBuffer[I]
	valBuf  ringBuffer[T]
	counts  map[T]int
	nunique int
}

func (a *nuniqueIndexedAgg[I, T]) addNew(idx I, v T) {
	a.idxBuf.push(idx)
	a.valBuf.push(v)
	if a.counts[v] == 0 {
		a.nunique++
	}
	a.counts[v]++
}

func (a *nuniqueIndexedAgg[I, T]) evictBefore(cutoff I) {
	for a.idxBuf.len() > 0 && a.idxBuf.peek() <= cutoff {
		a.idxBuf.pop()
		v := a.valBuf.pop()
		a.counts[v]--
		if a.counts[v] == 0 {
			a.nunique--
			delete(a.counts, v)
		}
	}
}

func (a *nuniqueIndexedAgg[I, T]) current() (int, error) { return a.nunique, nil }
func (a *nuniqueIndexedAgg[I, T]) count() int            { return a.idxBuf.len() }

// NuniqueIndexed reports the number of distinct values retained within
// an index span of the most recently arrived index.
type NuniqueIndexed[I Numeric, T comparable] struct {
	driver *RollingIndexed[I, T, int]
}

// NewNuniqueIndexed constructs an indexed distinct-count aggregator:
// elements are evicted once their index falls span or more behind the
// most recently arrived one.
func NewNuniqueIndexed[I Numeric, T comparable](seq iter.Seq2[I, T], span I) *NuniqueIndexed[I, T] {
	agg := &nuniqueIndexedAgg[I, T]{counts: make(map[T]int)}
	return &NuniqueIndexed[I, T]{driver: newRollingIndexed[I, T, int]("NuniqueIndexed", seq, span, agg)}
}

func (n *NuniqueIndexed[I, T]) Values() iter.Seq2[int, error] { return n.driver.Values() }
func (n *NuniqueIndexed[I, T]) Extend(more iter.Seq2[I, T]) iter.Seq2[int, error] {
	return n.driver.Extend(more)
}
func (n *NuniqueIndexed[I, T]) SetLogger(l Logger) { n.driver.SetLogger(l) }
func (n *NuniqueIndexed[I, T]) Count() int         { return n.driver.Count() }
func (n *NuniqueIndexed[I, T]) String() string     { return n.driver.String() }

// modeConfig holds Mode's options.
type modeConfig struct {
	withCount bool
}

// ModeOption configures Mode.
type ModeOption func(*modeConfig)

// WithCount makes Mode's Values also report the modal frequency
// alongside the set of values tied for it.
func WithCount() ModeOption {
	return func(c *modeConfig) { c.withCount = true }
}

// modeAgg tracks the mode with a bidirectional counter: the set of
// values tied for the highest frequency is available in O(1).
type modeAgg[T comparable] struct {
	buf       ringBuffer[T]
	bicounter *biCounter[T]
	withCount bool
}

func (a *modeAgg[T]) addNew(v T) {
	a.buf.push(v)
	a.bicounter.increment(v)
}

func (a *modeAgg[T]) removeOld() {
	old := a.buf.pop()
	a.bicounter.decrement(old)
}

func (a *modeAgg[T]) count() int { return a.buf.len() }

func (a *modeAgg[T]) current() (ModeResult[T], error) {
	common := a.bicounter.mostCommon()
	values := make([]T, 0, len(common))
	for v := range common {
		values = append(values, v)
	}
	result := ModeResult[T]{Values: values}
	if a.withCount {
		result.Count = a.bicounter.largest
	}
	return result, nil
}

// ModeResult is what Mode reports for a window position: every value
// tied for the highest frequency, and (only when WithCount is set) that
// frequency. An empty window reports a nil Values slice rather than an
// error.
type ModeResult[T comparable] struct {
	Values []T
	Count  int
}

// Mode reports the value(s) tied for the highest frequency in each
// window position.
type Mode[T comparable] struct{ driver *Rolling[T, ModeResult[T]] }

// NewMode constructs a rolling mode over seq under spec.
func NewMode[T comparable](seq iter.Seq[T], spec WindowSpec, opts ...ModeOption) *Mode[T] {
	cfg := modeConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	agg := &modeAgg[T]{bicounter: newBiCounter[T](), withCount: cfg.withCount}
	return &Mode[T]{driver: newRolling[T, ModeResult[T]]("Mode", seq, spec, agg)}
}

func (m *Mode[T]) Values() iter.Seq2[ModeResult[T], error] { return m.driver.Values() }
func (m *Mode[T]) Extend(more iter.Seq[T]) iter.Seq2[ModeResult[T], error] {
	return m.driver.Extend(more)
}
func (m *Mode[T]) SetLogger(l Logger) { m.driver.SetLogger(l) }
func (m *Mode[T]) Count() int         { return m.driver.Count() }
func (m *Mode[T]) String() string     { return m.driver.String() }
