package rollz

import "iter"

// medianAgg maintains the window's sorted order in a skiplist so the
// middle rank (or the average of the two middle ranks) can be read off
// in O(log k) without ever sorting the window from scratch.
type medianAgg[T Numeric] struct {
	buf      ringBuffer[T]
	skiplist *indexableSkiplist[T]
}

func (a *medianAgg[T]) addNew(v T) {
	a.buf.push(v)
	a.skiplist.insert(v)
}

func (a *medianAgg[T]) removeOld() {
	old := a.buf.pop()
	a.skiplist.remove(old)
}

func (a *medianAgg[T]) count() int { return a.buf.len() }

func (a *medianAgg[T]) current() (float64, error) {
	n := a.buf.len()
	if n == 0 {
		return 0, newError("Median", ErrEmptyWindow)
	}
	if n%2 == 1 {
		return float64(a.skiplist.at(n / 2)), nil
	}
	lo := float64(a.skiplist.at(n/2 - 1))
	hi := float64(a.skiplist.at(n / 2))
	return (lo + hi) / 2, nil
}

// Median reports the median value of each window position, maintained
// with an indexable skiplist.
type Median[T Numeric] struct{ driver *Rolling[T, float64] }

// NewMedian constructs a rolling median over seq under spec.
func NewMedian[T Numeric](seq iter.Seq[T], spec WindowSpec) *Median[T] {
	agg := &medianAgg[T]{skiplist: newIndexableSkiplist[T](spec.Size())}
	return &Median[T]{driver: newRolling[T, float64]("Median", seq, spec, agg)}
}

func (m *Median[T]) Values() iter.Seq2[float64, error]             { return m.driver.Values() }
func (m *Median[T]) Extend(more iter.Seq[T]) iter.Seq2[float64, error] { return m.driver.Extend(more) }
func (m *Median[T]) SetLogger(l Logger)                            { m.driver.SetLogger(l) }
func (m *Median[T]) Count() int                                    { return m.driver.Count() }
func (m *Median[T]) String() string                                { return m.driver.String() }
