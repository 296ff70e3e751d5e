package rollz

import "iter"

// jaccardAgg maintains the window's multiset and its intersection and
// union against a fixed target set incrementally: each arriving or
// evicted value only changes its own key's count in each multiset,
// rather than recomputing the intersection and union from scratch.
// union is seeded at construction with one count per target-set member
// so that a target value never in the window still counts toward the
// union; only the window-contributed portion of that count is ever
// added or removed, so a seeded baseline is never deleted out from
// under it.
type jaccardAgg[T comparable] struct {
	buf          ringBuffer[T]
	target       map[T]struct{}
	intersection map[T]int
	union        map[T]int
}

func (a *jaccardAgg[T]) addNew(v T) {
	a.buf.push(v)
	a.union[v]++
	if _, ok := a.target[v]; ok {
		a.intersection[v]++
	}
}

func (a *jaccardAgg[T]) removeOld() {
	old := a.buf.pop()
	if n := a.union[old]; n <= 1 {
		delete(a.union, old)
	} else {
		a.union[old] = n - 1
	}
	if _, ok := a.target[old]; ok {
		if n := a.intersection[old]; n <= 1 {
			delete(a.intersection, old)
		} else {
			a.intersection[old] = n - 1
		}
	}
}

func (a *jaccardAgg[T]) count() int { return a.buf.len() }

func (a *jaccardAgg[T]) current() (float64, error) {
	if len(a.union) == 0 {
		return 0, nil
	}
	return float64(len(a.intersection)) / float64(len(a.union)), nil
}

// JaccardIndex reports, for each window position, the Jaccard similarity
// between the distinct values retained and a fixed target set: the ratio
// of the size of their intersection to the size of their union.
type JaccardIndex[T comparable] struct{ driver *Rolling[T, float64] }

// NewJaccardIndex constructs a rolling Jaccard similarity over seq under
// spec, against targetSet. Panics if targetSet is empty.
func NewJaccardIndex[T comparable](seq iter.Seq[T], spec WindowSpec, targetSet []T) *JaccardIndex[T] {
	if len(targetSet) == 0 {
		panic(newError("JaccardIndex", ErrEmptyTarget).Error())
	}
	target := make(map[T]struct{}, len(targetSet))
	union := make(map[T]int, len(targetSet))
	for _, v := range targetSet {
		target[v] = struct{}{}
		union[v]++
	}
	agg := &jaccardAgg[T]{
		target:       target,
		intersection: make(map[T]int),
		union:        union,
	}
	return &JaccardIndex[T]{driver: newRolling[T, float64]("JaccardIndex", seq, spec, agg)}
}

func (j *JaccardIndex[T]) Values() iter.Seq2[float64, error] { return j.driver.Values() }
func (j *JaccardIndex[T]) Extend(more iter.Seq[T]) iter.Seq2[float64, error] {
	return j.driver.Extend(more)
}
func (j *JaccardIndex[T]) SetLogger(l Logger) { j.driver.SetLogger(l) }
func (j *JaccardIndex[T]) Count() int         { return j.driver.Count() }
func (j *JaccardIndex[T]) String() string     { return j.driver.String() }
