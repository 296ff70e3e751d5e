package rollz

import (
	"cmp"
	"container/heap"
	"iter"
)

type heapItem[T cmp.Ordered] struct {
	value T
	birth int // arrival sequence number, assigned once per addNew
}

// minHeapItems implements container/heap.Interface over heapItem,
// ordered by value so the root is always the current minimum.
type minHeapItems[T cmp.Ordered] []heapItem[T]

func (h minHeapItems[T]) Len() int            { return len(h) }
func (h minHeapItems[T]) Less(i, j int) bool  { return h[i].value < h[j].value }
func (h minHeapItems[T]) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *minHeapItems[T]) Push(x any)         { *h = append(*h, x.(heapItem[T])) }
func (h *minHeapItems[T]) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// minHeapAgg implements the minimum aggregator via a lazily-deleted
// binary heap rather than a monotonic deque: every arriving value is
// pushed unconditionally, and an item is only actually removed once it
// would surface at the root after its slot has been evicted. An item
// with birth sequence number b is still live as long as b is greater
// than the count of removeOld calls so far; since birth values are
// strictly increasing arrival order, this is exactly FIFO validity
// without needing to track each item's position.
//
// Because staleness is only checked at the root, the heap can transiently
// hold more than Size entries when the data arrives in an order that
// keeps old minima buried under the current one.
type minHeapAgg[T cmp.Ordered] struct {
	items   minHeapItems[T]
	arrive  int
	evicted int
}

func (a *minHeapAgg[T]) addNew(v T) {
	a.arrive++
	heap.Push(&a.items, heapItem[T]{value: v, birth: a.arrive})
}

func (a *minHeapAgg[T]) removeOld() {
	a.evicted++
	for len(a.items) > 0 && a.items[0].birth <= a.evicted {
		heap.Pop(&a.items)
	}
}

func (a *minHeapAgg[T]) current() (T, error) {
	if len(a.items) == 0 {
		var zero T
		return zero, newError("MinHeap", ErrEmptyWindow)
	}
	return a.items[0].value, nil
}

func (a *minHeapAgg[T]) count() int {
	return a.arrive - a.evicted
}

// MinHeap reports the minimum value in each window position, maintained
// with a lazily-deleted binary heap rather than Min's monotonic deque.
// It is a drop-in alternative with the same semantics and amortized
// O(log k) update time (Min's deque is amortized O(1)); Min is the better default, and MinHeap
// exists for cases that want heap-based bookkeeping (e.g. generalizing
// toward a k-th-smallest query) at the cost of occasional over-capacity
// growth.
type MinHeap[T cmp.Ordered] struct {
	driver *Rolling[T, T]
}

// NewMinHeap constructs a heap-backed rolling minimum over seq under spec.
func NewMinHeap[T cmp.Ordered](seq iter.Seq[T], spec WindowSpec) *MinHeap[T] {
	agg := &minHeapAgg[T]{}
	return &MinHeap[T]{driver: newRolling[T, T]("MinHeap", seq, spec, agg)}
}

// Values returns the lazy sequence of (minimum, error) pairs.
func (m *MinHeap[T]) Values() iter.Seq2[T, error] { return m.driver.Values() }

// Extend appends more onto the input and returns the continuation.
func (m *MinHeap[T]) Extend(more iter.Seq[T]) iter.Seq2[T, error] { return m.driver.Extend(more) }

// SetLogger installs a diagnostic logger.
func (m *MinHeap[T]) SetLogger(l Logger) { m.driver.SetLogger(l) }

// Count reports the number of elements presently retained.
func (m *MinHeap[T]) Count() int { return m.driver.Count() }

func (m *MinHeap[T]) String() string { return m.driver.String() }
