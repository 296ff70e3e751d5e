package rollz

import (
	"cmp"
	"math"
	"math/rand/v2"
)

// skiplistNode is one node of an indexable skiplist. tail is the single
// shared terminal sentinel: it never holds a usable value and compares
// as greater than every real value, so every per-level search can stop
// at it without a separate nil check.
type skiplistNode[T cmp.Ordered] struct {
	value T
	tail  bool
	next  []*skiplistNode[T]
	width []int
}

// indexableSkiplist is a sorted multiset supporting O(log n) insertion,
// removal by value, and lookup by rank, following Raymond Hettinger's
// "indexable skiplist" recipe: every forward pointer is annotated with
// its width (the number of elements it skips), so rank lookup walks the
// same levels used for search instead of a separate structure.
//
// This is how Median is kept current without ever sorting the window:
// inserting the newly-arrived value and removing the evicted one are
// both O(log k), and the middle rank(s) are read off directly.
type indexableSkiplist[T cmp.Ordered] struct {
	maxLevels int
	head      *skiplistNode[T]
	size      int
}

// newIndexableSkiplist builds an empty skiplist sized for roughly
// expectedSize elements. expectedSize only tunes the level count for
// expected performance; the structure still operates correctly (just
// with more or fewer levels than ideal) if the window ends up larger.
func newIndexableSkiplist[T cmp.Ordered](expectedSize int) *indexableSkiplist[T] {
	if expectedSize < 2 {
		expectedSize = 2
	}
	maxLevels := 1 + int(math.Log2(float64(expectedSize)))
	tail := &skiplistNode[T]{tail: true}
	head := &skiplistNode[T]{
		next:  make([]*skiplistNode[T], maxLevels),
		width: make([]int, maxLevels),
	}
	for i := range head.next {
		head.next[i] = tail
		head.width[i] = 1
	}
	return &indexableSkiplist[T]{maxLevels: maxLevels, head: head}
}

// at returns the value with the given rank (0-indexed, ascending).
func (s *indexableSkiplist[T]) at(rank int) T {
	node := s.head
	i := rank + 1
	for level := s.maxLevels - 1; level >= 0; level-- {
		for node.width[level] <= i {
			i -= node.width[level]
			node = node.next[level]
		}
	}
	return node.value
}

// randomLevel chooses how many levels a newly-inserted node participates
// in, following the recipe's geometric distribution capped at maxLevels.
func (s *indexableSkiplist[T]) randomLevel() int {
	level := 1
	for rand.Float64() < 0.5 && level < s.maxLevels {
		level++
	}
	return level
}

func (s *indexableSkiplist[T]) insert(value T) {
	chain := make([]*skiplistNode[T], s.maxLevels)
	stepsAtLevel := make([]int, s.maxLevels)

	node := s.head
	for level := s.maxLevels - 1; level >= 0; level-- {
		for !node.next[level].tail && node.next[level].value <= value {
			stepsAtLevel[level] += node.width[level]
			node = node.next[level]
		}
		chain[level] = node
	}

	d := s.randomLevel()
	newNode := &skiplistNode[T]{
		value: value,
		next:  make([]*skiplistNode[T], d),
		width: make([]int, d),
	}

	steps := 0
	for level := 0; level < d; level++ {
		prev := chain[level]
		newNode.next[level] = prev.next[level]
		prev.next[level] = newNode
		newNode.width[level] = prev.width[level] - steps
		prev.width[level] = steps + 1
		steps += stepsAtLevel[level]
	}
	for level := d; level < s.maxLevels; level++ {
		chain[level].width[level]++
	}
	s.size++
}

func (s *indexableSkiplist[T]) remove(value T) {
	chain := make([]*skiplistNode[T], s.maxLevels)
	node := s.head
	for level := s.maxLevels - 1; level >= 0; level-- {
		for !node.next[level].tail && node.next[level].value < value {
			node = node.next[level]
		}
		chain[level] = node
	}

	target := chain[0].next[0]
	if target.tail || target.value != value {
		panic("rollz: skiplist.remove: value not present")
	}

	d := len(target.next)
	for level := 0; level < d; level++ {
		prev := chain[level]
		prev.width[level] += prev.next[level].width[level] - 1
		prev.next[level] = prev.next[level].next[level]
	}
	for level := d; level < s.maxLevels; level++ {
		chain[level].width[level]--
	}
	s.size--
}
