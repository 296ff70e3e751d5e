package rollz

import "testing"

func setEq[T comparable](s map[T]struct{}, want ...T) bool {
	if len(s) != len(want) {
		return false
	}
	for _, w := range want {
		if _, ok := s[w]; !ok {
			return false
		}
	}
	return true
}

func TestBiCounterBasic(t *testing.T) {
	b := newBiCounter[string]()
	b.increment("a")
	b.increment("b")
	b.increment("a")
	if b.largest != 2 {
		t.Fatalf("largest = %d, want 2", b.largest)
	}
	if !setEq(b.mostCommon(), "a") {
		t.Fatalf("mostCommon = %v, want {a}", b.mostCommon())
	}
	b.increment("b")
	if !setEq(b.mostCommon(), "a", "b") {
		t.Fatalf("mostCommon after tie = %v, want {a,b}", b.mostCommon())
	}
}

func TestBiCounterDecrementDropsLargest(t *testing.T) {
	b := newBiCounter[string]()
	b.increment("a")
	b.increment("a")
	b.increment("b")
	b.decrement("a")
	if !setEq(b.mostCommon(), "a", "b") {
		t.Fatalf("mostCommon after decrement = %v, want {a,b}", b.mostCommon())
	}
	b.decrement("a")
	b.decrement("b")
	if b.len() != 0 {
		t.Fatalf("len = %d, want 0 once every item has been fully decremented", b.len())
	}
	if got := b.mostCommon(); len(got) != 0 {
		t.Fatalf("mostCommon on empty counter = %v, want empty", got)
	}
}

func TestBiCounterDecrementMissingIsNoop(t *testing.T) {
	b := newBiCounter[string]()
	b.decrement("missing")
	if b.len() != 0 || b.largest != 0 {
		t.Fatalf("decrementing an absent item should be a no-op")
	}
}
