package rollz

import (
	"math"
	"slices"
	"testing"
)

func TestEntropyUniformWindow(t *testing.T) {
	seq := slices.Values([]string{"a", "b", "c", "d"})
	e := NewEntropy(seq, NewWindowSpec(4))
	got := collectOK(e.Values())
	if len(got) != 1 {
		t.Fatalf("expected one output, got %v", got)
	}
	if math.Abs(got[0]-math.Log(4)) > 1e-9 {
		t.Fatalf("entropy of 4 equally likely values = %v, want ln(4) nats", got[0])
	}
}

func TestEntropyUniformWindowBase2(t *testing.T) {
	seq := slices.Values([]string{"a", "b", "c", "d"})
	e := NewEntropy(seq, NewWindowSpec(4), WithBase[string](2))
	got := collectOK(e.Values())
	if len(got) != 1 {
		t.Fatalf("expected one output, got %v", got)
	}
	if math.Abs(got[0]-2.0) > 1e-9 {
		t.Fatalf("entropy of 4 equally likely values in base 2 = %v, want 2 bits", got[0])
	}
}

func TestEntropyConstantWindowIsZero(t *testing.T) {
	seq := slices.Values([]string{"a", "a", "a"})
	e := NewEntropy(seq, NewWindowSpec(3))
	got := collectOK(e.Values())
	if len(got) != 1 || math.Abs(got[0]) > 1e-9 {
		t.Fatalf("entropy of a constant window = %v, want 0", got)
	}
}

func TestEntropyPanicsOnVariableWindow(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic constructing Entropy over a Variable window")
		}
	}()
	seq := slices.Values([]string{"a", "b"})
	NewEntropy(seq, NewWindowSpec(2).Variable())
}

func TestEntropyPanicsOnInvalidBase(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic constructing Entropy with base 1")
		}
	}()
	seq := slices.Values([]string{"a", "b"})
	NewEntropy(seq, NewWindowSpec(2), WithBase[string](1))
}

func TestEntropyMatchesNaiveRecompute(t *testing.T) {
	data := []int{1, 2, 2, 3, 1, 1, 2, 3, 3, 3}
	size := 4
	seq := slices.Values(data)
	e := NewEntropy(seq, NewWindowSpec(size))
	got := collectOK(e.Values())

	i := 0
	for start := 0; start+size <= len(data); start++ {
		want := naiveEntropy(data[start : start+size])
		if math.Abs(got[i]-want) > 1e-9 {
			t.Fatalf("Entropy[%d] = %v, want %v", i, got[i], want)
		}
		i++
	}
}

func TestEntropyRelativeToReference(t *testing.T) {
	reference := map[string]float64{"a": 0.5, "b": 0.5}
	seq := slices.Values([]string{"a", "a", "b", "b"})
	e := NewEntropy(seq, NewWindowSpec(4), WithReference(reference))
	got := collectOK(e.Values())
	if len(got) != 1 {
		t.Fatalf("expected one output, got %v", got)
	}
	// window matches reference exactly: KL divergence is 0.
	if math.Abs(got[0]) > 1e-9 {
		t.Fatalf("relative entropy against matching reference = %v, want 0", got[0])
	}
}

func TestEntropyFailsDomainOnUnreferencedValue(t *testing.T) {
	reference := map[string]float64{"a": 1.0}
	seq := slices.Values([]string{"a", "a", "b"})
	e := NewEntropy(seq, NewWindowSpec(3), WithReference(reference))

	var sawErr bool
	for _, err := range e.Values() {
		if err != nil {
			sawErr = true
		}
	}
	if !sawErr {
		t.Fatal("expected a domain error when the window contains a value absent from the reference")
	}
}

func naiveEntropy(window []int) float64 {
	counts := make(map[int]int)
	for _, v := range window {
		counts[v]++
	}
	var h float64
	n := float64(len(window))
	for _, c := range counts {
		p := float64(c) / n
		h -= p * math.Log(p)
	}
	return h
}
