package rollz

import "fmt"

// Kind identifies the window discipline an aggregator is driven under.
type Kind int

const (
	// Fixed windows emit only once full; the first output appears after
	// Size inputs have arrived.
	Fixed Kind = iota

	// Variable windows emit growing windows while priming (sizes
	// 1..Size), full windows in steady state, and shrinking windows
	// after the input ends (sizes Size-1..1).
	Variable

	// Indexed windows retain every element whose index lies within
	// (current_index - Size, current_index]; both window length and
	// per-step eviction count are data-dependent. Indexed windows are
	// driven over iter.Seq2 rather than iter.Seq; see driver_indexed.go.
	Indexed
)

// String returns the window kind's name, for use in error messages and
// the aggregators' String methods.
func (k Kind) String() string {
	switch k {
	case Fixed:
		return "fixed"
	case Variable:
		return "variable"
	case Indexed:
		return "indexed"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// WindowSpec is an immutable window specification: how many elements (or,
// for indexed windows, what index span) an aggregator retains, and under
// which of the three disciplines described by Kind.
//
// The zero value is not valid; construct with NewWindowSpec.
type WindowSpec struct {
	size int
	kind Kind
}

// NewWindowSpec builds a fixed window specification of the given size.
// Use Variable or Indexed to select a different discipline. Panics if
// size is not positive, mirroring the teacher's fail-fast construction
// idiom (fluent builders that validate eagerly rather than deferring to
// first use).
func NewWindowSpec(size int) WindowSpec {
	if size <= 0 {
		panic("rollz: window size must be positive")
	}
	return WindowSpec{size: size, kind: Fixed}
}

// Variable returns a copy of the spec with Kind set to Variable.
func (w WindowSpec) Variable() WindowSpec {
	w.kind = Variable
	return w
}

// Indexed returns a copy of the spec with Kind set to Indexed. Size is
// then interpreted as the maximum index span: an element with index idx
// is retained alongside the most recently arrived index idxN as long as
// idxN - idx < Size. No constructor in this package accepts an Indexed
// spec (newRolling panics on one); the indexed aggregators, ApplyIndexed
// and NuniqueIndexed, take their span as a separate argument.
func (w WindowSpec) Indexed() WindowSpec {
	w.kind = Indexed
	return w
}

// Size returns the configured window size (element count for Fixed and
// Variable, index span for Indexed).
func (w WindowSpec) Size() int {
	return w.size
}

// Kind returns the window discipline.
func (w WindowSpec) Kind() Kind {
	return w.kind
}

// String renders the window specification for diagnostics.
func (w WindowSpec) String() string {
	return fmt.Sprintf("WindowSpec(size=%d, kind=%s)", w.size, w.kind)
}
