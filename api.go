// Package rollz provides incremental rolling-window aggregators over lazy
// sequences, enabling real-time reduction (sum, min, max, median, mode,
// variance, entropy, hashing, and more) without recomputing each window
// from scratch.
//
// The core abstraction is the Aggregator interface, a four-operation
// capability set (add, evict, value, count) implemented once per
// operation and driven uniformly by a single windowing engine. Input is
// modeled as an iter.Seq (or iter.Seq2 for indexed windows): a lazy,
// single-pass, pull-based producer. Output is the same kind of sequence,
// with one value per window position.
//
// Basic usage:
//
//	seq := slices.Values([]int{8, 1, 1, 3, 6, 5})
//	sum := rollz.NewSum(seq, rollz.NewWindowSpec(3))
//
//	for v := range sum.Values() {
//		fmt.Println(v) // 10, 5, 10, 14
//	}
//
// The package provides aggregators for:
//   - Extrema: Min, Max, MinHeap
//   - Moments: Sum, Product, Mean, Var, Std, Skew, Kurtosis
//   - Order statistics: Median
//   - Multisets: Nunique, Mode, Entropy
//   - Structure: Any, All, Monotonic, Match
//   - Hashing and similarity: PolynomialHash, JaccardIndex
//   - Escape hatches: Apply, ApplyPairwise, ApplyIndexed
//
// Every aggregator is single-consumer and not safe for concurrent use;
// there is no internal concurrency, no persistence, and no backpressure
// beyond the natural pull model of lazy iteration.
package rollz

// Numeric is the set of types the moment aggregators (Sum, Product, Mean,
// Var, Std, Skew, Kurtosis) operate over.
type Numeric interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Integral is the set of types PolynomialHash accepts directly as window
// elements (values that are already non-negative machine integers).
type Integral interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// aggregator is the uniform capability set every rolling operation
// implements: incorporate a newly arrived value, evict the oldest
// retained value, and report the current reduction and window
// population. The windowing engine in driver.go is polymorphic over this
// interface (driver_indexed.go drives the indexedAggregator counterpart);
// it never knows which operation it is driving.
//
// T is the type of an incoming window element; V is the type of the
// reduction current() reports.
type aggregator[T, V any] interface {
	// addNew incorporates a newly-arrived value into the window.
	addNew(v T)

	// removeOld evicts the oldest value currently in the window.
	removeOld()

	// current returns the reduction of the window in its present state,
	// along with an error if the window does not yet (or no longer)
	// hold enough data for the operation to be defined.
	current() (V, error)

	// count returns the number of elements presently retained.
	count() int
}
