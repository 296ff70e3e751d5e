package rollz

import (
	"fmt"
	"iter"
	"math"
)

// sumAgg maintains a running sum by adding the incoming value and
// subtracting the evicted one; no recomputation ever touches the whole
// window.
type sumAgg[T Numeric] struct {
	buf ringBuffer[T]
	sum T
}

func (a *sumAgg[T]) addNew(v T)  { a.buf.push(v); a.sum += v }
func (a *sumAgg[T]) removeOld()  { a.sum -= a.buf.pop() }
func (a *sumAgg[T]) current() (T, error) { return a.sum, nil }
func (a *sumAgg[T]) count() int { return a.buf.len() }

// Sum reports the sum of each window position.
type Sum[T Numeric] struct{ driver *Rolling[T, T] }

// NewSum constructs a rolling sum over seq under spec.
func NewSum[T Numeric](seq iter.Seq[T], spec WindowSpec) *Sum[T] {
	return &Sum[T]{driver: newRolling[T, T]("Sum", seq, spec, &sumAgg[T]{})}
}

func (s *Sum[T]) Values() iter.Seq2[T, error]           { return s.driver.Values() }
func (s *Sum[T]) Extend(more iter.Seq[T]) iter.Seq2[T, error] { return s.driver.Extend(more) }
func (s *Sum[T]) SetLogger(l Logger)                    { s.driver.SetLogger(l) }
func (s *Sum[T]) Count() int                            { return s.driver.Count() }
func (s *Sum[T]) String() string                        { return s.driver.String() }

// productAgg maintains a running product. Zero values are tracked by
// count rather than folded into the product directly, since a zero
// cannot be divided back out again once evicted.
type productAgg[T Numeric] struct {
	buf       ringBuffer[T]
	product   T
	zeroCount int
}

func (a *productAgg[T]) addNew(v T) {
	a.buf.push(v)
	if v != 0 {
		a.product *= v
	} else {
		a.zeroCount++
	}
}

func (a *productAgg[T]) removeOld() {
	old := a.buf.pop()
	if old != 0 {
		a.product /= old
	} else {
		a.zeroCount--
	}
}

func (a *productAgg[T]) current() (T, error) {
	if a.zeroCount > 0 {
		return 0, nil
	}
	return a.product, nil
}

func (a *productAgg[T]) count() int { return a.buf.len() }

// Product reports the product of each window position, treating a
// window containing any zero as having product zero without ever
// dividing by it.
type Product[T Numeric] struct{ driver *Rolling[T, T] }

// NewProduct constructs a rolling product over seq under spec.
func NewProduct[T Numeric](seq iter.Seq[T], spec WindowSpec) *Product[T] {
	agg := &productAgg[T]{product: T(1)}
	return &Product[T]{driver: newRolling[T, T]("Product", seq, spec, agg)}
}

func (p *Product[T]) Values() iter.Seq2[T, error]           { return p.driver.Values() }
func (p *Product[T]) Extend(more iter.Seq[T]) iter.Seq2[T, error] { return p.driver.Extend(more) }
func (p *Product[T]) SetLogger(l Logger)                    { p.driver.SetLogger(l) }
func (p *Product[T]) Count() int                            { return p.driver.Count() }
func (p *Product[T]) String() string                        { return p.driver.String() }

// meanAgg reuses sumAgg's running total and divides by population on read.
type meanAgg[T Numeric] struct {
	sum sumAgg[T]
	op  string
}

func (a *meanAgg[T]) addNew(v T) { a.sum.addNew(v) }
func (a *meanAgg[T]) removeOld() { a.sum.removeOld() }
func (a *meanAgg[T]) count() int { return a.sum.count() }
func (a *meanAgg[T]) current() (float64, error) {
	n := a.sum.count()
	if n == 0 {
		return 0, newError(a.op, ErrEmptyWindow)
	}
	return float64(a.sum.sum) / float64(n), nil
}

// Mean reports the arithmetic mean of each window position.
type Mean[T Numeric] struct{ driver *Rolling[T, float64] }

// NewMean constructs a rolling mean over seq under spec.
func NewMean[T Numeric](seq iter.Seq[T], spec WindowSpec) *Mean[T] {
	agg := &meanAgg[T]{op: "Mean"}
	return &Mean[T]{driver: newRolling[T, float64]("Mean", seq, spec, agg)}
}

func (m *Mean[T]) Values() iter.Seq2[float64, error]           { return m.driver.Values() }
func (m *Mean[T]) Extend(more iter.Seq[T]) iter.Seq2[float64, error] { return m.driver.Extend(more) }
func (m *Mean[T]) SetLogger(l Logger)                          { m.driver.SetLogger(l) }
func (m *Mean[T]) Count() int                                  { return m.driver.Count() }
func (m *Mean[T]) String() string                              { return m.driver.String() }

// varConfig holds the options shared by Var and Std.
type varConfig struct {
	ddof int
}

// VarOption configures Var and Std.
type VarOption func(*varConfig)

// WithDdof sets the delta degrees of freedom used as the variance
// divisor: (N - ddof). The default is 0 (the population variance).
func WithDdof(ddof int) VarOption {
	return func(c *varConfig) { c.ddof = ddof }
}

func resolveVarConfig(opts []VarOption) varConfig {
	cfg := varConfig{ddof: 0}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// varAgg maintains the running mean and sum-of-squared-deviations via
// Welford's algorithm, extended with the inverse update needed to evict
// an element rather than only ever adding one.
type varAgg[T Numeric] struct {
	buf  ringBuffer[T]
	ddof int
	mean float64
	sslm float64 // sum of squared deviations from the running mean
}

func (a *varAgg[T]) addNew(v T) {
	a.buf.push(v)
	n := float64(a.buf.len())
	delta := float64(v) - a.mean
	a.mean += delta / n
	a.sslm += delta * (float64(v) - a.mean)
}

func (a *varAgg[T]) removeOld() {
	old := a.buf.pop()
	n := float64(a.buf.len())
	if n == 0 {
		a.mean = 0
		a.sslm = 0
		return
	}
	delta := float64(old) - a.mean
	a.mean -= delta / n
	a.sslm -= delta * (float64(old) - a.mean)
}

func (a *varAgg[T]) current() (float64, error) {
	n := a.buf.len()
	if n <= a.ddof {
		return math.NaN(), nil
	}
	if a.sslm < 0 {
		a.sslm = 0
		return 0, nil
	}
	return a.sslm / float64(n-a.ddof), nil
}

func (a *varAgg[T]) count() int { return a.buf.len() }

// Var reports the variance of each window position using Welford's
// algorithm, with divisor (N - ddof). Before enough elements have
// arrived to clear ddof, it reports NaN rather than an error, matching the floating-point
// convention of propagating an undefined result as a sentinel value.
type Var[T Numeric] struct{ driver *Rolling[T, float64] }

// NewVar constructs a rolling variance over seq under spec. Panics if
// spec.Size() does not exceed the configured ddof (default 0).
func NewVar[T Numeric](seq iter.Seq[T], spec WindowSpec, opts ...VarOption) *Var[T] {
	cfg := resolveVarConfig(opts)
	if spec.Kind() != Indexed && spec.Size() <= cfg.ddof {
		panic(fmt.Sprintf("rollz: Var: window size %d must exceed ddof %d", spec.Size(), cfg.ddof))
	}
	agg := &varAgg[T]{ddof: cfg.ddof}
	return &Var[T]{driver: newRolling[T, float64]("Var", seq, spec, agg)}
}

func (v *Var[T]) Values() iter.Seq2[float64, error]           { return v.driver.Values() }
func (v *Var[T]) Extend(more iter.Seq[T]) iter.Seq2[float64, error] { return v.driver.Extend(more) }
func (v *Var[T]) SetLogger(l Logger)                          { v.driver.SetLogger(l) }
func (v *Var[T]) Count() int                                  { return v.driver.Count() }
func (v *Var[T]) String() string                              { return v.driver.String() }

type stdAgg[T Numeric] struct{ v varAgg[T] }

func (a *stdAgg[T]) addNew(val T) { a.v.addNew(val) }
func (a *stdAgg[T]) removeOld()   { a.v.removeOld() }
func (a *stdAgg[T]) count() int   { return a.v.count() }
func (a *stdAgg[T]) current() (float64, error) {
	variance, err := a.v.current()
	if err != nil {
		return 0, err
	}
	return math.Sqrt(variance), nil
}

// Std reports the standard deviation of each window position: the
// square root of Var.
type Std[T Numeric] struct{ driver *Rolling[T, float64] }

// NewStd constructs a rolling standard deviation over seq under spec.
func NewStd[T Numeric](seq iter.Seq[T], spec WindowSpec, opts ...VarOption) *Std[T] {
	cfg := resolveVarConfig(opts)
	if spec.Kind() != Indexed && spec.Size() <= cfg.ddof {
		panic(fmt.Sprintf("rollz: Std: window size %d must exceed ddof %d", spec.Size(), cfg.ddof))
	}
	agg := &stdAgg[T]{v: varAgg[T]{ddof: cfg.ddof}}
	return &Std[T]{driver: newRolling[T, float64]("Std", seq, spec, agg)}
}

func (s *Std[T]) Values() iter.Seq2[float64, error]           { return s.driver.Values() }
func (s *Std[T]) Extend(more iter.Seq[T]) iter.Seq2[float64, error] { return s.driver.Extend(more) }
func (s *Std[T]) SetLogger(l Logger)                          { s.driver.SetLogger(l) }
func (s *Std[T]) Count() int                                  { return s.driver.Count() }
func (s *Std[T]) String() string                              { return s.driver.String() }

// skewAgg tracks the first three raw power sums, from which skewness is
// derived without ever rescanning the window.
type skewAgg[T Numeric] struct {
	buf        ringBuffer[T]
	x1, x2, x3 float64
}

func (a *skewAgg[T]) addNew(v T) {
	a.buf.push(v)
	f := float64(v)
	a.x1 += f
	a.x2 += f * f
	a.x3 += f * f * f
}

func (a *skewAgg[T]) removeOld() {
	old := a.buf.pop()
	f := float64(old)
	a.x1 -= f
	a.x2 -= f * f
	a.x3 -= f * f * f
}

func (a *skewAgg[T]) count() int { return a.buf.len() }

func (a *skewAgg[T]) current() (float64, error) {
	n := float64(a.buf.len())
	if n < 3 {
		return math.NaN(), nil
	}
	mean := a.x1 / n
	variance := a.x2/n - mean*mean
	thirdMoment := a.x3/n - mean*mean*mean - 3*mean*variance
	if variance <= 1e-14 {
		return math.NaN(), nil
	}
	sd := math.Sqrt(variance)
	return (math.Sqrt(n*(n-1)) * thirdMoment) / ((n - 2) * sd * sd * sd), nil
}

// Skew reports the (bias-adjusted) skewness of each window position.
// Window size must exceed 2.
type Skew[T Numeric] struct{ driver *Rolling[T, float64] }

// NewSkew constructs a rolling skewness over seq under spec.
func NewSkew[T Numeric](seq iter.Seq[T], spec WindowSpec) *Skew[T] {
	if spec.Kind() != Indexed && spec.Size() <= 2 {
		panic(fmt.Sprintf("rollz: Skew: window size %d must exceed 2", spec.Size()))
	}
	return &Skew[T]{driver: newRolling[T, float64]("Skew", seq, spec, &skewAgg[T]{})}
}

func (s *Skew[T]) Values() iter.Seq2[float64, error]           { return s.driver.Values() }
func (s *Skew[T]) Extend(more iter.Seq[T]) iter.Seq2[float64, error] { return s.driver.Extend(more) }
func (s *Skew[T]) SetLogger(l Logger)                          { s.driver.SetLogger(l) }
func (s *Skew[T]) Count() int                                  { return s.driver.Count() }
func (s *Skew[T]) String() string                              { return s.driver.String() }

// kurtAgg tracks the first four raw power sums.
type kurtAgg[T Numeric] struct {
	buf            ringBuffer[T]
	x1, x2, x3, x4 float64
}

func (a *kurtAgg[T]) addNew(v T) {
	a.buf.push(v)
	f := float64(v)
	a.x1 += f
	a.x2 += f * f
	a.x3 += f * f * f
	a.x4 += f * f * f * f
}

func (a *kurtAgg[T]) removeOld() {
	old := a.buf.pop()
	f := float64(old)
	a.x1 -= f
	a.x2 -= f * f
	a.x3 -= f * f * f
	a.x4 -= f * f * f * f
}

func (a *kurtAgg[T]) count() int { return a.buf.len() }

func (a *kurtAgg[T]) current() (float64, error) {
	n := float64(a.buf.len())
	if n <= 3 {
		return math.NaN(), nil
	}
	mean := a.x1 / n
	r := mean * mean
	variance := a.x2/n - r
	r *= mean
	thirdMoment := a.x3/n - r - 3*mean*variance
	r *= mean
	fourthMoment := a.x4/n - r - 6*variance*mean*mean - 4*thirdMoment*mean

	if variance <= 1e-14 {
		return math.NaN(), nil
	}
	k := (n*n-1)*fourthMoment/(variance*variance) - 3*((n-1)*(n-1))
	return k / ((n - 2) * (n - 3)), nil
}

// Kurtosis reports the (bias-adjusted) excess kurtosis of each window
// position. Window size must exceed 3.
type Kurtosis[T Numeric] struct{ driver *Rolling[T, float64] }

// NewKurtosis constructs a rolling kurtosis over seq under spec.
func NewKurtosis[T Numeric](seq iter.Seq[T], spec WindowSpec) *Kurtosis[T] {
	if spec.Kind() != Indexed && spec.Size() <= 3 {
		panic(fmt.Sprintf("rollz: Kurtosis: window size %d must exceed 3", spec.Size()))
	}
	return &Kurtosis[T]{driver: newRolling[T, float64]("Kurtosis", seq, spec, &kurtAgg[T]{})}
}

func (k *Kurtosis[T]) Values() iter.Seq2[float64, error]           { return k.driver.Values() }
func (k *Kurtosis[T]) Extend(more iter.Seq[T]) iter.Seq2[float64, error] { return k.driver.Extend(more) }
func (k *Kurtosis[T]) SetLogger(l Logger)                          { k.driver.SetLogger(l) }
func (k *Kurtosis[T]) Count() int                                  { return k.driver.Count() }
func (k *Kurtosis[T]) String() string                              { return k.driver.String() }
