package gocalc

import "github.com/njchilds90/gocalc/number"

// Approximation selects how numbers may be computed.
type Approximation uint8

const (
	// Exact never introduces an approximate value that was not already
	// present in the input.
	Exact Approximation = iota
	// TryExact keeps exact results where a rule finds one and approximates
	// otherwise.
	TryExact
	// Approximate evaluates numerically wherever possible.
	Approximate
)

func (a Approximation) String() string {
	switch a {
	case Exact:
		return "exact"
	case TryExact:
		return "try_exact"
	}
	return "approximate"
}

// AngleUnit is the unit bare arguments of circular functions are read in
// and inverse circular functions answer in.
type AngleUnit uint8

const (
	AngleDefault AngleUnit = iota
	Radians
	Degrees
	Gradians
)

func (u AngleUnit) String() string {
	switch u {
	case Radians:
		return "radians"
	case Degrees:
		return "degrees"
	case Gradians:
		return "gradians"
	}
	return "default"
}

// ParseOptions affect how digit strings are read.
type ParseOptions struct {
	DecimalPoint string // radix point, "." when empty
	Base         int    // base() with a single argument, 10 when zero
}

func (p ParseOptions) decimalPoint() string {
	if p.DecimalPoint == "" {
		return "."
	}
	return p.DecimalPoint
}

func (p ParseOptions) base() int64 {
	if p.Base == 0 {
		return 10
	}
	return int64(p.Base)
}

// Options are passed by value to every evaluator.
type Options struct {
	Approximation Approximation
	AllowComplex  bool
	AllowInfinite bool
	AngleUnit     AngleUnit
	Precision     uint32
	Parse         ParseOptions
}

// DefaultOptions tries exact results first, allows complex and infinite
// results, reads angles in radians and approximates to 30 digits.
func DefaultOptions() Options {
	return Options{
		Approximation: TryExact,
		AllowComplex:  true,
		AllowInfinite: true,
		AngleUnit:     Radians,
		Precision:     number.DefaultPrecision,
	}
}

func (o Options) WithApproximation(a Approximation) Options {
	o.Approximation = a
	return o
}

func (o Options) WithAngleUnit(u AngleUnit) Options {
	o.AngleUnit = u
	return o
}

func (o Options) number() number.Context { return number.Context{Precision: o.Precision} }

// accept applies the result policy of opts to a numeric result computed
// from ins: no approximation from exact input under Exact, no complex value
// from real input unless complex results are allowed, no infinity from
// finite input unless infinite results are allowed.
func (o Options) accept(out number.Number, ins ...number.Number) bool {
	var approx, complexIn, infinite bool
	for _, n := range ins {
		approx = approx || n.IsApproximate()
		complexIn = complexIn || n.IsComplex()
		infinite = infinite || n.IsInfinite()
	}
	switch {
	case o.Approximation == Exact && out.IsApproximate() && !approx:
		return false
	case !o.AllowComplex && out.IsComplex() && !complexIn:
		return false
	case !o.AllowInfinite && out.IsInfinite() && !infinite:
		return false
	}
	return true
}
