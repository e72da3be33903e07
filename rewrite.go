package gocalc

import (
	"math/big"

	"github.com/njchilds90/gocalc/number"
)

// ============================================================
// Sign helpers
// ============================================================

// negate returns −e, pushing the sign into coefficients and sums while
// keeping term order.
func negate(e Expr) Expr {
	switch v := e.(type) {
	case *Num:
		return NumOf(number.Context{}.Neg(v.val))
	case *Mul:
		if n, ok := v.factors[0].(*Num); ok {
			k := number.Context{}.Neg(n.val)
			if k.IsOne() {
				return MulOf(v.factors[1:]...)
			}
			return MulOf(append([]Expr{NumOf(k)}, v.factors[1:]...)...)
		}
		return MulOf(append([]Expr{N(-1)}, v.factors...)...)
	case *Add:
		terms := make([]Expr, len(v.terms))
		for i, t := range v.terms {
			terms[i] = negate(t)
		}
		return AddOf(terms...)
	}
	return MulOf(N(-1), e)
}

// isPredominantlyNegative reports whether e reads as a negated expression:
// a negative number, a product with a negative coefficient, or a sum where
// more than half of the terms are. An even split is decided by the first
// term. That tie rule is a heuristic; it only needs negate to flip the
// answer so that sign rewrites terminate.
func isPredominantlyNegative(e Expr) bool {
	switch v := e.(type) {
	case *Num:
		return v.val.IsNegative()
	case *Mul:
		n, ok := v.factors[0].(*Num)
		return ok && n.val.IsNegative()
	case *Add:
		neg := 0
		for _, t := range v.terms {
			if isPredominantlyNegative(t) {
				neg++
			}
		}
		n := len(v.terms)
		if 2*neg == n {
			return isPredominantlyNegative(v.terms[0])
		}
		return 2*neg > n
	}
	return false
}

// pureImaginary returns y when x is i·y with y provably real.
func (c *Context) pureImaginary(x Expr) (Expr, bool) {
	switch v := x.(type) {
	case *Num:
		if v.val.IsInfinite() || !v.val.IsComplex() || !v.val.Real().IsExactZero() {
			return nil, false
		}
		return NumOf(v.val.Imag()), true
	case *Mul:
		n, ok := v.factors[0].(*Num)
		if !ok || !n.val.IsComplex() || n.val.IsInfinite() || !n.val.Real().IsExactZero() {
			return nil, false
		}
		rest := v.factors[1:]
		if !c.all(rest, PropReal) {
			return nil, false
		}
		return canonMul(n.val.Imag(), rest), true
	}
	return nil, false
}

// ============================================================
// Multiples of π and angle units
// ============================================================

// piMultiple returns q when e is q·π for a rational q.
func piMultiple(e Expr) (*big.Rat, bool) {
	switch v := e.(type) {
	case *Num:
		if v.val.IsExactZero() {
			return new(big.Rat), true
		}
	case *Sym:
		if v.isConst("pi") {
			return big.NewRat(1, 1), true
		}
	case *Mul:
		if len(v.factors) != 2 {
			return nil, false
		}
		n, ok := v.factors[0].(*Num)
		s, isSym := v.factors[1].(*Sym)
		if !ok || !isSym || !s.isConst("pi") {
			return nil, false
		}
		return n.val.Rat()
	}
	return nil, false
}

// splitAngleUnit separates an angle unit from x: "deg" or "30*deg".
func (c *Context) splitAngleUnit(x Expr) (Expr, angleUnit, bool) {
	switch v := x.(type) {
	case *Unit:
		if u, ok := c.units[v.name]; ok {
			return N(1), u, true
		}
	case *Mul:
		at := -1
		for i, f := range v.factors {
			if u, ok := f.(*Unit); ok {
				if _, known := c.units[u.name]; !known || at >= 0 {
					return nil, angleUnit{}, false
				}
				at = i
			}
		}
		if at < 0 {
			return nil, angleUnit{}, false
		}
		rest := make([]Expr, 0, len(v.factors)-1)
		rest = append(rest, v.factors[:at]...)
		rest = append(rest, v.factors[at+1:]...)
		return MulOf(rest...), c.units[v.factors[at].(*Unit).name], true
	}
	return nil, angleUnit{}, false
}

// toRadians converts an evaluated angle to radians. An attached unit wins
// over the angle unit of opts.
func (c *Context) toRadians(x Expr, opts Options) Expr {
	if rest, u, ok := c.splitAngleUnit(x); ok {
		if u.factor == nil {
			return rest
		}
		return c.eval(MulOf(rest, u.radians()), opts)
	}
	if f := unitToRadians(opts.AngleUnit); f != nil {
		return c.eval(MulOf(x, f), opts)
	}
	return x
}

// unitToRadians is the size of one unit of u in radians, nil for radians.
func unitToRadians(u AngleUnit) Expr {
	switch u {
	case Degrees:
		return MulOf(F(1, 180), Pi())
	case Gradians:
		return MulOf(F(1, 200), Pi())
	}
	return nil
}

// radiansToUnit is one radian in u, nil for radians.
func radiansToUnit(u AngleUnit) Expr {
	switch u {
	case Degrees:
		return MulOf(N(180), PowOf(Pi(), N(-1)))
	case Gradians:
		return MulOf(N(200), PowOf(Pi(), N(-1)))
	}
	return nil
}

// angleFromPi is q·π expressed in the angle unit of opts.
func angleFromPi(q *big.Rat, opts Options) Expr {
	switch opts.AngleUnit {
	case Degrees:
		return RatOf(new(big.Rat).Mul(q, big.NewRat(180, 1)))
	case Gradians:
		return RatOf(new(big.Rat).Mul(q, big.NewRat(200, 1)))
	}
	return MulOf(RatOf(q), Pi())
}

// angleFromRadians wraps an expression in radians into the angle unit of
// opts.
func angleFromRadians(e Expr, opts Options) Expr {
	if f := radiansToUnit(opts.AngleUnit); f != nil {
		return MulOf(e, f)
	}
	return e
}

// asRadians marks y as an angle in radians, so that it is read correctly
// whatever the angle unit of opts.
func asRadians(y Expr, opts Options) Expr {
	if unitToRadians(opts.AngleUnit) == nil {
		return y
	}
	return MulOf(y, U("rad"))
}

// numberToUnit converts a numeric angle in radians to the unit of opts.
func numberToUnit(nc number.Context, v number.Number, u AngleUnit) (number.Number, bool) {
	var k int64
	switch u {
	case Degrees:
		k = 180
	case Gradians:
		k = 200
	default:
		return v, true
	}
	if v.IsExactZero() {
		return v, true
	}
	t, ok := nc.Mul(v, number.Int(k))
	if !ok {
		return v, false
	}
	return nc.Quo(t, nc.Pi())
}

// ============================================================
// Shared evaluation helpers
// ============================================================

// numeric returns x as a number: directly, or under TryExact by
// approximating it.
func (c *Context) numeric(x Expr, opts Options) (*Num, bool) {
	if n, ok := x.(*Num); ok {
		return n, true
	}
	if opts.Approximation != TryExact {
		return nil, false
	}
	n, ok := c.eval(x, opts.WithApproximation(Approximate)).(*Num)
	return n, ok
}

// probeExact runs rule on the exactly evaluated argument with messages
// held back. The messages are kept only when the rule matched.
func (c *Context) probeExact(x Expr, opts Options, rule func(Expr, Options) (Expr, bool)) (Expr, bool) {
	s := c.BeginTemporary()
	exact := opts.WithApproximation(Exact)
	out, ok := rule(c.eval(x, exact), exact)
	s.End(ok)
	return out, ok
}

// exactReal reports whether e is provably real and free of approximate
// values; the guard of every identity that depends on a branch.
func (c *Context) exactReal(e Expr) bool {
	return !e.IsApproximate() && c.Represents(e, PropReal)
}
