package number

import (
	"math/big"

	"github.com/cockroachdb/apd/v2"
)

// RoundMode selects how a value is rounded to an integer.
type RoundMode uint8

const (
	RoundFloor RoundMode = iota
	RoundCeil
	RoundHalfAway
	RoundTrunc
)

func roundRat(q *big.Rat, mode RoundMode) *big.Int {
	num, den := q.Num(), q.Denom()
	switch mode {
	case RoundFloor:
		// Div is Euclidean, which is floor for a positive divisor.
		return new(big.Int).Div(num, den)
	case RoundCeil:
		return new(big.Int).Neg(new(big.Int).Div(new(big.Int).Neg(num), den))
	case RoundHalfAway:
		a := new(big.Rat).Abs(q)
		a.Add(a, big.NewRat(1, 2))
		r := new(big.Int).Div(a.Num(), a.Denom())
		if q.Sign() < 0 {
			r.Neg(r)
		}
		return r
	}
	return new(big.Int).Quo(num, den)
}

func roundDec(x *apd.Decimal, mode RoundMode) (*apd.Decimal, bool) {
	ctx := apd.BaseContext.WithPrecision(decimalDigits(x) + 1)
	d := new(apd.Decimal)
	var err error
	switch mode {
	case RoundFloor:
		_, err = ctx.Floor(d, x)
	case RoundCeil:
		_, err = ctx.Ceil(d, x)
	case RoundHalfAway:
		ctx.Rounding = apd.RoundHalfUp
		_, err = ctx.RoundToIntegralValue(d, x)
	default:
		ctx.Rounding = apd.RoundDown
		_, err = ctx.RoundToIntegralValue(d, x)
	}
	return d, err == nil
}

func roundReal(r Real, mode RoundMode) (Real, bool) {
	if r.isExact() {
		return exactReal(new(big.Rat).SetInt(roundRat(r.ratVal(), mode))), true
	}
	lo, ok := roundDec(r.lo, mode)
	if !ok {
		return Real{}, false
	}
	hi, ok := roundDec(r.hi, mode)
	if !ok || lo.Cmp(hi) != 0 {
		return Real{}, false
	}
	// both ends of the enclosure round to the same integer, so the rounded
	// value is known exactly
	return exactReal(new(big.Rat).SetInt(decInt(lo))), true
}

// decInt converts an integral decimal to a big.Int.
func decInt(d *apd.Decimal) *big.Int {
	z := new(big.Int).Set(&d.Coeff)
	switch {
	case d.Exponent > 0:
		z.Mul(z, new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(d.Exponent)), nil))
	case d.Exponent < 0:
		z.Quo(z, new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(-d.Exponent)), nil))
	}
	if d.Negative {
		z.Neg(z)
	}
	return z
}

// Round rounds each part of x to an integer. It fails when an interval
// spans more than one candidate.
func (c Context) Round(x Number, mode RoundMode) (Number, bool) {
	switch x.inf {
	case PlusInfinity, MinusInfinity:
		return x, true
	case ComplexInfinity:
		return Number{}, false
	}
	re, ok := roundReal(x.re, mode)
	if !ok {
		return Number{}, false
	}
	im, ok := roundReal(x.im, mode)
	if !ok {
		return Number{}, false
	}
	return Number{re: re, im: im}, true
}

func (c Context) Floor(x Number) (Number, bool) { return c.Round(x, RoundFloor) }
func (c Context) Ceil(x Number) (Number, bool)  { return c.Round(x, RoundCeil) }
func (c Context) Trunc(x Number) (Number, bool) { return c.Round(x, RoundTrunc) }

// Frac returns x − trunc(x).
func (c Context) Frac(x Number) (Number, bool) {
	if x.inf != Finite {
		return Number{}, false
	}
	if x.IsRational() {
		q := x.re.ratVal()
		t := new(big.Rat).SetInt(roundRat(q, RoundTrunc))
		return Number{re: exactReal(t.Sub(q, t))}, true
	}
	t, ok := c.Trunc(x)
	if !ok {
		return Number{}, false
	}
	return c.Sub(x, t)
}

// Signum returns x/|x|, and 0 for an exact zero.
func (c Context) Signum(x Number) (Number, bool) {
	switch x.inf {
	case PlusInfinity:
		return Int(1), true
	case MinusInfinity:
		return Int(-1), true
	case ComplexInfinity:
		return Number{}, false
	}
	if x.IsReal() {
		s, ok := x.re.sign()
		if !ok {
			return Number{}, false
		}
		return Int(int64(s)), true
	}
	if !x.IsNonZero() {
		return Number{}, false
	}
	h := c.chain()
	return h.done(h.quo(x, h.fn(c.Abs, x)))
}

// ============================================================
// Rational arithmetic
// ============================================================

func (c Context) Numerator(x Number) (Number, bool) {
	q, ok := x.Rat()
	if !ok {
		return Number{}, false
	}
	return FromInt(q.Num()), true
}

func (c Context) Denominator(x Number) (Number, bool) {
	q, ok := x.Rat()
	if !ok {
		return Number{}, false
	}
	return FromInt(q.Denom()), true
}

func gcdInt(a, b *big.Int) *big.Int {
	return new(big.Int).GCD(nil, nil, new(big.Int).Abs(a), new(big.Int).Abs(b))
}

func lcmInt(a, b *big.Int) *big.Int {
	if a.Sign() == 0 || b.Sign() == 0 {
		return new(big.Int)
	}
	g := gcdInt(a, b)
	l := new(big.Int).Mul(new(big.Int).Abs(a), new(big.Int).Abs(b))
	return l.Quo(l, g)
}

// Gcd is defined on rationals: gcd(a/b, c/d) = gcd(a, c)/lcm(b, d).
func (c Context) Gcd(x, y Number) (Number, bool) {
	p, ok := x.Rat()
	if !ok {
		return Number{}, false
	}
	q, ok := y.Rat()
	if !ok {
		return Number{}, false
	}
	num := gcdInt(p.Num(), q.Num())
	den := lcmInt(p.Denom(), q.Denom())
	return Number{re: exactReal(new(big.Rat).SetFrac(num, den))}, true
}

// Lcm is defined on rationals: lcm(a/b, c/d) = lcm(a, c)/gcd(b, d).
func (c Context) Lcm(x, y Number) (Number, bool) {
	p, ok := x.Rat()
	if !ok {
		return Number{}, false
	}
	q, ok := y.Rat()
	if !ok {
		return Number{}, false
	}
	num := lcmInt(p.Num(), q.Num())
	den := gcdInt(p.Denom(), q.Denom())
	return Number{re: exactReal(new(big.Rat).SetFrac(num, den))}, true
}

func (c Context) remainder(x, y Number, mode RoundMode) (Number, bool) {
	p, ok := x.Rat()
	if !ok {
		return Number{}, false
	}
	q, ok := y.Rat()
	if !ok || q.Sign() == 0 {
		return Number{}, false
	}
	k := new(big.Rat).SetInt(roundRat(new(big.Rat).Quo(p, q), mode))
	r := new(big.Rat).Sub(p, k.Mul(k, q))
	return Number{re: exactReal(r)}, true
}

// Rem is the truncated remainder; the result has the sign of x.
func (c Context) Rem(x, y Number) (Number, bool) { return c.remainder(x, y, RoundTrunc) }

// Mod is the floored remainder; the result has the sign of y.
func (c Context) Mod(x, y Number) (Number, bool) { return c.remainder(x, y, RoundFloor) }
