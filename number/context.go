package number

import (
	"math/big"

	"github.com/cockroachdb/apd/v2"
)

const (
	// DefaultPrecision is used when Context.Precision is zero.
	DefaultPrecision = 30

	guardDigits = 10
	maxExtra    = 2000
)

// Context carries the number of significant decimal digits approximate
// results must be good for. Intervals are computed with a few guard digits
// beyond that.
type Context struct {
	Precision uint32
}

func (c Context) prec() uint32 {
	if c.Precision == 0 {
		return DefaultPrecision
	}
	return c.Precision
}

func (c Context) work() uint32 { return c.prec() + guardDigits }

// eulerGamma is the Euler–Mascheroni constant to 40 decimals.
const eulerGamma = "0.5772156649015328606065120900824024310421"

// Pi returns an interval enclosing π.
func (c Context) Pi() Number {
	w := c.work()
	v, err := piDecimal(w + 5)
	if err != nil {
		return Number{}
	}
	lo, hi := enclose(v, new(apd.Decimal), w+5, w)
	return Number{re: intervalReal(lo, hi)}
}

// E returns an interval enclosing e.
func (c Context) E() Number {
	n, _ := c.Exp(Int(1))
	return n
}

// Euler returns an interval enclosing the Euler–Mascheroni constant γ. Its
// width never drops below 1e-40.
func (c Context) Euler() Number {
	v, _, _ := apd.NewFromString(eulerGamma)
	eps := apd.New(1, -40)
	lo, hi := new(apd.Decimal), new(apd.Decimal)
	w := c.work()
	_, _ = floorCtx(w).Sub(lo, v, eps)
	_, _ = ceilCtx(w).Add(hi, v, eps)
	return Number{re: intervalReal(lo, hi)}
}

// enclose turns v, computed at precision p from the argument x, into an
// interval rounded outward at precision w. The error bound is
// (|v| + |x| + 1)·10^−(p−4).
func enclose(v, x *apd.Decimal, p, w uint32) (lo, hi *apd.Decimal) {
	ctx := nearCtx(8)
	mag := new(apd.Decimal)
	_, _ = ctx.Add(mag, decAbs(v), decAbs(x))
	_, _ = ctx.Add(mag, mag, one)
	eps := new(apd.Decimal)
	_, _ = ceilCtx(8).Mul(eps, mag, apd.New(1, -int32(p)+4))
	lo, hi = new(apd.Decimal), new(apd.Decimal)
	_, _ = floorCtx(w).Sub(lo, v, eps)
	_, _ = ceilCtx(w).Add(hi, v, eps)
	return lo, hi
}

// extraDigits is the precision needed on top of w to keep the integer part
// of x, so that argument reduction stays accurate for large x.
func extraDigits(x *apd.Decimal) (uint32, bool) {
	if x.IsZero() {
		return 0, true
	}
	a := adjusted(x)
	if a <= 0 {
		return 0, true
	}
	if a > maxExtra {
		return 0, false
	}
	return uint32(a), true
}

type decFunc func(d *decCalc, x *apd.Decimal) *apd.Decimal

// point evaluates f at x and returns an enclosure of the result.
func (c Context) point(f decFunc, x *apd.Decimal) (lo, hi *apd.Decimal, ok bool) {
	w := c.work()
	extra, ok := extraDigits(x)
	if !ok {
		return nil, nil, false
	}
	p := w + extra
	d := newDecCalc(p)
	v := f(d, x)
	if d.err != nil || v.Form != apd.Finite {
		return nil, nil, false
	}
	lo, hi = enclose(v, x, p, w)
	return lo, hi, true
}

// monotone maps x through a function that is monotone on x.
func (c Context) monotone(x Real, f decFunc, increasing bool) (Real, bool) {
	xl, xh := x.bounds(c.work())
	l1, h1, ok := c.point(f, xl)
	if !ok {
		return Real{}, false
	}
	l2, h2 := l1, h1
	if xl.Cmp(xh) != 0 {
		if l2, h2, ok = c.point(f, xh); !ok {
			return Real{}, false
		}
	}
	if increasing {
		return intervalReal(l1, h2), true
	}
	return intervalReal(l2, h1), true
}

// periodic maps x through sin or cos. maxPhase and minPhase locate the
// extrema as fractions of π modulo 2π.
func (c Context) periodic(x Real, f decFunc, maxPhase, minPhase *apd.Decimal) (Real, bool) {
	w := c.work()
	xl, xh := x.bounds(w)
	l1, h1, ok := c.point(f, xl)
	if !ok {
		return Real{}, false
	}
	lo, hi := l1, h1
	if xl.Cmp(xh) != 0 {
		l2, h2, ok := c.point(f, xh)
		if !ok {
			return Real{}, false
		}
		lo, hi = minDec(l1, l2), maxDec(h1, h2)
		extra, ok := extraDigits(maxDec(decAbs(xl), decAbs(xh)))
		if !ok {
			return Real{}, false
		}
		d := newDecCalc(w + extra)
		pi := d.pi()
		twoPi := d.mul(two, pi)
		slack := d.mul(d.add(decAbs(xh), one), apd.New(1, -int32(w)+4))
		if d.sub(xh, xl).Cmp(twoPi) >= 0 {
			lo, hi = apd.New(-1, 0), apd.New(1, 0)
		} else {
			if d.reaches(xl, xh, d.mul(maxPhase, pi), twoPi, slack) {
				hi = apd.New(1, 0)
			}
			if d.reaches(xl, xh, d.mul(minPhase, pi), twoPi, slack) {
				lo = apd.New(-1, 0)
			}
		}
		if d.err != nil {
			return Real{}, false
		}
	}
	if lo.Cmp(apd.New(-1, 0)) < 0 {
		lo = apd.New(-1, 0)
	}
	if hi.Cmp(one) > 0 {
		hi = apd.New(1, 0)
	}
	return intervalReal(lo, hi), true
}

// reaches reports whether some phase + 2kπ may lie in [lo, hi].
func (d *decCalc) reaches(lo, hi, phase, period, slack *apd.Decimal) bool {
	k := new(apd.Decimal)
	if _, err := d.ctx.Ceil(k, d.quo(d.sub(d.sub(lo, slack), phase), period)); err != nil {
		d.err = err
		return true
	}
	t := d.add(phase, d.mul(k, period))
	return t.Cmp(d.add(hi, slack)) <= 0
}

func ratDec(r *big.Rat) *apd.Decimal {
	lo, _ := ratBounds(r, 20)
	return lo
}

var (
	phaseHalf    = ratDec(big.NewRat(1, 2))
	phaseNegHalf = ratDec(big.NewRat(-1, 2))
	phaseZero    = new(apd.Decimal)
	phaseOne     = apd.New(1, 0)
)

func (c Context) sinReal(x Real) (Real, bool) {
	if x.isExactZero() {
		return Real{}, true
	}
	return c.periodic(x, sinDec, phaseHalf, phaseNegHalf)
}

func (c Context) cosReal(x Real) (Real, bool) {
	if x.isExactZero() {
		return exactReal(big.NewRat(1, 1)), true
	}
	return c.periodic(x, cosDec, phaseZero, phaseOne)
}

func (c Context) expReal(x Real) (Real, bool) {
	if x.isExactZero() {
		return exactReal(big.NewRat(1, 1)), true
	}
	return c.monotone(x, expDec, true)
}

func (c Context) sinhReal(x Real) (Real, bool) {
	if x.isExactZero() {
		return Real{}, true
	}
	return c.monotone(x, sinhDec, true)
}

func (c Context) coshReal(x Real) (Real, bool) {
	if x.isExactZero() {
		return exactReal(big.NewRat(1, 1)), true
	}
	switch {
	case x.nonNegative():
		return c.monotone(x, coshDec, true)
	case x.nonPositive():
		return c.monotone(x, coshDec, false)
	}
	// the interval straddles zero, where cosh has its minimum 1
	_, hi, ok := c.point(coshDec, maxDec(decAbs(x.lo), x.hi))
	if !ok {
		return Real{}, false
	}
	return intervalReal(apd.New(1, 0), hi), true
}

// lnReal requires x > 0.
func (c Context) lnReal(x Real) (Real, bool) {
	if s, ok := x.sign(); !ok || s <= 0 {
		return Real{}, false
	}
	if x.isExact() && x.ratVal().Cmp(big.NewRat(1, 1)) == 0 {
		return Real{}, true
	}
	return c.monotone(x, lnDec, true)
}

// sqrtReal requires x >= 0 and returns an exact root when there is one.
func (c Context) sqrtReal(x Real) (Real, bool) {
	if !x.nonNegative() {
		return Real{}, false
	}
	if x.isExact() {
		if r, ok := ratRoot(x.ratVal(), 2); ok {
			return exactReal(r), true
		}
	}
	if !x.isExact() && x.lo.IsZero() {
		_, hi, ok := c.point(sqrtDec, x.hi)
		return intervalReal(new(apd.Decimal), hi), ok
	}
	return c.monotone(x, sqrtDec, true)
}
