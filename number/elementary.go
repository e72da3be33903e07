package number

import (
	"math/big"

	"github.com/cockroachdb/apd/v2"
)

func (c Context) Exp(x Number) (Number, bool) {
	switch x.inf {
	case PlusInfinity:
		return x, true
	case MinusInfinity:
		return Int(0), true
	case ComplexInfinity:
		return Number{}, false
	}
	if x.im.isZero() {
		r, ok := c.expReal(x.re)
		return Number{re: r}, ok
	}
	// e^a·(cos b + i·sin b)
	h := c.chain()
	ea := h.real(c.expReal(x.re))
	cb := h.real(c.cosReal(x.im))
	sb := h.real(c.sinReal(x.im))
	re := h.real(c.mulReal(ea, cb))
	im := h.real(c.mulReal(ea, sb))
	return Number{re: re, im: im}, h.ok
}

// Ln returns the principal logarithm; ln 0 is −∞.
func (c Context) Ln(x Number) (Number, bool) {
	switch x.inf {
	case PlusInfinity:
		return x, true
	case MinusInfinity, ComplexInfinity:
		return Number{}, false
	}
	if x.IsExactZero() {
		return NegInf(), true
	}
	if x.im.isZero() {
		s, ok := x.re.sign()
		if !ok || s == 0 {
			return Number{}, false
		}
		if s > 0 {
			r, ok := c.lnReal(x.re)
			return Number{re: r}, ok
		}
		r, ok := c.lnReal(negReal(x.re))
		return Number{re: r, im: c.Pi().re}, ok
	}
	h := c.chain()
	m := h.fn(c.Abs, x)
	re := h.real(c.lnReal(m.re))
	arg := h.fn(c.Arg, x)
	return Number{re: re, im: arg.re}, h.ok
}

// Arg returns the principal argument in (−π, π].
func (c Context) Arg(x Number) (Number, bool) {
	switch x.inf {
	case PlusInfinity:
		return Int(0), true
	case MinusInfinity:
		return c.Pi(), true
	case ComplexInfinity:
		return Number{}, false
	}
	return c.Atan2(x.Imag(), x.Real())
}

// Atan2 returns the angle of the point (x, y) for real x and y.
func (c Context) Atan2(y, x Number) (Number, bool) {
	if !y.IsReal() || !x.IsReal() || y.inf != Finite || x.inf != Finite {
		return Number{}, false
	}
	sx, okx := x.re.sign()
	sy, oky := y.re.sign()
	if !okx || !oky {
		return Number{}, false
	}
	halfPi := func() Number {
		n, _ := c.Mul(c.Pi(), Frac(1, 2))
		return n
	}
	switch {
	case sx == 0 && sy == 0:
		return Number{}, false
	case sx == 0 && sy > 0:
		return halfPi(), true
	case sx == 0:
		return c.Neg(halfPi()), true
	}
	h := c.chain()
	t := h.fn(c.Atan, h.quo(y, x))
	switch {
	case sx > 0:
	case sy >= 0:
		t = h.add(t, c.Pi())
	default:
		t = h.sub(t, c.Pi())
	}
	return h.done(t)
}

// ============================================================
// Circular functions
// ============================================================

func (c Context) Sin(x Number) (Number, bool) {
	if x.inf != Finite {
		return Number{}, false
	}
	if x.im.isZero() {
		r, ok := c.sinReal(x.re)
		return Number{re: r}, ok
	}
	// sin a·cosh b + i·cos a·sinh b
	h := c.chain()
	sa, ca := h.real(c.sinReal(x.re)), h.real(c.cosReal(x.re))
	sh, ch := h.real(c.sinhReal(x.im)), h.real(c.coshReal(x.im))
	re := h.real(c.mulReal(sa, ch))
	im := h.real(c.mulReal(ca, sh))
	return Number{re: re, im: im}, h.ok
}

func (c Context) Cos(x Number) (Number, bool) {
	if x.inf != Finite {
		return Number{}, false
	}
	if x.im.isZero() {
		r, ok := c.cosReal(x.re)
		return Number{re: r}, ok
	}
	// cos a·cosh b − i·sin a·sinh b
	h := c.chain()
	sa, ca := h.real(c.sinReal(x.re)), h.real(c.cosReal(x.re))
	sh, ch := h.real(c.sinhReal(x.im)), h.real(c.coshReal(x.im))
	re := h.real(c.mulReal(ca, ch))
	im := negReal(h.real(c.mulReal(sa, sh)))
	return Number{re: re, im: im}, h.ok
}

// Tan fails where the cosine may vanish.
func (c Context) Tan(x Number) (Number, bool) {
	if x.IsExactZero() {
		return Int(0), true
	}
	h := c.chain()
	return h.done(h.quo(h.fn(c.Sin, x), h.fn(c.Cos, x)))
}

func inUnitInterval(r Real) (inside, outside bool) {
	w := uint32(DefaultPrecision)
	lo, hi := r.bounds(w)
	m1 := apd.New(-1, 0)
	switch {
	case lo.Cmp(m1) >= 0 && hi.Cmp(one) <= 0:
		return true, false
	case lo.Cmp(one) > 0 || hi.Cmp(m1) < 0:
		return false, true
	}
	return false, false
}

func (c Context) Asin(x Number) (Number, bool) {
	if x.inf != Finite {
		return Number{}, false
	}
	if x.im.isZero() {
		if x.re.isExactZero() {
			return Int(0), true
		}
		inside, outside := inUnitInterval(x.re)
		if inside {
			r, ok := c.monotone(x.re, asinDec, true)
			return Number{re: r}, ok
		}
		if !outside {
			return Number{}, false
		}
	}
	// −i·ln(iz + √(1 − z²))
	h := c.chain()
	i := I()
	s := h.fn(c.Sqrt, h.sub(Int(1), h.mul(x, x)))
	l := h.fn(c.Ln, h.add(h.mul(i, x), s))
	return h.done(h.mul(c.Neg(i), l))
}

func (c Context) Acos(x Number) (Number, bool) {
	if x.inf != Finite {
		return Number{}, false
	}
	if x.im.isZero() {
		if x.re.isExact() && x.re.ratVal().Cmp(big.NewRat(1, 1)) == 0 {
			return Int(0), true
		}
		inside, outside := inUnitInterval(x.re)
		if inside {
			r, ok := c.monotone(x.re, acosDec, false)
			return Number{re: r}, ok
		}
		if !outside {
			return Number{}, false
		}
	}
	h := c.chain()
	halfPi := h.mul(c.Pi(), Frac(1, 2))
	return h.done(h.sub(halfPi, h.fn(c.Asin, x)))
}

func (c Context) Atan(x Number) (Number, bool) {
	switch x.inf {
	case PlusInfinity, MinusInfinity:
		n, _ := c.Mul(c.Pi(), Frac(1, 2))
		if x.inf == MinusInfinity {
			n = c.Neg(n)
		}
		return n, true
	case ComplexInfinity:
		return Number{}, false
	}
	if x.im.isZero() {
		if x.re.isExactZero() {
			return Int(0), true
		}
		r, ok := c.monotone(x.re, atanDec, true)
		return Number{re: r}, ok
	}
	if x.re.isExactZero() && x.im.isExact() && absReal(x.im).ratVal().Cmp(big.NewRat(1, 1)) == 0 {
		return Number{}, false
	}
	// (i/2)·(ln(1 − iz) − ln(1 + iz))
	h := c.chain()
	iz := h.mul(I(), x)
	l1 := h.fn(c.Ln, h.sub(Int(1), iz))
	l2 := h.fn(c.Ln, h.add(Int(1), iz))
	return h.done(h.mul(Complex(Int(0), Frac(1, 2)), h.sub(l1, l2)))
}

// ============================================================
// Hyperbolic functions
// ============================================================

func (c Context) Sinh(x Number) (Number, bool) {
	if x.inf == PlusInfinity || x.inf == MinusInfinity {
		return x, true
	}
	if x.inf != Finite {
		return Number{}, false
	}
	if x.im.isZero() {
		r, ok := c.sinhReal(x.re)
		return Number{re: r}, ok
	}
	// sinh a·cos b + i·cosh a·sin b
	h := c.chain()
	sh, ch := h.real(c.sinhReal(x.re)), h.real(c.coshReal(x.re))
	sb, cb := h.real(c.sinReal(x.im)), h.real(c.cosReal(x.im))
	re := h.real(c.mulReal(sh, cb))
	im := h.real(c.mulReal(ch, sb))
	return Number{re: re, im: im}, h.ok
}

func (c Context) Cosh(x Number) (Number, bool) {
	if x.inf == PlusInfinity || x.inf == MinusInfinity {
		return PosInf(), true
	}
	if x.inf != Finite {
		return Number{}, false
	}
	if x.im.isZero() {
		r, ok := c.coshReal(x.re)
		return Number{re: r}, ok
	}
	// cosh a·cos b + i·sinh a·sin b
	h := c.chain()
	sh, ch := h.real(c.sinhReal(x.re)), h.real(c.coshReal(x.re))
	sb, cb := h.real(c.sinReal(x.im)), h.real(c.cosReal(x.im))
	re := h.real(c.mulReal(ch, cb))
	im := h.real(c.mulReal(sh, sb))
	return Number{re: re, im: im}, h.ok
}

func (c Context) Tanh(x Number) (Number, bool) {
	switch x.inf {
	case PlusInfinity:
		return Int(1), true
	case MinusInfinity:
		return Int(-1), true
	case ComplexInfinity:
		return Number{}, false
	}
	if x.im.isZero() {
		if x.re.isExactZero() {
			return Int(0), true
		}
		r, ok := c.monotone(x.re, tanhDec, true)
		return Number{re: r}, ok
	}
	h := c.chain()
	return h.done(h.quo(h.fn(c.Sinh, x), h.fn(c.Cosh, x)))
}

func (c Context) Asinh(x Number) (Number, bool) {
	if x.inf == PlusInfinity || x.inf == MinusInfinity {
		return x, true
	}
	if x.inf != Finite {
		return Number{}, false
	}
	if x.im.isZero() {
		if x.re.isExactZero() {
			return Int(0), true
		}
		r, ok := c.monotone(x.re, asinhDec, true)
		return Number{re: r}, ok
	}
	// ln(z + √(z² + 1))
	h := c.chain()
	s := h.fn(c.Sqrt, h.add(h.mul(x, x), Int(1)))
	return h.done(h.fn(c.Ln, h.add(x, s)))
}

func (c Context) Acosh(x Number) (Number, bool) {
	if x.inf == PlusInfinity {
		return x, true
	}
	if x.inf != Finite {
		return Number{}, false
	}
	if x.im.isZero() {
		if x.re.isExact() && x.re.ratVal().Cmp(big.NewRat(1, 1)) == 0 {
			return Int(0), true
		}
		lo, hi := x.re.bounds(c.work())
		switch {
		case lo.Cmp(one) >= 0:
			r, ok := c.monotone(x.re, acoshDec, true)
			return Number{re: r}, ok
		case hi.Cmp(one) >= 0:
			return Number{}, false
		}
	}
	// ln(z + √(z+1)·√(z−1))
	h := c.chain()
	s := h.mul(h.fn(c.Sqrt, h.add(x, Int(1))), h.fn(c.Sqrt, h.sub(x, Int(1))))
	return h.done(h.fn(c.Ln, h.add(x, s)))
}

// Atanh returns ±∞ at ±1.
func (c Context) Atanh(x Number) (Number, bool) {
	if x.inf != Finite {
		return Number{}, false
	}
	if x.im.isZero() {
		if x.re.isExact() {
			switch q := x.re.ratVal(); {
			case q.Sign() == 0:
				return Int(0), true
			case q.Cmp(big.NewRat(1, 1)) == 0:
				return PosInf(), true
			case q.Cmp(big.NewRat(-1, 1)) == 0:
				return NegInf(), true
			}
		}
		lo, hi := x.re.bounds(c.work())
		m1 := apd.New(-1, 0)
		switch {
		case lo.Cmp(m1) > 0 && hi.Cmp(one) < 0:
			r, ok := c.monotone(x.re, atanhDec, true)
			return Number{re: r}, ok
		case lo.Cmp(one) <= 0 && hi.Cmp(m1) >= 0:
			return Number{}, false
		}
	}
	// (ln(1+z) − ln(1−z))/2
	h := c.chain()
	l1 := h.fn(c.Ln, h.add(Int(1), x))
	l2 := h.fn(c.Ln, h.sub(Int(1), x))
	return h.done(h.mul(h.sub(l1, l2), Frac(1, 2)))
}
