package number

import "math/big"

// maxExactPower bounds exponents raised by repeated multiplication.
const maxExactPower = 1 << 16

// chain threads ok through a sequence of operations; once a step fails the
// rest return zero values.
type chain struct {
	c  Context
	ok bool
}

func (c Context) chain() *chain { return &chain{c: c, ok: true} }

func (h *chain) step(n Number, ok bool) Number {
	if !ok {
		h.ok = false
	}
	return n
}

func (h *chain) add(x, y Number) Number {
	if !h.ok {
		return Number{}
	}
	return h.step(h.c.Add(x, y))
}

func (h *chain) sub(x, y Number) Number {
	if !h.ok {
		return Number{}
	}
	return h.step(h.c.Sub(x, y))
}

func (h *chain) mul(x, y Number) Number {
	if !h.ok {
		return Number{}
	}
	return h.step(h.c.Mul(x, y))
}

func (h *chain) quo(x, y Number) Number {
	if !h.ok {
		return Number{}
	}
	return h.step(h.c.Quo(x, y))
}

func (h *chain) fn(f func(Number) (Number, bool), x Number) Number {
	if !h.ok {
		return Number{}
	}
	return h.step(f(x))
}

func (h *chain) real(r Real, ok bool) Real {
	if !ok {
		h.ok = false
	}
	return r
}

func (h *chain) done(n Number) (Number, bool) {
	if !h.ok || n.inf != Finite {
		return Number{}, false
	}
	return n, true
}

// ============================================================
// Field operations
// ============================================================

func (c Context) Neg(x Number) Number {
	switch x.inf {
	case PlusInfinity:
		return NegInf()
	case MinusInfinity:
		return PosInf()
	case ComplexInfinity:
		return x
	}
	return Number{re: negReal(x.re), im: negReal(x.im)}
}

func (c Context) Conj(x Number) Number {
	if x.inf != Finite {
		return x
	}
	return Number{re: x.re, im: negReal(x.im)}
}

func (c Context) Add(x, y Number) (Number, bool) {
	if x.inf != Finite || y.inf != Finite {
		switch {
		case x.inf == Finite:
			return y, true
		case y.inf == Finite:
			return x, true
		case x.inf == y.inf && x.inf != ComplexInfinity:
			return x, true
		}
		return Number{}, false
	}
	re, ok := c.addReal(x.re, y.re)
	if !ok {
		return Number{}, false
	}
	im, ok := c.addReal(x.im, y.im)
	if !ok {
		return Number{}, false
	}
	return Number{re: re, im: im}, true
}

func (c Context) Sub(x, y Number) (Number, bool) { return c.Add(x, c.Neg(y)) }

// infSign is the sign an infinite product takes from n, when it has one.
func infSign(n Number) (int, bool) {
	switch n.inf {
	case PlusInfinity:
		return 1, true
	case MinusInfinity:
		return -1, true
	case ComplexInfinity:
		return 0, false
	}
	if !n.IsReal() {
		return 0, false
	}
	s, ok := n.re.sign()
	return s, ok && s != 0
}

func (c Context) mulInfinite(x, y Number) (Number, bool) {
	if !x.IsNonZero() || !y.IsNonZero() {
		return Number{}, false
	}
	sx, okx := infSign(x)
	sy, oky := infSign(y)
	switch {
	case !okx || !oky:
		return ComplexInf(), true
	case sx*sy > 0:
		return PosInf(), true
	}
	return NegInf(), true
}

func (c Context) Mul(x, y Number) (Number, bool) {
	if x.inf != Finite || y.inf != Finite {
		return c.mulInfinite(x, y)
	}
	if x.im.isExactZero() && y.im.isExactZero() {
		re, ok := c.mulReal(x.re, y.re)
		return Number{re: re}, ok
	}
	h := c.chain()
	ac := h.real(c.mulReal(x.re, y.re))
	bd := h.real(c.mulReal(x.im, y.im))
	ad := h.real(c.mulReal(x.re, y.im))
	bc := h.real(c.mulReal(x.im, y.re))
	re := h.real(c.subReal(ac, bd))
	im := h.real(c.addReal(ad, bc))
	return Number{re: re, im: im}, h.ok
}

func (c Context) Quo(x, y Number) (Number, bool) {
	switch {
	case y.inf != Finite:
		if x.inf != Finite {
			return Number{}, false
		}
		return Number{}, true
	case y.IsExactZero():
		if x.IsNonZero() {
			return ComplexInf(), true
		}
		return Number{}, false
	case x.inf != Finite:
		return c.mulInfinite(x, y)
	}
	if y.im.isExactZero() {
		h := c.chain()
		re := h.real(c.quoReal(x.re, y.re))
		im := h.real(c.quoReal(x.im, y.re))
		return Number{re: re, im: im}, h.ok
	}
	// (a+bi)/(c+di) = ((ac+bd) + (bc−ad)i) / (c²+d²)
	h := c.chain()
	den := h.real(c.addReal(h.real(c.mulReal(y.re, y.re)), h.real(c.mulReal(y.im, y.im))))
	ac := h.real(c.mulReal(x.re, y.re))
	bd := h.real(c.mulReal(x.im, y.im))
	bc := h.real(c.mulReal(x.im, y.re))
	ad := h.real(c.mulReal(x.re, y.im))
	re := h.real(c.quoReal(h.real(c.addReal(ac, bd)), den))
	im := h.real(c.quoReal(h.real(c.subReal(bc, ad)), den))
	return Number{re: re, im: im}, h.ok
}

// Cmp compares two real numbers when the order is certain.
func (c Context) Cmp(x, y Number) (int, bool) {
	if !x.IsReal() || !y.IsReal() {
		return 0, false
	}
	if x.inf != Finite || y.inf != Finite {
		rank := func(n Number) int {
			switch n.inf {
			case PlusInfinity:
				return 1
			case MinusInfinity:
				return -1
			}
			return 0
		}
		rx, ry := rank(x), rank(y)
		switch {
		case rx == ry:
			return 0, false
		case rx < ry:
			return -1, true
		}
		return 1, true
	}
	return c.cmpReal(x.re, y.re)
}

// ============================================================
// Magnitude and powers
// ============================================================

func (c Context) Abs(x Number) (Number, bool) {
	if x.inf != Finite {
		return PosInf(), true
	}
	if x.im.isZero() {
		return Number{re: absReal(x.re)}, true
	}
	if x.re.isZero() {
		return Number{re: absReal(x.im)}, true
	}
	h := c.chain()
	sq := h.real(c.addReal(h.real(c.mulReal(x.re, x.re)), h.real(c.mulReal(x.im, x.im))))
	r := h.real(c.sqrtReal(sq))
	return Number{re: r}, h.ok
}

// Sqrt returns the principal square root.
func (c Context) Sqrt(x Number) (Number, bool) {
	switch x.inf {
	case PlusInfinity:
		return x, true
	case MinusInfinity:
		return ComplexInf(), true
	case ComplexInfinity:
		return Number{}, false
	}
	if x.im.isZero() {
		s, ok := x.re.sign()
		if !ok {
			return Number{}, false
		}
		if s >= 0 {
			r, ok := c.sqrtReal(x.re)
			return Number{re: r}, ok
		}
		r, ok := c.sqrtReal(negReal(x.re))
		return Number{im: r}, ok
	}
	// √z = √((|z|+a)/2) ± i·√((|z|−a)/2), signed like b
	sb, ok := x.im.sign()
	if !ok {
		return Number{}, false
	}
	h := c.chain()
	m := h.fn(c.Abs, x)
	halfR := exactReal(big.NewRat(1, 2))
	re := h.real(c.sqrtReal(h.real(c.mulReal(h.real(c.addReal(m.re, x.re)), halfR))))
	im := h.real(c.sqrtReal(h.real(c.mulReal(h.real(c.subReal(m.re, x.re)), halfR))))
	if sb < 0 {
		im = negReal(im)
	}
	return Number{re: re, im: im}, h.ok
}

// Raise returns the principal value of x^y. Exact inputs give exact
// results whenever the power is rational.
func (c Context) Raise(x, y Number) (Number, bool) {
	if y.IsExactZero() {
		if x.inf != Finite {
			return Number{}, false
		}
		return Int(1), true
	}
	if x.inf != Finite || y.inf != Finite {
		return c.raiseInfinite(x, y)
	}
	if q, ok := y.Rat(); ok {
		if q.IsInt() && q.Num().IsInt64() {
			if n := q.Num().Int64(); n <= maxExactPower && n >= -maxExactPower {
				return c.raiseInt(x, n)
			}
		}
		if xr, ok := x.Rat(); ok && xr.Sign() >= 0 && q.Denom().IsInt64() && q.Num().IsInt64() {
			if d := q.Denom().Int64(); d <= maxExactPower {
				if root, ok := ratRoot(xr, d); ok {
					return c.raiseInt(FromRat(root), q.Num().Int64())
				}
			}
		}
	}
	if x.IsExactZero() {
		switch {
		case y.IsPositive():
			return Int(0), true
		case y.IsNegative():
			return ComplexInf(), true
		}
		return Number{}, false
	}
	h := c.chain()
	l := h.fn(c.Ln, x)
	return h.done(h.fn(c.Exp, h.mul(y, l)))
}

func (c Context) raiseInt(x Number, n int64) (Number, bool) {
	neg := n < 0
	if neg {
		n = -n
	}
	result := Int(1)
	base := x
	for n > 0 {
		var ok bool
		if n&1 == 1 {
			if result, ok = c.Mul(result, base); !ok {
				return Number{}, false
			}
		}
		n >>= 1
		if n > 0 {
			if base, ok = c.Mul(base, base); !ok {
				return Number{}, false
			}
		}
	}
	if neg {
		return c.Quo(Int(1), result)
	}
	return result, true
}

func (c Context) raiseInfinite(x, y Number) (Number, bool) {
	if y.inf != Finite || !y.IsReal() {
		return Number{}, false
	}
	switch {
	case x.inf == PlusInfinity && y.IsPositive():
		return PosInf(), true
	case x.inf != Finite && y.IsNegative():
		return Int(0), true
	case x.inf != Finite && y.IsPositive():
		if q, ok := y.Rat(); ok && q.IsInt() && x.inf == MinusInfinity {
			if q.Num().Bit(0) == 0 {
				return PosInf(), true
			}
			return NegInf(), true
		}
		return ComplexInf(), true
	}
	return Number{}, false
}
