package number

import (
	"math/big"

	"github.com/cockroachdb/apd/v2"
)

// Real is an exact rational or a closed decimal interval [lo, hi] that
// encloses the true value. The zero value is exact zero.
type Real struct {
	rat    *big.Rat
	lo, hi *apd.Decimal
}

func exactReal(r *big.Rat) Real { return Real{rat: r} }

func intervalReal(lo, hi *apd.Decimal) Real { return Real{lo: lo, hi: hi} }

func (r Real) isExact() bool { return r.lo == nil }

func (r Real) ratVal() *big.Rat {
	if r.rat == nil {
		return new(big.Rat)
	}
	return r.rat
}

func (r Real) isExactZero() bool { return r.isExact() && r.ratVal().Sign() == 0 }

func (r Real) isZero() bool {
	if r.isExact() {
		return r.ratVal().Sign() == 0
	}
	return r.lo.IsZero() && r.hi.IsZero()
}

// sign reports the sign of r when it is certain.
func (r Real) sign() (int, bool) {
	if r.isExact() {
		return r.ratVal().Sign(), true
	}
	switch {
	case r.lo.Sign() > 0:
		return 1, true
	case r.hi.Sign() < 0:
		return -1, true
	case r.lo.IsZero() && r.hi.IsZero():
		return 0, true
	}
	return 0, false
}

func (r Real) nonNegative() bool {
	if r.isExact() {
		return r.ratVal().Sign() >= 0
	}
	return r.lo.Sign() >= 0
}

func (r Real) nonPositive() bool {
	if r.isExact() {
		return r.ratVal().Sign() <= 0
	}
	return r.hi.Sign() <= 0
}

func (r Real) equal(s Real) bool {
	if r.isExact() != s.isExact() {
		return false
	}
	if r.isExact() {
		return r.ratVal().Cmp(s.ratVal()) == 0
	}
	return r.lo.Cmp(s.lo) == 0 && r.hi.Cmp(s.hi) == 0
}

func (r Real) float64() float64 {
	if r.isExact() {
		f, _ := r.ratVal().Float64()
		return f
	}
	mid := new(apd.Decimal)
	ctx := nearCtx(decimalDigits(r.hi) + 2)
	_, _ = ctx.Add(mid, r.lo, r.hi)
	_, _ = ctx.Quo(mid, mid, apd.New(2, 0))
	f, _ := mid.Float64()
	return f
}

// bounds returns the enclosing interval of r, rounding exact values
// outward at precision p.
func (r Real) bounds(p uint32) (lo, hi *apd.Decimal) {
	if !r.isExact() {
		return r.lo, r.hi
	}
	return ratBounds(r.ratVal(), p)
}

func ratBounds(q *big.Rat, p uint32) (lo, hi *apd.Decimal) {
	num := apd.NewWithBigInt(q.Num(), 0)
	if q.IsInt() {
		return num, num
	}
	den := apd.NewWithBigInt(q.Denom(), 0)
	lo, hi = new(apd.Decimal), new(apd.Decimal)
	_, _ = floorCtx(p).Quo(lo, num, den)
	_, _ = ceilCtx(p).Quo(hi, num, den)
	return lo, hi
}

// ============================================================
// Decimal helpers
// ============================================================

type binop func(ctx *apd.Context, d, x, y *apd.Decimal) (apd.Condition, error)

type unop func(ctx *apd.Context, d, x *apd.Decimal) (apd.Condition, error)

var (
	decAdd binop = (*apd.Context).Add
	decSub binop = (*apd.Context).Sub
	decMul binop = (*apd.Context).Mul
	decQuo binop = (*apd.Context).Quo

	decExp  unop = (*apd.Context).Exp
	decLn   unop = (*apd.Context).Ln
	decSqrt unop = (*apd.Context).Sqrt
)

func floorCtx(p uint32) *apd.Context {
	ctx := apd.BaseContext.WithPrecision(p)
	ctx.Rounding = apd.RoundFloor
	return ctx
}

func ceilCtx(p uint32) *apd.Context {
	ctx := apd.BaseContext.WithPrecision(p)
	ctx.Rounding = apd.RoundCeiling
	return ctx
}

func nearCtx(p uint32) *apd.Context {
	ctx := apd.BaseContext.WithPrecision(p)
	ctx.Rounding = apd.RoundHalfEven
	return ctx
}

func apply(op binop, ctx *apd.Context, x, y *apd.Decimal) (*apd.Decimal, bool) {
	d := new(apd.Decimal)
	if _, err := op(ctx, d, x, y); err != nil {
		return nil, false
	}
	return d, d.Form == apd.Finite
}

func decNeg(x *apd.Decimal) *apd.Decimal {
	d := new(apd.Decimal).Set(x)
	if !d.IsZero() {
		d.Negative = !d.Negative
	}
	return d
}

func decAbs(x *apd.Decimal) *apd.Decimal {
	d := new(apd.Decimal).Set(x)
	d.Negative = false
	return d
}

// adjusted is the exponent of the most significant digit of d.
func adjusted(d *apd.Decimal) int64 {
	return int64(d.Exponent) + d.NumDigits() - 1
}

func decimalDigits(d *apd.Decimal) uint32 {
	n := d.NumDigits()
	if n < 1 {
		return 1
	}
	return uint32(n)
}

func minDec(a, b *apd.Decimal) *apd.Decimal {
	if a.Cmp(b) <= 0 {
		return a
	}
	return b
}

func maxDec(a, b *apd.Decimal) *apd.Decimal {
	if a.Cmp(b) >= 0 {
		return a
	}
	return b
}

// ============================================================
// Interval arithmetic
// ============================================================

func negReal(x Real) Real {
	if x.isExact() {
		return exactReal(new(big.Rat).Neg(x.ratVal()))
	}
	return intervalReal(decNeg(x.hi), decNeg(x.lo))
}

func absReal(x Real) Real {
	if x.isExact() {
		return exactReal(new(big.Rat).Abs(x.ratVal()))
	}
	switch {
	case x.lo.Sign() >= 0:
		return x
	case x.hi.Sign() <= 0:
		return negReal(x)
	}
	return intervalReal(new(apd.Decimal), maxDec(decAbs(x.lo), x.hi))
}

func (c Context) addReal(x, y Real) (Real, bool) {
	if x.isExact() && y.isExact() {
		return exactReal(new(big.Rat).Add(x.ratVal(), y.ratVal())), true
	}
	if x.isExactZero() {
		return y, true
	}
	if y.isExactZero() {
		return x, true
	}
	w := c.work()
	xl, xh := x.bounds(w)
	yl, yh := y.bounds(w)
	lo, ok := apply(decAdd, floorCtx(w), xl, yl)
	if !ok {
		return Real{}, false
	}
	hi, ok := apply(decAdd, ceilCtx(w), xh, yh)
	if !ok {
		return Real{}, false
	}
	return intervalReal(lo, hi), true
}

func (c Context) subReal(x, y Real) (Real, bool) { return c.addReal(x, negReal(y)) }

func (c Context) mulReal(x, y Real) (Real, bool) {
	if x.isExact() && y.isExact() {
		return exactReal(new(big.Rat).Mul(x.ratVal(), y.ratVal())), true
	}
	if x.isExactZero() || y.isExactZero() {
		return Real{}, true
	}
	w := c.work()
	xl, xh := x.bounds(w)
	yl, yh := y.bounds(w)
	return c.corners(decMul, xl, xh, yl, yh)
}

// quoReal fails when the divisor may be zero.
func (c Context) quoReal(x, y Real) (Real, bool) {
	if s, ok := y.sign(); !ok || s == 0 {
		return Real{}, false
	}
	if x.isExact() && y.isExact() {
		return exactReal(new(big.Rat).Quo(x.ratVal(), y.ratVal())), true
	}
	if x.isExactZero() {
		return Real{}, true
	}
	w := c.work()
	xl, xh := x.bounds(w)
	yl, yh := y.bounds(w)
	return c.corners(decQuo, xl, xh, yl, yh)
}

// corners applies op to every pairing of bounds and keeps the extremes,
// which encloses the result for multiplication and for division by an
// interval that excludes zero.
func (c Context) corners(op binop, xl, xh, yl, yh *apd.Decimal) (Real, bool) {
	w := c.work()
	fl, cl := floorCtx(w), ceilCtx(w)
	var lo, hi *apd.Decimal
	for _, a := range [2]*apd.Decimal{xl, xh} {
		for _, b := range [2]*apd.Decimal{yl, yh} {
			l, ok := apply(op, fl, a, b)
			if !ok {
				return Real{}, false
			}
			h, ok := apply(op, cl, a, b)
			if !ok {
				return Real{}, false
			}
			if lo == nil || l.Cmp(lo) < 0 {
				lo = l
			}
			if hi == nil || h.Cmp(hi) > 0 {
				hi = h
			}
		}
	}
	return intervalReal(lo, hi), true
}

// cmpReal compares x and y when the order is certain.
func (c Context) cmpReal(x, y Real) (int, bool) {
	d, ok := c.subReal(x, y)
	if !ok {
		return 0, false
	}
	return d.sign()
}

// ============================================================
// Exact roots
// ============================================================

// intRoot returns the floor of the n-th root of x >= 0 and whether it is
// exact.
func intRoot(x *big.Int, n int64) (*big.Int, bool) {
	if x.Sign() == 0 || n == 1 {
		return new(big.Int).Set(x), true
	}
	nb := big.NewInt(n)
	n1 := big.NewInt(n - 1)
	y := new(big.Int).Lsh(big.NewInt(1), uint(int64(x.BitLen())/n+1))
	for {
		p := new(big.Int).Exp(y, n1, nil)
		z := new(big.Int).Quo(x, p)
		z.Add(z, new(big.Int).Mul(n1, y))
		z.Quo(z, nb)
		if z.Cmp(y) >= 0 {
			break
		}
		y = z
	}
	return y, new(big.Int).Exp(y, nb, nil).Cmp(x) == 0
}

// ratRoot returns the exact n-th root of q >= 0 if there is one.
func ratRoot(q *big.Rat, n int64) (*big.Rat, bool) {
	if q.Sign() < 0 || n < 1 {
		return nil, false
	}
	num, ok := intRoot(q.Num(), n)
	if !ok {
		return nil, false
	}
	den, ok := intRoot(q.Denom(), n)
	if !ok {
		return nil, false
	}
	return new(big.Rat).SetFrac(num, den), true
}
