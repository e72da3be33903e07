package number

import (
	"sync"

	"github.com/cockroachdb/apd/v2"
)

// maxTerms bounds every series loop.
const maxTerms = 100000

// decCalc evaluates decimal expressions at one precision. The first error
// sticks and turns every later step into a no-op.
type decCalc struct {
	ctx *apd.Context
	err error
}

func newDecCalc(p uint32) *decCalc { return &decCalc{ctx: nearCtx(p)} }

func (d *decCalc) bin(op binop, x, y *apd.Decimal) *apd.Decimal {
	z := new(apd.Decimal)
	if d.err != nil {
		return z
	}
	if _, err := op(d.ctx, z, x, y); err != nil {
		d.err = err
	}
	return z
}

func (d *decCalc) un(op unop, x *apd.Decimal) *apd.Decimal {
	z := new(apd.Decimal)
	if d.err != nil {
		return z
	}
	if _, err := op(d.ctx, z, x); err != nil {
		d.err = err
	}
	return z
}

func (d *decCalc) add(x, y *apd.Decimal) *apd.Decimal { return d.bin(decAdd, x, y) }
func (d *decCalc) sub(x, y *apd.Decimal) *apd.Decimal { return d.bin(decSub, x, y) }
func (d *decCalc) mul(x, y *apd.Decimal) *apd.Decimal { return d.bin(decMul, x, y) }
func (d *decCalc) quo(x, y *apd.Decimal) *apd.Decimal { return d.bin(decQuo, x, y) }

func (d *decCalc) exp(x *apd.Decimal) *apd.Decimal  { return d.un(decExp, x) }
func (d *decCalc) ln(x *apd.Decimal) *apd.Decimal   { return d.un(decLn, x) }
func (d *decCalc) sqrt(x *apd.Decimal) *apd.Decimal { return d.un(decSqrt, x) }

func (d *decCalc) roundInt(x *apd.Decimal) *apd.Decimal {
	return d.un((*apd.Context).RoundToIntegralValue, x)
}

// small reports whether |x| is below the series cut-off.
func (d *decCalc) small(x *apd.Decimal) bool {
	return x.IsZero() || adjusted(x) < -int64(d.ctx.Precision)-2
}

func (d *decCalc) pi() *apd.Decimal {
	v, err := piDecimal(d.ctx.Precision)
	if err != nil && d.err == nil {
		d.err = err
	}
	return v
}

var (
	one  = apd.New(1, 0)
	two  = apd.New(2, 0)
	half = apd.New(5, -1)
)

// ============================================================
// π
// ============================================================

var piCache = struct {
	sync.RWMutex
	byPrec map[uint32]*apd.Decimal
}{byPrec: make(map[uint32]*apd.Decimal)}

// piDecimal returns π to p digits, computed once per precision with
// Machin's formula π = 16·atan(1/5) − 4·atan(1/239).
func piDecimal(p uint32) (*apd.Decimal, error) {
	piCache.RLock()
	v, ok := piCache.byPrec[p]
	piCache.RUnlock()
	if ok {
		return v, nil
	}
	d := newDecCalc(p + 5)
	a := d.atanSeries(d.quo(one, apd.New(5, 0)))
	b := d.atanSeries(d.quo(one, apd.New(239, 0)))
	v = d.sub(d.mul(apd.New(16, 0), a), d.mul(apd.New(4, 0), b))
	if d.err != nil {
		return nil, d.err
	}
	out := new(apd.Decimal)
	if _, err := nearCtx(p).Round(out, v); err != nil {
		return nil, err
	}
	piCache.Lock()
	piCache.byPrec[p] = out
	piCache.Unlock()
	return out, nil
}

// ============================================================
// Series
// ============================================================

// atanSeries sums x − x³/3 + x⁵/5 − … for small |x|.
func (d *decCalc) atanSeries(x *apd.Decimal) *apd.Decimal {
	x2 := d.mul(x, x)
	pow := new(apd.Decimal).Set(x)
	sum := new(apd.Decimal).Set(x)
	for n := int64(1); n < maxTerms && d.err == nil; n++ {
		pow = d.mul(pow, x2)
		term := d.quo(pow, apd.New(2*n+1, 0))
		if n%2 == 1 {
			sum = d.sub(sum, term)
		} else {
			sum = d.add(sum, term)
		}
		if d.small(term) {
			break
		}
	}
	return sum
}

// reduce maps x into [−π, π].
func (d *decCalc) reduce(x *apd.Decimal) *apd.Decimal {
	twoPi := d.mul(two, d.pi())
	if decAbs(x).Cmp(d.pi()) <= 0 {
		return x
	}
	k := d.roundInt(d.quo(x, twoPi))
	return d.sub(x, d.mul(k, twoPi))
}

func sinDec(d *decCalc, x *apd.Decimal) *apd.Decimal {
	r := d.reduce(x)
	r2 := d.mul(r, r)
	term := new(apd.Decimal).Set(r)
	sum := new(apd.Decimal).Set(r)
	for n := int64(1); n < maxTerms && d.err == nil; n++ {
		term = d.quo(d.mul(term, r2), apd.New(-(2*n)*(2*n+1), 0))
		sum = d.add(sum, term)
		if d.small(term) {
			break
		}
	}
	return sum
}

func cosDec(d *decCalc, x *apd.Decimal) *apd.Decimal {
	r := d.reduce(x)
	r2 := d.mul(r, r)
	term := apd.New(1, 0)
	sum := apd.New(1, 0)
	for n := int64(1); n < maxTerms && d.err == nil; n++ {
		term = d.quo(d.mul(term, r2), apd.New(-(2*n-1)*(2*n), 0))
		sum = d.add(sum, term)
		if d.small(term) {
			break
		}
	}
	return sum
}

func atanDec(d *decCalc, x *apd.Decimal) *apd.Decimal {
	if x.IsZero() {
		return new(apd.Decimal)
	}
	ax := decAbs(x)
	invert := ax.Cmp(one) > 0
	if invert {
		ax = d.quo(one, ax)
	}
	// atan(x) = 2·atan(x / (1 + √(1+x²)))
	doublings := int64(0)
	limit := apd.New(2, -1)
	for ax.Cmp(limit) > 0 && d.err == nil {
		ax = d.quo(ax, d.add(one, d.sqrt(d.add(one, d.mul(ax, ax)))))
		doublings++
	}
	r := d.atanSeries(ax)
	for ; doublings > 0; doublings-- {
		r = d.mul(r, two)
	}
	if invert {
		r = d.sub(d.mul(d.pi(), half), r)
	}
	if x.Negative {
		r = decNeg(r)
	}
	return r
}

func asinDec(d *decCalc, x *apd.Decimal) *apd.Decimal {
	if decAbs(x).Cmp(one) == 0 {
		r := d.mul(d.pi(), half)
		if x.Negative {
			r = decNeg(r)
		}
		return r
	}
	return atanDec(d, d.quo(x, d.sqrt(d.sub(one, d.mul(x, x)))))
}

func acosDec(d *decCalc, x *apd.Decimal) *apd.Decimal {
	return d.sub(d.mul(d.pi(), half), asinDec(d, x))
}

func expDec(d *decCalc, x *apd.Decimal) *apd.Decimal  { return d.exp(x) }
func lnDec(d *decCalc, x *apd.Decimal) *apd.Decimal   { return d.ln(x) }
func sqrtDec(d *decCalc, x *apd.Decimal) *apd.Decimal { return d.sqrt(x) }

func sinhDec(d *decCalc, x *apd.Decimal) *apd.Decimal {
	e := d.exp(x)
	return d.mul(d.sub(e, d.quo(one, e)), half)
}

func coshDec(d *decCalc, x *apd.Decimal) *apd.Decimal {
	e := d.exp(x)
	return d.mul(d.add(e, d.quo(one, e)), half)
}

func tanhDec(d *decCalc, x *apd.Decimal) *apd.Decimal {
	// (1 − e^(−2|x|)) / (1 + e^(−2|x|)), signed like x
	ax := decAbs(x)
	e := d.exp(d.mul(two, decNeg(ax)))
	r := d.quo(d.sub(one, e), d.add(one, e))
	if x.Negative {
		r = decNeg(r)
	}
	return r
}

func asinhDec(d *decCalc, x *apd.Decimal) *apd.Decimal {
	ax := decAbs(x)
	r := d.ln(d.add(ax, d.sqrt(d.add(d.mul(ax, ax), one))))
	if x.Negative {
		r = decNeg(r)
	}
	return r
}

func acoshDec(d *decCalc, x *apd.Decimal) *apd.Decimal {
	return d.ln(d.add(x, d.sqrt(d.sub(d.mul(x, x), one))))
}

func atanhDec(d *decCalc, x *apd.Decimal) *apd.Decimal {
	return d.mul(d.ln(d.quo(d.add(one, x), d.sub(one, x))), half)
}
