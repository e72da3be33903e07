package gocalc

import (
	"math/big"

	"github.com/njchilds90/gocalc/number"
)

// ============================================================
// Decomposition into real and imaginary parts
// ============================================================

// reIm splits x into real and imaginary parts. ok is false when x is
// opaque: nothing about it could be split.
func (c *Context) reIm(x Expr) (re, im Expr, ok bool) {
	if c.Represents(x, PropReal) {
		return x, N(0), true
	}
	switch v := x.(type) {
	case *Num:
		if v.val.IsInfinite() {
			return nil, nil, false
		}
		return NumOf(v.val.Real()), NumOf(v.val.Imag()), true
	case *Add:
		rs := make([]Expr, len(v.terms))
		is := make([]Expr, len(v.terms))
		for i, t := range v.terms {
			rs[i], is[i] = c.reImOrWrap(t)
		}
		return AddOf(rs...), AddOf(is...), true
	case *Mul:
		return c.reImMul(v)
	case *Call:
		if v.fn == FnConj && len(v.args) == 1 {
			r, i := c.reImOrWrap(v.args[0])
			return r, Neg(i), true
		}
	}
	return nil, nil, false
}

func (c *Context) reImOrWrap(x Expr) (Expr, Expr) {
	if r, i, ok := c.reIm(x); ok {
		return r, i
	}
	return CallOf(FnRe, x), CallOf(FnIm, x)
}

// reImMul splits (a+bi)·R·W with R real: the parts are R·(a·re W − b·im W)
// and R·(a·im W + b·re W).
func (c *Context) reImMul(m *Mul) (Expr, Expr, bool) {
	coeff := number.Int(1)
	var reals, others []Expr
	for i, f := range m.factors {
		if n, ok := f.(*Num); ok && i == 0 {
			if n.val.IsInfinite() {
				return nil, nil, false
			}
			coeff = n.val
			continue
		}
		if c.Represents(f, PropReal) {
			reals = append(reals, f)
		} else {
			others = append(others, f)
		}
	}
	trivial := coeff.IsOne() && len(reals) == 0
	var wr, wi Expr
	switch len(others) {
	case 0:
		wr, wi = N(1), N(0)
	case 1:
		r, i, ok := c.reIm(others[0])
		if !ok {
			if trivial {
				return nil, nil, false
			}
			r, i = CallOf(FnRe, others[0]), CallOf(FnIm, others[0])
		}
		wr, wi = r, i
	default:
		if trivial {
			return nil, nil, false
		}
		w := MulOf(others...)
		wr, wi = CallOf(FnRe, w), CallOf(FnIm, w)
	}
	a, b := NumOf(coeff.Real()), NumOf(coeff.Imag())
	r := MulOf(reals...)
	re := MulOf(r, AddOf(MulOf(a, wr), Neg(MulOf(b, wi))))
	im := MulOf(r, AddOf(MulOf(a, wi), MulOf(b, wr)))
	return re, im, true
}

// reImFn implements re (imag false) and im (imag true).
type reImFn struct{ imag bool }

func (f reImFn) id() FunctionID {
	if f.imag {
		return FnIm
	}
	return FnRe
}

func (f reImFn) Calculate(c *Context, args []Expr, opts Options) (Expr, Status) {
	x := c.eval(args[0], opts)
	if v, ok := x.(*Vector); ok {
		return mapCall(f.id(), v), StatusDeferredVector
	}
	re, im, ok := c.reIm(x)
	if !ok {
		return CallOf(f.id(), x), StatusUnhandled
	}
	if f.imag {
		return im, StatusRewritten
	}
	return re, StatusRewritten
}

func (f reImFn) Represents(c *Context, p Property, args []Expr) bool {
	x := args[0]
	switch p {
	case PropNumber, PropReal:
		return c.Represents(x, PropNumber)
	}
	if !c.Represents(x, PropReal) {
		return false
	}
	if !f.imag {
		return c.Represents(x, p)
	}
	// im of a real number is 0
	switch p {
	case PropRational, PropInteger, PropEven, PropNonNegative, PropNonPositive:
		return true
	}
	return false
}

type conjFn struct{}

func (conjFn) Calculate(c *Context, args []Expr, opts Options) (Expr, Status) {
	x := c.eval(args[0], opts)
	if v, ok := x.(*Vector); ok {
		return mapCall(FnConj, v), StatusDeferredVector
	}
	if n, ok := x.(*Num); ok {
		return NumOf(opts.number().Conj(n.val)), StatusRewritten
	}
	if call, ok := x.(*Call); ok && call.fn == FnConj && len(call.args) == 1 {
		return call.args[0], StatusRewritten
	}
	re, im, ok := c.reIm(x)
	if !ok {
		return CallOf(FnConj, x), StatusUnhandled
	}
	return AddOf(re, Neg(MulOf(I(), im))), StatusRewritten
}

func (conjFn) Represents(c *Context, p Property, args []Expr) bool {
	x := args[0]
	if p == PropNumber || p == PropNonZero {
		return c.Represents(x, p)
	}
	return c.Represents(x, PropReal) && c.Represents(x, p)
}

// ============================================================
// arg and atan2
// ============================================================

// exprSign returns −1, 0 or 1 when the sign of e is proven.
func (c *Context) exprSign(e Expr) (int, bool) {
	if n, ok := e.(*Num); ok && n.val.IsExactZero() {
		return 0, true
	}
	switch {
	case c.Represents(e, PropPositive):
		return 1, true
	case c.Represents(e, PropNegative):
		return -1, true
	}
	return 0, false
}

// numberSign returns the sign of a real number whose interval excludes
// zero, or 0 for an exact zero.
func numberSign(n number.Number) (int, bool) {
	switch {
	case n.IsExactZero():
		return 0, true
	case n.IsPositive():
		return 1, true
	case n.IsNegative():
		return -1, true
	}
	return 0, false
}

// quadrant returns the angle of the point (x, y) from the signs sx, sy of
// its coordinates. The origin has no angle.
func quadrant(sx, sy int, x, y Expr, opts Options) (Expr, bool) {
	switch {
	case sx == 0 && sy == 0:
		return nil, false
	case sy == 0 && sx > 0:
		return N(0), true
	case sy == 0:
		return angleFromPi(big.NewRat(1, 1), opts), true
	case sx == 0 && sy > 0:
		return angleFromPi(big.NewRat(1, 2), opts), true
	case sx == 0:
		return angleFromPi(big.NewRat(-1, 2), opts), true
	}
	t := CallOf(FnAtan, over(y, x))
	switch {
	case sx > 0:
		return t, true
	case sy > 0:
		return AddOf(t, angleFromPi(big.NewRat(1, 1), opts)), true
	}
	return AddOf(t, angleFromPi(big.NewRat(-1, 1), opts)), true
}

type argState uint8

const (
	probeSymbolic argState = iota
	probeEvaluated
)

type argFn struct{}

func (argFn) Calculate(c *Context, args []Expr, opts Options) (Expr, Status) {
	x := c.eval(args[0], opts)
	if v, ok := x.(*Vector); ok {
		return mapCall(FnArg, v), StatusDeferredVector
	}
	unhandled := CallOf(FnArg, x)
	re, im, decomposed := c.reIm(x)

	state := probeSymbolic
	for {
		switch state {
		case probeSymbolic:
			if decomposed {
				sr, okr := c.exprSign(re)
				si, oki := c.exprSign(im)
				if okr && oki {
					if out, ok := quadrant(sr, si, re, im, opts); ok {
						return out, StatusRewritten
					}
					c.Warn("arg(0) is undefined")
					return unhandled, StatusUnhandled
				}
			}
			state = probeEvaluated

		case probeEvaluated:
			n, ok := c.approxInput(x, opts)
			if !ok || n.val.IsInfinite() {
				return unhandled, StatusUnhandled
			}
			sr, okr := numberSign(n.val.Real())
			si, oki := numberSign(n.val.Imag())
			if okr && oki {
				// signs from the approximation, values from the exact parts
				axis := sr == 0 || si == 0
				if decomposed || axis || exactFrom(n.val, x, opts) {
					if !decomposed {
						re, im = NumOf(n.val.Real()), NumOf(n.val.Imag())
					}
					if out, ok := quadrant(sr, si, re, im, opts); ok {
						return out, StatusRewritten
					}
				}
			}
			nc := opts.number()
			out, ok := nc.Arg(n.val)
			if ok && exactFrom(out, x, opts) && opts.accept(out, n.val) {
				if out, ok = numberToUnit(nc, out, opts.AngleUnit); ok {
					return NumOf(out), StatusRewritten
				}
			}
			return unhandled, StatusUnhandled
		}
	}
}

func (argFn) Represents(c *Context, p Property, args []Expr) bool {
	x := args[0]
	if !c.Represents(x, PropNonZero) || !c.Represents(x, PropNumber) {
		return false
	}
	switch p {
	case PropNumber, PropReal:
		return true
	}
	if c.Represents(x, PropPositive) {
		switch p {
		case PropRational, PropInteger, PropEven, PropNonNegative, PropNonPositive:
			return true
		}
	}
	if c.Represents(x, PropNegative) {
		switch p {
		case PropPositive, PropNonNegative, PropNonZero:
			return true
		}
	}
	return false
}

type atan2Fn struct{}

func (atan2Fn) Calculate(c *Context, args []Expr, opts Options) (Expr, Status) {
	y := c.eval(args[0], opts)
	x := c.eval(args[1], opts)
	unhandled := CallOf(FnAtan2, y, x)
	sy, oky := c.exprSign(y)
	sx, okx := c.exprSign(x)
	if !oky || !okx {
		ny, ok1 := c.approxInput(y, opts)
		nx, ok2 := c.approxInput(x, opts)
		if !ok1 || !ok2 {
			return unhandled, StatusUnhandled
		}
		sy, oky = numberSign(ny.val)
		sx, okx = numberSign(nx.val)
		if !oky || !okx {
			nc := opts.number()
			out, ok := nc.Atan2(ny.val, nx.val)
			if ok && exactFrom(out, AddOf(y, x), opts) && opts.accept(out, ny.val, nx.val) {
				if out, ok = numberToUnit(nc, out, opts.AngleUnit); ok {
					return NumOf(out), StatusRewritten
				}
			}
			return unhandled, StatusUnhandled
		}
	}
	if out, ok := quadrant(sx, sy, x, y, opts); ok {
		return out, StatusRewritten
	}
	c.Warn("atan2(0, 0) is undefined")
	return unhandled, StatusUnhandled
}

func (atan2Fn) Represents(c *Context, p Property, args []Expr) bool {
	y, x := args[0], args[1]
	if !c.Represents(y, PropReal) || !c.Represents(x, PropReal) {
		return false
	}
	if !c.Represents(y, PropNonZero) && !c.Represents(x, PropNonZero) {
		return false
	}
	switch p {
	case PropNumber, PropReal:
		return true
	case PropPositive, PropNonNegative, PropNonZero:
		return c.Represents(y, PropPositive)
	case PropNegative, PropNonPositive:
		return c.Represents(y, PropNegative)
	}
	return false
}
