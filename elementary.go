package gocalc

import "github.com/njchilds90/gocalc/number"

// ============================================================
// exp, ln, sqrt
// ============================================================

type expFn struct{}

func (expFn) Calculate(c *Context, args []Expr, opts Options) (Expr, Status) {
	x := c.eval(args[0], opts)
	if v, ok := x.(*Vector); ok {
		return mapCall(FnExp, v), StatusDeferredVector
	}
	if call, ok := x.(*Call); ok && call.fn == FnLn && len(call.args) == 1 {
		return call.args[0], StatusRewritten
	}
	// exp(iqπ) = cos(qπ) + i·sin(qπ)
	if y, ok := c.pureImaginary(x); ok {
		if q, ok := piMultiple(y); ok {
			s, sok := sinPi(q)
			k, kok := sinPi(q.Add(q, ratHalf))
			if sok && kok {
				return AddOf(k, MulOf(I(), s)), StatusRewritten
			}
		}
	}
	if n, ok := x.(*Num); ok && n.val.IsOne() && opts.Approximation != Approximate {
		return E(), StatusRewritten
	}
	if n, ok := c.numeric(x, opts); ok {
		if out, ok := opts.number().Exp(n.val); ok && opts.accept(out, n.val) {
			return NumOf(out), StatusRewritten
		}
	}
	return CallOf(FnExp, x), StatusUnhandled
}

func (expFn) Represents(c *Context, p Property, args []Expr) bool {
	x := args[0]
	switch p {
	case PropNumber, PropNonZero:
		return c.Represents(x, PropNumber)
	case PropReal, PropPositive, PropNonNegative:
		return c.Represents(x, PropReal)
	}
	return false
}

type lnFn struct{}

func (lnFn) Calculate(c *Context, args []Expr, opts Options) (Expr, Status) {
	x := c.eval(args[0], opts)
	if v, ok := x.(*Vector); ok {
		return mapCall(FnLn, v), StatusDeferredVector
	}
	switch v := x.(type) {
	case *Sym:
		if v.isConst("e") {
			return N(1), StatusRewritten
		}
	case *Call:
		if v.fn == FnExp && len(v.args) == 1 && c.exactReal(v.args[0]) {
			return v.args[0], StatusRewritten
		}
	case *Pow:
		if b, ok := v.base.(*Sym); ok && b.isConst("e") && c.exactReal(v.exp) {
			return v.exp, StatusRewritten
		}
	case *Num:
		if v.val.IsOne() {
			return N(0), StatusRewritten
		}
		// ln(−x) = ln(x) + iπ keeps the real part exact
		if q, ok := v.val.Rat(); ok && q.Sign() < 0 && opts.AllowComplex && opts.Approximation != Approximate {
			return AddOf(CallOf(FnLn, RatOf(q.Neg(q))), MulOf(I(), Pi())), StatusRewritten
		}
	}
	if n, ok := c.numeric(x, opts); ok {
		if out, ok := opts.number().Ln(n.val); ok && opts.accept(out, n.val) {
			return NumOf(out), StatusRewritten
		}
	}
	return CallOf(FnLn, x), StatusUnhandled
}

func (lnFn) Represents(c *Context, p Property, args []Expr) bool {
	x := args[0]
	switch p {
	case PropNumber:
		return c.Represents(x, PropNumber) && c.Represents(x, PropNonZero)
	case PropReal:
		return c.Represents(x, PropPositive)
	}
	return false
}

// sqrtFn rewrites sqrt(x) as x^(1/2); the power rules do the rest.
type sqrtFn struct{}

func (sqrtFn) Calculate(c *Context, args []Expr, opts Options) (Expr, Status) {
	return Sqrt(args[0]), StatusRewritten
}

func (sqrtFn) Represents(c *Context, p Property, args []Expr) bool {
	return c.powHas(args[0], F(1, 2), p)
}

// approxInput evaluates x numerically regardless of mode. Results derived
// from it must still pass exactFrom under Exact.
func (c *Context) approxInput(x Expr, opts Options) (*Num, bool) {
	if n, ok := x.(*Num); ok {
		return n, true
	}
	n, ok := c.eval(x, opts.WithApproximation(Approximate)).(*Num)
	return n, ok
}

// exactFrom reports whether out may stand for the expression x under
// opts: an approximate out needs an approximate x in Exact mode.
func exactFrom(out number.Number, x Expr, opts Options) bool {
	return opts.Approximation != Exact || !out.IsApproximate() || x.IsApproximate()
}
