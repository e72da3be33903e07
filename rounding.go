package gocalc

import "github.com/njchilds90/gocalc/number"

// ============================================================
// floor, ceil, round, trunc, frac
// ============================================================

type roundingFn struct{ id FunctionID }

func (f roundingFn) kernel(nc number.Context, x number.Number) (number.Number, bool) {
	switch f.id {
	case FnFloor:
		return nc.Floor(x)
	case FnCeil:
		return nc.Ceil(x)
	case FnRound:
		return nc.Round(x, number.RoundHalfAway)
	case FnTrunc:
		return nc.Trunc(x)
	}
	return nc.Frac(x)
}

func (f roundingFn) Calculate(c *Context, args []Expr, opts Options) (Expr, Status) {
	x := c.eval(args[0], opts)
	if v, ok := x.(*Vector); ok {
		return mapCall(f.id, v), StatusDeferredVector
	}
	if c.Represents(x, PropInteger) {
		if f.id == FnFrac {
			return N(0), StatusRewritten
		}
		return x, StatusRewritten
	}
	// floor(x + n) = floor(x) + n for integer n; likewise ceil
	if a, ok := x.(*Add); ok && (f.id == FnFloor || f.id == FnCeil) {
		var ints, rest []Expr
		for _, t := range a.terms {
			if c.Represents(t, PropInteger) {
				ints = append(ints, t)
			} else {
				rest = append(rest, t)
			}
		}
		if len(ints) > 0 && len(rest) > 0 {
			return AddOf(append([]Expr{CallOf(f.id, AddOf(rest...))}, ints...)...), StatusRewritten
		}
	}
	// an exact integer may be proven from an approximation of the argument
	if n, ok := c.approxInput(x, opts); ok {
		out, ok := f.kernel(opts.number(), n.val)
		if ok && exactFrom(out, x, opts) && opts.accept(out, n.val) {
			return NumOf(out), StatusRewritten
		}
	}
	return CallOf(f.id, x), StatusUnhandled
}

func (f roundingFn) Represents(c *Context, p Property, args []Expr) bool {
	x := args[0]
	if !c.Represents(x, PropReal) {
		return false
	}
	switch p {
	case PropNumber, PropReal:
		return true
	case PropRational:
		// frac(x) differs from x by an integer
		return f.id != FnFrac || c.Represents(x, PropRational)
	case PropInteger:
		return f.id != FnFrac
	case PropNonNegative:
		return c.Represents(x, PropNonNegative)
	case PropNonPositive:
		return c.Represents(x, PropNonPositive)
	case PropPositive:
		return f.id == FnCeil && c.Represents(x, PropPositive)
	case PropNegative:
		return f.id == FnFloor && c.Represents(x, PropNegative)
	}
	return false
}

// ============================================================
// abs
// ============================================================

type absFn struct{}

func (absFn) Calculate(c *Context, args []Expr, opts Options) (Expr, Status) {
	x := c.eval(args[0], opts)
	if v, ok := x.(*Vector); ok {
		return mapCall(FnAbs, v), StatusDeferredVector
	}
	if n, ok := x.(*Num); ok {
		if out, ok := opts.number().Abs(n.val); ok && opts.accept(out, n.val) {
			return NumOf(out), StatusRewritten
		}
		return CallOf(FnAbs, x), StatusUnhandled
	}
	switch {
	case c.Represents(x, PropNonNegative):
		return x, StatusRewritten
	case c.Represents(x, PropNonPositive):
		return negate(x), StatusRewritten
	}
	if y, ok := c.pureImaginary(x); ok {
		return CallOf(FnAbs, y), StatusRewritten
	}
	// |k·y| = |k|·|y|
	if m, ok := x.(*Mul); ok {
		if k, ok := m.factors[0].(*Num); ok && !k.val.IsInfinite() {
			if a, ok := opts.number().Abs(k.val); ok && opts.accept(a, k.val) {
				return MulOf(NumOf(a), CallOf(FnAbs, MulOf(m.factors[1:]...))), StatusRewritten
			}
		}
	}
	if n, ok := c.numeric(x, opts); ok {
		if out, ok := opts.number().Abs(n.val); ok && opts.accept(out, n.val) {
			return NumOf(out), StatusRewritten
		}
	}
	return CallOf(FnAbs, x), StatusUnhandled
}

func (absFn) Represents(c *Context, p Property, args []Expr) bool {
	x := args[0]
	if !c.Represents(x, PropNumber) {
		return false
	}
	switch p {
	case PropNumber, PropReal, PropNonNegative:
		return true
	case PropPositive, PropNonZero:
		return c.Represents(x, PropNonZero)
	case PropRational, PropInteger, PropEven, PropOdd:
		return c.Represents(x, p)
	}
	return false
}

// ============================================================
// signum
// ============================================================

// signumFn takes an optional second argument, the value at zero (0 by
// default).
type signumFn struct{}

func (signumFn) Calculate(c *Context, args []Expr, opts Options) (Expr, Status) {
	x := c.eval(args[0], opts)
	var zero Expr = N(0)
	if len(args) > 1 {
		zero = c.eval(args[1], opts)
	}
	if v, ok := x.(*Vector); ok {
		elems := make([]Expr, len(v.elems))
		for i, el := range v.elems {
			elems[i] = CallOf(FnSignum, el, zero)
		}
		return VectorOf(elems...), StatusDeferredVector
	}
	call := CallOf(FnSignum, x)
	if len(args) > 1 {
		call = CallOf(FnSignum, x, zero)
	}
	if n, ok := x.(*Num); ok && n.val.IsExactZero() {
		return zero, StatusRewritten
	}
	switch {
	case c.Represents(x, PropPositive):
		return N(1), StatusRewritten
	case c.Represents(x, PropNegative):
		return N(-1), StatusRewritten
	}
	if n, ok := c.numeric(x, opts); ok && n.val.IsNonZero() {
		if out, ok := opts.number().Signum(n.val); ok && opts.accept(out, n.val) {
			return NumOf(out), StatusRewritten
		}
	}
	return call, StatusUnhandled
}

func (signumFn) Represents(c *Context, p Property, args []Expr) bool {
	x := args[0]
	var zero Expr = N(0)
	if len(args) > 1 {
		zero = args[1]
	}
	// never positive or negative outright
	switch p {
	case PropPositive, PropNegative:
		return false
	case PropNonZero:
		return c.Represents(x, PropNonZero) && c.Represents(x, PropNumber)
	case PropNumber:
		return c.Represents(x, PropNumber) && c.Represents(zero, PropNumber)
	}
	if !c.Represents(x, PropReal) || !c.Represents(zero, p) {
		return false
	}
	switch p {
	case PropReal, PropRational, PropInteger:
		return true
	case PropNonNegative, PropNonPositive:
		return c.Represents(x, p)
	}
	return false
}
