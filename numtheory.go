package gocalc

import "github.com/njchilds90/gocalc/number"

// ============================================================
// gcd, lcm
// ============================================================

type gcdFn struct{ lcm bool }

func (f gcdFn) id() FunctionID {
	if f.lcm {
		return FnLcm
	}
	return FnGcd
}

func isZeroNum(e Expr) bool {
	n, ok := e.(*Num)
	return ok && n.val.IsExactZero()
}

func isOneNum(e Expr) bool {
	n, ok := e.(*Num)
	return ok && n.val.IsOne()
}

func hasVector(es ...Expr) bool {
	for _, e := range es {
		if _, ok := e.(*Vector); ok {
			return true
		}
	}
	return false
}

func (f gcdFn) Calculate(c *Context, args []Expr, opts Options) (Expr, Status) {
	x, y := c.eval(args[0], opts), c.eval(args[1], opts)
	if hasVector(x, y) {
		return nil, StatusNotApplicable
	}
	nx, okx := x.(*Num)
	ny, oky := y.(*Num)
	if okx && oky {
		kernel := opts.number().Gcd
		if f.lcm {
			kernel = opts.number().Lcm
		}
		if out, ok := kernel(nx.val, ny.val); ok {
			return NumOf(out), StatusRewritten
		}
		return CallOf(f.id(), x, y), StatusUnhandled
	}
	switch {
	case isZeroNum(y) && f.lcm, isZeroNum(x) && f.lcm:
		return N(0), StatusRewritten
	case isZeroNum(y):
		return CallOf(FnAbs, x), StatusRewritten
	case isZeroNum(x):
		return CallOf(FnAbs, y), StatusRewritten
	case x.Equal(y) && c.Represents(x, PropRational):
		return CallOf(FnAbs, x), StatusRewritten
	case isOneNum(x) && c.Represents(y, PropInteger):
		if f.lcm {
			return CallOf(FnAbs, y), StatusRewritten
		}
		return N(1), StatusRewritten
	case isOneNum(y) && c.Represents(x, PropInteger):
		if f.lcm {
			return CallOf(FnAbs, x), StatusRewritten
		}
		return N(1), StatusRewritten
	}
	return CallOf(f.id(), x, y), StatusUnhandled
}

func (f gcdFn) Represents(c *Context, p Property, args []Expr) bool {
	x, y := args[0], args[1]
	if !c.Represents(x, PropRational) || !c.Represents(y, PropRational) {
		return false
	}
	switch p {
	case PropNumber, PropReal, PropRational, PropNonNegative:
		return true
	case PropInteger:
		return c.Represents(x, PropInteger) && c.Represents(y, PropInteger)
	case PropPositive, PropNonZero:
		if f.lcm {
			return c.Represents(x, PropNonZero) && c.Represents(y, PropNonZero)
		}
		return c.Represents(x, PropNonZero) || c.Represents(y, PropNonZero)
	}
	return false
}

// ============================================================
// rem, mod
// ============================================================

// remFn is the truncated remainder rem (sign of the dividend) or, when
// floored, mod (sign of the divisor).
type remFn struct{ floored bool }

func (f remFn) id() FunctionID {
	if f.floored {
		return FnMod
	}
	return FnRem
}

func (f remFn) Calculate(c *Context, args []Expr, opts Options) (Expr, Status) {
	x, y := c.eval(args[0], opts), c.eval(args[1], opts)
	if hasVector(x, y) {
		return nil, StatusNotApplicable
	}
	unhandled := CallOf(f.id(), x, y)
	if isZeroNum(y) {
		c.Error("%s(): division by zero", f.id())
		return unhandled, StatusUnhandled
	}
	nx, okx := x.(*Num)
	ny, oky := y.(*Num)
	if okx && oky {
		kernel := opts.number().Rem
		if f.floored {
			kernel = opts.number().Mod
		}
		if out, ok := kernel(nx.val, ny.val); ok {
			return NumOf(out), StatusRewritten
		}
		return unhandled, StatusUnhandled
	}
	switch {
	case isZeroNum(x) && c.Represents(y, PropNonZero):
		return N(0), StatusRewritten
	case isOneNum(y) && c.Represents(x, PropInteger):
		return N(0), StatusRewritten
	case x.Equal(y) && c.Represents(x, PropNonZero) && c.Represents(x, PropRational):
		return N(0), StatusRewritten
	}
	return unhandled, StatusUnhandled
}

func (f remFn) Represents(c *Context, p Property, args []Expr) bool {
	x, y := args[0], args[1]
	if !c.Represents(x, PropRational) || !c.Represents(y, PropRational) || !c.Represents(y, PropNonZero) {
		return false
	}
	switch p {
	case PropNumber, PropReal, PropRational:
		return true
	case PropInteger:
		return c.Represents(x, PropInteger) && c.Represents(y, PropInteger)
	case PropNonNegative:
		if f.floored {
			return c.Represents(y, PropPositive)
		}
		return c.Represents(x, PropNonNegative)
	case PropNonPositive:
		if f.floored {
			return c.Represents(y, PropNegative)
		}
		return c.Represents(x, PropNonPositive)
	}
	return false
}

// ============================================================
// numerator, denominator
// ============================================================

type fractionPartFn struct{ denominator bool }

func (f fractionPartFn) id() FunctionID {
	if f.denominator {
		return FnDenominator
	}
	return FnNumerator
}

func (f fractionPartFn) Calculate(c *Context, args []Expr, opts Options) (Expr, Status) {
	x := c.eval(args[0], opts)
	if hasVector(x) {
		return nil, StatusNotApplicable
	}
	if n, ok := x.(*Num); ok {
		kernel := number.Context.Numerator
		if f.denominator {
			kernel = number.Context.Denominator
		}
		if out, ok := kernel(opts.number(), n.val); ok {
			return NumOf(out), StatusRewritten
		}
	}
	if c.Represents(x, PropInteger) {
		if f.denominator {
			return N(1), StatusRewritten
		}
		return x, StatusRewritten
	}
	return CallOf(f.id(), x), StatusUnhandled
}

func (f fractionPartFn) Represents(c *Context, p Property, args []Expr) bool {
	x := args[0]
	if !c.Represents(x, PropRational) {
		return false
	}
	switch p {
	case PropNumber, PropReal, PropRational, PropInteger:
		return true
	}
	if f.denominator {
		return p == PropPositive || p == PropNonNegative || p == PropNonZero
	}
	switch p {
	case PropEven, PropOdd:
		return c.Represents(x, PropInteger) && c.Represents(x, p)
	}
	return c.Represents(x, p)
}
