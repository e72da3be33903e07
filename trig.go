package gocalc

import (
	"math/big"

	"github.com/njchilds90/gocalc/number"
)

// ============================================================
// Circular and hyperbolic functions
// ============================================================

type parity uint8

const (
	parityNone parity = iota
	parityOdd
	parityEven
	parityReflect // f(−x) = π − f(x)
)

// circular describes one trigonometric or hyperbolic function. All twelve
// share one evaluation procedure and differ only in these tables.
type circular struct {
	id       FunctionID
	parity   parity
	angleIn  bool // the argument is an angle
	angleOut bool // the result is an angle
	inverse  FunctionID
	compose  map[FunctionID]func(y Expr) Expr
	swap     FunctionID // f(iy) in terms of swap(y)
	swapI    bool       // ... multiplied by i
	special  func(c *Context, r Expr, opts Options) (Expr, bool)
	kernel   func(number.Context, number.Number) (number.Number, bool)

	total       bool // a number for every number argument
	realTotal   bool // real for every real argument
	signFollows bool // has the sign of its real argument
}

func oneMinusSquare(y Expr) Expr { return Sqrt(AddOf(N(1), Neg(PowOf(y, N(2))))) }
func onePlusSquare(y Expr) Expr  { return Sqrt(AddOf(N(1), PowOf(y, N(2)))) }
func over(x, y Expr) Expr        { return MulOf(x, PowOf(y, N(-1))) }

var circularTable = []*circular{
	{
		id: FnSin, parity: parityOdd, angleIn: true, inverse: FnAsin,
		compose: map[FunctionID]func(Expr) Expr{
			FnAcos: oneMinusSquare,
			FnAtan: func(y Expr) Expr { return over(y, onePlusSquare(y)) },
		},
		swap: FnSinh, swapI: true, special: sinSpecial, kernel: number.Context.Sin,
		total: true, realTotal: true,
	},
	{
		id: FnCos, parity: parityEven, angleIn: true, inverse: FnAcos,
		compose: map[FunctionID]func(Expr) Expr{
			FnAsin: oneMinusSquare,
			FnAtan: func(y Expr) Expr { return over(N(1), onePlusSquare(y)) },
		},
		swap: FnCosh, special: cosSpecial, kernel: number.Context.Cos,
		total: true, realTotal: true,
	},
	{
		id: FnTan, parity: parityOdd, angleIn: true, inverse: FnAtan,
		compose: map[FunctionID]func(Expr) Expr{
			FnAsin: func(y Expr) Expr { return over(y, oneMinusSquare(y)) },
			FnAcos: func(y Expr) Expr { return over(oneMinusSquare(y), y) },
		},
		swap: FnTanh, swapI: true, special: tanSpecial, kernel: number.Context.Tan,
	},
	{
		id: FnAsin, parity: parityOdd, angleOut: true,
		swap: FnAsinh, swapI: true, special: inverseSpecial(FnAsin), kernel: number.Context.Asin,
		total: true,
	},
	{
		id: FnAcos, parity: parityReflect, angleOut: true,
		special: inverseSpecial(FnAcos), kernel: number.Context.Acos,
		total: true,
	},
	{
		id: FnAtan, parity: parityOdd, angleOut: true,
		swap: FnAtanh, swapI: true, special: inverseSpecial(FnAtan), kernel: number.Context.Atan,
		realTotal: true, signFollows: true,
	},
	{
		id: FnSinh, parity: parityOdd, inverse: FnAsinh,
		swap: FnSin, swapI: true, kernel: number.Context.Sinh,
		total: true, realTotal: true, signFollows: true,
	},
	{
		id: FnCosh, parity: parityEven, inverse: FnAcosh,
		compose: map[FunctionID]func(Expr) Expr{FnAsinh: onePlusSquare},
		swap:    FnCos, kernel: number.Context.Cosh,
		total: true, realTotal: true,
	},
	{
		id: FnTanh, parity: parityOdd, inverse: FnAtanh,
		compose: map[FunctionID]func(Expr) Expr{
			FnAsinh: func(y Expr) Expr { return over(y, onePlusSquare(y)) },
		},
		swap: FnTan, swapI: true, kernel: number.Context.Tanh,
		realTotal: true, signFollows: true,
	},
	{
		id: FnAsinh, parity: parityOdd,
		compose: map[FunctionID]func(Expr) Expr{FnSinh: func(y Expr) Expr { return y }},
		swap:    FnAsin, swapI: true, kernel: number.Context.Asinh,
		total: true, realTotal: true, signFollows: true,
	},
	{
		id:      FnAcosh,
		compose: map[FunctionID]func(Expr) Expr{FnCosh: func(y Expr) Expr { return CallOf(FnAbs, y) }},
		kernel:  number.Context.Acosh,
		total:   true,
	},
	{
		id: FnAtanh, parity: parityOdd,
		compose: map[FunctionID]func(Expr) Expr{FnTanh: func(y Expr) Expr { return y }},
		swap:    FnAtan, swapI: true, kernel: number.Context.Atanh,
	},
}

func circularOf(id FunctionID) *circular {
	for _, f := range circularTable {
		if f.id == id {
			return f
		}
	}
	return nil
}

func mapCall(id FunctionID, v *Vector) *Vector {
	elems := make([]Expr, len(v.elems))
	for i, el := range v.elems {
		elems[i] = CallOf(id, el)
	}
	return VectorOf(elems...)
}

func (f *circular) Calculate(c *Context, args []Expr, opts Options) (Expr, Status) {
	if opts.Approximation != Exact {
		if out, ok := c.probeExact(args[0], opts, func(x Expr, exact Options) (Expr, bool) {
			return f.rewrite(c, x, exact)
		}); ok {
			return out, StatusRewritten
		}
	}
	x := c.eval(args[0], opts)
	if v, ok := x.(*Vector); ok {
		return mapCall(f.id, v), StatusDeferredVector
	}
	if out, ok := f.rewrite(c, x, opts); ok {
		return out, StatusRewritten
	}
	if out, ok := f.numeric(c, x, opts); ok {
		return out, StatusRewritten
	}
	return CallOf(f.id, x), StatusUnhandled
}

// rewrite applies the symbolic rules to the evaluated argument x.
func (f *circular) rewrite(c *Context, x Expr, opts Options) (Expr, bool) {
	if call, ok := x.(*Call); ok && len(call.args) == 1 {
		y := call.args[0]
		if call.fn == f.inverse && f.inverse != FnInvalid && !y.IsApproximate() {
			return y, true
		}
		if g, ok := f.compose[call.fn]; ok && c.exactReal(y) {
			return g(y), true
		}
	}
	r := x
	if f.angleIn {
		r = c.toRadians(x, opts)
	}
	if f.special != nil {
		if out, ok := f.special(c, r, opts); ok {
			return out, true
		}
	}
	if isPredominantlyNegative(x) {
		y := negate(x)
		switch f.parity {
		case parityOdd:
			return Neg(CallOf(f.id, y)), true
		case parityEven:
			return CallOf(f.id, y), true
		case parityReflect:
			return AddOf(angleFromPi(big.NewRat(1, 1), opts), Neg(CallOf(f.id, y))), true
		}
	}
	if f.swap != FnInvalid {
		if y, ok := c.pureImaginary(r); ok {
			return f.swapped(y, opts), true
		}
	}
	return nil, false
}

// swapped rewrites f(iy) through the function on the other side of the
// circular/hyperbolic pair. y is in radians when it is an angle.
func (f *circular) swapped(y Expr, opts Options) Expr {
	g := circularOf(f.swap)
	arg := y
	if g.angleIn {
		arg = asRadians(y, opts)
	}
	var out Expr = CallOf(f.swap, arg)
	if g.angleOut {
		if k := unitToRadians(opts.AngleUnit); k != nil {
			out = MulOf(out, k)
		}
	}
	if f.angleOut {
		out = angleFromRadians(out, opts)
	}
	if f.swapI {
		out = MulOf(I(), out)
	}
	return out
}

func (f *circular) numeric(c *Context, x Expr, opts Options) (Expr, bool) {
	r := x
	if f.angleIn {
		r = c.toRadians(x, opts)
	}
	n, ok := c.numeric(r, opts)
	if !ok {
		return nil, false
	}
	nc := opts.number()
	out, ok := f.kernel(nc, n.val)
	if !ok || !opts.accept(out, n.val) {
		return nil, false
	}
	if f.angleOut {
		if out, ok = numberToUnit(nc, out, opts.AngleUnit); !ok {
			return nil, false
		}
	}
	return NumOf(out), true
}

func (f *circular) Represents(c *Context, p Property, args []Expr) bool {
	x := args[0]
	isReal := c.Represents(x, PropReal)
	switch p {
	case PropNumber:
		return f.total && c.Represents(x, PropNumber) || f.realTotal && isReal
	case PropReal:
		return f.realTotal && isReal
	case PropPositive, PropNonNegative, PropNonZero:
		if f.id == FnCosh && isReal {
			return true
		}
	}
	switch p {
	case PropPositive, PropNegative, PropNonNegative, PropNonPositive, PropNonZero:
		return f.signFollows && isReal && c.Represents(x, p)
	}
	return false
}

// ============================================================
// Special values
// ============================================================

// sinTable holds sin(kπ/24) for the k in [0, 12] whose denominators are in
// {1, 2, 3, 4, 6, 8, 12}.
var sinTable = map[int64]Expr{
	0:  N(0),
	2:  MulOf(F(1, 4), AddOf(Sqrt(N(6)), Neg(Sqrt(N(2))))),
	3:  MulOf(F(1, 2), Sqrt(AddOf(N(2), Neg(Sqrt(N(2)))))),
	4:  F(1, 2),
	6:  MulOf(F(1, 2), Sqrt(N(2))),
	8:  MulOf(F(1, 2), Sqrt(N(3))),
	9:  MulOf(F(1, 2), Sqrt(AddOf(N(2), Sqrt(N(2))))),
	10: MulOf(F(1, 4), AddOf(Sqrt(N(6)), Sqrt(N(2)))),
	12: N(1),
}

// tanTable holds tan(kπ/24) for the same k below 12.
var tanTable = map[int64]Expr{
	0:  N(0),
	2:  AddOf(N(2), Neg(Sqrt(N(3)))),
	3:  AddOf(Sqrt(N(2)), N(-1)),
	4:  MulOf(F(1, 3), Sqrt(N(3))),
	6:  N(1),
	8:  Sqrt(N(3)),
	9:  AddOf(Sqrt(N(2)), N(1)),
	10: AddOf(N(2), Sqrt(N(3))),
}

var (
	ratOne  = big.NewRat(1, 1)
	ratHalf = big.NewRat(1, 2)
)

// ratMod reduces q into [0, m).
func ratMod(q *big.Rat, m int64) *big.Rat {
	mr := big.NewRat(m, 1)
	k := new(big.Rat).Quo(q, mr)
	fl := new(big.Int).Div(k.Num(), k.Denom())
	return new(big.Rat).Sub(q, new(big.Rat).Mul(mr, new(big.Rat).SetInt(fl)))
}

// twentyFourths returns t·24 when it is an integer.
func twentyFourths(t *big.Rat) (int64, bool) {
	k := new(big.Rat).Mul(t, big.NewRat(24, 1))
	if !k.IsInt() || !k.Num().IsInt64() {
		return 0, false
	}
	return k.Num().Int64(), true
}

// sinPi returns sin(qπ) from the table.
func sinPi(q *big.Rat) (Expr, bool) {
	t := ratMod(q, 2)
	negative := false
	if t.Cmp(ratOne) >= 0 {
		t.Sub(t, ratOne)
		negative = true
	}
	if t.Cmp(ratHalf) > 0 {
		t.Sub(ratOne, t)
	}
	k, ok := twentyFourths(t)
	if !ok {
		return nil, false
	}
	v, ok := sinTable[k]
	if !ok {
		return nil, false
	}
	if negative {
		return Neg(v), true
	}
	return v, true
}

func sinSpecial(c *Context, r Expr, opts Options) (Expr, bool) {
	q, ok := piMultiple(r)
	if !ok {
		return nil, false
	}
	return sinPi(q)
}

func cosSpecial(c *Context, r Expr, opts Options) (Expr, bool) {
	q, ok := piMultiple(r)
	if !ok {
		return nil, false
	}
	return sinPi(q.Add(q, ratHalf))
}

func tanSpecial(c *Context, r Expr, opts Options) (Expr, bool) {
	q, ok := piMultiple(r)
	if !ok {
		return nil, false
	}
	t := ratMod(q, 1)
	negative := false
	switch t.Cmp(ratHalf) {
	case 0:
		if !opts.AllowInfinite {
			return nil, false
		}
		return NumOf(number.ComplexInf()), true
	case 1:
		t.Sub(ratOne, t)
		negative = true
	}
	k, ok := twentyFourths(t)
	if !ok {
		return nil, false
	}
	v, ok := tanTable[k]
	if !ok {
		return nil, false
	}
	if negative {
		return Neg(v), true
	}
	return v, true
}

// tableEntry is one exactly evaluated value of an inverse table with its
// angle q·π.
type tableEntry struct {
	value Expr
	q     *big.Rat
}

// inverseTable evaluates the forward table once per Context so that values
// compare structurally with evaluated arguments.
func (c *Context) inverseTable(id FunctionID) []tableEntry {
	if t, ok := c.inverse[id]; ok {
		return t
	}
	src := sinTable
	if id == FnAtan {
		src = tanTable
	}
	exact := DefaultOptions().WithApproximation(Exact)
	t := make([]tableEntry, 0, len(src))
	for k := int64(0); k <= 12; k++ {
		v, ok := src[k]
		if !ok {
			continue
		}
		q := big.NewRat(k, 24)
		if id == FnAcos {
			q.Sub(ratHalf, q)
		}
		t = append(t, tableEntry{value: c.eval(v, exact), q: q})
	}
	if c.inverse == nil {
		c.inverse = make(map[FunctionID][]tableEntry)
	}
	c.inverse[id] = t
	return t
}

func inverseSpecial(id FunctionID) func(*Context, Expr, Options) (Expr, bool) {
	return func(c *Context, x Expr, opts Options) (Expr, bool) {
		if x.IsApproximate() {
			return nil, false
		}
		for _, e := range c.inverseTable(id) {
			if e.value.Equal(x) {
				return angleFromPi(e.q, opts), true
			}
		}
		return nil, false
	}
}
