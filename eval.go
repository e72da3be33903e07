package gocalc

import (
	"math/big"
	"sort"
	"strconv"

	"github.com/njchilds90/gocalc/number"
)

// Calculate evaluates e under opts. Diagnostics are queued on c; the error
// is ErrAborted or ErrMaxDepth when evaluation could not finish, with the
// partially evaluated expression still returned.
func (c *Context) Calculate(e Expr, opts Options) (Expr, error) {
	c.depth, c.overflow = 0, false
	out := c.eval(e, opts)
	switch {
	case c.Aborted():
		return out, ErrAborted
	case c.overflow:
		return out, ErrMaxDepth
	}
	return out, nil
}

// CallFunction applies a built-in function to args and reports how the
// call was handled.
func (c *Context) CallFunction(id FunctionID, args []Expr, opts Options) (Expr, Status) {
	c.depth, c.overflow = 0, false
	return c.evalCall(CallOf(id, args...), opts)
}

func (c *Context) eval(e Expr, opts Options) Expr {
	if c.Aborted() {
		return e
	}
	if c.depth >= maxDepth {
		if !c.overflow {
			c.overflow = true
			c.Error("maximum evaluation depth exceeded")
		}
		return e
	}
	c.depth++
	defer func() { c.depth-- }()

	switch v := e.(type) {
	case *Sym:
		return c.evalSym(v, opts)
	case *Vector:
		return VectorOf(c.evalAll(v.elems, opts)...)
	case *Add:
		return c.evalAdd(v.terms, opts)
	case *Mul:
		return c.evalMul(v.factors, opts)
	case *Pow:
		return c.evalPow(v.base, v.exp, opts)
	case *Call:
		out, _ := c.evalCall(v, opts)
		return out
	}
	return e
}

func (c *Context) evalAll(es []Expr, opts Options) []Expr {
	out := make([]Expr, len(es))
	for i, e := range es {
		out[i] = c.eval(e, opts)
	}
	return out
}

// exact evaluates e in exact mode.
func (c *Context) exact(e Expr, opts Options) Expr {
	return c.eval(e, opts.WithApproximation(Exact))
}

func (c *Context) evalSym(s *Sym, opts Options) Expr {
	if s.constant {
		if opts.Approximation != Approximate {
			return s
		}
		nc := opts.number()
		switch s.name {
		case "pi":
			return NumOf(nc.Pi())
		case "e":
			return NumOf(nc.E())
		}
		return NumOf(nc.Euler())
	}
	if v, ok := c.vars[s.name]; ok {
		return c.eval(v, opts)
	}
	return s
}

// ============================================================
// Dispatch
// ============================================================

func (c *Context) evalCall(call *Call, opts Options) (Expr, Status) {
	if c.Aborted() {
		return call, StatusAborted
	}
	f, ok := Lookup(call.fn)
	if !ok {
		c.Error("unknown function %s", call.fn)
		return call, StatusUnhandled
	}
	if n := len(call.args); n < f.MinArgs || (f.MaxArgs >= 0 && n > f.MaxArgs) {
		c.Error("%s() takes %s, got %d", call.fn, arity(f), n)
		return CallOf(call.fn, c.evalAll(call.args, opts)...), StatusUnhandled
	}
	for i, a := range call.args {
		spec := f.arg(i)
		if v, ok := a.(*Vector); ok && !spec.Vector {
			return c.mapVector(call.fn, call.args, i, v, opts), StatusNotApplicable
		}
		if !spec.Test(a) {
			c.Error("argument %d of %s() is invalid: %s", i+1, call.fn, a)
			return CallOf(call.fn, c.evalAll(call.args, opts)...), StatusUnhandled
		}
	}

	out, st := f.Calculate(c, call.args, opts)
	if c.Aborted() {
		return out, StatusAborted
	}
	switch st {
	case StatusRewritten, StatusDeferredVector:
		return c.eval(out, opts), st
	case StatusNotApplicable:
		args := c.evalAll(call.args, opts)
		for i, a := range args {
			if v, ok := a.(*Vector); ok {
				return c.mapVector(call.fn, args, i, v, opts), st
			}
		}
		return CallOf(call.fn, args...), StatusUnhandled
	}
	return out, st
}

// mapVector applies fn element-wise over the vector in argument i.
func (c *Context) mapVector(fn FunctionID, args []Expr, i int, v *Vector, opts Options) Expr {
	elems := make([]Expr, len(v.elems))
	for k, el := range v.elems {
		a := make([]Expr, len(args))
		copy(a, args)
		a[i] = el
		elems[k] = CallOf(fn, a...)
	}
	return c.eval(VectorOf(elems...), opts)
}

func arity(f *Function) string {
	switch {
	case f.MinArgs == f.MaxArgs && f.MinArgs == 1:
		return "1 argument"
	case f.MinArgs == f.MaxArgs:
		return strconv.Itoa(f.MinArgs) + " arguments"
	case f.MaxArgs < 0:
		return "at least " + strconv.Itoa(f.MinArgs) + " arguments"
	}
	return strconv.Itoa(f.MinArgs) + " to " + strconv.Itoa(f.MaxArgs) + " arguments"
}

// ============================================================
// Sums
// ============================================================

// splitCoefficient separates the leading number of a product.
func splitCoefficient(e Expr) (number.Number, []Expr) {
	if m, ok := e.(*Mul); ok {
		if n, ok := m.factors[0].(*Num); ok {
			return n.val, m.factors[1:]
		}
		return number.Int(1), m.factors
	}
	return number.Int(1), []Expr{e}
}

func (c *Context) evalAdd(terms []Expr, opts Options) Expr {
	flat := make([]Expr, 0, len(terms))
	for _, t := range terms {
		t = c.eval(t, opts)
		if a, ok := t.(*Add); ok {
			flat = append(flat, a.terms...)
		} else {
			flat = append(flat, t)
		}
	}
	if out, ok := c.addVectors(flat, opts); ok {
		return out
	}

	nc := opts.number()
	acc := number.Int(0)
	var leftover []Expr
	type group struct {
		coeff number.Number
		body  []Expr
	}
	var groups []*group
	index := map[string]*group{}
	for _, t := range flat {
		if n, ok := t.(*Num); ok {
			if s, ok := nc.Add(acc, n.val); ok {
				acc = s
			} else {
				leftover = append(leftover, n)
			}
			continue
		}
		coeff, body := splitCoefficient(t)
		key := MulOf(body...).String()
		if g, ok := index[key]; ok {
			if s, ok := nc.Add(g.coeff, coeff); ok {
				g.coeff = s
				continue
			}
			key += "\x00"
		}
		g := &group{coeff: coeff, body: body}
		index[key] = g
		groups = append(groups, g)
	}

	result := make([]Expr, 0, len(groups)+len(leftover)+1)
	for _, g := range groups {
		if g.coeff.IsExactZero() {
			continue
		}
		result = append(result, canonMul(g.coeff, g.body))
	}
	result = append(result, leftover...)
	if !acc.IsExactZero() || len(result) == 0 {
		result = append(result, NumOf(acc))
	}
	return AddOf(result...)
}

func (c *Context) addVectors(terms []Expr, opts Options) (Expr, bool) {
	var size = -1
	for _, t := range terms {
		v, ok := t.(*Vector)
		if !ok {
			if size >= 0 {
				return AddOf(terms...), true
			}
			continue
		}
		if size >= 0 && v.Len() != size {
			return AddOf(terms...), true
		}
		size = v.Len()
	}
	if size < 0 {
		return nil, false
	}
	for _, t := range terms {
		if _, ok := t.(*Vector); !ok {
			return AddOf(terms...), true
		}
	}
	elems := make([]Expr, size)
	for i := range elems {
		parts := make([]Expr, len(terms))
		for k, t := range terms {
			parts[k] = t.(*Vector).elems[i]
		}
		elems[i] = AddOf(parts...)
	}
	return c.eval(VectorOf(elems...), opts), true
}

// ============================================================
// Products
// ============================================================

// factorLess orders the non-numeric factors of a product: units last,
// otherwise by printed form.
func factorLess(a, b Expr) bool {
	_, ua := a.(*Unit)
	_, ub := b.(*Unit)
	if ua != ub {
		return ub
	}
	return a.String() < b.String()
}

// canonMul builds coeff·factors with the factors in canonical order.
func canonMul(coeff number.Number, factors []Expr) Expr {
	if coeff.IsExactZero() {
		return N(0)
	}
	sorted := make([]Expr, len(factors))
	copy(sorted, factors)
	sort.SliceStable(sorted, func(i, j int) bool { return factorLess(sorted[i], sorted[j]) })
	if coeff.IsOne() && len(sorted) > 0 {
		return MulOf(sorted...)
	}
	return MulOf(append([]Expr{NumOf(coeff)}, sorted...)...)
}

func (c *Context) evalMul(factors []Expr, opts Options) Expr {
	flat := make([]Expr, 0, len(factors))
	for _, f := range factors {
		f = c.eval(f, opts)
		if m, ok := f.(*Mul); ok {
			flat = append(flat, m.factors...)
		} else {
			flat = append(flat, f)
		}
	}
	if out, ok := c.mulVector(flat, opts); ok {
		return out
	}

	nc := opts.number()
	coeff := number.Int(1)
	var others []Expr
	for _, f := range flat {
		if n, ok := f.(*Num); ok {
			if p, ok := nc.Mul(coeff, n.val); ok {
				coeff = p
				continue
			}
		}
		others = append(others, f)
	}
	if coeff.IsExactZero() {
		return N(0)
	}

	// collect powers of equal bases
	type power struct {
		base Expr
		exps []Expr
		orig Expr
	}
	var powers []*power
	index := map[string]*power{}
	for _, f := range others {
		base, exp := f, Expr(N(1))
		if p, ok := f.(*Pow); ok {
			base, exp = p.base, p.exp
		}
		if _, ok := f.(*Num); ok {
			powers = append(powers, &power{base: f, exps: []Expr{exp}, orig: f})
			continue
		}
		key := base.String()
		if p, ok := index[key]; ok {
			p.exps = append(p.exps, exp)
			continue
		}
		p := &power{base: base, exps: []Expr{exp}, orig: f}
		index[key] = p
		powers = append(powers, p)
	}
	var rest []Expr
	for _, p := range powers {
		if len(p.exps) == 1 {
			rest = append(rest, p.orig)
			continue
		}
		combined := c.evalPow(p.base, AddOf(p.exps...), opts)
		k, body := splitCoefficient(combined)
		if n, ok := combined.(*Num); ok {
			k, body = n.val, nil
		}
		if prod, ok := nc.Mul(coeff, k); ok {
			coeff = prod
		} else {
			body = []Expr{combined}
		}
		rest = append(rest, body...)
	}
	if coeff.IsExactZero() {
		return N(0)
	}
	if len(rest) == 0 {
		return NumOf(coeff)
	}
	return canonMul(coeff, rest)
}

func (c *Context) mulVector(factors []Expr, opts Options) (Expr, bool) {
	at := -1
	for i, f := range factors {
		if _, ok := f.(*Vector); ok {
			if at >= 0 {
				return MulOf(factors...), true
			}
			at = i
		}
	}
	if at < 0 {
		return nil, false
	}
	v := factors[at].(*Vector)
	elems := make([]Expr, len(v.elems))
	for k, el := range v.elems {
		parts := make([]Expr, len(factors))
		copy(parts, factors)
		parts[at] = el
		elems[k] = MulOf(parts...)
	}
	return c.eval(VectorOf(elems...), opts), true
}

// ============================================================
// Powers
// ============================================================

func (c *Context) evalPow(base, exp Expr, opts Options) Expr {
	b := c.eval(base, opts)
	x := c.eval(exp, opts)
	xn, xNum := x.(*Num)
	if xNum {
		switch {
		case xn.val.IsExactZero():
			return N(1)
		case xn.val.IsOne():
			return b
		}
	}
	if bn, ok := b.(*Num); ok {
		if bn.val.IsOne() && c.Represents(x, PropNumber) {
			return N(1)
		}
		if xNum {
			return c.numPow(bn, xn, opts)
		}
		return PowOf(b, x)
	}
	if xNum && xn.val.IsInteger() {
		switch bb := b.(type) {
		case *Pow:
			return c.eval(PowOf(bb.base, MulOf(bb.exp, x)), opts)
		case *Mul:
			parts := make([]Expr, len(bb.factors))
			for i, f := range bb.factors {
				parts[i] = PowOf(f, x)
			}
			return c.eval(MulOf(parts...), opts)
		}
	}
	if bb, ok := b.(*Pow); ok && c.Represents(bb.base, PropNonNegative) &&
		c.Represents(bb.exp, PropReal) && c.Represents(x, PropReal) {
		return c.eval(PowOf(bb.base, MulOf(bb.exp, x)), opts)
	}
	return PowOf(b, x)
}

func (c *Context) numPow(b, e *Num, opts Options) Expr {
	bq, bok := b.val.Rat()
	eq, eok := e.val.Rat()
	if bok && eok && !eq.IsInt() && bq.Sign() != 0 {
		if r, exact, ok := c.radical(bq, eq, opts); ok && (exact || opts.Approximation != Approximate) {
			return r
		}
	}
	out, ok := opts.number().Raise(b.val, e.val)
	if ok && opts.accept(out, b.val, e.val) {
		return NumOf(out)
	}
	return PowOf(b, e)
}

// radical writes b^e for rationals b and e (e not an integer) as
// coefficient·∏ m^(1/d) with every m free of d-th powers. exact reports
// that no radical remains; otherwise only Approximate evaluates further.
func (c *Context) radical(b, e *big.Rat, opts Options) (Expr, bool, bool) {
	if b.Sign() < 0 {
		// (−m)^(k/2) = i^k · m^(k/2)
		if e.Denom().Cmp(big.NewInt(2)) != 0 || !opts.AllowComplex {
			return nil, false, false
		}
		r, exact, ok := c.radical(new(big.Rat).Neg(b), e, opts)
		if !ok {
			return nil, false, false
		}
		k := new(big.Int).Mod(e.Num(), big.NewInt(4)).Int64()
		unit := [4]number.Number{number.Int(1), number.I(), number.Int(-1), number.Complex(number.Int(0), number.Int(-1))}[k]
		return c.eval(MulOf(NumOf(unit), r), opts.WithApproximation(Exact)), exact, true
	}
	n := new(big.Int).Div(e.Num(), e.Denom())
	f := new(big.Rat).Sub(e, new(big.Rat).SetInt(n))
	if !n.IsInt64() || n.Int64() > 1<<16 || n.Int64() < -(1<<16) {
		return nil, false, false
	}
	coeff := ratPow(b, n.Int64())
	p, q := b.Num(), b.Denom()

	var factors []Expr
	out1, in1, d1, ok := intRadical(p, f)
	if !ok {
		return nil, false, false
	}
	coeff.Mul(coeff, new(big.Rat).SetInt(out1))
	if in1.Cmp(big.NewInt(1)) != 0 {
		factors = append(factors, PowOf(NumOf(number.FromInt(in1)), F(1, d1)))
	}
	if q.Cmp(big.NewInt(1)) != 0 {
		// q^(−f) = q^(1−f) / q
		out2, in2, d2, ok := intRadical(q, new(big.Rat).Sub(big.NewRat(1, 1), f))
		if !ok {
			return nil, false, false
		}
		coeff.Mul(coeff, new(big.Rat).SetFrac(out2, q))
		if in2.Cmp(big.NewInt(1)) != 0 {
			factors = append(factors, PowOf(NumOf(number.FromInt(in2)), F(1, d2)))
		}
	}
	if len(factors) == 0 {
		return RatOf(coeff), true, true
	}
	return canonMul(number.FromRat(coeff), factors), false, true
}

func ratPow(b *big.Rat, n int64) *big.Rat {
	neg := n < 0
	if neg {
		n = -n
	}
	num := new(big.Int).Exp(b.Num(), big.NewInt(n), nil)
	den := new(big.Int).Exp(b.Denom(), big.NewInt(n), nil)
	if neg {
		num, den = den, num
	}
	return new(big.Rat).SetFrac(num, den)
}

const trialLimit = 100000

// intRadical writes m^f, m > 0 and 0 < f < 1, as out·in^(1/d) with in free
// of d-th powers. Factors above the trial-division limit stay inside.
func intRadical(m *big.Int, f *big.Rat) (out, in *big.Int, d int64, ok bool) {
	if !f.Num().IsInt64() || !f.Denom().IsInt64() {
		return nil, nil, 0, false
	}
	a, d := f.Num().Int64(), f.Denom().Int64()
	if a > 64 || d > 1<<16 {
		return nil, nil, 0, false
	}
	type primePower struct {
		p *big.Int
		k int64
	}
	var fs []primePower
	rest := new(big.Int).Set(m)
	pb := new(big.Int)
	mod := new(big.Int)
	for p := int64(2); p < trialLimit && rest.Cmp(big.NewInt(1)) > 0; p++ {
		pb.SetInt64(p)
		if new(big.Int).Mul(pb, pb).Cmp(rest) > 0 {
			break
		}
		k := int64(0)
		for {
			q, r := new(big.Int).QuoRem(rest, pb, mod)
			if r.Sign() != 0 {
				break
			}
			rest = q
			k++
		}
		if k > 0 {
			fs = append(fs, primePower{p: big.NewInt(p), k: k})
		}
	}
	if rest.Cmp(big.NewInt(1)) > 0 {
		fs = append(fs, primePower{p: rest, k: 1})
	}

	out, in = big.NewInt(1), big.NewInt(1)
	g := d
	inner := make([]int64, len(fs))
	for i, pp := range fs {
		e := a * pp.k
		out.Mul(out, new(big.Int).Exp(pp.p, big.NewInt(e/d), nil))
		inner[i] = e % d
		if inner[i] != 0 {
			g = gcd64(g, inner[i])
		}
	}
	for i, pp := range fs {
		if inner[i] != 0 {
			in.Mul(in, new(big.Int).Exp(pp.p, big.NewInt(inner[i]/g), nil))
		}
	}
	return out, in, d / g, true
}

func gcd64(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
