// Package gocalc is the function-evaluation kernel of a computer algebra
// system.
//
// Given an expression tree and evaluation options (exact or approximate
// arithmetic, whether complex and infinite results are allowed, the angle
// unit) a Context reduces function applications such as sin, acos, floor,
// arg, gcd or base to simpler symbolic or numeric forms. Results never lose
// exactness silently: approximate values are decimal intervals that carry
// their own error bounds, and every rewrite either proves its preconditions
// or leaves the call alone.
//
//   - Immutable expression trees (Expr) with cached approximation flags
//   - Exact rationals and enclosing intervals (package number)
//   - Special-angle tables, inverse compositions, parity and sign rules
//   - Complex decomposition (re, im, arg, conj)
//   - Digit-string codecs for bases, roman numerals and bijective base-26
//   - JSON and MCP-ready tool APIs
package gocalc

import (
	"math/big"
	"strconv"
	"strings"

	"github.com/njchilds90/gocalc/number"
)

// ============================================================
// Core Interface
// ============================================================

type Expr interface {
	String() string
	LaTeX() string
	Equal(other Expr) bool
	IsApproximate() bool
	exprType() string
	toJSON() map[string]interface{}
}

func anyApproximate(es []Expr) bool {
	for _, e := range es {
		if e.IsApproximate() {
			return true
		}
	}
	return false
}

func equalAll(a, b []Expr) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// ============================================================
// Num: exact or approximate number
// ============================================================

type Num struct{ val number.Number }

func N(n int64) *Num { return &Num{val: number.Int(n)} }
func F(p, q int64) *Num {
	if q == 0 {
		panic("gocalc: denominator is zero")
	}
	return &Num{val: number.Frac(p, q)}
}
func NumOf(v number.Number) *Num    { return &Num{val: v} }
func RatOf(r *big.Rat) *Num         { return &Num{val: number.FromRat(r)} }
func I() *Num                       { return &Num{val: number.I()} }
func (n *Num) Value() number.Number { return n.val }
func (n *Num) IsApproximate() bool  { return n.val.IsApproximate() }
func (n *Num) Equal(other Expr) bool {
	o, ok := other.(*Num)
	return ok && n.val.Equal(o.val)
}
func (n *Num) exprType() string { return "num" }
func (n *Num) String() string   { return n.val.String() }

// Rat returns the value when n is an exact rational.
func (n *Num) Rat() (*big.Rat, bool) { return n.val.Rat() }

func (n *Num) LaTeX() string {
	q, ok := n.val.Rat()
	if !ok {
		switch n.val.Infinity() {
		case number.PlusInfinity:
			return "\\infty"
		case number.MinusInfinity:
			return "-\\infty"
		case number.ComplexInfinity:
			return "\\tilde{\\infty}"
		}
		return strings.ReplaceAll(n.val.String(), "i", "\\mathrm{i}")
	}
	if q.IsInt() {
		return q.Num().String()
	}
	sign := ""
	if q.Sign() < 0 {
		sign = "-"
		q.Neg(q)
	}
	return sign + "\\frac{" + q.Num().String() + "}{" + q.Denom().String() + "}"
}

func (n *Num) toJSON() map[string]interface{} {
	m := map[string]interface{}{"type": "num"}
	switch n.val.Infinity() {
	case number.PlusInfinity:
		m["value"] = "inf"
		return m
	case number.MinusInfinity:
		m["value"] = "-inf"
		return m
	case number.ComplexInfinity:
		m["value"] = "cinf"
		return m
	}
	partJSON(m, "", n.val.Real())
	if n.val.IsComplex() {
		partJSON(m, "im_", n.val.Imag())
	}
	if n.val.IsApproximate() {
		m["approx"] = true
	}
	return m
}

// partJSON stores a real part as prefix+"value" when exact or as the
// interval prefix+"lo", prefix+"hi".
func partJSON(m map[string]interface{}, prefix string, part number.Number) {
	if lo, hi, ok := part.Interval(); ok {
		m[prefix+"lo"] = lo
		m[prefix+"hi"] = hi
		return
	}
	m[prefix+"value"] = part.String()
}

// ============================================================
// Sym: variable or named constant
// ============================================================

// NumberType is the kind of number a symbol is assumed to stand for.
type NumberType uint8

const (
	TypeNumber NumberType = iota
	TypeReal
	TypeRational
	TypeInteger
)

// Sign is an assumption on the sign of a symbol.
type Sign uint8

const (
	SignUnknown Sign = iota
	SignPositive
	SignNonNegative
	SignNegative
	SignNonPositive
	SignNonZero
)

// Assumptions describe what an unassigned symbol may stand for. The zero
// value allows any complex number.
type Assumptions struct {
	Type NumberType
	Sign Sign
}

type Sym struct {
	name     string
	assume   Assumptions
	constant bool
}

var constantNames = map[string]bool{"pi": true, "e": true, "euler": true}

// S returns the symbol name. The names pi, e and euler denote constants.
func S(name string) *Sym {
	if constantNames[name] {
		return &Sym{name: name, constant: true, assume: Assumptions{Type: TypeReal, Sign: SignPositive}}
	}
	return &Sym{name: name}
}

// Real returns a symbol assumed to be real.
func Real(name string) *Sym { return SymOf(name, Assumptions{Type: TypeReal}) }

func SymOf(name string, a Assumptions) *Sym {
	if constantNames[name] {
		return S(name)
	}
	return &Sym{name: name, assume: a}
}

func Pi() *Sym    { return S("pi") }
func E() *Sym     { return S("e") }
func Euler() *Sym { return S("euler") }

func (s *Sym) String() string           { return s.name }
func (s *Sym) Name() string             { return s.name }
func (s *Sym) Assumptions() Assumptions { return s.assume }
func (s *Sym) IsConstant() bool         { return s.constant }
func (s *Sym) IsApproximate() bool      { return false }
func (s *Sym) exprType() string         { return "sym" }
func (s *Sym) isConst(name string) bool { return s.constant && s.name == name }
func (s *Sym) Equal(other Expr) bool {
	o, ok := other.(*Sym)
	return ok && s.name == o.name && s.assume == o.assume
}

func (s *Sym) LaTeX() string {
	switch {
	case s.isConst("pi"):
		return "\\pi"
	case s.isConst("euler"):
		return "\\gamma"
	}
	return s.name
}

func (s *Sym) toJSON() map[string]interface{} {
	m := map[string]interface{}{"type": "sym", "name": s.name}
	if !s.constant && s.assume != (Assumptions{}) {
		m["assume"] = map[string]interface{}{
			"type": typeNames[s.assume.Type],
			"sign": signNames[s.assume.Sign],
		}
	}
	return m
}

var typeNames = [...]string{TypeNumber: "number", TypeReal: "real", TypeRational: "rational", TypeInteger: "integer"}

var signNames = [...]string{
	SignUnknown: "unknown", SignPositive: "positive", SignNonNegative: "nonnegative",
	SignNegative: "negative", SignNonPositive: "nonpositive", SignNonZero: "nonzero",
}

// ============================================================
// Unit and Text
// ============================================================

type Unit struct{ name string }

func U(name string) *Unit             { return &Unit{name: name} }
func (u *Unit) Name() string          { return u.name }
func (u *Unit) String() string        { return u.name }
func (u *Unit) LaTeX() string         { return "\\mathrm{" + u.name + "}" }
func (u *Unit) IsApproximate() bool   { return false }
func (u *Unit) exprType() string      { return "unit" }
func (u *Unit) Equal(other Expr) bool { o, ok := other.(*Unit); return ok && u.name == o.name }
func (u *Unit) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "unit", "name": u.name}
}

type Text struct{ s string }

func T(s string) *Text                { return &Text{s: s} }
func (t *Text) Value() string         { return t.s }
func (t *Text) String() string        { return strconv.Quote(t.s) }
func (t *Text) LaTeX() string         { return "\\text{" + t.s + "}" }
func (t *Text) IsApproximate() bool   { return false }
func (t *Text) exprType() string      { return "text" }
func (t *Text) Equal(other Expr) bool { o, ok := other.(*Text); return ok && t.s == o.s }
func (t *Text) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "text", "value": t.s}
}

// ============================================================
// Call: function application
// ============================================================

type Call struct {
	fn     FunctionID
	args   []Expr
	approx bool
}

func CallOf(fn FunctionID, args ...Expr) *Call {
	return &Call{fn: fn, args: args, approx: anyApproximate(args)}
}

func (c *Call) Func() FunctionID    { return c.fn }
func (c *Call) Args() []Expr        { return c.args }
func (c *Call) IsApproximate() bool { return c.approx }
func (c *Call) exprType() string    { return "call" }
func (c *Call) Equal(other Expr) bool {
	o, ok := other.(*Call)
	return ok && c.fn == o.fn && equalAll(c.args, o.args)
}

func (c *Call) String() string {
	parts := make([]string, len(c.args))
	for i, a := range c.args {
		parts[i] = a.String()
	}
	return c.fn.String() + "(" + strings.Join(parts, ", ") + ")"
}

var latexNames = map[FunctionID]string{
	FnSin: "\\sin", FnCos: "\\cos", FnTan: "\\tan",
	FnAsin: "\\arcsin", FnAcos: "\\arccos", FnAtan: "\\arctan",
	FnSinh: "\\sinh", FnCosh: "\\cosh", FnTanh: "\\tanh",
	FnExp: "\\exp", FnLn: "\\ln", FnGcd: "\\gcd", FnArg: "\\arg",
}

func (c *Call) LaTeX() string {
	parts := make([]string, len(c.args))
	for i, a := range c.args {
		parts[i] = a.LaTeX()
	}
	inner := strings.Join(parts, ", ")
	switch c.fn {
	case FnAbs:
		return "\\left|" + inner + "\\right|"
	case FnFloor:
		return "\\left\\lfloor " + inner + "\\right\\rfloor"
	case FnCeil:
		return "\\left\\lceil " + inner + "\\right\\rceil"
	case FnSqrt:
		return "\\sqrt{" + inner + "}"
	}
	name, ok := latexNames[c.fn]
	if !ok {
		name = "\\operatorname{" + c.fn.String() + "}"
	}
	return name + "\\left(" + inner + "\\right)"
}

func (c *Call) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "call", "func": c.fn.String(), "args": argsJSON(c.args)}
}

// ============================================================
// Add: sum of terms
// ============================================================

type Add struct {
	terms  []Expr
	approx bool
}

// AddOf builds a sum without simplifying it; nested sums are flattened.
func AddOf(terms ...Expr) Expr {
	flat := make([]Expr, 0, len(terms))
	for _, t := range terms {
		if inner, ok := t.(*Add); ok {
			flat = append(flat, inner.terms...)
		} else {
			flat = append(flat, t)
		}
	}
	switch len(flat) {
	case 0:
		return N(0)
	case 1:
		return flat[0]
	}
	return &Add{terms: flat, approx: anyApproximate(flat)}
}

func (a *Add) Terms() []Expr       { return a.terms }
func (a *Add) IsApproximate() bool { return a.approx }
func (a *Add) exprType() string    { return "add" }
func (a *Add) Equal(other Expr) bool {
	o, ok := other.(*Add)
	return ok && equalAll(a.terms, o.terms)
}

func (a *Add) String() string {
	parts := make([]string, len(a.terms))
	for i, t := range a.terms {
		parts[i] = t.String()
	}
	return strings.Join(parts, " + ")
}

func (a *Add) LaTeX() string {
	parts := make([]string, len(a.terms))
	for i, t := range a.terms {
		parts[i] = t.LaTeX()
	}
	return strings.Join(parts, " + ")
}

func (a *Add) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "add", "terms": argsJSON(a.terms)}
}

// ============================================================
// Mul: product of factors
// ============================================================

type Mul struct {
	factors []Expr
	approx  bool
}

// MulOf builds a product without simplifying it; nested products are
// flattened.
func MulOf(factors ...Expr) Expr {
	flat := make([]Expr, 0, len(factors))
	for _, f := range factors {
		if inner, ok := f.(*Mul); ok {
			flat = append(flat, inner.factors...)
		} else {
			flat = append(flat, f)
		}
	}
	switch len(flat) {
	case 0:
		return N(1)
	case 1:
		return flat[0]
	}
	return &Mul{factors: flat, approx: anyApproximate(flat)}
}

// Neg returns −1·x.
func Neg(x Expr) Expr { return MulOf(N(-1), x) }

func (m *Mul) Factors() []Expr     { return m.factors }
func (m *Mul) IsApproximate() bool { return m.approx }
func (m *Mul) exprType() string    { return "mul" }
func (m *Mul) Equal(other Expr) bool {
	o, ok := other.(*Mul)
	return ok && equalAll(m.factors, o.factors)
}

func needsParens(e Expr) bool {
	switch v := e.(type) {
	case *Add:
		return true
	case *Num:
		return v.val.IsComplex() && !v.val.Real().IsExactZero()
	}
	return false
}

func (m *Mul) String() string {
	parts := make([]string, len(m.factors))
	for i, f := range m.factors {
		if needsParens(f) {
			parts[i] = "(" + f.String() + ")"
		} else {
			parts[i] = f.String()
		}
	}
	return strings.Join(parts, "*")
}

func (m *Mul) LaTeX() string {
	parts := make([]string, len(m.factors))
	for i, f := range m.factors {
		if needsParens(f) {
			parts[i] = "\\left(" + f.LaTeX() + "\\right)"
		} else {
			parts[i] = f.LaTeX()
		}
	}
	return strings.Join(parts, " ")
}

func (m *Mul) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "mul", "factors": argsJSON(m.factors)}
}

// ============================================================
// Pow: power
// ============================================================

type Pow struct {
	base, exp Expr
	approx    bool
}

func PowOf(base, exp Expr) Expr {
	return &Pow{base: base, exp: exp, approx: base.IsApproximate() || exp.IsApproximate()}
}

// Sqrt returns x^(1/2).
func Sqrt(x Expr) Expr { return PowOf(x, F(1, 2)) }

func (p *Pow) Base() Expr          { return p.base }
func (p *Pow) ExpExpr() Expr       { return p.exp }
func (p *Pow) IsApproximate() bool { return p.approx }
func (p *Pow) exprType() string    { return "pow" }
func (p *Pow) Equal(other Expr) bool {
	o, ok := other.(*Pow)
	return ok && p.base.Equal(o.base) && p.exp.Equal(o.exp)
}

func isAtom(e Expr) bool {
	switch v := e.(type) {
	case *Sym, *Unit, *Call, *Text, *Vector:
		return true
	case *Num:
		q, ok := v.val.Rat()
		return ok && q.IsInt() && q.Sign() >= 0
	}
	return false
}

func (p *Pow) String() string {
	baseStr := p.base.String()
	expStr := p.exp.String()
	if !isAtom(p.base) {
		baseStr = "(" + baseStr + ")"
	}
	if !isAtom(p.exp) {
		expStr = "(" + expStr + ")"
	}
	return baseStr + "^" + expStr
}

func (p *Pow) LaTeX() string {
	if n, ok := p.exp.(*Num); ok && n.val.Equal(number.Frac(1, 2)) {
		return "\\sqrt{" + p.base.LaTeX() + "}"
	}
	baseStr := p.base.LaTeX()
	if !isAtom(p.base) {
		baseStr = "\\left(" + baseStr + "\\right)"
	}
	return baseStr + "^{" + p.exp.LaTeX() + "}"
}

func (p *Pow) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "pow", "base": p.base.toJSON(), "exp": p.exp.toJSON()}
}

// ============================================================
// Vector
// ============================================================

type Vector struct {
	elems  []Expr
	approx bool
}

func VectorOf(elems ...Expr) *Vector {
	return &Vector{elems: elems, approx: anyApproximate(elems)}
}

func (v *Vector) Elems() []Expr       { return v.elems }
func (v *Vector) Len() int            { return len(v.elems) }
func (v *Vector) IsApproximate() bool { return v.approx }
func (v *Vector) exprType() string    { return "vector" }
func (v *Vector) Equal(other Expr) bool {
	o, ok := other.(*Vector)
	return ok && equalAll(v.elems, o.elems)
}

func (v *Vector) String() string {
	parts := make([]string, len(v.elems))
	for i, e := range v.elems {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (v *Vector) LaTeX() string {
	parts := make([]string, len(v.elems))
	for i, e := range v.elems {
		parts[i] = e.LaTeX()
	}
	return "\\begin{pmatrix}" + strings.Join(parts, " \\\\ ") + "\\end{pmatrix}"
}

func (v *Vector) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "vector", "elems": argsJSON(v.elems)}
}

func argsJSON(es []Expr) []interface{} {
	out := make([]interface{}, len(es))
	for i, e := range es {
		out[i] = e.toJSON()
	}
	return out
}
