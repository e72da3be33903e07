package gocalc

import (
	"math/big"
	"sort"
)

// FunctionID identifies a built-in function.
type FunctionID uint8

const (
	FnInvalid FunctionID = iota
	FnSin
	FnCos
	FnTan
	FnAsin
	FnAcos
	FnAtan
	FnAtan2
	FnSinh
	FnCosh
	FnTanh
	FnAsinh
	FnAcosh
	FnAtanh
	FnExp
	FnLn
	FnSqrt
	FnAbs
	FnSignum
	FnFloor
	FnCeil
	FnRound
	FnTrunc
	FnFrac
	FnRe
	FnIm
	FnArg
	FnConj
	FnGcd
	FnLcm
	FnRem
	FnMod
	FnNumerator
	FnDenominator
	FnBin
	FnOct
	FnHex
	FnBase
	FnRoman
	FnBijective
	fnCount
)

var functionNames = [fnCount]string{
	FnInvalid: "invalid",
	FnSin:     "sin", FnCos: "cos", FnTan: "tan",
	FnAsin: "asin", FnAcos: "acos", FnAtan: "atan", FnAtan2: "atan2",
	FnSinh: "sinh", FnCosh: "cosh", FnTanh: "tanh",
	FnAsinh: "asinh", FnAcosh: "acosh", FnAtanh: "atanh",
	FnExp: "exp", FnLn: "ln", FnSqrt: "sqrt",
	FnAbs: "abs", FnSignum: "signum",
	FnFloor: "floor", FnCeil: "ceil", FnRound: "round", FnTrunc: "trunc", FnFrac: "frac",
	FnRe: "re", FnIm: "im", FnArg: "arg", FnConj: "conj",
	FnGcd: "gcd", FnLcm: "lcm", FnRem: "rem", FnMod: "mod",
	FnNumerator: "numerator", FnDenominator: "denominator",
	FnBin: "bin", FnOct: "oct", FnHex: "hex", FnBase: "base",
	FnRoman: "roman", FnBijective: "bijective",
}

func (id FunctionID) String() string {
	if id >= fnCount {
		return "invalid"
	}
	return functionNames[id]
}

// FunctionByName looks up a built-in function.
func FunctionByName(name string) (FunctionID, bool) {
	for id := FnInvalid + 1; id < fnCount; id++ {
		if functionNames[id] == name {
			return id, true
		}
	}
	return FnInvalid, false
}

// FunctionNames lists every built-in function, sorted.
func FunctionNames() []string {
	out := make([]string, 0, fnCount-1)
	for id := FnInvalid + 1; id < fnCount; id++ {
		out = append(out, functionNames[id])
	}
	sort.Strings(out)
	return out
}

// ============================================================
// Evaluator contract
// ============================================================

// Status is the outcome of one Calculate call.
type Status uint8

const (
	// StatusRewritten means the returned expression replaces the call and is
	// evaluated again under the same options.
	StatusRewritten Status = iota
	// StatusUnhandled means no rule applied; the returned expression is the
	// call with its arguments evaluated.
	StatusUnhandled
	// StatusNotApplicable means an argument had a shape the evaluator does
	// not take, such as a vector; the dispatcher applies the function
	// element-wise instead.
	StatusNotApplicable
	// StatusDeferredVector means the evaluator repackaged itself over a
	// vector; the returned vector is evaluated again.
	StatusDeferredVector
	// StatusAborted means evaluation was cancelled.
	StatusAborted
)

func (s Status) String() string {
	switch s {
	case StatusRewritten:
		return "rewritten"
	case StatusUnhandled:
		return "unhandled"
	case StatusNotApplicable:
		return "not_applicable"
	case StatusDeferredVector:
		return "deferred_vector"
	}
	return "aborted"
}

// Evaluator implements one built-in function. Arguments are passed
// unevaluated; each evaluator evaluates them in the mode its rules need.
// Represents must never claim a property a successful Calculate could
// contradict.
type Evaluator interface {
	Calculate(c *Context, args []Expr, opts Options) (Expr, Status)
	Represents(c *Context, p Property, args []Expr) bool
}

// ============================================================
// Argument validation
// ============================================================

// ArgKind is the broad kind of value an argument must be.
type ArgKind uint8

const (
	ArgAny ArgKind = iota
	ArgNumber
	ArgInteger
	ArgText
)

// ArgSpec describes one argument. Test only rejects arguments that are
// certainly invalid: numbers outside the declared set and literals of the
// wrong kind.
type ArgSpec struct {
	Kind         ArgKind
	RationalOnly bool
	RealOnly     bool
	NonZero      bool
	Min          *big.Rat // inclusive lower bound on number literals
	// Vector marks an argument that takes vectors as a whole; otherwise a
	// vector argument makes the call apply element-wise.
	Vector bool
}

// Test reports whether e is acceptable for the argument.
func (a ArgSpec) Test(e Expr) bool {
	switch v := e.(type) {
	case *Text:
		return a.Kind == ArgText || a.Kind == ArgAny
	case *Unit:
		return a.Kind == ArgAny
	case *Num:
		if a.Kind == ArgText {
			return false
		}
		val := v.val
		if val.IsInfinite() && a.Kind != ArgAny {
			return false
		}
		if a.Kind == ArgInteger && !val.IsInteger() && !val.IsApproximate() {
			return false
		}
		if a.RationalOnly && !val.IsRational() {
			return false
		}
		if a.RealOnly && val.IsComplex() {
			return false
		}
		if a.NonZero && val.IsExactZero() {
			return false
		}
		if a.Min != nil {
			if q, ok := val.Rat(); ok && q.Cmp(a.Min) < 0 {
				return false
			}
		}
	}
	return true
}

// ============================================================
// Function table
// ============================================================

// Function binds an evaluator to its name, arity and argument specs.
type Function struct {
	ID      FunctionID
	MinArgs int
	MaxArgs int // -1: unbounded
	Args    []ArgSpec
	Evaluator
}

// arg returns the spec of argument i; the last spec repeats.
func (f *Function) arg(i int) ArgSpec {
	if len(f.Args) == 0 {
		return ArgSpec{}
	}
	if i >= len(f.Args) {
		return f.Args[len(f.Args)-1]
	}
	return f.Args[i]
}

var builtins [fnCount]*Function

func register(id FunctionID, minArgs, maxArgs int, ev Evaluator, args ...ArgSpec) {
	builtins[id] = &Function{ID: id, MinArgs: minArgs, MaxArgs: maxArgs, Args: args, Evaluator: ev}
}

// Lookup returns the descriptor of a built-in function.
func Lookup(id FunctionID) (*Function, bool) {
	if id >= fnCount || builtins[id] == nil {
		return nil, false
	}
	return builtins[id], true
}

var (
	numberArg   = ArgSpec{Kind: ArgNumber}
	realArg     = ArgSpec{Kind: ArgNumber, RealOnly: true}
	rationalArg = ArgSpec{Kind: ArgNumber, RationalOnly: true}
	textArg     = ArgSpec{Kind: ArgText}
)

func init() {
	for _, t := range circularTable {
		register(t.id, 1, 1, t, numberArg)
	}
	register(FnAtan2, 2, 2, atan2Fn{}, realArg, realArg)

	register(FnExp, 1, 1, expFn{}, numberArg)
	register(FnLn, 1, 1, lnFn{}, numberArg)
	register(FnSqrt, 1, 1, sqrtFn{}, numberArg)

	register(FnAbs, 1, 1, absFn{}, numberArg)
	register(FnSignum, 1, 2, signumFn{}, numberArg, ArgSpec{})
	for _, id := range []FunctionID{FnFloor, FnCeil, FnRound, FnTrunc, FnFrac} {
		register(id, 1, 1, roundingFn{id: id}, numberArg)
	}

	register(FnRe, 1, 1, reImFn{imag: false}, numberArg)
	register(FnIm, 1, 1, reImFn{imag: true}, numberArg)
	register(FnArg, 1, 1, argFn{}, numberArg)
	register(FnConj, 1, 1, conjFn{}, numberArg)

	register(FnGcd, 2, 2, gcdFn{lcm: false}, rationalArg)
	register(FnLcm, 2, 2, gcdFn{lcm: true}, rationalArg)
	register(FnRem, 2, 2, remFn{floored: false}, rationalArg, ArgSpec{Kind: ArgNumber, RationalOnly: true, NonZero: true})
	register(FnMod, 2, 2, remFn{floored: true}, rationalArg, ArgSpec{Kind: ArgNumber, RationalOnly: true, NonZero: true})
	register(FnNumerator, 1, 1, fractionPartFn{denominator: false}, rationalArg)
	register(FnDenominator, 1, 1, fractionPartFn{denominator: true}, rationalArg)

	register(FnBin, 1, 1, radixFn{base: 2}, textArg)
	register(FnOct, 1, 1, radixFn{base: 8}, textArg)
	register(FnHex, 1, 1, radixFn{base: 16}, textArg)
	register(FnBase, 1, 3, baseFn{}, textArg, numberArg, ArgSpec{Vector: true})
	register(FnRoman, 1, 1, romanFn{}, textArg)
	register(FnBijective, 1, 1, bijectiveFn{}, textArg)
}
