package gocalc

import (
	"math/big"

	"github.com/njchilds90/gocalc/number"
)

// ============================================================
// bin, oct, hex, base, roman, bijective
// ============================================================

func (c *Context) textArg(e Expr, opts Options) (*Text, bool) {
	if t, ok := e.(*Text); ok {
		return t, true
	}
	t, ok := c.eval(e, opts).(*Text)
	return t, ok
}

func (c *Context) warnAll(warnings []string) {
	for _, w := range warnings {
		c.Warn("%s", w)
	}
}

// radixFn parses in a fixed base with one-case digits.
type radixFn struct{ base int64 }

func (f radixFn) id() FunctionID {
	switch f.base {
	case 2:
		return FnBin
	case 8:
		return FnOct
	}
	return FnHex
}

func (f radixFn) Calculate(c *Context, args []Expr, opts Options) (Expr, Status) {
	t, ok := c.textArg(args[0], opts)
	if !ok {
		return CallOf(f.id(), c.evalAll(args, opts)...), StatusUnhandled
	}
	v, warnings, err := ParseBase(t.s, big.NewRat(f.base, 1), Alphabet{Set: DigitsOneCase}, opts.Parse)
	c.warnAll(warnings)
	if err != nil {
		c.Error("%s(): %v", f.id(), err)
		return CallOf(f.id(), t), StatusUnhandled
	}
	return RatOf(v), StatusRewritten
}

func (radixFn) Represents(c *Context, p Property, args []Expr) bool {
	switch p {
	case PropNumber, PropReal, PropRational:
		return true
	}
	return false
}

// baseFn is base(text[, base[, digits]]). digits is a digit-set number
// (0 auto, 1 one-case, 2 two-case, 3 unicode, 4 bytes) or a vector of
// digit tokens. Without a base the parse options supply one.
type baseFn struct{}

func (baseFn) alphabet(e Expr) (Alphabet, bool) {
	switch v := e.(type) {
	case *Vector:
		tokens := make([]string, len(v.elems))
		for i, el := range v.elems {
			t, ok := el.(*Text)
			if !ok {
				return Alphabet{}, false
			}
			tokens[i] = t.s
		}
		return Alphabet{Set: DigitsCustom, Tokens: tokens}, true
	case *Num:
		q, ok := v.val.Rat()
		if !ok || !q.IsInt() || q.Sign() < 0 || q.Cmp(big.NewRat(int64(DigitsBytes), 1)) > 0 {
			return Alphabet{}, false
		}
		return Alphabet{Set: DigitSet(q.Num().Int64())}, true
	}
	return Alphabet{}, false
}

func (f baseFn) Calculate(c *Context, args []Expr, opts Options) (Expr, Status) {
	t, ok := c.textArg(args[0], opts)
	if !ok {
		return CallOf(FnBase, c.evalAll(args, opts)...), StatusUnhandled
	}
	var b Expr = N(opts.Parse.base())
	if len(args) > 1 {
		b = c.eval(args[1], opts)
	}
	evaluated := []Expr{t, b}
	alpha := Alphabet{}
	if len(args) > 2 {
		evaluated = append(evaluated, c.eval(args[2], opts))
		if alpha, ok = f.alphabet(evaluated[2]); !ok {
			c.Error("base(): invalid digit set %s", evaluated[2])
			return CallOf(FnBase, evaluated...), StatusUnhandled
		}
	}
	unhandled := CallOf(FnBase, evaluated...)

	if n, ok := b.(*Num); ok {
		if q, ok := n.val.Rat(); ok {
			v, warnings, err := ParseBase(t.s, q, alpha, opts.Parse)
			c.warnAll(warnings)
			if err != nil {
				c.Error("base(): %v", err)
				return unhandled, StatusUnhandled
			}
			return RatOf(v), StatusRewritten
		}
	}

	// Σ digit·b^k for a base that is not a rational number
	nb, ok := c.approxInput(b, opts)
	if !ok || !nb.val.IsReal() {
		return unhandled, StatusUnhandled
	}
	nc := opts.number()
	mag, ok := nc.Abs(nb.val)
	if !ok || !mag.IsPositive() {
		return unhandled, StatusUnhandled
	}
	if cmp, ok := nc.Cmp(mag, number.Int(1)); !ok || cmp <= 0 {
		c.Error("base(): %v", ErrBase)
		return unhandled, StatusUnhandled
	}
	ceil, ok := nc.Ceil(mag)
	if !ok {
		return unhandled, StatusUnhandled
	}
	q, ok := ceil.Rat()
	if !ok || !q.Num().IsInt64() {
		return unhandled, StatusUnhandled
	}
	d, warnings := scanDigits(t.s, alpha, opts.Parse, q.Num().Int64())
	c.warnAll(warnings)
	if d.empty() {
		c.Error("base(): %v in %q", ErrNoDigits, t.s)
		return unhandled, StatusUnhandled
	}
	return d.expr(b), StatusRewritten
}

func (baseFn) Represents(c *Context, p Property, args []Expr) bool {
	if len(args) < 2 {
		return p == PropNumber || p == PropReal || p == PropRational
	}
	switch p {
	case PropNumber, PropReal:
		return c.Represents(args[1], PropReal)
	case PropRational:
		return c.Represents(args[1], PropRational)
	}
	return false
}

type romanFn struct{}

func (romanFn) Calculate(c *Context, args []Expr, opts Options) (Expr, Status) {
	t, ok := c.textArg(args[0], opts)
	if !ok {
		return CallOf(FnRoman, c.evalAll(args, opts)...), StatusUnhandled
	}
	v, warnings, err := ParseRoman(t.s)
	c.warnAll(warnings)
	if err != nil {
		c.Error("roman(): %v", err)
		return CallOf(FnRoman, t), StatusUnhandled
	}
	return NumOf(number.FromInt(v)), StatusRewritten
}

func (romanFn) Represents(c *Context, p Property, args []Expr) bool {
	switch p {
	case PropNumber, PropReal, PropRational, PropInteger:
		return true
	}
	return false
}

type bijectiveFn struct{}

func (bijectiveFn) Calculate(c *Context, args []Expr, opts Options) (Expr, Status) {
	t, ok := c.textArg(args[0], opts)
	if !ok {
		return CallOf(FnBijective, c.evalAll(args, opts)...), StatusUnhandled
	}
	v, warnings, err := ParseBijective(t.s)
	c.warnAll(warnings)
	if err != nil {
		c.Error("bijective(): %v", err)
		return CallOf(FnBijective, t), StatusUnhandled
	}
	return NumOf(number.FromInt(v)), StatusRewritten
}

func (bijectiveFn) Represents(c *Context, p Property, args []Expr) bool {
	switch p {
	case PropNumber, PropReal, PropRational, PropInteger, PropPositive, PropNonNegative, PropNonZero:
		return true
	}
	return false
}
