package gocalc

import "github.com/njchilds90/gocalc/number"

// Property is a static fact an expression may be proven to have. A false
// answer means "not proven", never "proven false".
type Property uint8

const (
	PropNumber Property = iota
	PropReal
	PropRational
	PropInteger
	PropEven
	PropOdd
	PropPositive
	PropNegative
	PropNonNegative
	PropNonPositive
	PropNonZero
	propCount
)

var propertyNames = [propCount]string{
	PropNumber: "number", PropReal: "real", PropRational: "rational", PropInteger: "integer",
	PropEven: "even", PropOdd: "odd", PropPositive: "positive", PropNegative: "negative",
	PropNonNegative: "nonnegative", PropNonPositive: "nonpositive", PropNonZero: "nonzero",
}

func (p Property) String() string {
	if p >= propCount {
		return "invalid"
	}
	return propertyNames[p]
}

// PropertyByName looks up a property by its String form.
func PropertyByName(name string) (Property, bool) {
	for p := Property(0); p < propCount; p++ {
		if propertyNames[p] == name {
			return p, true
		}
	}
	return 0, false
}

// Represents reports whether e provably has property p.
func (c *Context) Represents(e Expr, p Property) bool {
	switch v := e.(type) {
	case *Num:
		return numberHas(v.val, p)
	case *Sym:
		return c.symHas(v, p)
	case *Add:
		return c.addHas(v.terms, p)
	case *Mul:
		return c.mulHas(v.factors, p)
	case *Pow:
		return c.powHas(v.base, v.exp, p)
	case *Call:
		f, ok := Lookup(v.fn)
		if !ok || len(v.args) < f.MinArgs || (f.MaxArgs >= 0 && len(v.args) > f.MaxArgs) {
			return false
		}
		return f.Represents(c, p, v.args)
	}
	return false
}

func (c *Context) RepresentsPositive(e Expr) bool    { return c.Represents(e, PropPositive) }
func (c *Context) RepresentsNegative(e Expr) bool    { return c.Represents(e, PropNegative) }
func (c *Context) RepresentsNonNegative(e Expr) bool { return c.Represents(e, PropNonNegative) }
func (c *Context) RepresentsNonPositive(e Expr) bool { return c.Represents(e, PropNonPositive) }
func (c *Context) RepresentsNonZero(e Expr) bool     { return c.Represents(e, PropNonZero) }
func (c *Context) RepresentsInteger(e Expr) bool     { return c.Represents(e, PropInteger) }
func (c *Context) RepresentsRational(e Expr) bool    { return c.Represents(e, PropRational) }
func (c *Context) RepresentsReal(e Expr) bool        { return c.Represents(e, PropReal) }
func (c *Context) RepresentsNumber(e Expr) bool      { return c.Represents(e, PropNumber) }
func (c *Context) RepresentsEven(e Expr) bool        { return c.Represents(e, PropEven) }
func (c *Context) RepresentsOdd(e Expr) bool         { return c.Represents(e, PropOdd) }

func numberHas(n number.Number, p Property) bool {
	switch p {
	case PropNumber:
		return !n.IsInfinite()
	case PropReal:
		return !n.IsInfinite() && n.IsReal()
	case PropRational:
		return n.IsRational()
	case PropInteger:
		return n.IsInteger()
	case PropEven:
		return n.IsEven()
	case PropOdd:
		return n.IsOdd()
	case PropPositive:
		return !n.IsInfinite() && n.IsPositive()
	case PropNegative:
		return !n.IsInfinite() && n.IsNegative()
	case PropNonNegative:
		return !n.IsInfinite() && n.IsNonNegative()
	case PropNonPositive:
		return !n.IsInfinite() && n.IsNonPositive()
	case PropNonZero:
		return !n.IsInfinite() && n.IsNonZero()
	}
	return false
}

func (c *Context) symHas(s *Sym, p Property) bool {
	if !s.constant {
		if v, ok := c.vars[s.name]; ok {
			return c.Represents(v, p)
		}
	}
	a := s.assume
	isReal := a.Type >= TypeReal || a.Sign != SignUnknown && a.Sign != SignNonZero
	switch p {
	case PropNumber:
		return true
	case PropReal:
		return isReal
	case PropRational:
		return a.Type >= TypeRational
	case PropInteger:
		return a.Type >= TypeInteger
	case PropPositive:
		return a.Sign == SignPositive
	case PropNegative:
		return a.Sign == SignNegative
	case PropNonNegative:
		return a.Sign == SignPositive || a.Sign == SignNonNegative
	case PropNonPositive:
		return a.Sign == SignNegative || a.Sign == SignNonPositive
	case PropNonZero:
		return a.Sign == SignPositive || a.Sign == SignNegative || a.Sign == SignNonZero
	}
	return false
}

func (c *Context) all(es []Expr, p Property) bool {
	for _, e := range es {
		if !c.Represents(e, p) {
			return false
		}
	}
	return true
}

func (c *Context) some(es []Expr, p Property) bool {
	for _, e := range es {
		if c.Represents(e, p) {
			return true
		}
	}
	return false
}

func (c *Context) addHas(terms []Expr, p Property) bool {
	switch p {
	case PropNumber, PropReal, PropRational, PropInteger:
		return c.all(terms, p)
	case PropEven:
		return c.all(terms, PropEven)
	case PropOdd:
		odd := 0
		for _, t := range terms {
			switch {
			case c.Represents(t, PropOdd):
				odd++
			case !c.Represents(t, PropEven):
				return false
			}
		}
		return odd%2 == 1
	case PropPositive:
		return c.all(terms, PropNonNegative) && c.some(terms, PropPositive)
	case PropNegative:
		return c.all(terms, PropNonPositive) && c.some(terms, PropNegative)
	case PropNonNegative, PropNonPositive:
		return c.all(terms, p)
	case PropNonZero:
		return c.addHas(terms, PropPositive) || c.addHas(terms, PropNegative)
	}
	return false
}

// signClass is what is known about the sign of a real factor.
type signClass uint8

const (
	signUnknown signClass = iota
	signPos
	signNeg
	signNonNeg
	signNonPos
)

func (c *Context) signOf(e Expr) signClass {
	switch {
	case !c.Represents(e, PropReal):
		return signUnknown
	case c.Represents(e, PropPositive):
		return signPos
	case c.Represents(e, PropNegative):
		return signNeg
	case c.Represents(e, PropNonNegative):
		return signNonNeg
	case c.Represents(e, PropNonPositive):
		return signNonPos
	}
	return signUnknown
}

func (c *Context) mulHas(factors []Expr, p Property) bool {
	switch p {
	case PropNumber, PropReal, PropRational, PropInteger:
		return c.all(factors, p)
	case PropEven:
		return c.all(factors, PropInteger) && c.some(factors, PropEven)
	case PropOdd:
		return c.all(factors, PropOdd)
	case PropNonZero:
		return c.all(factors, PropNonZero) && c.all(factors, PropNumber)
	}
	negatives, strict := 0, true
	for _, f := range factors {
		switch c.signOf(f) {
		case signUnknown:
			return false
		case signNeg:
			negatives++
		case signNonPos:
			negatives++
			strict = false
		case signNonNeg:
			strict = false
		}
	}
	even := negatives%2 == 0
	switch p {
	case PropPositive:
		return strict && even
	case PropNegative:
		return strict && !even
	case PropNonNegative:
		return even
	case PropNonPositive:
		return !even
	}
	return false
}

func (c *Context) powHas(base, exp Expr, p Property) bool {
	intExp := c.Represents(exp, PropInteger)
	nonNegIntExp := intExp && c.Represents(exp, PropNonNegative)
	evenExp := c.Represents(exp, PropEven)
	baseNonZero := c.Represents(base, PropNonZero)
	defined := baseNonZero || c.Represents(exp, PropPositive)
	switch p {
	case PropNumber:
		return defined && c.Represents(base, PropNumber) && c.Represents(exp, PropNumber)
	case PropReal:
		if !defined || !c.Represents(base, PropReal) {
			return false
		}
		return intExp || c.Represents(base, PropPositive) && c.Represents(exp, PropReal)
	case PropRational:
		return defined && intExp && c.Represents(base, PropRational)
	case PropInteger:
		return nonNegIntExp && c.Represents(base, PropInteger)
	case PropEven:
		return nonNegIntExp && c.Represents(exp, PropPositive) && c.Represents(base, PropEven)
	case PropOdd:
		return nonNegIntExp && c.Represents(base, PropOdd)
	case PropPositive:
		if c.Represents(base, PropPositive) && c.Represents(exp, PropReal) {
			return true
		}
		return evenExp && baseNonZero && c.Represents(base, PropReal)
	case PropNonNegative:
		if c.powHas(base, exp, PropPositive) {
			return true
		}
		if evenExp && c.Represents(exp, PropNonNegative) && c.Represents(base, PropReal) {
			return true
		}
		return c.Represents(base, PropNonNegative) && c.Represents(exp, PropPositive) && c.Represents(exp, PropReal)
	case PropNegative:
		return c.Represents(base, PropNegative) && c.Represents(exp, PropOdd)
	case PropNonPositive:
		return c.Represents(base, PropNonPositive) && c.Represents(exp, PropOdd) && c.Represents(exp, PropPositive)
	case PropNonZero:
		return baseNonZero && c.Represents(base, PropNumber) && c.Represents(exp, PropNumber)
	}
	return false
}
