// Package number is the numeric kernel behind the evaluator.
//
// A Number is an exact rational, or a decimal interval that is guaranteed to
// enclose the true value, optionally paired with an imaginary part of either
// kind, or one of the infinities. Every operation lives on Context and
// reports failure with a boolean instead of panicking; callers inspect
// IsApproximate, IsComplex and IsInfinite on the result to decide whether to
// accept it.
package number

import (
	"fmt"
	"math"
	"math/big"

	"github.com/cockroachdb/apd/v2"
)

// Infinity marks a number as infinite.
type Infinity int8

const (
	Finite Infinity = iota
	PlusInfinity
	MinusInfinity
	ComplexInfinity
)

// Number is an exact or approximate complex number. The zero value is exact
// zero.
type Number struct {
	re, im Real
	inf    Infinity
}

// ============================================================
// Constructors
// ============================================================

func Int(n int64) Number { return Number{re: exactReal(big.NewRat(n, 1))} }

func Frac(p, q int64) Number {
	if q == 0 {
		panic("number: denominator is zero")
	}
	return Number{re: exactReal(big.NewRat(p, q))}
}

// FromRat returns the exact value r. r is copied.
func FromRat(r *big.Rat) Number { return Number{re: exactReal(new(big.Rat).Set(r))} }

// FromInt returns the exact integer v. v is copied.
func FromInt(v *big.Int) Number { return Number{re: exactReal(new(big.Rat).SetInt(v))} }

// Complex combines the real parts of re and im into re + im·i.
func Complex(re, im Number) Number { return Number{re: re.re, im: im.re} }

// I is the imaginary unit.
func I() Number { return Number{im: exactReal(big.NewRat(1, 1))} }

func PosInf() Number     { return Number{inf: PlusInfinity} }
func NegInf() Number     { return Number{inf: MinusInfinity} }
func ComplexInf() Number { return Number{inf: ComplexInfinity} }

// Approx returns the decimal s as an approximate value with zero width.
func Approx(s string) (Number, error) {
	d, _, err := apd.NewFromString(s)
	if err != nil || d.Form != apd.Finite {
		return Number{}, fmt.Errorf("number: invalid decimal %q", s)
	}
	return Number{re: intervalReal(d, d)}, nil
}

// ApproxInterval returns an approximate value known to lie in [lo, hi].
func ApproxInterval(lo, hi string) (Number, error) {
	l, _, err := apd.NewFromString(lo)
	if err != nil || l.Form != apd.Finite {
		return Number{}, fmt.Errorf("number: invalid decimal %q", lo)
	}
	h, _, err := apd.NewFromString(hi)
	if err != nil || h.Form != apd.Finite {
		return Number{}, fmt.Errorf("number: invalid decimal %q", hi)
	}
	if l.Cmp(h) > 0 {
		return Number{}, fmt.Errorf("number: empty interval [%s, %s]", lo, hi)
	}
	return Number{re: intervalReal(l, h)}, nil
}

// ============================================================
// Queries
// ============================================================

func (n Number) Infinity() Infinity { return n.inf }

func (n Number) IsInfinite() bool { return n.inf != Finite }

// IsApproximate reports whether either part is an interval.
func (n Number) IsApproximate() bool { return !n.re.isExact() || !n.im.isExact() }

// IsComplex reports whether n may have a non-zero imaginary part.
func (n Number) IsComplex() bool {
	if n.inf == ComplexInfinity {
		return true
	}
	return n.inf == Finite && !n.im.isZero()
}

func (n Number) IsReal() bool { return n.inf != ComplexInfinity && !n.IsComplex() }

func (n Number) IsZero() bool { return n.inf == Finite && n.re.isZero() && n.im.isZero() }

func (n Number) IsExactZero() bool {
	return n.inf == Finite && n.re.isExactZero() && n.im.isExactZero()
}

func (n Number) IsOne() bool {
	r, ok := n.Rat()
	return ok && r.Cmp(big.NewRat(1, 1)) == 0
}

func (n Number) IsMinusOne() bool {
	r, ok := n.Rat()
	return ok && r.Cmp(big.NewRat(-1, 1)) == 0
}

func (n Number) IsPositive() bool {
	if !n.IsReal() {
		return false
	}
	switch n.inf {
	case PlusInfinity:
		return true
	case MinusInfinity:
		return false
	}
	s, ok := n.re.sign()
	return ok && s > 0
}

func (n Number) IsNegative() bool {
	if !n.IsReal() {
		return false
	}
	switch n.inf {
	case PlusInfinity:
		return false
	case MinusInfinity:
		return true
	}
	s, ok := n.re.sign()
	return ok && s < 0
}

func (n Number) IsNonNegative() bool {
	if !n.IsReal() {
		return false
	}
	switch n.inf {
	case PlusInfinity:
		return true
	case MinusInfinity:
		return false
	}
	return n.re.nonNegative()
}

func (n Number) IsNonPositive() bool {
	if !n.IsReal() {
		return false
	}
	switch n.inf {
	case PlusInfinity:
		return false
	case MinusInfinity:
		return true
	}
	return n.re.nonPositive()
}

// IsNonZero reports whether n is certainly not zero.
func (n Number) IsNonZero() bool {
	if n.inf != Finite {
		return true
	}
	if s, ok := n.re.sign(); ok && s != 0 {
		return true
	}
	s, ok := n.im.sign()
	return ok && s != 0
}

func (n Number) IsRational() bool {
	return n.inf == Finite && n.re.isExact() && n.im.isExactZero()
}

func (n Number) IsInteger() bool {
	r, ok := n.Rat()
	return ok && r.IsInt()
}

func (n Number) IsEven() bool {
	r, ok := n.Rat()
	return ok && r.IsInt() && r.Num().Bit(0) == 0
}

func (n Number) IsOdd() bool {
	r, ok := n.Rat()
	return ok && r.IsInt() && r.Num().Bit(0) == 1
}

// Rat returns a copy of the value when n is an exact real number.
func (n Number) Rat() (*big.Rat, bool) {
	if !n.IsRational() {
		return nil, false
	}
	return new(big.Rat).Set(n.re.ratVal()), true
}

// Real returns the real part of n.
func (n Number) Real() Number {
	switch n.inf {
	case PlusInfinity, MinusInfinity:
		return n
	case ComplexInfinity:
		return Number{inf: ComplexInfinity}
	}
	return Number{re: n.re}
}

// Imag returns the imaginary part of n as a real number.
func (n Number) Imag() Number {
	if n.inf == ComplexInfinity {
		return Number{inf: ComplexInfinity}
	}
	return Number{re: n.im}
}

// Interval returns the decimal endpoints of the real part. ok is false
// when the real part is exact or n is infinite.
func (n Number) Interval() (lo, hi string, ok bool) {
	if n.inf != Finite || n.re.isExact() {
		return "", "", false
	}
	return n.re.lo.String(), n.re.hi.String(), true
}

// Equal reports structural equality: exact values by value, intervals by
// their bounds.
func (n Number) Equal(m Number) bool {
	if n.inf != m.inf {
		return false
	}
	if n.inf != Finite {
		return true
	}
	return n.re.equal(m.re) && n.im.equal(m.im)
}

// Float64 returns the real part (the interval midpoint when approximate).
func (n Number) Float64() float64 {
	switch n.inf {
	case PlusInfinity:
		return math.Inf(1)
	case MinusInfinity:
		return math.Inf(-1)
	case ComplexInfinity:
		return math.NaN()
	}
	return n.re.float64()
}

// Complex128 returns n as a complex128. ok is false for infinities.
func (n Number) Complex128() (complex128, bool) {
	if n.inf != Finite {
		return 0, false
	}
	return complex(n.re.float64(), n.im.float64()), true
}
