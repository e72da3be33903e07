package number

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/cockroachdb/apd/v2"
)

// Parse reads an exact number. It accepts integers, decimals, fractions
// and exponents ("12", "-0.25", "3/4", "1e-3"), optionally followed by i to
// mark an imaginary value ("2i", "-i").
func Parse(s string) (Number, error) {
	t := strings.TrimSpace(s)
	imag := strings.HasSuffix(t, "i")
	if imag {
		t = strings.TrimSpace(strings.TrimSuffix(t, "i"))
		switch t {
		case "", "+":
			t = "1"
		case "-":
			t = "-1"
		}
	}
	q, ok := new(big.Rat).SetString(t)
	if !ok {
		return Number{}, fmt.Errorf("number: invalid value %q", s)
	}
	if imag {
		return Number{im: exactReal(q)}, nil
	}
	return Number{re: exactReal(q)}, nil
}

// String prints exact values as integers or fractions and intervals with
// the digits they are certain of.
func (n Number) String() string { return n.Format(DefaultPrecision) }

// Format is String with at most digits significant digits for intervals.
func (n Number) Format(digits uint32) string {
	switch n.inf {
	case PlusInfinity:
		return "∞"
	case MinusInfinity:
		return "-∞"
	case ComplexInfinity:
		return "complex ∞"
	}
	if n.im.isExactZero() {
		return realString(n.re, digits)
	}
	im := realString(absReal(n.im), digits)
	switch {
	case im == "1":
		im = "i"
	case strings.ContainsAny(im, "/E"):
		im = "(" + im + ")i"
	default:
		im += "i"
	}
	negIm := n.im.nonPositive()
	if n.re.isExactZero() {
		if negIm {
			return "-" + im
		}
		return im
	}
	op := " + "
	if negIm {
		op = " - "
	}
	return realString(n.re, digits) + op + im
}

func realString(r Real, digits uint32) string {
	if r.isExact() {
		q := r.ratVal()
		if q.IsInt() {
			return q.Num().String()
		}
		return q.RatString()
	}
	return intervalString(r.lo, r.hi, digits)
}

func intervalString(lo, hi *apd.Decimal, digits uint32) string {
	ctx := nearCtx(decimalDigits(lo) + decimalDigits(hi) + 2)
	mid, width := new(apd.Decimal), new(apd.Decimal)
	_, _ = ctx.Add(mid, lo, hi)
	_, _ = ctx.Quo(mid, mid, two)
	_, _ = ctx.Sub(width, hi, lo)
	n := int64(digits)
	if !width.IsZero() {
		if lo.Sign() <= 0 && hi.Sign() >= 0 {
			return "0"
		}
		if d := adjusted(mid) - adjusted(width); d < n {
			n = d
		}
		if n < 1 {
			n = 1
		}
	}
	out := new(apd.Decimal)
	_, _ = nearCtx(uint32(n)).Round(out, mid)
	s := out.String()
	if strings.Contains(s, ".") && !strings.ContainsAny(s, "Ee") {
		s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	}
	return s
}
