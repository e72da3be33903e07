package gocalc

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ============================================================
// Digit alphabets
// ============================================================

// DigitSet selects how digit text maps to digit values.
type DigitSet uint8

const (
	// DigitsAuto is DigitsOneCase up to base 36, DigitsTwoCase above.
	DigitsAuto DigitSet = iota
	// DigitsOneCase reads 0-9 then a-z case-insensitively (a = 10).
	DigitsOneCase
	// DigitsTwoCase reads 0-9, A-Z (10-35) and a-z (36-61).
	DigitsTwoCase
	// DigitsUnicode reads every code point as a digit with its own value.
	DigitsUnicode
	// DigitsBytes reads every byte as a digit; \xNN and \\ are escapes.
	DigitsBytes
	// DigitsCustom reads the tokens of an Alphabet, longest match first.
	DigitsCustom
)

func (d DigitSet) String() string {
	switch d {
	case DigitsOneCase:
		return "one_case"
	case DigitsTwoCase:
		return "two_case"
	case DigitsUnicode:
		return "unicode"
	case DigitsBytes:
		return "bytes"
	case DigitsCustom:
		return "custom"
	}
	return "auto"
}

// Alphabet is a digit set; for DigitsCustom, Tokens[i] is the digit with
// value i.
type Alphabet struct {
	Set    DigitSet
	Tokens []string
}

var (
	// ErrNoDigits is returned when a digit string holds no digit.
	ErrNoDigits = errors.New("gocalc: no digits")
	// ErrBase is returned for a base that cannot carry digits.
	ErrBase = errors.New("gocalc: invalid base")
)

// resolve picks the concrete digit set for a base whose digits must stay
// below limit.
func (a Alphabet) resolve(limit int64) DigitSet {
	if a.Set != DigitsAuto {
		return a.Set
	}
	if limit > 36 {
		return DigitsTwoCase
	}
	return DigitsOneCase
}

func alnumValue(r rune, set DigitSet) (int64, bool) {
	switch {
	case r >= '0' && r <= '9':
		return int64(r - '0'), true
	case r >= 'A' && r <= 'Z':
		return int64(r-'A') + 10, true
	case r >= 'a' && r <= 'z':
		if set == DigitsTwoCase {
			return int64(r-'a') + 36, true
		}
		return int64(r-'a') + 10, true
	}
	return 0, false
}

// digitString is a scanned digit string: sign, integer and fraction digits,
// most significant first.
type digitString struct {
	negative  bool
	intDigits []int64
	fracDigit []int64
}

func (d digitString) empty() bool { return len(d.intDigits) == 0 && len(d.fracDigit) == 0 }

// rat returns Σ digit·b^k.
func (d digitString) rat(b *big.Rat) *big.Rat {
	v := new(big.Rat)
	for _, x := range d.intDigits {
		v.Mul(v, b)
		v.Add(v, big.NewRat(x, 1))
	}
	f := new(big.Rat)
	for i := len(d.fracDigit) - 1; i >= 0; i-- {
		f.Add(f, big.NewRat(d.fracDigit[i], 1))
		f.Quo(f, b)
	}
	v.Add(v, f)
	if d.negative {
		v.Neg(v)
	}
	return v
}

// expr returns Σ digit·b^k unevaluated, for bases that are not rational.
func (d digitString) expr(b Expr) Expr {
	var terms []Expr
	n := len(d.intDigits)
	add := func(x int64, k int) {
		if x != 0 {
			terms = append(terms, MulOf(N(x), PowOf(b, N(int64(k)))))
		}
	}
	for i, x := range d.intDigits {
		add(x, n-1-i)
	}
	for i, x := range d.fracDigit {
		add(x, -(i + 1))
	}
	sum := AddOf(terms...)
	if d.negative {
		return Neg(sum)
	}
	return sum
}

// scanner reads one digit string, collecting warnings for what it skips.
type scanner struct {
	s        string
	set      DigitSet
	tokens   []string
	point    string
	limit    int64 // digits must be below limit; 0 for no limit
	out      digitString
	warnings []string
	seenSign bool
	seenPt   bool
}

func (sc *scanner) warn(format string, args ...interface{}) {
	sc.warnings = append(sc.warnings, fmt.Sprintf(format, args...))
}

func (sc *scanner) digit(v int64, text string) {
	if sc.limit > 0 && v >= sc.limit {
		sc.warn("digit %q is too large for the base and was ignored", text)
		return
	}
	if sc.seenPt {
		sc.out.fracDigit = append(sc.out.fracDigit, v)
	} else {
		sc.out.intDigits = append(sc.out.intDigits, v)
	}
}

// token returns the longest custom digit at the start of s.
func (sc *scanner) token(s string) (int64, int) {
	best, n := int64(-1), 0
	for i, t := range sc.tokens {
		if t != "" && len(t) > n && strings.HasPrefix(s, t) {
			best, n = int64(i), len(t)
		}
	}
	return best, n
}

// signOrPoint consumes a leading sign or the radix point.
func (sc *scanner) signOrPoint(rest string) int {
	if sc.point != "" && !sc.seenPt && strings.HasPrefix(rest, sc.point) {
		sc.seenPt = true
		return len(sc.point)
	}
	if sc.seenSign || !sc.out.empty() || sc.seenPt {
		return 0
	}
	for _, sign := range []string{"+", "-", "−"} {
		if strings.HasPrefix(rest, sign) {
			sc.seenSign = true
			sc.out.negative = sign != "+"
			return len(sign)
		}
	}
	return 0
}

func (sc *scanner) scan() {
	switch sc.set {
	case DigitsBytes:
		sc.scanBytes()
		return
	case DigitsUnicode:
		for _, r := range sc.s {
			sc.digit(int64(r), string(r))
		}
		return
	}
	for i := 0; i < len(sc.s); {
		rest := sc.s[i:]
		if sc.set == DigitsCustom {
			if v, n := sc.token(rest); n > 0 {
				sc.digit(v, rest[:n])
				i += n
				continue
			}
		}
		if n := sc.signOrPoint(rest); n > 0 {
			i += n
			continue
		}
		r, size := utf8.DecodeRuneInString(rest)
		i += size
		if unicode.IsSpace(r) {
			continue
		}
		if sc.set != DigitsCustom {
			if v, ok := alnumValue(r, sc.set); ok {
				sc.digit(v, string(r))
				continue
			}
		}
		sc.warn("ignored character %q", string(r))
	}
}

func (sc *scanner) scanBytes() {
	s := sc.s
	for i := 0; i < len(s); {
		if s[i] == '\\' && i+1 < len(s) {
			switch {
			case s[i+1] == '\\':
				sc.digit('\\', `\\`)
				i += 2
				continue
			case s[i+1] == 'x' && i+4 <= len(s):
				if v, err := strconv.ParseUint(s[i+2:i+4], 16, 8); err == nil {
					sc.digit(int64(v), s[i:i+4])
					i += 4
					continue
				}
			}
		}
		sc.digit(int64(s[i]), s[i:i+1])
		i++
	}
}

// limitFor is the digit bound ceil(|b|) of a rational base.
func limitFor(b *big.Rat) int64 {
	a := new(big.Rat).Abs(b)
	q, r := new(big.Int).QuoRem(a.Num(), a.Denom(), new(big.Int))
	if r.Sign() != 0 {
		q.Add(q, big.NewInt(1))
	}
	if !q.IsInt64() {
		return 0
	}
	return q.Int64()
}

func scanDigits(s string, alpha Alphabet, po ParseOptions, limit int64) (digitString, []string) {
	sc := &scanner{s: s, set: alpha.resolve(limit), tokens: alpha.Tokens, point: po.decimalPoint(), limit: limit}
	sc.scan()
	return sc.out, sc.warnings
}

// ParseBase reads s as a number in base b (|b| > 1, possibly negative or
// fractional). Skipped characters are reported as warnings.
func ParseBase(s string, b *big.Rat, alpha Alphabet, po ParseOptions) (*big.Rat, []string, error) {
	if new(big.Rat).Abs(b).Cmp(big.NewRat(1, 1)) <= 0 {
		return nil, nil, fmt.Errorf("%w: %s", ErrBase, b.RatString())
	}
	if alpha.Set == DigitsCustom && len(alpha.Tokens) == 0 {
		return nil, nil, fmt.Errorf("%w: empty digit list", ErrBase)
	}
	d, warnings := scanDigits(s, alpha, po, limitFor(b))
	if d.empty() {
		return nil, warnings, fmt.Errorf("%w in %q", ErrNoDigits, s)
	}
	return d.rat(b), warnings, nil
}

// ============================================================
// Rendering
// ============================================================

func digitText(v int64, set DigitSet, tokens []string) string {
	switch set {
	case DigitsCustom:
		return tokens[v]
	case DigitsUnicode:
		return string(rune(v))
	case DigitsBytes:
		switch {
		case v == '\\':
			return `\\`
		case v >= 0x20 && v < 0x7f:
			return string(rune(v))
		}
		return fmt.Sprintf(`\x%02x`, v)
	case DigitsTwoCase:
		switch {
		case v < 10:
			return string(rune('0' + v))
		case v < 36:
			return string(rune('A' + v - 10))
		}
		return string(rune('a' + v - 36))
	}
	if v < 10 {
		return string(rune('0' + v))
	}
	return string(rune('A' + v - 10))
}

// FormatBase renders v in the integer base b with at most maxFrac
// fraction digits; it is the inverse of ParseBase for terminating values.
func FormatBase(v *big.Rat, b int64, alpha Alphabet, po ParseOptions, maxFrac int) (string, error) {
	set := alpha.resolve(b)
	most := map[DigitSet]int64{DigitsOneCase: 36, DigitsTwoCase: 62, DigitsBytes: 256, DigitsUnicode: unicode.MaxRune + 1}[set]
	if set == DigitsCustom {
		most = int64(len(alpha.Tokens))
	}
	if b < 2 || b > most {
		return "", fmt.Errorf("%w: %d for %s digits", ErrBase, b, set)
	}
	var sb strings.Builder
	a := new(big.Rat).Abs(v)
	if v.Sign() < 0 {
		sb.WriteString("-")
	}
	bb := big.NewInt(b)
	ip := new(big.Int).Quo(a.Num(), a.Denom())
	var digits []int64
	for ip.Sign() > 0 {
		var r big.Int
		ip.QuoRem(ip, bb, &r)
		digits = append(digits, r.Int64())
	}
	if len(digits) == 0 {
		digits = []int64{0}
	}
	for i := len(digits) - 1; i >= 0; i-- {
		sb.WriteString(digitText(digits[i], set, alpha.Tokens))
	}
	frac := new(big.Rat).Sub(a, new(big.Rat).SetInt(new(big.Int).Quo(a.Num(), a.Denom())))
	if frac.Sign() > 0 && maxFrac > 0 {
		sb.WriteString(po.decimalPoint())
		br := new(big.Rat).SetInt(bb)
		for i := 0; i < maxFrac && frac.Sign() > 0; i++ {
			frac.Mul(frac, br)
			d := new(big.Int).Quo(frac.Num(), frac.Denom())
			sb.WriteString(digitText(d.Int64(), set, alpha.Tokens))
			frac.Sub(frac, new(big.Rat).SetInt(d))
		}
	}
	return sb.String(), nil
}

// ============================================================
// Roman numerals and bijective base-26
// ============================================================

var romanValues = map[rune]int64{'I': 1, 'V': 5, 'X': 10, 'L': 50, 'C': 100, 'D': 500, 'M': 1000}

// ParseRoman reads a roman numeral with subtractive pairs (IV, XC, ...).
func ParseRoman(s string) (*big.Int, []string, error) {
	var vals []int64
	var warnings []string
	negative := false
	for i, r := range strings.TrimSpace(s) {
		if i == 0 && (r == '-' || r == '−') {
			negative = true
			continue
		}
		v, ok := romanValues[unicode.ToUpper(r)]
		if !ok {
			warnings = append(warnings, fmt.Sprintf("ignored character %q", string(r)))
			continue
		}
		vals = append(vals, v)
	}
	if len(vals) == 0 {
		return nil, warnings, fmt.Errorf("%w in %q", ErrNoDigits, s)
	}
	total := new(big.Int)
	for i, v := range vals {
		if i+1 < len(vals) && vals[i+1] > v {
			total.Sub(total, big.NewInt(v))
		} else {
			total.Add(total, big.NewInt(v))
		}
	}
	if negative {
		total.Neg(total)
	}
	return total, warnings, nil
}

var romanPairs = []struct {
	v int64
	s string
}{
	{1000, "M"}, {900, "CM"}, {500, "D"}, {400, "CD"}, {100, "C"}, {90, "XC"},
	{50, "L"}, {40, "XL"}, {10, "X"}, {9, "IX"}, {5, "V"}, {4, "IV"}, {1, "I"},
}

// FormatRoman renders a nonzero integer; thousands repeat M.
func FormatRoman(n int64) (string, error) {
	if n == 0 {
		return "", fmt.Errorf("%w: zero has no roman numeral", ErrBase)
	}
	var sb strings.Builder
	if n < 0 {
		sb.WriteString("-")
		n = -n
	}
	for _, p := range romanPairs {
		for n >= p.v {
			sb.WriteString(p.s)
			n -= p.v
		}
	}
	return sb.String(), nil
}

// ParseBijective reads bijective base-26: A = 1 ... Z = 26, AA = 27.
func ParseBijective(s string) (*big.Int, []string, error) {
	total := new(big.Int)
	var warnings []string
	digits := 0
	for _, r := range s {
		u := unicode.ToUpper(r)
		if u < 'A' || u > 'Z' {
			if !unicode.IsSpace(r) {
				warnings = append(warnings, fmt.Sprintf("ignored character %q", string(r)))
			}
			continue
		}
		total.Mul(total, big.NewInt(26))
		total.Add(total, big.NewInt(int64(u-'A')+1))
		digits++
	}
	if digits == 0 {
		return nil, warnings, fmt.Errorf("%w in %q", ErrNoDigits, s)
	}
	return total, warnings, nil
}

// FormatBijective renders n ≥ 1 in bijective base-26.
func FormatBijective(n int64) (string, error) {
	if n < 1 {
		return "", fmt.Errorf("%w: %d has no bijective form", ErrBase, n)
	}
	var out []byte
	for n > 0 {
		n--
		out = append(out, byte('A'+n%26))
		n /= 26
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return string(out), nil
}
