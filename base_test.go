package gocalc_test

import (
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/gocalc"
)

func parse(t *testing.T, s string, b *big.Rat, alpha gocalc.Alphabet) (*big.Rat, []string) {
	t.Helper()
	v, warnings, err := gocalc.ParseBase(s, b, alpha, gocalc.ParseOptions{})
	require.NoError(t, err, s)
	return v, warnings
}

// ============================================================
// Positional digit strings
// ============================================================

func TestParseBase(t *testing.T) {
	tests := []struct {
		in   string
		base *big.Rat
		want string
	}{
		{"FF", big.NewRat(16, 1), "255"},
		{"ff.8", big.NewRat(16, 1), "511/2"},
		{"-101", big.NewRat(2, 1), "-5"},
		{"+17", big.NewRat(8, 1), "15"},
		{" 1 000 ", big.NewRat(10, 1), "1000"},
		{"11", big.NewRat(-2, 1), "-1"},
		{"11", big.NewRat(3, 2), "5/2"},
		{"10.1", big.NewRat(3, 2), "13/6"},
	}
	for _, tt := range tests {
		got, warnings := parse(t, tt.in, tt.base, gocalc.Alphabet{})
		if got.RatString() != tt.want {
			t.Errorf("ParseBase(%q, %s) = %s, want %s", tt.in, tt.base.RatString(), got.RatString(), tt.want)
		}
		assert.Empty(t, warnings, tt.in)
	}
}

func TestParseBase_Warnings(t *testing.T) {
	got, warnings := parse(t, "1_0", big.NewRat(10, 1), gocalc.Alphabet{})
	assert.Equal(t, "10", got.RatString())
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], `"_"`)

	got, warnings = parse(t, "19", big.NewRat(8, 1), gocalc.Alphabet{})
	assert.Equal(t, "1", got.RatString())
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "too large")
}

func TestParseBase_Errors(t *testing.T) {
	_, _, err := gocalc.ParseBase("", big.NewRat(10, 1), gocalc.Alphabet{}, gocalc.ParseOptions{})
	assert.True(t, errors.Is(err, gocalc.ErrNoDigits))

	_, _, err = gocalc.ParseBase("1", big.NewRat(1, 1), gocalc.Alphabet{}, gocalc.ParseOptions{})
	assert.True(t, errors.Is(err, gocalc.ErrBase))

	_, _, err = gocalc.ParseBase("1", big.NewRat(-1, 2), gocalc.Alphabet{}, gocalc.ParseOptions{})
	assert.True(t, errors.Is(err, gocalc.ErrBase))

	_, _, err = gocalc.ParseBase("1", big.NewRat(10, 1), gocalc.Alphabet{Set: gocalc.DigitsCustom}, gocalc.ParseOptions{})
	assert.True(t, errors.Is(err, gocalc.ErrBase))
}

func TestParseBase_DecimalPoint(t *testing.T) {
	v, _, err := gocalc.ParseBase("1,5", big.NewRat(10, 1), gocalc.Alphabet{}, gocalc.ParseOptions{DecimalPoint: ","})
	require.NoError(t, err)
	assert.Equal(t, "3/2", v.RatString())
}

func TestParseBase_DigitSets(t *testing.T) {
	v, _ := parse(t, "zZ", big.NewRat(62, 1), gocalc.Alphabet{})
	assert.Equal(t, "3817", v.RatString())

	v, _ = parse(t, "zz", big.NewRat(36, 1), gocalc.Alphabet{})
	assert.Equal(t, "1295", v.RatString())

	v, _ = parse(t, "onezero", big.NewRat(2, 1), gocalc.Alphabet{Set: gocalc.DigitsCustom, Tokens: []string{"zero", "one"}})
	assert.Equal(t, "2", v.RatString())

	v, _ = parse(t, `\x01\x00`, big.NewRat(256, 1), gocalc.Alphabet{Set: gocalc.DigitsBytes})
	assert.Equal(t, "256", v.RatString())

	v, _ = parse(t, "A", big.NewRat(256, 1), gocalc.Alphabet{Set: gocalc.DigitsBytes})
	assert.Equal(t, "65", v.RatString())

	v, _ = parse(t, "é", big.NewRat(1<<21, 1), gocalc.Alphabet{Set: gocalc.DigitsUnicode})
	assert.Equal(t, "233", v.RatString())
}

func TestFormatBase(t *testing.T) {
	s, err := gocalc.FormatBase(big.NewRat(255, 2), 16, gocalc.Alphabet{}, gocalc.ParseOptions{}, 20)
	require.NoError(t, err)
	assert.Equal(t, "7F.8", s)

	s, err = gocalc.FormatBase(big.NewRat(-5, 1), 2, gocalc.Alphabet{}, gocalc.ParseOptions{}, 20)
	require.NoError(t, err)
	assert.Equal(t, "-101", s)

	s, err = gocalc.FormatBase(big.NewRat(1, 3), 10, gocalc.Alphabet{}, gocalc.ParseOptions{DecimalPoint: ","}, 4)
	require.NoError(t, err)
	assert.Equal(t, "0,3333", s)

	_, err = gocalc.FormatBase(big.NewRat(1, 1), 37, gocalc.Alphabet{Set: gocalc.DigitsOneCase}, gocalc.ParseOptions{}, 0)
	assert.True(t, errors.Is(err, gocalc.ErrBase))
}

func TestFormatParse_RoundTrip(t *testing.T) {
	bases := []int64{62}
	for b := int64(2); b <= 36; b++ {
		bases = append(bases, b)
	}
	values := []int64{0, 1, 7, 35, 61, 100, 4095, 123456789, -98765}
	for _, b := range bases {
		for _, n := range values {
			v := big.NewRat(n, 1)
			s, err := gocalc.FormatBase(v, b, gocalc.Alphabet{}, gocalc.ParseOptions{}, 0)
			require.NoError(t, err)
			back, _ := parse(t, s, big.NewRat(b, 1), gocalc.Alphabet{})
			if back.Cmp(v) != 0 {
				t.Errorf("base %d: %d -> %q -> %s", b, n, s, back.RatString())
			}
		}
	}

	for _, b := range []int64{2, 4, 8, 16, 32} {
		for _, v := range []*big.Rat{big.NewRat(3, 8), big.NewRat(-17, 4), big.NewRat(1025, 64)} {
			s, err := gocalc.FormatBase(v, b, gocalc.Alphabet{}, gocalc.ParseOptions{}, 64)
			require.NoError(t, err)
			back, _ := parse(t, s, big.NewRat(b, 1), gocalc.Alphabet{})
			if back.Cmp(v) != 0 {
				t.Errorf("base %d: %s -> %q -> %s", b, v.RatString(), s, back.RatString())
			}
		}
	}

	tokens := gocalc.Alphabet{Set: gocalc.DigitsCustom, Tokens: []string{"nil", "one", "two"}}
	for n := int64(0); n < 50; n++ {
		s, err := gocalc.FormatBase(big.NewRat(n, 1), 3, tokens, gocalc.ParseOptions{}, 0)
		require.NoError(t, err)
		back, _ := parse(t, s, big.NewRat(3, 1), tokens)
		assert.Equal(t, n, back.Num().Int64(), s)
	}
}

// ============================================================
// Roman numerals and bijective base-26
// ============================================================

func TestRoman(t *testing.T) {
	v, warnings, err := gocalc.ParseRoman("MCMXCIV")
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, int64(1994), v.Int64())

	v, _, err = gocalc.ParseRoman("mmxxiv")
	require.NoError(t, err)
	assert.Equal(t, int64(2024), v.Int64())

	v, _, err = gocalc.ParseRoman("-XII")
	require.NoError(t, err)
	assert.Equal(t, int64(-12), v.Int64())

	v, warnings, err = gocalc.ParseRoman("X?")
	require.NoError(t, err)
	assert.Equal(t, int64(10), v.Int64())
	assert.Len(t, warnings, 1)

	_, err = gocalc.FormatRoman(0)
	assert.True(t, errors.Is(err, gocalc.ErrBase))

	for n := int64(1); n <= 3999; n++ {
		s, err := gocalc.FormatRoman(n)
		require.NoError(t, err)
		back, _, err := gocalc.ParseRoman(s)
		require.NoError(t, err)
		if back.Int64() != n {
			t.Fatalf("%d -> %s -> %s", n, s, back)
		}
	}
}

func TestBijective(t *testing.T) {
	for s, want := range map[string]int64{"A": 1, "Z": 26, "AA": 27, "az": 52, "ZZ": 702, "AAA": 703} {
		v, _, err := gocalc.ParseBijective(s)
		require.NoError(t, err, s)
		assert.Equal(t, want, v.Int64(), s)
	}

	_, _, err := gocalc.ParseBijective("12")
	assert.True(t, errors.Is(err, gocalc.ErrNoDigits))
	_, err = gocalc.FormatBijective(0)
	assert.True(t, errors.Is(err, gocalc.ErrBase))

	for n := int64(1); n <= 1000; n++ {
		s, err := gocalc.FormatBijective(n)
		require.NoError(t, err)
		back, _, err := gocalc.ParseBijective(s)
		require.NoError(t, err)
		if back.Int64() != n {
			t.Fatalf("%d -> %s -> %s", n, s, back)
		}
	}
}

// ============================================================
// Digit-string functions
// ============================================================

func TestBaseFunctions(t *testing.T) {
	tests := []struct {
		name string
		in   gocalc.Expr
		want string
	}{
		{"base", call(gocalc.FnBase, gocalc.T("FF"), gocalc.N(16)), "255"},
		{"hex", call(gocalc.FnHex, gocalc.T("ff.8")), "511/2"},
		{"bin", call(gocalc.FnBin, gocalc.T("101")), "5"},
		{"oct", call(gocalc.FnOct, gocalc.T("17")), "15"},
		{"roman", call(gocalc.FnRoman, gocalc.T("MCMXCIV")), "1994"},
		{"bijective", call(gocalc.FnBijective, gocalc.T("AA")), "27"},
		{"digit set", call(gocalc.FnBase, gocalc.T("zZ"), gocalc.N(62), gocalc.N(2)), "3817"},
		{"tokens", call(gocalc.FnBase, gocalc.T("ba"), gocalc.N(3), gocalc.VectorOf(gocalc.T("a"), gocalc.T("b"), gocalc.T("c"))), "3"},
		{"default base", call(gocalc.FnBase, gocalc.T("42")), "42"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calc(t, tt.in, exact)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestBase_ParseOptions(t *testing.T) {
	opts := exact
	opts.Parse = gocalc.ParseOptions{Base: 8, DecimalPoint: ","}
	got := calc(t, call(gocalc.FnBase, gocalc.T("12,4")), opts)
	assert.Equal(t, "21/2", got.String())
}

func TestBase_IrrationalBase(t *testing.T) {
	got := calc(t, call(gocalc.FnBase, gocalc.T("11"), gocalc.Sqrt(gocalc.N(2))), exact)
	assertSame(t, gocalc.AddOf(gocalc.Sqrt(gocalc.N(2)), gocalc.N(1)), got)
}

func TestBase_Messages(t *testing.T) {
	c := newContext()
	out, err := c.Calculate(call(gocalc.FnHex, gocalc.T("f_f")), exact)
	require.NoError(t, err)
	assert.Equal(t, "255", out.String())
	msgs := c.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, gocalc.MessageWarning, msgs[0].Type)

	c.ClearMessages()
	out, err = c.Calculate(call(gocalc.FnHex, gocalc.T("")), exact)
	require.NoError(t, err)
	assertCall(t, out, gocalc.FnHex)
	require.NotEmpty(t, c.Messages())
	assert.Equal(t, gocalc.MessageError, c.Messages()[0].Type)

	c.ClearMessages()
	out, _ = c.Calculate(call(gocalc.FnBase, gocalc.T("10"), gocalc.N(10), gocalc.N(9)), exact)
	assertCall(t, out, gocalc.FnBase)
	assert.NotEmpty(t, c.Messages())
}
