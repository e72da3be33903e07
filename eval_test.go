package gocalc_test

import (
	"bytes"
	"context"
	"errors"
	"log"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/gocalc"
)

// ============================================================
// Arithmetic
// ============================================================

func TestArithmetic_Canonical(t *testing.T) {
	x := gocalc.Real("x")

	out := calc(t, gocalc.AddOf(gocalc.N(1), gocalc.F(1, 2)), exact)
	assert.Equal(t, "3/2", out.String())

	out = calc(t, gocalc.AddOf(x, x), exact)
	assertSame(t, gocalc.MulOf(gocalc.N(2), x), out)

	out = calc(t, gocalc.AddOf(x, gocalc.N(1), gocalc.Neg(x)), exact)
	assert.Equal(t, "1", out.String())

	out = calc(t, gocalc.MulOf(x, x), exact)
	assertSame(t, gocalc.PowOf(x, gocalc.N(2)), out)

	out = calc(t, gocalc.MulOf(gocalc.N(0), x), exact)
	assert.Equal(t, "0", out.String())

	out = calc(t, gocalc.PowOf(gocalc.PowOf(x, gocalc.N(2)), gocalc.N(3)), exact)
	assertSame(t, gocalc.PowOf(x, gocalc.N(6)), out)
}

func TestArithmetic_OrderDoesNotMatter(t *testing.T) {
	x, y := gocalc.Real("x"), gocalc.Real("y")
	a := calc(t, gocalc.MulOf(gocalc.N(3), x, y), exact)
	b := calc(t, gocalc.MulOf(y, gocalc.N(3), x), exact)
	if !a.Equal(b) {
		t.Errorf("products differ: %s vs %s", a, b)
	}
}

func TestRadicals(t *testing.T) {
	tests := []struct {
		name string
		in   gocalc.Expr
		want gocalc.Expr
	}{
		{"sqrt(4)", gocalc.Sqrt(gocalc.N(4)), gocalc.N(2)},
		{"sqrt(1/4)", gocalc.Sqrt(gocalc.F(1, 4)), gocalc.F(1, 2)},
		{"sqrt(8)", gocalc.Sqrt(gocalc.N(8)), gocalc.MulOf(gocalc.N(2), gocalc.Sqrt(gocalc.N(2)))},
		{"sqrt(-4)", gocalc.Sqrt(gocalc.N(-4)), gocalc.MulOf(gocalc.N(2), gocalc.I())},
		{"8^(2/3)", gocalc.PowOf(gocalc.N(8), gocalc.F(2, 3)), gocalc.N(4)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertSame(t, tt.want, calc(t, tt.in, exact))
		})
	}
}

func TestRadicals_RealOnly(t *testing.T) {
	opts := exact
	opts.AllowComplex = false
	out := calc(t, gocalc.Sqrt(gocalc.N(-4)), opts)
	require.IsType(t, &gocalc.Pow{}, out)
}

func TestRadicals_Approximate(t *testing.T) {
	if v := value(t, gocalc.Sqrt(gocalc.N(2))); !near(v, math.Sqrt2) {
		t.Errorf("sqrt(2) = %v", v)
	}
	out := calc(t, gocalc.Sqrt(gocalc.N(8)), tryExact)
	assert.False(t, out.IsApproximate(), "try exact keeps radicals: %s", out)
}

// ============================================================
// Modes and result policy
// ============================================================

func TestExactMode_NeverApproximates(t *testing.T) {
	inputs := []gocalc.Expr{gocalc.N(2), gocalc.F(1, 3), gocalc.N(-1), gocalc.Pi(), piTimes(1, 7)}
	for id := gocalc.FnSin; id <= gocalc.FnDenominator; id++ {
		f, ok := gocalc.Lookup(id)
		require.True(t, ok, "%s is not registered", id)
		if f.MinArgs != 1 {
			continue
		}
		for _, in := range inputs {
			out, err := newContext().Calculate(call(id, in), exact)
			require.NoError(t, err)
			if out.IsApproximate() {
				t.Errorf("%s(%s) = %s is approximate", id, in, out)
			}
		}
	}
}

func TestConstants_StaySymbolic(t *testing.T) {
	out := calc(t, gocalc.Pi(), tryExact)
	if !out.Equal(gocalc.Pi()) {
		t.Errorf("pi evaluated to %s", out)
	}
	if v := value(t, gocalc.Pi()); !near(v, math.Pi) {
		t.Errorf("approximate pi = %v", v)
	}
	if v := value(t, gocalc.E()); !near(v, math.E) {
		t.Errorf("approximate e = %v", v)
	}
}

func TestDomainPolicy_Complex(t *testing.T) {
	lnNeg := call(gocalc.FnLn, gocalc.N(-2))

	realOnly := approx
	realOnly.AllowComplex = false
	assertCall(t, calc(t, lnNeg, realOnly), gocalc.FnLn)

	n, ok := calc(t, lnNeg, approx).(*gocalc.Num)
	require.True(t, ok)
	assert.True(t, n.Value().IsComplex())
	assert.InDelta(t, math.Ln2, n.Value().Real().Float64(), 1e-12)
	assert.InDelta(t, math.Pi, n.Value().Imag().Float64(), 1e-12)

	out := calc(t, call(gocalc.FnLn, gocalc.N(-1)), exact)
	assertSame(t, gocalc.MulOf(gocalc.I(), gocalc.Pi()), out)
}

func TestDomainPolicy_Infinite(t *testing.T) {
	pole := call(gocalc.FnTan, piTimes(1, 2))
	finite := exact
	finite.AllowInfinite = false
	assertCall(t, calc(t, pole, finite), gocalc.FnTan)

	n, ok := calc(t, pole, exact).(*gocalc.Num)
	require.True(t, ok)
	assert.True(t, n.Value().IsInfinite())
}

// ============================================================
// Variables
// ============================================================

func TestVariables(t *testing.T) {
	c := newContext()
	c.SetVariable("a", gocalc.N(3))
	out, err := c.Calculate(gocalc.AddOf(gocalc.S("a"), gocalc.N(1)), exact)
	require.NoError(t, err)
	assert.Equal(t, "4", out.String())

	c.SetVariable("a", nil)
	_, ok := c.Variable("a")
	assert.False(t, ok)
}

func TestMaxDepth(t *testing.T) {
	c := newContext()
	c.SetVariable("x", gocalc.AddOf(gocalc.S("x"), gocalc.N(1)))
	_, err := c.Calculate(gocalc.S("x"), exact)
	if !errors.Is(err, gocalc.ErrMaxDepth) {
		t.Fatalf("want ErrMaxDepth, got %v", err)
	}
	errs := 0
	for _, m := range c.Messages() {
		if m.Type == gocalc.MessageError {
			errs++
		}
	}
	assert.Equal(t, 1, errs)
}

// ============================================================
// Abort
// ============================================================

func TestAbort_Context(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := gocalc.NewContext(ctx)

	in := call(gocalc.FnSin, piTimes(1, 6))
	out, err := c.Calculate(in, exact)
	assert.ErrorIs(t, err, gocalc.ErrAborted)
	assert.NotNil(t, out)

	_, st := c.CallFunction(gocalc.FnSin, []gocalc.Expr{piTimes(1, 6)}, exact)
	assert.Equal(t, gocalc.StatusAborted, st)
}

func TestAbort_Flag(t *testing.T) {
	c := newContext()
	c.Abort()
	assert.True(t, c.Aborted())
	_, err := c.Calculate(gocalc.AddOf(gocalc.N(1), gocalc.N(2)), exact)
	assert.ErrorIs(t, err, gocalc.ErrAborted)
}

// ============================================================
// Messages
// ============================================================

func TestMessageScope_Discard(t *testing.T) {
	c := newContext()
	c.Warn("kept")
	s := c.BeginTemporary()
	c.Warn("dropped")
	s.End(false)

	msgs := c.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, "warning: kept", msgs[0].String())
}

func TestMessageScope_Nested(t *testing.T) {
	c := newContext()
	outer := c.BeginTemporary()
	inner := c.BeginTemporary()
	c.Info("inner")
	outer.End(true)
	inner.End(false) // already closed by outer

	msgs := c.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, gocalc.MessageInfo, msgs[0].Type)
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	c := newContext()
	c.SetLogger(log.New(&buf, "", 0))

	c.Warn("x")
	assert.Contains(t, buf.String(), "warning: x")

	buf.Reset()
	s := c.BeginTemporary()
	c.Error("held")
	assert.Empty(t, buf.String(), "scoped messages wait for End")
	s.End(true)
	assert.Contains(t, buf.String(), "error: held")
}

func TestArityError(t *testing.T) {
	c := newContext()
	out, err := c.Calculate(call(gocalc.FnSin), exact)
	require.NoError(t, err)
	assertCall(t, out, gocalc.FnSin)

	msgs := c.Messages()
	require.NotEmpty(t, msgs)
	assert.Equal(t, gocalc.MessageError, msgs[0].Type)
	assert.True(t, strings.Contains(msgs[0].Text, "1 argument"), msgs[0].Text)
}

func TestInvalidArgument(t *testing.T) {
	c := newContext()
	out, err := c.Calculate(call(gocalc.FnMod, gocalc.N(1), gocalc.N(0)), exact)
	require.NoError(t, err)
	assertCall(t, out, gocalc.FnMod)
	require.NotEmpty(t, c.Messages())
	assert.Equal(t, gocalc.MessageError, c.Messages()[0].Type)
}

// ============================================================
// Vectors and dispatch status
// ============================================================

func TestVectors(t *testing.T) {
	sum := calc(t, gocalc.AddOf(gocalc.VectorOf(gocalc.N(1), gocalc.N(2)), gocalc.VectorOf(gocalc.N(3), gocalc.N(4))), exact)
	assertSame(t, gocalc.VectorOf(gocalc.N(4), gocalc.N(6)), sum)

	scaled := calc(t, gocalc.MulOf(gocalc.N(2), gocalc.VectorOf(gocalc.N(1), gocalc.N(2))), exact)
	assertSame(t, gocalc.VectorOf(gocalc.N(2), gocalc.N(4)), scaled)

	mapped := calc(t, call(gocalc.FnSin, gocalc.VectorOf(gocalc.N(0), piTimes(1, 2))), exact)
	assertSame(t, gocalc.VectorOf(gocalc.N(0), gocalc.N(1)), mapped)
}

func TestCallFunction_Status(t *testing.T) {
	c := newContext()

	_, st := c.CallFunction(gocalc.FnSin, []gocalc.Expr{gocalc.N(1)}, exact)
	assert.Equal(t, gocalc.StatusUnhandled, st)

	out, st := c.CallFunction(gocalc.FnSin, []gocalc.Expr{gocalc.Pi()}, exact)
	assert.Equal(t, gocalc.StatusRewritten, st)
	assert.Equal(t, "0", out.String())

	v := gocalc.VectorOf(gocalc.N(-1), gocalc.N(2))
	out, st = c.CallFunction(gocalc.FnAbs, []gocalc.Expr{v}, exact)
	assert.Equal(t, gocalc.StatusNotApplicable, st)
	assertSame(t, gocalc.VectorOf(gocalc.N(1), gocalc.N(2)), out)

	c.SetVariable("v", gocalc.VectorOf(gocalc.N(0), gocalc.Pi()))
	out, st = c.CallFunction(gocalc.FnSin, []gocalc.Expr{gocalc.S("v")}, exact)
	assert.Equal(t, gocalc.StatusDeferredVector, st)
	assertSame(t, gocalc.VectorOf(gocalc.N(0), gocalc.N(0)), out)
}

func TestFunctionTable(t *testing.T) {
	names := gocalc.FunctionNames()
	assert.Contains(t, names, "sin")
	assert.Contains(t, names, "bijective")
	assert.NotContains(t, names, "invalid")
	for _, name := range names {
		id, ok := gocalc.FunctionByName(name)
		require.True(t, ok, name)
		assert.Equal(t, name, id.String())
		_, ok = gocalc.Lookup(id)
		assert.True(t, ok, "%s has no descriptor", name)
	}
	_, ok := gocalc.FunctionByName("nope")
	assert.False(t, ok)
}
