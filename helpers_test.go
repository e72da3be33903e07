package gocalc_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/njchilds90/gocalc"
)

var (
	exact    = gocalc.DefaultOptions().WithApproximation(gocalc.Exact)
	tryExact = gocalc.DefaultOptions()
	approx   = gocalc.DefaultOptions().WithApproximation(gocalc.Approximate)
)

func newContext() *gocalc.Context { return gocalc.NewContext(context.Background()) }

func calc(t *testing.T, e gocalc.Expr, opts gocalc.Options) gocalc.Expr {
	t.Helper()
	out, err := newContext().Calculate(e, opts)
	require.NoError(t, err)
	return out
}

// assertSame compares got with want evaluated exactly, so both sides are in
// canonical form.
func assertSame(t *testing.T, want, got gocalc.Expr) {
	t.Helper()
	w := calc(t, want, exact)
	if !w.Equal(got) {
		t.Errorf("want %s, got %s", w, got)
	}
}

// value evaluates e numerically and returns its real part.
func value(t *testing.T, e gocalc.Expr) float64 {
	t.Helper()
	n, ok := calc(t, e, approx).(*gocalc.Num)
	require.True(t, ok, "%s did not evaluate to a number", e)
	return n.Value().Float64()
}

func near(a, b float64) bool {
	return math.Abs(a-b) <= 1e-12*math.Max(1, math.Abs(b))
}

// assertCall checks that e was left as an application of id.
func assertCall(t *testing.T, e gocalc.Expr, id gocalc.FunctionID) *gocalc.Call {
	t.Helper()
	c, ok := e.(*gocalc.Call)
	if !ok || c.Func() != id {
		t.Fatalf("want an unevaluated %s call, got %s", id, e)
	}
	return c
}

func call(id gocalc.FunctionID, args ...gocalc.Expr) gocalc.Expr { return gocalc.CallOf(id, args...) }

func piTimes(p, q int64) gocalc.Expr { return gocalc.MulOf(gocalc.F(p, q), gocalc.Pi()) }
