package gocalc_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/gocalc"
	"github.com/njchilds90/gocalc/number"
)

// ============================================================
// Special angles
// ============================================================

func TestSin_SpecialAngles(t *testing.T) {
	tests := []struct {
		arg  gocalc.Expr
		want gocalc.Expr
	}{
		{gocalc.N(0), gocalc.N(0)},
		{gocalc.Pi(), gocalc.N(0)},
		{piTimes(1, 6), gocalc.F(1, 2)},
		{piTimes(1, 4), gocalc.MulOf(gocalc.F(1, 2), gocalc.Sqrt(gocalc.N(2)))},
		{piTimes(1, 3), gocalc.MulOf(gocalc.F(1, 2), gocalc.Sqrt(gocalc.N(3)))},
		{piTimes(1, 2), gocalc.N(1)},
		{piTimes(7, 6), gocalc.F(-1, 2)},
		{piTimes(-1, 2), gocalc.N(-1)},
		{piTimes(1, 12), gocalc.MulOf(gocalc.F(1, 4), gocalc.AddOf(gocalc.Sqrt(gocalc.N(6)), gocalc.Neg(gocalc.Sqrt(gocalc.N(2)))))},
		{piTimes(1, 8), gocalc.MulOf(gocalc.F(1, 2), gocalc.Sqrt(gocalc.AddOf(gocalc.N(2), gocalc.Neg(gocalc.Sqrt(gocalc.N(2))))))},
	}
	for _, tt := range tests {
		got := calc(t, call(gocalc.FnSin, tt.arg), exact)
		assertSame(t, tt.want, got)
	}
}

func TestCosTan_SpecialAngles(t *testing.T) {
	assertSame(t, gocalc.F(1, 2), calc(t, call(gocalc.FnCos, piTimes(1, 3)), exact))
	assertSame(t, gocalc.N(-1), calc(t, call(gocalc.FnCos, gocalc.Pi()), exact))
	assertSame(t, gocalc.N(0), calc(t, call(gocalc.FnCos, piTimes(1, 2)), exact))
	assertSame(t, gocalc.N(1), calc(t, call(gocalc.FnTan, piTimes(1, 4)), exact))
	assertSame(t, gocalc.N(-1), calc(t, call(gocalc.FnTan, piTimes(3, 4)), exact))
	assertSame(t, gocalc.Sqrt(gocalc.N(3)), calc(t, call(gocalc.FnTan, piTimes(1, 3)), exact))
	assertSame(t, gocalc.AddOf(gocalc.N(2), gocalc.Neg(gocalc.Sqrt(gocalc.N(3)))), calc(t, call(gocalc.FnTan, piTimes(1, 12)), exact))
}

func TestTan_Pole(t *testing.T) {
	out := calc(t, call(gocalc.FnTan, piTimes(1, 2)), exact)
	n, ok := out.(*gocalc.Num)
	require.True(t, ok, "want complex infinity, got %s", out)
	assert.True(t, n.Value().IsInfinite())

	finite := exact
	finite.AllowInfinite = false
	out = calc(t, call(gocalc.FnTan, piTimes(1, 2)), finite)
	assertCall(t, out, gocalc.FnTan)
}

// Every multiple of π/24 that has a table entry must agree with float64.
func TestSpecialAngles_MatchNumeric(t *testing.T) {
	funcs := []struct {
		id gocalc.FunctionID
		f  func(float64) float64
	}{
		{gocalc.FnSin, math.Sin},
		{gocalc.FnCos, math.Cos},
		{gocalc.FnTan, math.Tan},
	}
	for _, fn := range funcs {
		for k := int64(-48); k <= 48; k++ {
			out := calc(t, call(fn.id, piTimes(k, 24)), exact)
			if c, ok := out.(*gocalc.Call); ok {
				if k%2 == 0 || k%3 == 0 {
					t.Errorf("%s(%dπ/24) has a closed form, got %s", fn.id, k, c)
				}
				continue
			}
			if n, ok := out.(*gocalc.Num); ok && n.Value().IsInfinite() {
				continue
			}
			assert.False(t, out.IsApproximate(), "%s(%dπ/24) = %s", fn.id, k, out)
			got := value(t, out)
			want := fn.f(float64(k) * math.Pi / 24)
			if !near(got, want) {
				t.Errorf("%s(%dπ/24): want %.15g, got %.15g (%s)", fn.id, k, want, got, out)
			}
		}
	}
}

func TestSpecialAngles_Units(t *testing.T) {
	for deg := int64(-360); deg <= 360; deg += 15 {
		withUnit := calc(t, call(gocalc.FnSin, gocalc.MulOf(gocalc.N(deg), gocalc.U("deg"))), exact)
		inOption := calc(t, call(gocalc.FnSin, gocalc.N(deg)), exact.WithAngleUnit(gocalc.Degrees))
		if !withUnit.Equal(inOption) {
			t.Errorf("sin(%d deg): unit gives %s, option gives %s", deg, withUnit, inOption)
		}
		if !near(value(t, withUnit), math.Sin(float64(deg)*math.Pi/180)) {
			t.Errorf("sin(%d deg) = %s", deg, withUnit)
		}
	}
	grad := calc(t, call(gocalc.FnCos, gocalc.N(50)), exact.WithAngleUnit(gocalc.Gradians))
	assertSame(t, gocalc.MulOf(gocalc.F(1, 2), gocalc.Sqrt(gocalc.N(2))), grad)

	// an attached unit wins over the option
	rad := calc(t, call(gocalc.FnSin, gocalc.MulOf(gocalc.N(30), gocalc.U("deg"))), exact.WithAngleUnit(gocalc.Gradians))
	assertSame(t, gocalc.F(1, 2), rad)
}

// ============================================================
// Inverse functions
// ============================================================

func TestInverse_SpecialValues(t *testing.T) {
	assertSame(t, piTimes(1, 6), calc(t, call(gocalc.FnAsin, gocalc.F(1, 2)), exact))
	assertSame(t, piTimes(1, 3), calc(t, call(gocalc.FnAcos, gocalc.F(1, 2)), exact))
	assertSame(t, piTimes(2, 3), calc(t, call(gocalc.FnAcos, gocalc.F(-1, 2)), exact))
	assertSame(t, piTimes(1, 2), calc(t, call(gocalc.FnAcos, gocalc.N(0)), exact))
	assertSame(t, piTimes(1, 4), calc(t, call(gocalc.FnAtan, gocalc.N(1)), exact))
	assertSame(t, piTimes(-1, 4), calc(t, call(gocalc.FnAtan, gocalc.N(-1)), exact))
	assertSame(t, piTimes(1, 3), calc(t, call(gocalc.FnAtan, gocalc.Sqrt(gocalc.N(3))), exact))
	assertSame(t, piTimes(-1, 4), calc(t, call(gocalc.FnAsin, gocalc.MulOf(gocalc.F(-1, 2), gocalc.Sqrt(gocalc.N(2)))), exact))
}

func TestInverse_AngleUnits(t *testing.T) {
	deg := exact.WithAngleUnit(gocalc.Degrees)
	assertSame(t, gocalc.N(30), calc(t, call(gocalc.FnAsin, gocalc.F(1, 2)), deg))
	assertSame(t, gocalc.N(60), calc(t, call(gocalc.FnAcos, gocalc.F(1, 2)), deg))
	assertSame(t, gocalc.N(120), calc(t, call(gocalc.FnAcos, gocalc.F(-1, 2)), deg))
	grad := exact.WithAngleUnit(gocalc.Gradians)
	assertSame(t, gocalc.N(-50), calc(t, call(gocalc.FnAtan, gocalc.N(-1)), grad))

	out := calc(t, call(gocalc.FnAsin, gocalc.F(1, 3)), approx.WithAngleUnit(gocalc.Degrees))
	if !near(value(t, out), math.Asin(1.0/3)*180/math.Pi) {
		t.Errorf("asin(1/3) in degrees = %s", out)
	}
}

func TestInverse_Compositions(t *testing.T) {
	x := gocalc.Real("x")
	assertSame(t, x, calc(t, call(gocalc.FnSin, call(gocalc.FnAsin, x)), exact))
	assertSame(t, x, calc(t, call(gocalc.FnCos, call(gocalc.FnAcos, x)), exact))
	assertSame(t, x, calc(t, call(gocalc.FnTan, call(gocalc.FnAtan, x)), exact))
	assertSame(t, x, calc(t, call(gocalc.FnSinh, call(gocalc.FnAsinh, x)), exact))
	assertSame(t, x, calc(t, call(gocalc.FnAsinh, call(gocalc.FnSinh, x)), exact))
	assertSame(t, x, calc(t, call(gocalc.FnAtanh, call(gocalc.FnTanh, x)), exact))
	assertSame(t, call(gocalc.FnAbs, x), calc(t, call(gocalc.FnAcosh, call(gocalc.FnCosh, x)), exact))

	oneMinus := gocalc.Sqrt(gocalc.AddOf(gocalc.N(1), gocalc.Neg(gocalc.PowOf(x, gocalc.N(2)))))
	onePlus := gocalc.Sqrt(gocalc.AddOf(gocalc.N(1), gocalc.PowOf(x, gocalc.N(2))))
	assertSame(t, oneMinus, calc(t, call(gocalc.FnSin, call(gocalc.FnAcos, x)), exact))
	assertSame(t, oneMinus, calc(t, call(gocalc.FnCos, call(gocalc.FnAsin, x)), exact))
	assertSame(t, gocalc.PowOf(onePlus, gocalc.N(-1)), calc(t, call(gocalc.FnCos, call(gocalc.FnAtan, x)), exact))
	assertSame(t, gocalc.MulOf(x, gocalc.PowOf(onePlus, gocalc.N(-1))), calc(t, call(gocalc.FnSin, call(gocalc.FnAtan, x)), exact))
	assertSame(t, onePlus, calc(t, call(gocalc.FnCosh, call(gocalc.FnAsinh, x)), exact))
}

// Compositions that depend on a branch need a real argument.
func TestInverse_CompositionNeedsRealArgument(t *testing.T) {
	z := gocalc.S("z")
	out := assertCall(t, calc(t, call(gocalc.FnSin, call(gocalc.FnAcos, z)), exact), gocalc.FnSin)
	assertCall(t, out.Args()[0], gocalc.FnAcos)
	out = assertCall(t, calc(t, call(gocalc.FnAsinh, call(gocalc.FnSinh, z)), exact), gocalc.FnAsinh)
	assertCall(t, out.Args()[0], gocalc.FnSinh)
}

// asin only inverts sin on [−π/2, π/2]; sin(2π/3) comes back as π/3.
func TestInverse_BranchAsymmetry(t *testing.T) {
	out := calc(t, call(gocalc.FnAsin, call(gocalc.FnSin, piTimes(2, 3))), exact)
	assertSame(t, piTimes(1, 3), out)

	x := gocalc.Real("x")
	kept := assertCall(t, calc(t, call(gocalc.FnAsin, call(gocalc.FnSin, x)), exact), gocalc.FnAsin)
	assertCall(t, kept.Args()[0], gocalc.FnSin)
}

// ============================================================
// Parity and imaginary arguments
// ============================================================

func TestParity(t *testing.T) {
	x := gocalc.Real("x")
	negX := gocalc.Neg(x)
	odd := []gocalc.FunctionID{gocalc.FnSin, gocalc.FnTan, gocalc.FnAsin, gocalc.FnAtan, gocalc.FnSinh, gocalc.FnTanh, gocalc.FnAsinh, gocalc.FnAtanh}
	for _, id := range odd {
		got := calc(t, call(id, negX), exact)
		assertSame(t, gocalc.Neg(call(id, x)), got)
	}
	for _, id := range []gocalc.FunctionID{gocalc.FnCos, gocalc.FnCosh} {
		got := calc(t, call(id, negX), exact)
		assertSame(t, call(id, x), got)
	}
	got := calc(t, call(gocalc.FnAcos, negX), exact)
	assertSame(t, gocalc.AddOf(gocalc.Pi(), gocalc.Neg(call(gocalc.FnAcos, x))), got)
}

// A sum with as many negative as positive terms is decided by its first
// term, and the rewrite settles after one step.
func TestParity_EvenSplit(t *testing.T) {
	a, b := gocalc.Real("a"), gocalc.Real("b")
	aMinusB := gocalc.AddOf(a, gocalc.Neg(b))
	bMinusA := gocalc.AddOf(gocalc.Neg(a), b)

	assertSame(t, call(gocalc.FnSin, aMinusB), calc(t, call(gocalc.FnSin, aMinusB), exact))
	assertSame(t, gocalc.Neg(call(gocalc.FnSin, aMinusB)), calc(t, call(gocalc.FnSin, bMinusA), exact))
	assertSame(t, call(gocalc.FnCos, aMinusB), calc(t, call(gocalc.FnCos, bMinusA), exact))
}

func TestImaginaryArgument(t *testing.T) {
	x := gocalc.Real("x")
	ix := gocalc.MulOf(gocalc.I(), x)
	assertSame(t, gocalc.MulOf(gocalc.I(), call(gocalc.FnSinh, x)), calc(t, call(gocalc.FnSin, ix), exact))
	assertSame(t, call(gocalc.FnCosh, x), calc(t, call(gocalc.FnCos, ix), exact))
	assertSame(t, gocalc.MulOf(gocalc.I(), call(gocalc.FnTanh, x)), calc(t, call(gocalc.FnTan, ix), exact))
	assertSame(t, call(gocalc.FnCos, x), calc(t, call(gocalc.FnCosh, ix), exact))
	assertSame(t, gocalc.MulOf(gocalc.I(), call(gocalc.FnAsinh, x)), calc(t, call(gocalc.FnAsin, ix), exact))
}

// ============================================================
// Exact and approximate evaluation
// ============================================================

func TestTrig_ModeSelection(t *testing.T) {
	e := call(gocalc.FnSin, gocalc.N(1))
	assertCall(t, calc(t, e, exact), gocalc.FnSin)

	out := calc(t, e, tryExact)
	assert.True(t, out.IsApproximate(), "try_exact should approximate sin(1), got %s", out)
	assert.True(t, near(value(t, out), math.Sin(1)))

	// an exact rule still wins under try_exact and approximate keeps the table value
	assertSame(t, gocalc.F(1, 2), calc(t, call(gocalc.FnSin, piTimes(1, 6)), tryExact))
	out = calc(t, call(gocalc.FnCos, piTimes(1, 4)), approx)
	assert.True(t, near(value(t, out), math.Sqrt2/2))
}

func TestTrig_ApproximateInputStaysApproximate(t *testing.T) {
	n, err := number.Approx("0.5")
	require.NoError(t, err)
	out := calc(t, call(gocalc.FnSin, gocalc.NumOf(n)), exact)
	assert.True(t, out.IsApproximate())
	assert.True(t, near(value(t, out), math.Sin(0.5)))
}

func TestHyperbolic_Numeric(t *testing.T) {
	tests := []struct {
		id gocalc.FunctionID
		x  float64
		f  func(float64) float64
	}{
		{gocalc.FnSinh, 0.5, math.Sinh},
		{gocalc.FnCosh, 0.5, math.Cosh},
		{gocalc.FnTanh, 0.5, math.Tanh},
		{gocalc.FnAsinh, 0.5, math.Asinh},
		{gocalc.FnAcosh, 2, math.Acosh},
		{gocalc.FnAtanh, 0.5, math.Atanh},
	}
	for _, tt := range tests {
		arg := gocalc.F(int64(tt.x*2), 2)
		out := calc(t, call(tt.id, arg), approx)
		if !near(value(t, out), tt.f(tt.x)) {
			t.Errorf("%s(%g): want %g, got %s", tt.id, tt.x, tt.f(tt.x), out)
		}
	}
}
