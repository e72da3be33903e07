package gocalc_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/gocalc"
	"github.com/njchilds90/gocalc/number"
)

func decode(t *testing.T, s string) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(s), &m))
	return m
}

func roundTrip(t *testing.T, e gocalc.Expr) gocalc.Expr {
	t.Helper()
	s, err := gocalc.ToJSON(e)
	require.NoError(t, err)
	back, err := gocalc.FromJSON(decode(t, s))
	require.NoError(t, err, s)
	return back
}

func TestJSON_RoundTrip(t *testing.T) {
	half, err := number.Approx("1.5")
	require.NoError(t, err)

	exprs := []gocalc.Expr{
		call(gocalc.FnSin, piTimes(1, 3)),
		gocalc.SymOf("k", gocalc.Assumptions{Type: gocalc.TypeInteger, Sign: gocalc.SignPositive}),
		gocalc.NumOf(half),
		gocalc.AddOf(gocalc.N(3), gocalc.MulOf(gocalc.N(4), gocalc.I())),
		gocalc.NumOf(number.Complex(number.Int(3), number.Int(4))),
		gocalc.NumOf(number.ComplexInf()),
		gocalc.NumOf(number.NegInf()),
		gocalc.PowOf(gocalc.S("x"), gocalc.F(-2, 3)),
		gocalc.VectorOf(gocalc.T("a b"), gocalc.U("deg")),
		call(gocalc.FnBase, gocalc.T("ff"), gocalc.N(16)),
	}
	for _, e := range exprs {
		back := roundTrip(t, e)
		if !back.Equal(e) {
			t.Errorf("round trip of %s gave %s", e, back)
		}
	}
}

func TestJSON_NumFormat(t *testing.T) {
	s, err := gocalc.ToJSON(gocalc.F(-3, 4))
	require.NoError(t, err)
	m := decode(t, s)
	assert.Equal(t, "num", m["type"])
	assert.Equal(t, "-3/4", m["value"])
	assert.NotContains(t, m, "approx")

	half, err := number.Approx("1.5")
	require.NoError(t, err)
	s, err = gocalc.ToJSON(gocalc.NumOf(half))
	require.NoError(t, err)
	m = decode(t, s)
	assert.Equal(t, true, m["approx"])
	assert.Contains(t, m, "lo")
	assert.Contains(t, m, "hi")

	s, err = gocalc.ToJSON(gocalc.NumOf(number.Complex(number.Int(3), number.Int(4))))
	require.NoError(t, err)
	m = decode(t, s)
	assert.Equal(t, "3", m["value"])
	assert.Equal(t, "4", m["im_value"])

	s, err = gocalc.ToJSON(gocalc.NumOf(number.ComplexInf()))
	require.NoError(t, err)
	assert.Equal(t, "cinf", decode(t, s)["value"])
}

func TestJSON_Errors(t *testing.T) {
	bad := []string{
		`{}`,
		`{"type": ""}`,
		`{"type": "frob"}`,
		`{"type": "num"}`,
		`{"type": "num", "value": "one"}`,
		`{"type": "num", "lo": "1"}`,
		`{"type": "sym"}`,
		`{"type": "sym", "name": "x", "assume": {"type": "prime"}}`,
		`{"type": "call", "func": "nope", "args": []}`,
		`{"type": "call", "func": "sin", "args": [1]}`,
		`{"type": "add", "terms": {"type": "num", "value": "1"}}`,
		`{"type": "pow", "base": {"type": "num", "value": "1"}}`,
		`{"type": "text", "value": 3}`,
	}
	for _, s := range bad {
		_, err := gocalc.FromJSON(decode(t, s))
		assert.Error(t, err, s)
	}
	_, err := gocalc.FromJSON(nil)
	assert.Error(t, err)
}

func TestOptionsFromJSON(t *testing.T) {
	opts, err := gocalc.OptionsFromJSON(decode(t, `{
		"approximation": "exact",
		"angle_unit": "degrees",
		"allow_complex": false,
		"precision": 50,
		"decimal_point": ",",
		"base": 16
	}`))
	require.NoError(t, err)
	assert.Equal(t, gocalc.Exact, opts.Approximation)
	assert.Equal(t, gocalc.Degrees, opts.AngleUnit)
	assert.False(t, opts.AllowComplex)
	assert.True(t, opts.AllowInfinite, "fields left out keep their defaults")
	assert.Equal(t, uint32(50), opts.Precision)
	assert.Equal(t, ",", opts.Parse.DecimalPoint)
	assert.Equal(t, 16, opts.Parse.Base)

	opts, err = gocalc.OptionsFromJSON(nil)
	require.NoError(t, err)
	assert.Equal(t, gocalc.DefaultOptions(), opts)

	for _, s := range []string{
		`{"approximation": "sloppy"}`,
		`{"angle_unit": "turns"}`,
		`{"allow_complex": "yes"}`,
		`{"precision": 0}`,
		`{"base": 40}`,
		`{"decimal_point": 1}`,
	} {
		_, err := gocalc.OptionsFromJSON(decode(t, s))
		assert.Error(t, err, s)
	}
}
