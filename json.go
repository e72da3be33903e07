package gocalc

import (
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/njchilds90/gocalc/number"
)

// ============================================================
// JSON Serialization
// ============================================================

func ToJSON(e Expr) (string, error) {
	b, err := json.Marshal(e.toJSON())
	return string(b), err
}

func FromJSON(data map[string]interface{}) (Expr, error) {
	if data == nil {
		return nil, fmt.Errorf("expression must be an object")
	}
	typAny, ok := data["type"]
	if !ok {
		return nil, fmt.Errorf("missing 'type' field")
	}
	typ, ok := typAny.(string)
	if !ok || typ == "" {
		return nil, fmt.Errorf("field 'type' must be a non-empty string")
	}

	subObj := func(field string) (map[string]interface{}, error) {
		v, ok := data[field]
		if !ok {
			return nil, fmt.Errorf("%s: missing %q", typ, field)
		}
		m, ok := v.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("%s: %q must be an object", typ, field)
		}
		return m, nil
	}

	subExprs := func(field string) ([]Expr, error) {
		v, ok := data[field]
		if !ok {
			return nil, fmt.Errorf("%s: missing %q", typ, field)
		}
		raw, ok := v.([]interface{})
		if !ok {
			return nil, fmt.Errorf("%s: %q must be an array", typ, field)
		}
		out := make([]Expr, len(raw))
		for i, it := range raw {
			m, ok := it.(map[string]interface{})
			if !ok {
				return nil, fmt.Errorf("%s: %q[%d] must be an object", typ, field, i)
			}
			e, err := FromJSON(m)
			if err != nil {
				return nil, fmt.Errorf("%s: %s[%d]: %w", typ, field, i, err)
			}
			out[i] = e
		}
		return out, nil
	}

	subString := func(field string) (string, error) {
		v, ok := data[field]
		if !ok {
			return "", fmt.Errorf("%s: missing %q", typ, field)
		}
		s, ok := v.(string)
		if !ok || s == "" {
			return "", fmt.Errorf("%s: %q must be a non-empty string", typ, field)
		}
		return s, nil
	}

	switch typ {
	case "num":
		switch data["value"] {
		case "inf":
			return NumOf(number.PosInf()), nil
		case "-inf":
			return NumOf(number.NegInf()), nil
		case "cinf":
			return NumOf(number.ComplexInf()), nil
		}
		re, err := partFromJSON(data, "")
		if err != nil {
			return nil, err
		}
		if !hasPart(data, "im_") {
			return NumOf(re), nil
		}
		im, err := partFromJSON(data, "im_")
		if err != nil {
			return nil, err
		}
		return NumOf(number.Complex(re, im)), nil

	case "sym":
		name, err := subString("name")
		if err != nil {
			return nil, err
		}
		if _, ok := data["assume"]; !ok {
			return S(name), nil
		}
		am, err := subObj("assume")
		if err != nil {
			return nil, err
		}
		a, err := assumptionsFromJSON(am)
		if err != nil {
			return nil, fmt.Errorf("sym: %w", err)
		}
		return SymOf(name, a), nil

	case "unit":
		name, err := subString("name")
		if err != nil {
			return nil, err
		}
		return U(name), nil

	case "text":
		v, ok := data["value"].(string)
		if !ok {
			return nil, fmt.Errorf("text: 'value' must be a string")
		}
		return T(v), nil

	case "call":
		name, err := subString("func")
		if err != nil {
			return nil, err
		}
		id, ok := FunctionByName(name)
		if !ok {
			return nil, fmt.Errorf("call: unknown function %q", name)
		}
		args, err := subExprs("args")
		if err != nil {
			return nil, err
		}
		return CallOf(id, args...), nil

	case "add":
		terms, err := subExprs("terms")
		if err != nil {
			return nil, err
		}
		return AddOf(terms...), nil

	case "mul":
		factors, err := subExprs("factors")
		if err != nil {
			return nil, err
		}
		return MulOf(factors...), nil

	case "pow":
		baseM, err := subObj("base")
		if err != nil {
			return nil, err
		}
		expM, err := subObj("exp")
		if err != nil {
			return nil, err
		}
		base, err := FromJSON(baseM)
		if err != nil {
			return nil, fmt.Errorf("pow: base: %w", err)
		}
		exp, err := FromJSON(expM)
		if err != nil {
			return nil, fmt.Errorf("pow: exp: %w", err)
		}
		return PowOf(base, exp), nil

	case "vector":
		elems, err := subExprs("elems")
		if err != nil {
			return nil, err
		}
		return VectorOf(elems...), nil
	}
	return nil, fmt.Errorf("unknown expression type: %s", typ)
}

func hasPart(data map[string]interface{}, prefix string) bool {
	_, v := data[prefix+"value"]
	_, lo := data[prefix+"lo"]
	return v || lo
}

// partFromJSON reads prefix+"value" as an exact rational or the interval
// prefix+"lo", prefix+"hi".
func partFromJSON(data map[string]interface{}, prefix string) (number.Number, error) {
	str := func(field string) (string, bool) {
		s, ok := data[prefix+field].(string)
		return s, ok && s != ""
	}
	if v, ok := str("value"); ok {
		r, ok := new(big.Rat).SetString(v)
		if !ok {
			return number.Number{}, fmt.Errorf("invalid num value: %s", v)
		}
		return number.FromRat(r), nil
	}
	lo, okLo := str("lo")
	hi, okHi := str("hi")
	if !okLo || !okHi {
		return number.Number{}, fmt.Errorf("num: need %q or both %q and %q", prefix+"value", prefix+"lo", prefix+"hi")
	}
	return number.ApproxInterval(lo, hi)
}

func assumptionsFromJSON(m map[string]interface{}) (Assumptions, error) {
	var a Assumptions
	if t, ok := m["type"].(string); ok {
		found := false
		for i, name := range typeNames {
			if name == t {
				a.Type, found = NumberType(i), true
			}
		}
		if !found {
			return a, fmt.Errorf("unknown assumption type %q", t)
		}
	}
	if s, ok := m["sign"].(string); ok {
		found := false
		for i, name := range signNames {
			if name == s {
				a.Sign, found = Sign(i), true
			}
		}
		if !found {
			return a, fmt.Errorf("unknown assumption sign %q", s)
		}
	}
	return a, nil
}

// OptionsFromJSON overlays the fields present in m on DefaultOptions.
func OptionsFromJSON(m map[string]interface{}) (Options, error) {
	opts := DefaultOptions()
	if m == nil {
		return opts, nil
	}
	if v, ok := m["approximation"]; ok {
		s, _ := v.(string)
		switch s {
		case "exact":
			opts.Approximation = Exact
		case "try_exact":
			opts.Approximation = TryExact
		case "approximate":
			opts.Approximation = Approximate
		default:
			return opts, fmt.Errorf("options: unknown approximation %v", v)
		}
	}
	if v, ok := m["angle_unit"]; ok {
		s, _ := v.(string)
		switch s {
		case "default":
			opts.AngleUnit = AngleDefault
		case "radians":
			opts.AngleUnit = Radians
		case "degrees":
			opts.AngleUnit = Degrees
		case "gradians":
			opts.AngleUnit = Gradians
		default:
			return opts, fmt.Errorf("options: unknown angle unit %v", v)
		}
	}
	for field, dst := range map[string]*bool{"allow_complex": &opts.AllowComplex, "allow_infinite": &opts.AllowInfinite} {
		if v, ok := m[field]; ok {
			b, ok := v.(bool)
			if !ok {
				return opts, fmt.Errorf("options: %q must be a boolean", field)
			}
			*dst = b
		}
	}
	if v, ok := m["precision"]; ok {
		f, ok := v.(float64)
		if !ok || f < 1 || f > 1000 {
			return opts, fmt.Errorf("options: 'precision' must be a number in [1, 1000]")
		}
		opts.Precision = uint32(f)
	}
	if v, ok := m["decimal_point"]; ok {
		s, ok := v.(string)
		if !ok {
			return opts, fmt.Errorf("options: 'decimal_point' must be a string")
		}
		opts.Parse.DecimalPoint = s
	}
	if v, ok := m["base"]; ok {
		f, ok := v.(float64)
		if !ok || f < 2 || f > 36 {
			return opts, fmt.Errorf("options: 'base' must be a number in [2, 36]")
		}
		opts.Parse.Base = int(f)
	}
	return opts, nil
}
