package gocalc

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"strings"
)

// ============================================================
// MCP Tool Interface
// ============================================================

type ToolRequest struct {
	Tool   string                 `json:"tool"`
	Params map[string]interface{} `json:"params"`
}

type ToolResponse struct {
	Result   interface{} `json:"result,omitempty"`
	LaTeX    string      `json:"latex,omitempty"`
	String   string      `json:"string,omitempty"`
	Status   string      `json:"status,omitempty"`
	Messages []string    `json:"messages,omitempty"`
	Error    string      `json:"error,omitempty"`
}

func HandleToolCall(req ToolRequest) ToolResponse {
	return HandleToolCallContext(context.Background(), req)
}

// HandleToolCallContext runs one tool call on a fresh Context that aborts
// when ctx is done.
func HandleToolCallContext(ctx context.Context, req ToolRequest) ToolResponse {
	getExpr := func(key string) (Expr, error) {
		v, ok := req.Params[key]
		if !ok {
			return nil, fmt.Errorf("missing param: %s", key)
		}
		val, ok := v.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("invalid type for param %s", key)
		}
		return FromJSON(val)
	}
	getExprList := func(key string) ([]Expr, error) {
		v, ok := req.Params[key]
		if !ok {
			return nil, nil
		}
		raw, ok := v.([]interface{})
		if !ok {
			return nil, fmt.Errorf("param %s must be array", key)
		}
		result := make([]Expr, len(raw))
		for i, r := range raw {
			m, ok := r.(map[string]interface{})
			if !ok {
				return nil, fmt.Errorf("param %s[%d] must be expression object", key, i)
			}
			e, err := FromJSON(m)
			if err != nil {
				return nil, err
			}
			result[i] = e
		}
		return result, nil
	}
	getString := func(key string) (string, error) {
		v, ok := req.Params[key]
		if !ok {
			return "", fmt.Errorf("missing param: %s", key)
		}
		s, ok := v.(string)
		if !ok {
			return "", fmt.Errorf("param %s must be a string", key)
		}
		return s, nil
	}
	// getRat accepts a JSON number or a rational string such as "-3/2".
	getRat := func(key string, def *big.Rat) (*big.Rat, error) {
		v, ok := req.Params[key]
		if !ok {
			if def == nil {
				return nil, fmt.Errorf("missing param: %s", key)
			}
			return def, nil
		}
		switch t := v.(type) {
		case float64:
			r := new(big.Rat)
			if r.SetFloat64(t) == nil {
				return nil, fmt.Errorf("param %s must be finite", key)
			}
			return r, nil
		case string:
			r, ok := new(big.Rat).SetString(t)
			if !ok {
				return nil, fmt.Errorf("param %s: invalid rational %q", key, t)
			}
			return r, nil
		}
		return nil, fmt.Errorf("param %s must be a number or rational string", key)
	}
	getInt := func(key string, def int) (int, error) {
		v, ok := req.Params[key]
		if !ok {
			return def, nil
		}
		n, ok := v.(float64)
		if !ok || n != float64(int(n)) {
			return 0, fmt.Errorf("param %s must be an integer", key)
		}
		return int(n), nil
	}
	getAlphabet := func() (Alphabet, error) {
		v, ok := req.Params["digits"]
		if !ok {
			return Alphabet{}, nil
		}
		switch t := v.(type) {
		case string:
			for set := DigitsAuto; set < DigitsCustom; set++ {
				if set.String() == t {
					return Alphabet{Set: set}, nil
				}
			}
			return Alphabet{}, fmt.Errorf("unknown digit set %q", t)
		case []interface{}:
			tokens := make([]string, len(t))
			for i, it := range t {
				s, ok := it.(string)
				if !ok {
					return Alphabet{}, fmt.Errorf("param digits[%d] must be string", i)
				}
				tokens[i] = s
			}
			return Alphabet{Set: DigitsCustom, Tokens: tokens}, nil
		}
		return Alphabet{}, fmt.Errorf("param digits must be a digit set name or an array of digits")
	}
	getOptions := func() (Options, error) {
		v, ok := req.Params["options"]
		if !ok {
			return DefaultOptions(), nil
		}
		m, ok := v.(map[string]interface{})
		if !ok {
			return Options{}, fmt.Errorf("param options must be an object")
		}
		return OptionsFromJSON(m)
	}

	c := NewContext(ctx)
	messages := func() []string {
		msgs := c.Messages()
		if len(msgs) == 0 {
			return nil
		}
		out := make([]string, len(msgs))
		for i, m := range msgs {
			out[i] = m.String()
		}
		return out
	}
	respond := func(e Expr) ToolResponse {
		return ToolResponse{Result: e.toJSON(), LaTeX: e.LaTeX(), String: e.String(), Messages: messages()}
	}

	switch req.Tool {
	case "calculate":
		e, err := getExpr("expr")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		opts, err := getOptions()
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		out, err := c.Calculate(e, opts)
		resp := respond(out)
		if err != nil {
			resp.Error = err.Error()
		}
		return resp

	case "call":
		name, err := getString("func")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		id, ok := FunctionByName(name)
		if !ok {
			return ToolResponse{Error: fmt.Sprintf("unknown function: %s", name)}
		}
		args, err := getExprList("args")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		opts, err := getOptions()
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		out, status := c.CallFunction(id, args, opts)
		resp := respond(out)
		resp.Status = status.String()
		return resp

	case "represents":
		e, err := getExpr("expr")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		name, err := getString("property")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		p, ok := PropertyByName(name)
		if !ok {
			return ToolResponse{Error: fmt.Sprintf("unknown property: %s", name)}
		}
		holds := c.Represents(e, p)
		return ToolResponse{Result: holds, String: fmt.Sprintf("%s: %t", p, holds)}

	case "parse_base":
		text, err := getString("text")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		style, _ := req.Params["style"].(string)
		var n *big.Rat
		var warnings []string
		switch style {
		case "roman", "bijective":
			parse := ParseRoman
			if style == "bijective" {
				parse = ParseBijective
			}
			var v *big.Int
			v, warnings, err = parse(text)
			if err == nil {
				n = new(big.Rat).SetInt(v)
			}
		case "", "positional":
			opts, oerr := getOptions()
			if oerr != nil {
				return ToolResponse{Error: oerr.Error()}
			}
			b, berr := getRat("base", big.NewRat(opts.Parse.base(), 1))
			if berr != nil {
				return ToolResponse{Error: berr.Error()}
			}
			alpha, aerr := getAlphabet()
			if aerr != nil {
				return ToolResponse{Error: aerr.Error()}
			}
			n, warnings, err = ParseBase(text, b, alpha, opts.Parse)
		default:
			return ToolResponse{Error: fmt.Sprintf("unknown style: %s", style)}
		}
		if err != nil {
			return ToolResponse{Error: err.Error(), Messages: warnings}
		}
		resp := respond(RatOf(n))
		resp.Messages = warnings
		return resp

	case "format_base":
		v, err := getRat("value", nil)
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		style, _ := req.Params["style"].(string)
		var s string
		switch style {
		case "roman", "bijective":
			if !v.IsInt() || !v.Num().IsInt64() {
				return ToolResponse{Error: "value must be a machine-sized integer"}
			}
			format := FormatRoman
			if style == "bijective" {
				format = FormatBijective
			}
			s, err = format(v.Num().Int64())
		case "", "positional":
			b, berr := getInt("base", 10)
			if berr != nil {
				return ToolResponse{Error: berr.Error()}
			}
			maxFrac, ferr := getInt("max_fraction_digits", 20)
			if ferr != nil {
				return ToolResponse{Error: ferr.Error()}
			}
			alpha, aerr := getAlphabet()
			if aerr != nil {
				return ToolResponse{Error: aerr.Error()}
			}
			opts, oerr := getOptions()
			if oerr != nil {
				return ToolResponse{Error: oerr.Error()}
			}
			s, err = FormatBase(v, int64(b), alpha, opts.Parse, maxFrac)
		default:
			return ToolResponse{Error: fmt.Sprintf("unknown style: %s", style)}
		}
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		return ToolResponse{Result: s, String: s}

	case "functions":
		names := FunctionNames()
		return ToolResponse{Result: names, String: strings.Join(names, ", ")}

	case "mcp_spec":
		return ToolResponse{Result: MCPToolSpec(), String: "MCP tool specification"}
	}

	return ToolResponse{Error: fmt.Sprintf("unknown tool: %s", req.Tool)}
}

// ============================================================
// MCP spec
// ============================================================

func MCPToolSpec() string {
	tools := []map[string]interface{}{
		ts("calculate", "Evaluate an expression. Optional options: approximation (exact|try_exact|approximate), allow_complex, allow_infinite, angle_unit, precision, decimal_point, base", []string{"expr"}, map[string]string{"expr": "object", "options": "object"}),
		ts("call", "Apply one built-in function to args and report how it was handled", []string{"func"}, map[string]string{"func": "string", "args": "array", "options": "object"}),
		ts("represents", "Test whether an expression provably has a property (positive, negative, nonnegative, nonpositive, nonzero, integer, rational, real, number, even, odd)", []string{"expr", "property"}, map[string]string{"expr": "object", "property": "string"}),
		ts("parse_base", "Read a digit string. style: positional (default), roman or bijective; base may be a rational string; digits: digit set name or array", []string{"text"}, map[string]string{"text": "string", "base": "string", "digits": "array", "style": "string", "options": "object"}),
		ts("format_base", "Write a rational value as a digit string in an integer base, roman or bijective style", []string{"value"}, map[string]string{"value": "string", "base": "integer", "digits": "array", "max_fraction_digits": "integer", "style": "string"}),
		ts("functions", "List the built-in function names", []string{}, map[string]string{}),
		ts("mcp_spec", "Return this tool schema", []string{}, map[string]string{}),
	}
	spec := map[string]interface{}{"tools": tools}
	b, _ := json.MarshalIndent(spec, "", "  ")
	return string(b)
}

func ts(name, description string, required []string, props map[string]string) map[string]interface{} {
	properties := map[string]interface{}{}
	for k, typ := range props {
		properties[k] = map[string]interface{}{"type": typ}
	}
	return map[string]interface{}{
		"name":        name,
		"description": description,
		"inputSchema": map[string]interface{}{
			"type":       "object",
			"properties": properties,
			"required":   required,
		},
	}
}
