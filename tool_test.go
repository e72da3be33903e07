package gocalc_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/gocalc"
)

const sinPiOverSix = `{"type": "call", "func": "sin", "args": [
	{"type": "mul", "factors": [{"type": "num", "value": "1/6"}, {"type": "sym", "name": "pi"}]}
]}`

func tool(t *testing.T, name, params string) gocalc.ToolResponse {
	t.Helper()
	return gocalc.HandleToolCall(gocalc.ToolRequest{Tool: name, Params: decode(t, params)})
}

func TestTool_Calculate(t *testing.T) {
	resp := tool(t, "calculate", `{"expr": `+sinPiOverSix+`, "options": {"approximation": "exact"}}`)
	require.Empty(t, resp.Error)
	assert.Equal(t, "1/2", resp.String)
	assert.Equal(t, `\frac{1}{2}`, resp.LaTeX)
	result, ok := resp.Result.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "num", result["type"])

	resp = tool(t, "calculate", `{"expr": {"type": "call", "func": "sin", "args": [{"type": "num", "value": "1"}]},
		"options": {"approximation": "approximate", "precision": 20}}`)
	require.Empty(t, resp.Error)
	assert.Contains(t, resp.String, "0.84147")
}

func TestTool_CalculateMessages(t *testing.T) {
	resp := tool(t, "calculate", `{"expr": {"type": "call", "func": "hex", "args": [{"type": "text", "value": "f_f"}]}}`)
	require.Empty(t, resp.Error)
	assert.Equal(t, "255", resp.String)
	require.Len(t, resp.Messages, 1)
	assert.Contains(t, resp.Messages[0], "warning")
}

func TestTool_CalculateErrors(t *testing.T) {
	resp := tool(t, "calculate", `{}`)
	assert.Contains(t, resp.Error, "missing param: expr")

	resp = tool(t, "calculate", `{"expr": 3}`)
	assert.NotEmpty(t, resp.Error)

	resp = tool(t, "calculate", `{"expr": {"type": "num", "value": "1"}, "options": {"approximation": "sloppy"}}`)
	assert.Contains(t, resp.Error, "approximation")

	resp = tool(t, "calculate", `{"expr": {"type": "num", "value": "1"}, "options": []}`)
	assert.NotEmpty(t, resp.Error)
}

func TestTool_Aborted(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	resp := gocalc.HandleToolCallContext(ctx, gocalc.ToolRequest{
		Tool:   "calculate",
		Params: map[string]interface{}{"expr": decode(t, sinPiOverSix)},
	})
	assert.Contains(t, resp.Error, "aborted")
}

func TestTool_Call(t *testing.T) {
	resp := tool(t, "call", `{"func": "sin", "args": [{"type": "num", "value": "0"}]}`)
	require.Empty(t, resp.Error)
	assert.Equal(t, "rewritten", resp.Status)
	assert.Equal(t, "0", resp.String)

	resp = tool(t, "call", `{"func": "sin", "args": [{"type": "num", "value": "1"}], "options": {"approximation": "exact"}}`)
	assert.Equal(t, "unhandled", resp.Status)

	resp = tool(t, "call", `{"func": "abs", "args": [{"type": "vector", "elems": [{"type": "num", "value": "-2"}]}]}`)
	assert.Equal(t, "not_applicable", resp.Status)
	assert.Equal(t, "[2]", resp.String)

	resp = tool(t, "call", `{"func": "frob"}`)
	assert.Equal(t, "unknown function: frob", resp.Error)
}

func TestTool_Represents(t *testing.T) {
	resp := tool(t, "represents", `{"expr": {"type": "num", "value": "2"}, "property": "even"}`)
	require.Empty(t, resp.Error)
	assert.Equal(t, true, resp.Result)
	assert.Equal(t, "even: true", resp.String)

	resp = tool(t, "represents", `{"expr": {"type": "sym", "name": "x"}, "property": "real"}`)
	assert.Equal(t, false, resp.Result)

	resp = tool(t, "represents", `{"expr": {"type": "num", "value": "2"}, "property": "prime"}`)
	assert.Equal(t, "unknown property: prime", resp.Error)
}

func TestTool_ParseBase(t *testing.T) {
	resp := tool(t, "parse_base", `{"text": "FF", "base": 16}`)
	require.Empty(t, resp.Error)
	assert.Equal(t, "255", resp.String)

	resp = tool(t, "parse_base", `{"text": "11", "base": "-2"}`)
	require.Empty(t, resp.Error)
	assert.Equal(t, "-1", resp.String)

	resp = tool(t, "parse_base", `{"text": "zZ", "base": 62, "digits": "two_case"}`)
	require.Empty(t, resp.Error)
	assert.Equal(t, "3817", resp.String)

	resp = tool(t, "parse_base", `{"text": "ba", "base": 3, "digits": ["a", "b", "c"]}`)
	require.Empty(t, resp.Error)
	assert.Equal(t, "3", resp.String)

	resp = tool(t, "parse_base", `{"text": "1_0"}`)
	require.Empty(t, resp.Error)
	assert.Equal(t, "10", resp.String)
	assert.Len(t, resp.Messages, 1)

	resp = tool(t, "parse_base", `{"text": "MCMXCIV", "style": "roman"}`)
	assert.Equal(t, "1994", resp.String)

	resp = tool(t, "parse_base", `{"text": "AA", "style": "bijective"}`)
	assert.Equal(t, "27", resp.String)

	resp = tool(t, "parse_base", `{"text": "", "base": 10}`)
	assert.NotEmpty(t, resp.Error)

	resp = tool(t, "parse_base", `{"text": "1", "style": "mayan"}`)
	assert.Equal(t, "unknown style: mayan", resp.Error)
}

func TestTool_FormatBase(t *testing.T) {
	resp := tool(t, "format_base", `{"value": "255/2", "base": 16}`)
	require.Empty(t, resp.Error)
	assert.Equal(t, "7F.8", resp.String)
	assert.Equal(t, "7F.8", resp.Result)

	resp = tool(t, "format_base", `{"value": 10}`)
	assert.Equal(t, "10", resp.String)

	resp = tool(t, "format_base", `{"value": 2024, "style": "roman"}`)
	assert.Equal(t, "MMXXIV", resp.String)

	resp = tool(t, "format_base", `{"value": 27, "style": "bijective"}`)
	assert.Equal(t, "AA", resp.String)

	resp = tool(t, "format_base", `{"value": "1/2", "style": "roman"}`)
	assert.NotEmpty(t, resp.Error)

	resp = tool(t, "format_base", `{"value": 1, "base": 2.5}`)
	assert.NotEmpty(t, resp.Error)
}

func TestTool_Functions(t *testing.T) {
	resp := tool(t, "functions", `{}`)
	names, ok := resp.Result.([]string)
	require.True(t, ok)
	assert.Equal(t, gocalc.FunctionNames(), names)
	assert.Contains(t, resp.String, "atan2")
}

func TestTool_Unknown(t *testing.T) {
	resp := tool(t, "nope", `{}`)
	assert.Equal(t, "unknown tool: nope", resp.Error)
}

func TestMCPToolSpec(t *testing.T) {
	spec := gocalc.MCPToolSpec()
	require.True(t, json.Valid([]byte(spec)))

	var parsed struct {
		Tools []struct {
			Name        string `json:"name"`
			InputSchema struct {
				Required []string `json:"required"`
			} `json:"inputSchema"`
		} `json:"tools"`
	}
	require.NoError(t, json.Unmarshal([]byte(spec), &parsed))
	var names []string
	for _, tl := range parsed.Tools {
		names = append(names, tl.Name)
		if tl.Name == "calculate" {
			assert.Equal(t, []string{"expr"}, tl.InputSchema.Required)
		}
	}
	assert.ElementsMatch(t, []string{"calculate", "call", "represents", "parse_base", "format_base", "functions", "mcp_spec"}, names)

	resp := tool(t, "mcp_spec", `{}`)
	assert.Equal(t, spec, resp.Result)
}
