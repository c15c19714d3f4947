package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/etnz/pnl"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func inr(v float64) pnl.Money { return pnl.M(v, "INR") }

func testSource(context.Context) (*pnl.Report, error) {
	return pnl.Evaluate(&pnl.Snapshot{
		Currency: "INR",
		Positions: []pnl.BrokerPosition{
			{Symbol: "TCS", BrokerID: "B1", Quantity: pnl.Q(10), AvgPrice: inr(100), CurrentPrice: inr(110), PnL: inr(100), Sector: "IT"},
			{Symbol: "HDFC", BrokerID: "B2", Quantity: pnl.Q(2), AvgPrice: inr(1500), CurrentPrice: inr(1500), Sector: "Finance"},
			{Symbol: "TCS", BrokerID: "B2", Quantity: pnl.Q(10), AvgPrice: inr(120), CurrentPrice: inr(110), PnL: inr(-100), Sector: "IT"},
		},
		Brokers: []pnl.BrokerConnection{
			{ID: "B1", DisplayName: "Zerodha"},
			{ID: "B2", DisplayName: "Upstox"},
		},
	}), nil
}

func call(lib Library, name string, args map[string]any) *genai.FunctionResponse {
	return lib(context.Background(), &genai.FunctionCall{ID: "42", Name: name, Args: args})
}

func TestTools(t *testing.T) {
	lib := NewLibrary(Tools(testSource))

	tests := []struct {
		name string
		args map[string]any
		want []string
	}{
		{"Positions", nil, []string{"TCS", "HDFC", "B1, B2"}},
		{"Brokers", nil, []string{"Zerodha", "Upstox"}},
		{"Summary", nil, []string{"₹5,200.00"}},
		{"Risk", nil, []string{"Sector Exposure", "Finance"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := call(lib, tt.name, tt.args)
			assert.Equal(t, "42", resp.ID)
			assert.Equal(t, tt.name, resp.Name)
			require.NotContains(t, resp.Response, "error")
			out, ok := resp.Response["output"].(string)
			require.True(t, ok)
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
		})
	}
}

func TestTools_PositionsArguments(t *testing.T) {
	lib := NewLibrary(Tools(testSource))

	resp := call(lib, "Positions", map[string]any{"broker": "B1", "sort": "value"})
	out := resp.Response["output"].(string)
	assert.Contains(t, out, "TCS")
	assert.NotContains(t, out, "HDFC")

	resp = call(lib, "Positions", map[string]any{"sort": "volume"})
	assert.Contains(t, resp.Response["error"], "unknown sort key")

	resp = call(lib, "Positions", map[string]any{"broker": 12.0})
	assert.Contains(t, resp.Response["error"], "not a string")
}

func TestTools_Report(t *testing.T) {
	lib := NewLibrary(Tools(testSource))
	resp := call(lib, "Report", nil)
	out := resp.Response["output"].(string)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Contains(t, decoded, "positions")
	assert.Contains(t, decoded, "risk")
}

func TestTools_SourceError(t *testing.T) {
	lib := NewLibrary(Tools(func(context.Context) (*pnl.Report, error) {
		return nil, errors.New("no snapshot")
	}))
	resp := call(lib, "Summary", nil)
	assert.Contains(t, resp.Response["error"], "no snapshot")
}

func TestLibrary_UnknownFunction(t *testing.T) {
	resp := call(NewLibrary(Tools(testSource)), "Trade", nil)
	assert.Equal(t, "Trade", resp.Name)
	assert.Contains(t, resp.Response["error"], "unknown function")
}

func TestNewDeclaration(t *testing.T) {
	decls := NewDeclaration(Tools(testSource))
	var names []string
	for _, d := range decls {
		names = append(names, d.Name)
	}
	assert.Equal(t, []string{"Positions", "Brokers", "Summary", "Risk", "Report"}, names)
	require.NotNil(t, decls[0].Parameters)
	assert.Contains(t, decls[0].Parameters.Properties, "sort")
	assert.Nil(t, decls[1].Parameters)
}

func TestExpert_Declaration(t *testing.T) {
	e := NewAnalyst(testSource, zerolog.Nop())
	d := e.Declaration()
	assert.Equal(t, "Analyst", d.Name)
	assert.Equal(t, []string{"question"}, d.Parameters.Required)

	resp := e.Call(context.Background(), "1", map[string]any{"question": 3})
	assert.Contains(t, resp.Response["error"], "invalid question type")
}

func TestAgent_ByeBeforeAnyQuestion(t *testing.T) {
	var out bytes.Buffer
	a := New(&out, strings.NewReader("\n  \nbye\n"), zerolog.Nop(), NewTrader(zerolog.Nop()))
	// a started facilitator is needed to enter the loop, it is never asked.
	a.Facilitator.chat = &genai.Chat{}

	require.NoError(t, a.Run(context.Background(), nil))
	assert.Contains(t, out.String(), "Welcome")
	assert.Equal(t, 3, strings.Count(out.String(), prompt))
}

func TestAgent_EndOfInput(t *testing.T) {
	var out bytes.Buffer
	a := New(&out, strings.NewReader(""), zerolog.Nop())
	a.Facilitator.chat = &genai.Chat{}
	assert.NoError(t, a.Run(context.Background(), nil))
}
