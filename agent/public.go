package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/etnz/pnl"
	"github.com/etnz/pnl/docs"
	"github.com/etnz/pnl/renderer"
	"github.com/rs/zerolog"
	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

// ReportSource evaluates the current snapshot.
type ReportSource func(ctx context.Context) (*pnl.Report, error)

// creates the facilitator
func newFacilitator(log zerolog.Logger, experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			As a facilitator you are in charge of the conversation and solving the user's request.

			Learn about the expert's skill that you can get from the Tools to ask them questions.
			They are at your service and 100% dedicated to you, they keep context of your previous questions.

			The user holds positions at several brokers. They are here primarily to understand their consolidated
			positions, their profit and loss, and the risk they are exposed to.

			Devise a plan of questions to ask to each experts and come up with the best response to the user's request.
			The user will assume that you know about their symbols, ask the Analyst first to understand what they are.
		`}}},
		},
		Library: NewLibrary(experts),
		Log:     log,
	}
}

// NewTrader returns an expert grounded with Google Search.
func NewTrader(log zerolog.Logger) *Expert {
	return &Expert{
		Name: "Trader",
		Description: `This is an expert trader,
		Very well aware of all the financial products and institutions,
		about the latest news about the different funds or companies.
		Ask the Trader whenever you need recent or grounding information.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are a expert in Trading, you can search and find about anything related to
			financial institutions, companies, markets, funds etc. You Leverage Google Search to
			ground your assertions in a solid truth.
			You can get the latests news too, and you know how to relate them to the user's request.
				`}}},
		},
		Log: log,
	}
}

// NewAnalyst returns the expert reading the consolidated report.
func NewAnalyst(source ReportSource, log zerolog.Logger) *Expert {
	lib := Tools(source)
	return &Expert{
		Name: "Analyst",
		Description: `This is the Analyst. It reads the user's positions consolidated across all their brokers.
		It knows the per symbol positions, the per broker profit and loss, the portfolio totals and the risk metrics.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are an analyst in charge of the user's multi-broker portfolio.
				You know how to use the Tools to extract relevant information about the user's positions.
				You are part of a team of experts, yours is everything about the user's portfolio. They might ask
				you questions about the user's portfolio, pardon their approximative language and figure out what they meant.

				Here is how the figures are computed:

				` + must(docs.GetTopic("metrics"))}}},
		},
		Library: NewLibrary(lib),
		Log:     log,
	}
}

// Func implements a simple Function
type Func struct {
	// Declare this function
	Decl *genai.FunctionDeclaration
	// Call this function
	Func func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse
}

func (f *Func) Declaration() *genai.FunctionDeclaration { return f.Decl }
func (f *Func) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	return f.Func(ctx, id, args)
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// Tools returns the functions exposing the report of source.
func Tools(source ReportSource) []Function {
	return []Function{
		reportFunc(source, "Positions",
			`Positions lists the positions consolidated per symbol across all brokers: quantity, average price,
			current price, value, profit and loss, and the brokers holding them.`,
			map[string]*genai.Schema{
				"sort": {
					Type:        genai.TypeString,
					Description: "Optional sort key: symbol, value or pnl. Value and pnl sort the largest first.",
					Enum:        renderer.SortKeys,
				},
				"broker": {
					Type:        genai.TypeString,
					Description: "Optional broker id, to list only the positions held at that broker.",
				},
			},
			func(r *pnl.Report, args map[string]any) (string, error) {
				positions := r.Positions
				if broker, err := stringArg(args, "broker"); err != nil {
					return "", err
				} else if broker != "" {
					positions = renderer.FilterBroker(positions, broker)
				}
				key, err := stringArg(args, "sort")
				if err != nil {
					return "", err
				}
				if positions, err = renderer.SortPositions(positions, key); err != nil {
					return "", err
				}
				return renderer.PositionsMarkdown(positions), nil
			}),
		reportFunc(source, "Brokers",
			`Brokers lists, for each broker holding positions, its value, profit and loss, win and loss counts,
			and its best and worst performing positions.`,
			nil,
			func(r *pnl.Report, _ map[string]any) (string, error) {
				return renderer.BrokersMarkdown(r.Brokers), nil
			}),
		reportFunc(source, "Summary",
			`Summary returns the portfolio totals across all brokers, and the best and worst performing brokers.`,
			nil,
			func(r *pnl.Report, _ map[string]any) (string, error) {
				return renderer.TotalsMarkdown(r.Totals), nil
			}),
		reportFunc(source, "Risk",
			`Risk returns the risk snapshot: drawdown, value at risk, beta, volatility, Sharpe ratio,
			concentration and the sector exposure.`,
			nil,
			func(r *pnl.Report, _ map[string]any) (string, error) {
				return renderer.RiskMarkdown(r), nil
			}),
		reportFunc(source, "Report",
			`Report returns the complete report as JSON, for precise figures.`,
			nil,
			func(r *pnl.Report, _ map[string]any) (string, error) {
				data, err := json.Marshal(r)
				return string(data), err
			}),
	}
}

// reportFunc declares a function rendering the report of source.
func reportFunc(source ReportSource, name, description string, params map[string]*genai.Schema, render func(*pnl.Report, map[string]any) (string, error)) *Func {
	decl := &genai.FunctionDeclaration{
		Name:        name,
		Description: description,
		Response: &genai.Schema{
			Type:        genai.TypeString,
			Description: "The requested view of the portfolio, markdown formatted unless stated otherwise.",
		},
	}
	if params != nil {
		decl.Parameters = &genai.Schema{Type: genai.TypeObject, Properties: params}
	}
	return &Func{
		Decl: decl,
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			r, err := source(ctx)
			if err != nil {
				return failure(id, name, fmt.Errorf("could not evaluate the portfolio: %w", err))
			}
			out, err := render(r, args)
			if err != nil {
				return failure(id, name, err)
			}
			return success(id, name, out)
		},
	}
}

// stringArg returns the optional string argument name.
func stringArg(args map[string]any, name string) (string, error) {
	v, ok := args[name]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("argument %q is not a string as expected but %T", name, v)
	}
	return s, nil
}
