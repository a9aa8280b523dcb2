package agent

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/etnz/riskreturn"
	"github.com/etnz/riskreturn/docs"
	"github.com/etnz/riskreturn/renderer"
	"github.com/rs/zerolog"
	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

// creates the facilitator
func newFacilitator(experts ...*Expert) *Expert {
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

			The user is here to understand the risk and the return of a portfolio of stocks that has just
			been analyzed, and how the budget is allocated between them.

			Devise a plan of questions to ask to each experts and come up with the best response to the user's request.
			Never make up a figure, every number must come from the Analyst.
		`}}},
		},
		Library: NewLibrary(experts),
		Log:     zerolog.Nop(),
	}
}

// NewTrader returns an expert grounded on Google Search, for news about the
// analyzed companies and markets.
func NewTrader() *Expert {
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
		Log: zerolog.Nop(),
	}
}

// NewAnalyst returns an expert on the given analysis. Its instructions hold
// the full report, and its tools look up precise figures.
func NewAnalyst(a *riskreturn.Analysis, log zerolog.Logger) *Expert {
	lib := AnalysisFunctions(a)
	method, err := docs.GetTopic("method")
	if err != nil {
		method = ""
	}
	return &Expert{
		Name: "Analyst",
		Description: `This is the Analyst. It computed the risk and return statistics of the user's portfolio:
		returns, volatility, correlations, CAPM betas and the share allocation of the budget.
		Ask the Analyst for any figure about the portfolio and how it was computed.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are a quantitative analyst. You analyzed the user's portfolio, the full report is below.
				Use the Tools when you need a figure with more precision than the report.
				Explain the figures in plain words, and mention the warnings of the report when they matter.

				` + method + `

				` + renderer.Markdown(a),
			}}},
		},
		Library: NewLibrary(lib),
		Log:     log.With().Str("component", "analyst").Logger(),
	}
}

// symbolSchema is the parameter of functions about one asset.
func symbolSchema(a *riskreturn.Analysis) *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"symbol": {
				Type:        genai.TypeString,
				Description: "The asset symbol, one of " + strings.Join(a.Assets, ", "),
				Enum:        a.Assets,
			},
		},
		Required: []string{"symbol"},
	}
}

// symbolArg returns the asset named by the "symbol" argument.
func symbolArg(a *riskreturn.Analysis, args map[string]any) (string, error) {
	symbol, ok := args["symbol"].(string)
	if !ok {
		return "", fmt.Errorf("argument 'symbol' is not a string as expected but %T", args["symbol"])
	}
	if !slices.Contains(a.Assets, symbol) {
		return "", fmt.Errorf("unknown asset %q, want one of %s", symbol, strings.Join(a.Assets, ", "))
	}
	return symbol, nil
}

// stageError returns why a stage has no result.
func stageError(a *riskreturn.Analysis, stage riskreturn.Stage) error {
	if err := a.Failed(stage); err != nil {
		return err
	}
	return fmt.Errorf("%s was not computed", stage)
}

// AnalysisFunctions returns the functions to look up figures in a.
func AnalysisFunctions(a *riskreturn.Analysis) []Function {
	const statistics, capm, allocation = "asset_statistics", "capm", "allocation"
	return []Function{
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name:        statistics,
				Description: "Return statistics of an asset: latest price, period return, monthly and annual mean return and standard deviation.",
				Parameters:  symbolSchema(a),
				Response:    &genai.Schema{Type: genai.TypeString, Description: "A markdown list of figures."},
			},
			Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
				symbol, err := symbolArg(a, args)
				if err != nil {
					return failure(id, statistics, err)
				}
				s, _ := a.Statistic(symbol)
				var b strings.Builder
				fmt.Fprintf(&b, "- latest price: %v\n", riskreturn.M(a.LatestPrices[symbol], a.Config.Currency))
				fmt.Fprintf(&b, "- period return: %v\n", riskreturn.Pct(a.PeriodReturns[symbol]))
				fmt.Fprintf(&b, "- mean return: %.6f monthly, %.6f annual\n", s.MeanMonthly, s.MeanAnnual)
				fmt.Fprintf(&b, "- standard deviation: %.6f monthly, %.6f annual\n", s.StdDevMonthly, s.StdDevAnnual)
				fmt.Fprintf(&b, "- monthly returns: %d\n", s.Periods)
				return output(id, statistics, b.String())
			},
		},
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name:        capm,
				Description: "CAPM estimate of an asset against the benchmark: beta and expected annual return.",
				Parameters:  symbolSchema(a),
				Response:    &genai.Schema{Type: genai.TypeString, Description: "A markdown list of figures."},
			},
			Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
				symbol, err := symbolArg(a, args)
				if err != nil {
					return failure(id, capm, err)
				}
				if a.CAPM == nil {
					return failure(id, capm, stageError(a, riskreturn.StageCAPM))
				}
				e, ok := a.CAPM.Estimate(symbol)
				if !ok {
					if err := a.CAPM.Failures[symbol]; err != nil {
						return failure(id, capm, err)
					}
					return failure(id, capm, fmt.Errorf("no estimate for %q", symbol))
				}
				m := a.CAPM.Market
				var b strings.Builder
				fmt.Fprintf(&b, "- beta against %s: %.6f\n", m.Symbol, e.Beta)
				fmt.Fprintf(&b, "- expected annual return: %.6f\n", e.ExpectedReturn)
				fmt.Fprintf(&b, "- risk-free rate: %.6f\n", a.CAPM.RiskFreeRate)
				fmt.Fprintf(&b, "- market annual mean return: %.6f over %d months\n", m.MeanAnnual, m.Periods)
				return output(id, capm, b.String())
			},
		},
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name:        allocation,
				Description: "The number of shares bought for each asset with the budget, the invested amount and the remaining cash.",
				Response:    &genai.Schema{Type: genai.TypeString, Description: "A markdown table."},
			},
			Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
				if a.Allocation == nil {
					return failure(id, allocation, stageError(a, riskreturn.StageAllocation))
				}
				return output(id, allocation, renderer.RenderAllocation(renderer.NewReport(a)))
			},
		},
	}
}
