package agent

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/etnz/riskreturn"
	"github.com/etnz/riskreturn/date"
	"github.com/rs/zerolog"
	"google.golang.org/genai"
)

func analysis(t *testing.T, benchmark ...float64) *riskreturn.Analysis {
	t.Helper()
	jan := date.NewMonth(2023, time.January)
	series := map[string][]float64{
		"PETR4.SA": {30, 31, 29, 32, 33, 31, 34, 35, 36, 34, 37, 38, 39},
		"VALE3.SA": {60, 62, 61, 65, 63, 66, 68, 67, 70, 69, 72, 71, 68},
		"^BVSP":    benchmark,
	}
	s := riskreturn.NewSnapshot(date.Range{}, []string{"PETR4.SA", "VALE3.SA"}, "^BVSP")
	for symbol, prices := range series {
		for i, p := range prices {
			m := date.NewMonth(jan.Year, jan.Month+time.Month(i))
			s.Add(symbol, riskreturn.Observation{Date: m.Last(), Price: p})
		}
	}
	cfg := riskreturn.DefaultConfig()
	cfg.Assets = []string{"PETR4.SA", "VALE3.SA"}
	cfg.Currency = "USD"
	a, err := riskreturn.NewEngine(zerolog.Nop()).Analyze(s, cfg)
	if err != nil {
		t.Fatalf("Analyze() unexpected error: %v", err)
	}
	return a
}

var ibov = []float64{100, 102, 101, 104, 105, 103, 107, 108, 110, 109, 112, 113, 115}

// call invokes the named function of lib and returns its output or error.
func call(lib Library, name string, args map[string]any) (output, errMsg string) {
	resp := lib(context.Background(), &genai.FunctionCall{ID: "1", Name: name, Args: args})
	output, _ = resp.Response["output"].(string)
	errMsg, _ = resp.Response["error"].(string)
	return output, errMsg
}

func TestLibrary_UnknownFunction(t *testing.T) {
	lib := NewLibrary(AnalysisFunctions(analysis(t, ibov...)))
	resp := lib(context.Background(), &genai.FunctionCall{ID: "42", Name: "nope"})
	if resp.ID != "42" || resp.Name != "nope" {
		t.Errorf("response is for %s/%s, want 42/nope", resp.ID, resp.Name)
	}
	if got, _ := resp.Response["error"].(string); got != "unknown function nope" {
		t.Errorf("error = %q, want %q", got, "unknown function nope")
	}
}

func TestAnalysisFunctions(t *testing.T) {
	a := analysis(t, ibov...)
	lib := NewLibrary(AnalysisFunctions(a))

	names := []string{}
	for _, d := range NewDeclaration(AnalysisFunctions(a)) {
		names = append(names, d.Name)
	}
	if got, want := strings.Join(names, ","), "asset_statistics,capm,allocation"; got != want {
		t.Errorf("declarations = %s, want %s", got, want)
	}

	testCases := []struct {
		name     string
		function string
		args     map[string]any
		want     string
		wantErr  string
	}{
		{
			name:     "statistics",
			function: "asset_statistics",
			args:     map[string]any{"symbol": "PETR4.SA"},
			want:     "- latest price: $39.00",
		},
		{
			name:     "period return",
			function: "asset_statistics",
			args:     map[string]any{"symbol": "PETR4.SA"},
			want:     "- period return: 30.00%",
		},
		{
			name:     "unknown asset",
			function: "asset_statistics",
			args:     map[string]any{"symbol": "ITUB4.SA"},
			wantErr:  `unknown asset "ITUB4.SA"`,
		},
		{
			name:     "benchmark is not an asset",
			function: "capm",
			args:     map[string]any{"symbol": "^BVSP"},
			wantErr:  `unknown asset "^BVSP"`,
		},
		{
			name:     "wrong type",
			function: "capm",
			args:     map[string]any{"symbol": 3},
			wantErr:  "argument 'symbol' is not a string as expected but int",
		},
		{
			name:     "capm",
			function: "capm",
			args:     map[string]any{"symbol": "VALE3.SA"},
			want:     "- beta against ^BVSP: ",
		},
		{
			name:     "allocation",
			function: "allocation",
			want:     "VALE3.SA",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out, errMsg := call(lib, tc.function, tc.args)
			if tc.wantErr != "" {
				if !strings.Contains(errMsg, tc.wantErr) {
					t.Errorf("%s() error = %q, want it to contain %q", tc.function, errMsg, tc.wantErr)
				}
				return
			}
			if errMsg != "" {
				t.Fatalf("%s() unexpected error: %s", tc.function, errMsg)
			}
			if !strings.Contains(out, tc.want) {
				t.Errorf("%s() = %q, want it to contain %q", tc.function, out, tc.want)
			}
		})
	}
}

func TestAnalysisFunctions_FailedStage(t *testing.T) {
	flat := []float64{100, 100, 100, 100, 100, 100, 100, 100, 100, 100, 100, 100, 100}
	a := analysis(t, flat...)
	if a.CAPM != nil {
		t.Fatalf("CAPM computed against a flat benchmark")
	}
	_, errMsg := call(NewLibrary(AnalysisFunctions(a)), "capm", map[string]any{"symbol": "PETR4.SA"})
	if !strings.Contains(errMsg, "undefined") {
		t.Errorf("capm() error = %q, want the undefined beta failure", errMsg)
	}
}

func TestNewAnalyst(t *testing.T) {
	e := NewAnalyst(analysis(t, ibov...), zerolog.Nop())
	if got := e.Declaration().Name; got != "Analyst" {
		t.Errorf("Declaration().Name = %q, want Analyst", got)
	}
	instruction := e.Config.SystemInstruction.Parts[0].Text
	if !strings.Contains(instruction, "PETR4.SA") {
		t.Errorf("system instruction does not contain the report")
	}
	if len(e.Config.Tools[0].FunctionDeclarations) != 3 {
		t.Errorf("analyst has %d tools, want 3", len(e.Config.Tools[0].FunctionDeclarations))
	}
}

func TestExpertCall_InvalidQuestion(t *testing.T) {
	e := NewTrader()
	resp := e.Call(context.Background(), "1", map[string]any{"question": 12})
	if got, _ := resp.Response["error"].(string); got != "invalid type got int, expected string" {
		t.Errorf("Call() error = %q", got)
	}
}
