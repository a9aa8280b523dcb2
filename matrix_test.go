package riskreturn

import (
	"testing"

	"github.com/etnz/riskreturn/stats"
	"github.com/google/go-cmp/cmp"
)

func TestCovarianceMatrix(t *testing.T) {
	symbols := []string{"A", "B", "C"}
	returns := map[string][]float64{
		"A": {0.01, 0.02, -0.01, 0.03},
		"B": {0.02, 0.04, -0.02, 0.06}, // 2*A
		"C": {0.01, 0.01, 0.01, 0.01},  // constant
	}
	cov := CovarianceMatrix(symbols, returns)
	corr := CorrelationMatrix(symbols, returns)

	varA := stats.SampleVariance(returns["A"])
	tests := []struct {
		a, b      string
		cov, corr float64
	}{
		{"A", "A", varA, 1},
		{"A", "B", 2 * varA, 1},
		{"B", "A", 2 * varA, 1},
		{"B", "B", 4 * varA, 1},
		{"A", "C", 0, 0},
		{"C", "C", 0, 0},
	}
	for _, tt := range tests {
		if got, ok := cov.At(tt.a, tt.b); !ok || !cmp.Equal(got, tt.cov, approx) {
			t.Errorf("cov(%s,%s) = %v, %v, want %v", tt.a, tt.b, got, ok, tt.cov)
		}
		if got, ok := corr.At(tt.a, tt.b); !ok || !cmp.Equal(got, tt.corr, approx) {
			t.Errorf("corr(%s,%s) = %v, %v, want %v", tt.a, tt.b, got, ok, tt.corr)
		}
	}
	if _, ok := cov.At("A", "Z"); ok {
		t.Error("At() of an unknown symbol should not be ok")
	}

	annual := cov.Annualized()
	if got, _ := annual.At("A", "B"); !cmp.Equal(got, 24*varA, approx) {
		t.Errorf("annualized cov(A,B) = %v, want %v", got, 24*varA)
	}
	// the monthly matrix is left untouched.
	if got, _ := cov.At("A", "B"); !cmp.Equal(got, 2*varA, approx) {
		t.Errorf("cov(A,B) after Annualized() = %v, want %v", got, 2*varA)
	}
	if diff := cmp.Diff(symbols, annual.Symbols()); diff != "" {
		t.Errorf("Symbols() mismatch (-want +got):\n%s", diff)
	}
}

func TestDescribe(t *testing.T) {
	got := Describe("A", []float64{0.01, 0.03})
	want := AssetStatistics{
		Symbol:        "A",
		Periods:       2,
		MeanMonthly:   0.02,
		MeanAnnual:    0.24,
		StdDevMonthly: 0.014142135623730951,
		StdDevAnnual:  0.04898979485566356,
	}
	if diff := cmp.Diff(want, got, approx); diff != "" {
		t.Errorf("Describe() mismatch (-want +got):\n%s", diff)
	}
}
