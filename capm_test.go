package riskreturn

import (
	"errors"
	"testing"

	"github.com/etnz/riskreturn/stats"
	"github.com/google/go-cmp/cmp"
)

func TestEstimateCAPM(t *testing.T) {
	market := []float64{0.02, -0.01, 0.03, 0.01, -0.02, 0.04}
	marketAnnual := stats.AnnualizeMean(stats.Mean(market))

	double := make([]float64, len(market))
	for i, r := range market {
		double[i] = 2 * r
	}

	tests := []struct {
		name     string
		asset    []float64
		rf       float64
		wantBeta float64
		wantE    float64
	}{
		{"lockstep", market, 0.05, 1, marketAnnual},
		{"lockstep with negative rate", market, -0.01, 1, marketAnnual},
		{"twice the market", double, 0.05, 2, 0.05 + 2*(marketAnnual-0.05)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EstimateCAPM("A", tt.asset, "M", market, tt.rf)
			if err != nil {
				t.Fatalf("EstimateCAPM() unexpected error: %v", err)
			}
			want := CAPMEstimate{Symbol: "A", Periods: len(market), Beta: tt.wantBeta, ExpectedReturn: tt.wantE}
			if diff := cmp.Diff(want, got, approx); diff != "" {
				t.Errorf("EstimateCAPM() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEstimateCAPM_MostRecentPeriods(t *testing.T) {
	// The benchmark has two older periods, they are ignored.
	asset := []float64{0.02, -0.01, 0.03, 0.01}
	market := append([]float64{0.5, -0.5}, asset...)

	got, err := EstimateCAPM("A", asset, "M", market, 0)
	if err != nil {
		t.Fatalf("EstimateCAPM() unexpected error: %v", err)
	}
	if got.Periods != 4 || !cmp.Equal(got.Beta, 1.0, approx) {
		t.Errorf("EstimateCAPM() = %+v, want beta 1 over 4 periods", got)
	}
}

func TestEstimateCAPM_UndefinedBeta(t *testing.T) {
	var undefined *UndefinedBetaError
	_, err := EstimateCAPM("A", []float64{0.1, 0.2, 0.3}, "M", []float64{0.01, 0.01, 0.01}, 0.05)
	if !errors.As(err, &undefined) {
		t.Fatalf("EstimateCAPM() = %v, want an *UndefinedBetaError", err)
	}
	if undefined.Symbol != "A" || undefined.Benchmark != "M" {
		t.Errorf("EstimateCAPM() error = %+v, want it to name the asset and the benchmark", undefined)
	}
}

func TestDescribeMarket(t *testing.T) {
	got := DescribeMarket("M", []float64{0.01, 0.03})
	want := Market{
		Symbol:          "M",
		Periods:         2,
		MeanMonthly:     0.02,
		MeanAnnual:      0.24,
		VarianceMonthly: 0.0002,
		VarianceAnnual:  0.0024,
	}
	if diff := cmp.Diff(want, got, approx); diff != "" {
		t.Errorf("DescribeMarket() mismatch (-want +got):\n%s", diff)
	}
}
