package stats

import (
	"math"
	"testing"
)

const tolerance = 1e-9

func approx(a, b float64) bool { return math.Abs(a-b) <= tolerance }

func TestMean(t *testing.T) {
	testCases := []struct {
		name string
		in   []float64
		want float64
	}{
		{"empty", nil, 0},
		{"single", []float64{5}, 5},
		{"several", []float64{1, 2, 3, 4}, 2.5},
		{"negative", []float64{-0.1, 0.1, 0.3}, 0.1},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Mean(tc.in); !approx(got, tc.want) {
				t.Errorf("Mean(%v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestSampleStdDev(t *testing.T) {
	testCases := []struct {
		name string
		in   []float64
		want float64
	}{
		{"empty", []float64{}, 0},
		{"single", []float64{5}, 0},
		{"constant", []float64{0.1, 0.1, 0.1}, 0},
		// mean 5, squared deviations 9+1+1+9 = 20, /3
		{"bessel", []float64{2, 4, 6, 8}, math.Sqrt(20.0 / 3)},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := SampleStdDev(tc.in); !approx(got, tc.want) {
				t.Errorf("SampleStdDev(%v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestSampleCovariance(t *testing.T) {
	testCases := []struct {
		name   string
		xs, ys []float64
		want   float64
	}{
		{"empty", nil, nil, 0},
		{"single", []float64{1}, []float64{2}, 0},
		// means 2 and 4, products (-1*-2)+(0*0)+(1*2) = 4, /2
		{"linear", []float64{1, 2, 3}, []float64{2, 4, 6}, 2},
		{"opposite", []float64{1, 2, 3}, []float64{3, 2, 1}, -1},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := SampleCovariance(tc.xs, tc.ys); !approx(got, tc.want) {
				t.Errorf("SampleCovariance(%v, %v) = %v, want %v", tc.xs, tc.ys, got, tc.want)
			}
		})
	}
}

func TestSampleCovarianceIsVariance(t *testing.T) {
	xs := []float64{0.02, -0.01, 0.05, 0.03, -0.04}
	if got, want := SampleCovariance(xs, xs), SampleVariance(xs); !approx(got, want) {
		t.Errorf("SampleCovariance(xs, xs) = %v, want SampleVariance(xs) = %v", got, want)
	}
}

func TestSampleCovarianceLengthMismatch(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("SampleCovariance() with mismatched lengths did not panic")
		}
	}()
	SampleCovariance([]float64{1, 2}, []float64{1})
}

func TestCorrelation(t *testing.T) {
	testCases := []struct {
		name   string
		xs, ys []float64
		want   float64
	}{
		{"constant y", []float64{1, 2, 3}, []float64{5, 5, 5}, 0},
		{"constant x", []float64{0.3, 0.3, 0.3}, []float64{1, 2, 3}, 0},
		{"perfect", []float64{1, 2, 3}, []float64{10, 20, 30}, 1},
		{"inverse", []float64{1, 2, 3}, []float64{3, 2, 1}, -1},
		{"empty", nil, nil, 0},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Correlation(tc.xs, tc.ys); !approx(got, tc.want) {
				t.Errorf("Correlation(%v, %v) = %v, want %v", tc.xs, tc.ys, got, tc.want)
			}
		})
	}
}

func TestAnnualize(t *testing.T) {
	if got := AnnualizeMean(0.01); !approx(got, 0.12) {
		t.Errorf("AnnualizeMean(0.01) = %v, want 0.12", got)
	}
	if got := AnnualizeVariance(0.002); !approx(got, 0.024) {
		t.Errorf("AnnualizeVariance(0.002) = %v, want 0.024", got)
	}
	if got := AnnualizeStdDev(0.05); !approx(got, 0.05*math.Sqrt(12)) {
		t.Errorf("AnnualizeStdDev(0.05) = %v, want %v", got, 0.05*math.Sqrt(12))
	}
}
