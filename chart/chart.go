// Package chart draws the price and return series of an analysis as PNG
// images.
package chart

import (
	"errors"

	"github.com/etnz/riskreturn"
	"github.com/vicanso/go-charts/v2"
)

// ErrNoData is returned when the analysis timeline is too short to draw.
var ErrNoData = errors.New("chart: not enough months to draw")

// NormalizedPrices draws every asset price rebased to 1 on the first month.
func NormalizedPrices(a *riskreturn.Analysis) ([]byte, error) {
	values := make([][]float64, 0, len(a.Assets))
	for _, s := range a.Assets {
		values = append(values, a.NormalizedPrices(s))
	}
	return render("Normalized prices", a.Assets, a.Labels(), values)
}

// CumulativeReturns draws the compounded return of every asset since the
// first month, where it is 0.
func CumulativeReturns(a *riskreturn.Analysis) ([]byte, error) {
	values := make([][]float64, 0, len(a.Assets))
	for _, s := range a.Assets {
		values = append(values, append([]float64{0}, a.CumulativeReturns(s)...))
	}
	return render("Cumulative returns", a.Assets, a.Labels(), values)
}

func render(title string, legend, labels []string, values [][]float64) ([]byte, error) {
	if len(labels) < 2 {
		return nil, ErrNoData
	}
	for _, v := range values {
		if len(v) != len(labels) {
			// a zero first price cannot be rebased.
			return nil, ErrNoData
		}
	}
	painter, err := charts.LineRender(values,
		charts.PNGTypeOption(),
		charts.TitleTextOptionFunc(title),
		charts.XAxisDataOptionFunc(labels),
		charts.LegendLabelsOptionFunc(legend),
		charts.ThemeOptionFunc(charts.ThemeLight),
		charts.WidthOptionFunc(1024),
		charts.HeightOptionFunc(576),
	)
	if err != nil {
		return nil, err
	}
	return painter.Bytes()
}
