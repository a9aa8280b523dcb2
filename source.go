package riskreturn

import (
	"context"
	"fmt"
	"sync"

	"github.com/etnz/riskreturn/date"
	"golang.org/x/sync/errgroup"
)

// PriceSource supplies the daily price history of a symbol over a date range,
// in increasing date order. Prices may include invalid values, they are
// filtered out when added to a Snapshot.
type PriceSource interface {
	Prices(ctx context.Context, symbol string, r date.Range) ([]Observation, error)
}

// maxConcurrentFetches bounds the number of simultaneous requests to a source.
const maxConcurrentFetches = 4

// AnalysisRange returns the analysis window: the given number of years up to
// today, both included.
func AnalysisRange(today date.Date, years int) date.Range {
	return date.YearsUpTo(today, years)
}

// Fetch retrieves the prices of every asset and of the benchmark from src,
// concurrently, and returns them as a Snapshot.
//
// A failing request fails the whole fetch. A symbol without observations is
// not an error here, it is reported by the analysis as missing data.
func Fetch(ctx context.Context, src PriceSource, assets []string, benchmark string, r date.Range) (*Snapshot, error) {
	s := NewSnapshot(r, assets, benchmark)

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentFetches)
	for _, symbol := range s.symbols() {
		g.Go(func() error {
			obs, err := src.Prices(ctx, symbol, r)
			if err != nil {
				return fmt.Errorf("cannot fetch prices of %q: %w", symbol, err)
			}
			mu.Lock()
			defer mu.Unlock()
			s.Add(symbol, obs...)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return s, nil
}
