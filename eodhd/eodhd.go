// Package eodhd implements a riskreturn.PriceSource on top of the EOD
// Historical Data API (https://eodhd.com).
package eodhd

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/etnz/riskreturn"
	"github.com/etnz/riskreturn/date"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// DefaultBaseURL is the root of the EODHD API.
const DefaultBaseURL = "https://eodhd.com/api"

// Source fetches daily prices from EODHD.
type Source struct {
	APIKey  string
	BaseURL string
	Client  *http.Client
	log     zerolog.Logger
}

// New returns a Source using a disk cache that expires daily.
func New(apiKey string, log zerolog.Logger) *Source {
	log = log.With().Str("component", "eodhd").Logger()
	return &Source{
		APIKey:  apiKey,
		BaseURL: DefaultBaseURL,
		Client:  newDailyCachingClient(log),
		log:     log,
	}
}

// Ticker converts a symbol into an EODHD ticker.
//
// Exchange suffixes are the same as Yahoo's for the exchanges this tool
// targets ("PETR4.SA"), indices are prefixed with a caret ("^BVSP") and live
// on the virtual "INDX" exchange. A symbol without exchange is a US one.
func Ticker(symbol string) string {
	if index, ok := strings.CutPrefix(symbol, "^"); ok {
		return index + ".INDX"
	}
	if !strings.Contains(symbol, ".") {
		return symbol + ".US"
	}
	return symbol
}

// Prices returns the daily prices of symbol in r, adjusted for splits and
// dividends when EODHD provides the adjusted close.
func (s *Source) Prices(ctx context.Context, symbol string, r date.Range) ([]riskreturn.Observation, error) {
	// https://eodhd.com/api/eod/PETR4.SA?api_token=demo&fmt=json&from=2021-10-15&to=2025-10-15
	// [
	//	{
	//		"date": "2024-02-13",
	//		"open": 41.5,
	//		"high": 42.1,
	//		"low": 41.2,
	//		"close": 41.83,
	//		"adjusted_close": 36.9,
	//		"volume": 41256100
	//	},
	// bounds are included in the response.
	addr := fmt.Sprintf("%s/eod/%s?fmt=json&api_token=%s&from=%s&to=%s",
		s.BaseURL, url.PathEscape(Ticker(symbol)), url.QueryEscape(s.APIKey), r.From, r.To)
	type Info struct {
		Date          date.Date           `json:"date"`
		Close         decimal.NullDecimal `json:"close"`
		AdjustedClose decimal.NullDecimal `json:"adjusted_close"`
	}

	content := make([]Info, 0)
	if err := jwget(ctx, s.Client, addr, &content); err != nil {
		return nil, fmt.Errorf("eodhd: %s: %w", symbol, err)
	}

	obs := make([]riskreturn.Observation, 0, len(content))
	for _, info := range content {
		price := info.AdjustedClose
		if !price.Valid {
			price = info.Close
		}
		if !price.Valid {
			continue
		}
		obs = append(obs, riskreturn.Observation{Date: info.Date, Price: price.Decimal.InexactFloat64()})
	}
	s.log.Debug().Str("symbol", symbol).Int("observations", len(obs)).Msg("prices fetched")
	return obs, nil
}

// SearchResult matches the structure of a single item in the EODHD search API response.
type SearchResult struct {
	Code              string    `json:"Code"`
	Exchange          string    `json:"Exchange"`
	Name              string    `json:"Name"`
	Type              string    `json:"Type"`
	Country           string    `json:"Country"`
	Currency          string    `json:"Currency"`
	ISIN              string    `json:"ISIN"`
	PreviousClose     float64   `json:"previousClose"`
	PreviousCloseDate date.Date `json:"previousCloseDate"`
}

// Symbol returns the symbol to analyze this result.
func (r SearchResult) Symbol() string {
	switch r.Exchange {
	case "US":
		return r.Code
	case "INDX":
		return "^" + r.Code
	}
	return r.Code + "." + r.Exchange
}

// Search searches for securities matching a name, a ticker or an ISIN.
func (s *Source) Search(ctx context.Context, term string) ([]SearchResult, error) {
	addr := fmt.Sprintf("%s/search/%s?api_token=%s&fmt=json", s.BaseURL, url.PathEscape(term), url.QueryEscape(s.APIKey))
	var results []SearchResult
	if err := jwget(ctx, s.Client, addr, &results); err != nil {
		return nil, fmt.Errorf("eodhd: search %q: %w", term, err)
	}
	return results, nil
}
