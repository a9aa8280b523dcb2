// Package yahoo implements a riskreturn.PriceSource on top of the Yahoo
// Finance chart API. It needs no API key, which makes it the default source.
package yahoo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/riskreturn"
	"github.com/etnz/riskreturn/date"
	"github.com/rs/zerolog"
)

// DefaultHosts are tried in turn, the second one is a mirror of the first.
var DefaultHosts = []string{"https://query1.finance.yahoo.com", "https://query2.finance.yahoo.com"}

// DefaultBackoffs are the pauses between two rounds over all hosts.
var DefaultBackoffs = []time.Duration{200 * time.Millisecond, 500 * time.Millisecond, 1 * time.Second}

// Source fetches daily prices from Yahoo Finance.
type Source struct {
	Hosts    []string
	Backoffs []time.Duration
	Client   *http.Client
	log      zerolog.Logger
}

// New returns a Source with the default hosts and backoffs.
func New(log zerolog.Logger) *Source {
	return &Source{
		Hosts:    DefaultHosts,
		Backoffs: DefaultBackoffs,
		Client:   http.DefaultClient,
		log:      log.With().Str("component", "yahoo").Logger(),
	}
}

// Prices returns the daily prices of symbol in r. The adjusted close is
// preferred over the close, days without a price are skipped.
func (s *Source) Prices(ctx context.Context, symbol string, r date.Range) ([]riskreturn.Observation, error) {
	query := url.Values{}
	query.Set("period1", fmt.Sprint(r.From.Time().Unix()))
	query.Set("period2", fmt.Sprint(r.To.Add(1).Time().Unix()))
	query.Set("interval", "1d")
	query.Set("events", "div,splits")

	var lastErr error
	for attempt := 0; attempt < len(s.Backoffs)+1; attempt++ {
		for _, host := range s.Hosts {
			addr := fmt.Sprintf("%s/v8/finance/chart/%s?%s", host, url.PathEscape(symbol), query.Encode())
			body, err := s.get(ctx, symbol, addr)
			if err != nil {
				lastErr = err
				s.log.Debug().Err(err).Str("host", host).Int("attempt", attempt).Msg("chart request failed")
				continue
			}
			obs, err := parseChart(body)
			if err != nil {
				return nil, fmt.Errorf("yahoo: %s: %w", symbol, err)
			}
			s.log.Debug().Str("symbol", symbol).Int("observations", len(obs)).Msg("prices fetched")
			return obs, nil
		}
		if attempt < len(s.Backoffs) {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(s.Backoffs[attempt]):
			}
		}
	}
	return nil, fmt.Errorf("yahoo: %s: %w", symbol, lastErr)
}

// get returns the body of a successful GET request.
func (s *Source) get(ctx context.Context, symbol, addr string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4 Safari/605.1.15")
	req.Header.Set("Accept", "application/json, text/javascript, */*; q=0.01")
	req.Header.Set("Referer", fmt.Sprintf("https://finance.yahoo.com/quote/%s/chart", strings.ToUpper(symbol)))
	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cannot http GET %v%v: %v", req.URL.Host, req.URL.Path, resp.Status)
	}
	return body, nil
}

// parseChart extracts observations from a chart response:
//
//	{"chart":{"result":[{
//	  "meta":{"currency":"BRL","symbol":"PETR4.SA","gmtoffset":-10800, ...},
//	  "timestamp":[1704196800, ...],
//	  "indicators":{"quote":[{"close":[37.1, ...], ...}],"adjclose":[{"adjclose":[33.2, ...]}]}
//	}],"error":null}}
func parseChart(body []byte) ([]riskreturn.Observation, error) {
	var jobj any
	if err := json.Unmarshal(body, &jobj); err != nil {
		return nil, fmt.Errorf("not a correct json: %w", err)
	}
	if jerr, err := jsonpath.Get("$.chart.error.description", jobj); err == nil && jerr != nil {
		return nil, fmt.Errorf("chart error: %v", jerr)
	}

	timestamps, err := array("$.chart.result[0].timestamp", jobj)
	if err != nil {
		// no trading day in the range.
		return []riskreturn.Observation{}, nil
	}
	prices, err := array("$.chart.result[0].indicators.adjclose[0].adjclose", jobj)
	if err != nil {
		prices, err = array("$.chart.result[0].indicators.quote[0].close", jobj)
		if err != nil {
			return nil, err
		}
	}
	if len(prices) != len(timestamps) {
		return nil, fmt.Errorf("%d prices for %d timestamps", len(prices), len(timestamps))
	}

	// Timestamps are the market open, shifted to the exchange time zone they
	// fall on the trading day.
	var offset float64
	if jval, err := jsonpath.Get("$.chart.result[0].meta.gmtoffset", jobj); err == nil {
		offset, _ = jval.(float64)
	}

	obs := make([]riskreturn.Observation, 0, len(prices))
	for i, jts := range timestamps {
		ts, ok := jts.(float64)
		if !ok {
			return nil, fmt.Errorf("timestamp %v is not a number", jts)
		}
		price, ok := prices[i].(float64)
		if !ok { // null
			continue
		}
		on := date.Of(time.Unix(int64(ts+offset), 0).UTC())
		obs = append(obs, riskreturn.Observation{Date: on, Price: price})
	}
	return obs, nil
}

// array returns the JSON array at path.
func array(path string, jobj any) ([]any, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return nil, fmt.Errorf("cannot read %q: %w", path, err)
	}
	jlist, ok := jval.([]any)
	if !ok {
		return nil, errors.New(path + " is not an array")
	}
	return jlist, nil
}
