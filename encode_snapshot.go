package riskreturn

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/etnz/riskreturn/date"
)

// A snapshot is persisted as JSONL so that it stays human-readable and
// git-friendly:
//
//	{"assets":["PETR4.SA","VALE3.SA"],"benchmark":"^BVSP","from":"2021-10-15","to":"2025-10-15"}
//	{"symbol":"PETR4.SA","on":"2021-10-15","price":28.4}
//	...
//
// The first line is the header, then one line per observation, sorted by
// symbol then date.

type jsnapshotHeader struct {
	Assets    []string  `json:"assets"`
	Benchmark string    `json:"benchmark,omitempty"`
	From      date.Date `json:"from"`
	To        date.Date `json:"to"`
}

type jobservation struct {
	Symbol string    `json:"symbol"`
	On     date.Date `json:"on"`
	Price  float64   `json:"price"`
}

// EncodeSnapshot writes s as JSONL into w.
func EncodeSnapshot(w io.Writer, s *Snapshot) error {
	enc := json.NewEncoder(w)
	header := jsnapshotHeader{Assets: s.Assets(), Benchmark: s.benchmark, From: s.rng.From, To: s.rng.To}
	if err := enc.Encode(header); err != nil {
		return fmt.Errorf("cannot encode snapshot header: %w", err)
	}

	symbols := s.symbols()
	slices.Sort(symbols)
	for _, symbol := range symbols {
		for on, price := range s.prices[symbol].Values() {
			var line jsonObjectWriter
			line.Append("symbol", symbol).Append("on", on).Append("price", price)
			b, err := line.MarshalJSON()
			if err != nil {
				return fmt.Errorf("cannot encode %s on %s: %w", symbol, on, err)
			}
			if _, err := fmt.Fprintf(w, "%s\n", b); err != nil {
				return err
			}
		}
	}
	return nil
}

// DecodeSnapshot reads a snapshot written by EncodeSnapshot.
// filename is for error messages only.
func DecodeSnapshot(filename string, r io.Reader) (*Snapshot, error) {
	scanner := bufio.NewScanner(r)
	var s *Snapshot
	i := 0
	for scanner.Scan() {
		i++
		txt := scanner.Bytes()
		if strings.TrimSpace(string(txt)) == "" {
			continue
		}
		if s == nil {
			var h jsnapshotHeader
			if err := json.Unmarshal(txt, &h); err != nil {
				return nil, fmt.Errorf("parse error %s:%v: not a correct snapshot header: %w", filename, i, err)
			}
			if len(h.Assets) == 0 {
				return nil, fmt.Errorf("parse error %s:%v: snapshot header has no asset", filename, i)
			}
			s = NewSnapshot(date.Range{From: h.From, To: h.To}, h.Assets, h.Benchmark)
			continue
		}
		var o jobservation
		if err := json.Unmarshal(txt, &o); err != nil {
			return nil, fmt.Errorf("parse error %s:%v: not a correct observation: %w", filename, i, err)
		}
		if o.Symbol == "" || o.On.IsZero() {
			return nil, fmt.Errorf("parse error %s:%v: observation requires a symbol and a date", filename, i)
		}
		s.Add(o.Symbol, Observation{Date: o.On, Price: o.Price})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", filename, err)
	}
	if s == nil {
		return nil, fmt.Errorf("parse error %s: empty snapshot", filename)
	}
	return s, nil
}

// SaveSnapshot writes s into a file.
func SaveSnapshot(filename string, s *Snapshot) (err error) {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("cannot create snapshot file: %w", err)
	}
	defer func() { err = errors.Join(err, f.Close()) }()
	w := bufio.NewWriter(f)
	if err := EncodeSnapshot(w, s); err != nil {
		return err
	}
	return w.Flush()
}

// LoadSnapshot reads a snapshot from a file.
func LoadSnapshot(filename string) (*Snapshot, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("cannot open snapshot file: %w", err)
	}
	defer f.Close()
	return DecodeSnapshot(filename, f)
}
