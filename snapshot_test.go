package riskreturn

import (
	"bytes"
	"context"
	"errors"
	"math"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/etnz/riskreturn/date"
	"github.com/google/go-cmp/cmp"
)

func TestSnapshot_Add(t *testing.T) {
	s := NewSnapshot(date.Range{}, []string{"A"}, "M")
	on := date.New(2024, time.January, 31)
	kept := s.Add("A",
		Observation{Date: on, Price: 10},
		Observation{Date: on.Add(1), Price: math.NaN()},
		Observation{Date: on.Add(2), Price: math.Inf(1)},
		Observation{Date: on.Add(3), Price: -1},
		Observation{Date: on.Add(4), Price: 0},
	)
	if kept != 2 {
		t.Errorf("Add() kept %d observations, want 2", kept)
	}
	if got := s.Prices("M").Len(); got != 0 {
		t.Errorf("benchmark has %d prices, want 0", got)
	}
	if s.Prices("unknown") != nil {
		t.Error("Prices() of an unknown symbol should be nil")
	}
}

const snapshotJSONL = `{"assets":["B","A"],"benchmark":"M","from":"2024-01-01","to":"2024-12-31"}
{"symbol":"A","on":"2024-01-31","price":10}
{"symbol":"A","on":"2024-02-29","price":11.5}
{"symbol":"B","on":"2024-01-31","price":20}
{"symbol":"M","on":"2024-01-31","price":1000}
`

func TestDecodeEncodeSnapshot(t *testing.T) {
	s, err := DecodeSnapshot("test.jsonl", strings.NewReader(snapshotJSONL))
	if err != nil {
		t.Fatalf("DecodeSnapshot() unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"B", "A"}, s.Assets()); diff != "" {
		t.Errorf("Assets() mismatch (-want +got):\n%s", diff)
	}
	if s.Benchmark() != "M" {
		t.Errorf("Benchmark() = %q, want %q", s.Benchmark(), "M")
	}
	if got, ok := s.Prices("A").Get(date.New(2024, time.February, 29)); !ok || got != 11.5 {
		t.Errorf("A on 2024-02-29 = %v, %v, want 11.5", got, ok)
	}

	var buf bytes.Buffer
	if err := EncodeSnapshot(&buf, s); err != nil {
		t.Fatalf("EncodeSnapshot() unexpected error: %v", err)
	}
	if diff := cmp.Diff(snapshotJSONL, buf.String()); diff != "" {
		t.Errorf("EncodeSnapshot() mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeSnapshot_Errors(t *testing.T) {
	tests := []struct {
		name, input string
	}{
		{"empty", ""},
		{"no asset", `{"benchmark":"M","from":"2024-01-01","to":"2024-12-31"}`},
		{"bad header", `not json`},
		{"bad observation", `{"assets":["A"],"from":"2024-01-01","to":"2024-12-31"}` + "\n" + `{"symbol":"A","on":"2024-13-01","price":1}`},
		{"no symbol", `{"assets":["A"],"from":"2024-01-01","to":"2024-12-31"}` + "\n" + `{"on":"2024-01-01","price":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeSnapshot("test.jsonl", strings.NewReader(tt.input)); err == nil {
				t.Errorf("DecodeSnapshot(%q) should fail", tt.input)
			}
		})
	}
}

func TestSaveLoadSnapshot(t *testing.T) {
	s := NewSnapshot(date.YearsUpTo(date.New(2024, time.December, 31), 1), []string{"A"}, "")
	s.Add("A", monthly(date.NewMonth(2024, time.January), 1, 2, 3)...)

	filename := filepath.Join(t.TempDir(), "snapshot.jsonl")
	if err := SaveSnapshot(filename, s); err != nil {
		t.Fatalf("SaveSnapshot() unexpected error: %v", err)
	}
	got, err := LoadSnapshot(filename)
	if err != nil {
		t.Fatalf("LoadSnapshot() unexpected error: %v", err)
	}
	if diff := cmp.Diff(s, got, cmp.AllowUnexported(Snapshot{}, date.Date{}, date.History[float64]{})); diff != "" {
		t.Errorf("LoadSnapshot(SaveSnapshot()) mismatch (-want +got):\n%s", diff)
	}
}

// fakeSource serves prices from memory.
type fakeSource map[string][]Observation

func (f fakeSource) Prices(ctx context.Context, symbol string, r date.Range) ([]Observation, error) {
	obs, ok := f[symbol]
	if !ok {
		return nil, errors.New("unknown symbol")
	}
	var in []Observation
	for _, o := range obs {
		if r.Contains(o.Date) {
			in = append(in, o)
		}
	}
	return in, nil
}

func TestFetch(t *testing.T) {
	jan := date.NewMonth(2024, time.January)
	src := fakeSource{
		"A": monthly(jan, 1, 2, 3),
		"B": monthly(jan, 4, 5, math.NaN()),
		"M": monthly(jan, 7, 8, 9),
	}
	r := date.Range{From: date.New(2024, time.February, 1), To: date.New(2024, time.December, 31)}

	s, err := Fetch(context.Background(), src, []string{"A", "B"}, "M", r)
	if err != nil {
		t.Fatalf("Fetch() unexpected error: %v", err)
	}
	for symbol, want := range map[string]int{"A": 2, "B": 1, "M": 2} {
		if got := s.Prices(symbol).Len(); got != want {
			t.Errorf("Fetch() %s has %d prices, want %d", symbol, got, want)
		}
	}
	if s.Range() != r {
		t.Errorf("Range() = %v, want %v", s.Range(), r)
	}

	if _, err := Fetch(context.Background(), src, []string{"A", "X"}, "M", r); err == nil {
		t.Error("Fetch() of an unknown symbol should fail")
	}
}

func TestAnalysisRange(t *testing.T) {
	got := AnalysisRange(date.New(2025, time.October, 15), 4)
	want := date.Range{From: date.New(2021, time.October, 15), To: date.New(2025, time.October, 15)}
	if got != want {
		t.Errorf("AnalysisRange() = %v, want %v", got, want)
	}
}
