package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/etnz/riskreturn"
	"github.com/etnz/riskreturn/date"
)

func TestEnv(t *testing.T) {
	t.Setenv("RR_TEST_VALUE", "12.5")
	t.Setenv("RR_TEST_EMPTY", "")

	if got := env("RR_TEST_VALUE", "x"); got != "12.5" {
		t.Errorf("env() = %q, want 12.5", got)
	}
	if got := env("RR_TEST_EMPTY", "x"); got != "x" {
		t.Errorf("env() of an empty variable = %q, want the fallback", got)
	}
	if got := envFloat("RR_TEST_VALUE", 1); got != 12.5 {
		t.Errorf("envFloat() = %v, want 12.5", got)
	}
	if got := envInt("RR_TEST_MISSING", 4); got != 4 {
		t.Errorf("envInt() = %v, want 4", got)
	}
}

func TestSource(t *testing.T) {
	defer func(s, k string) { *sourceFlag, *eodhdKeyFlag = s, k }(*sourceFlag, *eodhdKeyFlag)

	testCases := []struct {
		source, key string
		wantErr     bool
	}{
		{"yahoo", "", false},
		{"eodhd", "demo", false},
		{"eodhd", "", true},
		{"bloomberg", "", true},
	}
	for _, tc := range testCases {
		t.Run(tc.source, func(t *testing.T) {
			*sourceFlag, *eodhdKeyFlag = tc.source, tc.key
			_, err := source(logger())
			if (err != nil) != tc.wantErr {
				t.Errorf("source(%q) error = %v, wantErr %v", tc.source, err, tc.wantErr)
			}
		})
	}
}

func TestAnalyze_Snapshot(t *testing.T) {
	jan := date.NewMonth(2023, time.January)
	s := riskreturn.NewSnapshot(date.YearsUpTo(date.New(2023, time.December, 31), 1), []string{"A", "B"}, "M")
	series := map[string][]float64{
		"A": {10, 11, 10.5, 12, 12.5, 12, 13, 13.5, 14, 13.8, 14.5, 15, 15.5},
		"B": {20, 19, 21, 22, 21, 23, 24, 23, 25, 26, 25, 27, 28},
		"M": {100, 102, 101, 104, 105, 103, 107, 108, 110, 109, 112, 113, 115},
	}
	for symbol, prices := range series {
		for i, p := range prices {
			s.Add(symbol, riskreturn.Observation{Date: date.NewMonth(jan.Year, jan.Month+time.Month(i)).Last(), Price: p})
		}
	}
	filename := filepath.Join(t.TempDir(), "snapshot.jsonl")
	if err := riskreturn.SaveSnapshot(filename, s); err != nil {
		t.Fatalf("SaveSnapshot() unexpected error: %v", err)
	}

	defer func(f string) { *snapshotFlag = f }(*snapshotFlag)
	*snapshotFlag = filename

	a, err := analyze(context.Background())
	if err != nil {
		t.Fatalf("analyze() unexpected error: %v", err)
	}
	if got := strings.Join(a.Assets, ","); got != "A,B" {
		t.Errorf("analyzed assets = %s, want the snapshot ones A,B", got)
	}
	if a.Benchmark != "M" {
		t.Errorf("analyzed benchmark = %s, want M", a.Benchmark)
	}
	if len(a.Failures) != 0 {
		t.Errorf("analyze() failures = %v", a.Failures)
	}
}

func TestFprintMarkdown_NotATerminal(t *testing.T) {
	var b bytes.Buffer
	fprintMarkdown(&b, "# Title\n")
	if got := b.String(); got != "# Title\n" {
		t.Errorf("fprintMarkdown() = %q, want the raw markdown", got)
	}
}

func TestMain(m *testing.M) {
	// assets set in the environment would take precedence over the snapshot ones.
	os.Unsetenv(EnvAssets)
	os.Exit(m.Run())
}
