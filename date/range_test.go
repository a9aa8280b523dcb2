package date

import (
	"testing"
	"time"
)

func TestYearsUpTo(t *testing.T) {
	to := New(2025, time.October, 15)
	r := YearsUpTo(to, 4)
	want := Range{From: New(2021, time.October, 15), To: to}
	if r != want {
		t.Errorf("YearsUpTo() = %v, want %v", r, want)
	}
	if !r.Contains(New(2023, time.January, 1)) {
		t.Errorf("Contains(2023-01-01) = false, want true")
	}
	if r.Contains(New(2021, time.October, 14)) {
		t.Errorf("Contains(2021-10-14) = true, want false")
	}
}

func TestRange_Identifier(t *testing.T) {
	testCases := []struct {
		name string
		in   Range
		want string
	}{
		{"daily", NewRange(New(2025, time.September, 8), Daily), "2025-09-08"},
		{"monthly", NewRange(New(2024, time.February, 15), Monthly), "2024-02"},
		{"yearly", NewRange(New(2024, time.June, 15), Yearly), "2024"},
		{"special", Range{From: New(2024, time.January, 3), To: New(2024, time.March, 4)}, "2024-01-03_2024-03-04"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.in.Identifier(); got != tc.want {
				t.Errorf("Identifier() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestParsePeriod(t *testing.T) {
	for in, want := range map[string]Period{"day": Daily, "Monthly": Monthly, "year": Yearly} {
		got, err := ParsePeriod(in)
		if err != nil {
			t.Fatalf("ParsePeriod(%q) error = %v", in, err)
		}
		if got != want {
			t.Errorf("ParsePeriod(%q) = %v, want %v", in, got, want)
		}
	}
	if _, err := ParsePeriod("weekly"); err == nil {
		t.Errorf("ParsePeriod(weekly) error = nil, want error")
	}
}
