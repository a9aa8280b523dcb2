package date

import (
	"fmt"
	"time"
)

const monthFormat = "2006-01"

// Month identifies a calendar month irrespective of the day.
//
// It is an alignment unit, not a timestamp: two dates of the same month
// have the same Month.
type Month struct {
	Year  int
	Month time.Month
}

// MonthOf returns the calendar month of d.
func MonthOf(d Date) Month { return Month{d.y, d.m} }

// NewMonth returns a normalized Month (e.g. month 13 of 2024 is January 2025).
func NewMonth(year int, month time.Month) Month {
	return MonthOf(New(year, month, 1))
}

// Compare returns -1, 0 or +1 depending on whether m is before, equal to or after x.
func (m Month) Compare(x Month) int {
	switch {
	case m.Year < x.Year:
		return -1
	case m.Year > x.Year:
		return 1
	case m.Month < x.Month:
		return -1
	case m.Month > x.Month:
		return 1
	}
	return 0
}

// Before reports whether m is strictly before x.
func (m Month) Before(x Month) bool { return m.Compare(x) < 0 }

// First returns the first day of the month.
func (m Month) First() Date { return New(m.Year, m.Month, 1) }

// Last returns the last day of the month.
func (m Month) Last() Date { return New(m.Year, m.Month+1, 0) }

// Next returns the following month.
func (m Month) Next() Month { return NewMonth(m.Year, m.Month+1) }

// String returns the month as "YYYY-MM".
func (m Month) String() string { return m.First().Format(monthFormat) }

// ParseMonth parses a "YYYY-MM" string.
func ParseMonth(str string) (Month, error) {
	on, err := time.Parse(monthFormat, str)
	if err != nil {
		return Month{}, fmt.Errorf("invalid month %q want format %q: %w", str, monthFormat, err)
	}
	return Month{on.Year(), on.Month()}, nil
}
