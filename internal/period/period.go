// Package period holds the calendar arithmetic shared by the ledger, the
// debt scheduler and the reports: month-year partition keys ("MM-YYYY"),
// date normalization and month/year stepping with end-of-month clamping.
//
// All dates are normalized to midnight UTC of their calendar day so that
// comparisons never depend on the server's time zone.
package period

import (
	"fmt"
	"strconv"
	"time"
)

const (
	// MonthYearLayout is the layout of ledger partition keys.
	MonthYearLayout = "01-2006"
	// DateLayout is the layout used for dates on the wire.
	DateLayout = "2006-01-02"
)

// IsLeapYear reports whether year is a Gregorian leap year.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInMonth returns the number of days of month in year.
func DaysInMonth(year int, month time.Month) int {
	switch month {
	case time.February:
		if IsLeapYear(year) {
			return 29
		}
		return 28
	case time.April, time.June, time.September, time.November:
		return 30
	default:
		return 31
	}
}

// Date returns midnight UTC of t's calendar day.
func Date(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// EndOfDay returns the last representable instant of t's calendar day in UTC.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999999999, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string into a normalized date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return t, nil
}

// AddMonths advances d by n calendar months. The day is clamped to the last
// valid day of the target month, so Jan 31 + 1 month is Feb 28 (or 29).
func AddMonths(d time.Time, n int) time.Time {
	total := int(d.Month()) - 1 + n
	year := d.Year() + floorDiv(total, 12)
	month := time.Month(total - floorDiv(total, 12)*12 + 1)
	day := min(d.Day(), DaysInMonth(year, month))
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// AddYears advances d by n years keeping month and day. Feb 29 becomes
// Feb 28 when the target year is not a leap year.
func AddYears(d time.Time, n int) time.Time {
	year := d.Year() + n
	day := min(d.Day(), DaysInMonth(year, d.Month()))
	return time.Date(year, d.Month(), day, 0, 0, 0, 0, time.UTC)
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// MonthYear returns the partition key of t.
func MonthYear(t time.Time) string {
	return t.Format(MonthYearLayout)
}

// ParseMonthYear parses a strict "MM-YYYY" key.
func ParseMonthYear(s string) (int, time.Month, error) {
	if len(s) != 7 || s[2] != '-' {
		return 0, 0, fmt.Errorf("invalid month-year %q: expected MM-YYYY", s)
	}
	m, err := strconv.Atoi(s[:2])
	if err != nil || m < 1 || m > 12 {
		return 0, 0, fmt.Errorf("invalid month in %q", s)
	}
	y, err := strconv.Atoi(s[3:])
	if err != nil || y < 1 {
		return 0, 0, fmt.Errorf("invalid year in %q", s)
	}
	return y, time.Month(m), nil
}

// ValidMonthYear reports whether s is a well-formed partition key.
func ValidMonthYear(s string) bool {
	_, _, err := ParseMonthYear(s)
	return err == nil
}

// Bounds returns the first and the last instant of the month named by key.
func Bounds(key string) (time.Time, time.Time, error) {
	year, month, err := ParseMonthYear(key)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := EndOfDay(time.Date(year, month, DaysInMonth(year, month), 0, 0, 0, 0, time.UTC))
	return start, end, nil
}

// InMonth reports whether t falls inside the given year and month.
func InMonth(t time.Time, year int, month time.Month) bool {
	return t.Year() == year && t.Month() == month
}
