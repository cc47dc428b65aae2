// Package dateutils provides common date operations used throughout the
// application, including the Portuguese month abbreviations found on
// Brazilian credit-card statements and the relative periods understood by
// the query layer.
package dateutils

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"hsouza/julius/internal/parsererror"
)

// Common date format constants used throughout the application
const (
	DateLayoutISO       = "2006-01-02"
	DateLayoutBrazilian = "02/01/2006"
	DateLayoutFull      = "2006-01-02 15:04:05"
)

// Relative period identifiers understood by ResolvePeriod.
const (
	PeriodLastMonth  = "last_month"
	PeriodThisMonth  = "this_month"
	PeriodLast30Days = "last_30_days"
)

// portugueseMonths maps the three-letter month abbreviations printed on
// Nubank statements to their month numbers.
var portugueseMonths = map[string]time.Month{
	"JAN": time.January,
	"FEV": time.February,
	"MAR": time.March,
	"ABR": time.April,
	"MAI": time.May,
	"JUN": time.June,
	"JUL": time.July,
	"AGO": time.August,
	"SET": time.September,
	"OUT": time.October,
	"NOV": time.November,
	"DEZ": time.December,
}

var statementDateRe = regexp.MustCompile(`^(\d{1,2})\s+([A-Za-z]{3})$`)

// ParseStatementDate parses a day-month token from a statement ("15 JAN",
// "5 FEV") into a full date in the given reference year. The day may have
// one or two digits; the month abbreviation is Portuguese and
// case-insensitive. Unknown months are an error so callers can count and
// skip the line.
func ParseStatementDate(token string, referenceYear int) (time.Time, error) {
	matches := statementDateRe.FindStringSubmatch(CleanDateString(token))
	if matches == nil {
		return time.Time{}, dateParseError(token, errors.New("unrecognized statement date token"))
	}

	month, ok := portugueseMonths[strings.ToUpper(matches[2])]
	if !ok {
		return time.Time{}, dateParseError(token, fmt.Errorf("unknown month abbreviation %q", matches[2]))
	}

	var day int
	if _, err := fmt.Sscanf(matches[1], "%d", &day); err != nil || day < 1 || day > 31 {
		return time.Time{}, dateParseError(token, errors.New("invalid day"))
	}

	date := time.Date(referenceYear, month, day, 0, 0, 0, 0, time.UTC)
	// Reject overflow like "31 FEV" rolling into March.
	if date.Month() != month {
		return time.Time{}, dateParseError(token, errors.New("day out of range for month"))
	}
	return date, nil
}

func dateParseError(token string, err error) error {
	return &parsererror.ParseError{Parser: "statement", Field: "date", Value: token, Err: err}
}

// ResolvePeriod converts a relative period identifier into an inclusive
// [start, end] date range anchored on now. Month boundaries are
// calendar-correct: last_month in March ends on Feb 28 or 29.
func ResolvePeriod(period string, now time.Time) (time.Time, time.Time, error) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	switch period {
	case PeriodLastMonth:
		firstOfThis := StartOfMonth(today)
		start := firstOfThis.AddDate(0, -1, 0)
		end := firstOfThis.AddDate(0, 0, -1)
		return start, end, nil
	case PeriodThisMonth:
		return StartOfMonth(today), today, nil
	case PeriodLast30Days:
		return today.AddDate(0, 0, -30), today, nil
	default:
		return time.Time{}, time.Time{}, fmt.Errorf("unknown period: %q", period)
	}
}

// FormatDate formats a time.Time value according to the specified layout.
// If no layout is provided, DateLayoutISO is used.
func FormatDate(date time.Time, layout string) string {
	if layout == "" {
		layout = DateLayoutISO
	}
	return date.Format(layout)
}

// ToISODate formats a time.Time value as an ISO date (YYYY-MM-DD)
func ToISODate(date time.Time) string {
	return date.Format(DateLayoutISO)
}

// ParseISODate parses a stored YYYY-MM-DD date string.
func ParseISODate(dateStr string) (time.Time, error) {
	return time.Parse(DateLayoutISO, CleanDateString(dateStr))
}

// CleanDateString removes unwanted characters and normalizes a date string
func CleanDateString(dateStr string) string {
	dateStr = strings.TrimSpace(dateStr)
	re := regexp.MustCompile(`\s+`)
	return re.ReplaceAllString(dateStr, " ")
}

// StartOfMonth returns the first day of the month for a given date
func StartOfMonth(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
}

// EndOfMonth returns the last day of the month for a given date
func EndOfMonth(date time.Time) time.Time {
	return StartOfMonth(date).AddDate(0, 1, -1)
}

// CompareDates compares two dates and returns:
//
//	-1 if date1 is before date2
//	 0 if date1 is equal to date2
//	 1 if date1 is after date2
func CompareDates(date1, date2 time.Time) int {
	date1 = time.Date(date1.Year(), date1.Month(), date1.Day(), 0, 0, 0, 0, time.UTC)
	date2 = time.Date(date2.Year(), date2.Month(), date2.Day(), 0, 0, 0, 0, time.UTC)

	if date1.Before(date2) {
		return -1
	} else if date1.After(date2) {
		return 1
	}
	return 0
}

// WithinRange reports whether date falls inside the inclusive [start, end]
// range, ignoring time-of-day.
func WithinRange(date, start, end time.Time) bool {
	return CompareDates(date, start) >= 0 && CompareDates(date, end) <= 0
}
