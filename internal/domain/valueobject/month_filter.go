// Package valueobject contains domain value objects for the sales report system.
package valueobject

import (
	"strconv"
	"strings"
	"time"
)

// monthFilterKind describes how a MonthFilter behaves.
type monthFilterKind int

const (
	monthAny monthFilterKind = iota
	monthExact
	monthNone
)

// MonthFilter selects transactions whose sale falls in a given calendar month,
// regardless of year. The zero value accepts every transaction.
type MonthFilter struct {
	kind  monthFilterKind
	month time.Month
	raw   string
}

// monthsByName maps lowercase full names and abbreviations to months.
var monthsByName = func() map[string]time.Month {
	names := make(map[string]time.Month, 24)
	for m := time.January; m <= time.December; m++ {
		full := strings.ToLower(m.String())
		names[full] = m
		names[full[:3]] = m
	}
	return names
}()

// AnyMonth returns a filter that accepts every transaction.
func AnyMonth() MonthFilter {
	return MonthFilter{kind: monthAny}
}

// ForMonth returns a filter that accepts transactions sold in the given month.
func ForMonth(m time.Month) MonthFilter {
	if m < time.January || m > time.December {
		return MonthFilter{kind: monthNone, raw: strconv.Itoa(int(m))}
	}
	return MonthFilter{kind: monthExact, month: m, raw: m.String()}
}

// ParseMonthFilter builds a MonthFilter from a user supplied token.
// Full names ("March"), abbreviations ("mar") and numbers ("3", "03") are
// accepted case-insensitively. An empty token accepts everything; an
// unrecognized token yields a filter that matches nothing.
func ParseMonthFilter(token string) MonthFilter {
	trimmed := strings.TrimSpace(token)
	if trimmed == "" {
		return AnyMonth()
	}

	if m, ok := monthsByName[strings.ToLower(trimmed)]; ok {
		return ForMonth(m)
	}

	if n, err := strconv.Atoi(trimmed); err == nil && n >= 1 && n <= 12 {
		return ForMonth(time.Month(n))
	}

	return MonthFilter{kind: monthNone, raw: trimmed}
}

// IsAny reports whether the filter accepts every transaction.
func (f MonthFilter) IsAny() bool {
	return f.kind == monthAny
}

// MatchesNothing reports whether the filter was built from an unrecognized token.
func (f MonthFilter) MatchesNothing() bool {
	return f.kind == monthNone
}

// Month returns the selected month and whether the filter selects exactly one month.
func (f MonthFilter) Month() (time.Month, bool) {
	return f.month, f.kind == monthExact
}

// Matches reports whether a sale date falls in the filter's month.
func (f MonthFilter) Matches(dateOfSale time.Time) bool {
	switch f.kind {
	case monthAny:
		return true
	case monthExact:
		return dateOfSale.Month() == f.month
	default:
		return false
	}
}

// String returns the month name, the original token when unrecognized, or "" when absent.
func (f MonthFilter) String() string {
	return f.raw
}
