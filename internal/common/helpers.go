// Package common holds utilities used across the project: money parsing and
// formatting, dates, input validation.
package common

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the calendar date format used on the console and in travel dates.
const DateLayout = "2006-01-02"

// MaxAmount is the largest amount in cents any single money value may
// reach: $1,000,000,000,000.00.
const MaxAmount int64 = 100_000_000_000_000

var hundred = decimal.NewFromInt(100)

// ParseAmount parses a positive money amount with at most two decimals and
// returns it in cents.
//
// Examples:
//
//	ParseAmount("250")     → 25000
//	ParseAmount("250.5")   → 25050
//	ParseAmount("1,250.00") → 125000
//	ParseAmount("0.001")   → error
//	ParseAmount("1e30")    → error (above MaxAmount)
func ParseAmount(s string) (int64, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "$"))
	s = strings.ReplaceAll(s, ",", "")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	cents := d.Mul(hundred)
	if !cents.Equal(cents.Truncate(0)) {
		return 0, fmt.Errorf("%w: more than two decimals in %q", ErrInvalidAmount, s)
	}
	if !cents.IsPositive() {
		return 0, ErrInvalidAmount
	}
	if cents.GreaterThan(decimal.NewFromInt(MaxAmount)) {
		return 0, fmt.Errorf("%w: %q is above %s", ErrInvalidAmount, s, FormatAmount(MaxAmount))
	}
	return cents.IntPart(), nil
}

// MulAmount returns unit × quantity in cents, rejecting results above
// MaxAmount.
func MulAmount(unit int64, quantity int) (int64, error) {
	if unit <= 0 || quantity <= 0 {
		return 0, ErrInvalidAmount
	}
	total := decimal.NewFromInt(unit).Mul(decimal.NewFromInt(int64(quantity)))
	if total.GreaterThan(decimal.NewFromInt(MaxAmount)) {
		return 0, fmt.Errorf("%w: total %s is above %s", ErrInvalidAmount, total.Div(hundred).StringFixed(2), FormatAmount(MaxAmount))
	}
	return total.IntPart(), nil
}

// MustCents parses a configured non-negative amount; used for values already
// checked by config.Validate.
func MustCents(s string) int64 {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		panic(fmt.Sprintf("invalid configured amount %q: %v", s, err))
	}
	return d.Mul(hundred).IntPart()
}

// FormatAmount formats cents as "$1,234.50".
func FormatAmount(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%s.%02d", sign, FormatNumber(cents/100), cents%100)
}

// FormatDecimal formats cents as a plain decimal string ("1234.50").
func FormatDecimal(cents int64) string {
	return decimal.New(cents, -2).StringFixed(2)
}

// ParseDate parses a calendar date in DateLayout, dropping any time component.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("date must look like %s: %w", DateLayout, err)
	}
	return t, nil
}

// Clock returns a time source reading the current time in loc. A nil loc
// means UTC.
func Clock(loc *time.Location) func() time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return func() time.Time { return time.Now().In(loc) }
}

// DateOnly truncates t to midnight in its own location.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// FormatDateTime formats a timestamp as "2006-01-02 15:04".
func FormatDateTime(t time.Time) string {
	return t.Format("2006-01-02 15:04")
}
