// Package common: pluralize.go holds small text helpers for console output
// and ledger concepts.
package common

import "fmt"

// Pluralize returns "1 ticket" / "3 tickets".
func Pluralize(n int, singular, plural string) string {
	if n == 1 || n == -1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %s", n, plural)
}

// FormatNumber formats an integer with thousands separators.
// Example: FormatNumber(2350) → "2,350"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	return fmt.Sprintf("%s,%03d", FormatNumber(n/1000), n%1000)
}

// FullName joins first and last name.
func FullName(first, last string) string {
	if last == "" {
		return first
	}
	return first + " " + last
}
