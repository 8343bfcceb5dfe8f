package utils

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// dateLayoutBR is the DD/MM/YYYY layout used on every operator-facing form.
const dateLayoutBR = "02/01/2006"

// ParseAmount parses a human-entered monetary string, accepting either comma
// or dot as the decimal separator and stripping thousands separators.
// Example: "1.234,56" and "1,234.56" both parse to 1234.56.
// It never fails: empty or malformed input yields zero, so downstream
// computation never sees an invalid number.
func ParseAmount(raw string) decimal.Decimal {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero
	}
	s = strings.TrimPrefix(s, "R$")
	s = strings.TrimSpace(s)

	lastComma := strings.LastIndex(s, ",")
	lastDot := strings.LastIndex(s, ".")
	switch {
	case lastComma > lastDot:
		// Brazilian style: dot thousands, comma decimal.
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	case lastDot > lastComma:
		// English style: comma thousands, dot decimal.
		s = strings.ReplaceAll(s, ",", "")
	}

	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return amount
}

// FormatAmount renders an amount to two decimal places with a comma decimal
// separator, the inverse of ParseAmount for cent-precision values.
// Example: 1234.56 renders as "1234,56".
func FormatAmount(amount decimal.Decimal) string {
	return strings.Replace(amount.StringFixed(2), ".", ",", 1)
}

// ParseQuantity parses a non-negative integer quantity. Invalid input yields
// zero rather than an error.
func ParseQuantity(raw string) int64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}
	qty, err := strconv.ParseInt(s, 10, 64)
	if err != nil || qty < 0 {
		return 0
	}
	return qty
}

// ParseDateBR parses a strict DD/MM/YYYY date, rejecting both layout
// mismatches and impossible calendar dates.
func ParseDateBR(raw string) (time.Time, bool) {
	t, err := time.Parse(dateLayoutBR, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// FormatDateBR renders a date in the DD/MM/YYYY layout.
func FormatDateBR(t time.Time) string {
	return t.Format(dateLayoutBR)
}
