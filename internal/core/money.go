// Package core provides the expense domain types.
//
// This file contains amount parsing and formatting. Amounts keep full float
// precision; only their presentation is rounded to two decimals.
package core

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseAmount converts form input to an amount.
//
// Both dot (12.34) and comma (12,34) decimal separators are accepted.
// Negative, non-finite and malformed values return ErrInvalidAmount.
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, ErrInvalidAmount
	}
	return v, nil
}

// FormatAmount renders an amount as a two-decimal currency string, e.g. "$12.50".
func FormatAmount(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

// FormatAmountInput renders an amount back into form input without losing precision.
func FormatAmountInput(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Total sums the amount of every expense.
func Total(expenses []Expense) float64 {
	var sum float64
	for _, e := range expenses {
		sum += e.Amount
	}
	return sum
}
