// Package money converts user-entered amounts into the REAL values stored
// in the transactions table.
package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Parse reads a decimal amount such as "12.50" or "-3". Thousands
// separators and currency symbols are not accepted.
func Parse(s string) (float64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return d.InexactFloat64(), nil
}

// ToFloat converts an optional decimal to an optional float. A nil input
// stays nil so the storage engine sees NULL.
func ToFloat(d *decimal.Decimal) *float64 {
	if d == nil {
		return nil
	}
	f := d.InexactFloat64()
	return &f
}
