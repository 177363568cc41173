// Package mathutil provides common mathematical utility functions on
// decimal currency amounts.
package mathutil

import (
	"github.com/iwvelando/nol-forecast/pkg/constants"
	"github.com/shopspring/decimal"
)

// Round rounds a value to cents, i.e. to represent real currency.
func Round(val decimal.Decimal) decimal.Decimal {
	return val.Round(constants.CurrencyPlaces)
}

// Min returns the smaller of two values.
func Min(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}

// Max returns the larger of two values.
func Max(a, b decimal.Decimal) decimal.Decimal {
	if a.GreaterThan(b) {
		return a
	}
	return b
}

// NonNegative clamps a value at zero from below.
func NonNegative(val decimal.Decimal) decimal.Decimal {
	return Max(decimal.Zero, val)
}

// Sum adds all values.
func Sum(vals ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range vals {
		total = total.Add(v)
	}
	return total
}

// PositiveOrNil returns val when it is set and strictly positive, nil otherwise.
func PositiveOrNil(val *decimal.Decimal) *decimal.Decimal {
	if val == nil || !val.IsPositive() {
		return nil
	}
	v := *val
	return &v
}

// Coalesce returns the first non-nil value.
func Coalesce(vals ...*decimal.Decimal) *decimal.Decimal {
	for _, v := range vals {
		if v != nil {
			return v
		}
	}
	return nil
}
