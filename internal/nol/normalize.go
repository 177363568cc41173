// Package nol simulates the excess business loss limitation and the net
// operating loss carryforward across a sequence of tax years.
//
// Each year is resolved with two calls to a federal.Adapter: a preliminary
// pass without any NOL deduction to learn AGI, then a final pass with the
// clamped deduction. The carryforward balance is threaded from year to year by
// a fold that starts at zero on every run.
package nol

import (
	"github.com/iwvelando/nol-forecast/internal/federal"
	"github.com/iwvelando/nol-forecast/pkg/mathutil"
	"github.com/shopspring/decimal"
)

// YearRow is one raw year of input.
type YearRow struct {
	Year                int
	Wages               decimal.Decimal
	PersonalCapitalGain decimal.Decimal
	BusinessCapitalGain decimal.Decimal
	BusinessNetIncome   decimal.Decimal
	RowOverrideLimit    *decimal.Decimal
}

// GlobalConfig holds the settings shared by every row of a run.
type GlobalConfig struct {
	FilingStatusSingle  bool
	GlobalOverrideLimit *decimal.Decimal
}

// CanonicalYear is a YearRow with the override already resolved.
// OverrideLimit is nil when the statutory cap applies.
type CanonicalYear struct {
	Year                int
	Wages               decimal.Decimal
	PersonalCapitalGain decimal.Decimal
	BusinessCapitalGain decimal.Decimal
	BusinessNetIncome   decimal.Decimal
	FilingStatusSingle  bool
	OverrideLimit       *decimal.Decimal
}

// Normalize resolves the override for a row: the row value wins over the
// global value, and a non-positive result means no override.
func Normalize(row YearRow, cfg GlobalConfig) CanonicalYear {
	return CanonicalYear{
		Year:                row.Year,
		Wages:               row.Wages,
		PersonalCapitalGain: row.PersonalCapitalGain,
		BusinessCapitalGain: row.BusinessCapitalGain,
		BusinessNetIncome:   row.BusinessNetIncome,
		FilingStatusSingle:  cfg.FilingStatusSingle,
		OverrideLimit:       mathutil.PositiveOrNil(mathutil.Coalesce(row.RowOverrideLimit, cfg.GlobalOverrideLimit)),
	}
}

// NormalizeAll normalizes rows in order.
func NormalizeAll(rows []YearRow, cfg GlobalConfig) []CanonicalYear {
	years := make([]CanonicalYear, len(rows))
	for i, row := range rows {
		years[i] = Normalize(row, cfg)
	}
	return years
}

// ReturnInput builds the calculator input for this year with the given NOL
// deduction. Income lines the engine does not track are zero.
func (y CanonicalYear) ReturnInput(nolDeduction decimal.Decimal) federal.ReturnInput {
	var override *decimal.Decimal
	if y.OverrideLimit != nil {
		v := *y.OverrideLimit
		override = &v
	}
	return federal.ReturnInput{
		Wages:                   y.Wages,
		NonBusinessCapitalGains: y.PersonalCapitalGain,
		BusinessIncome:          y.BusinessNetIncome,
		BusinessCapitalGains:    y.BusinessCapitalGain,
		NOLDeduction:            nolDeduction,
		FilingStatusSingle:      y.FilingStatusSingle,
		TaxYear:                 y.Year,
		OverrideLimit:           override,
	}
}

// netBusinessIncome is the figure the limitation regime works from.
func (y CanonicalYear) netBusinessIncome() decimal.Decimal {
	return y.BusinessNetIncome.Add(y.BusinessCapitalGain)
}
