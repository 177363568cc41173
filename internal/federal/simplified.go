package federal

import (
	"errors"
	"fmt"

	"github.com/iwvelando/nol-forecast/pkg/constants"
	"github.com/iwvelando/nol-forecast/pkg/mathutil"
	"github.com/shopspring/decimal"
)

// ErrNegativeNOLDeduction is returned when a calculator is asked to apply a
// negative NOL deduction.
var ErrNegativeNOLDeduction = errors.New("nol deduction must not be negative")

// statutoryLimits holds the excess business loss thresholds by tax year as
// {single, joint}.
var statutoryLimits = map[int][2]int64{
	2018: {250000, 500000},
	2019: {255000, 510000},
	2020: {259000, 518000},
	2021: {262000, 524000},
	2022: {270000, 540000},
	2023: {289000, 578000},
	2024: {305000, 610000},
	2025: {313000, 626000},
}

const (
	firstLimitYear = 2018
	lastLimitYear  = 2025
)

// StatutoryLimit returns the excess business loss threshold for a tax year
// and filing status. Years outside the table use the nearest known year.
func StatutoryLimit(taxYear int, single bool) decimal.Decimal {
	year := taxYear
	if year < firstLimitYear {
		year = firstLimitYear
	}
	if year > lastLimitYear {
		year = lastLimitYear
	}
	limits := statutoryLimits[year]
	if single {
		return decimal.NewFromInt(limits[0])
	}
	return decimal.NewFromInt(limits[1])
}

// ExcessBusinessLoss applies the limitation to a year's net business income.
// Only the portion of a net loss beyond limit is disallowed.
func ExcessBusinessLoss(netBusinessIncome, limit decimal.Decimal) LimitationOutput {
	out := LimitationOutput{
		Limit:             limit,
		NetBusinessIncome: netBusinessIncome,
		DisallowedLoss:    decimal.Zero,
	}
	if netBusinessIncome.IsNegative() {
		out.DisallowedLoss = mathutil.NonNegative(netBusinessIncome.Neg().Sub(limit))
	}
	return out
}

// AllowedBusinessIncome is the business income that flows into AGI once the
// disallowed portion of a loss has been removed.
func (l LimitationOutput) AllowedBusinessIncome() decimal.Decimal {
	if l.NetBusinessIncome.IsNegative() {
		return l.NetBusinessIncome.Add(l.DisallowedLoss)
	}
	return l.NetBusinessIncome
}

// Simplified is a reference calculator. It sums the income lines, applies the
// excess business loss limitation with the statutory threshold and subtracts
// above-the-line adjustments and the NOL deduction. Taxable income uses a flat
// standard deduction instead of the statutory tables.
type Simplified struct {
	StandardDeduction decimal.Decimal
}

// NewSimplified creates a Simplified calculator with the given flat standard
// deduction. A negative deduction is treated as zero.
func NewSimplified(standardDeduction decimal.Decimal) *Simplified {
	return &Simplified{StandardDeduction: mathutil.NonNegative(standardDeduction)}
}

// Compute implements Adapter.
func (s *Simplified) Compute(in ReturnInput) (ReturnOutput, error) {
	if in.NOLDeduction.IsNegative() {
		return ReturnOutput{}, fmt.Errorf("tax year %d: %w", in.TaxYear, ErrNegativeNOLDeduction)
	}

	limit := StatutoryLimit(in.TaxYear, in.FilingStatusSingle)
	if in.OverrideLimit != nil {
		limit = *in.OverrideLimit
	}
	limitation := ExcessBusinessLoss(in.BusinessIncome.Add(in.BusinessCapitalGains), limit)

	income := mathutil.Sum(
		in.Wages,
		in.Interest,
		in.Dividends,
		in.IRADistributions,
		in.Pensions,
		in.SocialSecurity,
		in.NonBusinessCapitalGains,
		limitation.AllowedBusinessIncome(),
		in.OtherGains,
		in.RentalIncome,
		in.FarmIncome,
	)
	adjustments := mathutil.Sum(
		in.SelfEmploymentTax,
		in.RetirementPlanContributions,
		in.SelfEmployedHealthInsurance,
		in.EarlyWithdrawalPenalty,
	)

	agi := income.Sub(adjustments).Sub(in.NOLDeduction)
	return ReturnOutput{
		AGI:           agi,
		TaxableIncome: mathutil.NonNegative(agi.Sub(s.StandardDeduction)),
		Limitation:    &limitation,
	}, nil
}

// Linear is the minimal calculator: agi = wages + allowed business income -
// nol deduction, with a fixed cap unless an override is supplied. Other income
// lines are ignored.
var Linear = AdapterFunc(func(in ReturnInput) (ReturnOutput, error) {
	if in.NOLDeduction.IsNegative() {
		return ReturnOutput{}, fmt.Errorf("tax year %d: %w", in.TaxYear, ErrNegativeNOLDeduction)
	}

	limit := decimal.NewFromInt(constants.DefaultExcessBusinessLossLimit)
	if in.OverrideLimit != nil {
		limit = *in.OverrideLimit
	}
	limitation := ExcessBusinessLoss(in.BusinessIncome.Add(in.BusinessCapitalGains), limit)

	agi := in.Wages.Add(limitation.AllowedBusinessIncome()).Sub(in.NOLDeduction)
	return ReturnOutput{
		AGI:           agi,
		TaxableIncome: mathutil.NonNegative(agi),
		Limitation:    &limitation,
	}, nil
})
