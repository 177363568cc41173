// Package federal defines the boundary between the carryforward engine and the
// federal return calculator, plus reference calculators used by the CLI, the
// HTTP API and tests.
package federal

import (
	"github.com/shopspring/decimal"
)

// ReturnInput holds one year's inputs to the federal return calculation.
type ReturnInput struct {
	Wages                       decimal.Decimal
	Interest                    decimal.Decimal
	Dividends                   decimal.Decimal
	IRADistributions            decimal.Decimal
	Pensions                    decimal.Decimal
	SocialSecurity              decimal.Decimal
	NonBusinessCapitalGains     decimal.Decimal
	BusinessIncome              decimal.Decimal
	BusinessCapitalGains        decimal.Decimal
	OtherGains                  decimal.Decimal
	RentalIncome                decimal.Decimal
	FarmIncome                  decimal.Decimal
	NOLDeduction                decimal.Decimal // >= 0
	SelfEmploymentTax           decimal.Decimal
	RetirementPlanContributions decimal.Decimal
	SelfEmployedHealthInsurance decimal.Decimal
	EarlyWithdrawalPenalty      decimal.Decimal
	FilingStatusSingle          bool
	TaxYear                     int
	OverrideLimit               *decimal.Decimal
}

// LimitationOutput is the excess business loss regime's view of a return.
type LimitationOutput struct {
	Limit             decimal.Decimal
	NetBusinessIncome decimal.Decimal
	DisallowedLoss    decimal.Decimal
}

// Equal reports whether two limitation outputs carry the same amounts.
func (l LimitationOutput) Equal(other LimitationOutput) bool {
	return l.Limit.Equal(other.Limit) &&
		l.NetBusinessIncome.Equal(other.NetBusinessIncome) &&
		l.DisallowedLoss.Equal(other.DisallowedLoss)
}

// ReturnOutput holds the figures the engine reads back from a return.
// Limitation is nil when the limitation regime produced no output.
type ReturnOutput struct {
	AGI           decimal.Decimal
	TaxableIncome decimal.Decimal
	Limitation    *LimitationOutput
}

// Adapter computes a federal return. Implementations must be pure: the same
// input always yields the same output and no I/O happens inside Compute.
type Adapter interface {
	Compute(in ReturnInput) (ReturnOutput, error)
}

// AdapterFunc lets an ordinary function act as an Adapter.
type AdapterFunc func(in ReturnInput) (ReturnOutput, error)

// Compute calls f(in).
func (f AdapterFunc) Compute(in ReturnInput) (ReturnOutput, error) {
	return f(in)
}
