package nol

import (
	"errors"
	"fmt"

	"github.com/iwvelando/nol-forecast/internal/federal"
	"github.com/iwvelando/nol-forecast/pkg/mathutil"
	"github.com/shopspring/decimal"
)

var (
	// ErrNilAdapter is returned when no federal calculator is supplied.
	ErrNilAdapter = errors.New("federal return adapter is nil")

	// ErrLimitationDependsOnNOL is returned when the limitation output changes
	// between the preliminary and final pass. Two passes are then not enough
	// to settle the year.
	ErrLimitationDependsOnNOL = errors.New("limitation output changed with the nol deduction")
)

// YearResult is the resolved outcome of one year.
type YearResult struct {
	Year             int
	StartingNOL      decimal.Decimal
	Limit            decimal.Decimal
	AllowedLoss      decimal.Decimal
	DisallowedLoss   decimal.Decimal
	NOLUsed          decimal.Decimal
	CurrentYearNOL   decimal.Decimal
	AGI              decimal.Decimal
	TaxableIncome    decimal.Decimal
	PreliminaryAGI   decimal.Decimal
	NextStartingNOL  decimal.Decimal
	RawFederalOutput federal.ReturnOutput
}

// ResolveYear computes one year's result from its starting carryforward.
//
// The preliminary pass runs with no NOL deduction. The deduction is then
// clamped to both the carryforward and the non-negative preliminary AGI, and
// the final pass runs with that deduction.
//
// Besides adapter errors, ResolveYear fails with ErrLimitationDependsOnNOL
// when the two passes disagree on the limitation output, since the year
// would then need more than two passes to settle.
func ResolveYear(adapter federal.Adapter, year CanonicalYear, startingNOL decimal.Decimal) (YearResult, error) {
	if adapter == nil {
		return YearResult{}, ErrNilAdapter
	}

	preliminary, err := adapter.Compute(year.ReturnInput(decimal.Zero))
	if err != nil {
		return YearResult{}, fmt.Errorf("preliminary pass for %d: %w", year.Year, err)
	}

	nolUsed := mathutil.Min(startingNOL, mathutil.NonNegative(preliminary.AGI))

	final, err := adapter.Compute(year.ReturnInput(nolUsed))
	if err != nil {
		return YearResult{}, fmt.Errorf("final pass for %d: %w", year.Year, err)
	}

	if !sameLimitation(preliminary.Limitation, final.Limitation) {
		return YearResult{}, fmt.Errorf("year %d: %w", year.Year, ErrLimitationDependsOnNOL)
	}

	limitation := federal.LimitationOutput{
		Limit:             decimal.Zero,
		NetBusinessIncome: year.netBusinessIncome(),
		DisallowedLoss:    decimal.Zero,
	}
	if final.Limitation != nil {
		limitation = *final.Limitation
	}

	allowedLoss := limitation.NetBusinessIncome
	disallowedLoss := decimal.Zero
	if limitation.NetBusinessIncome.IsNegative() {
		disallowedLoss = limitation.DisallowedLoss
		allowedLoss = limitation.NetBusinessIncome.Add(disallowedLoss)
	}

	currentYearNOL := mathutil.NonNegative(final.AGI.Neg())

	return YearResult{
		Year:             year.Year,
		StartingNOL:      startingNOL,
		Limit:            limitation.Limit,
		AllowedLoss:      allowedLoss,
		DisallowedLoss:   disallowedLoss,
		NOLUsed:          nolUsed,
		CurrentYearNOL:   currentYearNOL,
		AGI:              final.AGI,
		TaxableIncome:    final.TaxableIncome,
		PreliminaryAGI:   preliminary.AGI,
		NextStartingNOL:  startingNOL.Sub(nolUsed).Add(disallowedLoss).Add(currentYearNOL),
		RawFederalOutput: final,
	}, nil
}

func sameLimitation(a, b *federal.LimitationOutput) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
