package nol

import (
	"errors"
	"fmt"

	"github.com/iwvelando/nol-forecast/internal/federal"
	"github.com/shopspring/decimal"
)

// ErrYearsOutOfOrder is returned when years are not strictly ascending.
var ErrYearsOutOfOrder = errors.New("years must be in strictly ascending order")

// Simulate normalizes rows against cfg and folds them through ResolveYear
// with a carryforward starting at zero. Any error aborts the run and no
// partial results are returned.
func Simulate(adapter federal.Adapter, rows []YearRow, cfg GlobalConfig) ([]YearResult, error) {
	return Sequence(adapter, NormalizeAll(rows, cfg))
}

// Sequence folds already normalized years. Each year's starting carryforward
// is the previous year's NextStartingNOL; the first year starts at zero.
func Sequence(adapter federal.Adapter, years []CanonicalYear) ([]YearResult, error) {
	if adapter == nil {
		return nil, ErrNilAdapter
	}
	for i := 1; i < len(years); i++ {
		if years[i].Year <= years[i-1].Year {
			return nil, fmt.Errorf("%w: %d follows %d", ErrYearsOutOfOrder, years[i].Year, years[i-1].Year)
		}
	}

	results := make([]YearResult, 0, len(years))
	carryforward := decimal.Zero
	for _, year := range years {
		result, err := ResolveYear(adapter, year, carryforward)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
		carryforward = result.NextStartingNOL
	}
	return results, nil
}
