// Package forecast defines the data structures related to a given forecast and
// includes functions for computing the forecasts.
package forecast

import (
	"fmt"

	"github.com/iwvelando/nol-forecast/internal/config"
	"github.com/iwvelando/nol-forecast/internal/federal"
	"github.com/iwvelando/nol-forecast/internal/nol"
	"github.com/iwvelando/nol-forecast/pkg/adapters"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Forecast holds all information related to a specific forecast.
type Forecast struct {
	Name    string
	Results []nol.YearResult
	Summary Summary
}

// Summary totals a scenario's results.
type Summary struct {
	TotalDisallowedLoss decimal.Decimal
	TotalNOLUsed        decimal.Decimal
	TotalNOLGenerated   decimal.Decimal
	FinalCarryforward   decimal.Decimal
}

// Summarize totals the per-year results of one run.
func Summarize(results []nol.YearResult) Summary {
	summary := Summary{
		TotalDisallowedLoss: decimal.Zero,
		TotalNOLUsed:        decimal.Zero,
		TotalNOLGenerated:   decimal.Zero,
		FinalCarryforward:   decimal.Zero,
	}
	for _, r := range results {
		summary.TotalDisallowedLoss = summary.TotalDisallowedLoss.Add(r.DisallowedLoss)
		summary.TotalNOLUsed = summary.TotalNOLUsed.Add(r.NOLUsed)
		summary.TotalNOLGenerated = summary.TotalNOLGenerated.Add(r.CurrentYearNOL)
	}
	if len(results) > 0 {
		summary.FinalCarryforward = results[len(results)-1].NextStartingNOL
	}
	return summary
}

// GetForecast runs the carryforward simulation for every active Scenario. A
// nil adapter falls back to the simplified calculator using the configured
// standard deduction.
func GetForecast(logger *zap.Logger, conf config.Configuration, adapter federal.Adapter) ([]Forecast, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if adapter == nil {
		adapter = federal.NewSimplified(conf.Common.StandardDeduction)
	}

	active := conf.ActiveScenarios()
	if skipped := len(conf.Scenarios) - len(active); skipped > 0 {
		logger.Debug(fmt.Sprintf("skipping %d inactive scenarios", skipped),
			zap.String("op", "forecast.GetForecast"),
		)
	}

	var results []Forecast
	for _, scenario := range active {
		rows := adapters.YearsToRows(conf.YearsFor(scenario))
		global := adapters.GlobalFor(conf.Common, scenario)

		years, err := nol.Simulate(adapter, rows, global)
		if err != nil {
			return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
		}

		for _, year := range years {
			logger.Debug("year resolved",
				zap.String("op", "forecast.GetForecast"),
				zap.String("scenario", scenario.Name),
				zap.Int("year", year.Year),
				zap.Stringer("startingNOL", year.StartingNOL),
				zap.Stringer("nolUsed", year.NOLUsed),
				zap.Stringer("disallowedLoss", year.DisallowedLoss),
				zap.Stringer("currentYearNOL", year.CurrentYearNOL),
				zap.Stringer("agi", year.AGI),
			)
		}

		result := Forecast{
			Name:    scenario.Name,
			Results: years,
			Summary: Summarize(years),
		}
		logger.Info("scenario simulated",
			zap.String("op", "forecast.GetForecast"),
			zap.String("scenario", scenario.Name),
			zap.Int("years", len(years)),
			zap.Stringer("finalCarryforward", result.Summary.FinalCarryforward),
		)
		results = append(results, result)
	}

	return results, nil
}
