// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/iwvelando/nol-forecast/internal/forecast"
	"github.com/iwvelando/nol-forecast/internal/nol"
)

// FindScenario finds a scenario by name in the results slice.
// Returns a pointer to the forecast if found, nil otherwise.
func FindScenario(results []forecast.Forecast, name string) *forecast.Forecast {
	for i := range results {
		if results[i].Name == name {
			return &results[i]
		}
	}
	return nil
}

// FindYear returns the resolved result for year within a scenario, or nil.
func FindYear(result *forecast.Forecast, year int) *nol.YearResult {
	if result == nil {
		return nil
	}
	for i := range result.Results {
		if result.Results[i].Year == year {
			return &result.Results[i]
		}
	}
	return nil
}
