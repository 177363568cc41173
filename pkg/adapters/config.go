// Package adapters converts configuration types into the simulation engine's
// input types.
package adapters

import (
	"github.com/iwvelando/nol-forecast/internal/config"
	"github.com/iwvelando/nol-forecast/internal/nol"
	"github.com/iwvelando/nol-forecast/pkg/mathutil"
)

// YearToRow converts a config.Year to a nol.YearRow
func YearToRow(year config.Year) nol.YearRow {
	return nol.YearRow{
		Year:                year.Year,
		Wages:               year.Wages,
		PersonalCapitalGain: year.PersonalCapitalGain,
		BusinessCapitalGain: year.BusinessCapitalGain,
		BusinessNetIncome:   year.BusinessNetIncome,
		RowOverrideLimit:    year.OverrideLimit,
	}
}

// YearsToRows converts config.Year slices to nol.YearRow slices
func YearsToRows(years []config.Year) []nol.YearRow {
	if years == nil {
		return nil
	}

	rows := make([]nol.YearRow, 0, len(years))
	for _, year := range years {
		rows = append(rows, YearToRow(year))
	}
	return rows
}

// GlobalFor builds the run-wide settings for a scenario. A scenario override
// takes the place of the common override; row overrides are resolved later by
// nol.Normalize.
func GlobalFor(common config.Common, scenario config.Scenario) nol.GlobalConfig {
	return nol.GlobalConfig{
		FilingStatusSingle:  common.FilingStatusSingle,
		GlobalOverrideLimit: mathutil.Coalesce(scenario.OverrideLimit, common.OverrideLimit),
	}
}
