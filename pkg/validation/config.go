// Package validation provides configuration validation utilities.
package validation

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ConfigValidator holds the parts of a configuration that can produce warnings.
type ConfigValidator struct {
	CommonOverride *decimal.Decimal
	Scenarios      []ScenarioConfig
}

type ScenarioConfig struct {
	Name     string
	Active   bool
	Override *decimal.Decimal
	Years    []YearConfig
}

type YearConfig struct {
	Year     int
	Override *decimal.Decimal
}

// ValidateYearOrder reports years that do not strictly follow their predecessor.
func ValidateYearOrder(scenarioName string, years []YearConfig) []string {
	var warnings []string
	for i := 1; i < len(years); i++ {
		prev, cur := years[i-1].Year, years[i].Year
		switch {
		case cur == prev:
			warnings = append(warnings, fmt.Sprintf("Scenario '%s' lists year %d more than once", scenarioName, cur))
		case cur < prev:
			warnings = append(warnings, fmt.Sprintf("Scenario '%s' year %d follows %d - years must be ascending", scenarioName, cur, prev))
		}
	}
	return warnings
}

// ValidateOverride reports an override that will be ignored because it is not
// positive. The statutory cap applies instead.
func ValidateOverride(label string, override *decimal.Decimal) string {
	if override == nil || override.IsPositive() {
		return ""
	}
	return fmt.Sprintf("%s override limit %s is not positive - the statutory limit will be used", label, override.String())
}

// ValidateAll validates the entire configuration and returns warnings
func (cv *ConfigValidator) ValidateAll() []string {
	var warnings []string

	if warning := ValidateOverride("Common", cv.CommonOverride); warning != "" {
		warnings = append(warnings, warning)
	}

	active := 0
	for _, scenario := range cv.Scenarios {
		if !scenario.Active {
			continue
		}
		active++

		if len(scenario.Years) == 0 {
			warnings = append(warnings, fmt.Sprintf("Scenario '%s' has no years to simulate", scenario.Name))
		}
		warnings = append(warnings, ValidateYearOrder(scenario.Name, scenario.Years)...)

		if warning := ValidateOverride(fmt.Sprintf("Scenario '%s'", scenario.Name), scenario.Override); warning != "" {
			warnings = append(warnings, warning)
		}
		for _, year := range scenario.Years {
			label := fmt.Sprintf("Scenario '%s' year %d", scenario.Name, year.Year)
			if warning := ValidateOverride(label, year.Override); warning != "" {
				warnings = append(warnings, warning)
			}
		}
	}

	if active == 0 {
		warnings = append(warnings, "No active scenarios - nothing will be simulated")
	}

	return warnings
}
