// Package validation provides common validation utilities.
package validation

import (
	"fmt"

	"github.com/iwvelando/nol-forecast/pkg/constants"
)

// ValidateOutputFormat checks if the output format is one of the supported formats.
func ValidateOutputFormat(format string) error {
	if format != constants.OutputFormatPretty && format != constants.OutputFormatCSV {
		return fmt.Errorf("expected output format of %s or %s, got %s",
			constants.OutputFormatPretty, constants.OutputFormatCSV, format)
	}
	return nil
}

// ValidateCalculator checks if the calculator is one of the bundled ones.
func ValidateCalculator(name string) error {
	if name != constants.CalculatorSimplified && name != constants.CalculatorLinear {
		return fmt.Errorf("expected calculator of %s or %s, got %s",
			constants.CalculatorSimplified, constants.CalculatorLinear, name)
	}
	return nil
}
