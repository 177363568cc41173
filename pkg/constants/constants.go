// Package constants provides shared constants for the nol-forecast application.
package constants

// Financial constants
const (
	// CurrencyPlaces is the number of decimal places kept for currency
	CurrencyPlaces = 2

	// DefaultExcessBusinessLossLimit is the cap used by the linear reference
	// calculator when no override is supplied
	DefaultExcessBusinessLossLimit = 250000
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Calculator constants
const (
	// CalculatorSimplified selects the simplified return calculator built from
	// the configured standard deduction
	CalculatorSimplified = "simplified"

	// CalculatorLinear selects the linear reference calculator
	CalculatorLinear = "linear"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum body size for simulation configs (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024
)
