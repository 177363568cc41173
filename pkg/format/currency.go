// Package format renders decimal currency amounts for display.
package format

import (
	"strconv"
	"strings"

	"github.com/iwvelando/nol-forecast/pkg/constants"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Currency returns a currency string with a dollar sign and thousands separators (e.g., "-$1,234.56").
func Currency(amount decimal.Decimal) string {
	formatted := formatPositiveCurrency(amount.Abs())
	if amount.Round(constants.CurrencyPlaces).IsNegative() {
		return "-$" + formatted
	}
	return "$" + formatted
}

func formatPositiveCurrency(value decimal.Decimal) string {
	formatted := value.StringFixed(constants.CurrencyPlaces)
	parts := strings.SplitN(formatted, ".", 2)
	intPart := parts[0]
	decPart := "00"
	if len(parts) == 2 {
		decPart = parts[1]
	}

	if n, err := strconv.ParseInt(intPart, 10, 64); err == nil {
		intPart = message.NewPrinter(language.English).Sprintf("%d", n)
	}

	return intPart + "." + decPart
}
