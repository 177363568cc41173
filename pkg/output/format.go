// Package output provides utilities for formatting and displaying forecast results.
package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/iwvelando/nol-forecast/internal/forecast"
	"github.com/iwvelando/nol-forecast/pkg/constants"
	"github.com/iwvelando/nol-forecast/pkg/format"
	"github.com/shopspring/decimal"
)

// csvHeader lists the per-year columns in display order.
var csvHeader = []string{
	"scenario", "year", "starting nol", "limit", "allowed loss", "disallowed loss",
	"nol used", "current year nol", "agi", "taxable income", "next starting nol",
}

// PrettyFormat writes a human-readable rather than machine-readable table.
func PrettyFormat(w io.Writer, results []forecast.Forecast) {
	for i, result := range results {
		fmt.Fprintf(w, "--- Results for scenario %s ---\n", result.Name)
		tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', tabwriter.AlignRight)
		fmt.Fprintln(tw, "Year\tStarting NOL\tLimit\tAllowed Loss\tDisallowed Loss\tNOL Used\tNew NOL\tAGI\tTaxable Income\t")
		for _, year := range result.Results {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
				year.Year,
				format.Currency(year.StartingNOL),
				format.Currency(year.Limit),
				format.Currency(year.AllowedLoss),
				format.Currency(year.DisallowedLoss),
				format.Currency(year.NOLUsed),
				format.Currency(year.CurrentYearNOL),
				format.Currency(year.AGI),
				format.Currency(year.TaxableIncome),
			)
		}
		_ = tw.Flush()
		fmt.Fprintf(w, "Total disallowed loss: %s | Total NOL used: %s | Total NOL generated: %s | Carryforward remaining: %s\n",
			format.Currency(result.Summary.TotalDisallowedLoss),
			format.Currency(result.Summary.TotalNOLUsed),
			format.Currency(result.Summary.TotalNOLGenerated),
			format.Currency(result.Summary.FinalCarryforward),
		)
		if len(results) > 1 && i < len(results)-1 {
			fmt.Fprintf(w, "\n")
		}
	}
}

// CsvFormat writes results in comma-separated value format, one row per
// scenario year.
func CsvFormat(w io.Writer, results []forecast.Forecast) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader); err != nil {
		return err
	}
	for _, result := range results {
		for _, year := range result.Results {
			record := []string{result.Name, strconv.Itoa(year.Year)}
			for _, amount := range []decimal.Decimal{
				year.StartingNOL, year.Limit, year.AllowedLoss, year.DisallowedLoss,
				year.NOLUsed, year.CurrentYearNOL, year.AGI, year.TaxableIncome, year.NextStartingNOL,
			} {
				record = append(record, amount.StringFixed(constants.CurrencyPlaces))
			}
			if err := writer.Write(record); err != nil {
				return err
			}
		}
	}
	writer.Flush()
	return writer.Error()
}

// CsvString returns the CSV rendering of results.
func CsvString(results []forecast.Forecast) string {
	var buf bytes.Buffer
	if err := CsvFormat(&buf, results); err != nil {
		return ""
	}
	return buf.String()
}
