// Package validation provides common validation utilities.
package validation

import (
	"fmt"

	"github.com/planforge/projection-engine/pkg/constants"
)

// ValidateOutputFormat checks if the output format is one of the supported formats.
func ValidateOutputFormat(format string) error {
	if format != constants.OutputFormatPretty && format != constants.OutputFormatCSV {
		return fmt.Errorf("expected output format of %s or %s, got %s",
			constants.OutputFormatPretty, constants.OutputFormatCSV, format)
	}
	return nil
}

// ValidateSeasonalityFactors returns warnings for a seasonality factor list
// that will be rejected or silently evened out by the distributor.
func ValidateSeasonalityFactors(factors []float64) []string {
	var warnings []string

	if len(factors) == 0 {
		return warnings
	}
	if len(factors) != constants.MonthsPerYear {
		warnings = append(warnings, fmt.Sprintf("Seasonality factors should have %d entries, got %d - revenue will not be distributed",
			constants.MonthsPerYear, len(factors)))
		return warnings
	}

	total := 0.0
	negative := false
	for _, factor := range factors {
		total += factor
		if factor < 0 {
			negative = true
		}
	}
	if negative {
		warnings = append(warnings, "Seasonality factors contain negative entries")
	}
	if total <= 0 {
		warnings = append(warnings, "Seasonality factors sum to a non-positive total - revenue will not be distributed")
	}

	return warnings
}

// ValidateCashFlowSeries returns warnings for an investment cash-flow series
// that will degrade the profitability analysis.
func ValidateCashFlowSeries(initialInvestment float64, cashFlows []float64) []string {
	var warnings []string

	if initialInvestment <= 0 && len(cashFlows) > 0 {
		warnings = append(warnings, "Investment cash flows are configured but initial investment is not positive - profitability analysis will be skipped")
	}
	if initialInvestment > 0 && len(cashFlows) == 0 {
		warnings = append(warnings, "Initial investment is configured without cash flows - profitability analysis will be skipped")
	}

	allNegative := len(cashFlows) > 0
	for _, flow := range cashFlows {
		if flow > 0 {
			allNegative = false
			break
		}
	}
	if allNegative {
		warnings = append(warnings, "All cash flows are negative - the investment can never be recovered")
	}

	return warnings
}
