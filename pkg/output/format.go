// Package output provides utilities for formatting and displaying analysis results.
package output

import (
	"fmt"
	"strings"

	"github.com/planforge/projection-engine/internal/engine"
	"github.com/planforge/projection-engine/pkg/constants"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PrettyFormat outputs a human-readable rather than machine-readable report.
func PrettyFormat(analysis *engine.Analysis) {
	p := message.NewPrinter(language.English)

	fmt.Printf("--- Analysis for plan %s ---\n", analysis.PlanName)
	_, _ = p.Printf("Projected annual revenue: $%.2f\n", analysis.ProjectedAnnualRevenue)

	fmt.Printf("\nDate    | Revenue\n")
	fmt.Printf("____    | _______\n")
	for _, share := range analysis.Monthly {
		_, _ = p.Printf("%s | $%.2f\n", share.Date, share.Amount)
	}

	if analysis.BreakEvenPoint != nil {
		_, _ = p.Printf("\nBreak-even: %.0f units / $%.2f revenue\n",
			analysis.BreakEvenPoint.Units, analysis.BreakEvenPoint.Revenue)
	}
	if analysis.BreakEvenSchedule != nil {
		if analysis.BreakEvenSchedule.MonthsToBreakEven == constants.NeverRecovered {
			fmt.Printf("Break-even month: not reached within horizon (estimated %s)\n", analysis.BreakEvenSchedule.Date)
		} else {
			fmt.Printf("Break-even month: %d (%s)\n",
				analysis.BreakEvenSchedule.MonthsToBreakEven, analysis.BreakEvenSchedule.Date)
		}
	}

	if analysis.Profitability != nil {
		fmt.Printf("\nProfitability:\n")
		_, _ = p.Printf("  ROI:                 %.2f%%\n", analysis.Profitability.ROI)
		_, _ = p.Printf("  NPV:                 $%.2f\n", analysis.Profitability.NPV)
		_, _ = p.Printf("  IRR:                 %.2f%%\n", analysis.Profitability.IRR)
		if analysis.Profitability.PaybackPeriod == constants.NeverRecovered {
			fmt.Printf("  Payback period:      never recovered\n")
		} else {
			_, _ = p.Printf("  Payback period:      %.2f periods\n", analysis.Profitability.PaybackPeriod)
		}
		_, _ = p.Printf("  Profitability index: %.2f\n", analysis.Profitability.ProfitabilityIndex)
		_, _ = p.Printf("  MIRR:                %.2f%%\n", analysis.Profitability.MIRR)
	}

	if !analysis.Validation.IsValid {
		fmt.Printf("\nValidation errors:\n")
		for _, msg := range analysis.Validation.Errors {
			fmt.Printf("  - %s\n", msg)
		}
	}
}

// CsvFormat outputs the monthly distribution in comma-separated value format.
func CsvFormat(analysis *engine.Analysis) {
	fmt.Printf(`"date","revenue (%s)"`, escapeCsv(analysis.PlanName))
	fmt.Printf("\n")
	for _, share := range analysis.Monthly {
		fmt.Printf(`"%s","%.2f"`, share.Date, share.Amount)
		fmt.Printf("\n")
	}
}

func escapeCsv(value string) string {
	return strings.ReplaceAll(value, `"`, `""`)
}
