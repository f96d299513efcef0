// Package projection defines the revenue projection record and its
// business-rule validation.
package projection

import (
	"fmt"
	"math"

	"github.com/planforge/projection-engine/pkg/constants"
)

// Period describes the time span a projection covers.
type Period struct {
	StartDate  string
	EndDate    string
	PeriodType string
}

// Scenario is one projected outcome with an assigned probability.
type Scenario struct {
	ID                    string
	Name                  string
	ProjectedRevenue      float64
	ProbabilityPercentage float64
	IsPreferred           bool
}

// RevenueProjection is a projection record as produced for a business plan.
type RevenueProjection struct {
	ID               string
	PlanID           string
	Period           Period
	TotalRevenue     float64
	Scenarios        []Scenario
	RevenueBreakdown map[string]float64
}

// ValidationResult reports whether a projection passed all business rules.
// Errors preserves check order and accumulates every applicable failure.
type ValidationResult struct {
	IsValid bool
	Errors  []string
}

// Validate runs all structural and business-rule checks against the
// projection, accumulating every failure instead of stopping at the first.
func Validate(p RevenueProjection) ValidationResult {
	var errs []string

	if p.ID == "" {
		errs = append(errs, "Missing projection ID")
	}
	if p.PlanID == "" {
		errs = append(errs, "Missing plan ID")
	}
	if p.TotalRevenue < 0 {
		errs = append(errs, "Total revenue cannot be negative")
	}
	if len(p.Scenarios) == 0 {
		errs = append(errs, "At least one scenario is required")
	} else {
		preferred := false
		probabilitySum := 0.0
		for _, scenario := range p.Scenarios {
			if scenario.IsPreferred {
				preferred = true
			}
			probabilitySum += scenario.ProbabilityPercentage
		}
		if !preferred {
			errs = append(errs, "At least one scenario must be marked as preferred")
		}
		if math.Abs(probabilitySum-constants.PercentageMultiplier) > constants.ProbabilitySumTolerance {
			errs = append(errs, fmt.Sprintf("Scenario probabilities should sum to 100%%, got %.2f%%", probabilitySum))
		}
	}

	return ValidationResult{IsValid: len(errs) == 0, Errors: errs}
}
