// Package breakeven computes break-even volumes, revenue and calendar dates
// from fixed/variable costs and unit economics.
package breakeven

import (
	"errors"
	"fmt"

	"github.com/planforge/projection-engine/pkg/constants"
	"github.com/planforge/projection-engine/pkg/datetime"
	"github.com/planforge/projection-engine/pkg/mathutil"
	"go.uber.org/zap"
)

// Errors returned for invalid break-even inputs.
var (
	ErrZeroContributionMargin = errors.New("contribution margin is zero")
	ErrNonFiniteInput         = errors.New("input must be a finite number")
	ErrSeriesLengthMismatch   = errors.New("monthly revenue and cost series must have the same length")
)

// Point holds the unit volume and revenue at which cumulative profit is zero.
type Point struct {
	Units   float64
	Revenue float64
}

// Schedule holds the projected month at which cumulative net cash flow turns
// non-negative. MonthsToBreakEven is -1 when the horizon never breaks even; in
// that case Date carries a fixed estimate of 12 months after the start date
// rather than a computed projection.
type Schedule struct {
	MonthsToBreakEven int
	Date              string
}

// Analyzer computes break-even metrics.
type Analyzer struct {
	logger *zap.Logger
}

// NewAnalyzer creates an analyzer with the given logger. A nil logger is
// replaced with a no-op logger.
func NewAnalyzer(logger *zap.Logger) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyzer{logger: logger}
}

// BreakEvenPoint computes the unit volume and monetary revenue at break-even.
// A contribution margin of zero (revenuePerUnit == variableCostPerUnit) is
// signaled as an error rather than returning Inf.
func (a *Analyzer) BreakEvenPoint(fixedCosts, revenuePerUnit, variableCostPerUnit float64) (Point, error) {
	if !mathutil.IsFinite(fixedCosts) || !mathutil.IsFinite(revenuePerUnit) || !mathutil.IsFinite(variableCostPerUnit) {
		return Point{}, ErrNonFiniteInput
	}

	margin := revenuePerUnit - variableCostPerUnit
	if margin == 0 {
		return Point{}, fmt.Errorf("%w: revenue per unit %.2f equals variable cost per unit", ErrZeroContributionMargin, revenuePerUnit)
	}

	units := fixedCosts / margin
	point := Point{Units: units, Revenue: units * revenuePerUnit}

	a.logger.Debug("computed break-even point",
		zap.String("op", "breakeven.BreakEvenPoint"),
		zap.Float64("fixedCosts", fixedCosts),
		zap.Float64("contributionMargin", margin),
		zap.Float64("breakEvenRevenue", point.Revenue),
	)

	return point, nil
}

// BreakEvenDate walks a running balance initialized to -fixedCosts through the
// monthly revenue and cost series and reports the first month (1-indexed) at
// which the balance reaches zero or better. Exactly zero counts as break-even.
func (a *Analyzer) BreakEvenDate(fixedCosts float64, monthlyRevenue, monthlyCosts []float64, startDate string) (Schedule, error) {
	if !mathutil.IsFinite(fixedCosts) {
		return Schedule{}, ErrNonFiniteInput
	}
	if len(monthlyRevenue) != len(monthlyCosts) {
		return Schedule{}, fmt.Errorf("%w: %d revenue vs %d cost entries", ErrSeriesLengthMismatch, len(monthlyRevenue), len(monthlyCosts))
	}

	balance := -fixedCosts
	for i := range monthlyRevenue {
		balance += monthlyRevenue[i] - monthlyCosts[i]
		if balance >= 0 {
			months := i + 1
			date, err := datetime.OffsetDate(startDate, datetime.DateTimeLayout, months)
			if err != nil {
				return Schedule{}, fmt.Errorf("invalid start date %q: %w", startDate, err)
			}
			a.logger.Debug("reached break-even",
				zap.String("op", "breakeven.BreakEvenDate"),
				zap.Int("months", months),
				zap.Float64("balance", balance),
			)
			return Schedule{MonthsToBreakEven: months, Date: date}, nil
		}
	}

	// Horizon exhausted; fall back to the fixed one-year-later estimate.
	date, err := datetime.OffsetDate(startDate, datetime.DateTimeLayout, constants.FallbackBreakEvenMonths)
	if err != nil {
		return Schedule{}, fmt.Errorf("invalid start date %q: %w", startDate, err)
	}
	a.logger.Debug("horizon exhausted without break-even",
		zap.String("op", "breakeven.BreakEvenDate"),
		zap.Int("horizonMonths", len(monthlyRevenue)),
		zap.Float64("finalBalance", balance),
	)
	return Schedule{MonthsToBreakEven: constants.NeverRecovered, Date: date}, nil
}
