// Package seasonal spreads an annual revenue figure across twelve periods
// using relative seasonality weights.
package seasonal

import (
	"errors"
	"fmt"

	"github.com/planforge/projection-engine/pkg/constants"
	"github.com/planforge/projection-engine/pkg/datetime"
	"github.com/planforge/projection-engine/pkg/mathutil"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
)

// Errors returned for invalid distribution inputs.
var (
	ErrFactorCount      = errors.New("seasonality factors must have exactly 12 entries")
	ErrNonPositiveTotal = errors.New("seasonality factors must sum to a positive total")
	ErrNonFiniteInput   = errors.New("input must be a finite number")
)

// MonthlyShare is one month's portion of an annual revenue figure.
type MonthlyShare struct {
	Date   string
	Amount float64
}

// Distributor allocates annual revenue across months.
type Distributor struct {
	logger *zap.Logger
}

// NewDistributor creates a distributor with the given logger. A nil logger is
// replaced with a no-op logger.
func NewDistributor(logger *zap.Logger) *Distributor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Distributor{logger: logger}
}

// DistributeMonthly spreads annualRevenue across twelve months, chronological
// starting at startDate's month. With no factors each month receives an equal
// share; otherwise month i receives annualRevenue × factor_i / sum(factors).
// The output always sums to annualRevenue within floating-point tolerance.
func (d *Distributor) DistributeMonthly(annualRevenue float64, factors []float64) ([]float64, error) {
	if !mathutil.IsFinite(annualRevenue) {
		return nil, ErrNonFiniteInput
	}

	shares := make([]float64, constants.MonthsPerYear)
	if len(factors) == 0 {
		even := annualRevenue / constants.MonthsPerYear
		for i := range shares {
			shares[i] = even
		}
		return shares, nil
	}

	if len(factors) != constants.MonthsPerYear {
		return nil, fmt.Errorf("%w: got %d", ErrFactorCount, len(factors))
	}
	for _, factor := range factors {
		if !mathutil.IsFinite(factor) {
			return nil, ErrNonFiniteInput
		}
	}

	total := floats.Sum(factors)
	if total <= 0 {
		return nil, ErrNonPositiveTotal
	}

	for i, factor := range factors {
		shares[i] = annualRevenue * factor / total
	}

	d.logger.Debug("distributed annual revenue",
		zap.String("op", "seasonal.DistributeMonthly"),
		zap.Float64("annualRevenue", annualRevenue),
		zap.Float64("factorTotal", total),
	)

	return shares, nil
}

// DistributeWithDates is DistributeMonthly with month labels attached, starting
// at startDate (in the "2006-01" layout).
func (d *Distributor) DistributeWithDates(annualRevenue float64, factors []float64, startDate string) ([]MonthlyShare, error) {
	shares, err := d.DistributeMonthly(annualRevenue, factors)
	if err != nil {
		return nil, err
	}

	months, err := datetime.MonthSequence(startDate, constants.MonthsPerYear)
	if err != nil {
		return nil, fmt.Errorf("invalid start date %q: %w", startDate, err)
	}

	result := make([]MonthlyShare, constants.MonthsPerYear)
	for i := range shares {
		result[i] = MonthlyShare{Date: months[i], Amount: shares[i]}
	}
	return result, nil
}
