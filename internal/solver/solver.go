// Package solver searches revenue assumptions for break-even feasibility
// targets using bounded bisection.
package solver

import (
	"errors"
	"fmt"
	"math"

	"github.com/planforge/projection-engine/pkg/breakeven"
	"github.com/planforge/projection-engine/pkg/constants"
	"go.uber.org/zap"
)

// Search bounds. The scale search doubles its upper bound until feasible and
// then bisects; both phases are iteration-limited so the solver terminates for
// any input series.
const (
	// DefaultTolerance is the bisection interval width at which the search stops
	DefaultTolerance = 1e-4

	// MaxIterations bounds the bisection loop
	MaxIterations = 200

	// maxDoublings bounds the upper-bound expansion phase
	maxDoublings = 60
)

// ErrInfeasible indicates no revenue scale within the search bounds reaches
// break-even inside the requested window.
var ErrInfeasible = errors.New("no feasible revenue scale within search bounds")

// Solution reports the minimum feasible revenue scale and the schedule it
// produces.
type Solution struct {
	Scale      float64
	Schedule   breakeven.Schedule
	Iterations int
}

// Solver finds minimal revenue adjustments that satisfy a break-even window.
type Solver struct {
	logger   *zap.Logger
	analyzer *breakeven.Analyzer
}

// New creates a solver with the given logger. A nil logger is replaced with a
// no-op logger.
func New(logger *zap.Logger) *Solver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Solver{logger: logger, analyzer: breakeven.NewAnalyzer(logger)}
}

// MinimumRevenueScale finds the smallest multiplier on the monthly revenue
// series such that cumulative net cash flow breaks even within withinMonths.
// The feasibility walk reuses the break-even schedule calculation, so the
// result honors the same >= 0 tie-break.
func (s *Solver) MinimumRevenueScale(fixedCosts float64, monthlyRevenue, monthlyCosts []float64, startDate string, withinMonths int) (*Solution, error) {
	if withinMonths <= 0 || withinMonths > len(monthlyRevenue) {
		return nil, fmt.Errorf("break-even window must be between 1 and %d months, got %d", len(monthlyRevenue), withinMonths)
	}

	feasible := func(scale float64) (breakeven.Schedule, bool, error) {
		scaled := make([]float64, len(monthlyRevenue))
		for i, revenue := range monthlyRevenue {
			scaled[i] = revenue * scale
		}
		schedule, err := s.analyzer.BreakEvenDate(fixedCosts, scaled, monthlyCosts, startDate)
		if err != nil {
			return breakeven.Schedule{}, false, err
		}
		ok := schedule.MonthsToBreakEven != constants.NeverRecovered && schedule.MonthsToBreakEven <= withinMonths
		return schedule, ok, nil
	}

	// Expansion phase: find an upper bound that is feasible.
	upper := 1.0
	upperSchedule, upperOK, err := feasible(upper)
	if err != nil {
		return nil, err
	}
	doublings := 0
	for !upperOK {
		if doublings >= maxDoublings {
			return nil, fmt.Errorf("%w: tried up to scale %.0f", ErrInfeasible, upper)
		}
		upper *= 2
		doublings++
		upperSchedule, upperOK, err = feasible(upper)
		if err != nil {
			return nil, err
		}
	}

	lower := 0.0
	best := Solution{Scale: upper, Schedule: upperSchedule}
	iterations := 0
	for iterations < MaxIterations && math.Abs(upper-lower) > DefaultTolerance {
		mid := lower + (upper-lower)/2
		schedule, ok, err := feasible(mid)
		if err != nil {
			return nil, err
		}
		iterations++
		if ok {
			best = Solution{Scale: mid, Schedule: schedule}
			upper = mid
		} else {
			lower = mid
		}
	}
	best.Iterations = iterations

	s.logger.Debug("solved minimum revenue scale",
		zap.String("op", "solver.MinimumRevenueScale"),
		zap.Float64("scale", best.Scale),
		zap.Int("months", best.Schedule.MonthsToBreakEven),
		zap.Int("iterations", iterations),
	)

	return &best, nil
}
