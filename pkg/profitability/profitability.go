// Package profitability computes investment-profitability metrics (ROI, NPV,
// IRR, payback period, profitability index, MIRR) from an initial investment
// and a cash-flow schedule.
//
// Cash-flow schedules are ordered sequences of signed monetary amounts, one
// per period, index 0 being the first period after the initial outlay. Index
// order is the ordering guarantee for all time-dependent calculations.
package profitability

import (
	"errors"
	"fmt"
	"math"

	"github.com/planforge/projection-engine/pkg/constants"
	"github.com/planforge/projection-engine/pkg/mathutil"
	"github.com/planforge/projection-engine/pkg/resultcache"
	"go.uber.org/zap"
)

// Errors returned for invalid profitability inputs.
var (
	ErrInvalidInvestment = errors.New("initial investment must be positive")
	ErrEmptyCashFlows    = errors.New("cash flow schedule cannot be empty")
	ErrNonFiniteInput    = errors.New("input must be a finite number")
)

// Result holds all profitability metrics for one investment. PaybackPeriod is
// -1 when the investment is never recovered within the cash-flow horizon. IRR
// is capped at 100 when the cash flows never drive NPV negative.
type Result struct {
	ROI                float64
	NPV                float64
	IRR                float64
	PaybackPeriod      float64
	ProfitabilityIndex float64
	MIRR               float64
}

// CalculateROI returns the simple return on investment as a percentage.
func CalculateROI(initialInvestment float64, cashFlows []float64) (float64, error) {
	if err := validateInputs(initialInvestment, cashFlows); err != nil {
		return 0, err
	}
	total := 0.0
	for _, flow := range cashFlows {
		total += flow
	}
	return (total - initialInvestment) / initialInvestment * constants.PercentageMultiplier, nil
}

// CalculateNPV discounts the cash flows back to period 0 and subtracts the
// initial outlay. rate is a percentage; with annualizedRate true it converts
// to a decimal as rate/100, otherwise as rate/1200 (monthly equivalent). The
// flag changes only the rate conversion, never the period count.
func CalculateNPV(initialInvestment float64, cashFlows []float64, rate float64, annualizedRate bool) float64 {
	periodRate := rate / constants.PercentageMultiplier
	if !annualizedRate {
		periodRate = rate / (constants.PercentageMultiplier * constants.MonthsPerYear)
	}

	npv := -initialInvestment
	for i, flow := range cashFlows {
		npv += flow / math.Pow(1+periodRate, float64(i+1))
	}
	return npv
}

// CalculateIRR finds the discount rate, in percent, at which the
// monthly-converted NPV of the schedule is zero. The search is a bounded
// bisection over [-99, 100]; when NPV stays positive at the upper boundary
// (e.g. all-positive cash flows with no sign flip) the boundary value 100 is
// returned as a sentinel rather than failing.
func CalculateIRR(initialInvestment float64, cashFlows []float64) (float64, error) {
	if err := validateInputs(initialInvestment, cashFlows); err != nil {
		return 0, err
	}

	lower := constants.IRRLowerBoundPercent
	upper := constants.IRRUpperBoundPercent

	npvUpper := CalculateNPV(initialInvestment, cashFlows, upper, false)
	if npvUpper > 0 {
		return constants.IRRUpperBoundPercent, nil
	}
	npvLower := CalculateNPV(initialInvestment, cashFlows, lower, false)
	if npvLower < 0 {
		return constants.IRRLowerBoundPercent, nil
	}

	rate := lower
	for i := 0; i < constants.IRRMaxIterations; i++ {
		rate = lower + (upper-lower)/2
		npv := CalculateNPV(initialInvestment, cashFlows, rate, false)
		if math.Abs(npv) < constants.IRRConvergenceTolerance {
			break
		}
		if npv > 0 {
			lower = rate
		} else {
			upper = rate
		}
	}
	return rate, nil
}

// CalculatePaybackPeriod returns the number of periods needed for cumulative
// cash flow to recover the initial investment, interpolating fractionally
// within the recovering period. Recovery exactly at a period boundary yields
// that integer period count. Never recovered within the horizon yields -1.
func CalculatePaybackPeriod(initialInvestment float64, cashFlows []float64) (float64, error) {
	if err := validateInputs(initialInvestment, cashFlows); err != nil {
		return 0, err
	}

	cumulative := -initialInvestment
	for i, flow := range cashFlows {
		previous := cumulative
		cumulative += flow
		if cumulative >= 0 {
			if cumulative == 0 {
				return float64(i + 1), nil
			}
			// previous is the deficit at the start of the recovering period.
			return float64(i) + (-previous)/flow, nil
		}
	}
	return constants.NeverRecovered, nil
}

// CalculateProfitabilityIndex returns (npv + investment) / investment.
func CalculateProfitabilityIndex(initialInvestment, npv float64) (float64, error) {
	if !mathutil.IsFinite(initialInvestment) || !mathutil.IsFinite(npv) {
		return 0, ErrNonFiniteInput
	}
	if initialInvestment <= 0 {
		return 0, fmt.Errorf("%w: got %.2f", ErrInvalidInvestment, initialInvestment)
	}
	return (npv + initialInvestment) / initialInvestment, nil
}

// CalculateMIRR reinvests positive cash flows forward to the terminal period
// at reinvestmentRate and discounts negative cash flows (including the initial
// outlay) back to period 0 at financingRate, then takes the nth root of their
// ratio. Both rates are percentages; the result is a percentage. The formula
// stays well-defined for mixed-sign schedules.
func CalculateMIRR(initialInvestment float64, cashFlows []float64, financingRate, reinvestmentRate float64) (float64, error) {
	if err := validateInputs(initialInvestment, cashFlows); err != nil {
		return 0, err
	}
	if !mathutil.IsFinite(financingRate) || !mathutil.IsFinite(reinvestmentRate) {
		return 0, ErrNonFiniteInput
	}

	finRate := financingRate / constants.PercentageMultiplier
	reinvRate := reinvestmentRate / constants.PercentageMultiplier
	periods := len(cashFlows)

	terminalValue := 0.0
	presentValueOutflows := initialInvestment
	for i, flow := range cashFlows {
		if flow > 0 {
			terminalValue += flow * math.Pow(1+reinvRate, float64(periods-(i+1)))
		} else if flow < 0 {
			presentValueOutflows += -flow / math.Pow(1+finRate, float64(i+1))
		}
	}

	mirr := math.Pow(terminalValue/presentValueOutflows, 1/float64(periods)) - 1
	return mirr * constants.PercentageMultiplier, nil
}

// Analyzer computes full profitability results with memoization. Identical
// (initialInvestment, cashFlows, discountRate) triples return the same cached
// *Result on repeat calls.
type Analyzer struct {
	logger *zap.Logger
	cache  *resultcache.Store
}

// NewAnalyzer creates an analyzer with the given logger and cache. A nil
// logger is replaced with a no-op logger and a nil cache with a fresh store.
func NewAnalyzer(logger *zap.Logger, cache *resultcache.Store) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cache == nil {
		cache = resultcache.New()
	}
	return &Analyzer{logger: logger, cache: cache}
}

// Analyze computes all six profitability metrics for the investment.
// discountRate is a percentage and drives the NPV (annualized), the
// profitability index, and both MIRR rates.
func (a *Analyzer) Analyze(initialInvestment float64, cashFlows []float64, discountRate float64) (*Result, error) {
	if err := validateInputs(initialInvestment, cashFlows); err != nil {
		return nil, err
	}
	if !mathutil.IsFinite(discountRate) {
		return nil, ErrNonFiniteInput
	}

	key := resultcache.NewKey("profitability.Analyze").
		Float(initialInvestment).
		Floats(cashFlows).
		Float(discountRate).
		Build()
	if cached, ok := a.cache.Get(key); ok {
		return cached.(*Result), nil
	}

	roi, err := CalculateROI(initialInvestment, cashFlows)
	if err != nil {
		return nil, err
	}
	npv := CalculateNPV(initialInvestment, cashFlows, discountRate, true)
	irr, err := CalculateIRR(initialInvestment, cashFlows)
	if err != nil {
		return nil, err
	}
	payback, err := CalculatePaybackPeriod(initialInvestment, cashFlows)
	if err != nil {
		return nil, err
	}
	index, err := CalculateProfitabilityIndex(initialInvestment, npv)
	if err != nil {
		return nil, err
	}
	mirr, err := CalculateMIRR(initialInvestment, cashFlows, discountRate, discountRate)
	if err != nil {
		return nil, err
	}

	result := &Result{
		ROI:                roi,
		NPV:                npv,
		IRR:                irr,
		PaybackPeriod:      payback,
		ProfitabilityIndex: index,
		MIRR:               mirr,
	}

	a.logger.Debug("analyzed investment",
		zap.String("op", "profitability.Analyze"),
		zap.Float64("initialInvestment", initialInvestment),
		zap.Int("periods", len(cashFlows)),
		zap.Float64("roi", roi),
		zap.Float64("npv", npv),
		zap.Float64("irr", irr),
	)

	a.cache.Put(key, result)
	return result, nil
}

func validateInputs(initialInvestment float64, cashFlows []float64) error {
	if !mathutil.IsFinite(initialInvestment) {
		return ErrNonFiniteInput
	}
	if initialInvestment <= 0 {
		return fmt.Errorf("%w: got %.2f", ErrInvalidInvestment, initialInvestment)
	}
	if len(cashFlows) == 0 {
		return ErrEmptyCashFlows
	}
	for _, flow := range cashFlows {
		if !mathutil.IsFinite(flow) {
			return ErrNonFiniteInput
		}
	}
	return nil
}
