// Package growth computes projected revenue values from base revenue, a growth
// rate, a compounding convention, and a confidence adjustment.
package growth

import (
	"errors"
	"fmt"
	"math"

	"github.com/planforge/projection-engine/pkg/constants"
	"github.com/planforge/projection-engine/pkg/mathutil"
	"github.com/planforge/projection-engine/pkg/resultcache"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"
)

// PeriodType determines the exponent applied when compounding a rate to a period.
type PeriodType string

// Supported period types.
const (
	PeriodAnnual    PeriodType = "annual"
	PeriodQuarterly PeriodType = "quarterly"
	PeriodMonthly   PeriodType = "monthly"
)

// ConfidenceLevel expresses forecast conservatism or optimism as a fixed
// multiplier on the growth rate.
type ConfidenceLevel string

// Supported confidence levels.
const (
	ConfidenceLow    ConfidenceLevel = "low"
	ConfidenceMedium ConfidenceLevel = "medium"
	ConfidenceHigh   ConfidenceLevel = "high"
)

// CalculationMethod selects which projection algorithm to run.
type CalculationMethod string

// Supported calculation methods.
const (
	MethodLinear     CalculationMethod = "linear"
	MethodCompound   CalculationMethod = "compound"
	MethodHistorical CalculationMethod = "historical"
)

// Errors returned for invalid projection inputs.
var (
	ErrUnknownPeriodType   = errors.New("unknown period type")
	ErrUnknownConfidence   = errors.New("unknown confidence level")
	ErrUnknownMethod       = errors.New("unknown calculation method")
	ErrNonFiniteInput      = errors.New("input must be a finite number")
	ErrNegativeBaseRevenue = errors.New("base revenue cannot be negative")
)

// Factor returns the multiplier applied to a growth rate for this confidence
// level.
func (c ConfidenceLevel) Factor() (float64, error) {
	switch c {
	case ConfidenceLow:
		return constants.LowConfidenceFactor, nil
	case ConfidenceMedium:
		return constants.MediumConfidenceFactor, nil
	case ConfidenceHigh:
		return constants.HighConfidenceFactor, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownConfidence, string(c))
	}
}

// Exponent returns the compounding exponent for this period type.
func (p PeriodType) Exponent() (float64, error) {
	switch p {
	case PeriodAnnual:
		return 1, nil
	case PeriodQuarterly:
		return 1.0 / constants.QuartersPerYear, nil
	case PeriodMonthly:
		return 1.0 / constants.MonthsPerYear, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownPeriodType, string(p))
	}
}

// Model projects revenue figures. Results are memoized in the injected store so
// repeated identical calls do not re-run the arithmetic.
type Model struct {
	logger *zap.Logger
	cache  *resultcache.Store
}

// NewModel creates a growth model with the given logger and cache. A nil
// logger is replaced with a no-op logger and a nil cache with a fresh store.
func NewModel(logger *zap.Logger, cache *resultcache.Store) *Model {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cache == nil {
		cache = resultcache.New()
	}
	return &Model{logger: logger, cache: cache}
}

// ProjectRevenue computes a projected revenue value from a base revenue, a
// growth rate in percent, a compounding convention, a confidence adjustment and
// a calculation method. historicalRates is only consulted for MethodHistorical
// and holds past growth percentages ordered oldest first; a missing or empty
// sequence degrades to zero growth.
func (m *Model) ProjectRevenue(baseRevenue, growthRatePercent float64, periodType PeriodType, confidence ConfidenceLevel, method CalculationMethod, historicalRates []float64) (float64, error) {
	if !mathutil.IsFinite(baseRevenue) || !mathutil.IsFinite(growthRatePercent) {
		return 0, ErrNonFiniteInput
	}
	if baseRevenue < 0 {
		return 0, ErrNegativeBaseRevenue
	}

	key := resultcache.NewKey("growth.ProjectRevenue").
		Float(baseRevenue).
		Float(growthRatePercent).
		String(string(periodType)).
		String(string(confidence)).
		String(string(method)).
		Floats(historicalRates).
		Build()
	if cached, ok := m.cache.Get(key); ok {
		return cached.(float64), nil
	}

	confidenceFactor, err := confidence.Factor()
	if err != nil {
		return 0, err
	}

	var projected float64
	switch method {
	case MethodLinear:
		projected = baseRevenue * (1 + growthRatePercent/constants.PercentageMultiplier*confidenceFactor)
	case MethodCompound:
		exponent, expErr := periodType.Exponent()
		if expErr != nil {
			return 0, expErr
		}
		rate := growthRatePercent / constants.PercentageMultiplier * confidenceFactor
		projected = baseRevenue * math.Pow(1+rate, exponent)
	case MethodHistorical:
		// Confidence is not applied here; the historical average already
		// encodes real data.
		average := weightedHistoricalAverage(historicalRates)
		projected = baseRevenue * (1 + average/constants.PercentageMultiplier)
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownMethod, string(method))
	}

	m.logger.Debug("projected revenue",
		zap.String("op", "growth.ProjectRevenue"),
		zap.Float64("baseRevenue", baseRevenue),
		zap.Float64("growthRatePercent", growthRatePercent),
		zap.String("method", string(method)),
		zap.Float64("projected", projected),
	)

	m.cache.Put(key, projected)
	return projected, nil
}

// weightedHistoricalAverage averages past growth percentages with weight equal
// to position index + 1, so the most recent period carries the highest weight.
func weightedHistoricalAverage(rates []float64) float64 {
	if len(rates) == 0 {
		return 0
	}
	weights := make([]float64, len(rates))
	for i := range rates {
		weights[i] = float64(i + 1)
	}
	return stat.Mean(rates, weights)
}
