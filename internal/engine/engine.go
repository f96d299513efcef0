// Package engine coordinates the projection calculators for a loaded plan
// configuration and assembles the per-plan analysis report.
package engine

import (
	"fmt"

	"github.com/planforge/projection-engine/internal/config"
	"github.com/planforge/projection-engine/pkg/breakeven"
	"github.com/planforge/projection-engine/pkg/growth"
	"github.com/planforge/projection-engine/pkg/mathutil"
	"github.com/planforge/projection-engine/pkg/profitability"
	"github.com/planforge/projection-engine/pkg/projection"
	"github.com/planforge/projection-engine/pkg/resultcache"
	"github.com/planforge/projection-engine/pkg/seasonal"
	"go.uber.org/zap"
)

// Analysis holds all computed results for one plan. BreakEvenPoint and
// Profitability are nil when the plan does not configure the corresponding
// inputs.
type Analysis struct {
	PlanName               string
	ProjectedAnnualRevenue float64
	Monthly                []seasonal.MonthlyShare
	BreakEvenPoint         *breakeven.Point
	BreakEvenSchedule      *breakeven.Schedule
	Profitability          *profitability.Result
	Validation             projection.ValidationResult
}

// Engine wires the calculators together behind a shared result cache.
type Engine struct {
	logger        *zap.Logger
	cache         *resultcache.Store
	model         *growth.Model
	distributor   *seasonal.Distributor
	breakEven     *breakeven.Analyzer
	profitability *profitability.Analyzer
}

// New creates an engine with the given logger. A nil logger is replaced with a
// no-op logger. All calculators share one result cache, which Reset exposes
// for test isolation.
func New(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	cache := resultcache.New()
	return &Engine{
		logger:        logger,
		cache:         cache,
		model:         growth.NewModel(logger, cache),
		distributor:   seasonal.NewDistributor(logger),
		breakEven:     breakeven.NewAnalyzer(logger),
		profitability: profitability.NewAnalyzer(logger, cache),
	}
}

// Cache exposes the shared result cache, mainly so tests can reset it.
func (e *Engine) Cache() *resultcache.Store {
	return e.cache
}

// GetAnalysis runs the full projection pipeline for the plan: revenue growth,
// seasonal distribution, break-even, profitability and record validation.
func (e *Engine) GetAnalysis(conf config.Configuration) (*Analysis, error) {
	projected, err := e.model.ProjectRevenue(
		conf.Plan.BaseRevenue,
		conf.Plan.GrowthRatePercent,
		growth.PeriodType(conf.Plan.Period),
		growth.ConfidenceLevel(conf.Plan.Confidence),
		growth.CalculationMethod(conf.Plan.Method),
		conf.Plan.HistoricalGrowthRates,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to project revenue for plan %s: %w", conf.Plan.Name, err)
	}

	analysis := &Analysis{
		PlanName:               conf.Plan.Name,
		ProjectedAnnualRevenue: projected,
	}

	monthly, err := e.distributor.DistributeWithDates(projected, conf.Plan.SeasonalityFactors, conf.Plan.StartDate)
	if err != nil {
		return nil, fmt.Errorf("failed to distribute revenue for plan %s: %w", conf.Plan.Name, err)
	}
	analysis.Monthly = monthly

	if err := e.analyzeBreakEven(conf, analysis); err != nil {
		return nil, err
	}

	if conf.Investment.InitialInvestment > 0 && len(conf.Investment.CashFlows) > 0 {
		result, profErr := e.profitability.Analyze(
			conf.Investment.InitialInvestment,
			conf.Investment.CashFlows,
			conf.Investment.DiscountRatePercent,
		)
		if profErr != nil {
			return nil, fmt.Errorf("failed to analyze investment for plan %s: %w", conf.Plan.Name, profErr)
		}
		analysis.Profitability = result
	} else {
		e.logger.Debug("skipping profitability analysis",
			zap.String("op", "engine.GetAnalysis"),
			zap.Float64("initialInvestment", conf.Investment.InitialInvestment),
			zap.Int("cashFlows", len(conf.Investment.CashFlows)),
		)
	}

	analysis.Validation = projection.Validate(conf.ToProjectionRecord(projected))

	return analysis, nil
}

// analyzeBreakEven fills the break-even point and schedule when the plan
// configures unit economics and a monthly cost series.
func (e *Engine) analyzeBreakEven(conf config.Configuration, analysis *Analysis) error {
	if !mathutil.IsZero(conf.Costs.RevenuePerUnit) || !mathutil.IsZero(conf.Costs.VariableCostPerUnit) {
		point, err := e.breakEven.BreakEvenPoint(conf.Costs.FixedCosts, conf.Costs.RevenuePerUnit, conf.Costs.VariableCostPerUnit)
		if err != nil {
			return fmt.Errorf("failed to compute break-even point for plan %s: %w", conf.Plan.Name, err)
		}
		analysis.BreakEvenPoint = &point
	}

	if len(conf.Costs.MonthlyCosts) == 0 {
		return nil
	}

	// The distribution covers 12 months; a shorter cost series bounds the walk.
	horizon := len(conf.Costs.MonthlyCosts)
	if horizon > len(analysis.Monthly) {
		horizon = len(analysis.Monthly)
	}
	monthlyRevenue := make([]float64, horizon)
	for i := 0; i < horizon; i++ {
		monthlyRevenue[i] = analysis.Monthly[i].Amount
	}

	schedule, err := e.breakEven.BreakEvenDate(conf.Costs.FixedCosts, monthlyRevenue, conf.Costs.MonthlyCosts[:horizon], conf.Plan.StartDate)
	if err != nil {
		return fmt.Errorf("failed to compute break-even date for plan %s: %w", conf.Plan.Name, err)
	}
	analysis.BreakEvenSchedule = &schedule
	return nil
}
