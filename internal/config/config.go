// Package config defines the data structures related to plan configuration
// and includes functions for loading and validating the plan file.
package config

import (
	"fmt"

	"github.com/planforge/projection-engine/pkg/constants"
	"github.com/planforge/projection-engine/pkg/projection"
	"github.com/planforge/projection-engine/pkg/validation"
	"github.com/spf13/viper"
)

// DateTimeLayout is the format expected in plan files and is also the output
// date format.
const DateTimeLayout = constants.DateTimeLayout

// Configuration holds everything needed to analyze one business plan.
type Configuration struct {
	Plan       Plan          `yaml:"plan"`
	Costs      Costs         `yaml:"costs,omitempty"`
	Investment Investment    `yaml:"investment,omitempty"`
	Scenarios  []Scenario    `yaml:"scenarios,omitempty"`
	Logging    LoggingConfig `yaml:"logging,omitempty"`
	Output     OutputConfig  `yaml:"output,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv
}

// Plan holds the revenue growth assumptions for the projection.
type Plan struct {
	ID                    string    `yaml:"id,omitempty"`
	PlanID                string    `yaml:"planID,omitempty"`
	Name                  string    `yaml:"name,omitempty"`
	StartDate             string    `yaml:"startDate,omitempty"`
	EndDate               string    `yaml:"endDate,omitempty"`
	BaseRevenue           float64   `yaml:"baseRevenue"`
	GrowthRatePercent     float64   `yaml:"growthRatePercent,omitempty"`
	Period                string    `yaml:"period,omitempty"`     // annual, quarterly, monthly
	Confidence            string    `yaml:"confidence,omitempty"` // low, medium, high
	Method                string    `yaml:"method,omitempty"`     // linear, compound, historical
	HistoricalGrowthRates []float64 `yaml:"historicalGrowthRates,omitempty"`
	SeasonalityFactors    []float64 `yaml:"seasonalityFactors,omitempty"`
}

// Costs holds the cost structure used for break-even analysis.
type Costs struct {
	FixedCosts          float64   `yaml:"fixedCosts,omitempty"`
	RevenuePerUnit      float64   `yaml:"revenuePerUnit,omitempty"`
	VariableCostPerUnit float64   `yaml:"variableCostPerUnit,omitempty"`
	MonthlyCosts        []float64 `yaml:"monthlyCosts,omitempty"`
}

// Investment holds the capital outlay and cash-flow schedule used for
// profitability analysis.
type Investment struct {
	InitialInvestment   float64   `yaml:"initialInvestment,omitempty"`
	DiscountRatePercent float64   `yaml:"discountRatePercent,omitempty"`
	CashFlows           []float64 `yaml:"cashFlows,omitempty"`
}

// Scenario is one projected outcome with an assigned probability.
type Scenario struct {
	ID                    string  `yaml:"id,omitempty"`
	Name                  string  `yaml:"name,omitempty"`
	ProjectedRevenue      float64 `yaml:"projectedRevenue,omitempty"`
	ProbabilityPercentage float64 `yaml:"probabilityPercentage,omitempty"`
	Preferred             bool    `yaml:"preferred,omitempty"`
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// plan configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	viper.SetConfigFile(configPath)
	viper.AutomaticEnv()

	viper.SetConfigType("yml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	var configuration Configuration
	err := viper.Unmarshal(&configuration)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}

// ToProjectionRecord converts the plan and scenarios into a revenue projection
// record for business-rule validation. totalRevenue is the engine's projected
// annual figure.
func (c *Configuration) ToProjectionRecord(totalRevenue float64) projection.RevenueProjection {
	scenarios := make([]projection.Scenario, len(c.Scenarios))
	for i, scenario := range c.Scenarios {
		scenarios[i] = projection.Scenario{
			ID:                    scenario.ID,
			Name:                  scenario.Name,
			ProjectedRevenue:      scenario.ProjectedRevenue,
			ProbabilityPercentage: scenario.ProbabilityPercentage,
			IsPreferred:           scenario.Preferred,
		}
	}

	return projection.RevenueProjection{
		ID:     c.Plan.ID,
		PlanID: c.Plan.PlanID,
		Period: projection.Period{
			StartDate:  c.Plan.StartDate,
			EndDate:    c.Plan.EndDate,
			PeriodType: c.Plan.Period,
		},
		TotalRevenue: totalRevenue,
		Scenarios:    scenarios,
	}
}

// ValidateConfiguration performs general validation of the plan and returns
// warnings. Hard input errors surface later from the calculators; warnings
// cover configurations that silently degrade the analysis.
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if c.Plan.BaseRevenue <= 0 {
		warnings = append(warnings, "Plan base revenue is not positive - projections will be zero or rejected")
	}
	if c.Plan.StartDate == "" {
		warnings = append(warnings, "Plan start date is missing - monthly distribution and break-even dates cannot be computed")
	}

	warnings = append(warnings, validation.ValidateSeasonalityFactors(c.Plan.SeasonalityFactors)...)
	warnings = append(warnings, validation.ValidateCashFlowSeries(c.Investment.InitialInvestment, c.Investment.CashFlows)...)

	if len(c.Costs.MonthlyCosts) > 0 && len(c.Costs.MonthlyCosts) != constants.MonthsPerYear {
		warnings = append(warnings, fmt.Sprintf("Monthly costs have %d entries instead of %d - break-even walk will use the shorter horizon",
			len(c.Costs.MonthlyCosts), constants.MonthsPerYear))
	}

	return warnings
}
