package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

const planYAML = `---
plan:
  id: proj-001
  planID: plan-001
  name: Test Plan
  startDate: 2026-01
  endDate: 2026-12
  baseRevenue: 120000
  growthRatePercent: 10
  period: annual
  confidence: medium
  method: linear
  historicalGrowthRates:
    - 8
    - 9
    - 12
  seasonalityFactors:
    - 1
    - 1
    - 1
    - 1
    - 1
    - 1
    - 1
    - 1
    - 1
    - 1
    - 1
    - 1
costs:
  fixedCosts: 50000
  revenuePerUnit: 100
  variableCostPerUnit: 60
  monthlyCosts:
    - 5000
    - 5000
    - 5000
    - 5000
    - 5000
    - 5000
    - 5000
    - 5000
    - 5000
    - 5000
    - 5000
    - 5000
investment:
  initialInvestment: 100000
  discountRatePercent: 10
  cashFlows:
    - 20000
    - 25000
    - 30000
    - 35000
    - 40000
scenarios:
  - id: s-1
    name: Expected
    projectedRevenue: 132000
    probabilityPercentage: 100
    preferred: true
logging:
  level: debug
  format: console
output:
  format: csv
`

func writePlanFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plan.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write plan file: %v", err)
	}
	return path
}

func TestLoadConfiguration(t *testing.T) {
	conf, err := LoadConfiguration(writePlanFile(t, planYAML))
	if err != nil {
		t.Fatalf("LoadConfiguration() unexpected error: %v", err)
	}

	if conf.Plan.Name != "Test Plan" {
		t.Errorf("Plan.Name = %q, expected %q", conf.Plan.Name, "Test Plan")
	}
	if conf.Plan.StartDate != "2026-01" {
		t.Errorf("Plan.StartDate = %q, expected %q", conf.Plan.StartDate, "2026-01")
	}
	if conf.Plan.BaseRevenue != 120000 {
		t.Errorf("Plan.BaseRevenue = %v, expected 120000", conf.Plan.BaseRevenue)
	}
	if !reflect.DeepEqual(conf.Plan.HistoricalGrowthRates, []float64{8, 9, 12}) {
		t.Errorf("Plan.HistoricalGrowthRates = %v, expected [8 9 12]", conf.Plan.HistoricalGrowthRates)
	}
	if len(conf.Plan.SeasonalityFactors) != 12 {
		t.Errorf("Plan.SeasonalityFactors has %d entries, expected 12", len(conf.Plan.SeasonalityFactors))
	}
	if conf.Costs.FixedCosts != 50000 || conf.Costs.RevenuePerUnit != 100 || conf.Costs.VariableCostPerUnit != 60 {
		t.Errorf("Costs = %+v, expected fixed 50000, revenue/unit 100, variable/unit 60", conf.Costs)
	}
	if conf.Investment.InitialInvestment != 100000 || len(conf.Investment.CashFlows) != 5 {
		t.Errorf("Investment = %+v, expected 100000 with 5 cash flows", conf.Investment)
	}
	if len(conf.Scenarios) != 1 || !conf.Scenarios[0].Preferred {
		t.Errorf("Scenarios = %+v, expected one preferred scenario", conf.Scenarios)
	}
	if conf.Logging.Level != "debug" || conf.Logging.Format != "console" {
		t.Errorf("Logging = %+v, expected debug/console", conf.Logging)
	}
	if conf.Output.Format != "csv" {
		t.Errorf("Output.Format = %q, expected csv", conf.Output.Format)
	}
}

func TestLoadConfigurationMissingFile(t *testing.T) {
	if _, err := LoadConfiguration(filepath.Join(t.TempDir(), "does-not-exist.yaml")); err == nil {
		t.Error("LoadConfiguration() expected error for missing file")
	}
}

func TestToProjectionRecord(t *testing.T) {
	conf, err := LoadConfiguration(writePlanFile(t, planYAML))
	if err != nil {
		t.Fatalf("LoadConfiguration() unexpected error: %v", err)
	}

	record := conf.ToProjectionRecord(132000)

	if record.ID != "proj-001" || record.PlanID != "plan-001" {
		t.Errorf("record IDs = %q/%q, expected proj-001/plan-001", record.ID, record.PlanID)
	}
	if record.TotalRevenue != 132000 {
		t.Errorf("record.TotalRevenue = %v, expected 132000", record.TotalRevenue)
	}
	if record.Period.StartDate != "2026-01" || record.Period.EndDate != "2026-12" || record.Period.PeriodType != "annual" {
		t.Errorf("record.Period = %+v, expected 2026-01/2026-12/annual", record.Period)
	}
	if len(record.Scenarios) != 1 {
		t.Fatalf("record has %d scenarios, expected 1", len(record.Scenarios))
	}
	if !record.Scenarios[0].IsPreferred || record.Scenarios[0].ProbabilityPercentage != 100 {
		t.Errorf("record.Scenarios[0] = %+v, expected preferred with 100%% probability", record.Scenarios[0])
	}
}

func TestValidateConfiguration(t *testing.T) {
	tests := []struct {
		name         string
		mutate       func(*Configuration)
		wantWarnings int
		wantContains string
	}{
		{
			name:         "Complete plan produces no warnings",
			mutate:       func(c *Configuration) {},
			wantWarnings: 0,
		},
		{
			name:         "Non-positive base revenue",
			mutate:       func(c *Configuration) { c.Plan.BaseRevenue = 0 },
			wantWarnings: 1,
			wantContains: "base revenue",
		},
		{
			name:         "Missing start date",
			mutate:       func(c *Configuration) { c.Plan.StartDate = "" },
			wantWarnings: 1,
			wantContains: "start date",
		},
		{
			name:         "Short seasonality factor list",
			mutate:       func(c *Configuration) { c.Plan.SeasonalityFactors = []float64{1, 2, 3} },
			wantWarnings: 1,
			wantContains: "Seasonality factors",
		},
		{
			name:         "Investment without cash flows",
			mutate:       func(c *Configuration) { c.Investment.CashFlows = nil },
			wantWarnings: 1,
			wantContains: "without cash flows",
		},
		{
			name:         "Short monthly cost series",
			mutate:       func(c *Configuration) { c.Costs.MonthlyCosts = c.Costs.MonthlyCosts[:6] },
			wantWarnings: 1,
			wantContains: "shorter horizon",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conf, err := LoadConfiguration(writePlanFile(t, planYAML))
			if err != nil {
				t.Fatalf("LoadConfiguration() unexpected error: %v", err)
			}
			tt.mutate(conf)

			warnings := conf.ValidateConfiguration()
			if len(warnings) != tt.wantWarnings {
				t.Fatalf("ValidateConfiguration() returned %d warnings, expected %d: %v", len(warnings), tt.wantWarnings, warnings)
			}
			if tt.wantContains != "" && !strings.Contains(warnings[0], tt.wantContains) {
				t.Errorf("warning %q does not mention %q", warnings[0], tt.wantContains)
			}
		})
	}
}
