package integration

import (
	"testing"

	"github.com/planforge/projection-engine/internal/config"
	"github.com/planforge/projection-engine/internal/engine"
	"github.com/planforge/projection-engine/pkg/testutil"
	"go.uber.org/zap"
)

// TestAnalysisBaseline runs the full pipeline against the shared test plan and
// checks the results against baseline values captured from a known-good run.
func TestAnalysisBaseline(t *testing.T) {
	// Create a no-op logger to avoid debug output during testing
	logger := zap.NewNop()

	// Load and process the test plan exactly as main() does
	conf, err := config.LoadConfiguration("../test_plan.yaml")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if warnings := conf.ValidateConfiguration(); len(warnings) != 0 {
		t.Fatalf("ValidateConfiguration() warnings = %v, expected none", warnings)
	}

	analysis, err := engine.New(logger).GetAnalysis(*conf)
	if err != nil {
		t.Fatalf("GetAnalysis() error = %v", err)
	}

	// Baseline values captured from the CSV output of a known-good run.
	baselineChecks := []struct {
		name      string
		actual    float64
		expected  float64
		tolerance float64
	}{
		{"projected annual revenue", analysis.ProjectedAnnualRevenue, 132000, 0.01},
		{"January share", analysis.Monthly[0].Amount, 11000, 0.01},
		{"December share", analysis.Monthly[11].Amount, 11000, 0.01},
		{"break-even units", analysis.BreakEvenPoint.Units, 1250, 0.01},
		{"break-even revenue", analysis.BreakEvenPoint.Revenue, 125000, 0.01},
		{"ROI", analysis.Profitability.ROI, 50, 0.01},
		{"NPV", analysis.Profitability.NPV, 10124.74, 1.0},
		{"IRR", analysis.Profitability.IRR, 100, 0.01},
		{"payback period", analysis.Profitability.PaybackPeriod, 3.714286, 0.001},
		{"profitability index", analysis.Profitability.ProfitabilityIndex, 1.101247, 0.001},
		{"MIRR", analysis.Profitability.MIRR, 12.14, 0.05},
	}

	for _, check := range baselineChecks {
		if !testutil.AlmostEqual(check.actual, check.expected, check.tolerance) {
			t.Errorf("%s = %.6f, expected %.6f (tolerance %.4f)", check.name, check.actual, check.expected, check.tolerance)
		}
	}

	if analysis.BreakEvenSchedule.MonthsToBreakEven != 9 {
		t.Errorf("break-even months = %d, expected 9", analysis.BreakEvenSchedule.MonthsToBreakEven)
	}
	if analysis.BreakEvenSchedule.Date != "2026-10" {
		t.Errorf("break-even date = %s, expected 2026-10", analysis.BreakEvenSchedule.Date)
	}

	if !analysis.Validation.IsValid {
		t.Errorf("record validation failed: %v", analysis.Validation.Errors)
	}
}

// TestAnalysisDeterminism verifies that repeated runs over the same plan
// produce identical results, with and without the shared cache primed.
func TestAnalysisDeterminism(t *testing.T) {
	logger := zap.NewNop()

	conf, err := config.LoadConfiguration("../test_plan.yaml")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	eng := engine.New(logger)
	first, err := eng.GetAnalysis(*conf)
	if err != nil {
		t.Fatalf("GetAnalysis() error = %v", err)
	}
	second, err := eng.GetAnalysis(*conf)
	if err != nil {
		t.Fatalf("GetAnalysis() error = %v", err)
	}

	if first.ProjectedAnnualRevenue != second.ProjectedAnnualRevenue {
		t.Errorf("projected revenue changed between runs: %.6f vs %.6f", first.ProjectedAnnualRevenue, second.ProjectedAnnualRevenue)
	}
	if *first.Profitability != *second.Profitability {
		t.Errorf("profitability changed between runs: %+v vs %+v", first.Profitability, second.Profitability)
	}

	eng.Cache().Reset()
	third, err := eng.GetAnalysis(*conf)
	if err != nil {
		t.Fatalf("GetAnalysis() error = %v", err)
	}
	if *first.Profitability != *third.Profitability {
		t.Errorf("cache reset changed results: %+v vs %+v", first.Profitability, third.Profitability)
	}
}
