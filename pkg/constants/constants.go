// Package constants provides shared constants for the projection engine.
package constants

// DateTimeLayout is the month format expected in plan files and is also the
// output date format.
const DateTimeLayout = "2006-01"

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// QuartersPerYear is the number of quarters in a year
	QuartersPerYear = 4

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0
)

// Confidence multipliers applied to growth-rate assumptions.
const (
	// LowConfidenceFactor dampens a growth assumption for conservative forecasts
	LowConfidenceFactor = 0.8

	// MediumConfidenceFactor leaves a growth assumption unchanged
	MediumConfidenceFactor = 1.0

	// HighConfidenceFactor amplifies a growth assumption for optimistic forecasts
	HighConfidenceFactor = 1.2
)

// IRR search parameters. The search runs over a fixed percentage domain with a
// bounded iteration count so it terminates for any cash-flow shape.
const (
	// IRRLowerBoundPercent is the lower edge of the IRR bisection domain
	IRRLowerBoundPercent = -99.0

	// IRRUpperBoundPercent is the upper edge of the IRR bisection domain; it is
	// also the sentinel returned when cash flows never drive NPV negative
	IRRUpperBoundPercent = 100.0

	// IRRMaxIterations bounds the bisection loop
	IRRMaxIterations = 200

	// IRRConvergenceTolerance is the NPV magnitude below which the search stops
	IRRConvergenceTolerance = 1e-7
)

// Sentinel values encoding "no valid business answer" instead of errors.
const (
	// NeverRecovered marks a payback or break-even horizon exhausted without
	// the cumulative balance reaching zero
	NeverRecovered = -1

	// FallbackBreakEvenMonths is the fixed month offset used to estimate a
	// break-even date when the supplied horizon never breaks even
	FallbackBreakEvenMonths = 12
)

// Validation constants
const (
	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01

	// ProbabilitySumTolerance is the tolerance when checking that scenario
	// probabilities sum to 100%
	ProbabilitySumTolerance = 0.01

	// DistributionTolerance is the tolerance when checking that a monthly
	// distribution sums back to the annual total
	DistributionTolerance = 1e-6
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default plan file name
	DefaultConfigFile = "plan.yaml"

	// ExampleConfigFile is the example plan file name
	ExampleConfigFile = "plan.yaml.example"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum upload size for YAML plans (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024
)
