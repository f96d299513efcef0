// Package testutil provides common utility functions for testing.
package testutil

import (
	"math"

	"github.com/planforge/projection-engine/pkg/seasonal"
)

// FindShare finds a monthly share by date in the distribution slice.
// Returns a pointer to the share if found, nil otherwise.
func FindShare(shares []seasonal.MonthlyShare, date string) *seasonal.MonthlyShare {
	for i := range shares {
		if shares[i].Date == date {
			return &shares[i]
		}
	}
	return nil
}

// AlmostEqual reports whether two floats differ by no more than tolerance.
func AlmostEqual(a, b, tolerance float64) bool {
	return math.Abs(a-b) <= tolerance
}

// Sum totals a float64 slice.
func Sum(values []float64) float64 {
	total := 0.0
	for _, value := range values {
		total += value
	}
	return total
}
