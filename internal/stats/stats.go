// Package stats computes the contingency-table statistics behind
// over-representation analysis: the significance test, odds ratio,
// z-score, and combined score for one term.
package stats

import (
	"fmt"
	"math"
)

// Test selects the significance test applied to the 2x2 table.
type Test int

const (
	// TestFisher is the one-sided (greater) Fisher's exact test.
	TestFisher Test = iota
	// TestHypergeometric is the hypergeometric survival function at a-1.
	TestHypergeometric
)

// ParseTest maps a test name to its Test value. Unknown names are a
// caller error and fail loudly.
func ParseTest(name string) (Test, error) {
	switch name {
	case "fisher":
		return TestFisher, nil
	case "hypergeom":
		return TestHypergeometric, nil
	default:
		return 0, fmt.Errorf("unknown significance test %q (want fisher or hypergeom)", name)
	}
}

// String returns the canonical test name.
func (t Test) String() string {
	switch t {
	case TestFisher:
		return "fisher"
	case TestHypergeometric:
		return "hypergeom"
	default:
		return fmt.Sprintf("Test(%d)", int(t))
	}
}

// PValue computes the enrichment p-value for an overlap of a genes
// between a query of querySize and a term of termSize genes, both
// drawn from a background of bgSize genes.
//
// Both tests evaluate the same upper tail of the hypergeometric
// distribution; they differ only in numerical path (direct summation
// vs. log-space accumulation), matching the two backends they mirror.
func PValue(test Test, a, termSize, querySize, bgSize int) (float64, error) {
	switch test {
	case TestFisher:
		return hypergeomTail(a, bgSize, termSize, querySize), nil
	case TestHypergeometric:
		return hypergeomSurvival(a, bgSize, termSize, querySize), nil
	default:
		return 0, fmt.Errorf("unknown significance test %v", test)
	}
}

// OddsRatio returns (a*d)/(b*c) for the 2x2 table. When b or c is
// zero the ratio is +Inf, the mathematical limit, never a panic.
func OddsRatio(a, b, c, d int) float64 {
	if b == 0 || c == 0 {
		return math.Inf(1)
	}
	return float64(a) * float64(d) / (float64(b) * float64(c))
}

// ZScore measures how far the observed overlap a deviates from its
// expectation under the hypergeometric null. Degenerate inputs
// (bgSize <= 1, zero variance) yield exactly 0.
func ZScore(a, termSize, querySize, bgSize int) float64 {
	if bgSize <= 1 {
		return 0.0
	}
	fb := float64(bgSize)
	ft := float64(termSize)
	fq := float64(querySize)

	expected := (ft / fb) * fq
	variance := ft * (fb - ft) * fq * (fb - fq) / (fb * fb * (fb - 1))
	if variance <= 0 {
		return 0.0
	}
	return (float64(a) - expected) / math.Sqrt(variance)
}

// CombinedScore blends significance and deviation: -log10(p) * z.
// An exact zero p-value (floating point underflow on deep tails) is a
// valid input and yields +Inf.
func CombinedScore(pValue, z float64) float64 {
	if pValue <= 0 {
		return math.Inf(1)
	}
	return -math.Log10(pValue) * z
}
