// Package multitest adjusts p-values for multiple hypothesis testing.
// The supported methods and their semantics follow the conventional
// family of corrections: single-step (Bonferroni, Sidak), step-down
// (Holm, Holm-Sidak), step-up (Simes-Hochberg, Hommel, the FDR
// procedures), and the two-stage FDR variants.
package multitest

import (
	"fmt"
	"math"
	"sort"
)

// Method identifies a correction procedure.
type Method int

const (
	Bonferroni Method = iota
	Sidak
	Holm
	HolmSidak
	SimesHochberg
	Hommel
	FDRBH
	FDRBY
	FDRTwoStageBH
	FDRTwoStageBKY
)

// twoStageAlpha is the nominal level used by the two-stage FDR
// procedures to estimate the number of true null hypotheses.
const twoStageAlpha = 0.05

var methodNames = map[string]Method{
	"bonferroni":     Bonferroni,
	"sidak":          Sidak,
	"holm":           Holm,
	"holm-sidak":     HolmSidak,
	"simes-hochberg": SimesHochberg,
	"hommel":         Hommel,
	"fdr_bh":         FDRBH,
	"fdr_by":         FDRBY,
	"fdr_tsbh":       FDRTwoStageBH,
	"fdr_tsbky":      FDRTwoStageBKY,
}

// ParseMethod maps a method name to its Method value. Unknown names
// are a caller error and fail loudly.
func ParseMethod(name string) (Method, error) {
	m, ok := methodNames[name]
	if !ok {
		return 0, fmt.Errorf("unknown correction method %q", name)
	}
	return m, nil
}

// String returns the canonical method name.
func (m Method) String() string {
	for name, v := range methodNames {
		if v == m {
			return name
		}
	}
	return fmt.Sprintf("Method(%d)", int(m))
}

// Adjust returns adjusted p-values aligned by position with pvals.
// The input slice is not modified.
func Adjust(method Method, pvals []float64) ([]float64, error) {
	n := len(pvals)
	if n == 0 {
		return nil, nil
	}

	// Work on the ascending order, remember where each value came from.
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return pvals[order[i]] < pvals[order[j]]
	})
	sorted := make([]float64, n)
	for i, idx := range order {
		sorted[i] = pvals[idx]
	}

	var adjusted []float64
	switch method {
	case Bonferroni:
		adjusted = scale(sorted, float64(n))
	case Sidak:
		adjusted = make([]float64, n)
		for i, p := range sorted {
			adjusted[i] = 1 - math.Pow(1-p, float64(n))
		}
	case Holm:
		adjusted = make([]float64, n)
		for i, p := range sorted {
			adjusted[i] = p * float64(n-i)
		}
		maxAccumulate(adjusted)
	case HolmSidak:
		adjusted = make([]float64, n)
		for i, p := range sorted {
			adjusted[i] = 1 - math.Pow(1-p, float64(n-i))
		}
		maxAccumulate(adjusted)
	case SimesHochberg:
		adjusted = make([]float64, n)
		for i, p := range sorted {
			adjusted[i] = p * float64(n-i)
		}
		minAccumulateReverse(adjusted)
	case Hommel:
		adjusted = hommel(sorted)
	case FDRBH:
		adjusted = fdr(sorted, 1.0)
	case FDRBY:
		adjusted = fdr(sorted, harmonic(n))
	case FDRTwoStageBH:
		adjusted = fdrTwoStage(sorted, false)
	case FDRTwoStageBKY:
		adjusted = fdrTwoStage(sorted, true)
	default:
		return nil, fmt.Errorf("unknown correction method %v", method)
	}

	// Clip and restore the caller's order.
	out := make([]float64, n)
	for i, idx := range order {
		out[idx] = math.Min(adjusted[i], 1.0)
	}
	return out, nil
}

// AdjustByName is Adjust with string method selection.
func AdjustByName(name string, pvals []float64) ([]float64, error) {
	m, err := ParseMethod(name)
	if err != nil {
		return nil, err
	}
	return Adjust(m, pvals)
}

func scale(sorted []float64, factor float64) []float64 {
	out := make([]float64, len(sorted))
	for i, p := range sorted {
		out[i] = p * factor
	}
	return out
}

// maxAccumulate enforces step-down monotonicity in place.
func maxAccumulate(v []float64) {
	for i := 1; i < len(v); i++ {
		if v[i] < v[i-1] {
			v[i] = v[i-1]
		}
	}
}

// minAccumulateReverse enforces step-up monotonicity in place.
func minAccumulateReverse(v []float64) {
	for i := len(v) - 2; i >= 0; i-- {
		if v[i] > v[i+1] {
			v[i] = v[i+1]
		}
	}
}

// fdr computes Benjamini-Hochberg adjusted p-values over ascending
// sorted input; scale is 1 for independence (BH) and the harmonic
// number H(n) for arbitrary dependence (BY).
func fdr(sorted []float64, scale float64) []float64 {
	n := len(sorted)
	out := make([]float64, n)
	for i, p := range sorted {
		out[i] = p * scale * float64(n) / float64(i+1)
	}
	minAccumulateReverse(out)
	return out
}

// fdrTwoStage implements the two-stage FDR procedure: a first BH pass
// estimates the number of true null hypotheses, then the adjusted
// values are rescaled by that estimate. bky applies the
// Benjamini-Krieger-Yekutieli 1/(1+alpha) level adjustment.
func fdrTwoStage(sorted []float64, bky bool) []float64 {
	n := len(sorted)
	fact := 1.0
	alphaPrime := twoStageAlpha
	if bky {
		fact = 1 + twoStageAlpha
		alphaPrime = twoStageAlpha / fact
	}

	first := fdr(sorted, 1.0)
	rejected := 0
	for i, p := range sorted {
		// BH rejection at level alphaPrime: p_(i) <= (i+1)/n * alpha'.
		if p <= float64(i+1)/float64(n)*alphaPrime {
			rejected = i + 1
		}
	}

	if rejected == 0 || rejected == n {
		return scale(first, fact)
	}

	nulls := float64(n - rejected)
	out := fdr(sorted, 1.0)
	for i := range out {
		out[i] *= nulls / float64(n)
		if bky {
			out[i] *= fact
		}
	}
	return out
}

// hommel ports the closed-form Hommel adjustment over ascending
// sorted p-values.
func hommel(sorted []float64) []float64 {
	n := len(sorted)
	a := make([]float64, n)
	copy(a, sorted)

	for m := n; m > 1; m-- {
		// cim = min over the m largest p-values of m*p/(rank within tail).
		cim := math.Inf(1)
		for j := 0; j < m; j++ {
			v := float64(m) * sorted[n-m+j] / float64(j+1)
			if v < cim {
				cim = v
			}
		}
		for j := n - m; j < n; j++ {
			if a[j] < cim {
				a[j] = cim
			}
		}
		for j := 0; j < n-m; j++ {
			bound := math.Min(float64(m)*sorted[j], cim)
			if a[j] < bound {
				a[j] = bound
			}
		}
	}
	return a
}

// harmonic returns H(n) = sum 1/i, the BY dependence factor.
func harmonic(n int) float64 {
	h := 0.0
	for i := 1; i <= n; i++ {
		h += 1 / float64(i)
	}
	return h
}
