package stats

import (
	"math"

	"gonum.org/v1/gonum/stat/combin"
)

// logHypergeomPMF returns the log of the hypergeometric point
// probability P(X = k) for population size N with K successes and n
// draws. Returns -Inf outside the support.
func logHypergeomPMF(k, N, K, n int) float64 {
	if k < 0 || k > K || k > n || n-k > N-K {
		return math.Inf(-1)
	}
	return combin.LogGeneralizedBinomial(float64(K), float64(k)) +
		combin.LogGeneralizedBinomial(float64(N-K), float64(n-k)) -
		combin.LogGeneralizedBinomial(float64(N), float64(n))
}

// hypergeomTail returns P(X >= a) by direct summation of point
// probabilities over the upper tail.
func hypergeomTail(a, N, K, n int) float64 {
	hi := K
	if n < hi {
		hi = n
	}
	lo := a
	if min := n + K - N; lo < min {
		lo = min
	}
	if lo < 0 {
		lo = 0
	}
	p := 0.0
	for k := lo; k <= hi; k++ {
		p += math.Exp(logHypergeomPMF(k, N, K, n))
	}
	return clampUnit(p)
}

// hypergeomSurvival returns P(X > a-1) = P(X >= a) accumulated in log
// space. Numerically equivalent to hypergeomTail but resistant to
// underflow for deep tails.
func hypergeomSurvival(a, N, K, n int) float64 {
	hi := K
	if n < hi {
		hi = n
	}
	lo := a
	if min := n + K - N; lo < min {
		lo = min
	}
	if lo < 0 {
		lo = 0
	}
	if lo > hi {
		return 0
	}
	logSum := math.Inf(-1)
	for k := lo; k <= hi; k++ {
		logSum = logAdd(logSum, logHypergeomPMF(k, N, K, n))
	}
	return clampUnit(math.Exp(logSum))
}

// logAdd returns log(exp(x) + exp(y)) without intermediate overflow.
func logAdd(x, y float64) float64 {
	if math.IsInf(x, -1) {
		return y
	}
	if math.IsInf(y, -1) {
		return x
	}
	if x < y {
		x, y = y, x
	}
	return x + math.Log1p(math.Exp(y-x))
}

func clampUnit(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
