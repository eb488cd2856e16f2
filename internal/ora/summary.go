package ora

import (
	"math"

	"github.com/montanaflynn/stats"
)

// Summary holds descriptive statistics over a finished run, for log
// lines and the CLI footer.
type Summary struct {
	Terms       int
	Significant int // rows with adjusted p <= 0.05
	MinP        float64
	MedianP     float64
	MaxCombined float64
	MeanCount   float64
}

// Summarize computes a Summary for a table. An empty table yields the
// zero Summary.
func Summarize(t Table) Summary {
	if len(t) == 0 {
		return Summary{}
	}

	pvals := make([]float64, len(t))
	counts := make([]float64, len(t))
	s := Summary{Terms: len(t), MaxCombined: math.Inf(-1)}
	for i, row := range t {
		pvals[i] = row.PValue
		counts[i] = float64(row.Count)
		if row.AdjustedP <= 0.05 {
			s.Significant++
		}
		if row.CombinedScore > s.MaxCombined {
			s.MaxCombined = row.CombinedScore
		}
	}

	// stats errors only on empty input, excluded above.
	s.MinP, _ = stats.Min(pvals)
	s.MedianP, _ = stats.Median(pvals)
	s.MeanCount, _ = stats.Mean(counts)
	return s
}
