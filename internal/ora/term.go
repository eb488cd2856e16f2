package ora

import (
	"fmt"
	"strings"

	"github.com/pathxcite/enrich/internal/geneset"
	"github.com/pathxcite/enrich/internal/stats"
)

// processTerm computes the enrichment row for a single term. Returns
// nil when the term shares no genes with the query; that is a
// filtering outcome, not an error. Pure function, safe to call
// concurrently for different terms.
func processTerm(term string, termGenes, query, bg geneset.Set, test stats.Test, querySize, bgSize int) (*TermResult, error) {
	termInBG := termGenes.Intersect(bg)
	overlap := query.Intersect(termInBG)

	a := overlap.Len()
	if a == 0 {
		return nil, nil
	}

	// 2x2 contingency counts: overlap, term only, query only, neither.
	b := termInBG.Len() - a
	c := querySize - a
	d := bgSize - a - b - c

	p, err := stats.PValue(test, a, termInBG.Len(), querySize, bgSize)
	if err != nil {
		return nil, fmt.Errorf("term %q: %w", term, err)
	}
	z := stats.ZScore(a, termInBG.Len(), querySize, bgSize)

	return &TermResult{
		Term:           term,
		Genes:          strings.Join(overlap.Sorted(), ";"),
		Overlap:        fmt.Sprintf("%d/%d", a, termInBG.Len()),
		Count:          a,
		TermSize:       termInBG.Len(),
		QuerySize:      querySize,
		BackgroundSize: bgSize,
		PValue:         p,
		OddsRatio:      stats.OddsRatio(a, b, c, d),
		ZScore:         z,
		CombinedScore:  stats.CombinedScore(p, z),
	}, nil
}
