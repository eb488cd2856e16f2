// Package ora implements gene-set over-representation analysis: for a
// query gene set and a gene-set library, it tests each term for more
// overlap than expected by chance against a background universe,
// corrects for multiple testing, and returns a ranked result table.
package ora

import (
	"context"

	"go.uber.org/zap"

	"github.com/pathxcite/enrich/internal/geneset"
	"github.com/pathxcite/enrich/internal/gmt"
	"github.com/pathxcite/enrich/internal/multitest"
	"github.com/pathxcite/enrich/internal/stats"
)

// DefaultWorkers is the worker pool width used when Options.Workers
// is unset. Per-term work is CPU-light and I/O-free, so this is a
// throughput knob, not a correctness requirement.
const DefaultWorkers = 8

// Options control a single analysis run.
type Options struct {
	Test       stats.Test
	Correction multitest.Method
	Workers    int
}

// Engine runs over-representation analysis against a library registry
// and a default background universe.
type Engine struct {
	libraries  *gmt.Registry
	background geneset.Set
	logger     *zap.Logger
}

// NewEngine creates an engine. background is the default universe
// used when a run does not supply its own; the engine copies it for
// every run and never mutates it.
func NewEngine(libraries *gmt.Registry, background geneset.Set) *Engine {
	return &Engine{
		libraries:  libraries,
		background: background,
		logger:     zap.NewNop(),
	}
}

// SetLogger sets the logger for warning and info messages.
func (e *Engine) SetLogger(l *zap.Logger) {
	e.logger = l
}

// Run performs one analysis. A missing library is a recoverable data
// condition: it logs and returns an empty table with a nil error so
// callers can prompt for a different library. Unknown test or
// correction choices surface as errors.
//
// Two runs with identical inputs produce identical tables: the final
// stable sort on raw p-value (term name as tie-break) erases any
// scheduling nondeterminism from the worker pool. Cancelling ctx
// stops dispatch between terms; rows already computed are discarded.
func (e *Engine) Run(ctx context.Context, query geneset.Set, libraryName string, opts Options) (Table, error) {
	// Normalize the query and take a private copy of the shared
	// default background.
	normalized := make(geneset.Set, len(query))
	for g := range query {
		normalized.Add(g)
	}
	bg := e.background.Copy()

	path, err := e.libraries.Resolve(libraryName)
	if err != nil {
		e.logger.Warn("gene-set library not found",
			zap.String("library", libraryName),
			zap.String("dir", e.libraries.Dir()))
		return Table{}, nil
	}

	library, err := gmt.LoadFile(path)
	if err != nil {
		return nil, err
	}

	// Only terms with a nonzero three-way overlap can produce a row;
	// dropping the rest here keeps the pool busy with real work.
	filtered := make(map[string]geneset.Set, len(library))
	for term, genes := range library {
		if normalized.Intersect(genes).IntersectCount(bg) > 0 {
			filtered[term] = genes
		}
	}

	params := termParams{
		query:     normalized,
		bg:        bg,
		test:      opts.Test,
		querySize: normalized.Len(),
		bgSize:    bg.Len(),
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}

	items := make(chan workItem, 2*workers)
	go func() {
		defer close(items)
		for term, genes := range filtered {
			select {
			case items <- workItem{term: term, genes: genes}:
			case <-ctx.Done():
				return
			}
		}
	}()

	var table Table
	var termErr error
	for r := range parallelProcess(items, params, workers) {
		if r.err != nil {
			termErr = r.err
			continue
		}
		if r.row != nil {
			table = append(table, *r.row)
		}
	}
	if termErr != nil {
		return nil, termErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if len(table) == 0 {
		e.logger.Info("no overlapping terms",
			zap.String("library", libraryName),
			zap.Int("query_size", normalized.Len()))
		return Table{}, nil
	}

	pvals := make([]float64, len(table))
	for i := range table {
		pvals[i] = table[i].PValue
	}
	adjusted, err := multitest.Adjust(opts.Correction, pvals)
	if err != nil {
		return nil, err
	}
	for i := range table {
		table[i].AdjustedP = adjusted[i]
	}

	table.SortByPValue()

	e.logger.Info("analysis complete",
		zap.String("library", libraryName),
		zap.Int("terms_tested", len(filtered)),
		zap.Int("rows", len(table)))

	return table, nil
}
