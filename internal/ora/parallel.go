package ora

import (
	"sync"

	"github.com/pathxcite/enrich/internal/geneset"
	"github.com/pathxcite/enrich/internal/stats"
)

// workItem holds one term ready for processing.
type workItem struct {
	term  string
	genes geneset.Set
}

// workResult holds the processed row for a single term. row is nil
// for terms with no query overlap.
type workResult struct {
	row *TermResult
	err error
}

// termParams carries the per-run inputs shared by every term.
type termParams struct {
	query     geneset.Set
	bg        geneset.Set
	test      stats.Test
	querySize int
	bgSize    int
}

// parallelProcess processes work items using a pool of workers.
// Results arrive in completion order; the engine sorts after
// collection, so no sequencing is needed here. If workers <= 0,
// DefaultWorkers is used.
func parallelProcess(items <-chan workItem, params termParams, workers int) <-chan workResult {
	if workers <= 0 {
		workers = DefaultWorkers
	}

	results := make(chan workResult, 2*workers)

	var wg sync.WaitGroup
	wg.Add(workers)

	for range workers {
		go func() {
			defer wg.Done()
			for item := range items {
				row, err := processTerm(item.term, item.genes,
					params.query, params.bg, params.test,
					params.querySize, params.bgSize)
				results <- workResult{row: row, err: err}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	return results
}
