package ora

import "sort"

// Output column names. These are the stable contract consumed by the
// tab writer and by the runner's sort-by selection.
const (
	ColTerm           = "Term"
	ColGenes          = "Genes"
	ColOverlap        = "Overlap"
	ColCount          = "Count"
	ColTermSize       = "Term Size"
	ColQuerySize      = "Query Size"
	ColBackgroundSize = "Background Size"
	ColPValue         = "P-value"
	ColOddsRatio      = "Odds Ratio"
	ColZScore         = "Z-Score"
	ColCombinedScore  = "Combined Score"
	ColAdjustedP      = "Adjusted P-value"
)

// Columns returns the output column names in presentation order.
func Columns() []string {
	return []string{
		ColTerm, ColGenes, ColOverlap, ColCount, ColTermSize,
		ColQuerySize, ColBackgroundSize, ColPValue, ColOddsRatio,
		ColZScore, ColCombinedScore, ColAdjustedP,
	}
}

// TermResult is one row of enrichment output.
type TermResult struct {
	Term           string
	Genes          string // sorted overlap genes, semicolon-joined
	Overlap        string // "count/termSize"
	Count          int
	TermSize       int // term genes restricted to the background
	QuerySize      int
	BackgroundSize int
	PValue         float64
	OddsRatio      float64
	ZScore         float64
	CombinedScore  float64
	AdjustedP      float64
}

// Table is an ordered collection of term results.
type Table []TermResult

// SortByPValue sorts ascending by raw p-value. Ties break on term
// name so that identical inputs always produce identical row order.
func (t Table) SortByPValue() {
	sort.SliceStable(t, func(i, j int) bool {
		if t[i].PValue != t[j].PValue {
			return t[i].PValue < t[j].PValue
		}
		return t[i].Term < t[j].Term
	})
}

// SortByColumn sorts ascending by the named output column, with the
// same term-name tie-break as SortByPValue. Returns false and leaves
// the table untouched for an unrecognized column name.
func (t Table) SortByColumn(column string) bool {
	key := columnKey(column)
	if key == nil {
		return false
	}
	sort.SliceStable(t, func(i, j int) bool {
		ki, kj := key(&t[i]), key(&t[j])
		if ki != kj {
			return ki < kj
		}
		return t[i].Term < t[j].Term
	})
	return true
}

// columnKey maps a sortable column name to its numeric key extractor.
// Term sorts by name through the tie-break alone.
func columnKey(column string) func(*TermResult) float64 {
	switch column {
	case ColTerm:
		return func(*TermResult) float64 { return 0 }
	case ColCount:
		return func(r *TermResult) float64 { return float64(r.Count) }
	case ColTermSize:
		return func(r *TermResult) float64 { return float64(r.TermSize) }
	case ColQuerySize:
		return func(r *TermResult) float64 { return float64(r.QuerySize) }
	case ColBackgroundSize:
		return func(r *TermResult) float64 { return float64(r.BackgroundSize) }
	case ColPValue:
		return func(r *TermResult) float64 { return r.PValue }
	case ColOddsRatio:
		return func(r *TermResult) float64 { return r.OddsRatio }
	case ColZScore:
		return func(r *TermResult) float64 { return r.ZScore }
	case ColCombinedScore:
		return func(r *TermResult) float64 { return r.CombinedScore }
	case ColAdjustedP:
		return func(r *TermResult) float64 { return r.AdjustedP }
	default:
		return nil
	}
}
