// Package output provides enrichment result formatters.
package output

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pathxcite/enrich/internal/ora"
)

// TabWriter writes a result table in tab-delimited format.
type TabWriter struct {
	w       *bufio.Writer
	columns []string
}

// NewTabWriter creates a new tab-delimited writer.
func NewTabWriter(w io.Writer) *TabWriter {
	return &TabWriter{
		w:       bufio.NewWriter(w),
		columns: ora.Columns(),
	}
}

// WriteHeader writes the header line.
func (tw *TabWriter) WriteHeader() error {
	_, err := tw.w.WriteString(strings.Join(tw.columns, "\t") + "\n")
	return err
}

// Write writes a single result row.
func (tw *TabWriter) Write(r *ora.TermResult) error {
	fields := []string{
		r.Term,
		r.Genes,
		r.Overlap,
		strconv.Itoa(r.Count),
		strconv.Itoa(r.TermSize),
		strconv.Itoa(r.QuerySize),
		strconv.Itoa(r.BackgroundSize),
		formatFloat(r.PValue),
		formatFloat(r.OddsRatio),
		formatFloat(r.ZScore),
		formatFloat(r.CombinedScore),
		formatFloat(r.AdjustedP),
	}
	_, err := tw.w.WriteString(strings.Join(fields, "\t") + "\n")
	return err
}

// WriteTable writes the header and every row, then flushes.
func (tw *TabWriter) WriteTable(t ora.Table) error {
	if err := tw.WriteHeader(); err != nil {
		return err
	}
	for i := range t {
		if err := tw.Write(&t[i]); err != nil {
			return err
		}
	}
	return tw.Flush()
}

// Flush flushes buffered output.
func (tw *TabWriter) Flush() error {
	return tw.w.Flush()
}

func formatFloat(v float64) string {
	return fmt.Sprintf("%g", v)
}
