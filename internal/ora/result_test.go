package ora

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleTable() Table {
	return Table{
		{Term: "B", PValue: 0.02, AdjustedP: 0.04, CombinedScore: 5},
		{Term: "A", PValue: 0.02, AdjustedP: 0.04, CombinedScore: 9},
		{Term: "C", PValue: 0.001, AdjustedP: 0.003, CombinedScore: 2},
	}
}

func TestSortByPValue_TieBreakOnTerm(t *testing.T) {
	table := sampleTable()
	table.SortByPValue()

	assert.Equal(t, "C", table[0].Term)
	assert.Equal(t, "A", table[1].Term)
	assert.Equal(t, "B", table[2].Term)
}

func TestSortByColumn(t *testing.T) {
	table := sampleTable()
	ok := table.SortByColumn(ColCombinedScore)
	assert.True(t, ok)
	assert.Equal(t, []string{"C", "B", "A"},
		[]string{table[0].Term, table[1].Term, table[2].Term})
}

func TestSortByColumn_Term(t *testing.T) {
	table := sampleTable()
	assert.True(t, table.SortByColumn(ColTerm))
	assert.Equal(t, "A", table[0].Term)
	assert.Equal(t, "B", table[1].Term)
	assert.Equal(t, "C", table[2].Term)
}

func TestSortByColumn_Unknown(t *testing.T) {
	table := sampleTable()
	before := append(Table{}, table...)

	assert.False(t, table.SortByColumn("Not A Column"))
	assert.Equal(t, before, table)
}

func TestColumns_Complete(t *testing.T) {
	assert.Equal(t, []string{
		"Term", "Genes", "Overlap", "Count", "Term Size", "Query Size",
		"Background Size", "P-value", "Odds Ratio", "Z-Score",
		"Combined Score", "Adjusted P-value",
	}, Columns())
}
