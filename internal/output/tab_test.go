package output

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pathxcite/enrich/internal/ora"
)

func TestTabWriter_Header(t *testing.T) {
	var buf bytes.Buffer
	tw := NewTabWriter(&buf)
	require.NoError(t, tw.WriteHeader())
	require.NoError(t, tw.Flush())

	assert.Equal(t,
		"Term\tGenes\tOverlap\tCount\tTerm Size\tQuery Size\tBackground Size\t"+
			"P-value\tOdds Ratio\tZ-Score\tCombined Score\tAdjusted P-value\n",
		buf.String())
}

func TestTabWriter_Row(t *testing.T) {
	var buf bytes.Buffer
	tw := NewTabWriter(&buf)

	row := ora.TermResult{
		Term:           "Apoptosis",
		Genes:          "BAX;TP53",
		Overlap:        "2/40",
		Count:          2,
		TermSize:       40,
		QuerySize:      10,
		BackgroundSize: 20000,
		PValue:         0.00025,
		OddsRatio:      12.5,
		ZScore:         3.2,
		CombinedScore:  11.5,
		AdjustedP:      0.004,
	}
	require.NoError(t, tw.Write(&row))
	require.NoError(t, tw.Flush())

	fields := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\t")
	require.Len(t, fields, 12)
	assert.Equal(t, "Apoptosis", fields[0])
	assert.Equal(t, "BAX;TP53", fields[1])
	assert.Equal(t, "2/40", fields[2])
	assert.Equal(t, "2", fields[3])
	assert.Equal(t, "0.00025", fields[7])
	assert.Equal(t, "0.004", fields[11])
}

func TestTabWriter_InfinityRendered(t *testing.T) {
	var buf bytes.Buffer
	tw := NewTabWriter(&buf)

	row := ora.TermResult{Term: "T", OddsRatio: math.Inf(1), CombinedScore: math.Inf(1)}
	require.NoError(t, tw.Write(&row))
	require.NoError(t, tw.Flush())

	assert.Contains(t, buf.String(), "+Inf")
}

func TestTabWriter_WriteTable(t *testing.T) {
	var buf bytes.Buffer
	table := ora.Table{
		{Term: "A"},
		{Term: "B"},
	}
	require.NoError(t, NewTabWriter(&buf).WriteTable(table))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[1], "A\t"))
	assert.True(t, strings.HasPrefix(lines[2], "B\t"))
}
