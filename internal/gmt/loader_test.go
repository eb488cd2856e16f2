package gmt

import (
	"compress/gzip"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Basic(t *testing.T) {
	input := "Apoptosis\thttp://example.org\tTP53\tBAX\tCASP3\n" +
		"Cell Cycle\tdesc\tcdk1\tCCNB1\n"

	lib, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, lib, 2)

	assert.Equal(t, []string{"BAX", "CASP3", "TP53"}, lib["Apoptosis"].Sorted())
	assert.Equal(t, []string{"CCNB1", "CDK1"}, lib["Cell Cycle"].Sorted())
}

func TestParse_AliasStripping(t *testing.T) {
	input := "Term\tdesc\tTP53,tumor_protein\tkras,KRAS proto-oncogene\n"

	lib, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []string{"KRAS", "TP53"}, lib["Term"].Sorted())
}

func TestParse_SkipsMalformedLines(t *testing.T) {
	input := "OnlyName\n" +
		"NameAndDesc\tdesc\n" +
		"\n" +
		"Good\tdesc\tTP53\n"

	lib, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, lib, 1)
	assert.Contains(t, lib, "Good")
}

func TestLoadFile_Gzip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lib.gmt.gz")

	f, err := os.Create(path)
	require.NoError(t, err)
	gz := gzip.NewWriter(f)
	_, err = gz.Write([]byte("Term\tdesc\tTP53\tBRCA1\n"))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	require.NoError(t, f.Close())

	lib, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"BRCA1", "TP53"}, lib["Term"].Sorted())
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.gmt"))
	require.Error(t, err)
}
