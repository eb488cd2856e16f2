package gmt

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeLibrary(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestRegistry_Resolve(t *testing.T) {
	dir := t.TempDir()
	writeLibrary(t, dir, "KEGG_2021_Human.gmt", "Term\tdesc\tTP53\n")

	reg := NewRegistry(dir)
	path, err := reg.Resolve("KEGG_2021_Human")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "KEGG_2021_Human.gmt"), path)
}

func TestRegistry_ResolveNotFound(t *testing.T) {
	reg := NewRegistry(t.TempDir())
	_, err := reg.Resolve("Missing_Library")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRegistry_Load(t *testing.T) {
	dir := t.TempDir()
	writeLibrary(t, dir, "Lib.gmt", "Apoptosis\tdesc\tTP53\tBAX\n")

	lib, err := NewRegistry(dir).Load("Lib")
	require.NoError(t, err)
	assert.Equal(t, []string{"BAX", "TP53"}, lib["Apoptosis"].Sorted())
}

func TestRegistry_List(t *testing.T) {
	dir := t.TempDir()
	writeLibrary(t, dir, "B_Lib.gmt", "T\td\tG\n")
	writeLibrary(t, dir, "A_Lib.gmt.gz", "")
	writeLibrary(t, dir, "notes.txt", "ignored")

	names, err := NewRegistry(dir).List()
	require.NoError(t, err)
	assert.Equal(t, []string{"A_Lib", "B_Lib"}, names)
}
