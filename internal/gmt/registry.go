package gmt

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrNotFound indicates that no GMT file exists for a library name.
var ErrNotFound = errors.New("gene-set library not found")

// Registry resolves library names to GMT files under a directory.
// A library named "WikiPathways_2024_Human" resolves to
// "<dir>/WikiPathways_2024_Human.gmt" (or ".gmt.gz").
type Registry struct {
	dir string
}

// NewRegistry creates a registry rooted at dir.
func NewRegistry(dir string) *Registry {
	return &Registry{dir: dir}
}

// Dir returns the registry's library directory.
func (r *Registry) Dir() string { return r.dir }

// Resolve returns the path of the GMT file for a library name.
// Returns an error wrapping ErrNotFound when neither a plain nor a
// gzipped file exists.
func (r *Registry) Resolve(name string) (string, error) {
	for _, ext := range []string{".gmt", ".gmt.gz"} {
		path := filepath.Join(r.dir, name+ext)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: %q in %s", ErrNotFound, name, r.dir)
}

// Load resolves and parses a library by name.
func (r *Registry) Load(name string) (Library, error) {
	path, err := r.Resolve(name)
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

// List returns the names of all installed libraries, sorted.
func (r *Registry) List() ([]string, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, fmt.Errorf("read library dir: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		switch {
		case strings.HasSuffix(name, ".gmt.gz"):
			names = append(names, strings.TrimSuffix(name, ".gmt.gz"))
		case strings.HasSuffix(name, ".gmt"):
			names = append(names, strings.TrimSuffix(name, ".gmt"))
		}
	}
	sort.Strings(names)
	return names, nil
}
