// Package gmt provides gene-set library (GMT file) loading.
package gmt

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pathxcite/enrich/internal/geneset"
)

// Library maps term names to their gene sets.
type Library map[string]geneset.Set

// Parse reads GMT content: one term per line,
// "term\tdescription\tgene1\tgene2...". Gene tokens may carry a
// comma-separated alias; only the leading token is kept, upper-cased.
// Lines with fewer than three fields are skipped.
func Parse(r io.Reader) (Library, error) {
	lib := make(Library)
	scanner := bufio.NewScanner(r)
	// GMT lines for large terms can exceed the default token size.
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if line == "" {
			continue
		}
		parts := strings.Split(line, "\t")
		if len(parts) < 3 {
			continue
		}
		genes := make(geneset.Set, len(parts)-2)
		for _, tok := range parts[2:] {
			symbol, _, _ := strings.Cut(tok, ",")
			genes.Add(symbol)
		}
		if len(genes) == 0 {
			continue
		}
		lib[parts[0]] = genes
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan gmt: %w", err)
	}
	return lib, nil
}

// LoadFile parses a GMT file from disk. Gzipped files (.gz) are
// decompressed transparently.
func LoadFile(path string) (Library, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gmt file: %w", err)
	}
	defer f.Close()

	var reader io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("open gzip reader: %w", err)
		}
		defer gz.Close()
		reader = gz
	}

	return Parse(reader)
}
