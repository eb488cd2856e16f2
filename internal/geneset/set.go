// Package geneset provides the gene symbol set type shared by the
// enrichment engine, the background universe, and library parsing.
package geneset

import (
	"bufio"
	"io"
	"sort"
	"strings"
)

// Set is a set of upper-cased gene symbols.
type Set map[string]struct{}

// New builds a Set from raw symbols. Symbols are trimmed and
// upper-cased; empty strings are dropped and duplicates collapse.
func New(symbols ...string) Set {
	s := make(Set, len(symbols))
	for _, sym := range symbols {
		s.Add(sym)
	}
	return s
}

// Add inserts a symbol after normalization. Empty symbols are ignored.
func (s Set) Add(symbol string) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return
	}
	s[symbol] = struct{}{}
}

// Contains reports whether the normalized form of symbol is in the set.
func (s Set) Contains(symbol string) bool {
	_, ok := s[strings.ToUpper(strings.TrimSpace(symbol))]
	return ok
}

// Len returns the number of symbols.
func (s Set) Len() int { return len(s) }

// Copy returns an independent copy of the set.
func (s Set) Copy() Set {
	out := make(Set, len(s))
	for sym := range s {
		out[sym] = struct{}{}
	}
	return out
}

// Intersect returns the symbols present in both sets.
func (s Set) Intersect(other Set) Set {
	small, large := s, other
	if len(large) < len(small) {
		small, large = large, small
	}
	out := make(Set)
	for sym := range small {
		if _, ok := large[sym]; ok {
			out[sym] = struct{}{}
		}
	}
	return out
}

// IntersectCount returns |s ∩ other| without allocating the intersection.
func (s Set) IntersectCount(other Set) int {
	small, large := s, other
	if len(large) < len(small) {
		small, large = large, small
	}
	n := 0
	for sym := range small {
		if _, ok := large[sym]; ok {
			n++
		}
	}
	return n
}

// Sorted returns the symbols in lexicographic order.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for sym := range s {
		out = append(out, sym)
	}
	sort.Strings(out)
	return out
}

// Read builds a Set from a reader with one symbol per line.
// Blank lines and lines starting with '#' are skipped.
func Read(r io.Reader) (Set, error) {
	s := make(Set)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		s.Add(line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return s, nil
}
