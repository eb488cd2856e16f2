// Package background loads the background gene universe used to judge
// enrichment significance.
package background

import (
	"fmt"
	"os"

	"github.com/pathxcite/enrich/internal/geneset"
)

// LoadFile reads a background universe from a text file with one gene
// symbol per line. The returned set is treated as read-only by
// convention; callers pass copies into the engine (see Engine.Run).
func LoadFile(path string) (geneset.Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open background file: %w", err)
	}
	defer f.Close()

	set, err := geneset.Read(f)
	if err != nil {
		return nil, fmt.Errorf("read background file: %w", err)
	}
	return set, nil
}
