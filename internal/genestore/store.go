// Package genestore provides read access to a curated article store:
// articles and the gene symbols annotated in their text. The
// enrichment core only ever sees the assembled gene set; this package
// exists so the CLI can build query gene lists from curated articles.
package genestore

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	_ "github.com/marcboeker/go-duckdb"
	"golang.org/x/sync/errgroup"

	"github.com/pathxcite/enrich/internal/geneset"
)

// lookupConcurrency bounds parallel per-article symbol lookups.
const lookupConcurrency = 4

// Store is a DuckDB-backed article/annotation store.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens (or creates) a store at path. Use ":memory:" for an
// in-process store.
func Open(path string) (*Store, error) {
	connStr := path
	if path == ":memory:" {
		connStr = ""
	}
	db, err := sql.Open("duckdb", connStr)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}
	return &Store{db: db, path: path}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Init creates the schema if it does not exist.
func (s *Store) Init(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS articles (
			pubmed_id VARCHAR PRIMARY KEY,
			title     VARCHAR,
			year      INTEGER
		);
		CREATE TABLE IF NOT EXISTS gene_annotations (
			pubmed_id VARCHAR,
			symbol    VARCHAR
		);
	`)
	if err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// AddArticle inserts an article row.
func (s *Store) AddArticle(ctx context.Context, pubmedID, title string, year int) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO articles (pubmed_id, title, year) VALUES (?, ?, ?)
	`, pubmedID, title, year)
	if err != nil {
		return fmt.Errorf("insert article %s: %w", pubmedID, err)
	}
	return nil
}

// AddAnnotation records a gene symbol annotated in an article.
func (s *Store) AddAnnotation(ctx context.Context, pubmedID, symbol string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO gene_annotations (pubmed_id, symbol) VALUES (?, ?)
	`, pubmedID, symbol)
	if err != nil {
		return fmt.Errorf("insert annotation %s/%s: %w", pubmedID, symbol, err)
	}
	return nil
}

// ArticleCount returns the number of stored articles.
func (s *Store) ArticleCount(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM articles`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count articles: %w", err)
	}
	return n, nil
}

// PubMedIDs returns all stored article IDs, sorted.
func (s *Store) PubMedIDs(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT pubmed_id FROM articles ORDER BY pubmed_id`)
	if err != nil {
		return nil, fmt.Errorf("query articles: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// GeneSymbols assembles the union of gene symbols annotated in the
// given articles, normalized the way the enrichment engine expects.
// Lookups run concurrently with a fixed bound.
func (s *Store) GeneSymbols(ctx context.Context, pubmedIDs []string) (geneset.Set, error) {
	merged := make(geneset.Set)
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(lookupConcurrency)

	for _, id := range pubmedIDs {
		g.Go(func() error {
			symbols, err := s.articleSymbols(ctx, id)
			if err != nil {
				return err
			}
			mu.Lock()
			for sym := range symbols {
				merged[sym] = struct{}{}
			}
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return merged, nil
}

func (s *Store) articleSymbols(ctx context.Context, pubmedID string) (geneset.Set, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT symbol FROM gene_annotations WHERE pubmed_id = ?
	`, pubmedID)
	if err != nil {
		return nil, fmt.Errorf("query annotations for %s: %w", pubmedID, err)
	}
	defer rows.Close()

	symbols := make(geneset.Set)
	for rows.Next() {
		var sym string
		if err := rows.Scan(&sym); err != nil {
			return nil, err
		}
		symbols.Add(sym)
	}
	return symbols, rows.Err()
}
