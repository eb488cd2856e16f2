package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pathxcite/enrich/internal/background"
	"github.com/pathxcite/enrich/internal/geneset"
	"github.com/pathxcite/enrich/internal/genestore"
	"github.com/pathxcite/enrich/internal/gmt"
	"github.com/pathxcite/enrich/internal/multitest"
	"github.com/pathxcite/enrich/internal/ora"
	"github.com/pathxcite/enrich/internal/output"
	"github.com/pathxcite/enrich/internal/runner"
	"github.com/pathxcite/enrich/internal/stats"
)

func newRunCmd(verbose *bool) *cobra.Command {
	var (
		genesFile      string
		storePath      string
		articles       []string
		library        string
		testName       string
		correctionName string
		cutoff         float64
		sortBy         string
		workers        int
		libraryDir     string
		backgroundPath string
		outputFile     string
		maxRetries     int
		retryDelay     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run over-representation analysis",
		Example: `  # Query genes from a file, one symbol per line
  enrich run --genes genes.txt --library WikiPathways_2024_Human

  # Query genes from the annotations of curated articles
  enrich run --store project.duckdb --articles 38012345,38054321 \
    --library KEGG_2021_Human --correction fdr_bh --cutoff 0.05`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(*verbose)
			if err != nil {
				return err
			}
			defer logger.Sync()

			test, err := stats.ParseTest(testName)
			if err != nil {
				return err
			}
			correction, err := multitest.ParseMethod(correctionName)
			if err != nil {
				return err
			}

			if libraryDir == "" {
				libraryDir = viper.GetString("library_dir")
			}
			if backgroundPath == "" {
				backgroundPath = viper.GetString("background")
			}
			if workers == 0 {
				workers = viper.GetInt("workers")
			}

			bg, err := background.LoadFile(backgroundPath)
			if err != nil {
				return fmt.Errorf("load background universe: %w (set 'background' in config or use --background)", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			query, err := loadQuery(ctx, genesFile, storePath, articles)
			if err != nil {
				return err
			}
			if query.Len() == 0 {
				return fmt.Errorf("query gene list is empty")
			}

			engine := ora.NewEngine(gmt.NewRegistry(libraryDir), bg)
			engine.SetLogger(logger)

			r := runner.New(engine, runner.Config{
				Options: ora.Options{
					Test:       test,
					Correction: correction,
					Workers:    workers,
				},
				SortBy:     sortBy,
				Cutoff:     cutoff,
				MaxRetries: maxRetries,
				RetryDelay: retryDelay,
			})
			r.SetLogger(logger)

			outcome := r.Perform(ctx, query, library)
			switch outcome.Status {
			case runner.StatusOK:
				out := os.Stdout
				if outputFile != "" {
					f, err := os.Create(outputFile)
					if err != nil {
						return fmt.Errorf("create output file: %w", err)
					}
					defer f.Close()
					out = f
				}
				if err := output.NewTabWriter(out).WriteTable(outcome.Table); err != nil {
					return fmt.Errorf("write results: %w", err)
				}
				printSummary(cmd, ora.Summarize(outcome.Table))
				return nil
			case runner.StatusEmpty:
				fmt.Fprintln(cmd.ErrOrStderr(),
					"No significant terms found; try a different library or a looser cutoff.")
				return nil
			case runner.StatusCanceled:
				fmt.Fprintln(cmd.ErrOrStderr(), "Analysis canceled.")
				return nil
			default:
				return fmt.Errorf("enrichment failed: %w", outcome.Err)
			}
		},
	}

	cmd.Flags().StringVar(&genesFile, "genes", "", "file with one query gene symbol per line")
	cmd.Flags().StringVar(&storePath, "store", "", "curated article store (DuckDB)")
	cmd.Flags().StringSliceVar(&articles, "articles", nil, "PubMed IDs whose gene annotations form the query (default: all articles in the store)")
	cmd.Flags().StringVar(&library, "library", "", "gene-set library name (required)")
	cmd.Flags().StringVar(&testName, "test", "fisher", "significance test: fisher or hypergeom")
	cmd.Flags().StringVar(&correctionName, "correction", "fdr_bh", "multiple-testing correction method")
	cmd.Flags().Float64Var(&cutoff, "cutoff", 1.0, "adjusted p-value cutoff")
	cmd.Flags().StringVar(&sortBy, "sort-by", ora.ColAdjustedP, "output column to sort by")
	cmd.Flags().IntVar(&workers, "workers", 0, "worker pool width (default: config 'workers')")
	cmd.Flags().StringVar(&libraryDir, "library-dir", "", "directory holding GMT libraries (default: config 'library_dir')")
	cmd.Flags().StringVar(&backgroundPath, "background", "", "background universe file (default: config 'background')")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().IntVar(&maxRetries, "max-retries", 3, "total attempts before giving up")
	cmd.Flags().DurationVar(&retryDelay, "retry-delay", 2*time.Second, "delay between failed attempts")

	_ = cmd.MarkFlagRequired("library")

	return cmd
}

// loadQuery assembles the query gene set from a gene file or from the
// annotations of curated articles.
func loadQuery(ctx context.Context, genesFile, storePath string, articles []string) (geneset.Set, error) {
	switch {
	case genesFile != "" && storePath != "":
		return nil, fmt.Errorf("--genes and --store are mutually exclusive")
	case genesFile != "":
		f, err := os.Open(genesFile)
		if err != nil {
			return nil, fmt.Errorf("open gene list: %w", err)
		}
		defer f.Close()
		return geneset.Read(f)
	case storePath != "":
		store, err := genestore.Open(storePath)
		if err != nil {
			return nil, err
		}
		defer store.Close()

		ids := articles
		if len(ids) == 0 {
			ids, err = store.PubMedIDs(ctx)
			if err != nil {
				return nil, err
			}
		}
		return store.GeneSymbols(ctx, ids)
	default:
		return nil, fmt.Errorf("either --genes or --store is required")
	}
}

func printSummary(cmd *cobra.Command, s ora.Summary) {
	fmt.Fprintf(cmd.ErrOrStderr(),
		"%d terms (%d significant at 0.05), min p %.3g, median p %.3g, max combined score %.3g, mean overlap %.1f\n",
		s.Terms, s.Significant, s.MinP, s.MedianP, s.MaxCombined, s.MeanCount)
}

// libraries command: list installed GMT libraries.
func newLibrariesCmd() *cobra.Command {
	var libraryDir string

	cmd := &cobra.Command{
		Use:   "libraries",
		Short: "List installed gene-set libraries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if libraryDir == "" {
				libraryDir = viper.GetString("library_dir")
			}
			names, err := gmt.NewRegistry(libraryDir).List()
			if err != nil {
				return err
			}
			if len(names) == 0 {
				fmt.Fprintf(cmd.ErrOrStderr(), "No libraries installed in %s\n", libraryDir)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(names, "\n"))
			return nil
		},
	}

	cmd.Flags().StringVar(&libraryDir, "library-dir", "", "directory holding GMT libraries (default: config 'library_dir')")
	return cmd
}
