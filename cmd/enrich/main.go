// Package main provides the enrich command-line tool.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfgFile string
	var verbose bool

	cmd := &cobra.Command{
		Use:   "enrich",
		Short: "Gene-set over-representation analysis for curated literature",
		Long: `enrich runs over-representation analysis (ORA): given a query gene
list and a gene-set library, it tests each term for more overlap than
expected by chance, corrects for multiple testing, and writes a ranked
result table.`,
		Version:       fmt.Sprintf("%s (%s) built %s", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(cfgFile)
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.enrich.yaml)")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")

	cmd.AddCommand(newRunCmd(&verbose))
	cmd.AddCommand(newLibrariesCmd())
	cmd.AddCommand(newConfigCmd())

	return cmd
}

// initConfig wires viper: flag > env > config file > default.
func initConfig(cfgFile string) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("cannot determine home directory: %w", err)
	}
	viper.SetDefault("library_dir", filepath.Join(home, ".enrich", "libraries"))
	viper.SetDefault("background", filepath.Join(home, ".enrich", "background_genes.txt"))
	viper.SetDefault("workers", 8)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(home)
		viper.SetConfigName(".enrich")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("ENRICH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// A missing config file is fine; defaults and flags apply.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return fmt.Errorf("read config: %w", err)
		}
	}
	return nil
}

// newLogger builds the process logger.
func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}
