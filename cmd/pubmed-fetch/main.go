// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the pubmed-fetch CLI. It searches
// PubMed for a query, fetches the details of every matching paper, and
// writes them to a CSV file.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pubmed-fetch/internal/config"
	"github.com/pdiddy/pubmed-fetch/internal/eutils"
	"github.com/pdiddy/pubmed-fetch/internal/logger"
	"github.com/pdiddy/pubmed-fetch/internal/pipeline"
	"github.com/pdiddy/pubmed-fetch/internal/secrets"
	"github.com/pdiddy/pubmed-fetch/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// newRootCmd builds the single pubmed-fetch command.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pubmed-fetch [flags] <query>",
		Short: "Search PubMed and export paper details to CSV",
		Long: `pubmed-fetch runs a free-text query against PubMed through the NCBI
E-utilities API, fetches the title, publication date, authors,
affiliations, and corresponding email of every matching paper, and writes
one CSV row per paper in search order.

Settings come from built-in defaults, then pubmed-fetch.yaml (current
directory or ~/.config/pubmed-fetch/), then PUBMED_FETCH_* environment
variables, then flags. An NCBI API key and contact email may also be
placed in .secrets/ncbi-api-key and .secrets/ncbi-email.`,
		Version:      version,
		Args:         queryArgs,
		SilenceUsage: true,
		RunE:         run,
	}

	cmd.Flags().StringP("file", "f", types.DefaultOutputFile, "output CSV file")
	cmd.Flags().BoolP("debug", "d", false, "enable debug logging")
	cmd.Flags().Int("max-results", types.DefaultMaxResults, "maximum number of papers to fetch")
	cmd.Flags().String("config", "", "config file (default: ./pubmed-fetch.yaml or ~/.config/pubmed-fetch/pubmed-fetch.yaml)")
	cmd.Flags().Bool("abort-on-fetch-error", false, "stop when a paper cannot be fetched instead of keeping its identifier only")
	cmd.Flags().Bool("no-progress", false, "disable the progress bar")
	cmd.Flags().Bool("print-config", false, "print the effective configuration as YAML and exit")
	cmd.Flags().BoolP("version", "V", false, "print the version and exit")

	return cmd
}

// queryArgs requires exactly one query, except with --print-config.
func queryArgs(cmd *cobra.Command, args []string) error {
	if printConfig, _ := cmd.Flags().GetBool("print-config"); printConfig {
		return cobra.MaximumNArgs(1)(cmd, args)
	}
	return cobra.ExactArgs(1)(cmd, args)
}

func run(cmd *cobra.Command, args []string) error {
	cfgPath, _ := cmd.Flags().GetString("config")
	loaded, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	cfg := loaded.Config
	applyFlags(cmd, &cfg)
	if err := config.Validate(cfg); err != nil {
		return err
	}

	logOut, progress := outputs(cfg, cmd.ErrOrStderr())
	log := logger.New(cfg.Log, logOut)
	if loaded.SourcePath != "" {
		log.Debug("Using config file", "path", loaded.SourcePath)
	}

	s, err := secrets.Load(secrets.DefaultDir, log)
	if err != nil {
		return err
	}
	if names := s.Names(); len(names) > 0 {
		log.Info("Loaded secrets", "names", names)
	}
	s.Apply(&cfg.Eutils)

	if printConfig, _ := cmd.Flags().GetBool("print-config"); printConfig {
		return config.WriteYAML(cfg, cmd.OutOrStdout())
	}

	client := eutils.NewClient(cfg.Eutils, cfg.HTTP, log)
	_, err = pipeline.Run(cmd.Context(), client, pipeline.Options{
		Query:             args[0],
		MaxResults:        cfg.Search.MaxResults,
		OutputFile:        cfg.Export.File,
		AbortOnFetchError: cfg.Export.AbortOnFetchError,
		Logger:            log,
		Progress:          progress,
	})
	if err != nil {
		return fmt.Errorf("pubmed-fetch: %w", err)
	}
	return nil
}

// applyFlags overrides cfg with the flags set on the command line.
func applyFlags(cmd *cobra.Command, cfg *types.Config) {
	flags := cmd.Flags()
	if flags.Changed("file") {
		cfg.Export.File, _ = flags.GetString("file")
	}
	if debug, _ := flags.GetBool("debug"); debug {
		cfg.Log.Level = "debug"
	}
	if flags.Changed("max-results") {
		cfg.Search.MaxResults, _ = flags.GetInt("max-results")
	}
	if flags.Changed("abort-on-fetch-error") {
		cfg.Export.AbortOnFetchError, _ = flags.GetBool("abort-on-fetch-error")
	}
	if noProgress, _ := flags.GetBool("no-progress"); noProgress {
		cfg.Progress = false
	}
}

// outputs returns the log writer and the progress bar writer, both on w.
// The bar is nil when disabled; debug logging turns it off. With a bar,
// both go through a logger.Console so log records do not tear the bar
// line.
func outputs(cfg types.Config, w io.Writer) (logOut, progress io.Writer) {
	if !cfg.Progress || logger.ParseLevel(cfg.Log.Level) <= slog.LevelDebug {
		return w, nil
	}
	console := logger.NewConsole(w)
	return console.Log(), console.Bar()
}
