package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/trackerlens/trackerlens/internal/analysis"
	"github.com/trackerlens/trackerlens/internal/config"
	"github.com/trackerlens/trackerlens/internal/database"
	"github.com/trackerlens/trackerlens/internal/ingest"
	"github.com/trackerlens/trackerlens/internal/log"
	"github.com/trackerlens/trackerlens/internal/report"
)

// NewAnalyzeCmd creates the analyze command.
func NewAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [data-dir]",
		Short: "Analyze a directory of per-domain tracker documents",
		Long: `Analyze loads every JSON document in the given directory, normalizes each
into flat (domain, category) rows, and reports three tables:

- The most prevalent tracking domains
- The frequency of every tracking category
- The leading domains within each of the top categories

Loading is fail-fast: the first unreadable or malformed document aborts
the run and nothing is reported.

Examples:
  # Analyze a tracker dataset and print a text report
  trackerlens analyze ./domains

  # Output JSON for downstream tooling
  trackerlens analyze --json ./domains

  # Markdown report written to a file
  trackerlens analyze --markdown -o report.md ./domains

  # Also emit one CSV per table for spreadsheet layout
  trackerlens analyze --csv-dir ./tables ./domains

  # Wider ranking, sequential loading
  trackerlens analyze --top 50 --workers 1 ./domains

Configuration file (.trackerlens) example:
  workers: 4
  topDomains: 50
  saveRuns: false`,
		Args: cobra.MaximumNArgs(1),
		RunE: runAnalyzeCmd,
	}

	// Selection size flags
	cmd.Flags().IntP("top", "t", config.DefaultTopDomains,
		"Number of domains in the prevalence ranking")
	cmd.Flags().IntP("top-categories", "C", config.DefaultTopCategories,
		"Number of leading categories")
	cmd.Flags().IntP("per-category", "p", config.DefaultPerCategory,
		"Number of domains kept per leading category")

	// Loading flags
	cmd.Flags().IntP("workers", "w", config.DefaultWorkers,
		"Number of documents loaded concurrently (1 = sequential)")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .trackerlens in current or home directory)")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().String("csv-dir", "",
		"Additionally write one CSV file per table into this directory")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")

	// Persistence flags
	cmd.Flags().Bool("no-save", false,
		"Do not save this run to the history database")

	return cmd
}

// runAnalyzeCmd executes the analyze command.
func runAnalyzeCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// Set up structured logging
	logger := log.NewLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runAnalyze(ctx, cfg, logger)
}

// buildConfig creates a Config from cobra command flags and the optional
// configuration file. Precedence: defaults < file < flags.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.Verbose = getVerboseFlag(cmd)

	var err error
	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// Load the configuration file before flags so that explicitly set
	// flags override it below.
	if err := applyConfigFile(cfg, cfg.ConfigFilePath); err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("top") {
		if cfg.TopDomains, err = cmd.Flags().GetInt("top"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("top-categories") {
		if cfg.TopCategories, err = cmd.Flags().GetInt("top-categories"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("per-category") {
		if cfg.PerCategory, err = cmd.Flags().GetInt("per-category"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("workers") {
		if cfg.Workers, err = cmd.Flags().GetInt("workers"); err != nil {
			return nil, err
		}
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.CSVDir, err = cmd.Flags().GetString("csv-dir")
	if err != nil {
		return nil, err
	}

	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	noSave, err := cmd.Flags().GetBool("no-save")
	if err != nil {
		return nil, err
	}
	if noSave {
		cfg.SaveToDB = false
	}

	if len(args) > 0 {
		cfg.InputDir = args[0]
	}

	return cfg, nil
}

// applyConfigFile layers the optional configuration file onto cfg.
// An explicitly given path must exist; without one, a missing file is not
// an error.
func applyConfigFile(cfg *config.Config, configPath string) error {
	found := config.FindConfigFile(configPath)
	if found == "" {
		if configPath != "" {
			return fmt.Errorf("configuration file not found: %s", configPath)
		}
		return nil
	}

	file, err := config.LoadConfigFile(found)
	if err != nil {
		return fmt.Errorf("failed to load config file %s: %w", found, err)
	}
	file.Apply(cfg)
	return nil
}

// resolveDBDir determines the run database directory the same way analyze
// does: the XDG default, overridden by the configuration file's dataDir.
// Every command that opens the run database must go through this so that
// history and compare read the runs analyze wrote.
func resolveDBDir(configPath string) (string, error) {
	cfg := config.NewConfig()
	if err := applyConfigFile(cfg, configPath); err != nil {
		return "", err
	}
	return cfg.DBDir, nil
}

// runAnalyze executes the analysis.
func runAnalyze(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	logger.Info("starting analysis",
		"inputDir", cfg.InputDir,
		"workers", cfg.Workers,
		"saveToDB", cfg.SaveToDB,
	)

	loader := ingest.NewLoader(ingest.WithLogger(logger))
	batch := ingest.NewBatch(loader,
		ingest.WithWorkers(cfg.Workers),
		ingest.WithBatchLogger(logger),
	)

	corpus, documents, err := batch.LoadDir(ctx, cfg.InputDir)
	if err != nil {
		return err
	}

	logger.Info("corpus built",
		"documents", documents,
		"rows", corpus.Len(),
	)

	result := analysis.Analyze(corpus, analysis.Options{
		TopDomains:    cfg.TopDomains,
		TopCategories: cfg.TopCategories,
		PerCategory:   cfg.PerCategory,
	})

	// Persistence failures must not cost the user the report, so save
	// before writing but only warn on error.
	if cfg.SaveToDB {
		if err := saveRun(ctx, cfg, result); err != nil {
			logger.Warn("failed to save run to history database", "error", err)
		}
	}

	return writeReport(cfg, result)
}

// saveRun stores the result in the history database.
func saveRun(ctx context.Context, cfg *config.Config, result *analysis.Result) error {
	db, err := database.Open(cfg.DBDir, database.DefaultOptions())
	if err != nil {
		return err
	}
	defer db.Close() //nolint:errcheck // read-mostly handle; close error is not actionable

	runID, err := db.SaveRun(ctx, result, cfg.InputDir)
	if err != nil {
		return err
	}
	slog.Debug("run saved", "runID", runID, "dbDir", cfg.DBDir)
	return nil
}

// writeReport renders the result with the configured writers.
func writeReport(cfg *config.Config, result *analysis.Result) error {
	output, closeOutput, err := openReportOutput(cfg.ReportFile)
	if err != nil {
		return err
	}
	defer closeOutput()

	var primary report.Writer
	switch {
	case cfg.JSONReport:
		primary = report.NewFullJSONWriter(output, getVersion(), report.WithPrettyPrint())
	case cfg.MarkdownReport:
		primary = report.NewMarkdownWriter(output)
	default:
		primary = report.NewSimpleWriter(output)
	}

	writer := primary
	if cfg.CSVDir != "" {
		writer = report.NewMultiWriter(primary, report.NewCSVWriter(cfg.CSVDir))
	}

	if _, err := writer.Write(result); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// openReportOutput returns the report destination and a cleanup function.
// An empty path means stdout.
func openReportOutput(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, nil, fmt.Errorf("failed to create report directory: %w", err)
		}
	}

	f, err := os.Create(path) //nolint:gosec // user-chosen report path is intentional
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create report file: %w", err)
	}
	return f, func() {
		if err := f.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
			slog.Warn("failed to close report file", "path", path, "error", err)
		}
	}, nil
}
