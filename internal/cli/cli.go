package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/pfrederiksen/wimbledon-finals/internal/config"
	"github.com/pfrederiksen/wimbledon-finals/internal/logger"
	"github.com/pfrederiksen/wimbledon-finals/internal/metrics"
	"github.com/pfrederiksen/wimbledon-finals/internal/notifier"
	"github.com/pfrederiksen/wimbledon-finals/internal/pipeline"
	"github.com/pfrederiksen/wimbledon-finals/internal/scraper"
	"github.com/pfrederiksen/wimbledon-finals/internal/storage"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

// exitCodeError carries a process exit code through cobra
type exitCodeError struct {
	code int
	err  error
}

func (e *exitCodeError) Error() string { return e.err.Error() }
func (e *exitCodeError) Unwrap() error { return e.err }

// app holds flag values and the resources built from configuration
type app struct {
	flagFormat   string
	flagStore    string
	flagDataDir  string
	flagURL      string
	flagLogLevel string
	flagVerbose  bool

	cfg *config.Config
	log *logger.Logger
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "wimbledon",
		Short: "Scrape and serve Wimbledon men's singles finals",
		Long: `A tool that scrapes the historical list of Wimbledon men's singles finals,
keeps one record per year in a store, and serves lookups by year.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	// Define flags
	pf := cmd.PersistentFlags()
	pf.StringVar(&a.flagFormat, "format", "text", "Output format: text, json or yaml")
	pf.StringVar(&a.flagStore, "store", "", "Store driver override: memory, file, sqlite, postgres or mongo")
	pf.StringVar(&a.flagDataDir, "data-dir", "", "Data directory (file) or database path (sqlite)")
	pf.StringVar(&a.flagURL, "url", "", "Source page URL override")
	pf.StringVar(&a.flagLogLevel, "log-level", "", "Log level override: debug, info, warn or error")
	pf.BoolVar(&a.flagVerbose, "verbose", false, "Enable verbose output and debug logging")

	cmd.AddCommand(
		newScrapeCmd(a),
		newRefreshCmd(a),
		newGetCmd(a),
		newServeCmd(a),
	)

	return cmd
}

// setup loads configuration, applies flag overrides and installs the logger
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if _, err := parseFormat(a.flagFormat); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if a.flagStore != "" {
		cfg.Store.Driver = strings.ToLower(a.flagStore)
	}
	if a.flagDataDir != "" {
		cfg.Store.Path = a.flagDataDir
	}
	if a.flagURL != "" {
		cfg.Source.URL = a.flagURL
	}
	if a.flagLogLevel != "" {
		cfg.Log.Level = a.flagLogLevel
	}
	if a.flagVerbose {
		cfg.Log.Level = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := config.InitLogger(cfg.Log)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.log = log
	return nil
}

func (a *app) format() OutputFormat {
	f, _ := parseFormat(a.flagFormat)
	return f
}

func (a *app) openStore(ctx context.Context) (storage.Store, error) {
	store, err := storage.Open(ctx, a.cfg.StorageConfig())
	if err != nil {
		return nil, eris.Wrap(err, "cli: open store")
	}
	a.log.Debug("Store opened", logger.Fields{"driver": a.cfg.Store.Driver})
	return store, nil
}

// newOrchestrator wires the fetcher, notifier and metrics around store
func (a *app) newOrchestrator(cmd *cobra.Command, store storage.Store, m *metrics.Metrics) (*pipeline.Orchestrator, error) {
	ncfg := a.cfg.NotifierConfig()
	ncfg.Output = cmd.OutOrStdout()
	n, err := notifier.New(ncfg)
	if err != nil {
		return nil, err
	}

	src := scraper.New(a.cfg.ScraperConfig())
	opts := []pipeline.Option{
		pipeline.WithLogger(a.log),
		pipeline.WithMetrics(m),
	}
	if n != nil {
		opts = append(opts, pipeline.WithNotifier(n))
	}

	return pipeline.New(src, store, opts...), nil
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)

		var ec *exitCodeError
		if errors.As(err, &ec) {
			os.Exit(ec.code)
		}
		os.Exit(ExitError)
	}
}
