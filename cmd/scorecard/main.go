package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/newthinker/scorecard/internal/app"
	"github.com/newthinker/scorecard/internal/collector"
	"github.com/newthinker/scorecard/internal/collector/finviz"
	"github.com/newthinker/scorecard/internal/collector/yahoo"
	"github.com/newthinker/scorecard/internal/config"
	"github.com/newthinker/scorecard/internal/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfgFile string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "scorecard",
	Short: "Scorecard - financial health scores for a ticker and its peers",
	Long: `Scorecard grades eight financial ratios of a stock from Chocolate to Gold,
sums the points into a score out of 20 and compares it with correlated peers.`,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug mode")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads --config when given, otherwise the defaults.
func loadConfig() (*config.Config, error) {
	cfg := config.Defaults()
	if cfgFile != "" {
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if debug {
		return logger.NewWithLevel(true, "debug")
	}
	return logger.NewWithLevel(cfg.Log.Development, cfg.Log.Level)
}

// newAnalyzer wires the configured financials source and the Finviz peer
// lookup into an Analyzer.
func newAnalyzer(cfg *config.Config, log *zap.Logger, opts ...app.Option) (*app.Analyzer, error) {
	sources := collector.NewRegistry()
	sources.Register(yahoo.New(yahoo.Config{
		BaseURL:   cfg.Yahoo.BaseURL,
		CookieURL: cfg.Yahoo.CookieURL,
		CrumbURL:  cfg.Yahoo.CrumbURL,
		UserAgent: cfg.Yahoo.UserAgent,
		Timeout:   cfg.Yahoo.Timeout,
	}, log.Named("yahoo")))

	financials, err := sources.MustGet(cfg.Source)
	if err != nil {
		return nil, err
	}

	peers := finviz.New(finviz.Config{
		BaseURL:   cfg.Finviz.BaseURL,
		UserAgent: cfg.Finviz.UserAgent,
		Timeout:   cfg.Finviz.Timeout,
		MaxPeers:  cfg.Finviz.MaxPeers,
	}, log.Named("finviz"))

	return app.New(financials, peers, log, opts...), nil
}
