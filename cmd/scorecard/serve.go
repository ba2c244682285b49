package main

import (
	"context"
	"fmt"
	"time"

	"github.com/newthinker/scorecard/internal/api"
	"github.com/newthinker/scorecard/internal/app"
	"github.com/newthinker/scorecard/internal/metrics"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var templatesDir string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the scorecard web server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&templatesDir, "templates", "", "load page templates from this directory instead of the embedded ones")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log, err := newLogger(cfg)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer log.Sync()

	if cfgFile == "" {
		log.Warn("no config file specified, using defaults")
	}

	deps := api.Dependencies{}
	var opts []app.Option
	if cfg.Metrics.Enabled {
		deps.Metrics = metrics.NewRegistry()
		opts = append(opts, app.WithRecorder(deps.Metrics))
	}

	analyzer, err := newAnalyzer(cfg, log, opts...)
	if err != nil {
		return err
	}
	deps.Analyzer = analyzer

	log.Info("starting scorecard server",
		zap.String("host", cfg.Server.Host),
		zap.Int("port", cfg.Server.Port),
		zap.String("source", cfg.Source),
		zap.Bool("metrics", cfg.Metrics.Enabled),
		zap.Bool("api_auth", cfg.Server.APIKey != ""),
	)

	server, err := api.NewServer(api.Config{
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		APIKey:       cfg.Server.APIKey,
		TemplatesDir: templatesDir,
		MetricsPath:  cfg.Metrics.Path,
	}, deps, log)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	// Wait for a shutdown signal or a listener failure
	select {
	case err := <-errCh:
		return err
	case <-cmd.Context().Done():
	}

	log.Info("shutting down scorecard server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return server.Shutdown(ctx)
}
