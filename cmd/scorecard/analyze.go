package main

import (
	"fmt"

	"github.com/newthinker/scorecard/internal/render"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var analyzeJSON bool

var analyzeCmd = &cobra.Command{
	Use:          "analyze <TICKER>",
	Short:        "Score a ticker and its peers",
	Example:      "  scorecard analyze AAPL\n  scorecard analyze ko --json",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         runAnalyze,
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "print the report as JSON")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log, err := newLogger(cfg)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer log.Sync()

	analyzer, err := newAnalyzer(cfg, log)
	if err != nil {
		return err
	}

	report, err := analyzer.Analyze(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	log.Debug("rendering report", zap.String("report_id", report.ID.String()))

	if analyzeJSON {
		return render.JSON(cmd.OutOrStdout(), report)
	}
	return render.Report(cmd.OutOrStdout(), report)
}
