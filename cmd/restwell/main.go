package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const (
	appName = "restwell"
	version = "v1.2.0"
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	rootCmd := &cobra.Command{
		Use:     appName,
		Short:   "Restwell insight engine",
		Version: version,
		Long: `Restwell derives personal sleep and energy insights from daily survey
responses: per-metric baselines, behavior-impact comparisons with
confidence tiers, and cited narrative insights.`,
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the read-only insight API server",
		Long:  "Serves /v1/insights, /v1/baselines, /v1/efficiency and /metrics over HTTP",
		RunE:  runServe,
	}
	serveCmd.Flags().String("config", "", "Path to YAML config file")

	insightsCmd := &cobra.Command{
		Use:   "insights",
		Short: "Compute insights from an exported history file",
		Long:  "One-shot offline computation from a JSON history export, printed to stdout",
		RunE:  runInsights,
	}
	insightsCmd.Flags().String("history", "", "Path to exported history JSON file (required)")
	insightsCmd.Flags().String("user", "local", "User id used for fact id derivation")
	insightsCmd.Flags().Int("days", 30, "Window the export covers, in days")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(insightsCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}
