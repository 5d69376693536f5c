// Package cmd implements the sampled command line interface.
package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/danpilch/sampled/pkg/config"
)

var rootCmd = &cobra.Command{
	Use:   "sampled",
	Short: "Minimal durable CPU utilization collector",
	Long: `sampled repeatedly measures whole-machine CPU utilization from the
OS counters and appends every sample to a durable CSV log. Samples are
never silently dropped: the writer syncs each record to disk, and an
interrupt drains the in-flight buffer before the process exits.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newLogger builds the process logger from config.
func newLogger(cfg *config.Config) *logrus.Logger {
	logger := logrus.New()

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if cfg.LogFormat == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	return logger
}
