package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/danpilch/sampled/pkg/config"
	"github.com/danpilch/sampled/pkg/pipeline"
	"github.com/danpilch/sampled/pkg/procstat"
	"github.com/danpilch/sampled/pkg/queue"
	"github.com/danpilch/sampled/pkg/samplelog"
	"github.com/danpilch/sampled/pkg/sampler"
)

var runOutput string

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Sample CPU utilization until interrupted",
	Long: `run samples CPU utilization once per interval and appends each
sample to the log. SIGINT or SIGTERM stops sampling, drains buffered
samples to disk and then exits.`,
	RunE: runCollector,
}

func init() {
	runCmd.Flags().StringVarP(&runOutput, "output", "o", "", "sample log path (overrides SAMPLED_OUTPUT)")
	rootCmd.AddCommand(runCmd)
}

func runCollector(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	if runOutput != "" {
		cfg.OutputPath = runOutput
	}
	logger := newLogger(cfg)

	log, err := samplelog.Open(cfg.OutputPath)
	if err != nil {
		logger.WithError(err).Error("cannot open sample log")
		return err
	}

	s := sampler.New(procstat.DefaultSource(), cfg.Interval)
	q := queue.New(cfg.QueueCapacity)
	p := pipeline.New(s, q, log, logger)

	logger.WithFields(logrus.Fields{
		"output":   cfg.OutputPath,
		"interval": cfg.Interval,
		"capacity": cfg.QueueCapacity,
	}).Info("starting collector")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := p.Run(ctx); err != nil {
		logger.WithError(err).Error("collector terminated")
		return err
	}
	return nil
}
