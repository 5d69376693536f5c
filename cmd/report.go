package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/danpilch/sampled/pkg/config"
	"github.com/danpilch/sampled/pkg/report"
	"github.com/danpilch/sampled/pkg/samplelog"
)

var (
	reportWindow int
	reportJSON   bool
)

var reportCmd = &cobra.Command{
	Use:   "report [path]",
	Short: "Summarize a recorded sample log",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.Load().OutputPath
		if len(args) == 1 {
			path = args[0]
		}

		samples, err := samplelog.ReadAll(path)
		if err != nil {
			return err
		}

		return report.Render(os.Stdout, samples, report.Options{
			Window: reportWindow,
			JSON:   reportJSON,
		})
	},
}

func init() {
	reportCmd.Flags().IntVarP(&reportWindow, "window", "w", 60, "samples shown in the trend sparkline")
	reportCmd.Flags().BoolVar(&reportJSON, "json", false, "emit the summary as JSON")
	rootCmd.AddCommand(reportCmd)
}
