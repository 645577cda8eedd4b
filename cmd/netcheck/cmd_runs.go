package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/netcheck-network/netcheck/pkg/cli"
	"github.com/netcheck-network/netcheck/pkg/runlog"
)

var (
	runsLimit    int
	runsDevice   string
	runsFailures bool
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Show reconciliation run history",
	Long: `Show past reconciliation runs from the run log.

Examples:
  netcheck runs
  netcheck runs --failures
  netcheck runs --device router1 --limit 5`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := runlog.NewFileLogger(userSettings.GetRunLogPath(), runlog.RotationConfig{})
		if err != nil {
			return fmt.Errorf("opening run log: %w", err)
		}
		defer logger.Close()

		records, err := logger.Query(runlog.Filter{
			Device:      runsDevice,
			FailureOnly: runsFailures,
			Limit:       runsLimit,
		})
		if err != nil {
			return fmt.Errorf("querying run log: %w", err)
		}

		if len(records) == 0 {
			fmt.Println("No runs recorded.")
			return nil
		}

		t := cli.NewTable("TIME", "USER", "SOURCE", "DEVICES", "CHECKED", "PASSED", "FAILED")
		for _, r := range records {
			failed := fmt.Sprintf("%d", r.Failed)
			if r.Failed > 0 || r.Error != "" {
				failed = cli.Red(failed)
			}
			t.Row(
				r.Timestamp.Format(time.RFC3339),
				r.User,
				r.Source,
				fmt.Sprintf("%d", len(r.Devices)),
				fmt.Sprintf("%d", r.Checked),
				fmt.Sprintf("%d", r.Passed),
				failed,
			)
		}
		t.Flush()
		return nil
	},
}

func init() {
	runsCmd.Flags().IntVar(&runsLimit, "limit", 20, "Maximum runs to show")
	runsCmd.Flags().StringVar(&runsDevice, "device", "", "Only runs that included this device")
	runsCmd.Flags().BoolVar(&runsFailures, "failures", false, "Only failing runs")
}
