package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/netcheck-network/netcheck/pkg/cli"
	"github.com/netcheck-network/netcheck/pkg/settings"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage persistent settings",
	Long: `Manage persistent settings stored in ~/.netcheck/settings.json.

Settings provide defaults for run flags:
  - expectations_file: Used when -e is not specified
  - snapshots_dir:     Used when --snapshots is not specified
  - redis_addr:        Used when --redis is not specified
  - report_dir:        Default directory for report output

Examples:
  netcheck settings show
  netcheck settings set snapshots /var/lib/netcheck/snapshots
  netcheck settings set redis localhost:6379
  netcheck settings clear`,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := settings.Load()
		if err != nil {
			return fmt.Errorf("loading settings: %w", err)
		}

		fmt.Printf("Settings file: %s\n\n", settings.DefaultSettingsPath())

		t := cli.NewTable("SETTING", "VALUE")

		printSetting := func(name, value string) {
			if value == "" {
				value = "(not set)"
			}
			t.Row(name, value)
		}

		printSetting("expectations_file", s.ExpectationsFile)
		printSetting("snapshots_dir", s.SnapshotsDir)
		printSetting("redis_addr", s.RedisAddr)
		printSetting("report_dir", s.ReportDir)
		printSetting("run_log_path", s.RunLogPath)

		t.Flush()
		return nil
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <setting> <value>",
	Short: "Set a setting value",
	Long: `Set a persistent setting value.

Available settings:
  expectations - Expectation override YAML file (-e flag default)
  snapshots    - Snapshot directory (--snapshots flag default)
  redis        - Redis address (--redis flag default)
  reports      - Report output directory
  runlog       - Run-history log path

Examples:
  netcheck settings set snapshots /var/lib/netcheck/snapshots
  netcheck settings set expectations /etc/netcheck/expected.yaml`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		setting := args[0]
		value := args[1]

		s, err := settings.Load()
		if err != nil {
			s = &settings.Settings{}
		}

		switch setting {
		case "expectations":
			s.ExpectationsFile = value
		case "snapshots":
			s.SnapshotsDir = value
		case "redis":
			s.RedisAddr = value
		case "reports":
			s.ReportDir = value
		case "runlog":
			s.RunLogPath = value
		default:
			return fmt.Errorf("unknown setting %q", setting)
		}

		if err := s.Save(); err != nil {
			return fmt.Errorf("saving settings: %w", err)
		}
		fmt.Printf("Set %s = %s\n", setting, value)
		return nil
	},
}

var settingsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear all settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		s := &settings.Settings{}
		if err := s.Save(); err != nil {
			return fmt.Errorf("saving settings: %w", err)
		}
		fmt.Println("Settings cleared.")
		return nil
	},
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsClearCmd)
}
