// Netcheck - Network State Reconciliation Tool
//
// A CLI tool that compares declared network intent (expected BGP/OSPF/LDP
// peers, MPLS interfaces and tunnels, CDP topology) against parsed device
// state and reports one verdict per expected entity.
//
// State comes from either a snapshot directory of YAML parse captures or
// a Redis store fed by the collection pipeline:
//
//	netcheck run --snapshots ./snapshots
//	netcheck run --redis localhost:6379 --devices router1,router2
//
// Expected entities come from built-in lab defaults, optionally overridden
// per device by a YAML document:
//
//	netcheck run --snapshots ./snapshots --expectations expected.yaml
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/netcheck-network/netcheck/pkg/settings"
	"github.com/netcheck-network/netcheck/pkg/util"
	"github.com/netcheck-network/netcheck/pkg/version"
)

var (
	// Global option flags
	verbose    bool
	jsonLogs   bool
	jsonOutput bool

	// Global state
	userSettings *settings.Settings
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:               "netcheck",
	Short:             "Network State Reconciliation Tool",
	SilenceUsage:      true,
	SilenceErrors:     true,
	CompletionOptions: cobra.CompletionOptions{HiddenDefaultCmd: true},
	Long: `Netcheck reconciles declared network intent against observed device state.

It locates expected BGP/OSPF/LDP peers, MPLS interfaces, tunnel and
forwarding counts, and CDP neighbors inside parsed show-command output,
tolerating the shape differences between device OS families, and reports
one pass/fail verdict per expected entity.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		userSettings, err = settings.Load()
		if err != nil {
			util.Warnf("Could not load settings: %v", err)
			userSettings = &settings.Settings{}
		}

		if verbose {
			util.SetLogLevel("debug")
		} else {
			util.SetLogLevel("warn")
		}
		if jsonLogs {
			util.SetJSONFormat()
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("netcheck %s\n", version.Info())
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonLogs, "log-json", false, "Emit logs as JSON")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(expectationsCmd)
	rootCmd.AddCommand(commandsCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(versionCmd)
}
