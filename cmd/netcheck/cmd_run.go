package main

import (
	"context"
	"fmt"
	"os"
	"os/user"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/netcheck-network/netcheck/pkg/expect"
	"github.com/netcheck-network/netcheck/pkg/model"
	"github.com/netcheck-network/netcheck/pkg/provider"
	"github.com/netcheck-network/netcheck/pkg/reconcile"
	"github.com/netcheck-network/netcheck/pkg/runlog"
	"github.com/netcheck-network/netcheck/pkg/util"
)

var (
	runExpectations string
	runSnapshots    string
	runRedis        string
	runDevices      []string
	runOSFamilies   []string
	runParallel     bool
	runJUnitPath    string
	runMarkdownPath string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Reconcile expected state against device state",
	Long: `Run a reconciliation: every expected entity is located in the device
state trees and compared after normalization.

State input is one of:
  --snapshots <dir>   YAML parse captures, <dir>/<device>/<command>.yaml
  --redis <addr>      JSON trees stored by the collection pipeline

Exit status: 0 when all verdicts pass, 1 when any verdict fails,
2 when the run itself could not be executed.

Examples:
  netcheck run --snapshots ./snapshots
  netcheck run --snapshots ./snapshots --expectations expected.yaml --junit reports/junit.xml
  netcheck run --redis localhost:6379 --devices router1,router2 --os-family router2=iosxr`,
	RunE: func(cmd *cobra.Command, args []string) error {
		start := time.Now()

		set, err := loadExpectations()
		if err != nil {
			return err
		}

		stateProvider, source, err := buildProvider()
		if err != nil {
			return err
		}

		if len(runDevices) > 0 {
			set = filterDevices(set, runDevices)
		}
		if set.Len() == 0 {
			return fmt.Errorf("no expected entities to reconcile")
		}

		families, err := parseOSFamilies(runOSFamilies)
		if err != nil {
			return err
		}

		engine := reconcile.New(stateProvider)
		engine.OSFamilies = families
		engine.Parallel = runParallel

		summary, err := engine.Reconcile(context.Background(), set)

		record := runlog.NewRecord(currentUser(), source, set.Devices()).
			WithDuration(time.Since(start)).
			WithError(err)
		if summary != nil {
			record.WithSummary(summary)
		}
		logRun(record)

		if err != nil {
			return err
		}

		gen := &reconcile.ReportGenerator{Summary: summary}
		if jsonOutput {
			if err := gen.WriteJSON(os.Stdout); err != nil {
				return err
			}
		} else {
			gen.WriteConsole(os.Stdout)
		}
		if runMarkdownPath != "" {
			if err := gen.WriteMarkdown(runMarkdownPath); err != nil {
				return fmt.Errorf("writing markdown report: %w", err)
			}
		}
		if runJUnitPath != "" {
			if err := gen.WriteJUnit(runJUnitPath); err != nil {
				return fmt.Errorf("writing junit report: %w", err)
			}
		}

		if summary.Failed() {
			os.Exit(1)
		}
		return nil
	},
}

func loadExpectations() (*expect.ExpectationSet, error) {
	path := runExpectations
	if path == "" {
		path = userSettings.ExpectationsFile
	}

	defaults := expect.Defaults()
	if path == "" {
		return defaults, nil
	}

	set, err := expect.LoadFile(defaults, path)
	if err != nil {
		// Malformed overrides fall back to defaults, per the registry
		// contract. Loud, not fatal.
		util.Warnf("expectation override rejected, using defaults: %v", err)
	}
	return set, nil
}

func buildProvider() (reconcile.StateProvider, string, error) {
	snapshots := runSnapshots
	redisAddr := runRedis
	if snapshots == "" && redisAddr == "" {
		snapshots = userSettings.SnapshotsDir
		redisAddr = userSettings.RedisAddr
	}

	switch {
	case snapshots != "" && redisAddr != "":
		return nil, "", fmt.Errorf("--snapshots and --redis are mutually exclusive")
	case snapshots != "":
		return provider.NewSnapshotProvider(snapshots), "snapshots:" + snapshots, nil
	case redisAddr != "":
		p := provider.NewRedisProvider(redisAddr)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := p.Connect(ctx); err != nil {
			return nil, "", fmt.Errorf("connecting to redis at %s: %w", redisAddr, err)
		}
		return p, "redis:" + redisAddr, nil
	default:
		return nil, "", fmt.Errorf("no state source: use --snapshots or --redis (or set one via netcheck settings)")
	}
}

// filterDevices restricts the set to the named devices, keeping their
// declaration order from the registry.
func filterDevices(set *expect.ExpectationSet, devices []string) *expect.ExpectationSet {
	want := make(map[string]bool, len(devices))
	for _, d := range devices {
		want[d] = true
	}

	filtered := expect.NewExpectationSet()
	for _, dev := range set.Devices() {
		if want[dev] {
			filtered.ReplaceDevice(dev, set.ForDevice(dev))
		}
	}
	return filtered
}

// parseOSFamilies parses --os-family device=family pairs.
func parseOSFamilies(pairs []string) (map[string]model.OSFamily, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	out := make(map[string]model.OSFamily, len(pairs))
	for _, pair := range pairs {
		dev, fam, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --os-family %q: want device=family", pair)
		}
		switch model.OSFamily(fam) {
		case model.OSIOSXE, model.OSIOSXR:
			out[dev] = model.OSFamily(fam)
		default:
			return nil, fmt.Errorf("unknown OS family %q for device %s", fam, dev)
		}
	}
	return out, nil
}

func currentUser() string {
	if u, err := user.Current(); err == nil {
		return u.Username
	}
	return "unknown"
}

func logRun(record *runlog.Record) {
	path := userSettings.GetRunLogPath()
	logger, err := runlog.NewFileLogger(path, runlog.RotationConfig{
		MaxSize:    10 * 1024 * 1024, // 10MB
		MaxBackups: 10,
	})
	if err != nil {
		util.Warnf("Could not open run log: %v", err)
		return
	}
	defer logger.Close()

	if err := logger.Log(record); err != nil {
		util.Warnf("Could not record run: %v", err)
	}
}

func init() {
	runCmd.Flags().StringVarP(&runExpectations, "expectations", "e", "", "Expectation override YAML file")
	runCmd.Flags().StringVar(&runSnapshots, "snapshots", "", "Snapshot directory with parsed device state")
	runCmd.Flags().StringVar(&runRedis, "redis", "", "Redis address holding parsed device state")
	runCmd.Flags().StringSliceVarP(&runDevices, "devices", "d", nil, "Restrict the run to these devices")
	runCmd.Flags().StringSliceVar(&runOSFamilies, "os-family", nil, "Per-device OS family override (device=iosxe|iosxr)")
	runCmd.Flags().BoolVar(&runParallel, "parallel", false, "Reconcile devices concurrently")
	runCmd.Flags().StringVar(&runJUnitPath, "junit", "", "Write a JUnit XML report to this path")
	runCmd.Flags().StringVar(&runMarkdownPath, "markdown", "", "Write a markdown report to this path")
	runCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the summary as JSON")
}
