package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/netcheck-network/netcheck/pkg/cli"
	"github.com/netcheck-network/netcheck/pkg/expect"
	"github.com/netcheck-network/netcheck/pkg/model"
	"github.com/netcheck-network/netcheck/pkg/util"
)

var expectationsFile string

var expectationsCmd = &cobra.Command{
	Use:   "expectations",
	Short: "Show the effective expectation set",
	Long: `Show the expected entities a run would reconcile: built-in defaults
with any override file applied.

Examples:
  netcheck expectations
  netcheck expectations -e expected.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := expectationsFile
		if path == "" {
			path = userSettings.ExpectationsFile
		}

		set := expect.Defaults()
		if path != "" {
			var err error
			set, err = expect.LoadFile(set, path)
			if err != nil {
				util.Warnf("expectation override rejected, showing defaults: %v", err)
			}
		}

		t := cli.NewTable("DEVICE", "KIND", "KEY", "EXPECTED", "ATTRS")
		for _, dev := range set.Devices() {
			for _, e := range set.ForDevice(dev) {
				t.Row(dev, string(e.Kind), e.Key, expectedColumn(e), attrsColumn(e))
			}
		}
		t.Flush()

		fmt.Printf("\n%d devices, %d expected entities\n", len(set.Devices()), set.Len())
		return nil
	},
}

func expectedColumn(e model.ExpectedEntity) string {
	switch {
	case e.Kind == model.KindMPLSTunnelCount, e.Kind == model.KindOSPFNeighborCount:
		return fmt.Sprintf("count=%d", e.ExpectedCount)
	case e.Kind == model.KindMPLSForwardingCount, e.Kind == model.KindLDPBindingCount,
		e.Kind == model.KindBGPRouteCount, e.Kind == model.KindLDPInterfaceCount:
		return fmt.Sprintf("count>=%d", e.MinCount)
	case e.ExpectedState == "":
		return "(exists)"
	default:
		return e.ExpectedState
	}
}

func attrsColumn(e model.ExpectedEntity) string {
	if len(e.Attrs) == 0 {
		return ""
	}
	out := ""
	for _, name := range []string{expect.AttrPeerAS, expect.AttrLocalInterface, expect.AttrRemoteInterface} {
		if v := e.Attr(name); v != "" {
			if out != "" {
				out += " "
			}
			out += name + "=" + v
		}
	}
	return out
}

func init() {
	expectationsCmd.Flags().StringVarP(&expectationsFile, "expectations", "e", "", "Expectation override YAML file")
}
