package main

import (
	"github.com/spf13/cobra"

	"github.com/netcheck-network/netcheck/pkg/cli"
	"github.com/netcheck-network/netcheck/pkg/model"
	"github.com/netcheck-network/netcheck/pkg/reconcile"
)

var commandsCmd = &cobra.Command{
	Use:   "commands",
	Short: "Show which command backs each entity kind",
	Long: `Show the command dispatch table: for each entity kind and OS family,
the show command whose parsed output is searched for that kind.`,
	Run: func(cmd *cobra.Command, args []string) {
		t := cli.NewTable("KIND", "OS FAMILY", "COMMAND")
		for _, kind := range model.Kinds {
			for _, fam := range []model.OSFamily{model.OSIOSXE, model.OSIOSXR} {
				t.Row(string(kind), string(fam), reconcile.Command(kind, fam))
			}
		}
		t.Flush()
	},
}
