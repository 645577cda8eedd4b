// Package provider supplies parsed device state trees to the
// reconciliation engine. Two sources are supported: on-disk YAML
// snapshots and a Redis store fed by the collection pipeline.
package provider

import (
	"strings"
)

// CommandSlug converts a show command to the token used in snapshot
// filenames and Redis keys: "show bgp all neighbors" becomes
// "show_bgp_all_neighbors".
func CommandSlug(command string) string {
	return strings.ReplaceAll(strings.TrimSpace(command), " ", "_")
}
