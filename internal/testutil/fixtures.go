// Package testutil provides shared test fixtures and helpers.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// WriteSnapshot writes one YAML snapshot file under dir in the layout
// the snapshot provider reads: <dir>/<device>/<command slug>.yaml.
func WriteSnapshot(t *testing.T, dir, device, command, yamlBody string) {
	t.Helper()

	slug := strings.ReplaceAll(command, " ", "_")
	deviceDir := filepath.Join(dir, device)
	if err := os.MkdirAll(deviceDir, 0o755); err != nil {
		t.Fatalf("creating snapshot dir: %v", err)
	}
	path := filepath.Join(deviceDir, slug+".yaml")
	if err := os.WriteFile(path, []byte(yamlBody), 0o644); err != nil {
		t.Fatalf("writing snapshot %s: %v", path, err)
	}
}
