package provider

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/netcheck-network/netcheck/pkg/statetree"
	"github.com/netcheck-network/netcheck/pkg/util"
)

// SnapshotProvider reads state trees from a directory of YAML files,
// one file per (device, command):
//
//	<dir>/<device>/<command slug>.yaml
//
// Snapshots are written by the collection tooling and checked into lab
// repos, so reconciliation runs are reproducible without device access.
type SnapshotProvider struct {
	Dir string
}

// NewSnapshotProvider returns a provider rooted at dir.
func NewSnapshotProvider(dir string) *SnapshotProvider {
	return &SnapshotProvider{Dir: dir}
}

// Fetch loads the snapshot for one command on one device. A missing
// device directory or snapshot file is an error: the engine turns it
// into parse-error verdicts rather than silently passing.
func (p *SnapshotProvider) Fetch(_ context.Context, deviceID, command string) (statetree.Tree, error) {
	path := filepath.Join(p.Dir, deviceID, CommandSlug(command)+".yaml")

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("no snapshot for %q on %s: %w", command, deviceID, util.ErrNotFound)
		}
		return nil, fmt.Errorf("read snapshot %s: %w", path, err)
	}

	var tree map[string]any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, util.NewShapeViolationError(deviceID, command, fmt.Sprintf("snapshot is not a mapping: %v", err))
	}
	if tree == nil {
		return nil, util.NewShapeViolationError(deviceID, command, "empty snapshot")
	}
	return statetree.Tree(tree), nil
}

// Devices lists the device directories present under the snapshot root.
func (p *SnapshotProvider) Devices() ([]string, error) {
	entries, err := os.ReadDir(p.Dir)
	if err != nil {
		return nil, err
	}
	var devices []string
	for _, e := range entries {
		if e.IsDir() {
			devices = append(devices, e.Name())
		}
	}
	return devices, nil
}
