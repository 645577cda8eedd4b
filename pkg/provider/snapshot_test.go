package provider

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/netcheck-network/netcheck/internal/testutil"
	"github.com/netcheck-network/netcheck/pkg/util"
)

func TestCommandSlug(t *testing.T) {
	tests := []struct {
		command string
		want    string
	}{
		{"show bgp all neighbors", "show_bgp_all_neighbors"},
		{"  show ip ospf neighbor  ", "show_ip_ospf_neighbor"},
		{"show", "show"},
	}
	for _, tt := range tests {
		if got := CommandSlug(tt.command); got != tt.want {
			t.Errorf("CommandSlug(%q) = %q, want %q", tt.command, got, tt.want)
		}
	}
}

func TestSnapshotProvider_Fetch(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteSnapshot(t, dir, "router1", "show bgp all neighbors", `
vrf:
  default:
    neighbor:
      10.1.1.2:
        session_state: Established
        remote_as: "65002"
`)

	p := NewSnapshotProvider(dir)
	tree, err := p.Fetch(context.Background(), "router1", "show bgp all neighbors")
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}

	vrf, ok := tree["vrf"].(map[string]any)
	if !ok {
		t.Fatalf("tree missing vrf container: %v", tree)
	}
	def, ok := vrf["default"].(map[string]any)
	if !ok {
		t.Fatalf("vrf missing default: %v", vrf)
	}
	if _, ok := def["neighbor"]; !ok {
		t.Errorf("default vrf missing neighbor container")
	}
}

func TestSnapshotProvider_MissingSnapshot(t *testing.T) {
	p := NewSnapshotProvider(t.TempDir())
	_, err := p.Fetch(context.Background(), "router1", "show bgp all neighbors")
	if err == nil {
		t.Fatal("expected error for missing snapshot")
	}
	if !strings.Contains(err.Error(), "router1") {
		t.Errorf("error should name the device: %v", err)
	}
	if !errors.Is(err, util.ErrNotFound) {
		t.Errorf("missing snapshot should classify as not found: %v", err)
	}
}

func TestSnapshotProvider_MalformedSnapshot(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteSnapshot(t, dir, "router1", "show mpls interfaces", "- just\n- a\n- list\n")

	p := NewSnapshotProvider(dir)
	_, err := p.Fetch(context.Background(), "router1", "show mpls interfaces")
	if !errors.Is(err, util.ErrShapeViolation) {
		t.Errorf("error = %v, want ErrShapeViolation", err)
	}
}

func TestSnapshotProvider_Devices(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteSnapshot(t, dir, "router1", "show mpls interfaces", "interfaces: {}\n")
	testutil.WriteSnapshot(t, dir, "router2", "show mpls interfaces", "interfaces: {}\n")

	p := NewSnapshotProvider(dir)
	devices, err := p.Devices()
	if err != nil {
		t.Fatalf("Devices error: %v", err)
	}
	if len(devices) != 2 {
		t.Errorf("Devices = %v, want router1 and router2", devices)
	}
}
