package expect

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/netcheck-network/netcheck/pkg/model"
	"github.com/netcheck-network/netcheck/pkg/util"
)

// Attribute names carried on expected entities.
const (
	AttrPeerAS          = "peer_as"
	AttrLocalInterface  = "local_interface"
	AttrRemoteInterface = "remote_interface"
)

// DefaultBindingsMin is the label-binding floor assumed when a device
// declares MPLS expectations without one: an MPLS-enabled device should
// be advertising at least something.
const DefaultBindingsMin = 1

// peerEntry is one expected routing peer in an override file.
type peerEntry struct {
	Peer   string `yaml:"peer"`
	State  string `yaml:"state"`
	PeerAS string `yaml:"peer_as,omitempty"`
}

// mplsEntry is a device's expected MPLS posture.
type mplsEntry struct {
	EnabledInterfaces    []string `yaml:"enabled_interfaces"`
	TunnelCount          *int     `yaml:"tunnel_count"`
	ForwardingEntriesMin *int     `yaml:"forwarding_entries_min"`
	BindingsMin          *int     `yaml:"bindings_min"`
}

// topologyEntry is one expected adjacency from the topology section.
type topologyEntry struct {
	Device          string `yaml:"device"`
	LocalInterface  string `yaml:"local_interface"`
	RemoteInterface string `yaml:"remote_interface"`
}

// DeviceExpectations is the per-device block of an override file. A
// device present in the file replaces ALL of its defaults, matching
// how override files have always behaved: partial merges invite silent
// half-applied intent.
type DeviceExpectations struct {
	BGPPeers           []peerEntry     `yaml:"bgp_peers"`
	OSPFPeers          []peerEntry     `yaml:"ospf_peers"`
	LDPPeers           []peerEntry     `yaml:"ldp_peers"`
	MPLS               *mplsEntry      `yaml:"mpls"`
	OSPFNeighborCounts map[string]int  `yaml:"ospf_neighbor_counts"`
	TopologyNeighbors  []topologyEntry `yaml:"topology_neighbors"`
}

// Defaults returns the built-in expectation set for the reference lab
// topology. It is the baseline every run starts from; override files
// replace per-device slices of it.
func Defaults() *ExpectationSet {
	set := NewExpectationSet()

	defaults := []struct {
		device string
		exp    DeviceExpectations
	}{
		{"router1", DeviceExpectations{
			BGPPeers: []peerEntry{
				{Peer: "10.1.1.2", State: "established", PeerAS: "65002"},
				{Peer: "10.1.1.3", State: "established", PeerAS: "65003"},
			},
			OSPFPeers: []peerEntry{
				{Peer: "10.0.0.1", State: "full"},
				{Peer: "10.0.0.2", State: "full/dr"},
			},
			LDPPeers: []peerEntry{
				{Peer: "2.2.2.2", State: "operational"},
				{Peer: "3.3.3.3", State: "operational"},
			},
			MPLS: &mplsEntry{
				EnabledInterfaces:    []string{"GigabitEthernet0/0", "GigabitEthernet0/1"},
				TunnelCount:          intp(2),
				ForwardingEntriesMin: intp(10),
			},
			OSPFNeighborCounts: map[string]int{"1": 2},
		}},
		{"router2", DeviceExpectations{
			BGPPeers: []peerEntry{
				{Peer: "10.1.1.1", State: "established", PeerAS: "65001"},
				{Peer: "10.2.2.3", State: "established", PeerAS: "65003"},
			},
			OSPFPeers: []peerEntry{
				{Peer: "10.0.0.2", State: "full/bdr"},
				{Peer: "10.0.0.3", State: "full/bdr"},
			},
			LDPPeers: []peerEntry{
				{Peer: "1.1.1.1", State: "operational"},
				{Peer: "3.3.3.3", State: "operational"},
			},
			MPLS: &mplsEntry{
				EnabledInterfaces:    []string{"GigabitEthernet0/0", "GigabitEthernet0/2"},
				TunnelCount:          intp(2),
				ForwardingEntriesMin: intp(10),
			},
			OSPFNeighborCounts: map[string]int{"1": 3},
		}},
		{"router3", DeviceExpectations{
			OSPFNeighborCounts: map[string]int{"1": 2, "2": 1},
		}},
	}

	for _, d := range defaults {
		set.ReplaceDevice(d.device, d.exp.entities(d.device))
	}
	return set
}

// Load builds the effective expectation set: defaults with each device
// in overrides replaced wholesale. Override devices unknown to the
// defaults are appended in sorted order for stable output.
func Load(defaults *ExpectationSet, overrides map[string]DeviceExpectations) *ExpectationSet {
	set := NewExpectationSet()
	for _, dev := range defaults.Devices() {
		set.ReplaceDevice(dev, defaults.ForDevice(dev))
	}

	names := make([]string, 0, len(overrides))
	for dev := range overrides {
		names = append(names, dev)
	}
	sort.Strings(names)
	for _, dev := range names {
		set.ReplaceDevice(dev, overrides[dev].entities(dev))
	}
	return set
}

// LoadFile reads a YAML override file and applies it over defaults.
// A missing file is not an error: the defaults come back untouched.
// A malformed file returns a RegistryLoadError so the caller can log
// and fall back to defaults.
func LoadFile(defaults *ExpectationSet, path string) (*ExpectationSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return defaults, nil
		}
		return defaults, util.NewRegistryLoadError(path, err)
	}

	var overrides map[string]DeviceExpectations
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return defaults, util.NewRegistryLoadError(path, fmt.Errorf("parse yaml: %w", err))
	}

	names := make([]string, 0, len(overrides))
	for dev := range overrides {
		names = append(names, dev)
	}
	sort.Strings(names)
	for _, dev := range names {
		if err := overrides[dev].validate(dev); err != nil {
			return defaults, util.NewRegistryLoadError(path, err)
		}
	}
	return Load(defaults, overrides), nil
}

// validate checks a device block for structural defects before it is
// allowed to replace the device's defaults. All problems in a block are
// reported together.
func (d DeviceExpectations) validate(deviceID string) error {
	v := util.NewValidation(deviceID)

	sections := []struct {
		name  string
		peers []peerEntry
	}{
		{"bgp_peers", d.BGPPeers},
		{"ospf_peers", d.OSPFPeers},
		{"ldp_peers", d.LDPPeers},
	}
	for _, s := range sections {
		for i, p := range s.peers {
			v.Require(p.Peer != "", fmt.Sprintf("%s entry %d has no peer address", s.name, i+1))
		}
	}

	if m := d.MPLS; m != nil {
		v.Require(m.TunnelCount == nil || *m.TunnelCount >= 0, "mpls tunnel_count is negative")
		v.Require(m.ForwardingEntriesMin == nil || *m.ForwardingEntriesMin >= 0, "mpls forwarding_entries_min is negative")
		v.Require(m.BindingsMin == nil || *m.BindingsMin >= 0, "mpls bindings_min is negative")
	}

	procs := make([]string, 0, len(d.OSPFNeighborCounts))
	for proc := range d.OSPFNeighborCounts {
		procs = append(procs, proc)
	}
	sort.Strings(procs)
	for _, proc := range procs {
		v.Require(d.OSPFNeighborCounts[proc] >= 0,
			fmt.Sprintf("ospf_neighbor_counts[%s] is negative", proc))
	}

	for i, n := range d.TopologyNeighbors {
		v.Require(n.Device != "", fmt.Sprintf("topology_neighbors entry %d has no device", i+1))
	}
	return v.Err()
}

// entities flattens a device block into expected entities, in a fixed
// section order so reports stay deterministic.
func (d DeviceExpectations) entities(deviceID string) []model.ExpectedEntity {
	var ents []model.ExpectedEntity

	for _, p := range d.BGPPeers {
		e := model.ExpectedEntity{
			DeviceID:      deviceID,
			Kind:          model.KindBGPPeer,
			Key:           p.Peer,
			ExpectedState: p.State,
		}
		if p.PeerAS != "" {
			e.Attrs = map[string]string{AttrPeerAS: p.PeerAS}
		}
		ents = append(ents, e)
	}
	if len(d.BGPPeers) > 0 {
		// A device with expected BGP sessions should be exchanging
		// routes over them.
		ents = append(ents, model.ExpectedEntity{
			DeviceID: deviceID,
			Kind:     model.KindBGPRouteCount,
			MinCount: 1,
		})
	}

	for _, p := range d.OSPFPeers {
		ents = append(ents, model.ExpectedEntity{
			DeviceID:      deviceID,
			Kind:          model.KindOSPFPeer,
			Key:           p.Peer,
			ExpectedState: p.State,
		})
	}

	for _, p := range d.LDPPeers {
		ents = append(ents, model.ExpectedEntity{
			DeviceID:      deviceID,
			Kind:          model.KindLDPPeer,
			Key:           p.Peer,
			ExpectedState: p.State,
		})
	}
	if len(d.LDPPeers) > 0 {
		// Sessions require LDP running on at least one interface.
		ents = append(ents, model.ExpectedEntity{
			DeviceID: deviceID,
			Kind:     model.KindLDPInterfaceCount,
			MinCount: 1,
		})
	}

	if m := d.MPLS; m != nil {
		for _, ifname := range m.EnabledInterfaces {
			ents = append(ents, model.ExpectedEntity{
				DeviceID:      deviceID,
				Kind:          model.KindMPLSInterface,
				Key:           ifname,
				ExpectedState: "enabled",
			})
		}
		if m.TunnelCount != nil {
			ents = append(ents, model.ExpectedEntity{
				DeviceID:      deviceID,
				Kind:          model.KindMPLSTunnelCount,
				ExpectedCount: *m.TunnelCount,
			})
		}
		if m.ForwardingEntriesMin != nil {
			ents = append(ents, model.ExpectedEntity{
				DeviceID: deviceID,
				Kind:     model.KindMPLSForwardingCount,
				MinCount: *m.ForwardingEntriesMin,
			})
		}
		bindingsMin := DefaultBindingsMin
		if m.BindingsMin != nil {
			bindingsMin = *m.BindingsMin
		}
		ents = append(ents, model.ExpectedEntity{
			DeviceID: deviceID,
			Kind:     model.KindLDPBindingCount,
			MinCount: bindingsMin,
		})
	}

	if len(d.OSPFNeighborCounts) > 0 {
		procs := make([]string, 0, len(d.OSPFNeighborCounts))
		for proc := range d.OSPFNeighborCounts {
			procs = append(procs, proc)
		}
		sort.Strings(procs)
		for _, proc := range procs {
			ents = append(ents, model.ExpectedEntity{
				DeviceID:      deviceID,
				Kind:          model.KindOSPFNeighborCount,
				Key:           proc,
				ExpectedCount: d.OSPFNeighborCounts[proc],
			})
		}
	}

	for _, n := range d.TopologyNeighbors {
		ents = append(ents, model.ExpectedEntity{
			DeviceID: deviceID,
			Kind:     model.KindTopologyNeighbor,
			Key:      n.Device,
			Attrs: map[string]string{
				AttrLocalInterface:  n.LocalInterface,
				AttrRemoteInterface: n.RemoteInterface,
			},
		})
	}

	return ents
}

func intp(v int) *int { return &v }
