package statetree

import (
	"github.com/netcheck-network/netcheck/pkg/model"
)

// locateStrategies declares, per entity kind, the ordered traversal
// strategies covering the known schema variants. Order is priority:
// cheapest/most common shape first. New device OS shapes are supported
// by appending a strategy here.
var locateStrategies = map[model.EntityKind][]Strategy{
	model.KindBGPPeer: {
		{
			// IOS-XE "show bgp all neighbors"
			Name:      "vrf-neighbor",
			Steps:     []Step{each("vrf"), match("neighbor")},
			StateKeys: []string{"session_state"},
		},
		{
			// IOS-XR "show bgp instance all sessions"
			Name:      "instance-vrf-neighbors",
			Steps:     []Step{each("instance"), each("vrf"), match("neighbors")},
			StateKeys: []string{"nbr_state"},
		},
		{
			// Summary output: established sessions report a received
			// prefix count in state_pfxrcd instead of a state string.
			Name:      "vrf-neighbor-summary",
			Steps:     []Step{each("vrf"), match("neighbor")},
			ReadState: readPfxRcvdState,
		},
		{
			// Flat top-level mapping keyed directly by peer address.
			Name:      "flat-neighbor",
			Steps:     []Step{match("")},
			StateKeys: []string{"state", "session_state"},
		},
	},

	model.KindOSPFPeer: {
		{
			// IOS-XE: neighbors grouped per interface
			Name:      "interface-neighbors",
			Steps:     []Step{each("interfaces"), match("neighbors")},
			StateKeys: []string{"state"},
		},
		{
			// IOS-XR: neighbors grouped per VRF
			Name:      "vrf-neighbors",
			Steps:     []Step{each("vrfs"), match("neighbors")},
			StateKeys: []string{"state"},
		},
		{
			// Full instance/vrf/area/interface nesting
			Name:      "instance-area-neighbors",
			Steps:     []Step{each("instance"), each("vrf"), each("areas"), each("interfaces"), match("neighbors")},
			StateKeys: []string{"state"},
		},
		{
			Name:      "flat-neighbor",
			Steps:     []Step{match("")},
			StateKeys: []string{"state"},
		},
	},

	model.KindLDPPeer: {
		{
			// IOS-XE: peer state lives under per-label-space entries;
			// peers are keyed by transport address but may also match
			// on their LDP identifier.
			Name:      "vrf-peer-labelspace",
			Steps:     []Step{each("vrf"), matchBy("peers", "ldp_id"), each("label_space_id")},
			StateKeys: []string{"state"},
		},
		{
			// Variants that put the state (or a session block) directly
			// on the peer entry.
			Name:      "vrf-peer",
			Steps:     []Step{each("vrf"), matchBy("peers", "ldp_id")},
			ReadState: readLDPPeerState,
		},
		{
			// IOS-XR variants: a list of interfaces each holding a list
			// of peers identified by peer_ldp_id.
			Name:      "interface-peer-list",
			Steps:     []Step{eachList("interfaces"), matchField("peers", "peer_ldp_id")},
			StateKeys: []string{"state"},
		},
	},

	model.KindMPLSInterface: {
		{
			// IOS/IOS-XE "show mpls interfaces": per-interface ldp flag
			Name:      "interfaces-ldp-flag",
			Steps:     []Step{match("interfaces")},
			ReadState: readMPLSLDPFlag,
		},
		{
			// Alternative per-VRF shape with a plain enabled flag
			Name:      "vrf-interfaces-enabled",
			Steps:     []Step{each("vrf"), match("interfaces")},
			ReadState: readEnabledFlag,
		},
	},

	model.KindTopologyNeighbor: {
		{
			// CDP detail output: indexed entries identified by device_id.
			// No state field; existence plus interface attributes, which
			// the engine checks from the leaf.
			Name:  "cdp-index",
			Steps: []Step{matchField("index", "device_id")},
		},
	},
}

// readPfxRcvdState interprets the summary-table state column: a numeric
// or empty value means the session is established and the column holds
// the received prefix count; anything else is the state string itself.
// An absent column on a found summary row also reads as established,
// the way summary output omits it for healthy sessions.
func readPfxRcvdState(leaf map[string]any) (string, bool) {
	s := fieldString(leaf["state_pfxrcd"])
	if s == "" || isDigits(s) {
		return "Established", true
	}
	return s, true
}

// TopologyEntries lists every CDP neighbor entry in a parsed
// "show cdp neighbors detail" tree, in index-key order. Callers use it
// to audit the full neighbor table, not just expected entries.
func TopologyEntries(tree Tree) []map[string]any {
	entries, ok := asMap(tree["index"])
	if !ok {
		return nil
	}
	out := make([]map[string]any, 0, len(entries))
	for _, k := range sortedKeys(entries) {
		if m, ok := asMap(entries[k]); ok {
			out = append(out, m)
		}
	}
	return out
}

// readLDPPeerState reads a peer-level state field, falling back to a
// nested session block.
func readLDPPeerState(leaf map[string]any) (string, bool) {
	if s := fieldString(leaf["state"]); s != "" {
		return s, true
	}
	if session, ok := asMap(leaf["session"]); ok {
		if s := fieldString(session["state"]); s != "" {
			return s, true
		}
	}
	return "", false
}

// readMPLSLDPFlag maps the nested mpls.ldp flag to an enabled/disabled
// state string.
func readMPLSLDPFlag(leaf map[string]any) (string, bool) {
	mpls, ok := asMap(leaf["mpls"])
	if !ok {
		return "", false
	}
	if truthy(mpls["ldp"]) {
		return "enabled", true
	}
	return "disabled", true
}

// readEnabledFlag maps a plain enabled flag to enabled/disabled.
func readEnabledFlag(leaf map[string]any) (string, bool) {
	v, present := leaf["enabled"]
	if !present {
		return "", false
	}
	if truthy(v) {
		return "enabled", true
	}
	return "disabled", true
}
