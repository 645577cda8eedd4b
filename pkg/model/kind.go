// Package model defines the shared domain types for netcheck: entity
// kinds, device OS families, and expected-entity declarations.
package model

// EntityKind is the category of thing being reconciled on a device.
type EntityKind string

const (
	KindBGPPeer          EntityKind = "bgp_peer"
	KindOSPFPeer         EntityKind = "ospf_peer"
	KindLDPPeer          EntityKind = "ldp_peer"
	KindMPLSInterface    EntityKind = "mpls_interface"
	KindMPLSTunnelCount  EntityKind = "mpls_tunnel_count"
	KindTopologyNeighbor EntityKind = "topology_neighbor"

	// Count-class kinds beyond tunnels: aggregate totals rather than
	// one named entity.
	KindOSPFNeighborCount   EntityKind = "ospf_neighbor_count"
	KindMPLSForwardingCount EntityKind = "mpls_forwarding_count"
	KindLDPBindingCount     EntityKind = "ldp_binding_count"
	KindBGPRouteCount       EntityKind = "bgp_route_count"
	KindLDPInterfaceCount   EntityKind = "ldp_interface_count"
)

// Kinds lists all entity kinds in a fixed, documented order. Verdict
// ordering within a device follows expectation declaration order, but
// tooling that iterates kinds (CLI listings, command tables) uses this.
var Kinds = []EntityKind{
	KindBGPPeer,
	KindOSPFPeer,
	KindLDPPeer,
	KindMPLSInterface,
	KindMPLSTunnelCount,
	KindTopologyNeighbor,
	KindOSPFNeighborCount,
	KindMPLSForwardingCount,
	KindLDPBindingCount,
	KindBGPRouteCount,
	KindLDPInterfaceCount,
}

// IsCount reports whether the kind is reconciled by counting entities
// across container shapes rather than locating one named entity.
func (k EntityKind) IsCount() bool {
	switch k {
	case KindMPLSTunnelCount, KindOSPFNeighborCount, KindMPLSForwardingCount,
		KindLDPBindingCount, KindBGPRouteCount, KindLDPInterfaceCount:
		return true
	}
	return false
}

// Valid reports whether k is a recognized entity kind.
func (k EntityKind) Valid() bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}

// OSFamily identifies the device operating system family. It selects
// which show command produces the state tree for a given entity kind;
// tree shape variance itself is handled by the locator, not here.
type OSFamily string

const (
	OSIOSXE OSFamily = "iosxe"
	OSIOSXR OSFamily = "iosxr"
)

// DefaultOSFamily is assumed for devices with no declared OS family.
const DefaultOSFamily = OSIOSXE
