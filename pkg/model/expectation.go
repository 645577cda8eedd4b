package model

// ExpectedEntity declares one peer, interface, neighbor, or count that a
// device is expected to have. Entities are immutable once loaded; the
// registry builds one set per reconciliation run.
type ExpectedEntity struct {
	DeviceID string
	Kind     EntityKind

	// Key identifies the entity: peer address, interface name, OSPF
	// process ID, or neighbor device ID. Empty for device-wide counts.
	Key string

	// ExpectedState is compared after normalization. Empty means
	// existence-only: any state passes as long as the entity is found.
	ExpectedState string

	// Attrs carries kind-specific extras: peer_as for BGP peers,
	// local_interface/remote_interface for topology neighbors.
	Attrs map[string]string

	// ExpectedCount is the exact expected total for exact-count kinds
	// (mpls_tunnel_count, ospf_neighbor_count).
	ExpectedCount int

	// MinCount is the minimum threshold for floor-count kinds
	// (mpls_forwarding_count, ldp_binding_count).
	MinCount int
}

// Attr returns a named attribute, or "" when unset.
func (e ExpectedEntity) Attr(name string) string {
	if e.Attrs == nil {
		return ""
	}
	return e.Attrs[name]
}
