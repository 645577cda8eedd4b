package reconcile

import (
	"github.com/netcheck-network/netcheck/pkg/model"
)

// commandTable maps entity kinds to the show command whose parsed
// output carries them. BGP is the only kind whose command differs by
// OS family; everything else shares one command across families, with
// shape variance absorbed by the locator.
var commandTable = map[model.EntityKind]map[model.OSFamily]string{
	model.KindBGPPeer: {
		model.OSIOSXE: "show bgp all neighbors",
		model.OSIOSXR: "show bgp instance all sessions",
	},
	model.KindOSPFPeer:          {model.OSIOSXE: "show ip ospf neighbor"},
	model.KindOSPFNeighborCount: {model.OSIOSXE: "show ip ospf neighbor"},
	model.KindBGPRouteCount:     {model.OSIOSXE: "show ip bgp"},
	model.KindLDPPeer:           {model.OSIOSXE: "show mpls ldp neighbor"},
	model.KindLDPBindingCount:   {model.OSIOSXE: "show mpls ldp bindings"},
	model.KindLDPInterfaceCount: {model.OSIOSXE: "show mpls ldp interface"},
	model.KindMPLSInterface:     {model.OSIOSXE: "show mpls interfaces"},
	model.KindMPLSForwardingCount: {
		model.OSIOSXE: "show mpls forwarding-table",
	},
	model.KindMPLSTunnelCount:  {model.OSIOSXE: "show mpls traffic-eng tunnels"},
	model.KindTopologyNeighbor: {model.OSIOSXE: "show cdp neighbors detail"},
}

// Command returns the show command for a kind on the given OS family.
// Kinds without a family-specific entry fall back to their IOS-XE
// command. Unknown kinds return "".
func Command(kind model.EntityKind, os model.OSFamily) string {
	byOS, ok := commandTable[kind]
	if !ok {
		return ""
	}
	if cmd, ok := byOS[os]; ok {
		return cmd
	}
	return byOS[model.OSIOSXE]
}
