package statetree

import (
	"strings"

	"github.com/netcheck-network/netcheck/pkg/model"
)

// CountShape is one candidate container shape for a count-class kind.
// Shapes are tried in declaration order; the first whose tally is
// nonzero wins.
type CountShape struct {
	Name string

	// Steps descend to the nodes holding the counted container.
	Steps []Step

	// CountKey names the container under each reached node whose
	// entries are tallied.
	CountKey string

	// Match filters entries; nil counts every entry.
	Match func(entry map[string]any) bool
}

// countShapes declares the candidate shapes per count-class kind.
var countShapes = map[model.EntityKind][]CountShape{
	model.KindOSPFNeighborCount: {
		{
			// IOS-style: instance keyed by process ID, then
			// vrf/areas/interfaces nesting.
			Name:     "instance-vrf-areas",
			Steps:    []Step{match("instance"), each("vrf"), each("areas"), each("interfaces")},
			CountKey: "neighbors",
		},
		{
			// Variant without the instance level: interfaces carry a
			// process_id field, defaulting to "1" when absent.
			Name:     "areas-interfaces",
			Steps:    []Step{each("areas"), filterField("interfaces", "process_id", "1")},
			CountKey: "neighbors",
		},
	},

	model.KindMPLSForwardingCount: {
		{
			Name:     "vrf-local-label",
			Steps:    []Step{each("vrf")},
			CountKey: "local_label",
		},
		{
			Name:     "flat-local-label",
			CountKey: "local_label",
		},
	},

	model.KindMPLSTunnelCount: {
		{
			Name:     "tunnels-up",
			CountKey: "tunnels",
			Match:    entryFieldIs("state", "up"),
		},
		{
			Name:     "tunnel-id-admin-up",
			CountKey: "tunnel_id",
			Match:    entryFieldIs("admin_state", "up"),
		},
	},

	model.KindLDPBindingCount: {
		{
			Name:     "vrf-lib-bindings",
			Steps:    []Step{each("vrf"), each("lib")},
			CountKey: "bindings",
		},
	},

	model.KindBGPRouteCount: {
		{
			// "show ip bgp": routes tallied across the ipv4 address
			// families only, per VRF.
			Name:     "vrf-af-routes",
			Steps:    []Step{each("vrf"), eachPrefix("address_family", "ipv4")},
			CountKey: "routes",
		},
	},

	model.KindLDPInterfaceCount: {
		{
			// IOS/IOS-XE "show mpls ldp interface"
			Name:     "vrf-interfaces",
			Steps:    []Step{each("vrf")},
			CountKey: "interfaces",
		},
		{
			// Flat variant: a bare interface list at the top level.
			Name:     "flat-interfaces",
			CountKey: "interfaces",
		},
	},
}

// Count tallies entities of a count-class kind, trying each candidate
// shape in order and returning the first nonzero tally. When every
// shape yields zero, zero is returned; a confirmed-zero count and an
// unrecognized shape are indistinguishable at this layer; callers that
// need the distinction do not get it here.
func Count(tree Tree, kind model.EntityKind, key string) int {
	return CountWhere(tree, kind, key, nil)
}

// CountWhere is Count with an additional caller predicate applied on
// top of the shape's own entry filter.
func CountWhere(tree Tree, kind model.EntityKind, key string, pred func(entry map[string]any) bool) int {
	if tree == nil {
		return 0
	}
	for _, shape := range countShapes[kind] {
		if n := shape.count(tree, key, pred); n > 0 {
			return n
		}
	}
	return 0
}

func (s CountShape) count(tree Tree, key string, pred func(entry map[string]any) bool) int {
	total := 0
	walk(tree, "", s.Steps, key, nil, func(node any, _ string) bool {
		m, ok := asMap(node)
		if !ok {
			return false
		}
		total += countEntries(m[s.CountKey], s.Match, pred)
		return false // visit every node the descent reaches
	})
	return total
}

// countEntries tallies a container's entries. With no filters every
// entry counts, matching len() semantics on the raw container; filtered
// counting only considers entries that are maps.
func countEntries(container any, match, pred func(entry map[string]any) bool) int {
	children := containerChildren(container)
	if match == nil && pred == nil {
		return len(children)
	}

	n := 0
	for _, child := range children {
		entry, ok := asMap(child)
		if !ok {
			continue
		}
		if match != nil && !match(entry) {
			continue
		}
		if pred != nil && !pred(entry) {
			continue
		}
		n++
	}
	return n
}

// entryFieldIs returns a predicate matching entries whose field equals
// want, case-insensitively.
func entryFieldIs(field, want string) func(entry map[string]any) bool {
	return func(entry map[string]any) bool {
		return strings.EqualFold(fieldString(entry[field]), want)
	}
}
