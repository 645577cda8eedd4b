package reconcile

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/netcheck-network/netcheck/pkg/expect"
	"github.com/netcheck-network/netcheck/pkg/model"
	"github.com/netcheck-network/netcheck/pkg/normalize"
	"github.com/netcheck-network/netcheck/pkg/statetree"
	"github.com/netcheck-network/netcheck/pkg/util"
)

// StateProvider fetches the parsed state tree a show command produced
// on a device. Implementations read snapshots, Redis, or anything else
// that can hand back genie-style parse output.
type StateProvider interface {
	Fetch(ctx context.Context, deviceID, command string) (statetree.Tree, error)
}

// Engine reconciles an expectation set against device state.
type Engine struct {
	Provider StateProvider

	// OSFamilies maps device IDs to their OS family; absent devices
	// get model.DefaultOSFamily.
	OSFamilies map[string]model.OSFamily

	// Parallel fans devices out across goroutines. Verdict order in
	// the summary is identical either way.
	Parallel bool
}

// New returns an engine over the given provider.
func New(provider StateProvider) *Engine {
	return &Engine{Provider: provider}
}

// Reconcile evaluates every entity in the set and returns one verdict
// per entity, ordered by device declaration order then entity
// declaration order.
func (e *Engine) Reconcile(ctx context.Context, set *expect.ExpectationSet) (*Summary, error) {
	if e.Provider == nil {
		return nil, fmt.Errorf("reconcile: no state provider configured")
	}

	devices := set.Devices()
	perDevice := make([][]Verdict, len(devices))

	if e.Parallel {
		var wg sync.WaitGroup
		for i, dev := range devices {
			wg.Add(1)
			go func(i int, dev string) {
				defer wg.Done()
				perDevice[i] = e.reconcileDevice(ctx, dev, set.ForDevice(dev))
			}(i, dev)
		}
		wg.Wait()
	} else {
		for i, dev := range devices {
			perDevice[i] = e.reconcileDevice(ctx, dev, set.ForDevice(dev))
		}
	}

	summary := &Summary{}
	for _, verdicts := range perDevice {
		summary.Verdicts = append(summary.Verdicts, verdicts...)
	}
	return summary, nil
}

func (e *Engine) osFamily(deviceID string) model.OSFamily {
	if fam, ok := e.OSFamilies[deviceID]; ok {
		return fam
	}
	return model.DefaultOSFamily
}

// reconcileDevice evaluates one device's entities. Each show command is
// fetched at most once; its tree (or fetch error) is shared by every
// entity that reads it.
func (e *Engine) reconcileDevice(ctx context.Context, deviceID string, ents []model.ExpectedEntity) []Verdict {
	log := util.WithDevice(deviceID)
	log.Debugf("reconciling %d expected entities", len(ents))

	type fetched struct {
		tree statetree.Tree
		err  error
	}
	cache := make(map[string]fetched)
	family := e.osFamily(deviceID)

	var expectedNeighbors []string
	verdicts := make([]Verdict, 0, len(ents))
	for _, ent := range ents {
		command := Command(ent.Kind, family)
		v := Verdict{
			Device:  deviceID,
			Kind:    ent.Kind,
			Key:     ent.Key,
			Command: command,
		}
		if command == "" {
			v.Outcome = OutcomeParseError
			v.Detail = fmt.Sprintf("no command known for kind %q", ent.Kind)
			verdicts = append(verdicts, v)
			continue
		}

		f, ok := cache[command]
		if !ok {
			tree, err := e.Provider.Fetch(ctx, deviceID, command)
			if err == nil && tree == nil {
				err = util.NewShapeViolationError(deviceID, command, "empty parse output")
			}
			f = fetched{tree: tree, err: err}
			cache[command] = f
		}
		if f.err != nil {
			log.WithField("command", command).Warnf("state fetch failed: %v", f.err)
			v.Outcome = OutcomeParseError
			v.Detail = f.err.Error()
			verdicts = append(verdicts, v)
			continue
		}

		if ent.Kind == model.KindTopologyNeighbor {
			expectedNeighbors = append(expectedNeighbors, ent.Key)
		}

		e.evaluate(&v, ent, f.tree)
		verdicts = append(verdicts, v)
	}

	// A device that declares its topology gets the full neighbor table
	// audited: anything cabled up that no expectation names is a
	// failure, not just missing adjacencies.
	if len(expectedNeighbors) > 0 {
		command := Command(model.KindTopologyNeighbor, family)
		if f, ok := cache[command]; ok && f.err == nil {
			verdicts = append(verdicts, e.unexpectedNeighbors(deviceID, command, f.tree, expectedNeighbors)...)
		}
	}
	return verdicts
}

// unexpectedNeighbors flags CDP table entries whose device ID matches
// none of the declared neighbors. Hostnames compare short-name against
// short-name, case-insensitively, tolerating domain suffixes in either
// direction.
func (e *Engine) unexpectedNeighbors(deviceID, command string, tree statetree.Tree, expected []string) []Verdict {
	names := make([]string, 0, len(expected))
	for _, n := range expected {
		names = append(names, strings.ToLower(n))
	}

	var verdicts []Verdict
	for _, entry := range statetree.TopologyEntries(tree) {
		hostname, _, _ := strings.Cut(strings.ToLower(leafString(entry, "device_id")), ".")
		if hostname == "" {
			continue
		}

		known := false
		for _, want := range names {
			if strings.Contains(hostname, want) || strings.Contains(want, hostname) {
				known = true
				break
			}
		}
		if known {
			continue
		}

		verdicts = append(verdicts, Verdict{
			Device:  deviceID,
			Kind:    model.KindTopologyNeighbor,
			Key:     hostname,
			Command: command,
			Outcome: OutcomeUnexpected,
			Actual:  "present",
			Detail: fmt.Sprintf("unexpected neighbor on %s connecting to %s",
				leafString(entry, "local_interface"), leafString(entry, "port_id")),
		})
	}
	return verdicts
}

// evaluate fills in the verdict's outcome for one entity against its
// command's state tree.
func (e *Engine) evaluate(v *Verdict, ent model.ExpectedEntity, tree statetree.Tree) {
	if ent.Kind.IsCount() {
		e.evaluateCount(v, ent, tree)
		return
	}

	res, err := statetree.Locate(tree, ent.Kind, ent.Key)
	if err != nil {
		v.Outcome = OutcomeParseError
		v.Detail = err.Error()
		return
	}
	if !res.Found {
		v.Outcome = OutcomeNotFound
		v.Expected = ent.ExpectedState
		v.Actual = statetree.StateUnknown
		return
	}

	v.Strategy = res.Strategy
	v.Actual = res.State

	if ent.Kind == model.KindTopologyNeighbor {
		e.evaluateTopology(v, ent, res)
		return
	}

	if as := ent.Attr(expect.AttrPeerAS); as != "" {
		if actual := leafString(res.Leaf, "remote_as"); actual != "" && actual != as {
			v.Outcome = OutcomeStateMismatch
			v.Expected = ent.ExpectedState
			v.Detail = fmt.Sprintf("peer AS %s, expected %s", actual, as)
			return
		}
	}

	// Empty expected state means existence is enough.
	if ent.ExpectedState == "" {
		v.Outcome = OutcomePass
		return
	}

	v.Expected = ent.ExpectedState
	if normalize.State(res.State) == normalize.State(ent.ExpectedState) {
		v.Outcome = OutcomePass
		return
	}
	v.Outcome = OutcomeStateMismatch
}

// evaluateCount handles the count-class kinds. Tunnel and OSPF neighbor
// counts are exact; forwarding entries, label bindings, BGP routes, and
// LDP interfaces are floors.
func (e *Engine) evaluateCount(v *Verdict, ent model.ExpectedEntity, tree statetree.Tree) {
	n := statetree.Count(tree, ent.Kind, ent.Key)
	v.Actual = fmt.Sprintf("%d", n)

	switch ent.Kind {
	case model.KindMPLSTunnelCount, model.KindOSPFNeighborCount:
		v.Expected = fmt.Sprintf("%d", ent.ExpectedCount)
		if n == ent.ExpectedCount {
			v.Outcome = OutcomePass
		} else {
			v.Outcome = OutcomeStateMismatch
		}
	case model.KindMPLSForwardingCount, model.KindLDPBindingCount,
		model.KindBGPRouteCount, model.KindLDPInterfaceCount:
		min := ent.MinCount
		if min <= 0 {
			min = 1
		}
		v.Expected = fmt.Sprintf(">=%d", min)
		if n >= min {
			v.Outcome = OutcomePass
		} else {
			v.Outcome = OutcomeStateMismatch
		}
	default:
		v.Outcome = OutcomeParseError
		v.Detail = fmt.Sprintf("kind %q is not countable", ent.Kind)
	}
}

// evaluateTopology checks the adjacency's interfaces. CDP reports the
// remote side in port_id; both sides compare after interface-name
// normalization so abbreviations never cause false mismatches.
func (e *Engine) evaluateTopology(v *Verdict, ent model.ExpectedEntity, res statetree.Result) {
	wantLocal := ent.Attr(expect.AttrLocalInterface)
	wantRemote := ent.Attr(expect.AttrRemoteInterface)

	gotLocal := leafString(res.Leaf, "local_interface")
	gotRemote := leafString(res.Leaf, "port_id")

	if wantLocal != "" && normalize.InterfaceName(gotLocal) != normalize.InterfaceName(wantLocal) {
		v.Outcome = OutcomeStateMismatch
		v.Expected = wantLocal
		v.Actual = gotLocal
		v.Detail = "local interface mismatch"
		return
	}
	if wantRemote != "" && normalize.InterfaceName(gotRemote) != normalize.InterfaceName(wantRemote) {
		v.Outcome = OutcomeStateMismatch
		v.Expected = wantRemote
		v.Actual = gotRemote
		v.Detail = "remote interface mismatch"
		return
	}
	v.Outcome = OutcomePass
	v.Actual = ""
}

func leafString(leaf map[string]any, field string) string {
	if leaf == nil {
		return ""
	}
	switch val := leaf[field].(type) {
	case string:
		return val
	case int:
		return fmt.Sprintf("%d", val)
	case int64:
		return fmt.Sprintf("%d", val)
	case float64:
		return fmt.Sprintf("%v", val)
	default:
		return ""
	}
}
