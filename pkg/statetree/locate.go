package statetree

import (
	"fmt"
	"strings"

	"github.com/netcheck-network/netcheck/pkg/model"
	"github.com/netcheck-network/netcheck/pkg/normalize"
	"github.com/netcheck-network/netcheck/pkg/util"
)

// StateUnknown is reported as the actual state when no strategy located
// the entity.
const StateUnknown = "unknown"

// Strategy is one ordered container descent used to locate an entity.
// Strategies for a kind are tried in declaration order; the first whose
// descent completes and whose leaf carries a readable state wins.
type Strategy struct {
	Name string

	// Steps descend from the tree root to the candidate leaf.
	Steps []Step

	// StateKeys are tried in order at the leaf; the first present,
	// non-empty value is returned raw (normalization happens in the
	// engine, not here).
	StateKeys []string

	// ReadState overrides StateKeys for leaves that need interpretation
	// (summary prefix counters, boolean enable flags). Returning false
	// rejects the leaf and lets lower-priority strategies try.
	ReadState func(leaf map[string]any) (string, bool)
}

func (s Strategy) readState(leaf map[string]any) (string, bool) {
	if s.ReadState != nil {
		return s.ReadState(leaf)
	}
	if len(s.StateKeys) == 0 {
		// Existence-only kinds carry no state field.
		return "", true
	}
	for _, key := range s.StateKeys {
		if v := fieldString(leaf[key]); v != "" {
			return v, true
		}
	}
	return "", false
}

// Result is the outcome of a locate call.
type Result struct {
	Found      bool
	State      string // raw state value; StateUnknown when not found
	MatchedKey string // the identifying key that matched in the tree
	Strategy   string // name of the winning strategy
	Leaf       map[string]any
}

// Locate searches tree for the entity identified by key, trying each of
// the kind's strategies in priority order. A strategy that hits a
// missing branch fails silently and the next is tried; when all fail,
// Found is false and State is StateUnknown. A nil tree is a shape
// contract violation and returns util.ErrShapeViolation.
func Locate(tree Tree, kind model.EntityKind, key string) (Result, error) {
	if tree == nil {
		return Result{State: StateUnknown}, util.ErrShapeViolation
	}

	strategies, ok := locateStrategies[kind]
	if !ok {
		return Result{State: StateUnknown}, fmt.Errorf("no traversal strategies declared for kind %q", kind)
	}

	eq := keyEqualFor(kind)
	for _, st := range strategies {
		var res Result
		stopped := walk(tree, "", st.Steps, key, eq, func(node any, matched string) bool {
			leaf, ok := asMap(node)
			if !ok {
				return false
			}
			state, ok := st.readState(leaf)
			if !ok {
				return false
			}
			res = Result{
				Found:      true,
				State:      state,
				MatchedKey: matched,
				Strategy:   st.Name,
				Leaf:       leaf,
			}
			return true
		})
		if stopped {
			return res, nil
		}
	}

	return Result{State: StateUnknown}, nil
}

// keyEqualFor returns the identifying-key comparison for a kind.
// Peer addresses are assumed already canonical and compare exactly;
// interface names compare after normalization; topology neighbor IDs
// compare case-insensitively, tolerating domain suffixes.
func keyEqualFor(kind model.EntityKind) keyEqual {
	switch kind {
	case model.KindMPLSInterface:
		return func(actual, target string) bool {
			return normalize.InterfaceName(actual) == normalize.InterfaceName(target)
		}
	case model.KindTopologyNeighbor:
		return func(actual, target string) bool {
			a := strings.ToLower(actual)
			t := strings.ToLower(target)
			return a == t || strings.Contains(a, t)
		}
	default:
		return nil
	}
}
