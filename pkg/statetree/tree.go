// Package statetree locates and counts entities inside the variably
// shaped nested structures produced by device command parsers.
//
// Different OS families (and versions within a family) report the same
// protocol state under differently shaped trees. Rather than unify the
// shapes into one model, this package declares an ordered list of
// traversal strategies per entity kind and tries them in priority order;
// the first strategy whose descent completes wins. A missing branch
// fails a strategy silently; only a tree that is not a container at all
// is a hard error.
package statetree

import (
	"sort"
	"strconv"
	"strings"
)

// Tree is one device command's parsed output: string keys over nested
// maps, slices, and primitive leaves. Trees are read-only here.
type Tree = map[string]any

func asMap(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

func asSlice(v any) ([]any, bool) {
	s, ok := v.([]any)
	return s, ok
}

// sortedKeys returns map keys in sorted order. Map iteration order is
// randomized in Go; traversal must be deterministic so that the same
// tree always yields the same match.
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// fieldString renders a primitive leaf value as a string. Parsed trees
// carry strings, but YAML/JSON decoding turns unquoted numerics into
// ints or floats.
func fieldString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case bool:
		if t {
			return "true"
		}
		return "false"
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return ""
	}
}

// truthy interprets a leaf as a boolean flag the way loosely typed
// parser output expects: absent, empty, "false", "no", "0", and
// "disabled" are false, everything else is true.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case int:
		return t != 0
	case int64:
		return t != 0
	case float64:
		return t != 0
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "", "false", "no", "0", "disabled":
			return false
		}
		return true
	default:
		return false
	}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
