package statetree

import "strings"

// stepKind tags the traversal step variants. Strategies are data, not
// control flow: supporting a new device OS shape means appending a
// strategy built from these steps, not editing the walker.
type stepKind int

const (
	// stepEach enters the map under key and visits every child value.
	stepEach stepKind = iota
	// stepEachList enters the slice under key and visits every element.
	stepEachList
	// stepMatch enters the map under key ("" = current node) and selects
	// the child whose map key equals the target, optionally falling back
	// to children whose altField equals the target.
	stepMatch
	// stepMatchField enters the container under key (map or slice) and
	// selects children whose named field equals the target.
	stepMatchField
	// stepFilterField enters the map under key and selects children
	// whose named field equals the target, assuming a default value when
	// the field is absent. Used by count shapes.
	stepFilterField
	// stepEachPrefix enters the map under key and visits every child
	// whose map key starts with the given prefix. Used by count shapes
	// over per-address-family containers.
	stepEachPrefix
)

// Step is one level of a container descent.
type Step struct {
	kind     stepKind
	key      string
	field    string
	fallback string // stepFilterField: value assumed when field is absent
	prefix   string // stepEachPrefix: required child-key prefix
}

func each(key string) Step              { return Step{kind: stepEach, key: key} }
func eachList(key string) Step          { return Step{kind: stepEachList, key: key} }
func match(key string) Step             { return Step{kind: stepMatch, key: key} }
func matchBy(key, field string) Step    { return Step{kind: stepMatch, key: key, field: field} }
func matchField(key, field string) Step { return Step{kind: stepMatchField, key: key, field: field} }
func filterField(key, field, fallback string) Step {
	return Step{kind: stepFilterField, key: key, field: field, fallback: fallback}
}
func eachPrefix(key, prefix string) Step { return Step{kind: stepEachPrefix, key: key, prefix: prefix} }

// keyEqual compares an actual identifying key against the target key.
// nil means exact string equality only.
type keyEqual func(actual, target string) bool

// visitFunc receives each node reached after the final step, along with
// the identifying key that matched on the way down. Returning true stops
// the walk.
type visitFunc func(node any, matchedKey string) bool

// walk applies steps depth-first, in sorted-key order at every wildcard
// level, and calls visit for each node the full descent reaches. It
// returns true when visit stopped the walk.
func walk(node any, matched string, steps []Step, target string, eq keyEqual, visit visitFunc) bool {
	if len(steps) == 0 {
		return visit(node, matched)
	}

	step := steps[0]
	rest := steps[1:]

	switch step.kind {
	case stepEach:
		m, ok := asMap(node)
		if !ok {
			return false
		}
		children, ok := asMap(m[step.key])
		if !ok {
			return false
		}
		for _, k := range sortedKeys(children) {
			if walk(children[k], matched, rest, target, eq, visit) {
				return true
			}
		}

	case stepEachPrefix:
		m, ok := asMap(node)
		if !ok {
			return false
		}
		children, ok := asMap(m[step.key])
		if !ok {
			return false
		}
		for _, k := range sortedKeys(children) {
			if !strings.HasPrefix(k, step.prefix) {
				continue
			}
			if walk(children[k], matched, rest, target, eq, visit) {
				return true
			}
		}

	case stepEachList:
		m, ok := asMap(node)
		if !ok {
			return false
		}
		elems, ok := asSlice(m[step.key])
		if !ok {
			return false
		}
		for _, e := range elems {
			if walk(e, matched, rest, target, eq, visit) {
				return true
			}
		}

	case stepMatch:
		container := node
		if step.key != "" {
			m, ok := asMap(node)
			if !ok {
				return false
			}
			container = m[step.key]
		}
		children, ok := asMap(container)
		if !ok {
			return false
		}
		// Exact key match first.
		if child, present := children[target]; present {
			if walk(child, target, rest, target, eq, visit) {
				return true
			}
		}
		// Folded key match (e.g. interface-name normalization).
		if eq != nil {
			for _, k := range sortedKeys(children) {
				if k == target || !eq(k, target) {
					continue
				}
				if walk(children[k], k, rest, target, eq, visit) {
					return true
				}
			}
		}
		// Alternate identifying field on the children.
		if step.field != "" {
			for _, k := range sortedKeys(children) {
				child, ok := asMap(children[k])
				if !ok {
					continue
				}
				if !keysEqual(fieldString(child[step.field]), target, eq) {
					continue
				}
				if walk(child, k, rest, target, eq, visit) {
					return true
				}
			}
		}

	case stepMatchField:
		m, ok := asMap(node)
		if !ok {
			return false
		}
		for _, child := range containerChildren(m[step.key]) {
			cm, ok := asMap(child)
			if !ok {
				continue
			}
			actual := fieldString(cm[step.field])
			if !keysEqual(actual, target, eq) {
				continue
			}
			if walk(cm, actual, rest, target, eq, visit) {
				return true
			}
		}

	case stepFilterField:
		m, ok := asMap(node)
		if !ok {
			return false
		}
		children, ok := asMap(m[step.key])
		if !ok {
			return false
		}
		for _, k := range sortedKeys(children) {
			cm, ok := asMap(children[k])
			if !ok {
				continue
			}
			val := fieldString(cm[step.field])
			if val == "" {
				val = step.fallback
			}
			if val != target {
				continue
			}
			if walk(cm, matched, rest, target, eq, visit) {
				return true
			}
		}
	}

	return false
}

func keysEqual(actual, target string, eq keyEqual) bool {
	if actual == "" {
		return false
	}
	if actual == target {
		return true
	}
	return eq != nil && eq(actual, target)
}

// containerChildren flattens a map's values (sorted by key) or a
// slice's elements into one ordered list.
func containerChildren(v any) []any {
	if m, ok := asMap(v); ok {
		children := make([]any, 0, len(m))
		for _, k := range sortedKeys(m) {
			children = append(children, m[k])
		}
		return children
	}
	if s, ok := asSlice(v); ok {
		return s
	}
	return nil
}
