package normalize

import "strings"

// abbreviation maps a short interface-name prefix to its canonical
// expansion. The table is ordered longest-prefix-first so that "portch"
// wins over "po" and "eth" is checked before any two-letter prefix;
// within a length, declaration order decides. Lookups always scan the
// slice front to back.
type abbreviation struct {
	short string
	full  string
}

var abbreviations = []abbreviation{
	{"portch", "port-channel"},
	{"eth", "ethernet"},
	{"gi", "gigabitethernet"},
	{"ge", "gigabitethernet"},
	{"fa", "fastethernet"},
	{"fe", "fastethernet"},
	{"te", "tengigabitethernet"},
	{"po", "port-channel"},
	{"lo", "loopback"},
}

// InterfaceName returns the canonical form of an interface name: spaces
// removed, lower-cased, and any known abbreviation prefix expanded when
// the character after the prefix is a digit or '/'. Unrecognized names
// pass through lower-cased and space-stripped.
func InterfaceName(raw string) string {
	if raw == "" {
		return ""
	}

	name := strings.ToLower(strings.ReplaceAll(raw, " ", ""))

	for _, abbr := range abbreviations {
		if !strings.HasPrefix(name, abbr.short) {
			continue
		}
		rest := name[len(abbr.short):]
		if rest == "" {
			continue
		}
		if c := rest[0]; c == '/' || (c >= '0' && c <= '9') {
			return abbr.full + rest
		}
	}

	return name
}
