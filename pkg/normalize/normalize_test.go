package normalize

import "testing"

func TestState(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"", ""},
		{"   ", ""},
		{" Full ", "full"},
		{"Established", "established"},
		{"FULL/DR", "full/dr"},
		{" full/BDr ", "full/bdr"},
		{"full/  -", "full"},
		{"full/-", "full"},
		{"full/", "full"},
		{"full/--", "full"},
		{"Idle", "idle"},
		// zero or multiple separators: returned whole
		{"a/b/c", "a/b/c"},
		{"2WAY", "2way"},
	}

	for _, tt := range tests {
		if got := State(tt.raw); got != tt.want {
			t.Errorf("State(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestState_Idempotent(t *testing.T) {
	inputs := []string{"", " Full ", "FULL/DR", "full/-", "full/", "a/b/c", "Established"}
	for _, raw := range inputs {
		once := State(raw)
		if twice := State(once); twice != once {
			t.Errorf("State not idempotent for %q: %q != %q", raw, once, twice)
		}
	}
}

func TestInterfaceName(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"", ""},
		{"Gi0/1", "gigabitethernet0/1"},
		{"  Te1/1  ", "tengigabitethernet1/1"},
		{"Ge0/0/0", "gigabitethernet0/0/0"},
		{"Fa0/24", "fastethernet0/24"},
		{"Fe1/0", "fastethernet1/0"},
		{"Eth0", "ethernet0"},
		{"Po10", "port-channel10"},
		{"PortCh5", "port-channel5"},
		{"Lo0", "loopback0"},
		{"GigabitEthernet 0/1", "gigabitethernet0/1"},
		// unrecognized prefixes pass through lower-cased, space-stripped
		{"Serial0/0", "serial0/0"},
		{"Tunnel100", "tunnel100"},
		// abbreviation not followed by digit or '/': no expansion
		{"gear", "gear"},
		{"local", "local"},
	}

	for _, tt := range tests {
		if got := InterfaceName(tt.raw); got != tt.want {
			t.Errorf("InterfaceName(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

// "portch" must win over "po", and "eth" must not shadow longer names:
// the table is scanned longest-prefix-first.
func TestInterfaceName_PrefixPriority(t *testing.T) {
	if got := InterfaceName("PortCh1"); got != "port-channel1" {
		t.Errorf("PortCh1 = %q, want port-channel1", got)
	}
	if got := InterfaceName("Po1"); got != "port-channel1" {
		t.Errorf("Po1 = %q, want port-channel1", got)
	}
}

func TestInterfaceName_Idempotent(t *testing.T) {
	inputs := []string{"Gi0/1", "Te1/1", "Eth0", "PortCh5", "GigabitEthernet0/1", "Serial0/0", ""}
	for _, raw := range inputs {
		once := InterfaceName(raw)
		if twice := InterfaceName(once); twice != once {
			t.Errorf("InterfaceName not idempotent for %q: %q != %q", raw, once, twice)
		}
	}
}
