// Package expect holds the expectation registry: the declared network
// intent that reconciliation compares device state against. The
// registry is built from hard-coded defaults and optionally overridden
// per device from a YAML file.
package expect

import (
	"github.com/netcheck-network/netcheck/pkg/model"
)

// ExpectationSet is an ordered collection of expected entities grouped
// by device. Device order follows declaration order so reconciliation
// reports are deterministic run to run.
type ExpectationSet struct {
	devices  []string
	entities map[string][]model.ExpectedEntity
}

// NewExpectationSet returns an empty set.
func NewExpectationSet() *ExpectationSet {
	return &ExpectationSet{entities: make(map[string][]model.ExpectedEntity)}
}

// Add appends an entity to its device, registering the device on first
// sight.
func (s *ExpectationSet) Add(e model.ExpectedEntity) {
	if _, seen := s.entities[e.DeviceID]; !seen {
		s.devices = append(s.devices, e.DeviceID)
	}
	s.entities[e.DeviceID] = append(s.entities[e.DeviceID], e)
}

// Devices returns device IDs in declaration order.
func (s *ExpectationSet) Devices() []string {
	out := make([]string, len(s.devices))
	copy(out, s.devices)
	return out
}

// ForDevice returns the device's entities in declaration order, nil if
// the device has none.
func (s *ExpectationSet) ForDevice(deviceID string) []model.ExpectedEntity {
	return s.entities[deviceID]
}

// Len returns the total entity count across all devices.
func (s *ExpectationSet) Len() int {
	n := 0
	for _, ents := range s.entities {
		n += len(ents)
	}
	return n
}

// ReplaceDevice swaps out a device's entities wholesale. Overrides
// replace, they never merge: an override for a device discards every
// default declared for it. The device keeps (or gains) its position in
// declaration order.
func (s *ExpectationSet) ReplaceDevice(deviceID string, ents []model.ExpectedEntity) {
	if _, seen := s.entities[deviceID]; !seen {
		s.devices = append(s.devices, deviceID)
	}
	s.entities[deviceID] = ents
}
