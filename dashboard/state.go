// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package dashboard

import (
	"sort"
	"sync"
	"time"
)

// DeviceState is a copy of what the core knows about one device.
type DeviceState struct {
	Name     string             `json:"name"`
	Online   bool               `json:"online"`
	LastSeen time.Time          `json:"last_seen"`
	Values   map[string]float64 `json:"values"`
}

// DeviceStateStore keeps the online flag and last-known scalars per device.
// Once a device is online it stays online; nothing in the store clears it.
type DeviceStateStore struct {
	mu      sync.RWMutex
	devices map[string]*DeviceState
	now     func() time.Time
}

// NewDeviceStateStore returns an empty store.
func NewDeviceStateStore() *DeviceStateStore {
	return &DeviceStateStore{
		devices: make(map[string]*DeviceState),
		now:     time.Now,
	}
}

// MarkOnline flags device as online and records the time.
func (s *DeviceStateStore) MarkOnline(device string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d := s.get(device)
	d.Online = true
	d.LastSeen = s.now()
}

// IsOnline reports whether device was ever marked online.
func (s *DeviceStateStore) IsOnline(device string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.devices[device]
	return ok && d.Online
}

// UpdateField overwrites the last-known value of field.
func (s *DeviceStateStore) UpdateField(device, field string, v float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d := s.get(device)
	d.Values[field] = v
	d.LastSeen = s.now()
}

// State returns a copy of the device state.
func (s *DeviceStateStore) State(device string) (DeviceState, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.devices[device]
	if !ok {
		return DeviceState{}, false
	}
	return d.clone(), true
}

// States returns copies of all device states sorted by name.
func (s *DeviceStateStore) States() []DeviceState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	states := make([]DeviceState, 0, len(s.devices))
	for _, d := range s.devices {
		states = append(states, d.clone())
	}
	sort.Slice(states, func(i, j int) bool {
		return states[i].Name < states[j].Name
	})
	return states
}

func (s *DeviceStateStore) get(device string) *DeviceState {
	d, ok := s.devices[device]
	if !ok {
		d = &DeviceState{Name: device, Values: make(map[string]float64)}
		s.devices[device] = d
	}
	return d
}

func (d *DeviceState) clone() DeviceState {
	c := *d
	c.Values = make(map[string]float64, len(d.Values))
	for k, v := range d.Values {
		c.Values[k] = v
	}
	return c
}
