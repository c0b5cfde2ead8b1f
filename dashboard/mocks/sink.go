// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package mocks

import (
	"sync"

	"github.com/absmach/rigdash/dashboard"
)

var _ dashboard.Sink = (*Sink)(nil)

// Sample is one recorded PlotSink call.
type Sample struct {
	ID       dashboard.BufferID
	Snapshot []float64
}

// DeviceState is one recorded StatusSink call.
type DeviceState struct {
	Device string
	Online bool
	Values map[string]float64
}

// Sink records every callback it receives.
type Sink struct {
	mu      sync.Mutex
	samples []Sample
	states  []DeviceState
	events  []dashboard.Event
}

// NewSink returns an empty recording sink.
func NewSink() *Sink {
	return &Sink{}
}

func (s *Sink) OnSample(id dashboard.BufferID, snapshot []float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.samples = append(s.samples, Sample{ID: id, Snapshot: snapshot})
}

func (s *Sink) OnDeviceState(device string, online bool, values map[string]float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states = append(s.states, DeviceState{Device: device, Online: online, Values: values})
}

func (s *Sink) OnEvent(ev dashboard.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

func (s *Sink) Samples() []Sample {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Sample{}, s.samples...)
}

func (s *Sink) States() []DeviceState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]DeviceState{}, s.states...)
}

func (s *Sink) Events() []dashboard.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]dashboard.Event{}, s.events...)
}

// EventsAt returns the recorded events with the given level.
func (s *Sink) EventsAt(level string) []dashboard.Event {
	evs := []dashboard.Event{}
	for _, ev := range s.Events() {
		if ev.Level == level {
			evs = append(evs, ev)
		}
	}
	return evs
}

// Reset drops everything recorded so far.
func (s *Sink) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.samples, s.states, s.events = nil, nil, nil
}
