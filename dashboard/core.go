// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package dashboard

// BufferID names a MetricBuffer.
type BufferID string

// Buffers fed by the dispatcher.
const (
	DiSea1PH        BufferID = "di-sea_1.ph"
	DiSea1CO2       BufferID = "di-sea_1.co2"
	DiSea1PSI       BufferID = "di-sea_1.psi"
	DiSea2PH        BufferID = "di-sea_2.ph"
	DiSea2CO2       BufferID = "di-sea_2.co2"
	DiSea2PSI       BufferID = "di-sea_2.psi"
	DoserDosingRate BufferID = "doser.dosing_rate"
)

// BufferIDs returns every buffer id in display order.
func BufferIDs() []BufferID {
	return []BufferID{DiSea1PH, DiSea1CO2, DiSea1PSI, DiSea2PH, DiSea2CO2, DiSea2PSI, DoserDosingRate}
}

// BufferInfo describes a buffer without its samples.
type BufferInfo struct {
	ID  BufferID `json:"id"`
	Len int      `json:"len"`
	Cap int      `json:"cap"`
}

// Core owns all aggregate state: buffers, device states and the cycle.
// One Core lives for the whole process.
type Core struct {
	buffers map[BufferID]*MetricBuffer
	store   *DeviceStateStore
	cycle   *CycleTracker
}

// NewCore creates the buffers with the given capacity.
func NewCore(capacity int) *Core {
	c := &Core{
		buffers: make(map[BufferID]*MetricBuffer),
		store:   NewDeviceStateStore(),
		cycle:   NewCycleTracker(),
	}
	for _, id := range BufferIDs() {
		c.buffers[id] = NewMetricBuffer(capacity)
	}
	return c
}

// Buffer returns the buffer with the given id.
func (c *Core) Buffer(id BufferID) (*MetricBuffer, bool) {
	b, ok := c.buffers[id]
	return b, ok
}

// Store returns the device state store.
func (c *Core) Store() *DeviceStateStore {
	return c.store
}

// Cycle returns the cycle tracker.
func (c *Core) Cycle() *CycleTracker {
	return c.cycle
}
