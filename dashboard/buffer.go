// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package dashboard

import "sync"

// DefBufferCapacity is the number of samples a chart window retains.
const DefBufferCapacity = 60

// MetricBuffer is a fixed-capacity rolling window of samples. Index 0 is
// the oldest retained sample; indices shift as samples are evicted.
type MetricBuffer struct {
	mu      sync.RWMutex
	samples []float64
	head    int
	size    int
}

// NewMetricBuffer returns an empty buffer. Non-positive capacity falls back
// to DefBufferCapacity.
func NewMetricBuffer(capacity int) *MetricBuffer {
	if capacity <= 0 {
		capacity = DefBufferCapacity
	}
	return &MetricBuffer{samples: make([]float64, capacity)}
}

// Push appends v, evicting the oldest sample when full.
func (b *MetricBuffer) Push(v float64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.size < len(b.samples) {
		b.samples[(b.head+b.size)%len(b.samples)] = v
		b.size++
		return
	}
	b.samples[b.head] = v
	b.head = (b.head + 1) % len(b.samples)
}

// Snapshot returns a copy of the retained samples, oldest first.
func (b *MetricBuffer) Snapshot() []float64 {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]float64, b.size)
	for i := range out {
		out[i] = b.samples[(b.head+i)%len(b.samples)]
	}
	return out
}

// ValueAt returns the i-th oldest retained sample.
func (b *MetricBuffer) ValueAt(i int) (float64, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if i < 0 || i >= b.size {
		return 0, false
	}
	return b.samples[(b.head+i)%len(b.samples)], true
}

// Len returns the number of retained samples.
func (b *MetricBuffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.size
}

// Cap returns the buffer capacity.
func (b *MetricBuffer) Cap() int {
	return len(b.samples)
}
