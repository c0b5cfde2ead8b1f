// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package dashboard

import "sync/atomic"

// InitialCycle is the cycle shown before the rig reports one.
const InitialCycle = 1

// CycleTracker holds the cycle number reported by the rig. It is only
// ever assigned, never counted locally.
type CycleTracker struct {
	current atomic.Int64
}

// NewCycleTracker returns a tracker at InitialCycle.
func NewCycleTracker() *CycleTracker {
	t := &CycleTracker{}
	t.current.Store(InitialCycle)
	return t
}

// Observe sets the current cycle to the reported value.
func (t *CycleTracker) Observe(reported int) {
	t.current.Store(int64(reported))
}

// Current returns the last reported cycle.
func (t *CycleTracker) Current() int {
	return int(t.current.Load())
}
