// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

// Package ticker abstracts the fixed-interval clock that paces the poller.
package ticker

import "time"

// Ticker delivers ticks at a fixed interval until stopped.
type Ticker interface {
	Tick() <-chan time.Time
	Stop()
}

type timeTicker struct {
	*time.Ticker
}

// NewTicker returns a Ticker backed by time.Ticker. Non-positive intervals
// fall back to one millisecond.
func NewTicker(d time.Duration) Ticker {
	if d <= 0 {
		d = time.Millisecond
	}
	return &timeTicker{time.NewTicker(d)}
}

func (t *timeTicker) Tick() <-chan time.Time {
	return t.C
}
