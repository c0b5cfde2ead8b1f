// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package mocks

import (
	"sync"
	"time"

	"github.com/absmach/rigdash/pkg/ticker"
)

var _ ticker.Ticker = (*Ticker)(nil)

// Ticker is a manually driven ticker.
type Ticker struct {
	mu      sync.Mutex
	c       chan time.Time
	stopped bool
}

// NewTicker returns a ticker that only ticks when Fire is called.
func NewTicker() *Ticker {
	return &Ticker{c: make(chan time.Time)}
}

func (t *Ticker) Tick() <-chan time.Time {
	return t.c
}

func (t *Ticker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopped = true
}

// Fire delivers one tick and blocks until it has been received.
func (t *Ticker) Fire() {
	t.c <- time.Now()
}

// Stopped reports whether Stop was called.
func (t *Ticker) Stopped() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stopped
}
