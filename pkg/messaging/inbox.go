// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package messaging

import (
	"context"
	"sync/atomic"
	"time"
)

// Inbox hands frames from broker client goroutines to the single poller.
// Delivery never blocks the broker client: when the inbox is full the
// incoming frame is dropped, as a subscriber that is not reading loses
// frames on a fire-and-forget feed.
type Inbox struct {
	frames  chan []byte
	errs    chan error
	timeout time.Duration
	dropped atomic.Uint64
}

// NewInbox returns an inbox buffering up to size frames whose Poll waits
// at most timeout.
func NewInbox(size int, timeout time.Duration) *Inbox {
	if size <= 0 {
		size = DefInboxSize
	}
	return &Inbox{
		frames:  make(chan []byte, size),
		errs:    make(chan error, 1),
		timeout: timeout,
	}
}

// Deliver enqueues a frame and reports whether it was accepted.
func (in *Inbox) Deliver(frame []byte) bool {
	select {
	case in.frames <- frame:
		return true
	default:
		in.dropped.Add(1)
		return false
	}
}

// Fail records an asynchronous transport error for the next Poll.
// Only one error is kept pending; later ones are discarded until it is read.
func (in *Inbox) Fail(err error) {
	if err == nil {
		return
	}
	select {
	case in.errs <- err:
	default:
	}
}

// Poll returns the next frame, a pending transport error, or
// ErrWouldBlock once the timeout elapses.
func (in *Inbox) Poll(ctx context.Context) ([]byte, error) {
	select {
	case err := <-in.errs:
		return nil, err
	default:
	}

	if in.timeout <= 0 {
		select {
		case f := <-in.frames:
			return f, nil
		default:
			return nil, ErrWouldBlock
		}
	}

	timer := time.NewTimer(in.timeout)
	defer timer.Stop()

	select {
	case f := <-in.frames:
		return f, nil
	case err := <-in.errs:
		return nil, err
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timer.C:
		return nil, ErrWouldBlock
	}
}

// Len returns the number of frames waiting.
func (in *Inbox) Len() int {
	return len(in.frames)
}

// Dropped returns how many frames were discarded because the inbox was full.
func (in *Inbox) Dropped() uint64 {
	return in.dropped.Load()
}
