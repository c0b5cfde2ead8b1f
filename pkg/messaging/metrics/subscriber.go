// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

// Package metrics instruments broker clients with go-kit metrics.
package metrics

import (
	"context"
	"time"

	"github.com/absmach/rigdash/pkg/errors"
	"github.com/absmach/rigdash/pkg/messaging"
	"github.com/go-kit/kit/metrics"
)

const (
	outcomeFrame = "frame"
	outcomeEmpty = "empty"
	outcomeError = "error"
)

var _ messaging.Subscriber = (*subscriberMiddleware)(nil)

type subscriberMiddleware struct {
	counter metrics.Counter
	latency metrics.Histogram
	sub     messaging.Subscriber
}

// NewSubscriber counts Poll outcomes and measures Connect latency.
// The counter carries "method" and "outcome" labels.
func NewSubscriber(sub messaging.Subscriber, counter metrics.Counter, latency metrics.Histogram) messaging.Subscriber {
	return &subscriberMiddleware{
		counter: counter,
		latency: latency,
		sub:     sub,
	}
}

func (sm *subscriberMiddleware) Connect(ctx context.Context, url string) error {
	defer func(begin time.Time) {
		sm.latency.With("method", "connect").Observe(time.Since(begin).Seconds())
	}(time.Now())

	return sm.sub.Connect(ctx, url)
}

func (sm *subscriberMiddleware) Poll(ctx context.Context) ([]byte, error) {
	frame, err := sm.sub.Poll(ctx)
	outcome := outcomeFrame
	switch {
	case errors.Contains(err, messaging.ErrWouldBlock):
		outcome = outcomeEmpty
	case err != nil:
		outcome = outcomeError
	}
	sm.counter.With("method", "poll", "outcome", outcome).Add(1)

	return frame, err
}

func (sm *subscriberMiddleware) Close() error {
	return sm.sub.Close()
}

var _ messaging.Publisher = (*publisherMiddleware)(nil)

type publisherMiddleware struct {
	counter metrics.Counter
	latency metrics.Histogram
	pub     messaging.Publisher
}

// NewPublisher counts and times Publish calls.
func NewPublisher(pub messaging.Publisher, counter metrics.Counter, latency metrics.Histogram) messaging.Publisher {
	return &publisherMiddleware{
		counter: counter,
		latency: latency,
		pub:     pub,
	}
}

func (pm *publisherMiddleware) Publish(ctx context.Context, topic string, payload []byte) error {
	defer func(begin time.Time) {
		pm.latency.With("method", "publish").Observe(time.Since(begin).Seconds())
	}(time.Now())

	err := pm.pub.Publish(ctx, topic, payload)
	outcome := outcomeFrame
	if err != nil {
		outcome = outcomeError
	}
	pm.counter.With("method", "publish", "outcome", outcome).Add(1)

	return err
}

func (pm *publisherMiddleware) Close() error {
	return pm.pub.Close()
}
