// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"time"

	"github.com/absmach/rigdash/dashboard"
	"github.com/go-kit/kit/metrics"
)

var _ dashboard.Service = (*metricsMiddleware)(nil)

type metricsMiddleware struct {
	counter metrics.Counter
	latency metrics.Histogram
	svc     dashboard.Service
}

// MetricsMiddleware instruments core service by tracking request count and latency.
func MetricsMiddleware(svc dashboard.Service, counter metrics.Counter, latency metrics.Histogram) dashboard.Service {
	return &metricsMiddleware{
		counter: counter,
		latency: latency,
		svc:     svc,
	}
}

func (mm *metricsMiddleware) Handle(ctx context.Context, frame []byte) error {
	defer func(begin time.Time) {
		mm.counter.With("method", "handle").Add(1)
		mm.latency.With("method", "handle").Observe(time.Since(begin).Seconds())
	}(time.Now())

	return mm.svc.Handle(ctx, frame)
}

func (mm *metricsMiddleware) Buffers(ctx context.Context) ([]dashboard.BufferInfo, error) {
	defer func(begin time.Time) {
		mm.counter.With("method", "list_buffers").Add(1)
		mm.latency.With("method", "list_buffers").Observe(time.Since(begin).Seconds())
	}(time.Now())

	return mm.svc.Buffers(ctx)
}

func (mm *metricsMiddleware) Buffer(ctx context.Context, id dashboard.BufferID) ([]float64, error) {
	defer func(begin time.Time) {
		mm.counter.With("method", "view_buffer").Add(1)
		mm.latency.With("method", "view_buffer").Observe(time.Since(begin).Seconds())
	}(time.Now())

	return mm.svc.Buffer(ctx, id)
}

func (mm *metricsMiddleware) Stats(ctx context.Context, id dashboard.BufferID) (dashboard.BufferStats, error) {
	defer func(begin time.Time) {
		mm.counter.With("method", "buffer_stats").Add(1)
		mm.latency.With("method", "buffer_stats").Observe(time.Since(begin).Seconds())
	}(time.Now())

	return mm.svc.Stats(ctx, id)
}

func (mm *metricsMiddleware) ValueAt(ctx context.Context, id dashboard.BufferID, index int) (float64, error) {
	defer func(begin time.Time) {
		mm.counter.With("method", "value_at").Add(1)
		mm.latency.With("method", "value_at").Observe(time.Since(begin).Seconds())
	}(time.Now())

	return mm.svc.ValueAt(ctx, id, index)
}

func (mm *metricsMiddleware) Devices(ctx context.Context) ([]dashboard.DeviceState, error) {
	defer func(begin time.Time) {
		mm.counter.With("method", "list_devices").Add(1)
		mm.latency.With("method", "list_devices").Observe(time.Since(begin).Seconds())
	}(time.Now())

	return mm.svc.Devices(ctx)
}

func (mm *metricsMiddleware) Device(ctx context.Context, name string) (dashboard.DeviceState, error) {
	defer func(begin time.Time) {
		mm.counter.With("method", "view_device").Add(1)
		mm.latency.With("method", "view_device").Observe(time.Since(begin).Seconds())
	}(time.Now())

	return mm.svc.Device(ctx, name)
}

func (mm *metricsMiddleware) Cycle(ctx context.Context) (int, error) {
	defer func(begin time.Time) {
		mm.counter.With("method", "view_cycle").Add(1)
		mm.latency.With("method", "view_cycle").Observe(time.Since(begin).Seconds())
	}(time.Now())

	return mm.svc.Cycle(ctx)
}
