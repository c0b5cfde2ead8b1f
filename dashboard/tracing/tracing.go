// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

// Package tracing adds OpenTelemetry spans to the dashboard service.
package tracing

import (
	"context"

	"github.com/absmach/rigdash/dashboard"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var _ dashboard.Service = (*tracingMiddleware)(nil)

type tracingMiddleware struct {
	tracer trace.Tracer
	svc    dashboard.Service
}

// New returns a new dashboard service with tracing capabilities.
func New(svc dashboard.Service, tracer trace.Tracer) dashboard.Service {
	return &tracingMiddleware{tracer, svc}
}

// Handle traces the "Handle" operation of the wrapped dashboard.Service.
func (tm *tracingMiddleware) Handle(ctx context.Context, frame []byte) error {
	ctx, span := tm.tracer.Start(ctx, "svc_handle", trace.WithAttributes(attribute.Int("frame_size", len(frame))))
	defer span.End()

	err := tm.svc.Handle(ctx, frame)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

// Buffers traces the "Buffers" operation of the wrapped dashboard.Service.
func (tm *tracingMiddleware) Buffers(ctx context.Context) ([]dashboard.BufferInfo, error) {
	ctx, span := tm.tracer.Start(ctx, "svc_list_buffers")
	defer span.End()

	return tm.svc.Buffers(ctx)
}

// Buffer traces the "Buffer" operation of the wrapped dashboard.Service.
func (tm *tracingMiddleware) Buffer(ctx context.Context, id dashboard.BufferID) ([]float64, error) {
	ctx, span := tm.tracer.Start(ctx, "svc_view_buffer", trace.WithAttributes(attribute.String("id", string(id))))
	defer span.End()

	return tm.svc.Buffer(ctx, id)
}

// Stats traces the "Stats" operation of the wrapped dashboard.Service.
func (tm *tracingMiddleware) Stats(ctx context.Context, id dashboard.BufferID) (dashboard.BufferStats, error) {
	ctx, span := tm.tracer.Start(ctx, "svc_buffer_stats", trace.WithAttributes(attribute.String("id", string(id))))
	defer span.End()

	return tm.svc.Stats(ctx, id)
}

// ValueAt traces the "ValueAt" operation of the wrapped dashboard.Service.
func (tm *tracingMiddleware) ValueAt(ctx context.Context, id dashboard.BufferID, index int) (float64, error) {
	ctx, span := tm.tracer.Start(ctx, "svc_value_at", trace.WithAttributes(
		attribute.String("id", string(id)),
		attribute.Int("index", index),
	))
	defer span.End()

	return tm.svc.ValueAt(ctx, id, index)
}

// Devices traces the "Devices" operation of the wrapped dashboard.Service.
func (tm *tracingMiddleware) Devices(ctx context.Context) ([]dashboard.DeviceState, error) {
	ctx, span := tm.tracer.Start(ctx, "svc_list_devices")
	defer span.End()

	return tm.svc.Devices(ctx)
}

// Device traces the "Device" operation of the wrapped dashboard.Service.
func (tm *tracingMiddleware) Device(ctx context.Context, name string) (dashboard.DeviceState, error) {
	ctx, span := tm.tracer.Start(ctx, "svc_view_device", trace.WithAttributes(attribute.String("name", name)))
	defer span.End()

	return tm.svc.Device(ctx, name)
}

// Cycle traces the "Cycle" operation of the wrapped dashboard.Service.
func (tm *tracingMiddleware) Cycle(ctx context.Context) (int, error) {
	ctx, span := tm.tracer.Start(ctx, "svc_cycle")
	defer span.End()

	return tm.svc.Cycle(ctx)
}
