// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package tracing_test

import (
	"context"
	"testing"

	"github.com/absmach/rigdash/dashboard"
	"github.com/absmach/rigdash/dashboard/mocks"
	"github.com/absmach/rigdash/dashboard/tracing"
	"github.com/absmach/rigdash/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	tracesdk "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestTracingSpans(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := tracesdk.NewTracerProvider(tracesdk.WithSpanProcessor(sr))
	defer func() {
		require.Nil(t, tp.Shutdown(context.Background()))
	}()

	svc := new(mocks.Service)
	errHandle := errors.New("bad frame")
	svc.On("Handle", mock.Anything, []byte("garbage")).Return(errHandle)
	svc.On("Buffers", mock.Anything).Return([]dashboard.BufferInfo{}, nil)
	svc.On("Buffer", mock.Anything, dashboard.DoserDosingRate).Return([]float64{1}, nil)
	svc.On("Stats", mock.Anything, dashboard.DoserDosingRate).Return(dashboard.BufferStats{}, nil)
	svc.On("ValueAt", mock.Anything, dashboard.DoserDosingRate, 0).Return(1.0, nil)
	svc.On("Devices", mock.Anything).Return([]dashboard.DeviceState{}, nil)
	svc.On("Device", mock.Anything, "doser").Return(dashboard.DeviceState{Name: "doser"}, nil)
	svc.On("Cycle", mock.Anything).Return(3, nil)

	ts := tracing.New(svc, tp.Tracer("dashboard"))
	ctx := context.Background()

	err := ts.Handle(ctx, []byte("garbage"))
	assert.Equal(t, errHandle, err)
	_, _ = ts.Buffers(ctx)
	_, _ = ts.Buffer(ctx, dashboard.DoserDosingRate)
	_, _ = ts.Stats(ctx, dashboard.DoserDosingRate)
	_, _ = ts.ValueAt(ctx, dashboard.DoserDosingRate, 0)
	_, _ = ts.Devices(ctx)
	_, _ = ts.Device(ctx, "doser")
	c, err := ts.Cycle(ctx)
	require.Nil(t, err)
	assert.Equal(t, 3, c)

	spans := sr.Ended()
	names := []string{}
	for _, s := range spans {
		names = append(names, s.Name())
	}
	assert.Equal(t, []string{
		"svc_handle",
		"svc_list_buffers",
		"svc_view_buffer",
		"svc_buffer_stats",
		"svc_value_at",
		"svc_list_devices",
		"svc_view_device",
		"svc_cycle",
	}, names)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, codes.Unset, spans[7].Status().Code)
	svc.AssertExpectations(t)
}
