// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"fmt"
	"time"

	"github.com/absmach/rigdash/dashboard"
	"github.com/absmach/rigdash/logger"
)

var _ dashboard.Service = (*loggingMiddleware)(nil)

type loggingMiddleware struct {
	logger logger.Logger
	svc    dashboard.Service
}

// LoggingMiddleware adds logging facilities to the core service.
func LoggingMiddleware(svc dashboard.Service, logger logger.Logger) dashboard.Service {
	return &loggingMiddleware{
		logger: logger,
		svc:    svc,
	}
}

// Handle runs once per received frame, so success is logged at debug level.
func (lm *loggingMiddleware) Handle(ctx context.Context, frame []byte) (err error) {
	defer func(begin time.Time) {
		message := fmt.Sprintf("Method handle for frame of %d bytes took %s to complete", len(frame), time.Since(begin))
		if err != nil {
			lm.logger.Warn(fmt.Sprintf("%s with error: %s.", message, err))
			return
		}
		lm.logger.Debug(fmt.Sprintf("%s without errors.", message))
	}(time.Now())

	return lm.svc.Handle(ctx, frame)
}

func (lm *loggingMiddleware) Buffers(ctx context.Context) (infos []dashboard.BufferInfo, err error) {
	defer func(begin time.Time) {
		message := fmt.Sprintf("Method list_buffers took %s to complete", time.Since(begin))
		if err != nil {
			lm.logger.Warn(fmt.Sprintf("%s with error: %s.", message, err))
			return
		}
		lm.logger.Info(fmt.Sprintf("%s without errors.", message))
	}(time.Now())

	return lm.svc.Buffers(ctx)
}

func (lm *loggingMiddleware) Buffer(ctx context.Context, id dashboard.BufferID) (samples []float64, err error) {
	defer func(begin time.Time) {
		message := fmt.Sprintf("Method view_buffer for buffer %s took %s to complete", id, time.Since(begin))
		if err != nil {
			lm.logger.Warn(fmt.Sprintf("%s with error: %s.", message, err))
			return
		}
		lm.logger.Info(fmt.Sprintf("%s without errors.", message))
	}(time.Now())

	return lm.svc.Buffer(ctx, id)
}

func (lm *loggingMiddleware) Stats(ctx context.Context, id dashboard.BufferID) (st dashboard.BufferStats, err error) {
	defer func(begin time.Time) {
		message := fmt.Sprintf("Method buffer_stats for buffer %s took %s to complete", id, time.Since(begin))
		if err != nil {
			lm.logger.Warn(fmt.Sprintf("%s with error: %s.", message, err))
			return
		}
		lm.logger.Info(fmt.Sprintf("%s without errors.", message))
	}(time.Now())

	return lm.svc.Stats(ctx, id)
}

func (lm *loggingMiddleware) ValueAt(ctx context.Context, id dashboard.BufferID, index int) (v float64, err error) {
	defer func(begin time.Time) {
		message := fmt.Sprintf("Method value_at for buffer %s and index %d took %s to complete", id, index, time.Since(begin))
		if err != nil {
			lm.logger.Warn(fmt.Sprintf("%s with error: %s.", message, err))
			return
		}
		lm.logger.Info(fmt.Sprintf("%s without errors.", message))
	}(time.Now())

	return lm.svc.ValueAt(ctx, id, index)
}

func (lm *loggingMiddleware) Devices(ctx context.Context) (states []dashboard.DeviceState, err error) {
	defer func(begin time.Time) {
		message := fmt.Sprintf("Method list_devices took %s to complete", time.Since(begin))
		if err != nil {
			lm.logger.Warn(fmt.Sprintf("%s with error: %s.", message, err))
			return
		}
		lm.logger.Info(fmt.Sprintf("%s without errors.", message))
	}(time.Now())

	return lm.svc.Devices(ctx)
}

func (lm *loggingMiddleware) Device(ctx context.Context, name string) (st dashboard.DeviceState, err error) {
	defer func(begin time.Time) {
		message := fmt.Sprintf("Method view_device for device %s took %s to complete", name, time.Since(begin))
		if err != nil {
			lm.logger.Warn(fmt.Sprintf("%s with error: %s.", message, err))
			return
		}
		lm.logger.Info(fmt.Sprintf("%s without errors.", message))
	}(time.Now())

	return lm.svc.Device(ctx, name)
}

func (lm *loggingMiddleware) Cycle(ctx context.Context) (c int, err error) {
	defer func(begin time.Time) {
		message := fmt.Sprintf("Method view_cycle took %s to complete", time.Since(begin))
		if err != nil {
			lm.logger.Warn(fmt.Sprintf("%s with error: %s.", message, err))
			return
		}
		lm.logger.Info(fmt.Sprintf("%s without errors.", message))
	}(time.Now())

	return lm.svc.Cycle(ctx)
}
