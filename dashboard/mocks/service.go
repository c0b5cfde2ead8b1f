// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package mocks

import (
	"context"

	"github.com/absmach/rigdash/dashboard"
	"github.com/stretchr/testify/mock"
)

var _ dashboard.Service = (*Service)(nil)

// Service is a testify mock of dashboard.Service.
type Service struct {
	mock.Mock
}

func (m *Service) Handle(ctx context.Context, frame []byte) error {
	ret := m.Called(ctx, frame)
	return ret.Error(0)
}

func (m *Service) Buffers(ctx context.Context) ([]dashboard.BufferInfo, error) {
	ret := m.Called(ctx)
	return ret.Get(0).([]dashboard.BufferInfo), ret.Error(1)
}

func (m *Service) Buffer(ctx context.Context, id dashboard.BufferID) ([]float64, error) {
	ret := m.Called(ctx, id)
	return ret.Get(0).([]float64), ret.Error(1)
}

func (m *Service) Stats(ctx context.Context, id dashboard.BufferID) (dashboard.BufferStats, error) {
	ret := m.Called(ctx, id)
	return ret.Get(0).(dashboard.BufferStats), ret.Error(1)
}

func (m *Service) ValueAt(ctx context.Context, id dashboard.BufferID, index int) (float64, error) {
	ret := m.Called(ctx, id, index)
	return ret.Get(0).(float64), ret.Error(1)
}

func (m *Service) Devices(ctx context.Context) ([]dashboard.DeviceState, error) {
	ret := m.Called(ctx)
	return ret.Get(0).([]dashboard.DeviceState), ret.Error(1)
}

func (m *Service) Device(ctx context.Context, name string) (dashboard.DeviceState, error) {
	ret := m.Called(ctx, name)
	return ret.Get(0).(dashboard.DeviceState), ret.Error(1)
}

func (m *Service) Cycle(ctx context.Context) (int, error) {
	ret := m.Called(ctx)
	return ret.Int(0), ret.Error(1)
}
