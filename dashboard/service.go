// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package dashboard

import (
	"context"
	"fmt"

	"github.com/absmach/rigdash/pkg/errors"
)

// Service specifies an API that must be fullfiled by the domain service
// implementation, and all of its decorators (e.g. logging & metrics).
type Service interface {
	// Handle splits, decodes and routes one wire frame. Failures are
	// already reported to the LogSink when returned.
	Handle(ctx context.Context, frame []byte) error

	// Buffers lists the buffers with their current length.
	Buffers(ctx context.Context) ([]BufferInfo, error)

	// Buffer returns a snapshot of the buffer, oldest sample first.
	Buffer(ctx context.Context, id BufferID) ([]float64, error)

	// Stats summarizes the samples the buffer retains.
	Stats(ctx context.Context, id BufferID) (BufferStats, error)

	// ValueAt returns the index-th oldest retained sample of the buffer.
	ValueAt(ctx context.Context, id BufferID, index int) (float64, error)

	// Devices returns all devices that reported, sorted by name.
	Devices(ctx context.Context) ([]DeviceState, error)

	// Device returns the state of one device.
	Device(ctx context.Context, name string) (DeviceState, error)

	// Cycle returns the last cycle reported by the rig.
	Cycle(ctx context.Context) (int, error)
}

var _ Service = (*dashboardService)(nil)

type dashboardService struct {
	core       *Core
	dispatcher *Dispatcher
}

// New instantiates the dashboard service on top of core.
func New(core *Core, dispatcher *Dispatcher) Service {
	return &dashboardService{
		core:       core,
		dispatcher: dispatcher,
	}
}

func (svc *dashboardService) Handle(_ context.Context, frame []byte) error {
	topic, payload, err := Split(frame)
	if err != nil {
		svc.dispatcher.Report(CoreDevice, err)
		return err
	}

	env, err := Decode(topic, payload)
	if err != nil {
		svc.dispatcher.Report(CoreDevice, err)
		return err
	}

	return svc.dispatcher.Route(env)
}

func (svc *dashboardService) Buffers(_ context.Context) ([]BufferInfo, error) {
	infos := []BufferInfo{}
	for _, id := range BufferIDs() {
		b, _ := svc.core.Buffer(id)
		infos = append(infos, BufferInfo{ID: id, Len: b.Len(), Cap: b.Cap()})
	}
	return infos, nil
}

func (svc *dashboardService) Buffer(_ context.Context, id BufferID) ([]float64, error) {
	b, ok := svc.core.Buffer(id)
	if !ok {
		return nil, errors.Wrap(ErrNotFound, fmt.Errorf("buffer %s", id))
	}
	return b.Snapshot(), nil
}

func (svc *dashboardService) Stats(_ context.Context, id BufferID) (BufferStats, error) {
	b, ok := svc.core.Buffer(id)
	if !ok {
		return BufferStats{}, errors.Wrap(ErrNotFound, fmt.Errorf("buffer %s", id))
	}
	return Summarize(id, b.Snapshot()), nil
}

func (svc *dashboardService) ValueAt(_ context.Context, id BufferID, index int) (float64, error) {
	b, ok := svc.core.Buffer(id)
	if !ok {
		return 0, errors.Wrap(ErrNotFound, fmt.Errorf("buffer %s", id))
	}
	v, ok := b.ValueAt(index)
	if !ok {
		return 0, errors.Wrap(ErrIndexOutOfRange, fmt.Errorf("index %d of %d samples", index, b.Len()))
	}
	return v, nil
}

func (svc *dashboardService) Devices(_ context.Context) ([]DeviceState, error) {
	return svc.core.Store().States(), nil
}

func (svc *dashboardService) Device(_ context.Context, name string) (DeviceState, error) {
	st, ok := svc.core.Store().State(name)
	if !ok {
		return DeviceState{}, errors.Wrap(ErrNotFound, fmt.Errorf("device %s", name))
	}
	return st, nil
}

func (svc *dashboardService) Cycle(_ context.Context) (int, error) {
	return svc.core.Cycle().Current(), nil
}
