// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package dashboard_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/absmach/rigdash/dashboard"
	"github.com/absmach/rigdash/dashboard/mocks"
	"github.com/absmach/rigdash/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService() (dashboard.Service, *dashboard.Core, *mocks.Sink) {
	core, d, sink := newDispatcher()
	return dashboard.New(core, d), core, sink
}

func TestHandle(t *testing.T) {
	cases := []struct {
		desc   string
		frame  string
		err    error
		errors int
	}{
		{desc: "reactor frame", frame: `data|{"device_name":"reactor","data":{"flow":42.5}}`},
		{desc: "logs frame", frame: `logs|{"logger":"rig","level":"INFO","message":"ok"}`},
		{desc: "invalid json", frame: `data|{not valid json`, err: dashboard.ErrDecode, errors: 1},
		{desc: "missing delimiter", frame: `data{"device_name":"reactor"}`, err: dashboard.ErrFrameFormat, errors: 1},
		{desc: "dispatch failure", frame: `data|{"device_name":"doser","data":{"dosing_rate":"x"}}`, err: dashboard.ErrDispatch, errors: 1},
	}

	for _, tc := range cases {
		svc, _, sink := newService()
		err := svc.Handle(context.Background(), []byte(tc.frame))
		assert.True(t, errors.Contains(err, tc.err), fmt.Sprintf("%s: expected %v got %v", tc.desc, tc.err, err))
		assert.Len(t, sink.EventsAt(dashboard.LevelError), tc.errors, tc.desc)
	}
}

func TestHandleReactorScenario(t *testing.T) {
	svc, core, sink := newService()

	err := svc.Handle(context.Background(), []byte(`data|{"device_name":"reactor","data":{"flow":42.5}}`))
	require.Nil(t, err)

	st, err := svc.Device(context.Background(), dashboard.DeviceReactor)
	require.Nil(t, err)
	assert.Equal(t, 42.5, st.Values["flow"])
	assert.True(t, st.Online)
	assert.Len(t, sink.States(), 1)
	for _, id := range dashboard.BufferIDs() {
		b, _ := core.Buffer(id)
		assert.Zero(t, b.Len(), string(id))
	}
}

func TestHandleInvalidFramesLeaveState(t *testing.T) {
	svc, core, sink := newService()
	require.Nil(t, svc.Handle(context.Background(), []byte(`data|{"device_name":"doser","data":{"dosing_rate":3}}`)))
	sink.Reset()

	for _, frame := range []string{`data|{not valid json`, `no delimiter here`, `data|[`} {
		err := svc.Handle(context.Background(), []byte(frame))
		assert.NotNil(t, err, frame)
	}

	assert.Empty(t, sink.Samples())
	assert.Empty(t, sink.States())
	assert.Len(t, sink.EventsAt(dashboard.LevelError), 3)
	states := core.Store().States()
	require.Len(t, states, 1)
	assert.Equal(t, dashboard.DeviceDoser, states[0].Name)
	b, _ := core.Buffer(dashboard.DoserDosingRate)
	assert.Equal(t, []float64{3}, b.Snapshot())
}

func TestBuffers(t *testing.T) {
	svc, _, _ := newService()
	require.Nil(t, svc.Handle(context.Background(), []byte(`data|{"device_name":"doser","data":{"dosing_rate":3}}`)))

	infos, err := svc.Buffers(context.Background())
	require.Nil(t, err)
	require.Len(t, infos, len(dashboard.BufferIDs()))
	for _, info := range infos {
		want := 0
		if info.ID == dashboard.DoserDosingRate {
			want = 1
		}
		assert.Equal(t, want, info.Len, string(info.ID))
		assert.Equal(t, testCapacity, info.Cap, string(info.ID))
	}
}

func TestBufferAndValueAt(t *testing.T) {
	svc, _, _ := newService()
	for _, rate := range []int{1, 2, 3, 4, 5, 6, 7} {
		frame := fmt.Sprintf(`data|{"device_name":"doser","data":{"dosing_rate":%d}}`, rate)
		require.Nil(t, svc.Handle(context.Background(), []byte(frame)))
	}

	snap, err := svc.Buffer(context.Background(), dashboard.DoserDosingRate)
	require.Nil(t, err)
	assert.Equal(t, []float64{3, 4, 5, 6, 7}, snap)

	_, err = svc.Buffer(context.Background(), "doser.flow")
	assert.True(t, errors.Contains(err, dashboard.ErrNotFound), fmt.Sprintf("expected %s got %v", dashboard.ErrNotFound, err))

	cases := []struct {
		desc  string
		id    dashboard.BufferID
		index int
		value float64
		err   error
	}{
		{desc: "oldest sample", id: dashboard.DoserDosingRate, index: 0, value: 3},
		{desc: "newest sample", id: dashboard.DoserDosingRate, index: 4, value: 7},
		{desc: "index out of range", id: dashboard.DoserDosingRate, index: 5, err: dashboard.ErrIndexOutOfRange},
		{desc: "empty buffer", id: dashboard.DiSea1PH, index: 0, err: dashboard.ErrIndexOutOfRange},
		{desc: "unknown buffer", id: "unknown", index: 0, err: dashboard.ErrNotFound},
	}

	for _, tc := range cases {
		v, err := svc.ValueAt(context.Background(), tc.id, tc.index)
		assert.True(t, errors.Contains(err, tc.err), fmt.Sprintf("%s: expected %v got %v", tc.desc, tc.err, err))
		assert.Equal(t, tc.value, v, tc.desc)
	}
}

func TestStats(t *testing.T) {
	svc, _, _ := newService()
	for _, rate := range []int{1, 2, 3, 4, 5, 6, 7} {
		frame := fmt.Sprintf(`data|{"device_name":"doser","data":{"dosing_rate":%d}}`, rate)
		require.Nil(t, svc.Handle(context.Background(), []byte(frame)))
	}

	st, err := svc.Stats(context.Background(), dashboard.DoserDosingRate)
	require.Nil(t, err)
	assert.Equal(t, 5, st.Count)
	assert.Equal(t, 3.0, st.Min)
	assert.Equal(t, 7.0, st.Max)
	assert.InDelta(t, 5.0, st.Mean, 1e-9)

	_, err = svc.Stats(context.Background(), "unknown")
	assert.True(t, errors.Contains(err, dashboard.ErrNotFound), fmt.Sprintf("expected %s got %v", dashboard.ErrNotFound, err))
}

func TestDevicesAndCycle(t *testing.T) {
	svc, _, _ := newService()

	devices, err := svc.Devices(context.Background())
	require.Nil(t, err)
	assert.Empty(t, devices)

	_, err = svc.Device(context.Background(), dashboard.DeviceDiSea)
	assert.True(t, errors.Contains(err, dashboard.ErrNotFound), fmt.Sprintf("expected %s got %v", dashboard.ErrNotFound, err))

	cycle, err := svc.Cycle(context.Background())
	require.Nil(t, err)
	assert.Equal(t, dashboard.InitialCycle, cycle)

	frame := `data|{"device_name":"di-sea","data":{"di-sea_1":{"ph":7,"cycle":12},"di-sea_2":{"ph":6.5}}}`
	require.Nil(t, svc.Handle(context.Background(), []byte(frame)))
	require.Nil(t, svc.Handle(context.Background(), []byte(`data|{"device_name":"battery","data":{"soc":150}}`)))

	devices, err = svc.Devices(context.Background())
	require.Nil(t, err)
	require.Len(t, devices, 2)
	assert.Equal(t, dashboard.DeviceBattery, devices[0].Name)
	assert.Equal(t, dashboard.DeviceDiSea, devices[1].Name)

	cycle, err = svc.Cycle(context.Background())
	require.Nil(t, err)
	assert.Equal(t, 12, cycle)
}
