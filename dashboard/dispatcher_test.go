// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package dashboard_test

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/absmach/rigdash/dashboard"
	"github.com/absmach/rigdash/dashboard/mocks"
	"github.com/absmach/rigdash/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCapacity = 5

func newDispatcher() (*dashboard.Core, *dashboard.Dispatcher, *mocks.Sink) {
	core := dashboard.NewCore(testCapacity)
	sink := mocks.NewSink()
	return core, dashboard.NewDispatcher(core, sink), sink
}

func dataEnvelope(device, data string) dashboard.Envelope {
	env := dashboard.Envelope{Topic: dashboard.TopicData, DeviceName: device, Timestamp: "10:00:00"}
	if data != "" {
		env.Data = json.RawMessage(data)
	}
	return env
}

func snapshot(t *testing.T, core *dashboard.Core, id dashboard.BufferID) []float64 {
	b, ok := core.Buffer(id)
	require.True(t, ok, fmt.Sprintf("buffer %s missing", id))
	return b.Snapshot()
}

func TestRouteDiSea(t *testing.T) {
	core, d, sink := newDispatcher()

	err := d.Route(dataEnvelope("di-sea", `{
		"di-sea_1":{"ph":7.1,"co2":410,"psi":14.7,"temp":21.5,"air_temp":23.25,"cycle":3},
		"di-sea_2":{"ph":6.8,"co2":395,"psi":15.1,"temp":20,"air_temp":22,"cycle":9}}`))
	require.Nil(t, err)

	assert.Equal(t, []float64{7.1}, snapshot(t, core, dashboard.DiSea1PH))
	assert.Equal(t, []float64{410}, snapshot(t, core, dashboard.DiSea1CO2))
	assert.Equal(t, []float64{14.7}, snapshot(t, core, dashboard.DiSea1PSI))
	assert.Equal(t, []float64{6.8}, snapshot(t, core, dashboard.DiSea2PH))
	assert.Equal(t, []float64{395}, snapshot(t, core, dashboard.DiSea2CO2))
	assert.Equal(t, []float64{15.1}, snapshot(t, core, dashboard.DiSea2PSI))
	assert.Empty(t, snapshot(t, core, dashboard.DoserDosingRate))

	assert.Equal(t, 3, core.Cycle().Current(), "cycle follows di-sea_1 only")
	assert.True(t, core.Store().IsOnline(dashboard.DeviceDiSea))

	st, ok := core.Store().State(dashboard.DeviceDiSea)
	require.True(t, ok)
	assert.Equal(t, map[string]float64{
		"di-sea_1.air_temp": 23.25,
		"di-sea_1.temp":     21.5,
		"di-sea_1.psi":      14.7,
		"di-sea_2.air_temp": 22,
		"di-sea_2.temp":     20,
		"di-sea_2.psi":      15.1,
	}, st.Values)

	assert.Len(t, sink.Samples(), 6)
	states := sink.States()
	require.Len(t, states, 1)
	assert.Equal(t, dashboard.DeviceDiSea, states[0].Device)
	assert.True(t, states[0].Online)

	events := sink.Events()
	require.Len(t, events, 1)
	assert.Equal(t, dashboard.Event{
		Timestamp: "10:00:00",
		Topic:     dashboard.TopicData,
		Device:    dashboard.DeviceDiSea,
		Level:     dashboard.LevelInfo,
		Text:      "d1 T=21.50°C psi=14.70 | d2 T=20.00°C psi=15.10",
	}, events[0])
}

func TestRouteDiSeaMissingUnit(t *testing.T) {
	core, d, sink := newDispatcher()
	core.Cycle().Observe(4)

	err := d.Route(dataEnvelope("di-sea", `{"di-sea_1":{"ph":7.2,"co2":400,"psi":14,"temp":19,"air_temp":21}}`))
	assert.True(t, errors.Contains(err, dashboard.ErrDispatch), fmt.Sprintf("expected %s got %v", dashboard.ErrDispatch, err))

	assert.Equal(t, []float64{7.2}, snapshot(t, core, dashboard.DiSea1PH))
	assert.Equal(t, []float64{400}, snapshot(t, core, dashboard.DiSea1CO2))
	assert.Equal(t, []float64{14}, snapshot(t, core, dashboard.DiSea1PSI))
	assert.Empty(t, snapshot(t, core, dashboard.DiSea2PH))
	assert.Empty(t, snapshot(t, core, dashboard.DiSea2CO2))
	assert.Empty(t, snapshot(t, core, dashboard.DiSea2PSI))

	st, _ := core.Store().State(dashboard.DeviceDiSea)
	assert.Equal(t, float64(19), st.Values["di-sea_1.temp"])
	_, ok := st.Values["di-sea_2.temp"]
	assert.False(t, ok)
	assert.Equal(t, 4, core.Cycle().Current(), "absent cycle leaves the tracker unchanged")
	assert.True(t, core.Store().IsOnline(dashboard.DeviceDiSea))

	errs := sink.EventsAt(dashboard.LevelError)
	require.Len(t, errs, 1)
	assert.Equal(t, dashboard.TopicErr, errs[0].Topic)
	assert.Equal(t, dashboard.DeviceDiSea, errs[0].Device)
	assert.Contains(t, errs[0].Text, dashboard.UnitDiSea2)
}

func TestRouteDiSeaPartialDecode(t *testing.T) {
	cases := []struct {
		desc   string
		data   string
		ph1    []float64
		ph2    []float64
		cycle  int
		failed string
	}{
		{
			desc:   "second unit has a non-numeric field",
			data:   `{"di-sea_1":{"ph":7.1,"co2":410,"psi":14.7,"temp":21.5,"air_temp":23,"cycle":4},"di-sea_2":{"ph":"bad"}}`,
			ph1:    []float64{7.1},
			ph2:    []float64{},
			cycle:  4,
			failed: dashboard.UnitDiSea2,
		},
		{
			desc:   "first unit has a fractional cycle",
			data:   `{"di-sea_1":{"ph":7.1,"cycle":4.5},"di-sea_2":{"ph":6.8}}`,
			ph1:    []float64{},
			ph2:    []float64{6.8},
			cycle:  dashboard.InitialCycle,
			failed: dashboard.UnitDiSea1,
		},
		{
			desc:   "first unit has a cycle beyond int range",
			data:   `{"di-sea_1":{"cycle":1e20},"di-sea_2":{}}`,
			ph1:    []float64{},
			ph2:    []float64{0},
			cycle:  dashboard.InitialCycle,
			failed: dashboard.UnitDiSea1,
		},
		{
			desc:   "first unit has a cycle below int range",
			data:   `{"di-sea_1":{"cycle":-1e20},"di-sea_2":{}}`,
			ph1:    []float64{},
			ph2:    []float64{0},
			cycle:  dashboard.InitialCycle,
			failed: dashboard.UnitDiSea1,
		},
	}

	for _, tc := range cases {
		core, d, sink := newDispatcher()

		err := d.Route(dataEnvelope("di-sea", tc.data))
		assert.True(t, errors.Contains(err, dashboard.ErrDispatch), fmt.Sprintf("%s: expected %s got %v", tc.desc, dashboard.ErrDispatch, err))

		assert.Equal(t, tc.ph1, snapshot(t, core, dashboard.DiSea1PH), tc.desc)
		assert.Equal(t, tc.ph2, snapshot(t, core, dashboard.DiSea2PH), tc.desc)
		assert.Equal(t, tc.cycle, core.Cycle().Current(), tc.desc)
		assert.True(t, core.Store().IsOnline(dashboard.DeviceDiSea), tc.desc)

		errs := sink.EventsAt(dashboard.LevelError)
		require.Len(t, errs, 1, tc.desc)
		assert.Contains(t, errs[0].Text, tc.failed, tc.desc)
	}
}

func TestRouteDoser(t *testing.T) {
	core, d, sink := newDispatcher()

	for i, rate := range []string{"1.5", `"2.5"`, "null"} {
		err := d.Route(dataEnvelope("doser", fmt.Sprintf(`{"dosing_rate":%s}`, rate)))
		require.Nil(t, err, fmt.Sprintf("push %d", i))
	}

	assert.Equal(t, []float64{1.5, 2.5, 0}, snapshot(t, core, dashboard.DoserDosingRate))
	assert.True(t, core.Store().IsOnline(dashboard.DeviceDoser))

	samples := sink.Samples()
	require.Len(t, samples, 3)
	assert.Equal(t, dashboard.DoserDosingRate, samples[2].ID)
	assert.Equal(t, []float64{1.5, 2.5, 0}, samples[2].Snapshot)
	assert.Equal(t, "rate=1.50", sink.Events()[0].Text)
}

func TestRouteReactor(t *testing.T) {
	core, d, sink := newDispatcher()

	err := d.Route(dataEnvelope("reactor", `{"flow":42.5}`))
	require.Nil(t, err)

	st, ok := core.Store().State(dashboard.DeviceReactor)
	require.True(t, ok)
	assert.Equal(t, 42.5, st.Values["flow"])
	assert.True(t, st.Online)
	assert.Empty(t, sink.Samples(), "reactor has no buffer")
	for _, id := range dashboard.BufferIDs() {
		assert.Empty(t, snapshot(t, core, id), string(id))
	}

	states := sink.States()
	require.Len(t, states, 1)
	assert.Equal(t, dashboard.DeviceReactor, states[0].Device)
	assert.Equal(t, "flow=42 L/min", sink.Events()[0].Text)
}

func TestRouteBatteryClamp(t *testing.T) {
	cases := []struct {
		desc string
		soc  string
		want float64
	}{
		{desc: "above range", soc: "150", want: 100},
		{desc: "below range", soc: "-5", want: 0},
		{desc: "in range", soc: "63.5", want: 63.5},
		{desc: "upper bound", soc: "100", want: 100},
		{desc: "numeric string", soc: `"101"`, want: 100},
	}

	for _, tc := range cases {
		core, d, _ := newDispatcher()
		err := d.Route(dataEnvelope("battery", fmt.Sprintf(`{"soc":%s}`, tc.soc)))
		require.Nil(t, err, tc.desc)

		st, ok := core.Store().State(dashboard.DeviceBattery)
		require.True(t, ok, tc.desc)
		assert.Equal(t, tc.want, st.Values["soc"], tc.desc)
		assert.False(t, core.Store().IsOnline(dashboard.DeviceBattery), tc.desc)
	}
}

func TestRouteVEDirect(t *testing.T) {
	core, d, sink := newDispatcher()

	err := d.Route(dataEnvelope("ve_direct", `{"yield_total":1234.5}`))
	require.Nil(t, err)

	st, ok := core.Store().State(dashboard.DeviceVEDirect)
	require.True(t, ok)
	assert.Equal(t, 1234.5, st.Values["yield_total"])
	assert.False(t, st.Online)
	assert.Equal(t, "yield_total=1234.50", sink.Events()[0].Text)
}

func TestRouteUnknownDevice(t *testing.T) {
	core, d, sink := newDispatcher()

	err := d.Route(dataEnvelope("pump", `{"rpm":900}`))
	require.Nil(t, err)

	assert.Empty(t, core.Store().States())
	assert.Empty(t, sink.Samples())
	assert.Empty(t, sink.States())
	events := sink.Events()
	require.Len(t, events, 1)
	assert.Equal(t, "pump", events[0].Device)
	assert.Contains(t, events[0].Text, `{"rpm":900}`)
}

func TestRouteLogs(t *testing.T) {
	core, d, sink := newDispatcher()

	err := d.Route(dashboard.Envelope{
		Topic:     dashboard.TopicLogs,
		Timestamp: "2024-05-01 10:00:00,123",
		Log:       dashboard.LogRecord{Logger: "doser", Level: "WARNING", Message: "tank | low"},
	})
	require.Nil(t, err)

	assert.Equal(t, []dashboard.Event{{
		Timestamp: "2024-05-01 10:00:00,123",
		Topic:     dashboard.TopicLogs,
		Device:    "doser",
		Level:     "WARNING",
		Text:      "tank | low",
	}}, sink.Events())
	assert.Empty(t, core.Store().States())
	assert.Empty(t, sink.Samples())
}

func TestRouteUnknownTopic(t *testing.T) {
	core, d, sink := newDispatcher()

	err := d.Route(dashboard.Envelope{Topic: "heartbeat", DeviceName: "doser"})
	require.Nil(t, err)

	assert.Empty(t, core.Store().States())
	events := sink.Events()
	require.Len(t, events, 1)
	assert.Equal(t, dashboard.LevelDebug, events[0].Level)
	assert.NotEmpty(t, events[0].Timestamp)
}

func TestRouteConversionFailure(t *testing.T) {
	core, d, sink := newDispatcher()
	require.Nil(t, d.Route(dataEnvelope("doser", `{"dosing_rate":1}`)))

	err := d.Route(dataEnvelope("doser", `{"dosing_rate":"fast"}`))
	assert.True(t, errors.Contains(err, dashboard.ErrDispatch), fmt.Sprintf("expected %s got %v", dashboard.ErrDispatch, err))
	assert.Equal(t, []float64{1}, snapshot(t, core, dashboard.DoserDosingRate))

	errs := sink.EventsAt(dashboard.LevelError)
	require.Len(t, errs, 1)
	assert.Equal(t, dashboard.TopicErr, errs[0].Topic)
	assert.Equal(t, "exception", errs[0].MsgType)
}

type panickingSink struct {
	*mocks.Sink
}

func (panickingSink) OnSample(dashboard.BufferID, []float64) {
	panic("display gone")
}

func TestRouteRecoversPanics(t *testing.T) {
	core := dashboard.NewCore(testCapacity)
	sink := panickingSink{mocks.NewSink()}
	d := dashboard.NewDispatcher(core, sink)

	var err error
	assert.NotPanics(t, func() {
		err = d.Route(dataEnvelope("doser", `{"dosing_rate":2}`))
	})
	assert.True(t, errors.Contains(err, dashboard.ErrDispatch), fmt.Sprintf("expected %s got %v", dashboard.ErrDispatch, err))

	errs := sink.EventsAt(dashboard.LevelError)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Text, "display gone")
}

func TestRouteOnlineIsolation(t *testing.T) {
	core, d, _ := newDispatcher()

	require.Nil(t, d.Route(dataEnvelope("doser", `{"dosing_rate":1}`)))
	assert.False(t, core.Store().IsOnline(dashboard.DeviceReactor))
	assert.False(t, core.Store().IsOnline(dashboard.DeviceDiSea))

	require.Nil(t, d.Route(dataEnvelope("reactor", `{"flow":1}`)))
	_ = d.Route(dataEnvelope("doser", `{"dosing_rate":"bad"}`))
	assert.True(t, core.Store().IsOnline(dashboard.DeviceDoser))
	assert.True(t, core.Store().IsOnline(dashboard.DeviceReactor))
	assert.False(t, core.Store().IsOnline(dashboard.DeviceDiSea))
}

func TestRouteCycleLastValueWins(t *testing.T) {
	core, d, _ := newDispatcher()

	for _, c := range []int{5, 2, 11} {
		err := d.Route(dataEnvelope("di-sea", fmt.Sprintf(`{"di-sea_1":{"cycle":%d},"di-sea_2":{}}`, c)))
		require.Nil(t, err)
		assert.Equal(t, c, core.Cycle().Current())
	}
}

func TestSummaryTimestampFallback(t *testing.T) {
	_, d, sink := newDispatcher()

	env := dataEnvelope("reactor", `{"flow":1}`)
	env.Timestamp = ""
	require.Nil(t, d.Route(env))

	ts := sink.Events()[0].Timestamp
	assert.Len(t, ts, len(dashboard.ClockLayout))
}
