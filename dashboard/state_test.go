// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package dashboard_test

import (
	"testing"

	"github.com/absmach/rigdash/dashboard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeviceStateStoreOnlineIsMonotonic(t *testing.T) {
	s := dashboard.NewDeviceStateStore()
	assert.False(t, s.IsOnline(dashboard.DeviceDoser))

	s.MarkOnline(dashboard.DeviceDoser)
	assert.True(t, s.IsOnline(dashboard.DeviceDoser))

	for _, d := range []string{dashboard.DeviceReactor, dashboard.DeviceBattery, dashboard.DeviceDiSea} {
		s.UpdateField(d, "value", 1)
		s.MarkOnline(d)
		assert.True(t, s.IsOnline(dashboard.DeviceDoser))
	}
	s.UpdateField(dashboard.DeviceDoser, "rate", 3)
	s.MarkOnline(dashboard.DeviceDoser)
	assert.True(t, s.IsOnline(dashboard.DeviceDoser))
}

func TestDeviceStateStoreFieldsWithoutOnline(t *testing.T) {
	s := dashboard.NewDeviceStateStore()
	s.UpdateField(dashboard.DeviceBattery, "soc", 80)

	assert.False(t, s.IsOnline(dashboard.DeviceBattery))
	st, ok := s.State(dashboard.DeviceBattery)
	require.True(t, ok)
	assert.Equal(t, map[string]float64{"soc": 80}, st.Values)
	assert.False(t, st.LastSeen.IsZero())

	s.UpdateField(dashboard.DeviceBattery, "soc", 75)
	st, _ = s.State(dashboard.DeviceBattery)
	assert.Equal(t, float64(75), st.Values["soc"])
}

func TestDeviceStateStoreCopies(t *testing.T) {
	s := dashboard.NewDeviceStateStore()
	s.UpdateField(dashboard.DeviceReactor, "flow", 42.5)

	st, _ := s.State(dashboard.DeviceReactor)
	st.Values["flow"] = 0
	st.Online = true

	fresh, _ := s.State(dashboard.DeviceReactor)
	assert.Equal(t, 42.5, fresh.Values["flow"])
	assert.False(t, fresh.Online)

	_, ok := s.State("unknown")
	assert.False(t, ok)
}

func TestDeviceStateStoreStatesSorted(t *testing.T) {
	s := dashboard.NewDeviceStateStore()
	for _, d := range []string{"ve_direct", "di-sea", "reactor", "battery"} {
		s.MarkOnline(d)
	}

	names := []string{}
	for _, st := range s.States() {
		names = append(names, st.Name)
	}
	assert.Equal(t, []string{"battery", "di-sea", "reactor", "ve_direct"}, names)
}
