// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package dashboard_test

import (
	"context"
	"testing"
	"time"

	"github.com/absmach/rigdash/dashboard"
	"github.com/absmach/rigdash/logger"
	"github.com/absmach/rigdash/pkg/messaging"
	msgmocks "github.com/absmach/rigdash/pkg/messaging/mocks"
	tickmocks "github.com/absmach/rigdash/pkg/ticker/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPollerTick(t *testing.T) {
	cases := []struct {
		desc    string
		frame   []byte
		pollErr error
		samples int
		errors  int
	}{
		{desc: "frame is handled", frame: []byte(`data|{"device_name":"doser","data":{"dosing_rate":1}}`), samples: 1},
		{desc: "nothing to receive", pollErr: messaging.ErrWouldBlock},
		{desc: "transport failure is reported", pollErr: messaging.ErrConnectionLost, errors: 1},
		{desc: "malformed frame is reported", frame: []byte("garbage"), errors: 1},
	}

	for _, tc := range cases {
		svc, core, sink := newService()
		sub := new(msgmocks.Subscriber)
		sub.On("Poll", mock.Anything).Return(tc.frame, tc.pollErr).Once()

		p := dashboard.NewPoller(sub, svc, dashboard.NewDispatcher(core, sink), tickmocks.NewTicker(), logger.NewMock())
		p.Tick(context.Background())

		assert.Len(t, sink.Samples(), tc.samples, tc.desc)
		errs := sink.EventsAt(dashboard.LevelError)
		assert.Len(t, errs, tc.errors, tc.desc)
		if tc.pollErr != nil && tc.errors > 0 {
			assert.Contains(t, errs[0].Text, dashboard.ErrTransport.Error(), tc.desc)
			assert.Equal(t, dashboard.TopicErr, errs[0].Topic, tc.desc)
		}
		sub.AssertExpectations(t)
	}
}

func TestPollerRun(t *testing.T) {
	svc, core, sink := newService()
	sub := new(msgmocks.Subscriber)
	sub.On("Poll", mock.Anything).Return([]byte(`data|{"device_name":"reactor","data":{"flow":5}}`), nil).Once()
	sub.On("Poll", mock.Anything).Return([]byte(`data|{"device_name":"doser","data":{"dosing_rate":2}}`), nil).Once()
	sub.On("Poll", mock.Anything).Return(nil, messaging.ErrWouldBlock)
	sub.On("Close").Return(nil).Once()

	tick := tickmocks.NewTicker()
	p := dashboard.NewPoller(sub, svc, dashboard.NewDispatcher(core, sink), tick, logger.NewMock())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- p.Run(ctx)
	}()

	// The third tick is only received after the second has been processed.
	tick.Fire()
	tick.Fire()
	tick.Fire()

	assert.True(t, core.Store().IsOnline(dashboard.DeviceReactor))
	assert.True(t, core.Store().IsOnline(dashboard.DeviceDoser))
	assert.Empty(t, sink.EventsAt(dashboard.LevelError))

	cancel()
	select {
	case err := <-done:
		assert.Nil(t, err)
	case <-time.After(time.Second):
		require.Fail(t, "poller did not stop after cancel")
	}
	assert.True(t, tick.Stopped())
	sub.AssertExpectations(t)
}

func TestPollerSkipsReportAfterCancel(t *testing.T) {
	svc, core, sink := newService()
	sub := new(msgmocks.Subscriber)
	sub.On("Poll", mock.Anything).Return(nil, context.Canceled)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := dashboard.NewPoller(sub, svc, dashboard.NewDispatcher(core, sink), tickmocks.NewTicker(), logger.NewMock())
	p.Tick(ctx)

	assert.Empty(t, sink.Events())
}
