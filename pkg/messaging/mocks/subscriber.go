// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package mocks

import (
	"context"

	"github.com/absmach/rigdash/pkg/messaging"
	"github.com/stretchr/testify/mock"
)

var _ messaging.Subscriber = (*Subscriber)(nil)

// Subscriber is a testify mock of messaging.Subscriber.
type Subscriber struct {
	mock.Mock
}

func (m *Subscriber) Connect(ctx context.Context, url string) error {
	ret := m.Called(ctx, url)
	return ret.Error(0)
}

func (m *Subscriber) Poll(ctx context.Context) ([]byte, error) {
	ret := m.Called(ctx)
	var frame []byte
	if f := ret.Get(0); f != nil {
		frame = f.([]byte)
	}
	return frame, ret.Error(1)
}

func (m *Subscriber) Close() error {
	ret := m.Called()
	return ret.Error(0)
}

var _ messaging.Publisher = (*Publisher)(nil)

// Publisher is a testify mock of messaging.Publisher.
type Publisher struct {
	mock.Mock
}

func (m *Publisher) Publish(ctx context.Context, topic string, payload []byte) error {
	ret := m.Called(ctx, topic, payload)
	return ret.Error(0)
}

func (m *Publisher) Close() error {
	ret := m.Called()
	return ret.Error(0)
}
