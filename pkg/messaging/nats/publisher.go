// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package nats

import (
	"context"

	"github.com/absmach/rigdash/pkg/errors"
	"github.com/absmach/rigdash/pkg/messaging"
	broker "github.com/nats-io/nats.go"
)

const (
	// A maximum number of reconnect attempts before NATS connection closes permanently.
	// Value -1 represents an unlimited number of reconnect retries.
	maxReconnects = -1

	// SubjectAll matches every NATS subject.
	SubjectAll = ">"

	defClientName = "rigdash"
)

var _ messaging.Publisher = (*publisher)(nil)

type publisher struct {
	conn *broker.Conn
}

// NewPublisher returns NATS frame Publisher.
func NewPublisher(url string, cfg messaging.Config) (messaging.Publisher, error) {
	cfg = cfg.WithDefaults()
	conn, err := broker.Connect(url, connOptions(cfg)...)
	if err != nil {
		return nil, errors.Wrap(messaging.ErrConnect, err)
	}

	return &publisher{conn: conn}, nil
}

func (pub *publisher) Publish(_ context.Context, topic string, payload []byte) error {
	if topic == "" {
		return messaging.ErrEmptyTopic
	}

	return pub.conn.Publish(topic, payload)
}

func (pub *publisher) Close() error {
	return pub.conn.Drain()
}

func connOptions(cfg messaging.Config, extra ...broker.Option) []broker.Option {
	name := cfg.ClientID
	if name == "" {
		name = defClientName
	}
	opts := []broker.Option{
		broker.Name(name),
		broker.Timeout(cfg.ConnectTimeout),
		broker.MaxReconnects(maxReconnects),
	}

	return append(opts, extra...)
}
