// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"

	"github.com/absmach/rigdash/logger"
	"github.com/absmach/rigdash/pkg/errors"
	"github.com/absmach/rigdash/pkg/messaging"
	"github.com/absmach/rigdash/pkg/messaging/brokers"
)

var errNoBroker = errors.New("broker is not configured")

// Broker opens feed connections for the commands.
type Broker interface {
	// Publisher returns a connected publisher.
	Publisher() (messaging.Publisher, error)

	// Subscriber returns a subscriber connected to the feed.
	Subscriber(ctx context.Context) (messaging.Subscriber, error)
}

var broker Broker

// SetBroker sets the broker used by the commands.
func SetBroker(b Broker) {
	broker = b
}

type feed struct {
	url    string
	cfg    messaging.Config
	logger logger.Logger
}

// NewBroker returns a Broker that picks the client from the url scheme.
func NewBroker(url string, cfg messaging.Config, logger logger.Logger) Broker {
	return feed{url: url, cfg: cfg, logger: logger}
}

func (f feed) Publisher() (messaging.Publisher, error) {
	return brokers.NewPublisher(f.url, f.cfg)
}

func (f feed) Subscriber(ctx context.Context) (messaging.Subscriber, error) {
	sub, err := brokers.NewSubscriber(f.url, f.cfg, f.logger)
	if err != nil {
		return nil, err
	}
	if err := sub.Connect(ctx, f.url); err != nil {
		return nil, err
	}
	return sub, nil
}

func publisher() (messaging.Publisher, error) {
	if broker == nil {
		return nil, errNoBroker
	}
	return broker.Publisher()
}

func subscriber(ctx context.Context) (messaging.Subscriber, error) {
	if broker == nil {
		return nil, errNoBroker
	}
	return broker.Subscriber(ctx)
}
