// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

// Package brokers selects the broker implementation for a feed URL.
//
// The scheme picks the client: tcp, mqtt, ssl, ws and wss use MQTT,
// nats and tls use NATS, amqp and amqps use RabbitMQ.
package brokers

import (
	"net/url"
	"strings"

	"github.com/absmach/rigdash/logger"
	"github.com/absmach/rigdash/pkg/errors"
	"github.com/absmach/rigdash/pkg/messaging"
	"github.com/absmach/rigdash/pkg/messaging/mqtt"
	"github.com/absmach/rigdash/pkg/messaging/nats"
	"github.com/absmach/rigdash/pkg/messaging/rabbitmq"
)

// Kind identifies a broker family.
type Kind string

const (
	MQTT     Kind = "mqtt"
	NATS     Kind = "nats"
	RabbitMQ Kind = "rabbitmq"
)

// ErrUnsupportedScheme indicates a feed URL no broker client understands.
var ErrUnsupportedScheme = errors.New("unsupported broker url scheme")

// Resolve returns the broker family for the given feed URL.
func Resolve(rawURL string) (Kind, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", errors.Wrap(ErrUnsupportedScheme, err)
	}
	switch strings.ToLower(u.Scheme) {
	case "tcp", "mqtt", "ssl", "ws", "wss":
		return MQTT, nil
	case "nats", "tls":
		return NATS, nil
	case "amqp", "amqps":
		return RabbitMQ, nil
	default:
		return "", errors.Wrap(ErrUnsupportedScheme, errors.New(u.Scheme))
	}
}

// NewSubscriber returns an unconnected subscriber for the feed URL.
func NewSubscriber(rawURL string, cfg messaging.Config, logger logger.Logger) (messaging.Subscriber, error) {
	kind, err := Resolve(rawURL)
	if err != nil {
		return nil, err
	}
	switch kind {
	case MQTT:
		return mqtt.NewSubscriber(cfg, logger), nil
	case NATS:
		return nats.NewSubscriber(cfg, logger), nil
	default:
		return rabbitmq.NewSubscriber(cfg, logger)
	}
}

// NewPublisher returns a publisher connected to the feed URL.
func NewPublisher(rawURL string, cfg messaging.Config) (messaging.Publisher, error) {
	kind, err := Resolve(rawURL)
	if err != nil {
		return nil, err
	}
	switch kind {
	case MQTT:
		return mqtt.NewPublisher(rawURL, cfg)
	case NATS:
		return nats.NewPublisher(rawURL, cfg)
	default:
		return rabbitmq.NewPublisher(rawURL, cfg)
	}
}
