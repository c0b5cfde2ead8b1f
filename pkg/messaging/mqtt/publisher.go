// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package mqtt

import (
	"context"

	"github.com/absmach/rigdash/pkg/errors"
	"github.com/absmach/rigdash/pkg/messaging"
	mqtt "github.com/eclipse/paho.mqtt.golang"
)

var (
	_ messaging.Publisher = (*publisher)(nil)

	errPublish = errors.New("failed to publish frame")
)

type publisher struct {
	client mqtt.Client
	cfg    messaging.Config
}

// NewPublisher connects to the MQTT broker at url and returns a publisher.
func NewPublisher(url string, cfg messaging.Config) (messaging.Publisher, error) {
	cfg = cfg.WithDefaults()
	client, err := connect(clientOptions(url, cfg.ClientID, cfg.ConnectTimeout), cfg.ConnectTimeout)
	if err != nil {
		return nil, err
	}

	return &publisher{client: client, cfg: cfg}, nil
}

func (pub *publisher) Publish(_ context.Context, topic string, payload []byte) error {
	if topic == "" {
		return messaging.ErrEmptyTopic
	}

	return wait(pub.client.Publish(topic, qos, false, payload), pub.cfg.ConnectTimeout, errPublish)
}

func (pub *publisher) Close() error {
	pub.client.Disconnect(disconnectMs)
	return nil
}
