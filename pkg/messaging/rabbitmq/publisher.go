// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

// Package rabbitmq implements the rig feed transport over a RabbitMQ
// topic exchange.
package rabbitmq

import (
	"context"

	"github.com/absmach/rigdash/pkg/errors"
	"github.com/absmach/rigdash/pkg/messaging"
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	// SubjectAll matches every routing key on the exchange.
	SubjectAll = "#"

	// DefExchange is the topic exchange frames are published to.
	DefExchange = "rigdash"

	contentType = "text/plain"
	appID       = "rigdash-publisher"
)

var _ messaging.Publisher = (*publisher)(nil)

type publisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
}

// NewPublisher returns RabbitMQ frame Publisher.
func NewPublisher(url string, cfg messaging.Config, opts ...messaging.Option) (messaging.Publisher, error) {
	cfg = cfg.WithDefaults()
	pub := &publisher{exchange: DefExchange}
	if err := apply(pub, opts); err != nil {
		return nil, err
	}

	conn, ch, err := dial(url, pub.exchange, cfg)
	if err != nil {
		return nil, err
	}
	pub.conn = conn
	pub.channel = ch

	return pub, nil
}

func (pub *publisher) Publish(ctx context.Context, topic string, payload []byte) error {
	if topic == "" {
		return messaging.ErrEmptyTopic
	}

	return pub.channel.PublishWithContext(ctx, pub.exchange, topic, false, false, amqp.Publishing{
		Headers:     amqp.Table{},
		ContentType: contentType,
		AppId:       appID,
		Body:        payload,
	})
}

func (pub *publisher) Close() error {
	if err := pub.channel.Close(); err != nil {
		return err
	}
	return pub.conn.Close()
}

func dial(url, exchange string, cfg messaging.Config) (*amqp.Connection, *amqp.Channel, error) {
	conn, err := amqp.DialConfig(url, amqp.Config{Dial: amqp.DefaultDial(cfg.ConnectTimeout)})
	if err != nil {
		return nil, nil, errors.Wrap(messaging.ErrConnect, err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, nil, errors.Wrap(messaging.ErrConnect, err)
	}
	if err := ch.ExchangeDeclare(exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		conn.Close()
		return nil, nil, errors.Wrap(messaging.ErrConnect, err)
	}

	return conn, ch, nil
}
