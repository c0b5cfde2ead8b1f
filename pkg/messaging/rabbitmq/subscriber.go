// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package rabbitmq

import (
	"context"
	"fmt"
	"sync"

	"github.com/absmach/rigdash/logger"
	"github.com/absmach/rigdash/pkg/errors"
	"github.com/absmach/rigdash/pkg/messaging"
	amqp "github.com/rabbitmq/amqp091-go"
)

var (
	_ messaging.Subscriber = (*subscriber)(nil)

	errConsumerClosed = errors.New("delivery channel closed")
)

type subscriber struct {
	mu       sync.Mutex
	cfg      messaging.Config
	url      string
	exchange string
	conn     *amqp.Connection
	channel  *amqp.Channel
	inbox    *messaging.Inbox
	logger   logger.Logger
}

// NewSubscriber returns a RabbitMQ subscriber. Nothing is dialled until Connect.
func NewSubscriber(cfg messaging.Config, logger logger.Logger, opts ...messaging.Option) (messaging.Subscriber, error) {
	cfg = cfg.WithDefaults()
	s := &subscriber{
		cfg:      cfg,
		exchange: DefExchange,
		inbox:    messaging.NewInbox(cfg.InboxSize, cfg.PollTimeout),
		logger:   logger,
	}
	if err := apply(s, opts); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *subscriber) Connect(_ context.Context, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn != nil {
		if s.url == url && !s.conn.IsClosed() {
			return nil
		}
		s.closeConn()
	}

	conn, ch, err := dial(url, s.exchange, s.cfg)
	if err != nil {
		return err
	}

	// Server-named, exclusive and auto-deleted: frames are not retained
	// for a subscriber that is gone.
	q, err := ch.QueueDeclare("", false, true, true, false, nil)
	if err != nil {
		conn.Close()
		return errors.Wrap(messaging.ErrSubscribe, err)
	}
	for _, subject := range s.cfg.SubjectsOr(SubjectAll) {
		if err := ch.QueueBind(q.Name, subject, s.exchange, false, nil); err != nil {
			conn.Close()
			return errors.Wrap(messaging.ErrSubscribe, err)
		}
	}
	deliveries, err := ch.Consume(q.Name, s.cfg.ClientID, true, true, false, false, nil)
	if err != nil {
		conn.Close()
		return errors.Wrap(messaging.ErrSubscribe, err)
	}

	connClosed := conn.NotifyClose(make(chan *amqp.Error, 1))
	chClosed := ch.NotifyClose(make(chan *amqp.Error, 1))
	go s.consume(conn, ch, deliveries)
	go s.watch(connClosed, chClosed)

	s.url = url
	s.conn = conn
	s.channel = ch
	s.logger.Info(fmt.Sprintf("Subscribed to RabbitMQ exchange %s at %s on %v", s.exchange, url, s.cfg.SubjectsOr(SubjectAll)))

	return nil
}

func (s *subscriber) Poll(ctx context.Context) ([]byte, error) {
	s.mu.Lock()
	connected := s.conn != nil
	s.mu.Unlock()
	if !connected {
		return nil, messaging.ErrNotConnected
	}

	return s.inbox.Poll(ctx)
}

func (s *subscriber) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.closeConn()
}

func (s *subscriber) closeConn() error {
	if s.conn == nil {
		return nil
	}
	conn := s.conn
	s.conn = nil
	s.channel = nil
	if conn.IsClosed() {
		return nil
	}
	return conn.Close()
}

func (s *subscriber) consume(conn *amqp.Connection, ch *amqp.Channel, deliveries <-chan amqp.Delivery) {
	for d := range deliveries {
		s.deliver(d.Body, d.RoutingKey)
	}

	// A closed connection or channel is reported by watch.
	s.mu.Lock()
	current := s.conn == conn
	s.mu.Unlock()
	if !current || (conn != nil && conn.IsClosed()) || (ch != nil && ch.IsClosed()) {
		return
	}
	s.logger.Warn("RabbitMQ consumer cancelled by broker")
	s.inbox.Fail(errors.Wrap(messaging.ErrConnectionLost, errConsumerClosed))
}

func (s *subscriber) deliver(body []byte, key string) {
	if !s.inbox.Deliver(body) {
		s.logger.Debug(fmt.Sprintf("Dropped frame on %s: inbox full", key))
	}
}

func (s *subscriber) watch(connClosed, chClosed <-chan *amqp.Error) {
	var err *amqp.Error
	var ok bool
	select {
	case err, ok = <-connClosed:
	case err, ok = <-chClosed:
	}
	if !ok || err == nil {
		return
	}
	s.logger.Warn(fmt.Sprintf("RabbitMQ connection lost: %s", err))
	s.inbox.Fail(errors.Wrap(messaging.ErrConnectionLost, err))
}
