// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package nats

import (
	"context"
	"fmt"
	"sync"

	"github.com/absmach/rigdash/logger"
	"github.com/absmach/rigdash/pkg/errors"
	"github.com/absmach/rigdash/pkg/messaging"
	broker "github.com/nats-io/nats.go"
)

var _ messaging.Subscriber = (*subscriber)(nil)

type subscriber struct {
	mu     sync.Mutex
	cfg    messaging.Config
	url    string
	conn   *broker.Conn
	subs   []*broker.Subscription
	inbox  *messaging.Inbox
	logger logger.Logger
}

// NewSubscriber returns a NATS subscriber. Nothing is dialled until Connect.
func NewSubscriber(cfg messaging.Config, logger logger.Logger) messaging.Subscriber {
	cfg = cfg.WithDefaults()
	return &subscriber{
		cfg:    cfg,
		inbox:  messaging.NewInbox(cfg.InboxSize, cfg.PollTimeout),
		logger: logger,
	}
}

func (s *subscriber) Connect(_ context.Context, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn != nil {
		if s.url == url && s.conn.IsConnected() {
			return nil
		}
		s.closeConn()
	}

	conn, err := broker.Connect(url, connOptions(s.cfg,
		broker.DisconnectErrHandler(func(_ *broker.Conn, err error) {
			if err == nil {
				return
			}
			s.logger.Warn(fmt.Sprintf("NATS connection lost: %s", err))
			s.inbox.Fail(errors.Wrap(messaging.ErrConnectionLost, err))
		}),
		broker.ReconnectHandler(func(c *broker.Conn) {
			s.logger.Info(fmt.Sprintf("Reconnected to NATS at %s", c.ConnectedUrl()))
		}),
		broker.ErrorHandler(func(_ *broker.Conn, sub *broker.Subscription, err error) {
			if sub != nil {
				err = fmt.Errorf("subject %s: %w", sub.Subject, err)
			}
			s.inbox.Fail(err)
		}),
	)...)
	if err != nil {
		return errors.Wrap(messaging.ErrConnect, err)
	}

	subs := []*broker.Subscription{}
	for _, subject := range s.cfg.SubjectsOr(SubjectAll) {
		sub, err := conn.Subscribe(subject, s.handle)
		if err != nil {
			conn.Close()
			return errors.Wrap(messaging.ErrSubscribe, err)
		}
		subs = append(subs, sub)
	}

	s.url = url
	s.conn = conn
	s.subs = subs
	s.logger.Info(fmt.Sprintf("Subscribed to NATS at %s on %v", url, s.cfg.SubjectsOr(SubjectAll)))

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

	s.closeConn()
	return nil
}

func (s *subscriber) closeConn() {
	if s.conn == nil {
		return
	}
	for _, sub := range s.subs {
		if err := sub.Unsubscribe(); err != nil {
			s.logger.Warn(fmt.Sprintf("Failed to unsubscribe from %s: %s", sub.Subject, err))
		}
	}
	s.conn.Close()
	s.conn = nil
	s.subs = nil
}

func (s *subscriber) handle(m *broker.Msg) {
	if !s.inbox.Deliver(m.Data) {
		s.logger.Debug(fmt.Sprintf("Dropped frame on %s: inbox full", m.Subject))
	}
}
