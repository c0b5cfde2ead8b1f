// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package mqtt

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/absmach/rigdash/logger"
	"github.com/absmach/rigdash/pkg/errors"
	"github.com/absmach/rigdash/pkg/messaging"
	mqtt "github.com/eclipse/paho.mqtt.golang"
)

var _ messaging.Subscriber = (*subscriber)(nil)

type subscriber struct {
	mu          sync.Mutex
	cfg         messaging.Config
	url         string
	client      mqtt.Client
	inbox       *messaging.Inbox
	established atomic.Bool
	logger      logger.Logger
}

// NewSubscriber returns an MQTT subscriber. Nothing is dialled until Connect.
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

	if s.client != nil {
		if s.url == url && s.client.IsConnected() {
			return nil
		}
		s.client.Disconnect(disconnectMs)
		s.client = nil
		s.established.Store(false)
	}

	opts := clientOptions(url, s.cfg.ClientID, s.cfg.ConnectTimeout)
	opts.SetOnConnectHandler(func(c mqtt.Client) {
		if !s.established.Load() {
			return
		}
		s.logger.Info(fmt.Sprintf("Reconnected to MQTT broker at %s", url))
		if err := s.subscribe(c); err != nil {
			s.inbox.Fail(err)
		}
	})
	opts.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		s.logger.Warn(fmt.Sprintf("MQTT connection lost: %s", err))
		s.inbox.Fail(errors.Wrap(messaging.ErrConnectionLost, err))
	})

	client, err := connect(opts, s.cfg.ConnectTimeout)
	if err != nil {
		return err
	}
	if err := s.subscribe(client); err != nil {
		client.Disconnect(disconnectMs)
		return err
	}

	s.url = url
	s.client = client
	s.established.Store(true)
	s.logger.Info(fmt.Sprintf("Subscribed to MQTT broker at %s on %v", url, s.cfg.SubjectsOr(SubjectAll)))

	return nil
}

func (s *subscriber) Poll(ctx context.Context) ([]byte, error) {
	s.mu.Lock()
	connected := s.client != nil
	s.mu.Unlock()
	if !connected {
		return nil, messaging.ErrNotConnected
	}

	return s.inbox.Poll(ctx)
}

func (s *subscriber) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.client == nil {
		return nil
	}
	s.client.Disconnect(disconnectMs)
	s.client = nil
	s.established.Store(false)

	return nil
}

func (s *subscriber) subscribe(client mqtt.Client) error {
	filters := make(map[string]byte)
	for _, subject := range s.cfg.SubjectsOr(SubjectAll) {
		filters[subject] = qos
	}

	return wait(client.SubscribeMultiple(filters, s.handle), s.cfg.ConnectTimeout, messaging.ErrSubscribe)
}

func (s *subscriber) handle(_ mqtt.Client, m mqtt.Message) {
	if !s.inbox.Deliver(m.Payload()) {
		s.logger.Debug(fmt.Sprintf("Dropped frame on %s: inbox full", m.Topic()))
	}
}
