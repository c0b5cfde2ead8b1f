// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

// Package messaging defines the transport contracts between the rig's
// publish/subscribe feed and the dashboard core.
package messaging

import (
	"context"
	"time"

	"github.com/absmach/rigdash/pkg/errors"
)

const (
	// DefPollTimeout bounds how long a single Poll waits for a frame.
	DefPollTimeout = 10 * time.Millisecond
	// DefInboxSize is the number of frames buffered between the broker
	// client and the poller.
	DefInboxSize = 1024
	// DefConnectTimeout bounds Connect.
	DefConnectTimeout = 5 * time.Second
)

var (
	// ErrWouldBlock indicates that no frame was available within the poll timeout.
	ErrWouldBlock = errors.New("no frame available")

	// ErrNotConnected indicates Poll or Publish was called before Connect.
	ErrNotConnected = errors.New("not connected to message broker")

	// ErrConnect indicates a failure to reach the message broker.
	ErrConnect = errors.New("failed to connect to message broker")

	// ErrSubscribe indicates a failure to subscribe to a subject.
	ErrSubscribe = errors.New("failed to subscribe")

	// ErrConnectionLost indicates the broker link dropped after Connect.
	ErrConnectionLost = errors.New("connection to message broker lost")

	// ErrEmptyTopic indicates Publish was called without a subject.
	ErrEmptyTopic = errors.New("empty topic")
)

// Subscriber receives raw frames from the feed.
type Subscriber interface {
	// Connect opens the broker connection and subscribes to the configured
	// subjects. Calling it while connected to the same url is a no-op;
	// a different url reconnects.
	Connect(ctx context.Context, url string) error

	// Poll makes one bounded attempt to receive a frame. It returns
	// ErrWouldBlock when nothing arrived within the poll timeout.
	Poll(ctx context.Context) ([]byte, error)

	// Close gracefully closes the broker connection.
	Close() error
}

// Publisher sends raw frames to the feed.
type Publisher interface {
	// Publish sends payload on the given broker subject.
	Publish(ctx context.Context, topic string, payload []byte) error

	// Close gracefully closes the broker connection.
	Close() error
}

// Config holds the settings shared by all broker implementations.
type Config struct {
	// ClientID identifies the connection on the broker.
	ClientID string

	// Subjects to subscribe to. Empty means every subject, in the
	// broker's own wildcard syntax.
	Subjects []string

	// ConnectTimeout bounds Connect and Publish acknowledgements.
	ConnectTimeout time.Duration

	// PollTimeout bounds a single Poll.
	PollTimeout time.Duration

	// InboxSize is the frame buffer between the broker client and Poll.
	InboxSize int
}

// WithDefaults returns a copy of cfg with zero values replaced by defaults.
func (cfg Config) WithDefaults() Config {
	if cfg.ConnectTimeout <= 0 {
		cfg.ConnectTimeout = DefConnectTimeout
	}
	if cfg.PollTimeout <= 0 {
		cfg.PollTimeout = DefPollTimeout
	}
	if cfg.InboxSize <= 0 {
		cfg.InboxSize = DefInboxSize
	}
	return cfg
}

// SubjectsOr returns the configured subjects or the given wildcard.
func (cfg Config) SubjectsOr(all string) []string {
	if len(cfg.Subjects) == 0 {
		return []string{all}
	}
	return cfg.Subjects
}

// Option represents optional broker-specific configuration.
//
// The value passed to an Option is the concrete publisher or subscriber,
// so options are only meaningful for the broker package that defines them.
//
// Example:
//
//	rabbitmq.NewSubscriber(cfg, logger, rabbitmq.Exchange("rig"))
type Option func(vals interface{}) error
