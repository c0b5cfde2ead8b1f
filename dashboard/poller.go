// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package dashboard

import (
	"context"
	"time"

	"github.com/absmach/rigdash/logger"
	"github.com/absmach/rigdash/pkg/errors"
	"github.com/absmach/rigdash/pkg/messaging"
	"github.com/absmach/rigdash/pkg/ticker"
)

// DefTick is the interval between two polls.
const DefTick = 50 * time.Millisecond

// Poller drives ingestion: at most one frame per tick, never blocking a
// tick past the subscriber's poll timeout.
type Poller struct {
	sub    messaging.Subscriber
	svc    Service
	errs   ErrorReporter
	ticker ticker.Ticker
	logger logger.Logger
}

// NewPoller returns a Poller handing frames from sub to svc.
func NewPoller(sub messaging.Subscriber, svc Service, errs ErrorReporter, t ticker.Ticker, logger logger.Logger) *Poller {
	return &Poller{
		sub:    sub,
		svc:    svc,
		errs:   errs,
		ticker: t,
		logger: logger,
	}
}

// Run polls until ctx is cancelled, then stops the ticker and closes the
// subscriber.
func (p *Poller) Run(ctx context.Context) error {
	defer func() {
		p.ticker.Stop()
		if err := p.sub.Close(); err != nil {
			p.logger.Warn("Failed to close subscriber: " + err.Error())
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-p.ticker.Tick():
			p.Tick(ctx)
		}
	}
}

// Tick performs a single poll and handles the frame if one arrived.
func (p *Poller) Tick(ctx context.Context) {
	frame, err := p.sub.Poll(ctx)
	switch {
	case err == nil:
		// Handle reports its own failures.
		_ = p.svc.Handle(ctx, frame)
	case errors.Contains(err, messaging.ErrWouldBlock):
	case ctx.Err() != nil:
	default:
		p.errs.Report(CoreDevice, errors.Wrap(ErrTransport, err))
	}
}
