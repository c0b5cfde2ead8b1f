// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package brokers

import (
	"context"
	"fmt"
	"time"

	"github.com/absmach/rigdash/logger"
	"github.com/absmach/rigdash/pkg/messaging"
	"github.com/cenkalti/backoff/v4"
)

// Connect connects sub to url, retrying with b until it succeeds, b gives
// up or ctx is done. The last connect error is returned.
func Connect(ctx context.Context, sub messaging.Subscriber, url string, b backoff.BackOff, logger logger.Logger) error {
	notify := func(err error, next time.Duration) {
		logger.Info(fmt.Sprintf("Broker not ready: %s, next try in %s", err, next))
	}
	op := func() error {
		return sub.Connect(ctx, url)
	}

	return backoff.RetryNotify(op, backoff.WithContext(b, ctx), notify)
}

// NewBackOff returns an exponential backoff that gives up after retries
// failed attempts.
func NewBackOff(retries uint64) backoff.BackOff {
	return backoff.WithMaxRetries(backoff.NewExponentialBackOff(), retries)
}
