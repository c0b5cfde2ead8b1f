// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package rabbitmq

import (
	"github.com/absmach/rigdash/pkg/errors"
	"github.com/absmach/rigdash/pkg/messaging"
)

// ErrInvalidType is returned when the provided value is not of the expected type.
var ErrInvalidType = errors.New("invalid type")

// Exchange sets the topic exchange used by the publisher or subscriber.
func Exchange(name string) messaging.Option {
	return func(val interface{}) error {
		switch v := val.(type) {
		case *publisher:
			v.exchange = name
		case *subscriber:
			v.exchange = name
		default:
			return ErrInvalidType
		}

		return nil
	}
}

func apply(val interface{}, opts []messaging.Option) error {
	for _, opt := range opts {
		if err := opt(val); err != nil {
			return err
		}
	}
	return nil
}
