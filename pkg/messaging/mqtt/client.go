// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

// Package mqtt implements the rig feed transport over an MQTT broker.
package mqtt

import (
	"time"

	"github.com/absmach/rigdash/pkg/errors"
	"github.com/absmach/rigdash/pkg/messaging"
	mqtt "github.com/eclipse/paho.mqtt.golang"
)

const (
	// SubjectAll matches every MQTT topic.
	SubjectAll = "#"

	qos           = 0
	disconnectMs  = 250
	defClientName = "rigdash"
)

var errTimeout = errors.New("operation timed out")

func clientOptions(url, id string, timeout time.Duration) *mqtt.ClientOptions {
	if id == "" {
		id = defClientName
	}
	return mqtt.NewClientOptions().
		AddBroker(url).
		SetClientID(id).
		SetCleanSession(true).
		SetAutoReconnect(true).
		SetOrderMatters(true).
		SetConnectTimeout(timeout)
}

func wait(token mqtt.Token, timeout time.Duration, wrapper error) error {
	if !token.WaitTimeout(timeout) {
		return errors.Wrap(wrapper, errTimeout)
	}
	if err := token.Error(); err != nil {
		return errors.Wrap(wrapper, err)
	}
	return nil
}

func connect(opts *mqtt.ClientOptions, timeout time.Duration) (mqtt.Client, error) {
	client := mqtt.NewClient(opts)
	if err := wait(client.Connect(), timeout, messaging.ErrConnect); err != nil {
		return nil, err
	}
	return client, nil
}
