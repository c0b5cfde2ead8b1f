// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

// Package nats implements the rig feed transport over core NATS
// subscriptions. JetStream is deliberately not used: the feed is
// fire-and-forget and frames missed while disconnected are gone.
package nats
