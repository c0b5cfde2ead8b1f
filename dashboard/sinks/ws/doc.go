// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

// Package ws streams every sink callback to WebSocket display clients.
//
// Each callback becomes one JSON text message:
//
//	{"type":"sample","id":"doser.dosing_rate","samples":[1.5,2]}
//	{"type":"device","device":"reactor","online":true,"values":{"flow":42.5}}
//	{"type":"event","event":{"timestamp":"10:00:00","topic":"data",...}}
//
// A client whose send queue is full is disconnected rather than slowing
// down ingestion.
package ws
