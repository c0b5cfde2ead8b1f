// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package dashboard

import "github.com/absmach/rigdash/pkg/errors"

var (
	// ErrTransport indicates a receive failure other than "no frame yet".
	ErrTransport = errors.New("transport error")

	// ErrFrameFormat indicates a frame without the topic delimiter.
	ErrFrameFormat = errors.New("frame is missing the topic delimiter")

	// ErrDecode indicates a payload that is not valid JSON.
	ErrDecode = errors.New("failed to decode envelope")

	// ErrDispatch indicates an unexpected payload shape found while routing.
	ErrDispatch = errors.New("failed to dispatch envelope")

	// ErrNotFound indicates an unknown buffer or a device that never reported.
	ErrNotFound = errors.New("entity not found")

	// ErrIndexOutOfRange indicates a sample index outside the retained window.
	ErrIndexOutOfRange = errors.New("index out of retained range")
)
