// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"github.com/absmach/rigdash/dashboard"
	"github.com/absmach/rigdash/pkg/apiutil"
)

type viewBufferReq struct {
	id   dashboard.BufferID
	last uint64
}

func (req viewBufferReq) validate() error {
	if req.id == "" {
		return apiutil.ErrMissingID
	}
	return nil
}

type valueAtReq struct {
	id    dashboard.BufferID
	index int
}

func (req valueAtReq) validate() error {
	if req.id == "" {
		return apiutil.ErrMissingID
	}
	if req.index < 0 {
		return apiutil.ErrInvalidIndex
	}
	return nil
}

type viewDeviceReq struct {
	name string
}

func (req viewDeviceReq) validate() error {
	if req.name == "" {
		return apiutil.ErrMissingID
	}
	return nil
}
