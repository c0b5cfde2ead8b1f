// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"net/http"

	"github.com/absmach/rigdash"
	"github.com/absmach/rigdash/dashboard"
)

var (
	_ rigdash.Response = (*buffersRes)(nil)
	_ rigdash.Response = (*bufferRes)(nil)
	_ rigdash.Response = (*statsRes)(nil)
	_ rigdash.Response = (*valueRes)(nil)
	_ rigdash.Response = (*devicesRes)(nil)
	_ rigdash.Response = (*deviceRes)(nil)
	_ rigdash.Response = (*cycleRes)(nil)
)

type buffersRes struct {
	Total   int                    `json:"total"`
	Buffers []dashboard.BufferInfo `json:"buffers"`
}

func (res buffersRes) Code() int {
	return http.StatusOK
}

func (res buffersRes) Headers() map[string]string {
	return map[string]string{}
}

func (res buffersRes) Empty() bool {
	return false
}

type bufferRes struct {
	ID      dashboard.BufferID `json:"id"`
	Samples []float64          `json:"samples"`
}

func (res bufferRes) Code() int {
	return http.StatusOK
}

func (res bufferRes) Headers() map[string]string {
	return map[string]string{}
}

func (res bufferRes) Empty() bool {
	return false
}

type statsRes struct {
	dashboard.BufferStats
}

func (res statsRes) Code() int {
	return http.StatusOK
}

func (res statsRes) Headers() map[string]string {
	return map[string]string{}
}

func (res statsRes) Empty() bool {
	return false
}

type valueRes struct {
	ID    dashboard.BufferID `json:"id"`
	Index int                `json:"index"`
	Value float64            `json:"value"`
}

func (res valueRes) Code() int {
	return http.StatusOK
}

func (res valueRes) Headers() map[string]string {
	return map[string]string{}
}

func (res valueRes) Empty() bool {
	return false
}

type devicesRes struct {
	Total   int                     `json:"total"`
	Devices []dashboard.DeviceState `json:"devices"`
}

func (res devicesRes) Code() int {
	return http.StatusOK
}

func (res devicesRes) Headers() map[string]string {
	return map[string]string{}
}

func (res devicesRes) Empty() bool {
	return false
}

type deviceRes struct {
	dashboard.DeviceState
}

func (res deviceRes) Code() int {
	return http.StatusOK
}

func (res deviceRes) Headers() map[string]string {
	return map[string]string{}
}

func (res deviceRes) Empty() bool {
	return false
}

type cycleRes struct {
	Cycle int `json:"cycle"`
}

func (res cycleRes) Code() int {
	return http.StatusOK
}

func (res cycleRes) Headers() map[string]string {
	return map[string]string{}
}

func (res cycleRes) Empty() bool {
	return false
}
