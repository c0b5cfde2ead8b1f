// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"

	"github.com/absmach/rigdash/dashboard"
	"github.com/absmach/rigdash/pkg/apiutil"
	"github.com/absmach/rigdash/pkg/errors"
	"github.com/go-kit/kit/endpoint"
)

func listBuffersEndpoint(svc dashboard.Service) endpoint.Endpoint {
	return func(ctx context.Context, _ interface{}) (interface{}, error) {
		infos, err := svc.Buffers(ctx)
		if err != nil {
			return nil, err
		}

		return buffersRes{Total: len(infos), Buffers: infos}, nil
	}
}

func viewBufferEndpoint(svc dashboard.Service) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req := request.(viewBufferReq)
		if err := req.validate(); err != nil {
			return nil, errors.Wrap(apiutil.ErrValidation, err)
		}

		samples, err := svc.Buffer(ctx, req.id)
		if err != nil {
			return nil, err
		}
		if req.last > 0 && req.last < uint64(len(samples)) {
			samples = samples[len(samples)-int(req.last):]
		}

		return bufferRes{ID: req.id, Samples: samples}, nil
	}
}

func bufferStatsEndpoint(svc dashboard.Service) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req := request.(viewBufferReq)
		if err := req.validate(); err != nil {
			return nil, errors.Wrap(apiutil.ErrValidation, err)
		}

		st, err := svc.Stats(ctx, req.id)
		if err != nil {
			return nil, err
		}

		return statsRes{BufferStats: st}, nil
	}
}

func valueAtEndpoint(svc dashboard.Service) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req := request.(valueAtReq)
		if err := req.validate(); err != nil {
			return nil, errors.Wrap(apiutil.ErrValidation, err)
		}

		v, err := svc.ValueAt(ctx, req.id, req.index)
		if err != nil {
			return nil, err
		}

		return valueRes{ID: req.id, Index: req.index, Value: v}, nil
	}
}

func listDevicesEndpoint(svc dashboard.Service) endpoint.Endpoint {
	return func(ctx context.Context, _ interface{}) (interface{}, error) {
		devices, err := svc.Devices(ctx)
		if err != nil {
			return nil, err
		}

		return devicesRes{Total: len(devices), Devices: devices}, nil
	}
}

func viewDeviceEndpoint(svc dashboard.Service) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req := request.(viewDeviceReq)
		if err := req.validate(); err != nil {
			return nil, errors.Wrap(apiutil.ErrValidation, err)
		}

		st, err := svc.Device(ctx, req.name)
		if err != nil {
			return nil, err
		}

		return deviceRes{DeviceState: st}, nil
	}
}

func cycleEndpoint(svc dashboard.Service) endpoint.Endpoint {
	return func(ctx context.Context, _ interface{}) (interface{}, error) {
		c, err := svc.Cycle(ctx)
		if err != nil {
			return nil, err
		}

		return cycleRes{Cycle: c}, nil
	}
}
