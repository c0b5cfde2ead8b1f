// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/absmach/rigdash"
	"github.com/absmach/rigdash/dashboard"
	"github.com/absmach/rigdash/internal/api"
	"github.com/absmach/rigdash/logger"
	"github.com/absmach/rigdash/pkg/apiutil"
	"github.com/absmach/rigdash/pkg/errors"
	"github.com/go-chi/chi/v5"
	kithttp "github.com/go-kit/kit/transport/http"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	idKey    = "id"
	indexKey = "index"
	nameKey  = "name"
	lastKey  = "last"
)

// MakeHandler returns a HTTP handler for the dashboard API with health
// check and metrics. When stream is not nil it is served at /ws.
func MakeHandler(svc dashboard.Service, stream http.Handler, logger logger.Logger, svcName, instanceID string) http.Handler {
	opts := []kithttp.ServerOption{
		kithttp.ServerErrorEncoder(apiutil.LoggingErrorEncoder(logger, api.EncodeError)),
	}

	r := chi.NewRouter()

	r.Route("/buffers", func(r chi.Router) {
		r.Get("/", otelhttp.NewHandler(kithttp.NewServer(
			listBuffersEndpoint(svc),
			decodeEmpty,
			api.EncodeResponse,
			opts...,
		), "list_buffers").ServeHTTP)

		r.Get("/{id}", otelhttp.NewHandler(kithttp.NewServer(
			viewBufferEndpoint(svc),
			decodeViewBuffer,
			api.EncodeResponse,
			opts...,
		), "view_buffer").ServeHTTP)

		r.Get("/{id}/stats", otelhttp.NewHandler(kithttp.NewServer(
			bufferStatsEndpoint(svc),
			decodeViewBuffer,
			api.EncodeResponse,
			opts...,
		), "buffer_stats").ServeHTTP)

		r.Get("/{id}/{index}", otelhttp.NewHandler(kithttp.NewServer(
			valueAtEndpoint(svc),
			decodeValueAt,
			api.EncodeResponse,
			opts...,
		), "value_at").ServeHTTP)
	})

	r.Route("/devices", func(r chi.Router) {
		r.Get("/", otelhttp.NewHandler(kithttp.NewServer(
			listDevicesEndpoint(svc),
			decodeEmpty,
			api.EncodeResponse,
			opts...,
		), "list_devices").ServeHTTP)

		r.Get("/{name}", otelhttp.NewHandler(kithttp.NewServer(
			viewDeviceEndpoint(svc),
			decodeViewDevice,
			api.EncodeResponse,
			opts...,
		), "view_device").ServeHTTP)
	})

	r.Get("/cycle", otelhttp.NewHandler(kithttp.NewServer(
		cycleEndpoint(svc),
		decodeEmpty,
		api.EncodeResponse,
		opts...,
	), "cycle").ServeHTTP)

	if stream != nil {
		r.Handle("/ws", stream)
	}
	r.Get("/health", rigdash.Health(svcName, instanceID))
	r.Handle("/metrics", promhttp.Handler())

	return r
}

func decodeEmpty(_ context.Context, _ *http.Request) (interface{}, error) {
	return nil, nil
}

func decodeViewBuffer(_ context.Context, r *http.Request) (interface{}, error) {
	last, err := apiutil.ReadUintQuery(r, lastKey, 0)
	if err != nil {
		return nil, errors.Wrap(apiutil.ErrValidation, err)
	}

	req := viewBufferReq{
		id:   dashboard.BufferID(chi.URLParam(r, idKey)),
		last: last,
	}

	return req, nil
}

func decodeValueAt(_ context.Context, r *http.Request) (interface{}, error) {
	index, err := strconv.Atoi(chi.URLParam(r, indexKey))
	if err != nil {
		return nil, errors.Wrap(apiutil.ErrValidation, errors.Wrap(apiutil.ErrInvalidIndex, err))
	}

	req := valueAtReq{
		id:    dashboard.BufferID(chi.URLParam(r, idKey)),
		index: index,
	}

	return req, nil
}

func decodeViewDevice(_ context.Context, r *http.Request) (interface{}, error) {
	req := viewDeviceReq{
		name: chi.URLParam(r, nameKey),
	}

	return req, nil
}
