// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

// Package jaeger sets up the OpenTelemetry trace provider exporting to
// an OTLP/HTTP collector such as Jaeger.
package jaeger

import (
	"context"
	"net/url"

	"github.com/absmach/rigdash/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	tracesdk "go.opentelemetry.io/otel/sdk/trace"
)

var (
	errNoURL         = errors.New("URL is empty")
	errNoSvcName     = errors.New("Service Name is empty")
	errUnsupportedTP = errors.New("unsupported trace exporter protocol")
)

// NewProvider initializes Jaeger TraceProvider and registers it globally.
func NewProvider(ctx context.Context, svcName, jaegerURL, instanceID string, fraction float64) (*tracesdk.TracerProvider, error) {
	if jaegerURL == "" {
		return nil, errNoURL
	}
	if svcName == "" {
		return nil, errNoSvcName
	}

	u, err := url.Parse(jaegerURL)
	if err != nil {
		return nil, err
	}

	var opts []otlptracehttp.Option
	switch u.Scheme {
	case "http":
		opts = append(opts, otlptracehttp.WithInsecure())
	case "https":
	default:
		return nil, errUnsupportedTP
	}
	opts = append(opts, otlptracehttp.WithEndpoint(u.Host), otlptracehttp.WithURLPath(u.Path))

	exporter, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return nil, err
	}

	attributes := []attribute.KeyValue{
		attribute.String("service.name", svcName),
		attribute.String("host.id", instanceID),
	}

	hostAttr, err := resource.New(ctx, resource.WithHost(), resource.WithOSDescription(), resource.WithContainer())
	if err != nil {
		return nil, err
	}
	attributes = append(attributes, hostAttr.Attributes()...)

	tp := tracesdk.NewTracerProvider(
		tracesdk.WithSampler(tracesdk.TraceIDRatioBased(fraction)),
		tracesdk.WithBatcher(exporter),
		tracesdk.WithResource(resource.NewSchemaless(attributes...)),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	return tp, nil
}
