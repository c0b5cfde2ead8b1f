// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

// Package main contains the rigdash main function to start the dashboard service.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/absmach/rigdash/dashboard"
	"github.com/absmach/rigdash/dashboard/api"
	"github.com/absmach/rigdash/dashboard/sinks/prometheus"
	"github.com/absmach/rigdash/dashboard/sinks/terminal"
	"github.com/absmach/rigdash/dashboard/sinks/ws"
	"github.com/absmach/rigdash/dashboard/tracing"
	"github.com/absmach/rigdash/internal"
	jaegerclient "github.com/absmach/rigdash/internal/clients/jaeger"
	"github.com/absmach/rigdash/internal/env"
	"github.com/absmach/rigdash/internal/server"
	httpserver "github.com/absmach/rigdash/internal/server/http"
	rdlog "github.com/absmach/rigdash/logger"
	"github.com/absmach/rigdash/pkg/messaging"
	"github.com/absmach/rigdash/pkg/messaging/brokers"
	msgmetrics "github.com/absmach/rigdash/pkg/messaging/metrics"
	"github.com/absmach/rigdash/pkg/ticker"
	"github.com/absmach/rigdash/pkg/uuid"
	kitprometheus "github.com/go-kit/kit/metrics/prometheus"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"golang.org/x/sync/errgroup"
)

const (
	svcName        = "dashboard"
	envPrefixHTTP  = "RD_DASHBOARD_HTTP_"
	defSvcHTTPPort = "9030"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	g, ctx := errgroup.WithContext(ctx)

	cfg := dashboard.Config{}
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("failed to load %s configuration : %s", svcName, err)
	}

	logger, err := rdlog.New(os.Stdout, cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to init logger: %s", err)
	}

	var exitCode int
	defer rdlog.ExitWithError(&exitCode)

	if cfg.ConfigFile != "" {
		fc, err := dashboard.ReadConfigFile(cfg.ConfigFile)
		if err != nil {
			logger.Error(err.Error())
			exitCode = 1
			return
		}
		cfg = cfg.Merge(fc)
	}

	instanceID, err := uuid.InstanceID(cfg.InstanceID, uuid.New())
	if err != nil {
		logger.Error(fmt.Sprintf("failed to generate instanceID: %s", err))
		exitCode = 1
		return
	}

	httpServerConfig := server.Config{Port: defSvcHTTPPort}
	if err := env.Parse(&httpServerConfig, env.Options{Prefix: envPrefixHTTP}); err != nil {
		logger.Error(fmt.Sprintf("failed to load %s HTTP server configuration : %s", svcName, err))
		exitCode = 1
		return
	}

	sub, err := newSubscriber(cfg, logger)
	if err != nil {
		logger.Error(fmt.Sprintf("failed to create subscriber: %s", err))
		exitCode = 1
		return
	}
	if err := brokers.Connect(ctx, sub, cfg.BrokerURL, brokers.NewBackOff(cfg.ConnectRetries), logger); err != nil {
		logger.Error(fmt.Sprintf("failed to connect to feed %s: %s", cfg.BrokerURL, err))
		exitCode = 1
		return
	}
	logger.Info(fmt.Sprintf("Subscribed to feed %s", cfg.BrokerURL))

	hub := ws.NewHub(cfg.WSQueueSize, logger)
	defer hub.Close()

	promSink, err := prometheus.New("rigdash", stdprometheus.DefaultRegisterer)
	if err != nil {
		logger.Error(fmt.Sprintf("failed to register sink metrics: %s", err))
		exitCode = 1
		return
	}

	core := dashboard.NewCore(cfg.BufferCapacity)
	dispatcher := dashboard.NewDispatcher(core, dashboard.NewFanout(terminal.New(logger), promSink, hub))

	tracer := otel.Tracer(svcName)
	if cfg.JaegerURL != "" {
		tp, err := jaegerclient.NewProvider(ctx, svcName, cfg.JaegerURL, instanceID, cfg.TraceRatio)
		if err != nil {
			logger.Error(fmt.Sprintf("failed to init Jaeger: %s", err))
			exitCode = 1
			return
		}
		defer func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				logger.Error(fmt.Sprintf("error shutting down tracer provider: %s", err))
			}
		}()
		tracer = tp.Tracer(svcName)
	}

	svc := dashboard.New(core, dispatcher)
	svc = tracing.New(svc, tracer)
	svc = api.LoggingMiddleware(svc, logger)
	counter, latency := internal.MakeMetrics(svcName, "api")
	svc = api.MetricsMiddleware(svc, counter, latency)

	poller := dashboard.NewPoller(sub, svc, dispatcher, ticker.NewTicker(cfg.Tick), logger)

	hs := httpserver.New(ctx, cancel, svcName, httpServerConfig, api.MakeHandler(svc, hub, logger, svcName, instanceID), logger)

	g.Go(func() error {
		return poller.Run(ctx)
	})

	g.Go(func() error {
		return hs.Start()
	})

	g.Go(func() error {
		return server.StopSignalHandler(ctx, cancel, logger, svcName, hs)
	})

	if err := g.Wait(); err != nil {
		logger.Error(fmt.Sprintf("%s service terminated: %s", svcName, err))
	}
}

func newSubscriber(cfg dashboard.Config, logger rdlog.Logger) (messaging.Subscriber, error) {
	sub, err := brokers.NewSubscriber(cfg.BrokerURL, messaging.Config{
		ClientID:       cfg.ClientID,
		Subjects:       cfg.Subjects,
		ConnectTimeout: cfg.ConnectTimeout,
		PollTimeout:    cfg.PollTimeout,
		InboxSize:      cfg.InboxSize,
	}, logger)
	if err != nil {
		return nil, err
	}

	counter := kitprometheus.NewCounterFrom(stdprometheus.CounterOpts{
		Namespace: svcName,
		Subsystem: "feed",
		Name:      "poll_count",
		Help:      "Number of polls by outcome.",
	}, []string{"method", "outcome"})
	latency := kitprometheus.NewSummaryFrom(stdprometheus.SummaryOpts{
		Namespace: svcName,
		Subsystem: "feed",
		Name:      "connect_latency_seconds",
		Help:      "Duration of broker connects in seconds.",
	}, []string{"method"})

	return msgmetrics.NewSubscriber(sub, counter, latency), nil
}
