// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

// Package prometheus exposes dashboard state as Prometheus metrics.
package prometheus

import (
	"strings"

	"github.com/absmach/rigdash/dashboard"
	"github.com/go-kit/kit/metrics"
	kitprometheus "github.com/go-kit/kit/metrics/prometheus"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
)

const (
	subsystem = "sink"
	// otherLabel replaces topics and levels outside the known sets.
	otherLabel = "other"
)

var (
	topics = map[string]string{
		dashboard.TopicData: dashboard.TopicData,
		dashboard.TopicLogs: dashboard.TopicLogs,
		dashboard.TopicErr:  dashboard.TopicErr,
	}
	levels = map[string]string{
		dashboard.LevelDebug: dashboard.LevelDebug,
		dashboard.LevelInfo:  dashboard.LevelInfo,
		"warn":               "warn",
		"warning":            "warn",
		dashboard.LevelError: dashboard.LevelError,
		"critical":           "critical",
		"fatal":              "critical",
	}
)

var _ dashboard.Sink = (*Sink)(nil)

// Sink mirrors every callback into gauges and counters.
type Sink struct {
	latest metrics.Gauge
	window metrics.Gauge
	online metrics.Gauge
	value  metrics.Gauge
	events metrics.Counter
}

// New registers the sink metrics with reg.
func New(namespace string, reg stdprometheus.Registerer) (*Sink, error) {
	latest := stdprometheus.NewGaugeVec(stdprometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "sample_latest",
		Help:      "Newest sample pushed into a buffer.",
	}, []string{"buffer"})
	window := stdprometheus.NewGaugeVec(stdprometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "sample_window",
		Help:      "Number of samples retained by a buffer.",
	}, []string{"buffer"})
	online := stdprometheus.NewGaugeVec(stdprometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "device_online",
		Help:      "1 once a device has reported, 0 otherwise.",
	}, []string{"device"})
	value := stdprometheus.NewGaugeVec(stdprometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "device_value",
		Help:      "Last-known scalar reported by a device.",
	}, []string{"device", "field"})
	events := stdprometheus.NewCounterVec(stdprometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "events_total",
		Help:      "Log sink events by topic and level.",
	}, []string{"topic", "level"})

	for _, c := range []stdprometheus.Collector{latest, window, online, value, events} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return &Sink{
		latest: kitprometheus.NewGauge(latest),
		window: kitprometheus.NewGauge(window),
		online: kitprometheus.NewGauge(online),
		value:  kitprometheus.NewGauge(value),
		events: kitprometheus.NewCounter(events),
	}, nil
}

func (s *Sink) OnSample(id dashboard.BufferID, snapshot []float64) {
	s.window.With("buffer", string(id)).Set(float64(len(snapshot)))
	if len(snapshot) == 0 {
		return
	}
	s.latest.With("buffer", string(id)).Set(snapshot[len(snapshot)-1])
}

func (s *Sink) OnDeviceState(device string, online bool, values map[string]float64) {
	flag := 0.0
	if online {
		flag = 1
	}
	s.online.With("device", device).Set(flag)
	for field, v := range values {
		s.value.With("device", device, "field", field).Set(v)
	}
}

func (s *Sink) OnEvent(ev dashboard.Event) {
	s.events.With("topic", label(topics, ev.Topic), "level", label(levels, ev.Level)).Add(1)
}

// label maps producer-supplied text onto a bounded set of label values.
func label(known map[string]string, v string) string {
	if l, ok := known[strings.ToLower(strings.TrimSpace(v))]; ok {
		return l
	}
	return otherLabel
}
