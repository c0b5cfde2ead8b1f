// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package dashboard

// Event levels produced by the core. Log envelopes carry their own level.
const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelError = "error"
)

// Event is one line for the LogSink.
type Event struct {
	Timestamp string `json:"timestamp"`
	Topic     string `json:"topic"`
	Device    string `json:"device"`
	MsgType   string `json:"msg_type,omitempty"`
	Status    string `json:"status,omitempty"`
	Level     string `json:"level"`
	Text      string `json:"text"`
}

// PlotSink receives a buffer snapshot after every push.
type PlotSink interface {
	OnSample(id BufferID, snapshot []float64)
}

// StatusSink receives a device state after every update of that device.
type StatusSink interface {
	OnDeviceState(device string, online bool, values map[string]float64)
}

// LogSink receives every log line and every error.
type LogSink interface {
	OnEvent(ev Event)
}

// Sink is the set of callbacks the Dispatcher drives.
type Sink interface {
	PlotSink
	StatusSink
	LogSink
}

var _ Sink = (*Fanout)(nil)

// Fanout forwards every callback to each registered sink that implements it.
// Sinks are called synchronously in registration order.
type Fanout struct {
	plots    []PlotSink
	statuses []StatusSink
	logs     []LogSink
}

// NewFanout registers sinks. A value may implement any subset of
// PlotSink, StatusSink and LogSink.
func NewFanout(sinks ...interface{}) *Fanout {
	f := &Fanout{}
	for _, s := range sinks {
		f.Add(s)
	}
	return f
}

// Add registers one more sink. It must not be called concurrently with
// the callbacks.
func (f *Fanout) Add(sink interface{}) {
	if s, ok := sink.(PlotSink); ok {
		f.plots = append(f.plots, s)
	}
	if s, ok := sink.(StatusSink); ok {
		f.statuses = append(f.statuses, s)
	}
	if s, ok := sink.(LogSink); ok {
		f.logs = append(f.logs, s)
	}
}

func (f *Fanout) OnSample(id BufferID, snapshot []float64) {
	for _, s := range f.plots {
		s.OnSample(id, snapshot)
	}
}

func (f *Fanout) OnDeviceState(device string, online bool, values map[string]float64) {
	for _, s := range f.statuses {
		s.OnDeviceState(device, online, values)
	}
}

func (f *Fanout) OnEvent(ev Event) {
	for _, s := range f.logs {
		s.OnEvent(ev)
	}
}
