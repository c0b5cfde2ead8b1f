// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package dashboard

import (
	"fmt"
	"math"
	"time"

	"github.com/absmach/rigdash/pkg/errors"
)

const (
	// ClockLayout stamps events whose envelope carries no timestamp.
	ClockLayout = "15:04:05"

	// CoreDevice is the device name on events the core raises itself.
	CoreDevice = "core"

	errMsgType = "exception"
)

// ErrorReporter turns a failure into a LogSink event.
type ErrorReporter interface {
	Report(device string, err error)
}

var _ ErrorReporter = (*Dispatcher)(nil)

// Dispatcher routes decoded envelopes into the Core and notifies sinks.
// It holds no state between calls. Route must be called from a single
// goroutine.
type Dispatcher struct {
	core *Core
	sink Sink
	now  func() time.Time
}

// NewDispatcher returns a Dispatcher writing into core.
func NewDispatcher(core *Core, sink Sink) *Dispatcher {
	return &Dispatcher{
		core: core,
		sink: sink,
		now:  time.Now,
	}
}

// Route applies one envelope. Any failure, including a panic, is reported
// to the LogSink as an ErrDispatch and returned.
func (d *Dispatcher) Route(env Envelope) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Wrap(ErrDispatch, fmt.Errorf("recovered: %v", r))
		}
		if err != nil {
			d.Report(env.DeviceName, err)
		}
	}()

	switch env.Topic {
	case TopicLogs:
		d.sink.OnEvent(Event{
			Timestamp: d.stamp(env.Timestamp),
			Topic:     TopicLogs,
			Device:    env.Log.Logger,
			MsgType:   env.MsgType,
			Status:    env.Status,
			Level:     env.Log.Level,
			Text:      env.Log.Message,
		})
		return nil
	case TopicData:
		return d.routeData(env)
	default:
		d.sink.OnEvent(Event{
			Timestamp: d.stamp(env.Timestamp),
			Topic:     env.Topic,
			Device:    env.DeviceName,
			Level:     LevelDebug,
			Text:      fmt.Sprintf("ignored frame on unknown topic %q", env.Topic),
		})
		return nil
	}
}

// Report sends err to the LogSink as an error event.
func (d *Dispatcher) Report(device string, err error) {
	if device == "" {
		device = CoreDevice
	}
	d.sink.OnEvent(ErrorEvent(d.now().Format(ClockLayout), device, err))
}

// ErrorEvent builds the "err" topic event reporting err for device.
func ErrorEvent(ts, device string, err error) Event {
	return Event{
		Timestamp: ts,
		Topic:     TopicErr,
		Device:    device,
		MsgType:   errMsgType,
		Status:    LevelError,
		Level:     LevelError,
		Text:      err.Error(),
	}
}

func (d *Dispatcher) routeData(env Envelope) error {
	// A partially decoded payload is still applied before err is returned.
	payload, err := env.Payload()
	if payload == nil {
		return err
	}

	d.sink.OnEvent(Event{
		Timestamp: d.stamp(env.Timestamp),
		Topic:     TopicData,
		Device:    env.DeviceName,
		MsgType:   env.MsgType,
		Status:    env.Status,
		Level:     LevelInfo,
		Text:      Summary(payload),
	})

	store := d.core.Store()
	switch p := payload.(type) {
	case DiSeaPayload:
		store.MarkOnline(DeviceDiSea)
		d.applyUnit(UnitDiSea1, p.Unit1, DiSea1PH, DiSea1CO2, DiSea1PSI)
		d.applyUnit(UnitDiSea2, p.Unit2, DiSea2PH, DiSea2CO2, DiSea2PSI)
		if p.Unit1 != nil && p.Unit1.Cycle != nil {
			d.core.Cycle().Observe(*p.Unit1.Cycle)
		}
		d.notify(DeviceDiSea)

		var missing []string
		if p.Unit1 == nil {
			missing = append(missing, UnitDiSea1)
		}
		if p.Unit2 == nil {
			missing = append(missing, UnitDiSea2)
		}
		if err == nil && len(missing) > 0 {
			err = errors.Wrap(ErrDispatch, fmt.Errorf("di-sea reading without %v", missing))
		}
	case DoserPayload:
		d.push(DoserDosingRate, p.DosingRate.Float())
		store.MarkOnline(DeviceDoser)
		d.notify(DeviceDoser)
	case ReactorPayload:
		store.UpdateField(DeviceReactor, "flow", p.Flow.Float())
		store.MarkOnline(DeviceReactor)
		d.notify(DeviceReactor)
	case BatteryPayload:
		store.UpdateField(DeviceBattery, "soc", ClampSOC(p.SOC.Float()))
		d.notify(DeviceBattery)
	case VEDirectPayload:
		store.UpdateField(DeviceVEDirect, "yield_total", p.YieldTotal.Float())
		d.notify(DeviceVEDirect)
	}

	return err
}

func (d *Dispatcher) applyUnit(unit string, r *DiSeaReading, ph, co2, psi BufferID) {
	if r == nil {
		return
	}
	d.push(ph, r.PH.Float())
	d.push(co2, r.CO2.Float())
	d.push(psi, r.PSI.Float())

	store := d.core.Store()
	store.UpdateField(DeviceDiSea, unit+".air_temp", r.AirTemp.Float())
	store.UpdateField(DeviceDiSea, unit+".temp", r.Temp.Float())
	store.UpdateField(DeviceDiSea, unit+".psi", r.PSI.Float())
}

func (d *Dispatcher) push(id BufferID, v float64) {
	b, ok := d.core.Buffer(id)
	if !ok {
		panic(fmt.Sprintf("no buffer %s", id))
	}
	b.Push(v)
	d.sink.OnSample(id, b.Snapshot())
}

func (d *Dispatcher) notify(device string) {
	st, ok := d.core.Store().State(device)
	if !ok {
		return
	}
	d.sink.OnDeviceState(st.Name, st.Online, st.Values)
}

func (d *Dispatcher) stamp(ts string) string {
	if ts != "" {
		return ts
	}
	return d.now().Format(ClockLayout)
}

// ClampSOC bounds a battery state of charge to [0, 100].
func ClampSOC(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}

// Summary renders the compact terminal line for a data payload.
func Summary(p Payload) string {
	switch v := p.(type) {
	case DiSeaPayload:
		d1, d2 := v.Unit1, v.Unit2
		if d1 == nil {
			d1 = &DiSeaReading{}
		}
		if d2 == nil {
			d2 = &DiSeaReading{}
		}
		return fmt.Sprintf("d1 T=%.2f°C psi=%.2f | d2 T=%.2f°C psi=%.2f", d1.Temp, d1.PSI, d2.Temp, d2.PSI)
	case DoserPayload:
		return fmt.Sprintf("rate=%.2f", v.DosingRate)
	case ReactorPayload:
		return fmt.Sprintf("flow=%.0f L/min", v.Flow)
	case BatteryPayload:
		return fmt.Sprintf("soc=%.0f", v.SOC)
	case VEDirectPayload:
		return fmt.Sprintf("yield_total=%.2f", v.YieldTotal)
	case UnknownPayload:
		if len(v.Raw) == 0 {
			return "untracked device"
		}
		return fmt.Sprintf("untracked device data=%s", v.Raw)
	default:
		return ""
	}
}
