// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package dashboard

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/absmach/rigdash/pkg/errors"
)

// Topics carried by the feed.
const (
	TopicData = "data"
	TopicLogs = "logs"
	// TopicErr tags events produced by the core for failures.
	TopicErr = "err"
)

// Recognized device names.
const (
	DeviceDiSea    = "di-sea"
	DeviceDoser    = "doser"
	DeviceReactor  = "reactor"
	DeviceBattery  = "battery"
	DeviceVEDirect = "ve_direct"

	UnitDiSea1 = "di-sea_1"
	UnitDiSea2 = "di-sea_2"
)

// LogRecord is the body of a "logs" envelope.
type LogRecord struct {
	Logger  string `json:"logger,omitempty"`
	Level   string `json:"level,omitempty"`
	Message string `json:"message,omitempty"`
}

// Envelope is one decoded telemetry message.
type Envelope struct {
	Topic      string          `json:"topic"`
	Timestamp  string          `json:"timestamp,omitempty"`
	DeviceName string          `json:"device_name,omitempty"`
	MsgType    string          `json:"msg_type,omitempty"`
	Status     string          `json:"status,omitempty"`
	Data       json.RawMessage `json:"data,omitempty"`
	Log        LogRecord       `json:"log"`
}

// wireEnvelope keeps every header field raw so that producers sending a
// number where a string is expected do not fail the whole frame.
type wireEnvelope struct {
	Timestamp  json.RawMessage `json:"timestamp"`
	DeviceName json.RawMessage `json:"device_name"`
	MsgType    json.RawMessage `json:"msg_type"`
	Status     json.RawMessage `json:"status"`
	Data       json.RawMessage `json:"data"`
	Logger     json.RawMessage `json:"logger"`
	Level      json.RawMessage `json:"level"`
	Message    json.RawMessage `json:"message"`
}

// Decode parses the JSON document of a frame. Absent fields are left empty.
func Decode(topic string, payload []byte) (Envelope, error) {
	var w wireEnvelope
	if err := json.Unmarshal(payload, &w); err != nil {
		return Envelope{}, errors.Wrap(ErrDecode, err)
	}

	env := Envelope{
		Topic:      topic,
		Timestamp:  text(w.Timestamp),
		DeviceName: text(w.DeviceName),
		MsgType:    text(w.MsgType),
		Status:     text(w.Status),
		Log: LogRecord{
			Logger:  text(w.Logger),
			Level:   text(w.Level),
			Message: text(w.Message),
		},
	}
	if len(w.Data) > 0 && !bytes.Equal(w.Data, []byte("null")) {
		env.Data = w.Data
	}

	return env, nil
}

// text renders a raw JSON value as a pass-through string: strings
// unquoted, null as empty, anything else as its literal.
func text(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s
		}
	}
	return string(raw)
}

// Payload is the device-specific body of a "data" envelope.
type Payload interface {
	// Device returns the device name the payload was decoded for.
	Device() string
}

// DiSeaReading is one di-sea unit sample.
type DiSeaReading struct {
	PH      Number
	CO2     Number
	PSI     Number
	Temp    Number
	AirTemp Number
	// Cycle is nil when the unit did not report one.
	Cycle *int
}

func (r *DiSeaReading) UnmarshalJSON(data []byte) error {
	var w struct {
		PH      Number  `json:"ph"`
		CO2     Number  `json:"co2"`
		PSI     Number  `json:"psi"`
		Temp    Number  `json:"temp"`
		AirTemp Number  `json:"air_temp"`
		Cycle   *Number `json:"cycle"`
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	*r = DiSeaReading{PH: w.PH, CO2: w.CO2, PSI: w.PSI, Temp: w.Temp, AirTemp: w.AirTemp}
	if w.Cycle != nil {
		c := float64(*w.Cycle)
		if c != math.Trunc(c) {
			return errors.Wrap(errNotNumeric, fmt.Errorf("cycle %v is not an integer", c))
		}
		// float64(math.MaxInt) rounds up to 2^63, hence >=.
		if c >= math.MaxInt || c < math.MinInt {
			return errors.Wrap(errNotNumeric, fmt.Errorf("cycle %v is out of range", c))
		}
		n := int(c)
		r.Cycle = &n
	}

	return nil
}

// DiSeaPayload holds both di-sea units; a missing unit is nil.
type DiSeaPayload struct {
	Unit1 *DiSeaReading `json:"di-sea_1"`
	Unit2 *DiSeaReading `json:"di-sea_2"`
}

func (DiSeaPayload) Device() string { return DeviceDiSea }

// DoserPayload is a doser sample.
type DoserPayload struct {
	DosingRate Number `json:"dosing_rate"`
}

func (DoserPayload) Device() string { return DeviceDoser }

// ReactorPayload is a reactor sample.
type ReactorPayload struct {
	Flow Number `json:"flow"`
}

func (ReactorPayload) Device() string { return DeviceReactor }

// BatteryPayload is a battery sample.
type BatteryPayload struct {
	SOC Number `json:"soc"`
}

func (BatteryPayload) Device() string { return DeviceBattery }

// VEDirectPayload is a solar charge controller sample.
type VEDirectPayload struct {
	YieldTotal Number `json:"yield_total"`
}

func (VEDirectPayload) Device() string { return DeviceVEDirect }

// UnknownPayload is the body of a device the core does not track.
type UnknownPayload struct {
	Name string
	Raw  json.RawMessage
}

func (p UnknownPayload) Device() string { return p.Name }

// Payload decodes Data into the variant selected by DeviceName.
func (env Envelope) Payload() (Payload, error) {
	data := env.Data
	if len(data) == 0 {
		data = []byte("{}")
	}

	var p Payload
	var err error
	switch env.DeviceName {
	case DeviceDiSea:
		return decodeDiSea(data)
	case DeviceDoser:
		var v DoserPayload
		err = json.Unmarshal(data, &v)
		p = v
	case DeviceReactor:
		var v ReactorPayload
		err = json.Unmarshal(data, &v)
		p = v
	case DeviceBattery:
		var v BatteryPayload
		err = json.Unmarshal(data, &v)
		p = v
	case DeviceVEDirect:
		var v VEDirectPayload
		err = json.Unmarshal(data, &v)
		p = v
	default:
		return UnknownPayload{Name: env.DeviceName, Raw: env.Data}, nil
	}
	if err != nil {
		return nil, errors.Wrap(ErrDispatch, err)
	}

	return p, nil
}

// decodeDiSea decodes each unit on its own. A unit that fails to decode is
// left nil and named in the error returned alongside the partial payload.
func decodeDiSea(data []byte) (Payload, error) {
	var units map[string]json.RawMessage
	if err := json.Unmarshal(data, &units); err != nil {
		return nil, errors.Wrap(ErrDispatch, err)
	}

	var p DiSeaPayload
	var failed []string
	for _, u := range []struct {
		name string
		dst  **DiSeaReading
	}{
		{UnitDiSea1, &p.Unit1},
		{UnitDiSea2, &p.Unit2},
	} {
		raw, ok := units[u.name]
		if !ok || bytes.Equal(raw, []byte("null")) {
			continue
		}
		var r DiSeaReading
		if err := json.Unmarshal(raw, &r); err != nil {
			failed = append(failed, fmt.Sprintf("%s: %s", u.name, err))
			continue
		}
		*u.dst = &r
	}
	if len(failed) > 0 {
		return p, errors.Wrap(ErrDispatch, fmt.Errorf("di-sea units failed to decode: %s", strings.Join(failed, "; ")))
	}

	return p, nil
}
