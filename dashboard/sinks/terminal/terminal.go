// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

// Package terminal renders LogSink events as terminal lines.
package terminal

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/absmach/rigdash/dashboard"
	"github.com/absmach/rigdash/logger"
	"github.com/fatih/color"
)

// Format renders an event as
// "ts | topic | device | msg_type | status | text".
func Format(ev dashboard.Event) string {
	return fmt.Sprintf("%s | %-5s | %-8s | %-9s | %-7s | %s", ev.Timestamp, ev.Topic, ev.Device, ev.MsgType, ev.Status, ev.Text)
}

var _ dashboard.LogSink = (*Sink)(nil)

// Sink writes events through the service logger at the event's level.
type Sink struct {
	logger logger.Logger
}

// New returns a LogSink backed by logger.
func New(logger logger.Logger) *Sink {
	return &Sink{logger: logger}
}

func (s *Sink) OnEvent(ev dashboard.Event) {
	line := Format(ev)
	switch strings.ToLower(ev.Level) {
	case dashboard.LevelError, "critical", "fatal":
		s.logger.Error(line)
	case "warn", "warning":
		s.logger.Warn(line)
	case dashboard.LevelDebug:
		s.logger.Debug(line)
	default:
		s.logger.Info(line)
	}
}

var _ dashboard.LogSink = (*Writer)(nil)

// Writer prints plain lines, colouring errors and warnings.
type Writer struct {
	mu   sync.Mutex
	out  io.Writer
	warn *color.Color
	err  *color.Color
}

// NewWriter returns a LogSink printing to out. Colours follow
// color.NoColor, so they are dropped when out is not a terminal.
func NewWriter(out io.Writer) *Writer {
	return &Writer{
		out:  out,
		warn: color.New(color.FgYellow),
		err:  color.New(color.FgRed, color.Bold),
	}
}

func (w *Writer) OnEvent(ev dashboard.Event) {
	w.mu.Lock()
	defer w.mu.Unlock()

	line := Format(ev)
	switch strings.ToLower(ev.Level) {
	case dashboard.LevelError, "critical", "fatal":
		w.err.Fprintln(w.out, line)
	case "warn", "warning":
		w.warn.Fprintln(w.out, line)
	default:
		fmt.Fprintln(w.out, line)
	}
}
