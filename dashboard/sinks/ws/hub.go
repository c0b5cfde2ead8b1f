// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package ws

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/absmach/rigdash/dashboard"
	"github.com/absmach/rigdash/logger"
	"github.com/gorilla/websocket"
)

// DefQueueSize is the number of pending messages per client.
const DefQueueSize = 256

const (
	typeSample = "sample"
	typeDevice = "device"
	typeEvent  = "event"
)

var (
	_ dashboard.Sink = (*Hub)(nil)
	_ http.Handler   = (*Hub)(nil)
)

// Message is the JSON document sent to display clients.
type Message struct {
	Type    string             `json:"type"`
	ID      dashboard.BufferID `json:"id,omitempty"`
	Samples []float64          `json:"samples,omitempty"`
	Device  string             `json:"device,omitempty"`
	Online  *bool              `json:"online,omitempty"`
	Values  map[string]float64 `json:"values,omitempty"`
	Event   *dashboard.Event   `json:"event,omitempty"`
}

// Hub is a dashboard sink broadcasting to WebSocket clients and the
// http.Handler accepting them.
type Hub struct {
	mu       sync.RWMutex
	clients  map[*client]struct{}
	queue    int
	upgrader websocket.Upgrader
	logger   logger.Logger
}

// NewHub returns a hub with queueSize pending messages per client.
func NewHub(queueSize int, logger logger.Logger) *Hub {
	if queueSize <= 0 {
		queueSize = DefQueueSize
	}
	return &Hub{
		clients: make(map[*client]struct{}),
		queue:   queueSize,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		logger: logger,
	}
}

// ServeHTTP upgrades the request and registers the display client.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn(fmt.Sprintf("Failed to upgrade connection to websocket: %s", err))
		return
	}

	c := newClient(conn, h.queue)
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	h.logger.Debug(fmt.Sprintf("Display client %s connected", r.RemoteAddr))

	go c.writeLoop()
	go func() {
		c.readLoop()
		h.remove(c)
		h.logger.Debug(fmt.Sprintf("Display client %s disconnected", r.RemoteAddr))
	}()
}

// Clients returns the number of connected display clients.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		c.close()
		delete(h.clients, c)
	}
}

func (h *Hub) OnSample(id dashboard.BufferID, snapshot []float64) {
	h.broadcast(Message{Type: typeSample, ID: id, Samples: snapshot})
}

func (h *Hub) OnDeviceState(device string, online bool, values map[string]float64) {
	h.broadcast(Message{Type: typeDevice, Device: device, Online: &online, Values: values})
}

func (h *Hub) OnEvent(ev dashboard.Event) {
	h.broadcast(Message{Type: typeEvent, Event: &ev})
}

func (h *Hub) broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Warn(fmt.Sprintf("Failed to encode %s message: %s", msg.Type, err))
		return
	}

	var slow []*client
	h.mu.RLock()
	for c := range h.clients {
		if !c.enqueue(data) {
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range slow {
		h.logger.Warn("Dropping display client that cannot keep up")
		c.close()
		h.remove(c)
	}
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, c)
}
