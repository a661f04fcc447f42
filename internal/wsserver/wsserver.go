// Copyright © 2021 Kaleido, Inc.
//
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package wsserver

import (
	"context"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/kaleido-io/ledgerpay/internal/config"
	"github.com/kaleido-io/ledgerpay/internal/log"
	"github.com/kaleido-io/ledgerpay/internal/subscribers"
	"github.com/kaleido-io/ledgerpay/pkg/lptypes"
)

// OrderSubmitter accepts the order submissions that arrive as text frames
type OrderSubmitter interface {
	ParseSubmission(ctx context.Context, data []byte) (*lptypes.OrderSubmission, error)
	SubmitOrder(ctx context.Context, submission *lptypes.OrderSubmission) (*lptypes.Order, error)
}

// WebSocketServer registers every connection as a subscriber for completion notifications,
// and accepts order submissions from the same connections
type WebSocketServer interface {
	Handler() http.HandlerFunc
	Close()
}

type webSocketServer struct {
	ctx             context.Context
	mux             sync.Mutex
	upgrader        *websocket.Upgrader
	connections     map[string]*webSocketConnection
	registry        subscribers.Registry
	submitter       OrderSubmitter
	sendQueueLength int
}

// NewWebSocketServer create a new server with a simplified interface
func NewWebSocketServer(ctx context.Context, registry subscribers.Registry, submitter OrderSubmitter) WebSocketServer {
	return &webSocketServer{
		ctx:             log.WithLogField(ctx, "role", "websocket"),
		connections:     make(map[string]*webSocketConnection),
		registry:        registry,
		submitter:       submitter,
		sendQueueLength: config.GetInt(config.WebSocketSendQueueLength),
		upgrader: &websocket.Upgrader{
			ReadBufferSize:  int(config.GetByteSize(config.WebSocketReadBufferSize)),
			WriteBufferSize: int(config.GetByteSize(config.WebSocketWriteBufferSize)),
		},
	}
}

func (s *webSocketServer) handler(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.L(s.ctx).Errorf("WebSocket upgrade failed: %s", err)
		return
	}
	c := newConnection(s, conn)
	s.mux.Lock()
	s.connections[c.id] = c
	s.mux.Unlock()
	s.registry.Add(c.id, c)
	c.start()
}

func (s *webSocketServer) connectionClosed(c *webSocketConnection) {
	s.registry.Remove(c.id)
	s.mux.Lock()
	defer s.mux.Unlock()
	delete(s.connections, c.id)
}

func (s *webSocketServer) Handler() http.HandlerFunc {
	return s.handler
}

func (s *webSocketServer) Close() {
	s.mux.Lock()
	conns := make([]*webSocketConnection, 0, len(s.connections))
	for _, c := range s.connections {
		conns = append(conns, c)
	}
	s.mux.Unlock()
	for _, c := range conns {
		c.close()
	}
}
