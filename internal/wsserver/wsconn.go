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
	"sync"
	"time"

	"github.com/google/uuid"
	ws "github.com/gorilla/websocket"
	"github.com/kaleido-io/ledgerpay/internal/i18n"
	"github.com/kaleido-io/ledgerpay/internal/log"
)

const (
	closeWriteTimeout = 5 * time.Second
	maxCloseReason    = 120
)

type webSocketConnection struct {
	id        string
	ctx       context.Context
	server    *webSocketServer
	conn      *ws.Conn
	mux       sync.Mutex
	closed    bool
	sendQueue chan []byte
	closing   chan struct{}
}

func newConnection(server *webSocketServer, conn *ws.Conn) *webSocketConnection {
	id := uuid.NewString()
	return &webSocketConnection{
		id:        id,
		server:    server,
		conn:      conn,
		sendQueue: make(chan []byte, server.sendQueueLength),
		closing:   make(chan struct{}),
		ctx:       log.WithLogField(server.ctx, "ws", id),
	}
}

func (c *webSocketConnection) start() {
	go c.listen()
	go c.sender()
}

// Send queues a payload for delivery, without waiting for the write to the socket
func (c *webSocketConnection) Send(ctx context.Context, payload []byte) error {
	select {
	case <-c.closing:
		return i18n.NewError(ctx, i18n.MsgSinkClosed, c.id)
	default:
	}
	select {
	case c.sendQueue <- payload:
		return nil
	default:
		return i18n.NewError(ctx, i18n.MsgSinkQueueFull, c.id)
	}
}

func (c *webSocketConnection) close() {
	c.mux.Lock()
	wasClosed := c.closed
	if !c.closed {
		c.closed = true
		c.conn.Close()
		close(c.closing)
	}
	c.mux.Unlock()

	if !wasClosed {
		c.server.connectionClosed(c)
		log.L(c.ctx).Infof("Disconnected")
	}
}

// reject sends a close frame carrying the reason, before closing the connection
func (c *webSocketConnection) reject(code int, err error) {
	reason := err.Error()
	if len(reason) > maxCloseReason {
		reason = reason[0:maxCloseReason]
	}
	log.L(c.ctx).Warnf("Closing connection: %s", err)
	_ = c.conn.WriteControl(ws.CloseMessage, ws.FormatCloseMessage(code, reason), time.Now().Add(closeWriteTimeout))
	c.close()
}

func (c *webSocketConnection) sender() {
	defer c.close()
	for {
		select {
		case payload := <-c.sendQueue:
			if err := c.conn.WriteMessage(ws.TextMessage, payload); err != nil {
				log.L(c.ctx).Errorf("Websocket write failed: %s", err)
				return
			}
		case <-c.closing:
			log.L(c.ctx).Debugf("Websocket sender exiting")
			return
		}
	}
}

func (c *webSocketConnection) listen() {
	defer c.close()
	log.L(c.ctx).Infof("Websocket connected")
	for {
		msgType, data, err := c.conn.ReadMessage()
		if err != nil {
			log.L(c.ctx).Infof("Websocket closed: %s", err)
			return
		}
		if msgType != ws.TextMessage {
			c.reject(ws.CloseUnsupportedData, i18n.NewError(c.ctx, i18n.MsgBinaryMessageRejected))
			return
		}
		log.L(c.ctx).Debugf("Websocket received: %s", data)

		submission, err := c.server.submitter.ParseSubmission(c.ctx, data)
		if err == nil {
			_, err = c.server.submitter.SubmitOrder(c.ctx, submission)
		}
		if err != nil {
			c.reject(ws.CloseInvalidFramePayloadData, err)
			return
		}
	}
}
