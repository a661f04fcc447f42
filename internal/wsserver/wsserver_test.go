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
	"fmt"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	ws "github.com/gorilla/websocket"
	"github.com/kaleido-io/ledgerpay/internal/config"
	"github.com/kaleido-io/ledgerpay/internal/orders"
	"github.com/kaleido-io/ledgerpay/internal/subscribers"
	"github.com/kaleido-io/ledgerpay/pkg/lptypes"
	"github.com/stretchr/testify/assert"
)

type testSubmitter struct {
	validator orders.SubmissionValidator
	mux       sync.Mutex
	submitted []*lptypes.OrderSubmission
	err       error
}

func (ts *testSubmitter) ParseSubmission(ctx context.Context, data []byte) (*lptypes.OrderSubmission, error) {
	return ts.validator.Parse(ctx, data)
}

func (ts *testSubmitter) SubmitOrder(ctx context.Context, submission *lptypes.OrderSubmission) (*lptypes.Order, error) {
	ts.mux.Lock()
	defer ts.mux.Unlock()
	if ts.err != nil {
		return nil, ts.err
	}
	ts.submitted = append(ts.submitted, submission)
	return lptypes.NewPendingOrder(submission.PayerID, submission.Item), nil
}

func (ts *testSubmitter) count() int {
	ts.mux.Lock()
	defer ts.mux.Unlock()
	return len(ts.submitted)
}

func newTestWebSocketServer(t *testing.T) (*webSocketServer, subscribers.Registry, *testSubmitter, *httptest.Server) {
	config.Reset()
	sv, err := orders.NewSubmissionValidator(context.Background())
	assert.NoError(t, err)
	submitter := &testSubmitter{validator: sv}
	registry := subscribers.NewRegistry()
	s := NewWebSocketServer(context.Background(), registry, submitter).(*webSocketServer)
	ts := httptest.NewServer(s.Handler())
	return s, registry, submitter, ts
}

func dial(t *testing.T, ts *httptest.Server) *ws.Conn {
	u, err := url.Parse(ts.URL)
	assert.NoError(t, err)
	u.Scheme = "ws"
	u.Path = "/payment"
	c, _, err := ws.DefaultDialer.Dial(u.String(), nil)
	assert.NoError(t, err)
	return c
}

func waitForCount(t *testing.T, registry subscribers.Registry, count int) {
	assert.Eventually(t, func() bool { return registry.Count() == count }, 5*time.Second, 5*time.Millisecond)
}

func TestConnectBroadcastDisconnect(t *testing.T) {
	_, registry, _, ts := newTestWebSocketServer(t)
	defer ts.Close()

	c := dial(t, ts)
	waitForCount(t, registry, 1)

	registry.Broadcast(context.Background(), []byte(`{"senderid":"S1","status":"completed"}`))

	msgType, data, err := c.ReadMessage()
	assert.NoError(t, err)
	assert.Equal(t, ws.TextMessage, msgType)
	assert.Equal(t, `{"senderid":"S1","status":"completed"}`, string(data))

	c.Close()
	waitForCount(t, registry, 0)
}

func TestBroadcastFanOut(t *testing.T) {
	_, registry, _, ts := newTestWebSocketServer(t)
	defer ts.Close()

	c1 := dial(t, ts)
	defer c1.Close()
	c2 := dial(t, ts)
	defer c2.Close()
	c3 := dial(t, ts)
	waitForCount(t, registry, 3)

	c3.Close()
	waitForCount(t, registry, 2)

	registry.Broadcast(context.Background(), []byte(`{"senderid":"S1","status":"completed"}`))

	for _, c := range []*ws.Conn{c1, c2} {
		_, data, err := c.ReadMessage()
		assert.NoError(t, err)
		assert.Equal(t, `{"senderid":"S1","status":"completed"}`, string(data))
	}
}

func TestSubmitOrderKeepsConnectionOpen(t *testing.T) {
	_, registry, submitter, ts := newTestWebSocketServer(t)
	defer ts.Close()

	c := dial(t, ts)
	defer c.Close()
	waitForCount(t, registry, 1)

	err := c.WriteMessage(ws.TextMessage, []byte(`{"payerId":"S1","item":"widget"}`))
	assert.NoError(t, err)
	assert.Eventually(t, func() bool { return submitter.count() == 1 }, 5*time.Second, 5*time.Millisecond)
	assert.Equal(t, "S1", submitter.submitted[0].PayerID)
	assert.Equal(t, "widget", submitter.submitted[0].Item)

	registry.Broadcast(context.Background(), []byte(`{"senderid":"S1","status":"completed"}`))
	_, data, err := c.ReadMessage()
	assert.NoError(t, err)
	assert.Equal(t, `{"senderid":"S1","status":"completed"}`, string(data))
}

func TestBinaryMessageClosesConnection(t *testing.T) {
	_, registry, submitter, ts := newTestWebSocketServer(t)
	defer ts.Close()

	c := dial(t, ts)
	defer c.Close()
	waitForCount(t, registry, 1)

	err := c.WriteMessage(ws.BinaryMessage, []byte(`{"payerId":"S1","item":"widget"}`))
	assert.NoError(t, err)

	_, _, err = c.ReadMessage()
	assert.True(t, ws.IsCloseError(err, ws.CloseUnsupportedData))
	assert.Regexp(t, "LP10117", err)
	waitForCount(t, registry, 0)
	assert.Equal(t, 0, submitter.count())
}

func TestInvalidSubmissionClosesConnection(t *testing.T) {
	_, registry, submitter, ts := newTestWebSocketServer(t)
	defer ts.Close()

	c := dial(t, ts)
	defer c.Close()
	waitForCount(t, registry, 1)

	err := c.WriteMessage(ws.TextMessage, []byte(`{"item":"widget"}`))
	assert.NoError(t, err)

	_, _, err = c.ReadMessage()
	assert.True(t, ws.IsCloseError(err, ws.CloseInvalidFramePayloadData))
	assert.Regexp(t, "LP10115", err)
	waitForCount(t, registry, 0)
	assert.Equal(t, 0, submitter.count())
}

func TestSubmitFailureClosesConnection(t *testing.T) {
	_, registry, submitter, ts := newTestWebSocketServer(t)
	defer ts.Close()
	submitter.err = fmt.Errorf("pop")

	c := dial(t, ts)
	defer c.Close()
	waitForCount(t, registry, 1)

	err := c.WriteMessage(ws.TextMessage, []byte(`{"payerId":"S1","item":"widget"}`))
	assert.NoError(t, err)

	_, _, err = c.ReadMessage()
	assert.True(t, ws.IsCloseError(err, ws.CloseInvalidFramePayloadData))
	waitForCount(t, registry, 0)
}

func TestServerCloseDisconnectsAll(t *testing.T) {
	s, registry, _, ts := newTestWebSocketServer(t)
	defer ts.Close()

	c1 := dial(t, ts)
	defer c1.Close()
	c2 := dial(t, ts)
	defer c2.Close()
	waitForCount(t, registry, 2)

	s.Close()
	waitForCount(t, registry, 0)

	_, _, err := c1.ReadMessage()
	assert.Error(t, err)
}

func TestSendQueueFullAndClosed(t *testing.T) {
	config.Reset()
	config.Set(config.WebSocketSendQueueLength, 1)
	s := NewWebSocketServer(context.Background(), subscribers.NewRegistry(), nil).(*webSocketServer)
	c := newConnection(s, nil)

	assert.NoError(t, c.Send(context.Background(), []byte(`one`)))
	err := c.Send(context.Background(), []byte(`two`))
	assert.Regexp(t, "LP10119", err)

	close(c.closing)
	err = c.Send(context.Background(), []byte(`three`))
	assert.Regexp(t, "LP10118", err)
}

func TestUpgradeFail(t *testing.T) {
	_, registry, _, ts := newTestWebSocketServer(t)
	defer ts.Close()

	res, err := ts.Client().Get(ts.URL)
	assert.NoError(t, err)
	assert.Equal(t, 400, res.StatusCode)
	assert.Equal(t, 0, registry.Count())
}

func TestBufferSizesFromConfig(t *testing.T) {
	config.Reset()
	config.Set(config.WebSocketReadBufferSize, "16Kb")
	config.Set(config.WebSocketWriteBufferSize, "2KB")
	s := NewWebSocketServer(context.Background(), subscribers.NewRegistry(), &testSubmitter{}).(*webSocketServer)
	assert.Equal(t, 16384, s.upgrader.ReadBufferSize)
	assert.Equal(t, 2048, s.upgrader.WriteBufferSize)
}
