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

package orchestrator

import (
	"context"
	"testing"

	"github.com/kaleido-io/ledgerpay/internal/metrics"
	"github.com/kaleido-io/ledgerpay/pkg/lptypes"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestSubmitOrderInvalid(t *testing.T) {
	o, _ := newTestOrchestrator(t)

	_, err := o.SubmitOrder(context.Background(), &lptypes.OrderSubmission{PayerID: "S1"})
	assert.Regexp(t, "LP10115", err)
	_, err = o.ParseSubmission(context.Background(), []byte(`{"payerId":"S1"}`))
	assert.Regexp(t, "LP10115", err)
	assert.Empty(t, o.GetOrders(context.Background()))
}

func TestSubmitOrderOverwritesPending(t *testing.T) {
	o, _ := newTestOrchestrator(t)

	_, err := o.SubmitOrder(context.Background(), &lptypes.OrderSubmission{PayerID: "S1", Item: "widget"})
	assert.NoError(t, err)
	_, err = o.SubmitOrder(context.Background(), &lptypes.OrderSubmission{PayerID: "S1", Item: "gadget"})
	assert.NoError(t, err)

	orders := o.GetOrders(context.Background())
	assert.Len(t, orders, 1)
	assert.Equal(t, "gadget", orders[0].Item)
	assert.True(t, orders[0].IsPending())
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.OrderSubmittedCounter.WithLabelValues("false")))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.OrderSubmittedCounter.WithLabelValues("true")))
}

func TestSubmitOrderOverwritesCompleted(t *testing.T) {
	o, _ := newTestOrchestrator(t)

	o.orders.Put("S1", lptypes.NewPendingOrder("S1", "widget").Completed("T1"))
	order, err := o.SubmitOrder(context.Background(), &lptypes.OrderSubmission{PayerID: "S1", Item: "gadget"})
	assert.NoError(t, err)
	assert.True(t, order.IsPending())
	assert.Empty(t, order.SettlingTransferID)

	stored, err := o.GetOrder(context.Background(), "S1")
	assert.NoError(t, err)
	assert.True(t, stored.IsPending())
	assert.Equal(t, "gadget", stored.Item)
}

func TestGetOrderNotFound(t *testing.T) {
	o, _ := newTestOrchestrator(t)
	_, err := o.GetOrder(context.Background(), "S1")
	assert.Regexp(t, "LP10123.*S1", err)
}

func TestRemoveOrder(t *testing.T) {
	o, _ := newTestOrchestrator(t)

	_, err := o.SubmitOrder(context.Background(), &lptypes.OrderSubmission{PayerID: "S1", Item: "widget"})
	assert.NoError(t, err)
	err = o.RemoveOrder(context.Background(), "S1")
	assert.NoError(t, err)
	err = o.RemoveOrder(context.Background(), "S1")
	assert.Regexp(t, "LP10123", err)
}
