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
	"fmt"
	"testing"

	"github.com/kaleido-io/ledgerpay/internal/config"
	"github.com/kaleido-io/ledgerpay/internal/metrics"
	"github.com/kaleido-io/ledgerpay/internal/restclient"
	"github.com/kaleido-io/ledgerpay/mocks/ledgermocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newTestOrchestrator(t *testing.T) (*orchestrator, *ledgermocks.Plugin) {
	config.Reset()
	metrics.Clear()
	o := NewOrchestrator().(*orchestrator)
	ml := &ledgermocks.Plugin{}
	o.ledger = ml
	err := o.Init(context.Background())
	assert.NoError(t, err)
	return o, ml
}

func TestInitUnknownLedgerPlugin(t *testing.T) {
	config.Reset()
	o := NewOrchestrator()
	config.Set(config.LedgerType, "bitcoin")
	err := o.Init(context.Background())
	assert.Regexp(t, "LP10108.*bitcoin", err)
}

func TestInitLedgerPluginFail(t *testing.T) {
	config.Reset()
	o := NewOrchestrator()
	ledgerConfig.SubPrefix("lisk").Set(restclient.HTTPConfigURL, "")
	err := o.Init(context.Background())
	assert.Regexp(t, "LP10109", err)
}

func TestInitEngineFail(t *testing.T) {
	config.Reset()
	o := NewOrchestrator().(*orchestrator)
	o.ledger = &ledgermocks.Plugin{}
	config.Set(config.ReconcileInterval, "0")
	err := o.Init(context.Background())
	assert.Regexp(t, "LP10125", err)
}

func TestInitMissingStoreAddress(t *testing.T) {
	config.Reset()
	o := NewOrchestrator().(*orchestrator)
	o.ledger = &ledgermocks.Plugin{}
	config.Set(config.StoreAddress, "")
	err := o.Init(context.Background())
	assert.Regexp(t, "LP10124", err)
}

func TestInitStartStopWithLisk(t *testing.T) {
	config.Reset()
	o := NewOrchestrator().(*orchestrator)
	ctx, cancel := context.WithCancel(context.Background())
	err := o.Init(ctx)
	assert.NoError(t, err)
	assert.Equal(t, "lisk", o.ledger.Name())
	assert.Nil(t, o.kafka)
	assert.Equal(t, 0, o.Subscribers().Count())

	err = o.Start()
	assert.NoError(t, err)
	cancel()
	o.WaitStop()
}

func TestInitStartStopWithKafka(t *testing.T) {
	config.Reset()
	config.Set(config.KafkaBrokers, []string{"localhost:9092"})
	o := NewOrchestrator().(*orchestrator)
	o.ledger = &ledgermocks.Plugin{}
	ctx, cancel := context.WithCancel(context.Background())
	err := o.Init(ctx)
	assert.NoError(t, err)
	assert.NotNil(t, o.kafka)
	assert.Equal(t, 1, o.Subscribers().Count())

	err = o.Start()
	assert.NoError(t, err)
	cancel()
	o.WaitStop()
}

func TestWaitStopNotInitialized(t *testing.T) {
	o := &orchestrator{}
	o.WaitStop()
}

func TestSubmitOrderAndReconcile(t *testing.T) {
	o, ml := newTestOrchestrator(t)
	ml.On("FetchTransfers", mock.Anything, "S1", config.GetString(config.StoreAddress)).Return(nil, fmt.Errorf("pop"))

	submission, err := o.ParseSubmission(context.Background(), []byte(`{"payerId":"S1","item":"widget"}`))
	assert.NoError(t, err)
	order, err := o.SubmitOrder(context.Background(), submission)
	assert.NoError(t, err)
	assert.True(t, order.IsPending())

	o.engine.Tick(context.Background())
	order, err = o.GetOrder(context.Background(), "S1")
	assert.NoError(t, err)
	assert.True(t, order.IsPending())
	ml.AssertExpectations(t)
}
