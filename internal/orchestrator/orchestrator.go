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

	"github.com/kaleido-io/ledgerpay/internal/config"
	"github.com/kaleido-io/ledgerpay/internal/kafkasink"
	"github.com/kaleido-io/ledgerpay/internal/ledger"
	"github.com/kaleido-io/ledgerpay/internal/ledger/ledgerfactory"
	"github.com/kaleido-io/ledgerpay/internal/log"
	"github.com/kaleido-io/ledgerpay/internal/metrics"
	"github.com/kaleido-io/ledgerpay/internal/orders"
	"github.com/kaleido-io/ledgerpay/internal/reconciler"
	"github.com/kaleido-io/ledgerpay/internal/subscribers"
	"github.com/kaleido-io/ledgerpay/pkg/lptypes"
)

var (
	ledgerConfig = config.NewPluginConfig("ledger")
)

// Orchestrator is the main interface behind the API, implementing the actions
type Orchestrator interface {
	Init(ctx context.Context) error
	Start() error
	WaitStop()

	// Subscribers is the registry that completion notifications are broadcast through
	Subscribers() subscribers.Registry

	// Orders
	ParseSubmission(ctx context.Context, data []byte) (*lptypes.OrderSubmission, error)
	SubmitOrder(ctx context.Context, submission *lptypes.OrderSubmission) (*lptypes.Order, error)
	GetOrders(ctx context.Context) []*lptypes.Order
	GetOrder(ctx context.Context, payerID string) (*lptypes.Order, error)
	RemoveOrder(ctx context.Context, payerID string) error

	// Status
	GetStatus(ctx context.Context) *lptypes.Status
}

type orchestrator struct {
	ctx         context.Context
	ledger      ledger.Plugin
	orders      orders.Store
	validator   orders.SubmissionValidator
	subscribers subscribers.Registry
	engine      reconciler.Engine
	kafka       kafkasink.KafkaSink
	metrics     metrics.Manager
}

func NewOrchestrator() Orchestrator {
	o := &orchestrator{}

	// Initialize the config on all the factories
	ledgerfactory.InitPrefix(ledgerConfig)

	return o
}

func (o *orchestrator) Init(ctx context.Context) (err error) {
	o.ctx = ctx
	err = o.initPlugins(ctx)
	if err == nil {
		err = o.initComponents(ctx)
	}
	return err
}

func (o *orchestrator) Start() error {
	o.orders.Start(o.ctx)
	if o.kafka != nil {
		if err := o.kafka.Start(); err != nil {
			return err
		}
	}
	return o.engine.Start()
}

// WaitStop blocks until the background processing has exited, after the context passed to Init is cancelled
func (o *orchestrator) WaitStop() {
	if o.engine != nil {
		o.engine.WaitStop()
	}
	if o.kafka != nil {
		o.kafka.WaitStop()
	}
}

func (o *orchestrator) Subscribers() subscribers.Registry {
	return o.subscribers
}

func (o *orchestrator) initPlugins(ctx context.Context) (err error) {
	if o.ledger == nil {
		if o.ledger, err = o.initLedgerPlugin(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (o *orchestrator) initComponents(ctx context.Context) (err error) {
	if o.metrics == nil {
		o.metrics = metrics.NewMetricsManager(ctx)
	}

	if o.validator == nil {
		if o.validator, err = orders.NewSubmissionValidator(ctx); err != nil {
			return err
		}
	}

	if o.orders == nil {
		o.orders = orders.NewStore(config.GetDuration(config.OrdersTTL), config.GetDuration(config.OrdersSweepInterval), nil)
	}

	if o.subscribers == nil {
		o.subscribers = subscribers.NewRegistry()
	}

	if o.kafka == nil && kafkasink.Enabled() {
		o.kafka = kafkasink.NewKafkaSink(ctx)
		o.subscribers.Add(o.kafka.ID(), o.kafka)
	}

	if o.engine == nil {
		o.engine, err = reconciler.NewEngine(ctx, reconciler.Options{
			Interval:     config.GetDuration(config.ReconcileInterval),
			StoreAddress: config.GetString(config.StoreAddress),
			Metrics:      o.metrics,
		}, o.orders, o.ledger, o.subscribers)
	}
	return err
}

func (o *orchestrator) initLedgerPlugin(ctx context.Context) (ledger.Plugin, error) {
	pluginType := config.GetString(config.LedgerType)
	plugin, err := ledgerfactory.GetPlugin(ctx, pluginType)
	if err != nil {
		return nil, err
	}
	log.L(ctx).Infof("Initializing ledger plugin '%s'", pluginType)
	err = plugin.Init(ctx, ledgerConfig.SubPrefix(pluginType))
	return plugin, err
}
