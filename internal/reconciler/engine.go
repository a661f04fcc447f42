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

package reconciler

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"time"

	"github.com/kaleido-io/ledgerpay/internal/i18n"
	"github.com/kaleido-io/ledgerpay/internal/ledger"
	"github.com/kaleido-io/ledgerpay/internal/log"
	"github.com/kaleido-io/ledgerpay/internal/metrics"
	"github.com/kaleido-io/ledgerpay/pkg/lptypes"
)

// OrderSource is the view of the order store needed to reconcile
type OrderSource interface {
	AllEntries() []*lptypes.Order
	Put(payerID string, order *lptypes.Order)
}

// Broadcaster fans a completion notification out to the current subscribers
type Broadcaster interface {
	Broadcast(ctx context.Context, payload []byte)
}

// Engine periodically matches pending orders against transfers on the ledger
type Engine interface {
	// Start launches the reconcile loop, which exits when the context passed to NewEngine is cancelled
	Start() error
	// WaitStop blocks until the reconcile loop has exited
	WaitStop()
	// Tick runs a single reconcile pass. Returns false if a pass was already in flight.
	Tick(ctx context.Context) bool
}

type Options struct {
	Interval     time.Duration
	StoreAddress string
	Metrics      metrics.Manager
}

type engine struct {
	ctx          context.Context
	orders       OrderSource
	ledger       ledger.Plugin
	broadcaster  Broadcaster
	metrics      metrics.Manager
	interval     time.Duration
	storeAddress string
	running      int32
	done         chan struct{}
}

func NewEngine(ctx context.Context, options Options, orders OrderSource, ledger ledger.Plugin, broadcaster Broadcaster) (Engine, error) {
	if options.Interval <= 0 {
		return nil, i18n.NewError(ctx, i18n.MsgInvalidInterval, options.Interval)
	}
	if options.StoreAddress == "" {
		return nil, i18n.NewError(ctx, i18n.MsgMissingStoreAddress)
	}
	if options.Metrics == nil {
		options.Metrics = metrics.NewMetricsManager(ctx)
	}
	return &engine{
		ctx:          log.WithLogField(ctx, "role", "reconciler"),
		orders:       orders,
		ledger:       ledger,
		broadcaster:  broadcaster,
		metrics:      options.Metrics,
		interval:     options.Interval,
		storeAddress: options.StoreAddress,
		done:         make(chan struct{}),
	}, nil
}

func (e *engine) Start() error {
	go e.reconcileLoop()
	return nil
}

func (e *engine) WaitStop() {
	<-e.done
}

func (e *engine) reconcileLoop() {
	defer close(e.done)
	l := log.L(e.ctx)
	l.Infof("Reconciling orders for store %s every %s", e.storeAddress, e.interval)

	// The first tick fires one full interval after start
	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			e.Tick(e.ctx)
		case <-e.ctx.Done():
			l.Debugf("Reconcile loop exiting")
			return
		}
	}
}

func (e *engine) Tick(ctx context.Context) bool {
	if !atomic.CompareAndSwapInt32(&e.running, 0, 1) {
		log.L(ctx).Warnf("Previous reconcile pass still running, skipping")
		e.metrics.TickSkipped()
		return false
	}
	defer atomic.StoreInt32(&e.running, 0)

	ctx = log.WithLogField(ctx, "tick", lptypes.ShortID())
	l := log.L(ctx)
	start := time.Now()

	entries := e.orders.AllEntries()
	usedTransferIDs := make(map[string]bool)
	for _, o := range entries {
		if o.Status == lptypes.OrderStatusCompleted && o.SettlingTransferID != "" {
			usedTransferIDs[o.SettlingTransferID] = true
		}
	}

	pending, completed := 0, 0
	for _, o := range entries {
		if !o.IsPending() {
			continue
		}
		pending++
		if e.reconcileOrder(ctx, o, usedTransferIDs) {
			completed++
		}
	}
	e.metrics.TickCompleted(time.Since(start), pending, completed)
	l.Debugf("Reconcile pass complete: orders=%d pending=%d completed=%d", len(entries), pending, completed)
	return true
}

func (e *engine) reconcileOrder(ctx context.Context, order *lptypes.Order, usedTransferIDs map[string]bool) bool {
	l := log.L(ctx)

	transfers, err := e.ledger.FetchTransfers(ctx, order.PayerID, e.storeAddress)
	if err != nil {
		var pe *ledger.ProtocolError
		if errors.As(err, &pe) {
			l.Debugf("No usable transfers for payer %s: %s", order.PayerID, err)
			e.metrics.LedgerQuery(metrics.LedgerResultProtocolError)
		} else {
			l.Warnf("Failed to query transfers for payer %s: %s", order.PayerID, err)
			e.metrics.LedgerQuery(metrics.LedgerResultNetworkError)
		}
		return false
	}
	e.metrics.LedgerQuery(metrics.LedgerResultOK)
	if len(transfers) == 0 {
		return false
	}

	// Only the most recent transfer is considered
	candidate := transfers[len(transfers)-1]
	if usedTransferIDs[candidate.ID] {
		l.Debugf("Transfer %s already settles another order, payer %s stays pending", candidate.ID, order.PayerID)
		return false
	}

	// The completed order is built from the snapshot taken at the start of the tick. A
	// submission for the same payer that lands while the ledger is queried is overwritten
	// here, so the payer ends up Completed with the item of the earlier order.
	e.orders.Put(order.PayerID, order.Completed(candidate.ID))
	usedTransferIDs[candidate.ID] = true
	l.Infof("Order for payer %s (%s) completed by transfer %s", order.PayerID, order.Item, candidate.ID)

	payload, err := json.Marshal(&lptypes.OrderResult{
		SenderID: order.PayerID,
		Status:   lptypes.OrderStatusCompleted,
	})
	if err != nil {
		l.Errorf("Failed to serialize result for payer %s: %s", order.PayerID, err)
		return true
	}
	e.broadcaster.Broadcast(ctx, payload)
	return true
}
