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

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var ReconcileTickCounter prometheus.Counter
var ReconcileSkippedCounter prometheus.Counter
var ReconcileTickHistogram prometheus.Histogram
var LedgerQueryCounter *prometheus.CounterVec

// ReconcileTickCounterName is the prometheus metric for tracking the total number of completed reconcile passes
var ReconcileTickCounterName = "lp_reconcile_ticks_total"

// ReconcileSkippedCounterName is the prometheus metric for tracking passes skipped while another was in flight
var ReconcileSkippedCounterName = "lp_reconcile_ticks_skipped_total"

// ReconcileTickHistogramName is the prometheus metric for tracking the duration of reconcile passes
var ReconcileTickHistogramName = "lp_reconcile_tick_seconds"

// LedgerQueryCounterName is the prometheus metric for tracking ledger queries, labelled by outcome
var LedgerQueryCounterName = "lp_ledger_queries_total"

const (
	LedgerResultOK            = "ok"
	LedgerResultNetworkError  = "network_error"
	LedgerResultProtocolError = "protocol_error"
)

var ledgerResultLabels = []string{"result"}

func InitReconcileMetrics() {
	ReconcileTickCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: ReconcileTickCounterName,
		Help: "Number of completed reconcile passes",
	})
	ReconcileSkippedCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: ReconcileSkippedCounterName,
		Help: "Number of reconcile passes skipped because the previous pass was still running",
	})
	ReconcileTickHistogram = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name: ReconcileTickHistogramName,
		Help: "Histogram of reconcile passes, bucketed by time to finish",
	})
	LedgerQueryCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: LedgerQueryCounterName,
		Help: "Number of ledger transfer queries, by result",
	}, ledgerResultLabels)
}

func RegisterReconcileMetrics() {
	registry.MustRegister(ReconcileTickCounter)
	registry.MustRegister(ReconcileSkippedCounter)
	registry.MustRegister(ReconcileTickHistogram)
	registry.MustRegister(LedgerQueryCounter)
}
