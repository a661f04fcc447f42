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

var OrderSubmittedCounter *prometheus.CounterVec
var OrderCompletedCounter prometheus.Counter
var OrderPendingGauge prometheus.Gauge

// OrderSubmittedCounterName is the prometheus metric for tracking submitted orders, labelled by whether an existing order was replaced
var OrderSubmittedCounterName = "lp_orders_submitted_total"

// OrderCompletedCounterName is the prometheus metric for tracking orders completed by a ledger transfer
var OrderCompletedCounterName = "lp_orders_completed_total"

// OrderPendingGaugeName is the prometheus metric for the pending orders seen by the last reconcile pass
var OrderPendingGaugeName = "lp_orders_pending"

var replacedLabels = []string{"replaced"}

func InitOrderMetrics() {
	OrderSubmittedCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: OrderSubmittedCounterName,
		Help: "Number of submitted orders",
	}, replacedLabels)
	OrderCompletedCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: OrderCompletedCounterName,
		Help: "Number of orders completed by a ledger transfer",
	})
	OrderPendingGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: OrderPendingGaugeName,
		Help: "Pending orders seen by the most recent reconcile pass",
	})
}

func RegisterOrderMetrics() {
	registry.MustRegister(OrderSubmittedCounter)
	registry.MustRegister(OrderCompletedCounter)
	registry.MustRegister(OrderPendingGauge)
}
