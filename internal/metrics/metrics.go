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
	"context"
	"strconv"
	"time"

	"github.com/kaleido-io/ledgerpay/internal/config"
)

type Manager interface {
	IsMetricsEnabled() bool
	OrderSubmitted(replaced bool)
	TickSkipped()
	TickCompleted(duration time.Duration, pending, completed int)
	LedgerQuery(result string)
}

type metricsManager struct {
	ctx            context.Context
	metricsEnabled bool
}

// NewMetricsManager returns a manager that records into the shared registry. When metrics
// are disabled in config every recording call is a no-op.
func NewMetricsManager(ctx context.Context) Manager {
	mm := &metricsManager{
		ctx:            ctx,
		metricsEnabled: config.GetBool(config.MetricsEnabled),
	}
	if mm.metricsEnabled {
		Registry()
	}
	return mm
}

func (mm *metricsManager) IsMetricsEnabled() bool {
	return mm.metricsEnabled
}

func (mm *metricsManager) OrderSubmitted(replaced bool) {
	if mm.metricsEnabled {
		OrderSubmittedCounter.WithLabelValues(strconv.FormatBool(replaced)).Inc()
	}
}

func (mm *metricsManager) TickSkipped() {
	if mm.metricsEnabled {
		ReconcileSkippedCounter.Inc()
	}
}

func (mm *metricsManager) TickCompleted(duration time.Duration, pending, completed int) {
	if mm.metricsEnabled {
		ReconcileTickCounter.Inc()
		ReconcileTickHistogram.Observe(duration.Seconds())
		OrderPendingGauge.Set(float64(pending - completed))
		OrderCompletedCounter.Add(float64(completed))
	}
}

func (mm *metricsManager) LedgerQuery(result string) {
	if mm.metricsEnabled {
		LedgerQueryCounter.WithLabelValues(result).Inc()
	}
}
