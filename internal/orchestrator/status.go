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
	"github.com/kaleido-io/ledgerpay/pkg/lptypes"
)

func (o *orchestrator) GetStatus(ctx context.Context) *lptypes.Status {
	sinks := o.subscribers.Count()
	clients := sinks
	if o.kafka != nil {
		// registered once in initComponents, and never removed
		clients--
	}
	return &lptypes.Status{
		StoreAddress: config.GetString(config.StoreAddress),
		Subscribers:  clients,
		Sinks:        sinks,
		Orders:       o.orders.Len(),
		Interval:     config.GetDuration(config.ReconcileInterval).String(),
	}
}
