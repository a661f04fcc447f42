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

	"github.com/kaleido-io/ledgerpay/internal/i18n"
	"github.com/kaleido-io/ledgerpay/internal/log"
	"github.com/kaleido-io/ledgerpay/pkg/lptypes"
)

func (o *orchestrator) ParseSubmission(ctx context.Context, data []byte) (*lptypes.OrderSubmission, error) {
	return o.validator.Parse(ctx, data)
}

// SubmitOrder stores a new pending order for the payer. Any existing order for the same payer,
// pending or completed, is replaced.
func (o *orchestrator) SubmitOrder(ctx context.Context, submission *lptypes.OrderSubmission) (*lptypes.Order, error) {
	if err := o.validator.Validate(ctx, submission); err != nil {
		return nil, err
	}
	existing, replaced := o.orders.Get(submission.PayerID)
	if replaced {
		log.L(ctx).Infof("Replacing %s order for payer %s (%s)", existing.Status, existing.PayerID, existing.Item)
	}
	order := lptypes.NewPendingOrder(submission.PayerID, submission.Item)
	o.orders.Put(order.PayerID, order)
	o.metrics.OrderSubmitted(replaced)
	log.L(ctx).Infof("Order submitted for payer %s: %s", order.PayerID, order.Item)
	return order, nil
}

func (o *orchestrator) GetOrders(ctx context.Context) []*lptypes.Order {
	return o.orders.AllEntries()
}

func (o *orchestrator) GetOrder(ctx context.Context, payerID string) (*lptypes.Order, error) {
	order, ok := o.orders.Get(payerID)
	if !ok {
		return nil, i18n.NewError(ctx, i18n.MsgOrderNotFound, payerID)
	}
	return order, nil
}

func (o *orchestrator) RemoveOrder(ctx context.Context, payerID string) error {
	if !o.orders.Remove(payerID) {
		return i18n.NewError(ctx, i18n.MsgOrderNotFound, payerID)
	}
	log.L(ctx).Infof("Order removed for payer %s", payerID)
	return nil
}
