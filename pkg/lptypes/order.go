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

package lptypes

// OrderStatus is the lifecycle state of an order
type OrderStatus string

const (
	// OrderStatusPending the order is waiting for a matching transfer on the ledger
	OrderStatusPending OrderStatus = "pending"
	// OrderStatusCompleted a transfer has been matched to the order
	OrderStatusCompleted OrderStatus = "completed"
)

// Order is a purchase request from a payer, keyed by the payer's ledger identity.
// SettlingTransferID is set if and only if the status is completed.
type Order struct {
	PayerID            string      `json:"payerId"`
	Item               string      `json:"item"`
	Status             OrderStatus `json:"status"`
	SettlingTransferID string      `json:"settlingTransferId,omitempty"`
	Created            *LPTime     `json:"created,omitempty"`
	Updated            *LPTime     `json:"updated,omitempty"`
}

// OrderSubmission is the inbound payload for a new order
type OrderSubmission struct {
	PayerID string `json:"payerId"`
	Item    string `json:"item"`
}

// OrderResult is the notification broadcast to subscribers when an order completes
type OrderResult struct {
	SenderID string      `json:"senderid"`
	Status   OrderStatus `json:"status"`
}

// NewPendingOrder builds a fresh order in pending state
func NewPendingOrder(payerID, item string) *Order {
	now := Now()
	return &Order{
		PayerID: payerID,
		Item:    item,
		Status:  OrderStatusPending,
		Created: now,
		Updated: now,
	}
}

// Completed returns a copy of the order, settled by the given transfer
func (o *Order) Completed(transferID string) *Order {
	completed := *o
	completed.Status = OrderStatusCompleted
	completed.SettlingTransferID = transferID
	completed.Updated = Now()
	return &completed
}

// IsPending is true for orders that are still waiting for a transfer
func (o *Order) IsPending() bool {
	return o.Status == OrderStatusPending
}
