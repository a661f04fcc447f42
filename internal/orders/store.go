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

package orders

import (
	"context"
	"time"

	"github.com/kaleido-io/ledgerpay/internal/cache"
	"github.com/kaleido-io/ledgerpay/pkg/lptypes"
)

// Store holds the current order for each payer. There is exactly one order per payer,
// and the last Put wins - including over a completed order.
type Store interface {
	Put(payerID string, order *lptypes.Order)
	Get(payerID string) (*lptypes.Order, bool)
	AllEntries() []*lptypes.Order
	Remove(payerID string) bool
	Len() int
	Start(ctx context.Context)
}

type store struct {
	cache cache.CInterface
}

// NewStore creates an order store. A zero ttl keeps orders until the process exits.
func NewStore(ttl, sweepInterval time.Duration, clock cache.Clock) Store {
	return &store{
		cache: cache.NewCache(cache.Options{
			Name:          "orders",
			TTL:           ttl,
			SweepInterval: sweepInterval,
			Clock:         clock,
		}),
	}
}

// Put stores a copy, so later changes by the caller are not visible to other readers
func (s *store) Put(payerID string, order *lptypes.Order) {
	o := *order
	s.cache.Set(payerID, &o)
}

func (s *store) Get(payerID string) (*lptypes.Order, bool) {
	v, ok := s.cache.Get(payerID)
	if !ok {
		return nil, false
	}
	o := *(v.(*lptypes.Order))
	return &o, true
}

func (s *store) AllEntries() []*lptypes.Order {
	vals := s.cache.Values()
	entries := make([]*lptypes.Order, len(vals))
	for i, v := range vals {
		o := *(v.(*lptypes.Order))
		entries[i] = &o
	}
	return entries
}

func (s *store) Remove(payerID string) bool {
	return s.cache.Delete(payerID)
}

func (s *store) Len() int {
	return s.cache.Len()
}

func (s *store) Start(ctx context.Context) {
	s.cache.Start(ctx)
}
