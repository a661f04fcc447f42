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

package subscribers

import (
	"context"

	"github.com/kaleido-io/ledgerpay/internal/cache"
	"github.com/kaleido-io/ledgerpay/internal/log"
)

// Sink receives serialized notifications for one live subscriber.
// Send must not block for longer than it takes to hand the payload off.
type Sink interface {
	Send(ctx context.Context, payload []byte) error
}

// Registry tracks the live subscribers, keyed by connection identity
type Registry interface {
	Add(connectionID string, sink Sink)
	Remove(connectionID string)
	// Broadcast delivers the payload to every sink registered at the time of the call.
	// Failures are logged per sink, and never returned.
	Broadcast(ctx context.Context, payload []byte)
	Count() int
}

type registry struct {
	sinks cache.CInterface
}

// NewRegistry creates an empty subscriber registry
func NewRegistry() Registry {
	return &registry{
		sinks: cache.NewCache(cache.Options{Name: "subscribers"}),
	}
}

func (r *registry) Add(connectionID string, sink Sink) {
	r.sinks.Set(connectionID, sink)
}

func (r *registry) Remove(connectionID string) {
	r.sinks.Delete(connectionID)
}

func (r *registry) Count() int {
	return r.sinks.Len()
}

func (r *registry) Broadcast(ctx context.Context, payload []byte) {
	l := log.L(ctx)
	ids := r.sinks.Keys()
	delivered := 0
	for _, id := range ids {
		v, ok := r.sinks.Get(id)
		if !ok {
			// Disconnected since we took the snapshot
			continue
		}
		if err := v.(Sink).Send(ctx, payload); err != nil {
			l.Warnf("Failed to deliver to subscriber '%s': %s", id, err)
			continue
		}
		delivered++
	}
	l.Debugf("Broadcast delivered to %d/%d subscribers", delivered, len(ids))
}
