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

package cache

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/kaleido-io/ledgerpay/internal/log"
)

// Clock supplies the current time to the cache, so expiry can be driven from tests
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock is the wall clock
var SystemClock Clock = systemClock{}

// CInterface is a concurrency safe map of string keys to values, where each entry
// expires a fixed TTL after it was last set. A zero TTL disables expiry.
// Expired entries are never returned, and are evicted lazily on access or by the sweeper.
type CInterface interface {
	Set(key string, val interface{})
	Get(key string) (interface{}, bool)
	Delete(key string) bool
	Keys() []string
	Values() []interface{}
	Len() int
	Sweep() int
	// Start launches the periodic sweeper, which runs until the context is cancelled
	Start(ctx context.Context)
}

// Options for a new cache
type Options struct {
	Name          string
	TTL           time.Duration
	SweepInterval time.Duration
	Clock         Clock
}

type entry struct {
	val     interface{}
	expires time.Time
}

type expiringCache struct {
	name          string
	ttl           time.Duration
	sweepInterval time.Duration
	clock         Clock
	mux           sync.RWMutex
	entries       map[string]*entry
}

// NewCache creates a new cache
func NewCache(opts Options) CInterface {
	c := &expiringCache{
		name:          opts.Name,
		ttl:           opts.TTL,
		sweepInterval: opts.SweepInterval,
		clock:         opts.Clock,
		entries:       make(map[string]*entry),
	}
	if c.clock == nil {
		c.clock = SystemClock
	}
	return c
}

func (c *expiringCache) expired(e *entry, now time.Time) bool {
	return !e.expires.IsZero() && !now.Before(e.expires)
}

func (c *expiringCache) Set(key string, val interface{}) {
	e := &entry{val: val}
	if c.ttl > 0 {
		e.expires = c.clock.Now().Add(c.ttl)
	}
	c.mux.Lock()
	c.entries[key] = e
	c.mux.Unlock()
}

func (c *expiringCache) Get(key string) (interface{}, bool) {
	now := c.clock.Now()
	c.mux.RLock()
	e, ok := c.entries[key]
	c.mux.RUnlock()
	if !ok {
		return nil, false
	}
	if c.expired(e, now) {
		c.mux.Lock()
		// Only evict if nobody replaced it since we looked
		if current, ok := c.entries[key]; ok && current == e {
			delete(c.entries, key)
		}
		c.mux.Unlock()
		return nil, false
	}
	return e.val, true
}

func (c *expiringCache) Delete(key string) bool {
	c.mux.Lock()
	defer c.mux.Unlock()
	_, ok := c.entries[key]
	delete(c.entries, key)
	return ok
}

func (c *expiringCache) live() (keys []string, vals []interface{}) {
	now := c.clock.Now()
	c.mux.RLock()
	defer c.mux.RUnlock()
	keys = make([]string, 0, len(c.entries))
	for k, e := range c.entries {
		if !c.expired(e, now) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	vals = make([]interface{}, len(keys))
	for i, k := range keys {
		vals[i] = c.entries[k].val
	}
	return keys, vals
}

func (c *expiringCache) Keys() []string {
	keys, _ := c.live()
	return keys
}

func (c *expiringCache) Values() []interface{} {
	_, vals := c.live()
	return vals
}

func (c *expiringCache) Len() int {
	keys, _ := c.live()
	return len(keys)
}

func (c *expiringCache) Sweep() int {
	now := c.clock.Now()
	c.mux.Lock()
	defer c.mux.Unlock()
	evicted := 0
	for k, e := range c.entries {
		if c.expired(e, now) {
			delete(c.entries, k)
			evicted++
		}
	}
	return evicted
}

func (c *expiringCache) Start(ctx context.Context) {
	if c.ttl <= 0 || c.sweepInterval <= 0 {
		return
	}
	go c.sweepLoop(log.WithLogField(ctx, "cache", c.name))
}

func (c *expiringCache) sweepLoop(ctx context.Context) {
	l := log.L(ctx)
	ticker := time.NewTicker(c.sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if evicted := c.Sweep(); evicted > 0 {
				l.Debugf("Evicted %d expired entries", evicted)
			}
		case <-ctx.Done():
			l.Debugf("Sweeper exiting")
			return
		}
	}
}
