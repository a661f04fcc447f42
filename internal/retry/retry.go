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

package retry

import (
	"context"
	"time"

	"github.com/kaleido-io/ledgerpay/internal/i18n"
	"github.com/kaleido-io/ledgerpay/internal/log"
)

const (
	DefaultFactor = 2.0
)

// Retry is a concurrency safe structure that configures a simple backoff retry mechanism
type Retry struct {
	InitialDelay time.Duration
	MaximumDelay time.Duration
	Factor       float32
}

// Do invokes the function until the function returns false, or the context is cancelled.
// This simple interface doesn't pass through return values, on the basis
// you'll be using a closure for that.
func (r *Retry) Do(ctx context.Context, logDescription string, f func(attempt int) (retry bool, err error)) error {
	attempt := 0
	delay := r.InitialDelay
	factor := r.Factor
	if factor < 1 { // Can't reduce
		factor = DefaultFactor
	}
	for {
		attempt++
		retry, err := f(attempt)
		if err != nil {
			log.L(ctx).Errorf("%s attempt %d: %s", logDescription, attempt, err)
		}
		if !retry {
			return err
		}

		if ctx.Err() != nil {
			return i18n.NewError(ctx, i18n.MsgContextCanceled)
		}

		// Limit the delay based on the context deadline and maximum delay
		if delay > r.MaximumDelay {
			delay = r.MaximumDelay
		}
		if deadline, dok := ctx.Deadline(); dok {
			timeleft := time.Until(deadline)
			if timeleft < delay {
				delay = timeleft
			}
		}

		// Sleep, waking early if the context is cancelled
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return i18n.NewError(ctx, i18n.MsgContextCanceled)
		case <-timer.C:
		}
		delay = time.Duration(float32(delay) * factor)
	}
}
