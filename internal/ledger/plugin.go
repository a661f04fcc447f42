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

package ledger

import (
	"context"

	"github.com/kaleido-io/ledgerpay/internal/config"
	"github.com/kaleido-io/ledgerpay/pkg/lptypes"
)

// Plugin is the interface implemented by each ledger client
type Plugin interface {
	// Name gets the name of the plugin
	Name() string

	// InitPrefix initializes the set of configuration options that are valid, with defaults. Called on all plugins.
	InitPrefix(prefix config.ConfigPrefix)

	// Init initializes the plugin, with configuration
	Init(ctx context.Context, prefix config.ConfigPrefix) error

	// FetchTransfers returns the confirmed transfers from senderID to recipientID, oldest first.
	// Failures are either a *NetworkError or a *ProtocolError.
	FetchTransfers(ctx context.Context, senderID, recipientID string) ([]*lptypes.Transfer, error)
}

// NetworkError is returned when the ledger could not be reached, did not answer in time,
// or answered with a non-success HTTP status
type NetworkError struct {
	err error
}

func NewNetworkError(err error) *NetworkError {
	return &NetworkError{err: err}
}

func (e *NetworkError) Error() string {
	return e.err.Error()
}

func (e *NetworkError) Unwrap() error {
	return e.err
}

// ProtocolError is returned when the ledger answered, but the response could not be used
type ProtocolError struct {
	err error
}

func NewProtocolError(err error) *ProtocolError {
	return &ProtocolError{err: err}
}

func (e *ProtocolError) Error() string {
	return e.err.Error()
}

func (e *ProtocolError) Unwrap() error {
	return e.err
}
