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

package lisk

import (
	"github.com/kaleido-io/ledgerpay/internal/config"
	"github.com/kaleido-io/ledgerpay/internal/restclient"
)

const (
	defaultURL   = "http://node08.lisk.io:8000"
	defaultEpoch = "2016-05-24T17:00:00Z"
)

const (
	// LiskConfigEpoch is the genesis time that ledger timestamps are relative to
	LiskConfigEpoch = "epoch"
)

func (l *Lisk) InitPrefix(prefix config.ConfigPrefix) {
	restclient.InitPrefix(prefix)
	prefix.AddKnownKey(restclient.HTTPConfigURL, defaultURL)
	prefix.AddKnownKey(LiskConfigEpoch, defaultEpoch)
}
