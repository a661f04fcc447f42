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

// Transfer is a confirmed movement of value between two ledger identities.
// Transfers are read-only to this system.
type Transfer struct {
	ID          string  `json:"id"`
	Timestamp   *LPTime `json:"timestamp"`
	SenderID    string  `json:"senderId"`
	RecipientID string  `json:"recipientId,omitempty"`
	Amount      int64   `json:"amount"`
	Fee         int64   `json:"fee"`
}
