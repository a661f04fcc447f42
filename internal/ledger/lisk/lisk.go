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
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/kaleido-io/ledgerpay/internal/config"
	"github.com/kaleido-io/ledgerpay/internal/i18n"
	"github.com/kaleido-io/ledgerpay/internal/ledger"
	"github.com/kaleido-io/ledgerpay/internal/log"
	"github.com/kaleido-io/ledgerpay/internal/restclient"
	"github.com/kaleido-io/ledgerpay/pkg/lptypes"
)

const transactionsPath = "/api/transactions"

// Lisk reads transfers from the transactions API of a Lisk node
type Lisk struct {
	ctx            context.Context
	client         *resty.Client
	epoch          time.Time
	requestTimeout time.Duration
}

type liskTransaction struct {
	ID          string `json:"id"`
	Timestamp   int64  `json:"timestamp"`
	SenderID    string `json:"senderId"`
	RecipientID string `json:"recipientId,omitempty"`
	Amount      int64  `json:"amount"`
	Fee         int64  `json:"fee"`
}

type liskTransactionsResponse struct {
	Success      bool               `json:"success"`
	Transactions []*liskTransaction `json:"transactions"`
}

func (l *Lisk) Name() string {
	return "lisk"
}

func (l *Lisk) Init(ctx context.Context, prefix config.ConfigPrefix) (err error) {
	l.ctx = log.WithLogField(ctx, "proto", "lisk")

	if prefix.GetString(restclient.HTTPConfigURL) == "" {
		return i18n.NewError(ctx, i18n.MsgMissingPluginConfig, "url", "ledger.lisk")
	}

	epochStr := prefix.GetString(LiskConfigEpoch)
	l.epoch, err = time.Parse(time.RFC3339Nano, epochStr)
	if err != nil {
		return i18n.WrapError(ctx, err, i18n.MsgInvalidEpoch, epochStr)
	}

	l.requestTimeout = prefix.GetDuration(restclient.HTTPConfigRequestTimeout)
	l.client = restclient.New(l.ctx, prefix)
	log.L(l.ctx).Infof("Lisk ledger client initialized (epoch=%s timeout=%s)", l.epoch.Format(time.RFC3339), l.requestTimeout)
	return nil
}

func (l *Lisk) FetchTransfers(ctx context.Context, senderID, recipientID string) ([]*lptypes.Transfer, error) {
	if l.requestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.requestTimeout)
		defer cancel()
	}

	res, err := l.client.R().
		SetContext(ctx).
		SetQueryParam("senderId", senderID).
		SetQueryParam("recipientId", recipientID).
		Get(transactionsPath)
	if err != nil {
		return nil, ledger.NewNetworkError(restclient.WrapRestErr(ctx, res, err, i18n.MsgLedgerRequestFailed))
	}
	if res.StatusCode() != http.StatusOK {
		return nil, ledger.NewNetworkError(i18n.NewError(ctx, i18n.MsgLedgerBadStatus, res.StatusCode(), truncate(res.String())))
	}

	var body liskTransactionsResponse
	if err := json.Unmarshal(res.Body(), &body); err != nil {
		return nil, ledger.NewProtocolError(i18n.WrapError(ctx, err, i18n.MsgLedgerInvalidResponse, truncate(res.String())))
	}
	if !body.Success || body.Transactions == nil {
		return nil, ledger.NewProtocolError(i18n.NewError(ctx, i18n.MsgLedgerTransactionsNotSet, body.Success))
	}

	transfers := make([]*lptypes.Transfer, 0, len(body.Transactions))
	for _, tx := range body.Transactions {
		if tx == nil {
			continue
		}
		transfers = append(transfers, &lptypes.Transfer{
			ID:          tx.ID,
			Timestamp:   lptypes.EpochTime(l.epoch, tx.Timestamp),
			SenderID:    tx.SenderID,
			RecipientID: tx.RecipientID,
			Amount:      tx.Amount,
			Fee:         tx.Fee,
		})
	}
	// Nodes do not agree on a default sort, so we always return oldest first
	sort.SliceStable(transfers, func(i, j int) bool {
		return transfers[i].Timestamp.UnixNano() < transfers[j].Timestamp.UnixNano()
	})
	log.L(ctx).Debugf("Found %d transfers from %s to %s", len(transfers), senderID, recipientID)
	return transfers, nil
}

func truncate(s string) string {
	if len(s) > 256 {
		return s[0:256] + "..."
	}
	return s
}
