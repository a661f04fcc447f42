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

package restclient

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/kaleido-io/ledgerpay/internal/config"
	"github.com/kaleido-io/ledgerpay/internal/i18n"
	"github.com/kaleido-io/ledgerpay/internal/log"
	"github.com/kaleido-io/ledgerpay/pkg/lptypes"
)

const maxErrorBody = 256

type traceCtxKey struct{}

// requestTrace follows one logical request across resty's retry attempts
type requestTrace struct {
	id       string
	start    time.Time
	attempts int
}

func traceFrom(ctx context.Context) *requestTrace {
	rt, _ := ctx.Value(traceCtxKey{}).(*requestTrace)
	return rt
}

// New builds a resty client for a ledger node from the keys registered by InitPrefix.
// Every request is logged with a short "breq" id that is kept across retries.
func New(ctx context.Context, conf config.ConfigPrefix) *resty.Client {
	client := baseClient(conf)

	baseURL := strings.TrimSuffix(conf.GetString(HTTPConfigURL), "/")
	if baseURL != "" {
		client.SetHostURL(baseURL)
		log.L(ctx).Debugf("Created REST client to %s", baseURL)
	}
	if proxy := conf.GetString(HTTPConfigProxyURL); proxy != "" {
		client.SetProxy(proxy)
	}
	client.SetTimeout(conf.GetDuration(HTTPConfigRequestTimeout))

	for k, v := range conf.GetStringMap(HTTPConfigHeaders) {
		if vs, ok := v.(string); ok {
			client.SetHeader(k, vs)
		}
	}
	username, password := conf.GetString(HTTPConfigAuthUsername), conf.GetString(HTTPConfigAuthPassword)
	if username != "" && password != "" {
		client.SetBasicAuth(username, password)
	}

	client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		rctx := req.Context()
		if traceFrom(rctx) == nil {
			rt := &requestTrace{id: lptypes.ShortID(), start: time.Now()}
			rctx = context.WithValue(rctx, traceCtxKey{}, rt)
			rctx = log.WithLogger(rctx, log.L(ctx).WithField("breq", rt.id))
			req.SetContext(rctx)
		}
		log.L(rctx).Infof("==> %s %s%s", req.Method, baseURL, req.URL)
		return nil
	})
	client.OnAfterResponse(func(_ *resty.Client, res *resty.Response) error {
		rctx := res.Request.Context()
		if rt := traceFrom(rctx); rt != nil {
			elapsed := float64(time.Since(rt.start)) / float64(time.Millisecond)
			log.L(rctx).Infof("<== %s %s [%d] (%.2fms)", res.Request.Method, res.Request.URL, res.StatusCode(), elapsed)
		}
		return nil
	})

	if conf.GetBool(HTTPConfigRetryEnabled) {
		configureRetry(client, conf)
	}
	return client
}

func baseClient(conf config.ConfigPrefix) *resty.Client {
	if httpClient, ok := conf.Get(HTTPCustomClient).(*http.Client); ok && httpClient != nil {
		return resty.NewWithClient(httpClient)
	}
	return resty.New()
}

// configureRetry retries server side failures and throttling. Other 4xx responses are
// returned to the caller straight away, as repeating the same query cannot fix them.
func configureRetry(client *resty.Client, conf config.ConfigPrefix) {
	retryCount := conf.GetInt(HTTPConfigRetryCount)
	client.
		SetRetryCount(retryCount).
		SetRetryWaitTime(conf.GetDuration(HTTPConfigRetryInitDelay)).
		SetRetryMaxWaitTime(conf.GetDuration(HTTPConfigRetryMaxDelay)).
		AddRetryCondition(func(res *resty.Response, err error) bool {
			if res == nil || !retryableStatus(res.StatusCode()) {
				return false
			}
			rctx := res.Request.Context()
			if rt := traceFrom(rctx); rt != nil {
				rt.attempts++
				log.L(rctx).Infof("retry %d/%d status=%d", rt.attempts, retryCount, res.StatusCode())
			}
			return true
		})
}

func retryableStatus(status int) bool {
	return status >= 500 || status == http.StatusTooManyRequests
}

// WrapRestErr builds an error including a truncated copy of the response body, if there is one
func WrapRestErr(ctx context.Context, res *resty.Response, err error, key i18n.MessageKey) error {
	var respData string
	if res != nil {
		respData = res.String()
		if len(respData) > maxErrorBody {
			respData = respData[0:maxErrorBody] + "..."
		}
	}
	if err != nil {
		return i18n.WrapError(ctx, err, key, respData)
	}
	return i18n.NewError(ctx, key, respData)
}
