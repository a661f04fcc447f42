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

package config

import (
	"context"
	"io/ioutil"
	"os"
	"path"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

const testConfig = `
store:
  address: 999L
reconcile:
  interval: 2s
orders:
  ttl: 1h
plugin:
  nested:
    url: http://ledger.example.com
    count: 3
    headers:
      x-key: abc
`

func writeTestConfig(t *testing.T) string {
	dir, err := ioutil.TempDir("", "ledgerpay")
	assert.NoError(t, err)
	f := path.Join(dir, "ledgerpay.yaml")
	err = ioutil.WriteFile(f, []byte(testConfig), 0644)
	assert.NoError(t, err)
	return f
}

func TestDefaults(t *testing.T) {
	Reset()
	assert.Equal(t, "17206648368948385036L", GetString(StoreAddress))
	assert.Equal(t, 10*time.Second, GetDuration(ReconcileInterval))
	assert.Equal(t, time.Duration(0), GetDuration(OrdersTTL))
	assert.Equal(t, uint(8182), GetUint(HTTPPort))
	assert.Equal(t, "/payment", GetString(WebSocketPath))
	assert.Equal(t, "lisk", GetString(LedgerType))
	assert.Empty(t, GetStringSlice(KafkaBrokers))
	assert.False(t, GetBool(HTTPTLSEnabled))
	assert.Equal(t, 16, GetInt(WebSocketSendQueueLength))
}

func TestReadConfigFile(t *testing.T) {
	Reset()
	f := writeTestConfig(t)
	defer os.RemoveAll(path.Dir(f))

	pc := NewPluginConfig("plugin").SubPrefix("nested")
	pc.AddKnownKey("url")
	pc.AddKnownKey("count", 1)
	pc.AddKnownKey("headers")
	pc.AddKnownKey("missing", "a", "b")

	err := ReadConfig(f)
	assert.NoError(t, err)
	assert.Equal(t, "999L", GetString(StoreAddress))
	assert.Equal(t, 2*time.Second, GetDuration(ReconcileInterval))
	assert.Equal(t, time.Hour, GetDuration(OrdersTTL))
	assert.Equal(t, "http://ledger.example.com", pc.GetString("url"))
	assert.Equal(t, 3, pc.GetInt("count"))
	assert.Equal(t, uint(3), pc.GetUint("count"))
	assert.Equal(t, "abc", pc.GetStringMap("headers")["x-key"])
	assert.Equal(t, []string{"a", "b"}, pc.GetStringSlice("missing"))
	assert.False(t, pc.GetBool("url"))
	assert.NotNil(t, pc.Get("url"))
	assert.Contains(t, GetKnownKeys(), "plugin.nested.url")
}

func TestReadConfigMissingFile(t *testing.T) {
	Reset()
	err := ReadConfig("/does/not/exist.yaml")
	assert.Error(t, err)
}

func TestDurationMillis(t *testing.T) {
	Reset()
	Set(ReconcileInterval, 1500)
	assert.Equal(t, 1500*time.Millisecond, GetDuration(ReconcileInterval))
}

func TestByteSize(t *testing.T) {
	Reset()
	assert.Equal(t, int64(16384), GetByteSize(WebSocketReadBufferSize))
	Set(WebSocketReadBufferSize, "16Kb")
	assert.Equal(t, int64(16384), GetByteSize(WebSocketReadBufferSize))
	Set(WebSocketReadBufferSize, "1MB")
	assert.Equal(t, int64(1048576), GetByteSize(WebSocketReadBufferSize))
	Set(WebSocketReadBufferSize, 4096)
	assert.Equal(t, int64(4096), GetByteSize(WebSocketReadBufferSize))
	Set(WebSocketReadBufferSize, "lots")
	assert.Equal(t, int64(0), GetByteSize(WebSocketReadBufferSize))
	Set(WebSocketReadBufferSize, "")
	assert.Equal(t, int64(0), GetByteSize(WebSocketReadBufferSize))
}

func TestUnknownKeyPanics(t *testing.T) {
	pc := NewPluginConfig("unknown")
	assert.Panics(t, func() {
		pc.GetString("notthere")
	})
}

func TestUnmarshalKey(t *testing.T) {
	Reset()
	f := writeTestConfig(t)
	defer os.RemoveAll(path.Dir(f))
	pc := NewPluginConfig("plugin")
	pc.AddKnownKey("nested")
	err := ReadConfig(f)
	assert.NoError(t, err)

	var nested struct {
		URL   string `json:"url"`
		Count int    `json:"count"`
	}
	err = pc.UnmarshalKey(context.Background(), "nested", &nested)
	assert.NoError(t, err)
	assert.Equal(t, "http://ledger.example.com", nested.URL)
	assert.Equal(t, 3, nested.Count)
}

func TestUnmarshalKeyFail(t *testing.T) {
	Reset()
	Set(StoreAddress, "not a map")
	var val map[string]string
	err := UnmarshalKey(context.Background(), StoreAddress, &val)
	assert.Regexp(t, "LP10101", err)
	assert.Equal(t, "ledgerpay-orders", Get(KafkaTopic))
}

func TestSetupLogging(t *testing.T) {
	Reset()
	Set(LogLevel, "debug")
	SetupLogging(context.Background())
}
