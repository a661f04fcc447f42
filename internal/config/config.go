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
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/docker/go-units"
	"github.com/kaleido-io/ledgerpay/internal/i18n"
	"github.com/kaleido-io/ledgerpay/internal/log"
	"github.com/spf13/viper"
)

// The following keys can be access from the root configuration.
// Plugins are resonsible for defining their own keys using the ConfigPrefix interface
var (
	Lang                     RootKey = ark("lang")
	LogLevel                 RootKey = ark("log.level")
	LogColor                 RootKey = ark("log.color")
	LogUTC                   RootKey = ark("log.utc")
	LogTimeFormat            RootKey = ark("log.timeFormat")
	DebugPort                RootKey = ark("debug.port")
	HTTPAddress              RootKey = ark("http.address")
	HTTPPort                 RootKey = ark("http.port")
	HTTPReadTimeout          RootKey = ark("http.readTimeout")
	HTTPWriteTimeout         RootKey = ark("http.writeTimeout")
	HTTPTLSEnabled           RootKey = ark("http.tls.enabled")
	HTTPTLSClientAuth        RootKey = ark("http.tls.clientAuth")
	HTTPTLSCAFile            RootKey = ark("http.tls.caFile")
	HTTPTLSCertFile          RootKey = ark("http.tls.certFile")
	HTTPTLSKeyFile           RootKey = ark("http.tls.keyFile")
	CorsEnabled              RootKey = ark("cors.enabled")
	CorsAllowedOrigins       RootKey = ark("cors.origins")
	CorsAllowedMethods       RootKey = ark("cors.methods")
	CorsAllowedHeaders       RootKey = ark("cors.headers")
	CorsAllowCredentials     RootKey = ark("cors.credentials")
	CorsMaxAge               RootKey = ark("cors.maxAge")
	CorsDebug                RootKey = ark("cors.debug")
	StoreAddress             RootKey = ark("store.address")
	ReconcileInterval        RootKey = ark("reconcile.interval")
	OrdersTTL                RootKey = ark("orders.ttl")
	OrdersSweepInterval      RootKey = ark("orders.sweepInterval")
	WebSocketPath            RootKey = ark("websocket.path")
	WebSocketReadBufferSize  RootKey = ark("websocket.readBufferSize")
	WebSocketWriteBufferSize RootKey = ark("websocket.writeBufferSize")
	WebSocketSendQueueLength RootKey = ark("websocket.sendQueueLength")
	MetricsEnabled           RootKey = ark("metrics.enabled")
	MetricsPath              RootKey = ark("metrics.path")
	LedgerType               RootKey = ark("ledger.type")
	KafkaBrokers             RootKey = ark("kafka.brokers")
	KafkaTopic               RootKey = ark("kafka.topic")
	KafkaWriteTimeout        RootKey = ark("kafka.writeTimeout")
	KafkaRetryInitialDelay   RootKey = ark("kafka.retry.initialDelay")
	KafkaRetryMaximumDelay   RootKey = ark("kafka.retry.maxDelay")
	KafkaRetryAttempts       RootKey = ark("kafka.retry.attempts")
	KafkaSendQueueLength     RootKey = ark("kafka.sendQueueLength")
)

// ConfigPrefix represents the global configuration, at a nested point in
// the config heirarchy. This allows plugins to define their own keys.
//
// Note that all values are GLOBAL so this cannot be used for per-instance
// customization. Rather for global initialization of plugins.
type ConfigPrefix interface {
	AddKnownKey(key string, defValue ...interface{})
	SubPrefix(suffix string) ConfigPrefix
	Set(key string, value interface{})

	GetString(key string) string
	GetBool(key string) bool
	GetInt(key string) int
	GetUint(key string) uint
	GetDuration(key string) time.Duration
	GetByteSize(key string) int64
	GetStringSlice(key string) []string
	GetStringMap(key string) map[string]interface{}
	UnmarshalKey(ctx context.Context, key string, rawVal interface{}) error
	Get(key string) interface{}
}

// RootKey key are the known configuration keys
type RootKey string

func init() {
	Reset()
}

// Reset clears all configuration, and applies the root defaults.
// Plugin prefixes must re-register their keys after a reset.
func Reset() {
	keysMutex.Lock()
	viper.Reset()
	keysMutex.Unlock()

	// Set defaults
	viper.SetDefault(string(Lang), "en")
	viper.SetDefault(string(LogLevel), "info")
	viper.SetDefault(string(LogColor), true)
	viper.SetDefault(string(LogUTC), false)
	viper.SetDefault(string(LogTimeFormat), "2006-01-02T15:04:05.000Z07:00")
	viper.SetDefault(string(DebugPort), -1)
	viper.SetDefault(string(HTTPAddress), "127.0.0.1")
	viper.SetDefault(string(HTTPPort), 8182)
	viper.SetDefault(string(HTTPReadTimeout), "15s")
	viper.SetDefault(string(HTTPWriteTimeout), "15s")
	viper.SetDefault(string(HTTPTLSEnabled), false)
	viper.SetDefault(string(HTTPTLSClientAuth), false)
	viper.SetDefault(string(CorsEnabled), true)
	viper.SetDefault(string(CorsAllowedOrigins), []string{"*"})
	viper.SetDefault(string(CorsAllowedMethods), []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete})
	viper.SetDefault(string(CorsAllowedHeaders), []string{"*"})
	viper.SetDefault(string(CorsAllowCredentials), true)
	viper.SetDefault(string(CorsMaxAge), 5)
	viper.SetDefault(string(CorsDebug), false)
	viper.SetDefault(string(StoreAddress), "17206648368948385036L")
	viper.SetDefault(string(ReconcileInterval), "10s")
	viper.SetDefault(string(OrdersTTL), "0")
	viper.SetDefault(string(OrdersSweepInterval), "10m")
	viper.SetDefault(string(WebSocketPath), "/payment")
	viper.SetDefault(string(WebSocketReadBufferSize), "16Kb")
	viper.SetDefault(string(WebSocketWriteBufferSize), "16Kb")
	viper.SetDefault(string(WebSocketSendQueueLength), 16)
	viper.SetDefault(string(MetricsEnabled), true)
	viper.SetDefault(string(MetricsPath), "/metrics")
	viper.SetDefault(string(LedgerType), "lisk")
	viper.SetDefault(string(KafkaBrokers), []string{})
	viper.SetDefault(string(KafkaTopic), "ledgerpay-orders")
	viper.SetDefault(string(KafkaWriteTimeout), "10s")
	viper.SetDefault(string(KafkaRetryInitialDelay), "250ms")
	viper.SetDefault(string(KafkaRetryMaximumDelay), "5s")
	viper.SetDefault(string(KafkaRetryAttempts), 5)
	viper.SetDefault(string(KafkaSendQueueLength), 100)

	i18n.SetLang(GetString(Lang))
}

// ReadConfig initializes the config
func ReadConfig(cfgFile string) error {
	// Set precedence order for reading config location
	viper.SetEnvPrefix("ledgerpay")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	viper.SetConfigType("yaml")
	if cfgFile != "" {
		f, err := os.Open(cfgFile)
		if err == nil {
			defer f.Close()
			err = viper.ReadConfig(f)
		}
		return err
	}
	viper.SetConfigName("ledgerpay")
	viper.AddConfigPath("/etc/ledgerpay/")
	viper.AddConfigPath("$HOME/.ledgerpay")
	viper.AddConfigPath(".")
	return viper.ReadInConfig()
}

// SetupLogging initializes the root logger from the log.* keys
func SetupLogging(ctx context.Context) {
	log.SetFormatting(log.Formatting{
		DisableColor:    !GetBool(LogColor),
		UTC:             GetBool(LogUTC),
		TimestampFormat: GetString(LogTimeFormat),
	})
	log.SetLevel(GetString(LogLevel))
	log.L(ctx).Debugf("Log level: %s", GetString(LogLevel))
}

var keysMutex sync.Mutex

var root = &configPrefix{
	keys: map[string]bool{}, // All keys go here, including those defined in sub prefixies
}

// ark adds a root key, used to define the keys that are used within the core
func ark(k string) RootKey {
	root.AddKnownKey(k)
	return RootKey(k)
}

// configPrefix is the main config structure passed to plugins, and used for root to wrap viper
type configPrefix struct {
	prefix string
	keys   map[string]bool
}

// NewPluginConfig creates a new plugin configuration object, at the specified prefix
func NewPluginConfig(prefix string) ConfigPrefix {
	if !strings.HasSuffix(prefix, ".") {
		prefix += "."
	}
	return &configPrefix{
		prefix: prefix,
		keys:   root.keys,
	}
}

// GetKnownKeys returns every registered key, sorted
func GetKnownKeys() []string {
	keysMutex.Lock()
	defer keysMutex.Unlock()
	var keys []string
	for k := range root.keys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (c *configPrefix) prefixKey(k string) string {
	keysMutex.Lock()
	defer keysMutex.Unlock()
	key := c.prefix + k
	if !c.keys[key] {
		panic(fmt.Sprintf("Undefined configuration key '%s'", key))
	}
	return key
}

func (c *configPrefix) SubPrefix(suffix string) ConfigPrefix {
	return &configPrefix{
		prefix: c.prefix + suffix + ".",
		keys:   root.keys,
	}
}

func (c *configPrefix) AddKnownKey(k string, defValue ...interface{}) {
	keysMutex.Lock()
	defer keysMutex.Unlock()
	key := c.prefix + k
	if len(defValue) == 1 {
		viper.SetDefault(key, defValue[0])
	} else if len(defValue) > 0 {
		viper.SetDefault(key, defValue)
	}
	c.keys[key] = true
}

// GetString gets a configuration string
func GetString(key RootKey) string {
	return root.GetString(string(key))
}
func (c *configPrefix) GetString(key string) string {
	return viper.GetString(c.prefixKey(key))
}

// GetStringSlice gets a configuration string array
func GetStringSlice(key RootKey) []string {
	return root.GetStringSlice(string(key))
}
func (c *configPrefix) GetStringSlice(key string) []string {
	return viper.GetStringSlice(c.prefixKey(key))
}

// GetBool gets a configuration bool
func GetBool(key RootKey) bool {
	return root.GetBool(string(key))
}
func (c *configPrefix) GetBool(key string) bool {
	return viper.GetBool(c.prefixKey(key))
}

// GetUint gets a configuration uint
func GetUint(key RootKey) uint {
	return root.GetUint(string(key))
}
func (c *configPrefix) GetUint(key string) uint {
	return viper.GetUint(c.prefixKey(key))
}

// GetInt gets a configuration int
func GetInt(key RootKey) int {
	return root.GetInt(string(key))
}
func (c *configPrefix) GetInt(key string) int {
	return viper.GetInt(c.prefixKey(key))
}

// GetDuration gets a configuration time duration, accepting strings like "10s" or a number of milliseconds
func GetDuration(key RootKey) time.Duration {
	return root.GetDuration(string(key))
}
func (c *configPrefix) GetDuration(key string) time.Duration {
	k := c.prefixKey(key)
	if ms, ok := viper.Get(k).(int); ok {
		return time.Duration(ms) * time.Millisecond
	}
	return viper.GetDuration(k)
}

// GetByteSize gets a configuration byte size, accepting strings like "16Kb" or "1MB" as well as plain numbers.
// An unparseable value is logged and read as zero.
func GetByteSize(key RootKey) int64 {
	return root.GetByteSize(string(key))
}
func (c *configPrefix) GetByteSize(key string) int64 {
	k := c.prefixKey(key)
	byteString := viper.GetString(k)
	if byteString == "" {
		return 0
	}
	bytes, err := units.RAMInBytes(byteString)
	if err != nil {
		log.L(context.Background()).Warnf("Invalid byte size for '%s': %s", k, err)
		return 0
	}
	return bytes
}

// GetStringMap gets a configuration map
func GetStringMap(key RootKey) map[string]interface{} {
	return root.GetStringMap(string(key))
}
func (c *configPrefix) GetStringMap(key string) map[string]interface{} {
	return viper.GetStringMap(c.prefixKey(key))
}

// Get gets a configuration in raw form
func Get(key RootKey) interface{} {
	return root.Get(string(key))
}
func (c *configPrefix) Get(key string) interface{} {
	return viper.Get(c.prefixKey(key))
}

// Set allows runtime setting of config (used in unit tests)
func Set(key RootKey, value interface{}) {
	root.Set(string(key), value)
}
func (c *configPrefix) Set(key string, value interface{}) {
	viper.Set(c.prefixKey(key), value)
}

// UnmarshalKey gets a configuration section into a struct
func UnmarshalKey(ctx context.Context, key RootKey, rawVal interface{}) error {
	return root.UnmarshalKey(ctx, string(key), rawVal)
}
func (c *configPrefix) UnmarshalKey(ctx context.Context, key string, rawVal interface{}) error {
	// Viper's unmarshal does not work with our json annotated config
	// structures, so we have to go from map to JSON, then to unmarshal
	var intermediate map[string]interface{}
	err := viper.UnmarshalKey(c.prefixKey(key), &intermediate)
	if err == nil {
		b, _ := json.Marshal(intermediate)
		err = json.Unmarshal(b, rawVal)
	}
	if err != nil {
		return i18n.WrapError(ctx, err, i18n.MsgConfigFailed, key)
	}
	return nil
}
