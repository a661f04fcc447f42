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

package apiserver

import (
	"context"
	"net/http"

	"github.com/kaleido-io/ledgerpay/internal/config"
	"github.com/kaleido-io/ledgerpay/internal/log"
	"github.com/rs/cors"
)

// corsOptions applies to the REST routes and the swagger endpoints. Websocket upgrades
// pass through unchanged, as browsers do not preflight them.
func corsOptions() cors.Options {
	return cors.Options{
		AllowedOrigins:   config.GetStringSlice(config.CorsAllowedOrigins),
		AllowedMethods:   config.GetStringSlice(config.CorsAllowedMethods),
		AllowedHeaders:   config.GetStringSlice(config.CorsAllowedHeaders),
		AllowCredentials: config.GetBool(config.CorsAllowCredentials),
		MaxAge:           config.GetInt(config.CorsMaxAge),
		Debug:            config.GetBool(config.CorsDebug),
	}
}

func wrapCorsIfEnabled(ctx context.Context, chain http.Handler) http.Handler {
	if !config.GetBool(config.CorsEnabled) {
		return chain
	}
	opts := corsOptions()
	log.L(ctx).Debugf("CORS enabled for origins=%v methods=%v", opts.AllowedOrigins, opts.AllowedMethods)
	return cors.New(opts).Handler(chain)
}
