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

package oapispec

import (
	"context"
	"net/http"

	"github.com/kaleido-io/ledgerpay/internal/i18n"
	"github.com/kaleido-io/ledgerpay/internal/orchestrator"
)

// Route defines each API operation on the REST API of ledgerpay.
// The same table drives the gorilla mux routes and the generated OpenAPI document.
type Route struct {
	// Name is the operation name, used as the operation ID in the OpenAPI document
	Name string
	// Path is a Gorilla mux path spec, relative to /api/v1
	Path string
	// PathParams is a list of documented path parameters
	PathParams []*PathParam
	// Method is the HTTP method
	Method string
	// Description is a message key to a translatable description of the operation
	Description i18n.MessageKey
	// JSONInputValue returns a pointer to the structure taken as JSON input, or is nil for routes without a body
	JSONInputValue func() interface{}
	// JSONOutputValue returns a pointer to the structure returned as JSON output
	JSONOutputValue func() interface{}
	// JSONOutputCode is the HTTP status returned on success
	JSONOutputCode int
	// JSONHandler is the function that handles the request
	JSONHandler func(r *APIRequest) (output interface{}, err error)
}

// PathParam is a description of a path parameter
type PathParam struct {
	// Name is the name of the parameter, from the Gorilla path mux
	Name string
	// Description is a message key to a translatable description of the parameter
	Description i18n.MessageKey
}

// APIRequest is the input to a route handler
type APIRequest struct {
	Ctx  context.Context
	Or   orchestrator.Orchestrator
	Req  *http.Request
	PP   map[string]string
	Body []byte
}
