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
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3gen"
	"github.com/kaleido-io/ledgerpay/internal/i18n"
	"github.com/kaleido-io/ledgerpay/internal/log"
)

// SwaggerGen builds an OpenAPI 3 document for the routes, served from baseURL
func SwaggerGen(ctx context.Context, routes []*Route, baseURL string) *openapi3.T {
	doc := &openapi3.T{
		OpenAPI: "3.0.2",
		Servers: openapi3.Servers{
			{URL: baseURL + "/api/v1"},
		},
		Info: &openapi3.Info{
			Title:       "ledgerpay",
			Version:     "1.0",
			Description: "Copyright © 2021 Kaleido, Inc.",
		},
		Paths: openapi3.Paths{},
	}
	for _, route := range routes {
		addRoute(ctx, doc, route)
	}
	return doc
}

func getPathItem(doc *openapi3.T, path string) *openapi3.PathItem {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	pi, ok := doc.Paths[path]
	if ok {
		return pi
	}
	pi = &openapi3.PathItem{}
	doc.Paths[path] = pi
	return pi
}

func schemaFor(ctx context.Context, route *Route, value interface{}) *openapi3.SchemaRef {
	schemaRef, _, err := openapi3gen.NewSchemaRefForValue(value)
	if err != nil {
		log.L(ctx).Warnf("No schema generated for %s: %s", route.Name, err)
	}
	return schemaRef
}

func addInput(ctx context.Context, route *Route, input interface{}, op *openapi3.Operation) {
	op.RequestBody = &openapi3.RequestBodyRef{
		Value: &openapi3.RequestBody{
			Required: true,
			Content: openapi3.Content{
				"application/json": &openapi3.MediaType{
					Schema: schemaFor(ctx, route, input),
				},
			},
		},
	}
}

func addOutput(ctx context.Context, route *Route, output interface{}, op *openapi3.Operation) {
	s := i18n.Expand(ctx, i18n.MsgSuccessResponse)
	resp := &openapi3.Response{Description: &s}
	if output != nil {
		resp.Content = openapi3.Content{
			"application/json": &openapi3.MediaType{
				Schema: schemaFor(ctx, route, output),
			},
		}
	}
	op.Responses[strconv.FormatInt(int64(route.JSONOutputCode), 10)] = &openapi3.ResponseRef{Value: resp}
}

func addParam(ctx context.Context, op *openapi3.Operation, in, name string, description i18n.MessageKey) {
	op.Parameters = append(op.Parameters, &openapi3.ParameterRef{
		Value: &openapi3.Parameter{
			In:          in,
			Name:        name,
			Required:    in == "path",
			Description: i18n.Expand(ctx, description),
			Schema: &openapi3.SchemaRef{
				Value: &openapi3.Schema{
					Type: "string",
				},
			},
		},
	})
}

func addRoute(ctx context.Context, doc *openapi3.T, route *Route) {
	pi := getPathItem(doc, route.Path)
	op := &openapi3.Operation{
		Description: i18n.Expand(ctx, route.Description),
		OperationID: route.Name,
		Responses:   openapi3.NewResponses(),
	}
	if route.JSONInputValue != nil {
		addInput(ctx, route, route.JSONInputValue(), op)
	}
	var output interface{}
	if route.JSONOutputValue != nil {
		output = route.JSONOutputValue()
	}
	addOutput(ctx, route, output, op)
	for _, p := range route.PathParams {
		addParam(ctx, op, "path", p.Name, p.Description)
	}
	switch route.Method {
	case http.MethodGet:
		pi.Get = op
	case http.MethodPut:
		pi.Put = op
	case http.MethodPost:
		pi.Post = op
	case http.MethodDelete:
		pi.Delete = op
	}
}
