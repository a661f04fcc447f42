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
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/ghodss/yaml"
	"github.com/gorilla/mux"
	"github.com/kaleido-io/ledgerpay/internal/config"
	"github.com/kaleido-io/ledgerpay/internal/i18n"
	"github.com/kaleido-io/ledgerpay/internal/log"
	"github.com/kaleido-io/ledgerpay/internal/metrics"
	"github.com/kaleido-io/ledgerpay/internal/oapispec"
	"github.com/kaleido-io/ledgerpay/internal/orchestrator"
	"github.com/kaleido-io/ledgerpay/internal/wsserver"
	"github.com/kaleido-io/ledgerpay/pkg/lptypes"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server is the external interface for the API Server
type Server interface {
	Serve(ctx context.Context, o orchestrator.Orchestrator) error
}

type apiServer struct {
	wsPath         string
	metricsEnabled bool
	metricsPath    string
}

func NewAPIServer() Server {
	return &apiServer{
		wsPath:         config.GetString(config.WebSocketPath),
		metricsEnabled: config.GetBool(config.MetricsEnabled),
		metricsPath:    config.GetString(config.MetricsPath),
	}
}

// Serve is the main entry point for the API Server
func (as *apiServer) Serve(ctx context.Context, o orchestrator.Orchestrator) (err error) {
	httpErrChan := make(chan error)

	ws := wsserver.NewWebSocketServer(ctx, o.Subscribers(), o)
	defer ws.Close()

	apiHTTPServer, err := newHTTPServer(ctx, "api", as.createMuxRouter(o, ws), httpErrChan)
	if err != nil {
		return err
	}
	go apiHTTPServer.serveHTTP(ctx)

	return <-httpErrChan
}

func (as *apiServer) routeHandler(o orchestrator.Orchestrator, route *oapispec.Route) http.HandlerFunc {
	return as.apiWrapper(func(res http.ResponseWriter, req *http.Request) (int, error) {

		var body []byte
		var err error
		if route.JSONInputValue != nil {
			contentType := req.Header.Get("Content-Type")
			if !strings.HasPrefix(strings.ToLower(contentType), "application/json") {
				return 415, i18n.NewError(req.Context(), i18n.MsgInvalidContentType)
			}
			body, err = ioutil.ReadAll(req.Body)
			if err != nil {
				return 400, i18n.WrapError(req.Context(), err, i18n.MsgJSONDecodeFailed)
			}
		}

		r := &oapispec.APIRequest{
			Ctx:  req.Context(),
			Or:   o,
			Req:  req,
			PP:   mux.Vars(req),
			Body: body,
		}
		output, err := route.JSONHandler(r)
		if err != nil {
			return 500, err
		}
		return as.handleOutput(req.Context(), res, route.JSONOutputCode, output)
	})
}

func (as *apiServer) handleOutput(ctx context.Context, res http.ResponseWriter, status int, output interface{}) (int, error) {
	vOutput := reflect.ValueOf(output)
	outputKind := vOutput.Kind()
	isPointer := outputKind == reflect.Ptr
	invalid := outputKind == reflect.Invalid
	isNil := output == nil || invalid || (isPointer && vOutput.IsNil())
	var marshalErr error
	switch {
	case isNil:
		if status != 204 {
			return 404, i18n.NewError(ctx, i18n.Msg404NotFound)
		}
		res.WriteHeader(204)
	default:
		res.Header().Add("Content-Type", "application/json")
		res.WriteHeader(status)
		marshalErr = json.NewEncoder(res).Encode(output)
	}
	if marshalErr != nil {
		err := i18n.WrapError(ctx, marshalErr, i18n.MsgResponseMarshalError)
		log.L(ctx).Errorf(err.Error())
		return 500, err
	}
	return status, nil
}

func (as *apiServer) apiWrapper(handler func(res http.ResponseWriter, req *http.Request) (status int, err error)) http.HandlerFunc {
	return func(res http.ResponseWriter, req *http.Request) {

		ctx := log.WithLogField(req.Context(), "req", lptypes.ShortID())
		req = req.WithContext(ctx)

		// Wrap the request itself in a log wrapper, that gives minimal request/response and timing info
		l := log.L(ctx)
		l.Infof("--> %s %s", req.Method, req.URL.Path)
		startTime := time.Now()
		status, err := handler(res, req)
		durationMS := float64(time.Since(startTime)) / float64(time.Millisecond)
		if err != nil {

			// Routers don't need to tweak the status code when sending errors.
			// The LP12345 code of the error is mapped to a status hint, if one is registered
			if statusHint, ok := i18n.ErrorStatusHint(err); ok {
				status = statusHint
			}

			// ... or we default to 500
			if status < 300 {
				status = 500
			}
			l.Infof("<-- %s %s [%d] (%.2fms): %s", req.Method, req.URL.Path, status, durationMS, err)
			res.Header().Add("Content-Type", "application/json")
			res.WriteHeader(status)
			_ = json.NewEncoder(res).Encode(&lptypes.RESTError{
				Error: err.Error(),
			})
		} else {
			l.Infof("<-- %s %s [%d] (%.2fms)", req.Method, req.URL.Path, status, durationMS)
		}
	}
}

func (as *apiServer) notFoundHandler(res http.ResponseWriter, req *http.Request) (status int, err error) {
	res.Header().Add("Content-Type", "application/json")
	return 404, i18n.NewError(req.Context(), i18n.Msg404NotFound)
}

func getPublicURL() string {
	proto := "https"
	if !config.GetBool(config.HTTPTLSEnabled) {
		proto = "http"
	}
	return fmt.Sprintf("%s://%s:%s", proto, config.GetString(config.HTTPAddress), config.GetString(config.HTTPPort))
}

func (as *apiServer) swaggerUIHandler(url string) func(res http.ResponseWriter, req *http.Request) (status int, err error) {
	return func(res http.ResponseWriter, req *http.Request) (status int, err error) {
		res.Header().Add("Content-Type", "text/html")
		_, _ = res.Write(oapispec.SwaggerUIHTML(url))
		return 200, nil
	}
}

func (as *apiServer) swaggerHandler(routes []*oapispec.Route, url string) func(res http.ResponseWriter, req *http.Request) (status int, err error) {
	return func(res http.ResponseWriter, req *http.Request) (status int, err error) {
		doc := oapispec.SwaggerGen(req.Context(), routes, url)
		if mux.Vars(req)["ext"] == ".json" {
			res.Header().Add("Content-Type", "application/json")
			b, _ := json.Marshal(&doc)
			_, _ = res.Write(b)
		} else {
			res.Header().Add("Content-Type", "application/x-yaml")
			b, _ := yaml.Marshal(&doc)
			_, _ = res.Write(b)
		}
		return 200, nil
	}
}

func (as *apiServer) createMuxRouter(o orchestrator.Orchestrator, ws wsserver.WebSocketServer) *mux.Router {
	r := mux.NewRouter()

	for _, route := range routes {
		r.HandleFunc(fmt.Sprintf("/api/v1/%s", route.Path), as.routeHandler(o, route)).
			Methods(route.Method)
	}
	publicURL := getPublicURL()
	r.HandleFunc(`/api/swagger{ext:\.yaml|\.json|}`, as.apiWrapper(as.swaggerHandler(routes, publicURL)))
	r.HandleFunc(`/api`, as.apiWrapper(as.swaggerUIHandler(publicURL)))
	r.HandleFunc(as.wsPath, ws.Handler())
	if as.metricsEnabled {
		r.Path(as.metricsPath).Handler(promhttp.InstrumentMetricHandler(metrics.Registry(),
			promhttp.HandlerFor(metrics.Registry(), promhttp.HandlerOpts{})))
	}

	r.NotFoundHandler = as.apiWrapper(as.notFoundHandler)
	return r
}
