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

// Status is a summary of the running node.
// Subscribers counts live websocket clients only. Sinks counts every broadcast target,
// including the Kafka sink when one is configured.
type Status struct {
	StoreAddress string `json:"storeAddress"`
	Subscribers  int    `json:"subscribers"`
	Sinks        int    `json:"sinks"`
	Orders       int    `json:"orders"`
	Interval     string `json:"interval"`
}

// RESTError is the body returned by the API for all errors
type RESTError struct {
	Error string `json:"error"`
}
