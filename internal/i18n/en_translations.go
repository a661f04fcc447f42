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

package i18n

var (
	MsgConfigFailed             = lpm("LP10101", "Failed to read config: %s")
	MsgJSONDecodeFailed         = lpm("LP10102", "Failed to decode input JSON", 400)
	MsgAPIServerStartFailed     = lpm("LP10103", "Unable to start listener on %s: %s")
	MsgTLSConfigFailed          = lpm("LP10104", "Failed to initialize TLS configuration")
	MsgInvalidCAFile            = lpm("LP10105", "Invalid CA certificates file")
	MsgResponseMarshalError     = lpm("LP10106", "Failed to serialize response data")
	Msg404NotFound              = lpm("LP10107", "Not found", 404)
	MsgUnknownLedgerPlugin      = lpm("LP10108", "Unknown ledger plugin: %s")
	MsgMissingPluginConfig      = lpm("LP10109", "Missing configuration '%s' for %s")
	MsgLedgerRequestFailed      = lpm("LP10110", "Ledger request failed: %s")
	MsgLedgerBadStatus          = lpm("LP10111", "Ledger returned HTTP status %d: %s")
	MsgLedgerInvalidResponse    = lpm("LP10112", "Could not parse the ledger response: %s")
	MsgLedgerTransactionsNotSet = lpm("LP10113", "Could not find the transactions (success=%t)")
	MsgInvalidEpoch             = lpm("LP10114", "Invalid ledger epoch '%s'")
	MsgInvalidSubmission        = lpm("LP10115", "Invalid order submission: %s", 400)
	MsgSchemaLoadFailed         = lpm("LP10116", "Failed to load submission schema")
	MsgBinaryMessageRejected    = lpm("LP10117", "Server only accepts text messages")
	MsgSinkClosed               = lpm("LP10118", "Subscriber '%s' is closed")
	MsgSinkQueueFull            = lpm("LP10119", "Send queue for subscriber '%s' is full")
	MsgContextCanceled          = lpm("LP10120", "Context cancelled")
	MsgKafkaPublishFailed       = lpm("LP10121", "Failed to publish to Kafka topic '%s'")
	MsgInvalidOutputOption      = lpm("LP10122", "Invalid output option '%s'")
	MsgOrderNotFound            = lpm("LP10123", "No order found for payer '%s'", 404)
	MsgMissingStoreAddress      = lpm("LP10124", "The store address must be configured")
	MsgInvalidInterval          = lpm("LP10125", "Reconcile interval must be positive: %s")
	MsgInvalidContentType       = lpm("LP10126", "Invalid content type", 415)
	MsgSuccessResponse          = lpm("LP10127", "Success")
	MsgPayerIDParamDesc         = lpm("LP10128", "The ledger address of the payer")
	MsgRoutePostOrder           = lpm("LP10129", "Submits a pending order for a payer, replacing any existing order")
	MsgRouteGetOrders           = lpm("LP10130", "Lists the live orders")
	MsgRouteGetOrderByPayer     = lpm("LP10131", "Gets the order for a payer")
	MsgRouteDeleteOrder         = lpm("LP10132", "Removes the order for a payer")
	MsgRouteGetStatus           = lpm("LP10133", "Gets the status of the reconciliation engine")
)
