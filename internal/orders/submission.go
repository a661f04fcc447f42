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

package orders

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/kaleido-io/ledgerpay/internal/i18n"
	"github.com/kaleido-io/ledgerpay/pkg/lptypes"
	"github.com/xeipuuv/gojsonschema"
)

const submissionSchema = `{
	"type": "object",
	"properties": {
		"payerId": { "type": "string", "minLength": 1 },
		"item": { "type": "string", "minLength": 1 }
	},
	"required": ["payerId", "item"]
}`

// SubmissionValidator checks inbound order submissions. Extra fields are allowed.
type SubmissionValidator interface {
	// Parse validates raw JSON from a client, and returns the submission it contains
	Parse(ctx context.Context, data []byte) (*lptypes.OrderSubmission, error)
	// Validate checks a submission that has already been deserialized
	Validate(ctx context.Context, submission *lptypes.OrderSubmission) error
}

type submissionValidator struct {
	schema *gojsonschema.Schema
}

func NewSubmissionValidator(ctx context.Context) (SubmissionValidator, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(submissionSchema))
	if err != nil {
		return nil, i18n.WrapError(ctx, err, i18n.MsgSchemaLoadFailed)
	}
	return &submissionValidator{schema: schema}, nil
}

func (sv *submissionValidator) Parse(ctx context.Context, data []byte) (*lptypes.OrderSubmission, error) {
	if err := sv.validateBytes(ctx, data); err != nil {
		return nil, err
	}
	var submission lptypes.OrderSubmission
	if err := json.Unmarshal(data, &submission); err != nil {
		return nil, i18n.WrapError(ctx, err, i18n.MsgInvalidSubmission, err)
	}
	return &submission, nil
}

func (sv *submissionValidator) Validate(ctx context.Context, submission *lptypes.OrderSubmission) error {
	if submission == nil {
		return i18n.NewError(ctx, i18n.MsgInvalidSubmission, "null")
	}
	b, _ := json.Marshal(submission)
	return sv.validateBytes(ctx, b)
}

func (sv *submissionValidator) validateBytes(ctx context.Context, b []byte) error {
	res, err := sv.schema.Validate(gojsonschema.NewBytesLoader(b))
	if err != nil {
		return i18n.WrapError(ctx, err, i18n.MsgInvalidSubmission, err)
	}
	if !res.Valid() {
		errStrings := make([]string, len(res.Errors()))
		for i, e := range res.Errors() {
			errStrings[i] = e.String()
		}
		return i18n.NewError(ctx, i18n.MsgInvalidSubmission, strings.Join(errStrings, ","))
	}
	return nil
}
