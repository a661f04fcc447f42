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

import (
	"context"
	"regexp"

	"github.com/pkg/errors"
)

var codeExtractor = regexp.MustCompile(`^(LP\d+):`)

// NewError creates a new error
func NewError(ctx context.Context, msg MessageKey, inserts ...interface{}) error {
	return errors.New(ExpandWithCode(ctx, msg, inserts...))
}

// WrapError wraps an error
func WrapError(ctx context.Context, err error, msg MessageKey, inserts ...interface{}) error {
	return errors.Wrap(err, ExpandWithCode(ctx, msg, inserts...))
}

// ErrorCode returns the LP12345 code at the front of an error built by this package.
// Wrapped errors report the code of the outermost message.
func ErrorCode(err error) (string, bool) {
	if err == nil {
		return "", false
	}
	m := codeExtractor.FindStringSubmatch(err.Error())
	if len(m) < 2 {
		return "", false
	}
	return m[1], true
}

// ErrorStatusHint returns the HTTP status registered against the code of an error
func ErrorStatusHint(err error) (int, bool) {
	code, ok := ErrorCode(err)
	if !ok {
		return 0, false
	}
	return GetStatusHint(code)
}
