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

import (
	"encoding/json"
	"strconv"
	"time"
)

// LPTime is serialized to JSON on the API in RFC3339 nanosecond UTC time.
// It can be parsed from RFC3339, or unix timestamps (second, millisecond or nanosecond resolution)
type LPTime time.Time

func Now() *LPTime {
	t := LPTime(time.Now().UTC())
	return &t
}

func ZeroTime() LPTime {
	return LPTime(time.Time{}.UTC())
}

func UnixTime(unixTime int64) *LPTime {
	if unixTime < 1e10 {
		unixTime *= 1e3 // secs to millis
	}
	if unixTime < 1e15 {
		unixTime *= 1e6 // millis to nanos
	}
	t := LPTime(time.Unix(0, unixTime).UTC())
	return &t
}

// EpochTime converts a count of seconds since a network specific epoch into absolute time
func EpochTime(epoch time.Time, secondsSinceEpoch int64) *LPTime {
	t := LPTime(epoch.Add(time.Duration(secondsSinceEpoch) * time.Second).UTC())
	return &t
}

func (ft *LPTime) MarshalJSON() ([]byte, error) {
	if ft == nil || time.Time(*ft).IsZero() {
		return json.Marshal(nil)
	}
	return json.Marshal(ft.String())
}

func ParseString(str string) (*LPTime, error) {
	t, err := time.Parse(time.RFC3339Nano, str)
	if err != nil {
		var unixTime int64
		unixTime, err = strconv.ParseInt(str, 10, 64)
		if err == nil {
			return UnixTime(unixTime), nil
		}
	}
	if err != nil {
		zero := ZeroTime()
		return &zero, err
	}
	ft := LPTime(t)
	return &ft, nil
}

func (ft *LPTime) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*ft = ZeroTime()
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	t, err := ParseString(s)
	if err != nil {
		return err
	}
	*ft = *t
	return nil
}

func (ft *LPTime) Time() time.Time {
	if ft == nil {
		return time.Time{}
	}
	return time.Time(*ft)
}

func (ft *LPTime) UnixNano() int64 {
	if ft == nil {
		return 0
	}
	return time.Time(*ft).UnixNano()
}

func (ft *LPTime) String() string {
	if ft == nil || time.Time(*ft).IsZero() {
		return ""
	}
	return time.Time(*ft).UTC().Format(time.RFC3339Nano)
}
