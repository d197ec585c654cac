/*
 * Copyright 2025 The RuleGo Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package rolling implements incrementally-updated streaming statistics:
// a plain rolling mean/sum for single-owner use inside one window's
// accumulator, and a lock-free variant safe for concurrent monitoring
// reads. The update rules mirror functions.AvgFunction/SumFunction's
// Welford-style incremental formulas.
package rolling

import (
	"encoding/json"
	"math"

	"github.com/rulego/streamwindow/streamerr"
)

// Mean is an incrementally updated arithmetic mean. The zero value is
// ready to use (count=0, mean=0).
type Mean struct {
	Count uint32
	Value float64
}

// Add folds x into the running mean. It fails with KindCounterOverflow if
// Count is already at its maximum representable value.
func (m *Mean) Add(x float64) error {
	if m.Count == math.MaxUint32 {
		return streamerr.New(streamerr.KindCounterOverflow, "rolling mean sample count overflow")
	}
	m.Count++
	m.Value += (x - m.Value) / float64(m.Count)
	return nil
}

// Mean is provided for symmetry with LockFreeMean's method name; Value is
// the same field, exported directly for cheap read access.
func (m Mean) Mean() float64 { return m.Value }

type meanWire struct {
	Count uint32  `json:"count"`
	Mean  float64 `json:"mean"`
}

// MarshalJSON encodes the rolling mean's reachable state for the state
// codec round-trip (spec §8): decode(encode(s)) == s, bitwise on Value.
func (m Mean) MarshalJSON() ([]byte, error) {
	return json.Marshal(meanWire{Count: m.Count, Mean: m.Value})
}

// UnmarshalJSON is the symmetric counterpart to MarshalJSON.
func (m *Mean) UnmarshalJSON(data []byte) error {
	var w meanWire
	if err := json.Unmarshal(data, &w); err != nil {
		return streamerr.Wrap(streamerr.KindStateCodec, "decode rolling mean", err)
	}
	m.Count, m.Value = w.Count, w.Mean
	return nil
}
