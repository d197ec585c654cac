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

// Package fluviotime provides a compact, monotonic integer representation of
// event time used throughout the windowing engine. Arithmetic is done in
// microseconds since the UNIX epoch so that window alignment is a single
// integer subtraction instead of floating point comparisons.
package fluviotime

import (
	"encoding/binary"
	"math"
	"time"

	"github.com/rulego/streamwindow/streamerr"
)

const microPerSec int64 = 1_000_000

// FluvioTime is a 64-bit signed count of microseconds since the UNIX epoch.
// It has total order and fits into a single CPU register, which keeps the
// window manager's hot path (compare, subtract, modulo) allocation-free.
type FluvioTime int64

// Now returns the current wall clock time as a FluvioTime. The engine itself
// never calls this; it exists so hosts and tests don't need to hand-roll the
// conversion from time.Time.
func Now() FluvioTime {
	return FromTime(time.Now())
}

// FromTime converts a time.Time to FluvioTime, truncating to microsecond
// precision.
func FromTime(t time.Time) FluvioTime {
	return FluvioTime(t.UnixMicro())
}

// Parse parses an RFC 3339 timestamp with an explicit offset (e.g.
// "2023-06-22T19:45:22.033Z") into a FluvioTime.
func Parse(iso8601 string) (FluvioTime, error) {
	t, err := time.Parse(time.RFC3339Nano, iso8601)
	if err != nil {
		return 0, streamerr.Wrap(streamerr.KindTimeParse, "parse timestamp", err)
	}
	return FromTime(t), nil
}

// AlignSeconds floors the receiver down to the nearest multiple of
// n seconds, returning the start of the n-second bucket containing t.
//
// Callers must supply non-negative t; align_seconds is only defined over
// t >= 0 microseconds since epoch (see spec §4.1). Negative t is not
// rejected here — rejecting would make every pre-1970 test fixture fatal for
// no benefit to the windowing algorithm, which never sees negative event
// time in practice — but callers relying on floor-toward-negative-infinity
// semantics for negative t should be aware Go's '%' truncates toward zero,
// not floor, unlike Rust's behavior assumed by the original source.
func (t FluvioTime) AlignSeconds(n uint32) FluvioTime {
	bucket := microPerSec * int64(n)
	return FluvioTime(int64(t) - (int64(t) % bucket))
}

// Micros returns the raw microsecond count since epoch.
func (t FluvioTime) Micros() int64 {
	return int64(t)
}

// maxMicros/minMicros bound the microsecond values whose equivalent
// nanosecond count still fits in an int64.
const (
	maxMicros = math.MaxInt64 / 1000
	minMicros = math.MinInt64 / 1000
)

// AsUTC reconstructs the wall-clock time represented by t. It fails with
// KindTimeRange if t falls outside the range representable as nanoseconds
// since epoch.
func (t FluvioTime) AsUTC() (time.Time, error) {
	if int64(t) > maxMicros || int64(t) < minMicros {
		return time.Time{}, streamerr.New(streamerr.KindTimeRange, "timestamp outside representable wall-clock range")
	}
	return time.UnixMicro(int64(t)).UTC(), nil
}

// String renders t as RFC3339Nano, for log-friendly formatting.
func (t FluvioTime) String() string {
	ts, err := t.AsUTC()
	if err != nil {
		return "invalid-time"
	}
	return ts.Format(time.RFC3339Nano)
}

// Before reports whether t occurs strictly before o.
func (t FluvioTime) Before(o FluvioTime) bool { return t < o }

// After reports whether t occurs strictly after o.
func (t FluvioTime) After(o FluvioTime) bool { return t > o }

// Encode writes the little-endian, 8-byte signed-microsecond wire
// representation of t.
func (t FluvioTime) Encode() [8]byte {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(t))
	return buf
}

// Decode reads the little-endian 8-byte wire representation produced by
// Encode. It fails with KindInvalidTimestamp if the decoded value cannot be
// represented as wall-clock time (see AsUTC).
func Decode(buf [8]byte) (FluvioTime, error) {
	raw := int64(binary.LittleEndian.Uint64(buf[:]))
	t := FluvioTime(raw)
	if _, err := t.AsUTC(); err != nil {
		return 0, streamerr.Wrap(streamerr.KindInvalidTimestamp, "decode timestamp", err)
	}
	return t, nil
}
