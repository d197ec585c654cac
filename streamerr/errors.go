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

// Package streamerr defines the engine-wide error kinds and the
// success/error batch envelope used at every transform boundary. Kinds
// classify *why* an error happened, not *where* in the code it came from,
// so that a host can decide fatal-vs-skip without string matching.
package streamerr

import (
	"errors"
	"fmt"

	"github.com/containerd/errdefs"
)

// Kind tags the reason an operation failed. See spec §7 for the
// disposition of each kind (fatal at construction, per-record skip,
// per-batch abort, ...).
type Kind int

const (
	// KindUnknown is the zero value; never intentionally returned.
	KindUnknown Kind = iota
	// KindConfigInvalid: builder missing a required field, or an invalid value (e.g. zero window size). Fatal at construction.
	KindConfigInvalid
	// KindTimeParse: an ISO-8601 string could not be parsed.
	KindTimeParse
	// KindTimeRange: a FluvioTime value falls outside the representable wall-clock range.
	KindTimeRange
	// KindInvalidTimestamp: a decoded wire timestamp is out of range.
	KindInvalidTimestamp
	// KindAdapterMissing: a required field was absent from the record. Per-record skip (caller returns ok=false, not an error).
	KindAdapterMissing
	// KindAdapterMalformed: a field was present but unparseable. Per-batch abort.
	KindAdapterMalformed
	// KindStateNotInitialized: Restore was called before Init. Fatal.
	KindStateNotInitialized
	// KindStateCodec: state encode/decode failed. Fatal; status -10/-11.
	KindStateCodec
	// KindUserRuntime: a user-supplied transform function returned an error. Per-batch abort at the offending record.
	KindUserRuntime
	// KindCounterOverflow: a rolling statistic's count exceeded math.MaxUint32. Fatal.
	KindCounterOverflow
)

// String names the kind, matching the vocabulary used in spec §7.
func (k Kind) String() string {
	switch k {
	case KindConfigInvalid:
		return "ConfigInvalid"
	case KindTimeParse:
		return "TimeParse"
	case KindTimeRange:
		return "TimeRange"
	case KindInvalidTimestamp:
		return "InvalidTimestamp"
	case KindAdapterMissing:
		return "AdapterMissing"
	case KindAdapterMalformed:
		return "AdapterMalformed"
	case KindStateNotInitialized:
		return "StateNotInitialized"
	case KindStateCodec:
		return "StateCodec"
	case KindUserRuntime:
		return "UserRuntime"
	case KindCounterOverflow:
		return "CounterOverflow"
	default:
		return "Unknown"
	}
}

// Error is the concrete error type returned by every package in this
// module. It carries the offending record's batch offset when known, for
// the RuntimeError wire representation (spec §6).
type Error struct {
	Kind    Kind
	Message string
	Offset  int64 // batch offset of the offending record, -1 if not applicable
	Stage   string
	cause   error
}

// Error implements the error interface. Modeled on rsql.ParseError.Error's
// layered "kind: message: cause" rendering, trimmed to the fields spec.md
// actually carries on the wire.
func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Kind, e.Message)
	if e.cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.cause)
	}
	return msg
}

// Unwrap exposes the wrapped cause, if any, so errors.Is/As and the
// errdefs classifiers keep working across this boundary.
func (e *Error) Unwrap() error { return e.cause }

// New creates an Error with no known offset or cause.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message, Offset: -1}
}

// Wrap creates an Error that carries cause as its Unwrap target.
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Offset: -1, cause: cause}
}

// WithOffset returns a copy of e with Offset and Stage set, used when an
// error surfaces at a specific record in a batch.
func (e *Error) WithOffset(offset int64, stage string) *Error {
	cp := *e
	cp.Offset = offset
	cp.Stage = stage
	return &cp
}

// KindOf extracts the Kind from err if it is (or wraps) a *Error.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindUnknown
}

// Is reports whether err is (or wraps) a *Error of the given kind. It is
// the classification predicate used throughout the engine in place of
// string matching, in the spirit of containerd/errdefs's Is<Kind> family.
// The As* helpers below combine errdefs' classifiers with this package's
// kinds for the three categories that have an errdefs analogue (invalid
// argument, not found, failed precondition).
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// AsInvalidArgument reports whether err is an engine configuration,
// adapter-malformed, time-parse or invalid-timestamp error, or an error
// errdefs' IsInvalidArgument recognises, so a
// host that already bridges errdefs across its own error space can
// classify engine failures without a type switch on *streamerr.Error.
func AsInvalidArgument(err error) bool {
	if errdefs.IsInvalidArgument(err) {
		return true
	}
	switch KindOf(err) {
	case KindConfigInvalid, KindAdapterMalformed, KindTimeParse, KindInvalidTimestamp:
		return true
	default:
		return false
	}
}

// AsNotFound reports whether err reflects a missing-but-not-erroneous
// field, bridged the same way as AsInvalidArgument.
func AsNotFound(err error) bool {
	if errdefs.IsNotFound(err) {
		return true
	}
	return KindOf(err) == KindAdapterMissing
}

// AsFailedPrecondition reports whether err reflects a use-before-init
// ordering violation (KindStateNotInitialized).
func AsFailedPrecondition(err error) bool {
	if errdefs.IsFailedPrecondition(err) {
		return true
	}
	return KindOf(err) == KindStateNotInitialized
}
