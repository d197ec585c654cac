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

// Package adapter defines the capability boundary between opaque record
// bytes and the windowing engine, and ships a handful of concrete
// implementations of it (spec Module E). A record type can implement
// Record[K,V,Sel] directly, mirroring the original `impl Value for
// VehiclePosition` pattern from helsinki-mqtt/src/vehicle.rs; the types in
// this package (JSONRecord, ExprRecord, NoKeyRecord, SchemaRecord) wrap
// records that do not.
package adapter

import (
	"github.com/rulego/streamwindow/fluviotime"
)

// Record is the capability set a record/value type must provide for the
// engine to route and aggregate it. Selector is a configuration-time
// descriptor (e.g. a JSON field path, or a compiled expression); the same
// Record value is asked for its key and its numeric value using
// independently configured selectors.
//
// Returning ok=false from Key or Value means "skip this record" (spec
// §3/§4.4) and is not an error. An error return aborts the batch.
type Record[K comparable, V any, Sel any] interface {
	// Key extracts the grouping key used to route this record into a
	// window's per-key accumulator.
	Key(sel Sel) (key K, ok bool, err error)
	// Value extracts the numeric (or otherwise aggregable) payload.
	Value(sel Sel) (value V, ok bool, err error)
	// Time extracts the event time used to place this record into a
	// window. A record with no time is dropped before key/value are even
	// consulted (spec §4.2 step 1).
	Time() (t fluviotime.FluvioTime, ok bool)
}
