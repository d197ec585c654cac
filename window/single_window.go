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

// Package window implements the tumbling-window state machine: a bounded
// single-window store (Module C) and the manager that rolls one window
// into the next on out-of-window arrival (Module D). It is adapted from
// the original fluvio_smartmodule_window::window::TimeWindow /
// TimeSortedStates, keeping their per-key-accumulator-map shape, and from
// teacher's window/tumbling_window.go for the Start/End observer
// vocabulary — but event-time driven rather than wall-clock-ticker driven,
// since spec completion triggers only on an out-of-window record arrival.
package window

import (
	"github.com/rulego/streamwindow/fluviotime"
)

const microPerSec int64 = 1_000_000

// Accumulator is the capability a per-key window state type must provide.
// Implementations need not be commutative; the manager calls Add in
// arrival order for a given key within one window (spec §3,
// "WindowStates<V> (S)").
type Accumulator[K comparable, V any] interface {
	Add(key K, value V)
}

// NewAccumulatorFunc constructs a fresh per-key accumulator the first time
// a key is seen in a window. Expressed as a function value rather than a
// static trait method — spec §9 notes capability sets may be "a record of
// function pointers, a trait, or an interface — all equivalent," and Go
// generics have no static-dispatch constructor constraint.
type NewAccumulatorFunc[K comparable, V any, S Accumulator[K, V]] func(key K) S

// SingleWindow bounds one window's per-key state to the half-open...
// actually closed interval [Start, Start+Duration] (spec §3 invariant:
// start <= r.time <= start+duration). State entries are created lazily on
// first key occurrence.
type SingleWindow[K comparable, V any, S Accumulator[K, V]] struct {
	Start          fluviotime.FluvioTime
	DurationMicros int64
	State          map[K]S

	newAcc NewAccumulatorFunc[K, V, S]
}

// NewSingleWindow creates a window starting at start and spanning
// durationSec seconds, per spec §3: duration_micros = configured_seconds *
// 1_000_000.
func NewSingleWindow[K comparable, V any, S Accumulator[K, V]](
	start fluviotime.FluvioTime,
	durationSec uint16,
	newAcc NewAccumulatorFunc[K, V, S],
) *SingleWindow[K, V, S] {
	return &SingleWindow[K, V, S]{
		Start:          start,
		DurationMicros: int64(durationSec) * microPerSec,
		State:          make(map[K]S),
		newAcc:         newAcc,
	}
}

// End returns the closed upper bound of the window's interval.
func (w *SingleWindow[K, V, S]) End() fluviotime.FluvioTime {
	return fluviotime.FluvioTime(int64(w.Start) + w.DurationMicros)
}

// Add tries to place (t, k, v) into this window. If t falls outside
// [Start, Start+Duration], the window is left unchanged and ok is false —
// this is how TumblingWindow (Module D) detects that the current window
// has completed. Otherwise the value is folded into key k's accumulator
// (created lazily via newAcc on first sight) and ok is true.
func (w *SingleWindow[K, V, S]) Add(t fluviotime.FluvioTime, k K, v V) (ok bool) {
	if int64(t) < int64(w.Start) || int64(t) > int64(w.Start)+w.DurationMicros {
		return false
	}
	acc, present := w.State[k]
	if !present {
		acc = w.newAcc(k)
		w.State[k] = acc
	}
	acc.Add(k, v)
	w.State[k] = acc
	return true
}

// Summary returns the accumulators in this window in unspecified order.
func (w *SingleWindow[K, V, S]) Summary() []S {
	out := make([]S, 0, len(w.State))
	for _, s := range w.State {
		out = append(out, s)
	}
	return out
}
