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

// Package streamwindow is the top-level facade wiring the window and
// adapter packages together with config and logging, the same role
// teacher's root streamsql.go plays over its SQL engine's
// parse/plan/stream packages. Engine exposes the single operation a host
// embedding this module actually needs: feed one record, get back a
// completed window (or nil) when nothing has rolled over yet.
package streamwindow

import (
	"github.com/rulego/streamwindow/adapter"
	"github.com/rulego/streamwindow/config"
	"github.com/rulego/streamwindow/streamerr"
	"github.com/rulego/streamwindow/streamwindowlog"
	"github.com/rulego/streamwindow/window"
)

// Engine owns a single TumblingWindow and its selectors, constructed
// from an EngineConfig the way teacher's Streamsql is constructed from
// parsed SQL plus functional Options.
type Engine[K comparable, V any, S window.Accumulator[K, V], Sel any] struct {
	Window *window.TumblingWindow[K, V, S, Sel]
}

// New builds an Engine from cfg, applying opts first so a WithLogLevel
// or WithDiscardLog call takes effect before construction logs
// anything. newAcc constructs a fresh per-key accumulator; keySel/valSel
// are the selector values passed through to every Record.Key/Value call
// (teacher's WindowConfig carries similarly free-form selector
// parameters).
func New[K comparable, V any, S window.Accumulator[K, V], Sel any](
	newAcc window.NewAccumulatorFunc[K, V, S],
	cfg config.EngineConfig,
	keySel, valSel Sel,
	opts ...Option,
) (*Engine[K, V, S, Sel], error) {
	for _, opt := range opts {
		opt()
	}

	b := window.NewBuilder[K, V, S, Sel](newAcc)
	mgr, err := b.WindowSizeSec(cfg.WindowSizeSec).KeySelector(keySel).ValueSelector(valSel).Build()
	if err != nil {
		return nil, err
	}
	streamwindowlog.Info("engine: built with window_size_sec=%d", cfg.WindowSizeSec)
	return &Engine[K, V, S, Sel]{Window: mgr}, nil
}

// Add routes rec through the underlying TumblingWindow, logging a
// rejected record at Warn and a completed window at Debug level —
// diagnostics only, never control flow. Records skipped for a missing
// time, key or value are not an error (spec §7) and are not logged.
func (e *Engine[K, V, S, Sel]) Add(rec adapter.Record[K, V, Sel]) (*window.CompletedWindow[K, S], error) {
	completed, err := e.Window.Add(rec)
	if err != nil {
		streamwindowlog.Warn("engine: record rejected: %v", err)
		return nil, err
	}
	if completed != nil {
		streamwindowlog.Debug("engine: window completed, start=%s values=%d", completed.Start, len(completed.Values))
	}
	return completed, nil
}

// Flush closes the current window unconditionally, per window.Flush.
func (e *Engine[K, V, S, Sel]) Flush() (window.CompletedWindow[K, S], bool) {
	return e.Window.Flush()
}

// KindOf classifies err using streamerr's kind vocabulary, re-exported
// here so a host embedding Engine doesn't need its own import of
// streamerr just to branch on fatal-vs-skip.
func KindOf(err error) streamerr.Kind {
	return streamerr.KindOf(err)
}
