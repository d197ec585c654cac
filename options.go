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

package streamwindow

import (
	"io"

	"github.com/rulego/streamwindow/streamwindowlog"
)

// Option modifies Engine construction-time ambient behavior — the
// functional-options pattern kept from teacher's root option.go
// (Option func(*Streamsql)), generalized to package-level logger
// configuration since Engine itself carries no per-instance logging
// state of its own.
type Option func()

// WithLogger installs a custom logger.
func WithLogger(log streamwindowlog.Logger) Option {
	return func() {
		streamwindowlog.SetDefault(log)
	}
}

// WithLogLevel sets the default logger's level.
func WithLogLevel(level streamwindowlog.Level) Option {
	return func() {
		streamwindowlog.GetDefault().SetLevel(level)
	}
}

// WithLogOutput points the default logger at output, at the given level.
func WithLogOutput(output io.Writer, level streamwindowlog.Level) Option {
	return func() {
		streamwindowlog.SetDefault(streamwindowlog.New(level, output))
	}
}

// WithDiscardLog disables all logging, for performance-sensitive
// deployments.
func WithDiscardLog() Option {
	return func() {
		streamwindowlog.SetDefault(streamwindowlog.NewDiscard())
	}
}
