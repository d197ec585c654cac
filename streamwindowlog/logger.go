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

// Package streamwindowlog provides the ambient logging used by the root
// Engine facade and the demo command: engine construction, completed
// windows, and rejected or malformed records. It is adapted directly from the teacher's
// logger/logger.go, kept as a small level-gated interface over the
// standard library log.Logger rather than a third-party structured
// logger, since none of the example repos settle on one shared logging
// library (each carries its own ad hoc wrapper over log.Logger).
package streamwindowlog

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"
)

// Level is a logging severity.
type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
	OFF
)

func (l Level) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	case OFF:
		return "OFF"
	default:
		return "UNKNOWN"
	}
}

// Logger is the diagnostic sink used throughout the module. It is never
// consulted for control flow — only for operator-facing diagnostics.
type Logger interface {
	Debug(format string, args ...interface{})
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
	SetLevel(level Level)
}

type defaultLogger struct {
	level  Level
	logger *log.Logger
}

// New creates a Logger writing to output, gated at level.
func New(level Level, output io.Writer) Logger {
	return &defaultLogger{level: level, logger: log.New(output, "", 0)}
}

func (l *defaultLogger) Debug(format string, args ...interface{}) {
	if l.level <= DEBUG {
		l.log(DEBUG, format, args...)
	}
}

func (l *defaultLogger) Info(format string, args ...interface{}) {
	if l.level <= INFO {
		l.log(INFO, format, args...)
	}
}

func (l *defaultLogger) Warn(format string, args ...interface{}) {
	if l.level <= WARN {
		l.log(WARN, format, args...)
	}
}

func (l *defaultLogger) Error(format string, args ...interface{}) {
	if l.level <= ERROR {
		l.log(ERROR, format, args...)
	}
}

func (l *defaultLogger) SetLevel(level Level) {
	l.level = level
}

func (l *defaultLogger) log(level Level, format string, args ...interface{}) {
	if l.level == OFF {
		return
	}
	timestamp := time.Now().Format("2006-01-02 15:04:05.000")
	message := fmt.Sprintf(format, args...)
	l.logger.Println(fmt.Sprintf("[%s] [%s] %s", timestamp, level.String(), message))
}

// discardLogger drops everything; installed via NewDiscard by callers who
// want no log output without OFF-level log.New overhead. (A caller who
// never configures a logger gets the INFO-level stdout default below.)
type discardLogger struct{}

// NewDiscard returns a Logger that discards all output.
func NewDiscard() Logger {
	return &discardLogger{}
}

func (d *discardLogger) Debug(format string, args ...interface{}) {}
func (d *discardLogger) Info(format string, args ...interface{})  {}
func (d *discardLogger) Warn(format string, args ...interface{})  {}
func (d *discardLogger) Error(format string, args ...interface{}) {}
func (d *discardLogger) SetLevel(level Level)                     {}

var defaultInstance Logger = New(INFO, os.Stdout)

// SetDefault replaces the package-level default logger.
func SetDefault(logger Logger) {
	defaultInstance = logger
}

// GetDefault returns the package-level default logger.
func GetDefault() Logger {
	return defaultInstance
}

func Debug(format string, args ...interface{}) { defaultInstance.Debug(format, args...) }
func Info(format string, args ...interface{})  { defaultInstance.Info(format, args...) }
func Warn(format string, args ...interface{})  { defaultInstance.Warn(format, args...) }
func Error(format string, args ...interface{}) { defaultInstance.Error(format, args...) }
