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

// Package state implements the init-once / restore / save state lifecycle
// (spec §4.7): a host initializes state exactly once before processing any
// records, then every invocation restores a guarded value, mutates it, and
// saves it back.
//
// This is adapted from the original crates/fluvio-smartmodule/src/state.rs
// (OnceLockManager wrapping OnceLock<Mutex<T>>) translated to Go's
// sync.Once + sync.Mutex, generalized over a pluggable Backend so the same
// Manager works whether state lives in process memory (the default) or in
// Redis (RedisBackend, for cross-process survival). The mutex-guarded
// singleton with explicit initialized/running bookkeeping mirrors teacher's
// stream/persistence.go PersistenceManager.
package state

import (
	"sync"

	"github.com/rulego/streamwindow/streamerr"
)

// Codec converts a state value to and from its persisted byte
// representation. Backends that store bytes (RedisBackend) use it
// directly; MemoryBackend does not need one since it keeps T in memory.
type Codec[T any] struct {
	Encode func(T) ([]byte, error)
	Decode func([]byte) (T, error)
}

// Backend is the storage a Manager persists through. Save and Restore are
// never called concurrently by Manager — the caller always holds
// Manager.mu while calling either — so a Backend need not be internally
// thread-safe.
type Backend[T any] interface {
	Save(val T) error
	Restore() (T, error)
}

// MemoryBackend is the default in-process Backend: a bare value held for
// the lifetime of the process, equivalent to the original's
// OnceLock<Mutex<T>>.
type MemoryBackend[T any] struct {
	val T
}

// NewMemoryBackend returns an empty in-process Backend.
func NewMemoryBackend[T any]() *MemoryBackend[T] {
	return &MemoryBackend[T]{}
}

func (b *MemoryBackend[T]) Save(val T) error {
	b.val = val
	return nil
}

func (b *MemoryBackend[T]) Restore() (T, error) {
	return b.val, nil
}

var _ Backend[int] = (*MemoryBackend[int])(nil)

// Manager is the init-once/restore/save state lifecycle over a Backend.
// The zero value is not usable; construct with NewManager.
type Manager[T any] struct {
	backend Backend[T]

	once        sync.Once
	mu          sync.Mutex
	initialized bool
}

// NewManager wraps backend in a Manager. backend is typically a fresh
// MemoryBackend[T] or RedisBackend[T].
func NewManager[T any](backend Backend[T]) *Manager[T] {
	return &Manager[T]{backend: backend}
}

// Init seeds the state exactly once. A second call returns a
// ConfigInvalid error, mirroring the original's "state already
// initialized" eyre error — double-init is a usage bug, not a runtime
// condition a host should recover from mid-stream.
func (m *Manager[T]) Init(initial T) error {
	ran := false
	var saveErr error
	m.once.Do(func() {
		ran = true
		m.mu.Lock()
		defer m.mu.Unlock()
		if err := m.backend.Save(initial); err != nil {
			saveErr = err
			return
		}
		m.initialized = true
	})
	if !ran {
		return streamerr.New(streamerr.KindConfigInvalid, "state already initialized")
	}
	return saveErr
}

// Restore returns a Guard holding the live state value. The Manager's
// mutex is held from Restore until Guard.Save releases it, so Restore
// calls are fully serialized per Manager — matching the original's
// MutexGuard borrow scope. Restore before Init is fatal.
func (m *Manager[T]) Restore() (*Guard[T], error) {
	if !m.initialized {
		return nil, streamerr.New(streamerr.KindStateNotInitialized, "state.Restore called before Init")
	}
	m.mu.Lock()
	val, err := m.backend.Restore()
	if err != nil {
		m.mu.Unlock()
		return nil, err
	}
	return &Guard[T]{manager: m, val: val}, nil
}

// Guard holds exclusive access to a restored state value until Save
// releases it. A Guard must not outlive the call that restored it — the
// usual pattern is `defer guard.Save()`.
type Guard[T any] struct {
	manager  *Manager[T]
	val      T
	released bool
}

// Value returns a pointer to the live state, mutable in place.
func (g *Guard[T]) Value() *T {
	return &g.val
}

// Save persists the (possibly mutated) value back through the backend
// and releases the Manager's lock. Calling Save more than once is a
// no-op after the first call.
func (g *Guard[T]) Save() error {
	if g.released {
		return nil
	}
	g.released = true
	defer g.manager.mu.Unlock()
	return g.manager.backend.Save(g.val)
}
