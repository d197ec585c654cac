package rolling

import (
	"math"
	"sync/atomic"

	"github.com/rulego/streamwindow/streamerr"
)

// LockFreeMean is a rolling mean that can be read from arbitrary goroutines
// without a mutex, modeled on the original's AtomicF64-backed
// LockFreeRollingMean. Count and Value are stored in two independent
// atomics; a concurrent reader may observe a (count, mean) pair that was
// never simultaneously true (e.g. the new count with the old mean) because
// the two stores are not combined into one atomic transaction. That
// approximation is acceptable for monitoring/telemetry consumers — it must
// never be used to make a decision that requires the exact pair.
type LockFreeMean struct {
	count atomic.Uint32
	bits  atomic.Uint64 // float64 bit pattern of the current mean
}

// Add folds x into the running mean using sequentially consistent atomic
// operations (Go's atomic package provides no weaker ordering option).
func (m *LockFreeMean) Add(x float64) error {
	for {
		oldBits := m.bits.Load()
		oldMean := math.Float64frombits(oldBits)
		oldCount := m.count.Load()
		if oldCount == math.MaxUint32 {
			return streamerr.New(streamerr.KindCounterOverflow, "lock-free rolling mean sample count overflow")
		}
		newCount := oldCount + 1
		newMean := oldMean + (x-oldMean)/float64(newCount)
		// Mirror the original's unconditional store-then-store sequence: a
		// true CAS loop would make the pair atomic, which the contract
		// explicitly disclaims ("approximate for monitoring"). We still
		// use a CAS on the mean bits alone so two concurrent writers never
		// lose an update to the mean itself; count is bumped unconditionally
		// after, same ordering gap as the original Rust implementation.
		if m.bits.CompareAndSwap(oldBits, math.Float64bits(newMean)) {
			m.count.Add(1)
			return nil
		}
	}
}

// Mean returns the current mean. Approximate under concurrent writers.
func (m *LockFreeMean) Mean() float64 {
	return math.Float64frombits(m.bits.Load())
}

// Count returns the current sample count. Approximate under concurrent
// writers relative to Mean (see type doc).
func (m *LockFreeMean) Count() uint32 {
	return m.count.Load()
}

// MarshalJSON snapshots (count, mean) as an ordinary Mean for state
// persistence. The snapshot is not taken atomically across both fields,
// same caveat as any other read.
func (m *LockFreeMean) MarshalJSON() ([]byte, error) {
	snap := Mean{Count: m.Count(), Value: m.Mean()}
	return snap.MarshalJSON()
}

// UnmarshalJSON restores (count, mean) from a snapshot produced by
// MarshalJSON.
func (m *LockFreeMean) UnmarshalJSON(data []byte) error {
	var snap Mean
	if err := snap.UnmarshalJSON(data); err != nil {
		return err
	}
	m.count.Store(snap.Count)
	m.bits.Store(math.Float64bits(snap.Value))
	return nil
}