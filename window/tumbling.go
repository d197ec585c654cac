package window

import (
	"github.com/rulego/streamwindow/adapter"
	"github.com/rulego/streamwindow/fluviotime"
	"github.com/rulego/streamwindow/streamerr"
)

// Config holds a TumblingWindow's construction-time parameters (spec §6).
type Config[Sel any] struct {
	WindowSizeSec uint16
	KeySelector   Sel
	ValueSelector Sel
}

// Builder assembles a Config with validation deferred to Build, mirroring
// teacher's functional-options construction style (root option.go) kept
// minimal here since TumblingWindow's configuration surface is small and
// fixed by spec §6.
type Builder[K comparable, V any, S Accumulator[K, V], Sel any] struct {
	cfg    Config[Sel]
	newAcc NewAccumulatorFunc[K, V, S]
	// windowSizeSet distinguishes "explicitly set to 0" from "never set";
	// Build rejects the former (window_size_sec must be > 0) but defaults
	// WindowSizeSec to 10 for the latter, per spec §4.2's state-machine
	// table default.
	windowSizeSet bool
}

// NewBuilder starts a Builder for accumulator type S, constructed via
// newAcc on first key sighting.
func NewBuilder[K comparable, V any, S Accumulator[K, V], Sel any](
	newAcc NewAccumulatorFunc[K, V, S],
) *Builder[K, V, S, Sel] {
	return &Builder[K, V, S, Sel]{newAcc: newAcc}
}

// WindowSizeSec sets the tumbling window size, in seconds. Must be > 0.
func (b *Builder[K, V, S, Sel]) WindowSizeSec(n uint16) *Builder[K, V, S, Sel] {
	b.cfg.WindowSizeSec = n
	b.windowSizeSet = true
	return b
}

// KeySelector sets the selector passed to Record.Key.
func (b *Builder[K, V, S, Sel]) KeySelector(sel Sel) *Builder[K, V, S, Sel] {
	b.cfg.KeySelector = sel
	return b
}

// ValueSelector sets the selector passed to Record.Value.
func (b *Builder[K, V, S, Sel]) ValueSelector(sel Sel) *Builder[K, V, S, Sel] {
	b.cfg.ValueSelector = sel
	return b
}

// Build validates the configuration and returns a ready-to-use
// TumblingWindow. A zero window size is a fatal ConfigInvalid error (spec
// §4.2).
func (b *Builder[K, V, S, Sel]) Build() (*TumblingWindow[K, V, S, Sel], error) {
	cfg := b.cfg
	if !b.windowSizeSet {
		cfg.WindowSizeSec = 10
	}
	if cfg.WindowSizeSec == 0 {
		return nil, streamerr.New(streamerr.KindConfigInvalid, "window_size_sec must be > 0")
	}
	return &TumblingWindow[K, V, S, Sel]{cfg: cfg, newAcc: b.newAcc}, nil
}

// CompletedWindow is the snapshot handed to caller code when a window
// closes, spec §3's WindowSummary (named CompletedWindow here to match
// Module D's Add return type).
type CompletedWindow[K comparable, S any] struct {
	Start  fluviotime.FluvioTime
	End    fluviotime.FluvioTime
	Values []S
}

// Observer receives optional lifecycle notifications from TumblingWindow,
// the ambient-logging/metrics counterpart to teacher's WindowObserver
// (types.WindowObserver's Start/End/Add handlers). It is never consulted
// for correctness — only for diagnostics, and both methods are optional to
// implement meaningfully (a no-op Observer is valid).
type Observer[K comparable, S any] interface {
	OnWindowStart(start fluviotime.FluvioTime)
	OnWindowComplete(w CompletedWindow[K, S])
}

// TumblingWindow maintains the single current window and rolls it forward
// on out-of-window arrival (spec §4.2). It holds no "future windows"
// buffer: the original source's TimeSortedStates carried a reserved
// `_future_windows` field for a multi-window draft that was never
// implemented; spec §9 fixes the authoritative semantics to a single
// current window, and we do not resurrect that field.
type TumblingWindow[K comparable, V any, S Accumulator[K, V], Sel any] struct {
	cfg     Config[Sel]
	newAcc  NewAccumulatorFunc[K, V, S]
	current *SingleWindow[K, V, S]
	obs     Observer[K, S]
}

// SetObserver installs an optional lifecycle observer. Pass nil to detach.
func (t *TumblingWindow[K, V, S, Sel]) SetObserver(obs Observer[K, S]) {
	t.obs = obs
}

func (t *TumblingWindow[K, V, S, Sel]) notifyStart(start fluviotime.FluvioTime) {
	if t.obs != nil {
		t.obs.OnWindowStart(start)
	}
}

func (t *TumblingWindow[K, V, S, Sel]) notifyComplete(w CompletedWindow[K, S]) {
	if t.obs != nil {
		t.obs.OnWindowComplete(w)
	}
}

// CurrentWindow returns the live window for diagnostic inspection, or nil
// if no record has been accepted yet.
func (t *TumblingWindow[K, V, S, Sel]) CurrentWindow() *SingleWindow[K, V, S] {
	return t.current
}

// Summary snapshots the live window's accumulators, or nil if empty.
func (t *TumblingWindow[K, V, S, Sel]) Summary() []S {
	if t.current == nil {
		return nil
	}
	return t.current.Summary()
}

// Flush closes the current window unconditionally and returns it, leaving
// TumblingWindow empty. This is the explicit trigger spec §9 says
// implementers MAY add: "there is no time-based flush... implementers MAY
// add an explicit flush() operation, but it is not required by the
// contract." Returns ok=false if there is no open window.
func (t *TumblingWindow[K, V, S, Sel]) Flush() (CompletedWindow[K, S], bool) {
	if t.current == nil {
		return CompletedWindow[K, S]{}, false
	}
	out := CompletedWindow[K, S]{
		Start:  t.current.Start,
		End:    t.current.End(),
		Values: t.current.Summary(),
	}
	t.current = nil
	t.notifyComplete(out)
	return out, true
}

// Add routes rec into the current window, creating or rolling it forward
// as needed, and implements the exact state machine of spec §4.2:
//
//  1. t = rec.Time(); missing time => (nil, nil).
//  2. k = rec.Key(keySelector); error propagates; missing key => (nil, nil).
//  3. base = t.AlignSeconds(window_size_sec).
//  4. No current window: a missing value means no window is created yet;
//     otherwise a new window is opened, seeded with (k, v), and kept open.
//  5. Current window open: if t is within [start, start+duration], upsert
//     (k, v); if t is beyond start+duration, the record belongs to a later
//     window — the current window is completed and returned, and a new
//     one is opened and seeded with (k, v).
//
// Clock-backwards input (t < current.start) is accepted when
// align(t) == current.start (still belongs to the same bucket) and
// dropped otherwise — spec §9 fixes this; the design forbids retroactive
// window reopening.
func (t *TumblingWindow[K, V, S, Sel]) Add(rec adapter.Record[K, V, Sel]) (*CompletedWindow[K, S], error) {
	when, ok := rec.Time()
	if !ok {
		return nil, nil
	}
	key, ok, err := rec.Key(t.cfg.KeySelector)
	if err != nil {
		return nil, streamerr.Wrap(streamerr.KindAdapterMalformed, "resolve key", err)
	}
	if !ok {
		return nil, nil
	}

	base := when.AlignSeconds(uint32(t.cfg.WindowSizeSec))

	if t.current == nil {
		val, ok, err := rec.Value(t.cfg.ValueSelector)
		if err != nil {
			return nil, streamerr.Wrap(streamerr.KindAdapterMalformed, "resolve value", err)
		}
		if !ok {
			// Keyed-but-valueless record on an empty manager creates no
			// window at all (spec §4.2 step 4).
			return nil, nil
		}
		w := NewSingleWindow[K, V, S](base, t.cfg.WindowSizeSec, t.newAcc)
		w.Add(when, key, val)
		t.current = w
		t.notifyStart(base)
		return nil, nil
	}

	cur := t.current
	if int64(when) < int64(cur.Start) {
		if base != cur.Start {
			// Backwards clock into an earlier bucket: dropped, no
			// retroactive window reopening (spec §9).
			return nil, nil
		}
		// Same bucket despite the backwards timestamp: accept in place.
		val, ok, err := rec.Value(t.cfg.ValueSelector)
		if err != nil {
			return nil, streamerr.Wrap(streamerr.KindAdapterMalformed, "resolve value", err)
		}
		if !ok {
			return nil, nil
		}
		cur.Add(when, key, val)
		return nil, nil
	}

	if int64(when) > int64(cur.Start)+cur.DurationMicros {
		// Window is complete: the incoming record belongs to a later
		// window. Seed the new window before swapping it in so a
		// valueless record never creates an empty successor: it leaves
		// the current window open and unchanged.
		val, ok, err := rec.Value(t.cfg.ValueSelector)
		if err != nil {
			return nil, streamerr.Wrap(streamerr.KindAdapterMalformed, "resolve value", err)
		}
		if !ok {
			return nil, nil
		}
		completed := CompletedWindow[K, S]{
			Start:  cur.Start,
			End:    cur.End(),
			Values: cur.Summary(),
		}
		next := NewSingleWindow[K, V, S](base, t.cfg.WindowSizeSec, t.newAcc)
		next.Add(when, key, val)
		t.current = next
		t.notifyComplete(completed)
		t.notifyStart(base)
		return &completed, nil
	}

	// Within [start, start+duration], the closed interval.
	val, ok, err := rec.Value(t.cfg.ValueSelector)
	if err != nil {
		return nil, streamerr.Wrap(streamerr.KindAdapterMalformed, "resolve value", err)
	}
	if !ok {
		return nil, nil
	}
	cur.Add(when, key, val)
	return nil, nil
}
