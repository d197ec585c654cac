package adapter

import "github.com/rulego/streamwindow/fluviotime"

// SchemaSelector carries nothing — schema-bound accessors resolve fields
// by compile-time struct field access, not by a runtime selector, per spec
// §4.4's "Schema-bound accessor: compile-time field access (e.g.
// event.veh)." The selector argument on Key/Value is accepted only to
// satisfy the Record contract's shape.
type SchemaSelector struct{}

// SchemaRecord adapts an arbitrary Go struct V into the Record contract
// using injected accessor functions, the Go analogue of the original's
// direct `impl Value for VehiclePosition`. Field resolution happens in the
// closures the caller supplies — this type only wires them into the
// engine's contract shape.
type SchemaRecord[K comparable, V any] struct {
	Rec     V
	KeyFn   func(V) (K, bool)
	ValueFn func(V) (V, bool)
	TimeFn  func(V) (fluviotime.FluvioTime, bool)
}

// Key invokes KeyFn against the wrapped record.
func (s SchemaRecord[K, V]) Key(_ SchemaSelector) (K, bool, error) {
	k, ok := s.KeyFn(s.Rec)
	return k, ok, nil
}

// Value invokes ValueFn against the wrapped record.
func (s SchemaRecord[K, V]) Value(_ SchemaSelector) (V, bool, error) {
	v, ok := s.ValueFn(s.Rec)
	return v, ok, nil
}

// Time invokes TimeFn against the wrapped record.
func (s SchemaRecord[K, V]) Time() (fluviotime.FluvioTime, bool) {
	return s.TimeFn(s.Rec)
}
