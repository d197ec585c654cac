package adapter

import "github.com/rulego/streamwindow/fluviotime"

// NoKeySentinel is the fixed key every NoKeyRecord reports, per spec
// §4.4's "No-key selector: yields a fixed sentinel key for all records."
const NoKeySentinel = "_"

// NoKeyRecord wraps any single float64 sample with an event time, routing
// every record into one shared per-window accumulator. Useful for
// un-keyed aggregate streams (e.g. "average of everything in this
// window").
type NoKeyRecord struct {
	Val  float64
	When fluviotime.FluvioTime
}

// Key always returns NoKeySentinel; the selector argument is ignored.
func (r NoKeyRecord) Key(_ struct{}) (string, bool, error) {
	return NoKeySentinel, true, nil
}

// Value always returns the wrapped sample.
func (r NoKeyRecord) Value(_ struct{}) (float64, bool, error) {
	return r.Val, true, nil
}

// Time returns the wrapped event time.
func (r NoKeyRecord) Time() (fluviotime.FluvioTime, bool) {
	return r.When, true
}

var _ Record[string, float64, struct{}] = NoKeyRecord{}
