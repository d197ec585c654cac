package adapter

import (
	"encoding/json"

	"github.com/spf13/cast"

	"github.com/rulego/streamwindow/fluviotime"
	"github.com/rulego/streamwindow/streamerr"
)

// TimeField names the record field JSONRecord reads its event time from.
// Selectors for Key/Value address other top-level fields by name, per
// spec §4.4's "JSON path selector: Selector is a field name; key/value
// resolve a top-level JSON field."
type TimeField string

// JSONRecord decodes a JSON object once and exposes Key/Value/Time over
// its top-level fields. Numeric-looking strings are coerced to float64 via
// spf13/cast, matching teacher's utils/cast.ToFloat coercion behavior but
// returning an error instead of panicking on malformed input, which the
// per-record adapter contract requires.
type JSONRecord struct {
	fields  map[string]interface{}
	timeKey TimeField
}

// NewJSONRecord unmarshals raw as a JSON object. timeKey names the field
// holding an RFC3339 event timestamp.
func NewJSONRecord(raw []byte, timeKey TimeField) (*JSONRecord, error) {
	var fields map[string]interface{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, streamerr.Wrap(streamerr.KindAdapterMalformed, "decode JSON record", err)
	}
	return &JSONRecord{fields: fields, timeKey: timeKey}, nil
}

// Key resolves sel as a top-level field name and casts it to a string key.
func (r *JSONRecord) Key(sel string) (string, bool, error) {
	v, present := r.fields[sel]
	if !present || v == nil {
		return "", false, nil
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return "", false, streamerr.Wrap(streamerr.KindAdapterMalformed, "coerce key field "+sel, err)
	}
	return s, true, nil
}

// Value resolves sel as a top-level field name and casts it to float64,
// auto-coercing numeric strings per spec §4.4.
func (r *JSONRecord) Value(sel string) (float64, bool, error) {
	v, present := r.fields[sel]
	if !present || v == nil {
		return 0, false, nil
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0, false, streamerr.Wrap(streamerr.KindAdapterMalformed, "coerce value field "+sel, err)
	}
	return f, true, nil
}

// Time resolves the configured time field as an RFC3339 string.
func (r *JSONRecord) Time() (fluviotime.FluvioTime, bool) {
	raw, present := r.fields[string(r.timeKey)]
	if !present || raw == nil {
		return 0, false
	}
	s, err := cast.ToStringE(raw)
	if err != nil {
		return 0, false
	}
	t, err := fluviotime.Parse(s)
	if err != nil {
		return 0, false
	}
	return t, true
}

var _ Record[string, float64, string] = (*JSONRecord)(nil)
