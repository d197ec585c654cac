package state

import "time"

// ExtraParams carries the host-supplied key/value configuration and
// optional lookback window handed unchanged to a user state type's Init,
// per spec §3 / the original's SmartModuleExtraParams.
type ExtraParams struct {
	Params   map[string]string
	Lookback *Lookback
}

// NewExtraParams builds an ExtraParams, defaulting Params to an empty map
// when nil so Get never panics.
func NewExtraParams(params map[string]string, lookback *Lookback) ExtraParams {
	if params == nil {
		params = map[string]string{}
	}
	return ExtraParams{Params: params, Lookback: lookback}
}

// Get looks up a named parameter.
func (p ExtraParams) Get(key string) (string, bool) {
	v, ok := p.Params[key]
	return v, ok
}

// Lookback describes how far back a host should feed historical records
// before live processing begins (the original's Lookback, carried
// verbatim since spec.md itself doesn't interpret it — only a host's
// ingestion layer does).
type Lookback struct {
	// Last is the number of trailing records to replay.
	Last uint64
	// Age, when set, bounds the lookback by wall-clock age instead of
	// (or in addition to) a record count.
	Age *time.Duration
}

// LookbackLast returns a Lookback bounded purely by record count.
func LookbackLast(last uint64) *Lookback {
	return &Lookback{Last: last}
}

// LookbackAge returns a Lookback bounded by age, optionally capped at
// last records as well.
func LookbackAge(age time.Duration, last uint64) *Lookback {
	return &Lookback{Last: last, Age: &age}
}
