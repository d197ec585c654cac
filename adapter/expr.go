package adapter

import (
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/rulego/streamwindow/fluviotime"
	"github.com/rulego/streamwindow/streamerr"
)

// ExprSelector is a compiled expr-lang program evaluated against a
// decoded record's field map. It exists for selectors that need more than
// a bare field name — coalescing a null field, deriving a composite key,
// light arithmetic on the value — which teacher's condition/expr packages
// already use expr-lang/expr for over a row's fields.
type ExprSelector struct {
	program *vm.Program
	source  string
}

// CompileSelector compiles source once; the resulting ExprSelector is safe
// to reuse across every record an ExprRecord wraps.
func CompileSelector(source string) (ExprSelector, error) {
	prog, err := expr.Compile(source)
	if err != nil {
		return ExprSelector{}, streamerr.Wrap(streamerr.KindConfigInvalid, "compile selector expression "+source, err)
	}
	return ExprSelector{program: prog, source: source}, nil
}

// ExprRecord evaluates ExprSelector programs against a decoded field map,
// the richer counterpart to JSONRecord's bare field-name selectors.
type ExprRecord struct {
	fields  map[string]interface{}
	timeKey TimeField
}

// NewExprRecord wraps an already-decoded field map (typically produced by
// the same JSON decode step JSONRecord uses).
func NewExprRecord(fields map[string]interface{}, timeKey TimeField) *ExprRecord {
	return &ExprRecord{fields: fields, timeKey: timeKey}
}

func (r *ExprRecord) eval(sel ExprSelector) (interface{}, bool, error) {
	out, err := expr.Run(sel.program, r.fields)
	if err != nil {
		return nil, false, streamerr.Wrap(streamerr.KindAdapterMalformed, "evaluate selector "+sel.source, err)
	}
	if out == nil {
		return nil, false, nil
	}
	return out, true, nil
}

// Key evaluates sel, which must yield a string; any other result type is a
// KindAdapterMalformed error.
func (r *ExprRecord) Key(sel ExprSelector) (string, bool, error) {
	out, ok, err := r.eval(sel)
	if !ok || err != nil {
		return "", ok, err
	}
	s, ok := out.(string)
	if !ok {
		return "", false, streamerr.New(streamerr.KindAdapterMalformed, "selector "+sel.source+" did not yield a string key")
	}
	return s, true, nil
}

// Value evaluates sel and coerces the result to float64.
func (r *ExprRecord) Value(sel ExprSelector) (float64, bool, error) {
	out, ok, err := r.eval(sel)
	if !ok || err != nil {
		return 0, ok, err
	}
	switch v := out.(type) {
	case float64:
		return v, true, nil
	case int:
		return float64(v), true, nil
	default:
		return 0, false, streamerr.New(streamerr.KindAdapterMalformed, "selector "+sel.source+" did not yield a number")
	}
}

// Time resolves the configured time field as an RFC3339 string, same
// convention as JSONRecord.
func (r *ExprRecord) Time() (fluviotime.FluvioTime, bool) {
	raw, present := r.fields[string(r.timeKey)]
	if !present || raw == nil {
		return 0, false
	}
	s, ok := raw.(string)
	if !ok {
		return 0, false
	}
	t, err := fluviotime.Parse(s)
	if err != nil {
		return 0, false
	}
	return t, true
}

var _ Record[string, float64, ExprSelector] = (*ExprRecord)(nil)
