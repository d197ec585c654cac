package adapter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rulego/streamwindow/fluviotime"
)

func TestJSONRecordKeyValueTime(t *testing.T) {
	raw := []byte(`{"vehicle":22,"speed":3.2,"t":"2023-06-22T19:45:22.002Z"}`)
	rec, err := NewJSONRecord(raw, "t")
	require.NoError(t, err)

	key, ok, err := rec.Key("vehicle")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "22", key)

	val, ok, err := rec.Value("speed")
	require.NoError(t, err)
	require.True(t, ok)
	assert.InDelta(t, 3.2, val, 1e-9)

	tm, ok := rec.Time()
	require.True(t, ok)
	want, _ := fluviotime.Parse("2023-06-22T19:45:22.002Z")
	assert.Equal(t, want, tm)
}

func TestJSONRecordMissingField(t *testing.T) {
	rec, err := NewJSONRecord([]byte(`{"vehicle":22}`), "t")
	require.NoError(t, err)

	_, ok, err := rec.Value("speed")
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok = rec.Time()
	assert.False(t, ok)
}

func TestJSONRecordNumericStringCoercion(t *testing.T) {
	rec, err := NewJSONRecord([]byte(`{"speed":"3.2"}`), "t")
	require.NoError(t, err)
	val, ok, err := rec.Value("speed")
	require.NoError(t, err)
	require.True(t, ok)
	assert.InDelta(t, 3.2, val, 1e-9)
}

func TestExprRecord(t *testing.T) {
	sel, err := CompileSelector(`vehicle`)
	require.NoError(t, err)
	valSel, err := CompileSelector(`speed ?? 0.0`)
	require.NoError(t, err)

	rec := NewExprRecord(map[string]interface{}{
		"vehicle": "22",
		"speed":   4.2,
		"t":       "2023-06-22T19:45:22.033Z",
	}, "t")

	key, ok, err := rec.Key(sel)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "22", key)

	val, ok, err := rec.Value(valSel)
	require.NoError(t, err)
	require.True(t, ok)
	assert.InDelta(t, 4.2, val, 1e-9)
}

func TestNoKeyRecord(t *testing.T) {
	now := fluviotime.Now()
	rec := NoKeyRecord{Val: 1.5, When: now}
	key, ok, err := rec.Key(struct{}{})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, NoKeySentinel, key)
}

func TestSchemaRecord(t *testing.T) {
	type vehicle struct {
		ID   string
		Spd  float64
		Time fluviotime.FluvioTime
	}
	v := vehicle{ID: "22", Spd: 3.1, Time: fluviotime.Now()}
	rec := SchemaRecord[string, vehicle]{
		Rec:     v,
		KeyFn:   func(v vehicle) (string, bool) { return v.ID, true },
		ValueFn: func(v vehicle) (vehicle, bool) { return v, true },
		TimeFn:  func(v vehicle) (fluviotime.FluvioTime, bool) { return v.Time, true },
	}
	k, ok, err := rec.Key(SchemaSelector{})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "22", k)
}
