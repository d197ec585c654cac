package transform

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rulego/streamwindow/adapter"
	"github.com/rulego/streamwindow/fluviotime"
	"github.com/rulego/streamwindow/rolling"
	"github.com/rulego/streamwindow/window"
)

type speedSample struct {
	Vehicle uint16  `json:"vehicle"`
	Speed   float64 `json:"speed"`
	When    string  `json:"when"`
}

func (s speedSample) Key(_ string) (uint16, bool, error) { return s.Vehicle, true, nil }
func (s speedSample) Value(_ string) (float64, bool, error) {
	return s.Speed, true, nil
}
func (s speedSample) Time() (fluviotime.FluvioTime, bool) {
	t, err := fluviotime.Parse(s.When)
	if err != nil {
		return 0, false
	}
	return t, true
}

var _ adapter.Record[uint16, float64, string] = speedSample{}

type speedAcc struct {
	mean rolling.Mean
}

func (a *speedAcc) Add(_ uint16, v float64) { _ = a.mean.Add(v) }

func speedSampleCodec() Codec[speedSample] {
	return Codec[speedSample]{
		Encode: func(v speedSample) ([]byte, error) { return json.Marshal(v) },
		Decode: func(b []byte) (speedSample, error) {
			var v speedSample
			err := json.Unmarshal(b, &v)
			return v, err
		},
	}
}

func TestWindowTransformEmitsCompletedWindowOnRollover(t *testing.T) {
	b := window.NewBuilder[uint16, float64, *speedAcc, string](func(_ uint16) *speedAcc { return &speedAcc{} })
	mgr, err := b.WindowSizeSec(10).KeySelector("vehicle").ValueSelector("speed").Build()
	require.NoError(t, err)

	raw := Encode([][]byte{
		mustEncodeSample(t, speedSample{Vehicle: 22, Speed: 3.2, When: "2023-06-22T19:45:22.132Z"}),
		mustEncodeSample(t, speedSample{Vehicle: 22, Speed: 3.2, When: "2023-06-22T19:45:50.132Z"}),
	})

	out, rtErr := Window[uint16, float64, *speedAcc, string, speedSample](raw, speedSampleCodec(), mgr)
	require.Nil(t, rtErr)

	chunks, err := Decode(out)
	require.NoError(t, err)
	require.Len(t, chunks, 1, "exactly one window completed mid-batch")

	var completed window.CompletedWindow[uint16, *speedAcc]
	require.NoError(t, json.Unmarshal(chunks[0], &completed))
	assert.Len(t, completed.Values, 1)
}

func mustEncodeSample(t *testing.T, s speedSample) []byte {
	t.Helper()
	b, err := json.Marshal(s)
	require.NoError(t, err)
	return b
}
