package transform

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rulego/streamwindow/state"
	"github.com/rulego/streamwindow/streamerr"
)

func intCodec() Codec[int] {
	return Codec[int]{
		Encode: func(v int) ([]byte, error) { return json.Marshal(v) },
		Decode: func(b []byte) (int, error) {
			var v int
			err := json.Unmarshal(b, &v)
			return v, err
		},
	}
}

func mustDecodeInts(t *testing.T, raw []byte) []int {
	t.Helper()
	chunks, err := Decode(raw)
	require.NoError(t, err)
	out := make([]int, len(chunks))
	for i, c := range chunks {
		var v int
		require.NoError(t, json.Unmarshal(c, &v))
		out[i] = v
	}
	return out
}

func TestBatchEncodeDecodeRoundTrip(t *testing.T) {
	in := [][]byte{[]byte("a"), []byte(""), []byte("ccc")}
	out, err := Decode(Encode(in))
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestDecodeTruncatedBatch(t *testing.T) {
	_, err := Decode([]byte{0, 0, 0})
	require.Error(t, err)
}

func TestFilterKeepsMatching(t *testing.T) {
	raw := Encode([][]byte{mustEncodeInt(t, 1), mustEncodeInt(t, 2), mustEncodeInt(t, 3), mustEncodeInt(t, 4)})
	out, rtErr := Filter(raw, intCodec(), func(v int) (bool, error) { return v%2 == 0, nil })
	require.Nil(t, rtErr)
	assert.Equal(t, []int{2, 4}, mustDecodeInts(t, out))
}

func TestFilterHaltsOnError(t *testing.T) {
	raw := Encode([][]byte{mustEncodeInt(t, 1), mustEncodeInt(t, 2), mustEncodeInt(t, 3)})
	boom := errors.New("boom")
	out, rtErr := Filter(raw, intCodec(), func(v int) (bool, error) {
		if v == 2 {
			return false, boom
		}
		return true, nil
	})
	require.NotNil(t, rtErr)
	assert.Equal(t, streamerr.KindUserRuntime, rtErr.Kind)
	assert.Equal(t, int64(1), rtErr.Offset)
	assert.Equal(t, []int{1}, mustDecodeInts(t, out), "partial success before the halt must be preserved")
}

func TestMapDoublesEveryRecord(t *testing.T) {
	raw := Encode([][]byte{mustEncodeInt(t, 1), mustEncodeInt(t, 2)})
	out, rtErr := Map(raw, intCodec(), intCodec(), func(v int) (int, error) { return v * 2, nil })
	require.Nil(t, rtErr)
	assert.Equal(t, []int{2, 4}, mustDecodeInts(t, out))
}

func TestFilterMapKeepsEvenDoubled(t *testing.T) {
	raw := Encode([][]byte{mustEncodeInt(t, 1), mustEncodeInt(t, 2), mustEncodeInt(t, 3)})
	out, rtErr := FilterMap(raw, intCodec(), intCodec(), func(v int) (int, bool, error) {
		if v%2 != 0 {
			return 0, false, nil
		}
		return v * 10, true, nil
	})
	require.Nil(t, rtErr)
	assert.Equal(t, []int{20}, mustDecodeInts(t, out))
}

func TestArrayMapExpands(t *testing.T) {
	raw := Encode([][]byte{mustEncodeInt(t, 2), mustEncodeInt(t, 3)})
	out, rtErr := ArrayMap(raw, intCodec(), intCodec(), func(v int) ([]int, error) {
		rep := make([]int, v)
		for i := range rep {
			rep[i] = v
		}
		return rep, nil
	})
	require.Nil(t, rtErr)
	assert.Equal(t, []int{2, 2, 3, 3, 3}, mustDecodeInts(t, out))
}

func TestAggregateSumsIntoGuardedState(t *testing.T) {
	mgr := state.NewManager[int](state.NewMemoryBackend[int]())
	require.NoError(t, mgr.Init(0))
	guard, err := mgr.Restore()
	require.NoError(t, err)

	raw := Encode([][]byte{mustEncodeInt(t, 1), mustEncodeInt(t, 2), mustEncodeInt(t, 3)})
	rtErr := Aggregate(raw, intCodec(), guard, func(acc *int, v int) error {
		*acc += v
		return nil
	})
	require.Nil(t, rtErr)
	require.NoError(t, guard.Save())

	guard2, err := mgr.Restore()
	require.NoError(t, err)
	assert.Equal(t, 6, *guard2.Value())
}

func TestAggregateHaltsAtFirstError(t *testing.T) {
	mgr := state.NewManager[int](state.NewMemoryBackend[int]())
	require.NoError(t, mgr.Init(0))
	guard, err := mgr.Restore()
	require.NoError(t, err)

	raw := Encode([][]byte{mustEncodeInt(t, 1), mustEncodeInt(t, -1), mustEncodeInt(t, 3)})
	rtErr := Aggregate(raw, intCodec(), guard, func(acc *int, v int) error {
		if v < 0 {
			return errors.New("negative value")
		}
		*acc += v
		return nil
	})
	require.NotNil(t, rtErr)
	assert.Equal(t, int64(1), rtErr.Offset)
	assert.Equal(t, 1, *guard.Value(), "fold up to the halt point is preserved in the accumulator")
}

func TestMaterializeThreadsAndSavesState(t *testing.T) {
	mgr := state.NewManager[int](state.NewMemoryBackend[int]())
	require.NoError(t, mgr.Init(100))
	guard, err := mgr.Restore()
	require.NoError(t, err)

	raw := Encode([][]byte{mustEncodeInt(t, 1), mustEncodeInt(t, 2)})
	out, rtErr := Materialize(raw, intCodec(), intCodec(), guard, func(s *int, v int) (int, error) {
		*s += v
		return *s, nil
	})
	require.Nil(t, rtErr)
	assert.Equal(t, []int{101, 103}, mustDecodeInts(t, out))

	guard2, err := mgr.Restore()
	require.NoError(t, err)
	assert.Equal(t, 103, *guard2.Value())
}

func mustEncodeInt(t *testing.T, v int) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}
