package window

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rulego/streamwindow/adapter"
	"github.com/rulego/streamwindow/fluviotime"
)

// testVehicle is a minimal adapter.Record[uint16, float64, string]
// implementation used to exercise the manager without pulling in the
// adapter package's JSON/expr machinery — it plays the role of the
// original's VehiclePosition test fixture in window.rs's `#[cfg(test)]`
// module.
type testVehicle struct {
	vehicle uint16
	speed   *float64
	when    fluviotime.FluvioTime
	hasTime bool
}

func veh(vehicle uint16, speed float64, iso string) testVehicle {
	t, err := fluviotime.Parse(iso)
	if err != nil {
		panic(err)
	}
	s := speed
	return testVehicle{vehicle: vehicle, speed: &s, when: t, hasTime: true}
}

func (v testVehicle) Key(_ string) (uint16, bool, error) {
	return v.vehicle, true, nil
}

func (v testVehicle) Value(_ string) (float64, bool, error) {
	if v.speed == nil {
		return 0, false, nil
	}
	return *v.speed, true, nil
}

func (v testVehicle) Time() (fluviotime.FluvioTime, bool) {
	return v.when, v.hasTime
}

var _ adapter.Record[uint16, float64, string] = testVehicle{}

func newManager(t *testing.T) *TumblingWindow[uint16, float64, *speedAccumulator, string] {
	t.Helper()
	b := NewBuilder[uint16, float64, *speedAccumulator, string](newSpeedAccumulator)
	mgr, err := b.WindowSizeSec(10).KeySelector("vehicle").ValueSelector("speed").Build()
	require.NoError(t, err)
	return mgr
}

// Scenario 1: two in-window same-key records.
func TestAddTwoInWindowSameKey(t *testing.T) {
	mgr := newManager(t)

	completed, err := mgr.Add(veh(22, 3.2, "2023-06-22T19:45:22.002Z"))
	require.NoError(t, err)
	assert.Nil(t, completed)
	want, _ := fluviotime.Parse("2023-06-22T19:45:20.000Z")
	assert.Equal(t, want, mgr.CurrentWindow().Start)

	completed, err = mgr.Add(veh(22, 4.2, "2023-06-22T19:45:22.033Z"))
	require.NoError(t, err)
	assert.Nil(t, completed)
	assert.InDelta(t, 3.7, mgr.CurrentWindow().State[22].speed.Mean(), 1e-9)
}

// Scenario 2: rollover.
func TestAddRollover(t *testing.T) {
	mgr := newManager(t)

	_, err := mgr.Add(veh(22, 3.2, "2023-06-22T19:45:22.132Z"))
	require.NoError(t, err)

	completed, err := mgr.Add(veh(22, 3.2, "2023-06-22T19:45:50.132Z"))
	require.NoError(t, err)
	require.NotNil(t, completed)

	want, _ := fluviotime.Parse("2023-06-22T19:45:20.000Z")
	assert.Equal(t, want, completed.Start)
	assert.Len(t, completed.Values, 1)
	assert.InDelta(t, 3.2, completed.Values[0].speed.Mean(), 1e-9)

	// new window is open, seeded by the rollover record
	assert.NotNil(t, mgr.CurrentWindow())
	newStart, _ := fluviotime.Parse("2023-06-22T19:45:50.000Z")
	assert.Equal(t, newStart, mgr.CurrentWindow().Start)
}

// Scenario 4: missing key field leaves window unchanged.
func TestAddMissingKeyNoOp(t *testing.T) {
	mgr := newManager(t)
	rec := missingKeyVehicle{speed: 3.2, when: mustTime(t, "2023-06-22T19:45:22.002Z")}
	completed, err := mgr.Add(rec)
	require.NoError(t, err)
	assert.Nil(t, completed)
	assert.Nil(t, mgr.CurrentWindow())
}

// Scenario: missing value on an empty manager creates no window.
func TestAddMissingValueOnEmptyManagerCreatesNoWindow(t *testing.T) {
	mgr := newManager(t)
	rec := testVehicle{vehicle: 22, speed: nil, when: mustTime(t, "2023-06-22T19:45:22.002Z"), hasTime: true}
	completed, err := mgr.Add(rec)
	require.NoError(t, err)
	assert.Nil(t, completed)
	assert.Nil(t, mgr.CurrentWindow())
}

// Missing value with an existing window: no state change.
func TestAddMissingValueWithExistingWindowNoOp(t *testing.T) {
	mgr := newManager(t)
	_, err := mgr.Add(veh(22, 3.2, "2023-06-22T19:45:22.002Z"))
	require.NoError(t, err)

	rec := testVehicle{vehicle: 33, speed: nil, when: mustTime(t, "2023-06-22T19:45:23.000Z"), hasTime: true}
	completed, err := mgr.Add(rec)
	require.NoError(t, err)
	assert.Nil(t, completed)
	assert.Len(t, mgr.CurrentWindow().State, 1, "no entry should be created for the valueless key")
}

func TestClockBackwardsSameBucketAccepted(t *testing.T) {
	mgr := newManager(t)
	_, err := mgr.Add(veh(22, 3.2, "2023-06-22T19:45:25.000Z"))
	require.NoError(t, err)

	// still within [19:45:20, 19:45:30] bucket despite going backwards
	completed, err := mgr.Add(veh(22, 1.0, "2023-06-22T19:45:21.000Z"))
	require.NoError(t, err)
	assert.Nil(t, completed)
	assert.Len(t, mgr.CurrentWindow().State, 1)
}

func TestClockBackwardsEarlierBucketDropped(t *testing.T) {
	mgr := newManager(t)
	_, err := mgr.Add(veh(22, 3.2, "2023-06-22T19:45:25.000Z"))
	require.NoError(t, err)

	before := mgr.CurrentWindow().Start
	completed, err := mgr.Add(veh(22, 1.0, "2023-06-22T19:45:05.000Z"))
	require.NoError(t, err)
	assert.Nil(t, completed)
	assert.Equal(t, before, mgr.CurrentWindow().Start, "earlier-bucket record must be dropped, not reopen a window")
}

func TestFlush(t *testing.T) {
	mgr := newManager(t)
	_, ok := mgr.Flush()
	assert.False(t, ok, "flushing an empty manager yields nothing")

	_, err := mgr.Add(veh(22, 3.2, "2023-06-22T19:45:22.002Z"))
	require.NoError(t, err)

	out, ok := mgr.Flush()
	require.True(t, ok)
	assert.Len(t, out.Values, 1)
	assert.Nil(t, mgr.CurrentWindow())
}

func TestBuilderRejectsZeroWindowSize(t *testing.T) {
	b := NewBuilder[uint16, float64, *speedAccumulator, string](newSpeedAccumulator)
	_, err := b.WindowSizeSec(0).KeySelector("vehicle").ValueSelector("speed").Build()
	require.Error(t, err)
}

func TestBuilderDefaultsWindowSize(t *testing.T) {
	b := NewBuilder[uint16, float64, *speedAccumulator, string](newSpeedAccumulator)
	mgr, err := b.KeySelector("vehicle").ValueSelector("speed").Build()
	require.NoError(t, err)
	_, err = mgr.Add(veh(22, 3.2, "2023-06-22T19:45:22.002Z"))
	require.NoError(t, err)
	// default window size is 10s per the state-machine table.
	want, _ := fluviotime.Parse("2023-06-22T19:45:20.000Z")
	assert.Equal(t, want, mgr.CurrentWindow().Start)
}

type missingKeyVehicle struct {
	speed float64
	when  fluviotime.FluvioTime
}

func (v missingKeyVehicle) Key(_ string) (uint16, bool, error)   { return 0, false, nil }
func (v missingKeyVehicle) Value(_ string) (float64, bool, error) { return v.speed, true, nil }
func (v missingKeyVehicle) Time() (fluviotime.FluvioTime, bool)   { return v.when, true }

func mustTime(t *testing.T, s string) fluviotime.FluvioTime {
	t.Helper()
	ft, err := fluviotime.Parse(s)
	require.NoError(t, err)
	return ft
}
