package pid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func selectorTestProfile() *TuningProfile {
	profile := mwTestProfile()
	lux := luxTestProfile()
	profile.Pf = lux.Pf
	profile.If = lux.If
	profile.Df = lux.Df
	profile.LevelAngle = lux.LevelAngle
	profile.LevelHorizon = lux.LevelHorizon
	profile.HorizonSensitivity = lux.HorizonSensitivity
	return profile
}

func TestSelectorDefaultsToFixedPointLaw(t *testing.T) {
	// GIVEN
	selector := NewSelector()

	// THEN
	assert.Equal(t, ControllerMwRewrite, selector.ActiveType())
}

func TestSelectorSelect(t *testing.T) {
	// GIVEN
	selector := NewSelector()

	// WHEN
	err := selector.Select(ControllerLuxFloat)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, ControllerLuxFloat, selector.ActiveType())

	// WHEN
	err = selector.Select("does-not-exist")

	// THEN
	assert.Error(t, err)
	assert.Equal(t, ControllerLuxFloat, selector.ActiveType())
}

func TestSelectorSwitchPreservesState(t *testing.T) {
	// GIVEN
	// a reference selector that only ever runs the fixed-point law
	profile := selectorTestProfile()
	reference := NewSelector()
	switched := NewSelector()

	in := mwTestInput(profile)
	in.Rates.Rates[Yaw] = yawUnityRate
	in.Command[Yaw] = 200

	// WHEN
	// the switched selector runs the fixed-point law for 3 cycles, the
	// floating-point law for 4 cycles, then the fixed-point law again
	for cycle := 0; cycle < 3; cycle++ {
		reference.Compute(in)
		switched.Compute(in)
	}
	assert.NoError(t, switched.Select(ControllerLuxFloat))
	for cycle := 0; cycle < 4; cycle++ {
		switched.Compute(in)
	}
	assert.NoError(t, switched.Select(ControllerMwRewrite))

	referenceOut := reference.Compute(in)
	switchedOut := switched.Compute(in)

	// THEN
	// the fixed-point law's state is exactly what it would have been had
	// the floating-point law never run
	assert.Equal(t, referenceOut, switchedOut)
	assert.Equal(t, reference.mwRewrite.state.errorGyroI, switched.mwRewrite.state.errorGyroI)
}

func TestSelectorResetZeroesBothLaws(t *testing.T) {
	// GIVEN
	profile := selectorTestProfile()
	selector := NewSelector()

	in := mwTestInput(profile)
	in.Command[Yaw] = 200
	for cycle := 0; cycle < 5; cycle++ {
		selector.Compute(in)
	}
	assert.NoError(t, selector.Select(ControllerLuxFloat))
	for cycle := 0; cycle < 5; cycle++ {
		selector.Compute(in)
	}
	assert.NotEqual(t, int32(0), selector.mwRewrite.state.errorGyroI[Yaw])
	assert.NotEqual(t, 0.0, selector.luxFloat.state.errorGyroI[Yaw])

	// WHEN
	selector.Reset()

	// THEN
	assert.Equal(t, int32(0), selector.mwRewrite.state.errorGyroI[Yaw])
	assert.Equal(t, 0.0, selector.luxFloat.state.errorGyroI[Yaw])

	// a zero-error cycle after reset is exactly zero on both laws
	in.Command[Yaw] = 0
	out := selector.Compute(in)
	assert.Equal(t, [AxisCount]int32{}, out.Demand)
	assert.NoError(t, selector.Select(ControllerMwRewrite))
	out = selector.Compute(in)
	assert.Equal(t, [AxisCount]int32{}, out.Demand)
}

func TestSelectorAutotuneHook(t *testing.T) {
	// GIVEN
	profile := selectorTestProfile()
	selector := NewSelector()

	var calls []Axis
	selector.SetAutotuneHook(func(axis Axis, terms AxisTerms) {
		calls = append(calls, axis)
	})

	in := mwTestInput(profile)
	in.Command[Yaw] = 200

	// WHEN not in autotune mode
	selector.Compute(in)

	// THEN
	assert.Empty(t, calls)

	// WHEN in autotune mode but not armed
	in.Modes = ModeAutotune
	selector.Compute(in)

	// THEN
	assert.Empty(t, calls)

	// WHEN in autotune mode and armed
	in.Armed = true
	selector.Compute(in)

	// THEN the hook runs once per axis
	assert.Equal(t, []Axis{Roll, Pitch, Yaw}, calls)

	// WHEN the floating-point law is active the hook fires as well
	calls = nil
	assert.NoError(t, selector.Select(ControllerLuxFloat))
	selector.Compute(in)

	// THEN
	assert.Equal(t, []Axis{Roll, Pitch, Yaw}, calls)
}
