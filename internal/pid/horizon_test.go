package pid

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHorizonLevelStrengthFloatRamp(t *testing.T) {
	// GIVEN
	var sensitivity uint8 = 100

	// WHEN / THEN
	// full self-level at centre stick
	assert.Equal(t, 1.0, horizonLevelStrengthFloat(0, 0, sensitivity))

	// monotonically non-increasing in deflection magnitude
	previous := 1.0
	for deflection := 0; deflection <= 600; deflection += 25 {
		strength := horizonLevelStrengthFloat(deflection, 0, sensitivity)
		assert.LessOrEqual(t, strength, previous)
		previous = strength
	}

	// fully faded out at and beyond max deflection
	assert.Equal(t, 0.0, horizonLevelStrengthFloat(500, 0, sensitivity))
	assert.Equal(t, 0.0, horizonLevelStrengthFloat(600, 0, sensitivity))

	// sign of the deflection does not matter
	assert.Equal(t,
		horizonLevelStrengthFloat(250, 0, sensitivity),
		horizonLevelStrengthFloat(-250, 0, sensitivity))
}

func TestHorizonLevelStrengthFloatUsesLargerDeflection(t *testing.T) {
	// GIVEN
	var sensitivity uint8 = 100

	// WHEN
	rollDominated := horizonLevelStrengthFloat(400, 100, sensitivity)
	pitchDominated := horizonLevelStrengthFloat(100, 400, sensitivity)

	// THEN
	assert.Equal(t, rollDominated, pitchDominated)
	assert.Equal(t, horizonLevelStrengthFloat(400, 0, sensitivity), rollDominated)
}

func TestHorizonLevelStrengthZeroSensitivity(t *testing.T) {
	// sensitivity 0 disables self-leveling entirely, for any deflection
	for deflection := 0; deflection <= 600; deflection += 100 {
		assert.Equal(t, 0.0, horizonLevelStrengthFloat(deflection, 0, 0))
		assert.Equal(t, int32(0), horizonLevelStrengthInt(deflection, 0, 0))
	}
}

func TestHorizonLevelStrengthIntRamp(t *testing.T) {
	// GIVEN
	var sensitivity uint8 = 80

	// WHEN / THEN
	assert.Equal(t, int32(100), horizonLevelStrengthInt(0, 0, sensitivity))
	assert.Equal(t, int32(50), horizonLevelStrengthInt(250, 0, sensitivity))
	assert.Equal(t, int32(0), horizonLevelStrengthInt(500, 0, sensitivity))
	assert.Equal(t, int32(0), horizonLevelStrengthInt(600, 0, sensitivity))

	previous := int32(100)
	for deflection := 0; deflection <= 600; deflection += 25 {
		strength := horizonLevelStrengthInt(0, deflection, sensitivity)
		assert.LessOrEqual(t, strength, previous)
		previous = strength
	}
}

func TestHorizonLevelStrengthRepresentationsConsistent(t *testing.T) {
	// GIVEN
	// sensitivity 100 (float) and 80 (fixed-point) produce the same linear
	// ramp, scaled to [0,1] and [0,100] respectively
	for deflection := 0; deflection <= 500; deflection += 5 {
		// WHEN
		floatStrength := horizonLevelStrengthFloat(deflection, 0, 100)
		intStrength := horizonLevelStrengthInt(deflection, 0, 80)

		// THEN
		// round the float product, 0.57*100 is 56.999... in binary floating
		// point and plain truncation would be off by one
		assert.Equal(t, intStrength, int32(math.Round(floatStrength*100)))
	}
}
