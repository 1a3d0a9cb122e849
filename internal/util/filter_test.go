package util

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// cutoff frequency for which the filter RC constant is exactly 1s
var unitCutoffHz = 1 / (2 * math.Pi)

func TestPt1FilterConvergesToInput(t *testing.T) {
	// GIVEN
	filter := Pt1Filter{}
	dt := 1.0

	// WHEN
	first := filter.Apply(10, unitCutoffHz, dt)
	second := filter.Apply(10, unitCutoffHz, dt)

	// THEN
	// RC == dt == 1 means the smoothing coefficient is exactly 0.5
	assert.Equal(t, 5.0, first)
	assert.Equal(t, 7.5, second)
}

func TestPt1FilterTracksDt(t *testing.T) {
	// GIVEN
	slow := Pt1Filter{}
	fast := Pt1Filter{}
	cutoff := 20.0

	// WHEN
	slowOut := slow.Apply(100, cutoff, 0.001)
	fastOut := fast.Apply(100, cutoff, 0.004)

	// THEN
	// a longer cycle time lets the filter move further towards the input
	assert.Less(t, slowOut, fastOut)
	assert.Greater(t, slowOut, 0.0)
	assert.Less(t, fastOut, 100.0)
}

func TestPt1FilterReset(t *testing.T) {
	// GIVEN
	filter := Pt1Filter{}
	filter.Apply(100, unitCutoffHz, 1.0)
	assert.NotEqual(t, 0.0, filter.Value())

	// WHEN
	filter.Reset()

	// THEN
	assert.Equal(t, 0.0, filter.Value())
}
