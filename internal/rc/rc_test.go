package rc

import (
	"testing"

	"github.com/acroloop/acroloop/internal/configuration"
	"github.com/acroloop/acroloop/internal/pid"
	"github.com/stretchr/testify/assert"
)

func TestNewSourceVirtual(t *testing.T) {
	// GIVEN
	config := configuration.RcConfig{
		Virtual: &configuration.VirtualRcConfig{
			Command: configuration.AxisInts{Roll: 10, Pitch: -20, Yaw: 30},
		},
	}

	// WHEN
	source, err := NewSource(config, 1500)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, "virtual", source.GetId())

	frame, err := source.Read()
	assert.NoError(t, err)
	assert.Equal(t, [pid.AxisCount]int{10, -20, 30}, frame.Command)
	assert.Equal(t, [pid.AxisCount]int{1500, 1500, 1500}, frame.Stick)
	assert.Equal(t, pid.FlightMode(0), frame.Modes)
}

func TestNewSourceNoneConfigured(t *testing.T) {
	// GIVEN
	config := configuration.RcConfig{}

	// WHEN
	source, err := NewSource(config, 1500)

	// THEN
	assert.Error(t, err)
	assert.Nil(t, source)
}

func TestVirtualSourceSetters(t *testing.T) {
	// GIVEN
	source := NewVirtualSource(configuration.VirtualRcConfig{}, 1500)

	// WHEN
	source.SetCommand(pid.Roll, 250)
	source.SetStick(pid.Pitch, 1750)
	source.SetModes(pid.ModeAngle | pid.ModeHorizon)

	// THEN
	frame, err := source.Read()
	assert.NoError(t, err)
	assert.Equal(t, 250, frame.Command[pid.Roll])
	assert.Equal(t, 1750, frame.Stick[pid.Pitch])
	assert.True(t, frame.Modes.Has(pid.ModeAngle))
	assert.True(t, frame.Modes.Has(pid.ModeHorizon))
	assert.False(t, frame.Modes.Has(pid.ModeAutotune))
}
