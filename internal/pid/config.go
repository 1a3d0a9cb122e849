package pid

import "github.com/acroloop/acroloop/internal/configuration"

// ProfileFromConfig builds the domain tuning profile from a fully resolved
// profile configuration.
func ProfileFromConfig(config configuration.ProfileConfig) *TuningProfile {
	profile := &TuningProfile{}

	if config.Pid != nil {
		profile.P8 = axisBytes(config.Pid.P)
		profile.I8 = axisBytes(config.Pid.I)
		profile.D8 = axisBytes(config.Pid.D)
	}
	if config.PidFloat != nil {
		profile.Pf = axisFloats(config.PidFloat.P)
		profile.If = axisFloats(config.PidFloat.I)
		profile.Df = axisFloats(config.PidFloat.D)
	}
	if config.Level != nil {
		profile.LevelP8 = clampByte(config.Level.P)
		profile.LevelI8 = clampByte(config.Level.I)
		profile.LevelD8 = clampByte(config.Level.D)
	}
	if config.LevelAngle != nil {
		profile.LevelAngle = *config.LevelAngle
	}
	if config.LevelHorizon != nil {
		profile.LevelHorizon = *config.LevelHorizon
	}
	if config.HorizonSensitivity != nil {
		profile.HorizonSensitivity = clampByte(*config.HorizonSensitivity)
	}
	if config.PTermCutoffHz != nil {
		profile.PTermCutoffHz = *config.PTermCutoffHz
	}
	if config.DTermCutoffHz != nil {
		profile.DTermCutoffHz = *config.DTermCutoffHz
	}

	return profile
}

// RatesFromConfig builds the domain rate configuration.
func RatesFromConfig(rates configuration.AxisInts) RateConfig {
	return RateConfig{
		Rates: [AxisCount]uint8{
			clampByte(rates.Roll),
			clampByte(rates.Pitch),
			clampByte(rates.Yaw),
		},
	}
}

// WeightsFromConfig builds the per-axis P/D weight percentages. An all-zero
// triple means the weights are unconfigured and yields full weight on every
// axis.
func WeightsFromConfig(weights configuration.AxisInts) [AxisCount]uint8 {
	if weights.Roll == 0 && weights.Pitch == 0 && weights.Yaw == 0 {
		return [AxisCount]uint8{100, 100, 100}
	}
	return [AxisCount]uint8{
		clampWeight(weights.Roll),
		clampWeight(weights.Pitch),
		clampWeight(weights.Yaw),
	}
}

func clampWeight(value int) uint8 {
	if value < 0 {
		return 0
	}
	if value > 100 {
		return 100
	}
	return uint8(value)
}

func axisBytes(values configuration.AxisInts) [AxisCount]uint8 {
	return [AxisCount]uint8{
		clampByte(values.Roll),
		clampByte(values.Pitch),
		clampByte(values.Yaw),
	}
}

func axisFloats(values configuration.AxisFloats) [AxisCount]float64 {
	return [AxisCount]float64{values.Roll, values.Pitch, values.Yaw}
}

func clampByte(value int) uint8 {
	if value < 0 {
		return 0
	}
	if value > 255 {
		return 255
	}
	return uint8(value)
}
