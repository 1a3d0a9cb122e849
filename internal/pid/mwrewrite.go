package pid

import "github.com/acroloop/acroloop/internal/util"

// Symmetric integrator bound of the fixed-point law, applied to the wide
// accumulator (shifted left by the extraction scale) so the anti-windup
// bound stays independent of the configured I gain.
const (
	gyroIMax        = 256
	gyroIScaleShift = 13
)

// MwRewriteController is the fixed-point control law. All shift amounts and
// divisors are fixed, they are the numeric identity of the law and must not
// be tuned. Unlike the floating-point law the summed output is not saturated;
// the bound comes from the clamped integrator and the term scaling upstream.
type MwRewriteController struct {
	state    pidState[int32]
	autotune AutotuneFunc
}

func NewMwRewriteController() *MwRewriteController {
	return &MwRewriteController{}
}

func (c *MwRewriteController) Name() string {
	return string(ControllerMwRewrite)
}

func (c *MwRewriteController) Reset() {
	c.state.reset()
}

func (c *MwRewriteController) SetAutotuneHook(hook AutotuneFunc) {
	c.autotune = hook
}

func (c *MwRewriteController) Compute(in *CycleInput) Output {
	var out Output

	profile := in.Profile
	timing := in.Timing.sanitized()
	cycleTime := int32(timing.CycleTimeUs)

	horizonLevelStrength := int32(100)
	if in.Modes.Has(ModeHorizon) {
		horizonLevelStrength = horizonLevelStrengthInt(
			in.stickDeflection(Roll), in.stickDeflection(Pitch), profile.LevelD8)
	}

	for _, axis := range Axes {
		rate := int32(in.Rates.Rates[axis])

		// desired angle rate depending on flight mode. YAW is always rate
		// controlled directly from the stick.
		var angleRate int32
		if axis == Yaw {
			angleRate = (rate + 27) * int32(in.Command[Yaw]) >> 5
		} else {
			errorAngle := util.CoerceInt32(2*int32(in.Command[axis]),
				-int32(in.MaxInclination), int32(in.MaxInclination)) - int32(in.Attitude[axis])

			if in.Modes.Has(ModeAngle) {
				angleRate = errorAngle * int32(profile.LevelP8) >> 4
			} else {
				angleRate = (rate + 27) * int32(in.Command[axis]) >> 4
				if in.Modes.Has(ModeHorizon) {
					// mix angle error into the desired rate for some
					// auto-level feel, scaled by the stick deflection
					angleRate += errorAngle * int32(profile.LevelI8) * horizonLevelStrength / 100 >> 4
				}
			}
		}

		rateError := angleRate - in.GyroRaw[axis]/4

		pTerm := rateError * int32(profile.P8[axis]) * int32(in.Weights[axis]) / 100 >> 7
		if profile.PTermCutoffHz > 0 {
			pTerm = int32(c.state.ptermFilter[axis].Apply(float64(pTerm), profile.PTermCutoffHz, timing.Dt))
		}

		// accumulate before any scaling down, precision here is what keeps
		// long-time drift in check. Time correction is normalized to a
		// 2048us cycle.
		c.state.errorGyroI[axis] += (rateError * cycleTime >> 11) * int32(profile.I8[axis])
		c.state.errorGyroI[axis] = util.CoerceInt32(c.state.errorGyroI[axis],
			-gyroIMax<<gyroIScaleShift, gyroIMax<<gyroIScaleShift)
		iTerm := c.state.errorGyroI[axis] >> gyroIScaleShift

		delta := rateError - c.state.lastError[axis]
		c.state.lastError[axis] = rateError

		// cycle time is jittery, the raw difference would be scaled by a
		// different dt each cycle. The integer ratio corrects for that.
		delta = delta * (0xFFFF / (cycleTime >> 4)) >> 6
		deltaSum := c.state.delta1[axis] + c.state.delta2[axis] + delta
		c.state.delta2[axis] = c.state.delta1[axis]
		c.state.delta1[axis] = delta

		if profile.DTermCutoffHz > 0 {
			deltaSum = int32(c.state.dtermFilter[axis].Apply(float64(deltaSum), profile.DTermCutoffHz, timing.Dt))
		}

		dTerm := deltaSum * int32(profile.D8[axis]) * int32(in.Weights[axis]) / 100 >> 8

		out.Demand[axis] = pTerm + iTerm + dTerm
		out.Terms[axis] = AxisTerms{P: pTerm, I: iTerm, D: dTerm}

		if c.autotune != nil && in.Modes.Has(ModeAutotune) && in.Armed {
			c.autotune(axis, out.Terms[axis])
		}
	}

	return out
}
