package pid

import (
	"math"

	"github.com/acroloop/acroloop/internal/util"
)

// Term and output bounds of the floating-point law. In contrast to the
// fixed-point law the summed output is saturated explicitly.
const (
	luxITermLimit  = 250.0
	luxDTermLimit  = 300.0
	luxOutputLimit = 1000
)

// LuxFloatController is the floating-point control law. It stages the
// computation exactly like the fixed-point law but in real-valued arithmetic
// with its own scaling constants; the two laws are intentionally not unified,
// their rounding differences are part of the behavior downstream tunes
// depend on.
type LuxFloatController struct {
	state    pidState[float64]
	autotune AutotuneFunc
}

func NewLuxFloatController() *LuxFloatController {
	return &LuxFloatController{}
}

func (c *LuxFloatController) Name() string {
	return string(ControllerLuxFloat)
}

func (c *LuxFloatController) Reset() {
	c.state.reset()
}

func (c *LuxFloatController) SetAutotuneHook(hook AutotuneFunc) {
	c.autotune = hook
}

func (c *LuxFloatController) Compute(in *CycleInput) Output {
	var out Output

	profile := in.Profile
	timing := in.Timing.sanitized()
	dt := timing.Dt

	horizonLevelStrength := 1.0
	if in.Modes.Has(ModeHorizon) {
		horizonLevelStrength = horizonLevelStrengthFloat(
			in.stickDeflection(Roll), in.stickDeflection(Pitch), profile.HorizonSensitivity)
	}

	for _, axis := range Axes {
		rate := int(in.Rates.Rates[axis])

		// desired angle rate depending on flight mode. YAW is always rate
		// controlled directly from the stick, 100dps to 1100dps max.
		var angleRate float64
		if axis == Yaw {
			angleRate = float64((rate+10)*in.Command[Yaw]) / 50.0
		} else {
			errorAngle := float64(coerceInt(in.Command[axis], -in.MaxInclination, in.MaxInclination)-in.Attitude[axis]) / 10.0

			if in.Modes.Has(ModeAngle) {
				angleRate = errorAngle * profile.LevelAngle
			} else {
				// 200dps to 1200dps max roll/pitch rate
				angleRate = float64((rate+20)*in.Command[axis]) / 50.0
				if in.Modes.Has(ModeHorizon) {
					angleRate += errorAngle * profile.LevelHorizon * horizonLevelStrength
				}
			}
		}

		rateError := angleRate - in.GyroRate[axis]
		weight := float64(in.Weights[axis])

		pTerm := rateError * profile.Pf[axis] * weight / 100
		if profile.PTermCutoffHz > 0 {
			pTerm = c.state.ptermFilter[axis].Apply(pTerm, profile.PTermCutoffHz, dt)
		}

		c.state.errorGyroI[axis] = util.Coerce(
			c.state.errorGyroI[axis]+rateError*dt*profile.If[axis]*10,
			-luxITermLimit, luxITermLimit)
		iTerm := c.state.errorGyroI[axis]

		delta := rateError - c.state.lastError[axis]
		c.state.lastError[axis] = rateError

		// normalize the delta by the jittery cycle time, float division is
		// cheap and exact enough here
		delta *= 1.0 / dt
		deltaSum := c.state.delta1[axis] + c.state.delta2[axis] + delta
		c.state.delta2[axis] = c.state.delta1[axis]
		c.state.delta1[axis] = delta

		if profile.DTermCutoffHz > 0 {
			deltaSum = c.state.dtermFilter[axis].Apply(deltaSum, profile.DTermCutoffHz, dt)
		}

		dTerm := util.Coerce(deltaSum/3.0*profile.Df[axis]*weight/100, -luxDTermLimit, luxDTermLimit)

		out.Demand[axis] = util.CoerceInt32(int32(math.Round(pTerm+iTerm+dTerm)), -luxOutputLimit, luxOutputLimit)
		out.Terms[axis] = AxisTerms{P: int32(pTerm), I: int32(iTerm), D: int32(dTerm)}

		if c.autotune != nil && in.Modes.Has(ModeAutotune) && in.Armed {
			c.autotune(axis, out.Terms[axis])
		}
	}

	return out
}

func coerceInt(value int, rangeMin int, rangeMax int) int {
	if value > rangeMax {
		return rangeMax
	}
	if value < rangeMin {
		return rangeMin
	}
	return value
}
