package pid

import "github.com/acroloop/acroloop/internal/util"

// Stick deflection at which HORIZON self-leveling is fully faded out.
const horizonMaxDeflection = 500

func mostDeflected(stickRoll int, stickPitch int) int {
	deflection := util.AbsInt(stickRoll)
	if util.AbsInt(stickPitch) > deflection {
		deflection = util.AbsInt(stickPitch)
	}
	return deflection
}

// horizonLevelStrengthFloat computes the HORIZON self-level blend used by the
// floating-point law: 1 at centre stick, fading to 0 at max deflection,
// rescaled by the sensitivity setting. A sensitivity of 0 disables
// self-leveling entirely.
func horizonLevelStrengthFloat(stickRoll int, stickPitch int, sensitivity uint8) float64 {
	deflection := mostDeflected(stickRoll, stickPitch)

	strength := float64(horizonMaxDeflection-deflection) / horizonMaxDeflection
	if sensitivity == 0 {
		return 0
	}
	// the sensitivity divisor is intentionally an integer division, it is
	// part of the numeric identity of the reference tune
	return util.Coerce((strength-1)*float64(100/int(sensitivity))+1, 0, 1)
}

// horizonLevelStrengthInt is the fixed-point counterpart, scaled to a
// percentage: 100 at centre stick, 0 at max deflection. The sensitivity byte
// comes from the profile's LevelD8 slot; 80 yields the same ramp shape as the
// floating-point variant at sensitivity 100, larger values fade the
// self-leveling out faster. Sensitivity 0 disables self-leveling, consistent
// with the floating-point variant.
func horizonLevelStrengthInt(stickRoll int, stickPitch int, sensitivity uint8) int32 {
	if sensitivity == 0 {
		return 0
	}

	deflection := mostDeflected(stickRoll, stickPitch)

	strength := int32((horizonMaxDeflection - deflection) / 5)
	return util.CoerceInt32(10*(strength-100)*(10*int32(sensitivity)/80)/100+100, 0, 100)
}
