package pid

// FlightMode is a bitmask of the flight mode flags the control laws care
// about.
type FlightMode uint8

const (
	// ModeAngle tracks a commanded tilt angle on roll/pitch.
	ModeAngle FlightMode = 1 << iota
	// ModeHorizon blends rate control with self-leveling, the blend shrinking
	// with stick deflection.
	ModeHorizon
	// ModeAutotune requests the external tuning hook to run (armed only).
	ModeAutotune
)

func (m FlightMode) Has(mode FlightMode) bool {
	return m&mode != 0
}

// Cycle time bounds enforced at the Compute boundary. A cycle time at or
// below zero is a caller contract violation; rather than producing an
// undefined numeric result (the fixed-point law divides by cycleTime>>4) the
// timing is clamped to the smallest representable cycle. The upper bound
// matches the 16 bit range of the reference loop counter.
const (
	MinCycleTimeUs = 16
	MaxCycleTimeUs = 0xFFFF
	MinDt          = 1e-6
)

// CycleTiming is the elapsed time of the current control cycle, in both the
// integer microsecond form consumed by the fixed-point law and the
// float second form consumed by the floating-point law.
type CycleTiming struct {
	CycleTimeUs int
	Dt          float64
}

// Timing returns a CycleTiming where both representations are derived from
// the given microsecond count.
func Timing(cycleTimeUs int) CycleTiming {
	return CycleTiming{
		CycleTimeUs: cycleTimeUs,
		Dt:          float64(cycleTimeUs) * 1e-6,
	}
}

func (t CycleTiming) sanitized() CycleTiming {
	if t.CycleTimeUs < MinCycleTimeUs {
		t.CycleTimeUs = MinCycleTimeUs
	}
	if t.CycleTimeUs > MaxCycleTimeUs {
		t.CycleTimeUs = MaxCycleTimeUs
	}
	if t.Dt < MinDt {
		t.Dt = MinDt
	}
	return t
}

// CycleInput carries everything a control law reads during one cycle. All
// fields are read-only to the law; the only state mutated during Compute
// lives inside the law itself.
type CycleInput struct {
	Profile *TuningProfile
	Rates   RateConfig

	// maximum allowed tilt angle in decidegrees
	MaxInclination int
	// rc channel midpoint the stick deflection is measured against
	StickCenter int

	Modes FlightMode
	Armed bool

	// per-axis stick command (rcCommand)
	Command [AxisCount]int
	// raw per-axis rc channel values, used for the HORIZON deflection ramp
	Stick [AxisCount]int

	// raw gyro sample per axis, fixed-point law units
	GyroRaw [AxisCount]int32
	// gyro rate per axis in deg/s, floating-point law
	GyroRate [AxisCount]float64

	// attitude estimate per axis in decidegrees
	Attitude [AxisCount]int

	// per-axis percentage applied to P and D terms, 100 = no reduction
	Weights [AxisCount]uint8

	Timing CycleTiming
}

// stickDeflection returns the signed deflection of the given stick relative
// to the configured center.
func (in *CycleInput) stickDeflection(axis Axis) int {
	return in.Stick[axis] - in.StickCenter
}

// AxisTerms exposes the intermediate P/I/D terms of one axis for telemetry
// capture. This is a side channel and never feeds back into the control
// result.
type AxisTerms struct {
	P int32
	I int32
	D int32
}

// Output is the result of one control cycle: a bounded corrective demand per
// axis, plus the per-axis terms for telemetry.
type Output struct {
	Demand [AxisCount]int32
	Terms  [AxisCount]AxisTerms
}
