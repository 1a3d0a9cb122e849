package pid

// TuningProfile holds the per-axis gains and filter settings of one tuning
// profile. The fixed-point and floating-point gain sets are parallel
// representations of the same tune; which set is read depends on the active
// control law. A profile is immutable for the duration of a control cycle.
type TuningProfile struct {
	// fixed-point per-axis gains
	P8 [AxisCount]uint8
	I8 [AxisCount]uint8
	D8 [AxisCount]uint8

	// fixed-point self-level gains. LevelP8 drives ANGLE mode, LevelI8 the
	// HORIZON blend contribution, LevelD8 doubles as the HORIZON sensitivity
	// of the fixed-point law.
	LevelP8 uint8
	LevelI8 uint8
	LevelD8 uint8

	// floating-point per-axis gains
	Pf [AxisCount]float64
	If [AxisCount]float64
	Df [AxisCount]float64

	// floating-point self-level gain (ANGLE mode)
	LevelAngle float64
	// floating-point HORIZON blend gain
	LevelHorizon float64
	// HORIZON sensitivity of the floating-point law, 0 disables self-leveling
	// in HORIZON mode entirely
	HorizonSensitivity uint8

	// optional term low-pass cutoffs, 0 means "disabled" (the filter call is
	// skipped, it does not degrade to a pass-through)
	PTermCutoffHz float64
	DTermCutoffHz float64
}

// RateConfig holds the per-axis rate bytes controlling stick-to-angular-rate
// scaling.
type RateConfig struct {
	Rates [AxisCount]uint8
}
