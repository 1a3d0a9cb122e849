package pid

import "github.com/acroloop/acroloop/internal/util"

// pidState holds the mutable per-axis state one control law carries across
// cycles: the integrator accumulator, the last raw rate error, the two most
// recent derivative deltas and one low-pass filter state per filtered term.
//
// Each law owns exactly one instance and mutates it once per axis per cycle.
// State is never shared between laws, so switching the active law leaves the
// inactive law's history untouched.
type pidState[T int32 | float64] struct {
	errorGyroI [AxisCount]T
	lastError  [AxisCount]T
	delta1     [AxisCount]T
	delta2     [AxisCount]T

	ptermFilter [AxisCount]util.Pt1Filter
	dtermFilter [AxisCount]util.Pt1Filter
}

// reset zeroes integrator, error history and filter state for all axes. Only
// called at arm/disarm boundaries, never mid-flight.
func (s *pidState[T]) reset() {
	for axis := 0; axis < AxisCount; axis++ {
		s.errorGyroI[axis] = 0
		s.lastError[axis] = 0
		s.delta1[axis] = 0
		s.delta2[axis] = 0
		s.ptermFilter[axis].Reset()
		s.dtermFilter[axis].Reset()
	}
}
