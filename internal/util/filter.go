package util

import "math"

// Pt1Filter is a first-order recursive low-pass filter.
// The smoothing coefficient is derived from the cutoff frequency and the
// elapsed cycle time on every call, so jittery cycle times are handled
// correctly. A cutoff frequency of zero means "filtering disabled" and must
// be handled by the caller by not calling Apply at all.
type Pt1Filter struct {
	state float64
}

// Apply feeds a raw sample into the filter and returns the smoothed sample.
func (f *Pt1Filter) Apply(input float64, cutoffHz float64, dt float64) float64 {
	rc := 1 / (2 * math.Pi * cutoffHz)
	f.state = f.state + dt/(rc+dt)*(input-f.state)
	return f.state
}

// Value returns the current filter state without advancing it.
func (f *Pt1Filter) Value() float64 {
	return f.state
}

// Reset sets the filter state back to neutral.
func (f *Pt1Filter) Reset() {
	f.state = 0
}
