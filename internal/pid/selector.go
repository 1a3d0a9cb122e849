package pid

import "fmt"

// ControllerType identifies one of the two control law variants.
type ControllerType string

const (
	ControllerMwRewrite ControllerType = "mwrewrite"
	ControllerLuxFloat  ControllerType = "luxfloat"
)

// ControllerTypes lists all valid variants.
var ControllerTypes = []ControllerType{ControllerMwRewrite, ControllerLuxFloat}

// AutotuneFunc is the external tuning hook, invoked once per axis per cycle
// after the law has computed that axis's result, but only while the autotune
// mode flag and the armed flag are both set.
type AutotuneFunc func(axis Axis, terms AxisTerms)

// Controller is one concrete control law: input struct in, bounded per-axis
// demand triple out. Implementations keep their own state across cycles and
// are not safe for concurrent use; exactly one cycle is in flight at a time.
type Controller interface {
	Name() string
	Compute(in *CycleInput) Output
	Reset()
	SetAutotuneHook(hook AutotuneFunc)
}

// Selector holds both control law variants and dispatches each cycle to the
// active one. Switching is a configuration-time operation and must happen
// between cycles, never while a computation is in flight. Both laws keep
// their state across switches.
type Selector struct {
	mwRewrite *MwRewriteController
	luxFloat  *LuxFloatController
	active    Controller
}

// NewSelector creates a Selector with the fixed-point law active.
func NewSelector() *Selector {
	s := &Selector{
		mwRewrite: NewMwRewriteController(),
		luxFloat:  NewLuxFloatController(),
	}
	s.active = s.mwRewrite
	return s
}

// Select switches the active control law.
func (s *Selector) Select(controllerType ControllerType) error {
	switch controllerType {
	case ControllerMwRewrite:
		s.active = s.mwRewrite
	case ControllerLuxFloat:
		s.active = s.luxFloat
	default:
		return fmt.Errorf("unknown pid controller type: %s", controllerType)
	}
	return nil
}

// ActiveType returns the type of the currently active law.
func (s *Selector) ActiveType() ControllerType {
	return ControllerType(s.active.Name())
}

// Compute runs one control cycle through the active law.
func (s *Selector) Compute(in *CycleInput) Output {
	return s.active.Compute(in)
}

// Reset zeroes integrator, error history and filter state of both laws. To
// be called at arm/disarm boundaries only, serialized with cycle execution.
func (s *Selector) Reset() {
	s.mwRewrite.Reset()
	s.luxFloat.Reset()
}

// SetAutotuneHook installs the external tuning hook on both laws.
func (s *Selector) SetAutotuneHook(hook AutotuneFunc) {
	s.mwRewrite.SetAutotuneHook(hook)
	s.luxFloat.SetAutotuneHook(hook)
}
