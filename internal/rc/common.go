package rc

import (
	"fmt"
	"sync"

	"github.com/acroloop/acroloop/internal/configuration"
	"github.com/acroloop/acroloop/internal/pid"
	cmap "github.com/orcaman/concurrent-map/v2"
)

var (
	SourceMap = cmap.New[Source]()
)

// Frame is one snapshot of pilot input: the per-axis stick command, the raw
// channel values the horizon deflection ramp works on, and the active flight
// mode flags.
type Frame struct {
	Command [pid.AxisCount]int
	Stick   [pid.AxisCount]int
	Modes   pid.FlightMode
}

// Source supplies the control loop with pilot input. Read is called once per
// control cycle from the loop goroutine and must not block.
type Source interface {
	GetId() string

	Read() (Frame, error)
}

func NewSource(config configuration.RcConfig, stickCenter int) (Source, error) {
	if config.Virtual != nil {
		return NewVirtualSource(*config.Virtual, stickCenter), nil
	}

	return nil, fmt.Errorf("no matching rc source type")
}

// VirtualSource is an rc source whose values can be set programmatically,
// via the REST api or from tests.
type VirtualSource struct {
	mu    sync.RWMutex
	frame Frame
}

func NewVirtualSource(config configuration.VirtualRcConfig, stickCenter int) *VirtualSource {
	source := &VirtualSource{}
	source.frame.Command = [pid.AxisCount]int{
		config.Command.Roll,
		config.Command.Pitch,
		config.Command.Yaw,
	}
	source.frame.Stick = [pid.AxisCount]int{stickCenter, stickCenter, stickCenter}
	return source
}

func (source *VirtualSource) GetId() string {
	return "virtual"
}

func (source *VirtualSource) Read() (Frame, error) {
	source.mu.RLock()
	defer source.mu.RUnlock()
	return source.frame, nil
}

func (source *VirtualSource) SetCommand(axis pid.Axis, value int) {
	source.mu.Lock()
	defer source.mu.Unlock()
	source.frame.Command[axis] = value
}

func (source *VirtualSource) SetStick(axis pid.Axis, value int) {
	source.mu.Lock()
	defer source.mu.Unlock()
	source.frame.Stick[axis] = value
}

func (source *VirtualSource) SetModes(modes pid.FlightMode) {
	source.mu.Lock()
	defer source.mu.Unlock()
	source.frame.Modes = modes
}
