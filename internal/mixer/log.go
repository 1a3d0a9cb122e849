package mixer

import (
	"github.com/acroloop/acroloop/internal/pid"
	"github.com/acroloop/acroloop/internal/ui"
)

// LogMixer prints each demand instead of actuating anything. Useful for
// watching the loop run without hardware attached.
type LogMixer struct{}

func (mixer *LogMixer) GetId() string {
	return "log"
}

func (mixer *LogMixer) Apply(demand [pid.AxisCount]int32) error {
	ui.Debug("Demand: roll %d pitch %d yaw %d",
		demand[pid.Roll], demand[pid.Pitch], demand[pid.Yaw])
	return nil
}
