package mixer

import (
	"sync"

	"github.com/acroloop/acroloop/internal/pid"
)

// NullMixer discards demands but remembers the last one, so tests and the
// status api can observe what the loop produced.
type NullMixer struct {
	mu         sync.RWMutex
	lastDemand [pid.AxisCount]int32
}

func (mixer *NullMixer) GetId() string {
	return "null"
}

func (mixer *NullMixer) Apply(demand [pid.AxisCount]int32) error {
	mixer.mu.Lock()
	defer mixer.mu.Unlock()
	mixer.lastDemand = demand
	return nil
}

func (mixer *NullMixer) LastDemand() [pid.AxisCount]int32 {
	mixer.mu.RLock()
	defer mixer.mu.RUnlock()
	return mixer.lastDemand
}
