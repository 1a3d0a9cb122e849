package mixer

import (
	"fmt"

	"github.com/acroloop/acroloop/internal/configuration"
	"github.com/acroloop/acroloop/internal/pid"
	cmap "github.com/orcaman/concurrent-map/v2"
)

var (
	MixerMap = cmap.New[Mixer]()
)

// Mixer consumes the per-axis control demands produced by the active control
// law. Apply is called once per control cycle from the loop goroutine.
type Mixer interface {
	GetId() string

	Apply(demand [pid.AxisCount]int32) error
}

func NewMixer(config configuration.MixerConfig) (Mixer, error) {
	if config.File != nil {
		return NewFileMixer(*config.File), nil
	}

	if config.Log != nil {
		return &LogMixer{}, nil
	}

	if config.Null != nil {
		return &NullMixer{}, nil
	}

	return nil, fmt.Errorf("no matching mixer type")
}
