package mixer

import (
	"path/filepath"

	"github.com/acroloop/acroloop/internal/configuration"
	"github.com/acroloop/acroloop/internal/pid"
	"github.com/acroloop/acroloop/internal/util"
)

// FileMixer writes each axis demand to its own file below the configured
// directory, replacing the file contents atomically. Unchanged values are
// not rewritten.
type FileMixer struct {
	Config configuration.FileMixerConfig

	lastDemand [pid.AxisCount]int32
	written    bool
}

func NewFileMixer(config configuration.FileMixerConfig) *FileMixer {
	return &FileMixer{
		Config: config,
	}
}

func (mixer *FileMixer) GetId() string {
	return "file"
}

func (mixer *FileMixer) Apply(demand [pid.AxisCount]int32) error {
	for _, axis := range pid.Axes {
		if mixer.written && demand[axis] == mixer.lastDemand[axis] {
			continue
		}
		path := filepath.Join(mixer.Config.Dir, axis.String())
		err := util.WriteIntToFileAtomic(int(demand[axis]), path)
		if err != nil {
			return err
		}
	}
	mixer.lastDemand = demand
	mixer.written = true
	return nil
}
