package imu

import (
	"fmt"

	"github.com/acroloop/acroloop/internal/configuration"
	"github.com/acroloop/acroloop/internal/pid"
	cmap "github.com/orcaman/concurrent-map/v2"
)

var (
	SourceMap = cmap.New[Source]()
)

// Sample is one synchronized reading of gyro rates and attitude estimate,
// in both representations the control laws consume.
type Sample struct {
	// raw gyro units per axis (fixed-point law input)
	GyroRaw [pid.AxisCount]int32
	// gyro rate per axis in deg/s (float law input)
	GyroRate [pid.AxisCount]float64
	// attitude estimate per axis in decidegrees
	Attitude [pid.AxisCount]int
}

// Source supplies the control loop with gyro and attitude samples. Read is
// called once per control cycle from the loop goroutine and must not block.
type Source interface {
	GetId() string

	// Read returns the current sample
	Read() (Sample, error)
}

func NewSource(config configuration.ImuConfig) (Source, error) {
	if config.Virtual != nil {
		return NewVirtualSource(*config.Virtual), nil
	}

	if config.File != nil {
		return &FileSource{
			Config: *config.File,
		}, nil
	}

	return nil, fmt.Errorf("no matching imu source type")
}
