package imu

import (
	"math"
	"time"

	"github.com/acroloop/acroloop/internal/configuration"
	"github.com/acroloop/acroloop/internal/pid"
)

// VirtualSource produces deterministic synthetic motion, a sine oscillation
// on roll and pitch and a still yaw. It stands in for real hardware when
// running the daemon on a desk.
type VirtualSource struct {
	Config configuration.VirtualImuConfig

	start time.Time
}

func NewVirtualSource(config configuration.VirtualImuConfig) *VirtualSource {
	if config.GyroScale == 0 {
		config.GyroScale = 1
	}
	return &VirtualSource{
		Config: config,
		start:  time.Now(),
	}
}

func (source *VirtualSource) GetId() string {
	return "virtual"
}

func (source *VirtualSource) Read() (Sample, error) {
	var sample Sample
	if source.Config.FrequencyHz == 0 || source.Config.Amplitude == 0 {
		return sample, nil
	}

	elapsed := time.Since(source.start).Seconds()
	phase := 2 * math.Pi * source.Config.FrequencyHz * elapsed

	rollRate := source.Config.Amplitude * math.Sin(phase)
	pitchRate := source.Config.Amplitude * math.Cos(phase)

	sample.GyroRate[pid.Roll] = rollRate
	sample.GyroRate[pid.Pitch] = pitchRate
	sample.GyroRaw[pid.Roll] = int32(rollRate / source.Config.GyroScale)
	sample.GyroRaw[pid.Pitch] = int32(pitchRate / source.Config.GyroScale)

	return sample, nil
}
