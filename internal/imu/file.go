package imu

import (
	"github.com/acroloop/acroloop/internal/configuration"
	"github.com/acroloop/acroloop/internal/pid"
	"github.com/acroloop/acroloop/internal/util"
)

// FileSource reads raw per-axis integer values from files, one file per
// axis. Attitude paths are optional; a missing path reads as zero.
type FileSource struct {
	Config configuration.FileImuConfig
}

func (source *FileSource) GetId() string {
	return "file"
}

func (source *FileSource) Read() (Sample, error) {
	var sample Sample

	gyroScale := source.Config.GyroScale
	if gyroScale == 0 {
		gyroScale = 1
	}

	gyroPaths := axisPaths(source.Config.Gyro)
	attitudePaths := axisPaths(source.Config.Attitude)

	for _, axis := range pid.Axes {
		value, err := util.ReadIntFromFile(gyroPaths[axis])
		if err != nil {
			return sample, err
		}
		sample.GyroRaw[axis] = int32(value)
		sample.GyroRate[axis] = float64(value) * gyroScale

		if attitudePaths[axis] == "" {
			continue
		}
		attitude, err := util.ReadIntFromFile(attitudePaths[axis])
		if err != nil {
			return sample, err
		}
		sample.Attitude[axis] = attitude
	}

	return sample, nil
}

func axisPaths(config configuration.AxisPathsConfig) [pid.AxisCount]string {
	return [pid.AxisCount]string{config.Roll, config.Pitch, config.Yaw}
}
