package configuration

// ImuConfig selects where gyro and attitude samples come from. Exactly one
// sub-configuration must be set.
type ImuConfig struct {
	Virtual *VirtualImuConfig `json:"virtual,omitempty"`
	File    *FileImuConfig    `json:"file,omitempty"`
}

// VirtualImuConfig is a deterministic synthetic motion source, useful when
// running without hardware.
type VirtualImuConfig struct {
	// peak angular rate of the synthetic oscillation in deg/s
	Amplitude float64 `json:"amplitude"`
	// oscillation frequency in Hz, 0 keeps the vehicle perfectly still
	FrequencyHz float64 `json:"frequencyHz"`
	// deg/s represented by one raw gyro unit, converts between the raw
	// fixed-point input scale and the float law's deg/s scale
	GyroScale float64 `json:"gyroScale"`
}

// FileImuConfig reads per-axis integer values from files, one file per axis,
// in the style of a SITL bridge.
type FileImuConfig struct {
	Gyro     AxisPathsConfig `json:"gyro"`
	Attitude AxisPathsConfig `json:"attitude"`
	// deg/s represented by one raw gyro unit
	GyroScale float64 `json:"gyroScale"`
}

type AxisPathsConfig struct {
	Roll  string `json:"roll"`
	Pitch string `json:"pitch"`
	Yaw   string `json:"yaw"`
}

// RcConfig selects where stick commands and mode switches come from.
type RcConfig struct {
	Virtual *VirtualRcConfig `json:"virtual,omitempty"`
}

type VirtualRcConfig struct {
	// initial per-axis stick command
	Command AxisInts `json:"command"`
}

// MixerConfig selects where the per-axis demands go. Exactly one
// sub-configuration must be set.
type MixerConfig struct {
	File *FileMixerConfig `json:"file,omitempty"`
	Log  *LogMixerConfig  `json:"log,omitempty"`
	Null *NullMixerConfig `json:"null,omitempty"`
}

// FileMixerConfig writes each axis demand to a file below Dir, atomically
// replaced every cycle it changes.
type FileMixerConfig struct {
	Dir string `json:"dir"`
}

type LogMixerConfig struct{}

type NullMixerConfig struct{}
