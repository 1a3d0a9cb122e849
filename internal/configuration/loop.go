package configuration

// LoopConfig configures the rate control loop itself.
type LoopConfig struct {
	// target loop frequency. The laws are fed the measured cycle time, not
	// this value, so jitter is corrected per cycle.
	FrequencyHz int `json:"frequencyHz"`
	// active control law variant, "mwrewrite" or "luxfloat"
	Controller string `json:"controller"`
	// maximum allowed tilt angle in decidegrees
	MaxInclination int `json:"maxInclination"`
	// rc channel midpoint used for stick deflection
	StickCenter int `json:"stickCenter"`
	// size of the rolling window used to smooth gyro rates for telemetry
	GyroWindowSize int `json:"gyroWindowSize"`
	// per-axis percentage applied to the P and D terms, 100 = no reduction.
	// All-zero means unconfigured and is treated as 100 on every axis.
	PidWeights AxisInts `json:"pidWeights"`
}

type ApiConfig struct {
	Enabled bool   `json:"enabled"`
	Host    string `json:"host"`
	Port    int    `json:"port"`
}

type StatisticsConfig struct {
	Enabled bool `json:"enabled"`
	Port    int  `json:"port"`
}
