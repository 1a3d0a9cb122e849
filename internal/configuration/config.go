package configuration

import (
	"os"

	"github.com/acroloop/acroloop/internal/ui"
	"github.com/go-viper/mapstructure/v2"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

type Configuration struct {
	DbPath string `json:"dbPath"`

	Loop LoopConfig `json:"loop"`

	Profiles      []ProfileConfig `json:"profiles"`
	ActiveProfile string          `json:"activeProfile"`
	Rates         AxisInts        `json:"rates"`

	Imu   ImuConfig   `json:"imu"`
	Rc    RcConfig    `json:"rc"`
	Mixer MixerConfig `json:"mixer"`

	Api        ApiConfig        `json:"api"`
	Statistics StatisticsConfig `json:"statistics"`
}

var CurrentConfig Configuration

// InitConfig reads in config file and ENV variables if set.
func InitConfig(cfgFile string) {
	viper.SetConfigName("acroloop")

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			ui.Error("Couldn't detect home directory: %v", err)
			os.Exit(1)
		}

		viper.AddConfigPath(".")
		viper.AddConfigPath(home)
		viper.AddConfigPath("/etc/acroloop/")
	}

	viper.AutomaticEnv() // read in environment variables that match

	setDefaultValues()
}

func setDefaultValues() {
	viper.SetDefault("dbpath", "/etc/acroloop/acroloop.db")

	viper.SetDefault("loop.frequencyHz", 500)
	viper.SetDefault("loop.controller", "mwrewrite")
	viper.SetDefault("loop.maxInclination", 500)
	viper.SetDefault("loop.stickCenter", 1500)
	viper.SetDefault("loop.gyroWindowSize", 8)
	viper.SetDefault("loop.pidWeights", map[string]int{"roll": 100, "pitch": 100, "yaw": 100})

	viper.SetDefault("activeProfile", "default")
	viper.SetDefault("profiles", []ProfileConfig{})

	viper.SetDefault("api.enabled", false)
	viper.SetDefault("api.host", "localhost")
	viper.SetDefault("api.port", 9402)

	viper.SetDefault("statistics.enabled", false)
	viper.SetDefault("statistics.port", 9401)
}

// DetectAndReadConfigFile detects the path of the first existing config file
func DetectAndReadConfigFile() string {
	if err := viper.ReadInConfig(); err != nil {
		// config file is required, so we fail here
		ui.Fatal("Error reading config file, %s", err)
	}
	// this is only populated _after_ ReadInConfig()
	return GetFilePath()
}

// GetFilePath this is only populated _after_ viper.ReadInConfig()
func GetFilePath() string {
	return viper.ConfigFileUsed()
}

func LoadConfig() {
	// load default configuration values
	err := viper.Unmarshal(
		&CurrentConfig,
		viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
			axisValuesHookFunc(),
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)),
	)
	if err != nil {
		ui.Fatal("unable to decode into struct, %v", err)
	}
}
