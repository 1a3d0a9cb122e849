package configuration

import (
	"errors"
	"fmt"

	"github.com/acroloop/acroloop/internal/ui"
	"github.com/acroloop/acroloop/internal/util"
	"github.com/looplab/tarjan"
)

var validControllers = []string{"mwrewrite", "luxfloat"}

func Validate() error {
	return validateConfig(&CurrentConfig)
}

func validateConfig(config *Configuration) error {
	err := validateLoop(config)
	if err != nil {
		return err
	}
	err = validateProfiles(config)
	if err != nil {
		return err
	}
	err = validateImu(config)
	if err != nil {
		return err
	}
	return validateMixer(config)
}

func validateLoop(config *Configuration) error {
	if config.Loop.FrequencyHz <= 0 {
		return errors.New("loop: frequencyHz must be > 0")
	}
	if config.Loop.FrequencyHz > 8000 {
		return errors.New("loop: frequencyHz must be <= 8000")
	}
	if !util.ContainsString(validControllers, config.Loop.Controller) {
		return fmt.Errorf("loop: unknown controller '%s', use one of: mwrewrite | luxfloat", config.Loop.Controller)
	}
	if config.Loop.MaxInclination <= 0 {
		return errors.New("loop: maxInclination must be > 0")
	}
	if config.Loop.StickCenter <= 0 {
		return errors.New("loop: stickCenter must be > 0")
	}
	weights := config.Loop.PidWeights
	for _, value := range []int{weights.Roll, weights.Pitch, weights.Yaw} {
		if value < 0 || value > 100 {
			return errors.New("loop: pidWeights must be within 0..100")
		}
	}
	return nil
}

func validateProfiles(config *Configuration) error {
	graph := make(map[interface{}][]interface{})

	seen := map[string]bool{}
	for _, profile := range config.Profiles {
		if profile.ID == "" {
			return errors.New("profile without an id")
		}
		if seen[profile.ID] {
			return fmt.Errorf("profile %s: duplicate id", profile.ID)
		}
		seen[profile.ID] = true

		if profile.Extends != "" {
			if _, err := config.FindProfile(profile.Extends); err != nil {
				return fmt.Errorf("profile %s: extends unknown profile '%s'", profile.ID, profile.Extends)
			}
			graph[profile.ID] = []interface{}{profile.Extends}
		} else {
			graph[profile.ID] = []interface{}{}
		}

		if err := validateProfileValues(profile); err != nil {
			return err
		}
	}

	// detect inheritance cycles
	output := tarjan.Connections(graph)
	for _, component := range output {
		if len(component) > 1 {
			return fmt.Errorf("profile inheritance cycle detected: %v", component)
		}
	}

	if _, err := config.FindProfile(config.ActiveProfile); err != nil {
		return fmt.Errorf("activeProfile: %v", err)
	}

	resolved, err := config.ResolveProfile(config.ActiveProfile)
	if err != nil {
		return err
	}
	if resolved.Pid == nil || resolved.PidFloat == nil {
		return fmt.Errorf("profile %s: both pid and pidFloat gain sets are required", config.ActiveProfile)
	}

	return nil
}

func validateProfileValues(profile ProfileConfig) error {
	if profile.Pid != nil {
		for _, gains := range []AxisInts{profile.Pid.P, profile.Pid.I, profile.Pid.D} {
			for _, value := range []int{gains.Roll, gains.Pitch, gains.Yaw} {
				if value < 0 || value > 255 {
					return fmt.Errorf("profile %s: fixed-point gains must be within 0..255", profile.ID)
				}
			}
		}
	}
	if profile.Level != nil {
		for _, value := range []int{profile.Level.P, profile.Level.I, profile.Level.D} {
			if value < 0 || value > 255 {
				return fmt.Errorf("profile %s: level gains must be within 0..255", profile.ID)
			}
		}
	}
	if profile.HorizonSensitivity != nil {
		if *profile.HorizonSensitivity < 0 || *profile.HorizonSensitivity > 255 {
			return fmt.Errorf("profile %s: horizonSensitivity must be within 0..255", profile.ID)
		}
	}
	if profile.PTermCutoffHz != nil && *profile.PTermCutoffHz < 0 {
		return fmt.Errorf("profile %s: ptermCutoffHz must be >= 0", profile.ID)
	}
	if profile.DTermCutoffHz != nil && *profile.DTermCutoffHz < 0 {
		return fmt.Errorf("profile %s: dtermCutoffHz must be >= 0", profile.ID)
	}
	return nil
}

func validateImu(config *Configuration) error {
	subConfigs := 0
	if config.Imu.Virtual != nil {
		subConfigs++
	}
	if config.Imu.File != nil {
		subConfigs++
	}
	if subConfigs > 1 {
		return errors.New("imu: only one source type can be used")
	}
	if subConfigs <= 0 {
		ui.Warning("No imu source configured, falling back to a still virtual imu")
	}
	if config.Imu.File != nil {
		paths := config.Imu.File.Gyro
		if paths.Roll == "" || paths.Pitch == "" || paths.Yaw == "" {
			return errors.New("imu: file source needs a gyro path per axis")
		}
	}
	return nil
}

func validateMixer(config *Configuration) error {
	subConfigs := 0
	if config.Mixer.File != nil {
		subConfigs++
	}
	if config.Mixer.Log != nil {
		subConfigs++
	}
	if config.Mixer.Null != nil {
		subConfigs++
	}
	if subConfigs > 1 {
		return errors.New("mixer: only one mixer type can be used")
	}
	if subConfigs <= 0 {
		ui.Warning("No mixer configured, demands will be logged only")
	}
	if config.Mixer.File != nil && config.Mixer.File.Dir == "" {
		return errors.New("mixer: file mixer needs a dir")
	}
	return nil
}
