package configuration

import "fmt"

// ProfileConfig is one tuning profile. Profiles can inherit from another
// profile via Extends; unset fields are taken from the base profile.
type ProfileConfig struct {
	ID      string `json:"id"`
	Extends string `json:"extends,omitempty"`

	// fixed-point per-axis gains
	Pid *PidGainsConfig `json:"pid,omitempty"`
	// floating-point per-axis gains
	PidFloat *PidFloatGainsConfig `json:"pidFloat,omitempty"`
	// fixed-point self-level gain triple
	Level *LevelConfig `json:"level,omitempty"`

	LevelAngle         *float64 `json:"levelAngle,omitempty"`
	LevelHorizon       *float64 `json:"levelHorizon,omitempty"`
	HorizonSensitivity *int     `json:"horizonSensitivity,omitempty"`

	PTermCutoffHz *float64 `json:"ptermCutoffHz,omitempty"`
	DTermCutoffHz *float64 `json:"dtermCutoffHz,omitempty"`
}

type PidGainsConfig struct {
	P AxisInts `json:"p"`
	I AxisInts `json:"i"`
	D AxisInts `json:"d"`
}

type PidFloatGainsConfig struct {
	P AxisFloats `json:"p"`
	I AxisFloats `json:"i"`
	D AxisFloats `json:"d"`
}

type LevelConfig struct {
	P int `json:"p"`
	I int `json:"i"`
	D int `json:"d"`
}

// FindProfile returns the profile with the given id.
func (c *Configuration) FindProfile(id string) (ProfileConfig, error) {
	for _, profile := range c.Profiles {
		if profile.ID == id {
			return profile, nil
		}
	}
	return ProfileConfig{}, fmt.Errorf("no such profile: %s", id)
}

// ResolveProfile resolves the profile with the given id including all values
// inherited through its Extends chain. Cycles are rejected by config
// validation before this is ever called, the depth guard is a backstop.
func (c *Configuration) ResolveProfile(id string) (ProfileConfig, error) {
	profile, err := c.FindProfile(id)
	if err != nil {
		return ProfileConfig{}, err
	}

	for depth := 0; profile.Extends != ""; depth++ {
		if depth > len(c.Profiles) {
			return ProfileConfig{}, fmt.Errorf("profile inheritance cycle at: %s", profile.ID)
		}
		base, err := c.FindProfile(profile.Extends)
		if err != nil {
			return ProfileConfig{}, err
		}
		profile = mergeProfiles(base, profile)
	}

	return profile, nil
}

// mergeProfiles overlays child on top of base, field by field.
func mergeProfiles(base ProfileConfig, child ProfileConfig) ProfileConfig {
	result := child
	result.Extends = base.Extends

	if result.Pid == nil {
		result.Pid = base.Pid
	}
	if result.PidFloat == nil {
		result.PidFloat = base.PidFloat
	}
	if result.Level == nil {
		result.Level = base.Level
	}
	if result.LevelAngle == nil {
		result.LevelAngle = base.LevelAngle
	}
	if result.LevelHorizon == nil {
		result.LevelHorizon = base.LevelHorizon
	}
	if result.HorizonSensitivity == nil {
		result.HorizonSensitivity = base.HorizonSensitivity
	}
	if result.PTermCutoffHz == nil {
		result.PTermCutoffHz = base.PTermCutoffHz
	}
	if result.DTermCutoffHz == nil {
		result.DTermCutoffHz = base.DTermCutoffHz
	}

	return result
}
