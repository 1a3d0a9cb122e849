package profile

import (
	"github.com/acroloop/acroloop/internal/configuration"
	"github.com/acroloop/acroloop/internal/pid"
	"github.com/acroloop/acroloop/internal/ui"
	"github.com/spf13/cobra"
)

var Command = &cobra.Command{
	Use:              "profile",
	Short:            "Tuning profile related commands",
	Long:             ``,
	TraverseChildren: true,
}

// loads and validates the configuration, then resolves the active tuning
// profile along its inheritance chain
func loadActiveProfile() *pid.TuningProfile {
	configPath := configuration.DetectAndReadConfigFile()
	ui.Info("Using configuration file at: %s", configPath)
	configuration.LoadConfig()
	if err := configuration.Validate(); err != nil {
		ui.Fatal(err.Error())
	}

	resolved, err := configuration.CurrentConfig.ResolveProfile(configuration.CurrentConfig.ActiveProfile)
	if err != nil {
		ui.Fatal("Unable to resolve active profile: %v", err)
	}
	return pid.ProfileFromConfig(resolved)
}
