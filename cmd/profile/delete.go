package profile

import (
	"github.com/acroloop/acroloop/internal/configuration"
	"github.com/acroloop/acroloop/internal/persistence"
	"github.com/acroloop/acroloop/internal/ui"
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete [name]",
	Short: "Delete a saved tuning profile snapshot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		name := args[0]

		configPath := configuration.DetectAndReadConfigFile()
		ui.Info("Using configuration file at: %s", configPath)
		configuration.LoadConfig()

		pers := persistence.NewPersistence(configuration.CurrentConfig.DbPath)
		if err = pers.DeleteProfile(name); err != nil {
			return err
		}

		ui.Success("Deleted profile snapshot '%s'", name)
		return nil
	},
}

func init() {
	Command.AddCommand(deleteCmd)
}
