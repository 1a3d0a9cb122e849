package profile

import (
	"github.com/acroloop/acroloop/internal/configuration"
	"github.com/acroloop/acroloop/internal/persistence"
	"github.com/acroloop/acroloop/internal/ui"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all saved tuning profile snapshots",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		configPath := configuration.DetectAndReadConfigFile()
		ui.Info("Using configuration file at: %s", configPath)
		configuration.LoadConfig()

		pers := persistence.NewPersistence(configuration.CurrentConfig.DbPath)
		names, err := pers.ListProfiles()
		if err != nil {
			return err
		}
		if len(names) == 0 {
			ui.Info("No profile snapshots saved")
			return nil
		}
		for _, name := range names {
			ui.Printfln("%s", name)
		}
		return nil
	},
}

func init() {
	Command.AddCommand(listCmd)
}
