package profile

import (
	"github.com/acroloop/acroloop/internal/configuration"
	"github.com/acroloop/acroloop/internal/persistence"
	"github.com/acroloop/acroloop/internal/ui"
	"github.com/spf13/cobra"
)

var saveCmd = &cobra.Command{
	Use:   "save [name]",
	Short: "Save a snapshot of the active tuning profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		name := args[0]
		profile := loadActiveProfile()

		pers := persistence.NewPersistence(configuration.CurrentConfig.DbPath)
		if err = pers.Init(); err != nil {
			return err
		}
		if err = pers.SaveProfile(name, *profile); err != nil {
			return err
		}

		ui.Success("Saved profile snapshot '%s'", name)
		return nil
	},
}

func init() {
	Command.AddCommand(saveCmd)
}
