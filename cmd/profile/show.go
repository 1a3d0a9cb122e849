package profile

import (
	"bytes"
	"fmt"

	"github.com/acroloop/acroloop/cmd/global"
	"github.com/acroloop/acroloop/internal/configuration"
	"github.com/acroloop/acroloop/internal/pid"
	"github.com/acroloop/acroloop/internal/ui"
	"github.com/mgutz/ansi"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the active tuning profile to console",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		profile := loadActiveProfile()

		ui.Printfln("Active profile: %s", configuration.CurrentConfig.ActiveProfile)
		printProfileTable(profile)

		ui.Printfln("Level gains: P %d I %d D %d", profile.LevelP8, profile.LevelI8, profile.LevelD8)
		ui.Printfln("Level angle: %.1f  Level horizon: %.1f  Horizon sensitivity: %d",
			profile.LevelAngle, profile.LevelHorizon, profile.HorizonSensitivity)
		if profile.PTermCutoffHz > 0 {
			ui.Printfln("P term lowpass: %.1f Hz", profile.PTermCutoffHz)
		}
		if profile.DTermCutoffHz > 0 {
			ui.Printfln("D term lowpass: %.1f Hz", profile.DTermCutoffHz)
		}

		return nil
	},
}

func printProfileTable(profile *pid.TuningProfile) {
	rows := make([][]string, 0, pid.AxisCount)
	for _, axis := range pid.Axes {
		rows = append(rows, []string{
			axis.String(),
			fmt.Sprintf("%d", profile.P8[axis]),
			fmt.Sprintf("%d", profile.I8[axis]),
			fmt.Sprintf("%d", profile.D8[axis]),
			fmt.Sprintf("%.3f", profile.Pf[axis]),
			fmt.Sprintf("%.3f", profile.If[axis]),
			fmt.Sprintf("%.3f", profile.Df[axis]),
		})
	}

	tab := table.Table{
		Headers: []string{"Axis", "P8", "I8", "D8", "Pf", "If", "Df"},
		Rows:    rows,
	}
	var buf bytes.Buffer
	tableErr := tab.WriteTable(&buf, &table.Config{
		ShowIndex:       false,
		Color:           !global.NoColor,
		AlternateColors: true,
		TitleColorCode:  ansi.ColorCode("white+buf"),
		AltColorCodes: []string{
			ansi.ColorCode("white"),
			ansi.ColorCode("white:236"),
		},
	})
	if tableErr != nil {
		panic(tableErr)
	}
	ui.Printfln(buf.String())
}

func init() {
	Command.AddCommand(showCmd)
}
