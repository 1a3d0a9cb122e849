package cmd

import (
	"bytes"
	"fmt"

	"github.com/acroloop/acroloop/cmd/global"
	"github.com/acroloop/acroloop/internal/configuration"
	"github.com/acroloop/acroloop/internal/pid"
	"github.com/acroloop/acroloop/internal/ui"
	"github.com/acroloop/acroloop/internal/util"
	"github.com/guptarohit/asciigraph"
	"github.com/mgutz/ansi"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"
)

var (
	simulateCycles  int
	simulateCommand int
)

// first-order vehicle model parameters: the achieved rate approaches
// demand * simVehicleGain with time constant simVehicleTau
const (
	simVehicleGain = 1.0
	simVehicleTau  = 0.08
	// raw gyro units per deg/s of the simulated gyro
	simGyroScale = 4.0
	// simulated cycle time, 500 Hz loop
	simCycleTimeUs = 2000
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run an offline closed-loop step response of both control laws",
	Long: `Runs a roll-axis step response against a first-order vehicle model,
once per control law, without hardware or wall-clock timing.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		setupUi()

		configPath := configuration.DetectAndReadConfigFile()
		ui.Info("Using configuration file at: %s", configPath)
		configuration.LoadConfig()
		if err = configuration.Validate(); err != nil {
			ui.Fatal(err.Error())
		}

		resolved, err := configuration.CurrentConfig.ResolveProfile(configuration.CurrentConfig.ActiveProfile)
		if err != nil {
			return err
		}
		profile := pid.ProfileFromConfig(resolved)
		rates := pid.RatesFromConfig(configuration.CurrentConfig.Rates)

		rows := make([][]string, 0, len(pid.ControllerTypes))
		for _, controllerType := range pid.ControllerTypes {
			result := runStepResponse(controllerType, profile, rates)

			ui.Printfln("")
			ui.Printfln("Step response (%s), achieved roll rate in deg/s:", controllerType)
			graph := asciigraph.Plot(result.rateSeries, asciigraph.Height(15), asciigraph.Width(100),
				asciigraph.Caption(fmt.Sprintf("rate / cycle (%d cycles at %d us)", simulateCycles, simCycleTimeUs)))
			ui.Printfln(graph)

			rows = append(rows, []string{
				string(controllerType),
				fmt.Sprintf("%.1f", result.finalRate),
				fmt.Sprintf("%.1f", util.Avg(result.rateSeries)),
				fmt.Sprintf("%.1f", result.peakRate),
				fmt.Sprintf("%d", result.finalDemand),
			})
		}

		tab := table.Table{
			Headers: []string{"Controller", "Final rate", "Avg rate", "Peak rate", "Final demand"},
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
		ui.Printfln("")
		ui.Printfln(buf.String())

		return nil
	},
}

type stepResponse struct {
	rateSeries  []float64
	finalRate   float64
	peakRate    float64
	finalDemand int32
}

// runStepResponse closes the loop between one control law and a first-order
// vehicle model: the demand produced in one cycle moves the rate the law
// sees in the next.
func runStepResponse(controllerType pid.ControllerType, profile *pid.TuningProfile, rateConfig pid.RateConfig) stepResponse {
	selector := pid.NewSelector()
	if err := selector.Select(controllerType); err != nil {
		ui.Fatal(err.Error())
	}

	timing := pid.Timing(simCycleTimeUs)
	stickCenter := configuration.CurrentConfig.Loop.StickCenter

	result := stepResponse{
		rateSeries: make([]float64, 0, simulateCycles),
	}

	rate := 0.0
	for cycle := 0; cycle < simulateCycles; cycle++ {
		in := &pid.CycleInput{
			Profile:        profile,
			Rates:          rateConfig,
			MaxInclination: configuration.CurrentConfig.Loop.MaxInclination,
			StickCenter:    stickCenter,
			Command:        [pid.AxisCount]int{simulateCommand, 0, 0},
			Stick:          [pid.AxisCount]int{stickCenter, stickCenter, stickCenter},
			GyroRaw:        [pid.AxisCount]int32{int32(rate * simGyroScale), 0, 0},
			GyroRate:       [pid.AxisCount]float64{rate, 0, 0},
			Weights:        [pid.AxisCount]uint8{100, 100, 100},
			Timing:         timing,
		}
		output := selector.Compute(in)

		demand := float64(output.Demand[pid.Roll])
		rate += (demand*simVehicleGain - rate) * timing.Dt / simVehicleTau

		result.rateSeries = append(result.rateSeries, rate)
		result.finalRate = rate
		result.finalDemand = output.Demand[pid.Roll]
		if rate > result.peakRate {
			result.peakRate = rate
		}
	}

	return result
}

func init() {
	simulateCmd.Flags().IntVarP(&simulateCycles, "cycles", "n", 400, "Number of control cycles to simulate")
	simulateCmd.Flags().IntVarP(&simulateCommand, "command", "s", 200, "Roll command step input")
	rootCmd.AddCommand(simulateCmd)
}
