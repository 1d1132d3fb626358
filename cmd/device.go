package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/iksnae/eight-sleep/internal"
	"github.com/spf13/cobra"
)

var deviceCmd = &cobra.Command{
	Use:   "device",
	Short: "Show the device-wide state of the mattress",
	Long: `Show the state shared by both sides of the mattress: current and target
heating levels of each side, water and priming status.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		unit, err := cfg.TemperatureUnit()
		if err != nil {
			return err
		}
		client, err := connect(cmd.Context())
		if err != nil {
			return err
		}
		data, err := client.RefreshDevice(cmd.Context())
		if err != nil {
			return err
		}
		device, _ := client.Device()
		renderDevice(cmd.OutOrStdout(), device, data, unit, time.Now())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deviceCmd)
}

func renderDevice(w io.Writer, device internal.Device, data internal.DeviceData, unit internal.Unit, now time.Time) {
	fmt.Fprintln(w, reportHeaderStyle.Render("Device "+device.ID))
	field(w, "Cooling", yesNo(device.CanCool))
	field(w, "Adjustable base", yesNo(device.HasBase))

	side := func(name string, level, target *int, heating *bool) {
		fmt.Fprintln(w)
		fmt.Fprintln(w, sectionTitleStyle.Render(name+" side"))
		if level != nil {
			field(w, "Level", formatLevel(*level, unit))
		}
		if target != nil {
			field(w, "Target", formatLevel(*target, unit))
		}
		if heating != nil {
			field(w, "Heating", yesNo(*heating))
		}
	}
	side("Left", data.LeftHeatingLevel, data.LeftTargetHeatingLevel, data.LeftNowHeating)
	side("Right", data.RightHeatingLevel, data.RightTargetHeatingLevel, data.RightNowHeating)

	fmt.Fprintln(w)
	fmt.Fprintln(w, sectionTitleStyle.Render("Water"))
	if data.HasWater != nil {
		field(w, "Has water", yesNo(*data.HasWater))
	}
	if data.NeedsPriming != nil {
		field(w, "Needs priming", yesNo(*data.NeedsPriming))
	}
	if data.Priming != nil {
		field(w, "Priming", yesNo(*data.Priming))
	}
	if t, ok := internal.ParseAPITime(data.LastPrime); ok {
		field(w, "Last prime", humanize.RelTime(t, now, "ago", "from now"))
	}
}

// formatLevel shows a raw level with its temperature when it has one
func formatLevel(level int, unit internal.Unit) string {
	temp, ok := internal.RawToTemperature(level, unit)
	if !ok {
		return fmt.Sprintf("%d", level)
	}
	return fmt.Sprintf("%d (%.1f%s)", level, temp, unit.Symbol())
}
