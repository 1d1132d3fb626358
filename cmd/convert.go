package cmd

import (
	"fmt"
	"math"
	"strconv"

	"github.com/iksnae/eight-sleep/internal"
	"github.com/spf13/cobra"
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert between heating levels and temperatures",
	Long: `Convert between the mattress's raw heating levels (-100 to 100) and
temperatures in the configured unit. No network access is needed.`,
}

var convertRawCmd = &cobra.Command{
	Use:   "raw <level>",
	Short: "Convert a raw heating level to a temperature",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid level %q: must be an integer", args[0])
		}
		unit, err := cfg.TemperatureUnit()
		if err != nil {
			return err
		}
		temp, ok := internal.RawToTemperature(raw, unit)
		if !ok {
			return fmt.Errorf("level %d is outside the heating range", raw)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%.1f%s\n", temp, unit.Symbol())
		return nil
	},
}

var convertTempCmd = &cobra.Command{
	Use:   "temp <degrees>",
	Short: "Convert a temperature to the nearest raw heating level",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		temp, err := strconv.ParseFloat(args[0], 64)
		if err != nil || math.IsNaN(temp) {
			return fmt.Errorf("invalid temperature %q: must be a number", args[0])
		}
		unit, err := cfg.TemperatureUnit()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d\n", internal.TemperatureToRaw(temp, unit))
		return nil
	},
}

func init() {
	convertCmd.AddCommand(convertRawCmd, convertTempCmd)
	rootCmd.AddCommand(convertCmd)
}
