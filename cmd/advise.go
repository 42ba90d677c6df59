package cmd

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"go-plantcare/advisory"
)

// newSeasonCmd prints the care panel for a month.
func newSeasonCmd(a *app) *cobra.Command {
	var month int
	var all bool
	cmd := &cobra.Command{
		Use:   "season",
		Short: "Print the seasonal care panel",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if all {
				return printBands(cmd.OutOrStdout())
			}
			if cmd.Flags().Changed("month") {
				if err := advisory.ValidateMonth(month); err != nil {
					return err
				}
			}
			panel, err := a.advisor.CarePanel(month)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Month:        %d (%s)\n", panel.Month, panel.Season)
			fmt.Fprintf(out, "Phase:        %s\n", panel.Phase)
			fmt.Fprintf(out, "Light:        %s\n", panel.LightHours)
			fmt.Fprintf(out, "Temperature:  %s\n", panel.TemperatureRange)
			fmt.Fprintf(out, "Feeding:      %s\n", panel.Feeding)
			fmt.Fprintf(out, "Watering:     %s\n", panel.Watering)
			fmt.Fprintf(out, "Repotting:    %s\n", panel.Repotting)
			return nil
		},
	}
	cmd.Flags().IntVarP(&month, "month", "m", 0, "calendar month 1-12 (default: current month)")
	cmd.Flags().BoolVar(&all, "all", false, "print the table of all four seasons")
	cmd.MarkFlagsMutuallyExclusive("all", "month")
	return cmd
}

// printBands writes the season table.
func printBands(out io.Writer) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEASON\tPHASE\tLIGHT (H)\tTEMP (°C)\tMULTIPLIER")
	for _, b := range advisory.Bands() {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", b.Season, b.Phase, b.LightHours, b.Temperature, formatFloat(b.Multiplier))
	}
	return w.Flush()
}

// newWaterCmd runs the watering calculator.
func newWaterCmd(a *app) *cobra.Command {
	defaults := advisory.DefaultInputs()
	var temp, pot, factor string
	var month int

	cmd := &cobra.Command{
		Use:   "water",
		Short: "Compute the recommended daily watering volume",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("month") {
				if err := advisory.ValidateMonth(month); err != nil {
					return err
				}
			}
			in, err := advisory.ParseInputs(temp, pot, factor)
			if err != nil {
				return err
			}
			volume, resolved, err := a.advisor.Watering(in, month)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d ml/day (month %d)\n", volume, resolved)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&temp, "temp", formatFloat(defaults.TemperatureC), "ambient temperature, °C")
	flags.StringVar(&pot, "pot", formatFloat(defaults.PotVolumeMl), "pot volume, ml")
	flags.StringVar(&factor, "factor", formatFloat(defaults.PlantFactor), "plant size factor")
	flags.IntVarP(&month, "month", "m", 0, "calendar month 1-12 (default: current month)")
	return cmd
}

// formatFloat renders v without trailing zeros.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
