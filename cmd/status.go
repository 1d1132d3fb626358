package cmd

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/iksnae/eight-sleep/internal"
	"github.com/spf13/cobra"
)

var (
	// Styles for the status command
	reportHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("212")).
				Padding(0, 1)

	sectionTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("62"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243")).
			Width(18)

	idStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Italic(true)

	scoreStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)
)

var statusCmd = &cobra.Command{
	Use:   "status [user-id]",
	Short: "Show the sleep report of every side",
	Long: `Refresh and display the sleep report of each user on the mattress:
bed state, presence, the current and previous sleep session, biometrics,
the next alarm and recent sleep scores.

Pass a user id to report on a single side. Use 'eight-sleep users' to list ids.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		userID := ""
		if len(args) == 1 {
			userID = args[0]
		}
		unit, err := cfg.TemperatureUnit()
		if err != nil {
			return err
		}

		_, snapshots, err := connectAndRefresh(cmd.Context(), userID)
		if err != nil {
			return err
		}

		now := time.Now()
		out := cmd.OutOrStdout()
		for i, s := range snapshots {
			if i > 0 {
				fmt.Fprintln(out)
			}
			renderReport(out, internal.BuildReport(s, now), unit, now)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func renderReport(w io.Writer, r internal.UserReport, unit internal.Unit, now time.Time) {
	fmt.Fprintln(w, reportHeaderStyle.Render(fmt.Sprintf("%s (%s side)", r.Name, r.Side)))
	fmt.Fprintln(w, idStyle.Render(r.UserID))

	field(w, "Bed state", string(r.BedState))
	field(w, "In bed", yesNo(r.InBed))
	if r.CurrentSideTemp != nil {
		field(w, "Side temperature", formatTemp(*r.CurrentSideTemp, unit))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, sectionTitleStyle.Render("Current session"))
	renderSummary(w, r.Current, unit, now)

	if r.LastNight != nil {
		fmt.Fprintln(w)
		fmt.Fprintln(w, sectionTitleStyle.Render("Last night"))
		renderSummary(w, *r.LastNight, unit, now)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, sectionTitleStyle.Render("Next alarm"))
	switch {
	case r.NextAlarm == nil:
		field(w, "Alarm", "none")
	case r.NextAlarm.Time == nil:
		field(w, "Alarm", fmt.Sprintf("%s (%s)", r.NextAlarm.AlarmID, enabledLabel(r.NextAlarm.Enabled)))
	default:
		at := *r.NextAlarm.Time
		field(w, "Alarm", fmt.Sprintf("%s, %s (%s)",
			at.In(now.Location()).Format("Mon 15:04"),
			humanize.RelTime(at, now, "ago", "from now"),
			enabledLabel(r.NextAlarm.Enabled)))
	}

	if len(r.RecentScores) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, sectionTitleStyle.Render("Recent scores"))
		for _, d := range r.RecentScores {
			field(w, d.Day, scoreStyle.Render(fmt.Sprintf("%d", d.Score)))
		}
	}
}

func renderSummary(w io.Writer, s internal.SessionSummary, unit internal.Unit, now time.Time) {
	if s.Date == nil && s.Score == nil {
		field(w, "Session", "no data")
		return
	}
	if s.Date != nil {
		field(w, "Started", fmt.Sprintf("%s (%s)",
			s.Date.In(now.Location()).Format("2006-01-02 15:04"),
			humanize.RelTime(*s.Date, now, "ago", "from now")))
	}
	if s.Processing {
		field(w, "Processing", "yes")
	}
	if s.Stage != nil {
		field(w, "Stage", *s.Stage)
	}
	if s.Score != nil {
		field(w, "Score", scoreStyle.Render(fmt.Sprintf("%d", *s.Score)))
	}
	if s.TimeSlept != nil {
		field(w, "Time slept", formatSeconds(*s.TimeSlept))
	}
	if len(s.Breakdown) > 0 {
		field(w, "Breakdown", formatBreakdown(s.Breakdown))
	}
	if s.HeartRate != nil {
		field(w, "Heart rate", fmt.Sprintf("%.0f bpm", *s.HeartRate))
	}
	if s.RespiratoryRate != nil {
		field(w, "Respiratory rate", fmt.Sprintf("%.1f /min", *s.RespiratoryRate))
	}
	if s.HRV != nil {
		field(w, "HRV", fmt.Sprintf("%.1f ms", *s.HRV))
	}
	if s.BedTemp != nil {
		field(w, "Bed temperature", formatTemp(*s.BedTemp, unit))
	}
	if s.RoomTemp != nil {
		field(w, "Room temperature", formatTemp(*s.RoomTemp, unit))
	}
	if s.TossAndTurns != nil {
		field(w, "Toss and turns", humanize.Comma(int64(*s.TossAndTurns)))
	}
}

func field(w io.Writer, label, value string) {
	fmt.Fprintf(w, "  %s %s\n", labelStyle.Render(label), value)
}

// formatTemp renders a Celsius reading in unit
func formatTemp(c float64, unit internal.Unit) string {
	if unit == internal.Fahrenheit {
		c = internal.CelsiusToFahrenheit(c)
	}
	return fmt.Sprintf("%.1f%s", c, unit.Symbol())
}

func formatSeconds(seconds int) string {
	d := time.Duration(seconds) * time.Second
	return fmt.Sprintf("%dh%02dm", int(d.Hours()), int(d.Minutes())%60)
}

func formatBreakdown(b map[string]int) string {
	stages := make([]string, 0, len(b))
	for stage := range b {
		stages = append(stages, stage)
	}
	sort.Strings(stages)
	parts := make([]string, 0, len(stages))
	for _, stage := range stages {
		parts = append(parts, fmt.Sprintf("%s %s", stage, formatSeconds(b[stage])))
	}
	return strings.Join(parts, ", ")
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func enabledLabel(b bool) string {
	if b {
		return "enabled"
	}
	return "disabled"
}
