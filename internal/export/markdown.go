package export

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/iksnae/eight-sleep/internal"
)

// MarkdownExporter exports reports in Markdown format
type MarkdownExporter struct{}

// Export exports a report to Markdown format
func (e *MarkdownExporter) Export(report *internal.UserReport, w io.Writer) error {
	_, _ = fmt.Fprintf(w, "# Sleep report: %s\n\n", escapeMarkdown(report.Name))

	_, _ = fmt.Fprintf(w, "**User:** %s  \n", report.UserID)
	_, _ = fmt.Fprintf(w, "**Side:** %s  \n", report.Side)
	if report.BedState != "" {
		_, _ = fmt.Fprintf(w, "**Bed state:** %s  \n", report.BedState)
	}
	_, _ = fmt.Fprintf(w, "**In bed:** %s  \n", yesNo(report.InBed))
	if report.CurrentSideTemp != nil {
		_, _ = fmt.Fprintf(w, "**Side temperature:** %.1f °C  \n", *report.CurrentSideTemp)
	}
	_, _ = fmt.Fprintf(w, "**Generated:** %s\n\n", report.GeneratedAt.Format(time.RFC3339))

	_, _ = fmt.Fprintf(w, "---\n\n")
	_, _ = fmt.Fprintf(w, "## Current session\n\n")
	writeSummary(w, report.Current)

	if report.LastNight != nil {
		_, _ = fmt.Fprintf(w, "## Last night\n\n")
		writeSummary(w, *report.LastNight)
	}

	if report.NextAlarm != nil {
		_, _ = fmt.Fprintf(w, "## Next alarm\n\n")
		when := "not scheduled"
		if report.NextAlarm.Time != nil {
			when = report.NextAlarm.Time.Format(time.RFC3339)
		}
		_, _ = fmt.Fprintf(w, "- %s (%s, %s)\n\n", when, report.NextAlarm.AlarmID, enabledText(report.NextAlarm.Enabled))
	}

	if len(report.RecentScores) > 0 {
		_, _ = fmt.Fprintf(w, "## Recent scores\n\n")
		_, _ = fmt.Fprintf(w, "| Day | Score |\n|-----|-------|\n")
		for _, d := range report.RecentScores {
			_, _ = fmt.Fprintf(w, "| %s | %d |\n", d.Day, d.Score)
		}
		_, _ = fmt.Fprintln(w)
	}

	return nil
}

func writeSummary(w io.Writer, s internal.SessionSummary) {
	var rows [][2]string
	add := func(name, value string) { rows = append(rows, [2]string{name, value}) }

	if s.Date != nil {
		add("Started", s.Date.Format(time.RFC3339))
	}
	if s.Processing {
		add("Processing", "yes")
	}
	if s.Stage != nil {
		add("Stage", *s.Stage)
	}
	if s.Score != nil {
		add("Score", fmt.Sprintf("%d", *s.Score))
	}
	if s.TimeSlept != nil {
		add("Time slept", (time.Duration(*s.TimeSlept) * time.Second).String())
	}
	if s.HeartRate != nil {
		add("Heart rate", fmt.Sprintf("%.0f bpm", *s.HeartRate))
	}
	if s.RespiratoryRate != nil {
		add("Respiratory rate", fmt.Sprintf("%.1f", *s.RespiratoryRate))
	}
	if s.HRV != nil {
		add("HRV", fmt.Sprintf("%.1f", *s.HRV))
	}
	if s.BedTemp != nil {
		add("Bed temperature", fmt.Sprintf("%.1f °C", *s.BedTemp))
	}
	if s.RoomTemp != nil {
		add("Room temperature", fmt.Sprintf("%.1f °C", *s.RoomTemp))
	}
	if s.TossAndTurns != nil {
		add("Toss and turns", fmt.Sprintf("%d", *s.TossAndTurns))
	}

	stages := make([]string, 0, len(s.Breakdown))
	for stage := range s.Breakdown {
		stages = append(stages, stage)
	}
	sort.Strings(stages)
	for _, stage := range stages {
		add(strings.ToUpper(stage[:1])+stage[1:], (time.Duration(s.Breakdown[stage]) * time.Second).String())
	}

	if len(rows) == 0 {
		_, _ = fmt.Fprintf(w, "_No data_\n\n")
		return
	}
	_, _ = fmt.Fprintf(w, "| Metric | Value |\n|--------|-------|\n")
	for _, r := range rows {
		_, _ = fmt.Fprintf(w, "| %s | %s |\n", r[0], r[1])
	}
	_, _ = fmt.Fprintln(w)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func enabledText(b bool) string {
	if b {
		return "enabled"
	}
	return "disabled"
}

// escapeMarkdown escapes markdown emphasis in free text such as names
func escapeMarkdown(text string) string {
	text = strings.ReplaceAll(text, "**", "\\*\\*")
	text = strings.ReplaceAll(text, "__", "\\_\\_")
	return text
}

// Extension returns the file extension for this format
func (e *MarkdownExporter) Extension() string {
	return "md"
}
