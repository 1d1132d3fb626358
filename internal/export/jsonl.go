package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/iksnae/eight-sleep/internal"
)

// JSONLExporter exports one line per scored trend day, for feeding
// spreadsheets and log pipelines
type JSONLExporter struct{}

// Export exports a report to JSONL format
func (e *JSONLExporter) Export(report *internal.UserReport, w io.Writer) error {
	enc := json.NewEncoder(w)

	for _, day := range report.RecentScores {
		obj := map[string]interface{}{
			"user_id": report.UserID,
			"side":    report.Side,
			"day":     day.Day,
			"score":   day.Score,
		}
		if err := enc.Encode(obj); err != nil {
			return fmt.Errorf("failed to encode day %s: %w", day.Day, err)
		}
	}

	return nil
}

// Extension returns the file extension for this format
func (e *JSONLExporter) Extension() string {
	return "jsonl"
}
