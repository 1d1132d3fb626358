package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/iksnae/eight-sleep/internal"
)

// JSONExporter exports reports as pretty-printed JSON
type JSONExporter struct{}

// Export exports a report to JSON format
func (e *JSONExporter) Export(report *internal.UserReport, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("failed to encode report %s: %w", report.UserID, err)
	}
	return nil
}

// Extension returns the file extension for this format
func (e *JSONExporter) Extension() string {
	return "json"
}
