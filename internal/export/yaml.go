package export

import (
	"fmt"
	"io"
	"time"

	"github.com/iksnae/eight-sleep/internal"
	"gopkg.in/yaml.v3"
)

// YAMLExporter exports reports in YAML format, headed by a comment naming
// the user and the generation time
type YAMLExporter struct{}

// Export exports a report to YAML format
func (e *YAMLExporter) Export(report *internal.UserReport, w io.Writer) error {
	if _, err := fmt.Fprintf(w, "# Sleep report for %s (%s), generated %s\n",
		report.Name, report.UserID, report.GeneratedAt.UTC().Format(time.RFC3339)); err != nil {
		return err
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(report); err != nil {
		_ = enc.Close()
		return fmt.Errorf("failed to encode report %s: %w", report.UserID, err)
	}
	return enc.Close()
}

// Extension returns the file extension for this format
func (e *YAMLExporter) Extension() string {
	return "yaml"
}
