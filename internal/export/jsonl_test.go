package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/iksnae/eight-sleep/internal"
)

func TestJSONLExporter_Export(t *testing.T) {
	tests := []struct {
		name      string
		report    *internal.UserReport
		wantLines int
		want      []string
	}{
		{
			name:      "two scored days",
			report:    internal.CreateTestReport("user-1"),
			wantLines: 2,
			want:      []string{`"score":81`, `"score":74`, `"user_id":"user-1"`},
		},
		{
			name:      "no scores",
			report:    &internal.UserReport{UserID: "user-2", Side: internal.SideRight},
			wantLines: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			exporter := &JSONLExporter{}

			if err := exporter.Export(tt.report, &buf); err != nil {
				t.Fatalf("JSONLExporter.Export() error = %v", err)
			}

			output := buf.String()
			if tt.wantLines == 0 {
				if output != "" {
					t.Errorf("Report without scores should produce empty output, got: %q", output)
				}
				return
			}

			lines := strings.Split(strings.TrimSpace(output), "\n")
			if len(lines) != tt.wantLines {
				t.Fatalf("got %d lines, want %d\nOutput: %s", len(lines), tt.wantLines, output)
			}
			for i, line := range lines {
				var day map[string]interface{}
				if err := json.Unmarshal([]byte(line), &day); err != nil {
					t.Errorf("Line %d is not valid JSON: %v", i, err)
					continue
				}
				for _, field := range []string{"user_id", "side", "day", "score"} {
					if _, ok := day[field]; !ok {
						t.Errorf("Line %d missing %q field", i, field)
					}
				}
			}
			for _, want := range tt.want {
				if !strings.Contains(output, want) {
					t.Errorf("Output should contain %q", want)
				}
			}
		})
	}
}

func TestJSONLExporter_Extension(t *testing.T) {
	exporter := &JSONLExporter{}
	if got := exporter.Extension(); got != "jsonl" {
		t.Errorf("JSONLExporter.Extension() = %v, want jsonl", got)
	}
}
