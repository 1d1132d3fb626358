package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/iksnae/eight-sleep/internal"
	"github.com/iksnae/eight-sleep/internal/export"
	"github.com/spf13/cobra"
)

var (
	format    string
	outputDir string
	exportFor string
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export sleep reports to file",
	Long: `Export the sleep report of each user to various formats (jsonl, md, yaml, json).

Reports are written to <out>/report_<user-id>.<ext>. Use --out - to write them
to stdout instead. Use --user to export a single side.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Create exporter before connecting
		exporter, err := export.NewExporter(format)
		if err != nil {
			return err
		}

		var snapshots []internal.UserSnapshot
		err = internal.ShowProgress(cmd.Context(), "Fetching sleep data", func(ctx context.Context) error {
			_, s, err := connectAndRefresh(ctx, exportFor)
			snapshots = s
			return err
		})
		if err != nil {
			return err
		}

		now := time.Now()
		if outputDir == "-" {
			for _, s := range snapshots {
				report := internal.BuildReport(s, now)
				if err := exporter.Export(&report, cmd.OutOrStdout()); err != nil {
					return fmt.Errorf("failed to export user %s: %w", s.UserID, err)
				}
			}
			return nil
		}

		// Ensure output directory exists
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}

		exported := 0
		for _, s := range snapshots {
			report := internal.BuildReport(s, now)
			path := filepath.Join(outputDir, fmt.Sprintf("report_%s.%s", s.UserID, exporter.Extension()))

			file, err := os.Create(path)
			if err != nil {
				internal.LogError("Failed to create file %s: %v", path, err)
				continue
			}
			if err := exporter.Export(&report, file); err != nil {
				_ = file.Close()
				internal.LogError("Failed to export user %s: %v", s.UserID, err)
				continue
			}
			if err := file.Close(); err != nil {
				internal.LogWarn("Failed to close file %s: %v", path, err)
			}
			exported++
		}

		if exported == 0 && len(snapshots) > 0 {
			return fmt.Errorf("export failed: no report written to %s", outputDir)
		}
		internal.PrintSuccess(fmt.Sprintf("Export complete: %d report(s) exported to %s", exported, outputDir))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&format, "format", "f", "jsonl", "Export format (jsonl, md, yaml, json)")
	exportCmd.Flags().StringVarP(&outputDir, "out", "o", "./exports", "Output directory, or - for stdout")
	exportCmd.Flags().StringVar(&exportFor, "user", "", "Export a single user by id")
}
