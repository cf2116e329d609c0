package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/careweave/qre-analyzer/internal/config"
	"github.com/careweave/qre-analyzer/internal/model"
	"github.com/careweave/qre-analyzer/internal/qre"
	"github.com/careweave/qre-analyzer/internal/report"
	"github.com/careweave/qre-analyzer/internal/storage"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	analyzeCmd := &cobra.Command{
		Use:   "analyze [files...]",
		Short: "Validate X12 278 inquiry files against QRE requirements",
		Long: `Validate one or more X12 278 EDI files against Availity QRE requirements.

Examples:
  # Analyze a single file
  qre analyze sample-278-inquiry.edi

  # Analyze every EDI file in a directory
  qre analyze ~/edi/outbound/*.edi

  # Emit the report as JSON instead of the console summary
  qre analyze --json sample-278-inquiry.edi

  # Export the JSON report to a file as well
  qre analyze --output report.json sample-278-inquiry.edi`,
		Args: cobra.MinimumNArgs(1),
		RunE: runAnalyze,
	}

	analyzeCmd.Flags().Bool("json", false, "Write the report as JSON to stdout")
	analyzeCmd.Flags().StringP("output", "o", "", "Export the JSON report to this path")
	analyzeCmd.Flags().Bool("no-store", false, "Skip recording the run in the analysis history")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")
	outputPath, _ := cmd.Flags().GetString("output")
	noStore, _ := cmd.Flags().GetBool("no-store")

	cfg := config.FromViper(viper.GetViper())
	if outputPath == "" {
		outputPath = cfg.Output.Path
	}

	// Expand globs and collect all files
	var allFiles []string
	for _, pattern := range args {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		if len(matches) == 0 {
			// If no glob matches, treat the pattern as a direct path so
			// missing files still produce a SYS001 report.
			allFiles = append(allFiles, pattern)
		} else {
			allFiles = append(allFiles, matches...)
		}
	}

	var store *storage.SQLiteStore
	if !noStore {
		var err error
		store, err = storage.NewSQLiteStore(cfg.Storage.Path)
		if err != nil {
			slog.Warn("Analysis history unavailable", "error", err)
		} else {
			defer func() { _ = store.Close() }()
		}
	}

	var bar *progressbar.ProgressBar
	if len(allFiles) > 1 && !asJSON {
		bar = progressbar.NewOptions(len(allFiles),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWidth(40),
			progressbar.OptionSetDescription("[cyan][bold]Analyzing files...[reset]"),
		)
	}

	analyzer := qre.NewAnalyzer(cfg)
	ctx := cmd.Context()

	invalidCount := 0
	for _, filePath := range allFiles {
		rpt := analyzer.AnalyzeFile(filePath)
		if !rpt.IsValid {
			invalidCount++
		}

		if err := emitReport(rpt, asJSON, outputPath); err != nil {
			return err
		}

		if store != nil {
			if _, err := store.SaveReport(ctx, rpt); err != nil {
				slog.Warn("Failed to record analysis run",
					"file", filePath,
					"error", err)
			}
		}

		if bar != nil {
			_ = bar.Add(1)
		}
	}

	if invalidCount > 0 {
		return fmt.Errorf("%d of %d files failed validation", invalidCount, len(allFiles))
	}
	return nil
}

func emitReport(rpt model.Report, asJSON bool, outputPath string) error {
	if asJSON {
		if err := report.WriteJSON(os.Stdout, rpt); err != nil {
			return err
		}
	} else {
		report.Render(os.Stdout, rpt)
	}

	if outputPath != "" {
		if err := report.ExportFile(outputPath, rpt); err != nil {
			return err
		}
		slog.Info("Report exported", "path", outputPath)
	}
	return nil
}
