package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/careweave/qre-analyzer/internal/model"
)

// WriteJSON writes the report to w as indented JSON. The field names and
// nesting mirror the report shape existing consumers already parse.
func WriteJSON(w io.Writer, report model.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}

// ExportFile writes the report as JSON to the given path, creating or
// truncating the file.
func ExportFile(path string, report model.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := WriteJSON(f, report); err != nil {
		return err
	}
	return nil
}
