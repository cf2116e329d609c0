package qre

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/careweave/qre-analyzer/internal/config"
	"github.com/careweave/qre-analyzer/internal/model"
	"github.com/careweave/qre-analyzer/internal/x12"
)

// Analyzer runs a full analysis of one transaction file: segment
// extraction, rule evaluation, and report assembly.
type Analyzer struct {
	cfg       config.Config
	validator *Validator
}

// NewAnalyzer creates an analyzer for the given configuration. The
// configuration is never mutated, so one Analyzer may be reused across
// files and across goroutines.
func NewAnalyzer(cfg config.Config) *Analyzer {
	return &Analyzer{
		cfg:       cfg,
		validator: NewValidator(cfg),
	}
}

// AnalyzeFile analyzes the X12 278 file at path. A file that cannot be
// read yields a report with a single SYS001 error rather than a Go error;
// validation findings never fail the call either. The returned report is
// the complete outcome.
func (a *Analyzer) AnalyzeFile(path string) model.Report {
	f, err := os.Open(path)
	if err != nil {
		return a.errorReport(path, fmt.Errorf("failed to read file: %w", err))
	}
	defer func() { _ = f.Close() }()

	return a.Analyze(path, f)
}

// Analyze analyzes raw transaction text from reader, attributing the
// report to path.
func (a *Analyzer) Analyze(path string, reader io.Reader) model.Report {
	content, err := io.ReadAll(reader)
	if err != nil {
		return a.errorReport(path, fmt.Errorf("failed to read file: %w", err))
	}

	segments := x12.Split(string(content))
	identifiers := x12.Identifiers(segments)

	findings, queryMethod := a.validator.Validate(segments)

	report := model.NewReport(path, a.cfg.TR3Version, findings, queryMethod,
		identifiers, a.cfg.ErrorHandling.FailOnWarnings)

	slog.Info("Analyzed X12 278 file",
		"file", path,
		"segments", len(segments),
		"errors", report.ErrorCount,
		"warnings", report.WarningCount,
		"query_method", queryMethod,
		"valid", report.IsValid)

	return report
}

// errorReport builds the single-finding report for a file that could not
// be obtained at all. No partial results are produced.
func (a *Analyzer) errorReport(path string, err error) model.Report {
	slog.Error("Failed to read X12 278 file", "file", path, "error", err)

	finding := model.Finding{
		Severity: model.SeverityError,
		Code:     "SYS001",
		Message:  err.Error(),
	}
	return model.NewReport(path, a.cfg.TR3Version, []model.Finding{finding},
		"", []string{}, a.cfg.ErrorHandling.FailOnWarnings)
}
