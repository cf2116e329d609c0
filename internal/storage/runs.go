package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/careweave/qre-analyzer/internal/model"
)

// Run is one recorded analysis run.
type Run struct {
	AnalyzedAt   time.Time
	FilePath     string
	TR3Version   string
	QueryMethod  string
	ID           int64
	ErrorCount   int
	WarningCount int
	InfoCount    int
	SegmentCount int
	IsValid      bool
}

// SaveReport records the report and its findings as a new run and returns
// the run ID.
func (s *SQLiteStore) SaveReport(ctx context.Context, report model.Report) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.ExecContext(ctx, `
		INSERT INTO runs (file_path, tr3_version, is_valid, error_count, warning_count, info_count, query_method, segment_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		report.FilePath,
		report.TR3Version,
		report.IsValid,
		report.ErrorCount,
		report.WarningCount,
		report.InfoCount,
		nullableString(string(report.QueryMethod)),
		len(report.SegmentsFound),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	runID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run id: %w", err)
	}

	for i, finding := range report.Findings {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO findings (run_id, severity, code, message, segment, position)
			VALUES (?, ?, ?, ?, ?, ?)`,
			runID,
			string(finding.Severity),
			finding.Code,
			finding.Message,
			nullableString(finding.Segment),
			i,
		); err != nil {
			return 0, fmt.Errorf("failed to insert finding %s: %w", finding.Code, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit run: %w", err)
	}

	return runID, nil
}

// ListRuns returns the most recent runs, newest first, up to limit.
func (s *SQLiteStore) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, file_path, tr3_version, is_valid, error_count, warning_count, info_count, query_method, segment_count, analyzed_at
		FROM runs
		ORDER BY analyzed_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []Run
	for rows.Next() {
		var run Run
		var queryMethod sql.NullString
		if err := rows.Scan(
			&run.ID,
			&run.FilePath,
			&run.TR3Version,
			&run.IsValid,
			&run.ErrorCount,
			&run.WarningCount,
			&run.InfoCount,
			&queryMethod,
			&run.SegmentCount,
			&run.AnalyzedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		run.QueryMethod = queryMethod.String
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}

	return runs, nil
}

// GetRunFindings returns the findings recorded for a run, in emission
// order.
func (s *SQLiteStore) GetRunFindings(ctx context.Context, runID int64) ([]model.Finding, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT severity, code, message, segment
		FROM findings
		WHERE run_id = ?
		ORDER BY position`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query findings: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var findings []model.Finding
	for rows.Next() {
		var finding model.Finding
		var severity string
		var segment sql.NullString
		if err := rows.Scan(&severity, &finding.Code, &finding.Message, &segment); err != nil {
			return nil, fmt.Errorf("failed to scan finding: %w", err)
		}
		finding.Severity = model.Severity(severity)
		finding.Segment = segment.String
		findings = append(findings, finding)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate findings: %w", err)
	}

	return findings, nil
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
