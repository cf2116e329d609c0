package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/careweave/qre-analyzer/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() model.Report {
	findings := []model.Finding{
		{Severity: model.SeverityError, Code: "ENV005", Message: "Invalid transaction code: expected '278', found '837'", Segment: "ST"},
		{Severity: model.SeverityWarning, Code: "QRE003", Message: "UM segment (Health Care Services Review Information) is recommended for QRE", Segment: "UM"},
		{Severity: model.SeverityInfo, Code: "QRE005", Message: "Query method: Authorization Number (REF*D9 segment found)", Segment: "REF",
			Context: model.Context{{Key: "auth", Value: "AUTH123"}}},
	}
	return model.NewReport("sample.edi", "005010X215", findings,
		model.QueryByAuthorizationNumber, []string{"ISA", "GS", "ST"}, false)
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	Render(&buf, sampleReport())
	out := buf.String()

	assert.Contains(t, out, "X12 278 X215 QRE Analysis Report")
	assert.Contains(t, out, "File: sample.edi")
	assert.Contains(t, out, "TR3 Version: 005010X215")
	assert.Contains(t, out, "Errors: 1")
	assert.Contains(t, out, "Warnings: 1")
	assert.Contains(t, out, "Info: 1")
	assert.Contains(t, out, "Query Method: ByAuthorizationNumber")
	assert.Contains(t, out, "Segments Found: 3")
	assert.Contains(t, out, "ENV005")
	assert.Contains(t, out, "[ST]")
	assert.Contains(t, out, "auth: AUTH123")
}

func TestRenderValidVerdict(t *testing.T) {
	report := model.NewReport("ok.edi", "005010X215", nil, model.QueryByAuthorizationNumber, nil, false)

	var buf bytes.Buffer
	Render(&buf, report)

	assert.Contains(t, buf.String(), "YES")
	assert.NotContains(t, buf.String(), "ERRORS (")
}

func TestRenderOmitsQueryMethodWhenUnset(t *testing.T) {
	report := model.NewReport("broken.edi", "005010X215",
		[]model.Finding{{Severity: model.SeverityError, Code: "SYS001", Message: "failed to read file"}},
		"", nil, false)

	var buf bytes.Buffer
	Render(&buf, report)

	assert.NotContains(t, buf.String(), "Query Method:")
	assert.Contains(t, buf.String(), "SYS001")
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleReport()))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	assert.Equal(t, "sample.edi", decoded["file_path"])
	assert.Equal(t, false, decoded["is_valid"])
	assert.Equal(t, "ByAuthorizationNumber", decoded["query_method"])

	results, ok := decoded["results"].([]any)
	require.True(t, ok)
	require.Len(t, results, 3)
	first, ok := results[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "ERROR", first["severity"])
	assert.Equal(t, "ENV005", first["code"])
}

func TestExportFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, ExportFile(path, sampleReport()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded model.Report
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "sample.edi", decoded.FilePath)
	assert.Len(t, decoded.Findings, 3)
}
