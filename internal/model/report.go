package model

// Report is the terminal aggregate of one analysis run. Field order and
// snake_case names mirror the JSON shape existing consumers already read.
type Report struct {
	FilePath     string      `json:"file_path"`
	TR3Version   string      `json:"tr3_version"`
	IsValid      bool        `json:"is_valid"`
	ErrorCount   int         `json:"error_count"`
	WarningCount int         `json:"warning_count"`
	InfoCount    int         `json:"info_count"`
	QueryMethod  QueryMethod `json:"query_method,omitempty"`
	// SegmentsFound lists every segment identifier in document order,
	// duplicates preserved.
	SegmentsFound []string  `json:"segments_found"`
	Findings      []Finding `json:"results"`
}

// NewReport builds a report from accumulated findings, computing severity
// counts and the validity verdict. The report is valid when it has no
// errors and, if failOnWarnings is set, no warnings either.
func NewReport(filePath, tr3Version string, findings []Finding, queryMethod QueryMethod, segmentsFound []string, failOnWarnings bool) Report {
	report := Report{
		FilePath:      filePath,
		TR3Version:    tr3Version,
		QueryMethod:   queryMethod,
		SegmentsFound: segmentsFound,
		Findings:      findings,
	}
	if report.SegmentsFound == nil {
		report.SegmentsFound = []string{}
	}
	if report.Findings == nil {
		report.Findings = []Finding{}
	}

	for _, f := range findings {
		switch f.Severity {
		case SeverityError:
			report.ErrorCount++
		case SeverityWarning:
			report.WarningCount++
		case SeverityInfo:
			report.InfoCount++
		}
	}

	report.IsValid = report.ErrorCount == 0 &&
		(!failOnWarnings || report.WarningCount == 0)

	return report
}

// FindingsBySeverity returns the report's findings with the given
// severity, in their original order.
func (r Report) FindingsBySeverity(severity Severity) []Finding {
	var matched []Finding
	for _, f := range r.Findings {
		if f.Severity == severity {
			matched = append(matched, f)
		}
	}
	return matched
}
