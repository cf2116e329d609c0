// Package qre implements the validation rule engine for X12 278 X215
// authorization inquiry transactions.
//
// The engine checks three layers over one segment list: envelope structure
// (ISA/GS/ST), required-segment presence per the partner's inquiry profile,
// and the QRE minimal data best practices, then infers which query method
// the inquiry uses. All rules evaluate independently; no finding ever
// stops evaluation of the others.
package qre

import (
	"fmt"
	"strings"

	"github.com/careweave/qre-analyzer/internal/config"
	"github.com/careweave/qre-analyzer/internal/model"
	"github.com/careweave/qre-analyzer/internal/x12"
)

// Transaction set code every 278 inquiry must carry in ST01.
const transactionSetCode = "278"

// Implementation guide suffix expected in ST03.
const implementationGuideSuffix = "X215"

// hierarchicalStructureInquiry is the BHT01 code for an inquiry.
const hierarchicalStructureInquiry = "0007"

// actionCodes are the HCR01 values accepted without comment. I1 (inquiry)
// is the recommended one.
var actionCodes = map[string]bool{
	"I1": true,
	"A1": true,
	"A2": true,
	"A3": true,
	"A4": true,
}

// Validator evaluates the QRE rule set against extracted segments. It
// holds only the read-only configuration, so one Validator may be shared
// across concurrent analyses.
type Validator struct {
	cfg config.Config
}

// NewValidator creates a validator for the given configuration.
func NewValidator(cfg config.Config) *Validator {
	return &Validator{cfg: cfg}
}

// Validate runs all validation passes over the segment list in fixed
// order (envelopes, required segments, minimal data, query method) and
// returns the accumulated findings plus the inferred query method.
// Validation is a pure function of its inputs and always completes.
func (v *Validator) Validate(segments []x12.Segment) ([]model.Finding, model.QueryMethod) {
	findings := []model.Finding{}

	findings = append(findings, v.validateEnvelopes(segments)...)
	findings = append(findings, v.validateRequiredSegments(x12.Identifiers(segments))...)
	findings = append(findings, v.validateMinimalData(segments)...)

	methodFindings, method := v.detectQueryMethod(segments)
	findings = append(findings, methodFindings...)

	return findings, method
}

// validateEnvelopes checks the ISA/GS/ST interchange wrapper.
func (v *Validator) validateEnvelopes(segments []x12.Segment) []model.Finding {
	if !v.cfg.ValidationRules.ValidateEnvelopes {
		return nil
	}

	var findings []model.Finding

	isaSegments := segmentsByID(segments, "ISA")
	switch {
	case len(isaSegments) == 0:
		findings = append(findings, model.Finding{
			Severity: model.SeverityError,
			Code:     "ENV001",
			Message:  "Missing ISA segment (Interchange Control Header)",
			Segment:  "ISA",
		})
	case len(isaSegments) > 1:
		findings = append(findings, model.Finding{
			Severity: model.SeverityWarning,
			Code:     "ENV002",
			Message:  fmt.Sprintf("Multiple ISA segments found (%d)", len(isaSegments)),
			Segment:  "ISA",
		})
	}

	if len(segmentsByID(segments, "GS")) == 0 {
		findings = append(findings, model.Finding{
			Severity: model.SeverityError,
			Code:     "ENV003",
			Message:  "Missing GS segment (Functional Group Header)",
			Segment:  "GS",
		})
	}

	stSegments := segmentsByID(segments, "ST")
	if len(stSegments) == 0 {
		findings = append(findings, model.Finding{
			Severity: model.SeverityError,
			Code:     "ENV004",
			Message:  "Missing ST segment (Transaction Set Header)",
			Segment:  "ST",
		})
		return findings
	}

	// Only the first ST is inspected; elements beyond the segment's
	// actual length are not checked.
	st := stSegments[0]
	if code, ok := st.Element(1); ok && code != transactionSetCode {
		findings = append(findings, model.Finding{
			Severity: model.SeverityError,
			Code:     "ENV005",
			Message:  fmt.Sprintf("Invalid transaction code: expected '278', found '%s'", code),
			Segment:  "ST",
		})
	}
	if version, ok := st.Element(3); ok && !strings.HasSuffix(version, implementationGuideSuffix) {
		findings = append(findings, model.Finding{
			Severity: model.SeverityWarning,
			Code:     "ENV006",
			Message:  fmt.Sprintf("Implementation guide version '%s' may not be 005010X215", version),
			Segment:  "ST",
			Context:  model.Context{{Key: "version", Value: version}},
		})
	}

	return findings
}

// validateRequiredSegments emits one error per configured identifier that
// never appears in the transaction.
func (v *Validator) validateRequiredSegments(identifiers []string) []model.Finding {
	present := make(map[string]bool, len(identifiers))
	for _, id := range identifiers {
		present[id] = true
	}

	var findings []model.Finding
	for _, required := range v.cfg.QRERequirements.RequiredSegments {
		if !present[required] {
			findings = append(findings, model.Finding{
				Severity: model.SeverityError,
				Code:     "QRE001",
				Message:  fmt.Sprintf("Missing required segment: %s", required),
				Segment:  required,
			})
		}
	}
	return findings
}

// validateMinimalData checks the QRE minimal data best practices. When a
// segment type repeats, only the first occurrence is inspected.
func (v *Validator) validateMinimalData(segments []x12.Segment) []model.Finding {
	if !v.cfg.QRERequirements.MinimalDataPrinciple {
		return nil
	}

	var findings []model.Finding

	if bhtSegments := segmentsByID(segments, "BHT"); len(bhtSegments) > 0 {
		if bht01, ok := bhtSegments[0].Element(1); ok && bht01 != hierarchicalStructureInquiry {
			findings = append(findings, model.Finding{
				Severity: model.SeverityWarning,
				Code:     "QRE002",
				Message:  fmt.Sprintf("BHT01 should be '0007' for inquiry, found '%s'", bht01),
				Segment:  "BHT",
				Context:  model.Context{{Key: "bht01", Value: bht01}},
			})
		}
	}

	if len(segmentsByID(segments, "UM")) == 0 {
		findings = append(findings, model.Finding{
			Severity: model.SeverityWarning,
			Code:     "QRE003",
			Message:  "UM segment (Health Care Services Review Information) is recommended for QRE",
			Segment:  "UM",
		})
	}

	if hcrSegments := segmentsByID(segments, "HCR"); len(hcrSegments) > 0 {
		if hcr01, ok := hcrSegments[0].Element(1); ok && !actionCodes[hcr01] {
			findings = append(findings, model.Finding{
				Severity: model.SeverityInfo,
				Code:     "QRE004",
				Message:  fmt.Sprintf("HCR01 action code is '%s' (I1=Inquiry is recommended)", hcr01),
				Segment:  "HCR",
				Context:  model.Context{{Key: "hcr01", Value: hcr01}},
			})
		}
	}

	return findings
}

// detectQueryMethod infers how the inquiry identifies its subject. An
// authorization number (REF*D9) wins over member demographics (NM1*IL
// plus DMG) when both are present.
func (v *Validator) detectQueryMethod(segments []x12.Segment) ([]model.Finding, model.QueryMethod) {
	hasAuthRef := hasSegmentWithElement(segments, "REF", 1, "D9")
	hasMemberName := hasSegmentWithElement(segments, "NM1", 1, "IL")
	hasDemographics := len(segmentsByID(segments, "DMG")) > 0

	switch {
	case hasAuthRef:
		return []model.Finding{{
			Severity: model.SeverityInfo,
			Code:     "QRE005",
			Message:  "Query method: Authorization Number (REF*D9 segment found)",
			Segment:  "REF",
		}}, model.QueryByAuthorizationNumber
	case hasMemberName && hasDemographics:
		return []model.Finding{{
			Severity: model.SeverityInfo,
			Code:     "QRE006",
			Message:  "Query method: Member Demographics (NM1*IL and DMG segments found)",
			Segment:  "NM1",
		}}, model.QueryByMemberDemographics
	default:
		return []model.Finding{{
			Severity: model.SeverityWarning,
			Code:     "QRE007",
			Message:  "Cannot determine query method (need REF*D9 OR (NM1*IL + DMG))",
			Segment:  "REF",
		}}, model.QueryMethodUnknown
	}
}

// segmentsByID returns the segments with the given identifier, in order.
func segmentsByID(segments []x12.Segment, id string) []x12.Segment {
	var matched []x12.Segment
	for _, s := range segments {
		if s.ID == id {
			matched = append(matched, s)
		}
	}
	return matched
}

// hasSegmentWithElement reports whether any segment with the given
// identifier carries value at element position pos.
func hasSegmentWithElement(segments []x12.Segment, id string, pos int, value string) bool {
	for _, s := range segments {
		if s.ID != id {
			continue
		}
		if element, ok := s.Element(pos); ok && element == value {
			return true
		}
	}
	return false
}
