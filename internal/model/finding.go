// Package model defines the core types shared across the analyzer:
// validation findings, severities, query methods, and the analysis report.
package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Severity represents the severity level of a validation finding.
type Severity string

const (
	// SeverityError indicates a violation that makes the transaction invalid.
	SeverityError Severity = "ERROR"
	// SeverityWarning indicates a deviation from best practice.
	SeverityWarning Severity = "WARNING"
	// SeverityInfo indicates an informational observation.
	SeverityInfo Severity = "INFO"
)

// Valid reports whether s is one of the three known severities.
func (s Severity) Valid() bool {
	switch s {
	case SeverityError, SeverityWarning, SeverityInfo:
		return true
	}
	return false
}

// QueryMethod represents the inferred strategy used to identify the
// subject of an authorization inquiry.
type QueryMethod string

const (
	// QueryByAuthorizationNumber means the inquiry carries a REF*D9
	// authorization number.
	QueryByAuthorizationNumber QueryMethod = "ByAuthorizationNumber"
	// QueryByMemberDemographics means the inquiry identifies the member
	// via NM1*IL plus a DMG demographics segment.
	QueryByMemberDemographics QueryMethod = "ByMemberDemographics"
	// QueryMethodUnknown means neither identification method was found.
	QueryMethodUnknown QueryMethod = "Unknown"
)

// Field is one key/value pair of machine-readable finding context.
type Field struct {
	Key   string
	Value string
}

// Context is an ordered list of context fields. It serializes as a JSON
// object with keys in insertion order, so reports remain byte-stable
// across runs.
type Context []Field

// MarshalJSON renders the context as a JSON object, preserving field order.
func (c Context) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range c {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object back into ordered fields.
func (c *Context) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("context must be a JSON object, got %v", tok)
	}

	fields := Context{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("context key must be a string, got %v", keyTok)
		}
		var value string
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("context value for %q: %w", key, err)
		}
		fields = append(fields, Field{Key: key, Value: value})
	}

	*c = fields
	return nil
}

// Get returns the value for key and whether it is present.
func (c Context) Get(key string) (string, bool) {
	for _, f := range c {
		if f.Key == key {
			return f.Value, true
		}
	}
	return "", false
}

// Finding is a single validation outcome. Findings are append-only: the
// engine produces them in pass order and never mutates them afterward.
type Finding struct {
	Severity Severity `json:"severity"`
	Code     string   `json:"code"`
	Message  string   `json:"message"`
	// Segment names the segment type the finding concerns, when one applies.
	Segment string `json:"segment,omitempty"`
	// LineNumber is kept for report-shape compatibility; no current rule
	// populates it.
	LineNumber *int    `json:"line_number,omitempty"`
	Context    Context `json:"context,omitempty"`
}
