// Package x12 implements segment extraction for delimited X12 EDI text.
//
// Delimiters are fixed to the conventional `~` segment terminator and `*`
// element delimiter. Delimiters declared inside the ISA header are not
// honored; files using alternate delimiters are reported as missing their
// envelope segments rather than re-parsed.
package x12

import "strings"

const (
	// SegmentTerminator separates segments in the raw transaction text.
	SegmentTerminator = "~"
	// ElementDelimiter separates elements within a segment.
	ElementDelimiter = "*"
)

// Segment is one delimited record of the transaction. The identifier is
// the leading element; positions follow X12 convention, so Element(1) is
// the first data element after the identifier. Segments are immutable
// once extracted.
type Segment struct {
	ID       string
	elements []string
}

// Element returns the element at position n (the identifier is position 0)
// and whether the segment is long enough to carry one. Positions beyond
// the segment's actual length are simply absent, never an error.
func (s Segment) Element(n int) (string, bool) {
	if n < 0 || n >= len(s.elements) {
		return "", false
	}
	return s.elements[n], true
}

// Len returns the number of elements, counting the identifier.
func (s Segment) Len() int {
	return len(s.elements)
}

// String reassembles the segment in its wire form, without the terminator.
func (s Segment) String() string {
	return strings.Join(s.elements, ElementDelimiter)
}

// Split parses raw transaction text into ordered segments. Records are
// separated on the segment terminator, trimmed of surrounding whitespace,
// and dropped when empty; order and duplicates are preserved. Split is a
// pure function: empty or terminator-only input yields no segments, and
// no input is ever an error.
func Split(raw string) []Segment {
	var segments []Segment
	for _, record := range strings.Split(raw, SegmentTerminator) {
		record = strings.TrimSpace(record)
		if record == "" {
			continue
		}
		elements := strings.Split(record, ElementDelimiter)
		segments = append(segments, Segment{
			ID:       elements[0],
			elements: elements,
		})
	}
	return segments
}

// Identifiers returns the identifier of each segment in document order,
// duplicates preserved.
func Identifiers(segments []Segment) []string {
	ids := make([]string, len(segments))
	for i, s := range segments {
		ids[i] = s.ID
	}
	return ids
}
