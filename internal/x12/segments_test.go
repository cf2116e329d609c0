package x12

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		expectedIDs []string
	}{
		{
			name:        "simple transaction",
			raw:         "ISA*00*ZZ~GS*HI~ST*278*0001~SE*2*0001~",
			expectedIDs: []string{"ISA", "GS", "ST", "SE"},
		},
		{
			name:        "whitespace and newlines between segments",
			raw:         "ISA*00~\nGS*HI~\r\n  ST*278*0001~  \n",
			expectedIDs: []string{"ISA", "GS", "ST"},
		},
		{
			name:        "duplicates preserved in order",
			raw:         "ISA*00~ISA*00~REF*D9~REF*EJ~",
			expectedIDs: []string{"ISA", "ISA", "REF", "REF"},
		},
		{
			name:        "segment without element delimiter",
			raw:         "ISA~GE~",
			expectedIDs: []string{"ISA", "GE"},
		},
		{
			name:        "missing trailing terminator",
			raw:         "ISA*00~GS*HI",
			expectedIDs: []string{"ISA", "GS"},
		},
		{
			name:        "empty input",
			raw:         "",
			expectedIDs: nil,
		},
		{
			name:        "terminators only",
			raw:         "~~~ ~ ~",
			expectedIDs: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			segments := Split(tt.raw)
			if tt.expectedIDs == nil {
				assert.Empty(t, segments)
			} else {
				assert.Equal(t, tt.expectedIDs, Identifiers(segments))
			}
		})
	}
}

func TestSegmentElement(t *testing.T) {
	segments := Split("ST*278*0001*005010X215~")
	require.Len(t, segments, 1)
	st := segments[0]

	assert.Equal(t, "ST", st.ID)
	assert.Equal(t, 4, st.Len())

	id, ok := st.Element(0)
	require.True(t, ok)
	assert.Equal(t, "ST", id)

	code, ok := st.Element(1)
	require.True(t, ok)
	assert.Equal(t, "278", code)

	version, ok := st.Element(3)
	require.True(t, ok)
	assert.Equal(t, "005010X215", version)

	// Positions past the segment's length are absent, not errors.
	_, ok = st.Element(4)
	assert.False(t, ok)
	_, ok = st.Element(-1)
	assert.False(t, ok)
}

func TestSegmentString(t *testing.T) {
	segments := Split("BHT*0007*13*REF47517~")
	require.Len(t, segments, 1)
	assert.Equal(t, "BHT*0007*13*REF47517", segments[0].String())
}

// Re-splitting the reconstructed document must yield the same identifier
// sequence: extraction is idempotent on its own output.
func TestSplitIdempotent(t *testing.T) {
	raw := "ISA*00*ZZ~\nGS*HI~ST*278*0001~BHT*0007~ REF*D9*AUTH123~SE*5*0001~"

	first := Split(raw)

	var reconstructed []string
	for _, s := range first {
		reconstructed = append(reconstructed, s.String())
	}
	second := Split(strings.Join(reconstructed, SegmentTerminator))

	assert.Equal(t, Identifiers(first), Identifiers(second))
}

// Delimiters declared inside the ISA segment are intentionally not
// honored: the extractor always splits on `~` and `*`. A file using
// alternate delimiters therefore parses as one opaque record.
func TestSplitFixedDelimiters(t *testing.T) {
	raw := "ISA|00|ZZ!GS|HI!"

	segments := Split(raw)

	require.Len(t, segments, 1)
	assert.Equal(t, "ISA|00|ZZ!GS|HI!", segments[0].ID)
}
