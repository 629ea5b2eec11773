package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeOrdinal(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		kind   ScaleKind
		want   int
		wantOK bool
	}{
		{name: "plain integer", raw: "3", kind: ScaleRating, want: 3, wantOK: true},
		{name: "integer with spaces", raw: " 2 ", kind: ScaleRating, want: 2, wantOK: true},
		{name: "parenthesized label", raw: "1 (Poor)", kind: ScaleRating, want: 1, wantOK: true},
		{name: "parenthesized neutral", raw: "2 (Neutral)", kind: ScaleRating, want: 2, wantOK: true},
		{name: "parenthesized without space", raw: "3(Excellent)", kind: ScaleRating, want: 3, wantOK: true},
		{name: "empty is no answer", raw: "", kind: ScaleRating, wantOK: false},
		{name: "blank is no answer", raw: "   ", kind: ScaleRating, wantOK: false},
		{name: "zero is no answer", raw: "0", kind: ScaleRating, wantOK: false},
		{name: "garbage numeral before paren", raw: "x (Poor)", kind: ScaleRating, wantOK: false},
		{name: "free text not a rating", raw: "Excellent", kind: ScaleRating, wantOK: false},

		{name: "strongly agree", raw: "Strongly Agree", kind: ScaleAgreement, want: 5, wantOK: true},
		{name: "agreement case insensitive", raw: "sTrOnGlY aGrEe", kind: ScaleAgreement, want: 5, wantOK: true},
		{name: "agreement with padding", raw: "  somewhat disagree  ", kind: ScaleAgreement, want: 2, wantOK: true},
		{name: "neither long form", raw: "Neither agree nor disagree", kind: ScaleAgreement, want: 3, wantOK: true},
		{name: "neither short form", raw: "Neither", kind: ScaleAgreement, want: 3, wantOK: true},
		{name: "strongly disagree", raw: "Strongly disagree", kind: ScaleAgreement, want: 1, wantOK: true},
		{name: "somewhat agree", raw: "Somewhat Agree", kind: ScaleAgreement, want: 4, wantOK: true},
		{name: "agreement accepts integer too", raw: "4", kind: ScaleAgreement, want: 4, wantOK: true},
		{name: "unmatched agreement text", raw: "no opinion", kind: ScaleAgreement, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := DecodeOrdinal(tt.raw, tt.kind)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	three := ScaleRange{Min: 1, Max: 3}
	five := ScaleRange{Min: 1, Max: 5}

	assert.Equal(t, -1.0, three.Normalize(1))
	assert.Equal(t, 0.0, three.Normalize(2))
	assert.Equal(t, 1.0, three.Normalize(3))

	assert.Equal(t, -1.0, five.Normalize(1))
	assert.Equal(t, 0.0, five.Normalize(3))
	assert.Equal(t, 0.5, five.Normalize(4))
	assert.Equal(t, 1.0, five.Normalize(5))
}

func TestNormalizeDecodeRoundTrip(t *testing.T) {
	three := ScaleRange{Min: 1, Max: 3}

	code, ok := DecodeOrdinal("1 (Poor)", ScaleRating)
	require.True(t, ok)
	assert.Equal(t, -1.0, three.Normalize(code))
}

func TestScaleRangeValidate(t *testing.T) {
	assert.NoError(t, ScaleRange{Min: 1, Max: 3}.validate())
	assert.Error(t, ScaleRange{Min: 2, Max: 2}.validate())
	assert.Error(t, ScaleRange{Min: 5, Max: 1}.validate())
}
