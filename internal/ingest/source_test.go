package ingest

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `ResponseId,Q1.1,Q3.2,Q3.12_1
"Response ID","Survey Type","Project Title","Onboarding"
"{""ImportId"":""_recordId""}","{""ImportId"":""QID1""}","{""ImportId"":""QID2""}","{""ImportId"":""QID3""}"
R1,2,"Churn, Prediction",2
R2,2,Routing,3
`

func TestReadCSVSkipsMetadataRows(t *testing.T) {
	rows, err := ReadCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "R1", rows[0]["ResponseId"])
	assert.Equal(t, "Churn, Prediction", rows[0]["Q3.2"], "quoted commas survive")
	assert.Equal(t, "2", rows[0]["Q3.12_1"])
	assert.Equal(t, "R2", rows[1]["ResponseId"])
}

func TestReadCSVShortRows(t *testing.T) {
	csv := "A,B,C\nmeta,meta,meta\nmeta,meta,meta\n1,2\n"
	rows, err := ReadCSV(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "2", rows[0]["B"])
	assert.Equal(t, "", rows[0]["C"])
}

func TestReadCSVEmptySource(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""))
	assert.Error(t, err, "an unreadable source aborts the batch")
}

func TestRawFromJSON(t *testing.T) {
	raw := RawFromJSON(map[string]interface{}{
		"ResponseId": "R9",
		"Q3.13":      float64(4),
		"Q3.9":       []interface{}{"Strongly Agree"},
		"Finished":   true,
		"Q3.14":      nil,
		"Progress":   99.5,
	})

	assert.Equal(t, "R9", raw["ResponseId"])
	assert.Equal(t, "4", raw["Q3.13"], "integral numbers render without a decimal point")
	assert.Equal(t, "Strongly Agree", raw["Q3.9"], "single-element lists collapse")
	assert.Equal(t, "true", raw["Finished"])
	assert.Equal(t, "99.5", raw["Progress"])
	_, present := raw["Q3.14"]
	assert.False(t, present, "nulls are absent, not empty strings")
}

func TestRawFromForm(t *testing.T) {
	raw := RawFromForm(url.Values{
		"ResponseId": {"R9"},
		"Q3.13":      {"4", "ignored"},
		"Empty":      {},
	})

	assert.Equal(t, "R9", raw["ResponseId"])
	assert.Equal(t, "4", raw["Q3.13"])
	_, present := raw["Empty"]
	assert.False(t, present)
}
