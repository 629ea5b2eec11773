package ingest

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ascdash/internal/model"
)

func testLookups() Lookups {
	return Lookups{
		Mentors: NewMentorTable(testMentors),
		Topics:  NewTopicTable(testTopics),
	}
}

func bulkEndingRow() Raw {
	return Raw{
		"StartDate":             "2024-04-01 09:00:00",
		"EndDate":               "2024-04-01 09:12:30",
		"Status":                "0",
		"Progress":              "100",
		"Duration (in seconds)": "750",
		"Finished":              "1",
		"RecordedDate":          "2024-04-01 09:12:31",
		"ResponseId":            "R1",
		"DistributionChannel":   "anonymous",
		"UserLanguage":          "EN",
		"Q1.1":                  "2",
		"Q3.1":                  "A01234567",
		"Q3.2":                  "Churn Prediction",
		"Q3.3":                  "2",
		"Q3.5":                  "Learned a lot",
		"Q3.8":                  "2",
		"Q3.9":                  "4",
		"Q3.10":                 "5",
		"Q3.11":                 "3",
		"Q3.12_1":               "2",
		"Q3.12_2":               "3",
		"Q3.13":                 "4",
	}
}

func TestDetectSurveyType(t *testing.T) {
	tests := []struct {
		name   string
		q11    string
		want   int
		wantOK bool
	}{
		{"explicit starting code", "1", model.SurveyTypeStarting, true},
		{"explicit ending code", "2", model.SurveyTypeEnding, true},
		{"starting text", "Starting Project", model.SurveyTypeStarting, true},
		{"ending text with suffix", "Ending Project - Cohort 2", model.SurveyTypeEnding, true},
		{"case insensitive", "STARTING project", model.SurveyTypeStarting, true},
		{"unknown code", "7", 0, false},
		{"unrelated text", "midpoint check-in", 0, false},
		{"empty", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := DetectSurveyType(Raw{"Q1.1": tt.q11})
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestBuildEndingFromBulk(t *testing.T) {
	b := NewRecordBuilder(testLookups())

	rec, err := b.Build(bulkEndingRow(), ChannelBulk)
	require.NoError(t, err)

	assert.Equal(t, "R1", rec.ResponseID)
	assert.Equal(t, model.SurveyTypeEnding, rec.SurveyType)
	assert.Equal(t, "A01234567", rec.ANumber)
	assert.Equal(t, 750, rec.DurationSeconds)
	assert.True(t, rec.Finished)
	assert.Equal(t, time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC), rec.StartDate)

	require.NotNil(t, rec.RatingOnboarding)
	assert.Equal(t, 2, *rec.RatingOnboarding)
	require.NotNil(t, rec.NormalizedOnboarding)
	assert.Equal(t, 0.0, *rec.NormalizedOnboarding)

	require.NotNil(t, rec.RatingInitiation)
	assert.Equal(t, 3, *rec.RatingInitiation)
	require.NotNil(t, rec.NormalizedInitiation)
	assert.Equal(t, 1.0, *rec.NormalizedInitiation)

	require.NotNil(t, rec.HardSkillsImproved)
	assert.Equal(t, 4, *rec.HardSkillsImproved)
	require.NotNil(t, rec.NormalizedHardSkills)
	assert.Equal(t, 0.5, *rec.NormalizedHardSkills)

	require.NotNil(t, rec.RecommendASC)
	assert.Equal(t, 4, *rec.RecommendASC)

	// Derived names
	assert.Equal(t, "Grace Hopper", rec.ProjectMentor)
	assert.Equal(t, "Machine Learning", rec.Topic)

	// Starting-only group stays empty
	assert.Nil(t, rec.IsFirstProject)
	assert.Nil(t, rec.TopicsWorkingOn)
	assert.Empty(t, rec.HopeToGain)
}

func TestBuildStartingFromBulk(t *testing.T) {
	b := NewRecordBuilder(testLookups())

	row := bulkEndingRow()
	row["Q1.1"] = "1"
	row["Q2.1"] = "A07654321"
	row["Q2.3"] = "1"
	row["Q2.4"] = "1"
	row["Q2.6"] = "1"
	row["Q2.7"] = "5"
	row["Q2.9"] = "Real-world experience"

	rec, err := b.Build(row, ChannelBulk)
	require.NoError(t, err)

	assert.Equal(t, model.SurveyTypeStarting, rec.SurveyType)
	assert.Equal(t, "A07654321", rec.ANumber)
	require.NotNil(t, rec.IsFirstProject)
	assert.True(t, *rec.IsFirstProject)
	require.NotNil(t, rec.ConfidenceTopics)
	assert.Equal(t, 5, *rec.ConfidenceTopics)
	assert.Equal(t, "Real-world experience", rec.HopeToGain)
	assert.Equal(t, "Ada Lovelace", rec.ProjectMentor)
	assert.Equal(t, "Data Engineering", rec.Topic)

	// Ending-only group stays empty
	assert.Nil(t, rec.RatingOnboarding)
	assert.Nil(t, rec.NormalizedOnboarding)
	assert.Nil(t, rec.RecommendASC)
}

func TestBuildWebhookEnding(t *testing.T) {
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	b := NewRecordBuilder(testLookups())
	b.now = func() time.Time { return fixed }

	raw := Raw{
		"Q1.1":       "Ending Project - Cohort 2",
		"ResponseID": "R_webhook_1",
		"Q3.3":       "Grace Hopper",
		"Q3.8":       "Machine Learning",
		"Q3.9":       "Strongly Agree",
		"Q3.10":      "somewhat disagree",
		"Q3.12.a":    "1 (Poor)",
		"Q3.12.c":    "3 (Excellent)",
		"Q3.13":      "5",
	}

	rec, err := b.Build(raw, ChannelWebhook)
	require.NoError(t, err)

	// Alternate ResponseID spelling is accepted
	assert.Equal(t, "R_webhook_1", rec.ResponseID)

	// Webhook defaults
	assert.Equal(t, fixed, rec.StartDate)
	assert.Equal(t, fixed, rec.RecordedDate)
	assert.Equal(t, 1, rec.Status)
	assert.Equal(t, 100, rec.Progress)
	assert.True(t, rec.Finished)
	assert.Equal(t, "qualtrics", rec.DistributionChannel)
	assert.Equal(t, "EN", rec.UserLanguage)

	// Free-text agreement labels
	require.NotNil(t, rec.HardSkillsImproved)
	assert.Equal(t, 5, *rec.HardSkillsImproved)
	require.NotNil(t, rec.NormalizedHardSkills)
	assert.Equal(t, 1.0, *rec.NormalizedHardSkills)
	require.NotNil(t, rec.SoftSkillsImproved)
	assert.Equal(t, 2, *rec.SoftSkillsImproved)

	// Webhook rating keys
	require.NotNil(t, rec.RatingOnboarding)
	assert.Equal(t, 1, *rec.RatingOnboarding)
	require.NotNil(t, rec.NormalizedOnboarding)
	assert.Equal(t, -1.0, *rec.NormalizedOnboarding)
	require.NotNil(t, rec.RatingMentorship)
	assert.Equal(t, 3, *rec.RatingMentorship)

	// Name-based mentor and topic resolution
	require.NotNil(t, rec.MentorChoice)
	assert.Equal(t, 2, *rec.MentorChoice)
	assert.Equal(t, "Grace Hopper", rec.ProjectMentor)
	assert.Equal(t, "Machine Learning", rec.Topic)
}

func TestBuildMissingIdentity(t *testing.T) {
	b := NewRecordBuilder(testLookups())

	row := bulkEndingRow()
	delete(row, "ResponseId")

	_, err := b.Build(row, ChannelBulk)
	assert.ErrorIs(t, err, ErrMissingIdentity)
}

func TestBuildUndeterminedVariant(t *testing.T) {
	b := NewRecordBuilder(testLookups())

	row := bulkEndingRow()
	row["Q1.1"] = "midpoint check-in"

	_, err := b.Build(row, ChannelBulk)
	assert.ErrorIs(t, err, ErrUndeterminedVariant)
}

func TestBuildBadRequiredTimestamp(t *testing.T) {
	b := NewRecordBuilder(testLookups())

	row := bulkEndingRow()
	row["StartDate"] = "not a date"

	_, err := b.Build(row, ChannelBulk)
	var fte *FieldTransformError
	require.True(t, errors.As(err, &fte))
	assert.Equal(t, "start_date", fte.Field)
}

func TestBuildOptionalGarbageIsNulled(t *testing.T) {
	b := NewRecordBuilder(testLookups())

	row := bulkEndingRow()
	row["Q3.12_1"] = "garbage"
	row["Q3.13"] = "0"
	row["Q_RecaptchaScore"] = "n/a"

	rec, err := b.Build(row, ChannelBulk)
	require.NoError(t, err, "bad optional answers must not reject the record")

	assert.Nil(t, rec.RatingOnboarding)
	assert.Nil(t, rec.NormalizedOnboarding)
	assert.Nil(t, rec.RecommendASC)
	assert.Nil(t, rec.RecaptchaScore)
}

func TestBuildOtherMentorPrefersFreeText(t *testing.T) {
	b := NewRecordBuilder(testLookups())

	row := bulkEndingRow()
	row["Q3.3"] = "3" // the Other slot in the test roster
	row["Q3.3.a"] = "Dr. External Mentor"

	rec, err := b.Build(row, ChannelBulk)
	require.NoError(t, err)
	assert.Equal(t, "Dr. External Mentor", rec.ProjectMentor)

	// Without free text the slot name itself is used
	delete(row, "Q3.3.a")
	rec, err = b.Build(row, ChannelBulk)
	require.NoError(t, err)
	assert.Equal(t, "Other", rec.ProjectMentor)
}
