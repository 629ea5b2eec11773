package ingest

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"ascdash/internal/model"
)

// RecordBuilder turns one raw submission into a canonical SurveyResponse.
// The lookup tables are fixed at construction so every record built by one
// builder resolves against the same rosters.
type RecordBuilder struct {
	schema  *Schema
	lookups Lookups
	now     func() time.Time
}

// NewRecordBuilder creates a builder over the default survey schema
func NewRecordBuilder(lookups Lookups) *RecordBuilder {
	return &RecordBuilder{
		schema:  DefaultSchema(),
		lookups: lookups,
		now:     time.Now,
	}
}

// DetectSurveyType classifies a submission from its Q1.1 indicator: either
// an explicit variant code, or free text matched on "starting"/"ending".
func DetectSurveyType(raw Raw) (int, bool) {
	v := strings.TrimSpace(raw["Q1.1"])
	if v == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(v); err == nil {
		if n == model.SurveyTypeStarting || n == model.SurveyTypeEnding {
			return n, true
		}
		return 0, false
	}
	lower := strings.ToLower(v)
	if strings.Contains(lower, "starting") {
		return model.SurveyTypeStarting, true
	}
	if strings.Contains(lower, "ending") {
		return model.SurveyTypeEnding, true
	}
	return 0, false
}

// Build produces one canonical record from one raw submission.
// Failure of any required transform rejects the record as a unit; optional
// transform failures leave the field null.
func (b *RecordBuilder) Build(raw Raw, channel Channel) (*model.SurveyResponse, error) {
	surveyType, ok := DetectSurveyType(raw)
	if !ok {
		return nil, ErrUndeterminedVariant
	}

	id := responseID(raw)
	if id == "" {
		return nil, ErrMissingIdentity
	}

	rec := b.newRecord(surveyType, channel)
	rec.ResponseID = id

	env := applyEnv{channel: channel, lookups: b.lookups}
	for _, f := range b.schema.Fields(surveyType) {
		v := f.value(raw, channel)
		if v == "" {
			if f.required && channel == ChannelBulk {
				return nil, &FieldTransformError{Field: f.name, Err: errors.New("missing value")}
			}
			continue
		}
		if err := f.apply(rec, v, env); err != nil {
			return nil, &FieldTransformError{Field: f.name, Err: err}
		}
	}

	b.resolveNames(rec)
	return rec, nil
}

// responseID reads the natural key; the webhook channel has been observed
// sending both spellings
func responseID(raw Raw) string {
	if v := strings.TrimSpace(raw["ResponseId"]); v != "" {
		return v
	}
	return strings.TrimSpace(raw["ResponseID"])
}

// newRecord seeds a record with channel defaults. Webhook deliveries omit
// most Qualtrics metadata, so missing values fall back to a completed,
// just-recorded response.
func (b *RecordBuilder) newRecord(surveyType int, channel Channel) *model.SurveyResponse {
	rec := &model.SurveyResponse{SurveyType: surveyType}
	if channel == ChannelWebhook {
		now := b.now()
		rec.StartDate = now
		rec.EndDate = now
		rec.RecordedDate = now
		rec.Status = 1
		rec.Progress = 100
		rec.Finished = true
		rec.DistributionChannel = "qualtrics"
		rec.UserLanguage = "EN"
	}
	return rec
}

// resolveNames fills the derived mentor and topic display names.
// A mentor code pointing at the roster's "Other" slot prefers the free-text
// mentor name when one was given.
func (b *RecordBuilder) resolveNames(rec *model.SurveyResponse) {
	if rec.MentorChoice != nil {
		code := *rec.MentorChoice
		mentors := b.lookups.Mentors
		if code == mentors.Len() && rec.MentorName != "" {
			rec.ProjectMentor = rec.MentorName
		} else {
			rec.ProjectMentor = mentors.NameForCode(code)
		}
	}

	topicCode := rec.TopicsWorkedOn
	if rec.IsStartingSurvey() {
		topicCode = rec.TopicsWorkingOn
	}
	if topicCode != nil {
		rec.Topic = b.lookups.Topics.NameForCode(*topicCode)
	}
}
