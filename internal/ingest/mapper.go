package ingest

import (
	"strconv"
	"strings"
	"time"

	"ascdash/internal/model"
)

// Channel identifies which raw-key convention a submission uses
type Channel string

const (
	// ChannelBulk is the Qualtrics CSV export: numeric codes, Q3.12_1..8
	ChannelBulk Channel = "bulk"
	// ChannelWebhook is the push delivery: free-text labels accepted,
	// Q3.12.a..h, alternate ResponseID key
	ChannelWebhook Channel = "webhook"
)

// Raw is one submission as delivered by a channel, keyed by source field name
type Raw map[string]string

// applyEnv carries per-build context into field transforms
type applyEnv struct {
	channel Channel
	lookups Lookups
}

// fieldSpec declares one canonical field: which raw key supplies it on each
// channel, whether the bulk channel requires it, and the transform that
// moves the decoded value onto the record. Optional transform failures are
// swallowed inside apply; only required fields may return an error.
type fieldSpec struct {
	name        string
	bulkKeys    []string
	webhookKeys []string
	required    bool // bulk channel only; the webhook fills defaults instead
	apply       func(rec *model.SurveyResponse, raw string, env applyEnv) error
}

func (f fieldSpec) keys(ch Channel) []string {
	if ch == ChannelWebhook {
		return f.webhookKeys
	}
	return f.bulkKeys
}

// value returns the first non-blank raw value among the field's keys for
// the channel
func (f fieldSpec) value(raw Raw, ch Channel) string {
	for _, k := range f.keys(ch) {
		if v := strings.TrimSpace(raw[k]); v != "" {
			return v
		}
	}
	return ""
}

// Schema is the full field mapping for both survey variants
type Schema struct {
	metadata []fieldSpec
	starting []fieldSpec
	ending   []fieldSpec
}

// Fields returns the ordered specs to apply for a survey variant
func (s *Schema) Fields(surveyType int) []fieldSpec {
	if surveyType == model.SurveyTypeStarting {
		return append(append([]fieldSpec{}, s.metadata...), s.starting...)
	}
	return append(append([]fieldSpec{}, s.metadata...), s.ending...)
}

// Field transform constructors. Each returns a declarative table entry;
// the closures are the only place raw values are coerced.

func textField(name, bulkKey, webhookKey string, set func(*model.SurveyResponse, string)) fieldSpec {
	return fieldSpec{
		name:        name,
		bulkKeys:    []string{bulkKey},
		webhookKeys: []string{webhookKey},
		apply: func(rec *model.SurveyResponse, raw string, _ applyEnv) error {
			if raw != "" {
				set(rec, raw)
			}
			return nil
		},
	}
}

// metaIntField fills a non-nullable metadata integer; undecodable values
// leave the channel default in place
func metaIntField(name, key string, set func(*model.SurveyResponse, int)) fieldSpec {
	return fieldSpec{
		name:        name,
		bulkKeys:    []string{key},
		webhookKeys: []string{key},
		apply: func(rec *model.SurveyResponse, raw string, _ applyEnv) error {
			if n, err := strconv.Atoi(raw); err == nil {
				set(rec, n)
			}
			return nil
		},
	}
}

func floatField(name, key string, set func(*model.SurveyResponse, *float64)) fieldSpec {
	return fieldSpec{
		name:        name,
		bulkKeys:    []string{key},
		webhookKeys: []string{key},
		apply: func(rec *model.SurveyResponse, raw string, _ applyEnv) error {
			if raw == "" || raw == "0" {
				return nil
			}
			if v, err := strconv.ParseFloat(raw, 64); err == nil {
				set(rec, &v)
			}
			return nil
		},
	}
}

func boolField(name, key string, set func(*model.SurveyResponse, *bool)) fieldSpec {
	return fieldSpec{
		name:        name,
		bulkKeys:    []string{key},
		webhookKeys: []string{key},
		apply: func(rec *model.SurveyResponse, raw string, _ applyEnv) error {
			if v, ok := decodeBool(raw); ok {
				set(rec, &v)
			}
			return nil
		},
	}
}

// finishedField is like boolField but targets the non-nullable Finished flag
func finishedField(key string) fieldSpec {
	return fieldSpec{
		name:        "finished",
		bulkKeys:    []string{key},
		webhookKeys: []string{key},
		apply: func(rec *model.SurveyResponse, raw string, _ applyEnv) error {
			if v, ok := decodeBool(raw); ok {
				rec.Finished = v
			}
			return nil
		},
	}
}

func timeField(name, key string, required bool, set func(*model.SurveyResponse, time.Time)) fieldSpec {
	return fieldSpec{
		name:        name,
		bulkKeys:    []string{key},
		webhookKeys: []string{key},
		required:    required,
		apply: func(rec *model.SurveyResponse, raw string, env applyEnv) error {
			t, err := parseTimestamp(raw)
			if err != nil {
				if env.channel == ChannelBulk {
					return err
				}
				return nil // webhook keeps its default
			}
			set(rec, t)
			return nil
		},
	}
}

// ordinalField decodes a bounded rating and, when rng is non-nil, also
// stores its [-1,1] normalization alongside
func ordinalField(name string, bulkKeys, webhookKeys []string, kind ScaleKind, rng *ScaleRange,
	set func(*model.SurveyResponse, *int), setNorm func(*model.SurveyResponse, *float64)) fieldSpec {
	if rng != nil {
		if err := rng.validate(); err != nil {
			panic("ingest: field " + name + ": " + err.Error())
		}
	}
	return fieldSpec{
		name:        name,
		bulkKeys:    bulkKeys,
		webhookKeys: webhookKeys,
		apply: func(rec *model.SurveyResponse, raw string, _ applyEnv) error {
			n, ok := DecodeOrdinal(raw, kind)
			if !ok {
				return nil
			}
			set(rec, &n)
			if rng != nil {
				v := rng.Normalize(n)
				setNorm(rec, &v)
			}
			return nil
		},
	}
}

// mentorChoiceField reads the mentor selection: a numeric code on the bulk
// channel, a display name resolved through the mentor roster on the webhook
func mentorChoiceField(bulkKey, webhookKey string) fieldSpec {
	return fieldSpec{
		name:        "mentor_choice",
		bulkKeys:    []string{bulkKey},
		webhookKeys: []string{webhookKey},
		apply: func(rec *model.SurveyResponse, raw string, env applyEnv) error {
			if env.channel == ChannelWebhook {
				code := env.lookups.Mentors.CodeForName(raw)
				rec.MentorChoice = &code
				return nil
			}
			if n, ok := DecodeOrdinal(raw, ScaleRating); ok {
				rec.MentorChoice = &n
			}
			return nil
		},
	}
}

// topicField reads the topic selection the same way, into the variant's
// topic code field
func topicField(name, bulkKey, webhookKey string, set func(*model.SurveyResponse, *int)) fieldSpec {
	return fieldSpec{
		name:        name,
		bulkKeys:    []string{bulkKey},
		webhookKeys: []string{webhookKey},
		apply: func(rec *model.SurveyResponse, raw string, env applyEnv) error {
			if env.channel == ChannelWebhook {
				code := env.lookups.Topics.CodeForName(raw)
				set(rec, &code)
				return nil
			}
			if n, ok := DecodeOrdinal(raw, ScaleRating); ok {
				set(rec, &n)
			}
			return nil
		},
	}
}

func decodeBool(raw string) (bool, bool) {
	if raw == "" {
		return false, false
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return n != 0, true
	}
	if v, err := strconv.ParseBool(raw); err == nil {
		return v, true
	}
	return false, false
}

// Scale ranges declared by the survey definition. Validated once when the
// schema is built.
var (
	fivePoint  = &ScaleRange{Min: 1, Max: 5}
	threePoint = &ScaleRange{Min: 1, Max: 3}
)

// DefaultSchema is the Qualtrics ASC survey mapping used by both channels
func DefaultSchema() *Schema {
	return &Schema{
		metadata: []fieldSpec{
			timeField("start_date", "StartDate", true, func(r *model.SurveyResponse, t time.Time) { r.StartDate = t }),
			timeField("end_date", "EndDate", true, func(r *model.SurveyResponse, t time.Time) { r.EndDate = t }),
			metaIntField("status", "Status", func(r *model.SurveyResponse, n int) { r.Status = n }),
			metaIntField("progress", "Progress", func(r *model.SurveyResponse, n int) { r.Progress = n }),
			metaIntField("duration_seconds", "Duration (in seconds)", func(r *model.SurveyResponse, n int) { r.DurationSeconds = n }),
			finishedField("Finished"),
			timeField("recorded_date", "RecordedDate", true, func(r *model.SurveyResponse, t time.Time) { r.RecordedDate = t }),
			textField("distribution_channel", "DistributionChannel", "DistributionChannel",
				func(r *model.SurveyResponse, s string) { r.DistributionChannel = s }),
			textField("user_language", "UserLanguage", "UserLanguage",
				func(r *model.SurveyResponse, s string) { r.UserLanguage = s }),
			floatField("recaptcha_score", "Q_RecaptchaScore",
				func(r *model.SurveyResponse, v *float64) { r.RecaptchaScore = v }),
		},
		starting: []fieldSpec{
			textField("a_number", "Q2.1", "Q2.1", func(r *model.SurveyResponse, s string) { r.ANumber = s }),
			textField("project_title", "Q2.2", "Q2.2", func(r *model.SurveyResponse, s string) { r.ProjectTitle = s }),
			mentorChoiceField("Q2.3", "Q2.3"),
			textField("mentor_other_text", "Q2.3_20_TEXT", "Q2.3_20_TEXT",
				func(r *model.SurveyResponse, s string) { r.MentorOtherText = s }),
			textField("mentor_name", "Q2.3.a", "Q2.3.a", func(r *model.SurveyResponse, s string) { r.MentorName = s }),
			boolField("is_first_project", "Q2.4", func(r *model.SurveyResponse, v *bool) { r.IsFirstProject = v }),
			topicField("topics_working_on", "Q2.6", "Q2.6",
				func(r *model.SurveyResponse, n *int) { r.TopicsWorkingOn = n }),
			ordinalField("confidence_topics", []string{"Q2.7"}, []string{"Q2.7"}, ScaleRating, nil,
				func(r *model.SurveyResponse, n *int) { r.ConfidenceTopics = n }, nil),
			ordinalField("enough_resources", []string{"Q2.8"}, []string{"Q2.8"}, ScaleRating, nil,
				func(r *model.SurveyResponse, n *int) { r.EnoughResources = n }, nil),
			textField("hope_to_gain", "Q2.9", "Q2.9", func(r *model.SurveyResponse, s string) { r.HopeToGain = s }),
			textField("additional_comments_starting", "Q2.10", "Q2.10",
				func(r *model.SurveyResponse, s string) { r.AdditionalCommentsStarting = s }),
		},
		ending: []fieldSpec{
			textField("a_number", "Q3.1", "Q3.1", func(r *model.SurveyResponse, s string) { r.ANumber = s }),
			textField("project_title", "Q3.2", "Q3.2", func(r *model.SurveyResponse, s string) { r.ProjectTitle = s }),
			mentorChoiceField("Q3.3", "Q3.3"),
			textField("mentor_other_text", "Q3.3_20_TEXT", "Q3.3_20_TEXT",
				func(r *model.SurveyResponse, s string) { r.MentorOtherText = s }),
			textField("mentor_name", "Q3.3.a", "Q3.3.a", func(r *model.SurveyResponse, s string) { r.MentorName = s }),
			textField("gained_learned", "Q3.5", "Q3.5", func(r *model.SurveyResponse, s string) { r.GainedLearned = s }),
			textField("what_went_well", "Q3.6", "Q3.6", func(r *model.SurveyResponse, s string) { r.WhatWentWell = s }),
			textField("what_could_improve", "Q3.7", "Q3.7",
				func(r *model.SurveyResponse, s string) { r.WhatCouldImprove = s }),
			topicField("topics_worked_on", "Q3.8", "Q3.8",
				func(r *model.SurveyResponse, n *int) { r.TopicsWorkedOn = n }),
			ordinalField("hard_skills_improved", []string{"Q3.9"}, []string{"Q3.9"}, ScaleAgreement, fivePoint,
				func(r *model.SurveyResponse, n *int) { r.HardSkillsImproved = n },
				func(r *model.SurveyResponse, v *float64) { r.NormalizedHardSkills = v }),
			ordinalField("soft_skills_improved", []string{"Q3.10"}, []string{"Q3.10"}, ScaleAgreement, fivePoint,
				func(r *model.SurveyResponse, n *int) { r.SoftSkillsImproved = n },
				func(r *model.SurveyResponse, v *float64) { r.NormalizedSoftSkills = v }),
			ordinalField("confidence_job_placement", []string{"Q3.11"}, []string{"Q3.11"}, ScaleAgreement, fivePoint,
				func(r *model.SurveyResponse, n *int) { r.ConfidenceJobPlacement = n },
				func(r *model.SurveyResponse, v *float64) { r.NormalizedConfidence = v }),
			ordinalField("rating_onboarding", []string{"Q3.12_1"}, []string{"Q3.12.a"}, ScaleRating, threePoint,
				func(r *model.SurveyResponse, n *int) { r.RatingOnboarding = n },
				func(r *model.SurveyResponse, v *float64) { r.NormalizedOnboarding = v }),
			ordinalField("rating_initiation", []string{"Q3.12_2"}, []string{"Q3.12.b"}, ScaleRating, threePoint,
				func(r *model.SurveyResponse, n *int) { r.RatingInitiation = n },
				func(r *model.SurveyResponse, v *float64) { r.NormalizedInitiation = v }),
			ordinalField("rating_mentorship", []string{"Q3.12_3"}, []string{"Q3.12.c"}, ScaleRating, threePoint,
				func(r *model.SurveyResponse, n *int) { r.RatingMentorship = n },
				func(r *model.SurveyResponse, v *float64) { r.NormalizedMentorship = v }),
			ordinalField("rating_team", []string{"Q3.12_4"}, []string{"Q3.12.d"}, ScaleRating, threePoint,
				func(r *model.SurveyResponse, n *int) { r.RatingTeam = n },
				func(r *model.SurveyResponse, v *float64) { r.NormalizedTeam = v }),
			ordinalField("rating_communications", []string{"Q3.12_5"}, []string{"Q3.12.e"}, ScaleRating, threePoint,
				func(r *model.SurveyResponse, n *int) { r.RatingCommunications = n },
				func(r *model.SurveyResponse, v *float64) { r.NormalizedCommunications = v }),
			ordinalField("rating_expectations", []string{"Q3.12_6"}, []string{"Q3.12.f"}, ScaleRating, threePoint,
				func(r *model.SurveyResponse, n *int) { r.RatingExpectations = n },
				func(r *model.SurveyResponse, v *float64) { r.NormalizedExpectations = v }),
			ordinalField("rating_sponsor", []string{"Q3.12_7"}, []string{"Q3.12.g"}, ScaleRating, threePoint,
				func(r *model.SurveyResponse, n *int) { r.RatingSponsor = n },
				func(r *model.SurveyResponse, v *float64) { r.NormalizedSponsor = v }),
			ordinalField("rating_workload", []string{"Q3.12_8"}, []string{"Q3.12.h"}, ScaleRating, threePoint,
				func(r *model.SurveyResponse, n *int) { r.RatingWorkload = n },
				func(r *model.SurveyResponse, v *float64) { r.NormalizedWorkload = v }),
			ordinalField("recommend_asc", []string{"Q3.13"}, []string{"Q3.13"}, ScaleRating, nil,
				func(r *model.SurveyResponse, n *int) { r.RecommendASC = n }, nil),
			textField("additional_comments_ending", "Q3.14", "Q3.14",
				func(r *model.SurveyResponse, s string) { r.AdditionalCommentsEnding = s }),
		},
	}
}

// Timestamp layouts observed in Qualtrics exports and webhook payloads
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
	"1/2/2006 15:04",
}

func parseTimestamp(raw string) (time.Time, error) {
	var lastErr error
	for _, layout := range timestampLayouts {
		t, err := time.Parse(layout, raw)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
