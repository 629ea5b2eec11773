package model

import "time"

// Survey type codes carried on every response
const (
	SurveyTypeStarting = 1
	SurveyTypeEnding   = 2
)

// SurveyResponse is the normalized survey response stored by the dashboard.
// Exactly one of the starting/ending field groups is populated, selected by
// SurveyType; the other group stays at its zero/nil values.
type SurveyResponse struct {
	ID string `json:"id" bson:"_id,omitempty"`

	// Qualtrics metadata
	StartDate           time.Time `json:"startDate" bson:"startDate"`
	EndDate             time.Time `json:"endDate" bson:"endDate"`
	Status              int       `json:"status" bson:"status"`
	Progress            int       `json:"progress" bson:"progress"`
	DurationSeconds     int       `json:"durationSeconds" bson:"durationSeconds"`
	Finished            bool      `json:"finished" bson:"finished"`
	RecordedDate        time.Time `json:"recordedDate" bson:"recordedDate"`
	ResponseID          string    `json:"responseId" bson:"responseId"`
	DistributionChannel string    `json:"distributionChannel" bson:"distributionChannel"`
	UserLanguage        string    `json:"userLanguage" bson:"userLanguage"`
	RecaptchaScore      *float64  `json:"recaptchaScore,omitempty" bson:"recaptchaScore,omitempty"`

	// 1 = starting project, 2 = ending project
	SurveyType int `json:"surveyType" bson:"surveyType"`

	// Project identity
	ANumber         string `json:"aNumber" bson:"aNumber"`
	ProjectTitle    string `json:"projectTitle" bson:"projectTitle"`
	MentorChoice    *int   `json:"mentorChoice,omitempty" bson:"mentorChoice,omitempty"`
	MentorOtherText string `json:"mentorOtherText,omitempty" bson:"mentorOtherText,omitempty"`
	MentorName      string `json:"mentorName,omitempty" bson:"mentorName,omitempty"`
	ProjectMentor   string `json:"projectMentor" bson:"projectMentor"` // resolved display name
	Topic           string `json:"topic" bson:"topic"`                 // resolved display name

	// Starting project fields
	IsFirstProject             *bool  `json:"isFirstProject,omitempty" bson:"isFirstProject,omitempty"`
	TopicsWorkingOn            *int   `json:"topicsWorkingOn,omitempty" bson:"topicsWorkingOn,omitempty"`
	ConfidenceTopics           *int   `json:"confidenceTopics,omitempty" bson:"confidenceTopics,omitempty"` // 1-5
	EnoughResources            *int   `json:"enoughResources,omitempty" bson:"enoughResources,omitempty"`   // 1-5
	HopeToGain                 string `json:"hopeToGain,omitempty" bson:"hopeToGain,omitempty"`
	AdditionalCommentsStarting string `json:"additionalCommentsStarting,omitempty" bson:"additionalCommentsStarting,omitempty"`

	// Ending project fields
	GainedLearned          string `json:"gainedLearned,omitempty" bson:"gainedLearned,omitempty"`
	WhatWentWell           string `json:"whatWentWell,omitempty" bson:"whatWentWell,omitempty"`
	WhatCouldImprove       string `json:"whatCouldImprove,omitempty" bson:"whatCouldImprove,omitempty"`
	TopicsWorkedOn         *int   `json:"topicsWorkedOn,omitempty" bson:"topicsWorkedOn,omitempty"`
	HardSkillsImproved     *int   `json:"hardSkillsImproved,omitempty" bson:"hardSkillsImproved,omitempty"`         // 1-5
	SoftSkillsImproved     *int   `json:"softSkillsImproved,omitempty" bson:"softSkillsImproved,omitempty"`         // 1-5
	ConfidenceJobPlacement *int   `json:"confidenceJobPlacement,omitempty" bson:"confidenceJobPlacement,omitempty"` // 1-5

	// Category ratings, 1=Poor 2=Fair 3=Excellent
	RatingOnboarding     *int `json:"ratingOnboarding,omitempty" bson:"ratingOnboarding,omitempty"`
	RatingInitiation     *int `json:"ratingInitiation,omitempty" bson:"ratingInitiation,omitempty"`
	RatingMentorship     *int `json:"ratingMentorship,omitempty" bson:"ratingMentorship,omitempty"`
	RatingTeam           *int `json:"ratingTeam,omitempty" bson:"ratingTeam,omitempty"`
	RatingCommunications *int `json:"ratingCommunications,omitempty" bson:"ratingCommunications,omitempty"`
	RatingExpectations   *int `json:"ratingExpectations,omitempty" bson:"ratingExpectations,omitempty"`
	RatingSponsor        *int `json:"ratingSponsor,omitempty" bson:"ratingSponsor,omitempty"`
	RatingWorkload       *int `json:"ratingWorkload,omitempty" bson:"ratingWorkload,omitempty"`

	RecommendASC             *int   `json:"recommendAsc,omitempty" bson:"recommendAsc,omitempty"` // 1-5
	AdditionalCommentsEnding string `json:"additionalCommentsEnding,omitempty" bson:"additionalCommentsEnding,omitempty"`

	// Normalized copies of the eleven ending ratings, scaled to [-1, 1]
	NormalizedHardSkills     *float64 `json:"normalizedHardSkills,omitempty" bson:"normalizedHardSkills,omitempty"`
	NormalizedSoftSkills     *float64 `json:"normalizedSoftSkills,omitempty" bson:"normalizedSoftSkills,omitempty"`
	NormalizedConfidence     *float64 `json:"normalizedConfidence,omitempty" bson:"normalizedConfidence,omitempty"`
	NormalizedOnboarding     *float64 `json:"normalizedOnboarding,omitempty" bson:"normalizedOnboarding,omitempty"`
	NormalizedInitiation     *float64 `json:"normalizedInitiation,omitempty" bson:"normalizedInitiation,omitempty"`
	NormalizedMentorship     *float64 `json:"normalizedMentorship,omitempty" bson:"normalizedMentorship,omitempty"`
	NormalizedTeam           *float64 `json:"normalizedTeam,omitempty" bson:"normalizedTeam,omitempty"`
	NormalizedCommunications *float64 `json:"normalizedCommunications,omitempty" bson:"normalizedCommunications,omitempty"`
	NormalizedExpectations   *float64 `json:"normalizedExpectations,omitempty" bson:"normalizedExpectations,omitempty"`
	NormalizedSponsor        *float64 `json:"normalizedSponsor,omitempty" bson:"normalizedSponsor,omitempty"`
	NormalizedWorkload       *float64 `json:"normalizedWorkload,omitempty" bson:"normalizedWorkload,omitempty"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

func (r *SurveyResponse) IsStartingSurvey() bool {
	return r.SurveyType == SurveyTypeStarting
}

func (r *SurveyResponse) IsEndingSurvey() bool {
	return r.SurveyType == SurveyTypeEnding
}

// SurveyTypeLabel returns the human-readable variant name
func (r *SurveyResponse) SurveyTypeLabel() string {
	switch r.SurveyType {
	case SurveyTypeStarting:
		return "Starting Project"
	case SurveyTypeEnding:
		return "Ending Project"
	}
	return "Unknown"
}
