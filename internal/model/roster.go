package model

import "time"

// Roster enumeration names
const (
	RosterMentors = "mentors"
	RosterTopics  = "topics"
)

// Roster is an ordered list of display names for one enumeration.
// The 1-based position of an entry is its stable integer code.
type Roster struct {
	Name      string    `json:"name" bson:"_id"`
	Entries   []string  `json:"entries" bson:"entries"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}
