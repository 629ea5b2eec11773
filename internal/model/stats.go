package model

// DashboardStats aggregates ending-survey ratings for the dashboard
type DashboardStats struct {
	TotalResponses        int                `json:"totalResponses"`
	StartingResponses     int                `json:"startingResponses"`
	EndingResponses       int                `json:"endingResponses"`
	AverageRatings        map[string]float64 `json:"averageRatings"`
	AverageRecommendation *float64           `json:"averageRecommendation"`
	CompletionRate        int                `json:"completionRate"`
}

// FilterOptions lists the distinct values available for dashboard filters
type FilterOptions struct {
	Mentors  []string `json:"mentors"`
	Projects []string `json:"projects"`
	Topics   []string `json:"topics"`
}
