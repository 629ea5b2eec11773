package service

import (
	"context"
	"fmt"
	"log"
	"math"
	"sort"

	"ascdash/internal/cache"
	"ascdash/internal/model"
	"ascdash/internal/repository"
)

// ResponseService is the read side of the dashboard: listing, detail,
// aggregate stats, and filter options over already-normalized records
type ResponseService struct {
	responseRepo repository.ResponseRepo
	statsCache   cache.StatsCache
}

// NewResponseService creates a new response service
func NewResponseService(responseRepo repository.ResponseRepo, statsCache cache.StatsCache) *ResponseService {
	return &ResponseService{
		responseRepo: responseRepo,
		statsCache:   statsCache,
	}
}

// List returns responses matching the filter, newest first
func (s *ResponseService) List(ctx context.Context, filter repository.ResponseFilter) ([]*model.SurveyResponse, error) {
	return s.responseRepo.List(ctx, filter)
}

// Get returns one response by its Qualtrics response id, nil when absent
func (s *ResponseService) Get(ctx context.Context, responseID string) (*model.SurveyResponse, error) {
	return s.responseRepo.GetByResponseID(ctx, responseID)
}

// Stats computes average ratings over ending surveys matching the filter.
// Results are cached; ingestion invalidates the cache.
func (s *ResponseService) Stats(ctx context.Context, filter repository.ResponseFilter) (*model.DashboardStats, error) {
	key := statsKey(filter)
	if s.statsCache != nil {
		if cached, err := s.statsCache.Get(ctx, key); err != nil {
			log.Printf("stats cache read failed: %v", err)
		} else if cached != nil {
			return cached, nil
		}
	}

	startFilter := filter
	startFilter.SurveyType = model.SurveyTypeStarting
	startCount, err := s.responseRepo.Count(ctx, startFilter)
	if err != nil {
		return nil, err
	}

	filter.SurveyType = model.SurveyTypeEnding
	recs, err := s.responseRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	stats := &model.DashboardStats{
		TotalResponses:    len(recs) + int(startCount),
		StartingResponses: int(startCount),
		EndingResponses:   len(recs),
		AverageRatings:    map[string]float64{},
		CompletionRate:    100,
	}

	type ratingField struct {
		name string
		get  func(*model.SurveyResponse) *int
	}
	fields := []ratingField{
		{"ratingOnboarding", func(r *model.SurveyResponse) *int { return r.RatingOnboarding }},
		{"ratingInitiation", func(r *model.SurveyResponse) *int { return r.RatingInitiation }},
		{"ratingMentorship", func(r *model.SurveyResponse) *int { return r.RatingMentorship }},
		{"ratingTeam", func(r *model.SurveyResponse) *int { return r.RatingTeam }},
		{"ratingCommunications", func(r *model.SurveyResponse) *int { return r.RatingCommunications }},
		{"ratingExpectations", func(r *model.SurveyResponse) *int { return r.RatingExpectations }},
		{"ratingSponsor", func(r *model.SurveyResponse) *int { return r.RatingSponsor }},
		{"ratingWorkload", func(r *model.SurveyResponse) *int { return r.RatingWorkload }},
	}

	for _, f := range fields {
		sum, n := 0, 0
		for _, rec := range recs {
			if v := f.get(rec); v != nil {
				sum += *v
				n++
			}
		}
		if n > 0 {
			stats.AverageRatings[f.name] = round2(float64(sum) / float64(n))
		}
	}

	sum, n := 0, 0
	for _, rec := range recs {
		if rec.RecommendASC != nil {
			sum += *rec.RecommendASC
			n++
		}
	}
	if n > 0 {
		avg := round2(float64(sum) / float64(n))
		stats.AverageRecommendation = &avg
	}

	if s.statsCache != nil {
		if err := s.statsCache.Set(ctx, key, stats); err != nil {
			log.Printf("stats cache write failed: %v", err)
		}
	}
	return stats, nil
}

// FilterOptions returns the distinct values feeding the dashboard filter
// dropdowns
func (s *ResponseService) FilterOptions(ctx context.Context) (*model.FilterOptions, error) {
	mentors, err := s.responseRepo.Distinct(ctx, "projectMentor", repository.ResponseFilter{})
	if err != nil {
		return nil, err
	}
	projects, err := s.responseRepo.Distinct(ctx, "projectTitle", repository.ResponseFilter{})
	if err != nil {
		return nil, err
	}
	topics, err := s.responseRepo.Distinct(ctx, "topic", repository.ResponseFilter{})
	if err != nil {
		return nil, err
	}

	sort.Strings(mentors)
	sort.Strings(projects)
	sort.Strings(topics)
	return &model.FilterOptions{Mentors: mentors, Projects: projects, Topics: topics}, nil
}

func statsKey(filter repository.ResponseFilter) string {
	start, end := "", ""
	if filter.StartDate != nil {
		start = filter.StartDate.Format("2006-01-02")
	}
	if filter.EndDate != nil {
		end = filter.EndDate.Format("2006-01-02")
	}
	return fmt.Sprintf("%s|%s|%s|%s|%s", filter.Mentor, filter.Topic, filter.ProjectName, start, end)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
