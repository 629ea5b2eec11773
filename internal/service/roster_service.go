package service

import (
	"context"
	"log"

	"ascdash/internal/cache"
	"ascdash/internal/ingest"
	"ascdash/internal/model"
	"ascdash/internal/repository"
)

// Rosters shipped with the service; used until an admin seeds or edits the
// stored ones. The mentor roster ends with "Other" on purpose: unknown
// names resolve to that slot.
var (
	DefaultMentors = []string{
		"Andy Brim",
		"Tyler Brough",
		"Polly Conrad",
		"Chris Corcoran",
		"Doug Derrick",
		"Morgan Diederich",
		"Marc Dotson",
		"Kelly Fadel",
		"Carly Fox",
		"Chelsea Harding",
		"Pedram Jahangiry",
		"Sharad Jones",
		"Toa Pita",
		"Brinley Zabriskie",
		"Other",
	}
	DefaultTopics = []string{
		"Data Engineering and Visualization",
		"Business Intelligence and Analytics",
		"Machine Learning and AI",
		"Predictive and Advanced Analytics",
		"Software Development and Web Design",
	}
)

// RosterService loads lookup rosters for ingestion: Redis snapshot first,
// then Mongo, then the built-in defaults. Loaded once per batch so all
// records in the batch resolve consistently.
type RosterService struct {
	rosterRepo  repository.RosterRepo
	rosterCache cache.RosterCache
}

// NewRosterService creates a new roster service. The cache may be nil
// (CLI usage without Redis).
func NewRosterService(rosterRepo repository.RosterRepo, rosterCache cache.RosterCache) *RosterService {
	return &RosterService{
		rosterRepo:  rosterRepo,
		rosterCache: rosterCache,
	}
}

// Lookups returns the immutable lookup tables for one ingestion batch
func (s *RosterService) Lookups(ctx context.Context) (ingest.Lookups, error) {
	mentors, err := s.entries(ctx, model.RosterMentors, DefaultMentors)
	if err != nil {
		return ingest.Lookups{}, err
	}
	topics, err := s.entries(ctx, model.RosterTopics, DefaultTopics)
	if err != nil {
		return ingest.Lookups{}, err
	}
	return ingest.Lookups{
		Mentors: ingest.NewMentorTable(mentors),
		Topics:  ingest.NewTopicTable(topics),
	}, nil
}

func (s *RosterService) entries(ctx context.Context, name string, defaults []string) ([]string, error) {
	if s.rosterCache != nil {
		roster, err := s.rosterCache.Get(ctx, name)
		if err != nil {
			log.Printf("roster cache read failed for %s: %v", name, err)
		} else if roster != nil {
			return roster.Entries, nil
		}
	}

	roster, err := s.rosterRepo.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	if roster == nil {
		return defaults, nil
	}

	if s.rosterCache != nil {
		if err := s.rosterCache.Set(ctx, roster); err != nil {
			log.Printf("roster cache write failed for %s: %v", name, err)
		}
	}
	return roster.Entries, nil
}

// Seed stores the built-in rosters for any enumeration not yet present
func (s *RosterService) Seed(ctx context.Context) error {
	for name, entries := range map[string][]string{
		model.RosterMentors: DefaultMentors,
		model.RosterTopics:  DefaultTopics,
	} {
		existing, err := s.rosterRepo.Get(ctx, name)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}
		if err := s.rosterRepo.Put(ctx, &model.Roster{Name: name, Entries: entries}); err != nil {
			return err
		}
		if s.rosterCache != nil {
			s.rosterCache.Invalidate(ctx, name)
		}
	}
	return nil
}
