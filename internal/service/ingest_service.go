package service

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/google/uuid"

	"ascdash/internal/cache"
	"ascdash/internal/ingest"
	"ascdash/internal/model"
	"ascdash/internal/repository"
)

// lookupProvider is what IngestService needs from the roster layer
type lookupProvider interface {
	Lookups(ctx context.Context) (ingest.Lookups, error)
}

// IngestService turns raw submissions from either channel into stored
// canonical records
type IngestService struct {
	responseRepo repository.ResponseRepo
	rosters      lookupProvider
	statsCache   cache.StatsCache
	broadcaster  Broadcaster
}

// NewIngestService creates a new ingest service
func NewIngestService(responseRepo repository.ResponseRepo, rosters lookupProvider, statsCache cache.StatsCache) *IngestService {
	return &IngestService{
		responseRepo: responseRepo,
		rosters:      rosters,
		statsCache:   statsCache,
	}
}

// SetBroadcaster injects the live-update hub
func (s *IngestService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// ImportCSV ingests a Qualtrics CSV export. A read failure aborts the
// whole batch; per-row failures are collected without stopping it.
func (s *IngestService) ImportCSV(ctx context.Context, r io.Reader) (*model.ImportResult, error) {
	rows, err := ingest.ReadCSV(r)
	if err != nil {
		return nil, fmt.Errorf("failed to process CSV file: %w", err)
	}

	lookups, err := s.rosters.Lookups(ctx)
	if err != nil {
		return nil, fmt.Errorf("load rosters: %w", err)
	}

	batch := ingest.NewBatch(ingest.NewRecordBuilder(lookups), s.responseRepo)
	res := batch.Ingest(ctx, rows, ingest.ChannelBulk)
	res.BatchID = uuid.New().String()

	log.Printf("Batch %s: imported %d, updated %d, rejected %d of %d rows",
		res.BatchID, res.ImportedCount, res.UpdatedCount, res.TotalErrors, len(rows))

	s.afterIngest(ctx)
	return res, nil
}

// IngestWebhook processes one push delivery. Only ending surveys are
// persisted; starting or unclassifiable submissions are acknowledged and
// skipped.
func (s *IngestService) IngestWebhook(ctx context.Context, raw ingest.Raw) (*model.WebhookResult, error) {
	surveyType, ok := ingest.DetectSurveyType(raw)
	if !ok || surveyType != model.SurveyTypeEnding {
		label := "Unknown"
		if surveyType == model.SurveyTypeStarting {
			label = "Starting"
		}
		return &model.WebhookResult{
			Success:    true,
			Skipped:    true,
			SurveyType: surveyType,
			Message:    fmt.Sprintf("%s survey - not processing. Only ending surveys are stored.", label),
		}, nil
	}

	lookups, err := s.rosters.Lookups(ctx)
	if err != nil {
		return nil, fmt.Errorf("load rosters: %w", err)
	}

	rec, err := ingest.NewRecordBuilder(lookups).Build(raw, ingest.ChannelWebhook)
	if err != nil {
		return nil, err
	}

	created, err := s.responseRepo.Upsert(ctx, rec)
	if err != nil {
		return nil, err
	}

	verb := "updated"
	if created {
		verb = "created"
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastEvent("response_ingested", map[string]interface{}{
			"responseId": rec.ResponseID,
			"surveyType": rec.SurveyType,
			"created":    created,
		})
	}
	s.afterIngest(ctx)

	return &model.WebhookResult{
		Success:    true,
		Message:    fmt.Sprintf("Survey response %s: %s", verb, rec.ResponseID),
		ResponseID: rec.ResponseID,
		SurveyType: rec.SurveyType,
		Created:    created,
	}, nil
}

// afterIngest drops cached aggregates; the next stats read recomputes
func (s *IngestService) afterIngest(ctx context.Context) {
	if s.statsCache == nil {
		return
	}
	if err := s.statsCache.InvalidateAll(ctx); err != nil {
		log.Printf("stats cache invalidation failed: %v", err)
	}
}
