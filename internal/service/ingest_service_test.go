package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ascdash/internal/ingest"
	"ascdash/internal/model"
	"ascdash/internal/repository"
)

// fakeResponseRepo keeps records in memory keyed by response id
type fakeResponseRepo struct {
	records map[string]model.SurveyResponse
	upserts int
}

func newFakeResponseRepo() *fakeResponseRepo {
	return &fakeResponseRepo{records: make(map[string]model.SurveyResponse)}
}

func (r *fakeResponseRepo) Upsert(_ context.Context, rec *model.SurveyResponse) (bool, error) {
	r.upserts++
	_, exists := r.records[rec.ResponseID]
	r.records[rec.ResponseID] = *rec
	return !exists, nil
}

func (r *fakeResponseRepo) GetByResponseID(_ context.Context, responseID string) (*model.SurveyResponse, error) {
	rec, ok := r.records[responseID]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (r *fakeResponseRepo) List(_ context.Context, _ repository.ResponseFilter) ([]*model.SurveyResponse, error) {
	out := make([]*model.SurveyResponse, 0, len(r.records))
	for id := range r.records {
		rec := r.records[id]
		out = append(out, &rec)
	}
	return out, nil
}

func (r *fakeResponseRepo) Count(_ context.Context, _ repository.ResponseFilter) (int64, error) {
	return int64(len(r.records)), nil
}

func (r *fakeResponseRepo) Distinct(_ context.Context, _ string, _ repository.ResponseFilter) ([]string, error) {
	return nil, nil
}

func (r *fakeResponseRepo) EnsureIndexes(_ context.Context) error { return nil }

// staticLookups serves the built-in rosters without Mongo or Redis
type staticLookups struct{}

func (staticLookups) Lookups(_ context.Context) (ingest.Lookups, error) {
	return ingest.Lookups{
		Mentors: ingest.NewMentorTable(DefaultMentors),
		Topics:  ingest.NewTopicTable(DefaultTopics),
	}, nil
}

type recordedEvent struct {
	msgType string
	payload interface{}
}

type fakeBroadcaster struct {
	events []recordedEvent
}

func (b *fakeBroadcaster) BroadcastEvent(msgType string, payload interface{}) {
	b.events = append(b.events, recordedEvent{msgType, payload})
}

func newTestIngestService(repo *fakeResponseRepo) *IngestService {
	return NewIngestService(repo, staticLookups{}, nil)
}

const importCSV = `StartDate,EndDate,Status,Progress,Duration (in seconds),Finished,RecordedDate,ResponseId,DistributionChannel,UserLanguage,Q1.1,Q3.1,Q3.2,Q3.3,Q3.8,Q3.9,Q3.12_1,Q3.13
meta,meta,meta,meta,meta,meta,meta,meta,meta,meta,meta,meta,meta,meta,meta,meta,meta,meta
meta,meta,meta,meta,meta,meta,meta,meta,meta,meta,meta,meta,meta,meta,meta,meta,meta,meta
2024-04-01 09:00:00,2024-04-01 09:12:30,0,100,750,1,2024-04-01 09:12:31,R1,anonymous,EN,2,A01234567,Churn Prediction,2,3,4,2,4
2024-04-01 10:00:00,2024-04-01 10:09:00,0,100,540,1,2024-04-01 10:09:01,R2,anonymous,EN,2,A07654321,Routing,1,1,5,3,5
`

func TestImportCSVStoresRecords(t *testing.T) {
	repo := newFakeResponseRepo()
	svc := newTestIngestService(repo)

	res, err := svc.ImportCSV(context.Background(), strings.NewReader(importCSV))
	require.NoError(t, err)

	assert.NotEmpty(t, res.BatchID)
	assert.Equal(t, 2, res.ImportedCount)
	assert.Equal(t, 0, res.TotalErrors)
	require.Contains(t, repo.records, "R1")

	rec := repo.records["R1"]
	assert.Equal(t, model.SurveyTypeEnding, rec.SurveyType)
	assert.Equal(t, "Tyler Brough", rec.ProjectMentor)
	require.NotNil(t, rec.NormalizedOnboarding)
	assert.Equal(t, 0.0, *rec.NormalizedOnboarding)
}

func TestImportCSVUnreadableSource(t *testing.T) {
	svc := newTestIngestService(newFakeResponseRepo())

	_, err := svc.ImportCSV(context.Background(), strings.NewReader(""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to process CSV file")
}

func TestIngestWebhookSkipsStartingSurvey(t *testing.T) {
	repo := newFakeResponseRepo()
	svc := newTestIngestService(repo)

	res, err := svc.IngestWebhook(context.Background(), ingest.Raw{
		"Q1.1":       "Starting Project",
		"ResponseID": "R_start",
	})
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.True(t, res.Skipped)
	assert.Equal(t, model.SurveyTypeStarting, res.SurveyType)
	assert.Contains(t, res.Message, "Only ending surveys are stored")
	assert.Equal(t, 0, repo.upserts, "skipped deliveries never reach storage")
}

func TestIngestWebhookPersistsEndingSurvey(t *testing.T) {
	repo := newFakeResponseRepo()
	svc := newTestIngestService(repo)
	hub := &fakeBroadcaster{}
	svc.SetBroadcaster(hub)

	res, err := svc.IngestWebhook(context.Background(), ingest.Raw{
		"Q1.1":       "Ending Project - Cohort 2",
		"ResponseID": "R_end",
		"Q3.3":       "Tyler Brough",
		"Q3.9":       "Strongly Agree",
		"Q3.12.a":    "3 (Excellent)",
	})
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.False(t, res.Skipped)
	assert.True(t, res.Created)
	assert.Equal(t, "R_end", res.ResponseID)

	rec := repo.records["R_end"]
	assert.Equal(t, model.SurveyTypeEnding, rec.SurveyType)
	assert.Equal(t, "Tyler Brough", rec.ProjectMentor)
	assert.True(t, rec.Finished)

	require.Len(t, hub.events, 1)
	assert.Equal(t, "response_ingested", hub.events[0].msgType)
}

func TestIngestWebhookIdempotentRedelivery(t *testing.T) {
	repo := newFakeResponseRepo()
	svc := newTestIngestService(repo)

	raw := ingest.Raw{
		"Q1.1":       "2",
		"ResponseID": "R_dup",
		"Q3.12.a":    "2 (Average)",
	}

	first, err := svc.IngestWebhook(context.Background(), raw)
	require.NoError(t, err)
	assert.True(t, first.Created)

	second, err := svc.IngestWebhook(context.Background(), raw)
	require.NoError(t, err)
	assert.False(t, second.Created)
	assert.Len(t, repo.records, 1)
}

func TestIngestWebhookRejectsMissingID(t *testing.T) {
	repo := newFakeResponseRepo()
	svc := newTestIngestService(repo)

	_, err := svc.IngestWebhook(context.Background(), ingest.Raw{"Q1.1": "2"})
	assert.ErrorIs(t, err, ingest.ErrMissingIdentity)
	assert.Empty(t, repo.records)
}
