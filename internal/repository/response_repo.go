package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"ascdash/internal/model"
)

// ResponseFilter narrows reads over stored responses
type ResponseFilter struct {
	SurveyType  int
	Mentor      string
	Topic       string
	ProjectName string
	StartDate   *time.Time
	EndDate     *time.Time
}

// ResponseRepo handles MongoDB operations for survey responses
type ResponseRepo interface {
	Upsert(ctx context.Context, rec *model.SurveyResponse) (bool, error)
	GetByResponseID(ctx context.Context, responseID string) (*model.SurveyResponse, error)
	List(ctx context.Context, filter ResponseFilter) ([]*model.SurveyResponse, error)
	Count(ctx context.Context, filter ResponseFilter) (int64, error)
	Distinct(ctx context.Context, field string, filter ResponseFilter) ([]string, error)
	EnsureIndexes(ctx context.Context) error
}

type responseRepo struct {
	collection *mongo.Collection
}

// NewResponseRepo creates a new response repository
func NewResponseRepo(db *mongo.Database) ResponseRepo {
	return &responseRepo{
		collection: db.Collection("responses"),
	}
}

// EnsureIndexes creates the unique index backing the upsert natural key
func (r *responseRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "responseId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// Upsert inserts the record or fully replaces the one sharing its response
// id. Last writer wins; there is no field-level merge.
func (r *responseRepo) Upsert(ctx context.Context, rec *model.SurveyResponse) (bool, error) {
	now := time.Now()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now

	result, err := r.collection.ReplaceOne(ctx,
		bson.M{"responseId": rec.ResponseID},
		rec,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return false, err
	}
	return result.UpsertedCount > 0, nil
}

func (r *responseRepo) GetByResponseID(ctx context.Context, responseID string) (*model.SurveyResponse, error) {
	var rec model.SurveyResponse
	err := r.collection.FindOne(ctx, bson.M{"responseId": responseID}).Decode(&rec)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *responseRepo) List(ctx context.Context, filter ResponseFilter) ([]*model.SurveyResponse, error) {
	cursor, err := r.collection.Find(ctx, buildQuery(filter),
		options.Find().SetSort(bson.D{{Key: "recordedDate", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var recs []*model.SurveyResponse
	if err := cursor.All(ctx, &recs); err != nil {
		return nil, err
	}
	return recs, nil
}

func (r *responseRepo) Count(ctx context.Context, filter ResponseFilter) (int64, error) {
	return r.collection.CountDocuments(ctx, buildQuery(filter))
}

func (r *responseRepo) Distinct(ctx context.Context, field string, filter ResponseFilter) ([]string, error) {
	values, err := r.collection.Distinct(ctx, field, buildQuery(filter))
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out, nil
}

func buildQuery(filter ResponseFilter) bson.M {
	q := bson.M{}
	if filter.SurveyType != 0 {
		q["surveyType"] = filter.SurveyType
	}
	if filter.Mentor != "" {
		q["projectMentor"] = bson.M{"$regex": filter.Mentor, "$options": "i"}
	}
	if filter.Topic != "" {
		q["topic"] = bson.M{"$regex": filter.Topic, "$options": "i"}
	}
	if filter.ProjectName != "" {
		q["projectTitle"] = bson.M{"$regex": filter.ProjectName, "$options": "i"}
	}
	if filter.StartDate != nil || filter.EndDate != nil {
		dateRange := bson.M{}
		if filter.StartDate != nil {
			dateRange["$gte"] = *filter.StartDate
		}
		if filter.EndDate != nil {
			dateRange["$lte"] = *filter.EndDate
		}
		q["endDate"] = dateRange
	}
	return q
}
