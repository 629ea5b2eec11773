package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"ascdash/internal/model"
)

// RosterRepo handles MongoDB operations for lookup rosters
type RosterRepo interface {
	Get(ctx context.Context, name string) (*model.Roster, error)
	Put(ctx context.Context, roster *model.Roster) error
}

type rosterRepo struct {
	collection *mongo.Collection
}

// NewRosterRepo creates a new roster repository
func NewRosterRepo(db *mongo.Database) RosterRepo {
	return &rosterRepo{
		collection: db.Collection("rosters"),
	}
}

func (r *rosterRepo) Get(ctx context.Context, name string) (*model.Roster, error) {
	var roster model.Roster
	err := r.collection.FindOne(ctx, bson.M{"_id": name}).Decode(&roster)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &roster, nil
}

func (r *rosterRepo) Put(ctx context.Context, roster *model.Roster) error {
	roster.UpdatedAt = time.Now()
	_, err := r.collection.ReplaceOne(ctx,
		bson.M{"_id": roster.Name},
		roster,
		options.Replace().SetUpsert(true),
	)
	return err
}
