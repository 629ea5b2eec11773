package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"ascdash/internal/config"
	"ascdash/internal/repository"
	"ascdash/internal/service"
)

func main() {
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database(cfg.MongoDatabase)
	rosterRepo := repository.NewRosterRepo(db)
	rosterSvc := service.NewRosterService(rosterRepo, nil)

	if err := rosterSvc.Seed(ctx); err != nil {
		log.Fatalf("Failed to seed rosters: %v", err)
	}

	fmt.Printf("Seeded rosters: %d mentors, %d topics\n",
		len(service.DefaultMentors), len(service.DefaultTopics))
}
