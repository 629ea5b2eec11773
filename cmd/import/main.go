package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"ascdash/internal/config"
	"ascdash/internal/repository"
	"ascdash/internal/service"
)

func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		log.Fatal("usage: import <csv-file>")
	}
	csvPath := flag.Arg(0)

	file, err := os.Open(csvPath)
	if err != nil {
		log.Fatalf("File %s does not exist: %v", csvPath, err)
	}
	defer file.Close()

	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database(cfg.MongoDatabase)
	responseRepo := repository.NewResponseRepo(db)
	rosterRepo := repository.NewRosterRepo(db)

	if err := responseRepo.EnsureIndexes(ctx); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}

	rosterSvc := service.NewRosterService(rosterRepo, nil)
	ingestSvc := service.NewIngestService(responseRepo, rosterSvc, nil)

	res, err := ingestSvc.ImportCSV(ctx, file)
	if err != nil {
		log.Fatalf("Import failed: %v", err)
	}

	fmt.Println(res.Message)
	fmt.Printf("Imported: %d, updated: %d, errors: %d\n",
		res.ImportedCount, res.UpdatedCount, res.TotalErrors)
	for _, e := range res.Errors {
		fmt.Println("  " + e)
	}
}
