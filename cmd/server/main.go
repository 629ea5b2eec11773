package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"ascdash/internal/cache"
	"ascdash/internal/config"
	"ascdash/internal/repository"
	"ascdash/internal/service"
	"ascdash/internal/transport/rest"
	"ascdash/internal/transport/ws"
)

// @title ASC Survey Dashboard API
// @version 1.0
// @description Qualtrics survey ingestion and analytics dashboard
// @host localhost:8080
// @BasePath /v1
func main() {
	log.Println("started")
	ctx := context.Background()

	cfg := config.Load()

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer mongoClient.Disconnect(ctx)

	// Ping MongoDB
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}
	log.Println("Connected to MongoDB")

	db := mongoClient.Database(cfg.MongoDatabase)

	// Redis connection
	redisAddr := cfg.RedisAddr
	if len(redisAddr) > 8 && redisAddr[:8] == "redis://" {
		redisAddr = redisAddr[8:]
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: redisAddr,
	})
	defer rdb.Close()

	// Ping Redis
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatal("Failed to ping Redis:", err)
	}
	log.Println("Connected to Redis")

	// Initialize WebSocket hub
	wsHub := ws.NewHub()
	log.Println("WebSocket hub started")

	// Initialize repositories
	responseRepo := repository.NewResponseRepo(db)
	rosterRepo := repository.NewRosterRepo(db)

	if err := responseRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal("Failed to create indexes:", err)
	}

	// Initialize caches
	rosterCache := cache.NewRosterCache(rdb, cfg.RosterTTL)
	statsCache := cache.NewStatsCache(rdb, cfg.StatsTTL)

	// Initialize services
	authSvc := service.NewAuthService(cfg)
	rosterSvc := service.NewRosterService(rosterRepo, rosterCache)
	ingestSvc := service.NewIngestService(responseRepo, rosterSvc, statsCache)
	responseSvc := service.NewResponseService(responseRepo, statsCache)

	// Inject broadcaster (wsHub implements service.Broadcaster)
	ingestSvc.SetBroadcaster(wsHub)

	// Create router with container
	container := &rest.Container{
		AuthService:     authSvc,
		IngestService:   ingestSvc,
		ResponseService: responseSvc,
		WSHub:           wsHub,
	}

	router := rest.NewRouter(container)

	// Start server
	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.HTTPPort)
		log.Println("Endpoints:")
		log.Println("  POST /v1/auth/login")
		log.Println("  POST /v1/webhooks/qualtrics")
		log.Println("  POST /v1/imports/qualtrics")
		log.Println("  GET  /v1/responses")
		log.Println("  GET  /v1/stats")
		log.Println("  GET  /v1/filters")
		log.Println("  WS   /v1/ws/dashboard")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe:", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
