package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v3"
	redisstore "github.com/gofiber/storage/redis/v3"

	"pathways/internal/config"
	"pathways/internal/db"
	"pathways/internal/handlers"
	"pathways/internal/jobs"
	"pathways/internal/metrics"
	"pathways/internal/server"
	"pathways/internal/upstream"
	"pathways/internal/validation"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.Load()

	if ok, msg := validation.ValidateURL(cfg.UpstreamURL); !ok {
		log.Fatalf("Invalid UPSTREAM_URL: %s", msg)
	}

	catalog, err := cfg.LoadCatalog()
	if err != nil {
		log.Fatalf("Failed to load pathway catalog: %v", err)
	}
	log.Printf("Loaded %d pathways", len(catalog))

	var checks []handlers.ProbeCheck

	// Initialize database (optional)
	var events metrics.EventStore
	if cfg.IsDatabaseEnabled() {
		database, err := db.New(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer database.Close()

		if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
		log.Println("Migrations completed successfully")

		events = database
		checks = append(checks, handlers.ProbeCheck{Name: "database", Check: database.Ping})
	} else {
		log.Println("DATABASE_URL not set; pathway event counters are disabled")
	}
	metrics.Init(events)

	// Session storage (optional)
	var storage fiber.Storage
	if cfg.IsRedisEnabled() {
		store := redisstore.New(redisstore.Config{URL: cfg.RedisURL})
		defer store.Close()

		storage = store
		checks = append(checks, handlers.ProbeCheck{
			Name: "session storage",
			Check: func(ctx context.Context) error {
				return store.Conn().Ping(ctx).Err()
			},
		})
		log.Println("Sessions are stored in Redis")
	}

	// Backend health checker
	checker := jobs.NewUpstreamChecker(cfg.UpstreamEndpoint(cfg.UpstreamHealthPath), cfg.UpstreamCheckInterval)
	go checker.Start(ctx)
	checks = append(checks, handlers.ProbeCheck{Name: "backend", Check: checker.Ready})

	srv := server.New(cfg, storage)
	srv.RegisterRoutes(upstream.NewClient(cfg), catalog, checks...)

	// Graceful shutdown
	go func() {
		if err := srv.Start(); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("Server started on %s (backend: %s)", cfg.ServerAddr, cfg.UpstreamURL)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	cancel()
	if err := srv.Shutdown(); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited")
}
