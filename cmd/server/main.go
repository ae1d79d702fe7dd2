package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rpattn/adstats/internal/config"
	"github.com/rpattn/adstats/internal/db"
	"github.com/rpattn/adstats/internal/ingestion"
	"github.com/rpattn/adstats/internal/middleware"
	"github.com/rpattn/adstats/internal/repository"
	"github.com/rpattn/adstats/internal/stats"

	"github.com/rs/cors"
)

func main() {
	// Create context
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load configuration
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Setup database connection
	conn, err := db.NewConnection(ctx, cfg.DB)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer conn.Close()

	// Run migrations
	if err := db.RunMigrations(ctx, conn.Pool, "./migrations"); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Create repositories
	fileRepo := repository.NewUploadedFileRepository(conn.Pool)
	recordRepo := repository.NewCampaignRecordRepository(conn.Pool)
	logRepo := repository.NewUploadLogRepository(conn.Pool)
	atomic := repository.NewAtomic(conn)

	// Create services
	uploadService := ingestion.NewService(fileRepo, recordRepo, logRepo, atomic)
	statsService := stats.NewService(recordRepo)

	// Setup CORS
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
	})

	mux := http.NewServeMux()
	mux.Handle("/upload", middleware.LoggingMiddleware(ingestion.NewHTTPHandler(uploadService)))
	mux.Handle("/uploads", middleware.LoggingMiddleware(ingestion.NewListHandler(fileRepo)))
	mux.Handle("/stats", middleware.LoggingMiddleware(stats.NewHTTPHandler(statsService)))

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      corsHandler.Handler(mux),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting upload server on %s", cfg.ListenAddr)
		log.Printf("Upload endpoint available at http://localhost%s/upload", cfg.ListenAddr)
		log.Printf("Stats endpoint available at http://localhost%s/stats", cfg.ListenAddr)

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
