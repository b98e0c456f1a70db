package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Divas-Gupta30/text-extractor/internal/api"
	"github.com/Divas-Gupta30/text-extractor/internal/cache"
	"github.com/Divas-Gupta30/text-extractor/internal/config"
	"github.com/Divas-Gupta30/text-extractor/internal/ingestion"
	"github.com/Divas-Gupta30/text-extractor/internal/ingestion/tesseract"
	"github.com/Divas-Gupta30/text-extractor/internal/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	var extractor ingestion.Extractor = &ingestion.Dispatcher{
		PDF: ingestion.PDF{},
		OCR: tesseract.New(),
	}

	opts := api.Options{
		MaxUploadBytes: cfg.MaxUploadBytes,
		MaxMemoryBytes: cfg.MaxMemoryBytes,
		AllowOrigin:    cfg.AllowOrigin,
	}

	if cfg.RedisURL != "" {
		rdb, err := cache.NewRedis(context.Background(), cfg.RedisURL, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.Printf("Warning: Failed to connect to Redis: %v", err)
			log.Println("Extraction will run without caching")
		} else {
			log.Println("Connected to Redis cache")
			defer rdb.Close()
			extractor = cache.Wrap(extractor, rdb, cfg.CacheTTL)
			opts.Cache = rdb
		}
	}

	page, err := web.NewHandler(cfg.EndpointURL)
	if err != nil {
		log.Fatalf("Failed to build page: %v", err)
	}

	router := api.NewRouter(api.NewHandler(extractor, opts), page)
	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Text Extractor starting on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	log.Println("Shutting down gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
		return
	}
	log.Println("Server exited")
}
