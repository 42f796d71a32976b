package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"votepulse/internal/analytics"
	"votepulse/internal/config"
	"votepulse/internal/metrics"
	"votepulse/internal/server"
	"votepulse/internal/store"
)

func main() {
	cfg := config.Load()

	catalog, err := config.LoadCatalog(cfg.ProjectsFile)
	if err != nil {
		log.Fatalf("Failed to load project catalog: %v", err)
	}
	log.Printf("Loaded %d projects from catalog", len(catalog.Projects))

	// Local cache is always available; it backs the remote store in
	// degraded mode and is the whole store in development.
	cache, err := store.OpenSQLite(cfg.CachePath)
	if err != nil {
		log.Fatalf("Failed to open local cache: %v", err)
	}
	defer cache.Close()

	var st store.Store = cache
	if cfg.RedisURL != "" {
		remote, err := store.OpenRedis(cfg.RedisURL)
		if err != nil {
			log.Fatalf("Failed to connect to aggregate store: %v", err)
		}
		defer remote.Close()
		st = store.NewMirrored(remote, cache)
	} else {
		log.Println("REDIS_URL not set; running against the local store only")
	}

	// Register the scrape-time metrics collector
	metrics.Init(analytics.New(st))

	if cfg.AdminKey == "" {
		log.Println("ADMIN_KEY not set; the reset surface is disabled")
	}

	srv := server.New(cfg)
	srv.RegisterRoutes(st, catalog)

	// Graceful shutdown
	go func() {
		if err := srv.Start(); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("Server started on %s", cfg.ServerAddr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := srv.Shutdown(); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited")
}
