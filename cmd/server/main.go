package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/travelrecap/timeline-backend-go/internal/api"
	"github.com/travelrecap/timeline-backend-go/internal/boundary"
	"github.com/travelrecap/timeline-backend-go/internal/config"
	"github.com/travelrecap/timeline-backend-go/internal/database"
	"github.com/travelrecap/timeline-backend-go/internal/engine"
	"github.com/travelrecap/timeline-backend-go/internal/handler"
	"github.com/travelrecap/timeline-backend-go/internal/placecache"
	"github.com/travelrecap/timeline-backend-go/internal/repository"
	"github.com/travelrecap/timeline-backend-go/internal/service"
)

func main() {
	_ = godotenv.Load(".env")

	cfg := config.Load()

	// Boundary dataset: loaded once, shared read-only across all runs.
	// An empty or malformed dataset is a configuration error that would make
	// every country lookup silently fail, so the server refuses to start.
	boundaryData, err := os.ReadFile(cfg.BoundaryPath)
	if err != nil {
		log.Fatal("Failed to read boundary dataset: ", err)
	}
	polygons, err := boundary.LoadGeoJSON(boundaryData)
	if err != nil {
		log.Fatal("Failed to parse boundary dataset: ", err)
	}
	resolver, err := boundary.NewResolver(polygons)
	if err != nil {
		log.Fatal("Failed to build country resolver: ", err)
	}

	if err := database.Init(database.Config{Path: cfg.DBPath}); err != nil {
		log.Fatal("Failed to initialize database: ", err)
	}
	defer database.Close()

	// Place cache is optional: without it the engine still resolves
	// countries from the boundary dataset
	var cache *placecache.Client
	if cfg.PlaceCacheDSN != "" {
		cache, err = placecache.Open(cfg.PlaceCacheDSN)
		if err != nil {
			log.Printf("Place cache unavailable, continuing without enrichment: %v", err)
			cache = nil
		} else {
			defer cache.Close()
		}
	} else {
		log.Printf("No place cache configured")
	}

	runRepo := repository.NewRunRepository(database.GetDB())
	analysisService := service.NewAnalysisService(engine.New(resolver), runRepo, cache, cfg.DedupeRadiusMeters)

	timelineHandler := handler.NewTimelineHandler(analysisService)
	placeHandler := handler.NewPlaceHandler(cache)

	router := api.SetupRouter(cfg, timelineHandler, placeHandler)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}
