package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/travelrecap/timeline-backend-go/internal/engine"
	"github.com/travelrecap/timeline-backend-go/internal/models"
	"github.com/travelrecap/timeline-backend-go/internal/placecache"
	"github.com/travelrecap/timeline-backend-go/internal/repository"
)

// AnalysisService orchestrates the analytics engine, optional place-cache
// enrichment, and run-history persistence
type AnalysisService struct {
	engine       *engine.Engine
	runs         *repository.RunRepository
	cache        *placecache.Client // nil when no cache is configured
	dedupeRadius float64
}

// NewAnalysisService creates a new analysis service. cache may be nil.
func NewAnalysisService(eng *engine.Engine, runs *repository.RunRepository, cache *placecache.Client, dedupeRadius float64) *AnalysisService {
	return &AnalysisService{
		engine:       eng,
		runs:         runs,
		cache:        cache,
		dedupeRadius: dedupeRadius,
	}
}

// Analyze runs the engine over a raw export, enriches the result from the
// place cache when one is configured, and persists a run summary.
// Enrichment and persistence failures never fail a completed analysis.
func (s *AnalysisService) Analyze(ctx context.Context, raw []byte, year int) (*models.AnalysisResult, error) {
	result, err := s.engine.Analyze(ctx, raw, engine.Options{
		Year:               year,
		DedupeRadiusMeters: s.dedupeRadius,
	})
	if err != nil {
		return nil, err
	}

	s.enrichPlaces(ctx, result.Places)
	s.persistRun(result, year)

	return result, nil
}

// enrichPlaces attaches cached city/country labels to places by place ID.
// Cache misses and cache errors leave places untouched; the boundary dataset
// already resolved countries.
func (s *AnalysisService) enrichPlaces(ctx context.Context, places []models.Place) {
	if s.cache == nil || len(places) == 0 {
		return
	}

	ids := make([]string, 0, len(places))
	for i := range places {
		if places[i].PlaceID != "" {
			ids = append(ids, places[i].PlaceID)
		}
	}
	if len(ids) == 0 {
		return
	}

	found, err := s.cache.LookupByPlaceIDs(ctx, ids)
	if err != nil {
		log.Printf("[AnalysisService] Place cache lookup failed, continuing without enrichment: %v", err)
		return
	}

	for i := range places {
		loc, ok := found[places[i].PlaceID]
		if !ok {
			continue
		}
		if loc.City != nil && *loc.City != "" {
			places[i].City = *loc.City
		}
		if places[i].Country == "" && loc.Country != nil && *loc.Country != "" {
			places[i].Country = *loc.Country
		}
	}
}

// persistRun stores a summary of a completed analysis. Persistence is
// best-effort: the caller already has a complete result.
func (s *AnalysisService) persistRun(result *models.AnalysisResult, year int) {
	if s.runs == nil {
		return
	}

	statsJSON, err := json.Marshal(result.Stats)
	if err != nil {
		log.Printf("[AnalysisService] Failed to serialize stats for run history: %v", err)
		return
	}

	run := &models.AnalysisRun{
		ID:                  uuid.NewString(),
		CreatedAt:           time.Now().UTC(),
		Year:                year,
		VisitCount:          len(result.Visits),
		MovementCount:       result.Stats.MovementCount,
		PlaceCount:          len(result.Places),
		CountryCount:        result.Stats.UniqueCountries,
		SkippedSegments:     result.SkippedSegments,
		TotalDistanceMeters: result.Stats.TotalDistanceMeters,
		CarbonKgCO2:         result.Stats.CarbonKgCO2,
		StatsJSON:           string(statsJSON),
	}

	if err := s.runs.Create(run); err != nil {
		log.Printf("[AnalysisService] Failed to persist run summary: %v", err)
	}
}

// GetRun retrieves a persisted run summary
func (s *AnalysisService) GetRun(id string) (*models.AnalysisRun, error) {
	run, err := s.runs.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to load run: %w", err)
	}
	return run, nil
}

// ListRuns retrieves recent run summaries
func (s *AnalysisService) ListRuns(limit int) ([]models.AnalysisRun, error) {
	return s.runs.List(limit)
}

// DeleteRun removes a persisted run summary
func (s *AnalysisService) DeleteRun(id string) error {
	return s.runs.Delete(id)
}
