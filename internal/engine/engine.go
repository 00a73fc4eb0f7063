package engine

import (
	"context"
	"log"

	"github.com/travelrecap/timeline-backend-go/internal/boundary"
	"github.com/travelrecap/timeline-backend-go/internal/models"
	"github.com/travelrecap/timeline-backend-go/internal/places"
	"github.com/travelrecap/timeline-backend-go/internal/timeline"
)

// ErrInvalidExport is the facade's fatal input error, re-exported so callers
// don't need to import the normalizer
var ErrInvalidExport = timeline.ErrInvalidExport

// Options configure a single analysis run. The zero value means no year
// filter and the default dedup radius.
type Options struct {
	// Year keeps only records starting in that calendar year (UTC) when
	// non-zero. Records without a timestamp are excluded by the filter.
	Year int

	// DedupeRadiusMeters overrides the place-merge proximity threshold
	DedupeRadiusMeters float64
}

// Engine is the single entry point of the timeline analytics core. It holds
// the one long-lived shared resource (the boundary resolver); every Analyze
// call allocates its own run state, so one Engine serves concurrent runs.
type Engine struct {
	resolver *boundary.Resolver
}

// New creates an engine over a loaded boundary resolver
func New(resolver *boundary.Resolver) *Engine {
	return &Engine{resolver: resolver}
}

// Analyze runs normalize -> dedupe -> aggregate over a raw export document.
// It fails only on structurally unrecoverable input (not JSON, or not an
// object); malformed individual segments degrade to skip counts. The result
// is complete or absent, never partial.
//
// ctx is checked between phases so a caller-side cancellation stops the work
// early; determinism of a completed run is unaffected.
func (e *Engine) Analyze(ctx context.Context, raw []byte, opts Options) (*models.AnalysisResult, error) {
	normalized, err := timeline.Normalize(raw)
	if err != nil {
		return nil, err
	}

	visits, movements := normalized.Visits, normalized.Movements
	if opts.Year != 0 {
		visits = filterVisits(visits, opts.Year)
		movements = filterMovements(movements, opts.Year)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	placeList := places.Dedupe(visits, opts.DedupeRadiusMeters)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	stats := aggregate(visits, movements, placeList, e.resolver)

	if normalized.Skipped > 0 {
		log.Printf("[Engine] Skipped %d unusable segments", normalized.Skipped)
	}

	return &models.AnalysisResult{
		Visits:          visits,
		Places:          placeList,
		Stats:           stats,
		SkippedSegments: normalized.Skipped,
	}, nil
}

func filterVisits(visits []models.Visit, year int) []models.Visit {
	out := make([]models.Visit, 0, len(visits))
	for _, v := range visits {
		if v.StartTime != nil && v.StartTime.UTC().Year() == year {
			out = append(out, v)
		}
	}
	return out
}

func filterMovements(movements []models.MovementSegment, year int) []models.MovementSegment {
	out := make([]models.MovementSegment, 0, len(movements))
	for _, m := range movements {
		if m.StartTime != nil && m.StartTime.UTC().Year() == year {
			out = append(out, m)
		}
	}
	return out
}
