package models

import "time"

// AnalysisRun is a persisted summary of one completed analysis.
// Only the summary is stored; the full visit list is never persisted.
type AnalysisRun struct {
	ID        string    `json:"id" db:"id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	// Year filter used for the run, 0 when unfiltered
	Year int `json:"year,omitempty" db:"year"`

	VisitCount          int     `json:"visitCount" db:"visit_count"`
	MovementCount       int     `json:"movementCount" db:"movement_count"`
	PlaceCount          int     `json:"placeCount" db:"place_count"`
	CountryCount        int     `json:"countryCount" db:"country_count"`
	SkippedSegments     int     `json:"skippedSegments" db:"skipped_segments"`
	TotalDistanceMeters float64 `json:"totalDistanceMeters" db:"total_distance_meters"`
	CarbonKgCO2         float64 `json:"carbonKgCO2" db:"carbon_kg_co2"`

	// StatsJSON is the serialized StatsBundle for the run
	StatsJSON string `json:"-" db:"stats_json"`
}
