package models

import "time"

// StatsBundle is the aggregate output of one analysis run.
// It is fully recomputed per run, never updated incrementally.
type StatsBundle struct {
	TotalDistanceMeters float64 `json:"totalDistanceMeters"`

	MovementCount   int      `json:"movementCount"`
	UniquePlaces    int      `json:"uniquePlaces"`
	UniqueCountries int      `json:"uniqueCountries"`
	Countries       []string `json:"countries,omitempty"` // first-seen order over places

	MovingSeconds     int64 `json:"movingSeconds"`
	StationarySeconds int64 `json:"stationarySeconds"`

	// CarbonKgCO2 = total distance (km) x the fixed emissions factor
	CarbonKgCO2 float64 `json:"carbonKgCO2"`

	Records         TravelRecords    `json:"records"`
	DistanceSummary *DistanceSummary `json:"distanceSummary,omitempty"`
}

// TravelRecords holds personal records found by linear scan.
// Ties are broken by earliest occurrence. Fields are nil on empty input.
type TravelRecords struct {
	LongestMovement  *MovementRecord `json:"longestMovement,omitempty"`
	MostVisitedPlace *PlaceRecord    `json:"mostVisitedPlace,omitempty"`
	FarthestFromHome *PlaceRecord    `json:"farthestFromHome,omitempty"`
}

// MovementRecord describes a single record-setting movement segment
type MovementRecord struct {
	DistanceMeters float64    `json:"distanceMeters"`
	StartTime      *time.Time `json:"startTime,omitempty"`
	EndTime        *time.Time `json:"endTime,omitempty"`
	Mode           string     `json:"mode,omitempty"`
}

// PlaceRecord describes a record-setting place
type PlaceRecord struct {
	PlaceIndex int     `json:"placeIndex"` // position in the run's place list
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	PlaceName  string  `json:"placeName,omitempty"`
	VisitCount int     `json:"visitCount"`

	// DistanceMeters is set for distance-based records (farthest from home)
	DistanceMeters float64 `json:"distanceMeters,omitempty"`
}

// DistanceSummary describes the distribution of movement distances
type DistanceSummary struct {
	MeanMeters   float64 `json:"meanMeters"`
	MedianMeters float64 `json:"medianMeters"`
	P90Meters    float64 `json:"p90Meters"`
}

// AnalysisResult is the full output bundle handed to callers:
// the visit list for map points, the place list for clustering/labels,
// and the stats bundle for the recap display.
type AnalysisResult struct {
	Visits          []Visit     `json:"visits"`
	Places          []Place     `json:"places"`
	Stats           StatsBundle `json:"stats"`
	SkippedSegments int         `json:"skippedSegments"`
}
