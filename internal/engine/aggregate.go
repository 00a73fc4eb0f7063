package engine

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/travelrecap/timeline-backend-go/internal/boundary"
	"github.com/travelrecap/timeline-backend-go/internal/models"
	"github.com/travelrecap/timeline-backend-go/internal/spatial"
)

// EmissionsKgCO2PerKm converts distance traveled into an estimated carbon
// mass. A single global factor is used because transport mode is frequently
// absent from the source data; 0.17 kg CO2/km approximates an average
// passenger car.
const EmissionsKgCO2PerKm = 0.17

// aggregate derives the full statistics bundle from the normalized model.
// It also resolves and fills each place's country in place. All computations
// tolerate empty input and return a zero-valued bundle.
func aggregate(visits []models.Visit, movements []models.MovementSegment, places []models.Place, resolver *boundary.Resolver) models.StatsBundle {
	bundle := models.StatsBundle{
		MovementCount: len(movements),
		UniquePlaces:  len(places),
	}

	// Total distance comes from movement segments only. Re-deriving it from
	// visit-to-visit gaps would double-count stationary GPS noise.
	for i := range movements {
		bundle.TotalDistanceMeters += movements[i].DistanceMeters
		bundle.MovingSeconds += movements[i].DurationSeconds()
	}
	for i := range visits {
		bundle.StationarySeconds += visits[i].DurationSeconds()
	}

	bundle.CarbonKgCO2 = bundle.TotalDistanceMeters / 1000.0 * EmissionsKgCO2PerKm

	// Countries: distinct non-empty resolver results over place
	// representative coordinates, in first-seen order
	if resolver != nil {
		seen := make(map[string]bool)
		for i := range places {
			name, ok := resolver.Resolve(places[i].Latitude, places[i].Longitude)
			if !ok {
				continue
			}
			places[i].Country = name
			if !seen[name] {
				seen[name] = true
				bundle.Countries = append(bundle.Countries, name)
			}
		}
		bundle.UniqueCountries = len(bundle.Countries)
	}

	bundle.Records = computeRecords(movements, places)
	bundle.DistanceSummary = distanceSummary(movements)

	return bundle
}

// computeRecords finds personal records by linear scan.
// Strict comparisons mean the earliest occurrence wins ties.
func computeRecords(movements []models.MovementSegment, places []models.Place) models.TravelRecords {
	var records models.TravelRecords

	for i := range movements {
		m := &movements[i]
		if records.LongestMovement == nil || m.DistanceMeters > records.LongestMovement.DistanceMeters {
			records.LongestMovement = &models.MovementRecord{
				DistanceMeters: m.DistanceMeters,
				StartTime:      m.StartTime,
				EndTime:        m.EndTime,
				Mode:           m.Mode,
			}
		}
	}

	if len(places) == 0 {
		return records
	}

	mostVisited := 0
	for i := range places {
		if places[i].VisitCount > places[mostVisited].VisitCount {
			mostVisited = i
		}
	}
	records.MostVisitedPlace = placeRecord(places, mostVisited, 0)

	// Home is the most-visited place; the farthest place is measured from it
	home := places[mostVisited]
	farthest := 0
	farthestDist := 0.0
	for i := range places {
		d := spatial.HaversineDistance(home.Latitude, home.Longitude, places[i].Latitude, places[i].Longitude)
		if d > farthestDist {
			farthest = i
			farthestDist = d
		}
	}
	records.FarthestFromHome = placeRecord(places, farthest, farthestDist)

	return records
}

func placeRecord(places []models.Place, idx int, distance float64) *models.PlaceRecord {
	return &models.PlaceRecord{
		PlaceIndex:     idx,
		Latitude:       places[idx].Latitude,
		Longitude:      places[idx].Longitude,
		PlaceName:      places[idx].PlaceName,
		VisitCount:     places[idx].VisitCount,
		DistanceMeters: distance,
	}
}

// distanceSummary describes the movement-distance distribution, or nil when
// there are no movements
func distanceSummary(movements []models.MovementSegment) *models.DistanceSummary {
	if len(movements) == 0 {
		return nil
	}

	distances := make([]float64, len(movements))
	for i := range movements {
		distances[i] = movements[i].DistanceMeters
	}
	mean := stat.Mean(distances, nil)

	sort.Float64s(distances)
	return &models.DistanceSummary{
		MeanMeters:   mean,
		MedianMeters: stat.Quantile(0.5, stat.Empirical, distances, nil),
		P90Meters:    stat.Quantile(0.9, stat.Empirical, distances, nil),
	}
}
