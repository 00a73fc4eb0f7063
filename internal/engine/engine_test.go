package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/travelrecap/timeline-backend-go/internal/boundary"
	"github.com/travelrecap/timeline-backend-go/internal/spatial"
)

func testResolver(t *testing.T) *boundary.Resolver {
	t.Helper()

	square := func(name string, minLat, minLon, maxLat, maxLon float64) boundary.CountryPolygon {
		return boundary.CountryPolygon{
			Name: name,
			Rings: [][]spatial.Point{{
				{Lat: minLat, Lon: minLon},
				{Lat: minLat, Lon: maxLon},
				{Lat: maxLat, Lon: maxLon},
				{Lat: maxLat, Lon: minLon},
				{Lat: minLat, Lon: minLon},
			}},
		}
	}

	r, err := boundary.NewResolver([]boundary.CountryPolygon{
		square("Boxland", 0, 0, 20, 20),
		square("Farland", 40, 40, 60, 60),
	})
	require.NoError(t, err)
	return r
}

func TestAnalyze_InvalidExport(t *testing.T) {
	t.Parallel()

	e := New(testResolver(t))
	_, err := e.Analyze(context.Background(), []byte("[]"), Options{})
	assert.ErrorIs(t, err, ErrInvalidExport)
}

func TestAnalyze_EmptySegmentList(t *testing.T) {
	t.Parallel()

	e := New(testResolver(t))
	result, err := e.Analyze(context.Background(), []byte(`{"semanticSegments": []}`), Options{})
	require.NoError(t, err)

	assert.Empty(t, result.Visits)
	assert.Empty(t, result.Places)
	assert.Zero(t, result.SkippedSegments)
	assert.Zero(t, result.Stats.TotalDistanceMeters)
	assert.Zero(t, result.Stats.CarbonKgCO2)
	assert.Zero(t, result.Stats.UniquePlaces)
	assert.Zero(t, result.Stats.UniqueCountries)
	assert.Nil(t, result.Stats.DistanceSummary)
	assert.Nil(t, result.Stats.Records.LongestMovement)
	assert.Nil(t, result.Stats.Records.MostVisitedPlace)
}

func TestAnalyze_FullPipeline(t *testing.T) {
	t.Parallel()

	raw := `{
	  "semanticSegments": [
	    {
	      "startTime": "2024-05-01T08:00:00Z",
	      "endTime": "2024-05-01T18:00:00Z",
	      "visit": {
	        "probability": 0.9,
	        "topCandidate": {"placeId": "home", "name": "Home", "placeLocation": {"latLng": "10.0°, 10.0°"}}
	      }
	    },
	    {
	      "startTime": "2024-05-02T08:00:00Z",
	      "endTime": "2024-05-02T09:00:00Z",
	      "activity": {
	        "distanceMeters": 1000,
	        "topCandidate": {"type": "WALKING"}
	      }
	    },
	    {
	      "startTime": "2024-05-02T09:00:00Z",
	      "endTime": "2024-05-02T17:00:00Z",
	      "visit": {
	        "probability": 0.8,
	        "topCandidate": {"placeId": "home", "name": "Home", "placeLocation": {"latLng": "10.0°, 10.0°"}}
	      }
	    },
	    {
	      "startTime": "2024-05-10T12:00:00Z",
	      "endTime": "2024-05-10T14:00:00Z",
	      "visit": {
	        "probability": 0.7,
	        "topCandidate": {"placeId": "resort", "name": "Resort", "placeLocation": {"latLng": "50.0°, 50.0°"}}
	      }
	    },
	    {"unknownSegment": true}
	  ]
	}`

	e := New(testResolver(t))
	result, err := e.Analyze(context.Background(), []byte(raw), Options{})
	require.NoError(t, err)

	assert.Len(t, result.Visits, 3)
	assert.Equal(t, 1, result.SkippedSegments)

	require.Len(t, result.Places, 2)
	assert.Equal(t, "Home", result.Places[0].PlaceName)
	assert.Equal(t, 2, result.Places[0].VisitCount)
	assert.Equal(t, "Boxland", result.Places[0].Country)
	assert.Equal(t, "Farland", result.Places[1].Country)

	stats := result.Stats
	assert.Equal(t, 1000.0, stats.TotalDistanceMeters)
	assert.Equal(t, 1, stats.MovementCount)
	assert.Equal(t, 2, stats.UniquePlaces)
	assert.Equal(t, 2, stats.UniqueCountries)
	assert.Equal(t, []string{"Boxland", "Farland"}, stats.Countries)

	// 1 km at 0.17 kg/km
	assert.InDelta(t, 0.17, stats.CarbonKgCO2, 1e-9)

	assert.InDelta(t, 3600, stats.MovingSeconds, 0.001)
	assert.InDelta(t, (10+8+2)*3600, stats.StationarySeconds, 0.001)

	require.NotNil(t, stats.Records.LongestMovement)
	assert.Equal(t, 1000.0, stats.Records.LongestMovement.DistanceMeters)
	assert.Equal(t, "WALKING", stats.Records.LongestMovement.Mode)

	require.NotNil(t, stats.Records.MostVisitedPlace)
	assert.Equal(t, "Home", stats.Records.MostVisitedPlace.PlaceName)
	assert.Equal(t, 2, stats.Records.MostVisitedPlace.VisitCount)

	require.NotNil(t, stats.Records.FarthestFromHome)
	assert.Equal(t, "Resort", stats.Records.FarthestFromHome.PlaceName)
	assert.Positive(t, stats.Records.FarthestFromHome.DistanceMeters)

	require.NotNil(t, stats.DistanceSummary)
	assert.Equal(t, 1000.0, stats.DistanceSummary.MeanMeters)
}

func TestAnalyze_YearFilter(t *testing.T) {
	t.Parallel()

	raw := `{
	  "semanticSegments": [
	    {
	      "startTime": "2023-12-31T23:00:00Z",
	      "visit": {"topCandidate": {"name": "OldYear", "placeLocation": {"latLng": "5.0°, 5.0°"}}}
	    },
	    {
	      "startTime": "2024-01-01T01:00:00Z",
	      "visit": {"topCandidate": {"name": "NewYear", "placeLocation": {"latLng": "15.0°, 15.0°"}}}
	    },
	    {
	      "visit": {"topCandidate": {"name": "Undated", "placeLocation": {"latLng": "6.0°, 6.0°"}}}
	    },
	    {
	      "startTime": "2023-06-01T10:00:00Z",
	      "activity": {"distanceMeters": 500}
	    },
	    {
	      "startTime": "2024-06-01T10:00:00Z",
	      "activity": {"distanceMeters": 2000}
	    }
	  ]
	}`

	e := New(testResolver(t))
	result, err := e.Analyze(context.Background(), []byte(raw), Options{Year: 2024})
	require.NoError(t, err)

	// Undated records are excluded whenever a year filter is set.
	require.Len(t, result.Visits, 1)
	assert.Equal(t, "NewYear", result.Visits[0].PlaceName)
	assert.Equal(t, 2000.0, result.Stats.TotalDistanceMeters)
	assert.Equal(t, 1, result.Stats.MovementCount)
}

func TestAnalyze_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := New(testResolver(t))
	_, err := e.Analyze(ctx, []byte(`{"semanticSegments": []}`), Options{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAnalyze_Deterministic(t *testing.T) {
	t.Parallel()

	raw := `{
	  "semanticSegments": [
	    {"visit": {"topCandidate": {"placeId": "a", "placeLocation": {"latLng": "5.0°, 5.0°"}}}},
	    {"visit": {"topCandidate": {"placeId": "b", "placeLocation": {"latLng": "15.0°, 15.0°"}}}},
	    {"activity": {"distanceMeters": 1200}},
	    {"activity": {"distanceMeters": 3400}}
	  ]
	}`

	e := New(testResolver(t))
	first, err := e.Analyze(context.Background(), []byte(raw), Options{})
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		next, err := e.Analyze(context.Background(), []byte(raw), Options{})
		require.NoError(t, err)
		assert.Equal(t, first, next)
	}
}
