package spatial

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCentroid(t *testing.T) {
	t.Parallel()

	t.Run("empty", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, Point{}, Centroid(nil))
	})

	t.Run("single point", func(t *testing.T) {
		t.Parallel()
		p := Point{Lat: 13.03, Lon: 77.57}
		assert.Equal(t, p, Centroid([]Point{p}))
	})

	t.Run("symmetric cluster", func(t *testing.T) {
		t.Parallel()
		pts := []Point{
			{Lat: 10, Lon: 20},
			{Lat: 12, Lon: 22},
			{Lat: 10, Lon: 22},
			{Lat: 12, Lon: 20},
		}
		c := Centroid(pts)
		assert.InDelta(t, 11, c.Lat, 1e-9)
		assert.InDelta(t, 21, c.Lon, 1e-9)
	})
}

func TestPathLength(t *testing.T) {
	t.Parallel()

	t.Run("fewer than two points", func(t *testing.T) {
		t.Parallel()
		assert.Zero(t, PathLength(nil))
		assert.Zero(t, PathLength([]Point{{Lat: 1, Lon: 1}}))
	})

	t.Run("sums consecutive legs", func(t *testing.T) {
		t.Parallel()
		pts := []Point{
			{Lat: 0, Lon: 0},
			{Lat: 1, Lon: 0},
			{Lat: 2, Lon: 0},
		}
		total := PathLength(pts)
		single := HaversineDistance(0, 0, 1, 0)
		assert.InDelta(t, 2*single, total, 1e-6)
	})
}

func TestBoundingBox(t *testing.T) {
	t.Parallel()

	pts := []Point{
		{Lat: 5, Lon: -3},
		{Lat: -2, Lon: 8},
		{Lat: 1, Lon: 0},
	}
	minLat, minLon, maxLat, maxLon := BoundingBox(pts)
	assert.Equal(t, -2.0, minLat)
	assert.Equal(t, -3.0, minLon)
	assert.Equal(t, 5.0, maxLat)
	assert.Equal(t, 8.0, maxLon)
}
