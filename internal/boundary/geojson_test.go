package boundary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleGeoJSON = `{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "properties": {"ADMIN": "Boxland"},
      "geometry": {
        "type": "Polygon",
        "coordinates": [[[0, 0], [10, 0], [10, 10], [0, 10], [0, 0]]]
      }
    },
    {
      "type": "Feature",
      "properties": {"name": "Archipelago"},
      "geometry": {
        "type": "MultiPolygon",
        "coordinates": [
          [[[20, 20], [25, 20], [25, 25], [20, 25], [20, 20]]],
          [[[30, 30], [35, 30], [35, 35], [30, 35], [30, 30]]]
        ]
      }
    },
    {
      "type": "Feature",
      "properties": {},
      "geometry": {
        "type": "Polygon",
        "coordinates": [[[40, 40], [45, 40], [45, 45], [40, 45], [40, 40]]]
      }
    },
    {
      "type": "Feature",
      "properties": {"ADMIN": "NoGeometry"},
      "geometry": null
    }
  ]
}`

func TestLoadGeoJSON(t *testing.T) {
	t.Parallel()

	polygons, err := LoadGeoJSON([]byte(sampleGeoJSON))
	require.NoError(t, err)

	// Boxland + two Archipelago parts; nameless and geometry-less features skipped.
	require.Len(t, polygons, 3)
	assert.Equal(t, "Boxland", polygons[0].Name)
	assert.Equal(t, "Archipelago", polygons[1].Name)
	assert.Equal(t, "Archipelago", polygons[2].Name)

	// GeoJSON pairs are [lng, lat]; first vertex of Boxland is lng=0, lat=0,
	// second is lng=10, lat=0.
	outer := polygons[0].Rings[0]
	require.Len(t, outer, 5)
	assert.Equal(t, 0.0, outer[1].Lat)
	assert.Equal(t, 10.0, outer[1].Lon)
}

func TestLoadGeoJSON_Invalid(t *testing.T) {
	t.Parallel()

	_, err := LoadGeoJSON([]byte("not json"))
	assert.Error(t, err)

	_, err = LoadGeoJSON([]byte(`{"type": "Feature"}`))
	assert.Error(t, err)
}

func TestLoadGeoJSON_RoundTripThroughResolver(t *testing.T) {
	t.Parallel()

	polygons, err := LoadGeoJSON([]byte(sampleGeoJSON))
	require.NoError(t, err)

	r, err := NewResolver(polygons)
	require.NoError(t, err)

	name, ok := r.Resolve(5, 5)
	assert.True(t, ok)
	assert.Equal(t, "Boxland", name)

	name, ok = r.Resolve(32, 32)
	assert.True(t, ok)
	assert.Equal(t, "Archipelago", name)
}
