package timeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLatLng(t *testing.T) {
	t.Parallel()

	t.Run("degree suffixed pair", func(t *testing.T) {
		t.Parallel()
		lat, lng, err := ParseLatLng("13.0378414°, 77.5758153°")
		require.NoError(t, err)
		assert.InDelta(t, 13.0378414, lat, 1e-9)
		assert.InDelta(t, 77.5758153, lng, 1e-9)
	})

	t.Run("negative coordinates", func(t *testing.T) {
		t.Parallel()
		lat, lng, err := ParseLatLng("-33.8688°, -70.6693°")
		require.NoError(t, err)
		assert.InDelta(t, -33.8688, lat, 1e-9)
		assert.InDelta(t, -70.6693, lng, 1e-9)
	})

	t.Run("no degree signs", func(t *testing.T) {
		t.Parallel()
		lat, lng, err := ParseLatLng("10.5, 20.25")
		require.NoError(t, err)
		assert.Equal(t, 10.5, lat)
		assert.Equal(t, 20.25, lng)
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		t.Parallel()
		bad := []string{
			"",
			"13.0378414",
			"a, b",
			"1, 2, 3",
			"91.0°, 10.0°",
			"-90.5°, 0.0°",
			"45.0°, 181.0°",
			"45.0°, -180.5°",
		}
		for _, s := range bad {
			_, _, err := ParseLatLng(s)
			assert.Error(t, err, "input %q", s)
		}
	})

	t.Run("accepts range extremes", func(t *testing.T) {
		t.Parallel()
		lat, lng, err := ParseLatLng("90.0°, -180.0°")
		require.NoError(t, err)
		assert.Equal(t, 90.0, lat)
		assert.Equal(t, -180.0, lng)
	})
}

func TestParseTime(t *testing.T) {
	t.Parallel()

	assert.Nil(t, parseTime(""))
	assert.Nil(t, parseTime("yesterday"))

	ts := parseTime("2024-03-15T09:00:00+05:30")
	require.NotNil(t, ts)
	assert.Equal(t, 2024, ts.Year())
	assert.Equal(t, "2024-03-15T03:30:00Z", ts.UTC().Format("2006-01-02T15:04:05Z07:00"))
}
