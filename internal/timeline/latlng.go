package timeline

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseLatLng parses a textual coordinate pair in the export's degree-suffixed
// format, e.g. "13.0378414°, 77.5758153°". Values outside the valid
// latitude/longitude ranges are rejected.
func ParseLatLng(s string) (lat, lng float64, err error) {
	cleaned := strings.ReplaceAll(s, "°", "")
	parts := strings.Split(cleaned, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("malformed coordinate pair %q", s)
	}

	lat, err = strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid latitude in %q: %w", s, err)
	}
	lng, err = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid longitude in %q: %w", s, err)
	}

	if lat < -90 || lat > 90 {
		return 0, 0, fmt.Errorf("latitude %v out of range", lat)
	}
	if lng < -180 || lng > 180 {
		return 0, 0, fmt.Errorf("longitude %v out of range", lng)
	}

	return lat, lng, nil
}

// parseTime parses an export timestamp, returning nil when the value is
// missing or unparseable. Exports use RFC 3339 with offsets.
func parseTime(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil
	}
	return &t
}
