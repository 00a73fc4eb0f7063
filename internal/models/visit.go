package models

import "time"

// Visit represents one normalized stay extracted from a raw export segment.
// Start/End are nil when the source segment carried no parseable timestamp;
// such visits still count for spatial aggregates but not for time-based ones.
type Visit struct {
	Latitude  float64    `json:"latitude"`
	Longitude float64    `json:"longitude"`
	StartTime *time.Time `json:"startTime,omitempty"`
	EndTime   *time.Time `json:"endTime,omitempty"`

	// Probability is the export's confidence for the top location candidate (0~1)
	Probability float64 `json:"probability"`

	// Optional identity/labels carried over from the export
	PlaceID   string `json:"placeId,omitempty"`
	PlaceName string `json:"placeName,omitempty"`
	Address   string `json:"address,omitempty"`
}

// DurationSeconds returns the visit duration, or 0 when either timestamp is missing
func (v *Visit) DurationSeconds() int64 {
	if v.StartTime == nil || v.EndTime == nil {
		return 0
	}
	d := v.EndTime.Sub(*v.StartTime)
	if d < 0 {
		return 0
	}
	return int64(d.Seconds())
}

// MovementSegment represents travel between visits
type MovementSegment struct {
	StartTime      *time.Time `json:"startTime,omitempty"`
	EndTime        *time.Time `json:"endTime,omitempty"`
	DistanceMeters float64    `json:"distanceMeters"`
	Mode           string     `json:"mode,omitempty"` // e.g. IN_PASSENGER_VEHICLE, WALKING; empty when absent
}

// DurationSeconds returns the movement duration, or 0 when either timestamp is missing
func (m *MovementSegment) DurationSeconds() int64 {
	if m.StartTime == nil || m.EndTime == nil {
		return 0
	}
	d := m.EndTime.Sub(*m.StartTime)
	if d < 0 {
		return 0
	}
	return int64(d.Seconds())
}
