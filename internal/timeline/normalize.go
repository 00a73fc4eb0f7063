package timeline

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/travelrecap/timeline-backend-go/internal/models"
	"github.com/travelrecap/timeline-backend-go/internal/spatial"
)

// ErrInvalidExport is returned when the uploaded content is not parseable as
// a JSON object at all. This is the only fatal input error: everything else
// degrades to per-segment skips.
var ErrInvalidExport = errors.New("export is not a valid JSON object")

// Normalized is the canonical model produced from a raw export: visits and
// movements in document order, plus a count of segments that were skipped
// because their shape or values could not be used.
type Normalized struct {
	Visits    []models.Visit
	Movements []models.MovementSegment
	Skipped   int
}

// Normalize walks the raw export's segment list in document order and
// extracts typed visit and movement records. It never deduplicates and never
// resolves countries; those are downstream concerns.
func Normalize(raw []byte) (*Normalized, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, ErrInvalidExport
	}

	var export rawExport
	if err := json.Unmarshal(trimmed, &export); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidExport, err)
	}

	out := &Normalized{}
	for _, msg := range export.SemanticSegments {
		var seg rawSegment
		if err := json.Unmarshal(msg, &seg); err != nil {
			out.Skipped++
			continue
		}
		normalizeSegment(&seg, out)
	}

	return out, nil
}

// normalizeSegment classifies one raw segment by structural shape.
// Recognized variants: visit, activity, timelinePath. Anything else is
// counted as skipped.
func normalizeSegment(seg *rawSegment, out *Normalized) {
	switch {
	case seg.Visit != nil:
		normalizeVisit(seg, out)
	case seg.Activity != nil:
		normalizeActivity(seg, out)
	case len(seg.TimelinePath) > 0:
		normalizePath(seg, out)
	default:
		out.Skipped++
	}
}

func normalizeVisit(seg *rawSegment, out *Normalized) {
	cand := seg.Visit.TopCandidate
	if cand == nil || cand.PlaceLocation == nil || cand.PlaceLocation.LatLng == "" {
		out.Skipped++
		return
	}

	lat, lng, err := ParseLatLng(cand.PlaceLocation.LatLng)
	if err != nil {
		out.Skipped++
		return
	}

	name := cand.Name
	if name == "" {
		name = cand.SemanticType
	}

	out.Visits = append(out.Visits, models.Visit{
		Latitude:    lat,
		Longitude:   lng,
		StartTime:   parseTime(seg.StartTime),
		EndTime:     parseTime(seg.EndTime),
		Probability: float64(seg.Visit.Probability),
		PlaceID:     cand.PlaceID,
		PlaceName:   name,
		Address:     cand.Address,
	})
}

func normalizeActivity(seg *rawSegment, out *Normalized) {
	act := seg.Activity

	distance := float64(act.DistanceMeters)
	if distance < 0 {
		out.Skipped++
		return
	}

	// Without an explicit distance, derive it from the start/end coordinates;
	// an activity with neither is unusable
	if distance == 0 {
		if act.Start == nil || act.End == nil {
			out.Skipped++
			return
		}
		sLat, sLng, err1 := ParseLatLng(act.Start.LatLng)
		eLat, eLng, err2 := ParseLatLng(act.End.LatLng)
		if err1 != nil || err2 != nil {
			out.Skipped++
			return
		}
		distance = spatial.HaversineDistance(sLat, sLng, eLat, eLng)
	}

	mode := ""
	if act.TopCandidate != nil {
		mode = act.TopCandidate.Type
	}

	out.Movements = append(out.Movements, models.MovementSegment{
		StartTime:      parseTime(seg.StartTime),
		EndTime:        parseTime(seg.EndTime),
		DistanceMeters: distance,
		Mode:           mode,
	})
}

// normalizePath derives a movement from a recorded path by summing
// great-circle distances between successive points. Unparseable points are
// dropped from the path; a path with fewer than two usable points is skipped.
func normalizePath(seg *rawSegment, out *Normalized) {
	points := make([]spatial.Point, 0, len(seg.TimelinePath))
	for _, pp := range seg.TimelinePath {
		lat, lng, err := ParseLatLng(pp.Point)
		if err != nil {
			continue
		}
		points = append(points, spatial.Point{Lat: lat, Lon: lng})
	}

	if len(points) < 2 {
		out.Skipped++
		return
	}

	out.Movements = append(out.Movements, models.MovementSegment{
		StartTime:      parseTime(seg.StartTime),
		EndTime:        parseTime(seg.EndTime),
		DistanceMeters: spatial.PathLength(points),
	})
}
