package timeline

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Wire structures for the semantic-segment export. The export's shape varies
// by device and app version, so every nested field is optional and segments
// are decoded individually: one malformed segment never fails the import.
type rawExport struct {
	SemanticSegments []json.RawMessage `json:"semanticSegments"`
}

type rawSegment struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`

	Visit        *rawVisit      `json:"visit"`
	Activity     *rawActivity   `json:"activity"`
	TimelinePath []rawPathPoint `json:"timelinePath"`
}

type rawVisit struct {
	Probability  flexFloat     `json:"probability"`
	TopCandidate *rawCandidate `json:"topCandidate"`
}

type rawCandidate struct {
	PlaceID       string       `json:"placeId"`
	SemanticType  string       `json:"semanticType"`
	Name          string       `json:"name"`
	Address       string       `json:"address"`
	PlaceLocation *rawLocation `json:"placeLocation"`
}

type rawLocation struct {
	LatLng string `json:"latLng"`
}

type rawActivity struct {
	Start          *rawLocation          `json:"start"`
	End            *rawLocation          `json:"end"`
	DistanceMeters flexFloat             `json:"distanceMeters"`
	TopCandidate   *rawActivityCandidate `json:"topCandidate"`
}

type rawActivityCandidate struct {
	Type        string    `json:"type"`
	Probability flexFloat `json:"probability"`
}

type rawPathPoint struct {
	Point string `json:"point"`
	Time  string `json:"time"`
}

// flexFloat decodes a JSON number that some export versions emit as a quoted
// string (e.g. "distanceMeters": "1222.0")
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			*f = 0
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		*f = flexFloat(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = flexFloat(v)
	return nil
}
