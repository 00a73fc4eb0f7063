package boundary

import (
	"encoding/json"
	"fmt"

	"github.com/travelrecap/timeline-backend-go/internal/spatial"
)

// CountryPolygon is one country outline: an outer ring plus optional holes.
// A MultiPolygon country expands into several CountryPolygon entries sharing
// the same name. Loaded once; read-only afterwards.
type CountryPolygon struct {
	Name  string
	Rings [][]spatial.Point // Rings[0] = outer boundary, Rings[1:] = holes
}

// geoJSON wire structures. Coordinates follow the GeoJSON convention:
// [longitude, latitude].
type featureCollection struct {
	Type     string    `json:"type"`
	Features []feature `json:"features"`
}

type feature struct {
	Type       string         `json:"type"`
	Properties map[string]any `json:"properties"`
	Geometry   *geometry      `json:"geometry"`
}

type geometry struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

// nameKeys are the property keys checked, in order, for a country name.
// Covers Natural Earth ("ADMIN", "NAME") and plain ("name") datasets.
var nameKeys = []string{"ADMIN", "admin", "NAME", "name", "NAME_EN", "name_en"}

// LoadGeoJSON parses a GeoJSON FeatureCollection of country outlines into
// CountryPolygon records. Features without a usable name or geometry are
// skipped; an input that is not a FeatureCollection is an error.
func LoadGeoJSON(data []byte) ([]CountryPolygon, error) {
	var fc featureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("failed to parse boundary dataset: %w", err)
	}
	if fc.Type != "FeatureCollection" {
		return nil, fmt.Errorf("boundary dataset is not a FeatureCollection (got %q)", fc.Type)
	}

	var polygons []CountryPolygon
	for _, f := range fc.Features {
		name := featureName(f.Properties)
		if name == "" || f.Geometry == nil {
			continue
		}

		switch f.Geometry.Type {
		case "Polygon":
			var coords [][][]float64
			if err := json.Unmarshal(f.Geometry.Coordinates, &coords); err != nil {
				continue
			}
			if p, ok := polygonFromCoords(name, coords); ok {
				polygons = append(polygons, p)
			}
		case "MultiPolygon":
			var coords [][][][]float64
			if err := json.Unmarshal(f.Geometry.Coordinates, &coords); err != nil {
				continue
			}
			for _, poly := range coords {
				if p, ok := polygonFromCoords(name, poly); ok {
					polygons = append(polygons, p)
				}
			}
		}
	}

	return polygons, nil
}

// featureName extracts the country name from feature properties
func featureName(props map[string]any) string {
	for _, key := range nameKeys {
		if v, ok := props[key]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}

// polygonFromCoords converts GeoJSON [lng, lat] rings into a CountryPolygon
func polygonFromCoords(name string, coords [][][]float64) (CountryPolygon, bool) {
	rings := make([][]spatial.Point, 0, len(coords))
	for _, ring := range coords {
		pts := make([]spatial.Point, 0, len(ring))
		for _, pair := range ring {
			if len(pair) < 2 {
				continue
			}
			pts = append(pts, spatial.Point{Lat: pair[1], Lon: pair[0]})
		}
		if len(pts) >= 3 {
			rings = append(rings, pts)
		}
	}
	if len(rings) == 0 {
		return CountryPolygon{}, false
	}
	return CountryPolygon{Name: name, Rings: rings}, true
}
