package boundary

import (
	"errors"
	"log"

	"github.com/travelrecap/timeline-backend-go/internal/spatial"
)

// ErrEmptyBoundaryDataset is returned when the resolver is built from an
// empty or unusable boundary dataset. It is a configuration error: every
// subsequent country lookup would silently fail without it.
var ErrEmptyBoundaryDataset = errors.New("boundary dataset is empty or contains no usable polygons")

// gridCellDegrees is the coarse spatial index bucket size
const gridCellDegrees = 10.0

type gridKey struct {
	latCell int
	lonCell int
}

// Resolver answers "which country contains this coordinate" against a loaded
// boundary dataset. It is immutable after construction and safe for
// concurrent reads.
type Resolver struct {
	polygons []CountryPolygon
	grid     map[gridKey][]int // polygon indexes per 10-degree cell
}

// NewResolver builds an immutable resolver over the given polygons.
// A coarse lat/lng grid index keyed by 10-degree buckets avoids testing every
// polygon per query.
func NewResolver(polygons []CountryPolygon) (*Resolver, error) {
	usable := make([]CountryPolygon, 0, len(polygons))
	for _, p := range polygons {
		if p.Name != "" && len(p.Rings) > 0 && len(p.Rings[0]) >= 3 {
			usable = append(usable, p)
		}
	}
	if len(usable) == 0 {
		return nil, ErrEmptyBoundaryDataset
	}

	r := &Resolver{
		polygons: usable,
		grid:     make(map[gridKey][]int),
	}

	for i, p := range usable {
		r.indexPolygon(i, p)
	}

	log.Printf("[BoundaryResolver] Indexed %d polygons into %d grid cells", len(usable), len(r.grid))
	return r, nil
}

// indexPolygon registers a polygon in every grid cell its outer ring's
// bounding box overlaps. Polygons wrapping the antimeridian span more than
// 180 degrees of longitude; those are registered across the full longitude
// range of their latitude rows so lookups on either side of the meridian
// find them.
func (r *Resolver) indexPolygon(idx int, p CountryPolygon) {
	minLat, minLon, maxLat, maxLon := spatial.BoundingBox(p.Rings[0])

	latLo, latHi := cellIndex(minLat), cellIndex(maxLat)
	lonLo, lonHi := cellIndex(minLon), cellIndex(maxLon)
	if maxLon-minLon > 180 {
		lonLo, lonHi = cellIndex(-180), cellIndex(180)
	}

	for lat := latLo; lat <= latHi; lat++ {
		for lon := lonLo; lon <= lonHi; lon++ {
			key := gridKey{latCell: lat, lonCell: lon}
			r.grid[key] = append(r.grid[key], idx)
		}
	}
}

// Resolve returns the name of the first polygon (in dataset order) containing
// the coordinate, or ("", false) when no polygon matches (e.g. open ocean).
// Deterministic for identical inputs.
func (r *Resolver) Resolve(lat, lon float64) (string, bool) {
	key := gridKey{latCell: cellIndex(lat), lonCell: cellIndex(lon)}
	candidates := r.grid[key]
	if len(candidates) == 0 {
		return "", false
	}

	point := spatial.Point{Lat: lat, Lon: lon}

	// Candidates preserve dataset order because indexPolygon appends in order
	for _, idx := range candidates {
		if spatial.PointInRings(point, r.polygons[idx].Rings) {
			return r.polygons[idx].Name, true
		}
	}

	return "", false
}

// Size returns the number of indexed polygons
func (r *Resolver) Size() int {
	return len(r.polygons)
}

func cellIndex(deg float64) int {
	return int(deg / gridCellDegrees)
}
