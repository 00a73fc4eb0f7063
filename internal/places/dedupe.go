package places

import (
	"math"

	"github.com/travelrecap/timeline-backend-go/internal/models"
	"github.com/travelrecap/timeline-backend-go/internal/spatial"
)

// DefaultRadiusMeters is the proximity threshold under which two visits are
// considered the same place
const DefaultRadiusMeters = 100.0

// Dedupe clusters visits into distinct places with single-linkage clustering
// over the proximity graph: two visits merge when they share a non-empty
// place ID, or when their coordinates are within radiusMeters and the pair
// does not carry two different non-empty place IDs.
//
// Single linkage is transitive through direct pairwise distance only, so
// distant visits can end up in one place through a chain of intermediates.
// That chaining is a deliberate simplicity/accuracy trade-off, not a bug.
//
// Output is deterministic: places appear in first-appearance order of their
// founding visit, and the representative coordinate is the arithmetic mean
// of the member visits, computed once.
func Dedupe(visits []models.Visit, radiusMeters float64) []models.Place {
	if len(visits) == 0 {
		return nil
	}
	if radiusMeters <= 0 {
		radiusMeters = DefaultRadiusMeters
	}

	uf := newUnionFind(len(visits))

	// Identifier takes precedence over proximity: visits sharing a place ID
	// merge regardless of distance
	byPlaceID := make(map[string]int)
	for i, v := range visits {
		if v.PlaceID == "" {
			continue
		}
		if first, ok := byPlaceID[v.PlaceID]; ok {
			uf.union(first, i)
		} else {
			byPlaceID[v.PlaceID] = i
		}
	}

	// Proximity pass over a spatial hash so only nearby pairs are tested.
	// Cell size matches the radius, so any pair within radiusMeters is in
	// the same or an adjacent cell.
	grid := buildGrid(visits, radiusMeters)
	for i, v := range visits {
		for _, j := range grid.neighbors(v.Latitude, v.Longitude) {
			if j <= i {
				continue
			}
			o := visits[j]
			if v.PlaceID != "" && o.PlaceID != "" && v.PlaceID != o.PlaceID {
				continue // conflicting identifiers block proximity merging
			}
			if spatial.HaversineDistance(v.Latitude, v.Longitude, o.Latitude, o.Longitude) <= radiusMeters {
				uf.union(i, j)
			}
		}
	}

	return buildPlaces(visits, uf)
}

// buildPlaces materializes clusters in founding-visit order
func buildPlaces(visits []models.Visit, uf *unionFind) []models.Place {
	clusters := make(map[int][]int)
	order := make([]int, 0)

	for i := range visits {
		root := uf.find(i)
		if _, seen := clusters[root]; !seen {
			order = append(order, root)
		}
		clusters[root] = append(clusters[root], i)
	}

	result := make([]models.Place, 0, len(order))
	for _, root := range order {
		members := clusters[root]

		pts := make([]spatial.Point, len(members))
		for k, idx := range members {
			pts[k] = spatial.Point{Lat: visits[idx].Latitude, Lon: visits[idx].Longitude}
		}
		center := spatial.Centroid(pts)

		place := models.Place{
			Latitude:     center.Lat,
			Longitude:    center.Lon,
			VisitIndexes: members,
			VisitCount:   len(members),
		}
		for _, idx := range members {
			if place.PlaceID == "" {
				place.PlaceID = visits[idx].PlaceID
			}
			if place.PlaceName == "" {
				place.PlaceName = visits[idx].PlaceName
			}
		}
		result = append(result, place)
	}

	return result
}

// unionFind with min-index roots keeps cluster identity tied to the earliest
// member, which makes output order stable across runs
type unionFind struct {
	parent []int
}

func newUnionFind(n int) *unionFind {
	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	return &unionFind{parent: parent}
}

func (u *unionFind) find(i int) int {
	for u.parent[i] != i {
		u.parent[i] = u.parent[u.parent[i]]
		i = u.parent[i]
	}
	return i
}

func (u *unionFind) union(a, b int) {
	ra, rb := u.find(a), u.find(b)
	if ra == rb {
		return
	}
	if ra < rb {
		u.parent[rb] = ra
	} else {
		u.parent[ra] = rb
	}
}

// visitGrid buckets visit indexes into radius-sized cells
type visitGrid struct {
	cells   map[[2]int][]int
	latStep float64
	lonStep float64
}

func buildGrid(visits []models.Visit, radiusMeters float64) *visitGrid {
	// Longitude degrees shrink with latitude, so longitude cells are sized
	// for the highest latitude in the input (clamped near the poles). Cells
	// are then at least one radius wide everywhere, so any pair within the
	// radius is in the same or an adjacent cell.
	maxAbsLat := 0.0
	for _, v := range visits {
		if a := math.Abs(v.Latitude); a > maxAbsLat {
			maxAbsLat = a
		}
	}
	if maxAbsLat > 85 {
		maxAbsLat = 85
	}

	latStep := radiusMeters / 111320.0
	g := &visitGrid{
		cells:   make(map[[2]int][]int, len(visits)),
		latStep: latStep,
		lonStep: latStep / math.Cos(maxAbsLat*math.Pi/180),
	}
	for i, v := range visits {
		key := g.key(v.Latitude, v.Longitude)
		g.cells[key] = append(g.cells[key], i)
	}
	return g
}

func (g *visitGrid) key(lat, lon float64) [2]int {
	return [2]int{
		int(math.Floor(lat / g.latStep)),
		int(math.Floor(lon / g.lonStep)),
	}
}

// neighbors returns visit indexes in the 3x3 cell neighborhood of the
// coordinate, in insertion order
func (g *visitGrid) neighbors(lat, lon float64) []int {
	center := g.key(lat, lon)
	var out []int
	for dLat := -1; dLat <= 1; dLat++ {
		for dLon := -1; dLon <= 1; dLon++ {
			key := [2]int{center[0] + dLat, center[1] + dLon}
			out = append(out, g.cells[key]...)
		}
	}
	return out
}
