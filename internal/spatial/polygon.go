package spatial

// PointInRings checks if a point is inside a polygon made of one or more rings
// using the even-odd (ray casting) rule. The first ring is the outer boundary,
// subsequent rings are holes subtracted from it.
//
// Edge convention: a point lying exactly on any ring edge is classified as
// OUTSIDE. Polygons crossing the antimeridian are handled by shifting western
// longitudes by +360 before the test.
func PointInRings(point Point, rings [][]Point) bool {
	if len(rings) == 0 || len(rings[0]) < 3 {
		return false
	}

	shift := crossesAntimeridian(rings[0])
	p := normalizeLon(point, shift)

	for _, ring := range rings {
		for i := 0; i < len(ring); i++ {
			a := normalizeLon(ring[i], shift)
			b := normalizeLon(ring[(i+1)%len(ring)], shift)
			if onSegment(p, a, b) {
				return false
			}
		}
	}

	inside := rayCast(p, rings[0], shift)
	if !inside {
		return false
	}

	// A point inside any hole is outside the polygon
	for _, hole := range rings[1:] {
		if len(hole) >= 3 && rayCast(p, hole, shift) {
			return false
		}
	}

	return true
}

// rayCast runs the even-odd crossing test against a single ring
func rayCast(point Point, ring []Point, shift bool) bool {
	inside := false
	j := len(ring) - 1

	for i := 0; i < len(ring); i++ {
		pi := normalizeLon(ring[i], shift)
		pj := normalizeLon(ring[j], shift)

		if ((pi.Lat > point.Lat) != (pj.Lat > point.Lat)) &&
			(point.Lon < (pj.Lon-pi.Lon)*(point.Lat-pi.Lat)/(pj.Lat-pi.Lat)+pi.Lon) {
			inside = !inside
		}
		j = i
	}

	return inside
}

// onSegment reports whether p lies exactly on the segment a-b
func onSegment(p, a, b Point) bool {
	cross := (p.Lon-a.Lon)*(b.Lat-a.Lat) - (p.Lat-a.Lat)*(b.Lon-a.Lon)
	if cross != 0 {
		return false
	}
	if p.Lat < min(a.Lat, b.Lat) || p.Lat > max(a.Lat, b.Lat) {
		return false
	}
	if p.Lon < min(a.Lon, b.Lon) || p.Lon > max(a.Lon, b.Lon) {
		return false
	}
	return true
}

// crossesAntimeridian reports whether the ring's longitudinal extent exceeds
// 180 degrees, which indicates coordinates wrapping around +/-180
func crossesAntimeridian(ring []Point) bool {
	if len(ring) == 0 {
		return false
	}
	_, minLon, _, maxLon := BoundingBox(ring)
	return maxLon-minLon > 180
}

// normalizeLon shifts western longitudes into the 180..360 range when the
// polygon wraps the antimeridian, so the ray cast sees a contiguous shape
func normalizeLon(p Point, shift bool) Point {
	if shift && p.Lon < 0 {
		p.Lon += 360
	}
	return p
}
