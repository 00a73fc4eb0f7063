package spatial

// Point represents a 2D point with latitude and longitude
type Point struct {
	Lat float64
	Lon float64
}

// Centroid calculates the geographic centroid of a set of points
func Centroid(points []Point) Point {
	if len(points) == 0 {
		return Point{}
	}

	var sumLat, sumLon float64
	for _, p := range points {
		sumLat += p.Lat
		sumLon += p.Lon
	}

	return Point{
		Lat: sumLat / float64(len(points)),
		Lon: sumLon / float64(len(points)),
	}
}

// PathLength calculates the total length of a path (sequence of points) in meters
func PathLength(points []Point) float64 {
	if len(points) < 2 {
		return 0
	}

	var totalDist float64
	for i := 1; i < len(points); i++ {
		totalDist += HaversineDistance(points[i-1].Lat, points[i-1].Lon, points[i].Lat, points[i].Lon)
	}

	return totalDist
}

// BoundingBox calculates the bounding box of a set of points
// Returns (minLat, minLon, maxLat, maxLon)
func BoundingBox(points []Point) (float64, float64, float64, float64) {
	if len(points) == 0 {
		return 0, 0, 0, 0
	}

	minLat, maxLat := points[0].Lat, points[0].Lat
	minLon, maxLon := points[0].Lon, points[0].Lon

	for _, p := range points[1:] {
		if p.Lat < minLat {
			minLat = p.Lat
		}
		if p.Lat > maxLat {
			maxLat = p.Lat
		}
		if p.Lon < minLon {
			minLon = p.Lon
		}
		if p.Lon > maxLon {
			maxLon = p.Lon
		}
	}

	return minLat, minLon, maxLat, maxLon
}
