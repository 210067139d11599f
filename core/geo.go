package core

import "math"

const earthRadiusKm = 6371.0

// Point is a WGS84 coordinate in decimal degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Distance computes the great-circle distance between two points in
// kilometers using the Haversine formula. Malformed input (NaN) propagates
// NaN rather than panicking.
func Distance(a, b Point) float64 {
	lat1Rad := degreesToRadians(a.Lat)
	lat2Rad := degreesToRadians(b.Lat)
	deltaLat := degreesToRadians(b.Lat - a.Lat)
	deltaLon := degreesToRadians(b.Lon - a.Lon)

	h := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

// WithinKm reports whether `other` is at most `radius` kilometers away.
// A point at exactly `radius` is within.
func (p Point) WithinKm(other Point, radius float64) bool {
	return Distance(p, other) <= radius
}

func degreesToRadians(degrees float64) float64 {
	return degrees * math.Pi / 180.0
}
