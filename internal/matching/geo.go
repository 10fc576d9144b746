package matching

import "math"

const earthRadiusKm = 6371.0

// DistanceKm returns the haversine great-circle distance between two points given in decimal degrees.
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	const toRad = math.Pi / 180.0

	dLat := (lat2 - lat1) * toRad
	dLon := (lon2 - lon1) * toRad
	lat1Rad := lat1 * toRad
	lat2Rad := lat2 * toRad

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}
