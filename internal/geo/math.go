package geo

import "math"

// EarthRadiusMeters is the mean Earth radius Redis uses for GEODIST.
const EarthRadiusMeters = 6372797.560856

// Haversine returns the great-circle distance in meters between two points
// given in degrees.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	lat1r := lat1 * math.Pi / 180
	lat2r := lat2 * math.Pi / 180
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1r)*math.Cos(lat2r)*math.Sin(dLon/2)*math.Sin(dLon/2)

	return 2 * EarthRadiusMeters * math.Asin(math.Sqrt(a))
}

// CellDiagonalMeters approximates the diagonal of a latLen x lonLen degree
// cell centred on latitude. It bounds how far a decoded point may drift.
func CellDiagonalMeters(latitude, latLen, lonLen float64) float64 {
	return Haversine(latitude-latLen/2, -lonLen/2, latitude+latLen/2, lonLen/2)
}
