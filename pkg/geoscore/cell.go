package geoscore

import "github.com/paulmach/orb"

// CellSize returns the height and width of one grid cell in degrees.
func CellSize() (latitude, longitude float64) {
	return LatitudeRange / gridSize, LongitudeRange / gridSize
}

// Bound returns the rectangle covered by the cell named by code.
// Its centre is exactly Decode(code).
func Bound(code uint64) orb.Bound {
	latIdx, lonIdx := deinterleave(code)
	return orb.Bound{
		Min: orb.Point{
			edge(float64(lonIdx), MinLongitude, LongitudeRange),
			edge(float64(latIdx), MinLatitude, LatitudeRange),
		},
		Max: orb.Point{
			edge(float64(lonIdx)+1, MinLongitude, LongitudeRange),
			edge(float64(latIdx)+1, MinLatitude, LatitudeRange),
		},
	}
}
