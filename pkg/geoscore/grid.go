package geoscore

import "math"

// toIndex maps value onto one of gridSize cells spanning [lo, lo+span].
// The scaled value is truncated toward zero, never rounded. Anything below
// the first cell (including NaN) saturates to 0, anything past the last to
// maxIndex.
func toIndex(value, lo, span float64) uint32 {
	n := gridSize * (value - lo) / span
	switch {
	case math.IsNaN(n), n < 0:
		return 0
	case n >= gridSize:
		return maxIndex
	}
	return uint32(n)
}

// fromIndex returns the centre of cell idx. Indices past the grid are not
// clamped; the linear formula just keeps going.
func fromIndex(idx uint32, lo, span float64) float64 {
	low := edge(float64(idx), lo, span)
	high := edge(float64(idx)+1, lo, span)
	return (low + high) / 2
}

// edge returns the lower boundary of cell n. n is a float64 so that the
// upper boundary of the last uint32 cell does not wrap.
func edge(n, lo, span float64) float64 {
	return lo + span*(n/gridSize)
}

func toGrid(latitude, longitude float64) (latIdx, lonIdx uint32) {
	return toIndex(latitude, MinLatitude, LatitudeRange),
		toIndex(longitude, MinLongitude, LongitudeRange)
}

func fromGrid(latIdx, lonIdx uint32) Coordinates {
	return Coordinates{
		Latitude:  fromIndex(latIdx, MinLatitude, LatitudeRange),
		Longitude: fromIndex(lonIdx, MinLongitude, LongitudeRange),
	}
}
