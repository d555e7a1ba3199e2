// Package geoscore converts WGS84 coordinates to and from the 52-bit
// interleaved integers Redis stores as GEO sorted-set scores.
//
// The domain is split into a 2^26 x 2^26 grid. Encode finds the cell holding
// a coordinate and interleaves its row (latitude, even bits) and column
// (longitude, odd bits) into one integer. Decode reverses the interleaving and
// returns the centre of that cell, so Decode(Encode(p)) is within half a cell
// of p rather than equal to it.
//
// Both functions are pure and allocation free. They are safe for concurrent
// use.
package geoscore

// Encode returns the score of the cell containing (latitude, longitude).
// It never fails: coordinates outside the domain are saturated into the
// first or last row/column. Use EncodeStrict to reject them instead.
func Encode(latitude, longitude float64) uint64 {
	latIdx, lonIdx := toGrid(latitude, longitude)
	return interleave(latIdx, lonIdx)
}

// Decode returns the centre of the cell named by code.
// Bits above bit 51 are not masked and push the result past the domain;
// DecodeStrict rejects such codes.
func Decode(code uint64) Coordinates {
	latIdx, lonIdx := deinterleave(code)
	return fromGrid(latIdx, lonIdx)
}
