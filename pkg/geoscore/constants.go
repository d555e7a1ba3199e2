package geoscore

import "github.com/paulmach/orb"

// Domain of the grid. Latitude stops at the Web Mercator limit instead of +-90.
const (
	MinLatitude  = -85.05112878
	MaxLatitude  = 85.05112878
	MinLongitude = -180.0
	MaxLongitude = 180.0

	LatitudeRange  = MaxLatitude - MinLatitude
	LongitudeRange = MaxLongitude - MinLongitude
)

// Step is the number of bits per axis. A code carries 2*Step bits.
const Step = 26

const (
	gridSize = 1 << Step
	maxIndex = gridSize - 1
	codeBits = 2 * Step
	codeMask = 1<<codeBits - 1
)

// Coordinates is a WGS84 point in degrees.
type Coordinates struct {
	Latitude  float64 `json:"latitude" yaml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
}

// Point returns the coordinates as an orb point (lon, lat order).
func (c Coordinates) Point() orb.Point {
	return orb.Point{c.Longitude, c.Latitude}
}
