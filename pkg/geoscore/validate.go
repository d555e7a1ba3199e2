package geoscore

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrInvalidCoordinate   = errors.New("coordinate is not a finite number")
	ErrLatitudeOutOfRange  = errors.New("latitude out of range")
	ErrLongitudeOutOfRange = errors.New("longitude out of range")
	ErrCodeOutOfRange      = errors.New("code has bits set above bit 51")
)

// Validate reports whether (latitude, longitude) lies inside the encodable
// domain. Bounds are inclusive.
func Validate(latitude, longitude float64) error {
	if !finite(latitude) || !finite(longitude) {
		return fmt.Errorf("%w: (%v, %v)", ErrInvalidCoordinate, latitude, longitude)
	}
	if latitude < MinLatitude || latitude > MaxLatitude {
		return fmt.Errorf("%w: %v not in [%v, %v]", ErrLatitudeOutOfRange, latitude, MinLatitude, MaxLatitude)
	}
	if longitude < MinLongitude || longitude > MaxLongitude {
		return fmt.Errorf("%w: %v not in [%v, %v]", ErrLongitudeOutOfRange, longitude, MinLongitude, MaxLongitude)
	}
	return nil
}

// EncodeStrict is Encode for callers that want out-of-domain input rejected
// instead of saturated.
func EncodeStrict(latitude, longitude float64) (uint64, error) {
	if err := Validate(latitude, longitude); err != nil {
		return 0, err
	}
	return Encode(latitude, longitude), nil
}

// ValidateCode checks that only the low 52 bits of code are set.
func ValidateCode(code uint64) error {
	if code&^codeMask != 0 {
		return fmt.Errorf("%w: %d", ErrCodeOutOfRange, code)
	}
	return nil
}

// DecodeStrict is Decode for codes that did not come from Encode.
func DecodeStrict(code uint64) (Coordinates, error) {
	if err := ValidateCode(code); err != nil {
		return Coordinates{}, err
	}
	return Decode(code), nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
