// Package verify checks the codec against reference fixtures and renders the
// resulting report.
package verify

import (
	"math"

	"github.com/woozymasta/geoscore/internal/config"
	"github.com/woozymasta/geoscore/internal/geo"
	"github.com/woozymasta/geoscore/pkg/geoscore"

	"github.com/mmcloughlin/geohash"
)

// GeohashChars matches the length of strings returned by Redis GEOHASH.
// Unlike Redis the last character carries real bits instead of zero padding.
const GeohashChars = 11

// Result is the outcome of checking one fixture.
type Result struct {
	Redis         *RedisResult         `json:"redis,omitempty" yaml:"redis,omitempty"`
	Expected      *config.Point        `json:"expected,omitempty" yaml:"expected,omitempty"`
	Name          string               `json:"name" yaml:"name"`
	Geohash       string               `json:"geohash" yaml:"geohash"`
	Input         geoscore.Coordinates `json:"input" yaml:"input"`
	Decoded       geoscore.Coordinates `json:"decoded" yaml:"decoded"`
	ExpectedScore uint64               `json:"expected_score" yaml:"expected_score"`
	Score         uint64               `json:"score" yaml:"score"`
	DriftMeters   float64              `json:"drift_meters" yaml:"drift_meters"`
	CellMeters    float64              `json:"cell_meters" yaml:"cell_meters"` // cell diagonal at this latitude
	ScoreOK       bool                 `json:"score_ok" yaml:"score_ok"`
	DecodeOK      bool                 `json:"decode_ok" yaml:"decode_ok"`
}

// OK reports whether every check on the fixture passed.
func (r Result) OK() bool {
	if r.Redis != nil && !r.Redis.OK() {
		return false
	}
	return r.ScoreOK && r.DecodeOK
}

// Report collects the results of a verification run.
type Report struct {
	Results   []Result `json:"results" yaml:"results"`
	Tolerance float64  `json:"tolerance" yaml:"tolerance"`
	Passed    int      `json:"passed" yaml:"passed"`
	Failed    int      `json:"failed" yaml:"failed"`
}

// OK reports whether the whole run passed.
func (r *Report) OK() bool {
	return r.Failed == 0
}

func (r *Report) tally() {
	r.Passed, r.Failed = 0, 0
	for _, res := range r.Results {
		if res.OK() {
			r.Passed++
		} else {
			r.Failed++
		}
	}
}

// Run encodes every fixture and decodes its reference score.
//
// The score must match exactly. The decoded point is compared with the
// fixture's expected cell centre when one is given; otherwise the input
// coordinate must lie inside the scored cell, edges included, widened by the
// tolerance.
func Run(cfg *config.Config) *Report {
	cellLat, cellLon := geoscore.CellSize()

	report := &Report{
		Tolerance: cfg.Tolerance,
		Results:   make([]Result, 0, len(cfg.Cities)),
	}

	for _, city := range cfg.Cities {
		res := Result{
			Name:          city.Name,
			Input:         geoscore.Coordinates{Latitude: city.Latitude, Longitude: city.Longitude},
			Expected:      city.Decoded,
			ExpectedScore: city.Score,
			Score:         geoscore.Encode(city.Latitude, city.Longitude),
			Decoded:       geoscore.Decode(city.Score),
		}

		res.ScoreOK = res.Score == res.ExpectedScore
		res.Geohash = Geohash(city.Score)
		res.DriftMeters = geo.Haversine(city.Latitude, city.Longitude, res.Decoded.Latitude, res.Decoded.Longitude)
		res.CellMeters = geo.CellDiagonalMeters(city.Latitude, cellLat, cellLon)

		if city.Decoded != nil {
			res.DecodeOK = within(res.Decoded.Latitude, city.Decoded.Latitude, cfg.Tolerance) &&
				within(res.Decoded.Longitude, city.Decoded.Longitude, cfg.Tolerance)
		} else {
			res.DecodeOK = geoscore.Bound(city.Score).Pad(cfg.Tolerance).Contains(res.Input.Point())
		}

		report.Results = append(report.Results, res)
	}

	report.tally()
	return report
}

// Geohash returns the base32 geohash of the centre of the cell named by
// score, or "" when score has bits set above bit 51 and decodes off the map.
func Geohash(score uint64) string {
	if geoscore.ValidateCode(score) != nil {
		return ""
	}
	c := geoscore.Decode(score)
	return geohash.EncodeWithPrecision(c.Latitude, c.Longitude, GeohashChars)
}

func within(a, b, tolerance float64) bool {
	return math.Abs(a-b) <= tolerance
}
