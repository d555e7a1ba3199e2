package verify

import (
	"testing"

	"github.com/woozymasta/geoscore/internal/config"
	"github.com/woozymasta/geoscore/pkg/geoscore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_DefaultFixtures(t *testing.T) {
	report := Run(config.Default())

	require.Len(t, report.Results, 13)
	assert.True(t, report.OK())
	assert.Equal(t, 13, report.Passed)
	assert.Zero(t, report.Failed)

	for _, res := range report.Results {
		assert.True(t, res.ScoreOK, res.Name)
		assert.True(t, res.DecodeOK, res.Name)
		assert.Len(t, res.Geohash, GeohashChars, res.Name)
		assert.Less(t, res.DriftMeters, 1.0, res.Name)
		// a point never drifts further than the cell diagonal
		assert.LessOrEqual(t, res.DriftMeters, res.CellMeters, res.Name)
	}
}

func TestRun_Geohash(t *testing.T) {
	cfg := &config.Config{
		Tolerance: config.DefaultTolerance,
		Cities: []config.City{
			{Name: "Palermo", Latitude: 38.115556395496299, Longitude: 13.361389338970184, Score: 3479099956230698},
		},
	}

	report := Run(cfg)
	require.Len(t, report.Results, 1)
	// Redis answers "sqc8b49rny0"; it pads the 11th character with zero bits
	assert.Equal(t, "sqc8b49rny", report.Results[0].Geohash[:10])
}

func TestRun_DetectsBadScore(t *testing.T) {
	cfg := config.Default()
	cfg.Cities[0].Score++

	report := Run(cfg)
	assert.False(t, report.OK())
	assert.Equal(t, 1, report.Failed)

	bad := report.Results[0]
	assert.False(t, bad.ScoreOK)
	// the neighbouring cell's centre is a full cell away from GEOPOS
	assert.False(t, bad.DecodeOK)
}

func TestRun_DetectsBadDecodedPoint(t *testing.T) {
	cfg := config.Default()
	cfg.Cities[1].Decoded = &config.Point{Latitude: 0, Longitude: 0}

	report := Run(cfg)
	assert.Equal(t, 1, report.Failed)
	assert.True(t, report.Results[1].ScoreOK)
	assert.False(t, report.Results[1].DecodeOK)
}

func TestRun_HalfCellWithoutExpectedPoint(t *testing.T) {
	cfg := &config.Config{
		Tolerance: 0,
		Cities: []config.City{
			{Name: "origin", Latitude: 0, Longitude: 0, Score: 0xc000000000000},
		},
	}

	report := Run(cfg)
	require.Len(t, report.Results, 1)
	assert.Equal(t, uint64(0xc000000000000), report.Results[0].Score)
	assert.True(t, report.Results[0].OK())
}

func TestRun_HalfCellRejectsNeighbourCell(t *testing.T) {
	cellLat, _ := geoscore.CellSize()
	cfg := &config.Config{
		Tolerance: 0,
		Cities: []config.City{
			// one row below the origin cell
			{Name: "origin", Latitude: -cellLat / 2, Longitude: 0, Score: 0xc000000000000},
		},
	}

	report := Run(cfg)
	require.Len(t, report.Results, 1)
	assert.False(t, report.Results[0].DecodeOK)
}

func TestGeohash(t *testing.T) {
	assert.Equal(t, "sqc8b49rny", Geohash(3479099956230698)[:10])
	assert.Empty(t, Geohash(1<<52))
}
