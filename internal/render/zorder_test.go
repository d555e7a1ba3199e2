package render

import (
	"bytes"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/woozymasta/geoscore/pkg/geoscore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/webp"
)

func TestZOrder_ColoursFollowCurve(t *testing.T) {
	img, err := ZOrder(Options{Bits: 1, Scale: 1})
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 2, 2), img.Bounds())

	// rank 0 is the south-west cell; rank 1 moves north (latitude is the low bit)
	assert.Equal(t, hue(0), img.RGBAAt(0, 1))
	assert.Equal(t, hue(0.25), img.RGBAAt(0, 0))
	assert.Equal(t, hue(0.5), img.RGBAAt(1, 1))
	assert.Equal(t, hue(0.75), img.RGBAAt(1, 0))
}

func TestZOrder_EveryCellDistinct(t *testing.T) {
	img, err := ZOrder(Options{Bits: 4, Scale: 1})
	require.NoError(t, err)

	seen := map[color.RGBA]bool{}
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			seen[img.RGBAAt(x, y)] = true
		}
	}
	assert.Len(t, seen, 256)
}

func TestZOrder_Markers(t *testing.T) {
	img, err := ZOrder(Options{
		Bits:    3,
		Scale:   4,
		Markers: []geoscore.Coordinates{{Latitude: geoscore.MaxLatitude, Longitude: geoscore.MinLongitude}},
	})
	require.NoError(t, err)
	require.Equal(t, 32, img.Bounds().Dx())

	// north-west corner cell is painted over
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			assert.Equal(t, markerColor, img.RGBAAt(x, y))
		}
	}
	assert.NotEqual(t, markerColor, img.RGBAAt(4, 0))
}

func TestZOrder_Path(t *testing.T) {
	img, err := ZOrder(Options{Bits: 1, Scale: 8, Path: true})
	require.NoError(t, err)

	// first segment runs from the south-west centre straight north
	assert.Equal(t, pathColor, img.RGBAAt(4, 12))
	assert.Equal(t, pathColor, img.RGBAAt(4, 8))
	assert.Equal(t, pathColor, img.RGBAAt(4, 4))
}

func TestZOrder_InvalidOptions(t *testing.T) {
	for _, opts := range []Options{
		{Bits: 0, Scale: 1},
		{Bits: MaxBits + 1, Scale: 1},
		{Bits: 4, Scale: 0},
		{Bits: 10, Scale: 16},
	} {
		_, err := ZOrder(opts)
		assert.Error(t, err, "%+v", opts)
	}
}

func TestEncode_WebP(t *testing.T) {
	img, err := ZOrder(Options{Bits: 2, Scale: 3})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, img))

	cfg, err := webp.DecodeConfig(&buf)
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.Width)
	assert.Equal(t, 12, cfg.Height)
}

func TestSave(t *testing.T) {
	img, err := ZOrder(Options{Bits: 2, Scale: 1})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out", "zorder.webp")
	require.NoError(t, Save(path, img))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.NotZero(t, info.Size())
}

func TestHue(t *testing.T) {
	assert.Equal(t, color.RGBA{R: 242, G: 85, B: 85, A: 255}, hue(0))
	assert.NotEqual(t, hue(0), hue(0.5))
}
