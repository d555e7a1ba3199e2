// Package render draws the Z-order curve the codec walks over the grid.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"
	"math"
	"os"
	"path/filepath"
	"sync"

	"github.com/woozymasta/geoscore/pkg/geoscore"

	"github.com/chai2010/webp"
	"github.com/rs/zerolog/log"
	xdraw "golang.org/x/image/draw"
)

// Limits of Options.
const (
	MaxBits   = 10
	MaxScale  = 64
	MaxPixels = 8192
)

var (
	markerColor = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	pathColor   = color.RGBA{R: 24, G: 24, B: 24, A: 255}
)

// Options controls the rendered picture.
type Options struct {
	Markers []geoscore.Coordinates
	// Bits is the number of leading bits per axis kept from each score;
	// the picture shows a 2^Bits x 2^Bits grid.
	Bits  int
	Scale int // pixels per cell side
	// Path draws the curve through the cell centres when Scale >= 4.
	Path bool
}

func (o Options) validate() error {
	if o.Bits < 1 || o.Bits > MaxBits {
		return fmt.Errorf("bits must be in [1, %d], got %d", MaxBits, o.Bits)
	}
	if o.Scale < 1 || o.Scale > MaxScale {
		return fmt.Errorf("scale must be in [1, %d], got %d", MaxScale, o.Scale)
	}
	if side := (1 << o.Bits) * o.Scale; side > MaxPixels {
		return fmt.Errorf("image side %d exceeds %d pixels", side, MaxPixels)
	}
	return nil
}

// ZOrder colours every coarse cell by its position along the curve, north up.
// Rows are encoded concurrently.
func ZOrder(opts Options) (*image.RGBA, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	n := 1 << opts.Bits
	shift := uint(2 * (geoscore.Step - opts.Bits))
	cells := float64(n * n)

	grid := image.NewRGBA(image.Rect(0, 0, n, n))
	order := make([]image.Point, n*n)

	var wg sync.WaitGroup
	for row := 0; row < n; row++ {
		wg.Add(1)
		go func(row int) {
			defer wg.Done()
			lat := cellCentre(n-1-row, n, geoscore.MinLatitude, geoscore.LatitudeRange)
			for col := 0; col < n; col++ {
				lon := cellCentre(col, n, geoscore.MinLongitude, geoscore.LongitudeRange)
				rank := geoscore.Encode(lat, lon) >> shift

				grid.SetRGBA(col, row, hue(float64(rank)/cells))
				order[rank] = image.Pt(col, row)
			}
		}(row)
	}
	wg.Wait()

	side := n * opts.Scale
	img := image.NewRGBA(image.Rect(0, 0, side, side))
	xdraw.NearestNeighbor.Scale(img, img.Bounds(), grid, grid.Bounds(), draw.Src, nil)

	if opts.Path && opts.Scale >= 4 {
		half := opts.Scale / 2
		for i := 1; i < len(order); i++ {
			a := order[i-1].Mul(opts.Scale).Add(image.Pt(half, half))
			b := order[i].Mul(opts.Scale).Add(image.Pt(half, half))
			line(img, a, b, pathColor)
		}
	}

	for _, m := range opts.Markers {
		col := cellOf(m.Longitude, n, geoscore.MinLongitude, geoscore.LongitudeRange)
		row := n - 1 - cellOf(m.Latitude, n, geoscore.MinLatitude, geoscore.LatitudeRange)
		r := image.Rect(col*opts.Scale, row*opts.Scale, (col+1)*opts.Scale, (row+1)*opts.Scale)
		draw.Draw(img, r, image.NewUniform(markerColor), image.Point{}, draw.Src)
	}

	log.Debug().
		Int("bits", opts.Bits).
		Int("cells", n*n).
		Int("side", side).
		Int("markers", len(opts.Markers)).
		Msg("Z-order grid rendered")

	return img, nil
}

// Encode writes img as lossless WebP.
func Encode(w io.Writer, img image.Image) error {
	return webp.Encode(w, img, &webp.Options{Lossless: true})
}

// Save writes img to path as lossless WebP, creating parent directories.
func Save(path string, img image.Image) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode webp: %w", err)
	}

	return f.Close()
}

func cellCentre(idx, n int, lo, span float64) float64 {
	return lo + span*(float64(idx)+0.5)/float64(n)
}

func cellOf(v float64, n int, lo, span float64) int {
	i := int(math.Floor((v - lo) / span * float64(n)))
	return max(0, min(n-1, i))
}

// hue maps t in [0, 1) onto the colour wheel.
func hue(t float64) color.RGBA {
	const s, v = 0.65, 0.95

	h := t * 6
	c := v * s
	x := c * (1 - math.Abs(math.Mod(h, 2)-1))
	m := v - c

	var r, g, b float64
	switch int(h) {
	case 0:
		r, g, b = c, x, 0
	case 1:
		r, g, b = x, c, 0
	case 2:
		r, g, b = 0, c, x
	case 3:
		r, g, b = 0, x, c
	case 4:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	return color.RGBA{
		R: uint8(math.Round((r + m) * 255)),
		G: uint8(math.Round((g + m) * 255)),
		B: uint8(math.Round((b + m) * 255)),
		A: 255,
	}
}

// line draws a 1px Bresenham segment.
func line(img *image.RGBA, a, b image.Point, c color.RGBA) {
	dx := abs(b.X - a.X)
	dy := -abs(b.Y - a.Y)
	sx, sy := 1, 1
	if a.X > b.X {
		sx = -1
	}
	if a.Y > b.Y {
		sy = -1
	}

	err := dx + dy
	for {
		img.SetRGBA(a.X, a.Y, c)
		if a == b {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			a.X += sx
		}
		if e2 <= dx {
			err += dx
			a.Y += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
