package main

import (
	"os"

	"github.com/woozymasta/geoscore/internal/config"
	"github.com/woozymasta/geoscore/internal/logger"
	"github.com/woozymasta/geoscore/internal/render"
	"github.com/woozymasta/geoscore/pkg/geoscore"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile string `short:"c" long:"config"    env:"CONFIG_FILE" description:"Fixtures to mark on the grid (built-in cities if empty)"`
	Output     string `short:"o" long:"out"       description:"Output WebP path" default:"zorder.webp"`
	Bits       int    `short:"b" long:"bits"      description:"Leading bits per axis to draw" default:"5"`
	Scale      int    `short:"s" long:"scale"     description:"Pixels per cell side" default:"16"`
	NoPath     bool   `long:"no-path"             description:"Do not draw the curve through cell centres"`
	NoMarkers  bool   `long:"no-markers"          description:"Do not mark fixture cities"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	opts.Logger.Setup()

	renderOpts := render.Options{
		Bits:  opts.Bits,
		Scale: opts.Scale,
		Path:  !opts.NoPath,
	}

	if !opts.NoMarkers {
		cfg := config.Default()
		if opts.ConfigFile != "" {
			var err error
			if cfg, err = config.Load(opts.ConfigFile); err != nil {
				log.Fatal().Err(err).Msg("Failed to load fixtures")
			}
		}
		for _, city := range cfg.Cities {
			renderOpts.Markers = append(renderOpts.Markers, geoscore.Coordinates{
				Latitude:  city.Latitude,
				Longitude: city.Longitude,
			})
		}
	}

	img, err := render.ZOrder(renderOpts)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to render grid")
	}

	if err := render.Save(opts.Output, img); err != nil {
		log.Fatal().Err(err).Str("path", opts.Output).Msg("Failed to save image")
	}

	log.Info().
		Str("path", opts.Output).
		Int("side", img.Bounds().Dx()).
		Int("markers", len(renderOpts.Markers)).
		Msg("Z-order image written")
}
