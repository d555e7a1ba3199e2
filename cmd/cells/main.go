package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/woozymasta/geoscore/internal/geo"
	"github.com/woozymasta/geoscore/internal/logger"
	"github.com/woozymasta/geoscore/pkg/geoscore"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	Input   string `short:"i" long:"in"      description:"Input file with one score or lat,lon pair per line. Reads from stdin if empty"`
	Output  string `short:"o" long:"out"     description:"Output file path. Writes to stdout if empty"`
	Format  string `short:"f" long:"format"  description:"Output format" choice:"json" choice:"yaml" default:"json"`
	Centres bool   `short:"p" long:"centres" description:"Also emit a Point feature for every cell centre"`
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

	var in io.Reader = os.Stdin
	if opts.Input != "" {
		f, err := os.Open(opts.Input)
		if err != nil {
			log.Fatal().Err(err).Str("path", opts.Input).Msg("Failed to open input")
		}
		defer func() { _ = f.Close() }()
		in = f
	}

	fc, err := buildCollection(in, opts.Centres)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to read input")
	}

	var outputData []byte
	if opts.Format == "yaml" {
		outputData, err = yaml.Marshal(fc)
	} else {
		outputData, err = json.MarshalIndent(fc, "", "  ")
	}
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to marshal GeoJSON")
	}

	if opts.Output == "" {
		fmt.Println(string(outputData))
		return
	}

	if err := os.WriteFile(opts.Output, outputData, 0644); err != nil {
		log.Fatal().Err(err).Str("path", opts.Output).Msg("Failed to write output")
	}

	log.Info().
		Int("cells", len(fc.Features)).
		Str("path", opts.Output).
		Str("format", opts.Format).
		Msg("GeoJSON written")
}

// buildCollection turns every non-empty, non-comment line of r into a cell
// polygon. A line holds either a score or a "lat,lon" pair.
func buildCollection(r io.Reader, centres bool) (geo.GeoJSONFeatureCollection, error) {
	fc := geo.NewFeatureCollection(0)

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		score, err := parseLine(line)
		if err != nil {
			return fc, fmt.Errorf("line %d: %w", lineNo, err)
		}

		centre := geoscore.Decode(score)
		props := map[string]interface{}{
			"score":     score,
			"latitude":  centre.Latitude,
			"longitude": centre.Longitude,
		}

		fc.Features = append(fc.Features, geo.BoundFeature(geoscore.Bound(score), props))
		if centres {
			fc.Features = append(fc.Features, geo.PointFeature(centre.Point(), map[string]interface{}{"score": score}))
		}

		log.Trace().Int("line", lineNo).Uint64("score", score).Msg("Cell added")
	}

	return fc, scanner.Err()
}

func parseLine(line string) (uint64, error) {
	latStr, lonStr, pair := strings.Cut(line, ",")
	if !pair {
		score, err := strconv.ParseUint(line, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid score %q: %w", line, err)
		}
		if err := geoscore.ValidateCode(score); err != nil {
			return 0, err
		}
		return score, nil
	}

	lat, err1 := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	lon, err2 := strconv.ParseFloat(strings.TrimSpace(lonStr), 64)
	if err1 != nil || err2 != nil {
		return 0, fmt.Errorf("invalid coordinate pair %q", line)
	}

	return geoscore.EncodeStrict(lat, lon)
}
