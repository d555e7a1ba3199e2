package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/woozymasta/geoscore/internal/logger"
	"github.com/woozymasta/geoscore/internal/verify"
	"github.com/woozymasta/geoscore/pkg/geoscore"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	Format     string `short:"f" long:"format"      env:"OUTPUT_FORMAT" description:"Output format" choice:"text" choice:"json" choice:"yaml" default:"text"`
	NoValidate bool   `short:"n" long:"no-validate" description:"Saturate out-of-range input instead of rejecting it"`
}

type EncodeCommand struct {
	Latitude  float64 `long:"lat" description:"Latitude in degrees (use --lat=-33.8 for negatives)"  required:"true"`
	Longitude float64 `long:"lon" description:"Longitude in degrees (use --lon=-0.12 for negatives)" required:"true"`
}

type DecodeCommand struct {
	Args struct {
		Scores []string `positional-arg-name:"SCORE" required:"1"`
	} `positional-args:"yes"`
}

type encoded struct {
	Latitude  float64 `json:"latitude" yaml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
	Score     uint64  `json:"score" yaml:"score"`
}

type decoded struct {
	Geohash   string  `json:"geohash,omitempty" yaml:"geohash,omitempty"`
	Score     uint64  `json:"score" yaml:"score"`
	Latitude  float64 `json:"latitude" yaml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
}

var (
	opts   Options
	stdout io.Writer = os.Stdout
)

func main() {
	parser := flags.NewParser(&opts, flags.Default)
	parser.CommandHandler = func(cmd flags.Commander, args []string) error {
		opts.Logger.Setup()
		return cmd.Execute(args)
	}

	if _, err := parser.AddCommand("encode", "Encode a coordinate", "Print the Redis GEO score of a latitude/longitude pair.", &EncodeCommand{}); err != nil {
		log.Fatal().Err(err).Msg("Failed to register command")
	}
	if _, err := parser.AddCommand("decode", "Decode scores", "Print the cell centre of one or more Redis GEO scores.", &DecodeCommand{}); err != nil {
		log.Fatal().Err(err).Msg("Failed to register command")
	}

	// go-flags prints both parse and command errors
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}
}

func (c *EncodeCommand) Execute(_ []string) error {
	var score uint64
	if opts.NoValidate {
		score = geoscore.Encode(c.Latitude, c.Longitude)
	} else {
		var err error
		if score, err = geoscore.EncodeStrict(c.Latitude, c.Longitude); err != nil {
			return err
		}
	}

	log.Debug().
		Float64("lat", c.Latitude).
		Float64("lon", c.Longitude).
		Uint64("score", score).
		Msg("Encoded")

	out := encoded{Latitude: c.Latitude, Longitude: c.Longitude, Score: score}
	if opts.Format == verify.FormatText {
		_, err := fmt.Fprintln(stdout, score)
		return err
	}
	return write(stdout, opts.Format, out)
}

func (c *DecodeCommand) Execute(_ []string) error {
	results := make([]decoded, 0, len(c.Args.Scores))

	for _, arg := range c.Args.Scores {
		score, err := strconv.ParseUint(arg, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid score %q: %w", arg, err)
		}

		var point geoscore.Coordinates
		if opts.NoValidate {
			point = geoscore.Decode(score)
		} else if point, err = geoscore.DecodeStrict(score); err != nil {
			return err
		}

		results = append(results, decoded{
			Score:     score,
			Latitude:  point.Latitude,
			Longitude: point.Longitude,
			Geohash:   verify.Geohash(score),
		})
	}

	if opts.Format == verify.FormatText {
		for _, r := range results {
			if _, err := fmt.Fprintf(stdout, "%d\t%.15f\t%.15f\t%s\n", r.Score, r.Latitude, r.Longitude, r.Geohash); err != nil {
				return err
			}
		}
		return nil
	}
	return write(stdout, opts.Format, results)
}

func write(w io.Writer, format string, v interface{}) error {
	var data []byte
	var err error
	if format == verify.FormatYAML {
		data, err = yaml.Marshal(v)
	} else {
		data, err = json.MarshalIndent(v, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return err
	}

	_, err = w.Write(data)
	return err
}
