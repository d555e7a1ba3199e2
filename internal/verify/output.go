package verify

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/tdewolff/minify/v2"
	mjson "github.com/tdewolff/minify/v2/json"
	"gopkg.in/yaml.v3"
)

// Output formats accepted by Write.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Write renders report to w. Minify only applies to JSON.
func Write(w io.Writer, report *Report, format string, minified bool) error {
	switch format {
	case FormatText, "":
		return writeText(w, report)
	case FormatJSON:
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		if minified {
			m := minify.New()
			m.AddFunc("application/json", mjson.Minify)
			if data, err = m.Bytes("application/json", data); err != nil {
				return fmt.Errorf("minify report: %w", err)
			}
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func writeText(w io.Writer, report *Report) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, "NAME\tSCORE\tLATITUDE\tLONGITUDE\tGEOHASH\tDRIFT\tSTATUS")
	for _, res := range report.Results {
		fmt.Fprintf(tw, "%s\t%d\t%.15f\t%.15f\t%s\t%.3fm\t%s\n",
			res.Name,
			res.Score,
			res.Decoded.Latitude,
			res.Decoded.Longitude,
			res.Geohash,
			res.DriftMeters,
			status(res))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\n%d passed, %d failed (tolerance %g)\n", report.Passed, report.Failed, report.Tolerance)
	return err
}

func status(res Result) string {
	if res.OK() {
		return "ok"
	}

	s := "FAIL"
	if !res.ScoreOK {
		s += fmt.Sprintf(" score want %d", res.ExpectedScore)
	}
	if !res.DecodeOK {
		s += " decode"
	}
	if res.Redis != nil {
		if res.Redis.Error != "" {
			return s + " redis: " + res.Redis.Error
		}
		if !res.Redis.ScoreOK {
			s += fmt.Sprintf(" redis score %d", res.Redis.Score)
		}
		if !res.Redis.PositionOK {
			s += " redis position"
		}
	}
	return s
}
