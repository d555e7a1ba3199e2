package main

import (
	"context"
	"os"
	"time"

	"github.com/woozymasta/geoscore/internal/config"
	"github.com/woozymasta/geoscore/internal/logger"
	"github.com/woozymasta/geoscore/internal/verify"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`
	Redis  RedisOptions  `group:"Redis cross-check options"`

	ConfigFile string   `short:"c" long:"config"    env:"CONFIG_FILE"   description:"Path to fixtures file (built-in cities if empty)"`
	Format     string   `short:"f" long:"format"    env:"OUTPUT_FORMAT" description:"Report format" choice:"text" choice:"json" choice:"yaml" default:"text"`
	Tolerance  *float64 `short:"t" long:"tolerance" env:"TOLERANCE"     description:"Override decode tolerance in degrees"`
	Minify     bool     `short:"m" long:"minify"    description:"Minify JSON report"`
}

type RedisOptions struct {
	Addrs    []string      `long:"redis-addr"     env:"REDIS_ADDR"     env-delim:"," description:"Redis address; enables the cross-check"`
	Username string        `long:"redis-username" env:"REDIS_USERNAME" description:"Redis ACL username"`
	Password string        `long:"redis-password" env:"REDIS_PASSWORD" description:"Redis password"`
	Key      string        `long:"redis-key"      env:"REDIS_KEY"      description:"Scratch key for GEOADD" default:"geoscore:verify"`
	DB       int           `long:"redis-db"       env:"REDIS_DB"       description:"Redis database"`
	Timeout  time.Duration `long:"redis-timeout"  env:"REDIS_TIMEOUT"  description:"Cross-check timeout" default:"10s"`
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

	cfg := config.Default()
	if opts.ConfigFile != "" {
		var err error
		if cfg, err = config.Load(opts.ConfigFile); err != nil {
			log.Fatal().Err(err).Msg("Failed to load fixtures")
		}
	}
	if err := overrideTolerance(cfg, opts.Tolerance); err != nil {
		log.Fatal().Err(err).Msg("Invalid tolerance")
	}

	log.Info().
		Int("cities", len(cfg.Cities)).
		Float64("tolerance", cfg.Tolerance).
		Bool("redis", len(opts.Redis.Addrs) > 0).
		Msg("Starting verification")

	report := verify.Run(cfg)

	if len(opts.Redis.Addrs) > 0 {
		if err := crossCheck(opts.Redis, report); err != nil {
			log.Fatal().Err(err).Strs("addrs", opts.Redis.Addrs).Msg("Redis cross-check failed")
		}
	}

	if err := verify.Write(os.Stdout, report, opts.Format, opts.Minify); err != nil {
		log.Fatal().Err(err).Msg("Failed to write report")
	}

	if !report.OK() {
		log.Error().
			Int("passed", report.Passed).
			Int("failed", report.Failed).
			Msg("Verification failed")
		os.Exit(1)
	}

	log.Info().Int("passed", report.Passed).Msg("Verification finished successfully")
}

// overrideTolerance replaces the fixture tolerance when the flag was given,
// zero included.
func overrideTolerance(cfg *config.Config, tolerance *float64) error {
	if tolerance == nil {
		return nil
	}
	cfg.Tolerance = *tolerance
	return cfg.Validate()
}

func crossCheck(opts RedisOptions, report *verify.Report) error {
	client, err := verify.NewRedisClient(verify.RedisConfig{
		Addrs:    opts.Addrs,
		Username: opts.Username,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err != nil {
		return err
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), opts.Timeout)
	defer cancel()

	return verify.NewRedisChecker(client, opts.Key).Check(ctx, report)
}
