package verify

import (
	"context"
	"fmt"

	"github.com/woozymasta/geoscore/pkg/geoscore"

	"github.com/redis/rueidis"
	"github.com/rs/zerolog/log"
)

// DefaultRedisKey is the scratch sorted set used for the cross-check.
const DefaultRedisKey = "geoscore:verify"

// RedisResult holds what a Redis server made of one fixture.
type RedisResult struct {
	Position   geoscore.Coordinates `json:"position" yaml:"position"`
	Error      string               `json:"error,omitempty" yaml:"error,omitempty"` // server rejected GEOADD
	Score      uint64               `json:"score" yaml:"score"`
	ScoreOK    bool                 `json:"score_ok" yaml:"score_ok"`
	PositionOK bool                 `json:"position_ok" yaml:"position_ok"`
}

// OK reports whether Redis agreed with the codec.
func (r *RedisResult) OK() bool {
	return r.ScoreOK && r.PositionOK
}

// RedisConfig holds connection parameters for the cross-check server.
type RedisConfig struct {
	Addrs    []string
	Username string
	Password string
	DB       int
}

// NewRedisClient connects to the Redis server used for the cross-check.
func NewRedisClient(cfg RedisConfig) (rueidis.Client, error) {
	if len(cfg.Addrs) == 0 {
		return nil, fmt.Errorf("addrs is required")
	}

	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress:  cfg.Addrs,
		Username:     cfg.Username,
		Password:     cfg.Password,
		SelectDB:     cfg.DB,
		DisableCache: true,
		AlwaysRESP2:  true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return client, nil
}

// RedisChecker adds fixtures to a scratch key with GEOADD and compares the
// stored scores and GEOPOS answers with the codec.
type RedisChecker struct {
	client rueidis.Client
	key    string
}

// NewRedisChecker returns a checker writing to key. An empty key means
// DefaultRedisKey.
func NewRedisChecker(client rueidis.Client, key string) *RedisChecker {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisChecker{client: client, key: key}
}

// Check fills the Redis field of every result in report and updates the
// pass/fail counters. The scratch key is deleted before and after the run.
func (c *RedisChecker) Check(ctx context.Context, report *Report) (err error) {
	if err := c.del(ctx); err != nil {
		return err
	}
	defer func() {
		if delErr := c.del(ctx); delErr != nil && err == nil {
			err = delErr
		}
	}()

	for i := range report.Results {
		res := &report.Results[i]

		rr, err := c.checkOne(ctx, res, report.Tolerance)
		if err != nil {
			return fmt.Errorf("%s: %w", res.Name, err)
		}
		res.Redis = rr

		log.Debug().
			Str("name", res.Name).
			Uint64("redis_score", rr.Score).
			Uint64("score", res.Score).
			Bool("ok", rr.OK()).
			Msg("Redis cross-check")
	}

	report.tally()
	return nil
}

func (c *RedisChecker) checkOne(ctx context.Context, res *Result, tolerance float64) (*RedisResult, error) {
	add := c.client.B().Geoadd().Key(c.key).
		LongitudeLatitudeMember().
		LongitudeLatitudeMember(res.Input.Longitude, res.Input.Latitude, res.Name).
		Build()
	if err := c.client.Do(ctx, add).Error(); err != nil {
		// a rejected fixture is a mismatch, not a failed run
		if redisErr, ok := rueidis.IsRedisErr(err); ok {
			return &RedisResult{Error: redisErr.Error()}, nil
		}
		return nil, fmt.Errorf("geoadd: %w", err)
	}

	score, err := c.client.Do(ctx, c.client.B().Zscore().Key(c.key).Member(res.Name).Build()).AsFloat64()
	if err != nil {
		return nil, fmt.Errorf("zscore: %w", err)
	}

	positions, err := c.client.Do(ctx, c.client.B().Geopos().Key(c.key).Member(res.Name).Build()).ToArray()
	if err != nil {
		return nil, fmt.Errorf("geopos: %w", err)
	}
	if len(positions) != 1 {
		return nil, fmt.Errorf("geopos: want 1 position, got %d", len(positions))
	}
	lonLat, err := positions[0].AsFloatSlice()
	if err != nil {
		return nil, fmt.Errorf("geopos: %w", err)
	}
	if len(lonLat) != 2 {
		return nil, fmt.Errorf("geopos: want lon/lat pair, got %d values", len(lonLat))
	}

	rr := &RedisResult{
		Score:    uint64(score),
		Position: geoscore.Coordinates{Latitude: lonLat[1], Longitude: lonLat[0]},
	}
	decoded := geoscore.Decode(rr.Score)
	rr.ScoreOK = rr.Score == res.Score
	rr.PositionOK = within(rr.Position.Latitude, decoded.Latitude, tolerance) &&
		within(rr.Position.Longitude, decoded.Longitude, tolerance)

	return rr, nil
}

func (c *RedisChecker) del(ctx context.Context) error {
	if err := c.client.Do(ctx, c.client.B().Del().Key(c.key).Build()).Error(); err != nil {
		return fmt.Errorf("del %s: %w", c.key, err)
	}
	return nil
}
