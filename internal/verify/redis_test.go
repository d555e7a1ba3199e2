package verify

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/woozymasta/geoscore/internal/config"
	"github.com/woozymasta/geoscore/pkg/geoscore"

	"github.com/redis/rueidis"
	"github.com/redis/rueidis/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// fakeGeo answers GEOADD, ZSCORE, GEOPOS and DEL from an in-memory set,
// scoring members with score().
type fakeGeo struct {
	members map[string]uint64
	score   func(lat, lon float64) uint64
	deletes int
}

func newFakeGeo() *fakeGeo {
	return &fakeGeo{members: map[string]uint64{}, score: geoscore.Encode}
}

func (f *fakeGeo) do(_ context.Context, cmd rueidis.Completed) rueidis.RedisResult {
	args := cmd.Commands()
	switch args[0] {
	case "DEL":
		f.deletes++
		f.members = map[string]uint64{}
		return mock.Result(mock.RedisInt64(1))
	case "GEOADD":
		lon, _ := strconv.ParseFloat(args[2], 64)
		lat, _ := strconv.ParseFloat(args[3], 64)
		if lat < geoscore.MinLatitude || lat > geoscore.MaxLatitude {
			return mock.Result(mock.RedisError("ERR invalid longitude,latitude pair " + args[2] + "," + args[3]))
		}
		f.members[args[4]] = f.score(lat, lon)
		return mock.Result(mock.RedisInt64(1))
	case "ZSCORE":
		return mock.Result(mock.RedisString(strconv.FormatUint(f.members[args[2]], 10)))
	case "GEOPOS":
		c := geoscore.Decode(f.members[args[2]])
		return mock.Result(mock.RedisArray(mock.RedisArray(
			mock.RedisString(strconv.FormatFloat(c.Longitude, 'f', -1, 64)),
			mock.RedisString(strconv.FormatFloat(c.Latitude, 'f', -1, 64)),
		)))
	}
	return mock.ErrorResult(errors.New("unexpected command " + args[0]))
}

func TestRedisChecker_Agrees(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)
	fake := newFakeGeo()

	c.EXPECT().Do(gomock.Any(), gomock.Any()).DoAndReturn(fake.do).AnyTimes()

	report := Run(config.Default())
	require.NoError(t, NewRedisChecker(c, "").Check(context.Background(), report))

	assert.True(t, report.OK())
	assert.Equal(t, 2, fake.deletes)
	for _, res := range report.Results {
		require.NotNil(t, res.Redis, res.Name)
		assert.Equal(t, res.Score, res.Redis.Score, res.Name)
		assert.True(t, res.Redis.OK(), res.Name)
	}
}

func TestRedisChecker_ReportsMismatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)
	fake := newFakeGeo()
	// a server that rounds instead of truncating lands in another cell
	fake.score = func(lat, lon float64) uint64 { return geoscore.Encode(lat, lon) ^ 1 }

	c.EXPECT().Do(gomock.Any(), gomock.Any()).DoAndReturn(fake.do).AnyTimes()

	report := Run(config.Default())
	require.NoError(t, NewRedisChecker(c, "scratch").Check(context.Background(), report))

	assert.False(t, report.OK())
	assert.Equal(t, len(report.Results), report.Failed)
	for _, res := range report.Results {
		assert.False(t, res.Redis.ScoreOK, res.Name)
		// GEOPOS is consistent with the score the server stored
		assert.True(t, res.Redis.PositionOK, res.Name)
	}
}

func TestRedisChecker_RejectedFixture(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)
	fake := newFakeGeo()

	c.EXPECT().Do(gomock.Any(), gomock.Any()).DoAndReturn(fake.do).AnyTimes()

	cfg := &config.Config{
		Tolerance: config.DefaultTolerance,
		Cities: []config.City{
			{Name: "Bangkok", Latitude: 13.7220, Longitude: 100.5252, Score: 3962257306574459},
			{Name: "North Pole", Latitude: 89.5, Longitude: 0, Score: geoscore.Encode(89.5, 0)},
		},
	}
	report := Run(cfg)
	require.NoError(t, NewRedisChecker(c, "").Check(context.Background(), report))

	assert.Equal(t, 2, fake.deletes)

	bangkok := report.Results[0]
	require.NotNil(t, bangkok.Redis)
	assert.Empty(t, bangkok.Redis.Error)
	assert.True(t, bangkok.Redis.OK())

	pole := report.Results[1]
	require.NotNil(t, pole.Redis)
	assert.Contains(t, pole.Redis.Error, "invalid longitude,latitude pair")
	assert.False(t, pole.Redis.OK())
	assert.False(t, pole.OK())
	assert.Contains(t, status(pole), "redis: ")
}

func TestRedisChecker_ServerError(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("DEL", DefaultRedisKey)).
		Return(mock.ErrorResult(context.DeadlineExceeded))

	err := NewRedisChecker(c, "").Check(context.Background(), Run(config.Default()))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNewRedisClient_NoAddrs(t *testing.T) {
	_, err := NewRedisClient(RedisConfig{})
	assert.EqualError(t, err, "addrs is required")
}
