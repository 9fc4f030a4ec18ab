package ratelimiter

import (
	"context"
	"enemauth/internal/core/domain/logging"
	ratelimiter "enemauth/internal/core/domain/rate_limiter"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v9"
	"github.com/stretchr/testify/suite"
)

const KEY = "password-reset::test@test.test"

type testSuite struct {
	suite.Suite
	Now         time.Time
	Logger      *logging.FakeLogger
	Server      *miniredis.Miniredis
	Client      *redis.Client
	RateLimiter *Redis
}

func (suite *testSuite) SetupTest() {
	suite.Now = time.Date(2024, 3, 10, 12, 30, 0, 0, time.UTC)
	suite.Logger = logging.NewFakeLogger()
	suite.Server = miniredis.RunT(suite.T())
	suite.Client = redis.NewClient(&redis.Options{Addr: suite.Server.Addr()})
	suite.RateLimiter = NewRedis(suite.Client, suite.Logger, func() time.Time { return suite.Now })
}

func (suite *testSuite) TearDownTest() {
	suite.Client.Close()
}

func TestRedisRateLimiter(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) TestLimitPerHour() {
	limit := ratelimiter.Limit{Value: 3, Interval: ratelimiter.Hour}
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		s.True(s.RateLimiter.CheckLimit(ctx, KEY, limit).IsAllowed)
	}
	s.False(s.RateLimiter.CheckLimit(ctx, KEY, limit).IsAllowed)
	s.True(s.RateLimiter.CheckLimit(ctx, "password-reset::other@test.test", limit).IsAllowed)
}

func (s *testSuite) TestNextWindowIsAllowed() {
	limit := ratelimiter.Limit{Value: 1, Interval: ratelimiter.Minute}
	ctx := context.Background()

	s.True(s.RateLimiter.CheckLimit(ctx, KEY, limit).IsAllowed)
	s.False(s.RateLimiter.CheckLimit(ctx, KEY, limit).IsAllowed)

	s.Now = s.Now.Add(time.Minute)
	s.True(s.RateLimiter.CheckLimit(ctx, KEY, limit).IsAllowed)
}

func (s *testSuite) TestCounterExpires() {
	limit := ratelimiter.Limit{Value: 1, Interval: ratelimiter.Hour}
	ctx := context.Background()

	s.True(s.RateLimiter.CheckLimit(ctx, KEY, limit).IsAllowed)
	keys := s.Server.Keys()
	s.Require().Len(keys, 1)
	s.Equal(time.Hour, s.Server.TTL(keys[0]))
}

func (s *testSuite) TestRedisUnavailableFailsOpen() {
	s.Server.Close()

	result := s.RateLimiter.CheckLimit(
		context.Background(),
		KEY,
		ratelimiter.Limit{Value: 1, Interval: ratelimiter.Hour},
	)

	s.True(result.IsAllowed)
	s.Equal(1, s.Logger.Count(logging.ERROR))
}

func (s *testSuite) TestCanceledContextIsNotAllowed() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := s.RateLimiter.CheckLimit(ctx, KEY, ratelimiter.Limit{Value: 10, Interval: ratelimiter.Hour})

	s.False(result.IsAllowed)
}
