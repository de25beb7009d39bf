package cooldown

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
)

type RedisLimiterSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	client  *redis.Client
	limiter *RedisLimiter
	ctx     context.Context
}

func TestRedisLimiterSuite(t *testing.T) {
	suite.Run(t, new(RedisLimiterSuite))
}

func (s *RedisLimiterSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())
	s.client = redis.NewClient(&redis.Options{Addr: s.mini.Addr()})
	s.limiter = NewRedisLimiter(s.client, "habit:cooldown:")
	s.ctx = context.Background()
}

func (s *RedisLimiterSuite) TearDownTest() {
	if s.client != nil {
		_ = s.client.Close()
	}
}

func (s *RedisLimiterSuite) TestAcquireStartsWindow() {
	ok, retryAfter, err := s.limiter.Acquire(s.ctx, "profile:alice", time.Minute)
	s.Require().NoError(err)
	s.True(ok)
	s.Zero(retryAfter)

	s.True(s.mini.Exists("habit:cooldown:profile:alice"))
	s.Equal(time.Minute, s.mini.TTL("habit:cooldown:profile:alice"))
}

func (s *RedisLimiterSuite) TestAcquireWhileCoolingDown() {
	_, _, err := s.limiter.Acquire(s.ctx, "profile:alice", time.Minute)
	s.Require().NoError(err)

	s.mini.FastForward(15 * time.Second)

	ok, retryAfter, err := s.limiter.Acquire(s.ctx, "profile:alice", time.Minute)
	s.Require().NoError(err)
	s.False(ok)
	s.Equal(45*time.Second, retryAfter)
}

func (s *RedisLimiterSuite) TestAcquireAfterWindow() {
	_, _, err := s.limiter.Acquire(s.ctx, "profile:alice", time.Minute)
	s.Require().NoError(err)

	s.mini.FastForward(time.Minute + time.Second)

	ok, _, err := s.limiter.Acquire(s.ctx, "profile:alice", time.Minute)
	s.Require().NoError(err)
	s.True(ok)
}

func (s *RedisLimiterSuite) TestKeyWithoutExpiryGetsOne() {
	s.Require().NoError(s.mini.Set("habit:cooldown:test:bob", "stale"))

	ok, retryAfter, err := s.limiter.Acquire(s.ctx, "test:bob", time.Minute)
	s.Require().NoError(err)
	s.False(ok)
	s.Equal(time.Minute, retryAfter)
	s.Equal(time.Minute, s.mini.TTL("habit:cooldown:test:bob"))
}

func (s *RedisLimiterSuite) TestRedisUnavailable() {
	s.mini.Close()

	_, _, err := s.limiter.Acquire(s.ctx, "profile:alice", time.Minute)
	s.Error(err)
}
