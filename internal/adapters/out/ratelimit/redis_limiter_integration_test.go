package ratelimit

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

type RedisLimiterSuite struct {
	suite.Suite
	container testcontainers.Container
	client    *redis.Client
}

func TestRedisLimiterSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisLimiterSuite))
}

func (s *RedisLimiterSuite) SetupSuite() {
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	s.Require().NoError(err)
	s.container = container

	endpoint, err := container.Endpoint(ctx, "")
	s.Require().NoError(err)

	s.client = redis.NewClient(&redis.Options{Addr: endpoint})
	s.Require().NoError(s.client.Ping(ctx).Err())
}

func (s *RedisLimiterSuite) TearDownSuite() {
	if s.client != nil {
		_ = s.client.Close()
	}
	if s.container != nil {
		_ = s.container.Terminate(context.Background())
	}
}

func (s *RedisLimiterSuite) SetupTest() {
	s.Require().NoError(s.client.FlushAll(context.Background()).Err())
}

func (s *RedisLimiterSuite) TestAllowsUpToLimit() {
	ctx := s.T().Context()
	limiter, err := NewRedisLimiter(s.client, 3, time.Minute)
	s.Require().NoError(err)

	for i := 0; i < 3; i++ {
		allowed, err := limiter.Allow(ctx, "donor-1")
		s.Require().NoError(err)
		s.True(allowed, "call %d", i+1)
	}

	allowed, err := limiter.Allow(ctx, "donor-1")
	s.Require().NoError(err)
	s.False(allowed)

	allowed, err = limiter.Allow(ctx, "donor-2")
	s.Require().NoError(err)
	s.True(allowed)
}

func (s *RedisLimiterSuite) TestWindowExpires() {
	ctx := s.T().Context()
	limiter, err := NewRedisLimiter(s.client, 1, time.Second)
	s.Require().NoError(err)

	allowed, err := limiter.Allow(ctx, "ngo-1")
	s.Require().NoError(err)
	s.True(allowed)

	allowed, err = limiter.Allow(ctx, "ngo-1")
	s.Require().NoError(err)
	s.False(allowed)

	ttl, err := s.client.TTL(ctx, keyPrefix+"ngo-1").Result()
	s.Require().NoError(err)
	s.Positive(ttl)

	s.Eventually(func() bool {
		ok, err := limiter.Allow(ctx, "ngo-1")
		return err == nil && ok
	}, 3*time.Second, 200*time.Millisecond)
}

func (s *RedisLimiterSuite) TestCounterAlwaysCarriesTTL() {
	ctx := s.T().Context()
	limiter, err := NewRedisLimiter(s.client, 5, time.Minute)
	s.Require().NoError(err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = limiter.Allow(ctx, "requester-1")
		}()
	}
	wg.Wait()

	count, err := s.client.Get(ctx, keyPrefix+"requester-1").Int64()
	s.Require().NoError(err)
	s.Equal(int64(20), count)

	ttl, err := s.client.TTL(ctx, keyPrefix+"requester-1").Result()
	s.Require().NoError(err)
	s.Positive(ttl)
	s.LessOrEqual(ttl, time.Minute)

	allowed, err := limiter.Allow(ctx, "requester-1")
	s.Require().NoError(err)
	s.False(allowed)
}
