//go:build e2e

package redis

import (
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"gitee.com/flycash/shift-handover/internal/repository/cache"
)

func TestRedisCacheSuite(t *testing.T) {
	suite.Run(t, new(RedisCacheTestSuite))
}

type RedisCacheTestSuite struct {
	suite.Suite
	client *redis.Client
	cache  *Cache
}

func (s *RedisCacheTestSuite) SetupSuite() {
	s.client = redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
	})
	s.cache = NewCache(s.client)
}

func (s *RedisCacheTestSuite) TearDownSuite() {
	s.client.FlushDB(s.T().Context())
	s.client.Close()
}

func (s *RedisCacheTestSuite) SetupTest() {
	s.client.FlushDB(s.T().Context())
}

func (s *RedisCacheTestSuite) TestGetSet() {
	ctx := s.T().Context()
	_, err := s.cache.Get(ctx, "missing")
	s.ErrorIs(err, cache.ErrKeyNotFound)

	s.NoError(s.cache.Set(ctx, "k", []byte(`{"a":1}`), time.Minute))
	val, err := s.cache.Get(ctx, "k")
	s.NoError(err)
	s.JSONEq(`{"a":1}`, string(val))
	ttl := s.client.TTL(ctx, "k").Val()
	s.True(ttl > 0 && ttl <= time.Minute)
}

func (s *RedisCacheTestSuite) TestDeleteMatching() {
	ctx := s.T().Context()
	// more keys than one SCAN page
	for i := 0; i < 1200; i++ {
		s.NoError(s.cache.Set(ctx, fmt.Sprintf("dashboard:42:%d", i), []byte("1"), time.Minute))
	}
	s.NoError(s.cache.Set(ctx, "dashboard:7:false:UTI", []byte("1"), time.Minute))

	removed, err := s.cache.DeleteMatching(ctx, "dashboard:42:*")
	s.NoError(err)
	s.Equal(1200, removed)

	_, err = s.cache.Get(ctx, "dashboard:7:false:UTI")
	s.NoError(err)
}
