package services

import (
	"context"
	"errors"
	"time"

	"fleetpulse/pkg/cache"
)

// ErrCacheMiss is returned by Get when the key is absent. A disabled
// cache reports every read as a miss.
var ErrCacheMiss = errors.New("cache miss")

type CacheService interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Exists(ctx context.Context, key string) (bool, error)
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error)
}

type redisCacheService struct {
	redis *cache.RedisCache
}

func NewCacheService(redis *cache.RedisCache) CacheService {
	return &redisCacheService{redis: redis}
}

func (s *redisCacheService) Get(ctx context.Context, key string, dest interface{}) error {
	err := s.redis.Get(ctx, key, dest)
	if err != nil {
		if cache.IsMiss(err) {
			return ErrCacheMiss
		}
		return err
	}
	return nil
}

func (s *redisCacheService) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return s.redis.Set(ctx, key, value, expiration)
}

func (s *redisCacheService) Delete(ctx context.Context, keys ...string) error {
	return s.redis.Delete(ctx, keys...)
}

func (s *redisCacheService) Exists(ctx context.Context, key string) (bool, error) {
	return s.redis.Exists(ctx, key)
}

func (s *redisCacheService) SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error) {
	return s.redis.SetNX(ctx, key, value, expiration)
}

// noopCacheService stands in when Redis is disabled. Reads always miss
// and writes are dropped, so callers need no special casing.
type noopCacheService struct{}

func NewNoopCacheService() CacheService {
	return &noopCacheService{}
}

func (s *noopCacheService) Get(ctx context.Context, key string, dest interface{}) error {
	return ErrCacheMiss
}

func (s *noopCacheService) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return nil
}

func (s *noopCacheService) Delete(ctx context.Context, keys ...string) error {
	return nil
}

func (s *noopCacheService) Exists(ctx context.Context, key string) (bool, error) {
	return false, nil
}

func (s *noopCacheService) SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error) {
	return true, nil
}
