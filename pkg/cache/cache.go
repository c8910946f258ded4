package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TTLs per cached resource
const (
	TTLCategories = 10 * time.Minute // category tree changes rarely
	TTLListings   = 30 * time.Second // listing pages refresh often
	TTLFeatured   = 1 * time.Minute  // featured carousel
	TTLBadges     = 10 * time.Minute // badge definitions
	TTLDefault    = 5 * time.Minute
)

// Cache key prefixes
const (
	PrefixCategories = "categories:"
	PrefixListings   = "listings:"
	PrefixFeatured   = "featured:"
	PrefixBadges     = "badges:"
)

// ErrCacheMiss is returned when the key does not exist
var ErrCacheMiss = errors.New("cache miss")

// Service is a thin typed layer over Redis for read-heavy pages.
type Service interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	DeleteByPrefix(ctx context.Context, prefix string) error
}

type service struct {
	client *redis.Client
}

// New creates a cache Service. A nil client yields a no-op cache.
func New(client *redis.Client) Service {
	if client == nil {
		return noopService{}
	}
	return &service{client: client}
}

func (s *service) Get(ctx context.Context, key string, dest interface{}) error {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCacheMiss
		}
		return err
	}
	return json.Unmarshal(data, dest)
}

func (s *service) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, data, ttl).Err()
}

func (s *service) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return s.client.Del(ctx, keys...).Err()
}

func (s *service) DeleteByPrefix(ctx context.Context, prefix string) error {
	iter := s.client.Scan(ctx, 0, fmt.Sprintf("%s*", prefix), 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	return s.Delete(ctx, keys...)
}

// noopService keeps callers working when Redis is unavailable.
type noopService struct{}

func (noopService) Get(context.Context, string, interface{}) error { return ErrCacheMiss }
func (noopService) Set(context.Context, string, interface{}, time.Duration) error {
	return nil
}
func (noopService) Delete(context.Context, ...string) error      { return nil }
func (noopService) DeleteByPrefix(context.Context, string) error { return nil }
