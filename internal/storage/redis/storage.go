package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/gameportal/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return NewWithClient(client, cfg), nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = DefaultConfig().KeyPrefix
	}
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) Get(ctx context.Context, key string) (string, error) {
	value, err := s.client.Get(ctx, s.valueKey(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", storage.ErrNotFound
		}
		return "", err
	}
	return value, nil
}

func (s *Storage) Set(ctx context.Context, key, value string) error {
	return s.client.Set(ctx, s.valueKey(key), value, s.cfg.TTL).Err()
}

func (s *Storage) Remove(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.valueKey(key)).Err()
}
