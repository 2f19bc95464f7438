package bookmark

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisConfig configures a [RedisStore].
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	// Key holds the list; defaults to [Key].
	Key string
}

// RedisStore keeps bookmarks in a Redis list.
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect redis %s: %w", cfg.Addr, err)
	}
	key := cfg.Key
	if key == "" {
		key = Key
	}
	return &RedisStore{client: client, key: key}, nil
}

func (s *RedisStore) List(ctx context.Context) ([]string, error) {
	ids, err := s.client.LRange(ctx, s.key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list bookmarks: %w", err)
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

// Add appends id inside a WATCH transaction so concurrent writers cannot
// insert the same id twice.
func (s *RedisStore) Add(ctx context.Context, id string) error {
	if err := ValidateID(id); err != nil {
		return err
	}
	err := s.client.Watch(ctx, func(tx *redis.Tx) error {
		_, err := tx.LPos(ctx, s.key, id, redis.LPosArgs{}).Result()
		if err == nil {
			return nil
		}
		if !errors.Is(err, redis.Nil) {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.RPush(ctx, s.key, id)
			return nil
		})
		return err
	}, s.key)
	if err != nil {
		return fmt.Errorf("add bookmark: %w", err)
	}
	return nil
}

func (s *RedisStore) Remove(ctx context.Context, id string) error {
	if err := s.client.LRem(ctx, s.key, 0, id).Err(); err != nil {
		return fmt.Errorf("remove bookmark: %w", err)
	}
	return nil
}

func (s *RedisStore) Has(ctx context.Context, id string) (bool, error) {
	_, err := s.client.LPos(ctx, s.key, id, redis.LPosArgs{}).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("query bookmark: %w", err)
	}
	return true, nil
}

func (s *RedisStore) Close() error { return s.client.Close() }

var _ Store = (*RedisStore)(nil)
