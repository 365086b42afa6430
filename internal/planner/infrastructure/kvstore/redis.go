package kvstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
)

// DefaultNamespace prefixes every key the application writes.
const DefaultNamespace = "dayline"

// clearBatch is how many keys one SCAN page asks for and one DEL removes.
const clearBatch = 100

// RedisStore keeps keys under "{namespace}:{key}".
type RedisStore struct {
	client    *redis.Client
	namespace string
}

// NewRedisStore creates a store on an existing client. An empty namespace
// uses DefaultNamespace.
func NewRedisStore(client *redis.Client, namespace string) *RedisStore {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return &RedisStore{client: client, namespace: namespace}
}

// DialRedis parses a redis:// URL and verifies the server answers.
func DialRedis(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

func (s *RedisStore) namespaceKey(key string) string {
	return s.namespace + ":" + key
}

func (s *RedisStore) stripNamespace(fullKey string) string {
	return strings.TrimPrefix(fullKey, s.namespace+":")
}

// Get retrieves a value by key.
func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	if err := checkKey(key); err != nil {
		return "", err
	}
	val, err := s.client.Get(ctx, s.namespaceKey(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrKeyNotFound
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

// Set stores a value without expiry.
func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	if err := checkValue(value); err != nil {
		return err
	}
	return s.client.Set(ctx, s.namespaceKey(key), value, 0).Err()
}

// Delete removes a key. Deleting a missing key is not an error.
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	return s.client.Del(ctx, s.namespaceKey(key)).Err()
}

// Keys lists the keys in the namespace, without the prefix.
func (s *RedisStore) Keys(ctx context.Context) ([]string, error) {
	var keys []string
	iter := s.client.Scan(ctx, 0, s.namespaceKey("*"), clearBatch).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, s.stripNamespace(iter.Val()))
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return keys, nil
}

// Clear deletes the namespace with SCAN and batched DEL. Keys outside the
// namespace are untouched.
func (s *RedisStore) Clear(ctx context.Context) error {
	batch := make([]string, 0, clearBatch)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := s.client.Del(ctx, batch...).Err(); err != nil {
			return err
		}
		batch = batch[:0]
		return nil
	}

	iter := s.client.Scan(ctx, 0, s.namespaceKey("*"), clearBatch).Iterator()
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == clearBatch {
			if err := flush(); err != nil {
				return fmt.Errorf("clear %s: %w", s.namespace, err)
			}
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("clear %s: %w", s.namespace, err)
	}
	if err := flush(); err != nil {
		return fmt.Errorf("clear %s: %w", s.namespace, err)
	}
	return nil
}

var _ Store = (*RedisStore)(nil)
