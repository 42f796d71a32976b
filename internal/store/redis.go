package store

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/gofiber/storage/redis/v3"
)

// Redis is the shared remote aggregate store. Slash paths are used verbatim
// as redis keys; List and child deletion go through SCAN on the underlying
// client.
type Redis struct {
	storage *redis.Storage
	client  goredis.UniversalClient
}

// OpenRedis connects to the store at the given URL
// (e.g. redis://localhost:6379/0).
func OpenRedis(url string) (*Redis, error) {
	storage := redis.New(redis.Config{URL: url})
	client := storage.Conn()
	if err := client.Ping(context.Background()).Err(); err != nil {
		storage.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &Redis{storage: storage, client: client}, nil
}

// Read returns the value at path, or ErrAbsent.
func (r *Redis) Read(ctx context.Context, path string) (string, error) {
	raw, err := r.storage.GetWithContext(ctx, path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	if raw == nil {
		return "", ErrAbsent
	}
	return string(raw), nil
}

// Write overwrites the value at path. Values never expire; counters live
// until an administrative reset overwrites them.
func (r *Redis) Write(ctx context.Context, path, value string) error {
	if err := r.storage.SetWithContext(ctx, path, []byte(value), 0); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Delete removes path and all children.
func (r *Redis) Delete(ctx context.Context, path string) error {
	if err := r.storage.DeleteWithContext(ctx, path); err != nil {
		return fmt.Errorf("delete %s: %w", path, err)
	}
	children, err := r.scan(ctx, path+"/*")
	if err != nil {
		return fmt.Errorf("delete children of %s: %w", path, err)
	}
	if len(children) > 0 {
		if err := r.client.Del(ctx, children...).Err(); err != nil {
			return fmt.Errorf("delete children of %s: %w", path, err)
		}
	}
	return nil
}

// List returns every stored path equal to prefix or below it.
func (r *Redis) List(ctx context.Context, prefix string) ([]string, error) {
	paths, err := r.scan(ctx, prefix+"/*")
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", prefix, err)
	}
	if _, err := r.Read(ctx, prefix); err == nil {
		paths = append(paths, prefix)
	}
	return paths, nil
}

func (r *Redis) scan(ctx context.Context, pattern string) ([]string, error) {
	var (
		keys   []string
		cursor uint64
	)
	for {
		batch, next, err := r.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return nil, err
		}
		keys = append(keys, batch...)
		if next == 0 {
			return keys, nil
		}
		cursor = next
	}
}

// Close closes the connection.
func (r *Redis) Close() error {
	return r.storage.Close()
}
