// Package cache keeps rendered page payloads in redis, grouped by the page
// path they belong to so that a write can drop every variant of a page.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/BruksfildServices01/estate-listings/internal/config"
)

// Paths that listing and credit writes invalidate.
const (
	PathHome          = "/"
	PathMyListings    = "/my-profile/my-listings"
	PathManageCredits = "/my-profile/manage-credits"
	PathBuyCredit     = "/my-profile/manage-credits/buy-credit"
)

func MyListingsPath(userID string) string {
	return PathMyListings + "/" + userID
}

func BuyCreditPath(productID string) string {
	return PathBuyCredit + "/" + productID
}

// PageCache reads and writes pages under a per-path generation. Invalidate
// bumps the generation, so a page built from a read that started before the
// bump is never stored where later readers look.
type PageCache interface {
	// Get decodes the cached value into dst. found is false on a miss. gen is
	// the generation the lookup ran under and must be handed back to Set.
	Get(ctx context.Context, path, key string, dst any) (gen int64, found bool, err error)
	// Set stores value unless path was invalidated after gen was read.
	Set(ctx context.Context, path string, gen int64, key string, value any) error
	Invalidate(ctx context.Context, paths ...string) error
}

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedis(ctx context.Context, cfg config.RedisConfig) (*RedisCache, error) {
	const op = "cache.NewRedis"

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &RedisCache{client: client, ttl: cfg.TTL}, nil
}

func pageKey(path string, gen int64, key string) string {
	return "page:" + path + ":" + strconv.FormatInt(gen, 10) + ":" + key
}

func indexKey(path string) string {
	return "pathkeys:" + path
}

func genKey(path string) string {
	return "gen:" + path
}

type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

// generation is 0 until the path is first invalidated.
func generation(ctx context.Context, r getter, path string) (int64, error) {
	gen, err := r.Get(ctx, genKey(path)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func (c *RedisCache) Get(ctx context.Context, path, key string, dst any) (int64, bool, error) {
	const op = "cache.Get"

	gen, err := generation(ctx, c.client, path)
	if err != nil {
		return 0, false, fmt.Errorf("%s: %w", op, err)
	}

	val, err := c.client.Get(ctx, pageKey(path, gen, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return gen, false, nil
	}
	if err != nil {
		return gen, false, fmt.Errorf("%s: %w", op, err)
	}
	if err := json.Unmarshal(val, dst); err != nil {
		return gen, false, fmt.Errorf("%s: %w", op, err)
	}
	return gen, true, nil
}

func (c *RedisCache) Set(ctx context.Context, path string, gen int64, key string, value any) error {
	const op = "cache.Set"

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	k := pageKey(path, gen, key)
	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := generation(ctx, tx, path)
		if err != nil {
			return err
		}
		if cur != gen {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(p redis.Pipeliner) error {
			p.Set(ctx, k, data, c.ttl)
			p.SAdd(ctx, indexKey(path), k)
			if c.ttl > 0 {
				p.Expire(ctx, indexKey(path), c.ttl)
			}
			return nil
		})
		return err
	}, genKey(path))

	// A concurrent Invalidate touched the generation: the page is stale.
	if errors.Is(err, redis.TxFailedErr) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (c *RedisCache) Invalidate(ctx context.Context, paths ...string) error {
	const op = "cache.Invalidate"

	for _, path := range paths {
		if err := c.client.Incr(ctx, genKey(path)).Err(); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		keys, err := c.client.SMembers(ctx, indexKey(path)).Result()
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		keys = append(keys, indexKey(path))
		if err := c.client.Del(ctx, keys...).Err(); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}
	return nil
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

// Nop is used when no redis is configured: every read misses.
type Nop struct{}

func (Nop) Get(context.Context, string, string, any) (int64, bool, error) { return 0, false, nil }
func (Nop) Set(context.Context, string, int64, string, any) error         { return nil }
func (Nop) Invalidate(context.Context, ...string) error                   { return nil }

var (
	_ PageCache = (*RedisCache)(nil)
	_ PageCache = Nop{}
)
