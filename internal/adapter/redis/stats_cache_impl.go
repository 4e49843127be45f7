// Package redis caches per-user scrape stats in Redis hashes.
package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/user/bizscrape-service/internal/entity"
)

const (
	statsKeyPrefix      = "stats:"
	generationKeyPrefix = "stats-gen:"
)

// errStaleGeneration aborts a WATCH transaction whose generation moved on.
var errStaleGeneration = errors.New("stats cache: stale generation")

// StatsCacheImpl stores each user's stats as a hash under stats:<userId> with a TTL.
// The user's generation lives under stats-gen:<userId> without expiry.
type StatsCacheImpl struct {
	client *redis.Client
	ttl    time.Duration
}

func NewStatsCache(client *redis.Client, ttl time.Duration) *StatsCacheImpl {
	return &StatsCacheImpl{client: client, ttl: ttl}
}

func (c *StatsCacheImpl) generateKey(userID string) string {
	return fmt.Sprintf("%s%s", statsKeyPrefix, userID)
}

func (c *StatsCacheImpl) generationKey(userID string) string {
	return fmt.Sprintf("%s%s", generationKeyPrefix, userID)
}

func (c *StatsCacheImpl) Get(ctx context.Context, userID string) (entity.ScrapeStats, bool, error) {
	fields, err := c.client.HGetAll(ctx, c.generateKey(userID)).Result()
	if err != nil {
		return entity.ScrapeStats{}, false, err
	}
	if len(fields) == 0 {
		return entity.ScrapeStats{}, false, nil
	}
	stats, err := decodeStats(fields)
	if err != nil {
		return entity.ScrapeStats{}, false, err
	}
	return stats, true, nil
}

func (c *StatsCacheImpl) Generation(ctx context.Context, userID string) (int64, error) {
	return readGeneration(ctx, c.client, c.generationKey(userID))
}

// Set writes the hash and its expiry under WATCH of the generation key, so an
// Invalidate between the caller's Generation and this write discards it.
func (c *StatsCacheImpl) Set(ctx context.Context, userID string, stats entity.ScrapeStats, gen int64) (bool, error) {
	key, genKey := c.generateKey(userID), c.generationKey(userID)
	err := c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := readGeneration(ctx, tx, genKey)
		if err != nil {
			return err
		}
		if current != gen {
			return errStaleGeneration
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, key, encodeStats(stats))
			pipe.Expire(ctx, key, c.ttl)
			return nil
		})
		return err
	}, genKey)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, errStaleGeneration), errors.Is(err, redis.TxFailedErr):
		return false, nil
	default:
		return false, err
	}
}

// Invalidate bumps the generation and drops the cached hash atomically.
func (c *StatsCacheImpl) Invalidate(ctx context.Context, userID string) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, c.generationKey(userID))
		pipe.Del(ctx, c.generateKey(userID))
		return nil
	})
	return err
}

type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func readGeneration(ctx context.Context, cmd getter, key string) (int64, error) {
	gen, err := cmd.Get(ctx, key).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func encodeStats(s entity.ScrapeStats) map[string]any {
	return map[string]any{
		"total":      s.Total,
		"successful": s.Successful,
		"failed":     s.Failed,
		"inProgress": s.InProgress,
	}
}

func decodeStats(fields map[string]string) (entity.ScrapeStats, error) {
	var s entity.ScrapeStats
	for name, dst := range map[string]*int64{
		"total":      &s.Total,
		"successful": &s.Successful,
		"failed":     &s.Failed,
		"inProgress": &s.InProgress,
	} {
		raw, ok := fields[name]
		if !ok {
			return entity.ScrapeStats{}, fmt.Errorf("stats cache: missing field %q", name)
		}
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return entity.ScrapeStats{}, fmt.Errorf("stats cache: field %q: %w", name, err)
		}
		*dst = n
	}
	return s, nil
}
