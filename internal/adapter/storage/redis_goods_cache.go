package storage

import (
	"context"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// All cached goods summaries live as fields of one hash, keyed by the
// decimal goods id.
const goodsDictKey = "ecommerce:goods:dict"

type RedisGoodsCache struct {
	client *redis.Client
}

func NewRedisGoodsCache(client *redis.Client) *RedisGoodsCache {
	return &RedisGoodsCache{client: client}
}

func (c *RedisGoodsCache) MultiGet(ctx context.Context, ids []int64) (map[int64]string, error) {
	if len(ids) == 0 {
		return map[int64]string{}, nil
	}

	fields := make([]string, len(ids))
	for i, id := range ids {
		fields[i] = strconv.FormatInt(id, 10)
	}

	values, err := c.client.HMGet(ctx, goodsDictKey, fields...).Result()
	if err != nil {
		return nil, err
	}

	// HMGET aligns results with the requested fields; nil marks a miss.
	result := make(map[int64]string, len(ids))
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue
		}
		result[ids[i]] = raw
	}
	return result, nil
}

func (c *RedisGoodsCache) MultiSet(ctx context.Context, entries map[int64]string) error {
	if len(entries) == 0 {
		return nil
	}

	fields := make(map[string]string, len(entries))
	for id, raw := range entries {
		fields[strconv.FormatInt(id, 10)] = raw
	}
	return c.client.HSet(ctx, goodsDictKey, fields).Err()
}
