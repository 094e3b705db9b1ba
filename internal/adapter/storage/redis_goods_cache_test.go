package storage

import (
	"context"
	"os"
	"testing"

	"github.com/redis/go-redis/v9"

	"github.com/rl1809/order-fulfillment/internal/core/domain"
)

func getRedisClient(t *testing.T) *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}
	return client
}

func TestGoodsCache_MultiSetMultiGet(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	cache := NewRedisGoodsCache(client)

	client.Del(ctx, goodsDictKey)

	raw1, _ := domain.EncodeSummary(domain.GoodsSummary{ID: 1, Name: "a", Price: 100})
	raw2, _ := domain.EncodeSummary(domain.GoodsSummary{ID: 2, Name: "b", Price: 200})
	if err := cache.MultiSet(ctx, map[int64]string{1: raw1, 2: raw2}); err != nil {
		t.Fatalf("MultiSet failed: %v", err)
	}

	got, err := cache.MultiGet(ctx, []int64{1, 2, 3})
	if err != nil {
		t.Fatalf("MultiGet failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	if got[1] != raw1 || got[2] != raw2 {
		t.Error("cached values do not round-trip")
	}
	if _, ok := got[3]; ok {
		t.Error("missing id must be absent, not empty")
	}

	client.Del(ctx, goodsDictKey)
}

func TestGoodsCache_EmptyRequest(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	cache := NewRedisGoodsCache(client)
	got, err := cache.MultiGet(context.Background(), nil)
	if err != nil {
		t.Fatalf("MultiGet failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty map, got %v", got)
	}
}
