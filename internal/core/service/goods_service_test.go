package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rl1809/order-fulfillment/internal/core/domain"
)

func testGoods(id int64, price, inventory int64) domain.Goods {
	return domain.Goods{
		ID:        id,
		Name:      "goods",
		Status:    domain.GoodsStatusOnline,
		Price:     price,
		Inventory: inventory,
	}
}

func TestSummaries_AllFromCache(t *testing.T) {
	repo := newFakeGoodsRepo(testGoods(1, 100, 5), testGoods(2, 200, 5))
	cache := newFakeGoodsCache()
	cache.warm(repo.goods[1].ToSummary(), repo.goods[2].ToSummary())
	svc := NewGoodsService(repo, cache, testLogger())

	result, err := svc.Summaries(context.Background(), []int64{1, 2})
	require.NoError(t, err)

	assert.Len(t, result, 2)
	assert.Equal(t, int64(100), result[1].Price)
	assert.Equal(t, int64(200), result[2].Price)
	assert.Zero(t, repo.findCalls, "full cache hit must not touch storage")
}

func TestSummaries_PartialHitReconciliation(t *testing.T) {
	repo := newFakeGoodsRepo(testGoods(1, 100, 5), testGoods(2, 200, 5), testGoods(3, 300, 5))
	cache := newFakeGoodsCache()
	cache.warm(repo.goods[1].ToSummary(), repo.goods[2].ToSummary())
	svc := NewGoodsService(repo, cache, testLogger())

	result, err := svc.Summaries(context.Background(), []int64{1, 2, 3})
	require.NoError(t, err)

	require.Len(t, result, 3)
	assert.Equal(t, int64(300), result[3].Price)
	assert.Equal(t, 1, repo.findCalls, "one storage fetch for the miss set")
	assert.Contains(t, cache.entries, int64(3), "miss must be written back")

	// The cache is now warm: a second call resolves without storage.
	again, err := svc.Summaries(context.Background(), []int64{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, result, again)
	assert.Equal(t, 1, repo.findCalls)
}

func TestSummaries_EmptyCacheFetchesEverything(t *testing.T) {
	repo := newFakeGoodsRepo(testGoods(1, 100, 5), testGoods(2, 200, 5))
	cache := newFakeGoodsCache()
	svc := NewGoodsService(repo, cache, testLogger())

	result, err := svc.Summaries(context.Background(), []int64{1, 2})
	require.NoError(t, err)

	assert.Len(t, result, 2)
	assert.Equal(t, 1, repo.findCalls)
	assert.Len(t, cache.entries, 2)
}

func TestSummaries_UnresolvableIDDropped(t *testing.T) {
	repo := newFakeGoodsRepo(testGoods(1, 100, 5))
	cache := newFakeGoodsCache()
	svc := NewGoodsService(repo, cache, testLogger())

	result, err := svc.Summaries(context.Background(), []int64{1, 99})
	require.NoError(t, err)

	assert.Len(t, result, 1)
	assert.NotContains(t, result, int64(99))
}

func TestSummaries_CacheWriteFailureDoesNotFailRead(t *testing.T) {
	repo := newFakeGoodsRepo(testGoods(1, 100, 5))
	cache := newFakeGoodsCache()
	cache.setErr = errors.New("redis down")
	svc := NewGoodsService(repo, cache, testLogger())

	result, err := svc.Summaries(context.Background(), []int64{1})
	require.NoError(t, err)
	assert.Len(t, result, 1)
}

func TestSummaries_CacheReadFailureFallsBackToStorage(t *testing.T) {
	repo := newFakeGoodsRepo(testGoods(1, 100, 5))
	cache := newFakeGoodsCache()
	cache.getErr = errors.New("redis down")
	svc := NewGoodsService(repo, cache, testLogger())

	result, err := svc.Summaries(context.Background(), []int64{1})
	require.NoError(t, err)
	assert.Equal(t, int64(100), result[1].Price)
}

func TestAuthoritativeSummaries_BypassesCache(t *testing.T) {
	repo := newFakeGoodsRepo(testGoods(1, 150, 5))
	cache := newFakeGoodsCache()
	// Cache holds a stale price; the authoritative path must ignore it.
	cache.warm(domain.GoodsSummary{ID: 1, Price: 100})
	svc := NewGoodsService(repo, cache, testLogger())

	result, err := svc.AuthoritativeSummaries(context.Background(), []int64{1})
	require.NoError(t, err)

	assert.Equal(t, int64(150), result[1].Price)
	assert.Zero(t, cache.gets)
	assert.Zero(t, cache.sets, "authoritative read must not backfill the cache")
}

func TestDeductInventory_Success(t *testing.T) {
	repo := newFakeGoodsRepo(testGoods(10, 100, 5), testGoods(11, 100, 2))
	svc := NewGoodsService(repo, newFakeGoodsCache(), testLogger())

	err := svc.DeductInventory(context.Background(), []domain.OrderItem{
		{GoodsID: 10, Count: 2},
		{GoodsID: 11, Count: 2},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(3), repo.goods[10].Inventory)
	assert.Equal(t, int64(0), repo.goods[11].Inventory)
}

func TestDeductInventory_NonPositiveCount(t *testing.T) {
	repo := newFakeGoodsRepo(testGoods(10, 100, 5))
	svc := NewGoodsService(repo, newFakeGoodsCache(), testLogger())

	err := svc.DeductInventory(context.Background(), []domain.OrderItem{{GoodsID: 10, Count: 0}})
	assert.ErrorIs(t, err, domain.ErrInvalidGoodsCount)
	assert.Zero(t, repo.findCalls, "validation happens before any fetch")
}

func TestDeductInventory_DuplicateGoodsRejected(t *testing.T) {
	repo := newFakeGoodsRepo(testGoods(10, 100, 5))
	svc := NewGoodsService(repo, newFakeGoodsCache(), testLogger())

	err := svc.DeductInventory(context.Background(), []domain.OrderItem{
		{GoodsID: 10, Count: 1},
		{GoodsID: 10, Count: 1},
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateGoods)
	assert.Equal(t, int64(5), repo.goods[10].Inventory)
}

func TestDeductInventory_NoGoodsFound(t *testing.T) {
	repo := newFakeGoodsRepo()
	svc := NewGoodsService(repo, newFakeGoodsCache(), testLogger())

	err := svc.DeductInventory(context.Background(), []domain.OrderItem{{GoodsID: 99, Count: 1}})
	assert.ErrorIs(t, err, domain.ErrGoodsNotFound)
}

func TestDeductInventory_CountMismatch(t *testing.T) {
	repo := newFakeGoodsRepo(testGoods(10, 100, 5))
	svc := NewGoodsService(repo, newFakeGoodsCache(), testLogger())

	err := svc.DeductInventory(context.Background(), []domain.OrderItem{
		{GoodsID: 10, Count: 1},
		{GoodsID: 99, Count: 1},
	})
	assert.ErrorIs(t, err, domain.ErrGoodsCountMismatch)
	assert.Equal(t, int64(5), repo.goods[10].Inventory)
}

func TestDeductInventory_Atomicity(t *testing.T) {
	// One short item fails the whole request; no record changes.
	repo := newFakeGoodsRepo(testGoods(10, 100, 5), testGoods(11, 100, 1))
	svc := NewGoodsService(repo, newFakeGoodsCache(), testLogger())

	err := svc.DeductInventory(context.Background(), []domain.OrderItem{
		{GoodsID: 10, Count: 2},
		{GoodsID: 11, Count: 3},
	})
	assert.ErrorIs(t, err, domain.ErrInventoryNotEnough)

	assert.Equal(t, int64(5), repo.goods[10].Inventory)
	assert.Equal(t, int64(1), repo.goods[11].Inventory)
	assert.Zero(t, repo.deductions)
}

func TestPageSimpleGoods(t *testing.T) {
	repo := newFakeGoodsRepo()
	for i := int64(1); i <= 15; i++ {
		repo.goods[i] = testGoods(i, i*10, 1)
	}
	svc := NewGoodsService(repo, newFakeGoodsCache(), testLogger())

	page1, err := svc.PageSimpleGoods(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, page1.Goods, 10)
	assert.Equal(t, int64(15), page1.Goods[0].ID, "sorted id descending")
	assert.True(t, page1.HasMore)

	page2, err := svc.PageSimpleGoods(context.Background(), 2)
	require.NoError(t, err)
	assert.Len(t, page2.Goods, 5)
	assert.False(t, page2.HasMore)
}
