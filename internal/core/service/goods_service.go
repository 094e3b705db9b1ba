package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rl1809/order-fulfillment/internal/core/domain"
	"github.com/rl1809/order-fulfillment/internal/port"
)

// GoodsService owns goods lookups and the inventory ledger. Display reads go
// through the cache; anything feeding a balance deduction reads storage
// directly.
type GoodsService struct {
	repo   port.GoodsRepository
	cache  port.GoodsCache
	logger *slog.Logger
}

var _ port.GoodsResolver = (*GoodsService)(nil)

func NewGoodsService(repo port.GoodsRepository, cache port.GoodsCache, logger *slog.Logger) *GoodsService {
	return &GoodsService{repo: repo, cache: cache, logger: logger}
}

// Summaries resolves the given ids preferring the cache. Misses are fetched
// from storage in one call and written back before merging. An id present in
// neither cache nor storage is dropped from the result.
func (s *GoodsService) Summaries(ctx context.Context, ids []int64) (map[int64]domain.GoodsSummary, error) {
	ids = distinct(ids)
	if len(ids) == 0 {
		return map[int64]domain.GoodsSummary{}, nil
	}

	cached, err := s.cache.MultiGet(ctx, ids)
	if err != nil {
		// A cache read failure degrades to a full storage fetch.
		s.logger.Warn("goods cache read failed", "err", err)
		cached = nil
	}

	result := make(map[int64]domain.GoodsSummary, len(ids))
	var misses []int64
	for _, id := range ids {
		raw, ok := cached[id]
		if !ok {
			misses = append(misses, id)
			continue
		}
		summary, err := domain.DecodeSummary(raw)
		if err != nil {
			s.logger.Warn("dropping undecodable cache entry", "goodsId", id, "err", err)
			misses = append(misses, id)
			continue
		}
		result[id] = summary
	}

	if len(misses) == 0 {
		return result, nil
	}

	fetched, err := s.fetchAndCache(ctx, misses)
	if err != nil {
		return nil, err
	}
	for id, summary := range fetched {
		result[id] = summary
	}
	return result, nil
}

// fetchAndCache reads summaries from authoritative storage and backfills the
// cache. Cache writes are best-effort: the next reader repeats the fetch.
func (s *GoodsService) fetchAndCache(ctx context.Context, ids []int64) (map[int64]domain.GoodsSummary, error) {
	goods, err := s.repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("fetch goods %v: %w", ids, err)
	}

	result := make(map[int64]domain.GoodsSummary, len(goods))
	entries := make(map[int64]string, len(goods))
	for _, g := range goods {
		summary := g.ToSummary()
		result[g.ID] = summary
		raw, err := domain.EncodeSummary(summary)
		if err != nil {
			s.logger.Warn("skip caching goods summary", "goodsId", g.ID, "err", err)
			continue
		}
		entries[g.ID] = raw
	}

	if len(entries) > 0 {
		if err := s.cache.MultiSet(ctx, entries); err != nil {
			s.logger.Warn("goods cache write failed", "err", err)
		}
	}
	return result, nil
}

// AuthoritativeSummaries reads storage only and does not touch the cache.
func (s *GoodsService) AuthoritativeSummaries(ctx context.Context, ids []int64) (map[int64]domain.GoodsSummary, error) {
	goods, err := s.repo.FindByIDs(ctx, distinct(ids))
	if err != nil {
		return nil, fmt.Errorf("fetch goods %v: %w", ids, err)
	}
	result := make(map[int64]domain.GoodsSummary, len(goods))
	for _, g := range goods {
		result[g.ID] = g.ToSummary()
	}
	return result, nil
}

// GoodsByIDs returns full goods records, always from authoritative storage.
func (s *GoodsService) GoodsByIDs(ctx context.Context, ids []int64) ([]domain.Goods, error) {
	return s.repo.FindByIDs(ctx, distinct(ids))
}

// PageSimpleGoods lists goods summaries one page at a time, id descending.
func (s *GoodsService) PageSimpleGoods(ctx context.Context, page int) (domain.GoodsPage, error) {
	if page < 1 {
		page = 1
	}
	goods, total, err := s.repo.FindPage(ctx, page, pageSize)
	if err != nil {
		return domain.GoodsPage{}, fmt.Errorf("page goods: %w", err)
	}
	summaries := make([]domain.GoodsSummary, 0, len(goods))
	for _, g := range goods {
		summaries = append(summaries, g.ToSummary())
	}
	return domain.GoodsPage{Goods: summaries, HasMore: totalPages(total) > page}, nil
}

// DeductInventory validates the whole request before any stock moves:
// positive counts, no duplicate ids, every id resolvable, and every record
// able to cover its requested count. Only then are the deductions applied,
// together, in one storage transaction.
func (s *GoodsService) DeductInventory(ctx context.Context, items []domain.OrderItem) error {
	if len(items) == 0 {
		return domain.ErrInvalidRequest
	}

	seen := make(map[int64]struct{}, len(items))
	ids := make([]int64, 0, len(items))
	for _, item := range items {
		if item.Count <= 0 {
			return domain.ErrInvalidGoodsCount
		}
		if _, dup := seen[item.GoodsID]; dup {
			return domain.ErrDuplicateGoods
		}
		seen[item.GoodsID] = struct{}{}
		ids = append(ids, item.GoodsID)
	}

	goods, err := s.repo.FindByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("fetch goods for deduction: %w", err)
	}
	if len(goods) == 0 {
		return domain.ErrGoodsNotFound
	}
	if len(goods) != len(ids) {
		return domain.ErrGoodsCountMismatch
	}

	byID := make(map[int64]domain.Goods, len(goods))
	for _, g := range goods {
		byID[g.ID] = g
	}
	for _, item := range items {
		g := byID[item.GoodsID]
		if g.Inventory < int64(item.Count) {
			s.logger.Warn("goods inventory not enough",
				"goodsId", g.ID, "inventory", g.Inventory, "requested", item.Count)
			return domain.ErrInventoryNotEnough
		}
	}

	if err := s.repo.DeductInventory(ctx, items); err != nil {
		return fmt.Errorf("deduct inventory: %w", err)
	}
	s.logger.Info("deduct goods inventory done", "goodsIds", ids)
	return nil
}

func distinct(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
