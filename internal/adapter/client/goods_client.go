package client

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"

	"github.com/rl1809/order-fulfillment/internal/core/domain"
	"github.com/rl1809/order-fulfillment/internal/port"
)

// GoodsClient is the remote variant of port.GoodsResolver, backed by a
// standalone goods service.
type GoodsClient struct {
	http *resty.Client
}

var _ port.GoodsResolver = (*GoodsClient)(nil)

func NewGoodsClient(baseURL string) *GoodsClient {
	return &GoodsClient{http: newRestyClient(baseURL)}
}

func (c *GoodsClient) Summaries(ctx context.Context, ids []int64) (map[int64]domain.GoodsSummary, error) {
	return c.summaries(ctx, "/api/goods/simple", ids)
}

func (c *GoodsClient) AuthoritativeSummaries(ctx context.Context, ids []int64) (map[int64]domain.GoodsSummary, error) {
	return c.summaries(ctx, "/api/goods/authoritative", ids)
}

func (c *GoodsClient) summaries(ctx context.Context, path string, ids []int64) (map[int64]domain.GoodsSummary, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(domain.TableID{IDs: ids}).
		Post(path)
	if err != nil {
		return nil, fmt.Errorf("call goods service: %w", err)
	}

	var summaries []domain.GoodsSummary
	if err := decode(resp, &summaries); err != nil {
		return nil, err
	}
	result := make(map[int64]domain.GoodsSummary, len(summaries))
	for _, s := range summaries {
		result[s.ID] = s
	}
	return result, nil
}

func (c *GoodsClient) DeductInventory(ctx context.Context, items []domain.OrderItem) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(items).
		Put("/api/goods/deduct")
	if err != nil {
		return fmt.Errorf("call goods service: %w", err)
	}
	return decode(resp, nil)
}
