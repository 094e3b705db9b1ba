package port

import "context"

type GoodsCache interface {
	// MultiGet resolves the given goods ids against the cache. Ids without a
	// cached entry are absent from the result map.
	MultiGet(ctx context.Context, ids []int64) (map[int64]string, error)

	// MultiSet stores serialized summaries keyed by goods id.
	MultiSet(ctx context.Context, entries map[int64]string) error
}
