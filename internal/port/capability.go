package port

import (
	"context"

	"github.com/rl1809/order-fulfillment/internal/core/domain"
)

// The capability interfaces below are what the order orchestration code
// depends on. Each has a local in-process implementation (internal/core/
// service) and a remote HTTP implementation (internal/adapter/client), so
// the saga runs unchanged whether the collaborating services are deployed
// in-process or standalone.

type GoodsResolver interface {
	// Summaries resolves goods ids through the cache, falling back to
	// authoritative storage for misses. Suitable for display only: entries
	// may be stale.
	Summaries(ctx context.Context, ids []int64) (map[int64]domain.GoodsSummary, error)

	// AuthoritativeSummaries always reads from authoritative storage. Any
	// computation with financial effect must use this path.
	AuthoritativeSummaries(ctx context.Context, ids []int64) (map[int64]domain.GoodsSummary, error)

	// DeductInventory applies the requested deductions all-or-nothing.
	DeductInventory(ctx context.Context, items []domain.OrderItem) error
}

type BalanceLedger interface {
	// GetOrInit returns the user's balance record, creating a zero-balance
	// record on first use. Idempotent.
	GetOrInit(ctx context.Context, userID int64) (domain.Balance, error)

	// Deduct subtracts amount from the user's balance, failing with
	// domain.ErrBalanceNotEnough if the result would be negative.
	Deduct(ctx context.Context, userID, amount int64) (domain.Balance, error)
}

type AddressDirectory interface {
	// AddressesByIDs resolves address records; missing ids are simply absent
	// from the result.
	AddressesByIDs(ctx context.Context, ids []int64) ([]domain.Address, error)

	AddressesByUser(ctx context.Context, userID int64) ([]domain.Address, error)
}
