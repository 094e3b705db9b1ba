package port

import (
	"context"

	"github.com/rl1809/order-fulfillment/internal/core/domain"
)

type OrderRepository interface {
	// Create persists a new order and returns its generated id.
	Create(ctx context.Context, order domain.Order) (int64, error)

	// PageByUser returns one page of the user's orders sorted by id
	// descending, plus the total number of orders for that user.
	PageByUser(ctx context.Context, userID int64, page, size int) ([]domain.Order, int64, error)
}

type GoodsRepository interface {
	// FindByIDs returns the goods records for the given ids; unknown ids are
	// simply absent from the result.
	FindByIDs(ctx context.Context, ids []int64) ([]domain.Goods, error)

	// FindPage returns one page of goods sorted by id descending, plus the
	// total record count.
	FindPage(ctx context.Context, page, size int) ([]domain.Goods, int64, error)

	// DeductInventory applies every deduction in one transaction. If any row
	// cannot cover its requested count the whole call fails with
	// domain.ErrInventoryNotEnough and no stock changes.
	DeductInventory(ctx context.Context, items []domain.OrderItem) error
}

type BalanceRepository interface {
	// FindByUser returns nil without error when the user has no record yet.
	FindByUser(ctx context.Context, userID int64) (*domain.Balance, error)

	Create(ctx context.Context, balance domain.Balance) (domain.Balance, error)

	// DeductBalance atomically subtracts amount if the stored balance covers
	// it, returning the updated record, or nil when it does not.
	DeductBalance(ctx context.Context, userID, amount int64) (*domain.Balance, error)
}

type AddressRepository interface {
	FindByIDs(ctx context.Context, ids []int64) ([]domain.Address, error)
	FindByUser(ctx context.Context, userID int64) ([]domain.Address, error)

	// SaveAll inserts the given addresses and returns their generated ids in
	// input order.
	SaveAll(ctx context.Context, addresses []domain.Address) ([]int64, error)
}
