package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rl1809/order-fulfillment/internal/core/domain"
)

type MySQLOrderRepository struct {
	db *sql.DB
}

func NewMySQLOrderRepository(db *sql.DB) *MySQLOrderRepository {
	return &MySQLOrderRepository{db: db}
}

func (r *MySQLOrderRepository) Create(ctx context.Context, order domain.Order) (int64, error) {
	result, err := r.db.ExecContext(ctx, `
		INSERT INTO orders (user_id, address_id, order_detail, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		order.UserID, order.AddressID, order.OrderDetail,
		order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert order: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("order insert id: %w", err)
	}
	return id, nil
}

func (r *MySQLOrderRepository) PageByUser(ctx context.Context, userID int64, page, size int) ([]domain.Order, int64, error) {
	var total int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM orders WHERE user_id = ?`, userID,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, address_id, order_detail, created_at, updated_at
		FROM orders WHERE user_id = ?
		ORDER BY id DESC LIMIT ? OFFSET ?`,
		userID, size, (page-1)*size,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.AddressID, &o.OrderDetail, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate orders: %w", err)
	}
	return orders, total, nil
}
