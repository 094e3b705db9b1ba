package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/rl1809/order-fulfillment/internal/core/domain"
)

type MySQLGoodsRepository struct {
	db *sql.DB
}

func NewMySQLGoodsRepository(db *sql.DB) *MySQLGoodsRepository {
	return &MySQLGoodsRepository{db: db}
}

func (r *MySQLGoodsRepository) FindByIDs(ctx context.Context, ids []int64) ([]domain.Goods, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := fmt.Sprintf(`
		SELECT id, goods_category, goods_name, goods_pic, goods_description,
		       goods_status, price, inventory, created_at, updated_at
		FROM goods WHERE id IN (%s)`, placeholders(len(ids)))
	rows, err := r.db.QueryContext(ctx, query, int64Args(ids)...)
	if err != nil {
		return nil, fmt.Errorf("query goods: %w", err)
	}
	defer rows.Close()

	var goods []domain.Goods
	for rows.Next() {
		g, err := scanGoods(rows)
		if err != nil {
			return nil, err
		}
		goods = append(goods, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate goods: %w", err)
	}
	return goods, nil
}

func (r *MySQLGoodsRepository) FindPage(ctx context.Context, page, size int) ([]domain.Goods, int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM goods`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count goods: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, goods_category, goods_name, goods_pic, goods_description,
		       goods_status, price, inventory, created_at, updated_at
		FROM goods ORDER BY id DESC LIMIT ? OFFSET ?`,
		size, (page-1)*size,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("query goods page: %w", err)
	}
	defer rows.Close()

	var goods []domain.Goods
	for rows.Next() {
		g, err := scanGoods(rows)
		if err != nil {
			return nil, 0, err
		}
		goods = append(goods, g)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate goods page: %w", err)
	}
	return goods, total, nil
}

// DeductInventory applies every deduction inside one transaction. Each row
// update is conditional on the stock still covering the requested count, so
// concurrent deductions serialize on the row without going negative.
func (r *MySQLGoodsRepository) DeductInventory(ctx context.Context, items []domain.OrderItem) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	for _, item := range items {
		result, err := tx.ExecContext(ctx, `
			UPDATE goods
			SET inventory = inventory - ?, updated_at = NOW()
			WHERE id = ? AND inventory >= ?`,
			item.Count, item.GoodsID, item.Count,
		)
		if err != nil {
			return fmt.Errorf("deduct goods %d: %w", item.GoodsID, err)
		}
		rows, _ := result.RowsAffected()
		if rows == 0 {
			return domain.ErrInventoryNotEnough
		}
	}

	return tx.Commit()
}

func scanGoods(rows *sql.Rows) (domain.Goods, error) {
	var g domain.Goods
	err := rows.Scan(&g.ID, &g.Category, &g.Name, &g.Pic, &g.Description,
		&g.Status, &g.Price, &g.Inventory, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return domain.Goods{}, fmt.Errorf("scan goods: %w", err)
	}
	return g, nil
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

func int64Args(ids []int64) []any {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}
