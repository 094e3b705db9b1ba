package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rl1809/order-fulfillment/internal/core/domain"
)

type MySQLAddressRepository struct {
	db *sql.DB
}

func NewMySQLAddressRepository(db *sql.DB) *MySQLAddressRepository {
	return &MySQLAddressRepository{db: db}
}

func (r *MySQLAddressRepository) FindByIDs(ctx context.Context, ids []int64) ([]domain.Address, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := fmt.Sprintf(`
		SELECT id, user_id, username, phone, province, city, address_detail, created_at, updated_at
		FROM addresses WHERE id IN (%s)`, placeholders(len(ids)))
	rows, err := r.db.QueryContext(ctx, query, int64Args(ids)...)
	if err != nil {
		return nil, fmt.Errorf("query addresses: %w", err)
	}
	defer rows.Close()
	return collectAddresses(rows)
}

func (r *MySQLAddressRepository) FindByUser(ctx context.Context, userID int64) ([]domain.Address, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, username, phone, province, city, address_detail, created_at, updated_at
		FROM addresses WHERE user_id = ? ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("query addresses by user: %w", err)
	}
	defer rows.Close()
	return collectAddresses(rows)
}

func (r *MySQLAddressRepository) SaveAll(ctx context.Context, addresses []domain.Address) ([]int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	ids := make([]int64, 0, len(addresses))
	for _, a := range addresses {
		result, err := tx.ExecContext(ctx, `
			INSERT INTO addresses (user_id, username, phone, province, city, address_detail, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			a.UserID, a.Username, a.Phone, a.Province, a.City, a.Detail,
			a.CreatedAt, a.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("insert address: %w", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("address insert id: %w", err)
		}
		ids = append(ids, id)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit addresses: %w", err)
	}
	return ids, nil
}

func collectAddresses(rows *sql.Rows) ([]domain.Address, error) {
	var addresses []domain.Address
	for rows.Next() {
		var a domain.Address
		err := rows.Scan(&a.ID, &a.UserID, &a.Username, &a.Phone,
			&a.Province, &a.City, &a.Detail, &a.CreatedAt, &a.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan address: %w", err)
		}
		addresses = append(addresses, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate addresses: %w", err)
	}
	return addresses, nil
}
