package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rl1809/order-fulfillment/internal/core/domain"
)

type MySQLBalanceRepository struct {
	db *sql.DB
}

func NewMySQLBalanceRepository(db *sql.DB) *MySQLBalanceRepository {
	return &MySQLBalanceRepository{db: db}
}

func (r *MySQLBalanceRepository) FindByUser(ctx context.Context, userID int64) (*domain.Balance, error) {
	var b domain.Balance
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, balance FROM balances WHERE user_id = ?`, userID,
	).Scan(&b.ID, &b.UserID, &b.Balance)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query balance: %w", err)
	}
	return &b, nil
}

func (r *MySQLBalanceRepository) Create(ctx context.Context, balance domain.Balance) (domain.Balance, error) {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO balances (user_id, balance) VALUES (?, ?)`,
		balance.UserID, balance.Balance,
	)
	if err != nil {
		return domain.Balance{}, fmt.Errorf("insert balance: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return domain.Balance{}, fmt.Errorf("balance insert id: %w", err)
	}
	balance.ID = id
	return balance, nil
}

// DeductBalance subtracts amount in a single conditional update; a nil
// result means the stored balance no longer covered the amount.
func (r *MySQLBalanceRepository) DeductBalance(ctx context.Context, userID, amount int64) (*domain.Balance, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE balances SET balance = balance - ?
		WHERE user_id = ? AND balance >= ?`,
		amount, userID, amount,
	)
	if err != nil {
		return nil, fmt.Errorf("deduct balance: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return nil, nil
	}
	return r.FindByUser(ctx, userID)
}
