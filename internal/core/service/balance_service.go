package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rl1809/order-fulfillment/internal/core/domain"
	"github.com/rl1809/order-fulfillment/internal/port"
)

// BalanceService owns the account balance ledger.
type BalanceService struct {
	repo   port.BalanceRepository
	logger *slog.Logger
}

var _ port.BalanceLedger = (*BalanceService)(nil)

func NewBalanceService(repo port.BalanceRepository, logger *slog.Logger) *BalanceService {
	return &BalanceService{repo: repo, logger: logger}
}

// GetOrInit returns the user's balance record, lazily creating one with
// balance zero on first use.
func (s *BalanceService) GetOrInit(ctx context.Context, userID int64) (domain.Balance, error) {
	record, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return domain.Balance{}, fmt.Errorf("find balance for user %d: %w", userID, err)
	}
	if record != nil {
		return *record, nil
	}

	created, err := s.repo.Create(ctx, domain.Balance{UserID: userID, Balance: 0})
	if err != nil {
		return domain.Balance{}, fmt.Errorf("init balance for user %d: %w", userID, err)
	}
	s.logger.Info("init user balance record", "userId", userID, "id", created.ID)
	return created, nil
}

// Deduct subtracts amount from the user's balance. The deduction must not
// drive the balance negative; an exact-balance deduction leaves zero.
func (s *BalanceService) Deduct(ctx context.Context, userID, amount int64) (domain.Balance, error) {
	if amount <= 0 {
		return domain.Balance{}, domain.ErrInvalidRequest
	}

	record, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return domain.Balance{}, fmt.Errorf("find balance for user %d: %w", userID, err)
	}
	if record == nil || record.Balance-amount < 0 {
		return domain.Balance{}, domain.ErrBalanceNotEnough
	}

	updated, err := s.repo.DeductBalance(ctx, userID, amount)
	if err != nil {
		return domain.Balance{}, fmt.Errorf("deduct balance for user %d: %w", userID, err)
	}
	if updated == nil {
		// Lost a race with a concurrent deduction.
		return domain.Balance{}, domain.ErrBalanceNotEnough
	}
	s.logger.Info("deduct balance", "userId", userID, "amount", amount, "balance", updated.Balance)
	return *updated, nil
}
