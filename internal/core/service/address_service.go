package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rl1809/order-fulfillment/internal/core/domain"
	"github.com/rl1809/order-fulfillment/internal/port"
)

// AddressService owns address records.
type AddressService struct {
	repo   port.AddressRepository
	logger *slog.Logger
}

var _ port.AddressDirectory = (*AddressService)(nil)

func NewAddressService(repo port.AddressRepository, logger *slog.Logger) *AddressService {
	return &AddressService{repo: repo, logger: logger}
}

// AddressesByIDs resolves address records by id. Missing ids are absent from
// the result; callers that need all ids present check for themselves.
func (s *AddressService) AddressesByIDs(ctx context.Context, ids []int64) ([]domain.Address, error) {
	addresses, err := s.repo.FindByIDs(ctx, distinct(ids))
	if err != nil {
		return nil, fmt.Errorf("find addresses %v: %w", ids, err)
	}
	return addresses, nil
}

// AddressByID resolves a single address, failing when it does not exist.
func (s *AddressService) AddressByID(ctx context.Context, id int64) (domain.Address, error) {
	addresses, err := s.AddressesByIDs(ctx, []int64{id})
	if err != nil {
		return domain.Address{}, err
	}
	if len(addresses) == 0 {
		return domain.Address{}, domain.ErrAddressNotFound
	}
	return addresses[0], nil
}

func (s *AddressService) AddressesByUser(ctx context.Context, userID int64) ([]domain.Address, error) {
	addresses, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find addresses for user %d: %w", userID, err)
	}
	return addresses, nil
}

// CreateAddresses stores the given address items for the user and returns
// the generated ids.
func (s *AddressService) CreateAddresses(ctx context.Context, userID int64, items []domain.AddressItem) (domain.TableID, error) {
	if len(items) == 0 {
		return domain.TableID{}, domain.ErrInvalidRequest
	}

	now := time.Now()
	addresses := make([]domain.Address, 0, len(items))
	for _, item := range items {
		addresses = append(addresses, domain.Address{
			UserID:    userID,
			Username:  item.Username,
			Phone:     item.Phone,
			Province:  item.Province,
			City:      item.City,
			Detail:    item.Detail,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}

	ids, err := s.repo.SaveAll(ctx, addresses)
	if err != nil {
		return domain.TableID{}, fmt.Errorf("save addresses for user %d: %w", userID, err)
	}
	s.logger.Info("create address info", "userId", userID, "ids", ids)
	return domain.TableID{IDs: ids}, nil
}
