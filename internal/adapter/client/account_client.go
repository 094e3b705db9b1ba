package client

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"

	"github.com/rl1809/order-fulfillment/internal/core/domain"
	"github.com/rl1809/order-fulfillment/internal/port"
)

// BalanceClient is the remote variant of port.BalanceLedger.
type BalanceClient struct {
	http *resty.Client
}

var _ port.BalanceLedger = (*BalanceClient)(nil)

func NewBalanceClient(baseURL string) *BalanceClient {
	return &BalanceClient{http: newRestyClient(baseURL)}
}

func (c *BalanceClient) GetOrInit(ctx context.Context, userID int64) (domain.Balance, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader(userIDHeader, formatUserID(userID)).
		Get("/api/balance")
	if err != nil {
		return domain.Balance{}, fmt.Errorf("call account service: %w", err)
	}

	var balance domain.Balance
	if err := decode(resp, &balance); err != nil {
		return domain.Balance{}, err
	}
	return balance, nil
}

func (c *BalanceClient) Deduct(ctx context.Context, userID, amount int64) (domain.Balance, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader(userIDHeader, formatUserID(userID)).
		SetBody(map[string]int64{"balance": amount}).
		Put("/api/balance/deduct")
	if err != nil {
		return domain.Balance{}, fmt.Errorf("call account service: %w", err)
	}

	var balance domain.Balance
	if err := decode(resp, &balance); err != nil {
		return domain.Balance{}, err
	}
	return balance, nil
}

// AddressClient is the remote variant of port.AddressDirectory.
type AddressClient struct {
	http *resty.Client
}

var _ port.AddressDirectory = (*AddressClient)(nil)

func NewAddressClient(baseURL string) *AddressClient {
	return &AddressClient{http: newRestyClient(baseURL)}
}

func (c *AddressClient) AddressesByIDs(ctx context.Context, ids []int64) ([]domain.Address, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(domain.TableID{IDs: ids}).
		Post("/api/address/ids")
	if err != nil {
		return nil, fmt.Errorf("call account service: %w", err)
	}

	var addresses []domain.Address
	if err := decode(resp, &addresses); err != nil {
		return nil, err
	}
	return addresses, nil
}

func (c *AddressClient) AddressesByUser(ctx context.Context, userID int64) ([]domain.Address, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader(userIDHeader, formatUserID(userID)).
		Get("/api/address")
	if err != nil {
		return nil, fmt.Errorf("call account service: %w", err)
	}

	var addresses []domain.Address
	if err := decode(resp, &addresses); err != nil {
		return nil, err
	}
	return addresses, nil
}
