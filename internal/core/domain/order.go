package domain

import (
	"encoding/json"
	"time"
)

// Order is a record of a placed order. The line items are kept as a
// JSON-serialized list in OrderDetail; once persisted they are never mutated.
type Order struct {
	ID          int64
	UserID      int64
	AddressID   int64
	OrderDetail string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// OrderItem is a single (goods, count) line item.
type OrderItem struct {
	GoodsID int64 `json:"goodsId"`
	Count   int   `json:"count"`
}

// OrderInfo is the inbound create-order request.
type OrderInfo struct {
	AddressID int64       `json:"userAddress"`
	Items     []OrderItem `json:"orderItems"`
}

func NewOrder(userID, addressID int64, items []OrderItem) (Order, error) {
	detail, err := json.Marshal(items)
	if err != nil {
		return Order{}, err
	}
	now := time.Now()
	return Order{
		UserID:      userID,
		AddressID:   addressID,
		OrderDetail: string(detail),
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Items deserializes the persisted line-item list.
func (o Order) Items() ([]OrderItem, error) {
	var items []OrderItem
	if err := json.Unmarshal([]byte(o.OrderDetail), &items); err != nil {
		return nil, err
	}
	return items, nil
}

// TableID is the generic multi-id container used across the API.
type TableID struct {
	IDs []int64 `json:"ids"`
}
