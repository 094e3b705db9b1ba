package domain

import "time"

// Balance is the account balance record, in the smallest currency unit.
// The stored balance is never negative.
type Balance struct {
	ID      int64 `json:"id"`
	UserID  int64 `json:"userId"`
	Balance int64 `json:"balance"`
}

// Address is a shipping address owned by one user. Addresses are immutable
// once created.
type Address struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Username  string    `json:"username"`
	Phone     string    `json:"phone"`
	Province  string    `json:"province"`
	City      string    `json:"city"`
	Detail    string    `json:"addressDetail"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// AddressItem carries the user-provided fields of a new address.
type AddressItem struct {
	Username string `json:"username"`
	Phone    string `json:"phone"`
	Province string `json:"province"`
	City     string `json:"city"`
	Detail   string `json:"addressDetail"`
}
