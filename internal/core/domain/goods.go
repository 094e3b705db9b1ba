package domain

import (
	"encoding/json"
	"time"
)

type GoodsStatus int

const (
	GoodsStatusOnline  GoodsStatus = 101
	GoodsStatusOffline GoodsStatus = 102
	GoodsStatusStock   GoodsStatus = 103
)

// Goods is the authoritative goods record, including the current inventory.
type Goods struct {
	ID          int64       `json:"id"`
	Category    string      `json:"goodsCategory"`
	Name        string      `json:"goodsName"`
	Pic         string      `json:"goodsPic"`
	Description string      `json:"goodsDescription"`
	Status      GoodsStatus `json:"goodsStatus"`
	Price       int64       `json:"price"`
	Inventory   int64       `json:"inventory"`
	CreatedAt   time.Time   `json:"-"`
	UpdatedAt   time.Time   `json:"-"`
}

// GoodsSummary is the lightweight projection cached under the goods
// dictionary key. It is never authoritative for price or status.
type GoodsSummary struct {
	ID    int64  `json:"id"`
	Name  string `json:"goodsName"`
	Pic   string `json:"goodsPic"`
	Price int64  `json:"price"`
}

func (g Goods) ToSummary() GoodsSummary {
	return GoodsSummary{ID: g.ID, Name: g.Name, Pic: g.Pic, Price: g.Price}
}

// EncodeSummary serializes a summary for cache storage.
func EncodeSummary(s GoodsSummary) (string, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// DecodeSummary deserializes a cached summary.
func DecodeSummary(raw string) (GoodsSummary, error) {
	var s GoodsSummary
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return GoodsSummary{}, err
	}
	return s, nil
}
