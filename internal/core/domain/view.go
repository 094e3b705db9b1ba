package domain

// UnresolvedID marks an address or goods reference that no longer resolves.
// Display aggregation degrades to this sentinel instead of failing a page.
const UnresolvedID int64 = -1

type AddressView struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Phone    string `json:"phone"`
	Province string `json:"province"`
	City     string `json:"city"`
	Detail   string `json:"addressDetail"`
}

type OrderGoodsView struct {
	Goods GoodsSummary `json:"simpleGoodsInfo"`
	Count int          `json:"count"`
}

type OrderDetailView struct {
	ID      int64            `json:"id"`
	Address AddressView      `json:"userAddress"`
	Goods   []OrderGoodsView `json:"goodsItems"`
}

type OrderDetailPage struct {
	Orders  []OrderDetailView `json:"orderItems"`
	HasMore bool              `json:"hasMore"`
}

// GoodsPage is a paged listing of goods summaries.
type GoodsPage struct {
	Goods   []GoodsSummary `json:"goodsInfos"`
	HasMore bool           `json:"hasMore"`
}

func UnknownAddressView() AddressView {
	return AddressView{ID: UnresolvedID}
}

func UnknownGoodsSummary() GoodsSummary {
	return GoodsSummary{ID: UnresolvedID}
}

func (a Address) ToView() AddressView {
	return AddressView{
		ID:       a.ID,
		Username: a.Username,
		Phone:    a.Phone,
		Province: a.Province,
		City:     a.City,
		Detail:   a.Detail,
	}
}
