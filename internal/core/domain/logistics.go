package domain

// LogisticsMessage is the event published to the logistics topic after an
// order has been fully paid for.
type LogisticsMessage struct {
	UserID    int64   `json:"userId"`
	OrderID   int64   `json:"orderId"`
	AddressID int64   `json:"addressId"`
	ExtraInfo *string `json:"extraInfo"`
}
