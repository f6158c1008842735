package domain

import "time"

// Cart mirrors a cart record from the remote store API. ID is the remote
// system's identifier, reused verbatim as the local primary key.
type Cart struct {
	ID     int64      `json:"id"`
	UserID int64      `json:"userId"`
	Date   time.Time  `json:"date"`
	Items  []CartItem `json:"items"`
}

type CartItem struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}
