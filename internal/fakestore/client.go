package fakestore

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"cartsync/internal/domain"
)

// Client fetches cart records from the remote store API. The whole fetch
// either fully succeeds or fully fails; there is no retry and no caching.
type Client struct {
	url  string
	http *http.Client
}

func NewClient(url string) *Client {
	return &Client{
		url: url,
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Fields are pointers so that an absent member is distinguishable from a
// zero value; a record missing any of them fails the whole fetch.
type remoteCart struct {
	ID       *int64           `json:"id"`
	UserID   *int64           `json:"userId"`
	Date     *string          `json:"date"`
	Products *[]remoteProduct `json:"products"`
}

type remoteProduct struct {
	ProductID *int64 `json:"productId"`
	Quantity  *int   `json:"quantity"`
}

// FetchCarts issues one GET against the configured endpoint and maps the
// response into domain carts.
func (c *Client) FetchCarts(ctx context.Context) ([]domain.Cart, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("fakestore: new request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fakestore: fetch carts: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fakestore: fetch carts: status %d", resp.StatusCode)
	}

	var payload []remoteCart
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("fakestore: decode carts: %w", err)
	}

	carts := make([]domain.Cart, 0, len(payload))
	for i, rc := range payload {
		if rc.ID == nil || rc.UserID == nil || rc.Date == nil || rc.Products == nil {
			return nil, fmt.Errorf("fakestore: record %d: missing required field", i)
		}

		// RFC 3339 treats a trailing Z and an explicit +00:00 offset as the
		// same instant, which keeps the timestamp exact through the store.
		date, err := time.Parse(time.RFC3339, *rc.Date)
		if err != nil {
			return nil, fmt.Errorf("fakestore: cart %d: parse date %q: %w", *rc.ID, *rc.Date, err)
		}

		items := make([]domain.CartItem, 0, len(*rc.Products))
		for _, p := range *rc.Products {
			if p.ProductID == nil || p.Quantity == nil {
				return nil, fmt.Errorf("fakestore: cart %d: product entry missing required field", *rc.ID)
			}
			items = append(items, domain.CartItem{ProductID: *p.ProductID, Quantity: *p.Quantity})
		}
		carts = append(carts, domain.Cart{
			ID:     *rc.ID,
			UserID: *rc.UserID,
			Date:   date,
			Items:  items,
		})
	}
	return carts, nil
}
