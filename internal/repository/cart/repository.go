package cart

import (
	"context"
	"time"

	"cartsync/internal/domain"
)

// Filter narrows GetAll results. All set fields combine with AND.
// StartDate and EndDate are calendar dates; the repository widens them to
// cover the full day in UTC before comparing against the stored timestamp.
type Filter struct {
	UserID    *int64
	StartDate *time.Time
	EndDate   *time.Time
}

type Repository interface {
	GetAll(ctx context.Context, f Filter) ([]domain.Cart, error)
	GetByID(ctx context.Context, id int64) (*domain.Cart, error)
	UpsertMany(ctx context.Context, carts []domain.Cart) error
}
