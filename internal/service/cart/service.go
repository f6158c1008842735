package cart

import (
	"context"

	"cartsync/internal/domain"
	cartrepo "cartsync/internal/repository/cart"
)

// Service is a thin façade over the cart repository so the HTTP layer stays
// decoupled from the storage adapter.
type Service struct {
	repo cartrepo.Repository
}

func New(repo cartrepo.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetAll(ctx context.Context, f cartrepo.Filter) ([]domain.Cart, error) {
	return s.repo.GetAll(ctx, f)
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Cart, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) UpsertMany(ctx context.Context, carts []domain.Cart) error {
	return s.repo.UpsertMany(ctx, carts)
}
