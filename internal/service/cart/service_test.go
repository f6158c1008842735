package cart

import (
	"context"
	"errors"
	"testing"
	"time"

	"cartsync/internal/domain"
	cartrepo "cartsync/internal/repository/cart"
)

type stubRepo struct {
	carts      []domain.Cart
	cart       *domain.Cart
	err        error
	lastFilter cartrepo.Filter
	upserted   []domain.Cart
}

func (s *stubRepo) GetAll(_ context.Context, f cartrepo.Filter) ([]domain.Cart, error) {
	s.lastFilter = f
	return s.carts, s.err
}

func (s *stubRepo) GetByID(_ context.Context, _ int64) (*domain.Cart, error) {
	return s.cart, s.err
}

func (s *stubRepo) UpsertMany(_ context.Context, carts []domain.Cart) error {
	s.upserted = carts
	return s.err
}

func TestService_ForwardsToRepository(t *testing.T) {
	want := []domain.Cart{{ID: 1, UserID: 5, Date: time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC)}}
	repo := &stubRepo{carts: want, cart: &want[0]}
	svc := New(repo)

	userID := int64(5)
	got, err := svc.GetAll(context.Background(), cartrepo.Filter{UserID: &userID})
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("unexpected carts %+v", got)
	}
	if repo.lastFilter.UserID == nil || *repo.lastFilter.UserID != 5 {
		t.Fatalf("filter not forwarded: %+v", repo.lastFilter)
	}

	cart, err := svc.GetByID(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if cart.ID != 1 {
		t.Fatalf("unexpected cart %+v", cart)
	}

	if err := svc.UpsertMany(context.Background(), want); err != nil {
		t.Fatalf("UpsertMany: %v", err)
	}
	if len(repo.upserted) != 1 {
		t.Fatalf("upsert not forwarded")
	}
}

func TestService_PropagatesErrors(t *testing.T) {
	repo := &stubRepo{err: errors.New("boom")}
	svc := New(repo)

	if _, err := svc.GetAll(context.Background(), cartrepo.Filter{}); err == nil {
		t.Fatal("expected GetAll error")
	}
	if _, err := svc.GetByID(context.Background(), 1); err == nil {
		t.Fatal("expected GetByID error")
	}
	if err := svc.UpsertMany(context.Background(), nil); err == nil {
		t.Fatal("expected UpsertMany error")
	}
}
