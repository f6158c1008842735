package syncjob

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"cartsync/internal/domain"
)

// ErrNoCarts reports that the remote source returned an empty list. The run
// is a no-op in that case, not a failure.
var ErrNoCarts = errors.New("no carts returned by remote source")

type CartSource interface {
	FetchCarts(ctx context.Context) ([]domain.Cart, error)
}

type CartWriter interface {
	UpsertMany(ctx context.Context, carts []domain.Cart) error
}

// Job synchronizes the local store with the remote cart source. Runs are
// serialized with a mutex: the timer, the startup run, and the manual HTTP
// trigger must never upsert concurrently.
type Job struct {
	source CartSource
	store  CartWriter

	mu sync.Mutex
}

func New(source CartSource, store CartWriter) *Job {
	return &Job{source: source, store: store}
}

// Run fetches all remote carts and upserts them as a single batch, returning
// the number of carts synchronized. A failed fetch or a failed upsert aborts
// the run; nothing is retried.
func (j *Job) Run(ctx context.Context) (int, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	carts, err := j.source.FetchCarts(ctx)
	if err != nil {
		return 0, fmt.Errorf("fetch carts: %w", err)
	}
	if len(carts) == 0 {
		return 0, ErrNoCarts
	}

	if err := j.store.UpsertMany(ctx, carts); err != nil {
		return 0, fmt.Errorf("persist carts: %w", err)
	}
	return len(carts), nil
}
