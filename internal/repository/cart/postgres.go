package cart

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cartsync/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

var readTxOptions = pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) GetAll(ctx context.Context, f Filter) ([]domain.Cart, error) {
	query := strings.Builder{}
	query.WriteString(`SELECT id, user_id, date FROM carts`)

	var (
		conds []string
		args  []interface{}
	)
	if f.UserID != nil {
		args = append(args, *f.UserID)
		conds = append(conds, fmt.Sprintf("user_id = $%d", len(args)))
	}
	if f.StartDate != nil {
		args = append(args, startOfDay(*f.StartDate))
		conds = append(conds, fmt.Sprintf("date >= $%d", len(args)))
	}
	if f.EndDate != nil {
		args = append(args, endOfDay(*f.EndDate))
		conds = append(conds, fmt.Sprintf("date <= $%d", len(args)))
	}
	if len(conds) > 0 {
		query.WriteString(" WHERE " + strings.Join(conds, " AND "))
	}
	query.WriteString(" ORDER BY id ASC")

	// Both statements run in one repeatable-read transaction so a sync
	// committing in between cannot pair old scalars with new items.
	tx, err := r.pool.BeginTx(ctx, readTxOptions)
	if err != nil {
		return nil, fmt.Errorf("begin read: %w", err)
	}
	defer tx.Rollback(ctx)

	rows, err := tx.Query(ctx, query.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("query carts: %w", err)
	}
	defer rows.Close()

	var carts []domain.Cart
	var ids []int64
	for rows.Next() {
		var c domain.Cart
		if err := rows.Scan(&c.ID, &c.UserID, &c.Date); err != nil {
			return nil, fmt.Errorf("scan cart: %w", err)
		}
		carts = append(carts, c)
		ids = append(ids, c.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate carts: %w", err)
	}
	rows.Close()
	if len(carts) == 0 {
		return nil, nil
	}

	itemsByCart, err := fetchItems(ctx, tx, ids)
	if err != nil {
		return nil, err
	}
	for i := range carts {
		carts[i].Items = itemsByCart[carts[i].ID]
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit read: %w", err)
	}
	return carts, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*domain.Cart, error) {
	const q = `SELECT id, user_id, date FROM carts WHERE id = $1`

	tx, err := r.pool.BeginTx(ctx, readTxOptions)
	if err != nil {
		return nil, fmt.Errorf("begin read: %w", err)
	}
	defer tx.Rollback(ctx)

	var c domain.Cart
	if err := tx.QueryRow(ctx, q, id).Scan(&c.ID, &c.UserID, &c.Date); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query cart %d: %w", id, err)
	}

	itemsByCart, err := fetchItems(ctx, tx, []int64{id})
	if err != nil {
		return nil, err
	}
	c.Items = itemsByCart[id]

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit read: %w", err)
	}
	return &c, nil
}

// UpsertMany applies the whole batch in a single transaction. Existing carts
// have their scalar fields overwritten and their item rows replaced; nothing
// is committed if any cart in the batch fails.
func (r *postgresRepo) UpsertMany(ctx context.Context, carts []domain.Cart) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin upsert: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, c := range carts {
		if _, err := tx.Exec(ctx, `
INSERT INTO carts (id, user_id, date)
VALUES ($1, $2, $3)
ON CONFLICT (id) DO UPDATE SET user_id = EXCLUDED.user_id, date = EXCLUDED.date
`, c.ID, c.UserID, c.Date); err != nil {
			return fmt.Errorf("upsert cart %d: %w", c.ID, err)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, c.ID); err != nil {
			return fmt.Errorf("clear items for cart %d: %w", c.ID, err)
		}

		for _, item := range c.Items {
			if _, err := tx.Exec(ctx, `
INSERT INTO cart_items (cart_id, product_id, quantity)
VALUES ($1, $2, $3)
`, c.ID, item.ProductID, item.Quantity); err != nil {
				return fmt.Errorf("insert item for cart %d: %w", c.ID, err)
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit upsert: %w", err)
	}
	return nil
}

func fetchItems(ctx context.Context, tx pgx.Tx, cartIDs []int64) (map[int64][]domain.CartItem, error) {
	const q = `
SELECT cart_id, product_id, quantity
FROM cart_items
WHERE cart_id = ANY($1)
ORDER BY id ASC
`
	rows, err := tx.Query(ctx, q, cartIDs)
	if err != nil {
		return nil, fmt.Errorf("query cart items: %w", err)
	}
	defer rows.Close()

	items := make(map[int64][]domain.CartItem)
	for rows.Next() {
		var cartID int64
		var item domain.CartItem
		if err := rows.Scan(&cartID, &item.ProductID, &item.Quantity); err != nil {
			return nil, fmt.Errorf("scan cart item: %w", err)
		}
		items[cartID] = append(items[cartID], item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cart items: %w", err)
	}
	return items, nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// endOfDay returns the last representable microsecond of t's day, so a
// date-only upper bound still matches records timestamped later that day.
func endOfDay(t time.Time) time.Time {
	return startOfDay(t).Add(24*time.Hour - time.Microsecond)
}
