package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/riservarotundo/order-service/internal/order/domain"
)

type Repository struct {
	log  *slog.Logger
	pool *pgxpool.Pool
}

func NewRepository(log *slog.Logger, pool *pgxpool.Pool) *Repository {
	return &Repository{log: log, pool: pool}
}

// Save writes one row per order under the named collection and returns the
// identifier assigned to it. The identifier is generated before the insert so
// the contract does not depend on the store's sequence mechanics.
func (r *Repository) Save(ctx context.Context, collection string, o domain.Order) (string, error) {
	id := uuid.NewString()

	// collection is caller supplied; quote it so it can only ever name a table
	query := fmt.Sprintf(`INSERT INTO %s
		(id, product_name, quantity, total_price, full_name, email, phone,
		 address_line, city, province, postal_code, notes, newsletter_opt_in)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`, pgx.Identifier{collection}.Sanitize())

	_, err := r.pool.Exec(ctx, query,
		id, o.ProductName, o.Quantity, o.TotalPrice, o.FullName, o.Email, o.Phone,
		o.AddressLine, o.City, o.Province, o.PostalCode, o.Notes, o.NewsletterOptIn)
	if err != nil {
		return "", fmt.Errorf("insert order: %w", err)
	}

	r.log.Debug("order stored", "order_id", id, "collection", collection)
	return id, nil
}

// Get returns a stored order by identifier.
func (r *Repository) Get(ctx context.Context, collection, id string) (domain.Order, error) {
	var o domain.Order
	query := fmt.Sprintf(`SELECT product_name, quantity, total_price, full_name, email, phone,
		address_line, city, province, postal_code, notes, newsletter_opt_in
		FROM %s WHERE id=$1`, pgx.Identifier{collection}.Sanitize())

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&o.ProductName, &o.Quantity, &o.TotalPrice, &o.FullName, &o.Email, &o.Phone,
		&o.AddressLine, &o.City, &o.Province, &o.PostalCode, &o.Notes, &o.NewsletterOptIn)
	if err != nil {
		return domain.Order{}, fmt.Errorf("select order %s: %w", id, err)
	}
	return o, nil
}
