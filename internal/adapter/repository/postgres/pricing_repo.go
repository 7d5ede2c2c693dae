package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kaskita/kasledger/internal/domain"
)

// PricingRepository implements usecase.PricingCatalog against the
// pricing_catalog table. Rows are maintained by an external admin
// process; this side only reads.
type PricingRepository struct {
	pool *pgxpool.Pool
}

// NewPricingRepository creates a new PricingRepository.
func NewPricingRepository(pool *pgxpool.Pool) *PricingRepository {
	return &PricingRepository{pool: pool}
}

// Get fetches one catalog item by product code.
func (r *PricingRepository) Get(ctx context.Context, code string) (*domain.PricingItem, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT code, label, cost_price, selling_price, updated_at
		FROM pricing_catalog
		WHERE code = $1`, code)

	var item domain.PricingItem
	err := row.Scan(&item.Code, &item.Label, &item.CostPrice, &item.SellingPrice, &item.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		return nil, err
	}
	return &item, nil
}

// List lists the full catalog ordered by code.
func (r *PricingRepository) List(ctx context.Context) ([]*domain.PricingItem, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT code, label, cost_price, selling_price, updated_at
		FROM pricing_catalog
		ORDER BY code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*domain.PricingItem
	for rows.Next() {
		var item domain.PricingItem
		if err := rows.Scan(&item.Code, &item.Label, &item.CostPrice, &item.SellingPrice, &item.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, &item)
	}
	return items, rows.Err()
}
