package repository

import (
	"context"
	"errors"

	"study_webapp/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CatalogRepository reads the store_items catalog. The catalog is seeded by
// migration and read-only at runtime.
type CatalogRepository struct {
	db *pgxpool.Pool
}

func NewCatalogRepository(db *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{db: db}
}

func (r *CatalogRepository) GetItem(ctx context.Context, itemID int) (*domain.Item, error) {
	var it domain.Item
	err := r.db.QueryRow(ctx,
		`SELECT id, name, category, cost, image_url FROM store_items WHERE id = $1`,
		itemID,
	).Scan(&it.ID, &it.Name, &it.Category, &it.Cost, &it.ImageURL)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &it, nil
}

// ListItems returns the whole catalog ordered by (category, cost asc).
// The ordering is part of the API contract: the frontend renders the shop
// grid in exactly this order.
func (r *CatalogRepository) ListItems(ctx context.Context) ([]domain.Item, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, category, cost, image_url
		 FROM store_items
		 ORDER BY category, cost, id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Item
	for rows.Next() {
		var it domain.Item
		if err := rows.Scan(&it.ID, &it.Name, &it.Category, &it.Cost, &it.ImageURL); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
