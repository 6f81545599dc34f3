package repository

import (
	"context"
	"errors"

	"study_webapp/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// InventoryRepository stores (user, item) ownership rows with the equipped
// flag. PRIMARY KEY (user_id, item_id) makes duplicate ownership impossible
// at the store level, so the idempotent insert is safe under races.
type InventoryRepository struct {
	db *pgxpool.Pool
}

func NewInventoryRepository(db *pgxpool.Pool) *InventoryRepository {
	return &InventoryRepository{db: db}
}

func (r *InventoryRepository) Owns(ctx context.Context, userID uuid.UUID, itemID int) (bool, error) {
	var owns bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM user_inventory WHERE user_id = $1 AND item_id = $2)`,
		userID, itemID,
	).Scan(&owns)
	return owns, err
}

func (r *InventoryRepository) ListOwnedItemIDs(ctx context.Context, userID uuid.UUID) ([]int, error) {
	rows, err := r.db.Query(ctx,
		`SELECT item_id FROM user_inventory WHERE user_id = $1 ORDER BY item_id`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// GetEquipped returns the equipped item id for a category, or nil.
func (r *InventoryRepository) GetEquipped(ctx context.Context, userID uuid.UUID, category domain.ItemCategory) (*int, error) {
	var id int
	err := r.db.QueryRow(ctx,
		`SELECT ui.item_id
		 FROM user_inventory ui
		 JOIN store_items si ON si.id = ui.item_id
		 WHERE ui.user_id = $1 AND si.category = $2 AND ui.is_equipped
		 LIMIT 1`,
		userID, category,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &id, nil
}

// InsertOwnershipTx records the purchase idempotently: a duplicate insert
// for the same (user, item) is a no-op, which is what the streak-shield
// renewal path and purchase retries rely on.
func (r *InventoryRepository) InsertOwnershipTx(ctx context.Context, tx pgx.Tx, userID uuid.UUID, itemID int) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO user_inventory (user_id, item_id, purchased_at, is_equipped)
		 VALUES ($1, $2, NOW(), false)
		 ON CONFLICT (user_id, item_id) DO NOTHING`,
		userID, itemID,
	)
	return err
}

// UnequipAllTx clears the equipped flag for every owned item of a category.
func (r *InventoryRepository) UnequipAllTx(ctx context.Context, tx pgx.Tx, userID uuid.UUID, category domain.ItemCategory) error {
	_, err := tx.Exec(ctx,
		`UPDATE user_inventory SET is_equipped = false
		 WHERE user_id = $1
		   AND item_id IN (SELECT id FROM store_items WHERE category = $2)`,
		userID, category,
	)
	return err
}

// SetEquippedTx marks one owned item as equipped. Returns false when no
// ownership row matched, so the caller can abort the transaction instead
// of committing a category with nothing equipped.
func (r *InventoryRepository) SetEquippedTx(ctx context.Context, tx pgx.Tx, userID uuid.UUID, itemID int, equipped bool) (bool, error) {
	res, err := tx.Exec(ctx,
		`UPDATE user_inventory SET is_equipped = $3
		 WHERE user_id = $1 AND item_id = $2`,
		userID, itemID, equipped,
	)
	if err != nil {
		return false, err
	}
	return res.RowsAffected() > 0, nil
}
