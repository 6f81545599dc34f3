package repository

import (
	"context"
	"errors"
	"fmt"

	"study_webapp/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ShopRepository composes the catalog, ledger, inventory and profile-config
// stores behind the interface the shop service consumes, and owns the
// transaction scope of the two multi-write operations (purchase, equip).
type ShopRepository struct {
	db        *pgxpool.Pool
	catalog   *CatalogRepository
	stats     *StatsRepository
	inventory *InventoryRepository
	profile   *ProfileConfigRepository
}

func NewShopRepository(db *pgxpool.Pool) *ShopRepository {
	return &ShopRepository{
		db:        db,
		catalog:   NewCatalogRepository(db),
		stats:     NewStatsRepository(db),
		inventory: NewInventoryRepository(db),
		profile:   NewProfileConfigRepository(db),
	}
}

func (r *ShopRepository) GetItem(ctx context.Context, itemID int) (*domain.Item, error) {
	return r.catalog.GetItem(ctx, itemID)
}

func (r *ShopRepository) ListItems(ctx context.Context) ([]domain.Item, error) {
	return r.catalog.ListItems(ctx)
}

func (r *ShopRepository) GetCoins(ctx context.Context, userID uuid.UUID) (int, bool, error) {
	coins, err := r.stats.GetCoins(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, err
	}
	return coins, true, nil
}

func (r *ShopRepository) Owns(ctx context.Context, userID uuid.UUID, itemID int) (bool, error) {
	return r.inventory.Owns(ctx, userID, itemID)
}

func (r *ShopRepository) ListOwnedItemIDs(ctx context.Context, userID uuid.UUID) ([]int, error) {
	return r.inventory.ListOwnedItemIDs(ctx, userID)
}

func (r *ShopRepository) GetEquipped(ctx context.Context, userID uuid.UUID, category domain.ItemCategory) (*int, error) {
	return r.inventory.GetEquipped(ctx, userID, category)
}

// PurchaseTx runs the atomic part of a purchase: conditional deduct,
// idempotent ownership insert and, for streak shields, the flag update.
// Everything commits or nothing does. Returns the remaining balance.
func (r *ShopRepository) PurchaseTx(ctx context.Context, userID uuid.UUID, item *domain.Item) (int, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	remaining, ok, err := r.stats.ConditionalDeductTx(ctx, tx, userID, item.Cost)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	if !ok {
		// The guarded update matched nothing: either the user's stats row
		// is gone or a concurrent purchase spent the balance between the
		// caller's check and this write.
		_, found, err := r.stats.GetCoinsTx(ctx, tx, userID)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
		}
		if !found {
			return 0, domain.ErrUserNotFound
		}
		return 0, domain.ErrPaymentRace
	}

	if err := r.inventory.InsertOwnershipTx(ctx, tx, userID, item.ID); err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	if item.Category == domain.CategoryStreakShield {
		if err := r.stats.SetShieldTx(ctx, tx, userID, true); err != nil {
			return 0, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return remaining, nil
}

// EquipTx atomically unequips every item of the category, equips the
// requested one and repoints professor_config. A reader never observes two
// equipped items, nor none where there was one.
func (r *ShopRepository) EquipTx(ctx context.Context, userID uuid.UUID, item *domain.Item) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := r.inventory.UnequipAllTx(ctx, tx, userID, item.Category); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	ok, err := r.inventory.SetEquippedTx(ctx, tx, userID, item.ID, true)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	if !ok {
		// The ownership row vanished between the caller's check and this
		// write; rolling back keeps the previous equip intact.
		return domain.ErrNotOwned
	}
	if err := r.profile.SetDisplayedTx(ctx, tx, userID, item.Category, item.ID); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}
