package service

import (
	"context"
	"errors"
	"fmt"

	"study_webapp/internal/domain"
	"study_webapp/internal/logger"

	"github.com/google/uuid"
)

// ShopStore is the storage contract consumed by the shop service.
// PurchaseTx and EquipTx are atomic: all writes commit or none do.
// Implemented by repository.ShopRepository.
type ShopStore interface {
	GetItem(ctx context.Context, itemID int) (*domain.Item, error)
	ListItems(ctx context.Context) ([]domain.Item, error)
	GetCoins(ctx context.Context, userID uuid.UUID) (coins int, found bool, err error)
	Owns(ctx context.Context, userID uuid.UUID, itemID int) (bool, error)
	ListOwnedItemIDs(ctx context.Context, userID uuid.UUID) ([]int, error)
	GetEquipped(ctx context.Context, userID uuid.UUID, category domain.ItemCategory) (*int, error)
	PurchaseTx(ctx context.Context, userID uuid.UUID, item *domain.Item) (remaining int, err error)
	EquipTx(ctx context.Context, userID uuid.UUID, item *domain.Item) error
}

// ShopService enforces the shop business rules on top of the store:
// purchase preconditions in order, the repurchase rule for streak shields,
// and the one-equipped-per-category invariant.
type ShopService struct {
	store ShopStore
}

func NewShopService(store ShopStore) *ShopService {
	return &ShopService{store: store}
}

// Purchase buys an item for a user. Checks run in a fixed order and the
// first failure wins: item exists, not already owned (non-shield), balance
// covers cost. The money movement itself is guarded again inside the store
// transaction, so a concurrent purchase can still lose with ErrPaymentRace.
func (s *ShopService) Purchase(ctx context.Context, userID uuid.UUID, itemID int) (*domain.PurchaseResult, error) {
	item, err := s.store.GetItem(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	if item == nil {
		return nil, domain.ErrItemNotFound
	}

	isShield := item.Category == domain.CategoryStreakShield
	if !isShield {
		owned, err := s.store.Owns(ctx, userID, itemID)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
		}
		if owned {
			return nil, domain.ErrAlreadyOwned
		}
	}

	coins, found, err := s.store.GetCoins(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	if !found {
		return nil, domain.ErrUserNotFound
	}
	if coins < item.Cost {
		return nil, &domain.InsufficientFundsError{Balance: coins, Cost: item.Cost}
	}

	remaining, err := s.store.PurchaseTx(ctx, userID, item)
	if err != nil {
		return nil, err
	}

	logger.Info("item purchased",
		"user_id", userID, "item_id", item.ID,
		"category", item.Category, "cost", item.Cost, "remaining", remaining)

	return &domain.PurchaseResult{
		Success:        true,
		RemainingCoins: remaining,
		ItemName:       item.Name,
		ItemType:       string(item.Category),
		CostPaid:       item.Cost,
		Message:        fmt.Sprintf("Purchase successful! You bought: %s", item.Name),
	}, nil
}

// Equip marks one owned avatar or background as the active one for its
// category. Streak shields activate automatically on purchase and are
// never equipped.
func (s *ShopService) Equip(ctx context.Context, userID uuid.UUID, itemID int) error {
	owned, err := s.store.Owns(ctx, userID, itemID)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	if !owned {
		return domain.ErrNotOwned
	}

	item, err := s.store.GetItem(ctx, itemID)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	if item == nil {
		return domain.ErrItemNotFound
	}
	if !item.Category.Equippable() {
		return domain.ErrNotEquippable
	}

	if err := s.store.EquipTx(ctx, userID, item); err != nil {
		return err
	}

	logger.Info("item equipped", "user_id", userID, "item_id", item.ID, "category", item.Category)
	return nil
}

// GetCatalog returns all purchasable items ordered by (category, cost asc).
func (s *ShopService) GetCatalog(ctx context.Context) ([]domain.Item, error) {
	items, err := s.store.ListItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return items, nil
}

// GetShopState returns the catalog plus the user's owned ids and equipped
// avatar/background for rendering the shop page in one request.
func (s *ShopService) GetShopState(ctx context.Context, userID uuid.UUID) (*domain.ShopState, error) {
	items, err := s.store.ListItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	owned, err := s.store.ListOwnedItemIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	avatar, err := s.store.GetEquipped(ctx, userID, domain.CategoryAvatar)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	background, err := s.store.GetEquipped(ctx, userID, domain.CategoryBackground)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	if owned == nil {
		owned = []int{}
	}
	return &domain.ShopState{
		Items:                items,
		OwnedItemIDs:         owned,
		EquippedAvatarID:     avatar,
		EquippedBackgroundID: background,
	}, nil
}

// GetEquipped returns the equipped item id for one category, or nil.
func (s *ShopService) GetEquipped(ctx context.Context, userID uuid.UUID, category domain.ItemCategory) (*int, error) {
	if !category.Equippable() {
		return nil, domain.ErrNotEquippable
	}
	id, err := s.store.GetEquipped(ctx, userID, category)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return id, nil
}

// IsRetryable reports whether a purchase failure is transient: the caller
// may resubmit after ErrPaymentRace or a store outage, but never after a
// business-rule rejection.
func IsRetryable(err error) bool {
	return errors.Is(err, domain.ErrPaymentRace) || errors.Is(err, domain.ErrStoreUnavailable)
}
