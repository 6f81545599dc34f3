package domain

import (
	"time"

	"github.com/google/uuid"
)

// ItemCategory is the catalog item type. Avatars and backgrounds occupy an
// equip slot; the streak shield only flips a flag on user_stats and may be
// repurchased to renew it.
type ItemCategory string

const (
	CategoryAvatar       ItemCategory = "avatar"
	CategoryBackground   ItemCategory = "background"
	CategoryStreakShield ItemCategory = "streak_shield"
)

// Equippable reports whether items of the category take an equip slot.
func (c ItemCategory) Equippable() bool {
	return c == CategoryAvatar || c == CategoryBackground
}

// Item is a row of the store_items catalog. Immutable after seeding.
type Item struct {
	ID       int          `db:"id" json:"id"`
	Name     string       `db:"name" json:"name"`
	Category ItemCategory `db:"category" json:"category"`
	Cost     int          `db:"cost" json:"cost"`
	ImageURL string       `db:"image_url" json:"image_url"`
}

// Ownership is a row of user_inventory: the durable record that a user has
// purchased an item. Rows are never deleted; is_equipped toggles via equip.
type Ownership struct {
	UserID      uuid.UUID `db:"user_id" json:"user_id"`
	ItemID      int       `db:"item_id" json:"item_id"`
	PurchasedAt time.Time `db:"purchased_at" json:"purchased_at"`
	IsEquipped  bool      `db:"is_equipped" json:"is_equipped"`
}

// PurchaseResult is the response payload of a successful buy. Zero is a
// legitimate value for both numeric fields (a purchase can drain the
// balance, starter items cost nothing), so nothing here is omitempty.
type PurchaseResult struct {
	Success        bool   `json:"success"`
	RemainingCoins int    `json:"remainingCoins"`
	ItemName       string `json:"itemName"`
	ItemType       string `json:"itemType"`
	CostPaid       int    `json:"costPaid"`
	Message        string `json:"message"`
}

// ShopState is the full shop view for one user: catalog plus what they own
// and currently have equipped.
type ShopState struct {
	Items                []Item `json:"items"`
	OwnedItemIDs         []int  `json:"ownedItemIds"`
	EquippedAvatarID     *int   `json:"equippedAvatarId"`
	EquippedBackgroundID *int   `json:"equippedBackgroundId"`
}
