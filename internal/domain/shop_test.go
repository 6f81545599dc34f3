package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A purchase that drains the balance to zero, or a free starter item, must
// still report its numbers; zero is data here, not absence.
func TestPurchaseResultJSONKeepsZeroValues(t *testing.T) {
	b, err := json.Marshal(PurchaseResult{
		Success:        true,
		RemainingCoins: 0,
		ItemName:       "Chalkboard",
		ItemType:       "background",
		CostPaid:       0,
		Message:        "Purchase successful! You bought: Chalkboard",
	})
	require.NoError(t, err)

	s := string(b)
	assert.Contains(t, s, `"remainingCoins":0`)
	assert.Contains(t, s, `"costPaid":0`)
	assert.Contains(t, s, `"itemName":"Chalkboard"`)
	assert.Contains(t, s, `"itemType":"background"`)
}

func TestItemCategoryEquippable(t *testing.T) {
	assert.True(t, CategoryAvatar.Equippable())
	assert.True(t, CategoryBackground.Equippable())
	assert.False(t, CategoryStreakShield.Equippable())
	assert.False(t, ItemCategory("podcast").Equippable())
}
