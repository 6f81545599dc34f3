package handlers

import (
	"errors"
	"net/http"

	"study_webapp/internal/domain"
	"study_webapp/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

type shopActionRequest struct {
	ItemID int `json:"itemId"`
}

// Shop returns the catalog together with the user's ownership and equip
// state. Items come back ordered by category then cost.
func (h *Handler) Shop(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	state, err := h.ShopService.GetShopState(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load shop"})
		return
	}
	c.JSON(http.StatusOK, state)
}

// Buy purchases a catalog item for the authenticated user.
func (h *Handler) Buy(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req shopActionRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "itemId is required"})
		return
	}

	result, err := h.ShopService.Purchase(c.Request.Context(), userID, req.ItemID)
	if err != nil {
		middleware.ShopPurchases.WithLabelValues(shopOutcome(err)).Inc()
		h.shopError(c, err)
		return
	}

	middleware.ShopPurchases.WithLabelValues("success").Inc()
	c.JSON(http.StatusOK, result)
}

// EquipItem equips an owned avatar or background.
func (h *Handler) EquipItem(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req shopActionRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "itemId is required"})
		return
	}

	if err := h.ShopService.Equip(c.Request.Context(), userID, req.ItemID); err != nil {
		middleware.ShopEquips.WithLabelValues(shopOutcome(err)).Inc()
		h.shopError(c, err)
		return
	}

	middleware.ShopEquips.WithLabelValues("success").Inc()
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Item equipped."})
}

// shopError translates the shop failure taxonomy into HTTP responses.
// Business failures carry their message; infrastructure failures stay
// generic so storage details never reach the client.
func (h *Handler) shopError(c *gin.Context, err error) {
	var ife *domain.InsufficientFundsError
	switch {
	case errors.As(err, &ife):
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   ife.Error(),
			"balance": ife.Balance,
			"cost":    ife.Cost,
		})
	case errors.Is(err, domain.ErrItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": err.Error()})
	case errors.Is(err, domain.ErrAlreadyOwned),
		errors.Is(err, domain.ErrInsufficientFunds),
		errors.Is(err, domain.ErrNotOwned),
		errors.Is(err, domain.ErrNotEquippable):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
	case errors.Is(err, domain.ErrPaymentRace):
		c.JSON(http.StatusConflict, gin.H{"success": false, "error": "balance changed, please retry"})
	case errors.Is(err, domain.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "internal server error"})
	}
}

func shopOutcome(err error) string {
	switch {
	case errors.Is(err, domain.ErrItemNotFound):
		return "item_not_found"
	case errors.Is(err, domain.ErrAlreadyOwned):
		return "already_owned"
	case errors.Is(err, domain.ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, domain.ErrPaymentRace):
		return "payment_race"
	case errors.Is(err, domain.ErrNotOwned):
		return "not_owned"
	case errors.Is(err, domain.ErrNotEquippable):
		return "not_equippable"
	case errors.Is(err, domain.ErrUserNotFound):
		return "user_not_found"
	default:
		return "error"
	}
}
