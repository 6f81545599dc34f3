package handlers

import (
	"net/http"

	"study_webapp/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type FavoriteRequest struct {
	ContentID  string `json:"contentId"`
	IsFavorite bool   `json:"isFavorite"`
}

// Favorites returns the user's favorited content, optionally filtered by
// ?type=.
func (h *Handler) Favorites(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var filter *domain.ContentType
	if v := c.Query("type"); v != "" {
		t := domain.ContentType(v)
		if !t.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown content type"})
			return
		}
		filter = &t
	}

	favorites, err := h.ContentRepo.GetFavorites(c.Request.Context(), userID, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load favorites"})
		return
	}
	if favorites == nil {
		favorites = []domain.StudyContent{}
	}
	c.JSON(http.StatusOK, favorites)
}

// SetFavorite marks or unmarks one of the user's content rows as favorite.
func (h *Handler) SetFavorite(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req FavoriteRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "contentId is required"})
		return
	}
	contentID, err := uuid.Parse(req.ContentID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid contentId"})
		return
	}

	updated, err := h.ContentRepo.SetFavorite(c.Request.Context(), contentID, userID, req.IsFavorite)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "internal server error"})
		return
	}
	if !updated {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "content not found"})
		return
	}

	action := "unmarked"
	if req.IsFavorite {
		action = "marked"
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Content " + action + " as favorite."})
}
