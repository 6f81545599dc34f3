package handlers

import (
	"errors"
	"net/http"

	"study_webapp/internal/domain"
	"study_webapp/internal/http/middleware"
	"study_webapp/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type GenerateRequest struct {
	Options  []string `json:"options"`
	DataType string   `json:"dataType"`
	Text     string   `json:"text"`
}

// optionToType maps frontend option names to stored content types.
var optionToType = map[string]domain.ContentType{
	"flashcards": domain.ContentFlashcard,
	"esquemas":   domain.ContentDiagram,
	"resumenes":  domain.ContentSummary,
	"quizzes":    domain.ContentQuiz,
}

func optionName(t domain.ContentType) string {
	for opt, ct := range optionToType {
		if ct == t {
			return opt
		}
	}
	return string(t)
}

// Generate runs AI generation for each selected content type over the
// submitted text and returns the stored results grouped by session.
func (h *Handler) Generate(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req GenerateRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "bad request"})
		return
	}
	if req.DataType != "" && req.DataType != "text" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "only text input is supported"})
		return
	}

	var types []domain.ContentType
	for _, opt := range req.Options {
		if t, ok := optionToType[opt]; ok {
			types = append(types, t)
			middleware.StudyGenerations.WithLabelValues(string(t)).Inc()
		}
	}

	result, err := h.StudyService.Generate(c.Request.Context(), userID, types, req.Text)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoText):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "no text to process"})
		case errors.Is(err, service.ErrNoOptions):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "select at least one content type"})
		case errors.Is(err, service.ErrGenerationEmpty):
			c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": "generation failed, try again later"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "internal server error"})
		}
		return
	}

	results := make(map[string]*domain.StudyContent, len(result.Results))
	for t, content := range result.Results {
		results[optionName(t)] = content
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"sessionId": result.SessionID,
		"results":   results,
	})
}

// ListContent returns the user's stored study content, optionally filtered
// by ?type=flashcard|schema|summary|quiz.
func (h *Handler) ListContent(c *gin.Context) {
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

	contents, err := h.ContentRepo.GetByUser(c.Request.Context(), userID, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load content"})
		return
	}
	if contents == nil {
		contents = []domain.StudyContent{}
	}
	c.JSON(http.StatusOK, contents)
}

// DeleteContent removes one of the user's own content rows.
func (h *Handler) DeleteContent(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	contentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid content id"})
		return
	}

	deleted, err := h.ContentRepo.Delete(c.Request.Context(), contentID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete content"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "content not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
