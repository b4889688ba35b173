package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gsarma/algodojo/internal/editor"
	"github.com/gsarma/algodojo/internal/judge"
)

// GetDraft returns the caller's saved source for (slug, language), or the
// language template when nothing is saved.
func (h *Handler) GetDraft(c *gin.Context) {
	lang, err := judge.ParseLanguage(c.Param("language"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	key := editor.DraftKey(c.Param("slug"), lang)
	drafts := h.drafts.ForUser(principal(c).UserID.String())

	source, err := drafts.Load(c.Request.Context(), key)
	switch {
	case errors.Is(err, editor.ErrDraftNotFound):
		c.JSON(http.StatusOK, gin.H{"key": key, "source": editor.Template(lang), "saved": false})
	case err != nil:
		h.log(c).Error("load draft", zap.String("key", key), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load draft"})
	default:
		c.JSON(http.StatusOK, gin.H{"key": key, "source": source, "saved": true})
	}
}

// PutDraft saves the caller's source for (slug, language).
//
// Request body: {"source": "..."}
func (h *Handler) PutDraft(c *gin.Context) {
	lang, err := judge.ParseLanguage(c.Param("language"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var body struct {
		Source *string `json:"source" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	key := editor.DraftKey(c.Param("slug"), lang)
	drafts := h.drafts.ForUser(principal(c).UserID.String())
	if err := drafts.Save(c.Request.Context(), key, *body.Source); err != nil {
		h.log(c).Error("save draft", zap.String("key", key), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save draft"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "saved", "key": key})
}
