package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gsarma/algodojo/internal/auth"
)

// Login starts the OAuth flow by redirecting to the provider.
func (h *Handler) Login(c *gin.Context) {
	redirectURI := c.Query("redirect_uri")
	if redirectURI == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "redirect_uri is required"})
		return
	}
	url, err := h.auth.LoginURL(c.Param("provider"), redirectURI)
	if err != nil {
		if errors.Is(err, auth.ErrUnknownProvider) || errors.Is(err, auth.ErrRedirectNotAllowed) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.log(c).Error("login", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to start sign-in"})
		return
	}
	c.Redirect(http.StatusFound, url)
}

// Callback handles the provider redirect after user authorization and sends
// the browser back to the app with the session token in the URL fragment.
func (h *Handler) Callback(c *gin.Context) {
	code := c.Query("code")
	state := c.Query("state")
	if code == "" || state == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing code or state"})
		return
	}

	redirect, err := h.auth.Complete(c.Request.Context(), c.Param("provider"), code, state)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidState), errors.Is(err, auth.ErrUnknownProvider):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, auth.ErrProviderFailure):
			h.log(c).Warn("oauth provider failure", zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "sign-in with provider failed"})
		default:
			h.log(c).Error("oauth callback", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to complete sign-in"})
		}
		return
	}
	c.Redirect(http.StatusFound, redirect)
}

// Logout revokes the caller's session token.
func (h *Handler) Logout(c *gin.Context) {
	if err := h.auth.Logout(c.Request.Context(), principal(c)); err != nil {
		h.log(c).Error("logout", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to sign out"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "signed_out"})
}
