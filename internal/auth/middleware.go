package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const ctxKey = "principal"

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return "", false
	}
	return strings.TrimPrefix(header, "Bearer "), true
}

// RequireUser validates the Bearer session token and sets the principal in
// context. Requests without a valid token are rejected with 401.
func (s *Service) RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing session token"})
			return
		}
		p, err := s.Authenticate(c.Request.Context(), raw)
		if err != nil {
			if errors.Is(err, ErrInvalidToken) || errors.Is(err, ErrRevoked) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
				return
			}
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "authentication unavailable"})
			return
		}
		c.Set(ctxKey, p)
		c.Next()
	}
}

// OptionalUser sets the principal when a valid token is present and lets
// anonymous requests through.
func (s *Service) OptionalUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw, ok := bearerToken(c); ok {
			if p, err := s.Authenticate(c.Request.Context(), raw); err == nil {
				c.Set(ctxKey, p)
			}
		}
		c.Next()
	}
}

// FromContext retrieves the authenticated principal from the Gin context.
func FromContext(c *gin.Context) *Principal {
	v, _ := c.Get(ctxKey)
	p, _ := v.(*Principal)
	return p
}

// WithPrincipal stores p in c. Handlers behind RequireUser can rely on it.
func WithPrincipal(c *gin.Context, p *Principal) {
	c.Set(ctxKey, p)
}
