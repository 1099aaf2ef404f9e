package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/payram/igaming-events-api/internal/models"
	appErrors "github.com/payram/igaming-events-api/pkg/errors"
	"github.com/payram/igaming-events-api/pkg/response"
)

// ContextModeratorKey is the gin context key storing moderator claims.
const ContextModeratorKey = "currentModerator"

// TokenValidator validates bearer tokens.
type TokenValidator interface {
	ValidateToken(token string) (*models.ModeratorClaims, error)
}

// Moderator requires a valid moderator bearer token. Errors use the flat
// {error, details} body of the routes it guards.
func Moderator(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.FlatError(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.FlatError(c, appErrors.Clone(appErrors.ErrUnauthorized, "invalid authorization header"))
			c.Abort()
			return
		}

		claims, err := validator.ValidateToken(strings.TrimSpace(parts[1]))
		if err != nil {
			response.FlatError(c, err)
			c.Abort()
			return
		}

		c.Set(ContextModeratorKey, claims)
		c.Next()
	}
}

// ModeratorFrom returns the claims attached by Moderator, if any.
func ModeratorFrom(c *gin.Context) (*models.ModeratorClaims, bool) {
	v, ok := c.Get(ContextModeratorKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*models.ModeratorClaims)
	return claims, ok
}
