package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/project-tracker-api/internal/constants"
	apierrors "github.com/yukikurage/project-tracker-api/internal/errors"
	"github.com/yukikurage/project-tracker-api/internal/utils"
)

// Identity is the authenticated caller, as asserted by its bearer token.
type Identity struct {
	UserID   uint64
	Username string
	Email    string
}

// RequireAuth rejects requests without a valid bearer token and stores the
// token's identity in the context.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			apierrors.Unauthenticated(c, "Token no proporcionado")
			c.Abort()
			return
		}

		scheme, token, found := strings.Cut(authHeader, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			apierrors.Unauthenticated(c, "Formato de token inválido")
			c.Abort()
			return
		}

		claims, err := utils.ParseToken(strings.TrimSpace(token))
		if err != nil {
			apierrors.Unauthenticated(c, "Token inválido o expirado")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, claims.UserID)
		c.Set(constants.ContextKeyUsername, claims.Username)
		c.Set(constants.ContextKeyEmail, claims.Email)
		c.Next()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}

	switch v := userID.(type) {
	case uint64:
		return v, v != 0
	case uint:
		return uint64(v), v != 0
	case int:
		if v <= 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}

// GetIdentity retrieves the full authenticated identity from context
func GetIdentity(c *gin.Context) (Identity, bool) {
	userID, ok := GetUserID(c)
	if !ok {
		return Identity{}, false
	}
	return Identity{
		UserID:   userID,
		Username: c.GetString(constants.ContextKeyUsername),
		Email:    c.GetString(constants.ContextKeyEmail),
	}, true
}
