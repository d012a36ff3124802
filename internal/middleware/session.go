package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"smartclaim/internal/domain"
	"smartclaim/internal/service"
)

const ContextKeyUserID = "user_id"

// TokenValidator validates session tokens. service.AuthService satisfies it.
type TokenValidator interface {
	ValidateToken(tokenString string) (*service.Claims, error)
}

// Session guards /:userId routes. A Bearer token, when present, must be valid
// and issued to the user named in the path. With requireToken set, requests
// without a token are rejected.
func Session(validator TokenValidator, requireToken bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			if requireToken {
				abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing authorization header")
				return
			}
			c.Next()
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing or invalid authorization header")
			return
		}

		claims, err := validator.ValidateToken(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "invalid or expired token")
			return
		}

		if pathID, err := uuid.Parse(c.Param("userId")); err == nil && pathID != claims.UserID {
			abort(c, http.StatusForbidden, "FORBIDDEN", "token does not belong to this user")
			return
		}

		c.Set(ContextKeyUserID, claims.UserID)
		c.Next()
	}
}

func abort(c *gin.Context, status int, code, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": msg, "code": code, "retryable": false})
}

// GetUserID extracts the authenticated user ID from the Gin context.
func GetUserID(c *gin.Context) (uuid.UUID, error) {
	val, exists := c.Get(ContextKeyUserID)
	if !exists {
		return uuid.Nil, domain.ErrUnauthorized
	}
	return val.(uuid.UUID), nil
}
