package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/workhive/task-management-api/internal/apperrors"
	"github.com/workhive/task-management-api/internal/constants"
	"github.com/workhive/task-management-api/internal/token"
)

// RequireAuth validates the bearer token and stores the caller's identity in
// the request context. Any scheme prefix is ignored; "Bearer <token>",
// "token: <token>", and a bare token all verify. JWTs contain no spaces, so
// the token is whatever follows the first space.
func RequireAuth(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if header == "" {
			apperrors.Unauthorized(c, "Authorization token missing")
			c.Abort()
			return
		}

		raw := header
		if _, rest, ok := strings.Cut(header, " "); ok {
			raw = strings.TrimSpace(rest)
		}

		claims, err := token.Parse(jwtSecret, raw)
		if err != nil {
			apperrors.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, claims.UserID)
		c.Set(constants.ContextKeyDesignation, claims.Designation)
		c.Next()
	}
}

// GetUserID returns the authenticated user's id from the request context.
func GetUserID(c *gin.Context) (uint64, bool) {
	v, ok := c.Get(constants.ContextKeyUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint64)
	return id, ok
}

// GetDesignation returns the authenticated user's designation name.
func GetDesignation(c *gin.Context) (string, bool) {
	v, ok := c.Get(constants.ContextKeyDesignation)
	if !ok {
		return "", false
	}
	name, ok := v.(string)
	return name, ok
}
