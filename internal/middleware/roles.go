package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/workhive/task-management-api/internal/apperrors"
)

// RequireDesignation rejects callers whose designation is not in the allow
// list. Must run after RequireAuth.
func RequireDesignation(names ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		designation, ok := GetDesignation(c)
		if !ok {
			apperrors.Unauthorized(c, "Authorization token missing")
			c.Abort()
			return
		}
		for _, name := range names {
			if designation == name {
				c.Next()
				return
			}
		}
		apperrors.Forbidden(c, "You don't have permission to perform this action")
		c.Abort()
	}
}
