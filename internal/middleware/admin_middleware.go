package middleware

import (
	"net/http"

	"github.com/cyglobaltech/storefront-golang/internal/store"
	"github.com/gin-gonic/gin"
)

// AdminMiddleware must run after AuthMiddleware. It reads the userID from
// the context, looks up the user's role, and only lets administrators
// through.
func AdminMiddleware(users store.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDRaw, exists := c.Get("userID")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in context (AuthMiddleware must run first)"})
			c.Abort()
			return
		}
		userID := userIDRaw.(int64)

		role, err := users.GetUserRole(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check user role"})
			c.Abort()
			return
		}

		if role != "administrator" {
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied: Administrator role required"})
			c.Abort()
			return
		}

		c.Set("userRole", role)
		c.Next()
	}
}
