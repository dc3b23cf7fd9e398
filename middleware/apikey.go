package middleware

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
)

func ValidateAPIKey(c *gin.Context) {
	if !HasAdminKey(c) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or missing API key"})
		c.Abort()
		return
	}
	c.Next()
}

// HasAdminKey reports whether the request carries the admin API key.
// Used directly by handlers that behave differently for admin callers.
func HasAdminKey(c *gin.Context) bool {
	key := os.Getenv("ADMIN_API_KEY")
	return key != "" && c.GetHeader("X-API-KEY") == key
}
