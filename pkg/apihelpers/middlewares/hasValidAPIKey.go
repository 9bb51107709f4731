package middlewares

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// HasValidAPIKey guards the builder/management endpoints. The key is
// expected in the Api-Key header.
func HasValidAPIKey(validKeys []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		receivedKey := c.GetHeader("Api-Key")
		if receivedKey == "" {
			slog.Warn("API key missing")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "valid API key required"})
			c.Abort()
			return
		}

		for _, validKey := range validKeys {
			if receivedKey == validKey {
				c.Next()
				return
			}
		}

		slog.Warn("invalid API key received")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "valid API key required"})
		c.Abort()
	}
}
