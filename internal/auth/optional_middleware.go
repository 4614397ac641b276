package auth

import (
	"github.com/gin-gonic/gin"

	"gamearena/backend/internal/config"
)

// OptionalMiddleware inspects for a token and sets the userID if present and
// valid, but does not fail if the token is missing or invalid. Used on
// browse endpoints that work for anonymous visitors too.
func OptionalMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID, ok := parseBearer(c, cfg.JWTSecret); ok {
			c.Set("userID", userID)
		}
		c.Next()
	}
}
