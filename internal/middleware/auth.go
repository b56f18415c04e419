package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"yard-monitor/internal/config"
	"yard-monitor/pkg/utils"
)

const OperatorKey = "operator"

// AuthMiddleware requires a valid operator bearer token. Command dispatch
// is the only surface that mutates device state from the outside, so it is
// the only one behind this gate.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Authorization header required")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := utils.ValidateToken(parts[1], cfg.Auth.JWTSecret)
		if err != nil {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(OperatorKey, claims.Username)

		c.Next()
	}
}
