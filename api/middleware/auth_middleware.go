// api/middleware/auth_middleware.go
package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/modesq/dynamic-form-fullstack-app/config"
	"github.com/modesq/dynamic-form-fullstack-app/internal/auth"
	"github.com/modesq/dynamic-form-fullstack-app/internal/logger"
)

var (
	customLog = logger.NewLogger()

	ErrAuthHeaderMissing = errors.New("authorization header required")
	ErrAuthHeaderFormat  = errors.New("authorization header format must be Bearer {token}")
)

// ContextAdminKey holds the authenticated admin email on the gin context.
const ContextAdminKey = "adminEmail"

// AuthMiddleware guards administrative routes with a Bearer JWT issued by
// POST /auth/login. Failures are attached to the context and rendered by
// ErrorHandler.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			_ = c.Error(ErrAuthHeaderMissing)
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
			_ = c.Error(ErrAuthHeaderFormat)
			c.Abort()
			return
		}

		email, err := auth.ValidateJWT(strings.TrimSpace(parts[1]), cfg.JWTSecret)
		if err != nil {
			customLog.Printf("AuthMiddleware: Token validation failed: %v", err)
			_ = c.Error(err)
			c.Abort()
			return
		}

		if !strings.EqualFold(email, cfg.AdminEmail) {
			customLog.Warnf("AuthMiddleware: Token subject %s is not the configured admin", email)
			_ = c.Error(auth.ErrTokenClaimsInvalid)
			c.Abort()
			return
		}

		c.Set(ContextAdminKey, email)
		c.Next()
	}
}
