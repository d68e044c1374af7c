// api/handlers/auth_handler.go
package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/modesq/dynamic-form-fullstack-app/api/models"
	"github.com/modesq/dynamic-form-fullstack-app/config"
	"github.com/modesq/dynamic-form-fullstack-app/internal/auth"
	"github.com/modesq/dynamic-form-fullstack-app/internal/logger"
)

var (
	customLog = logger.NewLogger()
)

// AuthHandler issues admin tokens.
type AuthHandler struct {
	Admin *auth.Admin
	Cfg   *config.Config
}

// NewAuthHandler creates a new AuthHandler with dependencies.
func NewAuthHandler(admin *auth.Admin, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		Admin: admin,
		Cfg:   cfg,
	}
}

// Login checks the admin credentials and issues a JWT on success.
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		customLog.Warnf("Login binding error: %v", err)
		_ = c.Error(err)
		return
	}

	if err := h.Admin.Authenticate(req.Email, req.Password); err != nil {
		customLog.Warnf("Login attempt failed for email %s", req.Email)
		_ = c.Error(err)
		return
	}

	tokenString, err := auth.GenerateJWT(h.Admin.Email, h.Cfg.JWTSecret, h.Cfg.JWTExpiration)
	if err != nil {
		customLog.Warnf("Failed to generate JWT for %s: %v", h.Admin.Email, err)
		_ = c.Error(err)
		return
	}

	customLog.Printf("Admin %s logged in", h.Admin.Email)
	c.JSON(http.StatusOK, models.LoginResponse{Message: "Login successful", Token: tokenString})
}

// parseID reads a positive integer path parameter.
func parseID(c *gin.Context, param string) (int64, bool) {
	raw := c.Param(param)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		_ = c.Error(&models.RequestError{Message: fmt.Sprintf("Invalid ID format: '%s'", raw)})
		return 0, false
	}
	return id, true
}
