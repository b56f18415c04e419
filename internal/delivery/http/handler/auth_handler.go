package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"yard-monitor/internal/config"
	"yard-monitor/pkg/utils"
)

// AuthHandler authenticates the single dashboard operator against the
// bcrypt hash held in configuration and issues a bearer token for the
// command endpoints.
type AuthHandler struct {
	cfg *config.Config
}

func NewAuthHandler(cfg *config.Config) *AuthHandler {
	return &AuthHandler{cfg: cfg}
}

func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		auth.POST("/login", h.Login)
	}
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	authCfg := h.cfg.Auth
	if req.Username != authCfg.OperatorUsername ||
		!utils.CheckPassword(authCfg.OperatorPasswordHash, req.Password) {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	expiry := time.Duration(authCfg.ExpiryHours) * time.Hour
	token, err := utils.GenerateToken(req.Username, authCfg.JWTSecret, expiry)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to issue token")
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Login successful", loginResponse{
		Token:     token,
		ExpiresIn: int(expiry.Seconds()),
	})
}
