package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DjangoClawd/superbowl-boxes/internal/auth"
)

// AuthHandler issues wallet session tokens.
type AuthHandler struct {
	jwtManager *auth.JWTManager
}

// NewAuthHandler creates an AuthHandler over the given token manager.
func NewAuthHandler(jwtManager *auth.JWTManager) *AuthHandler {
	return &AuthHandler{jwtManager: jwtManager}
}

type sessionRequest struct {
	Wallet      string `json:"wallet" binding:"required"`
	DisplayName string `json:"displayName"`
}

// CreateSession handles POST /auth/session. The wallet address is taken at
// face value; ownership verification is the wallet-connect layer's problem.
func (h *AuthHandler) CreateSession(c *gin.Context) {
	var req sessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "wallet required"})
		return
	}

	token, err := h.jwtManager.Generate(req.Wallet, req.DisplayName)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}
