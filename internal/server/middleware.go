package server

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/DjangoClawd/superbowl-boxes/internal/auth"
)

// walletKey is the gin context key the authenticated wallet address is stored
// under.
const walletKey = "wallet"

// requestLogger logs every request with its latency, replacing gin's default
// logger with slog.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		slog.Info("Request completed",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"remote_addr", c.ClientIP(),
		)
	}
}

// requireWallet validates the bearer session token and stores the wallet
// address in the request context.
func requireWallet(jwtManager *auth.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": auth.ErrMissingToken.Error()})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header must be a Bearer token"})
			return
		}

		claims, err := jwtManager.Validate(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": auth.ErrInvalidToken.Error()})
			return
		}

		c.Set(walletKey, claims.Wallet)
		c.Next()
	}
}

// callerWallet returns the authenticated wallet for the request, set by
// requireWallet.
func callerWallet(c *gin.Context) string {
	wallet, _ := c.Get(walletKey)
	s, _ := wallet.(string)
	return s
}
