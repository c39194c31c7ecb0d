// Package server wires the pool engine into an HTTP API with gin.
package server

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/DjangoClawd/superbowl-boxes/internal/auth"
	"github.com/DjangoClawd/superbowl-boxes/internal/scores"
	"github.com/DjangoClawd/superbowl-boxes/internal/service"
)

// NewRouter builds the full route table. The score poller is optional; when
// nil the scores endpoint is not registered.
func NewRouter(pools *service.PoolService, jwtManager *auth.JWTManager, poller *scores.Poller) *gin.Engine {
	engine := gin.New()
	engine.Use(requestLogger(), gin.Recovery(), metricsMiddleware())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	engine.Use(cors.New(corsConfig))

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	groups := NewGroupHandler(pools)
	sessions := NewAuthHandler(jwtManager)

	api := engine.Group("/api/v1")
	{
		api.POST("/auth/session", sessions.CreateSession)

		// Read-only endpoints are open; anyone with a group id or invite
		// code may view the grid.
		api.GET("/groups", groups.List)
		api.GET("/groups/:id", groups.Get)
		api.GET("/groups/:id/prizes", groups.GetPrizes)
		api.GET("/invites/:code", groups.GetByInviteCode)

		if poller != nil {
			api.GET("/scores", NewScoreHandler(poller).Latest)
		}

		authed := api.Group("", requireWallet(jwtManager))
		{
			authed.POST("/groups", groups.Create)
			authed.POST("/groups/:id/purchase", groups.Purchase)

			// Creator-gated lifecycle operations.
			authed.POST("/groups/:id/lock", groups.Lock)
			authed.POST("/groups/:id/relock", groups.Relock)
			authed.POST("/groups/:id/current-quarter", groups.SetCurrentQuarter)
			authed.POST("/groups/:id/results", groups.RecordResult)
			authed.POST("/groups/:id/results/:quarter/payout", groups.MarkPaidOut)
			authed.DELETE("/groups/:id", groups.Delete)
		}
	}

	return engine
}
