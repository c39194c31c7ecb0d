package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DjangoClawd/superbowl-boxes/internal/scores"
)

// ScoreHandler serves the latest polled game score.
type ScoreHandler struct {
	poller *scores.Poller
}

// NewScoreHandler creates a ScoreHandler over the given poller.
func NewScoreHandler(poller *scores.Poller) *ScoreHandler {
	return &ScoreHandler{poller: poller}
}

// Latest handles GET /scores.
func (h *ScoreHandler) Latest(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"score": h.poller.Latest()})
}
