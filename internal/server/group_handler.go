package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/DjangoClawd/superbowl-boxes/internal/service"
)

// GroupHandler exposes the pool lifecycle operations over HTTP.
type GroupHandler struct {
	pools *service.PoolService
}

// NewGroupHandler creates a GroupHandler backed by the given engine.
func NewGroupHandler(pools *service.PoolService) *GroupHandler {
	return &GroupHandler{pools: pools}
}

// Create handles POST /groups.
func (h *GroupHandler) Create(c *gin.Context) {
	var input service.CreateGroupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	group, err := h.pools.CreateGroup(c.Request.Context(), input, callerWallet(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"group": group})
}

// List handles GET /groups.
func (h *GroupHandler) List(c *gin.Context) {
	groups, err := h.pools.ListPublicGroups(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"groups": groups})
}

// Get handles GET /groups/:id.
func (h *GroupHandler) Get(c *gin.Context) {
	group, err := h.pools.GetGroup(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"group": group})
}

// GetByInviteCode handles GET /invites/:code.
func (h *GroupHandler) GetByInviteCode(c *gin.Context) {
	group, err := h.pools.GetGroupByInviteCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"group": group})
}

// GetPrizes handles GET /groups/:id/prizes.
func (h *GroupHandler) GetPrizes(c *gin.Context) {
	summary, err := h.pools.GetPrizeSummary(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"prizes": summary})
}

type purchaseRequest struct {
	Indices []int `json:"indices" binding:"required"`
}

// Purchase handles POST /groups/:id/purchase.
func (h *GroupHandler) Purchase(c *gin.Context) {
	var req purchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	group, err := h.pools.PurchaseSquares(c.Request.Context(), c.Param("id"), req.Indices, callerWallet(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"group": group})
}

// Lock handles POST /groups/:id/lock. Creator only.
func (h *GroupHandler) Lock(c *gin.Context) {
	if !h.requireCreator(c) {
		return
	}
	group, err := h.pools.LockGroup(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"group": group})
}

// Relock handles POST /groups/:id/relock. Creator only.
func (h *GroupHandler) Relock(c *gin.Context) {
	if !h.requireCreator(c) {
		return
	}
	group, err := h.pools.RelockGroup(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"group": group})
}

type currentQuarterRequest struct {
	Quarter int `json:"quarter" binding:"required"`
}

// SetCurrentQuarter handles POST /groups/:id/current-quarter. Creator only.
func (h *GroupHandler) SetCurrentQuarter(c *gin.Context) {
	if !h.requireCreator(c) {
		return
	}
	var req currentQuarterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	group, err := h.pools.SetCurrentQuarter(c.Request.Context(), c.Param("id"), req.Quarter)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"group": group})
}

type recordResultRequest struct {
	Quarter    int `json:"quarter" binding:"required"`
	TeamAScore int `json:"teamAScore"`
	TeamBScore int `json:"teamBScore"`
}

// RecordResult handles POST /groups/:id/results. Creator only.
func (h *GroupHandler) RecordResult(c *gin.Context) {
	if !h.requireCreator(c) {
		return
	}
	var req recordResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	group, err := h.pools.RecordQuarterResult(c.Request.Context(), c.Param("id"), req.Quarter, req.TeamAScore, req.TeamBScore)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"group": group})
}

type markPaidRequest struct {
	TxSignature string `json:"txSignature" binding:"required"`
}

// MarkPaidOut handles POST /groups/:id/results/:quarter/payout. Creator only.
func (h *GroupHandler) MarkPaidOut(c *gin.Context) {
	if !h.requireCreator(c) {
		return
	}
	var req markPaidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	quarter, err := quarterParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "quarter must be 1-4"})
		return
	}
	group, err := h.pools.MarkPaidOut(c.Request.Context(), c.Param("id"), quarter, req.TxSignature)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"group": group})
}

// Delete handles DELETE /groups/:id. Creator only, irreversible.
func (h *GroupHandler) Delete(c *gin.Context) {
	if !h.requireCreator(c) {
		return
	}
	existed, err := h.pools.DeleteGroup(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	if !existed {
		c.JSON(http.StatusNotFound, gin.H{"error": "group not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// requireCreator aborts with 403 unless the authenticated wallet is the
// group's creator. The engine itself does not authorize; this is the caller's
// side of that contract.
func (h *GroupHandler) requireCreator(c *gin.Context) bool {
	group, err := h.pools.GetGroup(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return false
	}
	if group.Creator != callerWallet(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "only the group creator may do this"})
		return false
	}
	return true
}

func quarterParam(c *gin.Context) (int, error) {
	quarter, err := strconv.Atoi(c.Param("quarter"))
	if err != nil {
		return 0, err
	}
	if quarter < 1 || quarter > 4 {
		return 0, fmt.Errorf("quarter %d out of range", quarter)
	}
	return quarter, nil
}
