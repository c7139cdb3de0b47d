package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// StartMining begins a session, or returns the running one unchanged.
func (h *Handler) StartMining(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	session, err := h.MiningService.Start(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to start mining"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "started", "session": session})
}

// MiningStatus polls the active session. A session past the duration cap is
// finalized and credited right here; expiry has no other trigger.
func (h *Handler) MiningStatus(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	report, err := h.MiningService.Status(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch mining status"})
		return
	}

	c.JSON(http.StatusOK, report)
}

// StopMining ends the active session and credits the wallet. No active
// session is an ordinary response, not an error.
func (h *Handler) StopMining(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	result, err := h.MiningService.Stop(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to stop mining"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// ClaimMining pays the most recent ended-but-uncredited session, if any.
func (h *Handler) ClaimMining(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	result, err := h.MiningService.Claim(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to claim coins"})
		return
	}

	c.JSON(http.StatusOK, result)
}
