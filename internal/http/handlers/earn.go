package handlers

import (
	"errors"
	"net/http"

	"sonf_backend/internal/service"

	"github.com/gin-gonic/gin"
)

type EarnRequest struct {
	Link string `json:"link"`
}

// Earn claims the one-time engagement reward for a platform. A repeat claim
// answers awarded=false with the wallet untouched; only unknown platforms
// and missing proof links are rejected.
func (h *Handler) Earn(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	platform := c.Param("platform")

	var req EarnRequest
	_ = c.ShouldBindJSON(&req)

	result, err := h.RewardService.Grant(c.Request.Context(), userID, platform, req.Link)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidPlatform):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid platform"})
		case errors.Is(err, service.ErrProofRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": "post link is required for this platform"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to grant reward"})
		}
		return
	}

	if !result.Awarded {
		c.JSON(http.StatusOK, gin.H{
			"awarded": false,
			"message": "reward already claimed for " + platform,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"awarded":       true,
		"reward_amount": result.RewardAmount,
		"wallet":        result.Wallet,
	})
}

// EarnHistory lists the rewards the caller already claimed.
func (h *Handler) EarnHistory(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	grants, err := h.RewardService.History(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch rewards"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"rewards": grants})
}
