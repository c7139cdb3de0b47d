package handlers

import (
	"net/http"

	"sonf_backend/internal/domain"
	"sonf_backend/internal/repository"

	"github.com/gin-gonic/gin"
)

// Home aggregates the dashboard view: wallet snapshot, referral count,
// latest mining session and the lifetime mined sum.
func (h *Handler) Home(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	ctx := c.Request.Context()

	wallet, err := h.WalletService.Get(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch home data"})
		return
	}

	referralRepo := repository.NewReferralRepository(h.DB)
	referralCount, err := referralRepo.CountReferrals(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch home data"})
		return
	}

	miningRepo := repository.NewMiningRepository(h.DB)
	latest, err := miningRepo.GetLatest(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch home data"})
		return
	}

	miningStatus := domain.MiningStatusInactive
	latestSessionCoins := "0"
	if latest != nil {
		if latest.Active() {
			miningStatus = domain.MiningStatusActive
		}
		latestSessionCoins = latest.TotalMined.StringFixed(4)
	}

	totalMinedOverall, err := miningRepo.SumMined(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch home data"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"wallet":               wallet,
		"referral_count":       referralCount,
		"mining_status":        miningStatus,
		"latest_session_coins": latestSessionCoins,
		"total_mined_overall":  totalMinedOverall,
	})
}
