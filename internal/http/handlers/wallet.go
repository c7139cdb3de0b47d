package handlers

import (
	"errors"
	"net/http"

	"sonf_backend/internal/repository"
	"sonf_backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// WalletDetails returns the caller's wallet, creating it on first access.
func (h *Handler) WalletDetails(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	wallet, err := h.WalletService.Get(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch wallet"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"wallet": wallet})
}

type MigrateRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// Migrate moves coins from the spendable balance into the migrated bucket.
// Insufficient funds and bad amounts are business outcomes with a 400, never
// a 500, and leave the wallet untouched.
func (h *Handler) Migrate(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req MigrateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "valid amount is required"})
		return
	}

	wallet, err := h.WalletService.Migrate(c.Request.Context(), userID, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidAmount):
			c.JSON(http.StatusBadRequest, gin.H{"error": "valid amount is required"})
		case errors.Is(err, repository.ErrInsufficientFunds):
			c.JSON(http.StatusBadRequest, gin.H{"error": "insufficient available coins"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to migrate funds"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"wallet": wallet})
}
