package handlers

import (
	"errors"
	"net/http"

	"sonf_backend/internal/service"

	"github.com/gin-gonic/gin"
)

type InviteRequest struct {
	Email string `json:"email" binding:"required"`
}

// Invite records a referral invite to an email address. Self-referral is
// rejected by comparing the invited email against the authenticated user's
// email, since the referee may have no account yet.
func (h *Handler) Invite(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req InviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "referral email is required"})
		return
	}

	invite, err := h.ReferralService.Invite(c.Request.Context(), userID, getUserEmail(c), req.Email)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": "referral email is required"})
		case errors.Is(err, service.ErrSelfReferral):
			c.JSON(http.StatusBadRequest, gin.H{"error": "you cannot refer yourself"})
		case errors.Is(err, service.ErrAlreadyInvited):
			c.JSON(http.StatusBadRequest, gin.H{"error": "you have already referred this user"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create referral"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"invite": invite})
}

// ReferralList returns the caller's referral history.
func (h *Handler) ReferralList(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	history, err := h.ReferralService.History(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch referrals"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"referrals": history})
}

// ReferralCode returns the caller's code, generating one on first use.
func (h *Handler) ReferralCode(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	code, err := h.ReferralService.Code(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get referral code"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": code})
}

// ReferralDashboard returns stats plus history for the caller.
func (h *Handler) ReferralDashboard(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	dashboard, err := h.ReferralService.Dashboard(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch dashboard"})
		return
	}

	c.JSON(http.StatusOK, dashboard)
}
