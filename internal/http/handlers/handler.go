package handlers

import (
	"sonf_backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Handler struct {
	DB              *pgxpool.Pool
	AuthService     *service.AuthService
	WalletService   *service.WalletService
	MiningService   *service.MiningService
	RewardService   *service.RewardService
	ReferralService *service.ReferralService
}

func NewHandler(db *pgxpool.Pool) *Handler {
	return &Handler{
		DB:              db,
		AuthService:     service.NewAuthService(db),
		WalletService:   service.NewWalletService(db),
		MiningService:   service.NewMiningService(db),
		RewardService:   service.NewRewardService(db),
		ReferralService: service.NewReferralService(db),
	}
}

// getUserID pulls the authenticated user id out of the Gin context.
func getUserID(c *gin.Context) (int64, bool) {
	uidVal, ok := c.Get("user_id")
	if !ok {
		return 0, false
	}
	switch v := uidVal.(type) {
	case int64:
		return v, true
	case float64:
		return int64(v), true
	default:
		return 0, false
	}
}

// getUserEmail pulls the authenticated user's email out of the Gin context.
func getUserEmail(c *gin.Context) string {
	if v, ok := c.Get("email"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
