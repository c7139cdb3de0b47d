package http

import (
	"sonf_backend/internal/config"
	"sonf_backend/internal/http/handlers"
	"sonf_backend/internal/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

func RegisterRoutes(r *gin.Engine, db *pgxpool.Pool, cfg *config.Config) {
	h := handlers.NewHandler(db)

	// Health checks (no rate limiting)
	r.GET("/health", h.Health)
	r.GET("/healthz", h.Liveness)
	r.GET("/readyz", h.Readiness)

	api := r.Group("/api")
	api.Use(middleware.RedisRateLimit(cfg.APIRateLimit, cfg.APIRateWindow))

	// Auth endpoints carry a stricter limit against credential stuffing
	authRL := middleware.RedisRateLimit(cfg.AuthRateLimit, cfg.AuthRateWindow)
	auth := api.Group("/auth")
	{
		auth.POST("/signup", authRL, h.Signup)
		auth.POST("/login", authRL, h.Login)
		auth.POST("/refresh", authRL, h.Refresh)
		auth.POST("/logout", middleware.JWT(), h.Logout)
	}

	api.GET("/home", middleware.JWT(), h.Home)

	api.GET("/profile", middleware.JWT(), h.GetProfile)
	api.PUT("/profile", middleware.JWT(), h.UpdateProfile)

	wallet := api.Group("/wallet")
	wallet.Use(middleware.JWT())
	{
		wallet.GET("/details", h.WalletDetails)
		wallet.POST("/migrate", h.Migrate)
	}

	mining := api.Group("/mining")
	mining.Use(middleware.JWT())
	{
		mining.POST("/start", h.StartMining)
		mining.GET("/status", h.MiningStatus)
		mining.POST("/stop", h.StopMining)
		mining.POST("/claim", h.ClaimMining)
	}

	earn := api.Group("/earn")
	earn.Use(middleware.JWT())
	{
		earn.POST("/:platform", h.Earn)
		earn.GET("/history", h.EarnHistory)
	}

	referral := api.Group("/referrals")
	referral.Use(middleware.JWT())
	{
		referral.POST("/invite", h.Invite)
		referral.GET("/list", h.ReferralList)
		referral.GET("/code", h.ReferralCode)
		referral.GET("/dashboard", h.ReferralDashboard)
	}

	notifications := api.Group("/notifications")
	notifications.Use(middleware.JWT())
	{
		notifications.GET("", h.Notifications)
		notifications.PATCH("/:id/read", h.MarkNotificationRead)
	}
}
