package router

import (
	"github.com/gin-gonic/gin"

	"github.com/parkease/parkease-backend/internal/config"
	"github.com/parkease/parkease-backend/internal/http/handlers"
	"github.com/parkease/parkease-backend/internal/http/middleware"
	"github.com/parkease/parkease-backend/internal/models"
	"github.com/parkease/parkease-backend/internal/service"
)

func SetupRouter(
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	walletHandler *handlers.WalletHandler,
	bookingHandler *handlers.BookingHandler,
	slotHandler *handlers.SlotHandler,
	disputeHandler *handlers.DisputeHandler,
	adminHandler *handlers.AdminHandler,
	documentHandler *handlers.DocumentHandler,
	statsHandler *handlers.StatsHandler,
	chatHandler *handlers.ChatHandler,
	wsHandler *handlers.WSHandler,
	healthHandler *handlers.HealthHandler,
	seedHandler *handlers.SeedHandler,
	tokenManager *service.TokenManager,
) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	r.GET("/health", healthHandler.Health)

	api := r.Group("/api")

	if seedHandler != nil && cfg.Env == "development" {
		api.POST("/dev/seed", seedHandler.Seed)
		api.GET("/dev/seed", seedHandler.Seed)
	}

	authGroup := api.Group("/auth")
	authGroup.Use(middleware.RateLimitMiddleware(5, cfg.RateLimitPeriod))
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/refresh", authHandler.Refresh)
	}

	// Публичные маршруты
	api.GET("/ws", wsHandler.Handle)
	api.GET("/slots", slotHandler.Search)
	api.GET("/slots/:id", middleware.UUIDValidator("id"), slotHandler.Get)
	api.POST("/chat", chatHandler.Ask)

	// Защищённые маршруты
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(tokenManager))
	protected.Use(middleware.RateLimitMiddleware(cfg.RateLimitLimit, cfg.RateLimitPeriod))
	{
		// Кошелёк
		protected.GET("/drivers/:id/wallet", middleware.UUIDValidator("id"), walletHandler.GetBalance)
		protected.POST("/drivers/:id/wallet/topup", middleware.UUIDValidator("id"), walletHandler.TopUp)
		protected.GET("/drivers/:id/wallet/transactions", middleware.UUIDValidator("id"), walletHandler.ListTransactions)

		// Брони
		protected.POST("/bookings", bookingHandler.Create)
		protected.POST("/bookings/quote", bookingHandler.Quote)
		protected.GET("/bookings/:id", middleware.UUIDValidator("id"), bookingHandler.Get)
		protected.POST("/bookings/:id/complete", middleware.UUIDValidator("id"), bookingHandler.Complete)
		protected.POST("/bookings/:id/cancel", middleware.UUIDValidator("id"), bookingHandler.Cancel)
		protected.GET("/drivers/:id/bookings", middleware.UUIDValidator("id"), bookingHandler.ListByDriver)

		// Споры
		protected.POST("/disputes", disputeHandler.Create)
		protected.GET("/disputes", disputeHandler.List)
		protected.GET("/disputes/:id", middleware.UUIDValidator("id"), disputeHandler.Get)

		// Документы заявок операторов
		protected.POST("/providers/:id/documents/:docType", middleware.UUIDValidator("id"), documentHandler.Upload)

		// Статистика
		protected.GET("/stats/:entityType", statsHandler.Get)
	}

	// Админские маршруты: смены статусов и реестры
	admin := api.Group("/")
	admin.Use(middleware.AuthMiddleware(tokenManager))
	admin.Use(middleware.RequireRole(models.RoleAdmin))
	{
		admin.POST("/providers", adminHandler.CreateProvider)
		admin.GET("/providers", adminHandler.ListProviders)
		admin.GET("/providers/:id", middleware.UUIDValidator("id"), adminHandler.GetProvider)
		admin.POST("/providers/:id/transition", middleware.UUIDValidator("id"), adminHandler.TransitionProvider)

		admin.POST("/drivers", adminHandler.CreateDriver)
		admin.GET("/drivers", adminHandler.ListDrivers)
		admin.GET("/drivers/:id", middleware.UUIDValidator("id"), adminHandler.GetDriver)
		admin.POST("/drivers/:id/transition", middleware.UUIDValidator("id"), adminHandler.TransitionDriver)

		admin.POST("/disputes/:id/transition", middleware.UUIDValidator("id"), disputeHandler.Transition)

		admin.POST("/slots", slotHandler.Create)
		admin.PATCH("/slots/:id/availability", middleware.UUIDValidator("id"), slotHandler.SetAvailable)

		admin.GET("/admin/audit/:entityType/:id", middleware.UUIDValidator("id"), adminHandler.ListAudit)
	}

	return r
}
