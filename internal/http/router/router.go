package router

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/freelance-market/internal/config"
	"github.com/ignatzorin/freelance-market/internal/http/handlers"
	"github.com/ignatzorin/freelance-market/internal/http/middleware"
	"github.com/ignatzorin/freelance-market/internal/models"
	"github.com/ignatzorin/freelance-market/internal/service"
)

func SetupRouter(
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	profileHandler *handlers.ProfileHandler,
	projectHandler *handlers.ProjectHandler,
	bidHandler *handlers.BidHandler,
	orderHandler *handlers.OrderHandler,
	paymentHandler *handlers.PaymentHandler,
	reviewHandler *handlers.ReviewHandler,
	mediaHandler *handlers.MediaHandler,
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
		api.POST("/seed", seedHandler.Seed)
		api.GET("/seed", seedHandler.Seed)
	}

	authGroup := api.Group("/auth")
	authRateLimit := middleware.RateLimitMiddleware(cfg.RateLimitLimit, cfg.RateLimitPeriod)
	authGroup.Use(authRateLimit)
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/refresh", authHandler.Refresh)
	}

	// Публичные маршруты
	api.GET("/projects", projectHandler.List)
	api.GET("/projects/:id", middleware.UUIDValidator("id"), projectHandler.Get)
	api.GET("/users/:id", middleware.UUIDValidator("id"), profileHandler.GetUser)
	api.GET("/users/:id/rating", middleware.UUIDValidator("id"), profileHandler.GetFreelancerRating)
	api.GET("/users/:id/reviews", middleware.UUIDValidator("id"), profileHandler.GetFreelancerReviews)
	api.GET("/ws", wsHandler.Handle)

	// Защищённые маршруты
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(tokenManager))
	{
		protected.POST("/auth/logout", authHandler.Logout)

		protected.GET("/profile", profileHandler.Me)
		protected.PUT("/profile", profileHandler.UpdateMe)
		protected.POST("/profile/avatar", mediaHandler.UploadAvatar)
		protected.DELETE("/users/:id", middleware.UUIDValidator("id"), profileHandler.DeleteUser)

		protected.POST("/projects", projectHandler.Create)
		protected.GET("/projects/my", projectHandler.ListMine)
		protected.PUT("/projects/:id", middleware.UUIDValidator("id"), projectHandler.Update)
		protected.DELETE("/projects/:id", middleware.UUIDValidator("id"), projectHandler.Delete)

		protected.POST("/projects/:id/bids", middleware.UUIDValidator("id"), bidHandler.Place)
		protected.GET("/projects/:id/bids", middleware.UUIDValidator("id"), bidHandler.ListByProject)
		protected.GET("/bids/my", bidHandler.ListMine)
		protected.GET("/bids/incoming", bidHandler.ListForClient)
		protected.PATCH("/bids/:id", middleware.UUIDValidator("id"), bidHandler.Decide)

		protected.POST("/orders", orderHandler.Create)
		protected.GET("/orders/my", orderHandler.ListMine)
		protected.GET("/orders/completed", orderHandler.ListCompleted)
		protected.GET("/orders/:id", middleware.UUIDValidator("id"), orderHandler.Get)
		protected.PATCH("/orders/:id", middleware.UUIDValidator("id"), orderHandler.Process)

		protected.POST("/payments", paymentHandler.Create)
		protected.GET("/payments/my", paymentHandler.ListMine)
		protected.GET("/payments/:id", middleware.UUIDValidator("id"), paymentHandler.Get)
		protected.PATCH("/payments/:id", middleware.UUIDValidator("id"), paymentHandler.SetStatus)

		protected.POST("/reviews", reviewHandler.Create)
	}

	// Администрирование
	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware(tokenManager))
	admin.Use(middleware.RequireRole(models.RoleAdmin))
	{
		admin.GET("/users", profileHandler.ListUsers)
		admin.GET("/bids", bidHandler.ListAll)
		admin.GET("/orders", orderHandler.ListAll)
		admin.GET("/payments", paymentHandler.ListAll)
		admin.GET("/reviews", reviewHandler.ListAll)
	}

	return r
}
