package app

import (
	"time"

	"vidyasetu_backend/internal/config"
	"vidyasetu_backend/internal/middleware"
	"vidyasetu_backend/internal/model"
	"vidyasetu_backend/pkg/monitoring"
	"vidyasetu_backend/pkg/security"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(monitoring.MetricsMiddleware())

	if cfg.RateLimit.MaxRequests > 0 {
		window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
		router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, window))
	}
}

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", monitoring.PrometheusHandler())

	api := router.Group("/api")

	// public
	api.GET("/health", c.health.Health)
	api.POST("/auth/register", c.auth.Register)
	api.POST("/auth/login", c.auth.Login)
	api.GET("/content", c.content.List)
	api.GET("/content/:id", c.content.Get)
	api.GET("/quizzes", c.quiz.List)

	// authenticated
	auth := api.Group("")
	auth.Use(middleware.AuthMiddleware(cfg))
	{
		auth.GET("/auth/me", c.auth.Me)

		auth.POST("/content/:id/like", c.content.ToggleLike)
		auth.POST("/content/:id/download", c.content.Download)

		auth.GET("/quizzes/:id", c.quiz.Get)
		auth.POST("/quizzes/:id/submit", c.quiz.Submit)
		auth.GET("/quizzes/:id/results", c.quiz.Results)

		auth.GET("/progress", c.progress.List)
		auth.POST("/progress", c.progress.Upsert)
		auth.GET("/progress/dashboard/stats", c.progress.Dashboard)
		auth.GET("/progress/analytics", c.progress.Analytics)
		auth.GET("/progress/:contentId", c.progress.GetByContent)
		auth.PATCH("/progress/:contentId/bookmark", c.progress.ToggleBookmark)
	}

	// teacher and admin
	authoring := api.Group("")
	authoring.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Teacher))
	{
		authoring.POST("/content", c.content.Create)
		authoring.PUT("/content/:id", c.content.Update)
		authoring.DELETE("/content/:id", c.content.Delete)
		authoring.PATCH("/content/:id/publish", c.content.TogglePublish)

		authoring.POST("/quizzes", c.quiz.Create)
		authoring.GET("/quizzes/:id/full", c.quiz.GetFull)
		authoring.PUT("/quizzes/:id", c.quiz.Update)
		authoring.DELETE("/quizzes/:id", c.quiz.Delete)
		authoring.PATCH("/quizzes/:id/publish", c.quiz.TogglePublish)
	}

	// admin only
	admin := api.Group("/users")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Admin))
	{
		admin.GET("", c.user.List)
		admin.GET("/admin/statistics", c.user.Statistics)
		admin.GET("/:id", c.user.Get)
		admin.PUT("/:id", c.user.Update)
		admin.DELETE("/:id", c.user.Delete)
	}
}
