package router

import (
	"log/slog"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/polkiloo/streakmart/internal/config"
	"github.com/polkiloo/streakmart/internal/server/http/handlers"
	"github.com/polkiloo/streakmart/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.StorefrontFacade, cfg *config.Config, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))
	engine.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", handlers.CronAuthHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	authHandler := handlers.NewAuthHandler(facade)
	dashboardHandler := handlers.NewDashboardHandler(facade)
	maintenanceHandler := handlers.NewMaintenanceHandler(facade, cfg.CronSecret)
	purchaseHandler := handlers.NewPurchaseHandler(facade)
	commentHandler := handlers.NewCommentHandler(facade)
	catalogHandler := handlers.NewCatalogHandler(facade)

	api := engine.Group("/api")
	api.GET("/dashboard", dashboardHandler.Dashboard)
	api.GET("/comments", commentHandler.List)
	api.GET("/products", catalogHandler.List)
	api.GET("/products/search", catalogHandler.Search)
	api.GET("/products/:id", catalogHandler.Get)
	api.GET("/internal/update-dashboard-cache", maintenanceHandler.UpdateDashboardCache)

	user := api.Group("/user")
	user.POST("/register", authHandler.Register)
	user.POST("/login", authHandler.Login)
	user.POST("/refresh", authHandler.Refresh)
	user.POST("/logout", authHandler.Logout)
	user.GET("/check", authHandler.Check)

	authed := api.Group("")
	authed.Use(middleware.AuthRequired(facade))
	authed.POST("/comments", commentHandler.Post)
	authed.GET("/user/purchases", purchaseHandler.History)
	authed.POST("/user/purchases", purchaseHandler.Record)

	return engine
}
