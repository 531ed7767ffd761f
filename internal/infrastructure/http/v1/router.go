// Package v1 provides the HTTP API.
package v1

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"tuldokpos/internal/domain/auth"
	"tuldokpos/internal/domain/catalogs/item"
	"tuldokpos/internal/domain/catalogs/service_def"
	"tuldokpos/internal/domain/reports"
	"tuldokpos/internal/domain/sales"
	"tuldokpos/internal/infrastructure/http/v1/handlers"
	"tuldokpos/internal/infrastructure/http/v1/middleware"
	"tuldokpos/internal/infrastructure/storage/postgres"
	"tuldokpos/pkg/logger"
)

// RouterConfig holds the router dependencies.
type RouterConfig struct {
	Pool   *postgres.Pool
	Logger *logger.Logger

	ItemService    *item.Service
	ServiceCatalog *service_def.Service
	SalesService   *sales.Service
	ReportsService *reports.Service
	AuthService    *auth.Service

	// AllowedOrigins for CORS; empty allows all
	AllowedOrigins []string
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// order matters
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger.WithComponent("http")))
	router.Use(middleware.ErrorHandler())
	router.Use(corsMiddleware(cfg.AllowedOrigins))

	base := handlers.NewBaseHandler()
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	itemHandler := handlers.NewItemHandler(base, cfg.ItemService)
	serviceHandler := handlers.NewServiceDefHandler(base, cfg.ServiceCatalog)
	salesHandler := handlers.NewSalesHandler(base, cfg.SalesService)
	reportsHandler := handlers.NewReportsHandler(base, cfg.ReportsService)
	authHandler := handlers.NewAuthHandler(base, cfg.AuthService)

	api := router.Group("/api")

	// health and login stay open
	api.GET("/health", healthHandler.Health)
	api.GET("/health/ready", healthHandler.Ready)
	api.POST("/auth/login", authHandler.Login)

	protected := api.Group("")
	if cfg.AuthService.Enabled() {
		protected.Use(middleware.Auth(cfg.AuthService))
	}

	inventory := protected.Group("/inventory")
	{
		inventory.GET("", itemHandler.List)
		inventory.POST("", itemHandler.Create)
		inventory.GET("/:id", itemHandler.Get)
		inventory.PUT("/:id", itemHandler.Update)
		inventory.DELETE("/:id", itemHandler.Delete)
	}

	services := protected.Group("/services")
	{
		services.GET("", serviceHandler.List)
		services.POST("", serviceHandler.Create)
		services.GET("/:id", serviceHandler.Get)
		services.PUT("/:id", serviceHandler.Update)
		services.DELETE("/:id", serviceHandler.Delete)
	}

	openSales := protected.Group("/open-sales")
	{
		openSales.GET("", salesHandler.ListOpen)
		openSales.POST("", salesHandler.CreateOpen)
		openSales.GET("/next-invoice", salesHandler.NextInvoice)
		openSales.GET("/:id", salesHandler.GetOpen)
		openSales.PUT("/:id", salesHandler.UpdateOpen)
		openSales.DELETE("/:id", salesHandler.DeleteOpen)
	}

	closedSales := protected.Group("/closed-sales")
	{
		closedSales.GET("", salesHandler.ListClosed)
		closedSales.GET("/:id", salesHandler.GetClosed)
		closedSales.DELETE("/:id", salesHandler.DeleteClosed)
	}

	protected.POST("/pay-sale/:id", salesHandler.Pay)
	protected.POST("/revert-sale/:id", salesHandler.Revert)

	protected.GET("/reports/sales", reportsHandler.SalesReport)

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.HeaderRequestID, middleware.HeaderTraceID},
		ExposeHeaders:    []string{middleware.HeaderRequestID, middleware.HeaderTraceID},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		corsConfig.AllowOrigins = allowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	return cors.New(corsConfig)
}
