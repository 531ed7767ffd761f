// Package main is the entry point for the tuldokpos API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"tuldokpos/internal/domain/auth"
	"tuldokpos/internal/domain/catalogs/item"
	"tuldokpos/internal/domain/catalogs/service_def"
	"tuldokpos/internal/domain/reports"
	"tuldokpos/internal/domain/sales"
	v1 "tuldokpos/internal/infrastructure/http/v1"
	"tuldokpos/internal/infrastructure/storage/postgres"
	"tuldokpos/internal/infrastructure/storage/postgres/catalog_repo"
	"tuldokpos/internal/infrastructure/storage/postgres/sale_repo"
	"tuldokpos/pkg/logger"
	"tuldokpos/pkg/numerator"
)

func main() {
	// .env is optional; real deployments use the environment directly
	_ = godotenv.Load()

	log, err := logger.New(logger.Config{
		Level:       getEnv("LOG_LEVEL", "info"),
		Development: getEnv("APP_ENV", "development") == "development",
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := logger.WithLogger(context.Background(), log)
	log.Info("starting tuldokpos server")

	// --- Database ---
	dsn := mustEnv("DATABASE_URL")
	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(dsn))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	log.Info("database connection established")

	if err := postgres.Bootstrap(ctx, pool); err != nil {
		log.Fatalw("failed to bootstrap schema", "error", err)
	}

	txManager := postgres.NewTxManager(pool)

	// --- Repositories ---
	itemRepo := catalog_repo.NewItemRepo(txManager)
	serviceRepo := catalog_repo.NewServiceDefRepo(txManager)
	saleRepo := sale_repo.NewSaleRepo(txManager)

	// --- Audit ---
	saleAudit, err := postgres.NewSaleAudit(txManager)
	if err != nil {
		log.Fatalw("failed to initialize sale audit", "error", err)
	}

	// --- Services ---
	itemService := item.NewService(itemRepo, txManager)
	serviceCatalog := service_def.NewService(serviceRepo, txManager)
	invoiceNumbers := numerator.New(txManager)
	salesService := sales.NewService(saleRepo, itemRepo, txManager, invoiceNumbers, saleAudit)
	reportsService := reports.NewService(saleRepo, txManager)

	// --- Auth ---
	jwtService := auth.NewJWTService(auth.DefaultJWTConfig(
		getEnv("JWT_SECRET", "change-me-in-production"),
	))
	authService := auth.NewService(getEnv("OPERATOR_PASSWORD_HASH", ""), jwtService)
	if authService.Enabled() {
		log.Info("operator authentication enabled")
	} else {
		log.Warn("no operator password configured, API runs open")
	}

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Pool:           pool,
		Logger:         log,
		ItemService:    itemService,
		ServiceCatalog: serviceCatalog,
		SalesService:   salesService,
		ReportsService: reportsService,
		AuthService:    authService,
		AllowedOrigins: splitEnv("CORS_ALLOWED_ORIGINS"),
	})

	// --- HTTP Server ---
	port := getEnv("APP_PORT", "8080")
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "port", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func mustEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		fmt.Printf("required environment variable %s not set\n", key)
		os.Exit(1)
	}
	return value
}

func splitEnv(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
