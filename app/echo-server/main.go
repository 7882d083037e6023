package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cpsGrowth/app/echo-server/router"
	"cpsGrowth/business/category"
	"cpsGrowth/business/funnel"
	"cpsGrowth/business/recommend"
	"cpsGrowth/internal/middleware"
	psqlRepo "cpsGrowth/internal/repository/postgres"
	redisRepo "cpsGrowth/internal/repository/redis"
	"cpsGrowth/internal/rest"
	"cpsGrowth/pkg/config"
	"cpsGrowth/pkg/database"
	redisdb "cpsGrowth/pkg/database/redis"
	"cpsGrowth/pkg/logger"
	"cpsGrowth/pkg/metrics"
	"cpsGrowth/pkg/rulesconfig"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting CPS Growth API", "version", cfg.App.Version)

	metrics.Init()

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	logger.Info("Database connected successfully")

	rules, err := rulesconfig.Load(cfg.Rules.Dir)
	if err != nil {
		logger.Fatal("Failed to load rule files", "error", err)
	}

	// Redis is an optional cache; without it every diagnosis is computed fresh.
	var diagnosisCache funnel.DiagnosisCache
	if redisClient, err := redisdb.NewRedisClient(cfg); err != nil {
		logger.Warn("Redis unavailable, funnel diagnosis cache disabled", "error", err)
	} else {
		ttl := time.Duration(cfg.Redis.DiagnosisTTLSeconds) * time.Second
		diagnosisCache = redisRepo.NewDiagnosisCache(redisClient, ttl)
	}

	// Init repo
	itemRepo := psqlRepo.NewItemRepository(db)
	behaviorRepo := psqlRepo.NewBehaviorRepository(db)
	categoryRepo := psqlRepo.NewCategoryRepository(db)

	// Init service
	recommendService := recommend.NewService(itemRepo, rules.Guardrails, rules.Commission, rules.Reasons, rules.Scoring)
	funnelService := funnel.NewService(behaviorRepo, diagnosisCache, rules.Funnel)
	categoryService := category.NewCategoryService(categoryRepo)

	// Init handler
	recommendHandler := rest.NewRecommendHandler(recommendService, rules.Guardrails)
	funnelHandler := rest.NewFunnelHandler(funnelService)
	categoryHandler := rest.NewCategoryHandler(categoryService)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Setup routes
	api := e.Group("/api/v1")
	router.SetRecommendRoutes(api, recommendHandler)
	router.SetFunnelRoutes(api, funnelHandler)
	router.SetupCategoryRoutes(api, categoryHandler)

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}
