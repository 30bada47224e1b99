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

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"fleetpulse/internal/config"
	"fleetpulse/internal/handlers"
	"fleetpulse/internal/middleware"
	"fleetpulse/internal/models"
	"fleetpulse/internal/repositories/postgres"
	"fleetpulse/internal/services"
	"fleetpulse/pkg/ai"
	"fleetpulse/pkg/cache"
	"fleetpulse/pkg/database"
	"fleetpulse/pkg/logger"
	"fleetpulse/pkg/notify"
	"fleetpulse/pkg/uber"
	"fleetpulse/pkg/websocket"
	"fleetpulse/routes"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.NewLogger(&logger.Config{
		Level:      logger.LogLevel(cfg.App.LogLevel),
		Format:     cfg.App.LogFormat,
		Output:     "stdout",
		TimeFormat: time.RFC3339,
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	// Database
	db, err := database.Connect(&database.PostgresConfig{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		Name:            cfg.Database.Name,
		SSLMode:         cfg.Database.SSLMode,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		Debug:           cfg.App.Debug,
	})
	if err != nil {
		appLogger.Fatalf("Failed to connect to database: %v", err)
	}

	if err := models.Migrate(db); err != nil {
		appLogger.Fatalf("Failed to run migrations: %v", err)
	}

	// Cache is optional; the service layer degrades to a pass-through.
	cacheService := services.NewNoopCacheService()
	if cfg.Redis.Enabled {
		redisCache, err := cache.NewRedisCache(&cache.RedisConfig{
			Host:         cfg.Redis.Host,
			Port:         cfg.Redis.Port,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
			DialTimeout:  cfg.Redis.DialTimeout,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
		})
		if err != nil {
			appLogger.WithError(err).Warn("Redis unavailable, caching disabled")
		} else {
			cacheService = services.NewCacheService(redisCache)
			defer redisCache.Close()
		}
	}

	// Platform clients
	uberClient := uber.NewClient(&uber.Config{
		BaseURL:     cfg.Uber.BaseURL,
		ServerToken: cfg.Uber.ServerToken,
		OrgID:       cfg.Uber.OrgID,
		Timeout:     cfg.Uber.Timeout,
	})
	if !uberClient.Configured() {
		appLogger.Warn("Uber integration not configured, sync operations will be unavailable")
	}

	aiClient := ai.NewClient(&ai.Config{
		BaseURL:   cfg.AI.BaseURL,
		APIKey:    cfg.AI.APIKey,
		Model:     cfg.AI.Model,
		MaxTokens: cfg.AI.MaxTokens,
		Timeout:   cfg.AI.StreamTimeout,
	})

	provider, err := buildNotifyProvider(cfg.Notify)
	if err != nil {
		appLogger.Fatalf("Failed to initialize notification provider: %v", err)
	}

	catalog, err := services.LoadTemplateCatalog(cfg.Notify.TemplatesPath)
	if err != nil {
		appLogger.Fatalf("Failed to load alert template catalog: %v", err)
	}

	// Websocket hub
	hub := websocket.NewHub()
	go hub.Run()

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	driverRepo := postgres.NewDriverRepository(db)
	metricsRepo := postgres.NewMetricsRepository(db)
	ruleRepo := postgres.NewAlertRuleRepository(db)
	eventRepo := postgres.NewAlertEventRepository(db)
	templateRepo := postgres.NewTemplateRepository(db)
	settingsRepo := postgres.NewSettingsRepository(db)
	reportRepo := postgres.NewReportRepository(db)

	// Services
	authService := services.NewAuthService(userRepo, cfg.Security.JWTSecret, appLogger)
	driverService := services.NewDriverService(driverRepo, metricsRepo, cacheService, appLogger)
	syncService := services.NewSyncService(uberClient, driverRepo, metricsRepo, settingsRepo, hub, cfg.Uber.SyncDays, appLogger)
	alertService := services.NewAlertService(ruleRepo, eventRepo, templateRepo, driverRepo, catalog, provider, cfg.Notify.TwilioFromNumber, hub, appLogger)
	chatService := services.NewChatService(aiClient, driverRepo, appLogger)
	reportService := services.NewReportService(uberClient, reportRepo, appLogger)
	adminService := services.NewAdminService(db)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	driverHandler := handlers.NewDriverHandler(driverService, alertService)
	alertHandler := handlers.NewAlertHandler(alertService)
	chatHandler := handlers.NewChatHandler(chatService)
	uberHandler := handlers.NewUberHandler(syncService, reportService)
	reportHandler := handlers.NewReportHandler(reportService)
	adminHandler := handlers.NewAdminHandler(adminService)
	wsHandler := handlers.NewWSHandler(hub, appLogger)

	// Router
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware(appLogger))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"status":  "ok",
			"version": cfg.App.Version,
		})
	})

	api := router.Group("/api/v1")
	secret := cfg.Security.JWTSecret
	routes.SetupAuthRoutes(api, authHandler, secret)
	routes.SetupDriverRoutes(api, driverHandler, secret)
	routes.SetupAlertRoutes(api, alertHandler, secret)
	routes.SetupChatRoutes(api, chatHandler, secret)
	routes.SetupUberRoutes(api, uberHandler, secret)
	routes.SetupReportRoutes(api, reportHandler, secret)
	routes.SetupAdminRoutes(api, adminHandler, secret)
	routes.SetupWSRoutes(api, wsHandler, secret)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	go func() {
		appLogger.Infof("Server listening on port %d", cfg.App.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatalf("Server failed: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Errorf("Forced shutdown: %v", err)
	}
	appLogger.Info("Server stopped")
}

func buildNotifyProvider(cfg *config.NotifyConfig) (notify.Provider, error) {
	switch cfg.Provider {
	case "sns":
		return notify.NewAWSSNSProvider(cfg.AWSRegion)
	default:
		return notify.NewTwilioProvider(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFromNumber), nil
	}
}
