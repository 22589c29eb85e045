package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/retailpulse/backend/internal/api"
	"github.com/retailpulse/backend/internal/cache"
	"github.com/retailpulse/backend/internal/config"
	"github.com/retailpulse/backend/internal/export"
	"github.com/retailpulse/backend/internal/repository/postgres"
	"github.com/retailpulse/backend/internal/service"
	"github.com/retailpulse/backend/internal/storage"
	"github.com/retailpulse/backend/internal/weather"
	"github.com/retailpulse/backend/pkg/logger"
)

func main() {
	cfg := config.Load()

	logger.SetLevel(cfg.Server.Mode)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	storeRepo := postgres.NewStoreRepository(db)
	productRepo := postgres.NewProductRepository(db)
	inventoryRepo := postgres.NewInventoryRepository(db)
	saleRepo := postgres.NewSaleRepository(db)
	customerRepo := postgres.NewCustomerRepository(db)
	transferRepo := postgres.NewTransferRepository(db)
	forecastRepo := postgres.NewForecastRepository(db)
	posRepo := postgres.NewPosRepository(db)

	riskCache, err := cache.NewRiskReportCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("Cache unavailable, continuing without it")
		riskCache = cache.NewNoopRiskReportCache()
	}

	services := &api.Services{
		StoreService:   service.NewStoreService(storeRepo, inventoryRepo),
		ProductService: service.NewProductService(productRepo),
		TransferService: service.NewTransferService(
			storeRepo, inventoryRepo, transferRepo,
			cfg.Transfer.MaxTruckCapacity, cfg.Transfer.DefaultSafetyStock,
		),
		RiskService:     service.NewRiskService(storeRepo, riskCache),
		SaleService:     service.NewSaleService(saleRepo, inventoryRepo, customerRepo, productRepo),
		POSService:      service.NewPOSService(posRepo),
		ForecastService: service.NewForecastService(saleRepo, forecastRepo),
	}

	if cfg.Weather.APIKey != "" {
		services.WeatherClient = weather.NewClient(cfg.Weather)
	}

	if cfg.Storage.Endpoint != "" {
		objectStore, err := storage.NewMinioClient(storage.MinioConfig{
			Endpoint:  cfg.Storage.Endpoint,
			AccessKey: cfg.Storage.AccessKey,
			SecretKey: cfg.Storage.SecretKey,
			Bucket:    cfg.Storage.Bucket,
			Region:    cfg.Storage.Region,
			UseSSL:    cfg.Storage.UseSSL,
		})
		if err != nil {
			logger.Log.Warn().Err(err).Msg("Object storage unavailable, exports disabled")
		} else {
			services.Exporter = export.NewExporter(objectStore)
		}
	}

	router := api.NewRouter(services, cfg.Server.AllowedOrigins)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}
