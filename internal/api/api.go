package api

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/retailpulse/backend/internal/api/handlers"
	"github.com/retailpulse/backend/internal/api/middleware"
	"github.com/retailpulse/backend/internal/export"
	"github.com/retailpulse/backend/internal/service"
	"github.com/retailpulse/backend/internal/weather"
)

type Services struct {
	StoreService    *service.StoreService
	ProductService  *service.ProductService
	TransferService *service.TransferService
	RiskService     *service.RiskService
	SaleService     *service.SaleService
	POSService      *service.POSService
	ForecastService *service.ForecastService
	WeatherClient   *weather.Client
	Exporter        *export.Exporter
}

func NewRouter(services *Services, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())

	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	apiGroup := router.Group("/api/v1")

	if services == nil {
		return router
	}

	if services.StoreService != nil {
		storeHandler := handlers.NewStoreHandler(services.StoreService)
		storeGroup := apiGroup.Group("/stores")
		{
			storeGroup.GET("", storeHandler.ListStores)
			storeGroup.POST("", storeHandler.CreateStore)
			storeGroup.GET("/:id", storeHandler.GetStore)
			storeGroup.PUT("/:id", storeHandler.UpdateStore)
			storeGroup.DELETE("/:id", storeHandler.DeleteStore)
			storeGroup.GET("/:id/inventory", storeHandler.GetInventory)
			storeGroup.PUT("/:id/inventory", storeHandler.SetInventoryLine)
		}
	}

	if services.ProductService != nil {
		productHandler := handlers.NewProductHandler(services.ProductService)
		productGroup := apiGroup.Group("/products")
		{
			productGroup.GET("", productHandler.ListProducts)
			productGroup.POST("", productHandler.CreateProduct)
			productGroup.GET("/:id", productHandler.GetProduct)
			productGroup.PUT("/:id", productHandler.UpdateProduct)
		}
	}

	if services.TransferService != nil && services.RiskService != nil {
		transferHandler := handlers.NewTransferHandler(services.TransferService, services.RiskService)
		transferGroup := apiGroup.Group("/transfers")
		{
			transferGroup.GET("/recommendations", transferHandler.GetRecommendations)
			transferGroup.POST("/apply", transferHandler.ApplyTransfer)
			transferGroup.POST("/reject", transferHandler.RejectTransfer)
		}
	}

	if services.RiskService != nil {
		riskHandler := handlers.NewRiskHandler(services.RiskService)
		riskGroup := apiGroup.Group("/risk")
		{
			riskGroup.GET("/report", riskHandler.GetReport)
			riskGroup.GET("/stores/:id", riskHandler.GetStoreRisk)
		}
	}

	if services.SaleService != nil {
		saleHandler := handlers.NewSaleHandler(services.SaleService)
		saleGroup := apiGroup.Group("/sales")
		{
			saleGroup.POST("", saleHandler.RecordSale)
			saleGroup.GET("/history", saleHandler.GetHistory)
		}
	}

	if services.POSService != nil {
		posHandler := handlers.NewPOSHandler(services.POSService)
		posGroup := apiGroup.Group("/pos")
		{
			posGroup.POST("/sales", posHandler.SyncSale)
			posGroup.POST("/z-reports", posHandler.SyncZReport)
		}
	}

	if services.ForecastService != nil {
		forecastHandler := handlers.NewForecastHandler(services.ForecastService)
		forecastGroup := apiGroup.Group("/forecasts")
		{
			forecastGroup.POST("/project", forecastHandler.ProjectDemand)
			forecastGroup.GET("", forecastHandler.ListForecasts)
		}
	}

	if services.WeatherClient != nil {
		weatherHandler := handlers.NewWeatherHandler(services.WeatherClient)
		apiGroup.GET("/weather/current", weatherHandler.GetCurrent)
	}

	if services.Exporter != nil && services.TransferService != nil && services.RiskService != nil {
		exportHandler := handlers.NewExportHandler(services.Exporter, services.TransferService, services.RiskService)
		apiGroup.POST("/exports/snapshot", exportHandler.ExportSnapshot)
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		for _, part := range strings.Split(origin, ",") {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
