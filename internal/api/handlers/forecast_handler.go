package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/retailpulse/backend/internal/forecast"
	"github.com/retailpulse/backend/internal/service"
)

type ForecastHandler struct {
	service *service.ForecastService
}

func NewForecastHandler(service *service.ForecastService) *ForecastHandler {
	return &ForecastHandler{service: service}
}

type forecastRequest struct {
	StoreID   int64 `json:"store_id" binding:"required"`
	ProductID int64 `json:"product_id" binding:"required"`
	Horizon   int   `json:"horizon"`
}

func (h *ForecastHandler) ProjectDemand(c *gin.Context) {
	var req forecastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	forecasts, err := h.service.ProjectDemand(c.Request.Context(), req.StoreID, req.ProductID, req.Horizon)
	if err != nil {
		if errors.Is(err, forecast.ErrNoHistory) {
			errorResponse(c, http.StatusUnprocessableEntity, err.Error())
			return
		}
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"forecasts": forecasts})
}

func (h *ForecastHandler) ListForecasts(c *gin.Context) {
	storeID, err := strconv.ParseInt(c.Query("store_id"), 10, 64)
	if err != nil {
		errorResponse(c, http.StatusBadRequest, "store_id is required")
		return
	}
	productID, err := strconv.ParseInt(c.Query("product_id"), 10, 64)
	if err != nil {
		errorResponse(c, http.StatusBadRequest, "product_id is required")
		return
	}

	forecasts, err := h.service.ListForecasts(c.Request.Context(), storeID, productID)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"forecasts": forecasts})
}
