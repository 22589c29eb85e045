package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/retailpulse/backend/internal/weather"
)

type WeatherHandler struct {
	client *weather.Client
}

func NewWeatherHandler(client *weather.Client) *WeatherHandler {
	return &WeatherHandler{client: client}
}

func (h *WeatherHandler) GetCurrent(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		errorResponse(c, http.StatusBadRequest, "q parameter is required")
		return
	}

	cond, err := h.client.Current(c.Request.Context(), query)
	if err != nil {
		if errors.Is(err, weather.ErrMissingAPIKey) {
			errorResponse(c, http.StatusServiceUnavailable, err.Error())
			return
		}
		errorResponse(c, http.StatusBadGateway, err.Error())
		return
	}
	c.JSON(http.StatusOK, cond)
}
