package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/retailpulse/backend/internal/repository"
	"github.com/retailpulse/backend/internal/repository/postgres"
	"github.com/retailpulse/backend/internal/service"
	"github.com/rs/zerolog/log"
)

func errorResponse(c *gin.Context, statusCode int, message string) {
	log.Error().Msg(message)
	c.JSON(statusCode, gin.H{"error": message})
}

// serviceError maps the shared sentinel errors to HTTP statuses.
func serviceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		errorResponse(c, http.StatusNotFound, err.Error())
	case errors.Is(err, postgres.ErrInsufficientStock):
		errorResponse(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidStore),
		errors.Is(err, service.ErrInvalidProduct),
		errors.Is(err, service.ErrInvalidTransfer),
		errors.Is(err, service.ErrInvalidSale),
		errors.Is(err, service.ErrInvalidReceipt):
		errorResponse(c, http.StatusBadRequest, err.Error())
	default:
		errorResponse(c, http.StatusInternalServerError, err.Error())
	}
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		errorResponse(c, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return id, true
}
