package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/retailpulse/backend/internal/domain"
	"github.com/retailpulse/backend/internal/service"
)

type POSHandler struct {
	service *service.POSService
}

func NewPOSHandler(service *service.POSService) *POSHandler {
	return &POSHandler{service: service}
}

// SyncSale ingests one receipt. Devices retry until they see 200, so
// replays answer with the already-stored record.
func (h *POSHandler) SyncSale(c *gin.Context) {
	var sale domain.PosSale
	if err := c.ShouldBindJSON(&sale); err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	stored, err := h.service.SyncSale(c.Request.Context(), &sale)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stored)
}

func (h *POSHandler) SyncZReport(c *gin.Context) {
	var report domain.PosZReport
	if err := c.ShouldBindJSON(&report); err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	id, err := h.service.RecordZReport(c.Request.Context(), &report)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}
