package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/retailpulse/backend/internal/service"
)

type RiskHandler struct {
	service *service.RiskService
}

func NewRiskHandler(service *service.RiskService) *RiskHandler {
	return &RiskHandler{service: service}
}

func (h *RiskHandler) GetReport(c *gin.Context) {
	report, err := h.service.Report(c.Request.Context())
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"report": report, "count": len(report)})
}

func (h *RiskHandler) GetStoreRisk(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	status, err := h.service.ClassifyStore(c.Request.Context(), id)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"store_id": id, "status": status, "color": status.Color()})
}
