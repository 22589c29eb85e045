package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/retailpulse/backend/internal/domain"
	"github.com/retailpulse/backend/internal/service"
)

type TransferHandler struct {
	transfers *service.TransferService
	risks     *service.RiskService
}

func NewTransferHandler(transfers *service.TransferService, risks *service.RiskService) *TransferHandler {
	return &TransferHandler{transfers: transfers, risks: risks}
}

// GetRecommendations recomputes suggestions from the live snapshot.
func (h *TransferHandler) GetRecommendations(c *gin.Context) {
	recs, err := h.transfers.Recommendations(c.Request.Context())
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recommendations": recs, "count": len(recs)})
}

// ApplyTransfer executes an accepted recommendation and drops the cached
// risk report, which the move just invalidated.
func (h *TransferHandler) ApplyTransfer(c *gin.Context) {
	var req domain.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.transfers.Apply(c.Request.Context(), req); err != nil {
		serviceError(c, err)
		return
	}

	h.risks.InvalidateReport(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"status": "applied"})
}

func (h *TransferHandler) RejectTransfer(c *gin.Context) {
	var req domain.RejectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	score, err := h.transfers.Reject(c.Request.Context(), req)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "rejected", "penalty_score": score})
}
