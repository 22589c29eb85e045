package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/retailpulse/backend/internal/export"
	"github.com/retailpulse/backend/internal/service"
)

// ExportHandler pushes a fresh recommendations + risk snapshot to object
// storage for the BI team.
type ExportHandler struct {
	exporter  *export.Exporter
	transfers *service.TransferService
	risks     *service.RiskService
}

func NewExportHandler(exporter *export.Exporter, transfers *service.TransferService, risks *service.RiskService) *ExportHandler {
	return &ExportHandler{exporter: exporter, transfers: transfers, risks: risks}
}

func (h *ExportHandler) ExportSnapshot(c *gin.Context) {
	ctx := c.Request.Context()

	recs, err := h.transfers.Recommendations(ctx)
	if err != nil {
		serviceError(c, err)
		return
	}
	report, err := h.risks.Report(ctx)
	if err != nil {
		serviceError(c, err)
		return
	}

	prefix, err := h.exporter.ExportSnapshot(ctx, recs, report)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "exported", "prefix": prefix})
}
