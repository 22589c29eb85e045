package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/retailpulse/backend/internal/service"
)

type SaleHandler struct {
	service *service.SaleService
}

func NewSaleHandler(service *service.SaleService) *SaleHandler {
	return &SaleHandler{service: service}
}

type saleRequest struct {
	StoreID    int64 `json:"store_id" binding:"required"`
	ProductID  int64 `json:"product_id" binding:"required"`
	CustomerID int64 `json:"customer_id"`
	Quantity   int   `json:"quantity" binding:"required"`
}

func (h *SaleHandler) RecordSale(c *gin.Context) {
	var req saleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	sale, err := h.service.RecordSale(c.Request.Context(), req.StoreID, req.ProductID, req.CustomerID, req.Quantity)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sale)
}

// GetHistory lists sales for one store/product pair. Defaults to the
// trailing 30 days when no range is given.
func (h *SaleHandler) GetHistory(c *gin.Context) {
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

	to := time.Now()
	from := to.AddDate(0, 0, -30)
	if v := c.Query("from"); v != "" {
		if from, err = time.Parse("2006-01-02", v); err != nil {
			errorResponse(c, http.StatusBadRequest, "invalid from date")
			return
		}
	}
	if v := c.Query("to"); v != "" {
		if to, err = time.Parse("2006-01-02", v); err != nil {
			errorResponse(c, http.StatusBadRequest, "invalid to date")
			return
		}
	}

	sales, err := h.service.SalesHistory(c.Request.Context(), storeID, productID, from, to)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sales": sales, "count": len(sales)})
}
