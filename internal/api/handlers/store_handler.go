package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/retailpulse/backend/internal/domain"
	"github.com/retailpulse/backend/internal/service"
)

type StoreHandler struct {
	service *service.StoreService
}

func NewStoreHandler(service *service.StoreService) *StoreHandler {
	return &StoreHandler{service: service}
}

func (h *StoreHandler) ListStores(c *gin.Context) {
	stores, err := h.service.ListStores(c.Request.Context())
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stores": stores})
}

func (h *StoreHandler) GetStore(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	store, err := h.service.GetStore(c.Request.Context(), id)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, store)
}

func (h *StoreHandler) CreateStore(c *gin.Context) {
	var store domain.Store
	if err := c.ShouldBindJSON(&store); err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	id, err := h.service.CreateStore(c.Request.Context(), &store)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *StoreHandler) UpdateStore(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var store domain.Store
	if err := c.ShouldBindJSON(&store); err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	store.ID = id

	if err := h.service.UpdateStore(c.Request.Context(), &store); err != nil {
		serviceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *StoreHandler) DeleteStore(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteStore(c.Request.Context(), id); err != nil {
		serviceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *StoreHandler) GetInventory(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	lines, err := h.service.StoreInventory(c.Request.Context(), id)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"inventory": lines})
}

func (h *StoreHandler) SetInventoryLine(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var line domain.InventoryLine
	if err := c.ShouldBindJSON(&line); err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	line.StoreID = id

	if err := h.service.SetInventoryLine(c.Request.Context(), &line); err != nil {
		serviceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
