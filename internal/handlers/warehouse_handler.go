package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"wms-service/internal/models"
	"wms-service/internal/services"
)

// WarehouseHandler handles HTTP requests for warehouses, shelves and slots
type WarehouseHandler struct {
	inventoryService services.InventoryService
}

// NewWarehouseHandler creates a new warehouse handler
func NewWarehouseHandler(inventoryService services.InventoryService) *WarehouseHandler {
	return &WarehouseHandler{
		inventoryService: inventoryService,
	}
}

// CreateWarehouse creates a new warehouse
// @Summary Create a warehouse
// @Tags warehouses
// @Accept json
// @Produce json
// @Param warehouse body models.CreateWarehouseRequest true "Warehouse creation request"
// @Success 201 {object} models.Warehouse
// @Failure 400 {object} ErrorResponse
// @Router /bodegas [post]
func (h *WarehouseHandler) CreateWarehouse(c *gin.Context) {
	var req models.CreateWarehouseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request body",
			Message: err.Error(),
		})
		return
	}

	warehouse, err := h.inventoryService.CreateWarehouse(c.Request.Context(), &req)
	if err != nil {
		c.JSON(writeErrorStatus(err), ErrorResponse{
			Error:   "Failed to create warehouse",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, warehouse)
}

// ListWarehouses lists all warehouses
// @Summary List warehouses
// @Tags warehouses
// @Produce json
// @Success 200 {array} models.Warehouse
// @Router /bodegas [get]
func (h *WarehouseHandler) ListWarehouses(c *gin.Context) {
	warehouses, err := h.inventoryService.ListWarehouses(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Failed to list warehouses",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, warehouses)
}

// GetWarehouse retrieves a warehouse by code
// @Summary Get a warehouse
// @Tags warehouses
// @Produce json
// @Param codigo path string true "Warehouse code"
// @Success 200 {object} models.Warehouse
// @Failure 404 {object} ErrorResponse
// @Router /bodegas/{codigo} [get]
func (h *WarehouseHandler) GetWarehouse(c *gin.Context) {
	warehouse, err := h.inventoryService.GetWarehouse(c.Request.Context(), c.Param("codigo"))
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "Warehouse not found",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, warehouse)
}

// UpdateWarehouse updates a warehouse's mutable fields
// @Summary Update a warehouse
// @Tags warehouses
// @Accept json
// @Produce json
// @Param codigo path string true "Warehouse code"
// @Param warehouse body models.UpdateWarehouseRequest true "Warehouse update request"
// @Success 200 {object} models.Warehouse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /bodegas/{codigo} [put]
func (h *WarehouseHandler) UpdateWarehouse(c *gin.Context) {
	var req models.UpdateWarehouseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request body",
			Message: err.Error(),
		})
		return
	}

	warehouse, err := h.inventoryService.UpdateWarehouse(c.Request.Context(), c.Param("codigo"), &req)
	if err != nil {
		c.JSON(writeErrorStatus(err), ErrorResponse{
			Error:   "Failed to update warehouse",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, warehouse)
}

// DeleteWarehouse deletes a warehouse and its shelves and slots
// @Summary Delete a warehouse
// @Tags warehouses
// @Produce json
// @Param codigo path string true "Warehouse code"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /bodegas/{codigo} [delete]
func (h *WarehouseHandler) DeleteWarehouse(c *gin.Context) {
	if err := h.inventoryService.DeleteWarehouse(c.Request.Context(), c.Param("codigo")); err != nil {
		c.JSON(writeErrorStatus(err), ErrorResponse{
			Error:   "Failed to delete warehouse",
			Message: err.Error(),
		})
		return
	}

	c.Status(http.StatusNoContent)
}

// CreateShelf adds a shelf to a warehouse
// @Summary Create a shelf
// @Tags warehouses
// @Accept json
// @Produce json
// @Param codigo path string true "Warehouse code"
// @Param shelf body models.CreateShelfRequest true "Shelf creation request"
// @Success 201 {object} models.Shelf
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /bodegas/{codigo}/estanterias [post]
func (h *WarehouseHandler) CreateShelf(c *gin.Context) {
	var req models.CreateShelfRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request body",
			Message: err.Error(),
		})
		return
	}

	shelf, err := h.inventoryService.CreateShelf(c.Request.Context(), c.Param("codigo"), &req)
	if err != nil {
		c.JSON(writeErrorStatus(err), ErrorResponse{
			Error:   "Failed to create shelf",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, shelf)
}

// GetShelf retrieves a shelf with its slots
// @Summary Get a shelf
// @Tags warehouses
// @Produce json
// @Param id path int true "Shelf ID"
// @Success 200 {object} models.Shelf
// @Failure 404 {object} ErrorResponse
// @Router /estanterias/{id} [get]
func (h *WarehouseHandler) GetShelf(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	shelf, err := h.inventoryService.GetShelf(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "Shelf not found",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, shelf)
}

// CreateSlot adds a slot to a shelf
// @Summary Create a slot
// @Tags warehouses
// @Accept json
// @Produce json
// @Param id path int true "Shelf ID"
// @Param slot body models.CreateSlotRequest true "Slot creation request"
// @Success 201 {object} models.Slot
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /estanterias/{id}/ubicaciones [post]
func (h *WarehouseHandler) CreateSlot(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req models.CreateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request body",
			Message: err.Error(),
		})
		return
	}

	slot, err := h.inventoryService.CreateSlot(c.Request.Context(), id, &req)
	if err != nil {
		c.JSON(writeErrorStatus(err), ErrorResponse{
			Error:   "Failed to create slot",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, slot)
}

// GetSlot retrieves a slot with its shelf, warehouse and product
// @Summary Get a slot
// @Tags warehouses
// @Produce json
// @Param id path int true "Slot ID"
// @Success 200 {object} models.Slot
// @Failure 404 {object} ErrorResponse
// @Router /ubicaciones/{id} [get]
func (h *WarehouseHandler) GetSlot(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	slot, err := h.inventoryService.GetSlot(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "Slot not found",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, slot)
}

// UpdateSlot updates a slot's stock, capacity or product assignment
// @Summary Update a slot
// @Tags warehouses
// @Accept json
// @Produce json
// @Param id path int true "Slot ID"
// @Param slot body models.UpdateSlotRequest true "Slot update request"
// @Success 200 {object} models.Slot
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /ubicaciones/{id} [put]
func (h *WarehouseHandler) UpdateSlot(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req models.UpdateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request body",
			Message: err.Error(),
		})
		return
	}

	slot, err := h.inventoryService.UpdateSlot(c.Request.Context(), id, &req)
	if err != nil {
		c.JSON(writeErrorStatus(err), ErrorResponse{
			Error:   "Failed to update slot",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, slot)
}

func parseUintParam(c *gin.Context, name string) (uint, bool) {
	value, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid " + name,
			Message: err.Error(),
		})
		return 0, false
	}
	return uint(value), true
}

// writeErrorStatus maps service errors from write paths to HTTP codes.
func writeErrorStatus(err error) int {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "not found"):
		return http.StatusNotFound
	case strings.Contains(msg, "already exists"),
		strings.Contains(msg, "duplicate key"),
		strings.Contains(msg, "UNIQUE constraint"),
		strings.Contains(msg, "invalid"),
		strings.Contains(msg, "exceeds"),
		strings.Contains(msg, "cannot"),
		strings.Contains(msg, "only"):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
