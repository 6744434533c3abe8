package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wms-service/internal/models"
	"wms-service/internal/services"
)

// ProductHandler handles HTTP requests for products
type ProductHandler struct {
	inventoryService services.InventoryService
}

// NewProductHandler creates a new product handler
func NewProductHandler(inventoryService services.InventoryService) *ProductHandler {
	return &ProductHandler{
		inventoryService: inventoryService,
	}
}

// CreateProduct registers a new product
// @Summary Create a product
// @Tags products
// @Accept json
// @Produce json
// @Param product body models.CreateProductRequest true "Product creation request"
// @Success 201 {object} models.Product
// @Failure 400 {object} ErrorResponse
// @Router /productos [post]
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req models.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request body",
			Message: err.Error(),
		})
		return
	}

	product, err := h.inventoryService.CreateProduct(c.Request.Context(), &req)
	if err != nil {
		c.JSON(writeErrorStatus(err), ErrorResponse{
			Error:   "Failed to create product",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, product)
}

// ListProducts lists all products
// @Summary List products
// @Tags products
// @Produce json
// @Success 200 {array} models.Product
// @Router /productos [get]
func (h *ProductHandler) ListProducts(c *gin.Context) {
	products, err := h.inventoryService.ListProducts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Failed to list products",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, products)
}

// GetProduct retrieves a product with its slots
// @Summary Get a product
// @Tags products
// @Produce json
// @Param codigo path string true "Product code"
// @Success 200 {object} models.Product
// @Failure 404 {object} ErrorResponse
// @Router /productos/{codigo} [get]
func (h *ProductHandler) GetProduct(c *gin.Context) {
	product, err := h.inventoryService.GetProduct(c.Request.Context(), c.Param("codigo"))
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "Product not found",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, product)
}

// UpdateProduct updates a product's mutable fields
// @Summary Update a product
// @Tags products
// @Accept json
// @Produce json
// @Param codigo path string true "Product code"
// @Param product body models.UpdateProductRequest true "Product update request"
// @Success 200 {object} models.Product
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /productos/{codigo} [put]
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	var req models.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request body",
			Message: err.Error(),
		})
		return
	}

	product, err := h.inventoryService.UpdateProduct(c.Request.Context(), c.Param("codigo"), &req)
	if err != nil {
		c.JSON(writeErrorStatus(err), ErrorResponse{
			Error:   "Failed to update product",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, product)
}

// DeleteProduct deletes a product and clears its slot assignments
// @Summary Delete a product
// @Tags products
// @Produce json
// @Param codigo path string true "Product code"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /productos/{codigo} [delete]
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	if err := h.inventoryService.DeleteProduct(c.Request.Context(), c.Param("codigo")); err != nil {
		c.JSON(writeErrorStatus(err), ErrorResponse{
			Error:   "Failed to delete product",
			Message: err.Error(),
		})
		return
	}

	c.Status(http.StatusNoContent)
}
