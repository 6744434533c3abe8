package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"wms-service/internal/models"
	"wms-service/internal/repository"
	"wms-service/internal/services"
)

// OrderHandler handles HTTP requests for orders
type OrderHandler struct {
	orderService services.OrderService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService services.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

// OrderListResponse wraps a page of orders with the total count.
type OrderListResponse struct {
	Orders []models.Order `json:"orders"`
	Total  int64          `json:"total"`
	Page   int            `json:"page"`
	Limit  int            `json:"limit"`
}

// ValidTransitionsResponse lists the statuses an order may move to.
type ValidTransitionsResponse struct {
	CurrentStatus models.OrderStatus   `json:"currentStatus"`
	Terminal      bool                 `json:"terminal"`
	ValidNext     []models.OrderStatus `json:"validNext"`
}

// CreateOrder places a new order
// @Summary Create an order
// @Tags orders
// @Accept json
// @Produce json
// @Param order body models.CreateOrderRequest true "Order creation request"
// @Success 201 {object} models.Order
// @Failure 400 {object} ErrorResponse
// @Router /pedidos [post]
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req models.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request body",
			Message: err.Error(),
		})
		return
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), &req)
	if err != nil {
		c.JSON(writeErrorStatus(err), ErrorResponse{
			Error:   "Failed to create order",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, order)
}

// ListOrders lists orders with optional status and date filters
// @Summary List orders
// @Tags orders
// @Produce json
// @Param estado query string false "Order status filter"
// @Param fecha_inicio query string false "Start date (YYYY-MM-DD)"
// @Param fecha_fin query string false "End date (YYYY-MM-DD)"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} OrderListResponse
// @Failure 400 {object} ErrorResponse
// @Router /pedidos [get]
func (h *OrderHandler) ListOrders(c *gin.Context) {
	filters := repository.OrderFilters{Page: 1, Limit: 20}

	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil && page > 0 {
		filters.Page = page
	}
	if limit, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil && limit > 0 && limit <= 100 {
		filters.Limit = limit
	}

	if estado := c.Query("estado"); estado != "" {
		status := models.OrderStatus(estado)
		if !models.IsValidOrderStatus(status) {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   "Invalid status filter",
				Message: "unknown status: " + estado,
			})
			return
		}
		filters.Status = &status
	}

	if from, ok := parseDateQuery(c, "fecha_inicio"); !ok {
		return
	} else if from != nil {
		filters.DateFrom = from
	}
	if to, ok := parseDateQuery(c, "fecha_fin"); !ok {
		return
	} else if to != nil {
		end := to.Add(24*time.Hour - time.Nanosecond)
		filters.DateTo = &end
	}

	orders, total, err := h.orderService.ListOrders(c.Request.Context(), filters)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Failed to list orders",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, OrderListResponse{
		Orders: orders,
		Total:  total,
		Page:   filters.Page,
		Limit:  filters.Limit,
	})
}

// GetOrder retrieves an order with its items
// @Summary Get an order
// @Tags orders
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} models.Order
// @Failure 404 {object} ErrorResponse
// @Router /pedidos/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "Order not found",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, order)
}

// UpdateOrderStatus records a status change for an order
// @Summary Update order status
// @Tags orders
// @Accept json
// @Produce json
// @Param id path int true "Order ID"
// @Param status body models.UpdateOrderStatusRequest true "Status update request"
// @Success 200 {object} models.Order
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /pedidos/{id}/estado [patch]
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req models.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request body",
			Message: err.Error(),
		})
		return
	}

	order, err := h.orderService.UpdateOrderStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		c.JSON(writeErrorStatus(err), ErrorResponse{
			Error:   "Failed to update order status",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, order)
}

// DeleteOrder deletes an order and its items
// @Summary Delete an order
// @Tags orders
// @Produce json
// @Param id path int true "Order ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /pedidos/{id} [delete]
func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	if err := h.orderService.DeleteOrder(c.Request.Context(), id); err != nil {
		c.JSON(writeErrorStatus(err), ErrorResponse{
			Error:   "Failed to delete order",
			Message: err.Error(),
		})
		return
	}

	c.Status(http.StatusNoContent)
}

// GetValidTransitions lists the statuses an order may move to next
// @Summary Get valid status transitions
// @Tags orders
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} ValidTransitionsResponse
// @Failure 404 {object} ErrorResponse
// @Router /pedidos/{id}/valid-transitions [get]
func (h *OrderHandler) GetValidTransitions(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "Order not found",
			Message: err.Error(),
		})
		return
	}

	transitions, err := h.orderService.ValidTransitions(order.Status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Failed to resolve transitions",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, ValidTransitionsResponse{
		CurrentStatus: order.Status,
		Terminal:      models.IsTerminalOrderStatus(order.Status),
		ValidNext:     transitions,
	})
}

func parseDateQuery(c *gin.Context, name string) (*time.Time, bool) {
	value := c.Query(name)
	if value == "" {
		return nil, true
	}
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid " + name,
			Message: "expected YYYY-MM-DD format",
		})
		return nil, false
	}
	return &parsed, true
}
