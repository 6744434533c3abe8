package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"wms-service/internal/models"
	"wms-service/internal/pdf"
	"wms-service/internal/services"
)

// ReportHandler handles HTTP requests for reports, in JSON and PDF form
type ReportHandler struct {
	reportService services.ReportService
	pdfGenerator  *pdf.Generator
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService services.ReportService, pdfGenerator *pdf.Generator) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		pdfGenerator:  pdfGenerator,
	}
}

// InventoryReport returns the inventory summary report
// @Summary Inventory report
// @Tags reports
// @Produce json
// @Param bodega_codigo query string false "Restrict to one warehouse"
// @Success 200 {object} models.InventoryReport
// @Router /reportes/inventario [get]
func (h *ReportHandler) InventoryReport(c *gin.Context) {
	report, err := h.reportService.InventoryReport(c.Request.Context(), c.Query("bodega_codigo"))
	if err != nil {
		reportError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// InventoryReportPDF streams the inventory report as PDF
// @Summary Inventory report as PDF
// @Tags reports
// @Produce application/pdf
// @Param bodega_codigo query string false "Restrict to one warehouse"
// @Success 200 {file} binary
// @Router /reportes/inventario/pdf [get]
func (h *ReportHandler) InventoryReportPDF(c *gin.Context) {
	report, err := h.reportService.InventoryReport(c.Request.Context(), c.Query("bodega_codigo"))
	if err != nil {
		reportError(c, err)
		return
	}

	document, err := h.pdfGenerator.InventoryPDF(report)
	if err != nil {
		reportError(c, err)
		return
	}
	servePDF(c, "reporte_inventario", document)
}

// OrdersReport returns the orders summary report
// @Summary Orders report
// @Tags reports
// @Produce json
// @Param estado query string false "Order status filter"
// @Param fecha_inicio query string false "Start date (YYYY-MM-DD)"
// @Param fecha_fin query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} models.OrdersReport
// @Router /reportes/pedidos [get]
func (h *ReportHandler) OrdersReport(c *gin.Context) {
	filters, ok := reportFilters(c)
	if !ok {
		return
	}

	report, err := h.reportService.OrdersReport(c.Request.Context(), filters)
	if err != nil {
		reportError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// OrdersReportPDF streams the orders report as PDF
// @Summary Orders report as PDF
// @Tags reports
// @Produce application/pdf
// @Success 200 {file} binary
// @Router /reportes/pedidos/pdf [get]
func (h *ReportHandler) OrdersReportPDF(c *gin.Context) {
	filters, ok := reportFilters(c)
	if !ok {
		return
	}

	report, err := h.reportService.OrdersReport(c.Request.Context(), filters)
	if err != nil {
		reportError(c, err)
		return
	}

	document, err := h.pdfGenerator.OrdersPDF(report)
	if err != nil {
		reportError(c, err)
		return
	}
	servePDF(c, "reporte_pedidos", document)
}

// TopProductsReport returns the top-sellers report
// @Summary Top products report
// @Tags reports
// @Produce json
// @Param limite query int false "Number of products (1-100, default 10)"
// @Param fecha_inicio query string false "Start date (YYYY-MM-DD)"
// @Param fecha_fin query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} models.TopProductsReport
// @Router /reportes/productos-mas-vendidos [get]
func (h *ReportHandler) TopProductsReport(c *gin.Context) {
	filters, ok := reportFilters(c)
	if !ok {
		return
	}

	report, err := h.reportService.TopProductsReport(c.Request.Context(), limitQuery(c), filters)
	if err != nil {
		reportError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// TopProductsReportPDF streams the top-sellers report as PDF
// @Summary Top products report as PDF
// @Tags reports
// @Produce application/pdf
// @Success 200 {file} binary
// @Router /reportes/productos-mas-vendidos/pdf [get]
func (h *ReportHandler) TopProductsReportPDF(c *gin.Context) {
	filters, ok := reportFilters(c)
	if !ok {
		return
	}

	report, err := h.reportService.TopProductsReport(c.Request.Context(), limitQuery(c), filters)
	if err != nil {
		reportError(c, err)
		return
	}

	document, err := h.pdfGenerator.TopProductsPDF(report)
	if err != nil {
		reportError(c, err)
		return
	}
	servePDF(c, "reporte_productos_vendidos", document)
}

// WarehouseCapacityReport returns the per-warehouse capacity report
// @Summary Warehouse capacity report
// @Tags reports
// @Produce json
// @Success 200 {object} models.WarehouseCapacityReport
// @Router /reportes/bodegas-capacidad [get]
func (h *ReportHandler) WarehouseCapacityReport(c *gin.Context) {
	report, err := h.reportService.WarehouseCapacityReport(c.Request.Context())
	if err != nil {
		reportError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// WarehouseCapacityReportPDF streams the capacity report as PDF
// @Summary Warehouse capacity report as PDF
// @Tags reports
// @Produce application/pdf
// @Success 200 {file} binary
// @Router /reportes/bodegas-capacidad/pdf [get]
func (h *ReportHandler) WarehouseCapacityReportPDF(c *gin.Context) {
	report, err := h.reportService.WarehouseCapacityReport(c.Request.Context())
	if err != nil {
		reportError(c, err)
		return
	}

	document, err := h.pdfGenerator.WarehouseCapacityPDF(report)
	if err != nil {
		reportError(c, err)
		return
	}
	servePDF(c, "reporte_bodegas_capacidad", document)
}

// SalesByDateReport returns the sales-by-date report
// @Summary Sales by date report
// @Tags reports
// @Produce json
// @Param agrupar_por query string false "Granularity: dia, mes or año (default dia)"
// @Param fecha_inicio query string false "Start date (YYYY-MM-DD)"
// @Param fecha_fin query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} models.SalesByDateReport
// @Failure 400 {object} ErrorResponse
// @Router /reportes/ventas-por-fecha [get]
func (h *ReportHandler) SalesByDateReport(c *gin.Context) {
	groupBy, ok := groupByQuery(c)
	if !ok {
		return
	}
	filters, ok := reportFilters(c)
	if !ok {
		return
	}

	report, err := h.reportService.SalesByDateReport(c.Request.Context(), groupBy, filters)
	if err != nil {
		reportError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// SalesByDateReportPDF streams the sales-by-date report as PDF
// @Summary Sales by date report as PDF
// @Tags reports
// @Produce application/pdf
// @Success 200 {file} binary
// @Router /reportes/ventas-por-fecha/pdf [get]
func (h *ReportHandler) SalesByDateReportPDF(c *gin.Context) {
	groupBy, ok := groupByQuery(c)
	if !ok {
		return
	}
	filters, ok := reportFilters(c)
	if !ok {
		return
	}

	report, err := h.reportService.SalesByDateReport(c.Request.Context(), groupBy, filters)
	if err != nil {
		reportError(c, err)
		return
	}

	document, err := h.pdfGenerator.SalesByDatePDF(report)
	if err != nil {
		reportError(c, err)
		return
	}
	servePDF(c, "reporte_ventas_"+report.GroupBy, document)
}

// RecentOrders serves the latest order documents from the replica
// @Summary Recent orders from the replica
// @Tags reports
// @Produce json
// @Param limite query int false "Number of orders (1-100, default 10)"
// @Success 200 {array} replica.OrderDocument
// @Router /reportes/replica/pedidos [get]
func (h *ReportHandler) RecentOrders(c *gin.Context) {
	docs, err := h.reportService.RecentOrders(c.Request.Context(), limitQuery(c))
	if err != nil {
		reportError(c, err)
		return
	}
	c.JSON(http.StatusOK, docs)
}

// RecentProducts serves the latest product documents from the replica
// @Summary Recent products from the replica
// @Tags reports
// @Produce json
// @Param limite query int false "Number of products (1-100, default 10)"
// @Success 200 {array} replica.ProductDocument
// @Router /reportes/replica/productos [get]
func (h *ReportHandler) RecentProducts(c *gin.Context) {
	docs, err := h.reportService.RecentProducts(c.Request.Context(), limitQuery(c))
	if err != nil {
		reportError(c, err)
		return
	}
	c.JSON(http.StatusOK, docs)
}

func reportFilters(c *gin.Context) (models.ReportFilters, bool) {
	filters := models.ReportFilters{
		Status:    c.Query("estado"),
		Warehouse: c.Query("bodega_codigo"),
	}

	if filters.Status != "" && !models.IsValidOrderStatus(models.OrderStatus(filters.Status)) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid status filter",
			Message: "unknown status: " + filters.Status,
		})
		return models.ReportFilters{}, false
	}

	for _, param := range []struct {
		name  string
		value *string
	}{
		{"fecha_inicio", &filters.DateFrom},
		{"fecha_fin", &filters.DateTo},
	} {
		raw := c.Query(param.name)
		if raw == "" {
			continue
		}
		if _, err := time.Parse("2006-01-02", raw); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   "Invalid " + param.name,
				Message: "expected YYYY-MM-DD format",
			})
			return models.ReportFilters{}, false
		}
		*param.value = raw
	}

	return filters, true
}

func groupByQuery(c *gin.Context) (string, bool) {
	groupBy := c.DefaultQuery("agrupar_por", models.GroupByDay)
	if !models.IsValidGroupBy(groupBy) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid agrupar_por",
			Message: "expected dia, mes or año",
		})
		return "", false
	}
	return groupBy, true
}

func limitQuery(c *gin.Context) int {
	limit, err := strconv.Atoi(c.DefaultQuery("limite", "10"))
	if err != nil {
		return 10
	}
	return limit
}

func reportError(c *gin.Context, err error) {
	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error:   "Failed to generate report",
		Message: err.Error(),
	})
}

func servePDF(c *gin.Context, prefix string, document []byte) {
	filename := fmt.Sprintf("%s_%s.pdf", prefix, time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "application/pdf", document)
}
