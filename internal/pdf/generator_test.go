package pdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wms-service/internal/models"
)

func TestInventoryPDF(t *testing.T) {
	g := NewGenerator()

	document, err := g.InventoryPDF(&models.InventoryReport{
		TotalProducts:    2,
		TotalWarehouses:  1,
		TotalStock:       4,
		TotalCapacity:    10,
		OccupancyPercent: 40,
		Warehouses: []models.InventoryWarehouseEntry{
			{Code: "BOG01", City: "Bogotá", TotalStock: 4, TotalCapacity: 10, OccupancyPercent: 40},
		},
		GeneratedAt: "2026-05-01T10:30:00Z",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, document)
}

func TestOrdersPDF(t *testing.T) {
	g := NewGenerator()

	document, err := g.OrdersPDF(&models.OrdersReport{
		TotalOrders: 2,
		ByStatus:    models.OrdersByStatus{Pending: 1, Cancelled: 1},
		TotalValue:  5500,
		GeneratedAt: "2026-05-01T10:30:00Z",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, document)
}

func TestTopProductsPDF(t *testing.T) {
	g := NewGenerator()

	document, err := g.TopProductsPDF(&models.TopProductsReport{
		Limit: 10,
		Products: []models.TopProductEntry{
			{Code: "PRD1", Name: "Tornillos", Price: 1000, OrderCount: 1, TotalQuantity: 3, TotalValue: 3000},
		},
		GeneratedAt: "2026-05-01T10:30:00Z",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, document)
}

func TestWarehouseCapacityPDF(t *testing.T) {
	g := NewGenerator()

	document, err := g.WarehouseCapacityPDF(&models.WarehouseCapacityReport{
		Warehouses: []models.WarehouseCapacityEntry{
			{Code: "BOG01", City: "Bogotá", TotalSlots: 2, TotalCapacity: 20, TotalStock: 4, OccupancyPercent: 20, EmptySlots: 1},
		},
		GeneratedAt: "2026-05-01T10:30:00Z",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, document)
}

func TestSalesByDatePDF(t *testing.T) {
	g := NewGenerator()

	document, err := g.SalesByDatePDF(&models.SalesByDateReport{
		GroupBy: models.GroupByDay,
		Sales: []models.SalesByDateEntry{
			{Date: "2026-03-10", TotalOrders: 1, TotalItems: 1, TotalQuantity: 3, TotalValue: 3000},
		},
		GeneratedAt: "2026-05-01T10:30:00Z",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, document)
}

func TestPDF_EmptyReportStillRenders(t *testing.T) {
	g := NewGenerator()

	document, err := g.SalesByDatePDF(&models.SalesByDateReport{
		GroupBy:     models.GroupByMonth,
		Sales:       nil,
		GeneratedAt: "2026-05-01T10:30:00Z",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, document)
}
