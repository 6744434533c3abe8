package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"wms-service/internal/models"
)

func reportTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Warehouse{},
		&models.Shelf{},
		&models.Slot{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
	))
	return db
}

// seedReportFixtures loads one warehouse (one shelf, two slots, 40%
// occupied) plus a second empty warehouse, two products and two orders
// on different days, one of them cancelled.
func seedReportFixtures(t *testing.T, db *gorm.DB) {
	t.Helper()

	require.NoError(t, db.Create(&models.Product{Code: "PRD1", Name: "Tornillos", Price: 1000}).Error)
	require.NoError(t, db.Create(&models.Product{Code: "PRD2", Name: "Tuercas", Price: 500}).Error)

	require.NoError(t, db.Create(&models.Warehouse{Code: "BOG01", City: "Bogotá", Address: "Calle 1"}).Error)
	require.NoError(t, db.Create(&models.Warehouse{Code: "MED01", City: "Medellín", Address: "Carrera 2"}).Error)

	shelf := models.Shelf{WarehouseCode: "BOG01", Zone: "A", Code: 1, Levels: 3}
	require.NoError(t, db.Create(&shelf).Error)

	prd1 := "PRD1"
	require.NoError(t, db.Create(&models.Slot{ShelfID: shelf.ID, Level: 1, Position: 1, Capacity: 10, Stock: 4, ProductCode: &prd1}).Error)
	require.NoError(t, db.Create(&models.Slot{ShelfID: shelf.ID, Level: 1, Position: 2, Capacity: 10, Stock: 0}).Error)

	cash := models.Order{
		Status:        models.OrderStatusPending,
		PaymentMethod: models.PaymentMethodCash,
		Items:         []models.OrderItem{{ProductCode: "PRD1", Quantity: 3}},
	}
	require.NoError(t, db.Create(&cash).Error)
	require.NoError(t, db.Model(&models.Order{}).Where("id = ?", cash.ID).
		Update("created_at", time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)).Error)

	cancelled := models.Order{
		Status:        models.OrderStatusCancelled,
		PaymentMethod: models.PaymentMethodTransfer,
		Items:         []models.OrderItem{{ProductCode: "PRD2", Quantity: 5}},
	}
	require.NoError(t, db.Create(&cancelled).Error)
	require.NoError(t, db.Model(&models.Order{}).Where("id = ?", cancelled.ID).
		Update("created_at", time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)).Error)
}

func TestInventorySummary(t *testing.T) {
	db := reportTestDB(t)
	seedReportFixtures(t, db)
	repo := NewReportRepository(db)

	report, err := repo.InventorySummary("")
	require.NoError(t, err)

	assert.Equal(t, int64(4), report.TotalStock)
	assert.Equal(t, int64(10), report.TotalCapacity)
	assert.InDelta(t, 40.0, report.OccupancyPercent, 0.001)

	require.Len(t, report.Warehouses, 2)
	byCode := map[string]models.InventoryWarehouseEntry{}
	for _, w := range report.Warehouses {
		byCode[w.Code] = w
	}

	bog := byCode["BOG01"]
	assert.Equal(t, int64(4), bog.TotalStock)
	assert.Equal(t, int64(20), bog.TotalCapacity)
	assert.InDelta(t, 20.0, bog.OccupancyPercent, 0.001)

	// Zero capacity never divides.
	med := byCode["MED01"]
	assert.Equal(t, int64(0), med.TotalCapacity)
	assert.Equal(t, 0.0, med.OccupancyPercent)
}

func TestInventorySummary_FilterByWarehouse(t *testing.T) {
	db := reportTestDB(t)
	seedReportFixtures(t, db)
	repo := NewReportRepository(db)

	report, err := repo.InventorySummary("BOG01")
	require.NoError(t, err)

	require.Len(t, report.Warehouses, 1)
	assert.Equal(t, "BOG01", report.Warehouses[0].Code)
}

func TestOrdersSummary(t *testing.T) {
	db := reportTestDB(t)
	seedReportFixtures(t, db)
	repo := NewReportRepository(db)

	report, err := repo.OrdersSummary(models.ReportFilters{})
	require.NoError(t, err)

	assert.Equal(t, int64(2), report.TotalOrders)
	assert.Equal(t, int64(1), report.ByStatus.Pending)
	assert.Equal(t, int64(1), report.ByStatus.Cancelled)
	assert.Equal(t, int64(0), report.ByStatus.Delivered)
	assert.Equal(t, int64(1), report.ByPaymentMethod.Cash)
	assert.Equal(t, int64(1), report.ByPaymentMethod.Transfer)
	assert.Equal(t, int64(2), report.TotalItems)
	assert.Equal(t, int64(8), report.TotalQuantity)
	assert.Equal(t, int64(5500), report.TotalValue)
}

func TestOrdersSummary_StatusFilter(t *testing.T) {
	db := reportTestDB(t)
	seedReportFixtures(t, db)
	repo := NewReportRepository(db)

	report, err := repo.OrdersSummary(models.ReportFilters{Status: "pendiente"})
	require.NoError(t, err)

	assert.Equal(t, int64(1), report.TotalOrders)
	assert.Equal(t, int64(1), report.TotalItems)
	assert.Equal(t, int64(3), report.TotalQuantity)
	assert.Equal(t, int64(3000), report.TotalValue)
}

func TestOrdersSummary_DateFilter(t *testing.T) {
	db := reportTestDB(t)
	seedReportFixtures(t, db)
	repo := NewReportRepository(db)

	report, err := repo.OrdersSummary(models.ReportFilters{DateFrom: "2026-03-20"})
	require.NoError(t, err)

	assert.Equal(t, int64(1), report.TotalOrders)
	assert.Equal(t, int64(1), report.ByStatus.Cancelled)
}

func TestTopProducts_ExcludesCancelledOrders(t *testing.T) {
	db := reportTestDB(t)
	seedReportFixtures(t, db)
	repo := NewReportRepository(db)

	entries, err := repo.TopProducts(10, models.ReportFilters{})
	require.NoError(t, err)

	// PRD2 only appears in the cancelled order.
	require.Len(t, entries, 1)
	assert.Equal(t, "PRD1", entries[0].Code)
	assert.Equal(t, int64(1), entries[0].OrderCount)
	assert.Equal(t, int64(3), entries[0].TotalQuantity)
	assert.Equal(t, int64(3000), entries[0].TotalValue)
}

func TestTopProducts_LimitApplied(t *testing.T) {
	db := reportTestDB(t)
	seedReportFixtures(t, db)
	repo := NewReportRepository(db)

	more := models.Order{
		Status:        models.OrderStatusDelivered,
		PaymentMethod: models.PaymentMethodCash,
		Items:         []models.OrderItem{{ProductCode: "PRD2", Quantity: 1}},
	}
	require.NoError(t, db.Create(&more).Error)

	entries, err := repo.TopProducts(1, models.ReportFilters{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "PRD1", entries[0].Code, "highest quantity first")
}

func TestWarehouseCapacity(t *testing.T) {
	db := reportTestDB(t)
	seedReportFixtures(t, db)
	repo := NewReportRepository(db)

	entries, err := repo.WarehouseCapacity()
	require.NoError(t, err)

	require.Len(t, entries, 2)
	assert.Equal(t, "BOG01", entries[0].Code, "ordered by code")

	bog := entries[0]
	assert.Equal(t, int64(1), bog.TotalShelves)
	assert.Equal(t, int64(2), bog.TotalSlots)
	assert.Equal(t, int64(20), bog.TotalCapacity)
	assert.Equal(t, int64(4), bog.TotalStock)
	assert.Equal(t, int64(1), bog.EmptySlots)
	assert.Equal(t, int64(0), bog.FullSlots)
	assert.InDelta(t, 20.0, bog.OccupancyPercent, 0.001)

	med := entries[1]
	assert.Equal(t, int64(0), med.TotalSlots)
	assert.Equal(t, 0.0, med.OccupancyPercent)
}

func TestWarehouseCapacity_FullSlotCounted(t *testing.T) {
	db := reportTestDB(t)
	seedReportFixtures(t, db)
	repo := NewReportRepository(db)

	require.NoError(t, db.Model(&models.Slot{}).
		Where("position = ?", 1).
		Update("stock", 10).Error)

	entries, err := repo.WarehouseCapacity()
	require.NoError(t, err)
	assert.Equal(t, int64(1), entries[0].FullSlots)
}

func TestSalesByDate_GroupByDay(t *testing.T) {
	db := reportTestDB(t)
	seedReportFixtures(t, db)
	repo := NewReportRepository(db)

	entries, err := repo.SalesByDate(models.GroupByDay, models.ReportFilters{})
	require.NoError(t, err)

	// The cancelled order is excluded, leaving one bucket.
	require.Len(t, entries, 1)
	assert.Equal(t, "2026-03-10", entries[0].Date)
	assert.Equal(t, int64(1), entries[0].TotalOrders)
	assert.Equal(t, int64(3), entries[0].TotalQuantity)
	assert.Equal(t, int64(3000), entries[0].TotalValue)
}

func TestSalesByDate_GroupByMonthAndYear(t *testing.T) {
	db := reportTestDB(t)
	seedReportFixtures(t, db)
	repo := NewReportRepository(db)

	second := models.Order{
		Status:        models.OrderStatusDelivered,
		PaymentMethod: models.PaymentMethodCash,
		Items:         []models.OrderItem{{ProductCode: "PRD1", Quantity: 1}},
	}
	require.NoError(t, db.Create(&second).Error)
	require.NoError(t, db.Model(&models.Order{}).Where("id = ?", second.ID).
		Update("created_at", time.Date(2026, 3, 25, 8, 0, 0, 0, time.UTC)).Error)

	byMonth, err := repo.SalesByDate(models.GroupByMonth, models.ReportFilters{})
	require.NoError(t, err)
	require.Len(t, byMonth, 1)
	assert.Equal(t, "2026-03-01", byMonth[0].Date)
	assert.Equal(t, int64(2), byMonth[0].TotalOrders)

	byYear, err := repo.SalesByDate(models.GroupByYear, models.ReportFilters{})
	require.NoError(t, err)
	require.Len(t, byYear, 1)
	assert.Equal(t, "2026-01-01", byYear[0].Date)
}

func TestSalesByDate_InvalidGrouping(t *testing.T) {
	db := reportTestDB(t)
	repo := NewReportRepository(db)

	_, err := repo.SalesByDate("semana", models.ReportFilters{})
	assert.Error(t, err)
}
