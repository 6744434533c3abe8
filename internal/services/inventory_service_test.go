package services

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"wms-service/internal/events"
	"wms-service/internal/models"
	"wms-service/internal/repository"
)

func inventoryServiceFixture(t *testing.T) (InventoryService, *gorm.DB) {
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

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	svc := NewInventoryService(
		repository.NewWarehouseRepository(db),
		repository.NewProductRepository(db),
		events.NewDispatcher(log),
	)
	return svc, db
}

func seedSlot(t *testing.T, db *gorm.DB) uint {
	t.Helper()

	require.NoError(t, db.Create(&models.Product{Code: "PRD1", Name: "Tornillos", Price: 1000}).Error)
	require.NoError(t, db.Create(&models.Warehouse{Code: "BOG01", City: "Bogotá", Address: "Calle 1"}).Error)
	shelf := models.Shelf{WarehouseCode: "BOG01", Zone: "A", Code: 1, Levels: 3}
	require.NoError(t, db.Create(&shelf).Error)
	code := "PRD1"
	slot := models.Slot{ShelfID: shelf.ID, Level: 1, Position: 1, Capacity: 10, Stock: 4, ProductCode: &code}
	require.NoError(t, db.Create(&slot).Error)
	return slot.ID
}

func TestUpdateSlot_AcceptsOverCapacityStock(t *testing.T) {
	svc, db := inventoryServiceFixture(t)
	slotID := seedSlot(t, db)

	stock := 15
	slot, err := svc.UpdateSlot(context.Background(), slotID, &models.UpdateSlotRequest{Stock: &stock})
	require.NoError(t, err)
	assert.Equal(t, 15, slot.Stock)
	assert.Equal(t, 10, slot.Capacity)

	// The anomaly shows up on the capacity report instead of being
	// rejected at write time.
	entries, err := repository.NewReportRepository(db).WarehouseCapacity()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, int64(1), entries[0].FullSlots)
	assert.Equal(t, int64(15), entries[0].TotalStock)
}

func TestUpdateSlot_RejectsNegativeStock(t *testing.T) {
	svc, db := inventoryServiceFixture(t)
	slotID := seedSlot(t, db)

	stock := -1
	_, err := svc.UpdateSlot(context.Background(), slotID, &models.UpdateSlotRequest{Stock: &stock})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "negative")
}
