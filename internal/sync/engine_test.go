package sync

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"wms-service/internal/events"
	"wms-service/internal/models"
	"wms-service/internal/replica"
	"wms-service/internal/repository"
)

// fakeStore records replica writes in memory and can be told to fail.
type fakeStore struct {
	products   map[string]replica.ProductDocument
	warehouses map[string]replica.WarehouseDocument
	orders     map[uint]replica.OrderDocument
	failing    bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		products:   make(map[string]replica.ProductDocument),
		warehouses: make(map[string]replica.WarehouseDocument),
		orders:     make(map[uint]replica.OrderDocument),
	}
}

func (f *fakeStore) err() error {
	if f.failing {
		return replica.ErrUnavailable
	}
	return nil
}

func (f *fakeStore) UpsertProduct(ctx context.Context, doc replica.ProductDocument) error {
	if err := f.err(); err != nil {
		return err
	}
	f.products[doc.Code] = doc
	return nil
}

func (f *fakeStore) UpsertWarehouse(ctx context.Context, doc replica.WarehouseDocument) error {
	if err := f.err(); err != nil {
		return err
	}
	f.warehouses[doc.Code] = doc
	return nil
}

func (f *fakeStore) UpsertOrder(ctx context.Context, doc replica.OrderDocument) error {
	if err := f.err(); err != nil {
		return err
	}
	f.orders[doc.PostgresID] = doc
	return nil
}

func (f *fakeStore) DeleteProduct(ctx context.Context, code string) error {
	if err := f.err(); err != nil {
		return err
	}
	delete(f.products, code)
	return nil
}

func (f *fakeStore) DeleteOrder(ctx context.Context, id uint) error {
	if err := f.err(); err != nil {
		return err
	}
	delete(f.orders, id)
	return nil
}

func (f *fakeStore) RecentOrders(ctx context.Context, limit int) ([]replica.OrderDocument, error) {
	return nil, f.err()
}

func (f *fakeStore) RecentProducts(ctx context.Context, limit int) ([]replica.ProductDocument, error) {
	return nil, f.err()
}

func (f *fakeStore) Ping(ctx context.Context) error {
	return f.err()
}

func testDB(t *testing.T) *gorm.DB {
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

type testEnv struct {
	db            *gorm.DB
	store         *fakeStore
	engine        *Engine
	warehouseRepo repository.WarehouseRepository
	productRepo   repository.ProductRepository
	orderRepo     repository.OrderRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testDB(t)
	store := newFakeStore()

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	warehouseRepo := repository.NewWarehouseRepository(db)
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db, nil)

	return &testEnv{
		db:            db,
		store:         store,
		engine:        NewEngine(warehouseRepo, productRepo, orderRepo, store, log),
		warehouseRepo: warehouseRepo,
		productRepo:   productRepo,
		orderRepo:     orderRepo,
	}
}

// seedInventory creates one warehouse with a single shelf and slot that
// holds four units of one product.
func seedInventory(t *testing.T, env *testEnv) (warehouseCode, productCode string, slotID uint) {
	t.Helper()

	require.NoError(t, env.productRepo.Create(&models.Product{
		Code:  "PRD1",
		Name:  "Tornillos",
		Price: 1000,
	}))

	warehouse := &models.Warehouse{Code: "BOG01", City: "Bogotá", Address: "Calle 1"}
	require.NoError(t, env.warehouseRepo.Create(warehouse))

	shelf := &models.Shelf{WarehouseCode: "BOG01", Zone: "A", Code: 1, Levels: 3}
	require.NoError(t, env.warehouseRepo.CreateShelf(shelf))

	code := "PRD1"
	slot := &models.Slot{ShelfID: shelf.ID, Level: 1, Position: 1, Capacity: 10, Stock: 4, ProductCode: &code}
	require.NoError(t, env.warehouseRepo.CreateSlot(slot))

	return "BOG01", "PRD1", slot.ID
}

func TestResyncProduct_BuildsDenormalizedDocument(t *testing.T) {
	env := newTestEnv(t)
	_, productCode, _ := seedInventory(t, env)

	ok := env.engine.ResyncProduct(context.Background(), productCode)
	assert.True(t, ok)

	doc, exists := env.store.products["PRD1"]
	require.True(t, exists)
	assert.Equal(t, "PRD1", doc.Code)
	assert.Equal(t, int64(1000), doc.Price)
	assert.Equal(t, 4, doc.TotalStock)
	assert.Equal(t, 1, doc.LocationCount)
	require.Len(t, doc.Locations, 1)
	assert.Equal(t, "BOG01", doc.Locations[0].WarehouseCode)
	assert.Equal(t, "Bogotá", doc.Locations[0].WarehouseCity)
	assert.Equal(t, "A111", doc.Locations[0].FullCode)
	assert.NotEmpty(t, doc.SyncedAt)
}

func TestResyncProduct_Idempotent(t *testing.T) {
	env := newTestEnv(t)
	_, productCode, _ := seedInventory(t, env)

	require.True(t, env.engine.ResyncProduct(context.Background(), productCode))
	first := env.store.products["PRD1"]

	require.True(t, env.engine.ResyncProduct(context.Background(), productCode))
	second := env.store.products["PRD1"]

	// Resyncing unchanged state replaces the document with identical
	// content, only the sync timestamp may differ.
	first.SyncedAt = ""
	second.SyncedAt = ""
	assert.Equal(t, first, second)
}

func TestResyncProduct_UnknownCode(t *testing.T) {
	env := newTestEnv(t)

	ok := env.engine.ResyncProduct(context.Background(), "NOPE")
	assert.False(t, ok)
	assert.Empty(t, env.store.products)
}

func TestResyncProduct_ReplicaDownReturnsFalse(t *testing.T) {
	env := newTestEnv(t)
	_, productCode, _ := seedInventory(t, env)
	env.store.failing = true

	ok := env.engine.ResyncProduct(context.Background(), productCode)
	assert.False(t, ok)

	// The relational row is untouched by the failed replication.
	product, err := env.productRepo.GetByCode(productCode)
	require.NoError(t, err)
	assert.Equal(t, "Tornillos", product.Name)
}

func TestResyncWarehouse_BuildsDenormalizedDocument(t *testing.T) {
	env := newTestEnv(t)
	warehouseCode, _, _ := seedInventory(t, env)

	ok := env.engine.ResyncWarehouse(context.Background(), warehouseCode)
	assert.True(t, ok)

	doc, exists := env.store.warehouses["BOG01"]
	require.True(t, exists)
	assert.Equal(t, "Bogotá", doc.City)
	assert.Equal(t, 1, doc.TotalSlots)
	assert.Equal(t, 4, doc.TotalStock)
	require.Len(t, doc.Shelves, 1)
	require.Len(t, doc.Shelves[0].Slots, 1)
	require.NotNil(t, doc.Shelves[0].Slots[0].Product)
	assert.Equal(t, "PRD1", doc.Shelves[0].Slots[0].Product.Code)
}

func TestResyncOrder_BuildsDocumentWithTotals(t *testing.T) {
	env := newTestEnv(t)
	seedInventory(t, env)

	order := &models.Order{
		Status:        models.OrderStatusPending,
		PaymentMethod: models.PaymentMethodCash,
		Items:         []models.OrderItem{{ProductCode: "PRD1", Quantity: 3}},
	}
	require.NoError(t, env.orderRepo.Create(order))

	ok := env.engine.ResyncOrder(context.Background(), order.ID)
	assert.True(t, ok)

	doc, exists := env.store.orders[order.ID]
	require.True(t, exists)
	assert.Equal(t, "pendiente", doc.Status)
	assert.Equal(t, "efectivo", doc.PaymentMethod)
	assert.Equal(t, int64(3000), doc.Total)
	assert.Equal(t, 1, doc.ItemCount)
	require.Len(t, doc.Items, 1)
	assert.Equal(t, int64(3000), doc.Items[0].Subtotal)
}

func TestDeleteProduct_RemovesDocumentAndSlotAssignment(t *testing.T) {
	env := newTestEnv(t)
	_, productCode, slotID := seedInventory(t, env)
	require.True(t, env.engine.ResyncProduct(context.Background(), productCode))

	require.NoError(t, env.productRepo.Delete(productCode))
	assert.True(t, env.engine.DeleteProduct(context.Background(), productCode))

	_, exists := env.store.products[productCode]
	assert.False(t, exists)

	slot, err := env.warehouseRepo.GetSlot(slotID)
	require.NoError(t, err)
	assert.Nil(t, slot.ProductCode)
}

func TestDeleteOrder_RemovesDocument(t *testing.T) {
	env := newTestEnv(t)
	seedInventory(t, env)

	order := &models.Order{
		Status:        models.OrderStatusPending,
		PaymentMethod: models.PaymentMethodTransfer,
		Items:         []models.OrderItem{{ProductCode: "PRD1", Quantity: 1}},
	}
	require.NoError(t, env.orderRepo.Create(order))
	require.True(t, env.engine.ResyncOrder(context.Background(), order.ID))

	assert.True(t, env.engine.DeleteOrder(context.Background(), order.ID))
	_, exists := env.store.orders[order.ID]
	assert.False(t, exists)
}

func TestSlotEvent_FansOutToProductAndWarehouse(t *testing.T) {
	env := newTestEnv(t)
	_, _, slotID := seedInventory(t, env)

	dispatcher := events.NewDispatcher(logrusQuiet())
	env.engine.RegisterHooks(dispatcher)

	dispatcher.Dispatch(context.Background(), events.Event{
		Entity: events.EntitySlot,
		Op:     events.OpSaved,
		Key:    strconv.FormatUint(uint64(slotID), 10),
	})

	assert.Contains(t, env.store.products, "PRD1")
	assert.Contains(t, env.store.warehouses, "BOG01")
}

func TestSlotEvent_UnassignedSlotOnlySyncsWarehouse(t *testing.T) {
	env := newTestEnv(t)
	_, _, slotID := seedInventory(t, env)

	slot, err := env.warehouseRepo.GetSlot(slotID)
	require.NoError(t, err)
	slot.ProductCode = nil
	require.NoError(t, env.warehouseRepo.UpdateSlot(slot))

	dispatcher := events.NewDispatcher(logrusQuiet())
	env.engine.RegisterHooks(dispatcher)

	dispatcher.Dispatch(context.Background(), events.Event{
		Entity: events.EntitySlot,
		Op:     events.OpSaved,
		Key:    strconv.FormatUint(uint64(slotID), 10),
	})

	assert.NotContains(t, env.store.products, "PRD1")
	assert.Contains(t, env.store.warehouses, "BOG01")
}

func TestResyncAll_CountsPerCategory(t *testing.T) {
	env := newTestEnv(t)
	seedInventory(t, env)

	order := &models.Order{
		Status:        models.OrderStatusPending,
		PaymentMethod: models.PaymentMethodCash,
		Items:         []models.OrderItem{{ProductCode: "PRD1", Quantity: 2}},
	}
	require.NoError(t, env.orderRepo.Create(order))

	summary, err := env.engine.ResyncAll(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Orders.Total)
	assert.Equal(t, 1, summary.Orders.Synced)
	assert.Equal(t, 1, summary.Products.Total)
	assert.Equal(t, 1, summary.Products.Synced)
	assert.Equal(t, 1, summary.Warehouses.Total)
	assert.Equal(t, 1, summary.Warehouses.Synced)
}

func TestResyncAll_AbortsWhenReplicaUnreachable(t *testing.T) {
	env := newTestEnv(t)
	seedInventory(t, env)
	env.store.failing = true

	summary, err := env.engine.ResyncAll(context.Background())
	assert.Nil(t, summary)
	assert.True(t, errors.Is(err, replica.ErrUnavailable))
}

func logrusQuiet() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}
